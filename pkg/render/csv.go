package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/dtnitsch/web-content-extractor/models"
)

// CSVContentType is the MIME type of exported files.
const CSVContentType = "text/csv"

// ExportCSV renders structured_table as CSV. Columns follow the first row's
// key order; every data cell is quoted. It reports false when there are no
// rows to export.
func ExportCSV(result *models.AgentResult) ([]byte, bool) {
	if result == nil || len(result.StructuredTable) == 0 {
		return nil, false
	}
	headers := result.StructuredTable[0].Keys()

	lines := make([]string, 0, len(result.StructuredTable)+1)
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = headerCell(h)
	}
	lines = append(lines, strings.Join(cells, ","))

	for _, row := range result.StructuredTable {
		cells := make([]string, len(headers))
		for i, h := range headers {
			v, _ := row.Get(h)
			cells[i] = quote(v)
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return []byte(strings.Join(lines, "\n")), true
}

// CSVFileName names an export by its creation time.
func CSVFileName(now time.Time) string {
	return fmt.Sprintf("extraction-%d.csv", now.UnixMilli())
}

func headerCell(h string) string {
	if strings.ContainsAny(h, " ,\"\r\n") {
		return quote(h)
	}
	return h
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
