// Package render turns agent responses into views, clipboard text and CSV.
// Everything here is a pure function of its inputs except the copy
// indicator, which owns a timer.
package render

import (
	"github.com/dtnitsch/web-content-extractor/models"
)

// Kind selects which panel a View shows.
type Kind int

const (
	KindEmpty Kind = iota
	KindBusy
	KindError
	KindSuccess
)

func (k Kind) String() string {
	switch k {
	case KindBusy:
		return "busy"
	case KindError:
		return "error"
	case KindSuccess:
		return "success"
	}
	return "empty"
}

// UnreadableResultMessage is shown for a success response whose result
// cannot be decoded.
const UnreadableResultMessage = "The agent returned a result that could not be read"

// View is everything a results panel displays.
type View struct {
	Kind         Kind
	ErrorMessage string

	URLs    []string
	Summary string
	Entries []Entry
	Table   *Table

	// Result backs the copy and export actions of a success view.
	Result *models.AgentResult
}

// Entry is one extracted_data item with its empty fields dropped.
type Entry struct {
	URL    string
	Title  string
	Fields []models.Field
}

// Table is the structured_table laid out against the first row's keys.
type Table struct {
	Headers []string
	Rows    [][]string
}

// EmptyCell stands in for a missing or empty table value.
const EmptyCell = "-"

// Render picks the panel for a response. A busy view never looks at the
// response; an error view never decodes the result.
func Render(resp *models.NormalizedAgentResponse, busy bool) View {
	switch {
	case busy:
		return View{Kind: KindBusy}
	case resp == nil:
		return View{Kind: KindEmpty}
	case !resp.IsSuccess():
		return View{Kind: KindError, ErrorMessage: resp.ErrorMessage()}
	}

	result, err := resp.AgentResult()
	if err != nil {
		return View{Kind: KindError, ErrorMessage: UnreadableResultMessage}
	}
	return successView(result)
}

func successView(result *models.AgentResult) View {
	v := View{
		Kind:    KindSuccess,
		URLs:    result.URLsProcessed,
		Summary: result.Summary,
		Result:  result,
	}
	for _, item := range result.ExtractedData {
		e := Entry{URL: item.URL, Title: item.Title}
		for _, f := range item.ExtractedFields {
			if f.Value != "" {
				e.Fields = append(e.Fields, f)
			}
		}
		v.Entries = append(v.Entries, e)
	}
	v.Table = layoutTable(result.StructuredTable)
	return v
}

func layoutTable(rows []models.Record) *Table {
	if len(rows) == 0 {
		return nil
	}
	t := &Table{Headers: rows[0].Keys()}
	for _, row := range rows {
		cells := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			v, ok := row.Get(h)
			if !ok || v == "" {
				v = EmptyCell
			}
			cells[i] = v
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// URLCount is the number of processed URLs shown in the success header.
func (v View) URLCount() int {
	return len(v.URLs)
}

// CanExport reports whether the CSV action has rows to export.
func (v View) CanExport() bool {
	return v.Result != nil && len(v.Result.StructuredTable) > 0
}
