package render

import (
	"strings"

	"github.com/dtnitsch/web-content-extractor/models"
)

// CopyAllText serializes a result for the clipboard. Sections without data
// are left out.
func CopyAllText(result *models.AgentResult) string {
	var b strings.Builder
	b.WriteString("Web Content Extraction\n\n")

	urls := "N/A"
	if result != nil && len(result.URLsProcessed) > 0 {
		urls = strings.Join(result.URLsProcessed, ", ")
	}
	b.WriteString("URLs Processed: " + urls + "\n\n")
	if result == nil {
		return b.String()
	}

	if result.Summary != "" {
		b.WriteString("Summary:\n" + result.Summary + "\n\n")
	}

	if len(result.ExtractedData) > 0 {
		b.WriteString("Extracted Data:\n")
		for _, item := range result.ExtractedData {
			b.WriteString("\nURL: " + item.URL + "\n")
			b.WriteString("Title: " + item.Title + "\n")
			for _, f := range item.ExtractedFields {
				if f.Value != "" {
					b.WriteString(f.Key + ": " + f.Value + "\n")
				}
			}
		}
	}
	return b.String()
}

// EntryText is the per-entry copy text: one "key: value" line per field.
func EntryText(item models.ExtractedData) string {
	lines := make([]string, 0, len(item.ExtractedFields))
	for _, f := range item.ExtractedFields {
		lines = append(lines, f.Key+": "+f.Value)
	}
	return strings.Join(lines, "\n")
}
