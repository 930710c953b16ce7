package render

import (
	"fmt"
	"time"

	"github.com/dtnitsch/web-content-extractor/models"
)

// maxSidebarParams is how many parameters a sidebar line lists before "+N".
const maxSidebarParams = 2

// SidebarEntry is one history line.
type SidebarEntry struct {
	ID       string
	Host     string
	Date     string
	Time     string
	Params   []string
	More     int
	Selected bool
	Failed   bool
}

// Sidebar lays out history items in the order given, with dates in loc.
func Sidebar(items []models.HistoryItem, selectedID string, loc *time.Location) []SidebarEntry {
	if loc == nil {
		loc = time.Local
	}
	entries := make([]SidebarEntry, 0, len(items))
	for _, item := range items {
		e := SidebarEntry{
			ID:       item.ID,
			Host:     item.Hostname(),
			Selected: selectedID != "" && item.ID == selectedID,
			Failed:   !item.Response.IsSuccess(),
		}
		if ts := item.Time(); !ts.IsZero() {
			ts = ts.In(loc)
			e.Date = ts.Format("Jan 2, 2006")
			e.Time = ts.Format("3:04 PM")
		}
		e.Params = item.Parameters
		if len(e.Params) > maxSidebarParams {
			e.More = len(e.Params) - maxSidebarParams
			e.Params = e.Params[:maxSidebarParams]
		}
		entries = append(entries, e)
	}
	return entries
}

// CountLabel is the history header count, "1 extraction" or "N extractions".
func CountLabel(n int) string {
	if n == 1 {
		return "1 extraction"
	}
	return fmt.Sprintf("%d extractions", n)
}
