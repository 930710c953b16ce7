package history

import (
	"testing"
	"time"

	"github.com/dtnitsch/web-content-extractor/models"
)

func TestListEntries(t *testing.T) {
	req := models.ExtractionRequest{
		URL:        "https://acme.example",
		Parameters: []string{"Pricing"},
		Format:     models.FormatKeyValue,
	}
	at := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	items := []models.HistoryItem{
		models.NewHistoryItem(req, models.NewErrorResponse("Rate limited"), at),
	}

	got := listEntries(items)

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	e := got[0]
	if e.ID != items[0].ID || e.URL != req.URL || e.Format != models.FormatKeyValue {
		t.Errorf("entry = %+v", e)
	}
	if e.Status != models.StatusError {
		t.Errorf("Status = %q, want error", e.Status)
	}
	if e.Timestamp != "2026-01-15T10:00:00.000Z" {
		t.Errorf("Timestamp = %q", e.Timestamp)
	}
}
