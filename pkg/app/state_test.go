package app

import (
	"encoding/json"
	"testing"

	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/dtnitsch/web-content-extractor/pkg/render"
	"github.com/dtnitsch/web-content-extractor/pkg/theme"
)

func TestState_Transitions(t *testing.T) {
	item := models.HistoryItem{
		ID:         "42",
		URL:        "https://acme.example",
		Parameters: []string{"Pricing"},
		Format:     models.FormatKeyValue,
		Response:   models.NormalizedAgentResponse{Status: models.StatusSuccess, Result: json.RawMessage(`{"summary":"s"}`)},
	}
	s := Initial(theme.Light, []models.HistoryItem{item})

	selected := s.Selected(item)
	if selected.SelectedID != "42" || selected.Form.Format != models.FormatKeyValue {
		t.Errorf("Selected() = %+v", selected)
	}
	if s.SelectedID != "" || s.Response != nil {
		t.Error("Selected() changed its receiver")
	}

	submitting := selected.Submitting()
	if submitting.SelectedID != "" || submitting.Response != nil || !submitting.Busy() {
		t.Errorf("Submitting() = %+v", submitting)
	}
	if submitting.View().Kind != render.KindBusy {
		t.Errorf("view = %v, want busy", submitting.View().Kind)
	}

	done := submitting.Completed(models.NewErrorResponse("timeout"), nil)
	if done.Busy() || len(done.History) != 1 {
		t.Errorf("Completed() = %+v", done)
	}
	if v := done.View(); v.Kind != render.KindError || v.ErrorMessage != "timeout" {
		t.Errorf("view = %+v", v)
	}

	cleared := done.HistoryCleared()
	if len(cleared.History) != 0 || len(done.History) != 1 {
		t.Error("HistoryCleared() did not behave as a pure update")
	}
	if cleared.ThemeChanged(theme.Dark).Theme != theme.Dark {
		t.Error("ThemeChanged() did not set the theme")
	}
}
