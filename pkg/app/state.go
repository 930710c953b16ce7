// Package app holds the single application state and the controller that
// applies events to it. The terminal and web front ends both drive a
// Controller.
package app

import (
	"slices"

	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/dtnitsch/web-content-extractor/pkg/form"
	"github.com/dtnitsch/web-content-extractor/pkg/render"
	"github.com/dtnitsch/web-content-extractor/pkg/theme"
)

// State is what the page shows at one moment.
type State struct {
	Theme      theme.Theme
	Form       form.State
	Response   *models.NormalizedAgentResponse
	History    []models.HistoryItem
	SelectedID string
}

// Initial is the state at startup.
func Initial(t theme.Theme, history []models.HistoryItem) State {
	return State{Theme: t, Form: form.New(), History: history}
}

// Submitting marks a request in flight: the form locks, the previous result
// and the history selection are cleared.
func (s State) Submitting() State {
	s.Form = s.Form.SetBusy(true)
	s.Response = nil
	s.SelectedID = ""
	return s
}

// Completed stores the response of the request in flight. history replaces
// the list when the completion added an item; nil keeps the current one.
func (s State) Completed(resp models.NormalizedAgentResponse, history []models.HistoryItem) State {
	s.Form = s.Form.SetBusy(false)
	s.Response = &resp
	if history != nil {
		s.History = history
	}
	return s
}

// Selected replays a history item into the form and the results panel.
func (s State) Selected(item models.HistoryItem) State {
	f := s.Form
	f.URL = item.URL
	f.Selected = slices.Clone(item.Parameters)
	if item.Format != "" {
		f.Format = item.Format
	}
	s.Form = f

	resp := item.Response
	s.Response = &resp
	s.SelectedID = item.ID
	return s
}

func (s State) HistoryCleared() State {
	s.History = nil
	s.SelectedID = ""
	return s
}

func (s State) ThemeChanged(t theme.Theme) State {
	s.Theme = t
	return s
}

// View renders the results panel for this state.
func (s State) View() render.View {
	return render.Render(s.Response, s.Form.Busy)
}

// Busy reports whether a request is in flight.
func (s State) Busy() bool {
	return s.Form.Busy
}
