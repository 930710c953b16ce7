// Package form holds the extraction form state. Every operation returns a new
// State and leaves its receiver untouched, so event handling stays testable
// without any UI around it.
package form

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dtnitsch/web-content-extractor/models"
)

var ErrCannotSubmit = errors.New("a URL and at least one parameter are required")

// State is the form as the user currently sees it.
type State struct {
	URL          string
	Selected     []string
	Pending      string
	Format       models.OutputFormat
	Instructions string
	Busy         bool
}

// New returns an empty form with the default format.
func New() State {
	return State{Format: models.DefaultFormat}
}

// FromRequest fills a form from a past request.
func FromRequest(req models.ExtractionRequest) State {
	s := New()
	s.URL = req.URL
	s.Selected = dedupe(req.Parameters)
	if req.Format != "" {
		s.Format = req.Format
	}
	s.Instructions = req.Instructions
	return s
}

// IsSelected reports whether label is in the selected set.
func (s State) IsSelected(label string) bool {
	return slices.Contains(s.Selected, label)
}

// Toggle adds label at the end of the selection or removes it.
func (s State) Toggle(label string) State {
	if s.Busy || label == "" {
		return s
	}
	if s.IsSelected(label) {
		s.Selected = slices.DeleteFunc(slices.Clone(s.Selected), func(p string) bool { return p == label })
		return s
	}
	s.Selected = append(slices.Clone(s.Selected), label)
	return s
}

// SetSelected replaces the whole selection, dropping duplicates.
func (s State) SetSelected(labels []string) State {
	if s.Busy {
		return s
	}
	s.Selected = dedupe(labels)
	return s
}

// SetPending replaces the custom-parameter input text.
func (s State) SetPending(text string) State {
	if s.Busy {
		return s
	}
	s.Pending = text
	return s
}

// AddCustom appends the trimmed pending text as a parameter. Empty input is
// ignored; a value that is already selected leaves the set as is but still
// clears the input.
func (s State) AddCustom() State {
	if s.Busy {
		return s
	}
	label := strings.TrimSpace(s.Pending)
	if label == "" {
		return s
	}
	if !s.IsSelected(label) {
		s.Selected = append(slices.Clone(s.Selected), label)
	}
	s.Pending = ""
	return s
}

func (s State) SetURL(url string) State {
	if s.Busy {
		return s
	}
	s.URL = url
	return s
}

func (s State) SetInstructions(text string) State {
	if s.Busy {
		return s
	}
	s.Instructions = text
	return s
}

// SetFormat accepts a format value or label.
func (s State) SetFormat(value string) (State, error) {
	if s.Busy {
		return s, nil
	}
	f, err := models.ParseOutputFormat(value)
	if err != nil {
		return s, err
	}
	s.Format = f
	return s, nil
}

// SetBusy marks the form as waiting on the agent.
func (s State) SetBusy(busy bool) State {
	s.Busy = busy
	return s
}

// CanSubmit reports whether the extract action is enabled.
func (s State) CanSubmit() bool {
	return !s.Busy && strings.TrimSpace(s.URL) != "" && len(s.Selected) > 0
}

// Request returns the extraction the form describes.
func (s State) Request() (models.ExtractionRequest, error) {
	if !s.CanSubmit() {
		return models.ExtractionRequest{}, ErrCannotSubmit
	}
	return models.ExtractionRequest{
		URL:          strings.TrimSpace(s.URL),
		Parameters:   slices.Clone(s.Selected),
		Format:       s.Format,
		Instructions: strings.TrimSpace(s.Instructions),
	}, nil
}

// Chips lists the predefined parameters in display order with their selection state.
func (s State) Chips() []Chip {
	chips := make([]Chip, len(models.PredefinedParameters))
	for i, label := range models.PredefinedParameters {
		chips[i] = Chip{Label: label, Selected: s.IsSelected(label)}
	}
	return chips
}

// Custom lists the selected parameters that are not predefined chips.
func (s State) Custom() []string {
	var out []string
	for _, p := range s.Selected {
		if !slices.Contains(models.PredefinedParameters, p) {
			out = append(out, p)
		}
	}
	return out
}

// Chip is a predefined parameter as displayed by the form.
type Chip struct {
	Label    string
	Selected bool
}

// Message composes the instruction sent to the agent.
func Message(req models.ExtractionRequest) string {
	instructions := ""
	if req.Instructions != "" {
		instructions = "Additional instructions: " + req.Instructions
	}
	return fmt.Sprintf(`Extract content from URL: %s

Parameters to extract: %s
Output format: %s
%s

Please return the extracted data in a structured format.`,
		req.URL, strings.Join(req.Parameters, ", "), req.Format, instructions)
}

func dedupe(in []string) []string {
	var out []string
	for _, p := range in {
		if p != "" && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}
