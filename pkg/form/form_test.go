package form

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/dtnitsch/web-content-extractor/models"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	if s.Format != models.FormatTable {
		t.Errorf("Format = %q, want table", s.Format)
	}
	if s.CanSubmit() {
		t.Error("CanSubmit() = true for an empty form")
	}
}

func TestToggle(t *testing.T) {
	s := New().Toggle("Pricing").Toggle("Features")
	if !slices.Equal(s.Selected, []string{"Pricing", "Features"}) {
		t.Fatalf("Selected = %v, want [Pricing Features]", s.Selected)
	}

	s = s.Toggle("Pricing")
	if !slices.Equal(s.Selected, []string{"Features"}) {
		t.Errorf("Selected after second toggle = %v, want [Features]", s.Selected)
	}
}

func TestToggle_DoesNotMutateReceiver(t *testing.T) {
	before := New().Toggle("Pricing").Toggle("Features")
	_ = before.Toggle("Pricing")
	_ = before.Toggle("FAQs")

	if !slices.Equal(before.Selected, []string{"Pricing", "Features"}) {
		t.Errorf("receiver changed to %v", before.Selected)
	}
}

// Any toggle sequence leaves exactly the labels toggled an odd number of
// times, without duplicates.
func TestToggle_NetEffect(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	labels := models.PredefinedParameters

	for run := 0; run < 200; run++ {
		s := New()
		counts := map[string]int{}
		for i := 0; i < rng.Intn(30); i++ {
			label := labels[rng.Intn(len(labels))]
			counts[label]++
			s = s.Toggle(label)
		}

		seen := map[string]bool{}
		for _, p := range s.Selected {
			if seen[p] {
				t.Fatalf("run %d: duplicate %q in %v", run, p, s.Selected)
			}
			seen[p] = true
		}
		for _, label := range labels {
			want := counts[label]%2 == 1
			if s.IsSelected(label) != want {
				t.Fatalf("run %d: IsSelected(%q) = %v, want %v (toggled %d times)",
					run, label, s.IsSelected(label), want, counts[label])
			}
		}
	}
}

func TestToggle_IgnoredWhileBusy(t *testing.T) {
	s := New().SetBusy(true).Toggle("Pricing")
	if len(s.Selected) != 0 {
		t.Errorf("Selected = %v, want none while busy", s.Selected)
	}
}

func TestSetSelected(t *testing.T) {
	s := New().Toggle("FAQs").SetSelected([]string{"Pricing", "", "Team size", "Pricing"})
	if !slices.Equal(s.Selected, []string{"Pricing", "Team size"}) {
		t.Errorf("Selected = %v, want [Pricing Team size]", s.Selected)
	}

	busy := s.SetBusy(true).SetSelected(nil)
	if len(busy.Selected) != 2 {
		t.Errorf("Selected = %v, want unchanged while busy", busy.Selected)
	}
}

func TestAddCustom(t *testing.T) {
	tests := []struct {
		name        string
		start       []string
		pending     string
		wantSel     []string
		wantPending string
	}{
		{
			name:        "appends trimmed value",
			start:       []string{"Pricing"},
			pending:     "  Support hours ",
			wantSel:     []string{"Pricing", "Support hours"},
			wantPending: "",
		},
		{
			name:        "duplicate after trim clears input only",
			start:       []string{"Pricing"},
			pending:     " Pricing ",
			wantSel:     []string{"Pricing"},
			wantPending: "",
		},
		{
			name:        "blank input is ignored",
			start:       []string{"Pricing"},
			pending:     "   ",
			wantSel:     []string{"Pricing"},
			wantPending: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for _, p := range tt.start {
				s = s.Toggle(p)
			}
			s = s.SetPending(tt.pending).AddCustom()

			if !slices.Equal(s.Selected, tt.wantSel) {
				t.Errorf("Selected = %v, want %v", s.Selected, tt.wantSel)
			}
			if s.Pending != tt.wantPending {
				t.Errorf("Pending = %q, want %q", s.Pending, tt.wantPending)
			}
		})
	}
}

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name string
		s    State
		want bool
	}{
		{name: "empty", s: New(), want: false},
		{name: "url only", s: New().SetURL("https://example.com"), want: false},
		{name: "params only", s: New().Toggle("Pricing"), want: false},
		{name: "blank url", s: New().SetURL("   ").Toggle("Pricing"), want: false},
		{name: "ready", s: New().SetURL("https://example.com").Toggle("Pricing"), want: true},
		{name: "busy", s: New().SetURL("https://example.com").Toggle("Pricing").SetBusy(true), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.CanSubmit(); got != tt.want {
				t.Errorf("CanSubmit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequest(t *testing.T) {
	if _, err := New().Request(); !errors.Is(err, ErrCannotSubmit) {
		t.Errorf("Request() on empty form error = %v, want ErrCannotSubmit", err)
	}

	s, err := New().SetURL(" https://example.com ").Toggle("Pricing").SetFormat("Key-Value")
	if err != nil {
		t.Fatalf("SetFormat() error = %v", err)
	}
	req, err := s.SetInstructions("Only the enterprise tier").Request()
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if req.URL != "https://example.com" || req.Format != models.FormatKeyValue || req.Instructions != "Only the enterprise tier" {
		t.Errorf("Request() = %+v", req)
	}
}

func TestSetFormat_Unknown(t *testing.T) {
	s := New()
	got, err := s.SetFormat("xml")
	if err == nil {
		t.Fatal("SetFormat(xml) error = nil, want error")
	}
	if got.Format != models.FormatTable {
		t.Errorf("Format = %q after rejected value, want table", got.Format)
	}
}

func TestChipsAndCustom(t *testing.T) {
	s := New().Toggle("FAQs").SetPending("Team size").AddCustom().Toggle("Definitions")

	chips := s.Chips()
	if len(chips) != len(models.PredefinedParameters) {
		t.Fatalf("len(Chips()) = %d", len(chips))
	}
	for i, c := range chips {
		if c.Label != models.PredefinedParameters[i] {
			t.Errorf("Chips()[%d] = %q, want %q", i, c.Label, models.PredefinedParameters[i])
		}
		want := c.Label == "FAQs" || c.Label == "Definitions"
		if c.Selected != want {
			t.Errorf("chip %q Selected = %v, want %v", c.Label, c.Selected, want)
		}
	}
	if !slices.Equal(s.Custom(), []string{"Team size"}) {
		t.Errorf("Custom() = %v, want [Team size]", s.Custom())
	}
}

func TestFromRequest(t *testing.T) {
	s := FromRequest(models.ExtractionRequest{
		URL:        "https://example.com",
		Parameters: []string{"Pricing", "Pricing", "Features"},
		Format:     models.FormatBullet,
	})
	if !slices.Equal(s.Selected, []string{"Pricing", "Features"}) {
		t.Errorf("Selected = %v, want deduplicated [Pricing Features]", s.Selected)
	}
	if s.Format != models.FormatBullet || s.URL != "https://example.com" {
		t.Errorf("FromRequest() = %+v", s)
	}
}

func TestMessage(t *testing.T) {
	req := models.ExtractionRequest{
		URL:          "https://example.com/pricing",
		Parameters:   []string{"Pricing", "Features"},
		Format:       models.FormatTable,
		Instructions: "Include currency",
	}
	want := "Extract content from URL: https://example.com/pricing\n\n" +
		"Parameters to extract: Pricing, Features\n" +
		"Output format: table\n" +
		"Additional instructions: Include currency\n\n" +
		"Please return the extracted data in a structured format."
	if got := Message(req); got != want {
		t.Errorf("Message() =\n%s\nwant\n%s", got, want)
	}

	req.Instructions = ""
	want = "Extract content from URL: https://example.com/pricing\n\n" +
		"Parameters to extract: Pricing, Features\n" +
		"Output format: table\n\n\n" +
		"Please return the extracted data in a structured format."
	if got := Message(req); got != want {
		t.Errorf("Message() without instructions =\n%q\nwant\n%q", got, want)
	}
}
