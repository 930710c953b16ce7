package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/dtnitsch/web-content-extractor/pkg/theme"
)

const panelWidth = 88

// Styles is the terminal palette for one theme.
type Styles struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Key      lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Panel    lipgloss.Style
	ErrPanel lipgloss.Style
	Selected lipgloss.Style
	Chip     lipgloss.Style
}

// NewStyles returns the palette for t.
func NewStyles(t theme.Theme) Styles {
	fg, muted, accent := lipgloss.Color("#0F172A"), lipgloss.Color("#64748B"), lipgloss.Color("#2563EB")
	if t == theme.Dark {
		fg, muted, accent = lipgloss.Color("#F8FAFC"), lipgloss.Color("#94A3B8"), lipgloss.Color("#60A5FA")
	}
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(fg),
		Muted: lipgloss.NewStyle().Foreground(muted),
		Key:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444")),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Width(panelWidth),
		ErrPanel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#EF4444")).
			Padding(0, 1).
			Width(panelWidth),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Chip:     lipgloss.NewStyle().Foreground(accent),
	}
}

// Terminal renders a view as styled panels.
func Terminal(v View, s Styles) string {
	switch v.Kind {
	case KindBusy:
		return s.Panel.Render(s.Title.Render("Processing...") + "\n" +
			s.Muted.Render("Extracting content from the URL"))
	case KindEmpty:
		return s.Panel.Render(s.Muted.Render("Results will appear here after extraction"))
	case KindError:
		return s.ErrPanel.Render(s.Error.Render("Extraction Failed") + "\n" + v.ErrorMessage)
	}

	var panels []string
	header := s.Success.Render("Extraction Complete") + "\n" +
		s.Muted.Render(fmt.Sprintf("Processed %d URL(s)", v.URLCount()))
	panels = append(panels, s.Panel.Render(header))

	if v.Summary != "" {
		panels = append(panels, s.Panel.Render(s.Title.Render("Summary")+"\n"+v.Summary))
	}

	if len(v.Entries) > 0 {
		var b strings.Builder
		b.WriteString(s.Title.Render("Extracted Data"))
		for _, e := range v.Entries {
			b.WriteString("\n\n" + s.Title.Render(e.Title) + "\n" + s.Muted.Render(e.URL))
			for _, f := range e.Fields {
				b.WriteString("\n" + s.Key.Render(f.Key) + "\n" + f.Value)
			}
		}
		panels = append(panels, s.Panel.Render(b.String()))
	}

	if v.Table != nil {
		panels = append(panels, s.Panel.Render(s.Title.Render("Structured Data")+"\n"+tableText(v.Table, s)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func tableText(t *Table, s Styles) string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, c := range row {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	line := func(cells []string, style *lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			cell := c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
			if style != nil {
				cell = style.Render(cell)
			}
			parts[i] = cell
		}
		return strings.Join(parts, " | ")
	}

	lines := []string{line(t.Headers, &s.Key)}
	for _, row := range t.Rows {
		lines = append(lines, line(row, nil))
	}
	return strings.Join(lines, "\n")
}

// HistoryList renders the history sidebar.
func HistoryList(items []models.HistoryItem, selectedID string, s Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("History") + "  " + s.Muted.Render(CountLabel(len(items))))
	if len(items) == 0 {
		b.WriteString("\n" + s.Muted.Render("No extraction history yet"))
		return b.String()
	}

	for _, e := range Sidebar(items, selectedID, nil) {
		marker := "  "
		host := e.Host
		if e.Selected {
			marker = "> "
			host = s.Selected.Render(host)
		}
		if e.Failed {
			host += " " + s.Error.Render("(failed)")
		}
		params := make([]string, len(e.Params))
		for i, p := range e.Params {
			params[i] = s.Chip.Render(p)
		}
		if e.More > 0 {
			params = append(params, s.Chip.Render(fmt.Sprintf("+%d", e.More)))
		}
		fmt.Fprintf(&b, "\n%s%s %s\n    %s at %s  %s",
			marker, s.Muted.Render(e.ID), host, e.Date, e.Time, strings.Join(params, " "))
	}
	return b.String()
}
