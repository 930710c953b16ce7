package models

import "strings"

// Page is the distilled content of a fetched web page, used by the local agent.
type Page struct {
	URL      string         `json:"url"`
	Title    string         `json:"title"`
	Excerpt  string         `json:"excerpt,omitempty"`
	SiteName string         `json:"site_name,omitempty"`
	Content  []ContentBlock `json:"content"`
}

type Table struct {
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows"`
}

// ContentBlock is a semantic block of text on a page.
type ContentBlock struct {
	Type  string `json:"type"` // h1..h4, p, li, table
	Text  string `json:"text,omitempty"`
	Table *Table `json:"table,omitempty"`
}

// IsHeading reports whether the block opens a section.
func (b ContentBlock) IsHeading() bool {
	switch b.Type {
	case "h1", "h2", "h3", "h4":
		return true
	}
	return false
}

// Section is a heading and the text that follows it up to the next heading.
type Section struct {
	Heading string
	Text    string
}

// Sections groups text blocks under their nearest preceding heading. Text
// before the first heading is returned with an empty heading.
func (p *Page) Sections() []Section {
	var sections []Section
	var current *Section
	var body []string

	flush := func() {
		if current == nil && len(body) == 0 {
			return
		}
		s := Section{Text: strings.Join(body, " ")}
		if current != nil {
			s.Heading = current.Heading
		}
		sections = append(sections, s)
		body = nil
	}

	for _, block := range p.Content {
		switch {
		case block.IsHeading():
			flush()
			current = &Section{Heading: block.Text}
		case block.Type == "table":
		default:
			if block.Text != "" {
				body = append(body, block.Text)
			}
		}
	}
	flush()
	return sections
}

// Tables returns all tables on the page in document order.
func (p *Page) Tables() []*Table {
	var tables []*Table
	for _, block := range p.Content {
		if block.Type == "table" && block.Table != nil {
			tables = append(tables, block.Table)
		}
	}
	return tables
}

// ToPlainText concatenates readable text from all content blocks.
func (p *Page) ToPlainText() string {
	var sb strings.Builder

	for _, block := range p.Content {
		switch block.Type {
		case "table":
			if block.Table == nil {
				continue
			}
			for _, row := range block.Table.Rows {
				sb.WriteString(strings.Join(row, " "))
				sb.WriteString("\n")
			}
		default:
			sb.WriteString(block.Text)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
