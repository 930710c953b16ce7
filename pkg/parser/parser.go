// Package parser distils fetched HTML into a models.Page: readability finds
// the main content, goquery walks it block by block.
package parser

import (
	"bufio"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/go-shiori/go-readability"
)

type Parser struct{}

// ParseToStructured extracts the main article from html and returns its
// headings, paragraphs, list items and tables in document order.
func (p *Parser) ParseToStructured(rawURL, html string) (*models.Page, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract article: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article HTML: %w", err)
	}

	var content []models.ContentBlock
	doc.Find("h1,h2,h3,h4,p,li,table").Each(func(i int, s *goquery.Selection) {
		tag := goquery.NodeName(s)

		if tag == "table" {
			if table := extractTable(s); table != nil {
				content = append(content, models.ContentBlock{Type: "table", Table: table})
			}
			return
		}
		// Cells are already captured by their table.
		if s.ParentsFiltered("table").Length() > 0 {
			return
		}
		if text := normalizeText(s.Text()); text != "" {
			content = append(content, models.ContentBlock{Type: tag, Text: text})
		}
	})

	return &models.Page{
		URL:      rawURL,
		Title:    normalizeText(article.Title),
		Excerpt:  normalizeText(article.Excerpt),
		SiteName: normalizeText(article.SiteName),
		Content:  content,
	}, nil
}

// normalizeText joins the non-blank lines of input with single spaces.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.Join(strings.Fields(scanner.Text()), " ")
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

func extractTable(s *goquery.Selection) *models.Table {
	var headers []string
	var rows [][]string

	s.Find("thead tr th").Each(func(i int, th *goquery.Selection) {
		headers = append(headers, normalizeText(th.Text()))
	})

	skipFirst := false
	if len(headers) == 0 {
		first := s.Find("tr").First()
		if first.Find("th").Length() > 0 {
			first.Find("th,td").Each(func(i int, cell *goquery.Selection) {
				headers = append(headers, normalizeText(cell.Text()))
			})
			skipFirst = true
		}
	}

	s.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 && skipFirst {
			return
		}
		if tr.ParentsFiltered("thead").Length() > 0 {
			return
		}
		var row []string
		tr.Find("td,th").Each(func(j int, td *goquery.Selection) {
			row = append(row, normalizeText(td.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})

	if len(headers) == 0 && len(rows) == 0 {
		return nil
	}
	return &models.Table{Headers: headers, Rows: rows}
}
