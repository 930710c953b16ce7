package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/dtnitsch/web-content-extractor/pkg/analytics"
	"github.com/dtnitsch/web-content-extractor/pkg/caching"
	"github.com/dtnitsch/web-content-extractor/pkg/detector"
	"github.com/dtnitsch/web-content-extractor/pkg/fetcher"
	"github.com/dtnitsch/web-content-extractor/pkg/parser"
	"github.com/pemistahl/lingua-go"
)

var errNoExtraction = errors.New("local agent needs a structured extraction request")

const keywordCount = 8

// LocalTransport answers requests without a remote agent: it fetches the
// page, distils it and picks out the sections named by the parameters.
type LocalTransport struct {
	fetcher  *fetcher.Fetcher
	cache    *caching.Cache
	parser   *parser.Parser
	langs    lingua.LanguageDetector
	maxChars int
	logger   *slog.Logger
}

func NewLocalTransport(cfg models.LocalConfig, logger *slog.Logger) (*LocalTransport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var cache *caching.Cache
	if cfg.CacheDir != "" {
		c, err := caching.NewCache(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		cache = c
	}
	return &LocalTransport{
		fetcher: fetcher.NewFetcher(cfg.UserAgent),
		cache:   cache,
		parser:  &parser.Parser{},
		langs: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.French, lingua.German, lingua.Spanish,
				lingua.Italian, lingua.Portuguese, lingua.Dutch).
			Build(),
		maxChars: cfg.MaxChars,
		logger:   logger,
	}, nil
}

func (t *LocalTransport) Send(ctx context.Context, req Request) ([]byte, error) {
	if req.Extraction == nil {
		return nil, errNoExtraction
	}
	target := req.Extraction.URL

	html, err := t.html(ctx, target)
	if err != nil {
		return nil, err
	}
	page, err := t.parser.ParseToStructured(target, string(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", target, err)
	}

	resp, err := models.NewSuccessResponse(t.extract(page, req.Extraction.Parameters))
	if err != nil {
		return nil, err
	}
	return json.Marshal(resp)
}

func (t *LocalTransport) html(ctx context.Context, url string) ([]byte, error) {
	if data, ok := t.cache.Get(url); ok {
		t.logger.Debug("page cache hit", "url", url)
		return data, nil
	}
	data, err := t.fetcher.GetHtmlBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := t.cache.Set(url, data); err != nil {
		t.logger.Warn("failed to cache page", "url", url, "error", err)
	}
	return data, nil
}

// extract builds the agent result for page: one field per parameter that
// matches a section heading, page keywords, language and site classification, the first table
// with headers, and the readability excerpt as summary.
func (t *LocalTransport) extract(page *models.Page, params []string) *models.AgentResult {
	sections := page.Sections()
	text := page.ToPlainText()

	fields := models.Record{}
	for _, param := range params {
		var parts []string
		for _, s := range sections {
			if s.Text != "" && headingMatches(s.Heading, param) {
				parts = append(parts, s.Text)
			}
		}
		if len(parts) > 0 {
			fields = fields.Set(param, t.clip(strings.Join(parts, " ")))
		}
	}
	if keywords := analytics.Keywords(text, keywordCount); len(keywords) > 0 {
		fields = fields.Set("keywords", strings.Join(keywords, ", "))
	}
	if lang, ok := t.langs.DetectLanguageOf(text); ok {
		fields = fields.Set("language", lang.String())
	}
	site := detector.Classify(page.URL)
	fields = fields.Set("site_type", site.DomainType).Set("category", site.Category)

	summary := page.Excerpt
	if summary == "" && len(sections) > 0 {
		summary = sections[0].Text
	}

	return &models.AgentResult{
		URLsProcessed: []string{page.URL},
		ExtractedData: []models.ExtractedData{{
			URL:             page.URL,
			Title:           page.Title,
			ExtractedFields: fields,
		}},
		StructuredTable: tableRecords(page.Tables()),
		Summary:         t.clip(summary),
	}
}

func (t *LocalTransport) clip(s string) string {
	if t.maxChars <= 0 || len([]rune(s)) <= t.maxChars {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:t.maxChars])) + "..."
}

// headingMatches compares case-insensitively and ignores a plural "s", so
// "FAQs" matches "FAQ" and "Pricing" matches "Pricing plans".
func headingMatches(heading, param string) bool {
	h := strings.ToLower(heading)
	p := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(param)), "s")
	return p != "" && strings.Contains(h, p)
}

// tableRecords converts the first table that has headers into records.
func tableRecords(tables []*models.Table) []models.Record {
	for _, table := range tables {
		if len(table.Headers) == 0 || len(table.Rows) == 0 {
			continue
		}
		records := make([]models.Record, 0, len(table.Rows))
		for _, row := range table.Rows {
			rec := models.Record{}
			for i, header := range table.Headers {
				if header == "" {
					header = fmt.Sprintf("Column %d", i+1)
				}
				value := ""
				if i < len(row) {
					value = row[i]
				}
				rec = rec.Set(header, value)
			}
			records = append(records, rec)
		}
		return records
	}
	return nil
}
