package models

import (
	"net/url"
	"strconv"
	"time"
)

// TimestampLayout matches the ISO-8601 form browsers produce (UTC, milliseconds).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// HistoryItem is one completed extraction.
type HistoryItem struct {
	ID         string                  `json:"id" yaml:"id"`
	Timestamp  string                  `json:"timestamp" yaml:"timestamp"`
	URL        string                  `json:"url" yaml:"url"`
	Parameters []string                `json:"parameters" yaml:"parameters"`
	Format     OutputFormat            `json:"format" yaml:"format"`
	Response   NormalizedAgentResponse `json:"response" yaml:"response"`
}

// NewHistoryItem stamps a request and its response with the creation time.
func NewHistoryItem(req ExtractionRequest, resp NormalizedAgentResponse, now time.Time) HistoryItem {
	params := make([]string, len(req.Parameters))
	copy(params, req.Parameters)
	return HistoryItem{
		ID:         strconv.FormatInt(now.UnixMilli(), 10),
		Timestamp:  now.UTC().Format(TimestampLayout),
		URL:        req.URL,
		Parameters: params,
		Format:     req.Format,
		Response:   resp,
	}
}

// Request rebuilds the form values the item was created from.
func (h HistoryItem) Request() ExtractionRequest {
	params := make([]string, len(h.Parameters))
	copy(params, h.Parameters)
	return ExtractionRequest{URL: h.URL, Parameters: params, Format: h.Format}
}

// Time parses the stored timestamp; the zero time is returned when it is malformed.
func (h HistoryItem) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, h.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Hostname returns the host of the item's URL, or the raw URL when it does not parse.
func (h HistoryItem) Hostname() string {
	u, err := url.Parse(h.URL)
	if err != nil || u.Hostname() == "" {
		return h.URL
	}
	return u.Hostname()
}
