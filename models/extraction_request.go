package models

import (
	"fmt"
	"strings"
)

// OutputFormat is the presentation the agent is asked to produce.
type OutputFormat string

const (
	FormatTable    OutputFormat = "table"
	FormatBullet   OutputFormat = "bullet"
	FormatKeyValue OutputFormat = "keyvalue"
)

// DefaultFormat is preselected in a new form.
const DefaultFormat = FormatTable

// FormatOption pairs a format with its display label.
type FormatOption struct {
	Value OutputFormat
	Label string
}

// FormatOptions lists the supported formats in display order.
var FormatOptions = []FormatOption{
	{Value: FormatTable, Label: "Table"},
	{Value: FormatBullet, Label: "Bullet List"},
	{Value: FormatKeyValue, Label: "Key-Value"},
}

// PredefinedParameters are the parameter chips offered by the form, in order.
var PredefinedParameters = []string{
	"Definitions",
	"Features",
	"Pricing",
	"Categories",
	"Specifications",
	"FAQs",
}

// ParseOutputFormat accepts a format value or its label, case-insensitively.
func ParseOutputFormat(s string) (OutputFormat, error) {
	s = strings.TrimSpace(s)
	for _, opt := range FormatOptions {
		if strings.EqualFold(s, string(opt.Value)) || strings.EqualFold(s, opt.Label) {
			return opt.Value, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want table, bullet or keyvalue)", s)
}

// Label returns the display label of the format.
func (f OutputFormat) Label() string {
	for _, opt := range FormatOptions {
		if opt.Value == f {
			return opt.Label
		}
	}
	return string(f)
}

// ExtractionRequest is what a submitted form asks the agent for.
type ExtractionRequest struct {
	URL          string       `json:"url" yaml:"url"`
	Parameters   []string     `json:"parameters" yaml:"parameters"`
	Format       OutputFormat `json:"format" yaml:"format"`
	Instructions string       `json:"instructions,omitempty" yaml:"instructions,omitempty"`
}
