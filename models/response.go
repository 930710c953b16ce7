package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ResponseStatus is the discriminator of a NormalizedAgentResponse.
type ResponseStatus string

const (
	StatusSuccess ResponseStatus = "success"
	StatusError   ResponseStatus = "error"
)

// DefaultErrorMessage is shown when an error response carries no message.
const DefaultErrorMessage = "An error occurred during extraction"

// NormalizedAgentResponse is the envelope every agent reply is reduced to.
// Result is kept verbatim; its shape depends on Status.
type NormalizedAgentResponse struct {
	Status  ResponseStatus  `json:"status"`
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message,omitempty"`
}

// AgentResult is the success payload of an extraction.
type AgentResult struct {
	URLsProcessed   []string        `json:"urls_processed" yaml:"urls_processed"`
	ExtractedData   []ExtractedData `json:"extracted_data" yaml:"extracted_data"`
	StructuredTable []Record        `json:"structured_table,omitempty" yaml:"structured_table,omitempty"`
	Summary         string          `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// ExtractedData holds the fields extracted from a single URL.
type ExtractedData struct {
	URL             string `json:"url" yaml:"url"`
	Title           string `json:"title" yaml:"title"`
	ExtractedFields Record `json:"extracted_fields" yaml:"extracted_fields"`
}

// NewSuccessResponse wraps a result in a success envelope.
func NewSuccessResponse(result *AgentResult) (NormalizedAgentResponse, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return NormalizedAgentResponse{}, fmt.Errorf("failed to encode agent result: %w", err)
	}
	return NormalizedAgentResponse{Status: StatusSuccess, Result: raw}, nil
}

// NewErrorResponse builds an error envelope with an empty result.
func NewErrorResponse(message string) NormalizedAgentResponse {
	return NormalizedAgentResponse{
		Status:  StatusError,
		Result:  json.RawMessage("{}"),
		Message: message,
	}
}

// IsSuccess reports whether the response carries a success payload.
func (r NormalizedAgentResponse) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// ErrorMessage returns the message of an error response, or the default text.
func (r NormalizedAgentResponse) ErrorMessage() string {
	if r.Message == "" {
		return DefaultErrorMessage
	}
	return r.Message
}

// AgentResult decodes the success payload. Missing or null results decode to
// an empty AgentResult.
func (r NormalizedAgentResponse) AgentResult() (*AgentResult, error) {
	result := &AgentResult{}
	trimmed := bytes.TrimSpace(r.Result)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return result, nil
	}
	if err := json.Unmarshal(trimmed, result); err != nil {
		return nil, fmt.Errorf("failed to decode agent result: %w", err)
	}
	return result, nil
}

// MarshalYAML prints the decoded result instead of raw bytes.
func (r NormalizedAgentResponse) MarshalYAML() (interface{}, error) {
	out := struct {
		Status  ResponseStatus `yaml:"status"`
		Result  interface{}    `yaml:"result,omitempty"`
		Message string         `yaml:"message,omitempty"`
	}{Status: r.Status, Message: r.Message}

	if r.IsSuccess() {
		if result, err := r.AgentResult(); err == nil {
			out.Result = result
			return out, nil
		}
	}
	if len(r.Result) > 0 {
		var generic interface{}
		if err := json.Unmarshal(r.Result, &generic); err == nil {
			out.Result = generic
		}
	}
	return out, nil
}
