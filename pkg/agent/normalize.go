package agent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var ErrEmptyReply = errors.New("agent returned an empty reply")

// maxUnwrap bounds how many nested "response" wrappers are followed.
const maxUnwrap = 3

// Normalize reduces a raw agent reply to the response envelope.
//
// Accepted shapes, after trimming whitespace and Markdown code fences:
//   - {"status": "success"|"error", "result": ..., "message": ...}
//   - {"response": <reply>} where reply is a string or object, normalized again
//   - {"error": "text"}, reported as an error
//   - any other object, taken as the success result itself
//   - plain text, taken as a success whose result is {"summary": text}
//
// Text that starts like JSON but does not parse, and JSON that is not an
// object, are errors.
func Normalize(raw []byte) (models.NormalizedAgentResponse, error) {
	return normalize(string(raw), 0)
}

func normalize(text string, depth int) (models.NormalizedAgentResponse, error) {
	text = stripFences(strings.TrimSpace(text))
	if text == "" {
		return models.NormalizedAgentResponse{}, ErrEmptyReply
	}
	if text[0] != '{' && text[0] != '[' {
		return summaryResponse(text)
	}
	if !gjson.Valid(text) {
		return models.NormalizedAgentResponse{}, fmt.Errorf("reply is not valid JSON")
	}

	doc := gjson.Parse(text)
	if !doc.IsObject() {
		return models.NormalizedAgentResponse{}, fmt.Errorf("reply is a JSON %s, want an object", kind(doc))
	}

	if status := doc.Get("status"); status.Exists() {
		return envelope(doc, status)
	}
	if inner := doc.Get("response"); inner.Exists() && depth < maxUnwrap {
		switch {
		case inner.Type == gjson.String:
			return normalize(inner.Str, depth+1)
		case inner.IsObject():
			return normalize(inner.Raw, depth+1)
		}
	}
	if msg := doc.Get("error"); msg.Type == gjson.String {
		return models.NewErrorResponse(msg.Str), nil
	}

	result, err := compact(doc.Raw)
	if err != nil {
		return models.NormalizedAgentResponse{}, err
	}
	return models.NormalizedAgentResponse{Status: models.StatusSuccess, Result: result}, nil
}

func envelope(doc, status gjson.Result) (models.NormalizedAgentResponse, error) {
	resp := models.NormalizedAgentResponse{
		Result: json.RawMessage("{}"),
	}
	switch status.String() {
	case string(models.StatusSuccess):
		resp.Status = models.StatusSuccess
	case string(models.StatusError):
		resp.Status = models.StatusError
	default:
		return models.NormalizedAgentResponse{}, fmt.Errorf("unknown reply status %q", status.String())
	}
	if msg := doc.Get("message"); msg.Type == gjson.String {
		resp.Message = msg.Str
	}

	result := doc.Get("result")
	switch {
	case !result.Exists() || result.Type == gjson.Null:
	case result.Type == gjson.String && resp.Status == models.StatusSuccess:
		// Some agents double-encode the result.
		inner, err := normalize(result.Str, maxUnwrap)
		if err != nil {
			return models.NormalizedAgentResponse{}, err
		}
		resp.Result = inner.Result
	default:
		raw, err := compact(result.Raw)
		if err != nil {
			return models.NormalizedAgentResponse{}, err
		}
		resp.Result = raw
	}
	return resp, nil
}

func summaryResponse(text string) (models.NormalizedAgentResponse, error) {
	raw, err := sjson.Set("{}", "summary", text)
	if err != nil {
		return models.NormalizedAgentResponse{}, fmt.Errorf("failed to wrap text reply: %w", err)
	}
	return models.NormalizedAgentResponse{Status: models.StatusSuccess, Result: json.RawMessage(raw)}, nil
}

// stripFences removes a surrounding ``` or ```json fence.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	body := strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}

func compact(raw string) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		return nil, fmt.Errorf("failed to compact reply: %w", err)
	}
	return buf.Bytes(), nil
}

func kind(r gjson.Result) string {
	switch {
	case r.IsArray():
		return "array"
	case r.Type == gjson.String:
		return "string"
	case r.Type == gjson.Number:
		return "number"
	case r.Type == gjson.True, r.Type == gjson.False:
		return "boolean"
	case r.Type == gjson.Null:
		return "null"
	}
	return "value"
}
