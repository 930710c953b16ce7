package models

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// Field is a single key/value pair of an agent record.
type Field struct {
	Key   string
	Value string
}

// Record is an open-schema string map that keeps the key order of the JSON it
// was decoded from. Agents return sparse field sets, and table headers are
// taken from the first record's key order, so a Go map would not do.
type Record []Field

// NewRecord builds a record from alternating key/value pairs.
func NewRecord(pairs ...string) Record {
	r := make(Record, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		r = r.Set(pairs[i], pairs[i+1])
	}
	return r
}

// Keys returns the record keys in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value for key.
func (r Record) Get(key string) (string, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Set replaces the value of an existing key in place or appends a new one.
func (r Record) Set(key, value string) Record {
	for i := range r {
		if r[i].Key == key {
			r[i].Value = value
			return r
		}
	}
	return append(r, Field{Key: key, Value: value})
}

// UnmarshalJSON decodes a JSON object, preserving key order. Non-string values
// are kept as their JSON text; null becomes the empty string.
func (r *Record) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid record JSON")
	}
	parsed := gjson.ParseBytes(data)
	if parsed.Type == gjson.Null {
		*r = nil
		return nil
	}
	if !parsed.IsObject() {
		return fmt.Errorf("record must be a JSON object, got %s", parsed.Type)
	}

	out := Record{}
	parsed.ForEach(func(key, value gjson.Result) bool {
		out = out.Set(key.String(), value.String())
		return true
	})
	*r = out
	return nil
}

// MarshalJSON encodes the record as a JSON object in key order.
func (r Record) MarshalJSON() ([]byte, error) {
	out := []byte("{}")
	for _, f := range r {
		var err error
		out, err = sjson.SetBytes(out, gjson.Escape(f.Key), f.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode record field %q: %w", f.Key, err)
		}
	}
	return out, nil
}

// MarshalYAML keeps key order in YAML output as well.
func (r Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range r {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value},
		)
	}
	return node, nil
}
