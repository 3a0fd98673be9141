// Package jsonarray decodes array-valued fields that arrive on the wire
// as JSON-encoded strings (e.g. skills/tags sent as `"[\"go\",\"cv\"]"`).
//
// This is a serialization boundary concern only: the encoded string form
// is decoded to a semantic list at the edge and never stored or compared.
package jsonarray

import (
	"encoding/json"
	"strings"

	"github.com/perceptai/perceptai/internal/app/system/apierr"
)

// Strings decodes raw into a string slice. An empty or absent value is an
// empty list; a malformed encoding is a validation error naming the field.
func Strings(field, raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, apierr.Validationf("%s must be a JSON array of strings", field)
	}
	for i, s := range out {
		out[i] = strings.TrimSpace(s)
	}
	return out, nil
}

// Flexible is a field that accepts either a JSON array of strings or a
// JSON string containing an encoded array, so both
// `"skills": ["go"]` and `"skills": "[\"go\"]"` decode to the same list.
type Flexible []string

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flexible) UnmarshalJSON(data []byte) error {
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*f = direct
		return nil
	}
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return apierr.Validation("expected an array of strings or a JSON-encoded array string")
	}
	if strings.TrimSpace(encoded) == "" {
		*f = []string{}
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(encoded), &out); err != nil {
		return apierr.Validation("expected an array of strings or a JSON-encoded array string")
	}
	*f = out
	return nil
}

// List returns the decoded slice, never nil.
func (f Flexible) List() []string {
	if f == nil {
		return []string{}
	}
	return []string(f)
}
