package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Requirements holds analyzed_requirements, which the server sends either as
// a plain string or as an arbitrary JSON structure.
type Requirements struct {
	raw json.RawMessage
}

// TextRequirements builds a plain-string Requirements value.
func TextRequirements(s string) Requirements {
	data, _ := json.Marshal(s)
	return Requirements{raw: data}
}

// StructuredRequirements builds a Requirements value from any JSON-serializable value.
func StructuredRequirements(v any) (Requirements, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Requirements{}, fmt.Errorf("failed to marshal requirements: %w", err)
	}
	return Requirements{raw: data}, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (q *Requirements) UnmarshalJSON(data []byte) error {
	q.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (q Requirements) MarshalJSON() ([]byte, error) {
	if len(q.raw) == 0 {
		return []byte("null"), nil
	}
	return q.raw, nil
}

// IsZero reports whether the field was absent.
func (q Requirements) IsZero() bool {
	return len(bytes.TrimSpace(q.raw)) == 0
}

// IsNull reports whether the field was an explicit JSON null.
func (q Requirements) IsNull() bool {
	return bytes.Equal(bytes.TrimSpace(q.raw), []byte("null"))
}

// IsStructured reports whether the value is present and anything other than
// a string. An explicit null counts as structured and renders as "null".
func (q Requirements) IsStructured() bool {
	if q.IsZero() {
		return false
	}
	return bytes.TrimSpace(q.raw)[0] != '"'
}

// Text returns the string form of a plain-string value, or "" otherwise.
func (q Requirements) Text() string {
	if q.IsStructured() || q.IsZero() {
		return ""
	}
	var s string
	if err := json.Unmarshal(q.raw, &s); err != nil {
		return ""
	}
	return s
}

// Indented pretty-prints a structured value with 2-space indentation.
func (q Requirements) Indented() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(q.raw), "", "  "); err != nil {
		return "", fmt.Errorf("failed to indent requirements: %w", err)
	}
	return buf.String(), nil
}
