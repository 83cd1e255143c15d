// Package analysis defines the meeting analysis document returned by the
// analysis endpoint and the normalized records derived from it.
package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Result is one meeting analysis report. A Result is never modified after it
// has been accepted by a session.
type Result struct {
	Summary              string          `json:"summary"`
	AgendaCovered        []string        `json:"agenda_covered"`
	KeyDecisions         []string        `json:"key_decisions,omitempty"`
	ActionItems          []ActionItem    `json:"action_items"`
	TimelineEvents       []TimelineEvent `json:"timeline_events"`
	AnalyzedRequirements Requirements    `json:"analyzed_requirements"`
	SentimentAnalysis    string          `json:"sentiment_analysis"`
	FollowUpSuggestions  []string        `json:"follow_up_suggestions"`

	raw   json.RawMessage
	items []NormalizedItem
}

// ActionItem is a task extracted from the meeting. Every field but Task is
// optional on the wire.
type ActionItem struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee,omitempty"`
	Deadline string `json:"deadline,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// TimelineEvent is a timestamped point of discussion.
type TimelineEvent struct {
	Time  string `json:"time"`
	Event string `json:"event"`
}

// Decode parses an analysis document. The document must be a JSON object;
// the exact bytes are retained so that an export reproduces what the server
// sent, including fields this client does not know about.
func Decode(data []byte) (*Result, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("analysis response is not a JSON object")
	}

	var r Result
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	r.raw = append(json.RawMessage(nil), trimmed...)
	r.items = normalizeItems(r.ActionItems)
	return &r, nil
}

// Normalize returns a copy of r with its action items normalized. Results
// produced by Decode are already normalized.
func Normalize(r Result) *Result {
	r.items = normalizeItems(r.ActionItems)
	return &r
}

// Raw returns the document the result was decoded from, or nil when the
// result was built in code.
func (r *Result) Raw() json.RawMessage {
	return r.raw
}

// Items returns the normalized action items in their original order.
func (r *Result) Items() []NormalizedItem {
	if r.items == nil && len(r.ActionItems) > 0 {
		return normalizeItems(r.ActionItems)
	}
	return r.items
}

// MarshalIndent serializes the result with 2-space indentation. A decoded
// result is re-indented from its original bytes.
func (r *Result) MarshalIndent() ([]byte, error) {
	if len(r.raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, r.raw, "", "  "); err != nil {
			return nil, fmt.Errorf("failed to indent analysis: %w", err)
		}
		return buf.Bytes(), nil
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}
	return data, nil
}
