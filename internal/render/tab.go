package render

import (
	"fmt"
	"strings"
)

// Tab identifies one of the result views.
type Tab string

const (
	TabSummary      Tab = "summary"
	TabTodos        Tab = "todos"
	TabTimeline     Tab = "timeline"
	TabRequirements Tab = "requirements"
	TabSentiment    Tab = "sentiment"
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabSummary, TabTodos, TabTimeline, TabRequirements, TabSentiment}

// DefaultTab is shown when results first arrive.
const DefaultTab = TabSummary

// ParseTab validates and normalizes a tab name.
func ParseTab(value string) (Tab, error) {
	t := Tab(strings.ToLower(strings.TrimSpace(value)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid tab %q (valid: summary, todos, timeline, requirements, sentiment)", value)
	}
	return t, nil
}

// Valid reports whether t is one of Tabs.
func (t Tab) Valid() bool {
	for _, known := range Tabs {
		if t == known {
			return true
		}
	}
	return false
}

// Title returns the label shown on the tab control.
func (t Tab) Title() string {
	switch t {
	case TabSummary:
		return "Summary"
	case TabTodos:
		return "Action Items"
	case TabTimeline:
		return "Timeline"
	case TabRequirements:
		return "Requirements"
	case TabSentiment:
		return "Sentiment"
	default:
		return string(t)
	}
}

// Index returns the position of t in Tabs, or -1.
func (t Tab) Index() int {
	for i, known := range Tabs {
		if t == known {
			return i
		}
	}
	return -1
}
