package analysis

import "strings"

// Priority is the emphasis level of an action item badge.
type Priority int

const (
	PriorityMedium Priority = iota
	PriorityHigh
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityLow:
		return "low"
	default:
		return "medium"
	}
}

// ParsePriority maps a free-form priority to a level. Only "high" and "low"
// are recognized (case-insensitively); everything else is medium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(s) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

const (
	DefaultAssignee      = "Unassigned"
	DefaultDeadline      = "No deadline"
	DefaultPriorityLabel = "Medium"
)

// NormalizedItem is an action item with every optional field filled in.
type NormalizedItem struct {
	Task          string
	Assignee      string
	Deadline      string
	PriorityLabel string // displayed text, as sent by the server
	Priority      Priority
}

func normalizeItems(items []ActionItem) []NormalizedItem {
	if len(items) == 0 {
		return nil
	}

	out := make([]NormalizedItem, len(items))
	for i, item := range items {
		n := NormalizedItem{
			Task:          item.Task,
			Assignee:      item.Assignee,
			Deadline:      item.Deadline,
			PriorityLabel: item.Priority,
			Priority:      ParsePriority(item.Priority),
		}
		if n.Assignee == "" {
			n.Assignee = DefaultAssignee
		}
		if n.Deadline == "" {
			n.Deadline = DefaultDeadline
		}
		if n.PriorityLabel == "" {
			n.PriorityLabel = DefaultPriorityLabel
		}
		out[i] = n
	}
	return out
}
