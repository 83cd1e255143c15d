package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/pablasso/meetmind/internal/analysis"
	"github.com/pablasso/meetmind/internal/render"
	"github.com/pablasso/meetmind/internal/tui/styles"
)

const bullet = "• "

// RenderTabView renders a tab for the terminal, wrapped to width. Every
// string from the analysis is sanitized first so that server text cannot
// emit terminal escape sequences.
func RenderTabView(v render.TabView, width int) string {
	width = max(width, 20)

	var blocks []string
	switch {
	case v.Summary != nil:
		blocks = renderSummary(v.Summary, width)
	case v.Todos != nil:
		blocks = renderTodos(v.Todos, width)
	case v.Timeline != nil:
		blocks = renderTimeline(v.Timeline, width)
	case v.Requirements != nil:
		blocks = renderRequirements(v.Requirements, width)
	case v.Sentiment != nil:
		blocks = renderSentiment(v.Sentiment, width)
	default:
		return ""
	}
	return strings.Join(blocks, "\n\n")
}

func renderSummary(v *render.SummaryView, width int) []string {
	var paragraphs []string
	for _, p := range v.Paragraphs {
		paragraphs = append(paragraphs, wrap(p, width))
	}
	blocks := []string{
		section("Executive Summary", strings.Join(paragraphs, "\n")),
		section("Agenda Covered", bulletList(v.Agenda, width)),
	}
	if len(v.Decisions) > 0 {
		blocks = append(blocks, section("Key Decisions", bulletList(v.Decisions, width)))
	}
	return blocks
}

func renderTodos(v *render.TodosView, width int) []string {
	if len(v.Cards) == 0 {
		return []string{styles.SubtleStyle.Render(sanitize(v.Placeholder))}
	}

	cards := make([]string, 0, len(v.Cards))
	for _, item := range v.Cards {
		badge := badgeStyle(item.Priority).Render("[" + sanitize(item.PriorityLabel) + "]")
		task := lipgloss.NewStyle().Bold(true).Render(wrap(item.Task, width-lipgloss.Width(badge)-3))
		meta := styles.SubtleStyle.Render(sanitize(item.Assignee) + " │ " + sanitize(item.Deadline))
		header := lipgloss.JoinHorizontal(lipgloss.Top, task, " ", badge)
		cards = append(cards, styles.CardStyle.Render(header+"\n"+meta))
	}
	return cards
}

func renderTimeline(v *render.TimelineView, width int) []string {
	if len(v.Events) == 0 {
		return []string{section("Timeline of Key Events", "")}
	}

	timeWidth := 0
	for _, e := range v.Events {
		timeWidth = max(timeWidth, lipgloss.Width(sanitize(e.Time)))
	}

	rows := make([]string, 0, len(v.Events))
	timeStyle := styles.SelectedStyle.Width(timeWidth + 2)
	for _, e := range v.Events {
		event := wrap(e.Event, width-timeWidth-2)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, timeStyle.Render(sanitize(e.Time)), event))
	}
	return []string{section("Timeline of Key Events", strings.Join(rows, "\n"))}
}

func renderRequirements(v *render.RequirementsView, width int) []string {
	lines := make([]string, 0, len(v.Lines))
	for _, l := range v.Lines {
		if v.Structured {
			// Keep indentation of pretty-printed JSON; only break overlong lines.
			lines = append(lines, ansi.Hardwrap(sanitize(l), width, true))
		} else {
			lines = append(lines, wrap(l, width))
		}
	}
	return []string{section("Analyzed Requirements", strings.Join(lines, "\n"))}
}

func renderSentiment(v *render.SentimentView, width int) []string {
	return []string{
		section("Sentiment Analysis", wrap(v.Sentiment, width)),
		section("Follow-up Suggestions", bulletList(v.Suggestions, width)),
	}
}

func section(title, body string) string {
	heading := styles.SectionStyle.Render(title)
	if body == "" {
		return heading
	}
	return heading + "\n" + body
}

func bulletList(items []string, width int) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		wrapped := wrap(item, width-len(bullet))
		lines = append(lines, bullet+strings.ReplaceAll(wrapped, "\n", "\n  "))
	}
	return strings.Join(lines, "\n")
}

func badgeStyle(p analysis.Priority) lipgloss.Style {
	switch p {
	case analysis.PriorityHigh:
		return styles.BadgeHighStyle
	case analysis.PriorityLow:
		return styles.BadgeLowStyle
	default:
		return styles.BadgeMediumStyle
	}
}

func wrap(s string, width int) string {
	return ansi.Wrap(sanitize(s), max(width, 10), "")
}

// sanitize removes escape sequences and control characters other than
// newlines; tabs become spaces.
func sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case r < 0x20, r == 0x7f, r >= 0x80 && r < 0xa0:
			return -1
		default:
			return r
		}
	}, s)
}
