// Package render projects an analysis result into per-tab view models and
// serializes it for export. Projections are pure: the same result and tab
// always produce the same view.
package render

import (
	"strings"

	"github.com/pablasso/meetmind/internal/analysis"
)

// NoActionItems is shown in place of cards when nothing was extracted.
const NoActionItems = "No action items detected"

// ExportFilename is the name of the exported analysis document.
const ExportFilename = "meeting_analysis.json"

// TabView is the display model for one tab. Exactly one section is set for
// a known tab; none is set for an unknown tab.
type TabView struct {
	Tab          Tab
	Summary      *SummaryView
	Todos        *TodosView
	Timeline     *TimelineView
	Requirements *RequirementsView
	Sentiment    *SentimentView
}

// IsEmpty reports whether the view has no content.
func (v TabView) IsEmpty() bool {
	return v.Summary == nil && v.Todos == nil && v.Timeline == nil &&
		v.Requirements == nil && v.Sentiment == nil
}

type SummaryView struct {
	Paragraphs []string // summary split on newlines
	Agenda     []string
	Decisions  []string
}

type TodosView struct {
	Cards       []analysis.NormalizedItem
	Placeholder string // set only when Cards is empty
}

type TimelineView struct {
	Events []analysis.TimelineEvent
}

type RequirementsView struct {
	Structured bool
	Lines      []string
}

type SentimentView struct {
	Sentiment   string
	Suggestions []string
}

// Project builds the view for tab. A nil result or an unknown tab yields an
// empty view.
func Project(r *analysis.Result, tab Tab) TabView {
	view := TabView{Tab: tab}
	if r == nil {
		return view
	}

	switch tab {
	case TabSummary:
		view.Summary = projectSummary(r)
	case TabTodos:
		view.Todos = projectTodos(r)
	case TabTimeline:
		view.Timeline = &TimelineView{Events: r.TimelineEvents}
	case TabRequirements:
		view.Requirements = projectRequirements(r)
	case TabSentiment:
		view.Sentiment = &SentimentView{
			Sentiment:   r.SentimentAnalysis,
			Suggestions: r.FollowUpSuggestions,
		}
	}
	return view
}

func projectSummary(r *analysis.Result) *SummaryView {
	return &SummaryView{
		Paragraphs: splitLines(r.Summary),
		Agenda:     r.AgendaCovered,
		Decisions:  r.KeyDecisions,
	}
}

func projectTodos(r *analysis.Result) *TodosView {
	items := r.Items()
	if len(items) == 0 {
		return &TodosView{Placeholder: NoActionItems}
	}
	return &TodosView{Cards: items}
}

func projectRequirements(r *analysis.Result) *RequirementsView {
	req := r.AnalyzedRequirements
	if !req.IsStructured() {
		return &RequirementsView{Lines: splitLines(req.Text())}
	}

	indented, err := req.Indented()
	if err != nil {
		// Decode validated the document, so this only happens for values
		// built in code from invalid JSON.
		return &RequirementsView{Structured: true}
	}
	return &RequirementsView{Structured: true, Lines: strings.Split(indented, "\n")}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Export serializes the whole result with 2-space indentation.
func Export(r *analysis.Result) ([]byte, error) {
	return r.MarshalIndent()
}
