package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pablasso/meetmind/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, doc string) *analysis.Result {
	t.Helper()
	r, err := analysis.Decode([]byte(doc))
	require.NoError(t, err)
	return r
}

const fullDoc = `{
  "summary": "Line one.\nLine two.",
  "agenda_covered": ["Budget", "Hiring"],
  "action_items": [
    {"task": "A", "priority": "HIGH"},
    {"task": "B", "priority": "Low"},
    {"task": "C"},
    {"task": "D", "priority": "urgent", "assignee": "Dee", "deadline": "Mon"}
  ],
  "timeline_events": [
    {"time": "10:00", "event": "Late item"},
    {"time": "00:00", "event": "Start"}
  ],
  "analyzed_requirements": "Req one\nReq two",
  "sentiment_analysis": "Neutral",
  "follow_up_suggestions": ["Follow up"]
}`

func TestProject_NilResult(t *testing.T) {
	for _, tab := range Tabs {
		view := Project(nil, tab)
		assert.True(t, view.IsEmpty(), "tab %s", tab)
	}
}

func TestProject_UnknownTab(t *testing.T) {
	view := Project(decode(t, fullDoc), Tab("charts"))
	assert.True(t, view.IsEmpty())

	html, err := HTML(view)
	require.NoError(t, err)
	assert.Equal(t, "", html)
}

func TestProject_Summary(t *testing.T) {
	view := Project(decode(t, fullDoc), TabSummary)
	require.NotNil(t, view.Summary)
	assert.Equal(t, []string{"Line one.", "Line two."}, view.Summary.Paragraphs)
	assert.Equal(t, []string{"Budget", "Hiring"}, view.Summary.Agenda)
}

func TestProject_TodosPriorityBadges(t *testing.T) {
	view := Project(decode(t, fullDoc), TabTodos)
	require.NotNil(t, view.Todos)
	require.Len(t, view.Todos.Cards, 4)
	assert.Empty(t, view.Todos.Placeholder)

	cards := view.Todos.Cards
	assert.Equal(t, analysis.PriorityHigh, cards[0].Priority)
	assert.Equal(t, analysis.PriorityLow, cards[1].Priority)
	assert.Equal(t, analysis.PriorityMedium, cards[2].Priority)
	assert.Equal(t, "Medium", cards[2].PriorityLabel)
	assert.Equal(t, analysis.PriorityMedium, cards[3].Priority)
	assert.Equal(t, "urgent", cards[3].PriorityLabel)
	assert.Equal(t, "Unassigned", cards[0].Assignee)
	assert.Equal(t, "No deadline", cards[0].Deadline)
	assert.Equal(t, "Dee", cards[3].Assignee)
}

func TestProject_TodosPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty list", doc: `{"action_items": []}`},
		{name: "absent", doc: `{"summary": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Project(decode(t, tt.doc), TabTodos)
			require.NotNil(t, view.Todos)
			assert.Empty(t, view.Todos.Cards)
			assert.Equal(t, NoActionItems, view.Todos.Placeholder)

			html, err := HTML(view)
			require.NoError(t, err)
			assert.Equal(t, 1, strings.Count(html, "content-card"))
			assert.Contains(t, html, NoActionItems)
		})
	}
}

func TestProject_TimelineKeepsOrder(t *testing.T) {
	view := Project(decode(t, fullDoc), TabTimeline)
	require.NotNil(t, view.Timeline)
	assert.Equal(t, []analysis.TimelineEvent{
		{Time: "10:00", Event: "Late item"},
		{Time: "00:00", Event: "Start"},
	}, view.Timeline.Events)
}

func TestProject_RequirementsString(t *testing.T) {
	view := Project(decode(t, fullDoc), TabRequirements)
	require.NotNil(t, view.Requirements)
	assert.False(t, view.Requirements.Structured)
	assert.Equal(t, []string{"Req one", "Req two"}, view.Requirements.Lines)
}

func TestProject_RequirementsNullAndAbsent(t *testing.T) {
	view := Project(decode(t, `{"analyzed_requirements": null}`), TabRequirements)
	require.NotNil(t, view.Requirements)
	assert.True(t, view.Requirements.Structured)
	assert.Equal(t, []string{"null"}, view.Requirements.Lines)

	view = Project(decode(t, `{"summary": "s"}`), TabRequirements)
	require.NotNil(t, view.Requirements)
	assert.False(t, view.Requirements.Structured)
	assert.Empty(t, view.Requirements.Lines)
}

func TestProject_RequirementsStructured(t *testing.T) {
	doc := `{"analyzed_requirements": {"scope":{"in":["a"],"out":[]}}}`
	view := Project(decode(t, doc), TabRequirements)
	require.NotNil(t, view.Requirements)
	assert.True(t, view.Requirements.Structured)

	want, err := json.MarshalIndent(map[string]any{
		"scope": map[string]any{"in": []string{"a"}, "out": []string{}},
	}, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, string(want), strings.Join(view.Requirements.Lines, "\n"))

	html, err := HTML(view)
	require.NoError(t, err)
	assert.Contains(t, html, "&nbsp;&nbsp;&#34;scope&#34;:&nbsp;{<br>")
}

func TestProject_Sentiment(t *testing.T) {
	view := Project(decode(t, fullDoc), TabSentiment)
	require.NotNil(t, view.Sentiment)
	assert.Equal(t, "Neutral", view.Sentiment.Sentiment)
	assert.Equal(t, []string{"Follow up"}, view.Sentiment.Suggestions)
}

func TestProject_IsPure(t *testing.T) {
	r := decode(t, fullDoc)

	first, err := HTML(Project(r, TabSummary))
	require.NoError(t, err)
	_, err = HTML(Project(r, TabTodos))
	require.NoError(t, err)
	again, err := HTML(Project(r, TabSummary))
	require.NoError(t, err)

	assert.Equal(t, first, again)
}

func TestProject_MissingArraysDoNotPanic(t *testing.T) {
	r := decode(t, `{}`)
	for _, tab := range Tabs {
		assert.NotPanics(t, func() {
			_, err := HTML(Project(r, tab))
			assert.NoError(t, err)
		}, "tab %s", tab)
	}
}

func TestHTML_EscapesServerText(t *testing.T) {
	doc := `{
	  "summary": "<b>bold</b>\nnext",
	  "action_items": [{"task": "<script>alert(1)</script>", "priority": "high"}]
	}`
	r := decode(t, doc)

	summary, err := HTML(Project(r, TabSummary))
	require.NoError(t, err)
	assert.Contains(t, summary, "&lt;b&gt;bold&lt;/b&gt;<br>next")

	todos, err := HTML(Project(r, TabTodos))
	require.NoError(t, err)
	assert.NotContains(t, todos, "<script>")
	assert.Contains(t, todos, "&lt;script&gt;")
	assert.Contains(t, todos, "badge-high")
}

func TestHTML_BadgeClasses(t *testing.T) {
	html, err := HTML(Project(decode(t, fullDoc), TabTodos))
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(html, "badge-high"))
	assert.Equal(t, 1, strings.Count(html, "badge-low"))
	assert.Equal(t, 2, strings.Count(html, "badge-medium"))
	assert.Contains(t, html, ">Medium</span>")
}

func TestExport_RoundTrip(t *testing.T) {
	r := decode(t, fullDoc)

	data, err := Export(r)
	require.NoError(t, err)

	var got, want any
	require.NoError(t, json.Unmarshal(data, &got))
	require.NoError(t, json.Unmarshal([]byte(fullDoc), &want))
	assert.Equal(t, want, got)

	again, err := Export(r)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab(" Todos ")
	require.NoError(t, err)
	assert.Equal(t, TabTodos, tab)

	_, err = ParseTab("charts")
	assert.Error(t, err)

	assert.Equal(t, 0, TabSummary.Index())
	assert.Equal(t, 4, TabSentiment.Index())
	assert.Equal(t, -1, Tab("x").Index())
	assert.Equal(t, "Action Items", TabTodos.Title())
}
