package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/pablasso/meetmind/internal/analysis"
)

var htmlTemplates = template.Must(template.New("tabs").Funcs(template.FuncMap{
	"badge": badgeClass,
	"nbsp": func(s string) template.HTML {
		return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), " ", "&nbsp;"))
	},
}).Parse(`
{{- define "summary" -}}
<div class="content-card"><h3>Executive Summary</h3><p>
{{- range $i, $p := .Paragraphs}}{{if $i}}<br>{{end}}{{$p}}{{end -}}
</p></div>
<div class="content-card"><h3>Agenda Covered</h3><ul>{{range .Agenda}}<li>{{.}}</li>{{end}}</ul></div>
{{- if .Decisions}}
<div class="content-card"><h3>Key Decisions</h3><ul>{{range .Decisions}}<li>{{.}}</li>{{end}}</ul></div>
{{- end}}
{{- end}}

{{- define "todos" -}}
{{- if .Cards}}
{{- range .Cards}}
<div class="content-card todo"><div><h4>{{.Task}}</h4><div class="meta">{{.Assignee}} | {{.Deadline}}</div></div><span class="badge {{badge .Priority}}">{{.PriorityLabel}}</span></div>
{{- end}}
{{- else -}}
<div class="content-card"><p>{{.Placeholder}}</p></div>
{{- end}}
{{- end}}

{{- define "timeline" -}}
<div class="content-card"><h3>Timeline of Key Events</h3><div class="timeline">
{{- range .Events}}<div class="event"><div class="time">{{.Time}}</div><div>{{.Event}}</div></div>{{end -}}
</div></div>
{{- end}}

{{- define "requirements" -}}
<div class="content-card"><h3>Analyzed Requirements</h3><div class="mono">
{{- $structured := .Structured}}
{{- range $i, $l := .Lines}}{{if $i}}<br>{{end}}{{if $structured}}{{nbsp $l}}{{else}}{{$l}}{{end}}{{end -}}
</div></div>
{{- end}}

{{- define "sentiment" -}}
<div class="content-card"><h3>Sentiment Analysis</h3><p>{{.Sentiment}}</p></div>
<div class="content-card"><h3>Follow-up Suggestions</h3><ul>{{range .Suggestions}}<li>{{.}}</li>{{end}}</ul></div>
{{- end}}
`))

func badgeClass(p analysis.Priority) string {
	return "badge-" + p.String()
}

// HTML renders a view as an HTML fragment. Every string from the analysis is
// escaped; an empty view renders as "".
func HTML(v TabView) (string, error) {
	var name string
	var data any
	switch {
	case v.Summary != nil:
		name, data = "summary", v.Summary
	case v.Todos != nil:
		name, data = "todos", v.Todos
	case v.Timeline != nil:
		name, data = "timeline", v.Timeline
	case v.Requirements != nil:
		name, data = "requirements", v.Requirements
	case v.Sentiment != nil:
		name, data = "sentiment", v.Sentiment
	default:
		return "", nil
	}

	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
