package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/pablasso/meetmind/internal/export"
	"github.com/pablasso/meetmind/internal/render"
	"github.com/pablasso/meetmind/internal/session"
	"github.com/pablasso/meetmind/internal/tui/components"
	"github.com/pablasso/meetmind/internal/tui/msgs"
	"github.com/pablasso/meetmind/internal/tui/styles"
)

// resultsChrome is the number of rows outside the document pane: title,
// tab bar, spacer and status bar.
const resultsChrome = 4

// ResultsModel shows the accepted analysis, one tab at a time.
type ResultsModel struct {
	sess      *session.Session
	doc       components.Document
	active    render.Tab
	exportDir string
	notice    string
	noticeErr bool
	width     int
	height    int
}

// NewResultsModel creates a ResultsModel reading from sess. Exports are
// written to exportDir.
func NewResultsModel(sess *session.Session, exportDir string) ResultsModel {
	return ResultsModel{
		sess:      sess,
		doc:       components.NewDocument(0, 0),
		active:    render.DefaultTab,
		exportDir: exportDir,
	}
}

// Load shows the default tab of a freshly accepted result.
func (m *ResultsModel) Load() {
	m.notice = ""
	m.noticeErr = false
	m.selectTab(render.DefaultTab)
}

func (m *ResultsModel) selectTab(tab render.Tab) {
	m.active = tab
	m.refresh()
}

func (m *ResultsModel) refresh() {
	view, ok := m.sess.RenderTab(m.active)
	if !ok {
		m.doc.SetContent("")
		return
	}
	m.doc.SetContent(RenderTabView(view, m.doc.ContentWidth()-1))
}

// Update implements tea.Model.
func (m ResultsModel) Update(msg tea.Msg) (ResultsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case msgs.ExportedMsg:
		if msg.Err != nil {
			m.notice = "Export failed: " + msg.Err.Error()
			m.noticeErr = true
		} else {
			m.notice = "Saved " + msg.Path
			m.noticeErr = false
		}
		return m, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "2", "3", "4", "5":
			m.selectTab(render.Tabs[key[0]-'1'])
			return m, nil
		case "right", "l", "tab":
			m.selectTab(render.Tabs[(m.active.Index()+1)%len(render.Tabs)])
			return m, nil
		case "left", "h", "shift+tab":
			n := len(render.Tabs)
			m.selectTab(render.Tabs[(m.active.Index()+n-1)%n])
			return m, nil
		case "e":
			m.notice = "Exporting..."
			m.noticeErr = false
			return m, ExportCmd(m.sess, m.exportDir)
		case "n":
			return m, func() tea.Msg { return msgs.NewUploadMsg{} }
		}
	}

	var cmd tea.Cmd
	m.doc, cmd = m.doc.Update(msg)
	return m, cmd
}

// ExportCmd writes the session's analysis to dir.
func ExportCmd(sess *session.Session, dir string) tea.Cmd {
	return func() tea.Msg {
		data, err := sess.Export()
		if err != nil {
			return msgs.ExportedMsg{Err: err}
		}
		path, err := export.Write(dir, data)
		return msgs.ExportedMsg{Path: path, Err: err}
	}
}

// View implements tea.Model.
func (m ResultsModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	snap := m.sess.Snapshot()
	title := styles.SectionStyle.Render("Meeting analysis")
	if snap.FileName != "" {
		title += styles.SubtleStyle.Render("  " + sanitize(snap.FileName) + " (" + humanize.Bytes(uint64(max(snap.FileSize, 0))) + ")")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().MaxWidth(m.width).Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().MaxWidth(m.width).Render(components.RenderTabBar(m.active)))
	b.WriteString("\n\n")
	b.WriteString(m.doc.View())
	b.WriteString("\n")

	bar := components.NewStatusBar()
	if m.notice != "" {
		style := styles.SuccessStyle
		if m.noticeErr {
			style = styles.ErrorStyle
		}
		bar = bar.WithNotice(m.notice, style)
	}
	b.WriteString(bar.Render(m.width, []string{"1-5/←→ Tabs", "↑↓ Scroll", "e Export", "n New", "q Quit"}))

	return b.String()
}

// SetSize updates the model dimensions and re-wraps the active tab.
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.doc.SetSize(width, max(height-resultsChrome, 1))
	m.refresh()
}

// ActiveTab returns the tab being shown.
func (m ResultsModel) ActiveTab() render.Tab {
	return m.active
}

// Notice returns the status bar notice.
func (m ResultsModel) Notice() string {
	return m.notice
}
