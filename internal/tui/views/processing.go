package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/pablasso/meetmind/internal/session"
	"github.com/pablasso/meetmind/internal/tui/components"
	"github.com/pablasso/meetmind/internal/tui/styles"
)

// ProcessingModel shows the in-flight upload: a spinner, the status text,
// and upload progress while the body is still being sent.
type ProcessingModel struct {
	spinner spinner.Model
	snap    session.Snapshot
	now     func() time.Time
	width   int
	height  int
}

// NewProcessingModel creates a ProcessingModel.
func NewProcessingModel() ProcessingModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle
	return ProcessingModel{spinner: s, now: time.Now}
}

// Init starts the spinner.
func (m ProcessingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update advances the spinner.
func (m ProcessingModel) Update(msg tea.Msg) (ProcessingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// SetSnapshot sets the session state to display.
func (m *ProcessingModel) SetSnapshot(snap session.Snapshot) {
	m.snap = snap
}

// View implements tea.Model.
func (m ProcessingModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	lines := []string{
		styles.TitleStyle.Render("Analyzing meeting"),
		m.spinner.View() + " " + m.snap.Status,
		"",
		styles.SubtleStyle.Render(m.fileLine()),
	}
	if m.snap.Phase == session.PhaseUploading {
		if bar := components.NewProgress(m.snap.BytesSent, m.snap.FileSize, 24).View(); bar != "" {
			lines = append(lines, "", bar)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(components.NewStatusBar().Render(m.width, []string{"ctrl+c Cancel and quit"}))
	return b.String()
}

func (m ProcessingModel) fileLine() string {
	if m.snap.FileName == "" {
		return ""
	}
	line := fmt.Sprintf("%s (%s)", m.snap.FileName, humanize.Bytes(uint64(max(m.snap.FileSize, 0))))
	if !m.snap.StartedAt.IsZero() {
		line += " · started " + humanize.RelTime(m.snap.StartedAt, m.now(), "ago", "from now")
	}
	return line
}

// SetSize updates the model dimensions.
func (m *ProcessingModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
