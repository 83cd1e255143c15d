package views

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/meetmind/internal/session"
	"github.com/pablasso/meetmind/internal/tui/components"
	"github.com/pablasso/meetmind/internal/tui/msgs"
	"github.com/pablasso/meetmind/internal/tui/styles"
)

// FailedModel shows the error status until the session resets itself.
type FailedModel struct {
	snap   session.Snapshot
	now    func() time.Time
	width  int
	height int
}

// NewFailedModel creates a FailedModel.
func NewFailedModel() FailedModel {
	return FailedModel{now: time.Now}
}

// countdownMsg redraws the seconds remaining before the reset.
type countdownMsg struct{}

func countdownTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownMsg{}
	})
}

// ScheduleReset returns a command that fires a ResetMsg after delay and
// keeps the countdown on screen current until then.
func ScheduleReset(delay time.Duration) tea.Cmd {
	return tea.Batch(resetTick(delay), countdownTick())
}

// RescheduleReset re-arms the reset timer for a ResetMsg that fired before
// resetAt. The countdown is already running.
func RescheduleReset(resetAt, now time.Time) tea.Cmd {
	return resetTick(max(resetAt.Sub(now), 0))
}

func resetTick(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return msgs.ResetMsg{At: t}
	})
}

// Update handles countdown ticks and quitting.
func (m FailedModel) Update(msg tea.Msg) (FailedModel, tea.Cmd) {
	switch msg := msg.(type) {
	case countdownMsg:
		if m.snap.ResetAt.IsZero() || m.now().Before(m.snap.ResetAt) {
			return m, countdownTick()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

// SetSnapshot sets the session state to display.
func (m *FailedModel) SetSnapshot(snap session.Snapshot) {
	m.snap = snap
}

// View implements tea.Model.
func (m FailedModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	status := lipgloss.NewStyle().Width(min(m.width-4, 70)).Align(lipgloss.Center).
		Render(styles.ErrorStyle.Render(sanitize(m.snap.Status)))

	lines := []string{styles.TitleStyle.Render("Upload failed"), status}
	if !m.snap.ResetAt.IsZero() {
		remaining := m.snap.ResetAt.Sub(m.now())
		secs := int(math.Ceil(max(remaining, 0).Seconds()))
		lines = append(lines, "", styles.SubtleStyle.Render(fmt.Sprintf("Returning to upload in %ds", secs)))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(components.NewStatusBar().Render(m.width, []string{"q Quit"}))
	return b.String()
}

// SetSize updates the model dimensions.
func (m *FailedModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
