// Package tui is the interactive terminal client. The session owns the
// upload state; the app picks a view from the session phase.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/meetmind/internal/logging"
	"github.com/pablasso/meetmind/internal/session"
	"github.com/pablasso/meetmind/internal/tui/msgs"
	"github.com/pablasso/meetmind/internal/tui/styles"
	"github.com/pablasso/meetmind/internal/tui/views"
	"github.com/pablasso/meetmind/internal/upload"
)

// Minimum terminal dimensions for proper display.
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 15
)

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	sess   *session.Session
	log    logging.Logger
	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int

	upload     views.UploadModel
	processing views.ProcessingModel
	results    views.ResultsModel
	failed     views.FailedModel
}

// NewModel creates the app model around sess.
func NewModel(sess *session.Session, opts Options) Model {
	startDir := opts.StartDir
	if startDir == "" {
		if wd, err := os.Getwd(); err == nil {
			startDir = wd
		}
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		sess:       sess,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
		upload:     views.NewUploadModel(startDir),
		processing: views.NewProcessingModel(),
		results:    views.NewResultsModel(sess, opts.ExportDir),
		failed:     views.NewFailedModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.upload.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.upload.SetSize(msg.Width, msg.Height)
		m.processing.SetSize(msg.Width, msg.Height)
		m.results.SetSize(msg.Width, msg.Height)
		m.failed.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}

	case msgs.FileSelectedMsg:
		return m.submit(msg.Path)

	case msgs.AnalysisDoneMsg:
		return m.finish(msg.Err)

	case msgs.ResetMsg:
		if m.sess.ResetIfDue(msg.At) {
			return m, m.upload.Reset()
		}
		if snap := m.sess.Snapshot(); snap.Phase == session.PhaseFailed {
			return m, views.RescheduleReset(snap.ResetAt, msg.At)
		}
		return m, nil

	case msgs.NewUploadMsg:
		m.sess.Reset()
		return m, m.upload.Reset()
	}

	var cmd tea.Cmd
	switch m.sess.Phase() {
	case session.PhaseIdle:
		m.upload, cmd = m.upload.Update(msg)
	case session.PhaseUploading, session.PhaseProcessing:
		m.processing, cmd = m.processing.Update(msg)
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "q" {
			m.cancel()
			cmd = tea.Quit
		}
	case session.PhaseResults:
		m.results, cmd = m.results.Update(msg)
	case session.PhaseFailed:
		m.failed.SetSnapshot(m.sess.Snapshot())
		m.failed, cmd = m.failed.Update(msg)
	}
	return m, cmd
}

// submit starts an upload for path. The session performs the phase change
// synchronously so the next render already shows the processing view.
func (m Model) submit(path string) (tea.Model, tea.Cmd) {
	if m.sess.Phase() != session.PhaseIdle {
		m.log.Warn("ignoring file while busy", logging.F("path", path))
		return m, nil
	}

	file, err := upload.FileFromPath(path)
	if err != nil {
		m.upload.SetError(err.Error())
		return m, nil
	}

	wait, err := m.sess.Start(m.ctx, file)
	if err != nil {
		m.upload.SetError(err.Error())
		return m, nil
	}

	analyze := func() tea.Msg {
		_, err := wait()
		return msgs.AnalysisDoneMsg{Err: err}
	}
	return m, tea.Batch(analyze, m.processing.Init())
}

func (m Model) finish(err error) (tea.Model, tea.Cmd) {
	switch m.sess.Phase() {
	case session.PhaseResults:
		m.results.Load()
		return m, nil
	case session.PhaseFailed:
		m.log.Info("showing failure", logging.F("reset_in", m.sess.ResetDelay()))
		return m, views.ScheduleReset(m.sess.ResetDelay())
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		m.log.Warn("upload finished in unexpected phase", logging.Err(err))
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.width < MinTerminalWidth || m.height < MinTerminalHeight {
		return m.renderTerminalTooSmall()
	}

	snap := m.sess.Snapshot()
	switch snap.Phase {
	case session.PhaseUploading, session.PhaseProcessing:
		p := m.processing
		p.SetSnapshot(snap)
		return p.View()
	case session.PhaseResults:
		return m.results.View()
	case session.PhaseFailed:
		f := m.failed
		f.SetSnapshot(snap)
		return f.View()
	default:
		return m.upload.View()
	}
}

// renderTerminalTooSmall renders a message when the terminal is below the
// minimum size.
func (m Model) renderTerminalTooSmall() string {
	lines := []string{
		styles.ErrorStyle.Render("Terminal too small"),
		"",
		styles.SubtleStyle.Render(fmt.Sprintf("Minimum: %dx%d", MinTerminalWidth, MinTerminalHeight)),
		styles.SubtleStyle.Render(fmt.Sprintf("Current: %dx%d", m.width, m.height)),
	}
	content := strings.Join(lines, "\n")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
