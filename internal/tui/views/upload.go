package views

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/meetmind/internal/tui/components"
	"github.com/pablasso/meetmind/internal/tui/msgs"
	"github.com/pablasso/meetmind/internal/tui/styles"
	"github.com/pablasso/meetmind/internal/upload"
)

// UploadModel is the idle screen: a drop target and a file picker.
// Terminals deliver a dragged file as a bracketed paste of its path.
type UploadModel struct {
	picker     filepicker.Model
	startDir   string
	dropActive bool
	width      int
	height     int
	errorMsg   string
}

// NewUploadModel creates an UploadModel browsing startDir.
func NewUploadModel(startDir string) UploadModel {
	fp := filepicker.New()
	fp.CurrentDirectory = startDir
	fp.AllowedTypes = upload.RecordingExtensions()
	fp.ShowHidden = false
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.DirAllowed = false
	fp.FileAllowed = true

	return UploadModel{
		picker:   fp,
		startDir: startDir,
	}
}

// Init implements tea.Model.
func (m UploadModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update implements tea.Model.
func (m UploadModel) Update(msg tea.Msg) (UploadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.Paste {
			m.dropActive = false
			path := CleanDroppedPath(string(msg.Runes))
			if path == "" {
				return m, nil
			}
			return m.selected(path)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			// Highlight only; the phase is unchanged until a file arrives.
			m.dropActive = !m.dropActive
			return m, nil
		case "esc":
			if m.dropActive {
				m.dropActive = false
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		return m.selected(path)
	}
	if didSelect, path := m.picker.DidSelectDisabledFile(msg); didSelect {
		m.errorMsg = filepath.Base(path) + " is not an audio or video recording"
		return m, cmd
	}

	return m, cmd
}

func (m UploadModel) selected(path string) (UploadModel, tea.Cmd) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		m.errorMsg = err.Error()
		return m, nil
	}
	m.errorMsg = ""
	return m, func() tea.Msg { return msgs.FileSelectedMsg{Path: absPath} }
}

// View implements tea.Model.
func (m UploadModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := styles.TitleStyle.Render("MeetMind")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	b.WriteString("\n")

	zoneStyle := styles.DropZoneStyle
	hint := "Drop a recording here, or pick one below"
	if m.dropActive {
		zoneStyle = styles.DropZoneActiveStyle
		hint = "Release to upload"
	}
	zone := zoneStyle.Width(min(m.width-4, 60)).Align(lipgloss.Center).Render(hint)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, zone))
	b.WriteString("\n")

	if m.errorMsg != "" {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, styles.ErrorStyle.Render(m.errorMsg)))
	}
	b.WriteString("\n")

	b.WriteString(m.picker.View())

	lines := strings.Count(b.String(), "\n") + 1
	if remaining := m.height - lines - 1; remaining > 0 {
		b.WriteString(strings.Repeat("\n", remaining))
	}

	statusItems := []string{"↑↓ Navigate", "Enter Upload", "Tab Drop zone", "q Quit"}
	b.WriteString(components.NewStatusBar().Render(m.width, statusItems))

	return b.String()
}

// SetSize updates the model dimensions.
func (m *UploadModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	// Title, drop zone (3 lines), error line and status bar.
	m.picker.Height = max(height-8, 1)
}

// Reset returns the view to its initial state for a new upload. The picker
// is rebuilt so it browses startDir again with the cursor at the top.
func (m *UploadModel) Reset() tea.Cmd {
	height := m.picker.Height
	m.picker = NewUploadModel(m.startDir).picker
	m.picker.Height = height
	m.errorMsg = ""
	m.dropActive = false
	return m.picker.Init()
}

// SetError shows msg under the drop zone.
func (m *UploadModel) SetError(msg string) {
	m.errorMsg = msg
}

// Error returns the message under the drop zone.
func (m UploadModel) Error() string {
	return m.errorMsg
}

// DropActive reports whether the drop zone is highlighted.
func (m UploadModel) DropActive() bool {
	return m.dropActive
}

// CurrentDirectory returns the directory being browsed.
func (m UploadModel) CurrentDirectory() string {
	return m.picker.CurrentDirectory
}

// CleanDroppedPath turns pasted drag-and-drop text into a file path. It
// handles surrounding quotes, file:// URLs and backslash-escaped spaces, and
// keeps only the first path when several files are dropped.
func CleanDroppedPath(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	if text == "" {
		return ""
	}

	if len(text) >= 2 {
		if q := text[0]; (q == '\'' || q == '"') && text[len(text)-1] == q {
			return text[1 : len(text)-1]
		}
	}

	if strings.HasPrefix(text, "file://") {
		if u, err := url.Parse(text); err == nil {
			return u.Path
		}
	}

	return strings.ReplaceAll(text, `\ `, " ")
}
