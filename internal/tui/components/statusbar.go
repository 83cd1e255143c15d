package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/meetmind/internal/tui/styles"
)

// StatusBar renders a bottom help bar showing contextual key hints and an
// optional right-aligned notice.
type StatusBar struct {
	notice      string
	noticeStyle lipgloss.Style
}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// WithNotice returns a copy of the bar that shows notice on the right.
func (s StatusBar) WithNotice(notice string, style lipgloss.Style) StatusBar {
	s.notice = notice
	s.noticeStyle = style
	return s
}

// Render returns the status bar string for the given width and items.
// Items are joined with " • ". The notice is dropped when it does not fit.
func (s StatusBar) Render(width int, items []string) string {
	content := strings.Join(items, " • ")

	if s.notice != "" {
		notice := s.noticeStyle.Render(s.notice)
		gap := width - lipgloss.Width(content) - lipgloss.Width(notice)
		if gap >= 2 {
			content += strings.Repeat(" ", gap) + notice
		}
	}

	return styles.StatusBarStyle.Width(width).Render(content)
}
