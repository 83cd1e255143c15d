package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Document is a read-only scrollable text pane with a 1-column scrollbar on
// the right. It wraps bubbles/viewport.
type Document struct {
	viewport viewport.Model
	lines    []string
	width    int // total width including scrollbar
	height   int
}

// NewDocument creates a Document. The width includes the scrollbar column.
func NewDocument(width, height int) Document {
	vp := viewport.New(max(width-1, 0), height)
	vp.SetContent("")
	return Document{viewport: vp, width: width, height: height}
}

// SetSize updates the dimensions, keeping the scroll position in range.
func (d *Document) SetSize(width, height int) {
	if d.width == width && d.height == height {
		return
	}
	d.width = width
	d.height = height
	d.viewport.Width = d.ContentWidth()
	d.viewport.Height = height
	d.viewport.SetContent(strings.Join(d.lines, "\n"))
	d.viewport.SetYOffset(d.viewport.YOffset)
}

// SetContent replaces the text and scrolls back to the top.
func (d *Document) SetContent(content string) {
	d.lines = strings.Split(content, "\n")
	d.viewport.SetContent(content)
	d.viewport.GotoTop()
}

// Update handles scrolling keys and mouse wheel events.
func (d Document) Update(msg tea.Msg) (Document, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "home", "g":
			d.viewport.GotoTop()
		case "end", "G":
			d.viewport.GotoBottom()
		}
	}
	return d, cmd
}

// View renders the visible lines with the scrollbar.
func (d Document) View() string {
	content := strings.Split(d.viewport.View(), "\n")
	bar := ScrollbarLines(d.height, len(d.lines), d.viewport.YOffset)
	contentWidth := d.ContentWidth()

	var b strings.Builder
	for i := 0; i < d.height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := ""
		if i < len(content) {
			line = content[i]
		}
		b.WriteString(line)
		if pad := contentWidth - lipgloss.Width(line); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		if i < len(bar) {
			b.WriteString(bar[i])
		}
	}
	return b.String()
}

// ContentWidth returns the width available for text.
func (d Document) ContentWidth() int {
	return max(d.width-1, 0)
}

// YOffset returns the index of the first visible line.
func (d Document) YOffset() int {
	return d.viewport.YOffset
}

// LineCount returns the number of content lines.
func (d Document) LineCount() int {
	return len(d.lines)
}

// AtBottom reports whether the last line is visible.
func (d Document) AtBottom() bool {
	return d.viewport.AtBottom()
}
