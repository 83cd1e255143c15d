package components

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/meetmind/internal/render"
)

func TestStatusBar_Render_Items(t *testing.T) {
	result := NewStatusBar().Render(60, []string{"1-5 Tabs", "e Export", "q Quit"})

	for _, want := range []string{"1-5 Tabs", "e Export", "q Quit", "•"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected result to contain %q, got: %s", want, result)
		}
	}
}

func TestStatusBar_Render_EmptyItems(t *testing.T) {
	result := NewStatusBar().Render(50, nil)
	if lipgloss.Width(result) != 50 {
		t.Errorf("expected padded width 50, got %d", lipgloss.Width(result))
	}
}

func TestStatusBar_Notice(t *testing.T) {
	bar := NewStatusBar().WithNotice("Saved", lipgloss.NewStyle())

	wide := bar.Render(60, []string{"q Quit"})
	if !strings.Contains(wide, "Saved") {
		t.Errorf("expected notice in wide bar, got: %s", wide)
	}

	narrow := bar.Render(8, []string{"q Quit"})
	if strings.Contains(narrow, "Saved") {
		t.Errorf("expected notice to be dropped when it does not fit, got: %s", narrow)
	}
}

func TestScrollbarLines_ZeroHeight(t *testing.T) {
	if got := ScrollbarLines(0, 100, 0); got != nil {
		t.Errorf("expected nil for zero height, got %v", got)
	}
}

func TestScrollbarLines_ContentFits(t *testing.T) {
	lines := ScrollbarLines(10, 10, 0)
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if line != " " {
			t.Errorf("line %d: expected blank gutter, got %q", i, line)
		}
	}
}

func TestScrollbarLines_ThumbPosition(t *testing.T) {
	tests := []struct {
		offset   int
		thumbRow int
	}{
		{offset: 0, thumbRow: 0},
		{offset: 90, thumbRow: 9},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("offset %d", tt.offset), func(t *testing.T) {
			lines := ScrollbarLines(10, 100, tt.offset)
			for i, line := range lines {
				want := scrollTrack
				if i == tt.thumbRow {
					want = scrollThumb
				}
				if line != want {
					t.Errorf("line %d: expected %q, got %q", i, want, line)
				}
			}
		})
	}
}

func TestDocument_SetContentScrollsToTop(t *testing.T) {
	d := NewDocument(20, 5)

	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	d.SetContent(strings.Join(lines, "\n"))

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	if !d.AtBottom() {
		t.Fatalf("expected G to scroll to bottom")
	}

	d.SetContent("short")
	if d.YOffset() != 0 {
		t.Errorf("expected new content to start at top, got offset %d", d.YOffset())
	}
	if d.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", d.LineCount())
	}
}

func TestDocument_ViewHasFixedHeight(t *testing.T) {
	d := NewDocument(20, 4)
	d.SetContent("a\nb")

	view := d.View()
	if got := strings.Count(view, "\n") + 1; got != 4 {
		t.Errorf("expected 4 rows, got %d", got)
	}
	for i, row := range strings.Split(view, "\n") {
		if w := lipgloss.Width(row); w != 20 {
			t.Errorf("row %d: expected width 20, got %d", i, w)
		}
	}
}

func TestDocument_SetSize(t *testing.T) {
	d := NewDocument(20, 4)
	d.SetSize(40, 8)
	if d.ContentWidth() != 39 {
		t.Errorf("expected content width 39, got %d", d.ContentWidth())
	}
}

func TestProgress_View(t *testing.T) {
	got := NewProgress(50, 100, 10).View()
	if !strings.HasPrefix(got, "■■■■■□□□□□ 50%") {
		t.Errorf("unexpected progress bar: %q", got)
	}
	if !strings.Contains(got, "of 100 B") {
		t.Errorf("expected byte totals, got %q", got)
	}
}

func TestProgress_ClampsOverflow(t *testing.T) {
	got := NewProgress(500, 100, 4).View()
	if !strings.HasPrefix(got, "■■■■ 100%") {
		t.Errorf("expected clamped bar, got %q", got)
	}
}

func TestProgress_UnknownTotal(t *testing.T) {
	if got := NewProgress(0, 0, 10).View(); got != "" {
		t.Errorf("expected empty view, got %q", got)
	}
	if got := NewProgress(2048, 0, 10).View(); !strings.Contains(got, "sent") {
		t.Errorf("expected byte count, got %q", got)
	}
}

func TestRenderTabBar_AllTabs(t *testing.T) {
	bar := RenderTabBar(render.TabTodos)
	for i, tab := range render.Tabs {
		want := fmt.Sprintf("%d %s", i+1, tab.Title())
		if !strings.Contains(bar, want) {
			t.Errorf("expected tab bar to contain %q, got %s", want, bar)
		}
	}
	if !strings.Contains(bar, "[2 Action Items]") {
		t.Errorf("expected active tab to be bracketed, got %s", bar)
	}
}
