package components

import (
	"fmt"
	"strings"

	"github.com/pablasso/meetmind/internal/render"
	"github.com/pablasso/meetmind/internal/tui/styles"
)

// RenderTabBar renders the tab control: "1 Summary  2 Action Items ..."
// with the active tab highlighted.
func RenderTabBar(active render.Tab) string {
	parts := make([]string, 0, len(render.Tabs))
	for i, tab := range render.Tabs {
		label := fmt.Sprintf("%d %s", i+1, tab.Title())
		if tab == active {
			parts = append(parts, styles.SelectedStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, styles.SubtleStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}
