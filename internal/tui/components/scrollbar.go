package components

// Scrollbar glyphs.
const (
	scrollTrack = "│"
	scrollThumb = "█"
)

// ScrollbarLines returns one glyph per visible row for a 1-column scrollbar.
// Rows are blank while the content fits; otherwise a thumb sized to the
// visible fraction is placed in proportion to yOffset.
func ScrollbarLines(viewHeight, contentHeight, yOffset int) []string {
	if viewHeight <= 0 {
		return nil
	}

	lines := make([]string, viewHeight)
	if contentHeight <= viewHeight {
		for i := range lines {
			lines[i] = " "
		}
		return lines
	}

	thumbSize := max(viewHeight*viewHeight/contentHeight, 1)
	thumbMaxTop := viewHeight - thumbSize
	thumbTop := yOffset * thumbMaxTop / (contentHeight - viewHeight)
	thumbTop = min(max(thumbTop, 0), thumbMaxTop)

	for i := range lines {
		if i >= thumbTop && i < thumbTop+thumbSize {
			lines[i] = scrollThumb
		} else {
			lines[i] = scrollTrack
		}
	}
	return lines
}
