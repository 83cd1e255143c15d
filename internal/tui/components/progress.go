package components

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	filledChar = "■"
	emptyChar  = "□"
)

// Progress renders upload progress like: ■■■■□□□□ 50% · 1.2 MB of 2.4 MB
type Progress struct {
	Sent  int64
	Total int64
	Width int // character width of the bar portion
}

// NewProgress creates a new Progress instance.
func NewProgress(sent, total int64, width int) Progress {
	return Progress{Sent: sent, Total: total, Width: width}
}

// View returns the rendered progress bar. An unknown total renders only
// the byte count.
func (p Progress) View() string {
	if p.Total <= 0 || p.Width <= 0 {
		if p.Sent > 0 {
			return humanize.Bytes(uint64(p.Sent)) + " sent"
		}
		return ""
	}

	sent := min(max(p.Sent, 0), p.Total)
	percent := sent * 100 / p.Total
	filled := int(sent * int64(p.Width) / p.Total)

	bar := strings.Repeat(filledChar, filled) + strings.Repeat(emptyChar, p.Width-filled)
	return fmt.Sprintf("%s %d%% · %s of %s", bar, percent,
		humanize.Bytes(uint64(sent)), humanize.Bytes(uint64(p.Total)))
}
