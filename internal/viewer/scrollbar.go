package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	scrollbarThumbChar = "█"
	scrollbarTrackChar = "░"
)

// thumbBounds returns the first row and height of the scroll thumb for a
// viewport of height rows over total lines scrolled to offset.
func thumbBounds(total, height, offset int) (start, size int) {
	if total <= 0 || height <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, height
	}

	size = max(1, height*height/total)

	maxOffset := total - height
	track := height - size
	if track <= 0 {
		return 0, size
	}

	start = track * offset / maxOffset
	return max(0, min(start, height-size)), size
}

// renderScrollbar renders height rows joined by "\n". Content that fits
// the viewport gets a blank column.
func renderScrollbar(total, height, offset int, track, thumb lipgloss.Style) string {
	if height <= 0 {
		return ""
	}

	rows := make([]string, height)
	if total <= height {
		for i := range rows {
			rows[i] = " "
		}
		return strings.Join(rows, "\n")
	}

	start, size := thumbBounds(total, height, offset)
	for row := range rows {
		if row >= start && row < start+size {
			rows[row] = thumb.Render(scrollbarThumbChar)
		} else {
			rows[row] = track.Render(scrollbarTrackChar)
		}
	}
	return strings.Join(rows, "\n")
}
