package viewer

import "strings"

// windowBuffer is how many lines above the viewport are tokenized so that
// constructs opened just off screen still color the first visible rows.
const windowBuffer = 20

// Window returns up to height lines starting at offset, joined by "\n", and
// the index of the first returned line. Token line numbers from the text
// plus that index are positions in lines. offset is clamped into range.
func Window(lines []string, offset, height int) (string, int) {
	if len(lines) == 0 || height <= 0 {
		return "", 0
	}
	offset = max(0, min(offset, len(lines)-1))
	end := min(len(lines), offset+height)
	return strings.Join(lines[offset:end], "\n"), offset
}

// expandTabs replaces tabs with spaces up to the next multiple of width.
func expandTabs(line string, width int) string {
	if width <= 0 || !strings.Contains(line, "\t") {
		return line
	}

	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// splitLines splits text into display lines with tabs expanded.
func splitLines(text string, tabWidth int) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = expandTabs(line, tabWidth)
	}
	return lines
}
