package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/prism/internal/lexer"
)

// RenderANSI renders a token stream as terminal text, one output line per
// source line joined by "\n". Colors come from opts.Palettes and search
// matches get the theme's search background.
func RenderANSI(tokens []lexer.Token, lineCount int, opts Options) string {
	return strings.Join(RenderLinesANSI(lexer.ByLine(tokens, lineCount), opts), "\n")
}

// RenderLinesANSI renders lines already grouped by lexer.ByLine.
func RenderLinesANSI(lines [][]lexer.Token, opts Options) []string {
	search := compileSearch(opts)
	out := make([]string, len(lines))
	for i, lineTokens := range lines {
		out[i] = renderLineANSI(lineTokens, search, opts)
	}
	return out
}

// RenderLineANSI renders the tokens of a single line.
func RenderLineANSI(tokens []lexer.Token, opts Options) string {
	return renderLineANSI(tokens, compileSearch(opts), opts)
}

func renderLineANSI(tokens []lexer.Token, search Search, opts Options) string {
	var searchStyle lipgloss.Style
	if search.Active() {
		searchStyle = opts.Palettes.SearchStyle(opts.Theme)
	}

	var b strings.Builder
	for _, seg := range Segments(tokens, search.Find(lineText(tokens))) {
		style := opts.Palettes.Style(seg.Type, opts.Theme)
		if seg.Match {
			style = style.Inherit(searchStyle)
		}
		b.WriteString(style.Render(seg.Text))
	}
	return b.String()
}

// ANSI tokenizes and renders text in one step.
func (h *Highlighter) ANSI(text, language string, opts Options) string {
	if IsRaw(language) {
		return text
	}
	return RenderANSI(h.tokenizer.Tokenize(text, language), lexer.LineCount(text), opts)
}
