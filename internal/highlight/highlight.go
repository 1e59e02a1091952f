package highlight

import (
	"strings"

	"github.com/zjrosen/prism/internal/lexer"
	"github.com/zjrosen/prism/internal/log"
	"github.com/zjrosen/prism/internal/theme"
)

// LineBreak joins rendered lines in markup output.
const LineBreak = "<br/>"

// RawTag is the language tag that skips tokenization entirely.
const RawTag = "unknown"

// Options control a single render.
type Options struct {
	Search        string
	CaseSensitive bool
	Theme         theme.Name
	// Palettes colors ANSI output. Nil uses the built-in palettes.
	Palettes theme.Palettes
}

// Highlighter renders text through a Tokenizer.
type Highlighter struct {
	tokenizer *lexer.Tokenizer
}

// New creates a Highlighter. A nil tokenizer uses lexer.Default.
func New(tk *lexer.Tokenizer) *Highlighter {
	if tk == nil {
		tk = lexer.Default()
	}
	return &Highlighter{tokenizer: tk}
}

var defaultHighlighter = New(nil)

// SyntaxHighlight renders text with the default tokenizer.
func SyntaxHighlight(text, language string, opts Options) string {
	return defaultHighlighter.SyntaxHighlight(text, language, opts)
}

// Tokenize exposes the highlighter's tokenizer.
func (h *Highlighter) Tokenize(text, language string) []lexer.Token {
	return h.tokenizer.Tokenize(text, language)
}

// IsRaw reports whether language selects raw, untokenized output.
func IsRaw(language string) bool {
	return strings.EqualFold(strings.TrimSpace(language), RawTag)
}

// SyntaxHighlight renders text as HTML markup: one rendered line per source
// line joined by LineBreak. Typed text is wrapped in a span carrying the
// theme's two-class scheme, and search matches are wrapped in a
// searchHighlight span outside it. The raw tag skips tokenization and the
// search overlay.
func (h *Highlighter) SyntaxHighlight(text, language string, opts Options) string {
	if IsRaw(language) {
		return Raw(text)
	}

	return Markup(h.tokenizer.Tokenize(text, language), lexer.LineCount(text), opts)
}

// Markup renders an existing token stream the way SyntaxHighlight does.
func Markup(tokens []lexer.Token, lineCount int, opts Options) string {
	search := compileSearch(opts)
	lines := lexer.ByLine(tokens, lineCount)

	out := make([]string, len(lines))
	for i, lineTokens := range lines {
		out[i] = renderLine(lineTokens, search, opts.Theme)
	}
	return strings.Join(out, LineBreak)
}

// Raw escapes text and joins its lines with LineBreak.
func Raw(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = Escape(line)
	}
	return strings.Join(lines, LineBreak)
}

func compileSearch(opts Options) Search {
	search, err := NewSearch(opts.Search, opts.CaseSensitive)
	if err != nil {
		// Escaped literals always compile; keep rendering without the overlay.
		log.ErrorErr(log.CatHighlight, "search term rejected", err, "term", opts.Search)
		return Search{}
	}
	return search
}

func lineText(tokens []lexer.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Value)
	}
	return b.String()
}

func renderLine(tokens []lexer.Token, search Search, name theme.Name) string {
	var b strings.Builder
	for _, seg := range Segments(tokens, search.Find(lineText(tokens))) {
		if seg.Match {
			b.WriteString(`<span class="` + theme.SearchClass + `">`)
		}
		if seg.Type != lexer.Untyped {
			b.WriteString(`<span class="`)
			b.WriteString(Escape(theme.ClassName(name, seg.Type)))
			b.WriteString(`">`)
			b.WriteString(Escape(seg.Text))
			b.WriteString(`</span>`)
		} else {
			b.WriteString(Escape(seg.Text))
		}
		if seg.Match {
			b.WriteString(`</span>`)
		}
	}
	return b.String()
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces the five HTML-significant characters with entities.
func Escape(s string) string {
	return escaper.Replace(s)
}
