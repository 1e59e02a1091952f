package theme

import (
	"fmt"
	"strings"

	"github.com/zjrosen/prism/internal/lexer"
)

// Stylesheet returns the built-in stylesheet for name.
func Stylesheet(name Name) string {
	return Palettes(nil).Stylesheet(name)
}

// Stylesheet returns CSS rules for every class the HTML renderer emits
// under the given theme, so highlighted markup can stand alone.
func (ps Palettes) Stylesheet(name Name) string {
	p := ps.lookup(name)
	prefix := string(p.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "/* prism %s theme */\n", prefix)
	fmt.Fprintf(&b, ".%s-code { color: %s; background-color: %s; font-family: monospace; white-space: pre; }\n",
		prefix, p.Foreground, p.Background)
	fmt.Fprintf(&b, ".%s-token { color: %s; }\n", prefix, p.Fallback)

	for _, t := range lexer.Types() {
		color, ok := p.Colors[t]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, ".%s-token.%s { color: %s;%s }\n", prefix, t, color, fontRule(t))
	}

	fmt.Fprintf(&b, ".%s { background-color: %s; }\n", SearchClass, p.SearchBackground)
	return b.String()
}

func fontRule(t lexer.TokenType) string {
	switch t {
	case lexer.TypeComment:
		return " font-style: italic;"
	case lexer.TypeKeyword:
		return " font-weight: bold;"
	default:
		return ""
	}
}

// Document wraps markup in a page styled by the built-in palettes.
func Document(name Name, title, markup string) string {
	return Palettes(nil).Document(name, title, markup)
}

// Document wraps highlighted markup in a minimal HTML page carrying the
// theme stylesheet.
func (ps Palettes) Document(name Name, title, markup string) string {
	p := ps.lookup(name)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", escapeTitle(title))
	fmt.Fprintf(&b, "<style>\n%s</style>\n", ps.Stylesheet(name))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<div class=\"%s-code\">%s</div>\n", p.Name, markup)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

var titleReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeTitle(s string) string {
	return titleReplacer.Replace(s)
}
