package theme

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/prism/internal/lexer"
)

// Errors returned by NewPalettes, Validate and ParseStrict.
var (
	ErrUnknownTheme    = errors.New("unknown theme")
	ErrUnknownColorKey = errors.New("unknown color key")
	ErrInvalidColor    = errors.New("invalid hex color")
)

// Keys for the non-class colors of a palette, usable in overrides.
const (
	KeyForeground = "foreground"
	KeyBackground = "background"
	KeySearch     = "search"
	KeyFallback   = "fallback"
)

// SearchClass is the CSS class wrapped around search matches.
const SearchClass = "searchHighlight"

// Palettes holds one palette per theme. A nil Palettes, or one missing a
// theme, reads the built-in palette.
type Palettes map[Name]Palette

// Builtin returns a copy of the built-in palettes.
func Builtin() Palettes {
	out := make(Palettes, len(builtin))
	for name, p := range builtin {
		p.Colors = maps.Clone(p.Colors)
		out[name] = p
	}
	return out
}

// ParseName resolves a theme name case-insensitively. Unknown names resolve
// to Default with ok set to false.
func ParseName(s string) (Name, bool) {
	name := Name(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := builtin[name]; ok {
		return name, true
	}
	return Default, false
}

// ParseStrict resolves a theme name, rejecting unknown names.
func ParseStrict(s string) (Name, error) {
	name, ok := ParseName(s)
	if !ok {
		return Default, fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
	return name, nil
}

func resolve(name Name) Name {
	resolved, _ := ParseName(string(name))
	return resolved
}

func (ps Palettes) lookup(name Name) Palette {
	name = resolve(name)
	if p, ok := ps[name]; ok {
		return p
	}
	return builtin[name]
}

// Get returns a copy of the palette for name.
func (ps Palettes) Get(name Name) Palette {
	p := ps.lookup(name)
	p.Colors = maps.Clone(p.Colors)
	return p
}

// Color returns the hex color for a token class. Untyped text and classes
// the palette does not list get the palette's fallback color.
func (ps Palettes) Color(t lexer.TokenType, name Name) string {
	p := ps.lookup(name)
	if c, ok := p.Colors[t]; ok && t != lexer.Untyped {
		return c
	}
	return p.Fallback
}

// Style returns the terminal style for a token class.
func (ps Palettes) Style(t lexer.TokenType, name Name) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(ps.Color(t, name)))
	switch t {
	case lexer.TypeComment:
		s = s.Italic(true)
	case lexer.TypeKeyword:
		s = s.Bold(true)
	}
	return s
}

// SearchStyle returns the style layered over search matches.
func (ps Palettes) SearchStyle(name Name) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(ps.lookup(name).SearchBackground))
}

// Get returns a copy of the built-in palette for name.
func Get(name Name) Palette {
	return Palettes(nil).Get(name)
}

// Color returns the built-in color for a token class.
func Color(t lexer.TokenType, name Name) string {
	return Palettes(nil).Color(t, name)
}

// Style returns the built-in terminal style for a token class.
func Style(t lexer.TokenType, name Name) lipgloss.Style {
	return Palettes(nil).Style(t, name)
}

// SearchStyle returns the built-in style for search matches.
func SearchStyle(name Name) lipgloss.Style {
	return Palettes(nil).SearchStyle(name)
}

// ClassName returns the two-class CSS scheme for a typed span,
// e.g. "default-token keyword".
func ClassName(name Name, t lexer.TokenType) string {
	return string(resolve(name)) + "-token " + string(t)
}

// NewPalettes layers color overrides over the built-in palettes.
// Keys are "<theme>.<class>" or a bare "<class>" for every theme, where
// class is a token type or one of foreground, background, search, fallback.
func NewPalettes(overrides map[string]string) (Palettes, error) {
	next := Builtin()

	for key, value := range overrides {
		if !isValidHexColor(value) {
			return nil, fmt.Errorf("%w for %s: %s", ErrInvalidColor, key, value)
		}

		themes := Names
		class := key
		if prefix, rest, found := strings.Cut(key, "."); found {
			name, ok := ParseName(prefix)
			if !ok {
				return nil, fmt.Errorf("%w in color key %s", ErrUnknownTheme, key)
			}
			themes = []Name{name}
			class = rest
		}

		for _, name := range themes {
			p := next[name]
			if !setColor(&p, class, value) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownColorKey, key)
			}
			next[name] = p
		}
	}
	return next, nil
}

// Validate checks overrides without building palettes for use.
func Validate(overrides map[string]string) error {
	_, err := NewPalettes(overrides)
	return err
}

func setColor(p *Palette, class, value string) bool {
	switch class {
	case KeyForeground:
		p.Foreground = value
	case KeyBackground:
		p.Background = value
	case KeySearch:
		p.SearchBackground = value
	case KeyFallback:
		p.Fallback = value
	default:
		t := lexer.TokenType(class)
		if !slices.Contains(lexer.Types(), t) {
			return false
		}
		p.Colors[t] = value
	}
	return true
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
