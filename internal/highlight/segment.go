// Package highlight renders token streams as themed HTML markup or ANSI
// text, overlaying literal search matches.
package highlight

import (
	"github.com/dlclark/regexp2"

	"github.com/zjrosen/prism/internal/lexer"
)

// Range is a half-open rune range within one line.
type Range struct {
	Start, End int
}

// Segment is a piece of a token that lies entirely inside or entirely
// outside a search match.
type Segment struct {
	Text  string
	Type  lexer.TokenType
	Match bool
}

// Search finds literal occurrences of a term in single lines.
// The zero value, and a Search built from an empty term, matches nothing.
type Search struct {
	re *regexp2.Regexp
}

// NewSearch compiles term as an escaped literal.
func NewSearch(term string, caseSensitive bool) (Search, error) {
	if term == "" {
		return Search{}, nil
	}
	opts := regexp2.RegexOptions(0)
	if !caseSensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(regexp2.Escape(term), opts)
	if err != nil {
		return Search{}, err
	}
	return Search{re: re}, nil
}

// Active reports whether the search can match anything.
func (s Search) Active() bool {
	return s.re != nil
}

// Find returns the non-overlapping matches in line, left to right.
func (s Search) Find(line string) []Range {
	if s.re == nil || line == "" {
		return nil
	}
	var out []Range
	m, err := s.re.FindRunesMatch([]rune(line))
	for ; m != nil && err == nil; m, err = s.re.FindNextMatch(m) {
		if m.Length == 0 {
			continue
		}
		out = append(out, Range{Start: m.Index, End: m.Index + m.Length})
	}
	return out
}

// Segments splits one line's tokens at match boundaries. Offsets in matches
// are rune positions in the concatenation of the token values. Every rune of
// every token appears in exactly one segment, in order.
func Segments(tokens []lexer.Token, matches []Range) []Segment {
	var segs []Segment
	pos, mi := 0, 0

	for _, tok := range tokens {
		runes := []rune(tok.Value)
		start, end := pos, pos+len(runes)

		for cut := start; cut < end; {
			for mi < len(matches) && matches[mi].End <= cut {
				mi++
			}

			next, inMatch := end, false
			if mi < len(matches) {
				m := matches[mi]
				if m.Start <= cut {
					next, inMatch = min(end, m.End), true
				} else {
					next = min(end, m.Start)
				}
			}

			segs = append(segs, Segment{
				Text:  string(runes[cut-start : next-start]),
				Type:  tok.Type,
				Match: inMatch,
			})
			cut = next
		}
		pos = end
	}
	return segs
}
