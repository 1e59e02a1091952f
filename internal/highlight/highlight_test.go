package highlight

import (
	"html"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/prism/internal/lexer"
	"github.com/zjrosen/prism/internal/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func TestSyntaxHighlight_SearchSplitsToken(t *testing.T) {
	got := SyntaxHighlight("foobar", "python", Options{Search: "oob"})

	want := `<span class="default-token variable">f</span>` +
		`<span class="searchHighlight"><span class="default-token variable">oob</span></span>` +
		`<span class="default-token variable">ar</span>`
	require.Equal(t, want, got)
}

func TestSegments_SplitAcrossTokens(t *testing.T) {
	tokens := []lexer.Token{
		{Value: "foo", Type: lexer.TypeVariable, Line: 1},
		{Value: " ", Line: 1},
		{Value: "bar", Type: lexer.TypeFunction, Line: 1},
	}

	segs := Segments(tokens, []Range{{Start: 2, End: 5}})

	require.Equal(t, []Segment{
		{Text: "fo", Type: lexer.TypeVariable},
		{Text: "o", Type: lexer.TypeVariable, Match: true},
		{Text: " ", Match: true},
		{Text: "b", Type: lexer.TypeFunction, Match: true},
		{Text: "ar", Type: lexer.TypeFunction},
	}, segs)
}

func TestSegments_NoMatches(t *testing.T) {
	tokens := []lexer.Token{{Value: "héllo", Type: lexer.TypeString}}
	require.Equal(t, []Segment{{Text: "héllo", Type: lexer.TypeString}}, Segments(tokens, nil))
}

func TestSyntaxHighlight_EscapesOnce(t *testing.T) {
	got := SyntaxHighlight(`x = "<a href='&amp;'>"`, "python", Options{})

	require.Contains(t, got, `&quot;&lt;a href=&#39;&amp;amp;&#39;&gt;&quot;`)
	require.NotContains(t, got, "<a")
}

func TestSyntaxHighlight_RawTag(t *testing.T) {
	text := "if a < b:\n    pass"
	for _, tag := range []string{"unknown", "UNKNOWN", " Unknown "} {
		got := SyntaxHighlight(text, tag, Options{Search: "a"})
		require.Equal(t, "if a &lt; b:<br/>    pass", got)
	}
}

func TestSyntaxHighlight_UnrecognizedLanguageUsesPlainLines(t *testing.T) {
	got := SyntaxHighlight("a <b>\n\nc", "cobol", Options{})
	require.Equal(t, "a &lt;b&gt;<br/><br/>c", got)
}

func TestSyntaxHighlight_EmptyText(t *testing.T) {
	require.Equal(t, "", SyntaxHighlight("", "python", Options{Search: "x"}))
	require.Equal(t, "", SyntaxHighlight("", "unknown", Options{}))
}

func TestSyntaxHighlight_ThemeClasses(t *testing.T) {
	got := SyntaxHighlight("def", "python", Options{Theme: theme.Dark})
	require.Equal(t, `<span class="dark-token keyword">def</span>`, got)

	got = SyntaxHighlight("def", "python", Options{Theme: "nope"})
	require.Equal(t, `<span class="default-token keyword">def</span>`, got)
}

func TestSyntaxHighlight_CaseSensitivity(t *testing.T) {
	text := "Foo = foo"

	insensitive := SyntaxHighlight(text, "python", Options{Search: "foo"})
	require.Equal(t, 2, strings.Count(insensitive, theme.SearchClass))

	sensitive := SyntaxHighlight(text, "python", Options{Search: "foo", CaseSensitive: true})
	require.Equal(t, 1, strings.Count(sensitive, theme.SearchClass))
}

func TestSyntaxHighlight_SearchIsLiteral(t *testing.T) {
	got := SyntaxHighlight("axb = a.b", "unknown-lang", Options{Search: "a.b"})
	require.Equal(t, 1, strings.Count(got, theme.SearchClass))
	require.Contains(t, got, `<span class="searchHighlight">a.b</span>`)
}

func TestSearch_Find(t *testing.T) {
	s, err := NewSearch("aa", false)
	require.NoError(t, err)
	require.Equal(t, []Range{{0, 2}, {2, 4}}, s.Find("aaaaa"))

	s, err = NewSearch("é", true)
	require.NoError(t, err)
	require.Equal(t, []Range{{1, 2}}, s.Find("hé!"))

	empty, err := NewSearch("", false)
	require.NoError(t, err)
	require.False(t, empty.Active())
	require.Nil(t, empty.Find("anything"))
}

func TestRenderANSI(t *testing.T) {
	tokens := lexer.Tokenize("def f():\n    pass", "python")
	out := RenderANSI(tokens, 2, Options{Theme: theme.Dark, Search: "pa"})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	require.Contains(t, stripANSI(lines[0]), "def f():")
	require.Equal(t, "    pass", stripANSI(lines[1]))
	require.NotEqual(t, stripANSI(out), out)
}

func TestRenderANSI_UsesPalettes(t *testing.T) {
	ps, err := theme.NewPalettes(map[string]string{"dark.keyword": "#FF0000"})
	require.NoError(t, err)
	tokens := lexer.Tokenize("def", "python")

	custom := RenderANSI(tokens, 1, Options{Theme: theme.Dark, Palettes: ps})
	builtin := RenderANSI(tokens, 1, Options{Theme: theme.Dark})

	require.Equal(t, ps.Style(lexer.TypeKeyword, theme.Dark).Render("def"), custom)
	require.Equal(t, theme.Style(lexer.TypeKeyword, theme.Dark).Render("def"), builtin)
	require.NotEqual(t, custom, builtin)
}

func TestNew_NilUsesDefaultTokenizer(t *testing.T) {
	require.Same(t, lexer.Default(), New(nil).tokenizer)
	require.Same(t, lexer.Default(), defaultHighlighter.tokenizer)
}

func TestHighlighter_UsesItsTokenizer(t *testing.T) {
	h := New(lexer.New(lexer.Options{MaxInputBytes: 2}))
	got := h.SyntaxHighlight("def", "python", Options{})
	require.Equal(t, "def", got)
}

var tagPattern = regexp.MustCompile(`</?span[^>]*>`)

func stripTags(markup string) string {
	return tagPattern.ReplaceAllString(markup, "")
}

func stripANSI(s string) string {
	return ansi.Strip(s)
}

var genAlphabet = []rune("abcAB xyz_\t\n0123\"'<>&#/*(){}:;=.é")

func genText() *rapid.Generator[string] {
	return rapid.StringOfN(rapid.RuneFrom(genAlphabet), 0, 120, -1)
}

func genLanguage() *rapid.Generator[string] {
	return rapid.SampledFrom([]string{"python", "javascript", "c", "json", "html", "bash", "cobol"})
}

func TestSyntaxHighlight_PropertyTextRecoverable(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		lang := genLanguage().Draw(rt, "lang")
		search := rapid.StringOfN(rapid.RuneFrom([]rune("abAB ")), 0, 3, -1).Draw(rt, "search")

		markup := SyntaxHighlight(text, lang, Options{Search: search})
		lines := strings.Split(stripTags(markup), LineBreak)
		if got := html.UnescapeString(strings.Join(lines, "\n")); got != text {
			rt.Fatalf("recovered %q, want %q", got, text)
		}
	})
}

func TestSyntaxHighlight_PropertyNoRawMarkupCharacters(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		lang := genLanguage().Draw(rt, "lang")

		body := strings.ReplaceAll(stripTags(SyntaxHighlight(text, lang, Options{})), LineBreak, "")
		if strings.ContainsAny(body, `<>"'`) {
			rt.Fatalf("unescaped markup in %q", body)
		}
	})
}

func TestSyntaxHighlight_PropertyIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		lang := genLanguage().Draw(rt, "lang")
		opts := Options{Search: "a", CaseSensitive: rapid.Bool().Draw(rt, "case")}

		if SyntaxHighlight(text, lang, opts) != SyntaxHighlight(text, lang, opts) {
			rt.Fatalf("output differs between calls")
		}
	})
}

func genTokens() *rapid.Generator[[]lexer.Token] {
	return rapid.Custom(func(rt *rapid.T) []lexer.Token {
		n := rapid.IntRange(0, 8).Draw(rt, "n")
		tokens := make([]lexer.Token, n)
		for i := range tokens {
			tokens[i] = lexer.Token{
				Value: rapid.StringOfN(rapid.RuneFrom([]rune("abé ")), 1, 6, -1).Draw(rt, "value"),
				Type:  rapid.SampledFrom([]lexer.TokenType{lexer.Untyped, lexer.TypeKeyword, lexer.TypeString}).Draw(rt, "type"),
				Line:  1,
			}
		}
		return tokens
	})
}

// Matched segments cover exactly the search ranges and nothing else.
func TestSegments_PropertyMatchContainment(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tokens := genTokens().Draw(rt, "tokens")
		term := rapid.StringOfN(rapid.RuneFrom([]rune("abé ")), 1, 3, -1).Draw(rt, "term")

		search, err := NewSearch(term, true)
		if err != nil {
			rt.Fatalf("NewSearch: %v", err)
		}
		line := lineText(tokens)
		matches := search.Find(line)

		inMatch := make([]bool, len([]rune(line)))
		for _, m := range matches {
			for i := m.Start; i < m.End; i++ {
				inMatch[i] = true
			}
		}

		var rebuilt strings.Builder
		pos, ti, consumed := 0, 0, 0
		for _, seg := range Segments(tokens, matches) {
			if seg.Text == "" {
				rt.Fatalf("empty segment")
			}
			for consumed >= len([]rune(tokens[ti].Value)) {
				consumed = 0
				ti++
			}
			if seg.Type != tokens[ti].Type {
				rt.Fatalf("segment %q has type %q, token has %q", seg.Text, seg.Type, tokens[ti].Type)
			}
			for range []rune(seg.Text) {
				if inMatch[pos] != seg.Match {
					rt.Fatalf("rune %d match=%v, segment match=%v", pos, inMatch[pos], seg.Match)
				}
				pos++
				consumed++
			}
			rebuilt.WriteString(seg.Text)
		}
		if rebuilt.String() != line {
			rt.Fatalf("segments rebuild %q, want %q", rebuilt.String(), line)
		}
	})
}
