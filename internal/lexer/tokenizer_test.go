package lexer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/prism/internal/log"
)

// typed returns the non-whitespace tokens as value/type pairs.
func typed(tokens []Token) [][2]string {
	var out [][2]string
	for _, tok := range tokens {
		if strings.TrimSpace(tok.Value) == "" {
			continue
		}
		out = append(out, [2]string{tok.Value, string(tok.Type)})
	}
	return out
}

func findToken(t *testing.T, tokens []Token, value string) Token {
	t.Helper()
	for _, tok := range tokens {
		if tok.Value == value {
			return tok
		}
	}
	require.Failf(t, "token not found", "no token %q in %v", value, tokens)
	return Token{}
}

func TestTokenize_PythonFunction(t *testing.T) {
	tokens := Tokenize("def foo():\n    return 1", "python")

	def := findToken(t, tokens, "def")
	require.Equal(t, TypeKeyword, def.Type)
	require.Equal(t, 1, def.Line)

	foo := findToken(t, tokens, "foo")
	require.Equal(t, TypeFunction, foo.Type)
	require.Equal(t, 1, foo.Line)

	ret := findToken(t, tokens, "return")
	require.Equal(t, TypeKeyword, ret.Type)
	require.Equal(t, 2, ret.Line)

	one := findToken(t, tokens, "1")
	require.Equal(t, TypeNumber, one.Type)
	require.Equal(t, 2, one.Line)

	indent := findToken(t, tokens, "    ")
	require.False(t, indent.Typed())
	require.Equal(t, 2, indent.Line)
}

func TestTokenize_JSONKeyBeatsString(t *testing.T) {
	tokens := Tokenize(`{"a": 1}`, "json")

	require.Equal(t, [][2]string{
		{"{", "punctuation"},
		{`"a"`, "key"},
		{":", "punctuation"},
		{"1", "number"},
		{"}", "punctuation"},
	}, typed(tokens))
}

func TestTokenize_JSONValueStringIsString(t *testing.T) {
	tokens := Tokenize(`{"name": "prism", "ok": true}`, "JSON")

	require.Equal(t, TypeKey, findToken(t, tokens, `"name"`).Type)
	require.Equal(t, TypeString, findToken(t, tokens, `"prism"`).Type)
	require.Equal(t, TypeConstant, findToken(t, tokens, "true").Type)
}

// Matches take the type of the first rule in declaration order that took
// part, even when a later rule would describe the text better.
func TestTokenize_FirstParticipatingRuleWins(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		language string
		value    string
		want     TokenType
	}{
		{"python builtin call", `print("hi")`, "python", "print", TypeBuiltin},
		{"python constant", "x = True", "python", "True", TypeConstant},
		{"javascript set call", "cache.set(key)", "javascript", "set", TypeKeyword},
		{"c keyword call", "sizeof(int)", "c", "sizeof", TypeKeyword},
		{"json key before string", `{"k": "v"}`, "json", `"k"`, TypeKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.text, tt.language)
			require.Equal(t, tt.want, findToken(t, tokens, tt.value).Type)
		})
	}
}

func TestTokenize_LanguageScenarios(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		language string
		want     map[string]TokenType
	}{
		{
			name:     "rust macro",
			text:     `println!("hi")`,
			language: "rust",
			want:     map[string]TokenType{"println!": TypeMacro, `"hi"`: TypeString},
		},
		{
			name:     "sql is case-insensitive",
			text:     "SELECT id FROM users",
			language: "sql",
			want:     map[string]TokenType{"SELECT": TypeKeyword, "FROM": TypeKeyword, "id": TypeVariable},
		},
		{
			name:     "bash variable and comment",
			text:     "echo $HOME # note",
			language: "shell",
			want:     map[string]TokenType{"echo": TypeBuiltin, "$HOME": TypeVariable, "# note": TypeComment},
		},
		{
			name:     "c include",
			text:     "#include <stdio.h>",
			language: "c",
			want:     map[string]TokenType{"#include": TypePreprocessor, "<stdio.h>": TypeString},
		},
		{
			name:     "html attribute",
			text:     `<a href="x">`,
			language: "html",
			want:     map[string]TokenType{"<a": TypeTag, "href": TypeAttribute, `"x"`: TypeString, ">": TypeTag},
		},
		{
			name:     "dockerfile stage alias",
			text:     "FROM golang AS build",
			language: "dockerfile",
			want:     map[string]TokenType{"FROM": TypeKeyword, "AS": TypeKeyword},
		},
		{
			name:     "makefile target",
			text:     "build: main.go",
			language: "makefile",
			want:     map[string]TokenType{"build": TypeTarget, ":": TypeOperator},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.text, tt.language)
			for value, typ := range tt.want {
				require.Equal(t, typ, findToken(t, tokens, value).Type, "value %q", value)
			}
		})
	}
}

func TestTokenize_MultiLineMatchIsSplit(t *testing.T) {
	tokens := Tokenize("x = 1 /* a\n\nb */ y", "c")

	var comments []Token
	for _, tok := range tokens {
		if tok.Type == TypeComment {
			comments = append(comments, tok)
		}
	}
	require.Equal(t, []Token{
		{Value: "/* a", Type: TypeComment, Line: 1},
		{Value: "b */", Type: TypeComment, Line: 3},
	}, comments)
	require.Equal(t, 3, findToken(t, tokens, "y").Line)
}

func TestTokenize_EmptyText(t *testing.T) {
	require.Empty(t, Tokenize("", "python"))
	require.Empty(t, Tokenize("", "cobol"))
}

func TestTokenize_UnknownLanguageFallsBack(t *testing.T) {
	text := "first line\n\nthird line\n"
	tokens := Tokenize(text, "cobol")

	require.Equal(t, []Token{
		{Value: "first line", Line: 1},
		{Value: "", Line: 2},
		{Value: "third line", Line: 3},
		{Value: "", Line: 4},
	}, tokens)
}

func TestTokenize_InputLimitFallsBack(t *testing.T) {
	tk := New(Options{MaxInputBytes: 8})

	require.Equal(t, Lines("x = 12345678"), tk.Tokenize("x = 12345678", "python"))
	require.NotEqual(t, Lines("x = 1"), tk.Tokenize("x = 1", "python"))
}

func TestTokenize_BudgetFallsBack(t *testing.T) {
	tk := New(Options{Budget: time.Second})
	clock := time.Unix(0, 0)
	tk.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	text := "a = 1\nb = 2"
	require.Equal(t, Lines(text), tk.Tokenize(text, "python"))
}

func TestTokenize_NonASCIIIdentifierStartStaysUntyped(t *testing.T) {
	text := "éclair = 1"
	tokens := Tokenize(text, "python")

	var joined strings.Builder
	for _, tok := range tokens {
		joined.WriteString(tok.Value)
		if strings.Contains(tok.Value, "é") {
			require.Equal(t, Untyped, tok.Type, "token %q", tok.Value)
		}
		require.NotEqual(t, "clair", tok.Value)
	}
	require.Equal(t, text, joined.String())
	require.Equal(t, TypeNumber, findToken(t, tokens, "1").Type)
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.InitWriter(&buf, log.LevelDebug)
	t.Cleanup(func() { log.SetEnabled(false) })
	return &buf
}

func TestTokenize_MalformedPatternFallsBack(t *testing.T) {
	logs := captureLog(t)
	tk := New(Options{})
	tk.rules[Python] = []Rule{{TypeKeyword, `(unclosed`}}

	text := "a = 1\n\nb = 2"
	require.Equal(t, Lines(text), tk.Tokenize(text, "python"))
	require.Nil(t, tk.program(Python))
	require.Contains(t, logs.String(), "pattern compilation failed")
	require.Contains(t, logs.String(), "language=python")

	// Other languages still compile.
	require.NotEqual(t, Lines("echo hi"), tk.Tokenize("echo hi", "bash"))
}

func TestTokenize_MatchTimeoutFallsBack(t *testing.T) {
	logs := captureLog(t)
	tk := New(Options{MatchTimeout: time.Millisecond})
	tk.rules[Python] = []Rule{{TypeKeyword, `(a+)+b`}}

	// A short input matches, so the rule itself is usable.
	require.Equal(t, [][2]string{{"aab", string(TypeKeyword)}}, typed(tk.Tokenize("aab", "python")))

	text := strings.Repeat("a", 40) + "c\nx"
	require.Equal(t, Lines(text), tk.Tokenize(text, "python"))
	require.Contains(t, logs.String(), "tokenization abandoned")

	_, err := tk.scan(tk.program(Python), text)
	require.Error(t, err)
	require.Contains(t, err.Error(), "timeout")
}

func TestTokenize_AliasesShareRules(t *testing.T) {
	text := "const x = require('fs');"
	want := Tokenize(text, "javascript")
	for _, tag := range []string{"react", "node", "express", "JavaScript"} {
		require.Equal(t, want, Tokenize(text, tag), "tag %q", tag)
	}
}

func TestCompileRules_EveryLanguageCompiles(t *testing.T) {
	for _, lang := range Languages() {
		prog, err := compileRules(registry[lang], DefaultMatchTimeout)
		require.NoError(t, err, "language %s", lang)
		require.Len(t, prog.groups, len(registry[lang]))
	}
}

func TestCompileRules_Empty(t *testing.T) {
	_, err := compileRules(nil, 0)
	require.Error(t, err)
}

var genAlphabet = []rune("abcdefxyz_ \t\n0123456789\"'`#/*(){}[]<>:;=.,$@!-+&|\\?%é")

func genText() *rapid.Generator[string] {
	return rapid.StringOfN(rapid.RuneFrom(genAlphabet), 0, 200, -1)
}

func genTag() *rapid.Generator[string] {
	tags := []string{"unknown", "cobol", ""}
	for _, lang := range Languages() {
		tags = append(tags, lang.Tags()...)
	}
	return rapid.SampledFrom(tags)
}

func TestTokenize_PropertyLossless(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		tag := genTag().Draw(rt, "tag")

		tokens := Tokenize(text, tag)
		if got := Join(tokens, LineCount(text)); got != text {
			rt.Fatalf("Join(Tokenize(%q, %q)) = %q", text, tag, got)
		}
	})
}

func TestTokenize_PropertyLinesMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		tag := genTag().Draw(rt, "tag")

		prev := 1
		for _, tok := range Tokenize(text, tag) {
			if strings.Contains(tok.Value, "\n") {
				rt.Fatalf("token %q straddles a line break", tok.Value)
			}
			if tok.Line < prev {
				rt.Fatalf("line %d after line %d", tok.Line, prev)
			}
			if tok.Line > LineCount(text) {
				rt.Fatalf("line %d beyond %d lines", tok.Line, LineCount(text))
			}
			prev = tok.Line
		}
	})
}

func TestTokenize_PropertyKnownLanguagesEmitNoEmptyTokens(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		lang := rapid.SampledFrom(Languages()).Draw(rt, "lang")

		for _, tok := range Tokenize(text, lang.String()) {
			if tok.Value == "" {
				rt.Fatalf("empty token on line %d", tok.Line)
			}
		}
	})
}

func TestTokenize_PropertyFallbackOneTokenPerLine(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		if text == "" {
			return
		}

		tokens := Tokenize(text, "cobol")
		lines := strings.Split(text, "\n")
		if len(tokens) != len(lines) {
			rt.Fatalf("got %d tokens for %d lines", len(tokens), len(lines))
		}
		for i, tok := range tokens {
			if tok.Typed() || tok.Value != lines[i] || tok.Line != i+1 {
				rt.Fatalf("token %d = %+v, want untyped %q on line %d", i, tok, lines[i], i+1)
			}
		}
	})
}
