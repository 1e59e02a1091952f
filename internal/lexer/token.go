// Package lexer implements the pattern registry and the regex-driven
// tokenizer that classifies source text into typed, line-numbered tokens.
package lexer

import (
	"encoding/json"
	"strings"
)

// TokenType is a semantic class tag such as "keyword" or "string".
// The empty TokenType marks text no pattern matched.
type TokenType string

// Token classes produced by the built-in pattern sets.
const (
	Untyped TokenType = ""

	TypeKeyword      TokenType = "keyword"
	TypeString       TokenType = "string"
	TypeComment      TokenType = "comment"
	TypeNumber       TokenType = "number"
	TypeOperator     TokenType = "operator"
	TypeFunction     TokenType = "function"
	TypeVariable     TokenType = "variable"
	TypeDatatype     TokenType = "datatype"
	TypeBuiltin      TokenType = "builtin"
	TypeConstant     TokenType = "constant"
	TypeKey          TokenType = "key"
	TypePunctuation  TokenType = "punctuation"
	TypeTag          TokenType = "tag"
	TypeAttribute    TokenType = "attribute"
	TypeJSXTag       TokenType = "jsx-tag"
	TypeDecorator    TokenType = "decorator"
	TypeAnnotation   TokenType = "annotation"
	TypePreprocessor TokenType = "preprocessor"
	TypeSelector     TokenType = "selector"
	TypeProperty     TokenType = "property"
	TypeDirective    TokenType = "directive"
	TypeRegister     TokenType = "register"
	TypeLabel        TokenType = "label"
	TypeInstruction  TokenType = "instruction"
	TypeMacro        TokenType = "macro"
	TypeLifetime     TokenType = "lifetime"
	TypeNamespace    TokenType = "namespace"
	TypeSymbol       TokenType = "symbol"
	TypeTarget       TokenType = "target"
	TypeRegex        TokenType = "regex"
	TypeFlag         TokenType = "flag"
	TypeEntity       TokenType = "entity"
)

var allTypes = []TokenType{
	TypeKeyword, TypeString, TypeComment, TypeNumber, TypeOperator, TypeFunction,
	TypeVariable, TypeDatatype, TypeBuiltin, TypeConstant, TypeKey, TypePunctuation,
	TypeTag, TypeAttribute, TypeJSXTag, TypeDecorator, TypeAnnotation, TypePreprocessor,
	TypeSelector, TypeProperty, TypeDirective, TypeRegister, TypeLabel, TypeInstruction,
	TypeMacro, TypeLifetime, TypeNamespace, TypeSymbol, TypeTarget, TypeRegex, TypeFlag,
	TypeEntity,
}

// Types returns every token class the built-in pattern sets can produce.
func Types() []TokenType {
	return append([]TokenType(nil), allTypes...)
}

// Token is a classified, contiguous piece of one source line.
type Token struct {
	Value string
	Type  TokenType
	Line  int
}

// Typed reports whether a pattern classified the token.
func (t Token) Typed() bool {
	return t.Type != Untyped
}

type tokenJSON struct {
	Value string  `json:"value" yaml:"value"`
	Type  *string `json:"type" yaml:"type"`
	Line  int     `json:"line" yaml:"line"`
}

func (t Token) wire() tokenJSON {
	out := tokenJSON{Value: t.Value, Line: t.Line}
	if t.Typed() {
		typ := string(t.Type)
		out.Type = &typ
	}
	return out
}

// MarshalJSON encodes an untyped token's type as null.
func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.wire())
}

// UnmarshalJSON accepts the encoding produced by MarshalJSON.
func (t *Token) UnmarshalJSON(data []byte) error {
	var in tokenJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	t.Value = in.Value
	t.Line = in.Line
	t.Type = Untyped
	if in.Type != nil {
		t.Type = TokenType(*in.Type)
	}
	return nil
}

// MarshalYAML encodes an untyped token's type as null.
func (t Token) MarshalYAML() (any, error) {
	return t.wire(), nil
}

// Lines returns the whole-line untyped tokenization of text: one token per
// "\n"-separated line, empty lines included. Empty text yields no tokens.
func Lines(text string) []Token {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	tokens := make([]Token, len(lines))
	for i, line := range lines {
		tokens[i] = Token{Value: line, Line: i + 1}
	}
	return tokens
}

// Join reconstructs source text from a token stream by concatenating values
// and inserting one newline per line-number increment. Trailing empty lines
// leave no token behind, so lineCount (see LineCount) pads the result.
func Join(tokens []Token, lineCount int) string {
	var b strings.Builder
	line := 1
	for _, tok := range tokens {
		for line < tok.Line {
			b.WriteByte('\n')
			line++
		}
		b.WriteString(tok.Value)
	}
	for line < lineCount {
		b.WriteByte('\n')
		line++
	}
	return b.String()
}

// ByLine groups tokens by line number. The result has lineCount entries;
// entry i holds the tokens of line i+1 in emission order.
func ByLine(tokens []Token, lineCount int) [][]Token {
	lines := make([][]Token, lineCount)
	for _, tok := range tokens {
		idx := tok.Line - 1
		if idx < 0 || idx >= lineCount {
			continue
		}
		lines[idx] = append(lines[idx], tok)
	}
	return lines
}

// LineCount returns the number of "\n"-separated lines in text.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}
