package lexer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestToken_JSONUntypedIsNull(t *testing.T) {
	data, err := json.Marshal([]Token{
		{Value: "def", Type: TypeKeyword, Line: 1},
		{Value: " ", Line: 1},
	})
	require.NoError(t, err)
	require.JSONEq(t, `[
		{"value":"def","type":"keyword","line":1},
		{"value":" ","type":null,"line":1}
	]`, string(data))

	var back []Token
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, TypeKeyword, back[0].Type)
	require.False(t, back[1].Typed())
}

func TestToken_YAML(t *testing.T) {
	data, err := yaml.Marshal([]Token{{Value: "1", Type: TypeNumber, Line: 2}, {Value: "x", Line: 3}})
	require.NoError(t, err)
	require.Contains(t, string(data), "type: number")
	require.Contains(t, string(data), "type: null")
}

func TestLines(t *testing.T) {
	require.Nil(t, Lines(""))
	require.Equal(t, []Token{{Value: "", Line: 1}, {Value: "", Line: 2}}, Lines("\n"))
}

func TestJoin_PadsTrailingLines(t *testing.T) {
	tokens := []Token{{Value: "a", Line: 1}, {Value: "b", Line: 3}}
	require.Equal(t, "a\n\nb", Join(tokens, 3))
	require.Equal(t, "a\n\nb\n\n", Join(tokens, 5))
	require.Equal(t, "\n", Join(nil, 2))
}

func TestByLine(t *testing.T) {
	tokens := []Token{
		{Value: "a", Line: 1},
		{Value: "b", Line: 1},
		{Value: "c", Line: 3},
		{Value: "stray", Line: 9},
	}
	lines := ByLine(tokens, 3)
	require.Len(t, lines, 3)
	require.Len(t, lines[0], 2)
	require.Empty(t, lines[1])
	require.Equal(t, "c", lines[2][0].Value)
}
