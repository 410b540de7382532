package scanner_test

import (
	"testing"

	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/scanner"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanAll(t *testing.T) {
	src := `program P declare a, b;
{ a := 1 + 2 * 3 } # a trailing comment #
.`
	toks, err := scanner.New("p.ci", []byte(src)).ScanAll()
	require.NoError(t, err)

	want := []token.Token{
		{Lexeme: "program", Family: token.KEYWORD, Line: 1},
		{Lexeme: "P", Family: token.IDENTIFIER, Line: 1},
		{Lexeme: "declare", Family: token.KEYWORD, Line: 1},
		{Lexeme: "a", Family: token.IDENTIFIER, Line: 1},
		{Lexeme: ",", Family: token.SYMBOL, Line: 1},
		{Lexeme: "b", Family: token.IDENTIFIER, Line: 1},
		{Lexeme: ";", Family: token.SYMBOL, Line: 1},
		{Lexeme: "{", Family: token.SYMBOL, Line: 2},
		{Lexeme: "a", Family: token.IDENTIFIER, Line: 2},
		{Lexeme: ":=", Family: token.OPERATOR, Line: 2},
		{Lexeme: "1", Family: token.NUMBER, Line: 2},
		{Lexeme: "+", Family: token.OPERATOR, Line: 2},
		{Lexeme: "2", Family: token.NUMBER, Line: 2},
		{Lexeme: "*", Family: token.OPERATOR, Line: 2},
		{Lexeme: "3", Family: token.NUMBER, Line: 2},
		{Lexeme: "}", Family: token.SYMBOL, Line: 2},
		{Lexeme: ".", Family: token.SYMBOL, Line: 3},
	}
	assert.Equal(t, want, toks)
}

func TestScanAllTwoCharOperators(t *testing.T) {
	toks, err := scanner.New("p.ci", []byte("<= >= <> := < > = ")).ScanAll()
	require.NoError(t, err)
	var lexemes []string
	for _, tk := range toks {
		lexemes = append(lexemes, tk.Lexeme)
	}
	assert.Equal(t, []string{"<=", ">=", "<>", ":=", "<", ">", "="}, lexemes)
}

func TestScanAllUnknownCharacter(t *testing.T) {
	_, err := scanner.New("p.ci", []byte("a := 1 @ 2")).ScanAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown character")
}

func TestScanAllLineTracking(t *testing.T) {
	toks, err := scanner.New("p.ci", []byte("a\n\nb")).ScanAll()
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 3, toks[1].Line)
}
