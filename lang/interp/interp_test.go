package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/interp"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/parser"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/scanner"
	"github.com/stretchr/testify/require"
)

func TestRunAssignmentAndArithmetic(t *testing.T) {
	toks, err := scanner.New("p.ci", []byte(`program P declare a; { a := 1 + 2 * 3; print(a) }.`)).ScanAll()
	require.NoError(t, err)
	res, err := parser.Parse("p.ci", toks)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, interp.Run(res.Program, strings.NewReader(""), &out))
	require.Equal(t, "7\n", out.String())
}

func TestRunWhileLoop(t *testing.T) {
	src := `program P declare a;
	{
		a := 0;
		while (a < 3) { a := a + 1 };
		print(a)
	}.`
	toks, err := scanner.New("p.ci", []byte(src)).ScanAll()
	require.NoError(t, err)
	res, err := parser.Parse("p.ci", toks)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, interp.Run(res.Program, strings.NewReader(""), &out))
	require.Equal(t, "3\n", out.String())
}

func TestRunInputEchoesValue(t *testing.T) {
	src := `program P declare a;
	{
		input(a);
		print(a)
	}.`
	toks, err := scanner.New("p.ci", []byte(src)).ScanAll()
	require.NoError(t, err)
	res, err := parser.Parse("p.ci", toks)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, interp.Run(res.Program, strings.NewReader("42\n"), &out))
	require.Equal(t, "42\n", out.String())
}

func TestRunIfElseTakesFalseBranch(t *testing.T) {
	src := `program P declare a,x;
	{
		a := 5;
		if (a < 3) { x := 1 } else { x := 2 };
		print(x)
	}.`
	toks, err := scanner.New("p.ci", []byte(src)).ScanAll()
	require.NoError(t, err)
	res, err := parser.Parse("p.ci", toks)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, interp.Run(res.Program, strings.NewReader(""), &out))
	require.Equal(t, "2\n", out.String())
}
