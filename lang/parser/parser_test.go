package parser_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/ir"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/parser"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/scanner"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) *ir.Program {
	t.Helper()
	toks, err := scanner.New("test.ci", []byte(src)).ScanAll()
	require.NoError(t, err)
	res, err := parser.Parse("test.ci", toks)
	require.NoError(t, err)
	return res.Program
}

func intText(t *testing.T, prog *ir.Program) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, ir.WriteInt(&buf, prog))
	return buf.String()
}

func TestAssignmentAndArithmetic(t *testing.T) {
	prog := compile(t, `program P declare a; { a := 1 + 2 * 3 }.`)
	want := strings.Join([]string{
		"1: begin_block, P, _, _",
		"2: *, 2, 3, T_1",
		"3: +, 1, T_1, T_2",
		"4: :=, T_2, _, a",
		"5: halt, _, _, _",
		"6: end_block, P, _, _",
		"",
	}, "\n")
	require.Equal(t, want, intText(t, prog))
}

func TestIfElse(t *testing.T) {
	prog := compile(t, `program P declare a,b,x; { if (a < b) { x := 1 } else { x := 2 } }.`)
	quads := prog.Quads()
	for _, q := range quads {
		if q.Op != ir.Jump && !ir.Relational[q.Op] {
			continue
		}
		require.NotEqual(t, ir.Underscore, q.Z, "quad %v left unpatched", q)
	}
	// first quad after begin_block is the relational comparison
	require.Equal(t, ir.Lt, quads[1].Op)
}

func TestWhileLoopsBack(t *testing.T) {
	prog := compile(t, `program P declare a; { while (a < 10) { a := a + 1 } }.`)
	quads := prog.Quads()
	var relLabel, loopJump int
	for _, q := range quads {
		if q.Op == ir.Lt {
			relLabel = q.Label
		}
		if q.Op == ir.Jump && q.X == ir.Underscore && q.Label > relLabel && relLabel != 0 {
			loopJump = q.Label
		}
	}
	require.NotZero(t, relLabel)
	require.NotZero(t, loopJump)
	want := quads[loopJump-1]
	require.Equal(t, itoa(relLabel), want.Z)
}

func TestForcaseBackpatching(t *testing.T) {
	src := `program P declare a,b;
	{
		forcase
			case (a < b) { a := a + 1 }
			case (a > b) { a := a - 1 }
		default { a := 0 }
	}.`
	prog := compile(t, src)
	for _, q := range prog.Quads() {
		if q.Op != ir.Jump && !ir.Relational[q.Op] {
			continue
		}
		require.NotEqual(t, ir.Underscore, q.Z, "quad %v left unpatched", q)
	}
}

func TestIncaseFlagTemp(t *testing.T) {
	src := `program P declare a,b;
	{
		incase
			case (a < b) { a := 1 }
		default { a := 0 }
	}.`
	prog := compile(t, src)
	var sawFlagInit, sawFlagSet, sawFlagCheck bool
	for _, q := range prog.Quads() {
		if q.Op == ir.Assign && q.X == "0" {
			sawFlagInit = true
		}
		if q.Op == ir.Assign && q.X == "1" {
			sawFlagSet = true
		}
		if q.Op == ir.Eq && q.X == "1" {
			sawFlagCheck = true
		}
	}
	require.True(t, sawFlagInit)
	require.True(t, sawFlagSet)
	require.True(t, sawFlagCheck)
}

func TestFunctionCallEmitsParQuads(t *testing.T) {
	src := `program P
	declare a,b,x;
	function f(in p, inout q) declare r; { return(p) }
	{ x := f(in a, inout b) }.`
	prog := compile(t, src)
	var ops []string
	for _, q := range prog.Quads() {
		if q.Op == ir.Par || q.Op == ir.Call {
			ops = append(ops, string(q.Op)+" "+q.X+" "+q.Y)
		}
	}
	require.Equal(t, []string{"par a cv", "par b ref", "par T_1 ret", "call f _"}, ops)
}

func TestCallStatementOmitsParRet(t *testing.T) {
	src := `program P
	declare a,b;
	procedure swap(inout a, inout b) { return(0) }
	{ call swap(inout a, inout b) }.`
	prog := compile(t, src)
	var ops []string
	for _, q := range prog.Quads() {
		if q.Op == ir.Par || q.Op == ir.Call {
			ops = append(ops, string(q.Op)+" "+q.X+" "+q.Y)
		}
	}
	require.Equal(t, []string{"par a ref", "par b ref", "call swap _"}, ops)
}

func TestEmptyStatementsBlockEmitsNoBodyQuads(t *testing.T) {
	prog := compile(t, `program P { }.`)
	require.Equal(t, []ir.Op{ir.BeginBlock, ir.Halt, ir.EndBlock}, []ir.Op{
		prog.Quads()[0].Op, prog.Quads()[1].Op, prog.Quads()[2].Op,
	})
}

func TestDuplicateDeclarationIsSemanticError(t *testing.T) {
	toks, err := scanner.New("test.ci", []byte(`program P declare a, a; { }.`)).ScanAll()
	require.NoError(t, err)
	_, err = parser.Parse("test.ci", toks)
	require.Error(t, err)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
