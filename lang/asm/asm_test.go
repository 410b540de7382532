package asm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/asm"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/parser"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEmitsEntryJumpAndRuntime(t *testing.T) {
	toks, err := scanner.New("p.ci", []byte(`program P declare a; { a := 1 + 2 * 3 }.`)).ScanAll()
	require.NoError(t, err)
	res, err := parser.Parse("p.ci", toks)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, asm.Write(&buf, res.Program, res.Symbols, 1024, "a0"))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "    la sp, _stack\n    addi sp, sp, 1024\n    j Lmain\n"))
	assert.Contains(t, out, "Lmain: # begin_block P")
	assert.Contains(t, out, "    mul t2, t0, t1")
	assert.Contains(t, out, "read_int:")
	assert.Contains(t, out, "print_int:")
}

func TestWriteParModes(t *testing.T) {
	src := `program P
	declare a,b,x;
	function f(in p, inout q) declare r; { return(p) }
	{ x := f(in a, inout b) }.`
	toks, err := scanner.New("p.ci", []byte(src)).ScanAll()
	require.NoError(t, err)
	res, err := parser.Parse("p.ci", toks)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, asm.Write(&buf, res.Program, res.Symbols, 1024, "a0"))
	out := buf.String()

	assert.Contains(t, out, "# par cv")
	assert.Contains(t, out, "# par ref")
	assert.Contains(t, out, "# par ret")
	assert.Contains(t, out, "sw t0, -100(sp)")
	assert.Contains(t, out, "sw t0, -104(sp)")
}

// TestWriteResolvesShadowedNameByScope is the regression case for a
// parameter shadowing an outer variable of the same name: the global "a"
// (declared second, offset 4) and f's parameter "a" (declared first in its
// own scope, offset 0) must resolve to their own scope's offset rather than
// colliding in a single flat name table.
func TestWriteResolvesShadowedNameByScope(t *testing.T) {
	src := `program P
	declare b, a, x;
	function f(in a) { return(a) }
	{ x := f(in a) }.`
	toks, err := scanner.New("p.ci", []byte(src)).ScanAll()
	require.NoError(t, err)
	res, err := parser.Parse("p.ci", toks)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, asm.Write(&buf, res.Program, res.Symbols, 1024, "a0"))
	out := buf.String()

	// f's own "a" (its formal parameter, offset 0 in f's scope) is read by
	// the retv quad inside f's block.
	assert.Contains(t, out, "lw t0, -0(sp)\n    lw t1, -8(sp)")
	// the caller's "a" (the global, offset 4 in the program scope) is read
	// by the par cv quad passing it into f.
	assert.Contains(t, out, "lw t0, -4(sp)  # par cv")
}
