// Package asm implements the RISC-V assembly emitter (C6): a straight
// line-by-line lowering of a finished quad Program into RV32I text, driven
// entirely by the symbol table's offsets. It runs after the parser has
// closed every scope and torn down its live scope stack, so the emitter
// rebuilds one of its own: it replays each begin_block/end_block quad to
// push/pop the symtab.Scope the parser had open at that point, and resolves
// every operand through that scope's parent chain exactly as the parser
// did. A single flat name→offset table would get this wrong the moment one
// name is declared in two scopes (a parameter shadowing an outer variable).
package asm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/ir"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/symtab"
)

var binOpMnemonic = map[ir.Op]string{
	ir.Add: "add",
	ir.Sub: "sub",
	ir.Mul: "mul",
	ir.Div: "div",
}

var branchMnemonic = map[ir.Op]string{
	ir.Eq:  "beq",
	ir.Neq: "bne",
	ir.Lt:  "blt",
	ir.Le:  "ble",
	ir.Gt:  "bgt",
	ir.Ge:  "bge",
}

// Write lowers prog to RISC-V assembly text, written to w. prog.Name is the
// entry block to land the initial jump on (the Cimple program's name).
// stackSize sizes the reserved ".data" stack buffer and the initial stack
// pointer offset, and argReg is the register the Inp/Out quads use to take
// read_int's result and to pass print_int its argument (the source always
// uses a0). The read_int/print_int thunks themselves are emitted unchanged
// whatever argReg is.
func Write(w io.Writer, prog *ir.Program, syms *symtab.Table, stackSize int, argReg string) error {
	bw := bufio.NewWriter(w)
	e := &emitter{w: bw, progName: prog.Name, argReg: argReg, allScopes: syms.AllScopes()}
	if len(e.allScopes) > 0 {
		e.scopes = []*symtab.Scope{e.allScopes[0]}
		e.nextScope = 1
	}

	e.line("    la sp, _stack")
	e.line(fmt.Sprintf("    addi sp, sp, %d", stackSize))
	e.line("    j Lmain")

	for _, q := range prog.Quads() {
		e.quad(q)
	}

	e.line("")
	e.line(".data")
	e.line(fmt.Sprintf("_stack: .space %d", stackSize))
	e.line(`str_nl: .asciz "\n"`)
	e.line(".text")
	e.line("")
	e.line("# Runtime routines")
	e.line("read_int:")
	e.line("    li a7, 5")
	e.line("    ecall")
	e.line("    ret")
	e.line("")
	e.line("print_int:")
	e.line("    li a7, 1")
	e.line("    ecall")
	e.line("    ret")

	return bw.Flush()
}

type emitter struct {
	w           *bufio.Writer
	progName    string
	argReg      string
	mainEmitted bool
	err         error

	// allScopes/nextScope/scopes replay the parser's scope stack: allScopes
	// is every scope ever opened, in open order (scope 0 first); scopes is
	// the stack currently "active" as quad emission walks forward, and
	// nextScope is the index of the next not-yet-pushed scope in allScopes.
	allScopes []*symtab.Scope
	nextScope int
	scopes    []*symtab.Scope
}

func (e *emitter) line(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}

func (e *emitter) label(q ir.Quad) string {
	return fmt.Sprintf("L%d:", q.Label)
}

// loadOperand emits a load of operand (a literal or a named stack slot)
// into reg, prefixed with label (which may be empty).
func (e *emitter) loadOperand(reg, operand, label string) {
	if isNumber(operand) {
		e.line(fmt.Sprintf("%s li %s, %s", label, reg, operand))
		return
	}
	e.line(fmt.Sprintf("%s lw %s, -%d(sp)", label, reg, e.resolve(operand)))
}

// resolve looks up name's offset in the scope active at the current point
// in the quad stream, walking outward through its parent chain — the same
// lookup symtab.Scope.Find performs, so a parameter shadowing an outer
// variable of the same name resolves to its own scope's offset rather than
// whichever declaration happened to run last.
func (e *emitter) resolve(name string) uint32 {
	if len(e.scopes) == 0 {
		return 0
	}
	cur := e.scopes[len(e.scopes)-1]
	if ent := cur.Find(name); ent != nil {
		return ent.Offset
	}
	return 0
}

// pushScope and popScope replay the OpenScope/CloseScope calls the parser
// made at each begin_block/end_block quad. Every begin_block opens a new
// scope except the program's own (always the last begin_block quad, since
// program() emits it only after every subprogram has been fully parsed,
// and reuses the already-open top-level scope); every end_block closes one
// except that same final block, which leaves the top-level scope on the
// stack for any lookups after the last quad.
func (e *emitter) pushScope() {
	if e.nextScope < len(e.allScopes) {
		e.scopes = append(e.scopes, e.allScopes[e.nextScope])
		e.nextScope++
	}
}

func (e *emitter) popScope() {
	if len(e.scopes) > 1 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

func isNumber(v string) bool {
	if v == "" {
		return false
	}
	s := v
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (e *emitter) quad(q ir.Quad) {
	label := e.label(q)

	switch {
	case q.Op == ir.BeginBlock:
		x := q.X
		if !e.mainEmitted && (x == "main" || x == e.progName) {
			e.line(fmt.Sprintf("Lmain: # begin_block %s", x))
			e.mainEmitted = true
		} else {
			e.line(fmt.Sprintf("%s: # begin_block %s", x, x))
		}
		e.pushScope()
		return

	case binOpMnemonic[q.Op] != "":
		oz := e.resolve(q.Z)
		e.loadOperand("t0", q.X, label)
		e.loadOperand("t1", q.Y, "")
		e.line(fmt.Sprintf("    %s t2, t0, t1", binOpMnemonic[q.Op]))
		e.line(fmt.Sprintf("    sw t2, -%d(sp)", oz))

	case q.Op == ir.Assign:
		oz := e.resolve(q.Z)
		if isNumber(q.X) {
			e.line(fmt.Sprintf("%s li t0, %s", label, q.X))
		} else {
			e.line(fmt.Sprintf("%s lw t0, -%d(sp)", label, e.resolve(q.X)))
		}
		e.line(fmt.Sprintf("    sw t0, -%d(sp)", oz))

	case branchMnemonic[q.Op] != "":
		e.loadOperand("t0", q.X, label)
		e.loadOperand("t1", q.Y, "")
		e.line(fmt.Sprintf("    %s t0, t1, L%s", branchMnemonic[q.Op], q.Z))

	case q.Op == ir.Jump:
		e.line(fmt.Sprintf("%s j L%s", label, q.Z))

	case q.Op == ir.Par:
		ox := e.resolve(q.X)
		switch q.Y {
		case "cv":
			e.line(fmt.Sprintf("%s lw t0, -%d(sp)  # par cv", label, ox))
			e.line("    sw t0, -100(sp)")
		case "ref":
			e.line(fmt.Sprintf("%s addi t0, sp, -%d  # par ref", label, ox))
			e.line("    sw t0, -100(sp)")
		case "ret":
			e.line(fmt.Sprintf("%s addi t0, sp, -%d  # par ret", label, ox))
			e.line("    sw t0, -104(sp)")
		}

	case q.Op == ir.Call:
		e.line(fmt.Sprintf("%s jal %s", label, q.X))

	case q.Op == ir.Inp:
		ox := e.resolve(q.X)
		e.line(fmt.Sprintf("%s call read_int", label))
		e.line(fmt.Sprintf("    sw %s, -%d(sp)", e.argReg, ox))

	case q.Op == ir.Out:
		ox := e.resolve(q.X)
		e.line(fmt.Sprintf("%s lw %s, -%d(sp)", label, e.argReg, ox))
		e.line("    call print_int")

	case q.Op == ir.Retv:
		ox := e.resolve(q.X)
		e.line(fmt.Sprintf("%s lw t0, -%d(sp)", label, ox))
		e.line("    lw t1, -8(sp)")
		e.line("    sw t0, 0(t1)")

	case q.Op == ir.EndBlock:
		e.line(fmt.Sprintf("%s ret", label))
		e.popScope()

	case q.Op == ir.Halt:
		e.line(fmt.Sprintf("%s # halt", label))

	default:
		e.line(fmt.Sprintf("# %s Unhandled op: %s %s %s", label, q.Op, q.X, q.Y))
	}
}
