// Package ir implements the quad store (C2): an append-only, randomly
// addressable buffer of three/four-address intermediate instructions, plus
// the backpatching primitives the parser uses to resolve forward branches,
// and a textual writer/reader for the ".int" file format (C5).
package ir

import "fmt"

// Op identifies the operation of a Quad. Unlike a typical bytecode opcode,
// Op's string form doubles as its serialized token in the ".int" file
// format, so its values are exactly the operator lexemes and keyword names
// from spec.md §3.
type Op string

//nolint:revive
const (
	Add Op = "+"
	Sub Op = "-"
	Mul Op = "*"
	Div Op = "/"

	Assign Op = ":="

	Eq  Op = "="
	Neq Op = "<>"
	Lt  Op = "<"
	Le  Op = "<="
	Gt  Op = ">"
	Ge  Op = ">="

	Jump Op = "jump"
	Halt Op = "halt"

	BeginBlock Op = "begin_block"
	EndBlock   Op = "end_block"

	Par  Op = "par"
	Call Op = "call"
	Retv Op = "retv"

	Inp Op = "inp"
	Out Op = "out"
)

// Relational is the set of ops valid as a boolfactor comparison.
var Relational = map[Op]bool{
	Eq: true, Neq: true, Lt: true, Le: true, Gt: true, Ge: true,
}

// Arithmetic is the set of binary arithmetic ops.
var Arithmetic = map[Op]bool{Add: true, Sub: true, Mul: true, Div: true}

// Underscore is the placeholder operand meaning "unused" or "awaiting
// backpatch".
const Underscore = "_"

// Quad is a labeled four-tuple (op, x, y, z). The z field of a jump or
// relational quad is Underscore until backpatched to a concrete label.
type Quad struct {
	Label int
	Op    Op
	X, Y, Z string
}

func (q Quad) String() string {
	return fmt.Sprintf("%d: %s, %s, %s, %s", q.Label, q.Op, q.X, q.Y, q.Z)
}

// List is an ordered patch list: quad labels whose Z field still awaits a
// backpatch target. Two lists travel with every boolean expression result,
// truelist and falselist.
type List []int

// Program is the quad store plus the temporary-name counter. It is built
// incrementally by the parser (lang/parser) and consumed by the assembly
// emitter (lang/asm) and the quad interpreter (lang/interp).
type Program struct {
	Name     string // the Cimple "program" name, set once parsing completes
	quads    []Quad
	tempNext int
}

// NewProgram returns an empty quad store.
func NewProgram() *Program {
	return &Program{}
}

// Quads returns the final, backpatched quad slice. Callers must not mutate
// it other than through Backpatch.
func (p *Program) Quads() []Quad { return p.quads }

// NextQuad returns the label the next GenQuad call will assign, without
// advancing anything. Quad labels are 1-based and contiguous.
func (p *Program) NextQuad() int {
	return len(p.quads) + 1
}

// GenQuad appends a new quad with label NextQuad() and returns that label.
func (p *Program) GenQuad(op Op, x, y, z string) int {
	label := p.NextQuad()
	p.quads = append(p.quads, Quad{Label: label, Op: op, X: x, Y: y, Z: z})
	return label
}

// NewTemp returns the next compiler-generated temporary name, "T_k". It
// does not declare the name anywhere; the caller (lang/parser, via
// lang/symtab) is responsible for giving it a stack offset.
func (p *Program) NewTemp() string {
	p.tempNext++
	return fmt.Sprintf("T_%d", p.tempNext)
}

// MakeList returns the singleton patch list {label}.
func MakeList(label int) List {
	return List{label}
}

// Merge concatenates two patch lists. Duplicate labels are permitted and
// harmless (spec.md §4.1).
func Merge(a, b List) List {
	out := make(List, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// Backpatch rewrites the Z field of every quad named in list to target. It
// panics if a label in list is out of range or its Z field was already
// resolved (non-Underscore), since both indicate a bug in the translator:
// each patch-list slot is meant to be consumed exactly once.
func (p *Program) Backpatch(list List, target int) {
	for _, label := range list {
		idx := label - 1
		if idx < 0 || idx >= len(p.quads) {
			panic(fmt.Sprintf("ir: backpatch: label %d out of range (have %d quads)", label, len(p.quads)))
		}
		if p.quads[idx].Z != Underscore {
			panic(fmt.Sprintf("ir: backpatch: quad %d already backpatched to %q", label, p.quads[idx].Z))
		}
		p.quads[idx].Z = fmt.Sprintf("%d", target)
	}
}
