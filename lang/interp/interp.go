// Package interp implements the small tree-walking quad interpreter used
// for smoke tests (spec.md §1: a thin, uninteresting collaborator with a
// fixed interface). It executes a single flat block of quads directly,
// without resolving call/par/retv — the same scope the source's own
// intermediate_code_executor.py covers.
package interp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/ir"
)

// Run executes prog's quads against a fresh variable store, reading "inp"
// values from stdin and writing "out" values to stdout, one per line. It
// returns once a halt quad executes or the quad list runs out.
func Run(prog *ir.Program, stdin io.Reader, stdout io.Writer) error {
	mem := map[string]int{}
	quads := prog.Quads()

	index := make(map[int]int, len(quads))
	for i, q := range quads {
		index[q.Label] = i
	}

	in := bufio.NewScanner(stdin)
	out := bufio.NewWriter(stdout)
	defer out.Flush()

	value := func(s string) int {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		return mem[s]
	}

	pc := 0
	for pc < len(quads) {
		q := quads[pc]
		switch {
		case q.Op == ir.BeginBlock || q.Op == ir.EndBlock:
			// block markers, no operation

		case q.Op == ir.Inp:
			if !in.Scan() {
				return fmt.Errorf("interp: expected input for %s", q.X)
			}
			n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
			if err != nil {
				return fmt.Errorf("interp: invalid input for %s: %w", q.X, err)
			}
			mem[q.X] = n

		case q.Op == ir.Assign:
			mem[q.Z] = value(q.X)

		case ir.Arithmetic[q.Op]:
			x, y := value(q.X), value(q.Y)
			var result int
			switch q.Op {
			case ir.Add:
				result = x + y
			case ir.Sub:
				result = x - y
			case ir.Mul:
				result = x * y
			case ir.Div:
				result = x / y
			}
			mem[q.Z] = result

		case ir.Relational[q.Op]:
			x, y := value(q.X), value(q.Y)
			var hold bool
			switch q.Op {
			case ir.Eq:
				hold = x == y
			case ir.Neq:
				hold = x != y
			case ir.Lt:
				hold = x < y
			case ir.Le:
				hold = x <= y
			case ir.Gt:
				hold = x > y
			case ir.Ge:
				hold = x >= y
			}
			if hold {
				target, err := strconv.Atoi(q.Z)
				if err != nil {
					return fmt.Errorf("interp: invalid branch target %q: %w", q.Z, err)
				}
				idx, ok := index[target]
				if !ok {
					return fmt.Errorf("interp: unknown label %d", target)
				}
				pc = idx
				continue
			}

		case q.Op == ir.Jump:
			target, err := strconv.Atoi(q.Z)
			if err != nil {
				return fmt.Errorf("interp: invalid jump target %q: %w", q.Z, err)
			}
			idx, ok := index[target]
			if !ok {
				return fmt.Errorf("interp: unknown label %d", target)
			}
			pc = idx
			continue

		case q.Op == ir.Out:
			fmt.Fprintln(out, value(q.X))

		case q.Op == ir.Halt:
			return nil

		default:
			return fmt.Errorf("interp: unsupported op %q at label %d", q.Op, q.Label)
		}
		pc++
	}
	return nil
}
