// Package symtab implements the lexically scoped symbol table (C3):
// a stack of Scopes, each allocating dense 4-byte offsets and resolving
// names upward through its parent chain. Per spec.md §4.2 and §9, closed
// scopes are never destroyed — the assembly emitter (lang/asm) needs their
// offsets after the parser has finished and torn down its live scope
// stack. A name can be declared in more than one scope (a parameter
// shadowing an outer variable, say), so there is no single flat name→Entity
// table: Table.AllScopes exposes every scope ever opened, in open order,
// so a caller running after the parse can replay the same begin_block/
// end_block nesting the parser saw and resolve each occurrence through its
// own scope's parent chain, exactly as Scope.Find does during parsing.
package symtab

import (
	"fmt"
	"io"
	"sort"

	"github.com/dolthub/swiss"
)

// EntityKind distinguishes a declared Variable from a compiler-generated
// TemporaryVariable. Both store identically (spec.md §3: "treated
// identically to a declared variable for storage"); the kind is kept only
// for diagnostics.
type EntityKind uint8

const (
	Variable EntityKind = iota
	TemporaryVariable
)

func (k EntityKind) String() string {
	if k == TemporaryVariable {
		return "TemporaryVariable"
	}
	return "Variable"
}

// Entity is a declared name: a Variable or a TemporaryVariable, both typed
// "int" and assigned a stack offset within their declaring Scope.
type Entity struct {
	Name   string
	Kind   EntityKind
	Offset uint32
}

// Scope is one lexical frame: a name→Entity table plus a monotonic offset
// counter, linked to its enclosing scope.
type Scope struct {
	id       int
	parent   *Scope
	entities *swiss.Map[string, *Entity]
	order    []string // insertion order, for WriteDebug only
	next     uint32
}

func newScope(id int, parent *Scope) *Scope {
	return &Scope{id: id, parent: parent, entities: swiss.NewMap[string, *Entity](8)}
}

// Declare adds entity to the scope. It is an error (compileerr.Semantic, via
// the caller) to declare the same name twice in one scope; Declare reports
// that as a plain bool so callers can attach position information.
func (s *Scope) Declare(e *Entity) (ok bool) {
	if _, found := s.entities.Get(e.Name); found {
		return false
	}
	s.entities.Put(e.Name, e)
	s.order = append(s.order, e.Name)
	return true
}

// Find resolves name in this scope or any ancestor, returning nil if
// undeclared anywhere in the chain.
func (s *Scope) Find(name string) *Entity {
	for sc := s; sc != nil; sc = sc.parent {
		if e, ok := sc.entities.Get(name); ok {
			return e
		}
	}
	return nil
}

// Parent returns s's enclosing scope, or nil for the top-level scope. It
// lets a caller outside this package (lang/asm) walk the same parent chain
// Find does, one link at a time.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// ID returns the scope's index in the order it was opened (0 for the
// top-level scope).
func (s *Scope) ID() int {
	return s.id
}

// AllocateOffset returns the scope's next free 4-byte-aligned offset and
// advances the counter, mirroring SymbolTable.allocate_offset in the
// source.
func (s *Scope) AllocateOffset() uint32 {
	off := s.next
	s.next += 4
	return off
}

// Table is the compiler-wide symbol table: a stack of live Scopes plus the
// full list of every Scope ever opened, kept alive after CloseScope so a
// post-parse consumer (lang/asm) can still walk scope parent chains for
// offset lookups (spec.md §9).
type Table struct {
	stack     []*Scope
	nextID    int
	allScopes []*Scope
}

// New returns an empty Table with no open scopes.
func New() *Table {
	return &Table{}
}

// OpenScope pushes a new scope, parented to the current top of stack (or no
// parent if the stack is empty).
func (t *Table) OpenScope() *Scope {
	var parent *Scope
	if len(t.stack) > 0 {
		parent = t.stack[len(t.stack)-1]
	}
	sc := newScope(t.nextID, parent)
	t.nextID++
	t.stack = append(t.stack, sc)
	t.allScopes = append(t.allScopes, sc)
	return sc
}

// CloseScope pops and returns the current scope. The popped Scope is still
// reachable via Table.AllScopes after this call, so its entities remain
// resolvable by a post-parse consumer.
func (t *Table) CloseScope() *Scope {
	sc := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return sc
}

// Current returns the innermost open scope, or nil if none is open.
func (t *Table) Current() *Scope {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

// Declare declares entity in the current scope. It returns false on
// duplicate declaration.
func (t *Table) Declare(e *Entity) bool {
	return t.Current().Declare(e)
}

// Lookup resolves name starting from the current scope upward.
func (t *Table) Lookup(name string) *Entity {
	if t.Current() == nil {
		return nil
	}
	return t.Current().Find(name)
}

// AllocateOffset allocates the next offset in the current scope.
func (t *Table) AllocateOffset() uint32 {
	return t.Current().AllocateOffset()
}

// AllScopes returns every scope ever opened on t, in the order OpenScope
// produced them (scope 0, the top-level scope, first). Scopes are never
// removed from this list by CloseScope, so a consumer that runs after the
// parser has closed every scope (lang/asm) can still replay the exact
// begin_block/end_block nesting the parser saw and resolve names through
// the right scope's parent chain, instead of one global name→offset table
// that a shadowed name would collide in.
func (t *Table) AllScopes() []*Scope {
	return t.allScopes
}

// WriteDebug dumps every live scope (innermost first) to w, in the spirit
// of the source's Parser.program() calling symbol_table.print_table()
// after a successful parse.
func (t *Table) WriteDebug(w io.Writer) {
	fmt.Fprintln(w, "=== Symbol Table ===")
	for i := len(t.stack) - 1; i >= 0; i-- {
		sc := t.stack[i]
		names := append([]string(nil), sc.order...)
		sort.Strings(names)
		for _, name := range names {
			e, _ := sc.entities.Get(name)
			fmt.Fprintf(w, "%*s%s: {Name:%s Offset:%d}\n", (len(t.stack)-1-i)*2, "", e.Kind, e.Name, e.Offset)
		}
	}
}
