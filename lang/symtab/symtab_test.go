package symtab_test

import (
	"testing"

	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareAndAllocateOffset(t *testing.T) {
	tab := symtab.New()
	tab.OpenScope()

	assert.True(t, tab.Declare(&symtab.Entity{Name: "a", Kind: symtab.Variable, Offset: tab.AllocateOffset()}))
	assert.True(t, tab.Declare(&symtab.Entity{Name: "b", Kind: symtab.Variable, Offset: tab.AllocateOffset()}))

	a := tab.Lookup("a")
	require.NotNil(t, a)
	assert.Equal(t, uint32(0), a.Offset)

	b := tab.Lookup("b")
	require.NotNil(t, b)
	assert.Equal(t, uint32(4), b.Offset)
}

func TestDeclareDuplicateInSameScopeFails(t *testing.T) {
	tab := symtab.New()
	tab.OpenScope()

	assert.True(t, tab.Declare(&symtab.Entity{Name: "a", Offset: tab.AllocateOffset()}))
	assert.False(t, tab.Declare(&symtab.Entity{Name: "a", Offset: tab.AllocateOffset()}))
}

func TestLookupWalksParentChain(t *testing.T) {
	tab := symtab.New()
	tab.OpenScope()
	require.True(t, tab.Declare(&symtab.Entity{Name: "outer", Offset: tab.AllocateOffset()}))

	tab.OpenScope()
	require.True(t, tab.Declare(&symtab.Entity{Name: "inner", Offset: tab.AllocateOffset()}))

	assert.NotNil(t, tab.Lookup("inner"))
	assert.NotNil(t, tab.Lookup("outer"))
	assert.Nil(t, tab.Lookup("nonexistent"))

	tab.CloseScope()
	assert.Nil(t, tab.Lookup("inner"))
	assert.NotNil(t, tab.Lookup("outer"))
}

// TestShadowedNameResolvesPerScope is the regression case for a name
// declared in two different scopes (an inner parameter/local shadowing an
// outer variable of the same name): each declaration must keep its own
// offset, resolvable independently once both scopes are closed, the way
// lang/asm resolves operands after the parser has torn down its live
// scope stack.
func TestShadowedNameResolvesPerScope(t *testing.T) {
	tab := symtab.New()
	tab.OpenScope() // scope 0: global
	require.True(t, tab.Declare(&symtab.Entity{Name: "b", Offset: tab.AllocateOffset()}))
	require.True(t, tab.Declare(&symtab.Entity{Name: "a", Offset: tab.AllocateOffset()}))
	require.True(t, tab.Declare(&symtab.Entity{Name: "x", Offset: tab.AllocateOffset()}))

	tab.OpenScope() // scope 1: function f(in a)
	require.True(t, tab.Declare(&symtab.Entity{Name: "a", Offset: tab.AllocateOffset()}))
	tab.CloseScope()

	scopes := tab.AllScopes()
	require.Len(t, scopes, 2)

	global, fn := scopes[0], scopes[1]

	globalA := global.Find("a")
	require.NotNil(t, globalA)
	assert.Equal(t, uint32(4), globalA.Offset, "global a is the second declaration in scope 0")

	fnA := fn.Find("a")
	require.NotNil(t, fnA)
	assert.Equal(t, uint32(0), fnA.Offset, "f's parameter a is the first declaration in scope 1")

	assert.NotEqual(t, globalA.Offset, fnA.Offset,
		"the two declarations of \"a\" must resolve to distinct offsets through their own scope")

	// fn's scope still resolves x by walking up to its parent.
	assert.NotNil(t, fn.Find("x"))
}

func TestAllScopesSurvivesCloseScope(t *testing.T) {
	tab := symtab.New()
	top := tab.OpenScope()
	tab.OpenScope()
	tab.CloseScope()

	scopes := tab.AllScopes()
	require.Len(t, scopes, 2)
	assert.Equal(t, top.ID(), scopes[0].ID())
	assert.NotNil(t, scopes[1].Parent())
}

func TestScopeParentChain(t *testing.T) {
	tab := symtab.New()
	outer := tab.OpenScope()
	inner := tab.OpenScope()

	assert.Nil(t, outer.Parent())
	assert.Equal(t, outer.ID(), inner.Parent().ID())
}
