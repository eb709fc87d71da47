package scope

import (
	"testing"

	"github.com/sssc-dev/sssc/expression"
	"github.com/stretchr/testify/require"
)

func num(f float64) expression.Value {
	return expression.NewNumeric(expression.NumberFromFloat(f), expression.NoUnit())
}

func TestGetUnboundReturnsNull(t *testing.T) {
	s := New(expression.DefaultFormat())
	require.True(t, expression.IsNull(s.Get("nope")))
}

func TestDefineAndGetWalkParents(t *testing.T) {
	root := New(expression.DefaultFormat())
	root.Define("color", num(1))

	child := root.Child()
	require.Equal(t, num(1), child.Get("color"))

	child.Define("color", num(2))
	require.Equal(t, num(2), child.Get("color"))
	require.Equal(t, num(1), root.Get("color"), "child shadowing must not mutate the parent")
}

func TestSetDefaultOnlyWritesWhenUnboundOrNull(t *testing.T) {
	s := New(expression.DefaultFormat())
	require.NoError(t, s.Set("size", num(10), true, false))
	require.Equal(t, num(10), s.Get("size"))

	require.NoError(t, s.Set("size", num(99), true, false))
	require.Equal(t, num(10), s.Get("size"), "!default must not overwrite an existing non-null value")

	require.NoError(t, s.Set("size", num(5), false, false))
	require.Equal(t, num(5), s.Get("size"), "a plain Set always overwrites")
}

func TestSetGlobalErrorsWhenUnbound(t *testing.T) {
	root := New(expression.DefaultFormat())
	child := root.Child()

	err := child.Set("accent", num(1), false, true)
	require.Error(t, err, "!global assignment to a name with no existing global binding must fail")
}

func TestSetGlobalWritesNearestGlobalScope(t *testing.T) {
	root := New(expression.DefaultFormat())
	root.Define("accent", num(1))
	child := root.Child()

	require.NoError(t, child.Set("accent", num(2), false, true))
	require.Equal(t, num(2), root.Get("accent"))
	require.Equal(t, num(2), child.Get("accent"))
}

func TestFunctionAndMixinLookupWalkParents(t *testing.T) {
	root := New(expression.DefaultFormat())
	fn := &Function{Decl: root}
	root.DefineFunction("double", fn)

	child := root.Child()
	got, ok := child.GetFunction("double")
	require.True(t, ok)
	require.Same(t, fn, got)

	_, ok = child.GetFunction("missing")
	require.False(t, ok)

	mx := &Mixin{Decl: root}
	root.DefineMixin("box", mx)
	gotMixin, ok := child.GetMixin("box")
	require.True(t, ok)
	require.Same(t, mx, gotMixin)
}

func TestSelectorsWalkParentsUntilFound(t *testing.T) {
	root := New(expression.DefaultFormat())
	require.Nil(t, root.Selectors())

	outer := root.PushSelectors([]Selector{".a"})
	inner := outer.Child()
	require.Equal(t, []Selector{".a"}, inner.Selectors())

	innerPushed := outer.PushSelectors([]Selector{".a .b"})
	require.Equal(t, []Selector{".a .b"}, innerPushed.Selectors())
}

func TestModuleLookup(t *testing.T) {
	root := New(expression.DefaultFormat())
	modScope := New(expression.DefaultFormat())
	modScope.Define("accent", num(7))
	root.DefineModule("theme", modScope)

	child := root.Child()
	found, ok := child.GetModule("theme")
	require.True(t, ok)
	require.Equal(t, num(7), found.Get("accent"))

	_, ok = child.GetModule("missing")
	require.False(t, ok)
}

func TestForwardCreatesSiblingOnce(t *testing.T) {
	root := New(expression.DefaultFormat())
	f1 := root.Forward()
	f2 := root.Forward()
	require.Same(t, f1, f2, "Forward must return the same sibling scope on repeat calls")
}

func TestContentClosureNearestEnclosing(t *testing.T) {
	root := New(expression.DefaultFormat())
	_, ok := root.GetContent()
	require.False(t, ok)

	c := &Content{Scope: root}
	root.DefineContent(c)
	got, ok := root.Child().GetContent()
	require.True(t, ok)
	require.Same(t, c, got)
}
