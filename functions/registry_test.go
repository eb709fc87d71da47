package functions

import (
	"testing"

	"github.com/sssc-dev/sssc/expression"
	"github.com/stretchr/testify/require"
)

func px(f float64) expression.Value {
	return numUnit(f, expression.Unit{"px": 1})
}

func posArgs(vs ...expression.Value) *expression.ArgList {
	return &expression.ArgList{Positional: vs, Named: map[string]expression.Value{}}
}

func TestCallFunctionNamespacedMath(t *testing.T) {
	r := New()
	v, ok, err := r.CallFunction("math", "round", posArgs(px(10.6)))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "11px", v.Format(expression.DefaultFormat()))
}

func TestCallFunctionBareNameSearchesEveryModule(t *testing.T) {
	r := New()
	c := expression.NewColorValue(expression.NewRgba(255, 0, 0, 1))
	v, ok, err := r.CallFunction("", "darken", posArgs(c, numUnit(20, expression.Unit{"%": 1})))
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEqual(t, "#ff0000", v.Format(expression.DefaultFormat()))
}

func TestCallFunctionUnknownReturnsNotFound(t *testing.T) {
	r := New()
	_, ok, err := r.CallFunction("math", "no-such-fn", posArgs())
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = r.CallFunction("", "no-such-fn-anywhere", posArgs())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMathClampBounds(t *testing.T) {
	r := New()
	v, ok, err := r.CallFunction("math", "clamp", posArgs(px(0), px(10), px(5)))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "5px", v.Format(expression.DefaultFormat()))

	v, _, err = r.CallFunction("math", "clamp", posArgs(px(0), px(-5), px(5)))
	require.NoError(t, err)
	require.Equal(t, "0px", v.Format(expression.DefaultFormat()))
}

func TestColorChannelAccessors(t *testing.T) {
	r := New()
	c := expression.NewColorValue(expression.NewRgba(255, 0, 0, 1))
	v, ok, err := r.CallFunction("color", "red", posArgs(c))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "255", v.Format(expression.DefaultFormat()))
}

func TestStringUpperLower(t *testing.T) {
	r := New()
	v, ok, err := r.CallFunction("string", "to-upper-case", posArgs(expression.NewLiteral("abc", expression.NoQuotes)))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "ABC", v.Format(expression.DefaultFormat()))
}

func TestStringLengthCountsRunes(t *testing.T) {
	r := New()
	v, _, err := r.CallFunction("string", "length", posArgs(expression.NewLiteral("héllo", expression.NoQuotes)))
	require.NoError(t, err)
	require.Equal(t, "5", v.Format(expression.DefaultFormat()))
}

func TestListLengthAndNth(t *testing.T) {
	r := New()
	list := expression.NewListValue([]expression.Value{px(1), px(2), px(3)}, expression.CommaSeparator, false)

	v, ok, err := r.CallFunction("list", "length", posArgs(list))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "3", v.Format(expression.DefaultFormat()))

	v, ok, err = r.CallFunction("list", "nth", posArgs(list, numUnit(2, expression.NoUnit())))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2px", v.Format(expression.DefaultFormat()))
}

func TestMapGetAndHasKey(t *testing.T) {
	r := New()
	m := expression.NewMap()
	m.Set(str("a"), px(1))

	v, ok, err := r.CallFunction("map", "get", posArgs(m, str("a")))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1px", v.Format(expression.DefaultFormat()))

	v, ok, err = r.CallFunction("map", "has-key", posArgs(m, str("missing")))
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, v.Truthy())
}

func TestCallMixinDispatchesByNamespace(t *testing.T) {
	r := New()
	ok, err := r.CallMixin(nil, nil, "meta", "no-such", posArgs(), nil)
	require.NoError(t, err)
	require.False(t, ok)
}
