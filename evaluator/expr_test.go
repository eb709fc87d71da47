package evaluator

import (
	"testing"

	"github.com/sssc-dev/sssc/expression"
	"github.com/sssc-dev/sssc/scope"
	"github.com/stretchr/testify/require"
)

func mustEval(t *testing.T, sc *scope.Scope, src string) expression.Value {
	t.Helper()
	expr, err := ParseExpr(src)
	require.NoError(t, err)
	ev := New(expression.DefaultFormat(), nil, nil)
	v, err := ev.Eval(sc, expr)
	require.NoError(t, err)
	return v
}

func TestParseExprLiteralNumber(t *testing.T) {
	sc := scope.New(expression.DefaultFormat())
	v := mustEval(t, sc, "1px")
	require.Equal(t, "1px", v.Format(expression.DefaultFormat()))
}

func TestParseExprVariableReference(t *testing.T) {
	sc := scope.New(expression.DefaultFormat())
	sc.Define("size", mustEval(t, sc, "10px"))

	v := mustEval(t, sc, "$size")
	require.Equal(t, "10px", v.Format(expression.DefaultFormat()))
}

func TestParseExprModuleVarReadsForwardedModuleScope(t *testing.T) {
	sc := scope.New(expression.DefaultFormat())
	theme := scope.New(expression.DefaultFormat())
	theme.Define("accent", mustEval(t, sc, "#2ecc71"))
	sc.DefineModule("theme", theme)

	expr, err := ParseExpr("theme.$accent")
	require.NoError(t, err)
	require.IsType(t, ExprModuleVar{}, expr)

	ev := New(expression.DefaultFormat(), nil, nil)
	v, err := ev.Eval(sc, expr)
	require.NoError(t, err)
	require.Equal(t, "#2ecc71", v.Format(expression.DefaultFormat()))
}

func TestParseExprModuleVarUnknownModuleIsNull(t *testing.T) {
	sc := scope.New(expression.DefaultFormat())
	expr, err := ParseExpr("missing.$x")
	require.NoError(t, err)

	ev := New(expression.DefaultFormat(), nil, nil)
	v, err := ev.Eval(sc, expr)
	require.NoError(t, err)
	require.True(t, expression.IsNull(v))
}

func TestParseExprArithmetic(t *testing.T) {
	sc := scope.New(expression.DefaultFormat())
	v := mustEval(t, sc, "1px + 2px")
	require.Equal(t, "3px", v.Format(expression.DefaultFormat()))
}

func TestParseExprStringConcatInterpolatesAdjacentLiterals(t *testing.T) {
	sc := scope.New(expression.DefaultFormat())
	v := mustEval(t, sc, `"a" + "b"`)
	require.Contains(t, v.Format(expression.DefaultFormat()), "ab")
}
