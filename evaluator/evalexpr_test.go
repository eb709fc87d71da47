package evaluator

import (
	"strings"
	"testing"

	"github.com/sssc-dev/sssc/dst"
	"github.com/sssc-dev/sssc/expression"
	"github.com/sssc-dev/sssc/scope"
	"github.com/stretchr/testify/require"
)

// fakeBuiltins stubs evaluator.Builtins so evalexpr_test doesn't need
// to import the functions package, avoiding an import cycle (functions
// already imports evaluator).
type fakeBuiltins struct{}

func (fakeBuiltins) CallFunction(ns, name string, args *expression.ArgList) (expression.Value, bool, error) {
	if name == "double" && len(args.Positional) == 1 {
		n := args.Positional[0].(expression.Numeric)
		return expression.NewNumeric(expression.NumberFromFloat(n.Num.Float64()*2), n.Unit), true, nil
	}
	return nil, false, nil
}

func (fakeBuiltins) CallMixin(e *Evaluator, sc *scope.Scope, ns, name string, args *expression.ArgList, content *scope.Content) (bool, error) {
	return false, nil
}

func run(t *testing.T, src string) string {
	t.Helper()
	p := dst.NewParser(strings.NewReader(src))
	file, err := p.Parse()
	require.NoError(t, err)
	items, err := Translate(file)
	require.NoError(t, err)

	ev := New(expression.DefaultFormat(), fakeBuiltins{}, nil)
	sc := scope.New(expression.DefaultFormat())
	require.NoError(t, ev.Run(sc, items))
	return ev.Out.String()
}

func TestEvalVariableInterpolatesIntoProperty(t *testing.T) {
	css := run(t, "$accent: #2ecc71;\n.box { color: $accent; }")
	require.Contains(t, css, ".box {")
	require.Contains(t, css, "color: #2ecc71;")
}

func TestEvalNestedSelectorsFlatten(t *testing.T) {
	css := run(t, ".a { .b { color: red; } }")
	require.Contains(t, css, ".a .b {")
}

func TestEvalAmpersandNesting(t *testing.T) {
	css := run(t, ".btn { &:hover { color: red; } }")
	require.Contains(t, css, ".btn:hover {")
}

func TestEvalIfElseChoosesMatchingBranch(t *testing.T) {
	css := run(t, `$flag: true; .a { @if $flag { color: red; } @else { color: blue; } }`)
	require.Contains(t, css, "color: red;")
	require.NotContains(t, css, "color: blue;")
}

func TestEvalEachOverList(t *testing.T) {
	css := run(t, `@each $n in 1, 2, 3 { .item-#{$n} { width: $n; } }`)
	require.Contains(t, css, ".item-1 {")
	require.Contains(t, css, ".item-2 {")
	require.Contains(t, css, ".item-3 {")
}

func TestEvalMixinCallInlinesBody(t *testing.T) {
	css := run(t, `@mixin box($size) { width: $size; } .a { @include box(10px); }`)
	require.Contains(t, css, "width: 10px;")
}

func TestEvalFunctionCallReturnsValue(t *testing.T) {
	css := run(t, `@function double2($x) { @return $x * 2; } .a { width: double2(5px); }`)
	require.Contains(t, css, "width: 10px;")
}

func TestEvalBuiltinFunctionDispatch(t *testing.T) {
	css := run(t, `.a { width: double(5px); }`)
	require.Contains(t, css, "width: 10px;")
}

func TestEvalNamespaceRuleFlattensToPrefixedProperties(t *testing.T) {
	css := run(t, `.a { font: { family: Arial; size: 14px; } }`)
	require.Contains(t, css, "font-family: Arial;")
	require.Contains(t, css, "font-size: 14px;")
}

func TestEvalMixinGuardSkipsBodyWhenFalse(t *testing.T) {
	css := run(t, `
@mixin box($size) when ($size > 0) { width: $size; }
.a { @include box(-5px); }
`)
	require.NotContains(t, css, "width:")
}

func TestEvalMixinGuardRunsBodyWhenTrue(t *testing.T) {
	css := run(t, `
@mixin box($size) when ($size > 0) { width: $size; }
.a { @include box(5px); }
`)
	require.Contains(t, css, "width: 5px;")
}

func TestEvalGlobalAssignmentAffectsOuterScope(t *testing.T) {
	css := run(t, `
$counter: 0;
@mixin bump() { $counter: 1 !global; }
.a { @include bump(); width: $counter; }
`)
	require.Contains(t, css, "width: 1;")
}
