package evaluator

import (
	"strings"
	"testing"

	"github.com/sssc-dev/sssc/dst"
	"github.com/stretchr/testify/require"
)

func translateSource(t *testing.T, src string) []*Item {
	t.Helper()
	p := dst.NewParser(strings.NewReader(src))
	file, err := p.Parse()
	require.NoError(t, err)
	items, err := Translate(file)
	require.NoError(t, err)
	return items
}

func TestTranslateVariableDecl(t *testing.T) {
	items := translateSource(t, `$accent: #2ecc71;`)
	require.Len(t, items, 1)
	require.Equal(t, KindVariableDecl, items[0].Kind)
	require.Equal(t, "accent", items[0].Name)
}

func TestTranslateRuleWithProperty(t *testing.T) {
	items := translateSource(t, ".box { color: red; }")
	require.Len(t, items, 1)
	require.Equal(t, KindRule, items[0].Kind)
	require.Len(t, items[0].Body, 1)
	require.Equal(t, KindProperty, items[0].Body[0].Kind)
	require.Equal(t, "color", items[0].Body[0].PropName)
}

func TestTranslateMixinDecl(t *testing.T) {
	items := translateSource(t, "@mixin box($size) { width: $size; }")
	require.Len(t, items, 1)
	require.Equal(t, KindMixinDecl, items[0].Kind)
	require.Equal(t, "box", items[0].Name)
}

func TestTranslateMixinDeclCarriesGuard(t *testing.T) {
	items := translateSource(t, "@mixin box($size) when ($size > 0) { width: $size; }")
	require.Len(t, items, 1)
	require.Equal(t, KindMixinDecl, items[0].Kind)
	require.NotNil(t, items[0].Guard)
}

func TestTranslateFunctionDecl(t *testing.T) {
	items := translateSource(t, "@function double($x) { @return $x * 2; }")
	require.Len(t, items, 1)
	require.Equal(t, KindFunctionDecl, items[0].Kind)
	require.Len(t, items[0].Body, 1)
	require.Equal(t, KindReturn, items[0].Body[0].Kind)
}

func TestTranslateIfElseChain(t *testing.T) {
	items := translateSource(t, `@if $x > 0 { color: red; } @else { color: blue; }`)
	require.Len(t, items, 1)
	require.Equal(t, KindIf, items[0].Kind)
	require.Len(t, items[0].Branches, 2)
	require.NotNil(t, items[0].Branches[0].Cond)
	require.Nil(t, items[0].Branches[1].Cond)
}

func TestTranslateEachBlock(t *testing.T) {
	items := translateSource(t, `@each $name in $list { .#{$name} { color: red; } }`)
	require.Len(t, items, 1)
	require.Equal(t, KindEach, items[0].Kind)
	require.Equal(t, []string{"name"}, items[0].EachNames)
}

func TestTranslateMixinCall(t *testing.T) {
	items := translateSource(t, `.box { @include box(10px); }`)
	require.Len(t, items, 1)
	require.Len(t, items[0].Body, 1)
	require.Equal(t, KindMixinCall, items[0].Body[0].Kind)
	require.Equal(t, "box", items[0].Body[0].Name)
}

func TestTranslateNamespaceRule(t *testing.T) {
	items := translateSource(t, `font: { family: Arial; size: 14px; }`)
	require.Len(t, items, 1)
	require.Equal(t, KindNamespaceRule, items[0].Kind)
	require.Equal(t, "font", items[0].PropName)
	require.Len(t, items[0].Body, 2)
	require.Equal(t, "family", items[0].Body[0].PropName)
}

func TestTranslateComment(t *testing.T) {
	items := translateSource(t, "// a line comment\n")
	require.Len(t, items, 1)
	require.Equal(t, KindComment, items[0].Kind)
}
