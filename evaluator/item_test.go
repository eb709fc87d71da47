package evaluator

import (
	"testing"

	"github.com/sssc-dev/sssc/compileerr"
	"github.com/stretchr/testify/require"
)

func TestCheckBodyRejectsMixinDeclInsideMixin(t *testing.T) {
	body := []*Item{{Kind: KindMixinDecl}}
	err := CheckBody(ContextMixin, body)
	require.Error(t, err)

	var invalid *compileerr.Invalid
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, compileerr.MixinInMixin, invalid.Kind)
}

func TestCheckBodyRejectsRuleInsideFunction(t *testing.T) {
	body := []*Item{{Kind: KindRule}}
	err := CheckBody(ContextFunction, body)
	require.Error(t, err)
}

func TestCheckBodyAllowsWhitelistedAtRuleInsideFunction(t *testing.T) {
	body := []*Item{{Kind: KindAtRule, AtRuleName: "media"}}
	require.NoError(t, CheckBody(ContextFunction, body))
}

func TestCheckBodyRejectsNonWhitelistedAtRuleInsideFunction(t *testing.T) {
	body := []*Item{{Kind: KindAtRule, AtRuleName: "mixin"}}
	require.Error(t, CheckBody(ContextFunction, body))
}

func TestCheckBodyRejectsUseInsideControl(t *testing.T) {
	body := []*Item{{Kind: KindUse}}
	require.Error(t, CheckBody(ContextControl, body))
}

func TestCheckBodyRejectsUseInsideRule(t *testing.T) {
	body := []*Item{{Kind: KindUse}}
	require.Error(t, CheckBody(ContextRule, body))
}

func TestCheckBodyNamespacedRuleOnlyAllowsProperties(t *testing.T) {
	require.NoError(t, CheckBody(ContextNamespacedRule, []*Item{{Kind: KindProperty}}))
	require.NoError(t, CheckBody(ContextNamespacedRule, []*Item{{Kind: KindCustomProperty}}))
	require.Error(t, CheckBody(ContextNamespacedRule, []*Item{{Kind: KindRule}}))
}

func TestCheckBodyPassesThroughForPlainRuleContext(t *testing.T) {
	body := []*Item{{Kind: KindProperty}, {Kind: KindRule}}
	require.NoError(t, CheckBody(ContextRule, body))
}
