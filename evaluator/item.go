package evaluator

import (
	"github.com/sssc-dev/sssc/compileerr"
	"github.com/sssc-dev/sssc/expression"
)

// Kind discriminates the Item variants of §4.5's table. Item follows
// the teacher's dst.Node convention (dst/node.go) of one concrete
// struct carrying every variant's fields rather than an interface
// hierarchy; Translate (translate.go) builds these items from the
// dst parser's nodes.
type Kind int

const (
	KindUse Kind = iota
	KindForward
	KindImport
	KindAtRoot
	KindAtRule
	KindVariableDecl
	KindFunctionDecl
	KindReturn
	KindMixinDecl
	KindMixinCall
	KindContent
	KindIf
	KindEach
	KindFor
	KindWhile
	KindDebug
	KindWarn
	KindError
	KindRule
	KindProperty
	KindCustomProperty
	KindNamespaceRule
	KindComment
)

// Arg is one actual argument at a call site: positional when Name=="".
type Arg struct {
	Name string
	Expr Expr
}

// WithEntry is one `with` configuration entry on @use/@forward.
type WithEntry struct {
	Name      string
	Value     Expr
	IsDefault bool
}

// Visibility is the show/hide/star filter on @use/@forward (§4.4).
type Visibility struct {
	Star bool
	Show bool // true => Funcs/Vars are an allow-list; Hide true => a deny-list
	Hide bool
	Funcs []string
	Vars  []string
}

// IfBranch is one `@if`/`@else if`/`@else` arm.
type IfBranch struct {
	Cond Expr // nil for the trailing @else
	Body []*Item
}

// Item is one parsed construct. Only the fields relevant to Kind are
// populated; the rest are zero. Pos locates the item for diagnostics.
type Item struct {
	Kind Kind
	Pos  compileerr.Pos

	Name    string
	As      string
	With    []WithEntry
	Vis     Visibility
	Args    []Arg
	Params  expression.FormalArgs
	Guard   Expr
	Value   Expr
	Default bool
	Global  bool

	Selectors []string
	Body      []*Item

	Branches []IfBranch // @if chain

	EachNames []string
	EachList  Expr

	ForVar       string
	ForFrom      Expr
	ForTo        Expr
	ForExclusive bool

	AtRuleName string
	AtRuleArgs string

	PropName string

	Raw string // literal text for Comment/Import path/raw selector source
}

// Context names the shape-validation regime a body is interpreted
// under (§4.5's check_body table).
type Context int

const (
	ContextRule Context = iota
	ContextMixin
	ContextFunction
	ContextControl
	ContextNamespacedRule
)

// CheckBody validates that every item in body is permitted under ctx,
// returning the first violation as a compileerr.Invalid.
func CheckBody(ctx Context, body []*Item) error {
	for _, it := range body {
		if err := checkItem(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

func checkItem(ctx Context, it *Item) error {
	switch ctx {
	case ContextMixin:
		switch it.Kind {
		case KindMixinDecl:
			return compileerr.NewInvalid(compileerr.MixinInMixin, it.Pos)
		case KindFunctionDecl:
			return compileerr.NewInvalid(compileerr.FunctionInMixin, it.Pos)
		}
	case ContextFunction:
		switch it.Kind {
		case KindRule, KindProperty, KindCustomProperty, KindNamespaceRule, KindAtRoot:
			return compileerr.NewInvalid(compileerr.AtRule, it.Pos)
		case KindAtRule:
			if !functionBodyAtRuleWhitelist[it.AtRuleName] {
				return compileerr.NewInvalid(compileerr.AtRule, it.Pos)
			}
		}
	case ContextControl:
		switch it.Kind {
		case KindMixinDecl:
			return compileerr.NewInvalid(compileerr.MixinInControl, it.Pos)
		case KindFunctionDecl:
			return compileerr.NewInvalid(compileerr.FunctionInControl, it.Pos)
		case KindUse, KindForward:
			return compileerr.NewInvalid(compileerr.AtRule, it.Pos)
		}
	case ContextRule:
		switch it.Kind {
		case KindUse, KindForward, KindReturn:
			return compileerr.NewInvalid(compileerr.AtRule, it.Pos)
		}
	case ContextNamespacedRule:
		switch it.Kind {
		case KindProperty, KindCustomProperty:
		default:
			return compileerr.NewInvalid(compileerr.AtRule, it.Pos)
		}
	}
	return nil
}

// functionBodyAtRuleWhitelist are the at-rules §6 permits to be
// emitted (not executed as flow control) from inside a function body.
var functionBodyAtRuleWhitelist = map[string]bool{
	"charset": true, "color-profile": true, "counter-style": true,
	"document": true, "font-face": true, "font-feature-values": true,
	"import": true, "keyframes": true, "layer": true, "media": true,
	"namespace": true, "page": true, "property": true,
	"scroll-timeline": true, "supports": true, "viewport": true,
}

// ReservedFunctionNames are the names §4.5 forbids for @function
// declarations.
var ReservedFunctionNames = map[string]bool{
	"calc": true, "element": true, "expression": true, "url": true,
}
