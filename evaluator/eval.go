package evaluator

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sssc-dev/sssc/compileerr"
	"github.com/sssc-dev/sssc/expression"
	"github.com/sssc-dev/sssc/output"
	"github.com/sssc-dev/sssc/scope"
)

// Builtins is the sass:* module registry the functions package
// implements; Eval calls into it only when a call name isn't a
// user-defined function or mixin (§4.8).
type Builtins interface {
	CallFunction(ns, name string, args *expression.ArgList) (expression.Value, bool, error)
	CallMixin(e *Evaluator, sc *scope.Scope, ns, name string, args *expression.ArgList, content *scope.Content) (bool, error)
}

// Loader resolves a `@use`/`@forward`/`@import` path to a compiled
// module scope, implemented by the module package (§4.6). Eval only
// depends on this narrow interface to stay decoupled from load-order,
// caching, and cycle-detection concerns.
type Loader interface {
	Load(path string) (*scope.Scope, error)
}

// Evaluator is the tree-walking interpreter's shared state: the output
// buffer it is currently writing into and the builtin/module registries.
// An `@return` value is passed back up as evalBody's result.
type Evaluator struct {
	Out      *output.Buffer
	Builtins Builtins
	Loader   Loader

	// Log receives @debug/@warn diagnostics, the way the teacher's
	// resolver.go wrote them via log.Printf. Threaded as a field
	// rather than the global logger so tests can swap in their own
	// writer instead of polluting stderr.
	Log *log.Logger
}

// New creates an Evaluator writing to a fresh Buffer in the given format.
func New(format expression.Format, builtins Builtins, loader Loader) *Evaluator {
	return &Evaluator{
		Out:      output.New(format),
		Builtins: builtins,
		Loader:   loader,
		Log:      log.New(os.Stderr, "", 0),
	}
}

// Run evaluates a top-level item list into e.Out's root body, against
// the root scope sc.
func (e *Evaluator) Run(sc *scope.Scope, items []*Item) error {
	_, err := e.evalBody(sc, items, e.Out)
	return err
}

// evalBody executes items in order, writing CSS to out, and returns
// non-nil only when a @return bubbles out (only meaningful inside a
// function body).
func (e *Evaluator) evalBody(sc *scope.Scope, items []*Item, out *output.Buffer) (*expression.Value, error) {
	for _, it := range items {
		v, err := e.evalItem(sc, it, out)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, nil
}

func (e *Evaluator) evalItem(sc *scope.Scope, it *Item, out *output.Buffer) (*expression.Value, error) {
	switch it.Kind {
	case KindUse:
		return nil, e.doUse(sc, it)
	case KindForward:
		return nil, e.doForward(sc, it)
	case KindImport:
		out.WriteImport(quoteIfBare(it.Raw))
		return nil, nil
	case KindAtRoot:
		return nil, e.evalAtRoot(sc, it, out)
	case KindAtRule:
		return nil, e.evalAtRule(sc, it, out)
	case KindVariableDecl:
		return nil, e.evalVariableDecl(sc, it)
	case KindFunctionDecl:
		sc.DefineFunction(it.Name, &scope.Function{Decl: sc, Args: it.Params, Body: it.Body})
		return nil, nil
	case KindReturn:
		v, err := e.Eval(sc, it.Value)
		if err != nil {
			return nil, err
		}
		return &v, nil
	case KindMixinDecl:
		sc.DefineMixin(it.Name, &scope.Mixin{Decl: sc, Args: it.Params, Body: it.Body, Guard: it.Guard, Pos: it.Pos})
		return nil, nil
	case KindMixinCall:
		return e.evalMixinCall(sc, it, out)
	case KindContent:
		return e.evalContent(sc, it, out)
	case KindIf:
		return e.evalIf(sc, it, out)
	case KindEach:
		return e.evalEach(sc, it, out)
	case KindFor:
		return e.evalFor(sc, it, out)
	case KindWhile:
		return e.evalWhile(sc, it, out)
	case KindDebug:
		v, err := e.Eval(sc, it.Value)
		if err != nil {
			return nil, err
		}
		e.Log.Println(DumpDebug("DEBUG", v))
		return nil, nil
	case KindWarn:
		v, err := e.Eval(sc, it.Value)
		if err != nil {
			return nil, err
		}
		e.Log.Println("WARNING: " + v.Format(sc.Format()))
		return nil, nil
	case KindError:
		v, err := e.Eval(sc, it.Value)
		if err != nil {
			return nil, err
		}
		return nil, compileerr.NewAtError(it.Pos, v.Format(sc.Format()))
	case KindRule:
		return nil, e.evalRule(sc, it, out)
	case KindProperty, KindCustomProperty:
		v, err := e.Eval(sc, it.Value)
		if err != nil {
			return nil, err
		}
		out.WriteProperty(it.PropName, v.Format(sc.Format()))
		return nil, nil
	case KindNamespaceRule:
		return nil, e.evalNamespaceRule(sc, it, out)
	case KindComment:
		if !strings.Contains(it.Raw, "\n") {
			out.WriteComment("//" + it.Raw)
		} else {
			out.WriteComment("/*" + it.Raw + "*/")
		}
		return nil, nil
	}
	return nil, nil
}

func quoteIfBare(path string) string {
	if strings.HasPrefix(path, "\"") || strings.HasPrefix(path, "'") || strings.HasPrefix(path, "url(") {
		return path
	}
	return `"` + path + `"`
}

func (e *Evaluator) evalVariableDecl(sc *scope.Scope, it *Item) error {
	v, err := e.Eval(sc, it.Value)
	if err != nil {
		return err
	}
	return sc.Set(it.Name, v, it.Default, it.Global)
}

func (e *Evaluator) evalRule(sc *scope.Scope, it *Item, out *output.Buffer) error {
	if it.Guard != nil {
		ok, err := e.truthy(sc, it.Guard)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	if err := CheckBody(ContextRule, it.Body); err != nil {
		return err
	}
	resolved := resolveSelectors(sc.Selectors(), it.Selectors)
	childScope := sc.PushSelectors(resolved)
	childOut := out.BeginRule()
	if _, err := e.evalBody(childScope, it.Body, childOut); err != nil {
		return err
	}
	out.EndRule(strings.Join(resolved, ", "), childOut)
	return nil
}

// resolveSelectors expands `&` back-references against the active
// parent stack (§4.5/§9): each parent selector × each child selector,
// substituting literal `&` occurrences or prefixing when absent.
func resolveSelectors(parents []string, children []string) []string {
	if len(parents) == 0 {
		return children
	}
	var out []string
	for _, c := range children {
		for _, p := range parents {
			if strings.Contains(c, "&") {
				out = append(out, strings.ReplaceAll(c, "&", p))
			} else {
				out = append(out, p+" "+c)
			}
		}
	}
	return out
}

func (e *Evaluator) evalAtRoot(sc *scope.Scope, it *Item, out *output.Buffer) error {
	rootScope := sc.PushSelectors(nil)
	if _, err := e.evalBody(rootScope, it.Body, out); err != nil {
		return err
	}
	return nil
}

func (e *Evaluator) evalAtRule(sc *scope.Scope, it *Item, out *output.Buffer) error {
	argsExpr, err := e.interpolateRaw(sc, it.AtRuleArgs)
	if err != nil {
		return err
	}
	if it.Body == nil {
		out.WriteAtRuleBare(it.AtRuleName, argsExpr)
		return nil
	}
	childOut := out.BeginRule()
	childScope := sc.Child()
	if _, err := e.evalBody(childScope, it.Body, childOut); err != nil {
		return err
	}
	out.WriteAtRuleInline(it.AtRuleName, argsExpr, childOut)
	return nil
}

func (e *Evaluator) evalNamespaceRule(sc *scope.Scope, it *Item, out *output.Buffer) error {
	if err := CheckBody(ContextNamespacedRule, it.Body); err != nil {
		return err
	}
	for _, child := range it.Body {
		full := it.PropName
		if child.PropName != "" {
			full += "-" + child.PropName
		}
		v, err := e.Eval(sc, child.Value)
		if err != nil {
			return err
		}
		out.WriteProperty(full, v.Format(sc.Format()))
	}
	return nil
}

// interpolateRaw resolves any `#{...}` segments inside a raw at-rule
// argument string against sc, leaving the rest byte-identical; at-rule
// preludes (`@media (min-width: #{$bp})`) are otherwise passed through
// uninterpreted since they are not a value expression in their own right.
func (e *Evaluator) interpolateRaw(sc *scope.Scope, raw string) (string, error) {
	if !strings.Contains(raw, "#{") {
		return raw, nil
	}
	expr := parseInterpolatedLiteral(raw, expression.NoQuotes)
	v, err := e.Eval(sc, expr)
	if err != nil {
		return "", err
	}
	return v.Format(sc.Format()), nil
}

func (e *Evaluator) evalIf(sc *scope.Scope, it *Item, out *output.Buffer) (*expression.Value, error) {
	for _, br := range it.Branches {
		if br.Cond == nil {
			return e.evalBody(sc.Child(), br.Body, out)
		}
		ok, err := e.truthy(sc, br.Cond)
		if err != nil {
			return nil, err
		}
		if ok {
			return e.evalBody(sc.Child(), br.Body, out)
		}
	}
	return nil, nil
}

func (e *Evaluator) truthy(sc *scope.Scope, x Expr) (bool, error) {
	v, err := e.Eval(sc, x)
	if err != nil {
		return false, err
	}
	return v.Truthy(), nil
}

func (e *Evaluator) evalEach(sc *scope.Scope, it *Item, out *output.Buffer) (*expression.Value, error) {
	listVal, err := e.Eval(sc, it.EachList)
	if err != nil {
		return nil, err
	}
	items := iterableItems(listVal)
	for _, row := range items {
		child := sc.Child()
		bindEachNames(child, it.EachNames, row)
		v, err := e.evalBody(child, it.Body, out)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, nil
}

// iterableItems normalizes a Value into the rows @each walks: a Map
// yields [key,value] pairs, a List yields its items, a scalar yields
// itself as the single row.
func iterableItems(v expression.Value) [][]expression.Value {
	switch vv := v.(type) {
	case *expression.Map:
		var rows [][]expression.Value
		for _, k := range vv.Keys() {
			val, _ := vv.Get(k)
			rows = append(rows, []expression.Value{k, val})
		}
		return rows
	case expression.List:
		var rows [][]expression.Value
		for _, item := range vv.Items {
			rows = append(rows, []expression.Value{item})
		}
		return rows
	default:
		return [][]expression.Value{{v}}
	}
}

func bindEachNames(sc *scope.Scope, names []string, row []expression.Value) {
	if len(names) == 1 && len(row) > 1 {
		sc.Define(names[0], expression.NewListValue(row, expression.SpaceSeparator, false))
		return
	}
	for i, name := range names {
		if i < len(row) {
			sc.Define(name, row[i])
		} else {
			sc.Define(name, expression.Null)
		}
	}
}

func (e *Evaluator) evalFor(sc *scope.Scope, it *Item, out *output.Buffer) (*expression.Value, error) {
	fromV, err := e.Eval(sc, it.ForFrom)
	if err != nil {
		return nil, err
	}
	toV, err := e.Eval(sc, it.ForTo)
	if err != nil {
		return nil, err
	}
	fromN, ok1 := fromV.(expression.Numeric)
	toN, ok2 := toV.(expression.Numeric)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("@for bounds must be numbers")
	}
	start := int(fromN.Num.Float64())
	end := int(toN.Num.Float64())
	step := 1
	if end < start {
		step = -1
	}
	for i := start; (step > 0 && i <= end) || (step < 0 && i >= end); i += step {
		if it.ForExclusive && i == end {
			break
		}
		child := sc.Child()
		child.Define(it.ForVar, expression.NewNumeric(expression.NumberFromFloat(float64(i)), expression.Unit{}))
		v, err := e.evalBody(child, it.Body, out)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, nil
}

func (e *Evaluator) evalWhile(sc *scope.Scope, it *Item, out *output.Buffer) (*expression.Value, error) {
	const maxIterations = 1 << 20
	for n := 0; n < maxIterations; n++ {
		ok, err := e.truthy(sc, it.Guard)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		child := sc.Child()
		v, err := e.evalBody(child, it.Body, out)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("@while did not terminate within %d iterations", maxIterations)
}

func (e *Evaluator) evalArgs(sc *scope.Scope, args []Arg) ([]expression.Value, map[string]expression.Value, error) {
	var positional []expression.Value
	named := map[string]expression.Value{}
	for _, a := range args {
		v, err := e.Eval(sc, a.Expr)
		if err != nil {
			return nil, nil, err
		}
		if a.Name != "" {
			named[a.Name] = v
		} else {
			positional = append(positional, v)
		}
	}
	return positional, named, nil
}

func (e *Evaluator) evalMixinCall(sc *scope.Scope, it *Item, out *output.Buffer) (*expression.Value, error) {
	positional, named, err := e.evalArgs(sc, it.Args)
	if err != nil {
		return nil, err
	}

	ns, name := splitNamespaced(it.Name)
	if ns != "" {
		modScope, ok := sc.GetModule(ns)
		if ok {
			if m, ok := modScope.GetMixin(name); ok {
				return nil, e.callMixin(sc, m, positional, named, it, out)
			}
		}
		if e.Builtins != nil {
			al := buildArgList(positional, named)
			handled, err := e.Builtins.CallMixin(e, sc, ns, name, al, e.buildContent(sc, it))
			if handled || err != nil {
				return nil, err
			}
		}
		return nil, compileerr.NewBadCall(it.Pos, fmt.Sprintf("undefined mixin %s.%s", ns, name))
	}

	if m, ok := sc.GetMixin(name); ok {
		return nil, e.callMixin(sc, m, positional, named, it, out)
	}
	if e.Builtins != nil {
		al := buildArgList(positional, named)
		handled, err := e.Builtins.CallMixin(e, sc, "", name, al, e.buildContent(sc, it))
		if handled || err != nil {
			return nil, err
		}
	}
	return nil, compileerr.NewBadCall(it.Pos, "undefined mixin "+name)
}

func (e *Evaluator) buildContent(sc *scope.Scope, it *Item) *scope.Content {
	if it.Body == nil {
		return nil
	}
	return &scope.Content{Scope: sc, Body: it.Body}
}

func (e *Evaluator) callMixin(sc *scope.Scope, m *scope.Mixin, positional []expression.Value, named map[string]expression.Value, it *Item, out *output.Buffer) error {
	callScope := m.Decl.Child()
	bound, err := m.Args.Bind(positional, named, func(raw string) (expression.Value, error) {
		expr, err := ParseExpr(raw)
		if err != nil {
			return nil, err
		}
		return e.Eval(callScope, expr)
	})
	if err != nil {
		return compileerr.WrapBadCall(it.Pos, err)
	}
	for k, v := range bound {
		callScope.Define(k, v)
	}
	if guard, ok := m.Guard.(Expr); ok && guard != nil {
		ok, err := e.truthy(callScope, guard)
		if err != nil {
			return compileerr.WrapBadCall(it.Pos, err)
		}
		if !ok {
			return nil
		}
	}
	callScope.DefineContent(e.buildContent(sc, it))
	body, _ := m.Body.([]*Item)
	_, err = e.evalBody(callScope, body, out)
	return err
}

func (e *Evaluator) evalContent(sc *scope.Scope, it *Item, out *output.Buffer) (*expression.Value, error) {
	c, ok := sc.GetContent()
	if !ok || c == nil {
		return nil, nil
	}
	body, _ := c.Body.([]*Item)
	return e.evalBody(c.Scope.Child(), body, out)
}

// splitNamespaced splits "module.name" into ("module", "name"), or
// ("", name) when unqualified.
func splitNamespaced(name string) (string, string) {
	if idx := strings.Index(name, "."); idx != -1 {
		return name[:idx], name[idx+1:]
	}
	return "", name
}

func buildArgList(positional []expression.Value, named map[string]expression.Value) *expression.ArgList {
	al := expression.NewArgList()
	al.Positional = positional
	for k, v := range named {
		al.SetNamed(k, v)
	}
	return al
}

// cssSource is implemented by loaders that accumulate a module's own
// top-level CSS output (module.Loader); @use/@forward splice it into
// the head's module-owned slot once, the first time the module loads
// (§4.6), rather than inlining it at every use site the way legacy
// @import does.
type cssSource interface {
	TakeLastCSS() string
}

func (e *Evaluator) spliceModuleCSS() {
	if src, ok := e.Loader.(cssSource); ok {
		if css := src.TakeLastCSS(); css != "" {
			e.Out.WriteModuleBlock(css)
		}
	}
}

func (e *Evaluator) doUse(sc *scope.Scope, it *Item) error {
	if e.Loader == nil {
		return fmt.Errorf("no module loader configured for @use %q", it.Name)
	}
	mod, err := e.Loader.Load(it.Name)
	if err != nil {
		return err
	}
	e.spliceModuleCSS()
	if len(it.With) > 0 {
		for _, w := range it.With {
			v, err := e.Eval(sc, w.Value)
			if err != nil {
				return err
			}
			if err := mod.Set(w.Name, v, w.IsDefault, false); err != nil {
				return err
			}
		}
	}
	alias := it.As
	if alias == "" {
		alias = defaultModuleAlias(it.Name)
	}
	if it.Vis.Star {
		alias = "*"
	}
	sc.DefineModule(alias, mod)
	return nil
}

func (e *Evaluator) doForward(sc *scope.Scope, it *Item) error {
	if e.Loader == nil {
		return fmt.Errorf("no module loader configured for @forward %q", it.Name)
	}
	mod, err := e.Loader.Load(it.Name)
	if err != nil {
		return err
	}
	e.spliceModuleCSS()
	if len(it.With) > 0 {
		for _, w := range it.With {
			v, err := e.Eval(sc, w.Value)
			if err != nil {
				return err
			}
			if err := mod.Set(w.Name, v, w.IsDefault, false); err != nil {
				return err
			}
		}
	}
	sc.Forward().DefineModule(forwardAlias(it), mod)
	return nil
}

func forwardAlias(it *Item) string {
	if it.As != "" {
		return it.As
	}
	return "*"
}

// defaultModuleAlias derives the implicit namespace from a use path's
// final path segment, stripping a leading "sass:" or leading
// underscore/partial markers the way dart-sass does.
func defaultModuleAlias(path string) string {
	p := strings.TrimPrefix(path, "sass:")
	if idx := strings.LastIndex(p, "/"); idx != -1 {
		p = p[idx+1:]
	}
	p = strings.TrimSuffix(p, ".sss")
	p = strings.TrimPrefix(p, "_")
	return p
}
