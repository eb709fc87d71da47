// Package functions implements the built-in sass:* modules described
// in §4.8: math, color, string, list, map, selector, and meta. It
// replaces the teacher's string-based FuncMap (this file originally
// mapped LESS builtin names to functions working on an old raw-string
// Color/Value API); each builtin here works directly against the
// expression package's typed Value/Color/Number, the same types the
// evaluator threads through Eval, so no stringify-then-reparse round
// trip happens at the builtin boundary.
package functions

import (
	"fmt"

	"github.com/sssc-dev/sssc/evaluator"
	"github.com/sssc-dev/sssc/expression"
	"github.com/sssc-dev/sssc/scope"
)

// handler is one built-in function's implementation: a dispatch target
// keyed by (module, name) that receives already-evaluated arguments.
type handler func(args *expression.ArgList) (expression.Value, error)

// Registry implements evaluator.Builtins, dispatching sass:* function
// and mixin calls by namespace and name.
type Registry struct {
	fns    map[string]map[string]handler
	mixins map[string]map[string]mixinHandler
}

type mixinHandler func(e *evaluator.Evaluator, sc *scope.Scope, args *expression.ArgList, content *scope.Content) error

// New builds a Registry with every built-in module wired in.
func New() *Registry {
	r := &Registry{
		fns:    map[string]map[string]handler{},
		mixins: map[string]map[string]mixinHandler{},
	}
	r.registerMath()
	r.registerColor()
	r.registerString()
	r.registerList()
	r.registerMap()
	r.registerSelector()
	r.registerMeta()
	return r
}

func (r *Registry) addFn(ns, name string, h handler) {
	m, ok := r.fns[ns]
	if !ok {
		m = map[string]handler{}
		r.fns[ns] = m
	}
	m[name] = h
}

func (r *Registry) addMixin(ns, name string, h mixinHandler) {
	m, ok := r.mixins[ns]
	if !ok {
		m = map[string]mixinHandler{}
		r.mixins[ns] = m
	}
	m[name] = h
}

// CallFunction implements evaluator.Builtins. Global (non-namespaced)
// calls are tried against every module in turn so `darken(...)` works
// whether or not the caller wrote `@use "sass:color"` first (§4.8's
// modules are a namespacing convenience, not a gate, matching
// dart-sass's global built-in surface).
func (r *Registry) CallFunction(ns, name string, args *expression.ArgList) (expression.Value, bool, error) {
	if ns != "" {
		mod, ok := r.fns[trimSassPrefix(ns)]
		if !ok {
			return nil, false, nil
		}
		fn, ok := mod[name]
		if !ok {
			return nil, false, nil
		}
		v, err := fn(args)
		return v, true, err
	}
	for _, mod := range r.fns {
		if fn, ok := mod[name]; ok {
			v, err := fn(args)
			return v, true, err
		}
	}
	return nil, false, nil
}

// CallMixin implements evaluator.Builtins. Only sass:meta's load-css
// is special-cased per §4.8.
func (r *Registry) CallMixin(e *evaluator.Evaluator, sc *scope.Scope, ns, name string, args *expression.ArgList, content *scope.Content) (bool, error) {
	if ns != "" {
		mod, ok := r.mixins[trimSassPrefix(ns)]
		if !ok {
			return false, nil
		}
		h, ok := mod[name]
		if !ok {
			return false, nil
		}
		return true, h(e, sc, args, content)
	}
	for _, mod := range r.mixins {
		if h, ok := mod[name]; ok {
			return true, h(e, sc, args, content)
		}
	}
	return false, nil
}

func trimSassPrefix(ns string) string {
	const p = "sass:"
	if len(ns) > len(p) && ns[:len(p)] == p {
		return ns[len(p):]
	}
	return ns
}

// --- argument helpers shared by every module ---

// arg returns the idx'th positional argument, or the named argument
// `name`, whichever is present (mirrors FormalArgs.Bind's own
// named-or-positional resolution, since built-ins take the same
// calling convention user-defined functions do).
func arg(args *expression.ArgList, idx int, name string) (expression.Value, bool) {
	if v, ok := args.Named[name]; ok {
		return v, true
	}
	if idx < len(args.Positional) {
		return args.Positional[idx], true
	}
	return nil, false
}

func argOr(args *expression.ArgList, idx int, name string, def expression.Value) expression.Value {
	if v, ok := arg(args, idx, name); ok {
		return v
	}
	return def
}

func requireNumber(args *expression.ArgList, idx int, name string) (expression.Numeric, error) {
	v, ok := arg(args, idx, name)
	if !ok {
		return expression.Numeric{}, fmt.Errorf("missing argument $%s", name)
	}
	n, ok := v.(expression.Numeric)
	if !ok {
		return expression.Numeric{}, fmt.Errorf("$%s: %s is not a number", name, v.Format(expression.DefaultFormat()))
	}
	return n, nil
}

// asColor coerces v to a *Color, accepting both an already-typed
// ColorValue and a bare keyword literal recognized as a CSS named
// color (e.g. `red`, parsed as a plain Literal by the expression
// parser since it isn't a `#hex`/`rgb(...)`/`hsl(...)` form).
func asColor(v expression.Value) (*expression.Color, bool) {
	if cv, ok := v.(expression.ColorValue); ok {
		return cv.Color, true
	}
	if lit, ok := v.(expression.Literal); ok && expression.IsNamedColor(lit.Text) {
		c, err := expression.ParseColor(lit.Text)
		if err == nil {
			return c, true
		}
	}
	return nil, false
}

func requireColor(args *expression.ArgList, idx int, name string) (*expression.Color, error) {
	v, ok := arg(args, idx, name)
	if !ok {
		return nil, fmt.Errorf("missing argument $%s", name)
	}
	c, ok := asColor(v)
	if !ok {
		return nil, fmt.Errorf("$%s: %s is not a color", name, v.Format(expression.DefaultFormat()))
	}
	return c, nil
}

func requireString(args *expression.ArgList, idx int, name string) (string, expression.Quotes, error) {
	v, ok := arg(args, idx, name)
	if !ok {
		return "", expression.NoQuotes, fmt.Errorf("missing argument $%s", name)
	}
	lit, ok := v.(expression.Literal)
	if !ok {
		return "", expression.NoQuotes, fmt.Errorf("$%s: %s is not a string", name, v.Format(expression.DefaultFormat()))
	}
	return lit.Text, lit.Quotes, nil
}

// percentOrUnit01 reads a number that may be a bare 0-1 fraction or a
// 0%-100% percentage (both conventions appear across sass:color's
// lighten/darken/adjust family) and returns it normalized to 0-1.
func percentOrUnit01(n expression.Numeric) float64 {
	f := n.Num.Float64()
	if _, isPercent := n.Unit["%"]; isPercent {
		return f / 100
	}
	return f
}

func num(f float64) expression.Value {
	return expression.NewNumeric(expression.NumberFromFloat(f), expression.NoUnit())
}

func numUnit(f float64, u expression.Unit) expression.Value {
	return expression.NewNumeric(expression.NumberFromFloat(f), u)
}

func str(s string) expression.Value {
	return expression.NewLiteral(s, expression.NoQuotes)
}

func quotedStr(s string) expression.Value {
	return expression.NewLiteral(s, expression.DoubleQuotes)
}

func boolArgTrue(args *expression.ArgList, idx int, name string, def bool) bool {
	v, ok := arg(args, idx, name)
	if !ok {
		return def
	}
	return v.Truthy()
}
