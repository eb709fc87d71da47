package evaluator

import (
	"fmt"
	"strings"

	"github.com/sssc-dev/sssc/expression"
	"github.com/sssc-dev/sssc/scope"
)

// Eval reduces an Expr to a concrete Value against sc, resolving
// $variable references, function/calc calls, and interpolation. This
// is the evaluator half of the split the teacher's renderer kept
// fused (parse-and-resolve in one pass over text); here ParseExpr has
// already built the tree, so repeated evaluation (e.g. once per
// @each/@for iteration) never re-lexes.
func (e *Evaluator) Eval(sc *scope.Scope, x Expr) (expression.Value, error) {
	if x == nil {
		return expression.Null, nil
	}
	switch v := x.(type) {
	case ExprLit:
		return v.Value, nil
	case ExprVar:
		return sc.Get(v.Name), nil
	case ExprModuleVar:
		if modScope, ok := sc.GetModule(v.Module); ok {
			return modScope.Get(v.Name), nil
		}
		return expression.Null, nil
	case ExprSelf:
		sels := sc.Selectors()
		return expression.NewLiteral(strings.Join(sels, ", "), expression.NoQuotes), nil
	case ExprUnary:
		return e.evalUnary(sc, v)
	case ExprBin:
		return e.evalBin(sc, v)
	case ExprList:
		return e.evalList(sc, v)
	case ExprMap:
		return e.evalMap(sc, v)
	case ExprInterp:
		return e.evalInterp(sc, v)
	case ExprCall:
		return e.evalCall(sc, v)
	}
	return nil, fmt.Errorf("unhandled expression node %T", x)
}

func (e *Evaluator) evalUnary(sc *scope.Scope, v ExprUnary) (expression.Value, error) {
	x, err := e.Eval(sc, v.X)
	if err != nil {
		return nil, err
	}
	switch v.Op {
	case "-":
		return expression.Neg(x)
	case "not":
		return expression.NewBool(!x.Truthy()), nil
	}
	return x, nil
}

func (e *Evaluator) evalBin(sc *scope.Scope, v ExprBin) (expression.Value, error) {
	switch v.Op {
	case "and":
		l, err := e.Eval(sc, v.L)
		if err != nil {
			return nil, err
		}
		if !l.Truthy() {
			return l, nil
		}
		return e.Eval(sc, v.R)
	case "or":
		l, err := e.Eval(sc, v.L)
		if err != nil {
			return nil, err
		}
		if l.Truthy() {
			return l, nil
		}
		return e.Eval(sc, v.R)
	}

	l, err := e.Eval(sc, v.L)
	if err != nil {
		return nil, err
	}
	r, err := e.Eval(sc, v.R)
	if err != nil {
		return nil, err
	}

	switch v.Op {
	case "+":
		return expression.Add(l, r)
	case "-":
		return expression.Sub(l, r)
	case "*":
		return expression.Mul(l, r)
	case "/":
		result, ok, err := expression.Div(l, r)
		if err != nil {
			return nil, err
		}
		if !ok {
			return expression.NewParenValue(expression.NewBinOpValue(l, "/", r), true), nil
		}
		return result, nil
	case "%":
		result, ok, err := expression.Mod(l, r)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("division by zero in %%")
		}
		return result, nil
	case "==":
		return expression.NewBool(expression.ValuesEqual(l, r)), nil
	case "!=":
		return expression.NewBool(!expression.ValuesEqual(l, r)), nil
	case "<", "<=", ">", ">=":
		cmp, err := expression.Compare(l, r)
		if err != nil {
			return nil, err
		}
		switch v.Op {
		case "<":
			return expression.NewBool(cmp < 0), nil
		case "<=":
			return expression.NewBool(cmp <= 0), nil
		case ">":
			return expression.NewBool(cmp > 0), nil
		case ">=":
			return expression.NewBool(cmp >= 0), nil
		}
	}
	return nil, fmt.Errorf("unsupported operator %q", v.Op)
}

func (e *Evaluator) evalList(sc *scope.Scope, v ExprList) (expression.Value, error) {
	items := make([]expression.Value, 0, len(v.Items))
	for _, it := range v.Items {
		val, err := e.Eval(sc, it)
		if err != nil {
			return nil, err
		}
		items = append(items, val)
	}
	return expression.NewListValue(items, v.Sep, v.Bracketed), nil
}

func (e *Evaluator) evalMap(sc *scope.Scope, v ExprMap) (expression.Value, error) {
	m := expression.NewMap()
	for i, k := range v.Keys {
		key, err := e.Eval(sc, k)
		if err != nil {
			return nil, err
		}
		val, err := e.Eval(sc, v.Values[i])
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
	}
	return m, nil
}

func (e *Evaluator) evalInterp(sc *scope.Scope, v ExprInterp) (expression.Value, error) {
	var b strings.Builder
	for i, part := range v.Parts {
		b.WriteString(part)
		if i < len(v.Embeds) {
			val, err := e.Eval(sc, v.Embeds[i])
			if err != nil {
				return nil, err
			}
			b.WriteString(val.Format(sc.Format()))
		}
	}
	return expression.NewLiteral(b.String(), v.Quotes), nil
}

func (e *Evaluator) evalCall(sc *scope.Scope, v ExprCall) (expression.Value, error) {
	if expression.IsCalcFunction(strings.ToLower(v.Name)) {
		return e.evalCalcCall(sc, v)
	}

	ns, fname := splitNamespaced(v.Name)
	positional := make([]expression.Value, 0, len(v.Args))
	named := map[string]expression.Value{}
	for _, a := range v.Args {
		val, err := e.Eval(sc, a.Expr)
		if err != nil {
			return nil, err
		}
		if a.Name != "" {
			named[a.Name] = val
		} else {
			positional = append(positional, val)
		}
	}

	if ns != "" {
		if modScope, ok := sc.GetModule(ns); ok {
			if fn, ok := modScope.GetFunction(fname); ok {
				return e.callFunction(fn, positional, named)
			}
		}
		if e.Builtins != nil {
			al := buildArgList(positional, named)
			res, handled, err := e.Builtins.CallFunction(ns, fname, al)
			if handled || err != nil {
				return res, err
			}
		}
	} else {
		if fn, ok := sc.GetFunction(fname); ok {
			return e.callFunction(fn, positional, named)
		}
		if e.Builtins != nil {
			al := buildArgList(positional, named)
			res, handled, err := e.Builtins.CallFunction("", fname, al)
			if handled || err != nil {
				return res, err
			}
		}
	}

	// Unknown function: preserve as an unevaluated calculation residue
	// (§4.1), the same treatment CSS-native functions like var()/url()
	// get even when they ARE known, since their arguments must not be
	// eagerly coerced.
	args := make([]expression.Value, len(v.Args))
	for i, a := range v.Args {
		val, err := e.Eval(sc, a.Expr)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}
	return expression.NewCallValue(v.Name, args), nil
}

func (e *Evaluator) evalCalcCall(sc *scope.Scope, v ExprCall) (expression.Value, error) {
	args := make([]expression.Value, 0, len(v.Args))
	for _, a := range v.Args {
		val, err := e.Eval(sc, a.Expr)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	call := expression.NewCallValue(strings.ToLower(v.Name), args)
	return expression.ReduceCalcArgs(call), nil
}

func (e *Evaluator) callFunction(fn *scope.Function, positional []expression.Value, named map[string]expression.Value) (expression.Value, error) {
	callScope := fn.Decl.Child()
	bound, err := fn.Args.Bind(positional, named, func(raw string) (expression.Value, error) {
		expr, err := ParseExpr(raw)
		if err != nil {
			return nil, err
		}
		return e.Eval(callScope, expr)
	})
	if err != nil {
		return nil, err
	}
	for k, v := range bound {
		callScope.Define(k, v)
	}
	body, _ := fn.Body.([]*Item)
	ret, err := e.evalBody(callScope, body, e.Out)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return expression.Null, nil
	}
	return *ret, nil
}
