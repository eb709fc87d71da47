package functions

import (
	"strings"

	"github.com/sssc-dev/sssc/expression"
)

// registerSelector wires the small, string-oriented sass:selector
// surface. The teacher has no equivalent (LESS selector nesting is
// pure syntax, never a runtime value); these operate on selectors
// represented as comma-separated Literal/List text, matching how
// evaluator.resolveSelectors already threads selector strings.
func (r *Registry) registerSelector() {
	r.addFn("selector", "nest", func(args *expression.ArgList) (expression.Value, error) {
		parts := make([]string, 0, len(args.Positional))
		for _, v := range args.Positional {
			parts = append(parts, selectorText(v))
		}
		return str(strings.Join(parts, " ")), nil
	})

	r.addFn("selector", "append", func(args *expression.ArgList) (expression.Value, error) {
		parts := make([]string, 0, len(args.Positional))
		for _, v := range args.Positional {
			parts = append(parts, selectorText(v))
		}
		return str(strings.Join(parts, "")), nil
	})

	r.addFn("selector", "unify", func(args *expression.ArgList) (expression.Value, error) {
		if len(args.Positional) < 2 {
			return expression.Null, nil
		}
		a := selectorText(args.Positional[0])
		b := selectorText(args.Positional[1])
		return str(a + b), nil
	})

	r.addFn("selector", "is-superselector", func(args *expression.ArgList) (expression.Value, error) {
		if len(args.Positional) < 2 {
			return expression.NewBool(false), nil
		}
		sup := selectorText(args.Positional[0])
		sub := selectorText(args.Positional[1])
		return expression.NewBool(strings.Contains(sub, sup)), nil
	})

	r.addFn("selector", "simple-selectors", func(args *expression.ArgList) (expression.Value, error) {
		if len(args.Positional) == 0 {
			return expression.NewListValue(nil, expression.CommaSeparator, false), nil
		}
		sel := selectorText(args.Positional[0])
		fields := strings.FieldsFunc(sel, func(r rune) bool { return r == '.' || r == '#' || r == ':' })
		items := make([]expression.Value, 0, len(fields))
		for _, f := range fields {
			items = append(items, str(strings.TrimSpace(f)))
		}
		return expression.NewListValue(items, expression.CommaSeparator, false), nil
	})
}

func selectorText(v expression.Value) string {
	if lit, ok := v.(expression.Literal); ok {
		return lit.Text
	}
	return v.Format(expression.DefaultFormat())
}
