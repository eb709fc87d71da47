package functions

import (
	"fmt"

	"github.com/sssc-dev/sssc/expression"
)

// registerList wires sass:list. Grounded on the teacher's Extract/
// Length/Range (types.go in the original tree split list helpers in
// with type predicates); here they operate on expression.List/AsList
// directly instead of re-splitting a raw comma/space string each call.
func (r *Registry) registerList() {
	r.addFn("list", "length", func(args *expression.ArgList) (expression.Value, error) {
		v, ok := arg(args, 0, "list")
		if !ok {
			return nil, fmt.Errorf("missing argument $list")
		}
		if m, ok := v.(*expression.Map); ok {
			return num(float64(m.Len())), nil
		}
		return num(float64(len(expression.AsList(v).Items))), nil
	})

	r.addFn("list", "nth", func(args *expression.ArgList) (expression.Value, error) {
		v, ok := arg(args, 0, "list")
		if !ok {
			return nil, fmt.Errorf("missing argument $list")
		}
		n, err := requireNumber(args, 1, "n")
		if err != nil {
			return nil, err
		}
		return expression.AsList(v).Nth(int(n.Num.Float64()))
	})

	r.addFn("list", "set-nth", func(args *expression.ArgList) (expression.Value, error) {
		v, ok := arg(args, 0, "list")
		if !ok {
			return nil, fmt.Errorf("missing argument $list")
		}
		n, err := requireNumber(args, 1, "n")
		if err != nil {
			return nil, err
		}
		val, ok := arg(args, 2, "value")
		if !ok {
			return nil, fmt.Errorf("missing argument $value")
		}
		l := expression.AsList(v)
		idx, err := expression.ListIndex(len(l.Items), int(n.Num.Float64()))
		if err != nil {
			return nil, err
		}
		out := make([]expression.Value, len(l.Items))
		copy(out, l.Items)
		out[idx] = val
		return expression.NewListValue(out, l.Sep, l.Bracketed), nil
	})

	r.addFn("list", "append", func(args *expression.ArgList) (expression.Value, error) {
		v, ok := arg(args, 0, "list")
		if !ok {
			return nil, fmt.Errorf("missing argument $list")
		}
		val, ok := arg(args, 1, "val")
		if !ok {
			return nil, fmt.Errorf("missing argument $val")
		}
		l := expression.AsList(v)
		sep := l.Sep
		if sepArg, ok := arg(args, 2, "separator"); ok {
			if lit, ok := sepArg.(expression.Literal); ok {
				switch lit.Text {
				case "comma":
					sep = expression.CommaSeparator
				case "space":
					sep = expression.SpaceSeparator
				}
			}
		}
		out := append(append([]expression.Value{}, l.Items...), val)
		return expression.NewListValue(out, sep, l.Bracketed), nil
	})

	r.addFn("list", "join", func(args *expression.ArgList) (expression.Value, error) {
		v1, ok := arg(args, 0, "list1")
		if !ok {
			return nil, fmt.Errorf("missing argument $list1")
		}
		v2, ok := arg(args, 1, "list2")
		if !ok {
			return nil, fmt.Errorf("missing argument $list2")
		}
		l1, l2 := expression.AsList(v1), expression.AsList(v2)
		sep := l1.Sep
		if len(l1.Items) == 0 {
			sep = l2.Sep
		}
		if sepArg, ok := arg(args, 2, "separator"); ok {
			if lit, ok := sepArg.(expression.Literal); ok {
				switch lit.Text {
				case "comma":
					sep = expression.CommaSeparator
				case "space":
					sep = expression.SpaceSeparator
				}
			}
		}
		out := append(append([]expression.Value{}, l1.Items...), l2.Items...)
		bracketed := boolArgTrue(args, 3, "bracketed", l1.Bracketed)
		return expression.NewListValue(out, sep, bracketed), nil
	})

	r.addFn("list", "index", func(args *expression.ArgList) (expression.Value, error) {
		v, ok := arg(args, 0, "list")
		if !ok {
			return nil, fmt.Errorf("missing argument $list")
		}
		val, ok := arg(args, 1, "value")
		if !ok {
			return nil, fmt.Errorf("missing argument $value")
		}
		idx := expression.AsList(v).IndexOf(val)
		if idx == 0 {
			return expression.Null, nil
		}
		return num(float64(idx)), nil
	})

	r.addFn("list", "zip", func(args *expression.ArgList) (expression.Value, error) {
		lists := make([]expression.List, 0, len(args.Positional))
		for _, v := range args.Positional {
			lists = append(lists, expression.AsList(v))
		}
		return expression.Zip(lists...), nil
	})

	r.addFn("list", "is-bracketed", func(args *expression.ArgList) (expression.Value, error) {
		v, ok := arg(args, 0, "list")
		if !ok {
			return nil, fmt.Errorf("missing argument $list")
		}
		return expression.NewBool(expression.AsList(v).Bracketed), nil
	})

	r.addFn("list", "separator", func(args *expression.ArgList) (expression.Value, error) {
		v, ok := arg(args, 0, "list")
		if !ok {
			return nil, fmt.Errorf("missing argument $list")
		}
		l := expression.AsList(v)
		if len(l.Items) < 2 {
			return quotedStr("space"), nil
		}
		switch l.Sep {
		case expression.CommaSeparator:
			return quotedStr("comma"), nil
		case expression.SlashSeparator:
			return quotedStr("slash"), nil
		default:
			return quotedStr("space"), nil
		}
	})

	r.addFn("", "range", func(args *expression.ArgList) (expression.Value, error) {
		start, err := requireNumber(args, 0, "start")
		if err != nil {
			return nil, err
		}
		end, err := requireNumber(args, 1, "end")
		if err != nil {
			return nil, err
		}
		step := 1.0
		if s, ok := arg(args, 2, "step"); ok {
			if sn, ok := s.(expression.Numeric); ok {
				step = sn.Num.Float64()
			}
		}
		if step == 0 {
			step = 1
		}
		var items []expression.Value
		s, e := start.Num.Float64(), end.Num.Float64()
		if s <= e {
			for i := s; i <= e; i += step {
				items = append(items, numUnit(i, start.Unit))
			}
		} else {
			for i := s; i >= e; i -= step {
				items = append(items, numUnit(i, start.Unit))
			}
		}
		return expression.NewListValue(items, expression.CommaSeparator, false), nil
	})
}
