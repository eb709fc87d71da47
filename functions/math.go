package functions

import (
	"fmt"
	"math"

	"github.com/sssc-dev/sssc/expression"
)

// registerMath wires sass:math, grounded on the teacher's Ceil/Floor/
// Round/Abs/Sqrt/Pow/Min/Max (math.go), generalized from unit-suffix
// string splitting to operating on expression.Numeric's own Unit
// field directly.
func (r *Registry) registerMath() {
	unary := func(f func(float64) float64) handler {
		return func(args *expression.ArgList) (expression.Value, error) {
			n, err := requireNumber(args, 0, "number")
			if err != nil {
				return nil, err
			}
			return numUnit(f(n.Num.Float64()), n.Unit), nil
		}
	}

	r.addFn("math", "ceil", unary(math.Ceil))
	r.addFn("math", "floor", unary(math.Floor))
	r.addFn("math", "round", unary(math.Round))
	r.addFn("math", "abs", unary(math.Abs))
	r.addFn("math", "sqrt", unary(math.Sqrt))
	r.addFn("math", "sin", unary(func(x float64) float64 { return math.Sin(x * math.Pi / 180) }))
	r.addFn("math", "cos", unary(func(x float64) float64 { return math.Cos(x * math.Pi / 180) }))
	r.addFn("math", "tan", unary(func(x float64) float64 { return math.Tan(x * math.Pi / 180) }))
	r.addFn("math", "asin", unary(func(x float64) float64 { return math.Asin(x) * 180 / math.Pi }))
	r.addFn("math", "acos", unary(func(x float64) float64 { return math.Acos(x) * 180 / math.Pi }))

	r.addFn("math", "atan", func(args *expression.ArgList) (expression.Value, error) {
		n, err := requireNumber(args, 0, "number")
		if err != nil {
			return nil, err
		}
		return numUnit(math.Atan(n.Num.Float64())*180/math.Pi, expression.SingleUnit("deg")), nil
	})

	r.addFn("math", "pi", func(args *expression.ArgList) (expression.Value, error) {
		return num(math.Pi), nil
	})

	r.addFn("math", "pow", func(args *expression.ArgList) (expression.Value, error) {
		base, err := requireNumber(args, 0, "base")
		if err != nil {
			return nil, err
		}
		exp, err := requireNumber(args, 1, "exponent")
		if err != nil {
			return nil, err
		}
		return num(math.Pow(base.Num.Float64(), exp.Num.Float64())), nil
	})

	r.addFn("math", "min", minMaxFn(func(a, b float64) bool { return a < b }))
	r.addFn("math", "max", minMaxFn(func(a, b float64) bool { return a > b }))

	r.addFn("math", "percentage", func(args *expression.ArgList) (expression.Value, error) {
		n, err := requireNumber(args, 0, "number")
		if err != nil {
			return nil, err
		}
		return numUnit(n.Num.Float64()*100, expression.SingleUnit("%")), nil
	})

	r.addFn("math", "div", func(args *expression.ArgList) (expression.Value, error) {
		a, err := requireNumber(args, 0, "dividend")
		if err != nil {
			return nil, err
		}
		b, err := requireNumber(args, 1, "divisor")
		if err != nil {
			return nil, err
		}
		v, ok, err := expression.Div(a, b)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("division by zero")
		}
		return v, nil
	})

	r.addFn("math", "unit", func(args *expression.ArgList) (expression.Value, error) {
		n, err := requireNumber(args, 0, "number")
		if err != nil {
			return nil, err
		}
		return quotedStr(n.Unit.String()), nil
	})

	r.addFn("math", "is-unitless", func(args *expression.ArgList) (expression.Value, error) {
		n, err := requireNumber(args, 0, "number")
		if err != nil {
			return nil, err
		}
		return expression.NewBool(n.Unit.IsEmpty()), nil
	})

	r.addFn("math", "compatible", func(args *expression.ArgList) (expression.Value, error) {
		a, err := requireNumber(args, 0, "number1")
		if err != nil {
			return nil, err
		}
		b, err := requireNumber(args, 1, "number2")
		if err != nil {
			return nil, err
		}
		return expression.NewBool(a.Unit.ConvertibleUnit(b.Unit)), nil
	})

	r.addFn("math", "clamp", func(args *expression.ArgList) (expression.Value, error) {
		lo, err := requireNumber(args, 0, "min")
		if err != nil {
			return nil, err
		}
		v, err := requireNumber(args, 1, "number")
		if err != nil {
			return nil, err
		}
		hi, err := requireNumber(args, 2, "max")
		if err != nil {
			return nil, err
		}
		f := v.Num.Float64()
		if f < lo.Num.Float64() {
			return numUnit(lo.Num.Float64(), lo.Unit), nil
		}
		if f > hi.Num.Float64() {
			return numUnit(hi.Num.Float64(), hi.Unit), nil
		}
		return numUnit(f, v.Unit), nil
	})
}

// minMaxFn builds sass:math.min/max, which accept a flat arg list (not
// a bracketed one) and must compare across compatible units rather
// than raw floats, matching the teacher's extractUnit-preserving Min/Max.
func minMaxFn(better func(a, b float64) bool) handler {
	return func(args *expression.ArgList) (expression.Value, error) {
		if len(args.Positional) == 0 {
			return nil, fmt.Errorf("at least one argument is required")
		}
		best := args.Positional[0].(expression.Numeric)
		for _, v := range args.Positional[1:] {
			n, ok := v.(expression.Numeric)
			if !ok {
				return nil, fmt.Errorf("%s is not a number", v.Format(expression.DefaultFormat()))
			}
			factor, err := n.Unit.ConversionFactor(best.Unit)
			if err != nil {
				return nil, err
			}
			if better(n.Num.Float64()*factor, best.Num.Float64()) {
				best = n
			}
		}
		return best, nil
	}
}
