package expression

import "fmt"

// Add implements §4.1's `+` operator across the value algebra:
// numeric + numeric propagates/cancels units, color + color adds
// channels, and anything touching a string concatenates (with quotes
// preserved from the left operand when either side was quoted).
func Add(a, b Value) (Value, error) {
	if an, ok := a.(Numeric); ok {
		if bn, ok := b.(Numeric); ok {
			return addNumeric(an, bn)
		}
	}
	if ac, ok := a.(ColorValue); ok {
		if bc, ok := b.(ColorValue); ok {
			return combineColors(ac, bc, func(x, y float64) float64 { return x + y }), nil
		}
	}
	if _, isStr := stringOperand(a); isStr {
		return concat(a, b), nil
	}
	if _, isStr := stringOperand(b); isStr {
		return concat(a, b), nil
	}
	return nil, fmt.Errorf("cannot add %s and %s", TypeNameOf(a), TypeNameOf(b))
}

// Sub implements `-`.
func Sub(a, b Value) (Value, error) {
	if an, ok := a.(Numeric); ok {
		if bn, ok := b.(Numeric); ok {
			return subNumeric(an, bn)
		}
	}
	if ac, ok := a.(ColorValue); ok {
		if bc, ok := b.(ColorValue); ok {
			return combineColors(ac, bc, func(x, y float64) float64 { return x - y }), nil
		}
	}
	return nil, fmt.Errorf("cannot subtract %s from %s", TypeNameOf(b), TypeNameOf(a))
}

// Mul implements `*`: numeric*numeric multiplies units; a number may
// also scale a color's channels.
func Mul(a, b Value) (Value, error) {
	if an, ok := a.(Numeric); ok {
		if bn, ok := b.(Numeric); ok {
			return NewNumeric(an.Num.Mul(bn.Num), an.Unit.Mul(bn.Unit)), nil
		}
	}
	return nil, fmt.Errorf("cannot multiply %s and %s", TypeNameOf(a), TypeNameOf(b))
}

// Div implements `/` between two numerics; the slash-as-separator case
// for other value kinds is handled by the Paren/List machinery in the
// evaluator, not here. ok is false on division by zero.
func Div(a, b Value) (Value, bool, error) {
	an, aok := a.(Numeric)
	bn, bok := b.(Numeric)
	if !aok || !bok {
		return nil, false, fmt.Errorf("cannot divide %s by %s", TypeNameOf(a), TypeNameOf(b))
	}
	q, ok := an.Num.Div(bn.Num)
	if !ok {
		return nil, false, nil
	}
	return NewNumeric(q, an.Unit.Div(bn.Unit)), true, nil
}

// Mod implements CSS `%`.
func Mod(a, b Value) (Value, bool, error) {
	an, aok := a.(Numeric)
	bn, bok := b.(Numeric)
	if !aok || !bok {
		return nil, false, fmt.Errorf("cannot take %s %% %s", TypeNameOf(a), TypeNameOf(b))
	}
	factor := 1.0
	if !an.Unit.IsEmpty() || !bn.Unit.IsEmpty() {
		f, err := bn.Unit.ConversionFactor(an.Unit)
		if err != nil {
			return nil, false, fmt.Errorf("incompatible units in %%: %s and %s", an.Unit, bn.Unit)
		}
		factor = f
	}
	r, ok := an.Num.Mod(NumberFromFloat(bn.Num.Float64() * factor))
	if !ok {
		return nil, false, nil
	}
	return NewNumeric(r, an.Unit), true, nil
}

// Neg implements unary `-`.
func Neg(a Value) (Value, error) {
	if an, ok := a.(Numeric); ok {
		return NewNumeric(an.Num.Neg(), an.Unit), nil
	}
	return nil, fmt.Errorf("cannot negate %s", TypeNameOf(a))
}

// Compare implements `<`, `<=`, `>`, `>=`: only numerics with
// convertible units may be ordered.
func Compare(a, b Value) (int, error) {
	an, aok := a.(Numeric)
	bn, bok := b.(Numeric)
	if !aok || !bok {
		return 0, fmt.Errorf("cannot compare %s and %s", TypeNameOf(a), TypeNameOf(b))
	}
	if !an.Unit.ConvertibleUnit(bn.Unit) {
		return 0, fmt.Errorf("cannot compare incompatible units %s and %s", an.Unit, bn.Unit)
	}
	factor, err := bn.Unit.ConversionFactor(an.Unit)
	if err != nil {
		return 0, err
	}
	return an.Num.Cmp(NumberFromFloat(bn.Num.Float64() * factor)), nil
}

func addNumeric(a, b Numeric) (Value, error) {
	if a.Unit.IsEmpty() && b.Unit.IsEmpty() {
		return NewNumeric(a.Num.Add(b.Num), NoUnit()), nil
	}
	if !a.Unit.ConvertibleUnit(b.Unit) {
		return nil, fmt.Errorf("incompatible units %s and %s", a.Unit, b.Unit)
	}
	factor, err := b.Unit.ConversionFactor(a.Unit)
	if err != nil {
		return nil, err
	}
	sum := a.Num.Add(NumberFromFloat(b.Num.Float64() * factor))
	return NewNumeric(sum, a.Unit), nil
}

func subNumeric(a, b Numeric) (Value, error) {
	if a.Unit.IsEmpty() && b.Unit.IsEmpty() {
		return NewNumeric(a.Num.Sub(b.Num), NoUnit()), nil
	}
	if !a.Unit.ConvertibleUnit(b.Unit) {
		return nil, fmt.Errorf("incompatible units %s and %s", a.Unit, b.Unit)
	}
	factor, err := b.Unit.ConversionFactor(a.Unit)
	if err != nil {
		return nil, err
	}
	diff := a.Num.Sub(NumberFromFloat(b.Num.Float64() * factor))
	return NewNumeric(diff, a.Unit), nil
}

func combineColors(a, b ColorValue, op func(x, y float64) float64) Value {
	ac, bc := a.Color.ToRgba(), b.Color.ToRgba()
	r := NewRgba(
		clampChannel(op(ac.R, bc.R)),
		clampChannel(op(ac.G, bc.G)),
		clampChannel(op(ac.B, bc.B)),
		clamp01(op(ac.A, bc.A)),
	)
	return NewColorValue(r)
}

// stringOperand reports whether v should participate in string
// concatenation when used as an Add operand: only Literal values do.
func stringOperand(v Value) (string, bool) {
	if l, ok := v.(Literal); ok {
		return l.Text, true
	}
	return "", false
}

// concat implements CSS-style `+` string concatenation: the result is
// quoted when either operand is a quoted Literal (taking the left
// operand's quotes first), and unquoted otherwise (§4.1).
func concat(a, b Value) Value {
	af := a.Format(DefaultFormat())
	bf := b.Format(DefaultFormat())
	la, aIsLit := a.(Literal)
	lb, bIsLit := b.(Literal)
	quotes := NoQuotes
	if aIsLit && la.Quotes != NoQuotes {
		quotes = la.Quotes
	} else if bIsLit && lb.Quotes != NoQuotes {
		quotes = lb.Quotes
	}
	text := af
	if aIsLit {
		text = la.Text
	}
	rest := bf
	if bIsLit {
		rest = lb.Text
	}
	return NewLiteral(text+rest, quotes)
}
