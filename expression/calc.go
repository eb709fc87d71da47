package expression

import "strings"

// CallValue, BinOpValue and ParenValue are the three "residue" variants
// (§4.1, §4.3): CSS-native expressions such as calc(1px + var(--x)) that
// cannot be reduced to a concrete Numeric because they reference a
// custom property, an unknown function, or another unevaluated
// operand. They round-trip through formatting byte-for-byte modulo
// whitespace normalization, so that `calc(1px  +  var(--x))` survives
// compilation unchanged in meaning.

// CallValue is an unresolved function call, e.g. var(--gap, 8px) or an
// unrecognized CSS function passed through verbatim.
type CallValue struct {
	Name string
	Args []Value
}

func NewCallValue(name string, args []Value) CallValue {
	return CallValue{Name: name, Args: args}
}

func (c CallValue) TypeName() string { return "calculation" }

func (c CallValue) Format(f Format) string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.Format(f)
	}
	sep := ", "
	if f.isCompressed() {
		sep = ","
	}
	return c.Name + "(" + strings.Join(parts, sep) + ")"
}

func (c CallValue) Truthy() bool { return true }

// BinOpValue is an unreduced binary operation inside a calc()-family
// residue, e.g. `1px + var(--x)`. Ws1/Ws2 record whether whitespace
// surrounded the operator in the source, so Expanded formatting can
// reproduce `1px + 2px` rather than collapsing it to `1px+2px` (CSS
// requires whitespace around +/- inside calc()).
type BinOpValue struct {
	LHS Value
	Op  string
	RHS Value
	Ws1 bool
	Ws2 bool
}

func NewBinOpValue(lhs Value, op string, rhs Value) BinOpValue {
	return BinOpValue{LHS: lhs, Op: op, RHS: rhs, Ws1: true, Ws2: true}
}

func (b BinOpValue) TypeName() string { return "calculation" }

func (b BinOpValue) Format(f Format) string {
	lws, rws := " ", " "
	if f.isCompressed() && b.Op != "+" && b.Op != "-" {
		lws, rws = "", ""
	}
	return b.LHS.Format(f) + lws + b.Op + rws + b.RHS.Format(f)
}

func (b BinOpValue) Truthy() bool { return true }

// ParenValue is a parenthesized residue. WasSlashSeparated records that
// the parens originally wrapped a `/`-separated pair (e.g. `(1/2)` in a
// font shorthand) rather than a division, which affects how later
// arithmetic may reinterpret it.
type ParenValue struct {
	Inner             Value
	WasSlashSeparated bool
}

func NewParenValue(inner Value, wasSlash bool) ParenValue {
	return ParenValue{Inner: inner, WasSlashSeparated: wasSlash}
}

func (p ParenValue) TypeName() string { return p.Inner.TypeName() }

func (p ParenValue) Format(f Format) string {
	return "(" + p.Inner.Format(f) + ")"
}

func (p ParenValue) Truthy() bool { return p.Inner.Truthy() }

// TypeNameOf mirrors §4.1's introspection rule: calc/min/max/clamp
// residues and unreduced binary operations report as "calculation",
// everything else defers to its own TypeName.
func TypeNameOf(v Value) string {
	switch v.(type) {
	case CallValue, BinOpValue, ParenValue:
		return "calculation"
	default:
		return v.TypeName()
	}
}

// calcFnNames are the CSS math functions whose arguments partially
// evaluate in place (§4.1): concrete numeric subexpressions reduce,
// anything touching var()/env()/an unknown identifier stays a residue.
var calcFnNames = map[string]bool{
	"calc": true, "min": true, "max": true, "clamp": true,
}

// IsCalcFunction reports whether name triggers calc-style partial
// evaluation when encountered as a Call residue.
func IsCalcFunction(name string) bool {
	return calcFnNames[strings.ToLower(name)]
}

// ReduceCalc attempts to fold a calc()-family BinOpValue tree into a
// concrete Numeric, falling back to the unreduced residue wherever an
// operand cannot be resolved (e.g. it is itself a CallValue referencing
// var()/env(), or units are incompatible).
func ReduceCalc(v Value) Value {
	b, ok := v.(BinOpValue)
	if !ok {
		if p, ok := v.(ParenValue); ok {
			return ParenValue{Inner: ReduceCalc(p.Inner), WasSlashSeparated: p.WasSlashSeparated}
		}
		return v
	}
	lhs := ReduceCalc(b.LHS)
	rhs := ReduceCalc(b.RHS)

	ln, lok := lhs.(Numeric)
	rn, rok := rhs.(Numeric)
	if !lok || !rok {
		return BinOpValue{LHS: lhs, Op: b.Op, RHS: rhs, Ws1: b.Ws1, Ws2: b.Ws2}
	}

	switch b.Op {
	case "+":
		if res, err := addNumeric(ln, rn); err == nil {
			return res
		}
	case "-":
		if res, err := subNumeric(ln, rn); err == nil {
			return res
		}
	case "*":
		return NewNumeric(ln.Num.Mul(rn.Num), ln.Unit.Mul(rn.Unit))
	case "/":
		if !rn.Num.IsZero() {
			q, _ := ln.Num.Div(rn.Num)
			return NewNumeric(q, ln.Unit.Div(rn.Unit))
		}
	}
	return BinOpValue{LHS: lhs, Op: b.Op, RHS: rhs, Ws1: b.Ws1, Ws2: b.Ws2}
}

// ReduceCalcArgs applies ReduceCalc across a min()/max()/clamp() call's
// arguments and, when every argument reduces to a concrete compatible
// Numeric, folds the whole call to a literal result; otherwise the call
// is returned with each argument reduced as far as possible.
func ReduceCalcArgs(c CallValue) Value {
	name := strings.ToLower(c.Name)
	reduced := make([]Value, len(c.Args))
	for i, a := range c.Args {
		reduced[i] = ReduceCalc(a)
	}

	if name == "calc" {
		if len(reduced) == 1 {
			return reduced[0]
		}
		return CallValue{Name: c.Name, Args: reduced}
	}

	nums := make([]Numeric, 0, len(reduced))
	allNumeric := true
	for _, r := range reduced {
		n, ok := r.(Numeric)
		if !ok {
			allNumeric = false
			break
		}
		nums = append(nums, n)
	}
	if !allNumeric || len(nums) == 0 {
		return CallValue{Name: c.Name, Args: reduced}
	}

	switch name {
	case "min", "max":
		best := nums[0]
		for _, n := range nums[1:] {
			if !best.Unit.ConvertibleUnit(n.Unit) {
				return CallValue{Name: c.Name, Args: reduced}
			}
			factor, err := n.Unit.ConversionFactor(best.Unit)
			if err != nil {
				return CallValue{Name: c.Name, Args: reduced}
			}
			cmp := best.Num.Cmp(NumberFromFloat(n.Num.Float64() * factor))
			if (name == "min" && cmp > 0) || (name == "max" && cmp < 0) {
				best = n
			}
		}
		return best
	case "clamp":
		if len(nums) != 3 {
			return CallValue{Name: c.Name, Args: reduced}
		}
		min, val, max := nums[0], nums[1], nums[2]
		if !min.Unit.ConvertibleUnit(val.Unit) || !max.Unit.ConvertibleUnit(val.Unit) {
			return CallValue{Name: c.Name, Args: reduced}
		}
		minF, errA := min.Unit.ConversionFactor(val.Unit)
		maxF, errB := max.Unit.ConversionFactor(val.Unit)
		if errA != nil || errB != nil {
			return CallValue{Name: c.Name, Args: reduced}
		}
		minV := NumberFromFloat(min.Num.Float64() * minF)
		maxV := NumberFromFloat(max.Num.Float64() * maxF)
		v := val.Num
		if v.Cmp(minV) < 0 {
			v = minV
		}
		if v.Cmp(maxV) > 0 {
			v = maxV
		}
		return NewNumeric(v, val.Unit)
	}
	return CallValue{Name: c.Name, Args: reduced}
}
