package expression

import (
	"fmt"
	"strings"
)

// Value is the tagged union described in §3: every evaluated SSS value
// implements it. The variant set mirrors the teacher's ast.Value
// interface (Literal/Variable/FunctionCall/BinaryOp/List), generalized
// to the full algebra: numerics carry a Unit, colors carry a color
// space, strings carry quoting, and three residue variants (Call,
// BinOp, Paren, defined in calc.go) preserve CSS-native expressions
// that cannot be reduced.
type Value interface {
	// TypeName is the name reported to introspection builtins
	// (meta.type-of): "number", "string", "color", "list", "map",
	// "bool", "null", "function", "arglist", "calculation".
	TypeName() string
	// Format renders the value for CSS output under f.
	Format(f Format) string
	// Truthy implements §4.1: false and null are falsy, everything
	// else (including 0, "", empty list) is truthy.
	Truthy() bool
}

// --- Null ---

type nullValue struct{}

// Null is the sole instance of the Null variant.
var Null Value = nullValue{}

func (nullValue) TypeName() string     { return "null" }
func (nullValue) Format(Format) string { return "" }
func (nullValue) Truthy() bool         { return false }

// IsNull reports whether v is the Null value.
func IsNull(v Value) bool { _, ok := v.(nullValue); return ok }

// --- Bool ---

type boolValue bool

// True and False are the two Bool instances.
var (
	True  Value = boolValue(true)
	False Value = boolValue(false)
)

// NewBool returns True or False.
func NewBool(b bool) Value {
	if b {
		return True
	}
	return False
}

func (b boolValue) TypeName() string { return "bool" }
func (b boolValue) Format(Format) string {
	if b {
		return "true"
	}
	return "false"
}
func (b boolValue) Truthy() bool { return bool(b) }

// BoolOf extracts the Go bool, if v is a Bool.
func BoolOf(v Value) (bool, bool) {
	b, ok := v.(boolValue)
	return bool(b), ok
}

// --- Numeric ---

// Numeric is a Number with a Unit (§3, §4.2). A dimensionless number
// has Unit = NoUnit().
type Numeric struct {
	Num  Number
	Unit Unit
}

// NewNumeric constructs a Numeric value.
func NewNumeric(n Number, u Unit) Numeric {
	return Numeric{Num: n, Unit: u}
}

func (n Numeric) TypeName() string { return "number" }

func (n Numeric) Format(f Format) string {
	numStr := n.Num.Format(f.Precision)
	unitStr := n.Unit.String()
	if unitStr == "" {
		return numStr
	}
	return numStr + unitStr
}

func (n Numeric) Truthy() bool { return true }

// --- Color ---

// ColorValue wraps *Color as a Value.
type ColorValue struct {
	Color *Color
}

func NewColorValue(c *Color) ColorValue { return ColorValue{Color: c} }

func (c ColorValue) TypeName() string { return "color" }
func (c ColorValue) Format(f Format) string {
	if f.isCompressed() {
		return c.Color.StringCompressed()
	}
	return c.Color.String()
}
func (c ColorValue) Truthy() bool { return true }

// --- Literal (string) ---

// Quotes records how a Literal should be formatted: unquoted bareword,
// or quoted with the original delimiter.
type Quotes int

const (
	NoQuotes Quotes = iota
	SingleQuotes
	DoubleQuotes
)

// Literal is a (possibly already-interpolated) string value.
type Literal struct {
	Text   string
	Quotes Quotes
}

func NewLiteral(text string, q Quotes) Literal { return Literal{Text: text, Quotes: q} }

func (l Literal) TypeName() string { return "string" }

func (l Literal) Format(Format) string {
	switch l.Quotes {
	case SingleQuotes:
		return "'" + strings.ReplaceAll(l.Text, "'", "\\'") + "'"
	case DoubleQuotes:
		return "\"" + strings.ReplaceAll(l.Text, "\"", "\\\"") + "\""
	default:
		return l.Text
	}
}

func (l Literal) Truthy() bool { return true }

// --- List ---

// Separator records how a List's items were, or will be, joined.
type Separator int

const (
	SpaceSeparator Separator = iota
	CommaSeparator
	SlashSeparator
)

func (s Separator) str() string {
	switch s {
	case CommaSeparator:
		return ", "
	case SlashSeparator:
		return " / "
	default:
		return " "
	}
}

func (s Separator) strCompressed() string {
	switch s {
	case CommaSeparator:
		return ","
	case SlashSeparator:
		return "/"
	default:
		return " "
	}
}

// List preserves separator and bracket metadata even when empty (§3).
type List struct {
	Items     []Value
	Sep       Separator
	Bracketed bool
}

func NewListValue(items []Value, sep Separator, bracketed bool) List {
	return List{Items: items, Sep: sep, Bracketed: bracketed}
}

func (l List) TypeName() string { return "list" }

func (l List) Format(f Format) string {
	sep := l.Sep.str()
	if f.isCompressed() {
		sep = l.Sep.strCompressed()
	}
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.Format(f)
	}
	body := strings.Join(parts, sep)
	if l.Bracketed {
		return "[" + body + "]"
	}
	return body
}

func (l List) Truthy() bool { return true }

// --- Map ---

// mapEntry is one key/value pair in insertion order.
type mapEntry struct {
	Key Value
	Val Value
}

// Map preserves insertion order; lookups use Value-equality (§3).
type Map struct {
	entries []mapEntry
}

func NewMap() *Map { return &Map{} }

func (m *Map) Set(key, val Value) {
	for i, e := range m.entries {
		if ValuesEqual(e.Key, key) {
			m.entries[i].Val = val
			return
		}
	}
	m.entries = append(m.entries, mapEntry{Key: key, Val: val})
}

func (m *Map) Get(key Value) (Value, bool) {
	for _, e := range m.entries {
		if ValuesEqual(e.Key, key) {
			return e.Val, true
		}
	}
	return nil, false
}

func (m *Map) Len() int { return len(m.entries) }

func (m *Map) Keys() []Value {
	out := make([]Value, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Key
	}
	return out
}

func (m *Map) Values() []Value {
	out := make([]Value, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Val
	}
	return out
}

func (m *Map) TypeName() string { return "map" }

func (m *Map) Format(f Format) string {
	parts := make([]string, len(m.entries))
	for i, e := range m.entries {
		parts[i] = fmt.Sprintf("%s: %s", e.Key.Format(f), e.Val.Format(f))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (m *Map) Truthy() bool { return true }

// --- ArgList ---

// ArgList is the special value bound to a mixin/function's `...` rest
// parameter: a positional list plus an ordered map of named arguments.
type ArgList struct {
	Positional []Value
	NamedKeys  []string
	Named      map[string]Value
}

func NewArgList() *ArgList {
	return &ArgList{Named: map[string]Value{}}
}

func (a *ArgList) SetNamed(name string, v Value) {
	if _, exists := a.Named[name]; !exists {
		a.NamedKeys = append(a.NamedKeys, name)
	}
	a.Named[name] = v
}

func (a *ArgList) TypeName() string { return "arglist" }

func (a *ArgList) Format(f Format) string {
	parts := make([]string, 0, len(a.Positional)+len(a.NamedKeys))
	for _, v := range a.Positional {
		parts = append(parts, v.Format(f))
	}
	for _, k := range a.NamedKeys {
		parts = append(parts, fmt.Sprintf("$%s: %s", k, a.Named[k].Format(f)))
	}
	return strings.Join(parts, ", ")
}

func (a *ArgList) Truthy() bool { return true }

// --- HereSelector ---

type hereSelectorValue struct{}

// HereSelector represents the bare `&` value used in selector contexts.
var HereSelector Value = hereSelectorValue{}

func (hereSelectorValue) TypeName() string     { return "string" }
func (hereSelectorValue) Format(Format) string { return "&" }
func (hereSelectorValue) Truthy() bool         { return true }

// --- UnicodeRange ---

// UnicodeRangeValue is a parsed `unicode-range` CSS-native value, e.g.
// "U+0025-00FF", preserved verbatim.
type UnicodeRangeValue struct {
	Raw string
}

func (u UnicodeRangeValue) TypeName() string     { return "string" }
func (u UnicodeRangeValue) Format(Format) string { return u.Raw }
func (u UnicodeRangeValue) Truthy() bool         { return true }

// --- Function reference ---

// FunctionValue wraps a first-class reference to a named function
// (get-function()/call()). Fn is opaque here (scope owns the concrete
// function type); the evaluator type-asserts it when invoking.
type FunctionValue struct {
	Name string
	Fn   interface{}
}

func (f FunctionValue) TypeName() string     { return "function" }
func (f FunctionValue) Format(Format) string { return "get-function(\"" + f.Name + "\")" }
func (f FunctionValue) Truthy() bool         { return true }

// ValuesEqual implements §4.1's equality: numerics compare across
// compatible units, colors compare by resolved channel, everything
// else compares structurally via formatted text.
func ValuesEqual(a, b Value) bool {
	if IsNull(a) && IsNull(b) {
		return true
	}
	if an, ok := a.(Numeric); ok {
		bn, ok := b.(Numeric)
		if !ok {
			return false
		}
		if an.Unit.IsEmpty() != bn.Unit.IsEmpty() {
			return false
		}
		if an.Unit.IsEmpty() {
			return an.Num.Equal(bn.Num)
		}
		factor, err := bn.Unit.ConversionFactor(an.Unit)
		if err != nil {
			return false
		}
		return an.Num.Equal(NumberFromFloat(bn.Num.Float64() * factor))
	}
	if ac, ok := a.(ColorValue); ok {
		bc, ok := b.(ColorValue)
		if !ok {
			return false
		}
		return ac.Color.Equal(bc.Color)
	}
	if ab, ok := BoolOf(a); ok {
		bb, ok := BoolOf(b)
		return ok && ab == bb
	}
	return a.Format(DefaultFormat()) == b.Format(DefaultFormat())
}
