package expression

import (
	"math/big"
	"strconv"
	"strings"
)

// Number is an exact rational. Intermediate arithmetic never rounds;
// only Format.Round (applied at emit time, see Format in format.go)
// introduces decimal rounding.
type Number struct {
	rat *big.Rat
}

// NumberFromInt builds an exact integer Number.
func NumberFromInt(n int64) Number {
	return Number{rat: new(big.Rat).SetInt64(n)}
}

// NumberFromFloat builds a Number from a float64, preserving its exact
// binary value as a rational (not its decimal text).
func NumberFromFloat(f float64) Number {
	r := new(big.Rat)
	r.SetFloat64(f)
	if r == nil {
		// NaN/Inf: fall back to zero, callers should guard upstream.
		r = new(big.Rat)
	}
	return Number{rat: r}
}

// ParseNumber parses a decimal literal like "1.5", "-3", "0.1e2" exactly.
func ParseNumber(s string) (Number, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}, false
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Number{}, false
	}
	return Number{rat: r}, true
}

func (n Number) ratOrZero() *big.Rat {
	if n.rat == nil {
		return new(big.Rat)
	}
	return n.rat
}

// Add returns n + other.
func (n Number) Add(other Number) Number {
	return Number{rat: new(big.Rat).Add(n.ratOrZero(), other.ratOrZero())}
}

// Sub returns n - other.
func (n Number) Sub(other Number) Number {
	return Number{rat: new(big.Rat).Sub(n.ratOrZero(), other.ratOrZero())}
}

// Mul returns n * other.
func (n Number) Mul(other Number) Number {
	return Number{rat: new(big.Rat).Mul(n.ratOrZero(), other.ratOrZero())}
}

// Div returns n / other. ok is false on division by zero.
func (n Number) Div(other Number) (Number, bool) {
	if other.IsZero() {
		return Number{}, false
	}
	return Number{rat: new(big.Rat).Quo(n.ratOrZero(), other.ratOrZero())}, true
}

// Mod returns the floating-point-style remainder of n / other, matching
// CSS `%` semantics (sign follows the dividend).
func (n Number) Mod(other Number) (Number, bool) {
	if other.IsZero() {
		return Number{}, false
	}
	a, b := n.Float64(), other.Float64()
	quotient := a / b
	intPart := float64(int64(quotient))
	rem := a - intPart*b
	return NumberFromFloat(rem), true
}

// Neg returns -n.
func (n Number) Neg() Number {
	return Number{rat: new(big.Rat).Neg(n.ratOrZero())}
}

// IsZero reports n == 0.
func (n Number) IsZero() bool {
	return n.ratOrZero().Sign() == 0
}

// Sign returns -1, 0, or 1.
func (n Number) Sign() int {
	return n.ratOrZero().Sign()
}

// Cmp compares n to other: -1, 0, or 1.
func (n Number) Cmp(other Number) int {
	return n.ratOrZero().Cmp(other.ratOrZero())
}

// Equal reports exact rational equality.
func (n Number) Equal(other Number) bool {
	return n.Cmp(other) == 0
}

// Float64 returns the nearest float64 approximation, used for transcendental
// builtins (sqrt, sin, ...) which cannot be represented exactly as rationals.
func (n Number) Float64() float64 {
	f, _ := n.ratOrZero().Float64()
	return f
}

// IsInteger reports whether n has no fractional part.
func (n Number) IsInteger() bool {
	return n.ratOrZero().IsInt()
}

// Int64 truncates n toward zero.
func (n Number) Int64() int64 {
	return int64(n.Float64())
}

// Round rounds to the given number of decimal places (0 = integer),
// half away from zero, matching CSS serialization rules.
func (n Number) Round(places int) Number {
	if places < 0 {
		places = 0
	}
	scale := new(big.Rat).SetFloat64(pow10(places))
	scaled := new(big.Rat).Mul(n.ratOrZero(), scale)

	num := new(big.Int).Set(scaled.Num())
	den := new(big.Int).Set(scaled.Denom())

	half := new(big.Int).Mul(den, big.NewInt(1))
	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	rem2 := new(big.Int).Mul(new(big.Int).Abs(rem), big.NewInt(2))
	if rem2.Cmp(half) >= 0 {
		if num.Sign() >= 0 {
			quo.Add(quo, big.NewInt(1))
		} else {
			quo.Sub(quo, big.NewInt(1))
		}
	}

	result := new(big.Rat).SetFrac(quo, big.NewInt(1))
	result.Quo(result, scale)
	return Number{rat: result}
}

func pow10(n int) float64 {
	f := 1.0
	for i := 0; i < n; i++ {
		f *= 10
	}
	return f
}

// Format renders the exact number with up to `precision` decimal places,
// trimming trailing zeros and a trailing decimal point (matches the
// `trimFloat`-style formatting the teacher used, made exact).
func (n Number) Format(precision int) string {
	rounded := n.Round(precision)
	f := rounded.Float64()
	s := strconv.FormatFloat(f, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
