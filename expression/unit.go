package expression

import (
	"fmt"
	"sort"
	"strings"
)

// Unit is a product of base unit symbols with integer exponents. A
// dimensionless number has an empty product. Units from different
// compatibility classes (length, angle, time, frequency, resolution)
// combine symbolically, e.g. "px*s" or "px/s".
type Unit map[string]int

// NoUnit is the dimensionless unit.
func NoUnit() Unit { return Unit{} }

// SingleUnit builds a Unit product holding exactly one base unit to the
// first power, e.g. SingleUnit("px").
func SingleUnit(name string) Unit {
	if name == "" {
		return Unit{}
	}
	return Unit{name: 1}
}

// IsEmpty reports whether the unit product is dimensionless.
func (u Unit) IsEmpty() bool {
	for _, exp := range u {
		if exp != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (u Unit) Clone() Unit {
	out := make(Unit, len(u))
	for k, v := range u {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}

// Mul returns the product of two unit expressions (exponents add).
func (u Unit) Mul(other Unit) Unit {
	out := u.Clone()
	for k, v := range other {
		out[k] += v
		if out[k] == 0 {
			delete(out, k)
		}
	}
	return out
}

// Div returns u divided by other (exponents subtract).
func (u Unit) Div(other Unit) Unit {
	out := u.Clone()
	for k, v := range other {
		out[k] -= v
		if out[k] == 0 {
			delete(out, k)
		}
	}
	return out
}

// Pow raises every exponent by n.
func (u Unit) Pow(n int) Unit {
	out := make(Unit, len(u))
	for k, v := range u {
		if v*n != 0 {
			out[k] = v * n
		}
	}
	return out
}

// single reports whether the unit is exactly one base unit to the first
// power, returning its name.
func (u Unit) single() (string, bool) {
	if len(u) != 1 {
		return "", false
	}
	for k, v := range u {
		if v == 1 {
			return k, true
		}
	}
	return "", false
}

// String renders the unit product in CSS calc()-compatible form, e.g.
// "px", "px*s", "px/s*s". Dimensionless renders as "".
func (u Unit) String() string {
	if u.IsEmpty() {
		return ""
	}
	if name, ok := u.single(); ok {
		return name
	}

	names := make([]string, 0, len(u))
	for k := range u {
		names = append(names, k)
	}
	sort.Strings(names)

	var num, den []string
	for _, name := range names {
		exp := u[name]
		if exp > 0 {
			for i := 0; i < exp; i++ {
				num = append(num, name)
			}
		} else {
			for i := 0; i < -exp; i++ {
				den = append(den, name)
			}
		}
	}

	numStr := strings.Join(num, "*")
	if numStr == "" {
		numStr = "1"
	}
	if len(den) == 0 {
		return numStr
	}
	return numStr + "/" + strings.Join(den, "*")
}

// unitClass groups units that can be converted amongst each other by a
// constant factor relative to a canonical unit within the class.
type unitClass struct {
	canonical string
	factors   map[string]float64 // name -> multiplier to reach canonical
}

// compatibilityClasses mirrors §4.2: length, angle, time, frequency,
// resolution. Factors convert FROM the named unit TO the canonical one.
var compatibilityClasses = []unitClass{
	{
		canonical: "px",
		factors: map[string]float64{
			"px": 1,
			"cm": 96.0 / 2.54,
			"mm": 96.0 / 25.4,
			"q":  96.0 / 101.6,
			"in": 96,
			"pt": 96.0 / 72.0,
			"pc": 16,
		},
	},
	{
		canonical: "deg",
		factors: map[string]float64{
			"deg":  1,
			"grad": 0.9,
			"rad":  180 / 3.14159265358979323846,
			"turn": 360,
		},
	},
	{
		canonical: "s",
		factors: map[string]float64{
			"s":  1,
			"ms": 0.001,
		},
	},
	{
		canonical: "hz",
		factors: map[string]float64{
			"hz":  1,
			"khz": 1000,
		},
	},
	{
		canonical: "dppx",
		factors: map[string]float64{
			"dppx": 1,
			"dpi":  1.0 / 96.0,
			"dpcm": 2.54 / 96.0,
		},
	},
}

func findClass(unit string) (unitClass, bool) {
	unit = strings.ToLower(unit)
	for _, c := range compatibilityClasses {
		if _, ok := c.factors[unit]; ok {
			return c, true
		}
	}
	return unitClass{}, false
}

// convertibleUnitNames reports whether a and b name units in the same
// compatibility class (or are both empty/unknown-but-equal strings).
func convertibleUnitNames(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}
	ca, aok := findClass(a)
	cb, bok := findClass(b)
	return aok && bok && ca.canonical == cb.canonical
}

// unitFactor returns the multiplier to convert a value expressed in
// `from` into `to`, when both are members of the same compatibility
// class (or textually equal). ok is false when no conversion applies.
func unitFactor(from, to string) (factor float64, ok bool) {
	if strings.EqualFold(from, to) {
		return 1, true
	}
	cf, fok := findClass(from)
	ct, tok := findClass(to)
	if !fok || !tok || cf.canonical != ct.canonical {
		return 0, false
	}
	return cf.factors[strings.ToLower(from)] / cf.factors[strings.ToLower(to)], true
}

// ConvertibleUnit reports whether u and other name the same single base
// unit (possibly via a known compatibility-class conversion), which is
// the condition under which two Numerics may be compared with </> or
// combined with binary +/-.
func (u Unit) ConvertibleUnit(other Unit) bool {
	an, aok := u.single()
	bn, bok := other.single()
	if u.IsEmpty() && other.IsEmpty() {
		return true
	}
	if !aok || !bok {
		return u.String() == other.String()
	}
	return convertibleUnitNames(an, bn)
}

// ConversionFactor returns the multiplier applied to a value of unit u
// to express it in unit `other`, assuming ConvertibleUnit(u, other).
func (u Unit) ConversionFactor(other Unit) (float64, error) {
	if u.IsEmpty() && other.IsEmpty() {
		return 1, nil
	}
	an, aok := u.single()
	bn, bok := other.single()
	if !aok || !bok {
		if u.String() == other.String() {
			return 1, nil
		}
		return 0, fmt.Errorf("incompatible units %q and %q", u, other)
	}
	f, ok := unitFactor(an, bn)
	if !ok {
		return 0, fmt.Errorf("incompatible units %q and %q", u, other)
	}
	return f, nil
}

// ValidCSSUnit reports whether the unit product is a single recognized
// CSS unit (or dimensionless) — i.e. safe to emit outside calc().
// Compound units like "px*s" are only valid inside calc() residues.
func (u Unit) ValidCSSUnit() bool {
	if u.IsEmpty() {
		return true
	}
	_, ok := u.single()
	return ok
}
