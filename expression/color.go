package expression

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sssc-dev/sssc/internal/strings"
)

// colorSpace records which of the three representations a Color is
// currently carrying, and — for Hsla/Hwba reached by conversion — which
// form formatting should prefer, so that "hsla(...)" round-trips as
// "hsla(...)" rather than silently becoming rgba (§4.3).
type colorSpace int

const (
	spaceRgba colorSpace = iota
	spaceHsla
	spaceHwba
)

// Color is a tagged union over the three CSS color representations.
// Exactly one of Rgba/Hsla/Hwba fields is authoritative at a time,
// recorded by space; the others are lazily derived on demand via
// ToRgba/ToHsla/ToHwba.
type Color struct {
	space colorSpace

	// Rgba: channels 0-255, alpha 0-1.
	R, G, B float64
	// Hsla: hue in [0,360), sat/lum in [0,1].
	H, S, L float64
	// Hwba: hue in [0,360), whiteness/blackness in [0,1] (shares H above).
	W, Bk float64

	A float64 // alpha, shared across all three representations, 0-1

	// sourceHex, when non-empty, is the original hex literal (e.g. "#333")
	// so Compressed formatting can choose between shorthand forms without
	// losing the author's literal form in Expanded output.
	sourceHex string
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func normHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// NewRgba constructs a color in RGBA space. r/g/b are 0-255, a is 0-1.
func NewRgba(r, g, b, a float64) *Color {
	return &Color{space: spaceRgba, R: clampChannel(r), G: clampChannel(g), B: clampChannel(b), A: clamp01(a)}
}

func clampChannel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// NewHsla constructs a color in HSLA space. h is degrees (reduced mod
// 360), s/l/a are 0-1.
func NewHsla(h, s, l, a float64) *Color {
	return &Color{space: spaceHsla, H: normHue(h), S: clamp01(s), L: clamp01(l), A: clamp01(a)}
}

// NewHwba constructs a color in HWBA space.
func NewHwba(h, w, b, a float64) *Color {
	return &Color{space: spaceHwba, H: normHue(h), W: clamp01(w), Bk: clamp01(b), A: clamp01(a)}
}

// ParseColor parses a color literal: #hex, rgb()/rgba(), hsl()/hsla(),
// hwb(), or a CSS named color.
func ParseColor(s string) (*Color, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBColor(s)
	}
	if strings.HasPrefix(s, "hsl(") || strings.HasPrefix(s, "hsla(") {
		return parseHSLColor(s)
	}
	if strings.HasPrefix(s, "hwb(") {
		return parseHWBColor(s)
	}
	if hex, ok := namedColorHex[s]; ok {
		return parseHexColor(hex)
	}
	return nil, fmt.Errorf("invalid color: %s", s)
}

func parseHexColor(s string) (*Color, error) {
	orig := s
	s = strings.TrimPrefix(s, "#")

	expand := func(r byte) (byte, byte) { return r, r }
	var r, g, b uint8
	var a float64 = 1.0

	hexByte := func(hi, lo byte) (uint8, error) {
		v, err := strconv.ParseUint(string(hi)+string(lo), 16, 8)
		return uint8(v), err
	}

	switch len(s) {
	case 3, 4:
		r0, r1 := expand(s[0])
		g0, g1 := expand(s[1])
		b0, b1 := expand(s[2])
		var err error
		if r, err = hexByte(r0, r1); err != nil {
			return nil, fmt.Errorf("invalid hex color: %s", orig)
		}
		if g, err = hexByte(g0, g1); err != nil {
			return nil, fmt.Errorf("invalid hex color: %s", orig)
		}
		if b, err = hexByte(b0, b1); err != nil {
			return nil, fmt.Errorf("invalid hex color: %s", orig)
		}
		if len(s) == 4 {
			a0, a1 := expand(s[3])
			av, err := hexByte(a0, a1)
			if err != nil {
				return nil, fmt.Errorf("invalid hex color: %s", orig)
			}
			a = float64(av) / 255.0
		}
	case 6, 8:
		var err error
		var rv, gv, bv uint64
		if rv, err = strconv.ParseUint(s[0:2], 16, 8); err != nil {
			return nil, fmt.Errorf("invalid hex color: %s", orig)
		}
		if gv, err = strconv.ParseUint(s[2:4], 16, 8); err != nil {
			return nil, fmt.Errorf("invalid hex color: %s", orig)
		}
		if bv, err = strconv.ParseUint(s[4:6], 16, 8); err != nil {
			return nil, fmt.Errorf("invalid hex color: %s", orig)
		}
		r, g, b = uint8(rv), uint8(gv), uint8(bv)
		if len(s) == 8 {
			av, err := strconv.ParseUint(s[6:8], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid hex color: %s", orig)
			}
			a = float64(av) / 255.0
		}
	default:
		return nil, fmt.Errorf("invalid hex color: %s", orig)
	}

	c := NewRgba(float64(r), float64(g), float64(b), a)
	c.sourceHex = orig
	return c, nil
}

func parseRGBColor(s string) (*Color, error) {
	isAlpha := strings.HasPrefix(s, "rgba(")
	prefix := "rgb("
	if isAlpha {
		prefix = "rgba("
	}
	content := strings.TrimSuffix(strings.TrimPrefix(s, prefix), ")")
	parts := splitArgs(content)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if isAlpha && len(parts) != 4 {
		return nil, fmt.Errorf("rgba expects 4 arguments, got %d", len(parts))
	}
	if !isAlpha && len(parts) != 3 {
		return nil, fmt.Errorf("rgb expects 3 arguments, got %d", len(parts))
	}

	chan3 := func(p string) (float64, error) {
		p = strings.TrimSpace(p)
		if strings.HasSuffix(p, "%") {
			v, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
			return v / 100.0 * 255.0, err
		}
		return strconv.ParseFloat(p, 64)
	}

	r, err := chan3(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid red value: %s", parts[0])
	}
	g, err := chan3(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid green value: %s", parts[1])
	}
	b, err := chan3(parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid blue value: %s", parts[2])
	}
	a := 1.0
	if isAlpha {
		a, err = parseAlpha(parts[3])
		if err != nil {
			return nil, err
		}
	}
	return NewRgba(r, g, b, a), nil
}

func parseAlpha(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return v / 100.0, err
	}
	return strconv.ParseFloat(s, 64)
}

func parseHSLColor(s string) (*Color, error) {
	isAlpha := strings.HasPrefix(s, "hsla(")
	prefix := "hsl("
	if isAlpha {
		prefix = "hsla("
	}
	content := strings.TrimSuffix(strings.TrimPrefix(s, prefix), ")")
	parts := splitArgs(content)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if isAlpha && len(parts) != 4 {
		return nil, fmt.Errorf("hsla expects 4 arguments, got %d", len(parts))
	}
	if !isAlpha && len(parts) != 3 {
		return nil, fmt.Errorf("hsl expects 3 arguments, got %d", len(parts))
	}

	h, err := strconv.ParseFloat(strings.TrimSuffix(parts[0], "deg"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid hue value: %s", parts[0])
	}
	s1, err := strconv.ParseFloat(strings.TrimSuffix(parts[1], "%"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid saturation value: %s", parts[1])
	}
	l, err := strconv.ParseFloat(strings.TrimSuffix(parts[2], "%"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lightness value: %s", parts[2])
	}
	a := 1.0
	if isAlpha {
		a, err = parseAlpha(parts[3])
		if err != nil {
			return nil, err
		}
	}
	return NewHsla(h, s1/100.0, l/100.0, a), nil
}

func parseHWBColor(s string) (*Color, error) {
	content := strings.TrimSuffix(strings.TrimPrefix(s, "hwb("), ")")
	content = strings.ReplaceAll(content, ",", " ")
	content = strings.ReplaceAll(content, "/", " ")
	parts := strings.Fields(content)
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid hwb color: %s", s)
	}
	a := 1.0
	if len(parts) >= 4 {
		var err error
		a, err = parseAlpha(parts[3])
		if err != nil {
			a = 1.0
		}
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(parts[0], "deg"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid hue value: %s", parts[0])
	}
	w, err := strconv.ParseFloat(strings.TrimSuffix(parts[1], "%"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid whiteness value: %s", parts[1])
	}
	bk, err := strconv.ParseFloat(strings.TrimSuffix(parts[2], "%"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid blackness value: %s", parts[2])
	}
	return NewHwba(h, w/100.0, bk/100.0, a), nil
}

// ToRgba returns the color's RGBA representation, converting via HSL
// when necessary. Returns the receiver itself when already in RGBA
// space, matching §4.3's "borrowed reference when already in that
// representation" rule.
func (c *Color) ToRgba() *Color {
	switch c.space {
	case spaceRgba:
		return c
	case spaceHsla:
		r, g, b := hslToRGB(c.H, c.S*100, c.L*100)
		return NewRgba(float64(r), float64(g), float64(b), c.A)
	case spaceHwba:
		h, s, l := hwbToHSL(c.H, c.W, c.Bk)
		r, g, b := hslToRGB(h, s*100, l*100)
		return NewRgba(float64(r), float64(g), float64(b), c.A)
	}
	return c
}

// ToHsla returns the HSLA representation.
func (c *Color) ToHsla() *Color {
	switch c.space {
	case spaceHsla:
		return c
	case spaceRgba:
		h, s, l := rgbToHSL(uint8(c.R+0.5), uint8(c.G+0.5), uint8(c.B+0.5))
		return NewHsla(h, s/100.0, l/100.0, c.A)
	case spaceHwba:
		h, s, l := hwbToHSL(c.H, c.W, c.Bk)
		return NewHsla(h, s, l, c.A)
	}
	return c
}

// ToHwba returns the HWBA representation.
func (c *Color) ToHwba() *Color {
	if c.space == spaceHwba {
		return c
	}
	hsl := c.ToHsla()
	w, bk := hslToHWB(hsl.S, hsl.L)
	return NewHwba(hsl.H, w, bk, hsl.A)
}

// Equal reports equality after conversion to a shared representation
// (byte-equal RGBA channels and alpha within float tolerance).
func (c *Color) Equal(other *Color) bool {
	a, b := c.ToRgba(), other.ToRgba()
	return math.Round(a.R) == math.Round(b.R) &&
		math.Round(a.G) == math.Round(b.G) &&
		math.Round(a.B) == math.Round(b.B) &&
		math.Abs(a.A-b.A) < 1e-9
}

// String formats the color, preferring the space it was constructed or
// converted into (so hsla(...) inputs round-trip as hsla(...)) — except
// that an opaque color exactly matching a CSS named color always emits
// the name, regardless of source space, since "red" is shorter and more
// canonical than "hsl(0, 100%, 50%)" for every preferred-space branch.
func (c *Color) String() string {
	if c.A >= 1.0 {
		rgba := c.ToRgba()
		hex := fmt.Sprintf("#%02x%02x%02x", uint8(rgba.R+0.5), uint8(rgba.G+0.5), uint8(rgba.B+0.5))
		if name, ok := hexToNamed[hex]; ok {
			return name
		}
	}

	switch c.space {
	case spaceHsla:
		if c.A < 1.0 {
			return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", trimG(c.H), trimG(c.S*100), trimG(c.L*100), trimG(c.A))
		}
		return fmt.Sprintf("hsl(%s, %s%%, %s%%)", trimG(c.H), trimG(c.S*100), trimG(c.L*100))
	case spaceHwba:
		if c.A < 1.0 {
			return fmt.Sprintf("hwb(%s %s%% %s%% / %s)", trimG(c.H), trimG(c.W*100), trimG(c.Bk*100), trimG(c.A))
		}
		return fmt.Sprintf("hwb(%s %s%% %s%%)", trimG(c.H), trimG(c.W*100), trimG(c.Bk*100))
	}

	r, g, b := uint8(c.R+0.5), uint8(c.G+0.5), uint8(c.B+0.5)
	if c.A < 1.0 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, trimG(c.A))
	}
	if c.sourceHex != "" {
		return c.sourceHex
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// StringCompressed prefers the shortest equivalent representation:
// named colors, 3-digit hex shorthand, or lowercase hex, per §4.1.
func (c *Color) StringCompressed() string {
	if c.A < 1.0 {
		return c.String()
	}
	rgba := c.ToRgba()
	r, g, b := uint8(rgba.R+0.5), uint8(rgba.G+0.5), uint8(rgba.B+0.5)
	hex := fmt.Sprintf("#%02x%02x%02x", r, g, b)
	best := hex
	if name, ok := hexToNamed[hex]; ok && len(name) <= len(best) {
		best = name
	}
	if r>>4 == r&0xf && g>>4 == g&0xf && b>>4 == b&0xf {
		short := fmt.Sprintf("#%x%x%x", r&0xf, g&0xf, b&0xf)
		if len(short) < len(best) {
			best = short
		}
	}
	return best
}

func trimG(f float64) string {
	return NumberFromFloat(f).Format(4)
}

// --- HSL/HWB math, grounded on the teacher's rgbToHSL/hslToRGB ---

func rgbToHSL(r, g, b uint8) (float64, float64, float64) {
	rf, gf, bf := float64(r)/255.0, float64(g)/255.0, float64(b)/255.0
	mx := math.Max(rf, math.Max(gf, bf))
	mn := math.Min(rf, math.Min(gf, bf))
	l := (mx + mn) / 2.0

	if mx == mn {
		return 0, 0, l * 100
	}

	var h, s float64
	d := mx - mn
	if l > 0.5 {
		s = d / (2.0 - mx - mn)
	} else {
		s = d / (mx + mn)
	}

	switch mx {
	case rf:
		h = math.Mod((gf-bf)/d, 6.0)
	case gf:
		h = (bf-rf)/d + 2.0
	case bf:
		h = (rf-gf)/d + 4.0
	}
	h *= 60.0
	if h < 0 {
		h += 360
	}
	return h, s * 100, l * 100
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360.0)
	if h < 0 {
		h += 360
	}
	s = s / 100.0
	l = l / 100.0

	var c float64
	if l < 0.5 {
		c = 2.0 * l * s
	} else {
		c = (2.0 - 2.0*l) * s
	}

	hp := h / 60.0
	x := c * (1.0 - math.Abs(math.Mod(hp, 2.0)-1.0))

	var r, g, b float64
	switch {
	case hp < 1.0:
		r, g, b = c, x, 0
	case hp < 2.0:
		r, g, b = x, c, 0
	case hp < 3.0:
		r, g, b = 0, c, x
	case hp < 4.0:
		r, g, b = 0, x, c
	case hp < 5.0:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	m := l - c/2.0
	r, g, b = (r+m)*255, (g+m)*255, (b+m)*255
	return uint8(r + 0.5), uint8(g + 0.5), uint8(b + 0.5)
}

// hwbToHSL converts HWB (h in degrees, w/b in 0-1) to HSL (0-1 s/l).
func hwbToHSL(h, w, b float64) (float64, float64, float64) {
	if w+b >= 1 {
		gray := w / (w + b)
		return h, 0, gray
	}
	l := (1 - b + w) / 2
	var s float64
	if l > 0 && l < 1 {
		s = (1 - b - l) / math.Min(l, 1-l)
	}
	return h, s, l
}

// hslToHWB converts HSL (0-1) to whiteness/blackness (0-1).
func hslToHWB(s, l float64) (w, b float64) {
	v := l + s*math.Min(l, 1-l)
	var sv float64
	if v > 0 {
		sv = 2 * (1 - l/v)
	}
	w = (1 - sv) * v
	b = 1 - v
	return clamp01(w), clamp01(b)
}

// Named channel accessors used by built-ins (hue/saturation/lightness/...).

func (c *Color) Hue() float64        { return c.ToHsla().H }
func (c *Color) Saturation() float64 { return c.ToHsla().S }
func (c *Color) Lightness() float64  { return c.ToHsla().L }
func (c *Color) Whiteness() float64  { return c.ToHwba().W }
func (c *Color) Blackness() float64  { return c.ToHwba().Bk }
func (c *Color) Red() float64        { return c.ToRgba().R }
func (c *Color) Green() float64      { return c.ToRgba().G }
func (c *Color) Blue() float64       { return c.ToRgba().B }
func (c *Color) Alpha() float64      { return c.A }

// Luma uses the WCAG relative-luminance weighted channel sum, exposed by
// the sass:color `luminance` builtin.
func (c *Color) Luma() float64 {
	rgba := c.ToRgba()
	lin := func(ch float64) float64 {
		v := ch / 255.0
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(rgba.R) + 0.7152*lin(rgba.G) + 0.0722*lin(rgba.B)
}

// With* return new Colors (colors are immutable value objects).

func (c *Color) WithAlpha(a float64) *Color {
	cp := *c
	cp.A = clamp01(a)
	return &cp
}

func (c *Color) WithHueShift(degrees float64) *Color {
	hsl := c.ToHsla()
	return NewHsla(hsl.H+degrees, hsl.S, hsl.L, hsl.A)
}

func (c *Color) WithLightness(delta float64) *Color {
	hsl := c.ToHsla()
	return NewHsla(hsl.H, hsl.S, clamp01(hsl.L+delta), hsl.A)
}

func (c *Color) WithSaturation(delta float64) *Color {
	hsl := c.ToHsla()
	return NewHsla(hsl.H, clamp01(hsl.S+delta), hsl.L, hsl.A)
}

// Mix linearly interpolates two colors in RGBA space by weight in [0,1]
// (weight 1 = all c, 0 = all other), matching the sass/less `mix()`
// builtin contract.
func (c *Color) Mix(other *Color, weight float64) *Color {
	a, b := c.ToRgba(), other.ToRgba()
	w := weight
	return NewRgba(
		a.R*w+b.R*(1-w),
		a.G*w+b.G*(1-w),
		a.B*w+b.B*(1-w),
		a.A*w+b.A*(1-w),
	)
}

// Greyscale desaturates fully while preserving lightness.
func (c *Color) Greyscale() *Color {
	hsl := c.ToHsla()
	return NewHsla(hsl.H, 0, hsl.L, hsl.A)
}
