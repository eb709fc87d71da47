package functions

import (
	"fmt"
	"math"

	"github.com/sssc-dev/sssc/expression"
)

// registerColor wires sass:color. Grounded on the teacher's Lighten/
// Darken/Saturate/Desaturate/Spin/Mix/Greyscale (colors.go), which
// worked against a hand-rolled RGB<->HSL Color duplicate; that type is
// gone here since expression.Color already owns those conversions
// (color.go) and exposes the same operations as methods.
func (r *Registry) registerColor() {
	r.addFn("color", "rgb", colorConstructor(false))
	r.addFn("color", "rgba", colorConstructor(true))

	r.addFn("color", "hsl", func(args *expression.ArgList) (expression.Value, error) {
		return hslConstructor(args, false)
	})
	r.addFn("color", "hsla", func(args *expression.ArgList) (expression.Value, error) {
		return hslConstructor(args, true)
	})

	channel := func(f func(*expression.Color) float64) handler {
		return func(args *expression.ArgList) (expression.Value, error) {
			c, err := requireColor(args, 0, "color")
			if err != nil {
				return nil, err
			}
			return num(f(c)), nil
		}
	}
	r.addFn("color", "red", channel((*expression.Color).Red))
	r.addFn("color", "green", channel((*expression.Color).Green))
	r.addFn("color", "blue", channel((*expression.Color).Blue))
	r.addFn("color", "hue", func(args *expression.ArgList) (expression.Value, error) {
		c, err := requireColor(args, 0, "color")
		if err != nil {
			return nil, err
		}
		return numUnit(c.Hue(), expression.SingleUnit("deg")), nil
	})
	r.addFn("color", "saturation", percentChannel((*expression.Color).Saturation))
	r.addFn("color", "lightness", percentChannel((*expression.Color).Lightness))
	r.addFn("color", "whiteness", percentChannel((*expression.Color).Whiteness))
	r.addFn("color", "blackness", percentChannel((*expression.Color).Blackness))
	r.addFn("color", "alpha", channel((*expression.Color).Alpha))
	r.addFn("color", "opacity", channel((*expression.Color).Alpha))
	r.addFn("color", "luminance", channel((*expression.Color).Luma))

	r.addFn("color", "lighten", deltaFn(func(c *expression.Color, amt float64) *expression.Color {
		return c.WithLightness(amt)
	}))
	r.addFn("color", "darken", deltaFn(func(c *expression.Color, amt float64) *expression.Color {
		return c.WithLightness(-amt)
	}))
	r.addFn("color", "saturate", deltaFn(func(c *expression.Color, amt float64) *expression.Color {
		return c.WithSaturation(amt)
	}))
	r.addFn("color", "desaturate", deltaFn(func(c *expression.Color, amt float64) *expression.Color {
		return c.WithSaturation(-amt)
	}))
	r.addFn("color", "adjust-hue", func(args *expression.ArgList) (expression.Value, error) {
		c, err := requireColor(args, 0, "color")
		if err != nil {
			return nil, err
		}
		deg, err := requireNumber(args, 1, "degrees")
		if err != nil {
			return nil, err
		}
		return expression.NewColorValue(c.WithHueShift(deg.Num.Float64())), nil
	})
	r.addFn("color", "spin", func(args *expression.ArgList) (expression.Value, error) {
		c, err := requireColor(args, 0, "color")
		if err != nil {
			return nil, err
		}
		deg, err := requireNumber(args, 1, "degrees")
		if err != nil {
			return nil, err
		}
		return expression.NewColorValue(c.WithHueShift(deg.Num.Float64())), nil
	})

	r.addFn("color", "fade", func(args *expression.ArgList) (expression.Value, error) {
		c, err := requireColor(args, 0, "color")
		if err != nil {
			return nil, err
		}
		n, err := requireNumber(args, 1, "amount")
		if err != nil {
			return nil, err
		}
		return expression.NewColorValue(c.WithAlpha(percentOrUnit01(n))), nil
	})
	r.addFn("color", "fade-in", deltaAlphaFn(1))
	r.addFn("color", "fade-out", deltaAlphaFn(-1))
	r.addFn("color", "opacify", deltaAlphaFn(1))
	r.addFn("color", "transparentize", deltaAlphaFn(-1))
	r.addFn("color", "change", colorChange)

	r.addFn("color", "mix", func(args *expression.ArgList) (expression.Value, error) {
		c1, err := requireColor(args, 0, "color1")
		if err != nil {
			return nil, err
		}
		c2, err := requireColor(args, 1, "color2")
		if err != nil {
			return nil, err
		}
		weight := 0.5
		if n, ok := arg(args, 2, "weight"); ok {
			if nn, ok := n.(expression.Numeric); ok {
				weight = percentOrUnit01(nn)
			}
		}
		return expression.NewColorValue(c1.Mix(c2, weight)), nil
	})

	r.addFn("color", "greyscale", func(args *expression.ArgList) (expression.Value, error) {
		c, err := requireColor(args, 0, "color")
		if err != nil {
			return nil, err
		}
		return expression.NewColorValue(c.Greyscale()), nil
	})
	r.addFn("color", "grayscale", func(args *expression.ArgList) (expression.Value, error) {
		c, err := requireColor(args, 0, "color")
		if err != nil {
			return nil, err
		}
		return expression.NewColorValue(c.Greyscale()), nil
	})

	r.addFn("color", "invert", func(args *expression.ArgList) (expression.Value, error) {
		c, err := requireColor(args, 0, "color")
		if err != nil {
			return nil, err
		}
		return expression.NewColorValue(expression.NewRgba(255-c.Red(), 255-c.Green(), 255-c.Blue(), c.Alpha())), nil
	})

	r.addFn("color", "complement", func(args *expression.ArgList) (expression.Value, error) {
		c, err := requireColor(args, 0, "color")
		if err != nil {
			return nil, err
		}
		return expression.NewColorValue(c.WithHueShift(180)), nil
	})

	r.addFn("color", "ie-hex-str", func(args *expression.ArgList) (expression.Value, error) {
		c, err := requireColor(args, 0, "color")
		if err != nil {
			return nil, err
		}
		a := uint8(math.Round(c.Alpha() * 255))
		return quotedStr(fmt.Sprintf("#%02X%02X%02X%02X", a, uint8(math.Round(c.Red())), uint8(math.Round(c.Green())), uint8(math.Round(c.Blue())))), nil
	})
}

func percentChannel(f func(*expression.Color) float64) handler {
	return func(args *expression.ArgList) (expression.Value, error) {
		c, err := requireColor(args, 0, "color")
		if err != nil {
			return nil, err
		}
		return numUnit(f(c)*100, expression.SingleUnit("%")), nil
	}
}

func deltaFn(apply func(*expression.Color, float64) *expression.Color) handler {
	return func(args *expression.ArgList) (expression.Value, error) {
		c, err := requireColor(args, 0, "color")
		if err != nil {
			return nil, err
		}
		n, err := requireNumber(args, 1, "amount")
		if err != nil {
			return nil, err
		}
		return expression.NewColorValue(apply(c, percentOrUnit01(n))), nil
	}
}

func deltaAlphaFn(sign float64) handler {
	return func(args *expression.ArgList) (expression.Value, error) {
		c, err := requireColor(args, 0, "color")
		if err != nil {
			return nil, err
		}
		n, err := requireNumber(args, 1, "amount")
		if err != nil {
			return nil, err
		}
		a := c.Alpha() + sign*percentOrUnit01(n)
		if a < 0 {
			a = 0
		}
		if a > 1 {
			a = 1
		}
		return expression.NewColorValue(c.WithAlpha(a)), nil
	}
}

// colorChange implements sass:color.change: set any of red/green/blue/
// hue/saturation/lightness/whiteness/blackness/alpha to an absolute
// value, keeping the rest, by rebuilding through whichever color space
// the first changed channel belongs to.
func colorChange(args *expression.ArgList) (expression.Value, error) {
	c, err := requireColor(args, 0, "color")
	if err != nil {
		return nil, err
	}
	red, green, blue := c.Red(), c.Green(), c.Blue()
	hue, sat, light := c.Hue(), c.Saturation(), c.Lightness()
	alpha := c.Alpha()
	useHSL := false

	readChannel := func(name string, cur *float64, scale float64) error {
		v, ok := args.Named[name]
		if !ok {
			return nil
		}
		n, ok := v.(expression.Numeric)
		if !ok {
			return fmt.Errorf("$%s: not a number", name)
		}
		if scale == 100 {
			*cur = percentOrUnit01(n) * 100
		} else {
			*cur = n.Num.Float64()
		}
		return nil
	}

	if err := readChannel("red", &red, 1); err != nil {
		return nil, err
	}
	if err := readChannel("green", &green, 1); err != nil {
		return nil, err
	}
	if err := readChannel("blue", &blue, 1); err != nil {
		return nil, err
	}
	if _, ok := args.Named["hue"]; ok {
		useHSL = true
		if err := readChannel("hue", &hue, 1); err != nil {
			return nil, err
		}
	}
	if _, ok := args.Named["saturation"]; ok {
		useHSL = true
		if err := readChannel("saturation", &sat, 100); err != nil {
			return nil, err
		}
	}
	if _, ok := args.Named["lightness"]; ok {
		useHSL = true
		if err := readChannel("lightness", &light, 100); err != nil {
			return nil, err
		}
	}
	if err := readChannel("alpha", &alpha, 1); err != nil {
		return nil, err
	}

	if useHSL {
		return expression.NewColorValue(expression.NewHsla(hue, sat/100, light/100, alpha)), nil
	}
	return expression.NewColorValue(expression.NewRgba(red, green, blue, alpha)), nil
}

func colorConstructor(withAlpha bool) handler {
	return func(args *expression.ArgList) (expression.Value, error) {
		// rgba($color, $alpha): overrides the alpha channel of an
		// existing color rather than building one from channels.
		if withAlpha {
			if v, ok := arg(args, 0, "color"); ok {
				if c, isColor := asColor(v); isColor {
					an, err := requireNumber(args, 1, "alpha")
					if err != nil {
						return nil, err
					}
					return expression.NewColorValue(c.WithAlpha(percentOrUnit01(an))), nil
				}
			}
		}
		r, err := requireNumber(args, 0, "red")
		if err != nil {
			return nil, err
		}
		g, err := requireNumber(args, 1, "green")
		if err != nil {
			return nil, err
		}
		b, err := requireNumber(args, 2, "blue")
		if err != nil {
			return nil, err
		}
		a := 1.0
		if withAlpha {
			an, err := requireNumber(args, 3, "alpha")
			if err != nil {
				return nil, err
			}
			a = percentOrUnit01(an)
		}
		return expression.NewColorValue(expression.NewRgba(r.Num.Float64(), g.Num.Float64(), b.Num.Float64(), a)), nil
	}
}

func hslConstructor(args *expression.ArgList, withAlpha bool) (expression.Value, error) {
	h, err := requireNumber(args, 0, "hue")
	if err != nil {
		return nil, err
	}
	s, err := requireNumber(args, 1, "saturation")
	if err != nil {
		return nil, err
	}
	l, err := requireNumber(args, 2, "lightness")
	if err != nil {
		return nil, err
	}
	a := 1.0
	if withAlpha {
		an, err := requireNumber(args, 3, "alpha")
		if err != nil {
			return nil, err
		}
		a = percentOrUnit01(an)
	}
	return expression.NewColorValue(expression.NewHsla(h.Num.Float64(), percentOrUnit01(s), percentOrUnit01(l), a)), nil
}
