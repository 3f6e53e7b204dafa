// Package csscolor parses the CSS-style colour strings carried by rendered
// nodes and derives the perceptual brightness used for contrast decisions.
package csscolor

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnparsable is returned when a colour string cannot be understood.
var ErrUnparsable = errors.New("csscolor: unparsable colour")

// RGBA is an 8-bit colour with a straight alpha in [0, 1].
type RGBA struct {
	R, G, B uint8
	A       float64
}

// Transparent is the fully transparent colour.
var Transparent = RGBA{}

var named = map[string]RGBA{
	"black":  {0, 0, 0, 1},
	"white":  {255, 255, 255, 1},
	"red":    {255, 0, 0, 1},
	"green":  {0, 128, 0, 1},
	"blue":   {0, 0, 255, 1},
	"gray":   {128, 128, 128, 1},
	"grey":   {128, 128, 128, 1},
	"orange": {255, 165, 0, 1},
	"silver": {192, 192, 192, 1},
	"navy":   {0, 0, 128, 1},
}

// Parse understands "transparent", a handful of named colours, #rgb,
// #rrggbb, #rrggbbaa, rgb(r, g, b) and rgba(r, g, b, a). Channel values may
// be given as numbers or percentages.
func Parse(s string) (RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "" || v == "transparent" || v == "none":
		return Transparent, nil
	case strings.HasPrefix(v, "#"):
		return parseHex(v)
	case strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba("):
		return parseFunc(v)
	}
	if c, ok := named[v]; ok {
		return c, nil
	}
	return RGBA{}, fmt.Errorf("%w: %q", ErrUnparsable, s)
}

// MustParse is Parse for package-level palette values.
func MustParse(s string) RGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(v string) (RGBA, error) {
	var alpha = 1.0
	switch len(v) {
	case 4, 7:
	case 5:
		a, err := strconv.ParseUint(v[4:]+v[4:], 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q", ErrUnparsable, v)
		}
		alpha = float64(a) / 255
		v = v[:4]
	case 9:
		a, err := strconv.ParseUint(v[7:], 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q", ErrUnparsable, v)
		}
		alpha = float64(a) / 255
		v = v[:7]
	default:
		return RGBA{}, fmt.Errorf("%w: %q", ErrUnparsable, v)
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q", ErrUnparsable, v)
	}
	r, g, b := c.Clamped().RGB255()
	return RGBA{R: r, G: g, B: b, A: alpha}, nil
}

func parseFunc(v string) (RGBA, error) {
	open := strings.IndexByte(v, '(')
	if !strings.HasSuffix(v, ")") || open < 0 {
		return RGBA{}, fmt.Errorf("%w: %q", ErrUnparsable, v)
	}
	body := v[open+1 : len(v)-1]
	body = strings.NewReplacer(",", " ", "/", " ").Replace(body)
	fields := strings.Fields(body)
	if len(fields) != 3 && len(fields) != 4 {
		return RGBA{}, fmt.Errorf("%w: %q", ErrUnparsable, v)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := channel(fields[i])
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q", ErrUnparsable, v)
		}
		ch[i] = n
	}

	alpha := 1.0
	if len(fields) == 4 {
		a, err := alphaValue(fields[3])
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q", ErrUnparsable, v)
		}
		alpha = a
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

func channel(f string) (uint8, error) {
	pct := strings.HasSuffix(f, "%")
	n, err := number(strings.TrimSuffix(f, "%"))
	if err != nil {
		return 0, err
	}
	if pct {
		n = n * 255 / 100
	}
	return uint8(clamp(n, 0, 255) + 0.5), nil
}

func alphaValue(f string) (float64, error) {
	pct := strings.HasSuffix(f, "%")
	n, err := number(strings.TrimSuffix(f, "%"))
	if err != nil {
		return 0, err
	}
	if pct {
		n /= 100
	}
	return clamp(n, 0, 1), nil
}

// number parses a finite float. ParseFloat alone accepts NaN and Inf.
func number(f string) (float64, error) {
	n, err := strconv.ParseFloat(f, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %q", ErrUnparsable, f)
	}
	return n, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Transparent reports whether the colour has zero alpha.
func (c RGBA) Transparent() bool {
	return c.A == 0
}

// Brightness is the weighted sum 0.299R + 0.587G + 0.114B in [0, 255].
func (c RGBA) Brightness() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Colorful converts to a go-colorful colour, ignoring alpha.
func (c RGBA) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex returns the #rrggbb form, ignoring alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns the rgba() form.
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'g', 3, 64))
}

// Over composites c onto an opaque backdrop using c's alpha.
func (c RGBA) Over(backdrop RGBA) RGBA {
	if c.A >= 1 {
		return RGBA{R: c.R, G: c.G, B: c.B, A: 1}
	}
	mixed := backdrop.Colorful().BlendRgb(c.Colorful(), c.A).Clamped()
	r, g, b := mixed.RGB255()
	return RGBA{R: r, G: g, B: b, A: 1}
}
