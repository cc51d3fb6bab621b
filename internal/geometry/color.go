package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NeutralCell is the background of a heatmap cell with no value.
const NeutralCell = "#f8fafc"

// HSL is a color in hue/saturation/lightness form. Hue is in degrees,
// saturation and lightness in percent.
type HSL struct {
	H, S, L float64
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", Num(c.H), Num(c.S), Num(c.L))
}

// Hex converts the color to #rrggbb.
func (c HSL) Hex() string {
	return c.RGB().Hex()
}

// RGB converts the color to 8-bit RGB.
func (c HSL) RGB() RGB {
	h := math.Mod(c.H, 360) / 360
	s := clamp01(c.S / 100)
	l := clamp01(c.L / 100)
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return RGB{v, v, v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return RGB{
		R: uint8(math.Round(hueToRGB(p, q, h+1.0/3) * 255)),
		G: uint8(math.Round(hueToRGB(p, q, h) * 255)),
		B: uint8(math.Round(hueToRGB(p, q, h-1.0/3) * 255)),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// HeatIntensity returns the boosted intensity used to color a cohort cell.
func HeatIntensity(v float64) float64 {
	return math.Min(clamp01(v)*1.2, 1)
}

// HeatHSL returns the ramp color of a cohort retention fraction.
//
// The hue falls into one of three bands by value and saturation and
// lightness follow the intensity, so higher values are never lighter.
func HeatHSL(v float64) HSL {
	v = clamp01(v)
	i := HeatIntensity(v)

	hue := 180.0
	switch {
	case v >= 0.7:
		hue = 142
	case v >= 0.4:
		hue = 160
	}

	return HSL{H: hue, S: 70 + i*30, L: 85 - i*40}
}

// HeatColor returns the CSS color of a cohort cell. Zero cells use the
// neutral background instead of the ramp.
func HeatColor(v float64) string {
	if clamp01(v) == 0 {
		return NeutralCell
	}
	return HeatHSL(v).String()
}

// HeatTextColor returns a text color readable on HeatColor(v).
func HeatTextColor(v float64) string {
	switch {
	case v > 0.6:
		return "#ffffff"
	case v > 0.3:
		return "#1f2937"
	}
	return "#6b7280"
}

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lightness returns the HSL lightness of the color in [0, 1].
func (c RGB) Lightness() float64 {
	hi := math.Max(float64(c.R), math.Max(float64(c.G), float64(c.B)))
	lo := math.Min(float64(c.R), math.Min(float64(c.G), float64(c.B)))
	return (hi + lo) / 2 / 255
}

// ParseColor parses the color forms produced by this package: #rgb,
// #rrggbb, hsl(h, s%, l%) and the keywords white and black.
func ParseColor(s string) (RGB, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "white":
		return RGB{255, 255, 255}, true
	case s == "black":
		return RGB{0, 0, 0}, true
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "hsl(") && strings.HasSuffix(s, ")"):
		return parseHSL(s[4 : len(s)-1])
	}
	return RGB{}, false
}

func parseHex(h string) (RGB, bool) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}

func parseHSL(body string) (RGB, bool) {
	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return RGB{}, false
	}
	var vals [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(p), "%"), 64)
		if err != nil {
			return RGB{}, false
		}
		vals[i] = f
	}
	return HSL{vals[0], vals[1], vals[2]}.RGB(), true
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
