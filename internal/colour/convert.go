// Package colour provides colour conversion, WCAG contrast scoring and
// accent scale generation.
package colour

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidColourFormat is returned when a string is not a 3 or 6 digit hex colour.
var ErrInvalidColourFormat = errors.New("invalid colour format")

// RGB represents a colour in 8-bit sRGB.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// NewRGB builds an RGB from integer channels.
// Channels outside 0-255 are clamped to the valid range.
func NewRGB(r, g, b int) RGB {
	return RGB{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

// Hex returns the colour as an uppercase hex string (e.g., "#6366F1").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// String returns the RGB colour in CSS "rgb(r, g, b)" form.
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// HSL represents a colour in the HSL cylinder.
// H is in degrees [0,360), S and L are percentages [0,100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// NewHSL builds a normalised HSL value.
// Hue wraps into [0,360); saturation and lightness are clamped to [0,100].
func NewHSL(h, s, l float64) HSL {
	return HSL{H: wrapHue(h), S: clamp(s, 0, 100), L: clamp(l, 0, 100)}
}

// String returns the HSL colour in CSS "hsl(h, s%, l%)" form with rounded components.
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)",
		int(math.Round(c.H)), int(math.Round(c.S)), int(math.Round(c.L)))
}

// ParseHex parses a hex colour string into an RGB value.
// Supports formats: #RRGGBB, RRGGBB, #RGB, RGB (case-insensitive).
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	// Expand shorthand format (RGB -> RRGGBB).
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("%w: %q (expected 3 or 6 hex digits)", ErrInvalidColourFormat, s)
	}

	// ParseUint accepts a "0x" prefix and underscores when base is 0 only,
	// so base 16 keeps this strict.
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColourFormat, s)
	}

	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// MustParseHex is like ParseHex but panics on error.
// Intended for package-level constants.
func MustParseHex(s string) RGB {
	rgb, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return rgb
}

// RGBToHex formats integer channels as "#RRGGBB", clamping each to 0-255.
func RGBToHex(r, g, b int) string {
	return NewRGB(r, g, b).Hex()
}

// RGBToHSL converts RGB to HSL.
// Achromatic colours report a hue of 0.
func RGBToHSL(rgb RGB) HSL {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l := (maxVal + minVal) / 2.0

	if delta == 0 {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	var s float64
	if l > 0.5 {
		s = delta / (2.0 - maxVal - minVal)
	} else {
		s = delta / (maxVal + minVal)
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	return HSL{H: wrapHue((h / 6) * 360), S: s * 100, L: l * 100}
}

// HSLToRGB converts HSL to RGB.
// The input is normalised with NewHSL first; channels are rounded to the
// nearest integer.
func HSLToRGB(c HSL) RGB {
	c = NewHSL(c.H, c.S, c.L)
	h := c.H / 360
	s := c.S / 100
	l := c.L / 100

	if s == 0 {
		v := toChannel(l)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: toChannel(hueToRGB(p, q, h+1.0/3)),
		G: toChannel(hueToRGB(p, q, h)),
		B: toChannel(hueToRGB(p, q, h-1.0/3)),
	}
}

// HexToHSL parses a hex colour and converts it to HSL.
func HexToHSL(s string) (HSL, error) {
	rgb, err := ParseHex(s)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(rgb), nil
}

// HSLToHex converts HSL to an uppercase hex string.
func HSLToHex(c HSL) string {
	return HSLToRGB(c).Hex()
}

// hueToRGB interpolates one channel; t is the normalised hue offset.
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
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// toChannel scales a [0,1] component to a rounded, clamped 8-bit channel.
func toChannel(v float64) uint8 {
	return clampChannel(int(math.Round(v * 255)))
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// wrapHue maps any angle into [0,360).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// math.Mod of a tiny negative value can land exactly on 360 after the add.
	if h >= 360 {
		h = 0
	}
	return h
}
