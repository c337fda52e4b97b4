package colour

import (
	"fmt"
	"math"
	"strings"
)

// StepCount is the number of steps in an accent scale.
const StepCount = 12

// Step is one entry of an accent scale.
// H, S and L are rounded for display; Hex is derived from the unrounded values.
type Step struct {
	Index int    `json:"step"`
	Hex   string `json:"hex"`
	RGB   RGB    `json:"rgb"`
	H     int    `json:"h"`
	S     int    `json:"s"`
	L     int    `json:"l"`
}

// HSL returns the step's display HSL.
func (s Step) HSL() HSL {
	return HSL{H: float64(s.H), S: float64(s.S), L: float64(s.L)}
}

// Scale is the 12-step accent scale derived from a single base colour.
// Steps run from lightest (1) to darkest and most saturated (12).
type Scale struct {
	Base       string  `json:"base"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Steps      []Step  `json:"steps"`
}

// Generate builds the accent scale for a hex base colour.
// Returns an error wrapping ErrInvalidColourFormat for malformed input.
func Generate(base string) (Scale, error) {
	rgb, err := ParseHex(base)
	if err != nil {
		return Scale{}, err
	}
	return GenerateFromRGB(rgb), nil
}

// GenerateFromRGB builds the accent scale for an RGB base colour.
//
// For step n the lightness is (110 - 7n)%, clamped to [0,100], so step 1 is
// always white. Saturation is the base saturation scaled by 0.8 + (n/12)*0.4,
// clamped to [0,100]. Hue is held at the base hue.
func GenerateFromRGB(base RGB) Scale {
	hsl := RGBToHSL(base)
	h, s := hsl.H, hsl.S

	steps := make([]Step, 0, StepCount)
	for n := 1; n <= StepCount; n++ {
		lightness := stepLightness(n)
		saturation := stepSaturation(s, n)

		rgb := HSLToRGB(HSL{H: h, S: saturation, L: lightness})
		steps = append(steps, Step{
			Index: n,
			Hex:   rgb.Hex(),
			RGB:   rgb,
			H:     int(math.Round(h)),
			S:     int(math.Round(saturation)),
			L:     int(math.Round(lightness)),
		})
	}

	return Scale{
		Base:       base.Hex(),
		Hue:        h,
		Saturation: s,
		Steps:      steps,
	}
}

// stepLightness returns the lightness percentage for step n.
func stepLightness(n int) float64 {
	return clamp(float64(110-n*7)/100, 0, 1) * 100
}

// stepSaturation returns the saturation percentage for step n given the base
// saturation percentage.
func stepSaturation(base float64, n int) float64 {
	factor := 0.8 + (float64(n)/StepCount)*0.4
	return clamp((base/100)*factor, 0, 1) * 100
}

// Len returns the number of steps in the scale.
func (s Scale) Len() int {
	return len(s.Steps)
}

// Get returns the step with the given 1-based index.
// Returns an error if the index is out of bounds.
func (s Scale) Get(index int) (Step, error) {
	if index < 1 || index > len(s.Steps) {
		return Step{}, fmt.Errorf("step out of bounds: %d (scale has %d steps)", index, len(s.Steps))
	}
	return s.Steps[index-1], nil
}

// Hexes returns the step colours in order.
func (s Scale) Hexes() []string {
	hexes := make([]string, len(s.Steps))
	for i, step := range s.Steps {
		hexes[i] = step.Hex
	}
	return hexes
}

// All returns an iterator over all steps in order.
func (s Scale) All() func(func(int, Step) bool) {
	return func(yield func(int, Step) bool) {
		for _, step := range s.Steps {
			if !yield(step.Index, step) {
				return
			}
		}
	}
}

// String returns a human-readable representation of the scale.
func (s Scale) String() string {
	if len(s.Steps) == 0 {
		return "Empty scale"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Scale for %s (%d steps):\n", s.Base, len(s.Steps))
	for _, step := range s.Steps {
		fmt.Fprintf(&b, "  %2d: %s  %d / %d%% / %d%%\n", step.Index, step.Hex, step.H, step.S, step.L)
	}
	return b.String()
}
