// Package common provides shared utilities for output plugins.
package common

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jmylchreest/contrastcraft/internal/colour"
)

// TemplateFuncs returns standard template functions for all output plugins.
// Colour functions take the hex value of a step or token.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Step access.
		"step":  stepFunc,
		"token": tokenFunc,

		// Format conversion.
		"hex":       hexFunc,
		"hexNoHash": hexNoHashFunc,
		"hexLower":  hexLowerFunc,
		"rgb":       rgbFunc,
		"rgbSpaces": rgbSpacesFunc,
		"hsl":       hslFunc,
		"hslSpaces": hslSpacesFunc,

		// Contrast.
		"ratio":    colour.FormatRatio,
		"contrast": contrastFunc,
		"level":    levelFunc,

		// Iteration helpers.
		"isLast": isLastFunc,

		// String manipulation (custom wrappers for pipe-friendly argument order).
		"trimPrefix": trimPrefixFunc,
		"trimSuffix": trimSuffixFunc,
		"replace":    replaceFunc,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
	}
}

// stepFunc returns a step by 1-based index.
func stepFunc(td *colour.ThemeData, index int) (colour.Step, error) {
	if td == nil {
		return colour.Step{}, fmt.Errorf("no theme data")
	}
	return td.Scale.Get(index)
}

// tokenFunc returns the CSS custom property name for a step.
func tokenFunc(td *colour.ThemeData, index int) string {
	return td.TokenName(index)
}

// parse converts a hex string for the format helpers. Template errors
// surface as execution errors.
func parse(hex string) (colour.RGB, error) {
	return colour.ParseHex(hex)
}

func hexFunc(hex string) (string, error) {
	rgb, err := parse(hex)
	if err != nil {
		return "", err
	}
	return rgb.Hex(), nil
}

func hexNoHashFunc(hex string) (string, error) {
	s, err := hexFunc(hex)
	return strings.TrimPrefix(s, "#"), err
}

func hexLowerFunc(hex string) (string, error) {
	s, err := hexFunc(hex)
	return strings.ToLower(s), err
}

func rgbFunc(hex string) (string, error) {
	rgb, err := parse(hex)
	if err != nil {
		return "", err
	}
	return rgb.String(), nil
}

// rgbSpacesFunc returns "r g b", for CSS channel variables.
func rgbSpacesFunc(hex string) (string, error) {
	rgb, err := parse(hex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d %d", rgb.R, rgb.G, rgb.B), nil
}

func hslFunc(hex string) (string, error) {
	rgb, err := parse(hex)
	if err != nil {
		return "", err
	}
	return colour.RGBToHSL(rgb).String(), nil
}

// hslSpacesFunc returns "h s% l%" with one decimal (e.g., "238.7 83.5% 66.7%").
func hslSpacesFunc(hex string) (string, error) {
	rgb, err := parse(hex)
	if err != nil {
		return "", err
	}
	hsl := colour.RGBToHSL(rgb)
	return fmt.Sprintf("%.1f %.1f%% %.1f%%", hsl.H, hsl.S, hsl.L), nil
}

// contrastFunc returns the formatted contrast ratio between two hex colours.
func contrastFunc(a, b string) (string, error) {
	ratio, err := colour.HexContrast(a, b)
	if err != nil {
		return "", err
	}
	return colour.FormatRatio(ratio), nil
}

// levelFunc returns the WCAG level name for two hex colours.
func levelFunc(a, b string) (string, error) {
	ratio, err := colour.HexContrast(a, b)
	if err != nil {
		return "", err
	}
	return colour.Classify(ratio).Level.String(), nil
}

// isLastFunc reports whether i is the final index of a collection of length n.
func isLastFunc(i, n int) bool {
	return i == n-1
}

// trimPrefixFunc removes a prefix from a string (pipe-friendly argument order).
func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

// trimSuffixFunc removes a suffix from a string (pipe-friendly argument order).
func trimSuffixFunc(suffix, s string) string {
	return strings.TrimSuffix(s, suffix)
}

// replaceFunc replaces all occurrences of old with new (pipe-friendly argument order).
func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}
