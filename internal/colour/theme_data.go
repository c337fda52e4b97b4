package colour

import (
	"fmt"
	"strings"
	"time"
)

// ThemeType represents whether the scale is shown on a light or dark page.
type ThemeType int

const (
	// ThemeLight is dark text on a light background.
	ThemeLight ThemeType = iota
	// ThemeDark is light text on a dark background.
	ThemeDark
)

// String returns the string representation of a ThemeType.
func (t ThemeType) String() string {
	switch t {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	default:
		return "unknown"
	}
}

// ParseThemeType parses "light" or "dark".
func ParseThemeType(s string) (ThemeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	default:
		return ThemeLight, fmt.Errorf("invalid mode: %s (must be 'light' or 'dark')", s)
	}
}

// DefaultPrefix is the token prefix used when none is configured.
const DefaultPrefix = "accent"

// Token is a named design token for one step.
type Token struct {
	Name  string `json:"token"`
	Step  int    `json:"-"`
	Value string `json:"value"`
}

// ThemeOptions configure NewThemeData. Start from DefaultThemeOptions; the
// zero value checks against black.
type ThemeOptions struct {
	// Name identifies the export; empty generates "contrastcraft-<unix millis>".
	Name string
	// Prefix is the token prefix; empty uses DefaultPrefix.
	Prefix string
	// Theme selects the page background for previews and light/dark ordering.
	Theme ThemeType
	// TextLight and TextDark are the text colours checked against each step.
	TextLight RGB
	TextDark  RGB
}

// DefaultThemeOptions returns options using the standard text colours.
func DefaultThemeOptions() ThemeOptions {
	return ThemeOptions{
		Prefix:    DefaultPrefix,
		Theme:     ThemeLight,
		TextLight: textLightRGB,
		TextDark:  textDarkRGB,
	}
}

// ThemeData is the standard data structure passed to all output plugins.
type ThemeData struct {
	Name   string
	Prefix string
	Theme  ThemeType
	Scale  Scale
	Report Report

	// TextLight and TextDark are the hex text colours in Report check order.
	TextLight string
	TextDark  string
}

// NewThemeData assesses the scale and bundles it with export metadata.
func NewThemeData(scale Scale, opts ThemeOptions) *ThemeData {
	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("contrastcraft-%d", time.Now().UnixMilli())
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &ThemeData{
		Name:      name,
		Prefix:    prefix,
		Theme:     opts.Theme,
		Scale:     scale,
		Report:    Assess(scale, opts.TextLight, opts.TextDark),
		TextLight: opts.TextLight.Hex(),
		TextDark:  opts.TextDark.Hex(),
	}
}

// TokenName returns the CSS custom property name for a step (e.g., "--accent-3").
func (td *ThemeData) TokenName(step int) string {
	return fmt.Sprintf("--%s-%d", td.Prefix, step)
}

// Tokens returns the ordered step/hex pairs.
func (td *ThemeData) Tokens() []Token {
	tokens := make([]Token, len(td.Scale.Steps))
	for i, step := range td.Scale.Steps {
		tokens[i] = Token{
			Name:  td.TokenName(step.Index),
			Step:  step.Index,
			Value: step.Hex,
		}
	}
	return tokens
}

// Foreground returns the text colour for the page in this theme.
func (td *ThemeData) Foreground() string {
	if td.Theme == ThemeDark {
		return td.TextLight
	}
	return td.TextDark
}

// Background returns the page colour for this theme.
func (td *ThemeData) Background() string {
	if td.Theme == ThemeDark {
		return td.TextDark
	}
	return td.TextLight
}
