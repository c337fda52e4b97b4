// Package plugin provides the public API for contrastcraft exporter plugins.
// External plugins should import this package instead of internal packages.
package plugin

import (
	"encoding/gob"
)

func init() {
	// Plugin args decoded from JSON carry these dynamic types through netRPC.
	gob.Register(map[string]any{})
	gob.Register([]any{})
}

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Type            string `json:"type"` // always "output"
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"` // "json-stdio" or "go-plugin"
}

// PaletteData is the accent scale sent to output plugins.
type PaletteData struct {
	Name       string         `json:"name"`
	Prefix     string         `json:"prefix"`
	ThemeType  string         `json:"theme_type"`
	Base       string         `json:"base"`
	Hue        float64        `json:"hue"`
	Saturation float64        `json:"saturation"`
	TextLight  string         `json:"text_light"`
	TextDark   string         `json:"text_dark"`
	Steps      []StepData     `json:"steps"`
	PluginArgs map[string]any `json:"plugin_args,omitempty"`
	DryRun     bool           `json:"dry_run"`
}

// StepData is one step of the scale with its contrast checks.
type StepData struct {
	Index     int            `json:"step"`
	Token     string         `json:"token"`
	Hex       string         `json:"hex"`
	RGB       RGBColour      `json:"rgb"`
	HSL       HSLColour      `json:"hsl"`
	Luminance float64        `json:"luminance"`
	Contrast  []ContrastData `json:"contrast"`
}

// RGBColour represents an RGB color.
type RGBColour struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColour holds display HSL values (degrees, percent, percent).
type HSLColour struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// ContrastData is the contrast of a step against one text colour.
type ContrastData struct {
	Text  string  `json:"text"`
	Ratio float64 `json:"ratio"`
	Level string  `json:"level"`
	Pass  bool    `json:"pass"`
}

// Step returns the step with the given index (1-based) and whether it exists.
func (p PaletteData) Step(index int) (StepData, bool) {
	for _, s := range p.Steps {
		if s.Index == index {
			return s, true
		}
	}
	return StepData{}, false
}

// FileResponse is the stdout document a json-stdio plugin may write to return
// generated files. Keys are file names relative to the output directory.
type FileResponse struct {
	Files map[string]string `json:"files"`
}
