// Package json provides an output plugin for JSON design tokens.
package json

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastcraft/internal/colour"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output"
)

// Plugin implements the output.Plugin interface for JSON tokens.
type Plugin struct {
	withContrast bool
	outputDir    string
}

// New creates a new JSON output plugin.
func New() *Plugin {
	return &Plugin{}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "json"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Export the scale as a JSON token list"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.withContrast, "json.with-contrast", false, "Include contrast ratios and WCAG levels per token")
	cmd.Flags().StringVar(&p.outputDir, "json.output-dir", "", "Output directory (default: --output-dir)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	return p.outputDir
}

// Document is the exported JSON structure.
type Document struct {
	Name   string  `json:"name"`
	Tokens []Token `json:"tokens"`
}

// Token is one exported step.
type Token struct {
	Token    string     `json:"token"`
	Value    string     `json:"value"`
	Contrast []Contrast `json:"contrast,omitempty"`
}

// Contrast is a step checked against one text colour.
type Contrast struct {
	Text  string       `json:"text"`
	Ratio float64      `json:"ratio"`
	Level colour.Level `json:"level"`
}

// Generate creates <name>.json.
func (p *Plugin) Generate(themeData *colour.ThemeData) (map[string][]byte, error) {
	if themeData == nil {
		return nil, output.ErrNilTheme
	}

	doc := NewDocument(themeData, p.withContrast)
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tokens: %w", err)
	}

	return map[string][]byte{
		themeData.Name + ".json": content,
	}, nil
}

// NewDocument builds the exported document. Contrast checks are included when
// withContrast is set.
func NewDocument(themeData *colour.ThemeData, withContrast bool) Document {
	tokens := themeData.Tokens()
	doc := Document{
		Name:   themeData.Name,
		Tokens: make([]Token, len(tokens)),
	}

	for i, tok := range tokens {
		doc.Tokens[i] = Token{Token: tok.Name, Value: tok.Value}
		if !withContrast || i >= len(themeData.Report.Steps) {
			continue
		}
		for _, check := range themeData.Report.Steps[i].Checks {
			doc.Tokens[i].Contrast = append(doc.Tokens[i].Contrast, Contrast{
				Text:  check.Text,
				Ratio: math.Round(check.Ratio*100) / 100,
				Level: check.Badge.Level,
			})
		}
	}
	return doc
}
