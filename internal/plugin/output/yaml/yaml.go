// Package yaml provides an output plugin for YAML design tokens.
package yaml

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/contrastcraft/internal/colour"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output"
)

// Plugin implements the output.Plugin interface for YAML tokens.
type Plugin struct {
	withContrast bool
	outputDir    string
}

// New creates a new YAML output plugin.
func New() *Plugin {
	return &Plugin{}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "yaml"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Export the scale as YAML design tokens"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.withContrast, "yaml.with-contrast", false, "Include WCAG levels per token")
	cmd.Flags().StringVar(&p.outputDir, "yaml.output-dir", "", "Output directory (default: --output-dir)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	return p.outputDir
}

// Generate creates <name>.tokens.yaml.
//
//	accent:
//	  1:
//	    value: '#FFFFFF'
//	    type: color
func (p *Plugin) Generate(themeData *colour.ThemeData) (map[string][]byte, error) {
	if themeData == nil {
		return nil, output.ErrNilTheme
	}

	steps := &yaml.Node{Kind: yaml.MappingNode}
	for i, tok := range themeData.Tokens() {
		entry := &yaml.Node{Kind: yaml.MappingNode}
		appendPair(entry, "value", tok.Value)
		appendPair(entry, "type", "color")

		if p.withContrast && i < len(themeData.Report.Steps) {
			checks := &yaml.Node{Kind: yaml.MappingNode}
			for _, check := range themeData.Report.Steps[i].Checks {
				appendPair(checks, check.Text, check.Badge.Level.String())
			}
			entry.Content = append(entry.Content, scalar("contrast"), checks)
		}

		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(tok.Step)}
		steps.Content = append(steps.Content, key, entry)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content, scalar(themeData.Prefix), steps)
	doc := &yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: fmt.Sprintf("%s: accent scale for %s", themeData.Name, themeData.Scale.Base),
		Content:     []*yaml.Node{root},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode tokens: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode tokens: %w", err)
	}

	return map[string][]byte{
		themeData.Name + ".tokens.yaml": buf.Bytes(),
	}, nil
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func appendPair(m *yaml.Node, key, value string) {
	m.Content = append(m.Content, scalar(key), scalar(value))
}
