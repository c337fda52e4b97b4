package main

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/contrastcraft/pkg/plugin"
)

// Exporter implements plugin.OutputPlugin.
type Exporter struct{}

var _ plugin.OutputPlugin = (*Exporter)(nil)

type resources struct {
	XMLName xml.Name   `xml:"resources"`
	Colours []resource `xml:"color"`
}

type resource struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// Generate writes values/<name>_colors.xml. The "file" plugin arg overrides
// the file name.
func (e *Exporter) Generate(_ context.Context, palette plugin.PaletteData) (map[string][]byte, error) {
	if len(palette.Steps) == 0 {
		return nil, errors.New("palette has no steps")
	}

	prefix := resourceName(palette.Prefix)
	if prefix == "" {
		prefix = "accent"
	}

	doc := resources{}
	for _, step := range palette.Steps {
		doc.Colours = append(doc.Colours, resource{
			Name:  fmt.Sprintf("%s_%d", prefix, step.Index),
			Value: step.Hex,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode resources: %w", err)
	}
	buf.WriteString("\n")

	file := resourceName(palette.Name) + "_colors.xml"
	if v, ok := palette.PluginArgs["file"].(string); ok && v != "" {
		file = v
	}
	return map[string][]byte{"values/" + file: buf.Bytes()}, nil
}

// PreExecute never skips.
func (e *Exporter) PreExecute(_ context.Context) (bool, string, error) {
	return false, "", nil
}

// PostExecute does nothing.
func (e *Exporter) PostExecute(_ context.Context, _ []string) error {
	return nil
}

// GetMetadata returns the plugin info reported by --plugin-info.
func (e *Exporter) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        Name,
		Version:     Version,
		Description: "Android colors.xml resources",
	}
}

// resourceName turns s into a valid Android resource name.
func resourceName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
