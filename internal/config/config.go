// Package config resolves contrastcraft settings from defaults, config files,
// environment variables and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmylchreest/contrastcraft/internal/colour"
)

// Config holds fully resolved settings.
type Config struct {
	Base      string
	Mode      string
	Name      string
	Prefix    string
	TextLight string
	TextDark  string
	MinLevel  string

	Outputs   []string
	OutputDir string

	EnabledPlugins  []string
	DisabledPlugins []string
	ExternalPlugins []ExternalPlugin
}

// ExternalPlugin describes an out-of-process exporter.
type ExternalPlugin struct {
	Name        string         `yaml:"name" toml:"name" json:"name"`
	Path        string         `yaml:"path" toml:"path" json:"path"`
	Description string         `yaml:"description" toml:"description" json:"description"`
	Args        map[string]any `yaml:"args" toml:"args" json:"args"`
}

// Layer is a partial configuration. Nil fields leave the value underneath
// untouched when merged.
type Layer struct {
	Base      *string
	Mode      *string
	Name      *string
	Prefix    *string
	TextLight *string
	TextDark  *string
	MinLevel  *string

	Outputs   *[]string
	OutputDir *string

	EnabledPlugins  *[]string
	DisabledPlugins *[]string
	ExternalPlugins *[]ExternalPlugin
}

// Default values.
const (
	DefaultBase      = "#6366F1"
	DefaultMode      = "light"
	DefaultOutputDir = "."
)

// DefaultOutputs are the exporters run when none are configured.
var DefaultOutputs = []string{"css", "json"}

var prefixPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Base:      DefaultBase,
		Mode:      DefaultMode,
		Prefix:    colour.DefaultPrefix,
		TextLight: colour.TextLight,
		TextDark:  colour.TextDark,
		Outputs:   append([]string(nil), DefaultOutputs...),
		OutputDir: DefaultOutputDir,
	}
}

// Merge applies layers in order; later layers win.
func (c *Config) Merge(layers ...Layer) {
	for _, l := range layers {
		setString(&c.Base, l.Base)
		setString(&c.Mode, l.Mode)
		setString(&c.Name, l.Name)
		setString(&c.Prefix, l.Prefix)
		setString(&c.TextLight, l.TextLight)
		setString(&c.TextDark, l.TextDark)
		setString(&c.MinLevel, l.MinLevel)
		setString(&c.OutputDir, l.OutputDir)
		setList(&c.Outputs, l.Outputs)
		setList(&c.EnabledPlugins, l.EnabledPlugins)
		setList(&c.DisabledPlugins, l.DisabledPlugins)
		if l.ExternalPlugins != nil {
			c.ExternalPlugins = append([]ExternalPlugin(nil), (*l.ExternalPlugins)...)
		}
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setList(dst *[]string, src *[]string) {
	if src != nil {
		*dst = append([]string(nil), (*src)...)
	}
}

// Validate checks that every value can be used to build a scale and export it.
// All problems are reported together.
func (c Config) Validate() error {
	var errs []error

	if _, err := colour.ParseHex(c.Base); err != nil {
		errs = append(errs, fmt.Errorf("base: %w", err))
	}
	if _, err := colour.ParseHex(c.TextLight); err != nil {
		errs = append(errs, fmt.Errorf("text_light: %w", err))
	}
	if _, err := colour.ParseHex(c.TextDark); err != nil {
		errs = append(errs, fmt.Errorf("text_dark: %w", err))
	}
	if _, err := colour.ParseThemeType(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if !prefixPattern.MatchString(c.Prefix) {
		errs = append(errs, fmt.Errorf("invalid prefix: %q (must match %s)", c.Prefix, prefixPattern))
	}
	if c.MinLevel != "" {
		if _, err := colour.ParseLevel(c.MinLevel); err != nil {
			errs = append(errs, err)
		}
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		errs = append(errs, errors.New("output_dir cannot be empty"))
	}
	for _, name := range c.Outputs {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, errors.New("outputs cannot contain empty names"))
			break
		}
	}
	for i, p := range c.ExternalPlugins {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("external plugin %d: name is required", i))
		}
		if p.Path == "" {
			errs = append(errs, fmt.Errorf("external plugin %q: path is required", p.Name))
		}
	}

	return errors.Join(errs...)
}

// ThemeOptions converts the configuration into options for colour.NewThemeData.
// Call Validate first; unparseable colours fall back to the defaults.
func (c Config) ThemeOptions() colour.ThemeOptions {
	opts := colour.DefaultThemeOptions()
	opts.Name = c.Name
	if c.Prefix != "" {
		opts.Prefix = c.Prefix
	}
	if theme, err := colour.ParseThemeType(c.Mode); err == nil {
		opts.Theme = theme
	}
	if rgb, err := colour.ParseHex(c.TextLight); err == nil {
		opts.TextLight = rgb
	}
	if rgb, err := colour.ParseHex(c.TextDark); err == nil {
		opts.TextDark = rgb
	}
	return opts
}

// SplitList splits a comma separated list, trimming blanks.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
