package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/contrastcraft/internal/colour"
)

func strPtr(s string) *string { return &s }

func listPtr(values ...string) *[]string {
	copied := append([]string(nil), values...)
	return &copied
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Base != "#6366F1" || cfg.Mode != "light" || cfg.Prefix != "accent" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if diff := cmp.Diff([]string{"css", "json"}, cfg.Outputs); diff != "" {
		t.Errorf("default outputs (-want +got):\n%s", diff)
	}
}

func TestMergePrecedence(t *testing.T) {
	cfg := Default()
	fileLayer := Layer{Base: strPtr("#FF0000"), Prefix: strPtr("brand"), Outputs: listPtr("css")}
	envLayer := Layer{Base: strPtr("#00FF00"), Mode: strPtr("dark")}
	flagLayer := Layer{Base: strPtr("#0000FF")}

	cfg.Merge(fileLayer, envLayer, flagLayer)

	if cfg.Base != "#0000FF" {
		t.Errorf("Base = %s, want flag value", cfg.Base)
	}
	if cfg.Mode != "dark" {
		t.Errorf("Mode = %s, want env value", cfg.Mode)
	}
	if cfg.Prefix != "brand" {
		t.Errorf("Prefix = %s, want file value", cfg.Prefix)
	}
	if cfg.TextDark != colour.TextDark {
		t.Errorf("TextDark = %s, want default", cfg.TextDark)
	}
	if diff := cmp.Diff([]string{"css"}, cfg.Outputs); diff != "" {
		t.Errorf("Outputs (-want +got):\n%s", diff)
	}
}

func TestMergeCopiesLists(t *testing.T) {
	outputs := []string{"css"}
	cfg := Default()
	cfg.Merge(Layer{Outputs: &outputs})
	outputs[0] = "mutated"
	if cfg.Outputs[0] != "css" {
		t.Error("Merge should copy list values")
	}
}

func TestLoadFormats(t *testing.T) {
	want := Layer{
		Base:      strPtr("#0EA5E9"),
		Mode:      strPtr("dark"),
		Prefix:    strPtr("brand"),
		Outputs:   listPtr("css", "tailwind"),
		OutputDir: strPtr("dist"),
		ExternalPlugins: &[]ExternalPlugin{
			{Name: "figma", Path: "/opt/figma-export", Description: "Figma tokens", Args: map[string]any{"team": "web"}},
		},
		EnabledPlugins: listPtr("figma"),
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "contrastcraft.yaml",
			content: `base: "#0EA5E9"
mode: dark
token-prefix: brand
outputs: [css, tailwind]
output_dir: dist
plugins:
  enabled: [figma]
  external:
    - name: figma
      path: /opt/figma-export
      description: Figma tokens
      args:
        team: web
`,
		},
		{
			name: "toml",
			file: "contrastcraft.toml",
			content: `base_colour = "#0EA5E9"
theme = "dark"
prefix = "brand"
outputs = "css, tailwind"
output-dir = "dist"
enabled_plugins = ["figma"]

[[external_plugins]]
name = "figma"
path = "/opt/figma-export"
description = "Figma tokens"
args = { team = "web" }
`,
		},
		{
			name: "json",
			file: "contrastcraft.json",
			content: `{
  "Colour": "#0EA5E9",
  "mode": "dark",
  "prefix": "brand",
  "formats": ["css", "tailwind"],
  "out_dir": "dist",
  "plugins": {
    "enable": ["figma"],
    "external": [{"name": "figma", "path": "/opt/figma-export", "description": "Figma tokens", "args": {"team": "web"}}]
  }
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		target  error
	}{
		{name: "unsupported extension", file: "contrastcraft.ini", content: "base=#fff", target: ErrUnsupportedFormat},
		{name: "unknown key", file: "a.yaml", content: "bogus: 1\n", target: ErrUnknownKey},
		{name: "unknown plugins key", file: "b.yaml", content: "plugins:\n  bogus: 1\n", target: ErrUnknownKey},
		{name: "unknown external key", file: "c.json", content: `{"plugins": [{"name": "x", "when": "now"}]}`, target: ErrUnknownKey},
		{name: "unquoted yaml hex", file: "d.yaml", content: "base: #fff\n"},
		{name: "wrong type", file: "e.json", content: `{"base": 12}`},
		{name: "malformed", file: "f.toml", content: "base = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Load() error = %v, want %v", err, tt.target)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestLoadEmpty(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if diff := cmp.Diff(Layer{}, got); diff != "" {
		t.Errorf("Load(\"\") mismatch:\n%s", diff)
	}

	path := writeFile(t, t.TempDir(), "empty.yaml", "")
	if _, err := Load(path); err != nil {
		t.Errorf("Load(empty file) error = %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"CONTRASTCRAFT_BASE":             "#22C55E",
		"CONTRASTCRAFT_MODE":             "dark",
		"CONTRASTCRAFT_OUTPUTS":          "css, scss,,",
		"CONTRASTCRAFT_DISABLED_PLUGINS": "swatch",
		"CONTRASTCRAFT_PREFIX":           "   ",
	}
	layer := FromEnv(func(k string) string { return env[k] })

	want := Layer{
		Base:            strPtr("#22C55E"),
		Mode:            strPtr("dark"),
		Outputs:         listPtr("css", "scss"),
		DisabledPlugins: listPtr("swatch"),
	}
	if diff := cmp.Diff(want, layer); diff != "" {
		t.Errorf("FromEnv() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(Layer{}, FromEnv(nil)); diff != "" {
		t.Errorf("FromEnv(nil) mismatch:\n%s", diff)
	}
}

func TestFlagsOnlyChanged(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"--mode", "dark", "-o", "css,yaml"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg := Default()
	cfg.Merge(Layer{Base: strPtr("#FF0000"), Prefix: strPtr("brand")})
	cfg.ApplyFlags(flags)

	if cfg.Base != "#FF0000" || cfg.Prefix != "brand" {
		t.Errorf("unchanged flags overrode lower layers: %+v", cfg)
	}
	if cfg.Mode != "dark" {
		t.Errorf("Mode = %s, want dark", cfg.Mode)
	}
	if diff := cmp.Diff([]string{"css", "yaml"}, cfg.Outputs); diff != "" {
		t.Errorf("Outputs (-want +got):\n%s", diff)
	}

	var nilFlags *Flags
	if diff := cmp.Diff(Layer{}, nilFlags.Layer()); diff != "" {
		t.Errorf("nil Flags layer:\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "shorthand base", mutate: func(c *Config) { c.Base = "#abc" }},
		{name: "bad base", mutate: func(c *Config) { c.Base = "indigo" }, wantErr: true},
		{name: "bad text", mutate: func(c *Config) { c.TextDark = "#12" }, wantErr: true},
		{name: "bad mode", mutate: func(c *Config) { c.Mode = "sepia" }, wantErr: true},
		{name: "bad prefix", mutate: func(c *Config) { c.Prefix = "9lives" }, wantErr: true},
		{name: "uppercase prefix", mutate: func(c *Config) { c.Prefix = "Brand" }, wantErr: true},
		{name: "dashed prefix", mutate: func(c *Config) { c.Prefix = "brand-accent" }},
		{name: "bad level", mutate: func(c *Config) { c.MinLevel = "A" }, wantErr: true},
		{name: "good level", mutate: func(c *Config) { c.MinLevel = "AA-Large" }},
		{name: "empty output dir", mutate: func(c *Config) { c.OutputDir = " " }, wantErr: true},
		{name: "external without path", mutate: func(c *Config) {
			c.ExternalPlugins = []ExternalPlugin{{Name: "x"}}
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBaseWrapsColourError(t *testing.T) {
	cfg := Default()
	cfg.Base = "nope"
	if err := cfg.Validate(); !errors.Is(err, colour.ErrInvalidColourFormat) {
		t.Errorf("Validate() error = %v, want ErrInvalidColourFormat", err)
	}
}

func TestThemeOptions(t *testing.T) {
	cfg := Default()
	cfg.Mode = "dark"
	cfg.Prefix = "brand"
	cfg.TextDark = "#000"

	opts := cfg.ThemeOptions()
	if opts.Theme != colour.ThemeDark || opts.Prefix != "brand" {
		t.Errorf("ThemeOptions() = %+v", opts)
	}
	if opts.TextDark.Hex() != "#000000" || opts.TextLight.Hex() != "#FFFFFF" {
		t.Errorf("text colours = %s/%s", opts.TextLight.Hex(), opts.TextDark.Hex())
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	userDir := t.TempDir()

	if got := Find(dir, userDir); got != "" {
		t.Errorf("Find() = %q, want empty", got)
	}

	if err := os.MkdirAll(filepath.Join(userDir, "contrastcraft"), 0o755); err != nil {
		t.Fatal(err)
	}
	userPath := writeFile(t, filepath.Join(userDir, "contrastcraft"), "config.toml", "")
	if got := Find(dir, userDir); got != userPath {
		t.Errorf("Find() = %q, want %q", got, userPath)
	}

	tomlPath := writeFile(t, dir, "contrastcraft.toml", "")
	yamlPath := writeFile(t, dir, "contrastcraft.yaml", "")
	if got := Find(dir, userDir); got != yamlPath {
		t.Errorf("Find() = %q, want %q (yaml before toml %q)", got, yamlPath, tomlPath)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cc.yaml", "base: \"#FF0000\"\nprefix: brand\nmode: dark\n")
	env := map[string]string{"CONTRASTCRAFT_PREFIX": "env"}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"--mode", "light"}); err != nil {
		t.Fatal(err)
	}

	cfg, used, err := Resolve(path, func(k string) string { return env[k] }, flags)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if used != path {
		t.Errorf("config path = %q, want %q", used, path)
	}
	if cfg.Base != "#FF0000" || cfg.Prefix != "env" || cfg.Mode != "light" {
		t.Errorf("Resolve() = %+v", cfg)
	}

	env[EnvConfigPath] = path
	if _, used, err = Resolve("", func(k string) string { return env[k] }, nil); err != nil || used != path {
		t.Errorf("Resolve() via env = %q, %v", used, err)
	}

	env["CONTRASTCRAFT_BASE"] = "not-a-colour"
	if _, _, err := Resolve(path, func(k string) string { return env[k] }, nil); err == nil {
		t.Error("Resolve() should reject an invalid base")
	}
}
