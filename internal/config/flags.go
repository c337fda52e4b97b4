package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds command-line values bound by BindFlags.
type Flags struct {
	fs *pflag.FlagSet

	base      string
	mode      string
	name      string
	prefix    string
	textLight string
	textDark  string
	minLevel  string
	outputs   []string
	outputDir string
	enable    []string
	disable   []string
}

// Flag names.
const (
	FlagBase      = "base"
	FlagMode      = "mode"
	FlagName      = "name"
	FlagPrefix    = "prefix"
	FlagTextLight = "text-light"
	FlagTextDark  = "text-dark"
	FlagMinLevel  = "min-level"
	FlagOutputs   = "outputs"
	FlagOutputDir = "output-dir"
	FlagEnable    = "enable-plugins"
	FlagDisable   = "disable-plugins"
)

// BindFlags registers the config flags on fs. Defaults shown in help come
// from Default, but only flags the user changed override other layers.
func BindFlags(fs *pflag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}

	fs.StringVar(&f.base, FlagBase, d.Base, "Base colour (hex)")
	fs.StringVar(&f.mode, FlagMode, d.Mode, "Page mode (light, dark)")
	fs.StringVar(&f.name, FlagName, "", "Export name (default contrastcraft-<timestamp>)")
	fs.StringVar(&f.prefix, FlagPrefix, d.Prefix, "Token prefix")
	fs.StringVar(&f.textLight, FlagTextLight, d.TextLight, "Light text colour checked against every step")
	fs.StringVar(&f.textDark, FlagTextDark, d.TextDark, "Dark text colour checked against every step")
	fs.StringVar(&f.minLevel, FlagMinLevel, "", "Flag steps below this WCAG level (AAA, AA, AA-Large)")
	fs.StringSliceVarP(&f.outputs, FlagOutputs, "o", d.Outputs, "Output plugins to run (comma-separated, or 'all')")
	fs.StringVar(&f.outputDir, FlagOutputDir, d.OutputDir, "Directory for exported files")
	fs.StringSliceVar(&f.enable, FlagEnable, nil, "Plugins to enable (comma-separated)")
	fs.StringSliceVar(&f.disable, FlagDisable, nil, "Plugins to disable (comma-separated, or 'all')")

	return f
}

// Layer returns the flags the user set explicitly.
func (f *Flags) Layer() Layer {
	var layer Layer
	if f == nil || f.fs == nil {
		return layer
	}

	str := func(target **string, name string, value string) {
		if f.fs.Changed(name) {
			v := strings.TrimSpace(value)
			*target = &v
		}
	}
	list := func(target **[]string, name string, value []string) {
		if f.fs.Changed(name) {
			v := SplitList(strings.Join(value, ","))
			*target = &v
		}
	}

	str(&layer.Base, FlagBase, f.base)
	str(&layer.Mode, FlagMode, f.mode)
	str(&layer.Name, FlagName, f.name)
	str(&layer.Prefix, FlagPrefix, f.prefix)
	str(&layer.TextLight, FlagTextLight, f.textLight)
	str(&layer.TextDark, FlagTextDark, f.textDark)
	str(&layer.MinLevel, FlagMinLevel, f.minLevel)
	str(&layer.OutputDir, FlagOutputDir, f.outputDir)
	list(&layer.Outputs, FlagOutputs, f.outputs)
	list(&layer.EnabledPlugins, FlagEnable, f.enable)
	list(&layer.DisabledPlugins, FlagDisable, f.disable)

	return layer
}

// ApplyFlags merges explicitly set flags into c.
func (c *Config) ApplyFlags(f *Flags) {
	c.Merge(f.Layer())
}

// Resolve builds the effective configuration: defaults, then the config file,
// then the environment, then flags. The config file is explicitPath if set,
// else $CONTRASTCRAFT_CONFIG, else the result of Discover. The returned path
// is the file that was loaded, or empty.
func Resolve(explicitPath string, getenv func(string) string, flags *Flags) (Config, string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()

	path := strings.TrimSpace(explicitPath)
	if path == "" {
		path = strings.TrimSpace(getenv(EnvConfigPath))
	}
	if path == "" {
		found, err := Discover()
		if err != nil {
			return cfg, "", err
		}
		path = found
	}

	if path != "" {
		fileLayer, err := Load(path)
		if err != nil {
			return cfg, path, fmt.Errorf("failed to load config: %w", err)
		}
		cfg.Merge(fileLayer)
	}

	cfg.ApplyEnv(getenv)
	cfg.ApplyFlags(flags)

	if err := cfg.Validate(); err != nil {
		return cfg, path, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, path, nil
}
