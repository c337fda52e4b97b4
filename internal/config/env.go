package config

import "strings"

// EnvPrefix prefixes every environment variable contrastcraft reads.
const EnvPrefix = "CONTRASTCRAFT_"

// EnvConfigPath names an explicit config file.
const EnvConfigPath = EnvPrefix + "CONFIG"

// FromEnv builds a layer from CONTRASTCRAFT_* variables. Empty values are ignored.
func FromEnv(getenv func(string) string) Layer {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var layer Layer

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(EnvPrefix + key))
		if raw == "" {
			return
		}
		*target = &raw
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(EnvPrefix + key))
		if raw == "" {
			return
		}
		list := SplitList(raw)
		*target = &list
	}

	setString(&layer.Base, "BASE")
	setString(&layer.Mode, "MODE")
	setString(&layer.Name, "NAME")
	setString(&layer.Prefix, "PREFIX")
	setString(&layer.TextLight, "TEXT_LIGHT")
	setString(&layer.TextDark, "TEXT_DARK")
	setString(&layer.MinLevel, "MIN_LEVEL")
	setString(&layer.OutputDir, "OUTPUT_DIR")
	setList(&layer.Outputs, "OUTPUTS")
	setList(&layer.EnabledPlugins, "ENABLED_PLUGINS")
	setList(&layer.DisabledPlugins, "DISABLED_PLUGINS")

	return layer
}

// ApplyEnv merges CONTRASTCRAFT_* variables into c.
func (c *Config) ApplyEnv(getenv func(string) string) {
	c.Merge(FromEnv(getenv))
}
