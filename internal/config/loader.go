package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned for config files that are not YAML, TOML or JSON.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrUnknownKey is returned when a config file contains a key contrastcraft does not know.
	ErrUnknownKey = errors.New("unknown config key")
)

var keyMap = map[string]string{
	"base":             "base",
	"base_color":       "base",
	"base_colour":      "base",
	"color":            "base",
	"colour":           "base",
	"mode":             "mode",
	"theme":            "mode",
	"name":             "name",
	"prefix":           "prefix",
	"token_prefix":     "prefix",
	"text_light":       "text_light",
	"light_text":       "text_light",
	"text_dark":        "text_dark",
	"dark_text":        "text_dark",
	"min_level":        "min_level",
	"level":            "min_level",
	"outputs":          "outputs",
	"output":           "outputs",
	"formats":          "outputs",
	"output_dir":       "output_dir",
	"out_dir":          "output_dir",
	"enabled_plugins":  "enabled_plugins",
	"disabled_plugins": "disabled_plugins",
	"external_plugins": "external_plugins",
}

// Keys accepted inside a "plugins" section.
var pluginsKeyMap = map[string]string{
	"enabled":  "enabled_plugins",
	"enable":   "enabled_plugins",
	"disabled": "disabled_plugins",
	"disable":  "disabled_plugins",
	"external": "external_plugins",
}

// Load reads a config file. The format is chosen by extension.
// An empty path returns an empty layer.
func Load(path string) (Layer, error) {
	var layer Layer
	path = strings.TrimSpace(path)
	if path == "" {
		return layer, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return layer, fmt.Errorf("failed to read config: %w", err)
	}

	raw, err := decode(filepath.Ext(path), data)
	if err != nil {
		return layer, fmt.Errorf("parse %s: %w", path, err)
	}
	if raw == nil {
		return layer, nil
	}

	layer, err = decodeLayer(raw)
	if err != nil {
		return layer, fmt.Errorf("%s: %w", path, err)
	}
	return layer, nil
}

func decode(ext string, data []byte) (map[string]any, error) {
	var raw map[string]any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return raw, nil
}

func decodeLayer(raw map[string]any) (Layer, error) {
	var layer Layer
	section := make(map[string]any)

	// Sorted so the first unknown key reported is stable.
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		norm := normalizeKey(key)
		if norm == "plugins" {
			if err := fillPlugins(section, raw[key]); err != nil {
				return layer, err
			}
			continue
		}
		canonical, ok := keyMap[norm]
		if !ok {
			return layer, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		section[canonical] = raw[key]
	}

	return layer, assign(section, &layer)
}

func fillPlugins(dst map[string]any, block any) error {
	switch v := block.(type) {
	case []any:
		// A bare list under "plugins" is the external plugin list.
		dst["external_plugins"] = v
		return nil
	default:
		sub, err := toStringKeyMap(block)
		if err != nil {
			return fmt.Errorf("plugins: %w", err)
		}
		for key, value := range sub {
			canonical, ok := pluginsKeyMap[normalizeKey(key)]
			if !ok {
				return fmt.Errorf("%w: plugins.%s", ErrUnknownKey, key)
			}
			dst[canonical] = value
		}
		return nil
	}
}

func assign(section map[string]any, dst *Layer) error {
	for key, value := range section {
		switch key {
		case "base":
			if err := assignString(&dst.Base, value, key); err != nil {
				return err
			}
		case "mode":
			if err := assignString(&dst.Mode, value, key); err != nil {
				return err
			}
		case "name":
			if err := assignString(&dst.Name, value, key); err != nil {
				return err
			}
		case "prefix":
			if err := assignString(&dst.Prefix, value, key); err != nil {
				return err
			}
		case "text_light":
			if err := assignString(&dst.TextLight, value, key); err != nil {
				return err
			}
		case "text_dark":
			if err := assignString(&dst.TextDark, value, key); err != nil {
				return err
			}
		case "min_level":
			if err := assignString(&dst.MinLevel, value, key); err != nil {
				return err
			}
		case "output_dir":
			if err := assignString(&dst.OutputDir, value, key); err != nil {
				return err
			}
		case "outputs":
			if err := assignList(&dst.Outputs, value, key); err != nil {
				return err
			}
		case "enabled_plugins":
			if err := assignList(&dst.EnabledPlugins, value, key); err != nil {
				return err
			}
		case "disabled_plugins":
			if err := assignList(&dst.DisabledPlugins, value, key); err != nil {
				return err
			}
		case "external_plugins":
			plugins, err := expectExternalPlugins(value, key)
			if err != nil {
				return err
			}
			dst.ExternalPlugins = &plugins
		default:
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
	}
	return nil
}

func assignString(dst **string, value any, field string) error {
	s, err := expectString(value, field)
	if err != nil {
		return err
	}
	trimmed := strings.TrimSpace(s)
	*dst = &trimmed
	return nil
}

func assignList(dst **[]string, value any, field string) error {
	list, err := expectStringList(value, field)
	if err != nil {
		return err
	}
	*dst = &list
	return nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		return SplitList(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out, nil
	case []string:
		return SplitList(strings.Join(v, ",")), nil
	default:
		return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func expectExternalPlugins(value any, field string) ([]ExternalPlugin, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected list for %s, got %T", field, value)
	}

	plugins := make([]ExternalPlugin, 0, len(items))
	for i, item := range items {
		m, err := toStringKeyMap(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		var p ExternalPlugin
		for key, v := range m {
			switch normalizeKey(key) {
			case "name":
				if p.Name, err = expectString(v, "name"); err != nil {
					return nil, err
				}
			case "path":
				if p.Path, err = expectString(v, "path"); err != nil {
					return nil, err
				}
			case "description":
				if p.Description, err = expectString(v, "description"); err != nil {
					return nil, err
				}
			case "args":
				if p.Args, err = toStringKeyMap(v); err != nil {
					return nil, fmt.Errorf("%s[%d].args: %w", field, i, err)
				}
			default:
				return nil, fmt.Errorf("%w: %s[%d].%s", ErrUnknownKey, field, i, key)
			}
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	return strings.ReplaceAll(norm, "-", "_")
}
