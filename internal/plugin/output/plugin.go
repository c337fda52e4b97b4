// Package output provides the interface and base types for output plugins.
package output

import (
	"context"
	"errors"
	"io/fs"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastcraft/internal/colour"
)

// ErrNilTheme is returned by Generate when no theme data is supplied.
var ErrNilTheme = errors.New("theme data cannot be nil")

// Plugin represents an output plugin that exports an assessed accent scale.
type Plugin interface {
	// Name returns the plugin's name (e.g., "css", "tailwind").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// Generate creates output file(s) from the given theme data.
	// Returns map of filename -> content to support plugins that generate multiple files.
	Generate(themeData *colour.ThemeData) (map[string][]byte, error)

	// RegisterFlags registers plugin-specific flags with cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the plugin configuration is valid.
	Validate() error

	// DefaultOutputDir returns the default output directory for this plugin.
	// An empty string means the configured output directory.
	DefaultOutputDir() string
}

// PreExecuteHook is implemented by plugins that can decide to skip themselves.
type PreExecuteHook interface {
	PreExecute(ctx context.Context) (skip bool, reason string, err error)
}

// PostExecuteHook is implemented by plugins that act on the files they wrote.
type PostExecuteHook interface {
	PostExecute(ctx context.Context, writtenFiles []string) error
}

// VerbosePlugin is implemented by plugins with extra diagnostic output.
type VerbosePlugin interface {
	SetVerbose(verbose bool)
}

// LoggerAware is implemented by plugins that log through the host logger.
type LoggerAware interface {
	SetLogger(logger hclog.Logger)
}

// TemplateProvider is implemented by plugins that render embedded templates
// which users may override.
type TemplateProvider interface {
	GetEmbeddedFS() fs.FS
}

// Registry holds all registered output plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry, replacing any plugin with the same name.
func (r *Registry) Register(plugin Plugin) {
	r.plugins[plugin.Name()] = plugin
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// List returns all registered plugin names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered plugins (including disabled ones).
func (r *Registry) All() map[string]Plugin {
	// Return a copy to prevent external modification
	plugins := make(map[string]Plugin, len(r.plugins))
	for name, plugin := range r.plugins {
		plugins[name] = plugin
	}
	return plugins
}
