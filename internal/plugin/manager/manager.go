// Package manager provides output plugin management with enable/disable configuration.
package manager

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/contrastcraft/internal/plugin/output"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output/css"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output/json"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output/scss"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output/swatch"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output/tailwind"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output/yaml"
	"github.com/jmylchreest/contrastcraft/internal/plugin/protocol"
	"github.com/jmylchreest/contrastcraft/internal/security"
)

const (
	pluginType = "output"
	allPlugins = "all"
)

// Config holds plugin configuration.
type Config struct {
	// DisabledPlugins is a list of plugin names to disable.
	// Names may be bare ("tailwind") or qualified ("output:tailwind").
	DisabledPlugins []string

	// EnabledPlugins is a list of plugin names to explicitly enable.
	// If set, only these plugins are enabled (whitelist mode).
	EnabledPlugins []string
}

// Builder provides a fluent interface for constructing a Manager with configuration.
type Builder struct {
	config   Config
	registry *output.Registry
	logger   hclog.Logger
	verbose  bool
	builtins bool
}

// NewBuilder creates a new Manager builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		registry: output.NewRegistry(),
		logger:   hclog.NewNullLogger(),
		builtins: true,
	}
}

// WithConfig sets the configuration for the manager.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithLogger sets the logger handed to plugins that accept one.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithVerbose enables verbose mode on plugins that support it.
func (b *Builder) WithVerbose(verbose bool) *Builder {
	b.verbose = verbose
	return b
}

// WithRegistry uses a custom registry without the built-in plugins (useful for testing).
func (b *Builder) WithRegistry(registry *output.Registry) *Builder {
	b.registry = registry
	b.builtins = false
	return b
}

// Build constructs the Manager with the configured settings.
func (b *Builder) Build() *Manager {
	m := &Manager{
		config:   b.config,
		registry: b.registry,
		logger:   b.logger,
		verbose:  b.verbose,
		builtin:  make(map[string]bool),
	}

	if b.builtins {
		m.registerBuiltinPlugins()
	}
	for _, p := range m.registry.All() {
		m.configure(p)
	}

	return m
}

// Manager manages plugin enable/disable state and owns the plugin registry.
type Manager struct {
	config   Config
	registry *output.Registry
	logger   hclog.Logger
	verbose  bool
	builtin  map[string]bool
}

// BuiltinPlugins returns fresh instances of the built-in output plugins.
func BuiltinPlugins() []output.Plugin {
	return []output.Plugin{
		css.New(),
		json.New(),
		scss.New(),
		swatch.New(),
		tailwind.New(),
		yaml.New(),
	}
}

func (m *Manager) registerBuiltinPlugins() {
	for _, p := range BuiltinPlugins() {
		m.registry.Register(p)
		m.builtin[p.Name()] = true
	}
}

// configure hands the logger and verbose flag to plugins that accept them.
func (m *Manager) configure(p output.Plugin) {
	if la, ok := p.(output.LoggerAware); ok {
		la.SetLogger(m.logger.Named(p.Name()))
	}
	if vp, ok := p.(output.VerbosePlugin); ok {
		vp.SetVerbose(m.verbose)
	}
}

// SetLogger replaces the logger and hands it to every registered plugin.
func (m *Manager) SetLogger(logger hclog.Logger) {
	if logger == nil {
		return
	}
	m.logger = logger
	for _, p := range m.registry.All() {
		m.configure(p)
	}
}

// SetVerbose toggles verbose mode on every registered plugin.
func (m *Manager) SetVerbose(verbose bool) {
	m.verbose = verbose
	for _, p := range m.registry.All() {
		m.configure(p)
	}
}

// Registry returns the output plugin registry.
func (m *Manager) Registry() *output.Registry {
	return m.registry
}

// Get retrieves an output plugin by name.
func (m *Manager) Get(name string) (output.Plugin, bool) {
	return m.registry.Get(strings.TrimPrefix(name, pluginType+":"))
}

// IsBuiltin reports whether name is a built-in plugin.
func (m *Manager) IsBuiltin(name string) bool {
	return m.builtin[name]
}

// IsEnabled checks if an output plugin is enabled.
func (m *Manager) IsEnabled(p output.Plugin) bool {
	return m.isEnabled(p.Name())
}

// isEnabled applies the rules in order: "all" disabled, explicitly disabled,
// "all" enabled, whitelist, then built-ins on and external plugins off.
func (m *Manager) isEnabled(name string) bool {
	fullName := pluginType + ":" + name

	if slices.Contains(m.config.DisabledPlugins, allPlugins) {
		return false
	}
	for _, disabled := range m.config.DisabledPlugins {
		if disabled == fullName || disabled == name {
			return false
		}
	}

	if slices.Contains(m.config.EnabledPlugins, allPlugins) {
		return true
	}
	if len(m.config.EnabledPlugins) > 0 {
		for _, enabled := range m.config.EnabledPlugins {
			if enabled == fullName || enabled == name {
				return true
			}
		}
		return false
	}

	return m.builtin[name]
}

// Enabled returns the enabled plugins sorted by name.
func (m *Manager) Enabled() []output.Plugin {
	var enabled []output.Plugin
	for _, name := range m.registry.List() {
		p, _ := m.registry.Get(name)
		if m.IsEnabled(p) {
			enabled = append(enabled, p)
		}
	}
	return enabled
}

// List returns names of enabled plugins in sorted order.
func (m *Manager) List() []string {
	names := []string{}
	for _, p := range m.Enabled() {
		names = append(names, p.Name())
	}
	return names
}

// Select resolves the requested output names against the registry. "all"
// selects every enabled plugin. Unknown or disabled names are errors.
func (m *Manager) Select(names []string) ([]output.Plugin, error) {
	if slices.Contains(names, allPlugins) {
		return m.Enabled(), nil
	}

	var (
		selected []output.Plugin
		seen     = make(map[string]bool)
		errs     []error
	)
	for _, name := range names {
		p, ok := m.Get(name)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown output plugin: %s (available: %s)", name, strings.Join(m.registry.List(), ", ")))
			continue
		}
		if !m.IsEnabled(p) {
			errs = append(errs, fmt.Errorf("output plugin %s is disabled", p.Name()))
			continue
		}
		if seen[p.Name()] {
			continue
		}
		seen[p.Name()] = true
		selected = append(selected, p)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return selected, nil
}

// UpdateConfig updates the manager's configuration without recreating plugin instances.
// This preserves flag bindings and other plugin state.
func (m *Manager) UpdateConfig(config Config) {
	m.config = config
}

// GetConfig returns the current configuration.
func (m *Manager) GetConfig() Config {
	return m.config
}

// SetDisabled adds a plugin to the disabled list and removes it from the enabled list.
func (m *Manager) SetDisabled(name string) {
	fullName := pluginType + ":" + name
	m.config.EnabledPlugins = slices.DeleteFunc(m.config.EnabledPlugins, func(s string) bool {
		return s == name || s == fullName
	})
	if !slices.Contains(m.config.DisabledPlugins, fullName) {
		m.config.DisabledPlugins = append(m.config.DisabledPlugins, fullName)
	}
}

// SetEnabled adds a plugin to the enabled list (whitelist mode) and removes it
// from the disabled list.
func (m *Manager) SetEnabled(name string) {
	fullName := pluginType + ":" + name
	m.config.DisabledPlugins = slices.DeleteFunc(m.config.DisabledPlugins, func(s string) bool {
		return s == name || s == fullName
	})
	if !slices.Contains(m.config.EnabledPlugins, fullName) {
		m.config.EnabledPlugins = append(m.config.EnabledPlugins, fullName)
	}
}

// RegisterExternalPlugin registers an external exporter binary. The path must
// be absolute, name a regular file and report a compatible protocol version.
func (m *Manager) RegisterExternalPlugin(ctx context.Context, name, path, description string) (*ExternalOutputPlugin, error) {
	if name == "" {
		return nil, errors.New("plugin name is required")
	}
	if m.builtin[name] {
		return nil, fmt.Errorf("plugin name %s is reserved by a built-in plugin", name)
	}
	if err := security.ValidatePluginPath(path); err != nil {
		return nil, err
	}

	detected, err := protocol.DetectProtocol(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin info: %w", err)
	}
	if err := detected.CheckCompatible(); err != nil {
		return nil, err
	}
	if detected.PluginInfo.ProtocolVersion == "" {
		m.logger.Warn("plugin does not report a protocol version", "plugin", name, "path", path)
	}

	if description == "" {
		description = detected.PluginInfo.Description
	}

	p := NewExternalOutputPlugin(name, description, path)
	p.protocolType = detected.Type
	p.version = detected.PluginInfo.Version
	m.registry.Register(p)
	m.configure(p)

	m.logger.Debug("registered external plugin", "plugin", name, "protocol", detected.Type, "version", p.version)
	return p, nil
}
