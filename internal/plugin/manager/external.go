package manager

import (
	"context"
	"fmt"
	"io"
	"maps"
	"math"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastcraft/internal/colour"
	"github.com/jmylchreest/contrastcraft/internal/plugin/executor"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output"
	"github.com/jmylchreest/contrastcraft/internal/plugin/protocol"
	"github.com/jmylchreest/contrastcraft/pkg/plugin"
)

const versionUnknown = "unknown"

// ExternalOutputPlugin wraps an external executable as an output plugin.
type ExternalOutputPlugin struct {
	name         string
	description  string
	path         string
	version      string
	protocolType protocol.PluginType
	args         map[string]any
	dryRun       bool
	verbose      bool
	logger       hclog.Logger

	exec *executor.PluginExecutor
}

var (
	_ output.Plugin          = (*ExternalOutputPlugin)(nil)
	_ output.PreExecuteHook  = (*ExternalOutputPlugin)(nil)
	_ output.PostExecuteHook = (*ExternalOutputPlugin)(nil)
	_ io.Closer              = (*ExternalOutputPlugin)(nil)
)

// NewExternalOutputPlugin creates a new external output plugin wrapper.
// The protocol is detected on first use.
func NewExternalOutputPlugin(name, description, path string) *ExternalOutputPlugin {
	return &ExternalOutputPlugin{
		name:        name,
		description: description,
		path:        path,
		logger:      hclog.NewNullLogger(),
	}
}

// Name returns the plugin's name.
func (p *ExternalOutputPlugin) Name() string {
	return p.name
}

// Description returns the plugin's description.
func (p *ExternalOutputPlugin) Description() string {
	return p.description
}

// Path returns the plugin executable path.
func (p *ExternalOutputPlugin) Path() string {
	return p.path
}

// Version returns the version reported by --plugin-info.
func (p *ExternalOutputPlugin) Version() string {
	if p.version == "" {
		return versionUnknown
	}
	return p.version
}

// SetArgs merges custom arguments for this plugin; later calls win per key.
func (p *ExternalOutputPlugin) SetArgs(args map[string]any) {
	if p.args == nil {
		p.args = make(map[string]any, len(args))
	}
	maps.Copy(p.args, args)
}

// GetArgs returns custom arguments for this plugin.
func (p *ExternalOutputPlugin) GetArgs() map[string]any {
	return p.args
}

// SetDryRun sets the dry-run mode sent to the plugin.
func (p *ExternalOutputPlugin) SetDryRun(dryRun bool) {
	p.dryRun = dryRun
}

// SetVerbose sets the verbose flag for this plugin.
func (p *ExternalOutputPlugin) SetVerbose(verbose bool) {
	p.verbose = verbose
}

// SetLogger sets the logger for plugin diagnostics.
func (p *ExternalOutputPlugin) SetLogger(logger hclog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// RegisterFlags is a no-op; external plugins receive options through --plugin-args.
func (p *ExternalOutputPlugin) RegisterFlags(_ *cobra.Command) {}

// Validate checks if the plugin is valid.
func (p *ExternalOutputPlugin) Validate() error {
	if p.path == "" {
		return fmt.Errorf("external plugin %s has no path", p.name)
	}
	return nil
}

// DefaultOutputDir returns "" so files go to the configured output directory.
func (p *ExternalOutputPlugin) DefaultOutputDir() string {
	return ""
}

func (p *ExternalOutputPlugin) getExecutor(ctx context.Context) (*executor.PluginExecutor, error) {
	if p.exec != nil {
		return p.exec, nil
	}

	opts := []executor.Option{executor.WithLogger(p.logger), executor.WithName(p.name)}
	if p.protocolType != "" {
		p.exec = executor.NewWithProtocol(p.path, p.protocolType, opts...)
		return p.exec, nil
	}

	e, err := executor.New(ctx, p.path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create plugin executor: %w", err)
	}
	p.exec = e
	return e, nil
}

// Generate executes the external plugin and returns its output.
func (p *ExternalOutputPlugin) Generate(themeData *colour.ThemeData) (map[string][]byte, error) {
	if themeData == nil {
		return nil, output.ErrNilTheme
	}

	ctx := context.Background()
	e, err := p.getExecutor(ctx)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("executing external plugin", "path", p.path, "protocol", e.Protocol(), "dry_run", p.dryRun)
	files, err := e.ExecuteOutput(ctx, ToPaletteData(themeData, p.args, p.dryRun))
	if err != nil {
		return nil, fmt.Errorf("plugin execution failed: %w", err)
	}
	if files == nil {
		files = make(map[string][]byte)
	}
	return files, nil
}

// PreExecute calls the external plugin's pre-execute hook.
func (p *ExternalOutputPlugin) PreExecute(ctx context.Context) (skip bool, reason string, err error) {
	e, err := p.getExecutor(ctx)
	if err != nil {
		return false, "", err
	}
	return e.PreExecute(ctx)
}

// PostExecute calls the external plugin's post-execute hook.
func (p *ExternalOutputPlugin) PostExecute(ctx context.Context, writtenFiles []string) error {
	e, err := p.getExecutor(ctx)
	if err != nil {
		return err
	}
	return e.PostExecute(ctx, writtenFiles)
}

// Close stops the plugin process, if one was started.
func (p *ExternalOutputPlugin) Close() error {
	if p.exec != nil {
		p.exec.Close()
		p.exec = nil
	}
	return nil
}

// Close releases resources held by registered plugins.
func (m *Manager) Close() {
	for _, p := range m.registry.All() {
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil {
				m.logger.Warn("failed to close plugin", "plugin", p.Name(), "error", err)
			}
		}
	}
}

// ToPaletteData converts theme data to the payload sent to external plugins.
func ToPaletteData(td *colour.ThemeData, pluginArgs map[string]any, dryRun bool) plugin.PaletteData {
	steps := make([]plugin.StepData, len(td.Report.Steps))
	for i, sr := range td.Report.Steps {
		step := sr.Step
		contrast := make([]plugin.ContrastData, len(sr.Checks))
		for j, check := range sr.Checks {
			contrast[j] = plugin.ContrastData{
				Text:  check.Text,
				Ratio: math.Round(check.Ratio*100) / 100,
				Level: string(check.Badge.Level),
				Pass:  check.Badge.Pass,
			}
		}
		steps[i] = plugin.StepData{
			Index:     step.Index,
			Token:     td.TokenName(step.Index),
			Hex:       step.Hex,
			RGB:       plugin.RGBColour{R: step.RGB.R, G: step.RGB.G, B: step.RGB.B},
			HSL:       plugin.HSLColour{H: step.H, S: step.S, L: step.L},
			Luminance: colour.Luminance(step.RGB),
			Contrast:  contrast,
		}
	}

	return plugin.PaletteData{
		Name:       td.Name,
		Prefix:     td.Prefix,
		ThemeType:  td.Theme.String(),
		Base:       td.Scale.Base,
		Hue:        td.Scale.Hue,
		Saturation: td.Scale.Saturation,
		TextLight:  td.TextLight,
		TextDark:   td.TextDark,
		Steps:      steps,
		PluginArgs: pluginArgs,
		DryRun:     dryRun,
	}
}
