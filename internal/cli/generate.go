package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastcraft/internal/colour"
	"github.com/jmylchreest/contrastcraft/internal/config"
	"github.com/jmylchreest/contrastcraft/internal/plugin/manager"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output"
	jsonout "github.com/jmylchreest/contrastcraft/internal/plugin/output/json"
	"github.com/jmylchreest/contrastcraft/internal/preview"
	"github.com/jmylchreest/contrastcraft/internal/security"
)

// Report formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatPlain = "plain"
)

// rawOutputSuffix marks plugin output that is printed instead of written.
const rawOutputSuffix = "-output.txt"

type generateOptions struct {
	flags      *config.Flags
	format     string
	dryRun     bool
	noExport   bool
	pluginArgs map[string]string
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [BASE]",
		Short: "Generate an accent scale and export it",
		Long: `Generate a 12-step accent scale from a base colour, print its contrast
report and export it through the selected output plugins.

The base colour is taken from the argument, then --base, then
CONTRASTCRAFT_BASE, then the config file.

Output Plugins:
  css       - CSS custom properties
  scss      - SCSS variables and map
  tailwind  - Tailwind theme colours
  json      - Design tokens
  yaml      - Design tokens
  swatch    - PNG swatch sheet
  (external plugins are listed by 'contrastcraft plugins list')

Examples:
  # Print the report for the default base colour
  contrastcraft generate --no-export

  # Export CSS and Tailwind tokens for a base colour
  contrastcraft generate '#0EA5E9' --outputs css,tailwind --output-dir ./theme

  # Dark page, flag steps that miss AA
  contrastcraft generate '#6366F1' --mode dark --min-level AA

  # See what would be written
  contrastcraft generate --outputs all --dry-run

  # Pass args to an external plugin (JSON format)
  contrastcraft generate --outputs figma \
    --plugin-args figma='{"collection":"Accent"}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, a, opts)
		},
	}

	opts.flags = config.BindFlags(cmd.Flags())
	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatTable, "report format (table, json, plain)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "show what would be written without writing files")
	cmd.Flags().BoolVar(&opts.noExport, "no-export", false, "print the report only")
	cmd.Flags().StringToStringVar(&opts.pluginArgs, "plugin-args", map[string]string{}, "plugin arguments as JSON (e.g., --plugin-args figma='{\"key\":\"value\"}')")

	for _, p := range a.plugins.Registry().All() {
		p.RegisterFlags(cmd)
	}

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, a *app, opts *generateOptions) error {
	if len(args) == 1 {
		if err := cmd.Flags().Set(config.FlagBase, args[0]); err != nil {
			return err
		}
	}
	switch opts.format {
	case FormatTable, FormatJSON, FormatPlain:
	default:
		return fmt.Errorf("invalid format: %s (must be 'table', 'json' or 'plain')", opts.format)
	}

	ctx := cmd.Context()
	cfg, err := a.loadConfig(ctx, opts.flags)
	if err != nil {
		return err
	}
	defer a.plugins.Close()

	scale, err := colour.Generate(cfg.Base)
	if err != nil {
		return fmt.Errorf("failed to generate scale: %w", err)
	}
	themeData := colour.NewThemeData(scale, cfg.ThemeOptions())
	a.logger.Debug("generated scale", "base", scale.Base, "hue", scale.Hue, "saturation", scale.Saturation)

	minLevel, err := parseMinLevel(cfg.MinLevel)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	reportOpts := preview.DefaultOptions(stdout)
	reportOpts.Colour = reportOpts.Colour && !a.noColor
	reportOpts.MinLevel = minLevel
	if err := writeReport(stdout, themeData, opts.format, reportOpts); err != nil {
		return err
	}
	if minLevel != "" {
		if failing := themeData.Report.Failing(minLevel); len(failing) > 0 {
			steps := make([]string, len(failing))
			for i, sr := range failing {
				steps[i] = fmt.Sprintf("%d", sr.Step.Index)
			}
			a.status(stderr, "⚠ %d step(s) below %s with every text colour: %s\n", len(failing), minLevel, strings.Join(steps, ", "))
		}
	}

	if opts.noExport {
		return nil
	}

	if err := applyPluginArgs(a.plugins, opts.pluginArgs, opts.dryRun); err != nil {
		return err
	}

	plugins, err := a.plugins.Select(cfg.Outputs)
	if err != nil {
		return err
	}
	if len(plugins) == 0 {
		a.status(stderr, "No output plugins enabled\n")
		return nil
	}

	var (
		errs         []error
		successCount int
	)
	for _, p := range plugins {
		ok, err := runOutputPlugin(cmd, a, p, themeData, cfg.OutputDir, opts.dryRun)
		if err != nil {
			fmt.Fprintf(stderr, "✗ %s failed: %v\n", p.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		if ok {
			successCount++
		}
	}

	a.status(stderr, "\n")
	if successCount > 0 {
		a.status(stderr, "✓ Done! Generated %d output plugin(s)\n", successCount)
	}

	return errors.Join(errs...)
}

// runOutputPlugin validates, generates and writes one plugin's files. It
// reports false when the plugin was skipped.
func runOutputPlugin(cmd *cobra.Command, a *app, p output.Plugin, themeData *colour.ThemeData, outputDir string, dryRun bool) (bool, error) {
	ctx := cmd.Context()
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	if err := p.Validate(); err != nil {
		fmt.Fprintf(stderr, "⚠ Skipping %s: %v\n", p.Name(), err)
		return false, nil
	}

	if hook, ok := p.(output.PreExecuteHook); ok {
		skip, reason, err := hook.PreExecute(ctx)
		if err != nil {
			return false, fmt.Errorf("pre-execute failed: %w", err)
		}
		if skip {
			a.status(stderr, "⚠ Skipping %s: %s\n", p.Name(), reason)
			return false, nil
		}
	}

	a.status(stderr, "\n✓ Output plugin: %s\n", p.Name())
	if a.verbose {
		a.status(stderr, "  └─ %s\n", p.Description())
	}

	files, err := p.Generate(themeData)
	if err != nil {
		return false, err
	}

	dir := p.DefaultOutputDir()
	if dir == "" {
		dir = outputDir
	}
	dir, err = expandHome(dir)
	if err != nil {
		return false, err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	var written []string
	for _, name := range names {
		content := files[name]

		if strings.HasSuffix(name, rawOutputSuffix) {
			fmt.Fprintln(stdout, strings.TrimRight(string(content), "\n"))
			continue
		}

		fullPath, err := security.ResolveOutputPath(dir, name)
		if err != nil {
			return false, err
		}

		if dryRun {
			a.status(stderr, "  Would write: %s (%d bytes)\n", fullPath, len(content))
			continue
		}
		if err := writeFile(fullPath, content); err != nil {
			return false, err
		}
		written = append(written, fullPath)
		a.status(stderr, "  ├─ %s (%d bytes)\n", fullPath, len(content))
	}

	if hook, ok := p.(output.PostExecuteHook); ok && !dryRun {
		if err := hook.PostExecute(ctx, written); err != nil {
			return false, fmt.Errorf("post-execute failed: %w", err)
		}
	}

	return true, nil
}

// writeReport prints the assessed scale in the requested format.
func writeReport(w io.Writer, themeData *colour.ThemeData, format string, opts preview.Options) error {
	switch format {
	case FormatJSON:
		doc := jsonout.NewDocument(themeData, true)
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatPlain:
		_, err := io.WriteString(w, preview.Plain(themeData)+"\n"+preview.Summary(themeData))
		return err
	default:
		if err := preview.Render(w, themeData, opts); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n"+preview.Summary(themeData))
		return err
	}
}

// parseMinLevel parses the configured minimum level; empty means none.
func parseMinLevel(raw string) (colour.Level, error) {
	if raw == "" {
		return "", nil
	}
	level, err := colour.ParseLevel(raw)
	if err != nil {
		return "", fmt.Errorf("invalid min level: %w", err)
	}
	return level, nil
}

// applyPluginArgs hands --plugin-args JSON and the dry-run flag to external plugins.
func applyPluginArgs(m *manager.Manager, pluginArgs map[string]string, dryRun bool) error {
	for _, p := range m.Registry().All() {
		ext, ok := p.(*manager.ExternalOutputPlugin)
		if !ok {
			continue
		}
		ext.SetDryRun(dryRun)
	}

	for name, raw := range pluginArgs {
		p, ok := m.Get(name)
		if !ok {
			return fmt.Errorf("--plugin-args: unknown plugin: %s", name)
		}
		ext, ok := p.(*manager.ExternalOutputPlugin)
		if !ok {
			return fmt.Errorf("--plugin-args: %s is a built-in plugin; use its flags instead", name)
		}
		var args map[string]any
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return fmt.Errorf("--plugin-args: invalid JSON for %s: %w", name, err)
		}
		ext.SetArgs(args)
	}
	return nil
}

// expandHome expands a leading "~/" to the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// writeFile writes content to path, creating parent directories as needed.
func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
