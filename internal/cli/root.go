// Package cli provides the command-line interface for contrastcraft.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastcraft/internal/config"
	"github.com/jmylchreest/contrastcraft/internal/plugin/manager"
	"github.com/jmylchreest/contrastcraft/internal/version"
)

// app is the state shared by every command.
type app struct {
	configPath string
	verbose    bool
	quiet      bool
	noColor    bool

	getenv  func(string) string
	logger  hclog.Logger
	plugins *manager.Manager
}

// NewRootCmd builds the command tree, reading the environment through os.Getenv.
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.Getenv)
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	a := &app{
		getenv:  getenv,
		logger:  hclog.NewNullLogger(),
		plugins: manager.NewBuilder().Build(),
	}

	rootCmd := &cobra.Command{
		Use:   "contrastcraft",
		Short: "Accessible accent colour scales",
		Long: `contrastcraft turns one base colour into a 12-step accent scale and checks
every step against light and dark text using the WCAG 2.x contrast formula.

The scale can be exported as CSS custom properties, SCSS variables, Tailwind
theme colours, JSON, YAML or a PNG swatch sheet, and external exporters can
be added as plugins.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setupLogger(cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default: ./contrastcraft.{yaml,toml,json} or the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable coloured output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newPluginsCmd(a))
	rootCmd.AddCommand(newTemplatesCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setupLogger creates the hclog logger from the global flags and hands it to
// the plugin manager.
func (a *app) setupLogger(w io.Writer) {
	level := hclog.Info
	switch {
	case a.quiet:
		level = hclog.Error
	case a.verbose:
		level = hclog.Debug
	}

	colorOpt := hclog.AutoColor
	if a.noColor || a.getenv("NO_COLOR") != "" {
		colorOpt = hclog.ColorOff
	}

	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "contrastcraft",
		Level:  level,
		Output: w,
		Color:  colorOpt,
	})
	a.plugins.SetLogger(a.logger)
	a.plugins.SetVerbose(a.verbose)
}

// loadConfig resolves the configuration and applies its plugin lists to the
// manager. External plugins in the config are registered; one that fails to
// register is logged and left out.
func (a *app) loadConfig(ctx context.Context, flags *config.Flags) (config.Config, error) {
	cfg, path, err := config.Resolve(a.configPath, a.getenv, flags)
	if err != nil {
		return cfg, err
	}
	if path != "" {
		a.logger.Debug("loaded config", "path", path)
	}

	a.plugins.UpdateConfig(manager.Config{
		EnabledPlugins:  cfg.EnabledPlugins,
		DisabledPlugins: cfg.DisabledPlugins,
	})

	for _, ext := range cfg.ExternalPlugins {
		p, err := a.plugins.RegisterExternalPlugin(ctx, ext.Name, ext.Path, ext.Description)
		if err != nil {
			a.logger.Warn("skipping external plugin", "plugin", ext.Name, "error", err)
			continue
		}
		if len(ext.Args) > 0 {
			p.SetArgs(ext.Args)
		}
	}

	return cfg, nil
}

// status prints a progress line unless --quiet is set.
func (a *app) status(w io.Writer, format string, args ...any) {
	if a.quiet {
		return
	}
	fmt.Fprintf(w, format, args...)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
