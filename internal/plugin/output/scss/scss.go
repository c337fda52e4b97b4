// Package scss provides an output plugin for Sass variables.
package scss

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"text/template"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastcraft/internal/colour"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/contrastcraft/internal/plugin/output/template"
)

//go:embed *.tmpl
var templates embed.FS

// GetEmbeddedTemplates returns the embedded template filesystem.
func GetEmbeddedTemplates() embed.FS {
	return templates
}

// GetEmbeddedFS implements output.TemplateProvider.
func (p *Plugin) GetEmbeddedFS() fs.FS {
	return templates
}

// Plugin implements the output.Plugin interface for SCSS.
type Plugin struct {
	withMap   bool
	outputDir string
	logger    hclog.Logger
}

// New creates a new SCSS output plugin.
func New() *Plugin {
	return &Plugin{
		withMap: true,
		logger:  hclog.NewNullLogger(),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "scss"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Export the scale as Sass variables and a step map"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.withMap, "scss.map", true, "Also emit a $<prefix> map keyed by step")
	cmd.Flags().StringVar(&p.outputDir, "scss.output-dir", "", "Output directory (default: --output-dir)")
}

// SetLogger sets the logger used for template diagnostics.
func (p *Plugin) SetLogger(logger hclog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	return p.outputDir
}

// Generate creates the _<prefix>.scss partial.
func (p *Plugin) Generate(themeData *colour.ThemeData) (map[string][]byte, error) {
	if themeData == nil {
		return nil, output.ErrNilTheme
	}

	loader := tmplloader.New(p.Name(), templates).WithLogger(p.logger)
	tmplContent, _, err := loader.Load("accent.scss.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read SCSS template: %w", err)
	}

	tmpl, err := template.New("accent.scss").Funcs(common.TemplateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SCSS template: %w", err)
	}

	data := struct {
		Theme   *colour.ThemeData
		Tokens  []colour.Token
		WithMap bool
	}{
		Theme:   themeData,
		Tokens:  themeData.Tokens(),
		WithMap: p.withMap,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute SCSS template: %w", err)
	}

	return map[string][]byte{
		"_" + themeData.Prefix + ".scss": buf.Bytes(),
	}, nil
}
