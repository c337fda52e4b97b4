// Package tailwind provides a Tailwind CSS output plugin.
package tailwind

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
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

// Output formats.
const (
	FormatConfig = "config" // tailwind.config.js (Tailwind v3)
	FormatCSS    = "css"    // @theme block (Tailwind v4)
)

// Plugin implements the output.Plugin interface for Tailwind CSS.
type Plugin struct {
	format    string
	outputDir string
	logger    hclog.Logger
}

// New creates a new Tailwind CSS output plugin.
func New() *Plugin {
	return NewWithFormat(FormatConfig)
}

// NewWithFormat creates a new Tailwind CSS output plugin with a specific format.
func NewWithFormat(format string) *Plugin {
	return &Plugin{
		format: format,
		logger: hclog.NewNullLogger(),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "tailwind"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Export the scale as Tailwind CSS theme colours"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.format, "tailwind.format", FormatConfig, "Output format (config or css)")
	cmd.Flags().StringVar(&p.outputDir, "tailwind.output-dir", "", "Output directory (default: --output-dir)")
}

// SetLogger sets the logger used for template diagnostics.
func (p *Plugin) SetLogger(logger hclog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.format != FormatCSS && p.format != FormatConfig {
		return fmt.Errorf("invalid format: %s (must be 'css' or 'config')", p.format)
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}

	// The v4 stylesheet usually lives next to the app entry point.
	if p.format == FormatCSS {
		if info, err := os.Stat("src"); err == nil && info.IsDir() {
			return "src"
		}
	}
	return ""
}

// Generate creates the Tailwind configuration from the theme data.
func (p *Plugin) Generate(themeData *colour.ThemeData) (map[string][]byte, error) {
	if themeData == nil {
		return nil, output.ErrNilTheme
	}

	switch p.format {
	case FormatCSS:
		content, err := p.render("theme.css.tmpl", themeData)
		if err != nil {
			return nil, err
		}
		return map[string][]byte{"tailwind.css": content}, nil
	default:
		content, err := p.render("tailwind.config.js.tmpl", themeData)
		if err != nil {
			return nil, err
		}
		return map[string][]byte{"tailwind.config.js": content}, nil
	}
}

// TemplateData is the data passed to the Tailwind templates.
type TemplateData struct {
	Name   string
	Prefix string
	Base   string
	Tokens []colour.Token
}

func (p *Plugin) render(name string, themeData *colour.ThemeData) ([]byte, error) {
	loader := tmplloader.New(p.Name(), templates).WithLogger(p.logger)
	tmplContent, _, err := loader.Load(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	tmpl, err := template.New(name).Funcs(common.TemplateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	data := TemplateData{
		Name:   themeData.Name,
		Prefix: themeData.Prefix,
		Base:   themeData.Scale.Base,
		Tokens: themeData.Tokens(),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
