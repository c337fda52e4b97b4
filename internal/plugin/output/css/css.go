// Package css provides an output plugin for CSS custom property tokens.
package css

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
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

// DefaultSelector is the rule the tokens are declared on.
const DefaultSelector = ":root"

// Plugin implements the output.Plugin interface for CSS custom properties.
type Plugin struct {
	selector  string
	outputDir string
	logger    hclog.Logger
}

// New creates a new CSS output plugin with default settings.
func New() *Plugin {
	return &Plugin{
		selector: DefaultSelector,
		logger:   hclog.NewNullLogger(),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "css"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Export the scale as CSS custom properties"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.selector, "css.selector", DefaultSelector, "CSS selector the tokens are declared on")
	cmd.Flags().StringVar(&p.outputDir, "css.output-dir", "", "Output directory (default: --output-dir)")
}

// SetLogger sets the logger used for template diagnostics.
func (p *Plugin) SetLogger(logger hclog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if strings.TrimSpace(p.selector) == "" {
		return fmt.Errorf("css.selector cannot be empty")
	}
	if strings.ContainsAny(p.selector, "{}") {
		return fmt.Errorf("invalid css.selector: %q", p.selector)
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	return p.outputDir
}

// Generate creates <name>.css.
func (p *Plugin) Generate(themeData *colour.ThemeData) (map[string][]byte, error) {
	if themeData == nil {
		return nil, output.ErrNilTheme
	}

	content, err := p.generateTokens(themeData)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return map[string][]byte{
		themeData.Name + ".css": content,
	}, nil
}

// TokenData is the data passed to tokens.css.tmpl.
type TokenData struct {
	Selector string
	Tokens   []colour.Token
	Theme    *colour.ThemeData
}

func (p *Plugin) generateTokens(themeData *colour.ThemeData) ([]byte, error) {
	loader := tmplloader.New(p.Name(), templates).WithLogger(p.logger)
	tmplContent, _, err := loader.Load("tokens.css.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read CSS template: %w", err)
	}

	tmpl, err := template.New("tokens.css").Funcs(common.TemplateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSS template: %w", err)
	}

	data := TokenData{
		Selector: strings.TrimSpace(p.selector),
		Tokens:   themeData.Tokens(),
		Theme:    themeData,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute CSS template: %w", err)
	}

	// The block ends at the closing brace, without a trailing newline.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
