// Package swatch provides an output plugin that renders the scale as a PNG swatch sheet.
package swatch

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/spf13/cobra"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/contrastcraft/internal/colour"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output"
)

// Defaults for the swatch grid.
const (
	DefaultColumns    = 4
	DefaultCellWidth  = 180
	DefaultCellHeight = 96
)

const (
	padding    = 8
	lineHeight = 16
)

// Plugin implements the output.Plugin interface for PNG swatches.
type Plugin struct {
	columns    int
	cellWidth  int
	cellHeight int
	outputDir  string
}

// New creates a new swatch output plugin.
func New() *Plugin {
	return &Plugin{
		columns:    DefaultColumns,
		cellWidth:  DefaultCellWidth,
		cellHeight: DefaultCellHeight,
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "swatch"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Render the scale and its contrast badges as a PNG swatch sheet"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.columns, "swatch.columns", DefaultColumns, "Number of swatches per row")
	cmd.Flags().IntVar(&p.cellWidth, "swatch.cell-width", DefaultCellWidth, "Swatch width in pixels")
	cmd.Flags().IntVar(&p.cellHeight, "swatch.cell-height", DefaultCellHeight, "Swatch height in pixels")
	cmd.Flags().StringVar(&p.outputDir, "swatch.output-dir", "", "Output directory (default: --output-dir)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.columns < 1 || p.columns > colour.StepCount {
		return fmt.Errorf("swatch.columns must be between 1 and %d, got %d", colour.StepCount, p.columns)
	}
	if p.cellWidth < 64 || p.cellHeight < 32 {
		return fmt.Errorf("swatch cells must be at least 64x32, got %dx%d", p.cellWidth, p.cellHeight)
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	return p.outputDir
}

// Generate creates <name>.png.
func (p *Plugin) Generate(themeData *colour.ThemeData) (map[string][]byte, error) {
	if themeData == nil {
		return nil, output.ErrNilTheme
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	img := p.Render(themeData)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode swatch: %w", err)
	}

	return map[string][]byte{
		themeData.Name + ".png": buf.Bytes(),
	}, nil
}

// Render draws the swatch sheet. Each cell is filled with its step colour and
// labelled with the step, hex and one line per text colour, drawn in that
// text colour.
func (p *Plugin) Render(themeData *colour.ThemeData) *image.RGBA {
	steps := themeData.Report.Steps
	rows := (len(steps) + p.columns - 1) / p.columns

	img := image.NewRGBA(image.Rect(0, 0, p.columns*p.cellWidth, rows*p.cellHeight))
	bg := colour.MustParseHex(themeData.Background()).Color()
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for i, sr := range steps {
		x := (i % p.columns) * p.cellWidth
		y := (i / p.columns) * p.cellHeight
		cell := image.Rect(x, y, x+p.cellWidth, y+p.cellHeight)
		draw.Draw(img, cell, image.NewUniform(sr.Step.RGB.Color()), image.Point{}, draw.Src)

		best := colour.MustParseHex(sr.Best.Text)
		drawLabel(img, x+padding, y+padding+lineHeight-4, best, fmt.Sprintf("%d  %s", sr.Step.Index, sr.Step.Hex))

		for j, check := range sr.Checks {
			text := colour.MustParseHex(check.Text)
			label := fmt.Sprintf("%s %s %s", check.Text, colour.FormatRatio(check.Ratio), check.Badge.Level)
			drawLabel(img, x+padding, y+padding+lineHeight*(j+2)-4, text, label)
		}
	}

	return img
}

func drawLabel(img draw.Image, x, y int, c colour.RGB, label string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c.Color()),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}
