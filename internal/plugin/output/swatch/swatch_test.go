package swatch

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/jmylchreest/contrastcraft/internal/colour"
	plugintesting "github.com/jmylchreest/contrastcraft/internal/plugin/output/testing"
)

func TestSwatchPlugin(t *testing.T) {
	plugintesting.RunAllTests(t, New(), plugintesting.TestConfig{
		ExpectedName:  "swatch",
		ExpectedFiles: []string{"test.png"},
		ExpectedFlags: []string{"swatch.columns", "swatch.cell-width", "swatch.cell-height", "swatch.output-dir"},
	})
}

func TestSwatchImage(t *testing.T) {
	td := plugintesting.CreateTestTheme(t, colour.ThemeLight)
	files, err := New().Generate(td)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	img, err := png.Decode(bytes.NewReader(files["test.png"]))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != DefaultColumns*DefaultCellWidth || bounds.Dy() != 3*DefaultCellHeight {
		t.Fatalf("image size = %v", bounds.Size())
	}

	for i, step := range td.Scale.Steps {
		x := (i%DefaultColumns)*DefaultCellWidth + 1
		y := (i/DefaultColumns)*DefaultCellHeight + 1
		if got := colour.FromColor(img.At(x, y)); got != step.RGB {
			t.Errorf("step %d pixel = %s, want %s", step.Index, got.Hex(), step.Hex)
		}
	}
}

func TestSwatchLabelsDrawn(t *testing.T) {
	td := plugintesting.CreateTestTheme(t, colour.ThemeLight)
	img := New().Render(td)

	// Step 12 is dark; its labels should put light pixels in the cell.
	step := td.Scale.Steps[11]
	x0 := (11 % DefaultColumns) * DefaultCellWidth
	y0 := (11 / DefaultColumns) * DefaultCellHeight
	found := false
	for y := y0; y < y0+DefaultCellHeight && !found; y++ {
		for x := x0; x < x0+DefaultCellWidth; x++ {
			if colour.FromColor(img.At(x, y)) != step.RGB {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no label pixels drawn in step 12")
	}
}

func TestSwatchLayout(t *testing.T) {
	p := New()
	p.columns = 12
	p.cellWidth = 100
	p.cellHeight = 60

	img := p.Render(plugintesting.CreateTestTheme(t, colour.ThemeDark))
	if b := img.Bounds(); b.Dx() != 1200 || b.Dy() != 60 {
		t.Errorf("image size = %v", b.Size())
	}
}

func TestSwatchValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Plugin)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Plugin) {}},
		{name: "zero columns", mutate: func(p *Plugin) { p.columns = 0 }, wantErr: true},
		{name: "too many columns", mutate: func(p *Plugin) { p.columns = 13 }, wantErr: true},
		{name: "tiny cells", mutate: func(p *Plugin) { p.cellWidth = 10 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			tt.mutate(p)
			if err := p.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
