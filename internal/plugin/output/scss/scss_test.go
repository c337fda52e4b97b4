package scss

import (
	"strings"
	"testing"

	"github.com/jmylchreest/contrastcraft/internal/colour"
	plugintesting "github.com/jmylchreest/contrastcraft/internal/plugin/output/testing"
)

func TestSCSSPlugin(t *testing.T) {
	plugintesting.RunAllTests(t, New(), plugintesting.TestConfig{
		ExpectedName:  "scss",
		ExpectedFiles: []string{"_accent.scss"},
		ExpectedFlags: []string{"scss.map", "scss.output-dir"},
	})
}

func TestSCSSContent(t *testing.T) {
	files, err := New().Generate(plugintesting.CreateTestTheme(t, colour.ThemeLight))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	content := string(files["_accent.scss"])

	for _, want := range []string{
		"// test: accent scale for #6366F1\n$accent-1: #FFFFFF;\n",
		"$accent-12: #000385;\n\n$accent: (\n  1: $accent-1,\n",
		"  11: $accent-11,\n  12: $accent-12\n);",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("missing %q in:\n%s", want, content)
		}
	}
}

func TestSCSSWithoutMap(t *testing.T) {
	p := New()
	p.withMap = false

	files, err := p.Generate(plugintesting.CreateTestTheme(t, colour.ThemeLight))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	content := string(files["_accent.scss"])
	if strings.Contains(content, "$accent: (") {
		t.Errorf("map should be omitted:\n%s", content)
	}
	if !strings.HasSuffix(strings.TrimSpace(content), "$accent-12: #000385;") {
		t.Errorf("unexpected ending:\n%s", content)
	}
}
