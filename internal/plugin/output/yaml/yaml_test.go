package yaml

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/contrastcraft/internal/colour"
	plugintesting "github.com/jmylchreest/contrastcraft/internal/plugin/output/testing"
)

type tokenEntry struct {
	Value    string            `yaml:"value"`
	Type     string            `yaml:"type"`
	Contrast map[string]string `yaml:"contrast"`
}

func decode(t *testing.T, content []byte) map[string]map[int]tokenEntry {
	t.Helper()
	var doc map[string]map[int]tokenEntry
	if err := yaml.Unmarshal(content, &doc); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, content)
	}
	return doc
}

func TestYAMLPlugin(t *testing.T) {
	plugintesting.RunAllTests(t, New(), plugintesting.TestConfig{
		ExpectedName:  "yaml",
		ExpectedFiles: []string{"test.tokens.yaml"},
		ExpectedFlags: []string{"yaml.with-contrast", "yaml.output-dir"},
	})
}

func TestYAMLTokens(t *testing.T) {
	files, err := New().Generate(plugintesting.CreateTestTheme(t, colour.ThemeLight))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	content := files["test.tokens.yaml"]

	if !strings.HasPrefix(string(content), "# test: accent scale for #6366F1\n") {
		t.Errorf("missing header comment:\n%s", content)
	}
	if !strings.Contains(string(content), "accent:\n  1:\n    value: ") || !strings.Contains(string(content), "    type: color\n  2:\n") {
		t.Errorf("unexpected layout:\n%s", content)
	}

	doc := decode(t, content)
	steps := doc["accent"]
	if len(steps) != colour.StepCount {
		t.Fatalf("decoded %d steps", len(steps))
	}
	if diff := cmp.Diff(tokenEntry{Value: "#000385", Type: "color"}, steps[12]); diff != "" {
		t.Errorf("step 12 mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLWithContrast(t *testing.T) {
	p := New()
	p.withContrast = true

	files, err := p.Generate(plugintesting.CreateTestTheme(t, colour.ThemeLight))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	doc := decode(t, files["test.tokens.yaml"])
	want := map[string]string{"#FFFFFF": "AA-Large", "#0B0B0F": "AA"}
	if diff := cmp.Diff(want, doc["accent"][6].Contrast); diff != "" {
		t.Errorf("step 6 contrast mismatch (-want +got):\n%s", diff)
	}
}
