package json

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/contrastcraft/internal/colour"
	plugintesting "github.com/jmylchreest/contrastcraft/internal/plugin/output/testing"
)

func TestJSONPlugin(t *testing.T) {
	plugintesting.RunAllTests(t, New(), plugintesting.TestConfig{
		ExpectedName:  "json",
		ExpectedFiles: []string{"test.json"},
		ExpectedFlags: []string{"json.with-contrast", "json.output-dir"},
	})
}

func TestJSONDocument(t *testing.T) {
	files, err := New().Generate(plugintesting.CreateTestTheme(t, colour.ThemeLight))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	content := string(files["test.json"])

	wantPrefix := "{\n  \"name\": \"test\",\n  \"tokens\": [\n    {\n      \"token\": \"--accent-1\",\n      \"value\": \"#FFFFFF\"\n    },"
	if !strings.HasPrefix(content, wantPrefix) {
		t.Errorf("unexpected layout:\n%s", content)
	}
	if strings.HasSuffix(content, "\n") || strings.Contains(content, "contrast") {
		t.Errorf("unexpected trailing newline or contrast data:\n%s", content)
	}

	var doc Document
	if err := json.Unmarshal(files["test.json"], &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Tokens) != colour.StepCount {
		t.Fatalf("len(tokens) = %d", len(doc.Tokens))
	}
	if diff := cmp.Diff(Token{Token: "--accent-12", Value: "#000385"}, doc.Tokens[11]); diff != "" {
		t.Errorf("last token mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONWithContrast(t *testing.T) {
	p := New()
	p.withContrast = true

	files, err := p.Generate(plugintesting.CreateTestTheme(t, colour.ThemeLight))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var doc Document
	if err := json.Unmarshal(files["test.json"], &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []Contrast{
		{Text: "#FFFFFF", Ratio: 4.18, Level: colour.LevelAALarge},
		{Text: "#0B0B0F", Ratio: 4.7, Level: colour.LevelAA},
	}
	if diff := cmp.Diff(want, doc.Tokens[5].Contrast); diff != "" {
		t.Errorf("step 6 contrast mismatch (-want +got):\n%s", diff)
	}
}
