package template

import (
	"embed"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

//go:embed testdata/*.tmpl
var testEmbedFS embed.FS

func newTestLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	base := t.TempDir()
	return New("testplugin", testEmbedFS).WithCustomBase(base), base
}

func TestLoader_Load(t *testing.T) {
	loader, base := newTestLoader(t)

	t.Run("loads embedded template when no custom exists", func(t *testing.T) {
		content, fromCustom, err := loader.Load("testdata/test.tmpl")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fromCustom {
			t.Error("expected embedded template, got custom")
		}
		if len(content) == 0 {
			t.Error("expected content, got empty")
		}
	})

	t.Run("loads custom template when it exists", func(t *testing.T) {
		customContent := []byte("# This is a custom template\n")
		customPath := filepath.Join(base, "testplugin", "testdata", "test.tmpl")
		if err := os.MkdirAll(filepath.Dir(customPath), 0o755); err != nil {
			t.Fatalf("failed to create custom template dir: %v", err)
		}
		if err := os.WriteFile(customPath, customContent, 0o644); err != nil {
			t.Fatalf("failed to write custom template: %v", err)
		}

		content, fromCustom, err := loader.Load("testdata/test.tmpl")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !fromCustom {
			t.Error("expected custom template, got embedded")
		}
		if string(content) != string(customContent) {
			t.Errorf("expected custom content %q, got %q", customContent, content)
		}
	})

	t.Run("returns error for non-existent template", func(t *testing.T) {
		if _, _, err := loader.Load("nonexistent.tmpl"); err == nil {
			t.Error("expected error for non-existent template")
		}
	})
}

func TestLoader_Paths(t *testing.T) {
	loader := New("css", testEmbedFS).WithCustomBase("/home/user/.config/contrastcraft/templates")

	if got, want := loader.CustomPath("tokens.css.tmpl"), filepath.Join("/home/user/.config/contrastcraft/templates", "css", "tokens.css.tmpl"); got != want {
		t.Errorf("CustomPath() = %s, want %s", got, want)
	}
	if got, want := loader.CustomDir(), filepath.Join("/home/user/.config/contrastcraft/templates", "css"); got != want {
		t.Errorf("CustomDir() = %s, want %s", got, want)
	}
}

func TestLoader_ListEmbeddedTemplates(t *testing.T) {
	loader, _ := newTestLoader(t)

	templates, err := loader.ListEmbeddedTemplates()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %v", templates)
	}
}

func TestLoader_DumpTemplate(t *testing.T) {
	loader, _ := newTestLoader(t)

	path, err := loader.DumpTemplate("testdata/test.tmpl", false)
	if err != nil {
		t.Fatalf("DumpTemplate() error = %v", err)
	}
	if !loader.HasCustomTemplate("testdata/test.tmpl") {
		t.Errorf("expected custom template at %s", path)
	}

	if _, err := loader.DumpTemplate("testdata/test.tmpl", false); !errors.Is(err, ErrTemplateExists) {
		t.Errorf("second DumpTemplate() error = %v, want ErrTemplateExists", err)
	}
	if _, err := loader.DumpTemplate("testdata/test.tmpl", true); err != nil {
		t.Errorf("forced DumpTemplate() error = %v", err)
	}
	if _, err := loader.DumpTemplate("missing.tmpl", true); err == nil {
		t.Error("expected error for missing embedded template")
	}
}

func TestLoader_DumpAllTemplates(t *testing.T) {
	loader, _ := newTestLoader(t)

	if _, err := loader.DumpTemplate("testdata/test.tmpl", false); err != nil {
		t.Fatal(err)
	}

	dumped, err := loader.DumpAllTemplates(false)
	if !errors.Is(err, ErrTemplateExists) {
		t.Errorf("DumpAllTemplates() error = %v, want ErrTemplateExists for the skipped file", err)
	}
	if len(dumped) != 1 || filepath.Base(dumped[0]) != "other.tmpl" {
		t.Errorf("DumpAllTemplates() dumped = %v", dumped)
	}

	dumped, err = loader.DumpAllTemplates(true)
	if err != nil || len(dumped) != 2 {
		t.Errorf("forced DumpAllTemplates() = %v, %v", dumped, err)
	}
}

func TestLoader_GetInfo(t *testing.T) {
	loader, _ := newTestLoader(t)

	info := loader.GetInfo("testdata/test.tmpl")
	if !info.EmbeddedExists || info.CustomExists {
		t.Errorf("GetInfo() = %+v", info)
	}

	info = loader.GetInfo("missing.tmpl")
	if info.EmbeddedExists {
		t.Error("missing template should not exist")
	}
}
