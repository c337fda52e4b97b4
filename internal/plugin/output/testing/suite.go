// Package testing provides shared test utilities for output plugins.
package testing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/contrastcraft/internal/colour"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output"
)

// TestBase is the base colour used by CreateTestTheme.
const TestBase = "#6366F1"

// TestBasicInterface tests the basic plugin interface methods that all plugins must implement.
func TestBasicInterface(t *testing.T, p output.Plugin, expectedName string) {
	t.Run("Name", func(t *testing.T) {
		if p.Name() != expectedName {
			t.Errorf("Name() = %s, want %s", p.Name(), expectedName)
		}
	})

	t.Run("Description", func(t *testing.T) {
		if p.Description() == "" {
			t.Error("Description() should not be empty")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

// TestGeneration tests the Generate method with various scenarios.
func TestGeneration(t *testing.T, p output.Plugin, expectedFiles []string) {
	t.Run("Generate", func(t *testing.T) {
		files, err := p.Generate(CreateTestTheme(t, colour.ThemeLight))
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		if len(files) != len(expectedFiles) {
			t.Fatalf("Generate() returned %d files, want %d", len(files), len(expectedFiles))
		}
		for _, expectedFile := range expectedFiles {
			content, ok := files[expectedFile]
			if !ok {
				t.Errorf("Generate() did not return %s", expectedFile)
				continue
			}
			if len(content) == 0 {
				t.Errorf("Generate() returned empty %s", expectedFile)
			}
		}
	})

	t.Run("GenerateNilTheme", func(t *testing.T) {
		_, err := p.Generate(nil)
		if !errors.Is(err, output.ErrNilTheme) {
			t.Errorf("Generate(nil) error = %v, want ErrNilTheme", err)
		}
	})

	t.Run("GenerateWithDarkTheme", func(t *testing.T) {
		files, err := p.Generate(CreateTestTheme(t, colour.ThemeDark))
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(files) == 0 {
			t.Error("Generate() returned no files")
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		td := CreateTestTheme(t, colour.ThemeLight)
		first, err := p.Generate(td)
		if err != nil {
			t.Fatal(err)
		}
		second, err := p.Generate(td)
		if err != nil {
			t.Fatal(err)
		}
		for name, content := range first {
			if string(second[name]) != string(content) {
				t.Errorf("Generate() output for %s differs between runs", name)
			}
		}
	})
}

// TestVerbosePlugin tests verbose functionality if the plugin supports it.
func TestVerbosePlugin(t *testing.T, p any) {
	vp, ok := p.(output.VerbosePlugin)
	if !ok {
		return
	}

	t.Run("SetVerbose", func(_ *testing.T) {
		// Just test that it doesn't panic.
		vp.SetVerbose(true)
		vp.SetVerbose(false)
	})
}

// TestFlags tests that every plugin-specific flag is namespaced by the plugin name.
func TestFlags(t *testing.T, p output.Plugin, expectedFlags []string) {
	t.Run("RegisterFlags", func(t *testing.T) {
		cmd := &cobra.Command{Use: "test"}
		p.RegisterFlags(cmd)

		for _, name := range expectedFlags {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("RegisterFlags() did not register %s flag", name)
			}
		}

		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if !strings.HasPrefix(f.Name, p.Name()+".") {
				t.Errorf("flag %s is not namespaced with %s.", f.Name, p.Name())
			}
		})
	})
}

// TestPreExecuteHook tests the PreExecute hook if the plugin implements it.
func TestPreExecuteHook(t *testing.T, p any) {
	peh, ok := p.(output.PreExecuteHook)
	if !ok {
		return
	}

	t.Run("PreExecute", func(t *testing.T) {
		skip, reason, err := peh.PreExecute(context.Background())
		if err != nil {
			t.Errorf("PreExecute() unexpected error = %v", err)
		}
		if skip && reason == "" {
			t.Error("PreExecute() skipped without a reason")
		}
	})
}

// CreateTestTheme creates theme data for TestBase with the standard text colours.
func CreateTestTheme(t *testing.T, themeType colour.ThemeType) *colour.ThemeData {
	t.Helper()
	scale, err := colour.Generate(TestBase)
	if err != nil {
		t.Fatalf("Generate(%s) error = %v", TestBase, err)
	}
	opts := colour.DefaultThemeOptions()
	opts.Name = "test"
	opts.Theme = themeType
	return colour.NewThemeData(scale, opts)
}

// RunAllTests runs all standard tests for a plugin.
func RunAllTests(t *testing.T, p output.Plugin, config TestConfig) {
	TestBasicInterface(t, p, config.ExpectedName)
	TestGeneration(t, p, config.ExpectedFiles)
	TestVerbosePlugin(t, p)
	TestFlags(t, p, config.ExpectedFlags)
	TestPreExecuteHook(t, p)
}

// TestConfig holds configuration for running plugin tests.
type TestConfig struct {
	ExpectedName  string   // Plugin name
	ExpectedFiles []string // Files that Generate() should return for CreateTestTheme
	ExpectedFlags []string // Flags RegisterFlags should add
}
