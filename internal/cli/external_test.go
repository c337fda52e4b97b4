package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const externalScript = `#!/bin/sh
case "$1" in
--plugin-info)
	echo '{"name":"figma","type":"output","version":"2.1.0","protocol_version":"0.1.0","plugin_protocol":"json-stdio","description":"Figma variables"}'
	exit 0
	;;
--pre-execute | --post-execute)
	exit 0
	;;
esac

input=$(cat)
case "$input" in
*'"team":"web"'*) ;;
*)
	echo "missing team arg" >&2
	exit 2
	;;
esac
case "$input" in
*'"collection":"Accent"'*) ;;
*)
	echo "missing collection arg" >&2
	exit 2
	;;
esac

printf '%s\n' '{"files":{"brand.figma.json":"{\"ok\":true}"}}'
`

// writeExternalConfig writes an executable exporter and a config enabling it.
func writeExternalConfig(t *testing.T) (cfgPath, outDir string) {
	t.Helper()
	dir := t.TempDir()

	script := filepath.Join(dir, "figma-export")
	if err := os.WriteFile(script, []byte(externalScript), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	outDir = filepath.Join(dir, "out")
	cfgPath = filepath.Join(dir, "contrastcraft.yaml")
	cfg := `name: brand
outputs: [figma]
output_dir: ` + outDir + `
plugins:
  enabled: [figma, css]
  external:
    - name: figma
      path: ` + script + `
      args:
        team: web
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return cfgPath, outDir
}

func runWithConfig(t *testing.T, cfgPath string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(noEnv)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgPath, "--no-color"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerateExternalPlugin(t *testing.T) {
	cfgPath, outDir := writeExternalConfig(t)

	_, stderr, err := runWithConfig(t, cfgPath, "generate", "#6366F1", "--format", "plain",
		"--plugin-args", `figma={"collection":"Accent"}`)
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, stderr)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "brand.figma.json"))
	if err != nil {
		t.Fatalf("expected external output: %v\n%s", err, stderr)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("content = %q", data)
	}
}

func TestGenerateExternalPluginMissingArgs(t *testing.T) {
	cfgPath, _ := writeExternalConfig(t)

	_, stderr, err := runWithConfig(t, cfgPath, "generate", "#6366F1", "--format", "plain")
	if err == nil {
		t.Fatal("expected the plugin to fail without --plugin-args")
	}
	if !strings.Contains(stderr, "figma failed") {
		t.Errorf("missing failure line:\n%s", stderr)
	}
}

func TestPluginsListExternal(t *testing.T) {
	cfgPath, _ := writeExternalConfig(t)

	stdout, _, err := runWithConfig(t, cfgPath, "plugins", "list")
	if err != nil {
		t.Fatalf("plugins list failed: %v", err)
	}

	var figma, json string
	for _, line := range strings.Split(stdout, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "figma":
			figma = line
		case "json":
			json = line
		}
	}

	for _, want := range []string{"external", "enabled", "2.1.0", "Figma variables"} {
		if !strings.Contains(figma, want) {
			t.Errorf("figma row %q missing %q", figma, want)
		}
	}
	if !strings.Contains(json, "disabled") {
		t.Errorf("json should be disabled by the whitelist: %q", json)
	}
}
