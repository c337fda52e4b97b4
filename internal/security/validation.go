// Package security provides path validation for files contrastcraft writes and runs.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is returned when a path would escape its base directory.
var ErrPathTraversal = errors.New("path escapes base directory")

// ValidateFilePath validates a plugin-supplied output file name. The name must
// be relative and stay within baseDir once joined.
func ValidateFilePath(filePath, baseDir string) error {
	if filePath == "" {
		return errors.New("empty file path")
	}

	if filepath.IsAbs(filePath) || strings.HasPrefix(filePath, "/") {
		return fmt.Errorf("absolute output paths are not allowed: %s", filePath)
	}

	for _, part := range strings.FieldsFunc(filePath, isSeparator) {
		if part == ".." {
			return fmt.Errorf("%w: %s contains ..", ErrPathTraversal, filePath)
		}
	}

	cleanBase := filepath.Clean(baseDir)
	cleanFinal := filepath.Clean(filepath.Join(cleanBase, filePath))
	if cleanFinal == cleanBase {
		return fmt.Errorf("file path %q does not name a file", filePath)
	}
	if !strings.HasPrefix(cleanFinal, cleanBase+string(filepath.Separator)) && cleanBase != "." {
		return fmt.Errorf("%w: %s", ErrPathTraversal, filePath)
	}

	return nil
}

// ResolveOutputPath validates filePath and returns it joined to baseDir.
func ResolveOutputPath(baseDir, filePath string) (string, error) {
	if err := ValidateFilePath(filePath, baseDir); err != nil {
		return "", err
	}
	return filepath.Join(baseDir, filePath), nil
}

// ValidatePluginPath checks that an external plugin path is absolute and
// names a regular, executable file.
func ValidatePluginPath(pluginPath string) error {
	if pluginPath == "" {
		return errors.New("empty plugin path")
	}
	if !filepath.IsAbs(pluginPath) {
		return fmt.Errorf("plugin path must be absolute: %s", pluginPath)
	}

	info, err := os.Stat(pluginPath)
	if err != nil {
		return fmt.Errorf("plugin not found or not accessible: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("plugin path is a directory, not a file: %s", pluginPath)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("plugin path is not a regular file: %s", pluginPath)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("plugin is not executable: %s", pluginPath)
	}

	return nil
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
