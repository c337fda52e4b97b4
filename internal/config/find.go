package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	configFilenames = []string{
		"contrastcraft.yaml",
		"contrastcraft.yml",
		"contrastcraft.toml",
		"contrastcraft.json",
	}
	userFilenames = []string{
		"config.yaml",
		"config.yml",
		"config.toml",
		"config.json",
	}
)

// Discover returns the first config file found in the working directory or
// the user config directory. No config file is not an error.
func Discover() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	userDir, _ := os.UserConfigDir()
	return Find(cwd, userDir), nil
}

// Find looks for contrastcraft.{yaml,yml,toml,json} in dir, then
// config.{yaml,yml,toml,json} under userDir/contrastcraft.
func Find(dir, userDir string) string {
	if dir = strings.TrimSpace(dir); dir != "" {
		for _, name := range configFilenames {
			candidate := filepath.Join(dir, name)
			if fileExists(candidate) {
				return candidate
			}
		}
	}
	if userDir = strings.TrimSpace(userDir); userDir != "" {
		for _, name := range userFilenames {
			candidate := filepath.Join(userDir, "contrastcraft", name)
			if fileExists(candidate) {
				return candidate
			}
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
