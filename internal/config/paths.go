package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveRuntimePath resolves a runtime directory. Relative paths are taken from the
// working directory, and an empty value falls back to fallbackSubdir.
func ResolveRuntimePath(raw string, fallbackSubdir string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = strings.TrimSpace(fallbackSubdir)
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	base, err := os.Getwd()
	if err != nil || strings.TrimSpace(base) == "" {
		base = "."
	}
	return filepath.Clean(filepath.Join(base, target))
}
