package net

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveClientDir locates the static client shell. An explicit path wins;
// otherwise the usual layouts relative to the working directory and the
// executable are probed.
func ResolveClientDir(configured string) (string, error) {
	if configured != "" {
		abs, err := filepath.Abs(configured)
		if err != nil {
			return "", fmt.Errorf("resolve client dir %s: %w", configured, err)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve client dir: %w", err)
	}
	if dir, ok := resolveClientDirFrom(cwd); ok {
		return dir, nil
	}
	if exePath, err := os.Executable(); err == nil {
		if dir, ok := resolveClientDirFrom(filepath.Dir(exePath)); ok {
			return dir, nil
		}
	}
	return "", fmt.Errorf("client directory not found")
}

func resolveClientDirFrom(base string) (string, bool) {
	candidates := []string{
		filepath.Join(base, "client"),
		filepath.Join(base, "..", "client"),
	}
	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err != nil || !info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		return abs, true
	}
	return "", false
}
