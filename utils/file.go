package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileExists reports whether path names an existing regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ExpandHome replaces a leading "~" with the current user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// FirstExisting returns the first candidate that is an existing file
func FirstExisting(candidates ...string) (string, bool) {
	for _, candidate := range candidates {
		if candidate != "" && FileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}
