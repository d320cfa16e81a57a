package config

import (
	"os"
	"path/filepath"
)

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("FOLIO_RUNTIME_PATH"))
}

// resolveRuntimePath places relative paths under the home directory.
func resolveRuntimePath(path string) string {
	if path == "" {
		path = ".folio"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
