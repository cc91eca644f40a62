package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the cache directory for serialized graphs.
// Priority: $CODEGRAPH_CACHE_DIR -> $XDG_CACHE_HOME/codegraph/graphs -> ~/.cache/codegraph/graphs
func Dir() (string, error) {
	if dir := os.Getenv("CODEGRAPH_CACHE_DIR"); dir != "" {
		return filepath.Join(dir, "graphs"), nil
	}

	if runtime.GOOS != "windows" {
		if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
			return filepath.Join(xdgCache, "codegraph", "graphs"), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if runtime.GOOS == "windows" {
		return filepath.Join(home, "AppData", "Local", "codegraph", "graphs"), nil
	}

	return filepath.Join(home, ".cache", "codegraph", "graphs"), nil
}
