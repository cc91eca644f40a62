package util

import (
	"os"
	"path/filepath"
)

// FindGitRoot walks upward from dir (the working directory when dir is
// empty) looking for a .git entry. When none is found it falls back to
// the starting directory, so analysis still has a usable project root.
func FindGitRoot(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = cwd
	}

	start := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return start, nil
		}
		dir = parent
	}
}
