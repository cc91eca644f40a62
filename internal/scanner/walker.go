package scanner

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// SupportedExtensions is the fixed set of analyzable file extensions.
var SupportedExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
}

// IgnoredDirs are directory names never descended into.
var IgnoredDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	".next":        true,
	"coverage":     true,
}

// DefaultMaxFileSize is the size above which files are skipped, not
// truncated.
const DefaultMaxFileSize = 5 * 1024 * 1024 // 5 MiB

// MaxFileSize returns the configured file size limit.
// Priority: $CODEGRAPH_MAX_FILE_SIZE (bytes) -> DefaultMaxFileSize.
func MaxFileSize() int64 {
	if v := os.Getenv("CODEGRAPH_MAX_FILE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
		log.Printf("Warning: ignoring invalid CODEGRAPH_MAX_FILE_SIZE=%q", v)
	}
	return DefaultMaxFileSize
}

// Walk discovers analyzable source files under root, returning paths
// relative to root in slash form. It skips the fixed ignored directories,
// anything excluded by the project's root .gitignore, unsupported
// extensions, and files larger than maxSize (skipped with a warning).
func Walk(root string, maxSize int64) ([]string, error) {
	matcher, _ := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("Warning: skipping unreadable path %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if IgnoredDirs[d.Name()] || (matcher != nil && matcher.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !SupportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		if info.Size() > maxSize {
			log.Printf("Warning: skipping oversized file %s (%d bytes > %d)", rel, info.Size(), maxSize)
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
