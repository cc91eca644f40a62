package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ProjectHash creates a deterministic hash for a project root path. Cache
// entries are keyed by this hash of the path string, not of the project's
// contents, so an entry can go stale after source edits until a forced
// rebuild.
func ProjectHash(projectPath string) string {
	hash := sha256.Sum256([]byte(projectPath))
	return hex.EncodeToString(hash[:])
}
