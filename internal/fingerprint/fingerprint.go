// Package fingerprint derives a deterministic change fingerprint for the set
// of source documents, used to decide whether a cached index is still valid.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Documents hashes each path together with its size and modification time.
// Same paths in the same state always yield the same fingerprint; any change
// to any document (content rewrite, replacement, different path) changes it.
// Fails if any document cannot be stat'd, since a fingerprint over missing
// sources would make a stale cache look valid.
func Documents(paths ...string) (string, error) {
	h := sha256.New()
	for _, p := range paths {
		clean := filepath.Clean(p)
		info, err := os.Stat(clean)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", clean, err)
		}
		fmt.Fprintf(h, "%s|%d|%d\n", clean, info.Size(), info.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
