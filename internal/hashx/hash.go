// Package hashx computes content digests in the form persisted by the
// record store.
package hashx

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// FileSHA256 returns the digest of the file at path as "sha256:<hex>".
// This exact format is stored in OptimizationRecord.SourceHash and compared
// verbatim, so it must stay stable.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	return "sha256:" + hex.EncodeToString(h.Sum(nil)), nil
}
