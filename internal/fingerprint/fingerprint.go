// Package fingerprint derives stable cache keys for analysis requests.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"selene/internal/models"
)

// fileIdentity describes the image by size and modification time rather than
// content hash, so keys stay cheap for large schematics.
func fileIdentity(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("%d_%d", info.Size(), info.ModTime().UnixNano())
}

// DatasheetHash returns a stable hash of the serialized record, or empty when
// the record is nil. Map keys serialize in sorted order, so equal records
// always hash equally.
func DatasheetHash(record *models.DatasheetRecord) string {
	if record == nil {
		return ""
	}
	data, err := json.Marshal(record)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Compute returns the cache key for one analysis request: image identity
// (path, size, mtime) combined with the analysis category and the datasheet
// hash. Changing any component produces a different key.
func Compute(imagePath, category string, record *models.DatasheetRecord) string {
	parts := []string{
		filepath.Clean(imagePath),
		fileIdentity(imagePath),
		category,
	}
	if h := DatasheetHash(record); h != "" {
		parts = append(parts, h)
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
