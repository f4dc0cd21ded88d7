package digest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Write stores the digest for the given UTC calendar day under dir,
// creating the directory if needed. Re-running on the same day
// overwrites that day's file. Returns the written path.
func Write(dir string, date time.Time, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create digests directory: %w", err)
	}

	path := filepath.Join(dir, date.UTC().Format(dateLayout)+".md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // digest is world-readable output
		return "", fmt.Errorf("write digest: %w", err)
	}
	return path, nil
}
