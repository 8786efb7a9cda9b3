// internal/store/store.go
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/benchkit/weightgen/internal/logging"
)

// versionMarker is present at the root of a result store written by
// older releases, before stores were split per analysis mode.
const versionMarker = "db_version"

// Migrate ensures the result store at baseDir uses the per-mode
// layout, i.e. baseDir/<mode>. A legacy flat store (detected by its
// version marker sitting directly in baseDir) is moved underneath its
// mode directory; a store already split, or split for a different
// mode, is left alone and the requested mode directory is created
// next to it.
func Migrate(baseDir, mode string) error {
	if mode == "" {
		return fmt.Errorf("migrating store %s: empty mode", baseDir)
	}
	target := filepath.Join(baseDir, mode)

	marker := filepath.Join(baseDir, versionMarker)
	if _, err := os.Stat(marker); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("migrating store %s: %w", baseDir, err)
		}
		// Nothing legacy here, just make sure the target exists.
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("migrating store %s: %w", baseDir, err)
		}
		return nil
	}

	logging.LogEvent("[STORE] migrating legacy store %s to %s", baseDir, target)

	temp := baseDir + ".migrate"
	if err := os.Rename(baseDir, temp); err != nil {
		return fmt.Errorf("migrating store %s: %w", baseDir, err)
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return fmt.Errorf("migrating store %s: %w", baseDir, err)
	}
	if err := os.Rename(temp, target); err != nil {
		return fmt.Errorf("migrating store %s: %w", baseDir, err)
	}
	return nil
}
