// internal/writer/naming.go
package writer

import (
	"os"
	"path/filepath"

	"github.com/benchkit/weightgen/internal/util"
)

// Mode selects which artifact kind a run produces.
type Mode int

const (
	// ModeWeights emits Rust weight source files.
	ModeWeights Mode = iota
	// ModeReport emits standalone HTML reports.
	ModeReport
)

func (m Mode) extension() string {
	if m == ModeReport {
		return "html"
	}
	return "rs"
}

// resolveOutputPath decides where a group's artifact goes. When base
// is an existing directory (or empty, meaning the working directory)
// the file is named after the pallet verbatim, with the snake-cased
// instance appended when the same pallet appears under more than one
// instance in this run. Any other base is taken verbatim as the
// target file.
func resolveOutputPath(base string, key GroupKey, keys []GroupKey, mode Mode) string {
	if base != "" {
		info, err := os.Stat(base)
		if err != nil || !info.IsDir() {
			return base
		}
	}

	multiInstance := false
	for _, other := range keys {
		if other.Pallet == key.Pallet && other.Instance != key.Instance {
			multiInstance = true
			break
		}
	}

	name := key.Pallet
	if multiInstance {
		name += "_" + util.ToSnakeCase(key.Instance)
	}
	name += "." + mode.extension()

	if base == "" {
		return name
	}
	return filepath.Join(base, name)
}
