// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/benchkit/weightgen/internal/analysis"
	"github.com/benchkit/weightgen/internal/bench"
	"github.com/benchkit/weightgen/internal/logging"
	"github.com/benchkit/weightgen/internal/util"
)

// Version is stamped into every generated artifact.
const Version = "0.1.0"

// The error kinds a run can fail with. Callers match them with
// errors.Is to decide exit codes and messaging.
var (
	ErrConfig   = errors.New("config error")
	ErrIO       = errors.New("io error")
	ErrAnalysis = errors.New("analysis error")
	// A render failure also matches ErrIO, both mean the artifact
	// could not be produced.
	ErrRender = fmt.Errorf("render error: %w", ErrIO)
)

// Config is the per-run writer configuration, already resolved from
// flags and the config file.
type Config struct {
	TemplatePath string
	HeaderPath   string
	Analysis     string
	Mode         Mode
}

// RunMetadata records when and how a run happened, for embedding in
// artifacts. Tests pass a fixed value to keep output deterministic.
type RunMetadata struct {
	Date    string
	Version string
	Args    []string
}

// CaptureMetadata snapshots the current invocation.
func CaptureMetadata() RunMetadata {
	return RunMetadata{
		Date:    time.Now().UTC().Format("2006-01-02"),
		Version: Version,
		Args:    os.Args,
	}
}

func filterStorageInfo(infos []bench.StorageInfo, pallet string) []bench.StorageInfo {
	var matched []bench.StorageInfo
	for _, info := range infos {
		if info.Pallet == pallet {
			matched = append(matched, info)
		}
	}
	return matched
}

// Write fits every batch, renders one artifact per pallet instance and
// writes the files under outputPath. It returns the written paths in
// group order.
func Write(batches []bench.Batch, storageInfo []bench.StorageInfo, outputPath string, cfg Config, meta RunMetadata) ([]string, error) {
	sel, err := analysis.ParseSelector(cfg.Analysis)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	templateText := defaultWeightTemplate
	if cfg.Mode == ModeReport {
		templateText = defaultReportTemplate
	}
	if cfg.TemplatePath != "" {
		raw, err := os.ReadFile(cfg.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("%w: reading template %s: %v", ErrIO, cfg.TemplatePath, err)
		}
		templateText = string(raw)
	}

	var header string
	if cfg.HeaderPath != "" {
		raw, err := os.ReadFile(cfg.HeaderPath)
		if err != nil {
			return nil, fmt.Errorf("%w: reading header %s: %v", ErrIO, cfg.HeaderPath, err)
		}
		header = strings.TrimRight(string(raw), "\n")
	}

	groups, err := MapResults(batches, sel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}
	if len(groups) == 0 {
		logging.LogEvent("[WRITE] no non-empty batches, nothing to do")
		return nil, nil
	}

	keys := make([]GroupKey, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}

	// An explicit file target with several groups means each group
	// overwrites the last. Warn, but keep the final write.
	if len(groups) > 1 {
		if info, err := os.Stat(outputPath); outputPath != "" && (err != nil || !info.IsDir()) {
			logging.LogEvent("[WRITE] %d groups share the single output file %s, later groups overwrite earlier ones", len(groups), outputPath)
		}
	}

	renderer := rendererFor(cfg.Mode)

	var written []string
	for _, group := range groups {
		path := resolveOutputPath(outputPath, group.Key, keys, cfg.Mode)
		data := TemplateData{
			Args:        meta.Args,
			Date:        meta.Date,
			Version:     meta.Version,
			Pallet:      group.Key.Pallet,
			Instance:    group.Key.Instance,
			Header:      header,
			Cmd:         strings.Join(meta.Args, " "),
			StorageInfo: filterStorageInfo(storageInfo, group.Key.Pallet),
			Benchmarks:  group.Benchmarks,
		}

		rendered, err := renderer.Render(templateText, data)
		if err != nil {
			return written, fmt.Errorf("%w: group %s/%s: %v", ErrRender, group.Key.Pallet, group.Key.Instance, err)
		}

		if err := util.WriteFile(path, rendered); err != nil {
			return written, fmt.Errorf("%w: writing %s: %v", ErrIO, path, err)
		}
		logging.LogArtifact(path, len(rendered))
		written = append(written, path)
	}

	logging.LogEvent("[WRITE] generated %d artifact(s) from %d batch(es)", len(written), len(batches))
	return written, nil
}
