// internal/commands/generate.go
package weightgen

import (
	"fmt"

	"github.com/benchkit/weightgen/internal/bench"
	"github.com/benchkit/weightgen/internal/logging"
	"github.com/benchkit/weightgen/internal/writer"
	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

// generateCmd fits cost models from raw results and writes weight
// source files.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate weight files from raw benchmark results",
	Long: `Read the raw benchmark result JSON, fit a linear cost model per
benchmark with the selected analysis strategy, and write one weight
source file per pallet instance.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runArtifacts(writer.ModeWeights)
	},
}

// runArtifacts is the shared body of generate and report.
func runArtifacts(mode writer.Mode) error {
	config := GetConfig()
	if config.Debug {
		pp.Println(config)
	}
	if config.Input == "" {
		return fmt.Errorf("%w: no input file, pass --input or set it in the config", writer.ErrConfig)
	}

	batches, err := bench.LoadBatches(config.Input)
	if err != nil {
		return fmt.Errorf("%w: %v", writer.ErrIO, err)
	}
	logging.LogEvent("[RUN] loaded %d batch(es) from %s", len(batches), config.Input)

	storageInfo, err := bench.LoadStorageInfo(config.StorageInfo)
	if err != nil {
		return fmt.Errorf("%w: %v", writer.ErrIO, err)
	}

	written, err := writer.Write(batches, storageInfo, config.Output, writer.Config{
		TemplatePath: config.Template,
		HeaderPath:   config.Header,
		Analysis:     config.AnalysisName(),
		Mode:         mode,
	}, writer.CaptureMetadata())
	if err != nil {
		return err
	}

	for _, path := range written {
		color.Green("Wrote %s", path)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
