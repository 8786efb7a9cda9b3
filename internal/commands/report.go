// internal/commands/report.go
package weightgen

import (
	"github.com/benchkit/weightgen/internal/writer"
	"github.com/spf13/cobra"
)

// reportCmd renders the fitted models into standalone HTML pages
// instead of weight source files.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate HTML reports from raw benchmark results",
	Long: `Read the raw benchmark result JSON, fit cost models with the selected
analysis strategy, and write a self-contained HTML dashboard per
pallet instance.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runArtifacts(writer.ModeReport)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
