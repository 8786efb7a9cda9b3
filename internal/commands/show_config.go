// internal/commands/show_config.go
package weightgen

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

// showConfigCmd dumps the fully resolved configuration, after the
// config file and flags have been merged.
var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Print the resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := pp.Println(GetConfig())
		return err
	},
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}
