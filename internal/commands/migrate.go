// internal/commands/migrate.go
package weightgen

import (
	"fmt"

	"github.com/benchkit/weightgen/internal/store"
	"github.com/benchkit/weightgen/internal/writer"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	migrateStoreDir  string
	migrateStoreMode string
)

// migrateCmd moves a legacy flat result store into the per-mode
// directory layout.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate a legacy result store to the per-mode layout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()
		dir := migrateStoreDir
		if dir == "" {
			dir = config.StoreDir
		}
		mode := migrateStoreMode
		if mode == "" {
			mode = config.StoreModeName()
		}
		if dir == "" {
			return fmt.Errorf("%w: no store directory, pass --store-dir or set it in the config", writer.ErrConfig)
		}

		if err := store.Migrate(dir, mode); err != nil {
			return fmt.Errorf("%w: %v", writer.ErrIO, err)
		}
		color.Green("Store %s ready under mode %s", dir, mode)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateStoreDir, "store-dir", "", "result store directory to migrate")
	migrateCmd.Flags().StringVar(&migrateStoreMode, "store-mode", "", "store layout mode (default full)")

	rootCmd.AddCommand(migrateCmd)
}
