// internal/commands/root.go
package weightgen

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/benchkit/weightgen/internal/appconfig"
	"github.com/benchkit/weightgen/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "weightgen",
	Short: "weightgen — turn raw benchmark results into weight files and reports",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		if !cmd.Flags().Changed("debug") {
			_ = cmd.Flags().Set("debug", strconv.FormatBool(viper.GetBool("debug")))
		}
		for _, name := range []string{"input", "storage-info", "out", "template", "header", "analysis", "logFile"} {
			if !cmd.Flags().Changed(name) {
				if val := viper.GetString(flagConfigKey(name)); val != "" {
					_ = cmd.Flags().Set(name, val)
				}
			}
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// flagConfigKey maps a kebab-case flag name to its config file key.
func flagConfigKey(flag string) string {
	switch flag {
	case "storage-info":
		return "storageInfo"
	case "out":
		return "output"
	}
	return flag
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.json", "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("input", "", "path to the raw benchmark result JSON")
	rootCmd.PersistentFlags().String("storage-info", "", "optional YAML file describing pallet storage items")
	rootCmd.PersistentFlags().String("out", "", "output directory, or a single output file")
	rootCmd.PersistentFlags().String("template", "", "custom artifact template (defaults built in)")
	rootCmd.PersistentFlags().String("header", "", "file prepended verbatim to every artifact")
	rootCmd.PersistentFlags().String("analysis", "", "fitting strategy: median-slopes, min-squares or max")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("input", rootCmd.PersistentFlags().Lookup("input"))
	_ = viper.BindPFlag("storageInfo", rootCmd.PersistentFlags().Lookup("storage-info"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("out"))
	_ = viper.BindPFlag("template", rootCmd.PersistentFlags().Lookup("template"))
	_ = viper.BindPFlag("header", rootCmd.PersistentFlags().Lookup("header"))
	_ = viper.BindPFlag("analysis", rootCmd.PersistentFlags().Lookup("analysis"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config file. A missing file is fine,
// flags alone can drive a run.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
