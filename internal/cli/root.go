// internal/cli/root.go
package trench

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/trench/internal/appconfig"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "trench",
	Short: "trench — mission-control companion for the Trench simulation API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults)
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 2) If user did NOT set a flag, copy the config value into the flag so
		//    both pflags and viper reflect the same, final value.
		if !cmd.Flags().Changed("debug") {
			_ = cmd.Flags().Set("debug", strconv.FormatBool(viper.GetBool("debug")))
		}
		if !cmd.Flags().Changed("api-url") {
			if v := viper.GetString("apiBaseUrl"); v != "" {
				_ = cmd.Flags().Set("api-url", v)
			}
		}

		// 3) Materialize the fully merged configuration into currentConfig
		//    (flags > config > defaults). This gives other packages a stable snapshot.
		cfg, err := loadTypedConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("debug") || viper.GetBool("debug") {
			cfg.Debug = viper.GetBool("debug")
		}
		if v, _ := cmd.Flags().GetString("api-url"); v != "" {
			cfg.APIBaseURL = v
		}
		currentConfig = &cfg

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// --config (defaults to your existing path)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("api-url", "", "Trench API base URL")

	// Bind flags to Viper keys (flags override config)
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("apiBaseUrl", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config and sets safe defaults. A missing file
// is tolerated; commands that need the API fail later with a clear message.
func ensureConfigLoaded() error {
	viper.SetDefault("debug", false)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			// No file: fine, we'll use defaults/flags
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// loadTypedConfig reads the config file through the typed loader, falling
// back to defaults when the file is absent.
func loadTypedConfig() (appconfig.Config, error) {
	path := cfgFile
	if path == appconfig.DefaultConfigPath {
		path = ""
	}
	cfg, err := appconfig.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return appconfig.Config{}, nil
		}
		return appconfig.Config{}, err
	}
	return cfg, nil
}

// getConfig returns the loaded application configuration for other packages.
func getConfig() *appconfig.Config {
	if currentConfig == nil {
		return &appconfig.Config{}
	}
	return currentConfig
}

// DebugEnabled reflects the merged Viper state.
func DebugEnabled() bool { return viper.GetBool("debug") }
