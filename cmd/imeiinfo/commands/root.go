// Package commands implements the imeiinfo command line interface.
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lthoerner/imei-info/internal/config"
	"github.com/lthoerner/imei-info/internal/logger"
)

const defaultEnvFile = ".env"

var (
	configFile string
	envFile    string
	apiKey     string

	cfg    *config.Config
	appLog logger.AppLogger
)

// Execute runs the root command with the process arguments.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "imeiinfo",
		Short:        "Validate IMEI/TAC numbers and look devices up on IMEI.info",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnvFile(envFile); err != nil {
				return err
			}

			loaded, err := config.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if apiKey != "" {
				loaded.IMEIInfo.APIKey = apiKey
			}

			l, err := logger.NewAppLogger(loaded.Logger, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			cfg = loaded
			appLog = l
			appLog.Debug("Configuration loaded", "config_file", configFile, "cache_backend", string(cfg.Cache.Backend))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "path to YAML configuration file (default config.yml if present)")
	root.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file to load before reading configuration")
	root.PersistentFlags().StringVar(&apiKey, "api-key", "", "IMEI.info API key (overrides API_KEY)")

	root.AddCommand(imeiCmd(), tacCmd(), validateCmd(), synthesizeCmd(), serveCmd())
	return root
}

// loadEnvFile loads path into the environment without overriding variables that
// are already set. A missing default file is ignored.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrNotExist) && path == defaultEnvFile {
		return nil
	}
	return fmt.Errorf("failed to load env file '%s': %w", path, err)
}
