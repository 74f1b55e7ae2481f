// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fintools/bankfeed/internal/config"
	"fintools/bankfeed/internal/logging"
)

// CommonFlags are the flags shared by the conversion commands.
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration.
	Cfg *config.Config

	// SharedFlags are accessible to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "bankfeed",
		Short: "A CLI tool to normalize bank CSV exports and statement text into transactions.",
		Long: `bankfeed converts bank CSV exports and extracted statement text into a
normalized transaction CSV, and categorizes transactions with automation rules.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to bankfeed!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Warnf("Failed to load configuration, using defaults: %v", err)
				return
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)
		},
	}
)

// Init registers the persistent flags shared by all commands.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}

// GetLogger adapts the shared logrus instance to the internal Logger
// interface used by the parsers.
func GetLogger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// GetConfig returns the loaded configuration, falling back to defaults when
// PersistentPreRun could not load one.
func GetConfig() *config.Config {
	if Cfg != nil {
		return Cfg
	}
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	return cfg
}
