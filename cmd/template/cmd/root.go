// Package cmd provides CLI commands for template-go.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"template-go/internal/buildinfo"
	"template-go/internal/config"
	"template-go/internal/logging"
)

// Global flags
var (
	cfgFile  string // Config file path
	logLevel string // Log level
)

// logger is configured by the root command before any subcommand runs.
var logger = zerolog.Nop()

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "template-go",
	Short: "A template for Go command line applications",
	Long: `template-go is a command line application scaffold.

Build metadata (git revision, branch, build date, build user and toolchain)
is embedded at link time by cmd/buildmeta and reported by --version and the
version subcommand.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info().Str("version", buildinfo.Version).Msg("Starting template-go")
		logger.Warn().Msg("No command specified")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	rootCmd.Version = GetVersionInfo()
	rootCmd.SetVersionTemplate(`{{printf "%s\n%s" .Name .Version}}`)
}

// setupLogging loads the configuration and builds the logger. An explicit
// --log-level overrides the configured level.
func setupLogging(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if cmd.Flags().Changed("log-level") {
		if err := logging.ValidateLevel(logLevel); err != nil {
			return err
		}
		level = logLevel
	}

	logger = logging.New(level, cfg.Logging.Format, cmd.ErrOrStderr())
	logger.Debug().
		Str("config_path", cfg.File).
		Str("log_level", level).
		Str("log_format", cfg.Logging.Format).
		Msg("configuration loaded successfully")
	return nil
}

// GetVersionInfo returns formatted version information.
func GetVersionInfo() string {
	return buildinfo.Get().String()
}
