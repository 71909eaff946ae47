// Package cmd provides CLI commands for buildmeta.
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

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "buildmeta",
	Short: "Derive build metadata for go build",
	Long: `buildmeta inspects the git repository and the Go toolchain and publishes
the build metadata of template-go: revision, branch, build date, build user,
toolchain and the feature build tags.

Typical use:
  go build -tags "$(buildmeta emit -f tags)" -ldflags "$(buildmeta emit -f ldflags)" ./cmd/template`,
	Version:       buildinfo.Get().Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
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
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error); overrides the configured level")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig loads the configuration and builds a logger writing to the
// command's stderr, so that stdout only carries emitted metadata.
func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	level := cfg.Logging.Level
	if logLevel != "" {
		if err := logging.ValidateLevel(logLevel); err != nil {
			return nil, zerolog.Nop(), err
		}
		level = logLevel
	}

	logger := logging.New(level, cfg.Logging.Format, cmd.ErrOrStderr())
	logger.Debug().
		Str("config_path", cfg.File).
		Str("log_level", level).
		Msg("configuration loaded successfully")
	return cfg, logger, nil
}
