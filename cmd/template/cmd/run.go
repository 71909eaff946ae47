package cmd

import (
	"github.com/spf13/cobra"

	"template-go/internal/buildinfo"
)

// runCmd is the placeholder for the application's command handling.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the application",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info().Str("build", buildinfo.Get().Short()).Msg("Starting template-go")
		logger.Warn().Msg("Command handling not yet implemented")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
