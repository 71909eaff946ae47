package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"template-go/internal/buildinfo"
)

var versionFormat string

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Show the version, git revision and branch, build date and user, toolchain and enabled build features.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := buildinfo.Get()

		switch versionFormat {
		case "text":
			fmt.Fprint(cmd.OutOrStdout(), info.String())
			return nil
		case "json":
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode version info: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		default:
			return fmt.Errorf("unsupported format: %s (supported: text, json)", versionFormat)
		}
	},
}

func init() {
	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "output format (text, json)")
	rootCmd.AddCommand(versionCmd)
}

