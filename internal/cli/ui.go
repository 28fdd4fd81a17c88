// ABOUTME: ui subcommand
// ABOUTME: Opens the terminal front-end
package cli

import (
	"github.com/spf13/cobra"

	"github.com/harperreed/gibberlink-go/internal/ui"
)

// Replaced in tests
var runUI = ui.Run

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the terminal front-end",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(newPipeline(0, ""), ui.Options{
			Protocol: cfg.Encode.Protocol,
			Volume:   cfg.Encode.Volume,
			Out:      cfg.Encode.Out,
			Play:     cfg.Encode.Play,
		})
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
