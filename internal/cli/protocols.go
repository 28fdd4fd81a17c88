// ABOUTME: protocols subcommand
// ABOUTME: Lists every protocol selector with its engine identifier
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/gibberlink-go/pkg/codec"
)

var protocolsCmd = &cobra.Command{
	Use:   "protocols",
	Short: "List available protocols",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, p := range codec.Protocols() {
			marker := ""
			if p == codec.DefaultProtocol {
				marker = "  (default)"
			}
			fmt.Fprintf(out, "%2d  %-20s%s\n", p.ID(), p, marker)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Aliases: dt = dual-tone, mt = multi-tone; speed defaults to fast.")
	},
}

func init() {
	rootCmd.AddCommand(protocolsCmd)
}
