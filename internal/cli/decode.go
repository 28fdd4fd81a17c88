// ABOUTME: decode subcommand
// ABOUTME: Recovers text from a WAV file
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode FILE",
	Short: "Decode text from a WAV file",
	Long: `Decode an audio-modem transmission from a WAV file. Prints the text,
0x-prefixed hex when the payload is not UTF-8, or "no payload detected".`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	res, err := newPipeline(0, "").Decode(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if !res.Found {
		fmt.Fprintln(cmd.OutOrStdout(), "no payload detected")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Text())
	return nil
}
