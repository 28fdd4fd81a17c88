// ABOUTME: play subcommand
// ABOUTME: Plays an existing WAV file through the playback dispatcher
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harperreed/gibberlink-go/pkg/audio/wav"
)

var playCmd = &cobra.Command{
	Use:   "play FILE",
	Short: "Play a WAV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return &wav.IOError{Op: "stat", Path: path, Err: err}
	}

	res, err := newPlayer(cfg.PlaybackOptions()).Play(cmd.Context(), path)
	if err != nil {
		return err
	}
	if err := interrupted(cmd); err != nil {
		return err
	}
	if res.Err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s: %v\n", res.Player, res.Err)
	}
	return nil
}
