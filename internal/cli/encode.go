// ABOUTME: encode subcommand
// ABOUTME: Turns text from a flag or stdin into a WAV file and plays it
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/gibberlink-go/internal/pipeline"
	"github.com/harperreed/gibberlink-go/pkg/audio"
	"github.com/harperreed/gibberlink-go/pkg/codec"
)

var encodeFlags struct {
	text       string
	protocol   string
	volume     int
	out        string
	play       bool
	noPlay     bool
	encoding   string
	sampleRate int
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode text into a WAV file",
	Long: `Encode text into an audio-modem waveform and write it as a WAV file.
Text comes from --text or, when unset, from standard input.`,
	Example: `  gibberlink encode --text "hello" --protocol ultrasound:fastest
  echo "hello" | gibberlink encode --out hello.wav --no-play`,
	Args: cobra.NoArgs,
	RunE: runEncode,
}

func init() {
	f := encodeCmd.Flags()
	f.StringVarP(&encodeFlags.text, "text", "t", "", "text to encode (default: read stdin)")
	f.StringVarP(&encodeFlags.protocol, "protocol", "p", "", "protocol <band>[:<speed>] (default from config: audible:fast)")
	f.IntVar(&encodeFlags.volume, "volume", 0, "volume 0-100 (default from config: 25)")
	f.StringVarP(&encodeFlags.out, "out", "o", "", "output WAV path (default from config: gibberlink.wav)")
	f.BoolVar(&encodeFlags.play, "play", true, "play the file after writing")
	f.BoolVar(&encodeFlags.noPlay, "no-play", false, "do not play the file")
	f.StringVar(&encodeFlags.encoding, "encoding", "", "sample encoding: pcm8, pcm16 or float32")
	f.IntVar(&encodeFlags.sampleRate, "sample-rate", 0, "sample rate in Hz")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	req, err := encodeRequest(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("encoding") {
		if _, err := audio.ParseEncoding(encodeFlags.encoding); err != nil {
			return inputError{err}
		}
	}
	if cmd.Flags().Changed("sample-rate") {
		rate := encodeFlags.sampleRate
		if rate < codec.MinSampleRate || rate > codec.MaxSampleRate {
			return inputError{fmt.Errorf("sample rate must be between %d and %d Hz, got %d",
				codec.MinSampleRate, codec.MaxSampleRate, rate)}
		}
	}

	p := newPipeline(encodeFlags.sampleRate, encodeFlags.encoding)
	res, err := p.Encode(cmd.Context(), req)
	if res.Path != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", res.Size, res.Path)
	}
	if err != nil {
		return err
	}
	if err := interrupted(cmd); err != nil {
		return err
	}
	if res.Played && res.Playback.Err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s: %v\n", res.Playback.Player, res.Playback.Err)
	}
	return nil
}

// encodeRequest merges flags over configuration
func encodeRequest(cmd *cobra.Command) (pipeline.EncodeRequest, error) {
	req := pipeline.EncodeRequest{
		Protocol: cfg.Encode.Protocol,
		Volume:   cfg.Encode.Volume,
		Out:      cfg.Encode.Out,
		Play:     cfg.Encode.Play,
	}

	flags := cmd.Flags()
	if flags.Changed("protocol") {
		req.Protocol = encodeFlags.protocol
	}
	if flags.Changed("volume") {
		req.Volume = encodeFlags.volume
	}
	if flags.Changed("out") {
		req.Out = encodeFlags.out
	}
	if flags.Changed("play") {
		req.Play = encodeFlags.play
	}
	if flags.Changed("no-play") && encodeFlags.noPlay {
		req.Play = false
	}

	text := encodeFlags.text
	if !flags.Changed("text") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return req, inputError{fmt.Errorf("reading stdin: %w", err)}
		}
		text = string(data)
	}
	req.Text = strings.TrimRight(text, " \t\r\n")
	if req.Text == "" {
		return req, inputError{pipeline.ErrEmptyText}
	}
	return req, nil
}
