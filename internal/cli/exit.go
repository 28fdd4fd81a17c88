// ABOUTME: Exit code mapping
// ABOUTME: Translates typed pipeline errors into process exit codes
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/gibberlink-go/internal/pipeline"
	"github.com/harperreed/gibberlink-go/pkg/audio/wav"
	"github.com/harperreed/gibberlink-go/pkg/codec"
	"github.com/harperreed/gibberlink-go/pkg/playback"
)

// Exit codes
const (
	ExitOK        = 0
	ExitInput     = 1
	ExitCodecInit = 2
	ExitEncode    = 3
	ExitContainer = 5
	ExitDecode    = 6
	ExitNoPlayer  = 7

	// ExitInterrupted follows the shell convention of 128+SIGINT
	ExitInterrupted = 130
)

// inputError marks bad flags, arguments or configuration
type inputError struct {
	err error
}

func (e inputError) Error() string { return e.err.Error() }
func (e inputError) Unwrap() error { return e.err }

// ExitCode maps err to the process exit code
func ExitCode(err error) int {
	var (
		input    inputError
		protocol *codec.UnknownProtocolError
		volume   *codec.VolumeRangeError
		initErr  *codec.InitError
		encode   *codec.EncodeError
		decode   *codec.DecodeError
		ioErr    *wav.IOError
		format   *wav.UnsupportedFormatError
		corrupt  *wav.CorruptFileError
		noPlayer *playback.NoPlayerAvailableError
	)

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.As(err, &input), errors.As(err, &protocol), errors.As(err, &volume),
		errors.Is(err, pipeline.ErrEmptyText):
		return ExitInput
	case errors.As(err, &initErr):
		return ExitCodecInit
	case errors.As(err, &encode):
		return ExitEncode
	case errors.As(err, &ioErr):
		return ExitContainer
	case errors.As(err, &decode), errors.As(err, &format), errors.As(err, &corrupt):
		return ExitDecode
	case errors.As(err, &noPlayer):
		return ExitNoPlayer
	default:
		return ExitInput
	}
}

// interrupted returns an error once the command's context was cancelled.
// A player killed by cancellation still counts as launched, so the
// dispatcher reports success.
func interrupted(cmd *cobra.Command) error {
	if err := cmd.Context().Err(); err != nil {
		return fmt.Errorf("interrupted: %w", err)
	}
	return nil
}
