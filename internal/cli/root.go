// ABOUTME: Root cobra command and shared setup
// ABOUTME: Loads configuration, routes logs and builds the pipeline for subcommands
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/gibberlink-go/internal/config"
	"github.com/harperreed/gibberlink-go/internal/pipeline"
	"github.com/harperreed/gibberlink-go/internal/version"
	"github.com/harperreed/gibberlink-go/pkg/audio"
	"github.com/harperreed/gibberlink-go/pkg/codec"
	"github.com/harperreed/gibberlink-go/pkg/codec/ggwave"
	"github.com/harperreed/gibberlink-go/pkg/playback"
)

var (
	cfgFile string
	logFile string
	verbose bool

	cfg     *config.Config
	logSink io.Closer
)

// Replaced in tests
var (
	newEngine = func() codec.Engine { return ggwave.New() }
	newPlayer = func(c playback.Config) pipeline.Player { return playback.NewDefault(c) }
)

var rootCmd = &cobra.Command{
	Use:   "gibberlink",
	Short: "Send text over sound",
	Long: `gibberlink encodes text into an audio-modem waveform, writes it to a WAV
file and plays it, or decodes such a file back into text.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

func init() {
	rootCmd.SetVersionTemplate(version.String() + "\n")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer teardown(rootCmd, nil)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil && ctx.Err() != nil {
		err = fmt.Errorf("interrupted: %w", ctx.Err())
	}
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return ExitCode(err)
	}
	return 0
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return inputError{err}
	}
	if cmd.Flags().Changed("log-file") {
		loaded.Logging.File = logFile
	}
	if cmd.Flags().Changed("verbose") {
		loaded.Logging.Verbose = verbose
	}
	cfg = loaded

	return setupLogging(cfg.Logging, cmd.Name() == "ui", cmd.ErrOrStderr())
}

// setupLogging sends logs to the log file, plus stderr when verbose.
// The TUI owns the terminal, so it only ever logs to the file.
func setupLogging(lc config.LoggingConfig, tui bool, stderr io.Writer) error {
	var writers []io.Writer

	if lc.File != "" {
		f, err := os.OpenFile(lc.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return inputError{fmt.Errorf("opening log file: %w", err)}
		}
		logSink = f
		writers = append(writers, f)
	}
	if lc.Verbose && !tui {
		writers = append(writers, stderr)
	}

	switch len(writers) {
	case 0:
		log.SetOutput(io.Discard)
	case 1:
		log.SetOutput(writers[0])
	default:
		log.SetOutput(io.MultiWriter(writers...))
	}
	log.Printf("Starting %s", version.String())
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if logSink != nil {
		_ = logSink.Close()
		logSink = nil
	}
}

// newPipeline builds the pipeline for the given audio format
func newPipeline(sampleRate int, encoding string) *pipeline.Pipeline {
	format := cfg.Format()
	if sampleRate != 0 {
		format.SampleRate = sampleRate
	}
	if encoding != "" {
		format.Encoding = audio.Encoding(encoding)
	}

	binding := codec.NewBinding(newEngine(), codec.Config{
		SampleRate: format.SampleRate,
		Encoding:   format.Encoding,
	})
	return pipeline.New(binding, newPlayer(cfg.PlaybackOptions()))
}
