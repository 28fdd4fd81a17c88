// ABOUTME: Configuration loading for gibberlink
// ABOUTME: Layers defaults, an optional YAML file and GIBBERLINK_* env vars through viper
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/harperreed/gibberlink-go/pkg/audio"
	"github.com/harperreed/gibberlink-go/pkg/codec"
	"github.com/harperreed/gibberlink-go/pkg/playback"
)

// EnvPrefix prefixes environment overrides, e.g. GIBBERLINK_ENCODE_VOLUME
const EnvPrefix = "GIBBERLINK"

// Config holds all configuration options
type Config struct {
	Audio    AudioConfig    `mapstructure:"audio" yaml:"audio"`
	Encode   EncodeConfig   `mapstructure:"encode" yaml:"encode"`
	Playback PlaybackConfig `mapstructure:"playback" yaml:"playback"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// AudioConfig selects the waveform format produced by encode
type AudioConfig struct {
	SampleRate int    `mapstructure:"sample_rate" yaml:"sample_rate"`
	Encoding   string `mapstructure:"encoding" yaml:"encoding"`
}

// EncodeConfig holds encode defaults
type EncodeConfig struct {
	Protocol string `mapstructure:"protocol" yaml:"protocol"`
	Volume   int    `mapstructure:"volume" yaml:"volume"`
	Out      string `mapstructure:"out" yaml:"out"`
	Play     bool   `mapstructure:"play" yaml:"play"`
}

// PlaybackConfig selects playback strategies
type PlaybackConfig struct {
	Native  bool               `mapstructure:"native" yaml:"native"`
	Players []playback.Command `mapstructure:"players" yaml:"players,omitempty"`
}

// LoggingConfig controls diagnostic output
type LoggingConfig struct {
	File    string `mapstructure:"file" yaml:"file"`
	Verbose bool   `mapstructure:"verbose" yaml:"verbose"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Audio: AudioConfig{
			SampleRate: audio.DefaultSampleRate,
			Encoding:   string(audio.EncodingPCM16),
		},
		Encode: EncodeConfig{
			Protocol: codec.DefaultProtocol.String(),
			Volume:   25,
			Out:      "gibberlink.wav",
			Play:     true,
		},
		Playback: PlaybackConfig{
			Native: true,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gibberlink/config.yaml (or the OS equivalent)
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gibberlink", "config.yaml")
}

// Load reads configuration. An empty path falls back to DefaultPath,
// which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.encoding", d.Audio.Encoding)
	v.SetDefault("encode.protocol", d.Encode.Protocol)
	v.SetDefault("encode.volume", d.Encode.Volume)
	v.SetDefault("encode.out", d.Encode.Out)
	v.SetDefault("encode.play", d.Encode.Play)
	v.SetDefault("playback.native", d.Playback.Native)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.verbose", d.Logging.Verbose)
}

// Validate performs validation of every section
func (c *Config) Validate() error {
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	if err := c.Encode.Validate(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := c.Playback.Validate(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}

// Validate validates audio configuration
func (a *AudioConfig) Validate() error {
	if a.SampleRate < codec.MinSampleRate || a.SampleRate > codec.MaxSampleRate {
		return fmt.Errorf("sample_rate must be between %d and %d Hz, got %d",
			codec.MinSampleRate, codec.MaxSampleRate, a.SampleRate)
	}
	if _, err := audio.ParseEncoding(a.Encoding); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	return nil
}

// Validate validates encode configuration
func (e *EncodeConfig) Validate() error {
	if _, err := codec.ParseProtocol(e.Protocol); err != nil {
		return fmt.Errorf("protocol: %w", err)
	}
	if err := codec.ValidateVolume(e.Volume); err != nil {
		return fmt.Errorf("volume must be between %d and %d, got %d", codec.MinVolume, codec.MaxVolume, e.Volume)
	}
	if strings.TrimSpace(e.Out) == "" {
		return fmt.Errorf("out must not be empty")
	}
	return nil
}

// Validate validates playback configuration
func (p *PlaybackConfig) Validate() error {
	for i, cmd := range p.Players {
		if strings.TrimSpace(cmd.Name) == "" {
			return fmt.Errorf("players[%d]: name is required", i)
		}
	}
	return nil
}

// Format returns the audio format selected by the audio section
func (c *Config) Format() audio.Format {
	enc, _ := audio.ParseEncoding(c.Audio.Encoding)
	return audio.Mono(enc, c.Audio.SampleRate)
}

// PlaybackOptions returns the dispatcher configuration
func (c *Config) PlaybackOptions() playback.Config {
	return playback.Config{
		Native:  c.Playback.Native,
		Players: c.Playback.Players,
	}
}

// YAML renders c as a config file
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return out, nil
}
