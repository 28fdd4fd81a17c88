// ABOUTME: Encode and decode pipelines
// ABOUTME: Wires the codec binding, WAV container and playback dispatcher together
package pipeline

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"time"
	"unicode/utf8"

	"github.com/harperreed/gibberlink-go/pkg/audio"
	"github.com/harperreed/gibberlink-go/pkg/audio/wav"
	"github.com/harperreed/gibberlink-go/pkg/codec"
	"github.com/harperreed/gibberlink-go/pkg/playback"
)

// ErrEmptyText is returned when there is nothing to encode
var ErrEmptyText = errors.New("no text to encode")

// Codec converts text to waveforms and back
type Codec interface {
	Encode(text string, protocol codec.Protocol, volume int) (audio.Buffer, error)
	Decode(buf audio.Buffer) (payload []byte, found bool, err error)
}

// Player plays a container file
type Player interface {
	Play(ctx context.Context, path string) (playback.Result, error)
}

// EncodeRequest describes one encode
type EncodeRequest struct {
	Text     string
	Protocol string
	Volume   int
	Out      string
	Play     bool
}

// EncodeResult describes the file written and any playback
type EncodeResult struct {
	Path     string
	Size     int64
	Protocol codec.Protocol
	Format   audio.Format
	Samples  int
	Duration time.Duration
	Played   bool
	Playback playback.Result
}

// DecodeResult holds the recovered payload, if any
type DecodeResult struct {
	Path    string
	Format  audio.Format
	Samples int
	Payload []byte
	Found   bool
}

// Text returns the payload as text, or "0x" followed by lowercase hex
// when it is not valid UTF-8
func (r DecodeResult) Text() string {
	if utf8.Valid(r.Payload) {
		return string(r.Payload)
	}
	return "0x" + hex.EncodeToString(r.Payload)
}

// Pipeline runs encode and decode operations. It holds no state between calls.
type Pipeline struct {
	codec  Codec
	player Player
}

// New creates a pipeline. player may be nil when playback is never requested.
func New(c Codec, player Player) *Pipeline {
	return &Pipeline{codec: c, player: player}
}

// Encode validates req, renders the waveform, writes it to req.Out and
// optionally plays it. A playback error is returned together with a
// populated result; the written file is kept.
func (p *Pipeline) Encode(ctx context.Context, req EncodeRequest) (EncodeResult, error) {
	if req.Text == "" {
		return EncodeResult{}, ErrEmptyText
	}
	if err := codec.ValidateVolume(req.Volume); err != nil {
		return EncodeResult{}, err
	}
	protocol, err := codec.ParseProtocol(req.Protocol)
	if err != nil {
		return EncodeResult{}, err
	}

	buf, err := p.codec.Encode(req.Text, protocol, req.Volume)
	if err != nil {
		return EncodeResult{}, err
	}

	if err := wav.Write(req.Out, buf); err != nil {
		return EncodeResult{}, err
	}

	info, err := os.Stat(req.Out)
	if err != nil {
		return EncodeResult{}, &wav.IOError{Op: "stat", Path: req.Out, Err: err}
	}

	result := EncodeResult{
		Path:     req.Out,
		Size:     info.Size(),
		Protocol: protocol,
		Format:   buf.Format,
		Samples:  buf.Len(),
		Duration: buf.Duration(),
	}

	if !req.Play {
		return result, nil
	}

	res, err := p.Play(ctx, req.Out)
	if err != nil {
		return result, err
	}
	result.Played = true
	result.Playback = res
	return result, nil
}

// Decode reads path and scans it for a payload. A file without a payload
// yields Found == false and no error.
func (p *Pipeline) Decode(ctx context.Context, path string) (DecodeResult, error) {
	if err := ctx.Err(); err != nil {
		return DecodeResult{}, err
	}

	buf, err := wav.Read(path)
	if err != nil {
		return DecodeResult{}, err
	}

	payload, found, err := p.codec.Decode(buf)
	if err != nil {
		return DecodeResult{}, fmt.Errorf("%s: %w", path, err)
	}

	if !found {
		log.Printf("No payload detected in %s", path)
	}
	return DecodeResult{
		Path:    path,
		Format:  buf.Format,
		Samples: buf.Len(),
		Payload: payload,
		Found:   found,
	}, nil
}

// Play hands path to the player
func (p *Pipeline) Play(ctx context.Context, path string) (playback.Result, error) {
	if p.player == nil {
		return playback.Result{}, &playback.NoPlayerAvailableError{}
	}
	return p.player.Play(ctx, path)
}
