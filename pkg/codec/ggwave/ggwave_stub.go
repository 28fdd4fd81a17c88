//go:build !cgo || noggwave

// ABOUTME: ggwave stub when the library is not compiled in
// ABOUTME: Open always fails so callers surface a codec init error
package ggwave

import (
	"errors"

	"github.com/harperreed/gibberlink-go/pkg/audio"
	"github.com/harperreed/gibberlink-go/pkg/codec"
)

// Available reports whether the real engine was compiled in
const Available = false

// ErrUnavailable is returned by Open in builds without libggwave
var ErrUnavailable = errors.New("ggwave not compiled in (build with cgo and without the noggwave tag)")

// Engine is the placeholder engine
type Engine struct{}

// New returns the placeholder engine
func New() *Engine {
	return &Engine{}
}

// DefaultParameters mirrors ggwave's documented defaults
func (e *Engine) DefaultParameters() codec.Parameters {
	return codec.Parameters{
		PayloadLength:        -1,
		SampleRateInp:        audio.DefaultSampleRate,
		SampleRateOut:        audio.DefaultSampleRate,
		SampleRate:           audio.DefaultSampleRate,
		SamplesPerFrame:      1024,
		SoundMarkerThreshold: 3.0,
		SampleFormatInp:      audio.EncodingFloat32,
		SampleFormatOut:      audio.EncodingPCM16,
		Mode:                 codec.ModeRX | codec.ModeTX,
	}
}

// Open always fails
func (e *Engine) Open(params codec.Parameters) (codec.Instance, error) {
	return nil, ErrUnavailable
}
