//go:build cgo && !noggwave

// ABOUTME: cgo engine backed by libggwave
// ABOUTME: Maps codec parameters onto ggwave instances and its encode/ndecode calls
package ggwave

/*
#cgo LDFLAGS: -lggwave -lstdc++ -lm
#include <stdlib.h>
#include <ggwave/ggwave.h>
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/harperreed/gibberlink-go/pkg/audio"
	"github.com/harperreed/gibberlink-go/pkg/codec"
)

const (
	// initialPayloadCap is the first ndecode buffer; it doubles up to maxPayloadCap
	initialPayloadCap = 256
	maxPayloadCap     = 64 * 1024
)

// Available reports whether the real engine was compiled in
const Available = true

var setupOnce sync.Once

// Engine is the libggwave-backed codec.Engine
type Engine struct{}

// New returns the ggwave engine
func New() *Engine {
	setupOnce.Do(func() {
		// Silence the library's stderr chatter
		C.ggwave_setLogFile(nil)
		// Dual-tone and multi-tone receivers are off by default
		for _, p := range codec.Protocols() {
			C.ggwave_rxToggleProtocol(C.ggwave_ProtocolId(p.ID()), 1)
		}
	})
	return &Engine{}
}

// DefaultParameters returns ggwave's defaults
func (e *Engine) DefaultParameters() codec.Parameters {
	p := C.ggwave_getDefaultParameters()
	return codec.Parameters{
		PayloadLength:        int(p.payloadLength),
		SampleRateInp:        float32(p.sampleRateInp),
		SampleRateOut:        float32(p.sampleRateOut),
		SampleRate:           float32(p.sampleRate),
		SamplesPerFrame:      int(p.samplesPerFrame),
		SoundMarkerThreshold: float32(p.soundMarkerThreshold),
		SampleFormatInp:      encodingFor(p.sampleFormatInp),
		SampleFormatOut:      encodingFor(p.sampleFormatOut),
		Mode:                 codec.OperatingMode(p.operatingMode),
	}
}

// Open creates a ggwave instance
func (e *Engine) Open(params codec.Parameters) (codec.Instance, error) {
	cp, err := toC(params)
	if err != nil {
		return nil, err
	}
	h := C.ggwave_init(cp)
	if h < 0 {
		return nil, fmt.Errorf("ggwave_init failed (%d)", int(h))
	}
	return &instance{handle: h, params: cp}, nil
}

type instance struct {
	handle C.ggwave_Instance
	params C.ggwave_Parameters
}

func (i *instance) Encode(payload []byte, protocol codec.ProtocolID, volume int) ([]byte, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	src := unsafe.Pointer(&payload[0])

	size := C.ggwave_encode(i.handle, src, C.int(len(payload)),
		C.ggwave_ProtocolId(protocol), C.int(volume), nil, 1)
	if size <= 0 {
		return nil, fmt.Errorf("ggwave_encode size query failed (%d)", int(size))
	}

	out := make([]byte, int(size))
	n := C.ggwave_encode(i.handle, src, C.int(len(payload)),
		C.ggwave_ProtocolId(protocol), C.int(volume), unsafe.Pointer(&out[0]), 0)
	if n <= 0 {
		return nil, fmt.Errorf("ggwave_encode failed (%d)", int(n))
	}
	if int(n) > len(out) {
		return nil, fmt.Errorf("ggwave_encode wrote %d bytes into a %d-byte buffer", int(n), len(out))
	}
	return out[:int(n)], nil
}

// Decode feeds the waveform to ndecode. ndecode consumes the received
// message even when the output buffer is too small, so each retry runs on
// a fresh instance.
func (i *instance) Decode(waveform []byte) ([]byte, error) {
	if len(waveform) == 0 {
		return nil, nil
	}
	src := unsafe.Pointer(&waveform[0])

	for capacity := initialPayloadCap; capacity <= maxPayloadCap; capacity *= 2 {
		out := make([]byte, capacity)
		n := int(C.ggwave_ndecode(i.handle, src, C.int(len(waveform)),
			unsafe.Pointer(&out[0]), C.int(capacity)))

		switch {
		case n == -2:
			if err := i.reset(); err != nil {
				return nil, err
			}
		case n < 0:
			// A marker was heard but the frame failed error correction
			return nil, nil
		case n == 0:
			return nil, nil
		default:
			return out[:n], nil
		}
	}
	return nil, fmt.Errorf("decoded payload larger than %d bytes", maxPayloadCap)
}

func (i *instance) reset() error {
	C.ggwave_free(i.handle)
	h := C.ggwave_init(i.params)
	if h < 0 {
		i.handle = -1
		return fmt.Errorf("ggwave_init failed (%d)", int(h))
	}
	i.handle = h
	return nil
}

func (i *instance) Close() {
	if i.handle >= 0 {
		C.ggwave_free(i.handle)
		i.handle = -1
	}
}

func toC(params codec.Parameters) (C.ggwave_Parameters, error) {
	p := C.ggwave_getDefaultParameters()
	p.payloadLength = C.int(params.PayloadLength)
	p.sampleRateInp = C.float(params.SampleRateInp)
	p.sampleRateOut = C.float(params.SampleRateOut)
	p.sampleRate = C.float(params.SampleRate)
	p.samplesPerFrame = C.int(params.SamplesPerFrame)
	p.soundMarkerThreshold = C.float(params.SoundMarkerThreshold)
	p.operatingMode = C.int(params.Mode)

	inp, err := sampleFormat(params.SampleFormatInp)
	if err != nil {
		return p, err
	}
	out, err := sampleFormat(params.SampleFormatOut)
	if err != nil {
		return p, err
	}
	p.sampleFormatInp = inp
	p.sampleFormatOut = out
	return p, nil
}

func sampleFormat(enc audio.Encoding) (C.ggwave_SampleFormat, error) {
	switch enc {
	case audio.EncodingPCM8:
		return C.GGWAVE_SAMPLE_FORMAT_U8, nil
	case audio.EncodingPCM16:
		return C.GGWAVE_SAMPLE_FORMAT_I16, nil
	case audio.EncodingFloat32:
		return C.GGWAVE_SAMPLE_FORMAT_F32, nil
	default:
		return 0, fmt.Errorf("ggwave has no sample format for encoding %q", enc)
	}
}

func encodingFor(f C.ggwave_SampleFormat) audio.Encoding {
	switch f {
	case C.GGWAVE_SAMPLE_FORMAT_U8:
		return audio.EncodingPCM8
	case C.GGWAVE_SAMPLE_FORMAT_I16:
		return audio.EncodingPCM16
	case C.GGWAVE_SAMPLE_FORMAT_F32:
		return audio.EncodingFloat32
	default:
		return ""
	}
}
