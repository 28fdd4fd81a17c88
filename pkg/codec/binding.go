// ABOUTME: Scoped codec binding
// ABOUTME: Wraps each engine call in open/close and maps failures to typed errors
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/harperreed/gibberlink-go/pkg/audio"
	"github.com/harperreed/gibberlink-go/pkg/audio/resample"
)

// MaxPayloadLength is the longest payload the engine frames in variable-length mode
const MaxPayloadLength = 140

// FixedFrameLength is the frame size used for fixed-length protocols. The
// first byte holds the payload length and the rest is zero padded, so those
// protocols carry at most FixedFrameLength-1 payload bytes.
const FixedFrameLength = 64

// variableLength selects the engine's marker-delimited framing
const variableLength = -1

// Sample rates the engine accepts
const (
	MinSampleRate = 1000
	MaxSampleRate = 96000
)

// Config holds binding configuration
type Config struct {
	// SampleRate of rendered waveforms (default: audio.DefaultSampleRate)
	SampleRate int

	// Encoding of rendered waveforms (default: pcm16)
	Encoding audio.Encoding

	// MaxPayload caps payload bytes (default: MaxPayloadLength)
	MaxPayload int
}

// Binding marshals text and settings into the engine and back
type Binding struct {
	engine Engine
	config Config
}

// NewBinding creates a binding over engine
func NewBinding(engine Engine, config Config) *Binding {
	if config.SampleRate == 0 {
		config.SampleRate = audio.DefaultSampleRate
	}
	if config.Encoding == "" {
		config.Encoding = audio.EncodingPCM16
	}
	if config.MaxPayload == 0 {
		config.MaxPayload = MaxPayloadLength
	}
	return &Binding{engine: engine, config: config}
}

// Format returns the format Encode produces
func (b *Binding) Format() audio.Format {
	return audio.Mono(b.config.Encoding, b.config.SampleRate)
}

// Encode renders text as a waveform
func (b *Binding) Encode(text string, protocol Protocol, volume int) (audio.Buffer, error) {
	if err := ValidateVolume(volume); err != nil {
		return audio.Buffer{}, err
	}
	format := b.Format()
	if err := format.Validate(); err != nil {
		return audio.Buffer{}, &InitError{Err: err}
	}
	if format.SampleRate < MinSampleRate || format.SampleRate > MaxSampleRate {
		return audio.Buffer{}, &InitError{Err: fmt.Errorf("sample rate %d outside [%d, %d]",
			format.SampleRate, MinSampleRate, MaxSampleRate)}
	}

	payload := []byte(text)
	limit := b.payloadLimit(protocol)
	switch {
	case len(payload) == 0:
		return audio.Buffer{}, &EncodeError{Protocol: protocol, Err: errors.New("payload is empty")}
	case len(payload) > limit:
		return audio.Buffer{}, &EncodeError{Protocol: protocol, Length: len(payload),
			Err: fmt.Errorf("payload exceeds the %d-byte maximum", limit)}
	}

	params := b.engine.DefaultParameters()
	params.Mode = ModeTX
	params.PayloadLength = variableLength
	params.SampleFormatOut = format.Encoding
	params.SampleRateOut = float32(format.SampleRate)
	params.SampleRate = float32(format.SampleRate)

	frame := payload
	if protocol.FixedLength() {
		params.PayloadLength = FixedFrameLength
		frame = packFrame(payload)
	}

	inst, err := b.engine.Open(params)
	if err != nil {
		return audio.Buffer{}, &InitError{Err: err}
	}
	defer inst.Close()

	raw, err := inst.Encode(frame, protocol.ID(), volume)
	if err != nil {
		return audio.Buffer{}, &EncodeError{Protocol: protocol, Length: len(payload), Err: err}
	}
	if len(raw) == 0 || len(raw)%format.BlockAlign() != 0 {
		return audio.Buffer{}, &EncodeError{Protocol: protocol, Length: len(payload),
			Err: fmt.Errorf("engine returned %d bytes, not whole %s samples", len(raw), format.Encoding)}
	}

	buf := audio.Buffer{Format: format, Data: raw}
	log.Printf("Encoded %d bytes with %s (id %d) at volume %d: %d samples, %v",
		len(payload), protocol, protocol.ID(), volume, buf.Len(), buf.Duration())
	return buf, nil
}

// Decode scans buf for a payload. found is false when no transmission was
// detected; that is a successful outcome, not an error.
func (b *Binding) Decode(buf audio.Buffer) (payload []byte, found bool, err error) {
	if err := buf.Format.Validate(); err != nil {
		return nil, false, &DecodeError{Err: err}
	}
	if len(buf.Data)%buf.Format.BlockAlign() != 0 {
		return nil, false, &DecodeError{Err: fmt.Errorf("buffer holds %d bytes, not whole samples", len(buf.Data))}
	}
	if len(buf.Data) == 0 {
		return nil, false, nil
	}

	if rate := buf.Format.SampleRate; rate < MinSampleRate || rate > MaxSampleRate {
		converted, err := resample.Buffer(buf, audio.DefaultSampleRate)
		if err != nil {
			return nil, false, &DecodeError{Err: err}
		}
		log.Printf("Resampled %d Hz input to %d Hz", rate, audio.DefaultSampleRate)
		buf = converted
	}

	payload, err = b.scan(buf, variableLength)
	if err != nil {
		return nil, false, err
	}
	if len(payload) == 0 {
		frame, err := b.scan(withTail(buf), FixedFrameLength)
		if err != nil {
			return nil, false, err
		}
		payload = unpackFrame(frame)
	}
	if len(payload) == 0 {
		log.Printf("No payload detected in %d samples (%s)", buf.Len(), buf.Format)
		return nil, false, nil
	}

	log.Printf("Decoded %d-byte payload from %d samples", len(payload), buf.Len())
	return payload, true, nil
}

// payloadLimit returns the longest payload protocol can carry
func (b *Binding) payloadLimit(protocol Protocol) int {
	if protocol.FixedLength() {
		return min(b.config.MaxPayload, FixedFrameLength-1)
	}
	return b.config.MaxPayload
}

// scan runs one receive pass over buf on its own instance
func (b *Binding) scan(buf audio.Buffer, payloadLength int) ([]byte, error) {
	params := b.engine.DefaultParameters()
	params.Mode = ModeRX
	params.PayloadLength = payloadLength
	params.SampleFormatInp = buf.Format.Encoding
	params.SampleRateInp = float32(buf.Format.SampleRate)
	params.SampleRate = float32(buf.Format.SampleRate)

	inst, err := b.engine.Open(params)
	if err != nil {
		return nil, &InitError{Err: err}
	}
	defer inst.Close()

	payload, err := inst.Decode(bytes.Clone(buf.Data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return payload, nil
}

func packFrame(payload []byte) []byte {
	frame := make([]byte, FixedFrameLength)
	frame[0] = byte(len(payload))
	copy(frame[1:], payload)
	return frame
}

// unpackFrame returns nil for frames that were not produced by packFrame
func unpackFrame(frame []byte) []byte {
	if len(frame) != FixedFrameLength {
		return nil
	}
	n := int(frame[0])
	if n == 0 || n > FixedFrameLength-1 {
		log.Printf("Ignoring fixed-length frame declaring %d payload bytes", n)
		return nil
	}
	return frame[1 : 1+n]
}

// withTail appends a quarter second of silence. Fixed-length receivers only
// complete a frame once they have seen audio past its last symbol.
func withTail(buf audio.Buffer) audio.Buffer {
	tail := audio.Silence(buf.Format, buf.Format.SampleRate/4)
	data := make([]byte, 0, len(buf.Data)+len(tail.Data))
	data = append(data, buf.Data...)
	data = append(data, tail.Data...)
	return audio.Buffer{Format: buf.Format, Data: data}
}
