// ABOUTME: Audio type definitions
// ABOUTME: Defines sample encodings, stream formats and sample buffers
package audio

import (
	"fmt"
	"time"
)

// DefaultSampleRate is the rate waveforms are rendered at unless configured otherwise
const DefaultSampleRate = 48000

// Encoding identifies how one sample is stored
type Encoding string

const (
	EncodingPCM8    Encoding = "pcm8"    // unsigned 8-bit, 0x80 is silence
	EncodingPCM16   Encoding = "pcm16"   // signed 16-bit little-endian
	EncodingFloat32 Encoding = "float32" // IEEE 754 little-endian, nominal range [-1, 1]
)

// Encodings lists every supported encoding
var Encodings = []Encoding{EncodingPCM8, EncodingPCM16, EncodingFloat32}

// ParseEncoding resolves an encoding name
func ParseEncoding(s string) (Encoding, error) {
	for _, e := range Encodings {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("unsupported sample encoding: %q (supported: pcm8, pcm16, float32)", s)
}

// BitDepth returns bits per sample, or 0 for an unknown encoding
func (e Encoding) BitDepth() int {
	switch e {
	case EncodingPCM8:
		return 8
	case EncodingPCM16:
		return 16
	case EncodingFloat32:
		return 32
	default:
		return 0
	}
}

// IsFloat reports whether samples are IEEE floats
func (e Encoding) IsFloat() bool {
	return e == EncodingFloat32
}

// Format describes a sample stream
type Format struct {
	Encoding   Encoding
	SampleRate int
	Channels   int
}

// Mono returns a single-channel format
func Mono(encoding Encoding, sampleRate int) Format {
	return Format{Encoding: encoding, SampleRate: sampleRate, Channels: 1}
}

// BitDepth returns bits per sample
func (f Format) BitDepth() int {
	return f.Encoding.BitDepth()
}

// BlockAlign returns bytes per frame (one sample per channel)
func (f Format) BlockAlign() int {
	return f.Channels * f.BitDepth() / 8
}

// Validate checks the format is usable
func (f Format) Validate() error {
	if f.BitDepth() == 0 {
		return fmt.Errorf("unsupported sample encoding: %q", f.Encoding)
	}
	if f.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", f.SampleRate)
	}
	if f.Channels != 1 {
		return fmt.Errorf("channel count must be 1, got %d", f.Channels)
	}
	return nil
}

func (f Format) String() string {
	return fmt.Sprintf("%s %dHz %dch", f.Encoding, f.SampleRate, f.Channels)
}

// Buffer is an ordered run of single-channel samples in raw little-endian form
type Buffer struct {
	Format Format
	Data   []byte
}

// Len returns the number of samples
func (b Buffer) Len() int {
	align := b.Format.BlockAlign()
	if align == 0 {
		return 0
	}
	return len(b.Data) / align
}

// Duration returns the playing time of the buffer
func (b Buffer) Duration() time.Duration {
	if b.Format.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Len()) * time.Second / time.Duration(b.Format.SampleRate)
}

// Silence returns n samples at zero level
func Silence(format Format, n int) Buffer {
	data := make([]byte, n*format.BlockAlign())
	if format.Encoding == EncodingPCM8 {
		for i := range data {
			data[i] = 0x80
		}
	}
	return Buffer{Format: format, Data: data}
}
