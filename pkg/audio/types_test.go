// ABOUTME: Tests for audio types
// ABOUTME: Tests encodings, formats, buffers and sample conversions
package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Encoding
		wantErr  bool
	}{
		{"pcm8", "pcm8", EncodingPCM8, false},
		{"pcm16", "pcm16", EncodingPCM16, false},
		{"float32", "float32", EncodingFloat32, false},
		{"unknown", "pcm24", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseEncoding(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatValidate(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr string
	}{
		{"mono pcm16", Mono(EncodingPCM16, 48000), ""},
		{"mono float", Mono(EncodingFloat32, 44100), ""},
		{"stereo", Format{Encoding: EncodingPCM16, SampleRate: 48000, Channels: 2}, "channel count must be 1"},
		{"zero rate", Mono(EncodingPCM16, 0), "sample rate must be positive"},
		{"bad encoding", Mono("pcm24", 48000), "unsupported sample encoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestBufferLenAndDuration(t *testing.T) {
	buf := Silence(Mono(EncodingPCM16, 48000), 24000)

	assert.Equal(t, 48000, len(buf.Data))
	assert.Equal(t, 24000, buf.Len())
	assert.Equal(t, 500*time.Millisecond, buf.Duration())
}

func TestSilencePCM8IsMidScale(t *testing.T) {
	buf := Silence(Mono(EncodingPCM8, 8000), 4)

	for i, b := range buf.Data {
		if b != 0x80 {
			t.Errorf("sample %d: expected 0x80, got %#x", i, b)
		}
	}
	assert.Zero(t, buf.Peak())
}

func TestPeak(t *testing.T) {
	assert.InDelta(t, 0.5, FromInt16(48000, []int16{0, 16384, -100}).Peak(), 1e-9)
	assert.InDelta(t, 0.75, FromFloat32(48000, []float32{0.25, -0.75}).Peak(), 1e-9)
	assert.Zero(t, Silence(Mono(EncodingFloat32, 48000), 10).Peak())
}

func TestWrongEncodingAccessors(t *testing.T) {
	buf := FromInt16(48000, []int16{1, 2, 3})

	_, err := buf.Float32s()
	assert.Error(t, err)
	_, err = buf.Uint8s()
	assert.Error(t, err)
}

func TestSampleConversions(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected int16
	}{
		{"zero", 0, 0},
		{"full scale", 1, 32767},
		{"negative full scale", -1, -32767},
		{"clip high", 1.5, 32767},
		{"clip low", -1.5, -32768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleToInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}

	assert.Equal(t, float32(-1), SampleFromInt16(-32768))
}

func TestRoundTripInt16(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		samples := rapid.SliceOf(rapid.Int16()).Draw(t, "samples")
		buf := FromInt16(48000, samples)

		result, err := buf.Int16s()
		if err != nil {
			t.Fatalf("unpack failed: %v", err)
		}
		if len(result) != len(samples) {
			t.Fatalf("expected %d samples, got %d", len(samples), len(result))
		}
		for i := range samples {
			if result[i] != samples[i] {
				t.Fatalf("sample %d: expected %d, got %d", i, samples[i], result[i])
			}
		}
	})
}

func TestRoundTripFloat32(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		samples := rapid.SliceOf(rapid.Float32Range(-1, 1)).Draw(t, "samples")
		buf := FromFloat32(44100, samples)

		result, err := buf.Float32s()
		if err != nil {
			t.Fatalf("unpack failed: %v", err)
		}
		for i := range samples {
			if result[i] != samples[i] {
				t.Fatalf("sample %d: expected %v, got %v", i, samples[i], result[i])
			}
		}
	})
}
