// ABOUTME: Tests for the protocol selector grammar
// ABOUTME: Covers bands, speeds, aliases, defaults and error tokens
package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseProtocol(t *testing.T) {
	tests := []struct {
		input string
		want  Protocol
		id    ProtocolID
	}{
		{"audible:normal", Protocol{BandAudible, SpeedNormal}, 0},
		{"audible:fast", Protocol{BandAudible, SpeedFast}, 1},
		{"audible:fastest", Protocol{BandAudible, SpeedFastest}, 2},
		{"ultrasound:normal", Protocol{BandUltrasound, SpeedNormal}, 3},
		{"ultrasound:fastest", Protocol{BandUltrasound, SpeedFastest}, 5},
		{"dt:normal", Protocol{BandDualTone, SpeedNormal}, 6},
		{"dual-tone:fast", Protocol{BandDualTone, SpeedFast}, 7},
		{"mt:fastest", Protocol{BandMultiTone, SpeedFastest}, 11},
		{"multi-tone:normal", Protocol{BandMultiTone, SpeedNormal}, 9},
		{"audible", Protocol{BandAudible, SpeedFast}, 1},
		{"ultrasound", Protocol{BandUltrasound, SpeedFast}, 4},
		{"  Audible:FASTEST ", Protocol{BandAudible, SpeedFastest}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProtocol(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.id, got.ID())
		})
	}
}

func TestParseProtocolErrors(t *testing.T) {
	tests := []struct {
		input string
		token string
	}{
		{"teleport:fast", "teleport"},
		{"audible:warp", "warp"},
		{"", ""},
		{"audible:", ""},
		{":fast", ""},
		{"audible:fast:extra", "fast:extra"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseProtocol(tt.input)
			var perr *UnknownProtocolError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Equal(t, tt.token, perr.Token)
			assert.Equal(t, tt.input, perr.Input)
		})
	}
}

func TestUnknownProtocolErrorNamesToken(t *testing.T) {
	_, err := ParseProtocol("teleport:fast")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"teleport"`)
	assert.Contains(t, err.Error(), "audible")
	assert.Contains(t, err.Error(), "fastest")
}

func TestProtocolsCoverEveryID(t *testing.T) {
	all := Protocols()
	require.Len(t, all, 12)
	for i, p := range all {
		assert.Equal(t, ProtocolID(i), p.ID())
	}
}

func TestProtocolStringRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := rapid.SampledFrom(Protocols()).Draw(t, "protocol")
		got, err := ParseProtocol(p.String())
		if err != nil {
			t.Fatalf("parse %q: %v", p.String(), err)
		}
		if got != p {
			t.Fatalf("got %v, want %v", got, p)
		}
	})
}

func TestValidateVolume(t *testing.T) {
	tests := []struct {
		volume int
		valid  bool
	}{
		{-1, false},
		{0, true},
		{25, true},
		{100, true},
		{101, false},
	}

	for _, tt := range tests {
		err := ValidateVolume(tt.volume)
		if tt.valid {
			assert.NoError(t, err, "volume %d", tt.volume)
			continue
		}
		var verr *VolumeRangeError
		require.True(t, errors.As(err, &verr), "volume %d", tt.volume)
		assert.Equal(t, tt.volume, verr.Volume)
	}
}
