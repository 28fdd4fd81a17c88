// ABOUTME: Call contract of the external modem engine
// ABOUTME: Engine opens short-lived instances that render and detect payloads
package codec

import "github.com/harperreed/gibberlink-go/pkg/audio"

// OperatingMode selects which directions an instance is prepared for
type OperatingMode int

const (
	ModeRX OperatingMode = 1 << 1
	ModeTX OperatingMode = 1 << 2
)

// Parameters configures one engine instance
type Parameters struct {
	PayloadLength        int // -1 selects variable-length framing
	SampleRateInp        float32
	SampleRateOut        float32
	SampleRate           float32
	SamplesPerFrame      int
	SoundMarkerThreshold float32
	SampleFormatInp      audio.Encoding
	SampleFormatOut      audio.Encoding
	Mode                 OperatingMode
}

// Engine instantiates the modem
type Engine interface {
	// DefaultParameters returns the engine's own defaults
	DefaultParameters() Parameters

	// Open allocates an instance; every instance must be closed
	Open(params Parameters) (Instance, error)
}

// Instance is one allocated engine state. It never retains or mutates
// the slices passed to it.
type Instance interface {
	// Encode renders payload as raw little-endian samples in SampleFormatOut
	Encode(payload []byte, protocol ProtocolID, volume int) ([]byte, error)

	// Decode scans raw samples in SampleFormatInp and returns the payload
	// found, or nil when there is none
	Decode(waveform []byte) ([]byte, error)

	// Close releases the engine state
	Close()
}
