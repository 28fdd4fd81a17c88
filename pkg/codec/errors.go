// ABOUTME: Error taxonomy of the codec binding
// ABOUTME: Every error names the input that caused it
package codec

import (
	"fmt"
	"strings"
)

// UnknownProtocolError reports a band or speed token outside the grammar
type UnknownProtocolError struct {
	Input string // full selector as given
	Token string // the token that did not match
}

func (e *UnknownProtocolError) Error() string {
	return fmt.Sprintf("unknown protocol token %q in %q (bands: %s; speeds: %s)",
		e.Token, e.Input, strings.Join(bandNames(), ", "), strings.Join(speedNames(), ", "))
}

// VolumeRangeError reports a volume outside [MinVolume, MaxVolume]
type VolumeRangeError struct {
	Volume int
}

func (e *VolumeRangeError) Error() string {
	return fmt.Sprintf("volume %d out of range [%d, %d]", e.Volume, MinVolume, MaxVolume)
}

// InitError reports that the engine could not be instantiated
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("codec init failed: %v", e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// EncodeError reports that the engine rejected the payload
type EncodeError struct {
	Protocol Protocol
	Length   int // payload length in bytes
	Err      error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %d-byte payload with %s failed: %v", e.Length, e.Protocol, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// DecodeError reports an engine fault while decoding. Absence of a payload is not an error.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
