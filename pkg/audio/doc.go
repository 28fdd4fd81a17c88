// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Encoding, Format, Buffer types and sample conversion functions
// Package audio provides the sample types shared by the modem pipeline.
//
// This package defines:
//   - Encoding: how a single sample is stored (pcm8, pcm16, float32)
//   - Format: encoding, sample rate and channel count of a stream
//   - Buffer: an ordered run of single-channel samples kept as raw
//     little-endian bytes, exactly as the modem engine and the WAV
//     container exchange them
//
// It also provides conversions between typed sample slices and Buffer.
//
// Example:
//
//	buf := audio.FromInt16(48000, []int16{0, 1200, -1200})
//	samples, err := buf.Int16s()
package audio
