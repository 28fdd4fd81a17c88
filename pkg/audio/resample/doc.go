// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts mono buffers between different sample rates
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation for converting between sample rates.
// Handles both upsampling and downsampling.
//
// Example:
//
//	out, err := resample.Buffer(buf, 48000)
package resample
