// ABOUTME: WAV container package for single-channel sample buffers
// ABOUTME: Provides Write/Read for RIFF WAVE files with strict header checks
// Package wav stores audio.Buffer values as canonical uncompressed RIFF WAVE
// files and reads them back.
//
// Supported sample layouts are the ones the modem engine produces and
// consumes: unsigned 8-bit PCM, signed 16-bit PCM and 32-bit IEEE float,
// always mono, always little-endian.
//
// Write replaces the target atomically: the file is rendered to a hidden
// temporary sibling and renamed into place, so a failed write never leaves
// a truncated file behind. Read validates every header field against the
// bytes actually present and reports UnsupportedFormatError, CorruptFileError
// or IOError.
//
// Example:
//
//	err := wav.Write("out.wav", buf)
//	buf, err := wav.Read("out.wav")
package wav
