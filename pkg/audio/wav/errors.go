// ABOUTME: Error types raised by the WAV container package
// ABOUTME: Each error names the file and the offending header value
package wav

import "fmt"

// UnsupportedFormatError reports a well-formed header describing a layout we do not handle
type UnsupportedFormatError struct {
	Path  string
	Field string // "channel count", "format tag", "bit depth", "encoding"
	Value string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%sunsupported %s %s", prefix(e.Path), e.Field, e.Value)
}

// CorruptFileError reports header fields that contradict each other or the file size
type CorruptFileError struct {
	Path   string
	Reason string
}

func (e *CorruptFileError) Error() string {
	return fmt.Sprintf("%scorrupt WAV file: %s", prefix(e.Path), e.Reason)
}

// IOError wraps a filesystem failure
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func prefix(path string) string {
	if path == "" {
		return ""
	}
	return path + ": "
}

func corrupt(path, format string, args ...any) error {
	return &CorruptFileError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
