// ABOUTME: WAV container writer
// ABOUTME: Renders a mono buffer to a RIFF WAVE file with an atomic replace
package wav

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/harperreed/gibberlink-go/pkg/audio"
)

// Encode writes buf as a complete WAV stream to w
func Encode(w io.Writer, buf audio.Buffer) error {
	if err := checkWritable(buf); err != nil {
		return err
	}

	if _, err := w.Write(header(buf.Format, len(buf.Data))); err != nil {
		return err
	}
	if _, err := w.Write(buf.Data); err != nil {
		return err
	}
	if len(buf.Data)&1 == 1 {
		if _, err := w.Write([]byte{0}); err != nil {
			return err
		}
	}
	return nil
}

// Write stores buf at path, replacing any existing file.
// On failure nothing is left at path that was not there before.
func Write(path string, buf audio.Buffer) error {
	if err := checkWritable(buf); err != nil {
		var uf *UnsupportedFormatError
		if errors.As(err, &uf) {
			uf.Path = path
		}
		return err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}

	if err := writeFile(f, buf); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return &IOError{Op: "close", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &IOError{Op: "rename", Path: path, Err: err}
	}

	log.Printf("Wrote WAV %s: %s, %d samples (%v)", path, buf.Format, buf.Len(), buf.Duration())
	return nil
}

func writeFile(f *os.File, buf audio.Buffer) error {
	bw := bufio.NewWriter(f)
	if err := Encode(bw, buf); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

func checkWritable(buf audio.Buffer) error {
	f := buf.Format
	if f.Channels != 1 {
		return &UnsupportedFormatError{Field: "channel count", Value: strconv.Itoa(f.Channels)}
	}
	if f.BitDepth() == 0 {
		return &UnsupportedFormatError{Field: "encoding", Value: strconv.Quote(string(f.Encoding))}
	}
	if f.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", f.SampleRate)
	}
	if len(buf.Data)%f.BlockAlign() != 0 {
		return fmt.Errorf("buffer holds %d bytes, not a whole number of %d-byte samples", len(buf.Data), f.BlockAlign())
	}
	if uint64(len(buf.Data)) > maxDataLen {
		return fmt.Errorf("buffer holds %d bytes, more than a WAV file can describe", len(buf.Data))
	}
	return nil
}
