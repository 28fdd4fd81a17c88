// ABOUTME: WAV container reader
// ABOUTME: Parses RIFF WAVE files back into mono sample buffers
package wav

import (
	"encoding/binary"
	"os"
	"strconv"

	"github.com/harperreed/gibberlink-go/pkg/audio"
)

// Read loads the WAV file at path
func Read(path string) (audio.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return audio.Buffer{}, &IOError{Op: "read", Path: path, Err: err}
	}
	return decode(path, data)
}

// Decode parses an in-memory WAV file
func Decode(data []byte) (audio.Buffer, error) {
	return decode("", data)
}

// decode walks the chunk list. Chunk sizes are checked against the bytes
// actually present; the RIFF size field is not trusted since streaming
// writers leave it unset. Bytes after the data chunk are ignored.
func decode(path string, data []byte) (audio.Buffer, error) {
	if len(data) < 12 {
		return audio.Buffer{}, corrupt(path, "file is %d bytes, too short for a RIFF header", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return audio.Buffer{}, corrupt(path, "missing RIFF/WAVE signature")
	}

	var (
		format  audio.Format
		haveFmt bool
	)

	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		declared := binary.LittleEndian.Uint32(data[off+4:])
		body := off + 8
		remaining := len(data) - body

		if uint64(declared) > uint64(remaining) {
			if id == "data" {
				return audio.Buffer{}, corrupt(path, "declared data length %d exceeds the %d bytes remaining", declared, remaining)
			}
			return audio.Buffer{}, corrupt(path, "%q chunk declares %d bytes but only %d remain", id, declared, remaining)
		}
		size := int(declared)

		switch id {
		case "fmt ":
			f, err := readFormat(path, data[body:body+size])
			if err != nil {
				return audio.Buffer{}, err
			}
			format = f
			haveFmt = true

		case "data":
			if !haveFmt {
				return audio.Buffer{}, corrupt(path, "data chunk precedes fmt chunk")
			}
			if size%format.BlockAlign() != 0 {
				return audio.Buffer{}, corrupt(path, "data length %d is not a multiple of block align %d", size, format.BlockAlign())
			}
			samples := make([]byte, size)
			copy(samples, data[body:body+size])
			return audio.Buffer{Format: format, Data: samples}, nil
		}

		off = body + size + size&1
	}

	if !haveFmt {
		return audio.Buffer{}, corrupt(path, "missing fmt chunk")
	}
	return audio.Buffer{}, corrupt(path, "missing data chunk")
}

func readFormat(path string, body []byte) (audio.Format, error) {
	c, err := parseFmt(body)
	if err != nil {
		return audio.Format{}, corrupt(path, "%v", err)
	}

	if c.channels != 1 {
		return audio.Format{}, &UnsupportedFormatError{Path: path, Field: "channel count", Value: strconv.Itoa(int(c.channels))}
	}
	if c.tag != formatPCM && c.tag != formatIEEEFloat {
		return audio.Format{}, &UnsupportedFormatError{Path: path, Field: "format tag", Value: "0x" + strconv.FormatUint(uint64(c.tag), 16)}
	}
	encoding, ok := encodingFor(c.tag, c.bits)
	if !ok {
		return audio.Format{}, &UnsupportedFormatError{Path: path, Field: "bit depth", Value: strconv.Itoa(int(c.bits))}
	}

	format := audio.Mono(encoding, int(c.sampleRate))
	if c.sampleRate == 0 {
		return audio.Format{}, corrupt(path, "sample rate is zero")
	}
	if int(c.blockAlign) != format.BlockAlign() {
		return audio.Format{}, corrupt(path, "block align %d does not match %d-bit mono", c.blockAlign, c.bits)
	}
	if int(c.byteRate) != format.SampleRate*format.BlockAlign() {
		return audio.Format{}, corrupt(path, "byte rate %d does not match %d Hz x %d bytes", c.byteRate, c.sampleRate, c.blockAlign)
	}
	return format, nil
}
