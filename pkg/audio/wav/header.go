// ABOUTME: RIFF WAVE header layout
// ABOUTME: Format tags, chunk ids and header rendering
package wav

import (
	"encoding/binary"
	"fmt"

	"github.com/harperreed/gibberlink-go/pkg/audio"
)

const (
	formatPCM        = 0x0001
	formatIEEEFloat  = 0x0003
	formatExtensible = 0xFFFE

	// Data larger than this cannot be described by 32-bit chunk sizes
	maxDataLen uint64 = 1<<32 - 1 - 64
)

// formatTag maps an encoding to its WAVE format tag
func formatTag(e audio.Encoding) uint16 {
	if e.IsFloat() {
		return formatIEEEFloat
	}
	return formatPCM
}

// encodingFor maps a format tag and bit depth back to an encoding
func encodingFor(tag uint16, bits uint16) (audio.Encoding, bool) {
	switch {
	case tag == formatPCM && bits == 8:
		return audio.EncodingPCM8, true
	case tag == formatPCM && bits == 16:
		return audio.EncodingPCM16, true
	case tag == formatIEEEFloat && bits == 32:
		return audio.EncodingFloat32, true
	}
	return "", false
}

// header renders everything that precedes the sample bytes.
// Float files carry the extended fmt chunk and a fact chunk, as non-PCM WAVE requires.
func header(format audio.Format, dataLen int) []byte {
	tag := formatTag(format.Encoding)
	align := format.BlockAlign()

	fmtLen := 16
	if tag != formatPCM {
		fmtLen = 18
	}

	pad := dataLen & 1
	size := 4 + (8 + fmtLen) + (8 + dataLen + pad)
	if tag != formatPCM {
		size += 8 + 4
	}

	h := make([]byte, 0, 12+8+fmtLen+12+8)
	h = append(h, "RIFF"...)
	h = binary.LittleEndian.AppendUint32(h, uint32(size))
	h = append(h, "WAVE"...)

	h = append(h, "fmt "...)
	h = binary.LittleEndian.AppendUint32(h, uint32(fmtLen))
	h = binary.LittleEndian.AppendUint16(h, tag)
	h = binary.LittleEndian.AppendUint16(h, uint16(format.Channels))
	h = binary.LittleEndian.AppendUint32(h, uint32(format.SampleRate))
	h = binary.LittleEndian.AppendUint32(h, uint32(format.SampleRate*align))
	h = binary.LittleEndian.AppendUint16(h, uint16(align))
	h = binary.LittleEndian.AppendUint16(h, uint16(format.BitDepth()))
	if tag != formatPCM {
		h = binary.LittleEndian.AppendUint16(h, 0) // cbSize

		h = append(h, "fact"...)
		h = binary.LittleEndian.AppendUint32(h, 4)
		h = binary.LittleEndian.AppendUint32(h, uint32(dataLen/align))
	}

	h = append(h, "data"...)
	h = binary.LittleEndian.AppendUint32(h, uint32(dataLen))
	return h
}

// fmtChunk is the decoded body of a "fmt " chunk
type fmtChunk struct {
	tag        uint16
	channels   uint16
	sampleRate uint32
	byteRate   uint32
	blockAlign uint16
	bits       uint16
}

func parseFmt(body []byte) (fmtChunk, error) {
	if len(body) < 16 {
		return fmtChunk{}, fmt.Errorf("fmt chunk is %d bytes, need at least 16", len(body))
	}
	c := fmtChunk{
		tag:        binary.LittleEndian.Uint16(body[0:]),
		channels:   binary.LittleEndian.Uint16(body[2:]),
		sampleRate: binary.LittleEndian.Uint32(body[4:]),
		byteRate:   binary.LittleEndian.Uint32(body[8:]),
		blockAlign: binary.LittleEndian.Uint16(body[12:]),
		bits:       binary.LittleEndian.Uint16(body[14:]),
	}
	// WAVE_FORMAT_EXTENSIBLE keeps the real tag in the first two bytes of the sub-format GUID
	if c.tag == formatExtensible {
		if len(body) < 40 {
			return fmtChunk{}, fmt.Errorf("extensible fmt chunk is %d bytes, need 40", len(body))
		}
		c.tag = binary.LittleEndian.Uint16(body[24:])
	}
	return c, nil
}
