// ABOUTME: Sample conversion helpers
// ABOUTME: Packs typed samples to little-endian bytes and back
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// FromInt16 packs signed 16-bit samples into a mono buffer
func FromInt16(sampleRate int, samples []int16) Buffer {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	return Buffer{Format: Mono(EncodingPCM16, sampleRate), Data: data}
}

// FromFloat32 packs float samples into a mono buffer
func FromFloat32(sampleRate int, samples []float32) Buffer {
	data := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(s))
	}
	return Buffer{Format: Mono(EncodingFloat32, sampleRate), Data: data}
}

// FromUint8 packs unsigned 8-bit samples into a mono buffer
func FromUint8(sampleRate int, samples []uint8) Buffer {
	data := make([]byte, len(samples))
	copy(data, samples)
	return Buffer{Format: Mono(EncodingPCM8, sampleRate), Data: data}
}

// Int16s unpacks a pcm16 buffer
func (b Buffer) Int16s() ([]int16, error) {
	if b.Format.Encoding != EncodingPCM16 {
		return nil, fmt.Errorf("buffer encoding is %s, not pcm16", b.Format.Encoding)
	}
	n := len(b.Data) / 2
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		samples[i] = int16(binary.LittleEndian.Uint16(b.Data[i*2:]))
	}
	return samples, nil
}

// Float32s unpacks a float32 buffer
func (b Buffer) Float32s() ([]float32, error) {
	if b.Format.Encoding != EncodingFloat32 {
		return nil, fmt.Errorf("buffer encoding is %s, not float32", b.Format.Encoding)
	}
	n := len(b.Data) / 4
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(b.Data[i*4:]))
	}
	return samples, nil
}

// Uint8s unpacks a pcm8 buffer
func (b Buffer) Uint8s() ([]uint8, error) {
	if b.Format.Encoding != EncodingPCM8 {
		return nil, fmt.Errorf("buffer encoding is %s, not pcm8", b.Format.Encoding)
	}
	samples := make([]uint8, len(b.Data))
	copy(samples, b.Data)
	return samples, nil
}

// Peak returns the largest absolute sample level normalised to [0, 1]
func (b Buffer) Peak() float64 {
	var peak float64
	switch b.Format.Encoding {
	case EncodingPCM8:
		for _, s := range b.Data {
			peak = math.Max(peak, math.Abs(float64(int(s)-0x80))/128)
		}
	case EncodingPCM16:
		for i := 0; i+1 < len(b.Data); i += 2 {
			s := int16(binary.LittleEndian.Uint16(b.Data[i:]))
			peak = math.Max(peak, math.Abs(float64(s))/32768)
		}
	case EncodingFloat32:
		for i := 0; i+3 < len(b.Data); i += 4 {
			s := math.Float32frombits(binary.LittleEndian.Uint32(b.Data[i:]))
			peak = math.Max(peak, math.Abs(float64(s)))
		}
	}
	return peak
}

// SampleToInt16 converts a normalised float sample to 16-bit with clipping
func SampleToInt16(sample float32) int16 {
	scaled := math.Round(float64(sample) * 32767)
	if scaled > math.MaxInt16 {
		return math.MaxInt16
	}
	if scaled < math.MinInt16 {
		return math.MinInt16
	}
	return int16(scaled)
}

// SampleFromInt16 converts a 16-bit sample to a normalised float
func SampleFromInt16(sample int16) float32 {
	return float32(sample) / 32768
}
