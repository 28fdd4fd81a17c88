// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Converts mono buffers between rates using linear interpolation
package resample

import (
	"fmt"

	"github.com/harperreed/gibberlink-go/pkg/audio"
)

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	ratio      float64
	position   float64
}

// New creates a new resampler
func New(inputRate, outputRate int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		ratio:      float64(inputRate) / float64(outputRate),
	}
}

// Resample converts input samples to the output rate and returns the
// number of samples written to output
func (r *Resampler) Resample(input []float32, output []float32) int {
	if len(input) == 0 {
		return 0
	}

	outIdx := 0
	for outIdx < len(output) {
		inputIdx := int(r.position)

		// The last input sample has no right neighbour
		if inputIdx >= len(input)-1 {
			if inputIdx == len(input)-1 && r.position == float64(inputIdx) {
				output[outIdx] = input[inputIdx]
				outIdx++
				r.position += r.ratio
			}
			break
		}

		frac := r.position - float64(inputIdx)
		output[outIdx] = float32(float64(input[inputIdx])*(1.0-frac) + float64(input[inputIdx+1])*frac)

		outIdx++
		r.position += r.ratio
	}

	return outIdx
}

// Reset resets the resampler state
func (r *Resampler) Reset() {
	r.position = 0.0
}

// OutputSamplesNeeded calculates how many output samples will be produced from input samples
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	return int(float64(inputSamples) / r.ratio)
}

// Buffer converts buf to rate, keeping its encoding
func Buffer(buf audio.Buffer, rate int) (audio.Buffer, error) {
	if err := buf.Format.Validate(); err != nil {
		return audio.Buffer{}, err
	}
	if rate <= 0 {
		return audio.Buffer{}, fmt.Errorf("invalid target sample rate %d", rate)
	}
	if buf.Format.SampleRate == rate {
		return buf, nil
	}

	input, err := toFloat(buf)
	if err != nil {
		return audio.Buffer{}, err
	}

	r := New(buf.Format.SampleRate, rate)
	output := make([]float32, r.OutputSamplesNeeded(len(input))+1)
	n := r.Resample(input, output)

	return fromFloat(output[:n], audio.Mono(buf.Format.Encoding, rate))
}

func toFloat(buf audio.Buffer) ([]float32, error) {
	switch buf.Format.Encoding {
	case audio.EncodingFloat32:
		return buf.Float32s()
	case audio.EncodingPCM16:
		samples, err := buf.Int16s()
		if err != nil {
			return nil, err
		}
		out := make([]float32, len(samples))
		for i, s := range samples {
			out[i] = audio.SampleFromInt16(s)
		}
		return out, nil
	case audio.EncodingPCM8:
		samples, err := buf.Uint8s()
		if err != nil {
			return nil, err
		}
		out := make([]float32, len(samples))
		for i, s := range samples {
			out[i] = (float32(s) - 128) / 128
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot resample encoding %q", buf.Format.Encoding)
	}
}

func fromFloat(samples []float32, format audio.Format) (audio.Buffer, error) {
	switch format.Encoding {
	case audio.EncodingFloat32:
		return audio.FromFloat32(format.SampleRate, samples), nil
	case audio.EncodingPCM16:
		out := make([]int16, len(samples))
		for i, s := range samples {
			out[i] = audio.SampleToInt16(s)
		}
		return audio.FromInt16(format.SampleRate, out), nil
	case audio.EncodingPCM8:
		out := make([]uint8, len(samples))
		for i, s := range samples {
			v := s*128 + 128
			switch {
			case v < 0:
				v = 0
			case v > 255:
				v = 255
			}
			out[i] = uint8(v + 0.5)
		}
		return audio.FromUint8(format.SampleRate, out), nil
	default:
		return audio.Buffer{}, fmt.Errorf("cannot resample encoding %q", format.Encoding)
	}
}
