// ABOUTME: In-process playback strategy using the oto library
// ABOUTME: Streams a decoded WAV file to the default audio device
package playback

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/harperreed/gibberlink-go/pkg/audio"
	"github.com/harperreed/gibberlink-go/pkg/audio/wav"
)

// oto allows one context per process, so it is shared by every OtoStrategy
var (
	otoMu     sync.Mutex
	otoCtx    *oto.Context
	otoFormat audio.Format
)

const (
	otoPollInterval = 20 * time.Millisecond

	// otoBufferSize is the device buffer requested from oto
	otoBufferSize = 100 * time.Millisecond

	// otoTail is the silence appended after the waveform. IsPlaying turns
	// false once oto has read the last byte, while the device may still hold
	// up to otoBufferSize of it.
	otoTail = 2 * otoBufferSize
)

// OtoStrategy plays files through the oto audio context
type OtoStrategy struct{}

// NewOto creates the in-process strategy
func NewOto() *OtoStrategy {
	return &OtoStrategy{}
}

// Name returns "native"
func (o *OtoStrategy) Name() string {
	return "native"
}

// Play decodes path and plays it to completion. Failures other than
// cancellation wrap ErrUnavailable.
func (o *OtoStrategy) Play(ctx context.Context, path string) error {
	buf, err := wav.Read(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c, err := sharedContext(buf.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	player := c.NewPlayer(bytes.NewReader(withDeviceTail(buf).Data))
	defer player.Close()
	player.Play()

	ticker := time.NewTicker(otoPollInterval)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	if err := player.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// sharedContext returns the shared oto context, creating it for format on first use
func sharedContext(format audio.Format) (*oto.Context, error) {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx != nil {
		if otoFormat != format {
			return nil, fmt.Errorf("audio device already opened as %s, cannot play %s", otoFormat, format)
		}
		return otoCtx, nil
	}

	sampleFormat, err := otoSampleFormat(format.Encoding)
	if err != nil {
		return nil, err
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       sampleFormat,
		BufferSize:   otoBufferSize,
	}

	c, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	otoCtx = c
	otoFormat = format
	log.Printf("Audio output initialized: %s", format)
	return c, nil
}

// withDeviceTail returns buf followed by otoTail of silence
func withDeviceTail(buf audio.Buffer) audio.Buffer {
	n := int(otoTail * time.Duration(buf.Format.SampleRate) / time.Second)
	tail := audio.Silence(buf.Format, n)
	data := make([]byte, 0, len(buf.Data)+len(tail.Data))
	data = append(data, buf.Data...)
	data = append(data, tail.Data...)
	return audio.Buffer{Format: buf.Format, Data: data}
}

func otoSampleFormat(enc audio.Encoding) (oto.Format, error) {
	switch enc {
	case audio.EncodingPCM8:
		return oto.FormatUnsignedInt8, nil
	case audio.EncodingPCM16:
		return oto.FormatSignedInt16LE, nil
	case audio.EncodingFloat32:
		return oto.FormatFloat32LE, nil
	default:
		return 0, fmt.Errorf("no device format for encoding %q", enc)
	}
}
