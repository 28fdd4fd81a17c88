// ABOUTME: Tests for the encode and decode pipelines
// ABOUTME: Uses fake codec and player implementations
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/gibberlink-go/pkg/audio"
	"github.com/harperreed/gibberlink-go/pkg/audio/wav"
	"github.com/harperreed/gibberlink-go/pkg/codec"
	"github.com/harperreed/gibberlink-go/pkg/playback"
)

// fakeCodec stores the payload as the waveform itself
type fakeCodec struct {
	encodes  int
	protocol codec.Protocol
	volume   int
	err      error
}

func (f *fakeCodec) Encode(text string, protocol codec.Protocol, volume int) (audio.Buffer, error) {
	f.encodes++
	f.protocol = protocol
	f.volume = volume
	if f.err != nil {
		return audio.Buffer{}, f.err
	}
	data := []byte(text)
	if len(data)%2 == 1 {
		data = append(data, 0)
	}
	return audio.Buffer{Format: audio.Mono(audio.EncodingPCM16, 48000), Data: data}, nil
}

func (f *fakeCodec) Decode(buf audio.Buffer) ([]byte, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	payload := bytes.TrimRight(buf.Data, "\x00")
	if len(payload) == 0 {
		return nil, false, nil
	}
	return payload, true, nil
}

type fakePlayer struct {
	paths []string
	err   error
}

func (f *fakePlayer) Play(ctx context.Context, path string) (playback.Result, error) {
	if f.err != nil {
		return playback.Result{}, f.err
	}
	f.paths = append(f.paths, path)
	return playback.Result{Player: "fake"}, nil
}

func TestEncodeWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.wav")
	fc := &fakeCodec{}
	p := New(fc, nil)

	res, err := p.Encode(context.Background(), EncodeRequest{Text: "hello", Protocol: "ultrasound", Volume: 30, Out: out})
	require.NoError(t, err)

	assert.Equal(t, out, res.Path)
	assert.Equal(t, int64(44+6), res.Size)
	assert.Equal(t, codec.Protocol{Band: codec.BandUltrasound, Speed: codec.SpeedFast}, res.Protocol)
	assert.Equal(t, 30, fc.volume)
	assert.Equal(t, 3, res.Samples)
	assert.False(t, res.Played)

	buf, err := wav.Read(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello\x00"), buf.Data)
}

func TestEncodeThenDecode(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.wav")
	p := New(&fakeCodec{}, nil)

	_, err := p.Encode(context.Background(), EncodeRequest{Text: "hi there", Protocol: "audible:fast", Volume: 25, Out: out})
	require.NoError(t, err)

	res, err := p.Decode(context.Background(), out)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, "hi there", res.Text())
}

func TestEncodeValidatesBeforeCodec(t *testing.T) {
	tests := []struct {
		name  string
		req   EncodeRequest
		check func(t *testing.T, err error)
	}{
		{"empty text", EncodeRequest{Protocol: "audible", Volume: 25}, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrEmptyText)
		}},
		{"volume", EncodeRequest{Text: "x", Protocol: "audible", Volume: 101}, func(t *testing.T, err error) {
			var verr *codec.VolumeRangeError
			assert.True(t, errors.As(err, &verr))
		}},
		{"protocol", EncodeRequest{Text: "x", Protocol: "teleport:fast", Volume: 25}, func(t *testing.T, err error) {
			var perr *codec.UnknownProtocolError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "teleport", perr.Token)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCodec{}
			tt.req.Out = filepath.Join(t.TempDir(), "out.wav")
			_, err := New(fc, nil).Encode(context.Background(), tt.req)
			tt.check(t, err)
			assert.Zero(t, fc.encodes)
			assert.NoFileExists(t, tt.req.Out)
		})
	}
}

func TestEncodeCodecFailureWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.wav")
	p := New(&fakeCodec{err: &codec.EncodeError{Err: errors.New("too long")}}, nil)

	_, err := p.Encode(context.Background(), EncodeRequest{Text: "x", Protocol: "audible", Volume: 25, Out: out})
	var eerr *codec.EncodeError
	require.True(t, errors.As(err, &eerr))
	assert.NoFileExists(t, out)
}

func TestEncodePlays(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.wav")
	player := &fakePlayer{}
	p := New(&fakeCodec{}, player)

	res, err := p.Encode(context.Background(), EncodeRequest{Text: "x", Protocol: "audible", Volume: 25, Out: out, Play: true})
	require.NoError(t, err)
	assert.True(t, res.Played)
	assert.Equal(t, "fake", res.Playback.Player)
	assert.Equal(t, []string{out}, player.paths)
}

func TestEncodeNoPlayerKeepsFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.wav")
	player := &fakePlayer{err: &playback.NoPlayerAvailableError{Tried: []string{"ffplay"}}}
	p := New(&fakeCodec{}, player)

	res, err := p.Encode(context.Background(), EncodeRequest{Text: "hello", Protocol: "audible", Volume: 25, Out: out, Play: true})
	var nerr *playback.NoPlayerAvailableError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, out, res.Path)
	assert.False(t, res.Played)

	buf, err := wav.Read(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello\x00"), buf.Data)
}

func TestPlayWithoutPlayer(t *testing.T) {
	_, err := New(&fakeCodec{}, nil).Play(context.Background(), "x.wav")
	var nerr *playback.NoPlayerAvailableError
	assert.True(t, errors.As(err, &nerr))
}

func TestDecodeSilence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "silence.wav")
	require.NoError(t, wav.Write(path, audio.Silence(audio.Mono(audio.EncodingPCM16, 48000), 4800)))

	res, err := New(&fakeCodec{}, nil).Decode(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Nil(t, res.Payload)
	assert.Equal(t, 4800, res.Samples)
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := New(&fakeCodec{}, nil).Decode(context.Background(), filepath.Join(t.TempDir(), "none.wav"))
	var ioerr *wav.IOError
	require.True(t, errors.As(err, &ioerr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeCodecFault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.wav")
	require.NoError(t, wav.Write(path, audio.Silence(audio.Mono(audio.EncodingPCM16, 48000), 10)))

	fault := &codec.DecodeError{Err: errors.New("corrupt state")}
	_, err := New(&fakeCodec{err: fault}, nil).Decode(context.Background(), path)
	var derr *codec.DecodeError
	require.True(t, errors.As(err, &derr))
	assert.Contains(t, err.Error(), path)
}

func TestDecodeResultText(t *testing.T) {
	assert.Equal(t, "héllo", DecodeResult{Payload: []byte("héllo")}.Text())
	assert.Equal(t, "0xff00fe", DecodeResult{Payload: []byte{0xff, 0x00, 0xfe}}.Text())
}
