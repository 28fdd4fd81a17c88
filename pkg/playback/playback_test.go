// ABOUTME: Tests for the playback dispatcher and exec strategy
// ABOUTME: Uses fake PATH lookups so no real player is launched
package playback

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/gibberlink-go/pkg/audio"
)

type recorder struct {
	bin  string
	args []string
	runs int
	err  error
}

func (r *recorder) run(ctx context.Context, bin string, args []string) error {
	r.runs++
	r.bin = bin
	r.args = args
	return r.err
}

func onPath(names ...string) LookPathFunc {
	return func(file string) (string, error) {
		for _, n := range names {
			if n == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", file)
	}
}

var testPlayers = []Command{
	{Name: "ffplay", Args: []string{"-nodisp", "-autoexit"}},
	{Name: "aplay"},
	{Name: "paplay"},
	{Name: "afplay"},
}

func TestDispatcherLaunchesFirstFound(t *testing.T) {
	rec := &recorder{}
	d := NewDefault(Config{Players: testPlayers, LookPath: onPath("aplay", "afplay"), Run: rec.run})

	res, err := d.Play(context.Background(), "/tmp/out.wav")
	require.NoError(t, err)
	assert.Equal(t, "aplay", res.Player)
	assert.NoError(t, res.Err)
	assert.Equal(t, 1, rec.runs)
	assert.Equal(t, "/usr/bin/aplay", rec.bin)
	assert.Equal(t, []string{"/tmp/out.wav"}, rec.args)
}

func TestDispatcherPassesArgsBeforePath(t *testing.T) {
	rec := &recorder{}
	d := NewDefault(Config{Players: testPlayers, LookPath: onPath("ffplay"), Run: rec.run})

	_, err := d.Play(context.Background(), "my file.wav")
	require.NoError(t, err)
	assert.Equal(t, []string{"-nodisp", "-autoexit", "my file.wav"}, rec.args)
}

func TestDispatcherStopsOnFailedPlayer(t *testing.T) {
	rec := &recorder{err: errors.New("exit status 1")}
	d := NewDefault(Config{Players: testPlayers, LookPath: onPath("ffplay", "aplay"), Run: rec.run})

	res, err := d.Play(context.Background(), "out.wav")
	require.NoError(t, err)
	assert.Equal(t, "ffplay", res.Player)
	assert.Error(t, res.Err)
	assert.Equal(t, 1, rec.runs, "a failing player must not trigger the next candidate")
}

func TestDispatcherNoPlayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	content := []byte("RIFF....WAVE")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	rec := &recorder{}
	d := NewDefault(Config{Players: testPlayers, LookPath: onPath(), Run: rec.run})

	_, err := d.Play(context.Background(), path)
	var nerr *NoPlayerAvailableError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, []string{"ffplay", "aplay", "paplay", "afplay"}, nerr.Tried)
	assert.Contains(t, err.Error(), "ffplay, aplay")
	assert.Zero(t, rec.runs)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestDispatcherEmpty(t *testing.T) {
	_, err := New().Play(context.Background(), "out.wav")
	var nerr *NoPlayerAvailableError
	require.True(t, errors.As(err, &nerr))
	assert.Empty(t, nerr.Tried)
}

func TestDispatcherCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recorder{}
	d := NewDefault(Config{Players: testPlayers, LookPath: onPath("ffplay"), Run: rec.run})
	_, err := d.Play(ctx, "out.wav")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rec.runs)
}

func TestNewDefaultUsesPlatformPlayers(t *testing.T) {
	d := NewDefault(Config{})
	names := d.Strategies()

	require.Len(t, names, len(PlatformPlayers()))
	for i, cmd := range PlatformPlayers() {
		assert.Equal(t, cmd.Name, names[i])
	}
}

func TestNewDefaultNativePlacement(t *testing.T) {
	d := NewDefault(Config{Native: true, Players: []Command{{Name: "ffplay"}}})
	names := d.Strategies()
	require.Len(t, names, 2)

	if nativeFirst {
		assert.Equal(t, []string{"native", "ffplay"}, names)
	} else {
		assert.Equal(t, []string{"ffplay", "native"}, names)
	}
}

func TestExecStrategyUnavailable(t *testing.T) {
	s := NewExec(Command{Name: "ffplay"}, onPath(), nil)
	err := s.Play(context.Background(), "out.wav")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOtoStrategyUnreadableFileIsUnavailable(t *testing.T) {
	err := NewOto().Play(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestWithDeviceTailPadsSilence(t *testing.T) {
	format := audio.Mono(audio.EncodingPCM8, 8000)
	buf := audio.Buffer{Format: format, Data: []byte{1, 2, 3}}

	out := withDeviceTail(buf)
	tail := int(otoTail * 8000 / time.Second)
	require.Equal(t, 3+tail, out.Len())
	assert.Equal(t, []byte{1, 2, 3}, out.Data[:3])
	for _, b := range out.Data[3:] {
		require.Equal(t, byte(0x80), b)
	}
	assert.Equal(t, []byte{1, 2, 3}, buf.Data, "input must not change")
	assert.Greater(t, otoTail, otoBufferSize)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "paplay", Command{Name: "paplay"}.String())
	assert.Equal(t, "ffplay -nodisp -autoexit", Command{Name: "ffplay", Args: []string{"-nodisp", "-autoexit"}}.String())
}
