//go:build !windows && !darwin

// ABOUTME: Linux and other Unix playback order
// ABOUTME: ffplay, then ALSA, PulseAudio and afplay
package playback

const nativeFirst = false

func platformPlayers() []Command {
	return []Command{
		{Name: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
		{Name: "aplay", Args: []string{"-q"}},
		{Name: "paplay"},
		{Name: "afplay"},
	}
}
