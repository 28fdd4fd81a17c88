//go:build darwin

// ABOUTME: macOS playback order
// ABOUTME: afplay ships with the OS; ffplay is the fallback
package playback

const nativeFirst = false

func platformPlayers() []Command {
	return []Command{
		{Name: "afplay"},
		{Name: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	}
}
