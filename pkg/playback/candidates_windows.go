//go:build windows

// ABOUTME: Windows playback order
// ABOUTME: In-process playback first, then ffplay
package playback

const nativeFirst = true

func platformPlayers() []Command {
	return []Command{
		{Name: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	}
}
