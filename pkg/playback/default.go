// ABOUTME: Platform default dispatcher construction
// ABOUTME: Combines configured or platform players with the in-process strategy
package playback

// Config selects the strategies of a default dispatcher
type Config struct {
	// Native enables in-process playback through oto
	Native bool

	// Players overrides the platform's external player list
	Players []Command

	// LookPath resolves player binaries (default: exec.LookPath)
	LookPath LookPathFunc

	// Run executes a resolved player (default: os/exec)
	Run RunFunc
}

// PlatformPlayers returns the built-in external players for this OS
func PlatformPlayers() []Command {
	return platformPlayers()
}

// NewDefault builds the dispatcher for this platform. The in-process
// strategy leads on platforms without a bundled player and trails elsewhere.
func NewDefault(config Config) *Dispatcher {
	players := config.Players
	if len(players) == 0 {
		players = platformPlayers()
	}

	strategies := make([]Strategy, 0, len(players)+1)
	if config.Native && nativeFirst {
		strategies = append(strategies, NewOto())
	}
	for _, cmd := range players {
		strategies = append(strategies, NewExec(cmd, config.LookPath, config.Run))
	}
	if config.Native && !nativeFirst {
		strategies = append(strategies, NewOto())
	}

	return New(strategies...)
}
