// ABOUTME: Playback dispatcher package
// ABOUTME: Plays a WAV file with the first available platform strategy
// Package playback plays audio files through an ordered list of strategies.
//
// Each strategy either reports ErrUnavailable, letting the dispatcher move
// on, or launches. The dispatcher stops at the first launched strategy
// regardless of how it exits, so a broken player never causes a second one
// to start.
//
// Example:
//
//	d := playback.NewDefault(playback.Config{Native: true})
//	res, err := d.Play(ctx, "gibberlink.wav")
package playback
