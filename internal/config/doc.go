// ABOUTME: Configuration package documentation
// ABOUTME: Describes config sources and precedence
// Package config loads gibberlink settings.
//
// Sources, lowest precedence first: built-in defaults, a YAML file
// (--config, else DefaultPath when present), then GIBBERLINK_* environment
// variables. Command-line flags are applied on top by the cli package.
//
//	audio:
//	  sample_rate: 48000
//	  encoding: pcm16
//	encode:
//	  protocol: audible:fast
//	  volume: 25
//	  out: gibberlink.wav
//	  play: true
//	playback:
//	  native: true
//	  players:
//	    - name: ffplay
//	      args: [-nodisp, -autoexit]
package config
