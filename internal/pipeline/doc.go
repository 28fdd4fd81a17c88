// ABOUTME: Pipeline package documentation
// ABOUTME: Encode is text to WAV file (plus playback); Decode is WAV file to text
// Package pipeline orchestrates gibberlink's two operations.
//
// Encode: validate volume and protocol, render with the codec, write the
// container, then optionally play it. Decode: read the container and ask
// the codec for a payload; finding none is a normal result.
//
// Example:
//
//	p := pipeline.New(binding, dispatcher)
//	res, err := p.Encode(ctx, pipeline.EncodeRequest{
//		Text: "hello", Protocol: "audible:fast", Volume: 25, Out: "hello.wav", Play: true,
//	})
package pipeline
