// ABOUTME: Codec binding package for the external audio-modem engine
// ABOUTME: Provides protocol parsing, volume checks and scoped Encode/Decode
// Package codec binds text payloads to an external audio-modem engine.
//
// The engine is reached through the narrow Engine/Instance call contract,
// so the signal processing stays a black box. Binding wraps every call in
// open/close so engine resources never outlive a single Encode or Decode,
// whatever the outcome.
//
// Protocols are selected with the "<band>[:<speed>]" grammar:
//
//	audible:fast      ultrasound:normal      dt:fastest      mt
//
// Example:
//
//	b := codec.NewBinding(engine, codec.Config{SampleRate: 48000})
//	p, err := codec.ParseProtocol("audible:fast")
//	buf, err := b.Encode("hello", p, 25)
//	payload, found, err := b.Decode(buf)
package codec
