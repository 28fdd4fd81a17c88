// ABOUTME: Protocol selector grammar
// ABOUTME: Resolves "<band>[:<speed>]" strings to engine protocol identifiers
package codec

import (
	"fmt"
	"strings"
)

// Band is the frequency family of a protocol
type Band int

const (
	BandAudible Band = iota
	BandUltrasound
	BandDualTone
	BandMultiTone
)

// Speed is the symbol timing profile of a protocol
type Speed int

const (
	SpeedNormal Speed = iota
	SpeedFast
	SpeedFastest
)

// DefaultSpeed applies when a selector names only the band
const DefaultSpeed = SpeedFast

// ProtocolID is the engine's opaque protocol identifier
type ProtocolID int

var bands = []struct {
	band    Band
	name    string
	aliases []string
}{
	{BandAudible, "audible", nil},
	{BandUltrasound, "ultrasound", nil},
	{BandDualTone, "dual-tone", []string{"dt"}},
	{BandMultiTone, "multi-tone", []string{"mt"}},
}

var speeds = []struct {
	speed Speed
	name  string
}{
	{SpeedNormal, "normal"},
	{SpeedFast, "fast"},
	{SpeedFastest, "fastest"},
}

func (b Band) String() string {
	for _, e := range bands {
		if e.band == b {
			return e.name
		}
	}
	return fmt.Sprintf("band(%d)", int(b))
}

func (s Speed) String() string {
	for _, e := range speeds {
		if e.speed == s {
			return e.name
		}
	}
	return fmt.Sprintf("speed(%d)", int(s))
}

// Protocol is a resolved (band, speed) pair
type Protocol struct {
	Band  Band
	Speed Speed
}

// ID returns the engine identifier. Identifiers are laid out band-major,
// three speeds per band, matching the engine's protocol table.
func (p Protocol) ID() ProtocolID {
	return ProtocolID(int(p.Band)*len(speeds) + int(p.Speed))
}

// FixedLength reports whether the band is only received with fixed-length
// framing. The engine's dual-tone and multi-tone receivers carry no
// start/end markers.
func (p Protocol) FixedLength() bool {
	return p.Band == BandDualTone || p.Band == BandMultiTone
}

func (p Protocol) String() string {
	return p.Band.String() + ":" + p.Speed.String()
}

// DefaultProtocol is audible at the default speed
var DefaultProtocol = Protocol{Band: BandAudible, Speed: DefaultSpeed}

// ParseProtocol resolves a selector such as "audible:fast" or "ultrasound".
// Matching is case-insensitive; a missing speed means DefaultSpeed.
func ParseProtocol(s string) (Protocol, error) {
	input := strings.ToLower(strings.TrimSpace(s))
	bandToken, speedToken, hasSpeed := strings.Cut(input, ":")

	band, ok := lookupBand(bandToken)
	if !ok {
		return Protocol{}, &UnknownProtocolError{Input: s, Token: bandToken}
	}

	speed := DefaultSpeed
	if hasSpeed {
		speed, ok = lookupSpeed(speedToken)
		if !ok {
			return Protocol{}, &UnknownProtocolError{Input: s, Token: speedToken}
		}
	}

	return Protocol{Band: band, Speed: speed}, nil
}

// Protocols lists every selectable protocol in identifier order
func Protocols() []Protocol {
	out := make([]Protocol, 0, len(bands)*len(speeds))
	for _, b := range bands {
		for _, s := range speeds {
			out = append(out, Protocol{Band: b.band, Speed: s.speed})
		}
	}
	return out
}

func lookupBand(token string) (Band, bool) {
	for _, e := range bands {
		if token == e.name {
			return e.band, true
		}
		for _, alias := range e.aliases {
			if token == alias {
				return e.band, true
			}
		}
	}
	return 0, false
}

func lookupSpeed(token string) (Speed, bool) {
	for _, e := range speeds {
		if token == e.name {
			return e.speed, true
		}
	}
	return 0, false
}

func bandNames() []string {
	names := make([]string, 0, len(bands))
	for _, e := range bands {
		name := e.name
		if len(e.aliases) > 0 {
			name += " (" + strings.Join(e.aliases, ", ") + ")"
		}
		names = append(names, name)
	}
	return names
}

func speedNames() []string {
	names := make([]string, 0, len(speeds))
	for _, e := range speeds {
		names = append(names, e.name)
	}
	return names
}
