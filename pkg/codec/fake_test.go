// ABOUTME: In-memory engine used by codec tests
// ABOUTME: Frames payloads behind a marker per framing mode so decode can find them
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
)

var (
	fakeMarker      = []byte("GGFAKE")
	fakeFixedMarker = []byte("GGFIXD")
)

type fakeEngine struct {
	mu        sync.Mutex
	opened    int
	closed    int
	openErr   error
	encodeErr error
	decodeErr error
	lastParam Parameters
	params    []Parameters
	lastID    ProtocolID
	lastVol   int
	truncate  bool // return a partial trailing sample
}

func (e *fakeEngine) DefaultParameters() Parameters {
	return Parameters{PayloadLength: -1, SamplesPerFrame: 1024, SoundMarkerThreshold: 3}
}

func (e *fakeEngine) Open(params Parameters) (Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastParam = params
	e.params = append(e.params, params)
	if e.openErr != nil {
		return nil, e.openErr
	}
	e.opened++
	return &fakeInstance{engine: e, params: params}, nil
}

func (e *fakeEngine) balanced() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opened == e.closed
}

type fakeInstance struct {
	engine *fakeEngine
	params Parameters
}

func (i *fakeInstance) Encode(payload []byte, protocol ProtocolID, volume int) ([]byte, error) {
	i.engine.lastID = protocol
	i.engine.lastVol = volume
	if i.engine.encodeErr != nil {
		return nil, i.engine.encodeErr
	}
	var out []byte
	if n := i.params.PayloadLength; n > 0 {
		if len(payload) != n {
			return nil, fmt.Errorf("fixed-length instance expects %d bytes, got %d", n, len(payload))
		}
		out = append(out, fakeFixedMarker...)
	} else {
		out = append(out, fakeMarker...)
		out = append(out, byte(len(payload)))
	}
	out = append(out, payload...)
	align := i.params.SampleFormatOut.BitDepth() / 8
	for len(out)%align != 0 {
		out = append(out, 0)
	}
	if i.engine.truncate {
		out = append(out, 0)
	}
	return out, nil
}

func (i *fakeInstance) Decode(waveform []byte) ([]byte, error) {
	if i.engine.decodeErr != nil {
		return nil, i.engine.decodeErr
	}
	if n := i.params.PayloadLength; n > 0 {
		at := bytes.Index(waveform, fakeFixedMarker)
		if at < 0 || len(waveform)-at-len(fakeFixedMarker) < n {
			return nil, nil
		}
		rest := waveform[at+len(fakeFixedMarker):]
		return append([]byte{}, rest[:n]...), nil
	}

	at := bytes.Index(waveform, fakeMarker)
	if at < 0 {
		return nil, nil
	}
	rest := waveform[at+len(fakeMarker):]
	if len(rest) == 0 || int(rest[0]) > len(rest)-1 {
		return nil, errors.New("frame truncated")
	}
	return append([]byte{}, rest[1:1+int(rest[0])]...), nil
}

func (i *fakeInstance) Close() {
	i.engine.mu.Lock()
	defer i.engine.mu.Unlock()
	i.engine.closed++
}
