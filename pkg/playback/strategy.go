// ABOUTME: Playback strategy interface and dispatcher
// ABOUTME: Tries strategies in order and stops at the first one that launches
package playback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// ErrUnavailable marks a strategy that cannot run on this host
var ErrUnavailable = errors.New("player unavailable")

// Strategy is one way of playing a file
type Strategy interface {
	// Name identifies the strategy in logs and errors
	Name() string

	// Play blocks until playback ends. It returns an error wrapping
	// ErrUnavailable when it could not start at all.
	Play(ctx context.Context, path string) error
}

// NoPlayerAvailableError reports that every strategy was unavailable
type NoPlayerAvailableError struct {
	Tried []string
}

func (e *NoPlayerAvailableError) Error() string {
	return fmt.Sprintf("no audio player available (tried: %s)", strings.Join(e.Tried, ", "))
}

// Result describes the strategy that ran
type Result struct {
	Player string

	// Err is the launched player's own failure, such as a nonzero exit.
	// It does not make Play fail.
	Err error
}

// Dispatcher plays files with the first available strategy
type Dispatcher struct {
	strategies []Strategy
}

// New creates a dispatcher over strategies in priority order
func New(strategies ...Strategy) *Dispatcher {
	return &Dispatcher{strategies: strategies}
}

// Strategies returns the strategy names in priority order
func (d *Dispatcher) Strategies() []string {
	names := make([]string, len(d.strategies))
	for i, s := range d.strategies {
		names[i] = s.Name()
	}
	return names
}

// Play runs the first strategy that launches
func (d *Dispatcher) Play(ctx context.Context, path string) (Result, error) {
	tried := make([]string, 0, len(d.strategies))

	for _, s := range d.strategies {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		err := s.Play(ctx, path)
		if errors.Is(err, ErrUnavailable) {
			log.Printf("Playback: %s unavailable: %v", s.Name(), err)
			tried = append(tried, s.Name())
			continue
		}

		if err != nil {
			log.Printf("Playback: %s exited with error: %v", s.Name(), err)
		} else {
			log.Printf("Playback: %s finished %s", s.Name(), path)
		}
		return Result{Player: s.Name(), Err: err}, nil
	}

	return Result{}, &NoPlayerAvailableError{Tried: tried}
}
