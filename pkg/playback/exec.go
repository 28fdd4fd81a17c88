// ABOUTME: External command playback strategy
// ABOUTME: Launches a player binary found on PATH and waits for it
package playback

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Command is an external player and the arguments placed before the file path
type Command struct {
	Name string   `mapstructure:"name" yaml:"name"`
	Args []string `mapstructure:"args" yaml:"args"`
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// LookPathFunc resolves a binary name; exec.LookPath in production
type LookPathFunc func(file string) (string, error)

// RunFunc runs a resolved binary to completion
type RunFunc func(ctx context.Context, bin string, args []string) error

// ExecStrategy plays a file with an external command
type ExecStrategy struct {
	cmd      Command
	lookPath LookPathFunc
	run      RunFunc
}

// NewExec creates a strategy for cmd. Nil lookPath or run select the os/exec defaults.
func NewExec(cmd Command, lookPath LookPathFunc, run RunFunc) *ExecStrategy {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if run == nil {
		run = runCommand
	}
	return &ExecStrategy{cmd: cmd, lookPath: lookPath, run: run}
}

// Name returns the binary name
func (s *ExecStrategy) Name() string {
	return s.cmd.Name
}

// Play launches the player if it is on PATH
func (s *ExecStrategy) Play(ctx context.Context, path string) error {
	bin, err := s.lookPath(s.cmd.Name)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, s.cmd.Name, err)
	}

	args := make([]string, 0, len(s.cmd.Args)+1)
	args = append(args, s.cmd.Args...)
	args = append(args, path)

	if err := s.run(ctx, bin, args); err != nil {
		return fmt.Errorf("%s: %w", s.cmd.Name, err)
	}
	return nil
}

func runCommand(ctx context.Context, bin string, args []string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	return cmd.Run()
}
