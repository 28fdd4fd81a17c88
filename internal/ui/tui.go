// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the encode UI
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI and blocks until the user quits
func Run(encoder Encoder, opts Options) error {
	p := tea.NewProgram(NewModel(encoder, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
