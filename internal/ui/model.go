// ABOUTME: Bubbletea model for the encode TUI
// ABOUTME: Defines application state and update logic
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/gibberlink-go/internal/pipeline"
	"github.com/harperreed/gibberlink-go/internal/version"
	"github.com/harperreed/gibberlink-go/pkg/codec"
)

const volumeStep = 5

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#54A0FF"))
	labelStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#73F59F"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8787"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Encoder runs one encode request
type Encoder interface {
	Encode(ctx context.Context, req pipeline.EncodeRequest) (pipeline.EncodeResult, error)
}

// Options seeds the model from configuration
type Options struct {
	Protocol string
	Volume   int
	Out      string
	Play     bool
}

// Model represents the TUI state
type Model struct {
	input   textinput.Model
	encoder Encoder

	// Settings
	protocols   []codec.Protocol
	protocolIdx int
	volume      int
	play        bool
	out         string

	// Status
	busy      bool
	status    string
	statusErr bool

	// Dimensions
	width  int
	height int
}

// encodeDoneMsg carries the outcome of an encode command
type encodeDoneMsg struct {
	result pipeline.EncodeResult
	err    error
}

// NewModel creates a new TUI model
func NewModel(encoder Encoder, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "text to transmit"
	ti.CharLimit = codec.MaxPayloadLength
	ti.Width = 50
	ti.Focus()

	m := Model{
		input:     ti,
		encoder:   encoder,
		protocols: codec.Protocols(),
		volume:    clampVolume(opts.Volume),
		play:      opts.Play,
		out:       opts.Out,
	}

	p, err := codec.ParseProtocol(opts.Protocol)
	if err != nil {
		p = codec.DefaultProtocol
	}
	m.protocolIdx = indexOf(m.protocols, p)

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, model, cmd := m.handleKey(msg); handled {
			return model, cmd
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case encodeDoneMsg:
		m.applyResult(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey handles keyboard shortcuts; unhandled keys go to the text input
func (m Model) handleKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return true, m, tea.Quit
	case "q":
		if m.input.Value() == "" {
			return true, m, tea.Quit
		}
	case "tab":
		m.protocolIdx = (m.protocolIdx + 1) % len(m.protocols)
		return true, m, nil
	case "shift+tab":
		m.protocolIdx = (m.protocolIdx + len(m.protocols) - 1) % len(m.protocols)
		return true, m, nil
	case "up":
		m.volume = clampVolume(m.volume + volumeStep)
		return true, m, nil
	case "down":
		m.volume = clampVolume(m.volume - volumeStep)
		return true, m, nil
	case "ctrl+p":
		m.play = !m.play
		return true, m, nil
	case "enter":
		cmd := m.startEncode()
		return true, m, cmd
	}
	return false, m, nil
}

// startEncode validates the input and returns the encode command
func (m *Model) startEncode() tea.Cmd {
	if m.busy {
		return nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.status = "Nothing to encode"
		m.statusErr = true
		return nil
	}

	m.busy = true
	m.status = "Encoding..."
	m.statusErr = false

	req := pipeline.EncodeRequest{
		Text:     text,
		Protocol: m.Protocol().String(),
		Volume:   m.volume,
		Out:      m.out,
		Play:     m.play,
	}
	encoder := m.encoder
	return func() tea.Msg {
		res, err := encoder.Encode(context.Background(), req)
		return encodeDoneMsg{result: res, err: err}
	}
}

// applyResult updates the status line from an encode outcome
func (m *Model) applyResult(msg encodeDoneMsg) {
	m.busy = false
	if msg.err != nil {
		m.statusErr = true
		if msg.result.Path != "" {
			m.status = fmt.Sprintf("Wrote %s, playback failed: %v", msg.result.Path, msg.err)
		} else {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}
		return
	}

	m.statusErr = false
	m.status = fmt.Sprintf("Wrote %d bytes to %s (%.1fs)", msg.result.Size, msg.result.Path, msg.result.Duration.Seconds())
	if msg.result.Played {
		m.status += " and played with " + msg.result.Playback.Player
	}
}

// Protocol returns the selected protocol
func (m Model) Protocol() codec.Protocol {
	return m.protocols[m.protocolIdx]
}

// View renders the TUI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(version.String()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Protocol:"), m.Protocol())
	fmt.Fprintf(&b, "%s [%s] %d%%\n", labelStyle.Render("Volume:  "), renderBar(m.volume, codec.MaxVolume, 20), m.volume)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Play:    "), onOff(m.play))
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Output:  "), m.out)

	if m.status != "" {
		style := okStyle
		if m.statusErr {
			style = errStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("enter:Encode  tab:Protocol  ↑/↓:Volume  ctrl+p:Play  esc:Quit"))
	b.WriteString("\n")
	return b.String()
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func clampVolume(v int) int {
	if v < codec.MinVolume {
		return codec.MinVolume
	}
	if v > codec.MaxVolume {
		return codec.MaxVolume
	}
	return v
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func indexOf(protocols []codec.Protocol, p codec.Protocol) int {
	for i, candidate := range protocols {
		if candidate == p {
			return i
		}
	}
	return 0
}
