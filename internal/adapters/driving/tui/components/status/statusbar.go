// Package status provides the pipeline status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/keymap"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/styles"
	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
)

// Bar displays pipeline state and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	snapshot driving.PipelineSnapshot
	message  string
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// The style's horizontal padding eats into the rendered width, so
	// the content line must be that much narrower or it wraps.
	content := s.width - s.styles.StatusBar.GetHorizontalFrameSize()
	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := content - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the pipeline state summary.
func (s *Bar) renderLeft() string {
	state := s.renderState()

	gpu := "gpu off"
	if s.snapshot.GPUEnabled {
		gpu = "gpu on"
	}
	if s.snapshot.GPUPending {
		gpu += " (pending)"
	}

	parts := []string{state, gpu, fmt.Sprintf("epoch %d", s.snapshot.Epoch)}
	if s.message != "" {
		parts = append(parts, s.message)
	}
	return strings.Join(parts, "  ")
}

func (s *Bar) renderState() string {
	switch s.snapshot.Status {
	case domain.StatusLoading:
		return s.styles.Warning.Render("working...")
	case domain.StatusSuccess:
		return s.styles.Success.Render("ok")
	case domain.StatusError:
		return s.styles.Error.Render("error")
	default:
		return s.styles.Muted.Render("idle")
	}
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetSnapshot sets the pipeline state to display.
func (s *Bar) SetSnapshot(snap driving.PipelineSnapshot) {
	s.snapshot = snap
}

// Snapshot returns the displayed pipeline state.
func (s *Bar) Snapshot() driving.PipelineSnapshot {
	return s.snapshot
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.snapshot = driving.PipelineSnapshot{}
	s.message = ""
}
