package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/messages"
)

func TestView_Navigation(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	require.Equal(t, 0, v.Selected())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, v.Selected())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, v.Selected()) // clamped at top
}

func TestView_SelectEmitsViewChanged(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewPipeline, changed.View)
}

func TestView_QuitItem(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	// Navigate to the last item, which quits.
	for i := 0; i < 10; i++ {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	}
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_Render(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	out := v.View()
	assert.Contains(t, out, "Crisper")
	assert.Contains(t, out, "Pipeline")
	assert.Contains(t, out, "Chat")
	assert.Contains(t, out, "Models")
}
