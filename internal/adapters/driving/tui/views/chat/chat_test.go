package chat

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/messages"
)

type stubChat struct {
	askFunc func(ctx context.Context, question string, onDelta func(string)) (string, error)
}

func (s *stubChat) Ask(ctx context.Context, question string, onDelta func(string)) (string, error) {
	if s.askFunc != nil {
		return s.askFunc(ctx, question, onDelta)
	}
	return "", nil
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// drive runs the view's command loop until no command remains, the way
// the bubbletea runtime would.
func drive(v *View, cmd tea.Cmd) *View {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := next()
		if msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}

		var followup tea.Cmd
		v, followup = v.Update(msg)
		queue = append(queue, followup)
	}
	return v
}

// TestView_AskStreamsAnswer tests that fragments accumulate and the
// final answer replaces them once the stream closes.
func TestView_AskStreamsAnswer(t *testing.T) {
	service := &stubChat{
		askFunc: func(_ context.Context, question string, onDelta func(string)) (string, error) {
			assert.Equal(t, "what is ada?", question)
			onDelta("Ada ")
			onDelta("Lovelace")
			return "Ada Lovelace", nil
		},
	}
	v := NewView(nil, service)
	v.SetDimensions(80, 24)

	for _, r := range "what is ada?" {
		v, _ = v.Update(keyRune(r))
	}
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	v = drive(v, cmd)

	assert.False(t, v.Streaming())
	assert.NoError(t, v.Err())
	assert.Equal(t, "Ada Lovelace", v.Answer())
	assert.Contains(t, v.View(), "Ada Lovelace")
}

func TestView_AskError(t *testing.T) {
	service := &stubChat{
		askFunc: func(context.Context, string, func(string)) (string, error) {
			return "", errors.New("llm unavailable")
		},
	}
	v := NewView(nil, service)
	v.SetDimensions(80, 24)

	v, _ = v.Update(keyRune('x'))
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = drive(v, cmd)

	assert.False(t, v.Streaming())
	assert.Error(t, v.Err())
	assert.Contains(t, v.View(), "llm unavailable")
}

// TestView_EmptyQuestionIgnored tests that enter without input does
// nothing.
func TestView_EmptyQuestionIgnored(t *testing.T) {
	v := NewView(nil, &stubChat{})
	v.SetDimensions(80, 24)

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, v.Streaming())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := NewView(nil, &stubChat{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestRenderMarkdown_FallsBackOnNarrowWidth(t *testing.T) {
	out := renderMarkdown("plain text", 0)
	assert.Contains(t, out, "plain text")
}
