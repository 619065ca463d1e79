// Package chat provides the grounded question-answering view for the TUI.
package chat

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/components/input"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/messages"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/styles"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
)

// View is the chat view. Answers stream in fragment by fragment and the
// finished answer renders as markdown.
type View struct {
	styles *styles.Styles
	chat   driving.ChatService

	questionInput *input.PromptInput
	question      string
	answer        string
	rendered      string
	deltas        chan string
	streaming     bool
	err           error

	width  int
	height int
	ready  bool
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, chat driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		chat:          chat,
		questionInput: input.NewPromptInput(s, "Ask: ", "Ask about your documents..."),
		width:         80,
		height:        24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.questionInput.Focus()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ChatDelta:
		// Fragments arriving after the stream closed are already part
		// of the final answer.
		if !v.streaming {
			return v, nil
		}
		v.answer += msg.Text
		// Keep listening until the stream closes.
		return v, v.listenCmd()

	case messages.ChatDone:
		v.streaming = false
		v.deltas = nil
		v.err = msg.Err
		if msg.Err == nil {
			v.answer = msg.Answer
			v.rendered = renderMarkdown(msg.Answer, v.width)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if v.streaming {
			return v, nil
		}
		question := strings.TrimSpace(v.questionInput.Value())
		if question == "" {
			return v, nil
		}
		return v, v.ask(question)

	case "esc":
		if v.streaming {
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	var cmd tea.Cmd
	v.questionInput, cmd = v.questionInput.Update(msg)
	return v, cmd
}

// ask starts the stream. Fragments arrive over a channel that the
// listen command drains one message at a time.
func (v *View) ask(question string) tea.Cmd {
	v.question = question
	v.answer = ""
	v.rendered = ""
	v.err = nil
	v.streaming = true
	v.questionInput.Reset()

	deltas := make(chan string, 64)
	v.deltas = deltas

	askCmd := func() tea.Msg {
		defer close(deltas)
		answer, err := v.chat.Ask(context.Background(), question, func(delta string) {
			deltas <- delta
		})
		return messages.ChatDone{Answer: answer, Err: err}
	}

	return tea.Batch(askCmd, v.listenCmd())
}

// listenCmd waits for the next stream fragment.
func (v *View) listenCmd() tea.Cmd {
	deltas := v.deltas
	if deltas == nil {
		return nil
	}
	return func() tea.Msg {
		delta, ok := <-deltas
		if !ok {
			return nil
		}
		return messages.ChatDelta{Text: delta}
	}
}

// renderMarkdown renders the answer with glamour. On render failure the
// raw text is shown instead.
func renderMarkdown(text string, width int) string {
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

// View renders the chat view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Chat"))
	b.WriteString("\n\n")
	b.WriteString(v.questionInput.View())
	b.WriteString("\n\n")

	if v.question != "" {
		b.WriteString(v.styles.Subtitle.Render("> " + v.question))
		b.WriteString("\n\n")
	}

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case v.streaming:
		b.WriteString(v.styles.Normal.Render(v.answer))
		b.WriteString(v.styles.Muted.Render("▌"))
		b.WriteString("\n")
	case v.rendered != "":
		b.WriteString(v.rendered)
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] ask  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.questionInput.SetWidth(width)
}

// Streaming reports whether an answer is in flight.
func (v *View) Streaming() bool {
	return v.streaming
}

// Answer returns the accumulated answer text.
func (v *View) Answer() string {
	return v.answer
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
