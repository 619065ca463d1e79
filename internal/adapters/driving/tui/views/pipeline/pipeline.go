// Package pipeline provides the staged ingest control view for the TUI.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/components/input"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/components/logpanel"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/messages"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/styles"
	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
)

// View is the pipeline control view. It renders controller state and
// issues stage commands; stage outcomes come back as messages.
type View struct {
	styles   *styles.Styles
	pipeline driving.PipelineService

	sourceInput *input.PromptInput
	logPanel    *logpanel.Panel

	editing bool
	err     error
	width   int
	height  int
	ready   bool
}

// NewView creates a new pipeline view.
func NewView(s *styles.Styles, pipeline driving.PipelineService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles:      s,
		pipeline:    pipeline,
		sourceInput: input.NewPromptInput(s, "Source: ", "Path to ingest directory..."),
		logPanel:    logpanel.NewPanel(s),
	}
	v.sourceInput.Blur()
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the pipeline view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditingKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.IngestFinished, messages.GraphBuildFinished, messages.GPUToggleFinished:
		// The app applied the outcome to the controller already; the
		// view only needs a re-render, which happens on return.
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleEditingKeyMsg handles keys while the source input is focused.
func (v *View) handleEditingKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := strings.TrimSpace(v.sourceInput.Value())
		v.editing = false
		v.sourceInput.Blur()
		if err := v.pipeline.SelectSource(path); err != nil {
			v.err = err
		}
		return v, nil

	case "esc":
		v.editing = false
		v.sourceInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.sourceInput, cmd = v.sourceInput.Update(msg)
	return v, cmd
}

// handleKeyMsg handles keys in command mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "s":
		v.editing = true
		v.err = nil
		v.sourceInput.SetValue(v.pipeline.Snapshot().Source)
		return v, v.sourceInput.Focus()

	case "i":
		return v.startIngest(driving.IngestAll)
	case "p":
		return v.startIngest(driving.IngestPDFs)
	case "P":
		return v.startIngest(driving.IngestPDFsGraph)
	case "l":
		return v.startIngest(driving.IngestKakao)

	case "b":
		return v.startGraphBuild()

	case "g":
		return v.startToggleGPU()

	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// startIngest begins an ingest stage and returns the command running it.
func (v *View) startIngest(mode driving.IngestMode) (*View, tea.Cmd) {
	token, err := v.pipeline.BeginIngest()
	if err != nil {
		v.err = err
		return v, nil
	}

	v.err = nil
	source := v.pipeline.Snapshot().Source
	return v, func() tea.Msg {
		result, err := v.pipeline.Ingest(context.Background(), mode, source)
		return messages.IngestFinished{Token: token, Result: result, Err: err}
	}
}

// startGraphBuild begins graph construction.
func (v *View) startGraphBuild() (*View, tea.Cmd) {
	token, err := v.pipeline.BeginGraphBuild()
	if err != nil {
		v.err = err
		return v, nil
	}

	v.err = nil
	return v, func() tea.Msg {
		result, err := v.pipeline.BuildGraph(context.Background())
		return messages.GraphBuildFinished{Token: token, Result: result, Err: err}
	}
}

// startToggleGPU flips the acceleration flag optimistically. The
// tentative value renders immediately; the outcome confirms or rolls
// it back.
func (v *View) startToggleGPU() (*View, tea.Cmd) {
	token, tentative, err := v.pipeline.BeginToggleGPU()
	if err != nil {
		v.err = err
		return v, nil
	}

	v.err = nil
	return v, func() tea.Msg {
		err := v.pipeline.ApplyGPU(context.Background(), tentative)
		return messages.GPUToggleFinished{Token: token, Err: err}
	}
}

// View renders the pipeline view.
func (v *View) View() string {
	var b strings.Builder

	snap := v.pipeline.Snapshot()

	b.WriteString(v.styles.Title.Render("Pipeline"))
	b.WriteString("\n\n")

	if v.editing {
		b.WriteString(v.sourceInput.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] set source  [esc] cancel"))
		return b.String()
	}

	source := snap.Source
	if source == "" {
		source = v.styles.Muted.Render("(no source selected)")
	}
	b.WriteString(v.styles.Normal.Render("Source:  ") + source)
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("Status:  ") + v.renderStatus(snap))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("GPU:     ") + v.renderGPU(snap))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("Epoch:   ") + fmt.Sprintf("%d", snap.Epoch))
	b.WriteString("\n")

	if snap.LastResult != "" {
		b.WriteString(v.styles.Success.Render("Result:  " + snap.LastResult))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error:   " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Log"))
	b.WriteString("\n")
	v.logPanel.SetEntries(v.pipeline.Entries())
	b.WriteString(v.logPanel.View())

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderStatus(snap driving.PipelineSnapshot) string {
	switch snap.Status {
	case domain.StatusLoading:
		return v.styles.Warning.Render(snap.Status.String())
	case domain.StatusSuccess:
		return v.styles.Success.Render(snap.Status.String())
	case domain.StatusError:
		return v.styles.Error.Render(snap.Status.String())
	default:
		return v.styles.Muted.Render(snap.Status.String())
	}
}

func (v *View) renderGPU(snap driving.PipelineSnapshot) string {
	label := "off"
	if snap.GPUEnabled {
		label = "on"
	}
	if snap.GPUPending {
		return v.styles.Warning.Render(label + " (pending)")
	}
	return v.styles.Normal.Render(label)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render(
		"[s] source  [i] ingest  [p] pdfs  [P] pdfs+graph  [l] kakao log  [b] build  [g] gpu  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.sourceInput.SetWidth(width)

	logHeight := height - 14
	if logHeight < 3 {
		logHeight = 3
	}
	v.logPanel.SetDimensions(width, logHeight)
}

// Editing returns whether the source input is focused.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last error shown by the view.
func (v *View) Err() error {
	return v.err
}
