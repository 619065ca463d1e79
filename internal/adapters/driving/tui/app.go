package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/components/status"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/messages"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/styles"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/views/chat"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/views/documents"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/views/graph"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/views/menu"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/views/models"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/views/nodedetail"
	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/views/pipeline"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea. The graph and
// document views stay alive across navigation, so switching between
// them preserves hover, zoom and expansion state.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// pipelineView is the ingest pipeline control view.
	pipelineView *pipeline.View

	// graphView is the knowledge graph view.
	graphView *graph.View

	// nodeDetailView shows one selected graph node.
	nodeDetailView *nodedetail.View

	// documentsView is the document list view.
	documentsView *documents.View

	// chatView is the grounded question-answering view.
	chatView *chat.View

	// modelsView is the model catalog view.
	modelsView *models.View

	// statusBar shows pipeline state under every view.
	statusBar *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		menuView:       menu.NewView(s),
		pipelineView:   pipeline.NewView(s, ports.Pipeline),
		graphView:      graph.NewView(s, ports.Graph, ports.Pipeline),
		nodeDetailView: nodedetail.NewView(s),
		documentsView:  documents.NewView(s, ports.Document),
		chatView:       chat.NewView(s, ports.Chat),
		modelsView:     models.NewView(s, ports.Model),
		statusBar:      status.NewBar(s, nil),
		currentView:    messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("crisper - Local Knowledge Graph"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.pipelineView.SetDimensions(msg.Width, msg.Height)
		a.graphView.SetDimensions(msg.Width, msg.Height)
		a.nodeDetailView.SetDimensions(msg.Width, msg.Height)
		a.documentsView.SetDimensions(msg.Width, msg.Height)
		a.chatView.SetDimensions(msg.Width, msg.Height)
		a.modelsView.SetDimensions(msg.Width, msg.Height)
		a.statusBar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.forwardToCurrent(msg)

	// Stage outcomes apply to the controller even when the user has
	// navigated away; a superseded token is discarded inside Finish.
	case messages.IngestFinished:
		a.ports.Pipeline.FinishIngest(msg.Token, msg.Result, msg.Err)
		a.pipelineView, cmd = a.pipelineView.Update(msg)
		return a, cmd

	case messages.GraphBuildFinished:
		a.ports.Pipeline.FinishGraphBuild(msg.Token, msg.Result, msg.Err)
		a.pipelineView, cmd = a.pipelineView.Update(msg)
		return a, cmd

	case messages.GPUToggleFinished:
		a.ports.Pipeline.FinishToggleGPU(msg.Token, msg.Err)
		a.pipelineView, cmd = a.pipelineView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		return a.switchView(msg.View)

	case messages.NodeSelected:
		a.nodeDetailView.SetNode(msg.Node)
		a.currentView = messages.ViewNodeDetail
		return a, nil

	case messages.GraphLoaded:
		a.graphView, cmd = a.graphView.Update(msg)
		return a, cmd

	case messages.DocumentsLoaded, messages.SourceChanged:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.ChatDelta, messages.ChatDone:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.ModelsLoaded, messages.ModelDownloaded:
		a.modelsView, cmd = a.modelsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a.forwardToCurrent(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a.forwardToCurrent(msg)
}

// switchView activates a view and runs its entry command.
func (a *App) switchView(view messages.ViewType) (tea.Model, tea.Cmd) {
	a.currentView = view

	switch view {
	case messages.ViewGraph:
		return a, a.graphView.Reload()
	case messages.ViewDocuments:
		return a, tea.Batch(
			a.documentsView.Init(),
			a.documentsView.WatchSource(a.ports.Pipeline.Snapshot().Source),
		)
	case messages.ViewChat:
		return a, a.chatView.Init()
	case messages.ViewModels:
		return a, a.modelsView.Init()
	case messages.ViewMenu, messages.ViewPipeline,
		messages.ViewNodeDetail, messages.ViewHelp:
		// These views need no entry command.
	}
	return a, nil
}

// forwardToCurrent routes a message to the active view.
func (a *App) forwardToCurrent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewPipeline:
		a.pipelineView, cmd = a.pipelineView.Update(msg)
	case messages.ViewGraph:
		a.graphView, cmd = a.graphView.Update(msg)
	case messages.ViewNodeDetail:
		a.nodeDetailView, cmd = a.nodeDetailView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewModels:
		a.modelsView, cmd = a.modelsView.Update(msg)
	case messages.ViewHelp:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	return a.viewContent() + "\n" + a.renderStatusBar()
}

// renderStatusBar refreshes the bar from the controller before render.
func (a *App) renderStatusBar() string {
	a.statusBar.SetSnapshot(a.ports.Pipeline.Snapshot())
	return a.statusBar.View()
}

// viewContent renders the active view.
func (a *App) viewContent() string {
	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewPipeline:
		return a.pipelineView.View()
	case messages.ViewGraph:
		return a.graphView.View()
	case messages.ViewNodeDetail:
		return a.nodeDetailView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewModels:
		return a.modelsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Pipeline:
  s           Set source directory
  i           Ingest documents
  p / P       Ingest PDFs / PDFs + build
  l           Ingest Kakao chat log
  b           Build knowledge graph
  g           Toggle GPU acceleration

Graph:
  j/k, ↑/↓    Move hover
  +/-         Zoom
  m           Toggle full/entity view
  enter       Node details
  tab         Switch to documents

Documents:
  j/k, ↑/↓    Navigate
  enter       Expand/collapse chunks
  tab         Switch to graph

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.documentsView.Close()
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.pipelineView.SetDimensions(width, height)
	a.graphView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
