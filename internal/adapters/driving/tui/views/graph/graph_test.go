package graph

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/messages"
	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
)

type stubProvider struct {
	fetchFunc func(ctx context.Context, mode domain.GraphViewMode, epoch uint64) (*domain.GraphData, error)
	clicked   []string
}

func (s *stubProvider) Fetch(ctx context.Context, mode domain.GraphViewMode, epoch uint64) (*domain.GraphData, error) {
	if s.fetchFunc != nil {
		return s.fetchFunc(ctx, mode, epoch)
	}
	return testData(), nil
}

func (s *stubProvider) LogNodeClick(node *domain.GraphNode) {
	s.clicked = append(s.clicked, node.ID)
}

type stubPipeline struct {
	driving.PipelineService
	snap driving.PipelineSnapshot
}

func (s *stubPipeline) Snapshot() driving.PipelineSnapshot { return s.snap }

func loadedView(t *testing.T) (*View, *stubProvider) {
	t.Helper()
	provider := &stubProvider{}
	v := NewView(nil, provider, &stubPipeline{snap: driving.PipelineSnapshot{Epoch: 2}})
	v.SetDimensions(80, 24)

	cmd := v.Reload()
	require.NotNil(t, cmd)
	msg := cmd()
	v, _ = v.Update(msg)
	return v, provider
}

// TestView_ReloadUsesCurrentEpoch tests that fetches carry the
// controller's epoch.
func TestView_ReloadUsesCurrentEpoch(t *testing.T) {
	var gotEpoch uint64
	provider := &stubProvider{
		fetchFunc: func(_ context.Context, _ domain.GraphViewMode, epoch uint64) (*domain.GraphData, error) {
			gotEpoch = epoch
			return testData(), nil
		},
	}
	v := NewView(nil, provider, &stubPipeline{snap: driving.PipelineSnapshot{Epoch: 7}})

	cmd := v.Reload()
	cmd()

	assert.Equal(t, uint64(7), gotEpoch)
}

func TestView_LoadedRenders(t *testing.T) {
	v, _ := loadedView(t)

	out := v.View()
	assert.Contains(t, out, "Graph")
	assert.Contains(t, out, "●")
	assert.NotNil(t, v.HoveredNode())
}

// TestView_ErrorKeepsSnapshot tests that a failed refresh still renders
// the retained snapshot with an error notice.
func TestView_ErrorKeepsSnapshot(t *testing.T) {
	v, _ := loadedView(t)

	stale := v.Data()
	v, _ = v.Update(messages.GraphLoaded{Data: stale, Epoch: 2, Err: errors.New("backend down")})

	out := v.View()
	assert.Contains(t, out, "backend down")
	assert.Contains(t, out, "last good snapshot")
	assert.NotNil(t, v.Data())
}

func TestView_HoverCycles(t *testing.T) {
	v, _ := loadedView(t)
	require.Equal(t, "a", v.HoveredNode().ID)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, "b", v.HoveredNode().ID)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, "c", v.HoveredNode().ID) // wraps around
}

func TestView_ZoomClamped(t *testing.T) {
	v, _ := loadedView(t)

	for i := 0; i < 30; i++ {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	}
	assert.Equal(t, zoomMax, v.Zoom())

	for i := 0; i < 30; i++ {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	}
	assert.Equal(t, zoomMin, v.Zoom())
}

// TestView_EnterLogsClickAndSelects tests the fire-and-forget click
// audit and navigation to the detail view.
func TestView_EnterLogsClickAndSelects(t *testing.T) {
	v, provider := loadedView(t)

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	selected, ok := msg.(messages.NodeSelected)
	require.True(t, ok)
	assert.Equal(t, "a", selected.Node.ID)
	assert.Equal(t, []string{"a"}, provider.clicked)
}

func TestView_ModeToggleReloads(t *testing.T) {
	v, _ := loadedView(t)
	require.Equal(t, domain.ViewModeFull, v.Mode())

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	assert.Equal(t, domain.ViewModeEntities, v.Mode())
	assert.NotNil(t, cmd)
}

func TestShowLinkLabel(t *testing.T) {
	// Connected links always show their label.
	assert.True(t, showLinkLabel(0.25, true))

	// Unrelated links only show theirs at or above the threshold.
	assert.False(t, showLinkLabel(0.75, false))
	assert.True(t, showLinkLabel(1.0, false))
	assert.True(t, showLinkLabel(2.0, false))
}

func TestView_EmptyGraph(t *testing.T) {
	provider := &stubProvider{
		fetchFunc: func(context.Context, domain.GraphViewMode, uint64) (*domain.GraphData, error) {
			return &domain.GraphData{}, nil
		},
	}
	v := NewView(nil, provider, &stubPipeline{})
	v.SetDimensions(80, 24)

	msg := v.Reload()()
	v, _ = v.Update(msg)

	assert.Contains(t, v.View(), "Graph is empty")
	assert.Nil(t, v.HoveredNode())
}
