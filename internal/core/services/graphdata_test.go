package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

func sampleGraph() *domain.GraphData {
	return &domain.GraphData{
		Nodes: []*domain.GraphNode{
			{ID: "d1", Group: domain.GroupDocument, Label: "a.pdf", Val: domain.ValDocument},
			{ID: "c1", Group: domain.GroupChunk, Label: "p.1", Val: domain.ValChunk},
		},
		Links: []*domain.GraphLink{
			{Source: "d1", Target: "c1", Label: domain.RelContains},
		},
	}
}

// TestGraphDataAdapter_FetchOncePerKey tests (mode, epoch) memoisation
func TestGraphDataAdapter_FetchOncePerKey(t *testing.T) {
	calls := 0
	backend := &MockBackend{
		FetchGraphDataFunc: func(context.Context, domain.GraphViewMode) (*domain.GraphData, error) {
			calls++
			return sampleGraph(), nil
		},
	}
	adapter := NewGraphDataAdapter(backend)
	ctx := context.Background()

	_, err := adapter.Fetch(ctx, domain.ViewModeFull, 1)
	require.NoError(t, err)
	_, err = adapter.Fetch(ctx, domain.ViewModeFull, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// A different mode at the same epoch is a distinct key.
	_, err = adapter.Fetch(ctx, domain.ViewModeEntities, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	// A new epoch refetches.
	_, err = adapter.Fetch(ctx, domain.ViewModeFull, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

// TestGraphDataAdapter_CallersGetPrivateCopies tests the clone boundary
func TestGraphDataAdapter_CallersGetPrivateCopies(t *testing.T) {
	backend := &MockBackend{
		FetchGraphDataFunc: func(context.Context, domain.GraphViewMode) (*domain.GraphData, error) {
			return sampleGraph(), nil
		},
	}
	adapter := NewGraphDataAdapter(backend)
	ctx := context.Background()

	first, err := adapter.Fetch(ctx, domain.ViewModeFull, 1)
	require.NoError(t, err)

	// Simulate layout mutating the copy in place.
	first.Nodes[0].X = 99
	first.Links[0].SourceRef = first.Nodes[0]

	second, err := adapter.Fetch(ctx, domain.ViewModeFull, 1)
	require.NoError(t, err)
	assert.Zero(t, second.Nodes[0].X, "mutation must not leak into the cache")
	assert.Nil(t, second.Links[0].SourceRef)
	assert.NotSame(t, first.Nodes[0], second.Nodes[0])
}

// TestGraphDataAdapter_ErrorKeepsPreviousSnapshot tests degradation
func TestGraphDataAdapter_ErrorKeepsPreviousSnapshot(t *testing.T) {
	healthy := true
	backend := &MockBackend{
		FetchGraphDataFunc: func(context.Context, domain.GraphViewMode) (*domain.GraphData, error) {
			if !healthy {
				return nil, errors.New("backend down")
			}
			return sampleGraph(), nil
		},
	}
	adapter := NewGraphDataAdapter(backend)
	ctx := context.Background()

	_, err := adapter.Fetch(ctx, domain.ViewModeFull, 1)
	require.NoError(t, err)

	healthy = false
	data, err := adapter.Fetch(ctx, domain.ViewModeFull, 2)
	require.Error(t, err)
	require.NotNil(t, data, "previous snapshot survives a failed refresh")
	assert.Len(t, data.Nodes, 2)
}

// TestGraphDataAdapter_ErrorWithoutHistory tests the cold failure path
func TestGraphDataAdapter_ErrorWithoutHistory(t *testing.T) {
	backend := &MockBackend{
		FetchGraphDataFunc: func(context.Context, domain.GraphViewMode) (*domain.GraphData, error) {
			return nil, errors.New("backend down")
		},
	}
	adapter := NewGraphDataAdapter(backend)

	data, err := adapter.Fetch(context.Background(), domain.ViewModeFull, 1)
	assert.Error(t, err)
	assert.Nil(t, data)
}

// TestGraphDataAdapter_LogNodeClickIsDetached tests fire-and-forget
func TestGraphDataAdapter_LogNodeClickIsDetached(t *testing.T) {
	var mu sync.Mutex
	var logged []string
	backend := &MockBackend{
		LogNodeClickFunc: func(_ context.Context, node *domain.GraphNode) error {
			mu.Lock()
			logged = append(logged, node.ID)
			mu.Unlock()
			return errors.New("audit sink unavailable")
		},
	}
	adapter := NewGraphDataAdapter(backend)

	// Must not panic or block even though the backend fails.
	adapter.LogNodeClick(&domain.GraphNode{ID: "n1", Group: domain.GroupEntity})
	adapter.LogNodeClick(nil)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(logged) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"n1"}, logged)
}
