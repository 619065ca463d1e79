package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
	"github.com/leehyunseo03/crisper-app/internal/logger"
)

// Ensure GraphDataAdapter implements the interface.
var _ driving.GraphProvider = (*GraphDataAdapter)(nil)

// fetchKey identifies one memoised graph request.
type fetchKey struct {
	mode  domain.GraphViewMode
	epoch uint64
}

// GraphDataAdapter serves graph snapshots with per-(mode, epoch)
// memoisation. The stored snapshot is canonical; every caller gets a
// deep copy so layout mutation never aliases shared data.
type GraphDataAdapter struct {
	backend driven.Backend

	mu    sync.Mutex
	cache map[fetchKey]*domain.GraphData
}

// NewGraphDataAdapter creates a graph data adapter.
func NewGraphDataAdapter(backend driven.Backend) *GraphDataAdapter {
	return &GraphDataAdapter{
		backend: backend,
		cache:   make(map[fetchKey]*domain.GraphData),
	}
}

// Fetch returns a private copy of the snapshot for (mode, epoch),
// requesting from the backend at most once per pair. On a failed
// request the most recent snapshot for the mode, when one exists, is
// returned alongside the error.
func (a *GraphDataAdapter) Fetch(ctx context.Context, mode domain.GraphViewMode, epoch uint64) (*domain.GraphData, error) {
	key := fetchKey{mode: mode, epoch: epoch}

	a.mu.Lock()
	if cached, ok := a.cache[key]; ok {
		a.mu.Unlock()
		return cached.Clone(), nil
	}
	a.mu.Unlock()

	data, err := a.backend.FetchGraphData(ctx, mode)
	if err != nil {
		logger.Warn("graph fetch failed", "mode", string(mode), "epoch", epoch, "err", err)
		if prev := a.latest(mode, epoch); prev != nil {
			return prev.Clone(), fmt.Errorf("fetch graph data: %w", err)
		}
		return nil, fmt.Errorf("fetch graph data: %w", err)
	}

	a.mu.Lock()
	// Drop entries from older epochs; they can never be requested again.
	for k := range a.cache {
		if k.mode == mode && k.epoch < epoch {
			delete(a.cache, k)
		}
	}
	a.cache[key] = data
	a.mu.Unlock()

	return data.Clone(), nil
}

// latest returns the newest cached snapshot for the mode at or below
// the given epoch.
func (a *GraphDataAdapter) latest(mode domain.GraphViewMode, epoch uint64) *domain.GraphData {
	a.mu.Lock()
	defer a.mu.Unlock()

	var best *domain.GraphData
	var bestEpoch uint64
	found := false
	for k, v := range a.cache {
		if k.mode != mode || k.epoch > epoch {
			continue
		}
		if !found || k.epoch > bestEpoch {
			best, bestEpoch, found = v, k.epoch, true
		}
	}
	return best
}

// LogNodeClick forwards a node activation to the backend without
// waiting. The call can never affect the caller.
func (a *GraphDataAdapter) LogNodeClick(node *domain.GraphNode) {
	if node == nil {
		return
	}

	clicked := *node
	go func() {
		if err := a.backend.LogNodeClick(context.Background(), &clicked); err != nil {
			logger.Debug("node click audit failed", "node", clicked.ID, "err", err)
		}
	}()
}
