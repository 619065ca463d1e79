package driving

import (
	"context"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

// GraphProvider serves graph snapshots to views.
type GraphProvider interface {
	// Fetch returns a private deep copy of the graph for the view mode
	// at the given epoch. At most one backend request is made per
	// distinct (mode, epoch) pair.
	Fetch(ctx context.Context, mode domain.GraphViewMode, epoch uint64) (*domain.GraphData, error)

	// LogNodeClick records a node activation in the background.
	// It returns immediately; failures are logged, never surfaced.
	LogNodeClick(node *domain.GraphNode)
}
