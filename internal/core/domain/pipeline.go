package domain

import (
	"sync"
	"time"
)

// PipelineStatus is the lifecycle state of the staged pipeline.
type PipelineStatus int

const (
	// StatusIdle means no stage has run since the last source change.
	StatusIdle PipelineStatus = iota

	// StatusLoading means a stage is in flight.
	StatusLoading

	// StatusSuccess means the last stage completed.
	StatusSuccess

	// StatusError means the last stage failed.
	StatusError
)

// String returns the status name.
func (s PipelineStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// PipelineStage identifies which operation a stage token belongs to.
type PipelineStage int

const (
	StageIngest PipelineStage = iota
	StageGraphBuild
	StageToggleAccel
)

// String returns the stage name.
func (s PipelineStage) String() string {
	switch s {
	case StageIngest:
		return "ingest"
	case StageGraphBuild:
		return "graph build"
	case StageToggleAccel:
		return "accel toggle"
	default:
		return "unknown"
	}
}

// StageToken identifies one started stage. A finish call whose token
// does not match the most recently issued token is stale and must not
// change pipeline state.
type StageToken struct {
	Stage PipelineStage
	Seq   uint64
}

// LogLevel classifies pipeline log entries.
type LogLevel int

const (
	LogInfo LogLevel = iota
	LogWarn
	LogError
)

// String returns the level name.
func (l LogLevel) String() string {
	switch l {
	case LogInfo:
		return "info"
	case LogWarn:
		return "warn"
	case LogError:
		return "error"
	default:
		return "unknown"
	}
}

// LogEntry is one structured pipeline log line.
type LogEntry struct {
	Time    time.Time
	Level   LogLevel
	Message string
}

// DefaultLogCapacity bounds the pipeline log ring.
const DefaultLogCapacity = 500

// LogRing is a bounded append-only log. Once full, appends evict the
// oldest entry. Safe for concurrent use.
type LogRing struct {
	mu      sync.RWMutex
	entries []LogEntry
	start   int
	count   int
}

// NewLogRing creates a ring with the given capacity.
// Non-positive capacities fall back to DefaultLogCapacity.
func NewLogRing(capacity int) *LogRing {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &LogRing{entries: make([]LogEntry, capacity)}
}

// Append adds an entry, evicting the oldest when full.
func (r *LogRing) Append(e LogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count < len(r.entries) {
		r.entries[(r.start+r.count)%len(r.entries)] = e
		r.count++
		return
	}

	r.entries[r.start] = e
	r.start = (r.start + 1) % len(r.entries)
}

// Len returns the number of retained entries.
func (r *LogRing) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Entries returns retained entries oldest first.
func (r *LogRing) Entries() []LogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]LogEntry, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.entries[(r.start+i)%len(r.entries)]
	}
	return out
}

// AccelToggle is the two-phase hardware acceleration flag. A toggle
// flips the visible value immediately; the previous value is retained
// until the backend confirms, so a failure can restore it exactly.
type AccelToggle struct {
	value    bool
	previous bool
	pending  bool
}

// Enabled returns the currently visible value.
func (t *AccelToggle) Enabled() bool {
	return t.value
}

// Pending reports whether a flip awaits confirmation.
func (t *AccelToggle) Pending() bool {
	return t.pending
}

// Begin flips the visible value optimistically and records the prior
// value for rollback. Returns the new visible value.
func (t *AccelToggle) Begin() bool {
	t.previous = t.value
	t.value = !t.value
	t.pending = true
	return t.value
}

// Confirm keeps the flipped value.
func (t *AccelToggle) Confirm() {
	t.pending = false
}

// Rollback restores the exact pre-toggle value.
func (t *AccelToggle) Rollback() {
	t.value = t.previous
	t.pending = false
}
