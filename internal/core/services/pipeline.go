package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
	"github.com/leehyunseo03/crisper-app/internal/logger"
)

// Ensure PipelineController implements the interface.
var _ driving.PipelineService = (*PipelineController)(nil)

// PipelineController owns all pipeline state: source path, status,
// refresh epoch, the acceleration toggle and the structured log. Views
// read snapshots; every mutation goes through a controller method.
type PipelineController struct {
	backend driven.Backend
	config  driven.ConfigStore

	mu         sync.Mutex
	status     domain.PipelineStatus
	source     string
	epoch      uint64
	seq        uint64
	active     *domain.StageToken
	toggle     domain.AccelToggle
	lastResult string

	log *domain.LogRing
}

// NewPipelineController creates a controller. The initial acceleration
// value is read from config; a config read failure starts disabled.
func NewPipelineController(backend driven.Backend, config driven.ConfigStore) *PipelineController {
	c := &PipelineController{
		backend: backend,
		config:  config,
		log:     domain.NewLogRing(domain.DefaultLogCapacity),
	}

	if config != nil {
		if cfg, err := config.Load(); err == nil {
			if cfg.GPUEnabled {
				c.toggle.Begin()
				c.toggle.Confirm()
			}
			c.source = cfg.SourcePath
		}
	}

	return c
}

// SelectSource stores the ingest source path. An empty path leaves all
// state untouched. A non-empty path resets status to idle and logs.
func (c *PipelineController) SelectSource(path string) error {
	if path == "" {
		return nil
	}

	c.mu.Lock()
	c.source = path
	c.status = domain.StatusIdle
	c.lastResult = ""
	c.mu.Unlock()

	c.Append(domain.LogInfo, fmt.Sprintf("source selected: %s", path))

	if c.config != nil {
		cfg, err := c.config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg.SourcePath = path
		if err := c.config.Save(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}

	return nil
}

// Snapshot returns a copy of the current controller state.
func (c *PipelineController) Snapshot() driving.PipelineSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return driving.PipelineSnapshot{
		Status:     c.status,
		Source:     c.source,
		Epoch:      c.epoch,
		GPUEnabled: c.toggle.Enabled(),
		GPUPending: c.toggle.Pending(),
		LastResult: c.lastResult,
	}
}

// Entries returns the retained pipeline log, oldest first.
func (c *PipelineController) Entries() []domain.LogEntry {
	return c.log.Entries()
}

// Append adds a structured entry to the pipeline log.
func (c *PipelineController) Append(level domain.LogLevel, message string) {
	c.log.Append(domain.LogEntry{Time: time.Now(), Level: level, Message: message})
}

// begin marks a stage in flight and issues its token.
func (c *PipelineController) begin(stage domain.PipelineStage) (domain.StageToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		return domain.StageToken{}, domain.ErrStageInProgress
	}

	c.seq++
	token := domain.StageToken{Stage: stage, Seq: c.seq}
	c.active = &token
	c.status = domain.StatusLoading
	return token, nil
}

// current reports whether the token belongs to the in-flight stage.
// Caller must hold the lock.
func (c *PipelineController) current(token domain.StageToken) bool {
	return c.active != nil && *c.active == token
}

// BeginIngest marks an ingest in flight. Fails without a source.
func (c *PipelineController) BeginIngest() (domain.StageToken, error) {
	c.mu.Lock()
	source := c.source
	c.mu.Unlock()

	if source == "" {
		c.Append(domain.LogWarn, "ingest rejected: no source selected")
		return domain.StageToken{}, domain.ErrNoSource
	}

	token, err := c.begin(domain.StageIngest)
	if err != nil {
		return token, err
	}

	c.Append(domain.LogInfo, "ingest started")
	return token, nil
}

// Ingest runs the backend ingest call for the given mode and path.
func (c *PipelineController) Ingest(ctx context.Context, mode driving.IngestMode, path string) (string, error) {
	switch mode {
	case driving.IngestPDFs:
		return c.backend.ProcessPDFs(ctx, path)
	case driving.IngestPDFsGraph:
		return c.backend.ProcessPDFsGraph(ctx, path)
	case driving.IngestKakao:
		return c.backend.ProcessKakaoLog(ctx, path)
	default:
		return c.backend.IngestDocuments(ctx, path)
	}
}

// FinishIngest applies an ingest outcome. Stale tokens only log.
func (c *PipelineController) FinishIngest(token domain.StageToken, result string, err error) {
	c.finish(token, result, err, false)
}

// BeginGraphBuild marks a graph construction in flight.
func (c *PipelineController) BeginGraphBuild() (domain.StageToken, error) {
	token, err := c.begin(domain.StageGraphBuild)
	if err != nil {
		return token, err
	}

	c.Append(domain.LogInfo, "graph construction started")
	return token, nil
}

// BuildGraph runs the backend graph construction call.
func (c *PipelineController) BuildGraph(ctx context.Context) (string, error) {
	return c.backend.ConstructGraph(ctx)
}

// FinishGraphBuild applies a build outcome. Success advances the
// refresh epoch so cached graph snapshots are invalidated.
func (c *PipelineController) FinishGraphBuild(token domain.StageToken, result string, err error) {
	c.finish(token, result, err, true)
}

// finish applies a stage outcome under the stale-token guard.
func (c *PipelineController) finish(token domain.StageToken, result string, err error, advanceEpoch bool) {
	c.mu.Lock()

	if !c.current(token) {
		c.mu.Unlock()
		c.Append(domain.LogWarn, fmt.Sprintf("discarded stale %s result", token.Stage))
		return
	}
	c.active = nil

	if err != nil {
		c.status = domain.StatusError
		c.mu.Unlock()
		c.Append(domain.LogError, fmt.Sprintf("%s failed: %v", token.Stage, err))
		logger.Error("pipeline stage failed", "stage", token.Stage.String(), "err", err)
		return
	}

	c.status = domain.StatusSuccess
	c.lastResult = result
	if advanceEpoch {
		c.epoch++
	}
	epoch := c.epoch
	c.mu.Unlock()

	c.Append(domain.LogInfo, fmt.Sprintf("%s finished: %s", token.Stage, result))
	if advanceEpoch {
		c.Append(domain.LogInfo, fmt.Sprintf("graph refresh epoch is now %d", epoch))
	}
}

// BeginToggleGPU flips the acceleration flag optimistically and
// returns the tentative value alongside the stage token.
func (c *PipelineController) BeginToggleGPU() (domain.StageToken, bool, error) {
	token, err := c.begin(domain.StageToggleAccel)
	if err != nil {
		return token, false, err
	}

	c.mu.Lock()
	tentative := c.toggle.Begin()
	c.mu.Unlock()

	c.Append(domain.LogInfo, fmt.Sprintf("gpu acceleration toggling to %v", tentative))
	return token, tentative, nil
}

// ApplyGPU runs the backend toggle call.
func (c *PipelineController) ApplyGPU(ctx context.Context, enable bool) error {
	return c.backend.ToggleGPU(ctx, enable)
}

// FinishToggleGPU confirms the optimistic flip or restores the exact
// pre-toggle value. Stale tokens only log. A confirmed toggle returns
// the pipeline to idle; unlike the ingest and build stages it carries
// no result worth keeping on screen.
func (c *PipelineController) FinishToggleGPU(token domain.StageToken, err error) {
	c.mu.Lock()

	if !c.current(token) {
		c.mu.Unlock()
		c.Append(domain.LogWarn, "discarded stale accel toggle result")
		return
	}
	c.active = nil

	if err != nil {
		c.toggle.Rollback()
		c.status = domain.StatusError
		restored := c.toggle.Enabled()
		c.mu.Unlock()
		c.Append(domain.LogError, fmt.Sprintf("accel toggle failed, restored %v: %v", restored, err))
		return
	}

	c.toggle.Confirm()
	c.status = domain.StatusIdle
	enabled := c.toggle.Enabled()
	c.mu.Unlock()

	c.Append(domain.LogInfo, fmt.Sprintf("gpu acceleration set to %v", enabled))
}
