package pipeline

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/messages"
	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driving"
)

type stubPipeline struct {
	driving.PipelineService

	snap     driving.PipelineSnapshot
	beginErr error
	seq      uint64

	selected   string
	ingestMode driving.IngestMode
	ingestPath string
	applied    []bool
}

func (s *stubPipeline) SelectSource(path string) error {
	s.selected = path
	if path != "" {
		s.snap.Source = path
	}
	return nil
}

func (s *stubPipeline) Snapshot() driving.PipelineSnapshot { return s.snap }

func (s *stubPipeline) Entries() []domain.LogEntry { return nil }

func (s *stubPipeline) begin(stage domain.PipelineStage) (domain.StageToken, error) {
	if s.beginErr != nil {
		return domain.StageToken{}, s.beginErr
	}
	s.seq++
	return domain.StageToken{Stage: stage, Seq: s.seq}, nil
}

func (s *stubPipeline) BeginIngest() (domain.StageToken, error) {
	return s.begin(domain.StageIngest)
}

func (s *stubPipeline) Ingest(_ context.Context, mode driving.IngestMode, path string) (string, error) {
	s.ingestMode = mode
	s.ingestPath = path
	return "1 documents stored", nil
}

func (s *stubPipeline) BeginGraphBuild() (domain.StageToken, error) {
	return s.begin(domain.StageGraphBuild)
}

func (s *stubPipeline) BuildGraph(context.Context) (string, error) {
	return "2 nodes, 1 edges", nil
}

func (s *stubPipeline) BeginToggleGPU() (domain.StageToken, bool, error) {
	token, err := s.begin(domain.StageToggleAccel)
	if err != nil {
		return domain.StageToken{}, false, err
	}
	s.snap.GPUEnabled = !s.snap.GPUEnabled
	return token, s.snap.GPUEnabled, nil
}

func (s *stubPipeline) ApplyGPU(_ context.Context, enable bool) error {
	s.applied = append(s.applied, enable)
	return nil
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// TestView_SetSource tests entering and committing a source path.
func TestView_SetSource(t *testing.T) {
	pipeline := &stubPipeline{}
	v := NewView(nil, pipeline)
	v.SetDimensions(80, 24)

	v, _ = v.Update(keyRune('s'))
	require.True(t, v.Editing())

	for _, r := range "/data/docs" {
		v, _ = v.Update(keyRune(r))
	}
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, v.Editing())
	assert.Equal(t, "/data/docs", pipeline.selected)
}

// TestView_IngestProducesFinishMessage tests the begin/run/finish split
// across the command boundary.
func TestView_IngestProducesFinishMessage(t *testing.T) {
	pipeline := &stubPipeline{snap: driving.PipelineSnapshot{Source: "/data/docs"}}
	v := NewView(nil, pipeline)

	v, cmd := v.Update(keyRune('i'))
	require.NotNil(t, cmd)

	msg := cmd()
	finished, ok := msg.(messages.IngestFinished)
	require.True(t, ok)
	assert.Equal(t, domain.StageIngest, finished.Token.Stage)
	assert.Equal(t, "1 documents stored", finished.Result)
	assert.NoError(t, finished.Err)
	assert.Equal(t, driving.IngestAll, pipeline.ingestMode)
	assert.Equal(t, "/data/docs", pipeline.ingestPath)
}

func TestView_IngestModeKeys(t *testing.T) {
	cases := []struct {
		key  rune
		mode driving.IngestMode
	}{
		{'i', driving.IngestAll},
		{'p', driving.IngestPDFs},
		{'P', driving.IngestPDFsGraph},
		{'l', driving.IngestKakao},
	}

	for _, tc := range cases {
		pipeline := &stubPipeline{snap: driving.PipelineSnapshot{Source: "/x"}}
		v := NewView(nil, pipeline)

		_, cmd := v.Update(keyRune(tc.key))
		require.NotNil(t, cmd, "key %q", tc.key)
		cmd()
		assert.Equal(t, tc.mode, pipeline.ingestMode, "key %q", tc.key)
	}
}

// TestView_BeginErrorShown tests that a rejected stage start renders
// instead of producing a command.
func TestView_BeginErrorShown(t *testing.T) {
	pipeline := &stubPipeline{beginErr: domain.ErrNoSource}
	v := NewView(nil, pipeline)
	v.SetDimensions(80, 24)

	v, cmd := v.Update(keyRune('i'))
	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), domain.ErrNoSource)
	assert.Contains(t, v.View(), domain.ErrNoSource.Error())
}

func TestView_BuildProducesFinishMessage(t *testing.T) {
	pipeline := &stubPipeline{}
	v := NewView(nil, pipeline)

	_, cmd := v.Update(keyRune('b'))
	require.NotNil(t, cmd)

	finished, ok := cmd().(messages.GraphBuildFinished)
	require.True(t, ok)
	assert.Equal(t, "2 nodes, 1 edges", finished.Result)
}

// TestView_ToggleAppliesTentativeValue tests that the optimistic value
// is what the backend call carries.
func TestView_ToggleAppliesTentativeValue(t *testing.T) {
	pipeline := &stubPipeline{}
	v := NewView(nil, pipeline)

	_, cmd := v.Update(keyRune('g'))
	require.NotNil(t, cmd)

	finished, ok := cmd().(messages.GPUToggleFinished)
	require.True(t, ok)
	assert.NoError(t, finished.Err)
	assert.Equal(t, []bool{true}, pipeline.applied)
}

func TestView_RendersSnapshot(t *testing.T) {
	pipeline := &stubPipeline{snap: driving.PipelineSnapshot{
		Status:     domain.StatusSuccess,
		Source:     "/data/docs",
		Epoch:      3,
		GPUEnabled: true,
		LastResult: "4 documents stored",
	}}
	v := NewView(nil, pipeline)
	v.SetDimensions(80, 24)

	out := v.View()
	assert.Contains(t, out, "/data/docs")
	assert.Contains(t, out, "success")
	assert.Contains(t, out, "4 documents stored")
	assert.Contains(t, out, "3")
}
