package models

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leehyunseo03/crisper-app/internal/adapters/driving/tui/messages"
	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

type stubModels struct {
	entries    []domain.ModelEntry
	listErr    error
	downloaded []string
	dlErr      error
}

func (s *stubModels) List(context.Context) ([]domain.ModelEntry, error) {
	return s.entries, s.listErr
}

func (s *stubModels) Download(_ context.Context, entry domain.ModelEntry) error {
	s.downloaded = append(s.downloaded, entry.Name)
	return s.dlErr
}

func catalog() []domain.ModelEntry {
	return []domain.ModelEntry{
		{Name: "Qwen 3 4B", Filename: "qwen3-4b.gguf", SizeBytes: 2 << 30},
		{Name: "Nomic Embed", Filename: "nomic.gguf", SizeBytes: 250 << 20},
	}
}

func loadedView(t *testing.T, service *stubModels) *View {
	t.Helper()
	v := NewView(nil, service)
	v.SetDimensions(80, 24)

	cmd := v.Init()
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())
	return v
}

func TestView_LoadsCatalog(t *testing.T) {
	v := loadedView(t, &stubModels{entries: catalog()})

	require.Len(t, v.Entries(), 2)
	out := v.View()
	assert.Contains(t, out, "Qwen 3 4B")
	assert.Contains(t, out, "GiB")
	assert.Contains(t, out, "MiB")
}

func TestView_ListError(t *testing.T) {
	v := loadedView(t, &stubModels{listErr: errors.New("catalog down")})

	assert.Contains(t, v.View(), "catalog down")
}

// TestView_DownloadSelected tests that enter downloads the highlighted
// entry and reports completion.
func TestView_DownloadSelected(t *testing.T) {
	service := &stubModels{entries: catalog()}
	v := loadedView(t, service)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	v, _ = v.Update(msg)

	assert.Equal(t, []string{"Nomic Embed"}, service.downloaded)
	assert.Contains(t, v.View(), "Nomic Embed downloaded")
}

func TestView_DownloadFailure(t *testing.T) {
	service := &stubModels{entries: catalog(), dlErr: errors.New("disk full")}
	v := loadedView(t, service)

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())

	assert.Contains(t, v.View(), "disk full")
}

func TestView_NoCatalogConfigured(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 24)

	assert.Nil(t, v.Init())
	assert.Contains(t, v.View(), "No model catalog configured")
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := loadedView(t, &stubModels{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "2.0 GiB", formatSize(2<<30))
	assert.Equal(t, "250.0 MiB", formatSize(250<<20))
	assert.Equal(t, "12 B", formatSize(12))
	assert.Equal(t, "", formatSize(0))
}
