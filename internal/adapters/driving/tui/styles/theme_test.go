package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
)

func TestTheme_NodeColor(t *testing.T) {
	theme := DefaultTheme()

	assert.Equal(t, theme.NodeDocument, theme.NodeColor(domain.GroupDocument))
	assert.Equal(t, theme.NodeEntity, theme.NodeColor(domain.GroupEntity))
	assert.Equal(t, theme.NodeChunk, theme.NodeColor(domain.GroupChunk))
	assert.Equal(t, theme.NodeEvent, theme.NodeColor(domain.GroupEvent))
	assert.Equal(t, theme.NodeDefault, theme.NodeColor("galaxy"))
	assert.Equal(t, theme.NodeDefault, theme.NodeColor(""))
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s.Theme())
	assert.Equal(t, DefaultTheme().Primary, s.Theme().Primary)
}

func TestStyles_NodeUsesGroupColor(t *testing.T) {
	s := DefaultStyles()

	style := s.Node(domain.GroupEntity)
	assert.Equal(t, s.Theme().NodeEntity, style.GetForeground())
}
