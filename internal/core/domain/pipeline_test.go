package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestPipelineStatus_String tests status names
func TestPipelineStatus_String(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "unknown", PipelineStatus(99).String())
}

// TestLogRing_AppendBelowCapacity tests retention before eviction
func TestLogRing_AppendBelowCapacity(t *testing.T) {
	ring := NewLogRing(4)

	ring.Append(LogEntry{Level: LogInfo, Message: "first"})
	ring.Append(LogEntry{Level: LogWarn, Message: "second"})

	require.Equal(t, 2, ring.Len())
	entries := ring.Entries()
	assert.Equal(t, "first", entries[0].Message)
	assert.Equal(t, "second", entries[1].Message)
}

// TestLogRing_EvictsOldest tests bounded eviction order
func TestLogRing_EvictsOldest(t *testing.T) {
	ring := NewLogRing(3)
	for i := 1; i <= 5; i++ {
		ring.Append(LogEntry{Time: time.Now(), Message: fmt.Sprintf("entry %d", i)})
	}

	require.Equal(t, 3, ring.Len())
	entries := ring.Entries()
	assert.Equal(t, "entry 3", entries[0].Message)
	assert.Equal(t, "entry 4", entries[1].Message)
	assert.Equal(t, "entry 5", entries[2].Message)
}

// TestLogRing_DefaultCapacity tests the fallback capacity
func TestLogRing_DefaultCapacity(t *testing.T) {
	ring := NewLogRing(0)
	for i := 0; i < DefaultLogCapacity+10; i++ {
		ring.Append(LogEntry{Message: "x"})
	}
	assert.Equal(t, DefaultLogCapacity, ring.Len())
}

// TestLogRing_Properties tests ring invariants over arbitrary append
// sequences: length never exceeds capacity and the retained suffix is
// always the most recent appends in order.
func TestLogRing_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 16).Draw(t, "capacity")
		count := rapid.IntRange(0, 64).Draw(t, "count")

		ring := NewLogRing(capacity)
		for i := 0; i < count; i++ {
			ring.Append(LogEntry{Message: fmt.Sprintf("m%d", i)})
		}

		want := count
		if want > capacity {
			want = capacity
		}
		entries := ring.Entries()
		require.Len(t, entries, want)

		for i, e := range entries {
			expected := fmt.Sprintf("m%d", count-want+i)
			require.Equal(t, expected, e.Message)
		}
	})
}

// TestAccelToggle_ConfirmKeepsValue tests the optimistic flip
func TestAccelToggle_ConfirmKeepsValue(t *testing.T) {
	var toggle AccelToggle
	require.False(t, toggle.Enabled())

	visible := toggle.Begin()
	assert.True(t, visible)
	assert.True(t, toggle.Enabled())
	assert.True(t, toggle.Pending())

	toggle.Confirm()
	assert.True(t, toggle.Enabled())
	assert.False(t, toggle.Pending())
}

// TestAccelToggle_RollbackRestoresExactValue tests failure recovery
func TestAccelToggle_RollbackRestoresExactValue(t *testing.T) {
	var toggle AccelToggle

	toggle.Begin()
	toggle.Confirm()
	require.True(t, toggle.Enabled())

	// A failed flip from on to off must land back on, not at a default.
	toggle.Begin()
	assert.False(t, toggle.Enabled())
	toggle.Rollback()
	assert.True(t, toggle.Enabled())
	assert.False(t, toggle.Pending())
}
