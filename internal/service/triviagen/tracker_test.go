package triviagen

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T, limit int) (*UsageTracker, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api_usage.json")
	tracker := NewUsageTracker(NewFileUsageStore(path), limit)
	return tracker, path
}

func TestUsageTracker_FreshFileStartsAtZero(t *testing.T) {
	tracker, _ := newTestTracker(t, 95)

	stats := tracker.Stats()

	assert.Equal(t, 0, stats.CallsMade)
	assert.Equal(t, 95, stats.Limit)
	assert.Equal(t, 95, stats.Remaining)
	assert.Equal(t, time.Now().Format("2006-01"), stats.MonthYear)
}

func TestUsageTracker_RecordCallIncrements(t *testing.T) {
	tracker, _ := newTestTracker(t, 95)

	tracker.RecordCall()
	tracker.RecordCall()
	tracker.RecordCall()

	stats := tracker.Stats()
	assert.Equal(t, 3, stats.CallsMade)
	assert.Equal(t, 92, stats.Remaining)
}

func TestUsageTracker_LimitBlocksCalls(t *testing.T) {
	tracker, _ := newTestTracker(t, 2)

	assert.True(t, tracker.CanMakeCall())
	tracker.RecordCall()
	assert.True(t, tracker.CanMakeCall())
	tracker.RecordCall()

	assert.False(t, tracker.CanMakeCall())
	assert.Equal(t, 0, tracker.Stats().Remaining)
}

func TestUsageTracker_MonthRolloverResets(t *testing.T) {
	tracker, _ := newTestTracker(t, 95)
	tracker.RecordCall()
	tracker.RecordCall()
	require.Equal(t, 2, tracker.Stats().CallsMade)

	// переводим часы на следующий месяц
	tracker.now = func() time.Time {
		return time.Now().AddDate(0, 1, 0)
	}

	stats := tracker.Stats()
	assert.Equal(t, 0, stats.CallsMade)
	assert.Equal(t, tracker.now().Format("2006-01"), stats.MonthYear)
}

func TestUsageTracker_CorruptFileResets(t *testing.T) {
	tracker, path := newTestTracker(t, 95)
	tracker.RecordCall()

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	stats := tracker.Stats()
	assert.Equal(t, 0, stats.CallsMade)
	assert.True(t, tracker.CanMakeCall())
}

func TestUsageTracker_StatePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_usage.json")

	first := NewUsageTracker(NewFileUsageStore(path), 95)
	first.RecordCall()
	first.RecordCall()

	second := NewUsageTracker(NewFileUsageStore(path), 95)
	assert.Equal(t, 2, second.Stats().CallsMade)
}

func TestUsageTracker_ForceReset(t *testing.T) {
	tracker, _ := newTestTracker(t, 95)
	tracker.RecordCall()

	tracker.ForceReset()

	assert.Equal(t, 0, tracker.Stats().CallsMade)
}
