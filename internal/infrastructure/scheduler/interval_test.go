package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestIntervalSchedulerRunsImmediatelyAndRepeats(t *testing.T) {
	defer goleak.VerifyNone(t)

	var runs atomic.Int32
	s := NewIntervalScheduler(10 * time.Millisecond)
	require.NoError(t, s.Start(context.Background(), func(time.Time) { runs.Add(1) }))
	require.NoError(t, s.Start(context.Background(), func(time.Time) { runs.Add(100) }), "second start is a no-op")

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
	assert.Less(t, runs.Load(), int32(100))

	require.NoError(t, s.Stop(context.Background()), "stop twice is safe")
}

func TestIntervalSchedulerStopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	s := NewIntervalScheduler(time.Hour)

	var runs atomic.Int32
	require.NoError(t, s.Start(ctx, func(time.Time) { runs.Add(1) }))
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	s.Wait()
	assert.Equal(t, int32(1), runs.Load())
}

func TestNewIntervalSchedulerDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 24*time.Hour, NewIntervalScheduler(0).Interval())
	assert.NoError(t, NewIntervalScheduler(time.Second).Start(context.Background(), nil))
}

func TestNextRunAlignsToLocalWallClock(t *testing.T) {
	t.Parallel()

	plus2 := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2025, time.November, 7, 13, 20, 0, 0, time.UTC)

	assert.Equal(t, now.Add(6*time.Hour), NextRun(now, 6*time.Hour, nil))
	assert.True(t, time.Date(2025, time.November, 7, 16, 0, 0, 0, time.UTC).Equal(NextRun(now, 6*time.Hour, plus2)))
	assert.True(t, time.Date(2025, time.November, 7, 18, 0, 0, 0, time.UTC).Equal(NextRun(now, 6*time.Hour, time.UTC)))

	boundary := time.Date(2025, time.November, 7, 12, 0, 0, 0, time.UTC)
	assert.True(t, time.Date(2025, time.November, 7, 18, 0, 0, 0, time.UTC).Equal(NextRun(boundary, 6*time.Hour, time.UTC)), "strictly after now")

	late := time.Date(2025, time.November, 7, 23, 30, 0, 0, time.UTC)
	assert.True(t, time.Date(2025, time.November, 8, 0, 0, 0, 0, time.UTC).Equal(NextRun(late, 6*time.Hour, time.UTC)))
}

func TestIntervalSchedulerWithLocationStillRepeats(t *testing.T) {
	defer goleak.VerifyNone(t)

	var runs atomic.Int32
	s := NewIntervalScheduler(10 * time.Millisecond).WithLocation(time.UTC)
	require.NoError(t, s.Start(context.Background(), func(time.Time) { runs.Add(1) }))

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
}
