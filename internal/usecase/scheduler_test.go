package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncDriver struct {
	ticks   int
	stopped bool
}

func (d *syncDriver) Start(_ context.Context, job func(time.Time)) error {
	for i := 0; i < d.ticks; i++ {
		job(fixedNow.Add(time.Duration(i) * time.Hour))
	}
	return nil
}

func (d *syncDriver) Stop(context.Context) error {
	d.stopped = true
	return nil
}

type countingRunner struct {
	runs int
	err  error
}

func (r *countingRunner) Run(context.Context) (RunReport, error) {
	r.runs++
	return RunReport{RunID: "x"}, r.err
}

func TestSchedulerRunsJobPerTick(t *testing.T) {
	t.Parallel()

	driver := &syncDriver{ticks: 3}
	runner := &countingRunner{err: errors.New("boom")}
	s := NewScheduler(driver, runner, nil)

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, 3, runner.runs)

	require.NoError(t, s.Stop(context.Background()))
	assert.True(t, driver.stopped)
}

func TestSchedulerWithoutDriverIsNoop(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, &countingRunner{}, nil)
	assert.NoError(t, s.Start(context.Background()))
	assert.NoError(t, s.Stop(context.Background()))
}
