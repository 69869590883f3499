package scheduler

import (
	"context"
	"sync"
	"time"

	"SustainabilityScanner/internal/ports"
)

const defaultInterval = 24 * time.Hour

// IntervalScheduler runs a job immediately and then every interval. Jobs never
// overlap; a tick that arrives while a job is running is dropped. With a
// location set, later runs land on multiples of the interval counted from
// local midnight (00:00, 06:00, 12:00 ... for a 6h interval).
type IntervalScheduler struct {
	interval time.Duration
	location *time.Location

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

var _ ports.Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler builds a scheduler; non-positive intervals mean daily.
func NewIntervalScheduler(interval time.Duration) *IntervalScheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &IntervalScheduler{interval: interval}
}

// WithLocation aligns runs to the wall clock of loc.
func (s *IntervalScheduler) WithLocation(loc *time.Location) *IntervalScheduler {
	s.location = loc
	return s
}

// Interval returns the effective period.
func (s *IntervalScheduler) Interval() time.Duration {
	return s.interval
}

// Start begins ticking. Calling Start on a running scheduler is a no-op.
func (s *IntervalScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return nil
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop, s.done = stop, done

	go func() {
		defer close(done)

		job(time.Now())
		for {
			timer := time.NewTimer(time.Until(NextRun(time.Now(), s.interval, s.location)))
			select {
			case t := <-timer.C:
				job(t)
			case <-ctx.Done():
				timer.Stop()
				return
			case <-stop:
				timer.Stop()
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine and waits for a running job to finish or
// for ctx to expire.
func (s *IntervalScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until the scheduler goroutine exits.
func (s *IntervalScheduler) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// NextRun returns the first run time strictly after now. A nil loc means
// now+interval; otherwise the next multiple of interval since local midnight.
func NextRun(now time.Time, interval time.Duration, loc *time.Location) time.Time {
	if loc == nil {
		return now.Add(interval)
	}
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	steps := local.Sub(midnight)/interval + 1
	return midnight.Add(steps * interval)
}
