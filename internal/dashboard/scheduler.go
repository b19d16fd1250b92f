package dashboard

import (
	"sync"
	"time"
)

// Scheduler runs a callback at a fixed interval until stopped. It exists so
// the refresh loop has an explicit start/stop lifecycle and tests can drive
// ticks directly through the callback instead of waiting on wall-clock
// time.
type Scheduler struct {
	interval time.Duration
	tick     func()

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	stop      chan struct{}
	done      chan struct{}
}

func NewScheduler(interval time.Duration, tick func()) *Scheduler {
	return &Scheduler{
		interval: interval,
		tick:     tick,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the ticking goroutine. Subsequent calls are no-ops.
func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		s.started = true
		go s.run()
	})
}

func (s *Scheduler) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stop:
			return
		}
	}
}

// Stop cancels the scheduler and waits for the current tick, if any, to
// finish. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	if s.started {
		<-s.done
	}
}
