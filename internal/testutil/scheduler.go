package testutil

import (
	"sync"
	"time"

	"github.com/spec-kit/estate-navigator/internal/authflow"
)

// ManualScheduler queues callbacks until the test fires them.
type ManualScheduler struct {
	mu    sync.Mutex
	tasks []*ManualTimer
}

// ManualTimer is a queued callback.
type ManualTimer struct {
	Delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// Stop cancels the callback if it has not fired.
func (t *ManualTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Schedule implements authflow.Scheduler.
func (s *ManualScheduler) Schedule(d time.Duration, fn func()) authflow.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &ManualTimer{Delay: d, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Pending returns the number of callbacks that are neither fired nor stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// FireAll runs every queued callback that has not been stopped, in order.
// Callbacks scheduled while firing are left for the next call.
func (s *ManualScheduler) FireAll() int {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	n := 0
	for _, t := range tasks {
		if t.fired || t.stopped {
			continue
		}
		t.fired = true
		t.fn()
		n++
	}
	return n
}

// ForceFireAll runs every queued callback, including stopped ones. It models a
// timer that fires after its owner has been torn down.
func (s *ManualScheduler) ForceFireAll() int {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	for _, t := range tasks {
		t.fired = true
		t.fn()
	}
	return len(tasks)
}

// LastDelay returns the delay of the most recently scheduled callback.
func (s *ManualScheduler) LastDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tasks) == 0 {
		return 0
	}
	return s.tasks[len(s.tasks)-1].Delay
}
