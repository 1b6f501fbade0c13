package authflow

import (
	"sync"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d. Implementations must not run fn
// concurrently with other work on the same flow.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Timer
}

// TimerScheduler schedules callbacks with time.AfterFunc. When Guard is set the
// callback runs while holding it, which keeps a single writer per session.
type TimerScheduler struct {
	Guard sync.Locker
}

// Schedule implements Scheduler.
func (s TimerScheduler) Schedule(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		if s.Guard != nil {
			s.Guard.Lock()
			defer s.Guard.Unlock()
		}
		fn()
	})
}

// Delays are the simulated round-trip durations of each submission.
type Delays struct {
	Login         time.Duration
	Register      time.Duration
	PasswordReset time.Duration
	Verify        time.Duration
}

// DefaultDelays mirrors the timings of the marketplace front end.
func DefaultDelays() Delays {
	return Delays{
		Login:         1500 * time.Millisecond,
		Register:      1500 * time.Millisecond,
		PasswordReset: 1500 * time.Millisecond,
		Verify:        1000 * time.Millisecond,
	}
}
