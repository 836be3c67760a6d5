// Package debounce provides a quiet-period scheduler with memory of the
// last dispatched value, so re-issuing an identical value never fires twice.
package debounce

import (
	"sync"
	"time"
)

// Scheduler delays a dispatch until its value has stopped changing for the
// configured quiet period. Scheduling a new value restarts the timer and
// replaces any pending dispatch.
type Scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	last    string // last value actually dispatched
	fired   bool   // whether anything has been dispatched yet
	pending string
	waiting bool
	fn      func(string)
}

// New creates a Scheduler with the given quiet period.
func New(delay time.Duration) *Scheduler {
	return &Scheduler{delay: delay}
}

// Schedule queues value for dispatch through fn after the quiet period.
// A value equal to the last dispatched one is suppressed entirely and
// cancels any pending dispatch. Returns true if a dispatch was queued.
func (s *Scheduler) Schedule(value string, fn func(string)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()

	if s.fired && value == s.last {
		return false
	}

	s.pending = value
	s.waiting = true
	s.fn = fn
	s.timer = time.AfterFunc(s.delay, s.fire)
	return true
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	if !s.waiting {
		s.mu.Unlock()
		return
	}
	value, fn := s.pending, s.fn
	s.last = value
	s.fired = true
	s.waiting = false
	s.fn = nil
	s.mu.Unlock()

	fn(value)
}

// Flush dispatches any pending value immediately.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	s.stopTimerLocked()
	s.mu.Unlock()
	s.fire()
}

// Cancel drops any pending dispatch without touching the dispatch memory.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.waiting = false
	s.fn = nil
}

// Reset cancels any pending dispatch and forgets the last dispatched value,
// so the next Schedule call always queues.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.waiting = false
	s.fn = nil
	s.last = ""
	s.fired = false
}

// Last returns the most recently dispatched value and whether anything has
// been dispatched since the last Reset.
func (s *Scheduler) Last() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.fired
}

func (s *Scheduler) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
