package realtime

import (
	"sync"
	"time"
)

// Scheduled is a deferred action that can be canceled until it starts running.
type Scheduled struct {
	mu       sync.Mutex
	timer    *time.Timer
	canceled bool
	fired    bool
}

// After runs fn once d has elapsed unless the returned action is canceled first.
func After(d time.Duration, fn func()) *Scheduled {
	s := &Scheduled{}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		if s.canceled {
			s.mu.Unlock()
			return
		}
		s.fired = true
		s.mu.Unlock()
		fn()
	})
	return s
}

// Cancel stops the action. It returns false if the action had already started.
func (s *Scheduled) Cancel() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fired {
		return false
	}
	s.canceled = true
	s.timer.Stop()
	return true
}

// Fired reports whether the action started running.
func (s *Scheduled) Fired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fired
}
