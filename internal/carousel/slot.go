package carousel

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Slot holds at most one pending deferred action. Arm cancels whatever was
// pending before scheduling the replacement.
//
// Arm, Cancel and Armed must be called with lock held. The action runs with
// lock held, and only if no Arm or Cancel happened after it was scheduled.
type Slot struct {
	clock clockwork.Clock
	lock  sync.Locker
	timer clockwork.Timer
	gen   uint64
}

// NewSlot returns an empty slot whose actions serialise on lock.
func NewSlot(clk clockwork.Clock, lock sync.Locker) *Slot {
	return &Slot{clock: clk, lock: lock}
}

// Arm schedules action to run after d, replacing any pending action.
func (s *Slot) Arm(d time.Duration, action func()) {
	s.Cancel()
	gen := s.gen
	s.timer = s.clock.AfterFunc(d, func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		// A timer that already fired cannot be stopped, so a stale callback
		// may still get here after a rearm.
		if s.gen != gen || s.timer == nil {
			return
		}
		s.timer = nil
		action()
	})
}

// Cancel drops the pending action, if any.
func (s *Slot) Cancel() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Armed reports whether an action is pending.
func (s *Slot) Armed() bool {
	return s.timer != nil
}
