package memory

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Timer is a periodic tick source with at most one live schedule. Every Start
// or Stop bumps an epoch; a tick that fires for an older epoch is dropped, so
// a cancelled schedule can never tick again even if its callback was already
// in flight.
type Timer struct {
	mu       sync.Mutex
	clock    quartz.Clock
	interval time.Duration
	epoch    uint64
	handle   *quartz.Timer
}

func NewTimer(clock quartz.Clock, interval time.Duration) *Timer {
	return &Timer{clock: clock, interval: interval}
}

// Start cancels any running schedule and begins calling onTick once per
// interval.
func (t *Timer) Start(onTick func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.armLocked(t.epoch, onTick)
}

// Stop cancels the running schedule. Safe to call when nothing runs.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
}

func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.handle != nil
}

func (t *Timer) stopLocked() {
	t.epoch++
	if t.handle != nil {
		t.handle.Stop()
		t.handle = nil
	}
}

func (t *Timer) armLocked(epoch uint64, onTick func()) {
	t.handle = t.clock.AfterFunc(t.interval, func() {
		t.mu.Lock()
		if epoch != t.epoch {
			t.mu.Unlock()
			return
		}
		t.armLocked(epoch, onTick)
		t.mu.Unlock()

		onTick()
	}, "memory", "tick")
}
