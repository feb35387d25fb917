package presence

import (
	"time"
)

// SetClock overrides the tracker's time source for tests
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// Sweep runs one eviction pass synchronously
func (t *Tracker) Sweep() {
	t.sweep()
}

// Len reports the number of tracked entries, stale or not
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
