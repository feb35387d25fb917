// Package presence keeps an in-memory record of recently-active users.
// Entries are never persisted; they exist only to show who is currently
// using the application.
package presence

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultTTL is the inactivity window after which a user is
	// considered offline
	DefaultTTL = 2 * time.Minute

	// DefaultSweepInterval is how often the background sweep removes
	// stale entries
	DefaultSweepInterval = time.Minute
)

// Entry is one online user record
type Entry struct {
	ID       int       `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"nome"`
	LastSeen time.Time `json:"lastSeen"`
}

// Tracker is a process-scoped map of online users with time-based
// eviction. Stale entries are dropped lazily on read and independently
// by a periodic sweep; eviction is monotonic.
type Tracker struct {
	mu      sync.Mutex
	entries map[int]Entry
	ttl     time.Duration
	now     func() time.Time
	stop    chan struct{}
	log     zerolog.Logger
}

// NewTracker creates a tracker with the given inactivity window.
// A zero ttl falls back to DefaultTTL.
func NewTracker(ttl time.Duration, log zerolog.Logger) *Tracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tracker{
		entries: make(map[int]Entry),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
		log:     log.With().Str("component", "presence").Logger(),
	}
}

// Heartbeat inserts or refreshes the entry for a user
func (t *Tracker) Heartbeat(id int, username, fullName string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[id] = Entry{
		ID:       id,
		Username: username,
		FullName: fullName,
		LastSeen: t.now(),
	}
}

// ListActive returns every entry seen within the inactivity window.
// Stale entries are deleted as a side effect of being read.
func (t *Tracker) ListActive() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	active := []Entry{}
	for id, e := range t.entries {
		if now.Sub(e.LastSeen) < t.ttl {
			active = append(active, e)
		} else {
			delete(t.entries, id)
		}
	}
	return active
}

// StartSweeper launches the background goroutine that removes stale
// entries once per interval until Stop is called
func (t *Tracker) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.sweep()
			case <-t.stop:
				return
			}
		}
	}()
}

// Stop terminates the background sweeper
func (t *Tracker) Stop() {
	close(t.stop)
}

func (t *Tracker) sweep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for id, e := range t.entries {
		if now.Sub(e.LastSeen) >= t.ttl {
			t.log.Debug().Str("username", e.Username).Int("user_id", id).Msg("Removing stale user")
			delete(t.entries, id)
		}
	}
}
