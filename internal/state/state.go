// Package state keeps a thread-safe history of completed sightings.
package state

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-starfinder/internal/finder"
)

// Entry is one completed sighting.
type Entry struct {
	ID         string
	RecordedAt time.Time
	Duration   time.Duration
	Request    finder.Request
	Report     finder.Report // zero when Err is set
	Err        error
}

// OK reports whether the sighting completed without error.
func (e Entry) OK() bool {
	return e.Err == nil
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEntries int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEntries: 50,
	}
}

// Manager holds sighting history with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Ring buffer
	entries    []Entry
	maxEntries int
	writeAt    int

	total     int
	failures  int
	offset    int
	hasOffset bool

	now   func() time.Time
	newID func() string
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 50
	}
	return &Manager{
		entries:    make([]Entry, 0, maxEntries),
		maxEntries: maxEntries,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Record stores a finished sighting and returns the stored entry.
func (m *Manager) Record(req finder.Request, rep finder.Report, d time.Duration, err error) Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := Entry{
		ID:         m.newID(),
		RecordedAt: m.now(),
		Duration:   d,
		Request:    req,
		Err:        err,
	}
	if err == nil {
		e.Report = rep
		m.offset = rep.Location.UTCOffsetHours
		m.hasOffset = true
	} else {
		m.failures++
	}
	m.total++

	if len(m.entries) < m.maxEntries {
		m.entries = append(m.entries, e)
	} else {
		m.entries[m.writeAt] = e
		m.writeAt = (m.writeAt + 1) % m.maxEntries
	}
	return e
}

// Snapshot represents an immutable snapshot of the history.
type Snapshot struct {
	Entries  []Entry // oldest first
	Total    int
	Failures int
}

// Last returns the most recent entry, if any.
func (s Snapshot) Last() (Entry, bool) {
	if len(s.Entries) == 0 {
		return Entry{}, false
	}
	return s.Entries[len(s.Entries)-1], true
}

// Snapshot returns a consistent snapshot of the history.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Entries:  m.ordered(),
		Total:    m.total,
		Failures: m.failures,
	}
}

// ordered returns entries oldest first. Callers hold the lock.
func (m *Manager) ordered() []Entry {
	if len(m.entries) == 0 {
		return nil
	}

	if len(m.entries) < m.maxEntries {
		result := make([]Entry, len(m.entries))
		copy(result, m.entries)
		return result
	}

	result := make([]Entry, m.maxEntries)
	for i := 0; i < m.maxEntries; i++ {
		result[i] = m.entries[(m.writeAt+i)%m.maxEntries]
	}
	return result
}

// Recent returns the last n entries, newest first.
func (m *Manager) Recent(n int) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.ordered()
	if n > len(all) {
		n = len(all)
	}
	if n < 0 {
		n = 0
	}
	out := make([]Entry, 0, n)
	for i := len(all) - 1; i >= len(all)-n; i-- {
		out = append(out, all[i])
	}
	return out
}

// Get looks up an entry by ID.
func (m *Manager) Get(id string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// LastOffset returns the UTC offset resolved by the latest successful
// sighting, or fallback when there has been none.
func (m *Manager) LastOffset(fallback int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.hasOffset {
		return fallback
	}
	return m.offset
}
