// Package state provides thread-safe state management for the application.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/report"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventScheduleFired   EventType = "SCHEDULE_FIRED"
	EventLocationChanged EventType = "LOCATION_CHANGED"
)

// Event is an entry in the activity log.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Label     string    `json:"label"`
	Detail    string    `json:"detail,omitempty"`
}

// dayKey identifies a cached report.
type dayKey struct {
	loc      astro.Location
	date     int
	twilight astro.Twilight
}

// Manager caches computed day reports and keeps a log of schedule activity.
type Manager struct {
	mu sync.RWMutex

	location astro.Location
	twilight astro.Twilight

	// Report cache, evicted oldest-first
	days     map[dayKey]*report.DayReport
	order    []dayKey
	maxDays  int
	hits     int
	misses   int
	computed time.Time

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	now func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	Location  astro.Location
	Twilight  astro.Twilight
	MaxDays   int
	MaxEvents int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Location:  astro.Urbana,
		Twilight:  astro.Civil,
		MaxDays:   62, // Two months of browsing
		MaxEvents: 50,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	maxDays := cfg.MaxDays
	if maxDays <= 0 {
		maxDays = 62
	}
	return &Manager{
		location:  cfg.Location,
		twilight:  cfg.Twilight,
		days:      make(map[dayKey]*report.DayReport),
		maxDays:   maxDays,
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
		now:       time.Now,
	}
}

// Location returns the current location.
func (m *Manager) Location() astro.Location {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.location
}

// Twilight returns the current twilight depression.
func (m *Manager) Twilight() astro.Twilight {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.twilight
}

// SetLocation changes the current location. Cached reports for other
// locations stay until evicted.
func (m *Manager) SetLocation(loc astro.Location) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if loc == m.location {
		return
	}
	m.location = loc
	m.addEvent(Event{
		Type:      EventLocationChanged,
		Timestamp: m.now(),
		Label:     loc.Name,
		Detail:    loc.String(),
	})
}

// Day returns the report for RD date at the current location, computing
// and caching it on first use.
func (m *Manager) Day(date int) *report.DayReport {
	m.mu.RLock()
	key := dayKey{loc: m.location, date: date, twilight: m.twilight}
	r, ok := m.days[key]
	m.mu.RUnlock()
	if ok {
		m.mu.Lock()
		m.hits++
		m.mu.Unlock()
		return r
	}

	// Compute without holding the lock; a racing caller may compute the
	// same day, and the first stored result wins.
	r = report.BuildDay(date, key.loc, key.twilight, m.now())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses++
	if existing, ok := m.days[key]; ok {
		return existing
	}
	m.days[key] = r
	m.order = append(m.order, key)
	m.computed = r.GeneratedAt
	for len(m.order) > m.maxDays {
		delete(m.days, m.order[0])
		m.order = m.order[1:]
	}
	return r
}

// RecordFire logs a schedule firing.
func (m *Manager) RecordFire(label, spec string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addEvent(Event{
		Type:      EventScheduleFired,
		Timestamp: at,
		Label:     label,
		Detail:    fmt.Sprintf("%s @ %s", spec, m.location.Name),
	})
}

// addEvent adds an event to the ring buffer. Caller must hold the lock.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
	}
	m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
}

// getEventsOrdered returns events oldest first. Caller must hold the lock.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) < m.maxEvents {
		out := make([]Event, len(m.events))
		copy(out, m.events)
		return out
	}
	out := make([]Event, 0, m.maxEvents)
	out = append(out, m.events[m.eventWriteAt:]...)
	out = append(out, m.events[:m.eventWriteAt]...)
	return out
}

// RecentEvents returns up to n of the most recent events, newest last.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := m.getEventsOrdered()
	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return events
}

// Snapshot is a point-in-time copy of the manager state.
type Snapshot struct {
	Location     astro.Location
	Twilight     astro.Twilight
	CachedDays   int
	CacheHits    int
	CacheMisses  int
	LastComputed time.Time
	Events       []Event
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		Location:     m.location,
		Twilight:     m.twilight,
		CachedDays:   len(m.days),
		CacheHits:    m.hits,
		CacheMisses:  m.misses,
		LastComputed: m.computed,
		Events:       m.getEventsOrdered(),
	}
}
