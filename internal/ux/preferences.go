package ux

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// PreferencesVersion is the current schema version for preferences.json.
const PreferencesVersion = "1.0"

// PreferencesFile is the file name under the workspace state directory.
const PreferencesFile = "preferences.json"

// Preferences is the persisted UX state.
type Preferences struct {
	// Version is the schema version for migration detection
	Version string `json:"version"`

	// Journey tracks the user's progression
	Journey JourneyPrefs `json:"user_journey"`

	// Guidance pins the disclosure level: minimal, standard, tutorial or
	// empty for automatic.
	Guidance string `json:"guidance,omitempty"`

	// Metrics tracks local usage statistics
	Metrics Metrics `json:"metrics"`
}

// JourneyPrefs tracks user journey state.
type JourneyPrefs struct {
	State               UserState `json:"state"`
	TransitionTimestamp string    `json:"transition_timestamp,omitempty"`
}

// Manager handles loading and saving preferences.
type Manager struct {
	mu    sync.RWMutex
	path  string
	prefs *Preferences
	now   func() time.Time
}

// NewManager creates a preferences manager for the state directory dir
// (normally <workspace>/.feel).
func NewManager(dir string) *Manager {
	return &Manager{
		path: filepath.Join(dir, PreferencesFile),
		now:  time.Now,
	}
}

// Path returns the preferences file location.
func (m *Manager) Path() string { return m.path }

// Load reads preferences from disk, using defaults if the file is missing.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.prefs = DefaultPreferences()
			return nil
		}
		return fmt.Errorf("failed to read preferences: %w", err)
	}

	var prefs Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return fmt.Errorf("failed to parse preferences: %w", err)
	}
	if prefs.Journey.State == "" {
		prefs.Journey.State = StateNew
	}
	m.prefs = &prefs
	return nil
}

// Save writes preferences to disk.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.prefs == nil {
		m.prefs = DefaultPreferences()
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(m.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// Get returns a copy of the current preferences.
func (m *Manager) Get() Preferences {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.prefs == nil {
		return *DefaultPreferences()
	}
	return *m.prefs
}

// State returns the current journey state.
func (m *Manager) State() UserState {
	return m.Get().Journey.State
}

// Disclosure returns the pinned guidance level, or the one implied by the
// journey state.
func (m *Manager) Disclosure() DisclosureLevel {
	prefs := m.Get()
	if level, ok := ParseDisclosure(prefs.Guidance); ok {
		return level
	}
	return DisclosureFor(prefs.Journey.State)
}

// SetGuidance pins the disclosure level. Unknown values reset to automatic.
func (m *Manager) SetGuidance(level string) {
	m.update(func(p *Preferences) {
		if _, ok := ParseDisclosure(level); !ok {
			level = ""
		}
		p.Guidance = level
	})
}

// RecordSession counts a started session.
func (m *Manager) RecordSession() {
	m.update(func(p *Preferences) {
		p.Metrics.Sessions++
		p.Metrics.LastSession = m.now().UTC().Format(time.RFC3339)
	})
}

// RecordJourneys counts n completed journeys.
func (m *Manager) RecordJourneys(n int) {
	if n <= 0 {
		return
	}
	m.update(func(p *Preferences) { p.Metrics.Journeys += n })
}

// RecordSuggestions counts n suggestion requests.
func (m *Manager) RecordSuggestions(n int) {
	if n <= 0 {
		return
	}
	m.update(func(p *Preferences) { p.Metrics.Suggestions += n })
}

// update applies fn and then any state transitions the metrics allow.
func (m *Manager) update(fn func(*Preferences)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.prefs == nil {
		m.prefs = DefaultPreferences()
	}
	fn(m.prefs)

	for {
		next, ok := m.prefs.Metrics.ShouldTransition(m.prefs.Journey.State)
		if !ok {
			return
		}
		m.prefs.Journey.State = next
		m.prefs.Journey.TransitionTimestamp = m.now().UTC().Format(time.RFC3339)
	}
}

// DefaultPreferences returns defaults for a new user.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Version: PreferencesVersion,
		Journey: JourneyPrefs{State: StateNew},
	}
}
