package ux

// UserState represents how far the user is into using the wheel.
type UserState string

const (
	// StateNew indicates a first-time user.
	StateNew UserState = "new"

	// StateLearning indicates the user has finished at least one journey.
	StateLearning UserState = "learning"

	// StateFamiliar indicates a returning user who needs minimal guidance.
	StateFamiliar UserState = "familiar"
)

// Thresholds for leaving the learning state.
const (
	FamiliarSessions = 3
	FamiliarJourneys = 5
)

// Metrics tracks interaction counts for state transitions.
type Metrics struct {
	Sessions    int    `json:"sessions"`
	Journeys    int    `json:"journeys"`
	Suggestions int    `json:"suggestions"`
	LastSession string `json:"last_session,omitempty"`
}

// ShouldTransition checks if the metrics warrant a state transition.
func (m *Metrics) ShouldTransition(current UserState) (UserState, bool) {
	switch current {
	case StateNew, "":
		if m.Journeys >= 1 {
			return StateLearning, true
		}
	case StateLearning:
		if m.Sessions >= FamiliarSessions && m.Journeys >= FamiliarJourneys {
			return StateFamiliar, true
		}
	}
	return current, false
}

// DisclosureLevel controls how much help the wheel shows.
type DisclosureLevel int

const (
	// DisclosureMinimal shows the short help line only.
	DisclosureMinimal DisclosureLevel = iota

	// DisclosureStandard adds the "Not sure?" hint.
	DisclosureStandard

	// DisclosureTutorial expands the help and adds an intro line.
	DisclosureTutorial
)

// String returns a human-readable name for the disclosure level.
func (d DisclosureLevel) String() string {
	switch d {
	case DisclosureMinimal:
		return "minimal"
	case DisclosureStandard:
		return "standard"
	case DisclosureTutorial:
		return "tutorial"
	default:
		return "unknown"
	}
}

// ParseDisclosure maps a guidance override to a level. The empty string
// and "auto" report false.
func ParseDisclosure(s string) (DisclosureLevel, bool) {
	switch s {
	case "minimal":
		return DisclosureMinimal, true
	case "standard":
		return DisclosureStandard, true
	case "tutorial":
		return DisclosureTutorial, true
	default:
		return DisclosureStandard, false
	}
}

// DisclosureFor returns the level for a user state.
func DisclosureFor(state UserState) DisclosureLevel {
	switch state {
	case StateFamiliar:
		return DisclosureMinimal
	case StateLearning:
		return DisclosureStandard
	default:
		return DisclosureTutorial
	}
}
