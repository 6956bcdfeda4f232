package wheel

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"whatfeeling/internal/emotion"
	"whatfeeling/internal/journal"
	"whatfeeling/internal/logging"
	"whatfeeling/internal/share"
	"whatfeeling/internal/taxonomy"
	"whatfeeling/internal/wizard"
)

// Suggester turns free text into a suggested emotion.
type Suggester interface {
	Suggest(ctx context.Context, text string) (string, error)
}

// Recorder stores completed journeys.
type Recorder interface {
	Record(ctx context.Context, j journal.Journey) error
}

// =============================================================================
// MESSAGES
// =============================================================================

type taxonomyLoadedMsg struct {
	roots []*emotion.Node
}

type taxonomyFailedMsg struct {
	err error
}

// suggestionMsg carries the modal submission it answers; answers for an
// older submission are dropped.
type suggestionMsg struct {
	seq    int
	result string
	err    error
}

type shareDoneMsg struct {
	outcome share.Outcome
	err     error
}

type journalSavedMsg struct {
	journey journal.Journey
	err     error
}

// =============================================================================
// COMMANDS
// =============================================================================

func loadTaxonomy(ctx context.Context, l *taxonomy.Loader) tea.Cmd {
	return func() tea.Msg {
		roots, err := l.Load(ctx)
		if err != nil {
			return taxonomyFailedMsg{err: err}
		}
		return taxonomyLoadedMsg{roots: roots}
	}
}

func requestSuggestion(ctx context.Context, s Suggester, text string, seq int) tea.Cmd {
	return func() tea.Msg {
		result, err := s.Suggest(ctx, text)
		return suggestionMsg{seq: seq, result: result, err: err}
	}
}

func shareCard(ctx context.Context, s share.Sharer, bubbles []share.Bubble, now time.Time) tea.Cmd {
	return func() tea.Msg {
		a, err := share.NewArtifact(bubbles, now)
		if err != nil {
			return shareDoneMsg{err: err}
		}
		out, err := s.Share(ctx, a)
		return shareDoneMsg{outcome: out, err: err}
	}
}

func recordJourney(ctx context.Context, r Recorder, st wizard.State, now time.Time) tea.Cmd {
	return func() tea.Msg {
		j, err := journal.FromState(st, now)
		if err != nil {
			return journalSavedMsg{err: err}
		}
		if err := r.Record(ctx, j); err != nil {
			logging.JournalError("journey not saved: %v", err)
			return journalSavedMsg{journey: j, err: err}
		}
		return journalSavedMsg{journey: j}
	}
}
