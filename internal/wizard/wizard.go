// Package wizard implements the three-stage selection state machine:
// primary, secondary and tertiary emotions, then completion.
//
// A Wizard is owned by a single event loop. It is not safe for concurrent
// use; callers serialize Toggle/Advance/Retreat/Reset.
package wizard

import (
	"whatfeeling/internal/emotion"
	"whatfeeling/internal/logging"
)

// Stage is one step of the wizard.
type Stage int

const (
	StagePrimary Stage = iota
	StageSecondary
	StageTertiary
)

// StageCount is the number of selection stages.
const StageCount = 3

func (s Stage) String() string {
	switch s {
	case StagePrimary:
		return "primary"
	case StageSecondary:
		return "secondary"
	case StageTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// NextLabel is the caption of the advance affordance at this stage.
func (s Stage) NextLabel() string {
	switch s {
	case StagePrimary:
		return "Explore Deeper"
	case StageSecondary:
		return "Refine Further"
	case StageTertiary:
		return "Conclude Journey"
	default:
		return "Next"
	}
}

// State is a snapshot of the wizard.
type State struct {
	Stage      Stage
	Selections [][]*emotion.Node
	Complete   bool
}

// Wizard tracks the current stage and per-stage selections over a fixed
// taxonomy.
type Wizard struct {
	roots      []*emotion.Node
	stage      Stage
	selections [][]*emotion.Node
	complete   bool
	theme      string
}

// New creates a wizard at the primary stage over roots.
func New(roots []*emotion.Node) *Wizard {
	w := &Wizard{roots: roots}
	w.Reset()
	return w
}

// Reset returns to the primary stage with one empty selection.
func (w *Wizard) Reset() {
	w.stage = StagePrimary
	w.selections = [][]*emotion.Node{{}}
	w.complete = false
	w.theme = emotion.DefaultColorValue
	logging.WizardDebug("reset")
}

// Stage returns the current stage.
func (w *Wizard) Stage() Stage { return w.stage }

// IsComplete reports whether the user concluded the journey.
func (w *Wizard) IsComplete() bool { return w.complete }

// Theme is the display color derived from the most recent toggle.
func (w *Wizard) Theme() string { return w.theme }

// Roots returns the taxonomy roots.
func (w *Wizard) Roots() []*emotion.Node { return w.roots }

// Selected returns the current stage's selection.
func (w *Wizard) Selected() []*emotion.Node {
	return append([]*emotion.Node(nil), w.selections[w.stage]...)
}

// Selections returns a copy of every reached stage's selection.
func (w *Wizard) Selections() [][]*emotion.Node {
	out := make([][]*emotion.Node, len(w.selections))
	for i, s := range w.selections {
		out[i] = append([]*emotion.Node{}, s...)
	}
	return out
}

// Snapshot returns the current state.
func (w *Wizard) Snapshot() State {
	return State{Stage: w.stage, Selections: w.Selections(), Complete: w.complete}
}

// IsSelected reports whether a node with this name is selected at the
// current stage.
func (w *Wizard) IsSelected(name string) bool {
	return indexOf(w.selections[w.stage], name) >= 0
}

// Candidates returns the nodes selectable at the current stage: the roots
// at the primary stage, otherwise the children of the previous stage's
// selection in selection order.
func (w *Wizard) Candidates() []*emotion.Node {
	if w.stage == StagePrimary {
		return w.roots
	}
	var out []*emotion.Node
	for _, parent := range w.selections[w.stage-1] {
		out = append(out, parent.Children...)
	}
	return out
}

// ParentColors returns the color tokens of the previous stage's selection,
// or nil at the primary stage.
func (w *Wizard) ParentColors() []string {
	if w.stage == StagePrimary {
		return nil
	}
	prev := w.selections[w.stage-1]
	out := make([]string, len(prev))
	for i, n := range prev {
		out[i] = n.Color
	}
	return out
}

// Toggle adds node to the current selection if absent, otherwise removes
// it. Nodes that are not candidates of the current stage are ignored, as
// are toggles after completion. Returns whether the selection changed.
func (w *Wizard) Toggle(node *emotion.Node) bool {
	if w.complete || node == nil || !w.isCandidate(node) {
		return false
	}
	sel := w.selections[w.stage]
	if i := indexOf(sel, node.Name); i >= 0 {
		w.selections[w.stage] = append(sel[:i:i], sel[i+1:]...)
		logging.WizardDebug("stage %s: deselected %s", w.stage, node.Name)
	} else {
		w.selections[w.stage] = append(sel, node)
		logging.WizardDebug("stage %s: selected %s", w.stage, node.Name)
	}
	w.theme = emotion.ColorValue(node.Color)
	return true
}

// CanAdvance reports whether Advance would change state.
func (w *Wizard) CanAdvance() bool {
	return !w.complete && len(w.selections[w.stage]) > 0
}

// Advance moves to the next stage, or completes from the tertiary stage.
// It is a no-op while the current selection is empty.
func (w *Wizard) Advance() bool {
	if !w.CanAdvance() {
		return false
	}
	if w.stage < StageTertiary {
		w.stage++
		w.selections = append(w.selections, []*emotion.Node{})
		logging.Wizard("advanced to %s stage", w.stage)
		return true
	}
	w.complete = true
	logging.Wizard("journey complete")
	return true
}

// CanRetreat reports whether Retreat would change state.
func (w *Wizard) CanRetreat() bool {
	return !w.complete && w.stage > StagePrimary
}

// Retreat drops the current stage's selection and returns to the previous
// stage. The theme follows the last selection of the stage returned to.
func (w *Wizard) Retreat() bool {
	if !w.CanRetreat() {
		return false
	}
	w.selections = w.selections[:len(w.selections)-1]
	w.stage--
	w.theme = emotion.DefaultColorValue
	if sel := w.selections[w.stage]; len(sel) > 0 {
		w.theme = emotion.ColorValue(sel[len(sel)-1].Color)
	}
	logging.Wizard("retreated to %s stage", w.stage)
	return true
}

func (w *Wizard) isCandidate(node *emotion.Node) bool {
	for _, c := range w.Candidates() {
		if c == node || c.Name == node.Name {
			return true
		}
	}
	return false
}

func indexOf(nodes []*emotion.Node, name string) int {
	for i, n := range nodes {
		if n.Name == name {
			return i
		}
	}
	return -1
}
