package wizard

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whatfeeling/internal/emotion"
)

func joyTaxonomy() []*emotion.Node {
	peaceful := &emotion.Node{Name: "Peaceful", Color: "Yellow"}
	content := &emotion.Node{Name: "Content", Color: "Yellow", Children: []*emotion.Node{peaceful}}
	joy := &emotion.Node{Name: "Joy", Color: "Yellow", Children: []*emotion.Node{content}}
	return []*emotion.Node{joy}
}

func wheelTaxonomy() []*emotion.Node {
	mk := func(name, color string, children ...*emotion.Node) *emotion.Node {
		return &emotion.Node{Name: name, Color: color, Children: children}
	}
	return []*emotion.Node{
		mk("Joy", "Yellow",
			mk("Content", "Yellow", mk("Peaceful", "Yellow"), mk("Free", "Yellow")),
			mk("Proud", "Yellow", mk("Confident", "Yellow"))),
		mk("Sad", "Blue",
			mk("Lonely", "Blue", mk("Isolated", "Blue")),
			mk("Hurt", "Blue", mk("Embarrassed", "Blue"))),
		mk("Angry", "Red", mk("Mad", "Red", mk("Furious", "Red"))),
	}
}

func names(nodes []*emotion.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func nestedNames(sel [][]*emotion.Node) [][]string {
	out := make([][]string, len(sel))
	for i, s := range sel {
		out[i] = names(s)
	}
	return out
}

func TestNew_StartsAtPrimaryWithOneEmptySelection(t *testing.T) {
	w := New(wheelTaxonomy())
	st := w.Snapshot()
	assert.Equal(t, StagePrimary, st.Stage)
	assert.False(t, st.Complete)
	assert.Equal(t, [][]string{{}}, nestedNames(st.Selections))
	assert.Equal(t, emotion.DefaultColorValue, w.Theme())
	assert.Equal(t, []string{"Joy", "Sad", "Angry"}, names(w.Candidates()))
	assert.Nil(t, w.ParentColors())
}

func TestToggle_OddCountsInFirstToggleOrder(t *testing.T) {
	roots := wheelTaxonomy()
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		w := New(roots)
		counts := map[string]int{}
		var firstOrder []string

		for i := 0; i < 30; i++ {
			n := roots[rng.Intn(len(roots))]
			require.True(t, w.Toggle(n))
			counts[n.Name]++
			if counts[n.Name]%2 == 1 {
				// re-entering the selection appends at the end
				firstOrder = removeName(firstOrder, n.Name)
				firstOrder = append(firstOrder, n.Name)
			} else {
				firstOrder = removeName(firstOrder, n.Name)
			}
		}

		if firstOrder == nil {
			firstOrder = []string{}
		}
		if diff := cmp.Diff(firstOrder, names(w.Selected())); diff != "" {
			t.Fatalf("round %d selection mismatch (-want +got):\n%s", round, diff)
		}
		for name, c := range counts {
			assert.Equal(t, c%2 == 1, w.IsSelected(name), "round %d %s toggled %d times", round, name, c)
		}
	}
}

func removeName(list []string, name string) []string {
	out := list[:0:0]
	for _, n := range list {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

func TestToggle_UpdatesTheme(t *testing.T) {
	roots := wheelTaxonomy()
	w := New(roots)

	w.Toggle(roots[1])
	assert.Equal(t, "#bfdbfe", w.Theme())
	w.Toggle(roots[2])
	assert.Equal(t, "#fecaca", w.Theme())
	// Removal also sets the theme from the toggled node.
	w.Toggle(roots[1])
	assert.Equal(t, "#bfdbfe", w.Theme())
}

func TestToggle_RejectsNonCandidates(t *testing.T) {
	roots := wheelTaxonomy()
	w := New(roots)

	assert.False(t, w.Toggle(roots[0].Children[0]), "secondary node is not a primary candidate")
	assert.False(t, w.Toggle(nil))
	assert.Empty(t, w.Selected())

	w.Toggle(roots[1])
	w.Advance()
	assert.False(t, w.Toggle(roots[0].Children[0]), "Joy's child is unreachable from Sad")
	assert.True(t, w.Toggle(roots[1].Children[0]))
}

func TestAdvance_GuardedByEmptySelection(t *testing.T) {
	w := New(wheelTaxonomy())
	before := w.Snapshot()

	assert.False(t, w.CanAdvance())
	assert.False(t, w.Advance())
	assert.Equal(t, before, w.Snapshot())
}

func TestAdvance_AppendsExactlyOneList(t *testing.T) {
	roots := wheelTaxonomy()
	w := New(roots)

	w.Toggle(roots[0])
	w.Toggle(roots[1])
	require.True(t, w.Advance())
	assert.Equal(t, StageSecondary, w.Stage())
	assert.Len(t, w.Selections(), 2)
	assert.Empty(t, w.Selected())
	assert.Equal(t, []string{"Content", "Proud", "Lonely", "Hurt"}, names(w.Candidates()))
	assert.Equal(t, []string{"Yellow", "Blue"}, w.ParentColors())

	w.Toggle(w.Candidates()[2])
	require.True(t, w.Advance())
	assert.Equal(t, StageTertiary, w.Stage())
	assert.Len(t, w.Selections(), 3)
	assert.Equal(t, []string{"Isolated"}, names(w.Candidates()))

	w.Toggle(w.Candidates()[0])
	require.True(t, w.Advance())
	assert.True(t, w.IsComplete())
	assert.Equal(t, StageTertiary, w.Stage())
	assert.Len(t, w.Selections(), 3, "completion retains the lists")

	assert.False(t, w.Advance(), "advance after completion is a no-op")
}

func TestRetreat(t *testing.T) {
	roots := wheelTaxonomy()
	w := New(roots)

	assert.False(t, w.Retreat(), "retreat at stage 0 is a no-op")
	assert.Equal(t, StagePrimary, w.Stage())

	w.Toggle(roots[0])
	w.Toggle(roots[2])
	w.Advance()
	w.Toggle(w.Candidates()[0])
	assert.Equal(t, "#fef08a", w.Theme())

	require.True(t, w.Retreat())
	assert.Equal(t, StagePrimary, w.Stage())
	assert.Len(t, w.Selections(), 1)
	assert.Equal(t, []string{"Joy", "Angry"}, names(w.Selected()), "previous stage keeps its selection")
	assert.Equal(t, "#fecaca", w.Theme(), "theme follows the last selection of the stage returned to")
}

func TestRetreat_EmptyStageResetsTheme(t *testing.T) {
	roots := wheelTaxonomy()
	w := New(roots)
	w.Toggle(roots[0])
	w.Advance()
	w.Toggle(w.Candidates()[0])
	w.Advance()
	w.Toggle(w.Candidates()[0])
	w.Toggle(w.Candidates()[0])

	// Clear stage 1 by hand and retreat to it: default theme.
	w.selections[StageSecondary] = nil
	require.True(t, w.Retreat())
	assert.Equal(t, emotion.DefaultColorValue, w.Theme())
}

func TestRetreat_NoOpWhenComplete(t *testing.T) {
	w := New(joyTaxonomy())
	for i := 0; i < 3; i++ {
		w.Toggle(w.Candidates()[0])
		w.Advance()
	}
	require.True(t, w.IsComplete())
	assert.False(t, w.CanRetreat())
	assert.False(t, w.Retreat())
	assert.False(t, w.Toggle(w.Candidates()[0]), "toggles are ignored after completion")
}

func TestReset_FromAnyState(t *testing.T) {
	roots := wheelTaxonomy()
	want := State{Stage: StagePrimary, Selections: [][]*emotion.Node{{}}, Complete: false}

	w := New(roots)
	w.Reset()
	assert.Equal(t, want, w.Snapshot())

	w.Toggle(roots[0])
	w.Advance()
	w.Toggle(w.Candidates()[0])
	w.Reset()
	assert.Equal(t, want, w.Snapshot())
	assert.Equal(t, emotion.DefaultColorValue, w.Theme())

	w = New(joyTaxonomy())
	for i := 0; i < 3; i++ {
		w.Toggle(w.Candidates()[0])
		w.Advance()
	}
	require.True(t, w.IsComplete())
	w.Reset()
	assert.Equal(t, want, w.Snapshot())
}

func TestJourney_JoyContentPeaceful(t *testing.T) {
	w := New(joyTaxonomy())

	w.Toggle(w.Candidates()[0])
	require.True(t, w.Advance())
	assert.Equal(t, []string{"Content"}, names(w.Candidates()))

	w.Toggle(w.Candidates()[0])
	require.True(t, w.Advance())
	assert.Equal(t, []string{"Peaceful"}, names(w.Candidates()))

	w.Toggle(w.Candidates()[0])
	require.True(t, w.Advance())

	st := w.Snapshot()
	assert.True(t, st.Complete)
	assert.Equal(t, [][]string{{"Joy"}, {"Content"}, {"Peaceful"}}, nestedNames(st.Selections))
}

func TestSnapshotIsACopy(t *testing.T) {
	roots := wheelTaxonomy()
	w := New(roots)
	w.Toggle(roots[0])

	st := w.Snapshot()
	st.Selections[0] = nil
	assert.Equal(t, []string{"Joy"}, names(w.Selected()))
}

func TestStageLabels(t *testing.T) {
	assert.Equal(t, "Explore Deeper", StagePrimary.NextLabel())
	assert.Equal(t, "Refine Further", StageSecondary.NextLabel())
	assert.Equal(t, "Conclude Journey", StageTertiary.NextLabel())
	assert.Equal(t, "Next", Stage(7).NextLabel())
	assert.Equal(t, "secondary", StageSecondary.String())
}
