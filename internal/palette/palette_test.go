package palette

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whatfeeling/internal/emotion"
)

func leaf(name, color string) *emotion.Node { return &emotion.Node{Name: name, Color: color} }

func TestByName(t *testing.T) {
	s, err := ByName("positional")
	require.NoError(t, err)
	assert.Equal(t, NamePositional, s.Name())

	s, err = ByName("ancestry")
	require.NoError(t, err)
	assert.Equal(t, NameAncestry, s.Name())

	_, err = ByName("graph")
	assert.ErrorContains(t, err, "unknown coloring strategy")
	assert.Equal(t, []string{"ancestry", "positional"}, Names())
}

func TestPositional_StageZeroKeepsOwnColors(t *testing.T) {
	nodes := []*emotion.Node{leaf("Joy", "Yellow"), leaf("Sad", "Blue")}
	got := Positional{}.Colors(nodes, [][]*emotion.Node{{}}, 0)
	assert.Equal(t, []string{"Yellow", "Blue"}, got)
}

func TestPositional_EqualChunks(t *testing.T) {
	parents := []*emotion.Node{leaf("Joy", "Yellow"), leaf("Sad", "Blue")}
	nodes := []*emotion.Node{
		leaf("a", "Gray"), leaf("b", "Gray"), leaf("c", "Gray"), leaf("d", "Gray"),
	}
	got := Positional{}.Colors(nodes, [][]*emotion.Node{parents, {}}, 1)
	want := []string{"Yellow", "Yellow", "Blue", "Blue"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positional colors mismatch (-want +got):\n%s", diff)
	}
}

func TestPositional_UnevenChildrenBleedAcrossParents(t *testing.T) {
	// Joy has one child, Sad has three. Bucketing by position gives the
	// first two candidates Joy's color even though only "a" is Joy's.
	parents := []*emotion.Node{leaf("Joy", "Yellow"), leaf("Sad", "Blue")}
	nodes := []*emotion.Node{leaf("a", "Yellow"), leaf("b", "Blue"), leaf("c", "Blue"), leaf("d", "Blue")}
	got := Positional{}.Colors(nodes, [][]*emotion.Node{parents, {}}, 1)
	assert.Equal(t, []string{"Yellow", "Yellow", "Blue", "Blue"}, got)
}

func TestPositional_MoreParentsThanCandidates(t *testing.T) {
	parents := []*emotion.Node{leaf("A", "Red"), leaf("B", "Green"), leaf("C", "Pink")}
	nodes := []*emotion.Node{leaf("x", "Gray"), leaf("y", "Gray")}
	// chunk = 2/3, so x -> floor(0/0.67)=0, y -> floor(1/0.67)=1
	got := Positional{}.Colors(nodes, [][]*emotion.Node{parents, {}}, 1)
	assert.Equal(t, []string{"Red", "Green"}, got)
}

func TestPositional_EmptyParentColorFallsBack(t *testing.T) {
	parents := []*emotion.Node{leaf("A", "")}
	nodes := []*emotion.Node{leaf("x", "Orange")}
	got := Positional{}.Colors(nodes, [][]*emotion.Node{parents, {}}, 1)
	assert.Equal(t, []string{"Orange"}, got)
}

func TestAncestry_WalksSelectedPrimaries(t *testing.T) {
	peaceful := leaf("Peaceful", "Green")
	content := &emotion.Node{Name: "Content", Color: "Green", Children: []*emotion.Node{peaceful}}
	joy := &emotion.Node{Name: "Joy", Color: "Yellow", Children: []*emotion.Node{content}}
	lonely := leaf("Lonely", "Blue")

	sel := [][]*emotion.Node{{joy}, {content}, {peaceful}}
	got := Ancestry{}.Colors([]*emotion.Node{joy, content, peaceful, lonely}, sel, 2)
	assert.Equal(t, []string{"Yellow", "Yellow", "Yellow", "Blue"}, got)
}

func TestAncestry_NoSelections(t *testing.T) {
	assert.Equal(t, "Pink", Ancestry{}.Color(leaf("x", "Pink"), nil))
}

func TestGroupByColor(t *testing.T) {
	a, b, c, d := leaf("a", ""), leaf("b", ""), leaf("c", ""), leaf("d", "")
	groups := GroupByColor([]*emotion.Node{a, b, c, d}, []string{"Red", "Blue", "Red", "Green"})
	require.Len(t, groups, 3)
	assert.Equal(t, "Red", groups[0].Color)
	assert.Equal(t, []*emotion.Node{a, c}, groups[0].Nodes)
	assert.Equal(t, "Blue", groups[1].Color)
	assert.Equal(t, "Green", groups[2].Color)
}
