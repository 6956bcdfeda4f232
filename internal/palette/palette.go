// Package palette resolves which color category a candidate or selected
// emotion is drawn with. Two strategies coexist and are chosen per view:
// Positional buckets candidates by index, Ancestry walks the taxonomy.
package palette

import (
	"fmt"
	"math"
	"sort"

	"whatfeeling/internal/emotion"
)

// Strategy resolves one color token per node for the given stage.
type Strategy interface {
	Name() string
	Colors(nodes []*emotion.Node, selections [][]*emotion.Node, stage int) []string
}

const (
	NamePositional = "positional"
	NameAncestry   = "ancestry"
)

var strategies = map[string]Strategy{
	NamePositional: Positional{},
	NameAncestry:   Ancestry{},
}

// ByName returns the strategy registered under name.
func ByName(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown coloring strategy %q (valid: %v)", name, Names())
	}
	return s, nil
}

// Names lists the registered strategy names.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Positional assigns colors by splitting the flattened candidate list into
// N equal contiguous chunks, one per ancestor selected at the previous
// stage, in selection order. It does not consult parent/child links, so a
// candidate can land in a neighbour's chunk when sibling counts differ.
type Positional struct{}

func (Positional) Name() string { return NamePositional }

func (Positional) Colors(nodes []*emotion.Node, selections [][]*emotion.Node, stage int) []string {
	out := make([]string, len(nodes))
	var parents []*emotion.Node
	if stage > 0 && stage <= len(selections) {
		parents = selections[stage-1]
	}
	n, p := float64(len(nodes)), float64(len(parents))
	for i, node := range nodes {
		out[i] = node.Color
		if len(parents) == 0 {
			continue
		}
		idx := int(math.Floor(float64(i) / (n / p)))
		if idx < 0 || idx >= len(parents) {
			continue
		}
		if c := parents[idx].Color; c != "" {
			out[i] = c
		}
	}
	return out
}

// Ancestry colors each node with the color of the selected primary that
// is the node itself or one of its ancestors, matched by name. Nodes
// without a selected primary ancestor keep their own color.
type Ancestry struct{}

func (Ancestry) Name() string { return NameAncestry }

func (a Ancestry) Colors(nodes []*emotion.Node, selections [][]*emotion.Node, _ int) []string {
	out := make([]string, len(nodes))
	for i, node := range nodes {
		out[i] = a.Color(node, selections)
	}
	return out
}

// Color resolves a single node.
func (Ancestry) Color(node *emotion.Node, selections [][]*emotion.Node) string {
	if len(selections) > 0 {
		for _, primary := range selections[0] {
			if primary.Name == node.Name || primary.HasDescendant(node.Name) {
				return primary.Color
			}
		}
	}
	return node.Color
}

// Group is a run of candidates drawn with the same color.
type Group struct {
	Color string
	Nodes []*emotion.Node
}

// GroupByColor partitions nodes by their resolved color, keeping groups in
// order of first appearance and nodes in their original order.
func GroupByColor(nodes []*emotion.Node, colors []string) []Group {
	var groups []Group
	index := make(map[string]int)
	for i, node := range nodes {
		c := ""
		if i < len(colors) {
			c = colors[i]
		}
		gi, ok := index[c]
		if !ok {
			gi = len(groups)
			index[c] = gi
			groups = append(groups, Group{Color: c})
		}
		groups[gi].Nodes = append(groups[gi].Nodes, node)
	}
	return groups
}
