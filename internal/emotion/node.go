// Package emotion defines the emotion taxonomy: nodes, their color
// vocabulary, and the wire format used by the emotions service.
package emotion

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tier depths in the taxonomy forest.
const (
	TierPrimary   = 0
	TierSecondary = 1
	TierTertiary  = 2

	// MaxDepth is the number of tiers a taxonomy may have.
	MaxDepth = 3
)

// Node is one taxonomy entry. Children hold the next tier.
type Node struct {
	Name     string
	Color    string
	Children []*Node
}

// wireNode is the service representation. Primaries carry their children
// under secondaryEmotions, secondaries under tertiaryEmotions.
type wireNode struct {
	Name              string  `json:"name" yaml:"name"`
	Color             string  `json:"color" yaml:"color"`
	SecondaryEmotions []*Node `json:"secondaryEmotions,omitempty" yaml:"secondaryEmotions,omitempty"`
	TertiaryEmotions  []*Node `json:"tertiaryEmotions,omitempty" yaml:"tertiaryEmotions,omitempty"`
}

func (w wireNode) node() Node {
	children := w.SecondaryEmotions
	if len(children) == 0 {
		children = w.TertiaryEmotions
	}
	return Node{Name: w.Name, Color: w.Color, Children: children}
}

// UnmarshalJSON decodes the service wire format.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*n = w.node()
	return nil
}

// UnmarshalYAML decodes the same shape from a YAML taxonomy file.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var w wireNode
	if err := value.Decode(&w); err != nil {
		return err
	}
	*n = w.node()
	return nil
}

// wireOut is the encoding-side twin of wireNode; it cannot reuse *Node
// children because the field name depends on depth.
type wireOut struct {
	Name              string    `json:"name"`
	Color             string    `json:"color"`
	SecondaryEmotions []wireOut `json:"secondaryEmotions,omitempty"`
	TertiaryEmotions  []wireOut `json:"tertiaryEmotions,omitempty"`
}

func toWire(nodes []*Node, depth int) []wireOut {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]wireOut, 0, len(nodes))
	for _, n := range nodes {
		w := wireOut{Name: n.Name, Color: n.Color}
		switch depth {
		case TierPrimary:
			w.SecondaryEmotions = toWire(n.Children, depth+1)
		case TierSecondary:
			w.TertiaryEmotions = toWire(n.Children, depth+1)
		}
		out = append(out, w)
	}
	return out
}

// MarshalTaxonomy encodes roots in the service wire format.
func MarshalTaxonomy(roots []*Node) ([]byte, error) {
	wire := toWire(roots, TierPrimary)
	if wire == nil {
		wire = []wireOut{}
	}
	return json.MarshalIndent(wire, "", "  ")
}

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// HasDescendant reports whether name is a child or grandchild of n.
func (n *Node) HasDescendant(name string) bool {
	for _, c := range n.Children {
		if c.Name == name || c.Child(name) != nil {
			return true
		}
	}
	return false
}

// Validate checks that names are non-empty, unique among siblings, and
// that the forest is no deeper than MaxDepth.
func Validate(roots []*Node) error {
	return validate(roots, 0, "")
}

func validate(nodes []*Node, depth int, path string) error {
	if len(nodes) > 0 && depth >= MaxDepth {
		return fmt.Errorf("taxonomy deeper than %d tiers under %q", MaxDepth, path)
	}
	seen := make(map[string]struct{}, len(nodes))
	for i, n := range nodes {
		if n == nil {
			return fmt.Errorf("nil node at index %d under %q", i, path)
		}
		if n.Name == "" {
			return fmt.Errorf("unnamed node at index %d under %q", i, path)
		}
		if _, dup := seen[n.Name]; dup {
			return fmt.Errorf("duplicate sibling %q under %q", n.Name, path)
		}
		seen[n.Name] = struct{}{}
		if err := validate(n.Children, depth+1, path+"/"+n.Name); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes in the forest.
func Count(roots []*Node) int {
	total := 0
	for _, n := range roots {
		total += 1 + Count(n.Children)
	}
	return total
}
