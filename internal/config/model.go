package config

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/bayesgridgo/internal/cpd"
	"github.com/specialistvlad/bayesgridgo/internal/dag"
)

// ErrInvalidNetwork wraps every structural problem found by Validate.
var ErrInvalidNetwork = errors.New("invalid network")

// Network is the unified, format-agnostic representation of a Bayesian
// network description.
type Network struct {
	Name string
	Desc string
	// Edges lists (parent, child) pairs in declaration order.
	Edges []Edge
	// Variables in declaration order.
	Variables []*Variable
}

// Edge is a directed parent -> child link.
type Edge struct {
	Parent string
	Child  string
}

// Variable is one random variable with its display text, outcome legend and
// conditional probability table.
type Variable struct {
	Name   string
	Desc   string
	Legend []LegendEntry
	CPD    cpd.Node
	// Source is the file the variable was declared in, for error messages.
	Source string
}

// LegendEntry maps an outcome key to human-readable text.
type LegendEntry struct {
	Key   cpd.Key
	Label string
}

// Variable returns the variable with the given name.
func (n *Network) Variable(name string) (*Variable, bool) {
	for _, v := range n.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// AddEdge appends a parent -> child link unless it is already present.
func (n *Network) AddEdge(parent, child string) {
	for _, e := range n.Edges {
		if e.Parent == parent && e.Child == child {
			return
		}
	}
	n.Edges = append(n.Edges, Edge{Parent: parent, Child: child})
}

// Structure builds the directed graph of the network. Every declared
// variable becomes a node, including variables that appear in no edge.
func (n *Network) Structure() (*dag.Graph, error) {
	g := dag.New()
	for _, v := range n.Variables {
		g.AddNode(v.Name)
	}
	for _, e := range n.Edges {
		if err := g.AddEdge(e.Parent, e.Child); err != nil {
			return nil, fmt.Errorf("%w: edge %s -> %s: %v", ErrInvalidNetwork, e.Parent, e.Child, err)
		}
	}
	return g, nil
}

// Validate checks the description before any rendering or model building:
// unique variable names, edges between declared variables, no cycles, a CPD
// mapping without repeated keys per variable, and a legend that matches the
// CPD's outcomes.
func (n *Network) Validate() error {
	seen := make(map[string]string, len(n.Variables))
	for _, v := range n.Variables {
		if v.Name == "" {
			return fmt.Errorf("%w: variable without a name in %s", ErrInvalidNetwork, v.Source)
		}
		if prev, ok := seen[v.Name]; ok {
			return fmt.Errorf("%w: variable %q declared twice (%s and %s)", ErrInvalidNetwork, v.Name, prev, v.Source)
		}
		seen[v.Name] = v.Source

		if v.CPD.IsLeaf() {
			return fmt.Errorf("%w: variable %q: %w", ErrInvalidNetwork, v.Name, cpd.ErrInvalidLeaf)
		}
		if _, err := cpd.ExtractPaths(v.Name, v.CPD); err != nil {
			return fmt.Errorf("%w: variable %q: %w", ErrInvalidNetwork, v.Name, err)
		}
		if err := v.validateLegend(); err != nil {
			return err
		}
	}

	for _, e := range n.Edges {
		if _, ok := seen[e.Parent]; !ok {
			return fmt.Errorf("%w: edge %s -> %s references undeclared variable %q", ErrInvalidNetwork, e.Parent, e.Child, e.Parent)
		}
		if _, ok := seen[e.Child]; !ok {
			return fmt.Errorf("%w: edge %s -> %s references undeclared variable %q", ErrInvalidNetwork, e.Parent, e.Child, e.Child)
		}
	}

	g, err := n.Structure()
	if err != nil {
		return err
	}
	if err := g.DetectCycles(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidNetwork, err)
	}
	return nil
}

// validateLegend requires one legend entry per CPD outcome. An empty legend
// is allowed; headers then fall back to the raw keys.
func (v *Variable) validateLegend() error {
	if len(v.Legend) == 0 {
		return nil
	}
	keys := v.CPD.Keys()
	if len(keys) != len(v.Legend) {
		return fmt.Errorf("%w: variable %q has %d legend entries for %d outcomes", ErrInvalidNetwork, v.Name, len(v.Legend), len(keys))
	}
	for _, k := range keys {
		if _, ok := v.label(k); !ok {
			return fmt.Errorf("%w: variable %q has no legend entry for outcome %q", ErrInvalidNetwork, v.Name, k)
		}
	}
	return nil
}

func (v *Variable) label(k cpd.Key) (string, bool) {
	for _, e := range v.Legend {
		if e.Key.String() == k.String() {
			return e.Label, true
		}
	}
	return "", false
}

// Headers returns one entry per CPD outcome in CPD key order, the order of
// the grid columns. Outcomes missing from the legend label themselves.
func (v *Variable) Headers() []LegendEntry {
	keys := v.CPD.Keys()
	out := make([]LegendEntry, len(keys))
	for i, k := range keys {
		out[i] = LegendEntry{Key: k, Label: v.Label(k)}
	}
	return out
}

// Label returns the legend text of an outcome, or the outcome itself.
func (v *Variable) Label(k cpd.Key) string {
	if l, ok := v.label(k); ok {
		return l
	}
	return k.String()
}
