package bayes

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/bayesgridgo/internal/dag"
)

// Model is a discrete Bayesian network: a variable DAG with one tabular CPD
// per variable.
type Model struct {
	graph *dag.Graph
	cpds  map[string]*TabularCPD
}

// NewModel builds the structure from parent -> child pairs. Extra nodes are
// added first, so they fix the node order; isolated variables are passed
// the same way. Self edges and cycles are rejected.
func NewModel(edges [][2]string, nodes ...string) (*Model, error) {
	m := &Model{graph: dag.New(), cpds: make(map[string]*TabularCPD)}
	for _, n := range nodes {
		m.graph.AddNode(n)
	}
	for _, e := range edges {
		m.graph.AddNode(e[0])
		m.graph.AddNode(e[1])
		if err := m.graph.AddEdge(e[0], e[1]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
		}
	}
	if err := m.graph.DetectCycles(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	return m, nil
}

// AddNode adds a variable that takes part in no edge.
func (m *Model) AddNode(name string) {
	m.graph.AddNode(name)
}

// Nodes returns the variables in insertion order.
func (m *Model) Nodes() []string {
	return m.graph.Nodes()
}

// Edges returns the parent -> child pairs in insertion order.
func (m *Model) Edges() [][2]string {
	return m.graph.Edges()
}

// Parents returns the direct parents of a variable.
func (m *Model) Parents(name string) ([]string, error) {
	return m.graph.Parents(name)
}

// AddCPD attaches a CPD to its variable, replacing any previous one.
func (m *Model) AddCPD(c *TabularCPD) error {
	if !m.graph.Has(c.Variable) {
		return fmt.Errorf("%w: CPD defined on variable %q which is not in the model", ErrInvalidModel, c.Variable)
	}
	m.cpds[c.Variable] = c
	return nil
}

// CPD returns the CPD of a variable.
func (m *Model) CPD(name string) (*TabularCPD, bool) {
	c, ok := m.cpds[name]
	return c, ok
}

// CPDs returns the CPDs in topological order.
func (m *Model) CPDs() []*TabularCPD {
	order, err := m.graph.TopologicalOrder()
	if err != nil {
		order = m.graph.Nodes()
	}
	out := make([]*TabularCPD, 0, len(m.cpds))
	for _, name := range order {
		if c, ok := m.cpds[name]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Check verifies that every variable has a CPD whose evidence is exactly
// the variable's parents, with cardinalities matching the parents' CPDs.
func (m *Model) Check() error {
	for _, name := range m.graph.Nodes() {
		c, ok := m.cpds[name]
		if !ok {
			return fmt.Errorf("%w: no CPD associated with %q", ErrInvalidModel, name)
		}

		parents, err := m.graph.Parents(name)
		if err != nil {
			return err
		}
		if !sameSet(parents, c.Evidence) {
			return fmt.Errorf("%w: CPD of %q has evidence %v but the variable's parents are %v", ErrInvalidModel, name, c.Evidence, parents)
		}

		for i, ev := range c.Evidence {
			pc, ok := m.cpds[ev]
			if !ok {
				return fmt.Errorf("%w: no CPD associated with %q, evidence of %q", ErrInvalidModel, ev, name)
			}
			if pc.Cardinality != c.EvidenceCard[i] {
				return fmt.Errorf("%w: CPD of %q expects %q to have %d states, but it has %d", ErrInvalidModel, name, ev, c.EvidenceCard[i], pc.Cardinality)
			}
		}
	}
	return nil
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
