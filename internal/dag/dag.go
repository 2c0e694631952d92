package dag

import (
	"fmt"
	"strings"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a variable to the graph. Adding an existing variable is a
// no-op.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{id: id}
	g.order = append(g.order, id)
}

// AddEdge links parent to child. Both variables must exist. A repeated edge
// is ignored; a self edge is an error.
func (g *Graph) AddEdge(parentID, childID string) error {
	if parentID == childID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", parentID, parentID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	parent, ok := g.nodes[parentID]
	if !ok {
		return fmt.Errorf("source node not found: %s", parentID)
	}

	child, ok := g.nodes[childID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", childID)
	}

	if child.hasParent(parentID) {
		return nil
	}
	child.parents = append(child.parents, parent)
	parent.children = append(parent.children, child)

	return nil
}

// Nodes returns every variable in insertion order.
func (g *Graph) Nodes() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Has reports whether the variable exists.
func (g *Graph) Has(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	_, ok := g.nodes[id]
	return ok
}

// Parents returns the variables id is conditioned on, in edge order.
func (g *Graph) Parents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return ids(n.parents), nil
}

// Children returns the variables conditioned on id, in edge order.
func (g *Graph) Children(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return ids(n.children), nil
}

// Edges returns every (parent, child) pair, grouped by child in node order.
func (g *Graph) Edges() [][2]string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var edges [][2]string
	for _, id := range g.order {
		for _, p := range g.nodes[id].parents {
			edges = append(edges, [2]string{p.id, id})
		}
	}
	return edges
}

// DetectCycles checks the graph for any cycles. The error names the nodes on
// the first cycle found, in traversal order.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// permanent: fully explored and known to be acyclic.
	// stack: nodes on the current depth-first path.
	permanent := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if onStack[n.id] {
			start := 0
			for i, id := range stack {
				if id == n.id {
					start = i
					break
				}
			}
			cycle := append(append([]string{}, stack[start:]...), n.id)
			return fmt.Errorf("cycle detected involving node '%s': %s", n.id, strings.Join(cycle, " -> "))
		}

		onStack[n.id] = true
		stack = append(stack, n.id)

		for _, child := range n.children {
			if err := visit(child); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(onStack, n.id)
		permanent[n.id] = true

		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}

	return nil
}

// TopologicalOrder returns the variables with every parent before its
// children. Ties are broken by insertion order.
func (g *Graph) TopologicalOrder() ([]string, error) {
	if err := g.DetectCycles(); err != nil {
		return nil, err
	}

	g.mutex.RLock()
	defer g.mutex.RUnlock()

	pending := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		pending[id] = len(n.parents)
	}

	out := make([]string, 0, len(g.order))
	done := make(map[string]bool, len(g.order))
	for len(out) < len(g.order) {
		for _, id := range g.order {
			if done[id] || pending[id] > 0 {
				continue
			}
			done[id] = true
			out = append(out, id)
			for _, c := range g.nodes[id].children {
				pending[c.id]--
			}
			break
		}
	}
	return out, nil
}

func ids(nodes []*node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.id
	}
	return out
}
