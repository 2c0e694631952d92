package dag

import "sync"

// Graph is a collection of variables and their parent/child links.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects nodes and order.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by variable name.
	nodes map[string]*node
	// order records node insertion order.
	order []string
}

// node is a single variable. It is un-exported to enforce interaction with
// the graph through variable names.
type node struct {
	id string
	// parents in edge insertion order.
	parents []*node
	// children in edge insertion order.
	children []*node
}

func (n *node) hasParent(id string) bool {
	for _, p := range n.parents {
		if p.id == id {
			return true
		}
	}
	return false
}
