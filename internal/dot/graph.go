package dot

// Attrs are Graphviz attributes. They are written in key order.
type Attrs map[string]string

// Node is a graph vertex.
type Node struct {
	ID    string
	Attrs Attrs

	// keys of Attrs holding HTML-like labels
	html map[string]bool
}

// SetHTML stores an HTML-like label, enclosing angle brackets included.
// WriteDOT writes it as is; every other value is quoted.
func (n *Node) SetHTML(key, html string) {
	if n.html == nil {
		n.html = make(map[string]bool)
	}
	n.Attrs[key] = html
	n.html[key] = true
}

// IsHTML reports whether the attribute was set with SetHTML.
func (n *Node) IsHTML(key string) bool {
	return n.html[key]
}

// Edge is a directed link between two node IDs.
type Edge struct {
	From  string
	To    string
	Attrs Attrs
}

// Graph is an in-memory directed graph. Nodes and edges keep insertion
// order so that the DOT output is stable.
type Graph struct {
	Name  string
	Attrs Attrs

	nodes []*Node
	index map[string]*Node
	edges []*Edge
}

// NewGraph returns an empty graph.
func NewGraph(name string) *Graph {
	return &Graph{
		Name:  name,
		Attrs: Attrs{},
		index: make(map[string]*Node),
	}
}

// AddNode adds a node or, if it exists, merges attrs into it, the way
// Graphviz treats a repeated node statement.
func (g *Graph) AddNode(id string, attrs Attrs) *Node {
	n, ok := g.index[id]
	if !ok {
		n = &Node{ID: id, Attrs: Attrs{}}
		g.index[id] = n
		g.nodes = append(g.nodes, n)
	}
	for k, v := range attrs {
		n.Attrs[k] = v
		delete(n.html, k)
	}
	return n
}

// AddEdge adds a directed edge. Missing endpoints are created without
// attributes.
func (g *Graph) AddEdge(from, to string, attrs Attrs) *Edge {
	g.AddNode(from, nil)
	g.AddNode(to, nil)
	e := &Edge{From: from, To: to, Attrs: Attrs{}}
	for k, v := range attrs {
		e.Attrs[k] = v
	}
	g.edges = append(g.edges, e)
	return e
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []*Edge {
	return g.edges
}
