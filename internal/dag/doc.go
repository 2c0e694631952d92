// Package dag holds the directed structure of a Bayesian network: variables
// are nodes and every (parent, child) pair is an edge. It answers the
// structural questions the renderer and the model need (parents, children,
// cycles, a stable topological order). Node and edge order follow
// insertion order so that everything derived from the graph is
// deterministic.
package dag
