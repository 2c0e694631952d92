package dot

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/specialistvlad/bayesgridgo/internal/config"
	"github.com/specialistvlad/bayesgridgo/internal/ctxlog"
	"github.com/specialistvlad/bayesgridgo/internal/label"
)

// DefaultName is the graph name used when the network has none.
const DefaultName = "G"

// CPDNodeID returns the ID of the probability-table node of a variable.
func CPDNodeID(variable string) string {
	return "cpd_" + variable
}

// Assemble builds the full graph of net: structure plus probability tables.
func Assemble(ctx context.Context, net *config.Network) (*Graph, error) {
	g := AssembleStructure(ctx, net)
	if err := AddProbabilities(ctx, g, net); err != nil {
		return nil, err
	}
	return g, nil
}

// AssembleStructure builds the variable nodes and the parent -> child
// edges. Variables that take part in no edge are still drawn.
func AssembleStructure(ctx context.Context, net *config.Network) *Graph {
	logger := ctxlog.FromContext(ctx)

	name := net.Name
	if name == "" {
		name = DefaultName
	}
	g := NewGraph(name)
	if net.Desc != "" {
		g.Attrs["label"] = net.Desc
		g.Attrs["labelloc"] = "t"
	}

	variableNode := func(id string) {
		attrs := Attrs{"shape": "oval", "color": "gray", "label": id}
		if v, ok := net.Variable(id); ok && v.Desc != "" {
			attrs["label"] = v.Desc
		}
		g.AddNode(id, attrs)
	}

	for _, e := range net.Edges {
		variableNode(e.Parent)
		variableNode(e.Child)
		g.AddEdge(e.Parent, e.Child, nil)
	}
	for _, v := range net.Variables {
		if _, ok := g.Node(v.Name); !ok {
			variableNode(v.Name)
		}
	}

	logger.Debug("Assembled network structure.", "graph", name, "nodes", len(g.Nodes()), "edges", len(g.Edges()))
	return g
}

// AddProbabilities adds a table node per variable, in declaration order.
// The invisible edge joining table and variable points one way or the
// other depending on a hash of the table text; it only nudges the layout
// engine into spreading tables around their variables.
func AddProbabilities(ctx context.Context, g *Graph, net *config.Network) error {
	logger := ctxlog.FromContext(ctx)

	for _, v := range net.Variables {
		table, err := label.ForVariable(v)
		if err != nil {
			return fmt.Errorf("variable %q: %w", v.Name, err)
		}

		id := CPDNodeID(v.Name)
		g.AddNode(id, Attrs{"shape": "plaintext", "color": "gray"}).SetHTML("label", table)
		if tableFirst(table) {
			g.AddEdge(id, v.Name, Attrs{"style": "invis"})
		} else {
			g.AddEdge(v.Name, id, Attrs{"style": "invis"})
		}
		logger.Debug("Added probability table.", "variable", v.Name, "node", id)
	}
	return nil
}

// tableFirst picks the direction of the layout edge from the label text.
func tableFirst(table string) bool {
	h := fnv.New64a()
	h.Write([]byte(table))
	r := rand.New(rand.NewSource(int64(h.Sum64())))
	return r.Intn(2) == 1
}
