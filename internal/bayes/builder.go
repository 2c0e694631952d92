package bayes

import (
	"context"
	"fmt"

	"github.com/specialistvlad/bayesgridgo/internal/config"
	"github.com/specialistvlad/bayesgridgo/internal/cpd"
	"github.com/specialistvlad/bayesgridgo/internal/ctxlog"
)

// Builder turns a network description into a checked model.
type Builder interface {
	Build(ctx context.Context, net *config.Network) (*Model, error)
}

// DefaultBuilder reshapes every variable's CPD into a TabularCPD.
type DefaultBuilder struct{}

var _ Builder = DefaultBuilder{}

// Build implements Builder.
func (DefaultBuilder) Build(ctx context.Context, net *config.Network) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	nodes := make([]string, len(net.Variables))
	for i, v := range net.Variables {
		nodes[i] = v.Name
	}
	edges := make([][2]string, len(net.Edges))
	for i, e := range net.Edges {
		edges[i] = [2]string{e.Parent, e.Child}
	}

	m, err := NewModel(edges, nodes...)
	if err != nil {
		return nil, err
	}

	for _, v := range net.Variables {
		c, err := tabular(net, v)
		if err != nil {
			return nil, err
		}
		if err := m.AddCPD(c); err != nil {
			return nil, err
		}
		logger.Debug("Built tabular CPD.", "variable", v.Name, "cardinality", c.Cardinality, "evidence", c.Evidence)
	}

	if err := m.Check(); err != nil {
		return nil, err
	}
	logger.Debug("Model check passed.", "variables", len(nodes), "edges", len(edges))
	return m, nil
}

func tabular(net *config.Network, v *config.Variable) (*TabularCPD, error) {
	vals, err := cpd.Reshape(v.Name, v.CPD)
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", v.Name, err)
	}

	cards := make([]int, len(vals.Evidence))
	for i, ev := range vals.Evidence {
		parent, ok := net.Variable(ev)
		if !ok {
			return nil, fmt.Errorf("%w: CPD of %q is conditioned on undeclared variable %q", ErrInvalidCPD, v.Name, ev)
		}
		cards[i] = cpd.Cardinality(parent.CPD)
	}

	c, err := NewTabularCPD(v.Name, cpd.Cardinality(v.CPD), vals.Table, vals.Evidence, cards)
	if err != nil {
		return nil, err
	}

	for _, k := range v.CPD.Keys() {
		c.States = append(c.States, v.Label(k))
	}
	c.Columns = vals.Columns
	return c, nil
}
