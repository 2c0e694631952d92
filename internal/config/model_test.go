package config

import (
	"testing"

	"github.com/specialistvlad/bayesgridgo/internal/cpd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat(probs ...float64) cpd.Node {
	entries := make([]cpd.Entry, len(probs))
	for i, p := range probs {
		entries[i] = cpd.Entry{Key: cpd.IndexKey(i), Node: cpd.Leaf(p)}
	}
	return cpd.Branch(entries...)
}

func legend(labels ...string) []LegendEntry {
	out := make([]LegendEntry, len(labels))
	for i, l := range labels {
		out[i] = LegendEntry{Key: cpd.IndexKey(i), Label: l}
	}
	return out
}

func validNetwork() *Network {
	return &Network{
		Name: "rain",
		Variables: []*Variable{
			{Name: "RAIN", Desc: "Rain", Legend: legend("No", "Yes"), CPD: flat(0.8, 0.2)},
			{Name: "WET", Desc: "Wet grass", Legend: legend("Dry", "Wet"), CPD: flat(0.5, 0.5)},
		},
		Edges: []Edge{{Parent: "RAIN", Child: "WET"}},
	}
}

func TestNetwork_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(n *Network)
		wantErr string
	}{
		{
			name:   "valid network",
			mutate: func(n *Network) {},
		},
		{
			name:   "empty legend is allowed",
			mutate: func(n *Network) { n.Variables[0].Legend = nil },
		},
		{
			name: "duplicate variable",
			mutate: func(n *Network) {
				n.Variables = append(n.Variables, &Variable{Name: "RAIN", CPD: flat(1)})
			},
			wantErr: `variable "RAIN" declared twice`,
		},
		{
			name:    "unknown parent",
			mutate:  func(n *Network) { n.AddEdge("SUN", "WET") },
			wantErr: `undeclared variable "SUN"`,
		},
		{
			name:    "unknown child",
			mutate:  func(n *Network) { n.AddEdge("RAIN", "SUN") },
			wantErr: `undeclared variable "SUN"`,
		},
		{
			name:    "cycle",
			mutate:  func(n *Network) { n.AddEdge("WET", "RAIN") },
			wantErr: "cycle detected",
		},
		{
			name:    "self edge",
			mutate:  func(n *Network) { n.AddEdge("RAIN", "RAIN") },
			wantErr: "self-referential edge",
		},
		{
			name:    "bare probability CPD",
			mutate:  func(n *Network) { n.Variables[0].CPD = cpd.Leaf(1) },
			wantErr: "CPD leaf must be numeric or a nested mapping",
		},
		{
			name: "repeated CPD key",
			mutate: func(n *Network) {
				n.Variables[0].CPD = cpd.Branch(
					cpd.Entry{Key: cpd.IndexKey(0), Node: cpd.Leaf(0.5)},
					cpd.Entry{Key: cpd.IndexKey(0), Node: cpd.Leaf(0.5)},
				)
				n.Variables[0].Legend = nil
			},
			wantErr: "CPD mapping has duplicate key: 0",
		},
		{
			name:    "legend size mismatch",
			mutate:  func(n *Network) { n.Variables[0].Legend = legend("No") },
			wantErr: "1 legend entries for 2 outcomes",
		},
		{
			name: "legend key mismatch",
			mutate: func(n *Network) {
				n.Variables[0].Legend = []LegendEntry{
					{Key: cpd.IndexKey(0), Label: "No"},
					{Key: cpd.IndexKey(7), Label: "Yes"},
				}
			},
			wantErr: `no legend entry for outcome "1"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			n := validNetwork()
			tc.mutate(n)
			err := n.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidNetwork)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestNetwork_AddEdgeDeduplicates(t *testing.T) {
	t.Parallel()

	n := validNetwork()
	n.AddEdge("RAIN", "WET")
	assert.Len(t, n.Edges, 1)
}

func TestNetwork_Structure(t *testing.T) {
	t.Parallel()

	n := validNetwork()
	n.Variables = append(n.Variables, &Variable{Name: "ISOLATED", CPD: flat(1)})
	g, err := n.Structure()
	require.NoError(t, err)
	assert.Equal(t, []string{"RAIN", "WET", "ISOLATED"}, g.Nodes())

	parents, err := g.Parents("WET")
	require.NoError(t, err)
	assert.Equal(t, []string{"RAIN"}, parents)
}

func TestVariable_Headers(t *testing.T) {
	t.Parallel()

	v := &Variable{Name: "RAIN", Legend: legend("No", "Yes"), CPD: flat(0.8, 0.2)}
	assert.Equal(t, "Yes", v.Label(cpd.IndexKey(1)))
	assert.Equal(t, "No", v.Headers()[0].Label)

	reordered := &Variable{Name: "RAIN", Legend: []LegendEntry{
		{Key: cpd.IndexKey(1), Label: "Yes"},
		{Key: cpd.IndexKey(0), Label: "No"},
	}, CPD: flat(0.8, 0.2)}
	require.NoError(t, reordered.validateLegend())
	assert.Equal(t, []LegendEntry{
		{Key: cpd.IndexKey(0), Label: "No"},
		{Key: cpd.IndexKey(1), Label: "Yes"},
	}, reordered.Headers())

	bare := &Variable{Name: "RAIN", CPD: flat(0.8, 0.2)}
	headers := bare.Headers()
	require.Len(t, headers, 2)
	assert.Equal(t, "1", headers[1].Label)
	assert.Equal(t, "1", bare.Label(cpd.IndexKey(1)))

	got, ok := validNetwork().Variable("WET")
	require.True(t, ok)
	assert.Equal(t, "Wet grass", got.Desc)
	_, ok = validNetwork().Variable("SUN")
	assert.False(t, ok)
}
