package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
	assert.Empty(t, g.Nodes())
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("RAIN")
	assert.Len(t, g.nodes, 1)
	rain, ok := g.nodes["RAIN"]
	require.True(t, ok)
	assert.Equal(t, "RAIN", rain.id)

	g.AddNode("RAIN") // Test idempotency
	assert.Len(t, g.nodes, 1)

	g.AddNode("WET")
	assert.Equal(t, []string{"RAIN", "WET"}, g.Nodes())
	assert.True(t, g.Has("WET"))
	assert.False(t, g.Has("SUN"))
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("RAIN")
		g.AddNode("SPRINKLER")
		g.AddNode("WET")

		require.NoError(t, g.AddEdge("SPRINKLER", "WET"))
		require.NoError(t, g.AddEdge("RAIN", "WET"))
		require.NoError(t, g.AddEdge("RAIN", "WET")) // repeated edge is ignored

		parents, err := g.Parents("WET")
		require.NoError(t, err)
		assert.Equal(t, []string{"SPRINKLER", "RAIN"}, parents)

		children, err := g.Children("RAIN")
		require.NoError(t, err)
		assert.Equal(t, []string{"WET"}, children)

		assert.Equal(t, [][2]string{{"SPRINKLER", "WET"}, {"RAIN", "WET"}}, g.Edges())
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge("a", "a")
		assert.ErrorContains(t, err, "self-referential edge")

		_, err = g.Parents("dne")
		assert.ErrorContains(t, err, "node not found")

		_, err = g.Children("dne")
		assert.ErrorContains(t, err, "node not found")
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("a", "c")) // Transitive edge
		require.NoError(t, g.AddEdge("c", "d"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))
		err := g.DetectCycles()
		require.Error(t, err)
		assert.ErrorContains(t, err, "cycle detected")
		assert.ErrorContains(t, err, "a -> b -> a")
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))

		g.AddNode("x")
		g.AddNode("y")
		g.AddNode("z")
		require.NoError(t, g.AddEdge("x", "y"))
		require.NoError(t, g.AddEdge("y", "z"))
		require.NoError(t, g.AddEdge("z", "y"))

		err := g.DetectCycles()
		require.Error(t, err)
		assert.ErrorContains(t, err, "y -> z -> y")
	})
}

func TestTopologicalOrder(t *testing.T) {
	t.Run("parents come first, ties follow insertion order", func(t *testing.T) {
		g := New()
		for _, id := range []string{"WET", "SPRINKLER", "CLOUDY", "RAIN"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("CLOUDY", "SPRINKLER"))
		require.NoError(t, g.AddEdge("CLOUDY", "RAIN"))
		require.NoError(t, g.AddEdge("SPRINKLER", "WET"))
		require.NoError(t, g.AddEdge("RAIN", "WET"))

		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, []string{"CLOUDY", "SPRINKLER", "RAIN", "WET"}, order)
	})

	t.Run("cycle is an error", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))
		_, err := g.TopologicalOrder()
		assert.ErrorContains(t, err, "cycle detected")
	})
}
