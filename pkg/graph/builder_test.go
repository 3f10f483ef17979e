package graph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courierflow/courier/pkg/graph"
)

type buildState struct {
	value int
}

func noopNode(_ context.Context, _ buildState) (graph.Delta[buildState], error) {
	return nil, nil
}

func constantRouter(branch graph.Branch) graph.Router[buildState] {
	return func(_ context.Context, _ buildState) graph.Branch {
		return branch
	}
}

func TestBuilder_AddNode(t *testing.T) {
	t.Run("DuplicateName", func(t *testing.T) {
		b := graph.NewBuilder[buildState]()
		require.NoError(t, b.AddNode("a", noopNode))

		err := b.AddNode("a", noopNode)
		assert.ErrorIs(t, err, graph.ErrDuplicateNode)
	})

	t.Run("ReservedName", func(t *testing.T) {
		b := graph.NewBuilder[buildState]()
		assert.Error(t, b.AddNode(graph.End, noopNode))
		assert.Error(t, b.AddNode("", noopNode))
	})

	t.Run("NilFunction", func(t *testing.T) {
		b := graph.NewBuilder[buildState]()
		assert.Error(t, b.AddNode("a", nil))
	})
}

func TestBuilder_AddEdge(t *testing.T) {
	t.Run("UnknownSource", func(t *testing.T) {
		b := graph.NewBuilder[buildState]()
		err := b.AddEdge("ghost", graph.End)
		assert.ErrorIs(t, err, graph.ErrUnknownNode)
	})

	t.Run("UnknownTarget", func(t *testing.T) {
		b := graph.NewBuilder[buildState]()
		require.NoError(t, b.AddNode("a", noopNode))
		err := b.AddEdge("a", "ghost")
		assert.ErrorIs(t, err, graph.ErrUnknownNode)
	})

	t.Run("EndTargetAllowed", func(t *testing.T) {
		b := graph.NewBuilder[buildState]()
		require.NoError(t, b.AddNode("a", noopNode))
		assert.NoError(t, b.AddEdge("a", graph.End))
	})

	t.Run("SecondFixedEdgeRejected", func(t *testing.T) {
		b := graph.NewBuilder[buildState]()
		require.NoError(t, b.AddNode("a", noopNode))
		require.NoError(t, b.AddNode("b", noopNode))
		require.NoError(t, b.AddEdge("a", "b"))

		var valErr *graph.ValidationError
		assert.ErrorAs(t, b.AddEdge("a", graph.End), &valErr)
	})
}

func TestBuilder_AddConditionalEdges(t *testing.T) {
	t.Run("UnknownBranchTarget", func(t *testing.T) {
		b := graph.NewBuilder[buildState]()
		require.NoError(t, b.AddNode("a", noopNode))

		err := b.AddConditionalEdges("a", constantRouter("x"), map[graph.Branch]string{
			"x": "ghost",
		})
		assert.ErrorIs(t, err, graph.ErrUnknownNode)
	})

	t.Run("EmptyBranchTable", func(t *testing.T) {
		b := graph.NewBuilder[buildState]()
		require.NoError(t, b.AddNode("a", noopNode))

		var valErr *graph.ValidationError
		err := b.AddConditionalEdges("a", constantRouter("x"), nil)
		assert.ErrorAs(t, err, &valErr)
	})

	t.Run("NilRouter", func(t *testing.T) {
		b := graph.NewBuilder[buildState]()
		require.NoError(t, b.AddNode("a", noopNode))
		assert.Error(t, b.AddConditionalEdges("a", nil, map[graph.Branch]string{"x": graph.End}))
	})
}

func TestBuilder_CompileIsolation(t *testing.T) {
	// A compiled graph must not observe builder mutation after Compile.
	b := graph.NewBuilder[buildState]()
	require.NoError(t, b.AddNode("a", noopNode))
	require.NoError(t, b.AddEdge("a", graph.End))
	b.SetStart("a")

	g, err := b.Compile()
	require.NoError(t, err)

	require.NoError(t, b.AddNode("late", noopNode))
	require.NoError(t, b.AddEdge("late", graph.End))

	topo := g.Topology()
	assert.Equal(t, []string{"a"}, topo.Nodes)
}
