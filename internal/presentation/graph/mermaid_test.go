package graph_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	presentation "github.com/courierflow/courier/internal/presentation/graph"
	enginegraph "github.com/courierflow/courier/pkg/graph"
)

type nilState struct{}

func node(_ context.Context, _ nilState) (enginegraph.Delta[nilState], error) {
	return nil, nil
}

func TestGenerateMermaid(t *testing.T) {
	b := enginegraph.NewBuilder[nilState]()
	for _, name := range []string{"Read", "Classify", "HandleFlagged", "Respond", "Notify"} {
		require.NoError(t, b.AddNode(name, node))
	}
	require.NoError(t, b.AddEdge("Read", "Classify"))
	require.NoError(t, b.AddConditionalEdges("Classify",
		func(_ context.Context, _ nilState) enginegraph.Branch { return "legitimate" },
		map[enginegraph.Branch]string{
			"flagged":    "HandleFlagged",
			"legitimate": "Respond",
		}))
	require.NoError(t, b.AddEdge("HandleFlagged", enginegraph.End))
	require.NoError(t, b.AddEdge("Respond", "Notify"))
	require.NoError(t, b.AddEdge("Notify", enginegraph.End))
	b.SetStart("Read")

	g, err := b.Compile()
	require.NoError(t, err)

	out := presentation.GenerateMermaid(g.Topology())

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	// Start node rendered as a circle.
	assert.Contains(t, out, `Read(("Read"))`)
	// Conditional edges are labeled with their branch names.
	assert.Contains(t, out, `Classify -- "flagged" --> HandleFlagged`)
	assert.Contains(t, out, `Classify -- "legitimate" --> Respond`)
	// Fixed edges are plain arrows; terminal edges point to the END node.
	assert.Contains(t, out, "Read --> Classify")
	assert.Contains(t, out, "HandleFlagged --> END")
	assert.Contains(t, out, "Notify --> END")
	assert.Contains(t, out, `END(("End"))`)
	// END is declared exactly once.
	assert.Equal(t, 1, strings.Count(out, `END(("End"))`))
}
