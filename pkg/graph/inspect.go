package graph

import "sort"

// EdgeInfo describes one edge of a compiled topology. Conditional edges
// carry the branch name they are selected by.
type EdgeInfo struct {
	From        string
	To          string
	Branch      Branch
	Conditional bool
}

// Topology is a read-only description of a compiled graph, for
// introspection and diagram rendering. Node and edge order is
// deterministic.
type Topology struct {
	Start string
	Nodes []string
	Edges []EdgeInfo
}

// Topology returns the structure of the compiled graph.
func (g *Graph[S]) Topology() Topology {
	t := Topology{Start: g.start}

	t.Nodes = make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		t.Nodes = append(t.Nodes, name)
	}
	sort.Strings(t.Nodes)

	for _, from := range t.Nodes {
		if to, ok := g.edges[from]; ok {
			t.Edges = append(t.Edges, EdgeInfo{From: from, To: to})
		}
		if c, ok := g.conds[from]; ok {
			branches := make([]Branch, 0, len(c.branches))
			for branch := range c.branches {
				branches = append(branches, branch)
			}
			sort.Slice(branches, func(i, j int) bool { return branches[i] < branches[j] })
			for _, branch := range branches {
				t.Edges = append(t.Edges, EdgeInfo{
					From:        from,
					To:          c.branches[branch],
					Branch:      branch,
					Conditional: true,
				})
			}
		}
	}
	return t
}
