package graph

import "fmt"

// Builder assembles a workflow graph. It is a build-phase object: once
// Compile succeeds the returned Graph is frozen and the Builder should be
// discarded. Builders are not safe for concurrent use.
type Builder[S any] struct {
	nodes map[string]NodeFunc[S]
	edges map[string]string
	conds map[string]conditional[S]
	start string
}

type conditional[S any] struct {
	route    Router[S]
	branches map[Branch]string
}

// NewBuilder creates an empty graph builder.
func NewBuilder[S any]() *Builder[S] {
	return &Builder[S]{
		nodes: make(map[string]NodeFunc[S]),
		edges: make(map[string]string),
		conds: make(map[string]conditional[S]),
	}
}

// AddNode registers a named processing step. The name End is reserved for
// the terminal marker.
func (b *Builder[S]) AddNode(name string, fn NodeFunc[S]) error {
	if name == "" || name == End {
		return fmt.Errorf("%w: %q is reserved", ErrUnknownNode, name)
	}
	if fn == nil {
		return fmt.Errorf("node %q: nil function", name)
	}
	if _, ok := b.nodes[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, name)
	}
	b.nodes[name] = fn
	return nil
}

// AddEdge registers a fixed, unconditional transition. The target may be
// End; the source must be a registered node.
func (b *Builder[S]) AddEdge(from, to string) error {
	if _, ok := b.nodes[from]; !ok {
		return fmt.Errorf("%w: edge source %q", ErrUnknownNode, from)
	}
	if to != End {
		if _, ok := b.nodes[to]; !ok {
			return fmt.Errorf("%w: edge target %q", ErrUnknownNode, to)
		}
	}
	if _, ok := b.edges[from]; ok {
		return &ValidationError{Node: from, Reason: "multiple fixed edges from one node"}
	}
	b.edges[from] = to
	return nil
}

// AddConditionalEdges registers a router for from together with the table
// mapping each branch the router may return to a target node. The table
// must cover every branch the router can produce; a branch returned at run
// time with no entry fails that run with ErrUnroutableBranch.
func (b *Builder[S]) AddConditionalEdges(from string, route Router[S], branches map[Branch]string) error {
	if _, ok := b.nodes[from]; !ok {
		return fmt.Errorf("%w: conditional edge source %q", ErrUnknownNode, from)
	}
	if route == nil {
		return fmt.Errorf("node %q: nil router", from)
	}
	if len(branches) == 0 {
		return &ValidationError{Node: from, Reason: "empty branch table"}
	}
	for branch, to := range branches {
		if to == End {
			continue
		}
		if _, ok := b.nodes[to]; !ok {
			return fmt.Errorf("%w: branch %q target %q", ErrUnknownNode, branch, to)
		}
	}
	if _, ok := b.conds[from]; ok {
		return &ValidationError{Node: from, Reason: "multiple conditional-edge tables from one node"}
	}
	b.conds[from] = conditional[S]{route: route, branches: branches}
	return nil
}

// SetStart designates the entry node. Registration is checked at Compile so
// nodes and topology may be declared in any order.
func (b *Builder[S]) SetStart(name string) {
	b.start = name
}

// Compile validates the topology and freezes it into an executable Graph.
// Validation failures return a *ValidationError; the builder's maps are
// copied, so later builder mutation cannot affect a compiled graph.
func (b *Builder[S]) Compile(opts ...Option) (*Graph[S], error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	g := &Graph[S]{
		nodes: make(map[string]NodeFunc[S], len(b.nodes)),
		edges: make(map[string]string, len(b.edges)),
		conds: make(map[string]conditional[S], len(b.conds)),
		start: b.start,
	}
	for name, fn := range b.nodes {
		g.nodes[name] = fn
	}
	for from, to := range b.edges {
		g.edges[from] = to
	}
	for from, c := range b.conds {
		branches := make(map[Branch]string, len(c.branches))
		for branch, to := range c.branches {
			branches[branch] = to
		}
		g.conds[from] = conditional[S]{route: c.route, branches: branches}
	}

	for _, opt := range opts {
		opt(&g.config)
	}
	return g, nil
}
