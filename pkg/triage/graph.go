package triage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/courierflow/courier/pkg/graph"
	"github.com/courierflow/courier/pkg/ports"
)

// Branches of the routing decision after classification.
const (
	BranchFlagged    graph.Branch = "flagged"
	BranchLegitimate graph.Branch = "legitimate"
)

// Collaborators are the external services the workflow calls. All three
// are required.
type Collaborators struct {
	Classifier ports.Classifier
	Responder  ports.Responder
	Notifier   ports.Notifier
}

// Workflow owns the compiled triage graph and the collaborator handles its
// nodes close over.
type Workflow struct {
	classifier ports.Classifier
	responder  ports.Responder
	notifier   ports.Notifier
	logger     *slog.Logger

	unflaggedFallback bool
	graphOpts         []graph.Option

	graph *graph.Graph[State]
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithLogger sets the structured logger used by the workflow nodes.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		w.logger = logger
	}
}

// WithUnflaggedFallback makes the Classify node treat an unreachable
// Classifier as "not flagged" instead of failing the run. The degradation
// is logged on every occurrence.
func WithUnflaggedFallback() Option {
	return func(w *Workflow) {
		w.unflaggedFallback = true
	}
}

// WithGraphOptions forwards options (hooks, step limits) to the compiled graph.
func WithGraphOptions(opts ...graph.Option) Option {
	return func(w *Workflow) {
		w.graphOpts = append(w.graphOpts, opts...)
	}
}

// New compiles the triage workflow:
//
//	Read -> Classify -(flagged)-> HandleFlagged -> End
//	                \(legitimate)-> Respond -> Notify -> End
func New(deps Collaborators, opts ...Option) (*Workflow, error) {
	if deps.Classifier == nil || deps.Responder == nil || deps.Notifier == nil {
		return nil, fmt.Errorf("triage: all collaborators are required")
	}

	w := &Workflow{
		classifier: deps.Classifier,
		responder:  deps.Responder,
		notifier:   deps.Notifier,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}

	b := graph.NewBuilder[State]()
	nodes := map[string]graph.NodeFunc[State]{
		NodeRead:          w.readNode(),
		NodeClassify:      w.classifyNode(),
		NodeHandleFlagged: w.handleFlaggedNode(),
		NodeRespond:       w.respondNode(),
		NodeNotify:        w.notifyNode(),
	}
	for name, fn := range nodes {
		if err := b.AddNode(name, fn); err != nil {
			return nil, err
		}
	}

	if err := b.AddEdge(NodeRead, NodeClassify); err != nil {
		return nil, err
	}
	if err := b.AddConditionalEdges(NodeClassify, routeAfterClassify, map[graph.Branch]string{
		BranchFlagged:    NodeHandleFlagged,
		BranchLegitimate: NodeRespond,
	}); err != nil {
		return nil, err
	}
	if err := b.AddEdge(NodeHandleFlagged, graph.End); err != nil {
		return nil, err
	}
	if err := b.AddEdge(NodeRespond, NodeNotify); err != nil {
		return nil, err
	}
	if err := b.AddEdge(NodeNotify, graph.End); err != nil {
		return nil, err
	}
	b.SetStart(NodeRead)

	g, err := b.Compile(w.graphOpts...)
	if err != nil {
		return nil, err
	}
	w.graph = g
	return w, nil
}

// routeAfterClassify selects the branch following classification. The
// Classify node always sets IsFlagged before this router runs; a nil value
// therefore routes to the legitimate path only when classification
// explicitly cleared the record.
func routeAfterClassify(_ context.Context, s State) graph.Branch {
	if s.Flagged() {
		return BranchFlagged
	}
	return BranchLegitimate
}

// Graph exposes the compiled topology, for introspection and rendering.
func (w *Workflow) Graph() *graph.Graph[State] {
	return w.graph
}

// Run executes one triage run for the given state.
func (w *Workflow) Run(ctx context.Context, initial State) (*graph.Result[State], error) {
	return w.graph.Run(ctx, initial)
}
