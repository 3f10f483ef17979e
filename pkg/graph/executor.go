package graph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxSteps bounds node visits per run unless WithMaxSteps overrides it.
const DefaultMaxSteps = 1000

// Graph is a compiled, immutable workflow topology. It holds no per-run
// state: Run may be called from any number of goroutines concurrently,
// each call owning its own state container.
type Graph[S any] struct {
	nodes  map[string]NodeFunc[S]
	edges  map[string]string
	conds  map[string]conditional[S]
	start  string
	config config
}

// Start returns the designated entry node name.
func (g *Graph[S]) Start() string {
	return g.start
}

// Result is the outcome of a completed run.
type Result[S any] struct {
	// RunID uniquely identifies the run, for correlation with hooks and logs.
	RunID string

	// State is the final state container after the terminal marker was reached.
	State S

	// Path is the ordered list of node names visited.
	Path []string

	// Duration is the wall-clock time of the walk.
	Duration time.Duration
}

// Run executes the graph from the start node with the given initial state.
// The walk is strictly sequential: each node's merged output is the next
// step's input. Cancellation via ctx is honored between steps, never inside
// a node's collaborator call. On failure the returned error is a *RunError
// carrying the path walked so far.
func (g *Graph[S]) Run(ctx context.Context, initial S) (*Result[S], error) {
	runID := uuid.NewString()
	logger := g.config.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	maxSteps := g.config.maxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	state := initial
	path := make([]string, 0, 8)
	started := time.Now()

	fail := func(node string, err error) (*Result[S], error) {
		return nil, &RunError{RunID: runID, Node: node, Path: path, Err: err}
	}

	current := g.start
	for current != End {
		if err := ctx.Err(); err != nil {
			return fail(current, err)
		}
		if len(path) >= maxSteps {
			return fail(current, fmt.Errorf("exceeded %d steps", maxSteps))
		}

		step := len(path)
		event := &NodeEvent{RunID: runID, Node: current, Step: step}
		if g.config.hooks.OnNodeEnter != nil {
			g.config.hooks.OnNodeEnter(ctx, event)
		}

		delta, err := g.nodes[current](ctx, state)
		if g.config.hooks.OnNodeLeave != nil {
			g.config.hooks.OnNodeLeave(ctx, event, err)
		}
		if err != nil {
			path = append(path, current)
			return fail(current, err)
		}
		if delta != nil {
			delta(&state)
		}
		path = append(path, current)
		logger.Debug("node executed", "run_id", runID, "node", current, "step", step)

		next, err := g.next(ctx, runID, current, state)
		if err != nil {
			return fail(current, err)
		}
		current = next
	}

	return &Result[S]{
		RunID:    runID,
		State:    state,
		Path:     path,
		Duration: time.Since(started),
	}, nil
}

// next resolves the hop out of current against the state as merged after
// current ran. Routers are consulted only for conditional edges.
func (g *Graph[S]) next(ctx context.Context, runID, current string, state S) (string, error) {
	if c, ok := g.conds[current]; ok {
		branch := c.route(ctx, state)
		target, ok := c.branches[branch]
		if !ok {
			return "", fmt.Errorf("%w: router at %q returned %q", ErrUnroutableBranch, current, branch)
		}
		if g.config.hooks.OnRoute != nil {
			g.config.hooks.OnRoute(ctx, &RouteEvent{RunID: runID, Node: current, Branch: branch, Target: target})
		}
		return target, nil
	}
	if to, ok := g.edges[current]; ok {
		return to, nil
	}
	return "", fmt.Errorf("%w: node %q", ErrNoOutgoingEdge, current)
}
