package graph

import (
	"context"
	"log/slog"
)

// NodeEvent describes entry to or exit from a node during a run.
type NodeEvent struct {
	RunID string
	Node  string
	// Step is the zero-based position of the node in the execution path.
	Step int
}

// RouteEvent describes a conditional routing decision.
type RouteEvent struct {
	RunID  string
	Node   string
	Branch Branch
	Target string
}

// Hooks are observability callbacks invoked synchronously during a run.
// Any field may be nil. Callbacks must be safe for concurrent use, since
// a compiled graph may execute many runs at once.
type Hooks struct {
	OnNodeEnter func(context.Context, *NodeEvent)
	OnNodeLeave func(context.Context, *NodeEvent, error)
	OnRoute     func(context.Context, *RouteEvent)
}

type config struct {
	hooks    Hooks
	logger   *slog.Logger
	maxSteps int
}

// Option configures a compiled graph.
type Option func(*config)

// WithHooks registers observability hooks on the compiled graph.
func WithHooks(h Hooks) Option {
	return func(c *config) {
		c.hooks = h
	}
}

// WithLogger sets a structured logger for per-step debug logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxSteps bounds the number of node visits in one run. Zero means the
// default limit. Compile already rejects unconditional cycles; this guards
// against router-driven loops a user graph may introduce.
func WithMaxSteps(n int) Option {
	return func(c *config) {
		c.maxSteps = n
	}
}
