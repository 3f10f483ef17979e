package graph

import (
	"errors"
	"fmt"
	"strings"
)

// Build-time sentinels. These abort graph construction; no partially valid
// graph is ever executed.
var (
	// ErrDuplicateNode is returned when a node name is registered twice.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrUnknownNode is returned when an edge references an unregistered node.
	ErrUnknownNode = errors.New("unknown node")
)

// Run-time sentinels. These abort only the run in which they occur.
var (
	// ErrUnroutableBranch is returned when a router produces a branch name
	// with no entry in its branch table.
	ErrUnroutableBranch = errors.New("unroutable branch")

	// ErrNoOutgoingEdge is returned when the walk reaches a node with no
	// registered outgoing edge. Compile rejects such topologies, so this
	// surfaces only for defects introduced after validation (it should not
	// happen in practice).
	ErrNoOutgoingEdge = errors.New("no outgoing edge")
)

// ValidationError describes a structural defect found by Compile.
type ValidationError struct {
	// Node is the offending node name, when the defect is attributable to one.
	Node string

	// Reason describes the specific defect.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("invalid graph: node %q: %s", e.Node, e.Reason)
	}
	return fmt.Sprintf("invalid graph: %s", e.Reason)
}

// RunError wraps a failure during a single run. It carries the node that
// failed and the execution path walked up to that point, so a failed run is
// diagnosable without replaying it.
type RunError struct {
	RunID string
	Node  string
	Path  []string
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %s failed at node %q (path %s): %v",
		e.RunID, e.Node, strings.Join(e.Path, " -> "), e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
