package graph

import "context"

// End is the terminal marker. It is a reserved name, never a registered
// node: an edge targeting End finishes the run.
const End = "__end__"

// Delta is a partial state update returned by a node. It is applied to the
// run's state container by the executor; a nil Delta leaves the state
// untouched. Deltas produced by a domain package's typed setters should only
// write the fields they name, so that updates touching disjoint fields
// commute.
type Delta[S any] func(*S)

// NodeFunc is a single processing step. It receives the current state by
// value and returns the partial update to merge. It must not retain or
// mutate s; any blocking collaborator call should honor ctx.
type NodeFunc[S any] func(ctx context.Context, s S) (Delta[S], error)

// Branch is a named conditional outcome returned by a Router. Domain
// packages declare their branches as typed constants so the legal set is
// visible at the call site.
type Branch string

// Router selects among the named branches of a conditional edge based on
// the state as merged after the source node ran.
type Router[S any] func(ctx context.Context, s S) Branch

// Compose returns a Delta that applies each given delta in order. Nil
// entries are skipped.
func Compose[S any](deltas ...Delta[S]) Delta[S] {
	return func(s *S) {
		for _, d := range deltas {
			if d != nil {
				d(s)
			}
		}
	}
}
