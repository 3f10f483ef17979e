// Package graph implements a typed directed-graph workflow engine.
//
// A graph is assembled with a Builder: register named nodes, connect them
// with fixed edges or conditional-edge tables, designate a start node, and
// Compile. The compiled Graph is immutable and safe to share across any
// number of concurrent runs.
//
// Each run threads a single state value of type S through the nodes. Nodes
// never mutate state in place; they return a Delta that the executor merges
// before deciding the next hop. Conditional hops are decided by a Router,
// which inspects the merged state and returns a Branch looked up in the
// edge's branch table.
package graph
