// Package graph runs a fixed directed acyclic graph of stages over a
// model.ResearchState.
//
// A Graph is built once with a Builder and is immutable afterwards; the same
// value can be run any number of times, concurrently. Each Run owns its state:
// stages receive a snapshot of the record, return an Update holding exactly the
// fields they declared, and the coordinating goroutine merges it. A stage is
// dispatched once the pending-predecessor counter for it drops to zero, so a
// stage with several predecessors waits for all of them.
package graph
