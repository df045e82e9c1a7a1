// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Graph capability, vertex-program contract, result types and errors.

package pregel

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

// Sentinel errors for engine construction and execution.
var (
	// ErrNilGraph is returned if a nil graph is passed to New.
	ErrNilGraph = errors.New("pregel: graph is nil")

	// ErrNilComputation is returned if a nil vertex program is passed to New.
	ErrNilComputation = errors.New("pregel: computation is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("pregel: invalid option supplied")

	// ErrForeignNode is returned when a vertex program touches a node other
	// than the one it is being invoked for.
	ErrForeignNode = errors.New("pregel: node is not the vertex being computed")

	// ErrNodeOutOfRange is returned when a message targets an id outside [0, NodeCount()).
	ErrNodeOutOfRange = errors.New("pregel: node id out of range")

	// ErrComputePanic wraps a panic recovered from a vertex program.
	ErrComputePanic = errors.New("pregel: vertex program panicked")
)

// Graph is the read-only capability the engine consumes from the host graph.
// Node ids are dense: [0, NodeCount()). Implementations must be safe for
// concurrent readers and must not change during a run.
type Graph interface {
	// NodeCount returns the size of the id space.
	NodeCount() int64
	// Nodes iterates all ids in ascending order.
	Nodes() iter.Seq[int64]
	// Degree returns the number of neighbors ForEachNeighbor visits for nodeID.
	Degree(nodeID int64) int
	// ForEachNeighbor visits the neighbors of nodeID until visit returns false.
	ForEachNeighbor(nodeID int64, visit func(target int64) bool)
}

// Computation is a vertex program. Compute is invoked once per active vertex per
// superstep with the messages sent to that vertex in the previous superstep.
//
// The messages slice and ctx are only valid for the duration of the call; the
// engine reuses both.
type Computation[V, M any] interface {
	Compute(ctx *Context[V, M], nodeID int64, messages []M) error
}

// ComputeFunc adapts an ordinary function to Computation.
type ComputeFunc[V, M any] func(ctx *Context[V, M], nodeID int64, messages []M) error

// Compute calls f(ctx, nodeID, messages).
func (f ComputeFunc[V, M]) Compute(ctx *Context[V, M], nodeID int64, messages []M) error {
	return f(ctx, nodeID, messages)
}

// Combiner is optionally implemented by a Computation to fold messages addressed
// to the same vertex while they are being sent. It is used only when the engine is
// built with WithMessageCombining. Combine must be commutative and associative.
type Combiner[M any] interface {
	Combine(existing, incoming M) M
}

// Termination tells how a run ended.
type Termination int

const (
	// Running is the zero value: the run has not terminated yet.
	Running Termination = iota
	// Converged means no vertex was active and no message was pending.
	Converged
	// MaxSuperstepsReached means the superstep cap stopped the run.
	MaxSuperstepsReached
	// Aborted means a vertex-program error or cancellation stopped the run.
	Aborted
)

// String returns a lowercase name of t.
func (t Termination) String() string {
	switch t {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case MaxSuperstepsReached:
		return "max-supersteps"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("termination(%d)", int(t))
	}
}

// Result holds the outcome of a run. On error, Run returns the partial Result
// describing the state at the abort point.
type Result[V any] struct {
	// Values is the NodeValue arena indexed by node id.
	Values []V
	// Supersteps is the number of supersteps executed.
	Supersteps int
	// Termination tells why the run stopped.
	Termination Termination
	// MessagesSent counts every message sent, before combining.
	MessagesSent int64
	// Partitions is the number of static partitions the id space was split into.
	Partitions int
	// Duration is the wall time of Run.
	Duration time.Duration
}

// ComputeError reports a vertex-program failure with its position in the run.
type ComputeError struct {
	Superstep int
	NodeID    int64
	Err       error
}

// Error implements error.
func (e *ComputeError) Error() string {
	return fmt.Sprintf("pregel: superstep %d: node %d: %v", e.Superstep, e.NodeID, e.Err)
}

// Unwrap returns the vertex-program error.
func (e *ComputeError) Unwrap() error { return e.Err }
