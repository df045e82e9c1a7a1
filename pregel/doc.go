// Package pregel executes vertex programs over a graph in bulk-synchronous
// supersteps (the Pregel model).
//
// What
//
//   - A Computation is invoked once per active vertex per superstep with the
//     messages sent to it in the previous superstep.
//   - Every vertex is active in superstep 0. Later, a vertex is active unless it
//     voted to halt, and any incoming message reactivates it.
//   - The run converges when no vertex is active and no message is pending, or
//     stops once MaxSupersteps supersteps have run.
//
// How
//
//   - The dense id space [0, NodeCount()) is split once per run by the partition
//     package (range or degree strategy).
//   - A fixed pool of Concurrency workers is started once per run; each superstep
//     hands every partition to the pool and waits at a barrier.
//   - Messages go to a double-buffered arena with striped locks; the barrier swaps
//     the buffers, so a message sent in superstep s is seen exactly once, in s+1.
//   - A vertex owns its value and its inbox slot. Its program may write only its
//     own value; foreign writes fail with ErrForeignNode.
//
// Errors
//
//   - ErrNilGraph, ErrNilComputation, ErrOptionViolation from New.
//   - *ComputeError from Run when a vertex program fails or panics
//     (ErrComputePanic). The superstep in flight completes first.
//   - ctx.Err(), wrapped, when the context is cancelled; checked at barriers.
//
// In every error case after partitioning, Run also returns the partial Result.
//
// Complexity (V = vertices, E = edges, S = supersteps)
//
//   - Time:   O(S·(V + E)) plus program cost.
//   - Memory: O(V + messages in flight).
package pregel
