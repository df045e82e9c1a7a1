// Package partition slices a dense node-id space into contiguous Partition ranges
// that can be handed to a bounded pool of workers.
//
// What
//
//   - NumberAligned(concurrency, nodeCount, alignment): equal-sized ranges whose
//     length is a multiple of alignment (friendly to array-backed per-node storage).
//   - Degree(nodes, degrees, batchSize): greedy ranges that balance summed degree,
//     because per-vertex work in graph algorithms is usually proportional to degree.
//   - Validate(parts, nodeCount): exact-cover check used by callers and tests.
//
// Guarantees
//
//   - Both strategies are pure and deterministic.
//   - Partitions are contiguous, ordered, non-overlapping and non-empty.
//   - Degree never produces a partition longer than MaxNodeCount.
//   - Every partition of Degree except possibly the last has summed degree
//     greater than batchSize, unless it was closed by the MaxNodeCount bound.
//
// Complexity (V = number of nodes, c = concurrency)
//
//   - NumberAligned: O(c) time and space.
//   - Degree:        O(V) time, O(V/batchSize) space.
//
// Errors
//
//   - ErrInvalidConcurrency, ErrInvalidAlignment, ErrNegativeNodeCount (NumberAligned)
//   - ErrInvalidBatchSize, ErrNilDegrees, ErrNegativeDegree (Degree)
//   - ErrCoverage (Validate)
package partition
