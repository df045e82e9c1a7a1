// SPDX-License-Identifier: MIT
//
// File: strategies.go
// Role: Number-aligned and degree-based partitioning.
// Policy:
//   - Pure functions: no state, no goroutines, no allocation beyond the result.
//   - Parameters are validated before any partition is produced.

package partition

import (
	"fmt"
	"iter"
)

// Degrees reports the number of incident edges of a node.
type Degrees interface {
	Degree(nodeID int64) int
}

// DegreeFunc adapts an ordinary function to Degrees.
type DegreeFunc func(nodeID int64) int

// Degree calls f(nodeID).
func (f DegreeFunc) Degree(nodeID int64) int { return f(nodeID) }

// Graph is the minimal capability DegreeGraph needs.
type Graph interface {
	Degrees
	Nodes() iter.Seq[int64]
}

// NumberAligned splits [0, nodeCount) into consecutive partitions of equal size.
//
// The batch size is ceil(nodeCount / concurrency) rounded up to the next multiple of
// alignment, so every partition but the last has an alignment-friendly length. The
// last partition is truncated to the remaining nodes. Rounding may produce fewer
// partitions than concurrency, never more.
//
// No MaxNodeCount guard is applied here; callers choose a sane alignment.
//
// Errors:
//   - ErrInvalidConcurrency if concurrency < 1.
//   - ErrInvalidAlignment if alignment < 1.
//   - ErrNegativeNodeCount if nodeCount < 0.
//
// Complexity: O(concurrency) time and space.
func NumberAligned(concurrency int, nodeCount, alignment int64) ([]Partition, error) {
	if concurrency < 1 {
		return nil, fmt.Errorf("NumberAligned: concurrency=%d: %w", concurrency, ErrInvalidConcurrency)
	}
	if alignment < 1 {
		return nil, fmt.Errorf("NumberAligned: alignment=%d: %w", alignment, ErrInvalidAlignment)
	}
	if nodeCount < 0 {
		return nil, fmt.Errorf("NumberAligned: nodeCount=%d: %w", nodeCount, ErrNegativeNodeCount)
	}

	batch := alignedBatchSize(nodeCount, int64(concurrency), alignment)
	parts := make([]Partition, 0, concurrency)
	for start := int64(0); start < nodeCount; start += batch {
		parts = append(parts, Partition{Start: start, Length: min(batch, nodeCount-start)})
	}

	return parts, nil
}

// alignedBatchSize returns ceil(n/c) rounded up to a multiple of align, at least align.
func alignedBatchSize(n, c, align int64) int64 {
	batch := max((n+c-1)/c, align)
	if rem := batch % align; rem != 0 {
		batch += align - rem
	}

	return batch
}

// Degree greedily groups consecutive node ids into partitions of roughly
// batchSize accumulated degree.
//
// Nodes are consumed in iterator order. A partition closes as soon as its summed
// degree exceeds batchSize, or when its length reaches MaxNodeCount. At least one
// node is admitted before the threshold is checked, so a single vertex whose degree
// alone exceeds batchSize forms its own partition instead of stalling the loop.
//
// The iterator must yield ascending, consecutive ids for the result to be a
// gap-free cover; the first partition starts at the first id produced.
//
// Errors:
//   - ErrInvalidBatchSize if batchSize <= 0.
//   - ErrNilDegrees if nodes or degrees is nil.
//   - ErrNegativeDegree if degrees reports a value below zero.
//
// Complexity: O(V) time, O(V / batch) space.
func Degree(nodes iter.Seq[int64], degrees Degrees, batchSize int64) ([]Partition, error) {
	return degreePartition(nodes, degrees, batchSize, MaxNodeCount)
}

// DegreeGraph runs Degree over all nodes of g.
func DegreeGraph(g Graph, batchSize int64) ([]Partition, error) {
	if g == nil {
		return nil, fmt.Errorf("DegreeGraph: %w", ErrNilDegrees)
	}

	return Degree(g.Nodes(), g, batchSize)
}

func degreePartition(nodes iter.Seq[int64], degrees Degrees, batchSize, maxNodes int64) ([]Partition, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("Degree: batchSize=%d: %w", batchSize, ErrInvalidBatchSize)
	}
	if nodes == nil || degrees == nil {
		return nil, fmt.Errorf("Degree: %w", ErrNilDegrees)
	}

	var (
		parts       []Partition
		start, last int64
		sum         int64
		open        bool
	)
	for id := range nodes {
		d := degrees.Degree(id)
		if d < 0 {
			return nil, fmt.Errorf("Degree: node %d has degree %d: %w", id, d, ErrNegativeDegree)
		}
		if !open {
			start, sum, open = id, 0, true
		}
		sum += int64(d)
		last = id
		if sum > batchSize || last-start+1 >= maxNodes {
			parts = append(parts, Partition{Start: start, Length: last - start + 1})
			open = false
		}
	}
	if open {
		parts = append(parts, Partition{Start: start, Length: last - start + 1})
	}

	return parts, nil
}
