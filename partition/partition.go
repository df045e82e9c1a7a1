// SPDX-License-Identifier: MIT
//
// File: partition.go
// Role: Partition descriptor, sentinel errors and coverage validation.

package partition

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

// MaxNodeCount bounds the length of a degree-based partition so that per-partition
// arrays stay well inside int32-indexed limits.
const MaxNodeCount int64 = (math.MaxInt32 - 32) / 2

// Sentinel errors for partitioning.
var (
	// ErrInvalidConcurrency indicates concurrency < 1.
	ErrInvalidConcurrency = errors.New("partition: concurrency must be at least 1")

	// ErrInvalidAlignment indicates alignment < 1.
	ErrInvalidAlignment = errors.New("partition: alignment must be at least 1")

	// ErrNegativeNodeCount indicates nodeCount < 0.
	ErrNegativeNodeCount = errors.New("partition: node count is negative")

	// ErrInvalidBatchSize indicates batchSize <= 0.
	ErrInvalidBatchSize = errors.New("partition: batch size must be positive")

	// ErrNilDegrees indicates a nil degree lookup or node iterator.
	ErrNilDegrees = errors.New("partition: degree lookup is nil")

	// ErrNegativeDegree indicates the degree lookup returned a negative value.
	ErrNegativeDegree = errors.New("partition: negative degree")

	// ErrCoverage indicates partitions that overlap, leave gaps, or overrun the id space.
	ErrCoverage = errors.New("partition: partitions do not cover the node range")
)

// Partition is a contiguous slice [Start, Start+Length) of the node-id space.
type Partition struct {
	Start  int64
	Length int64
}

// End returns the exclusive upper bound Start+Length.
func (p Partition) End() int64 { return p.Start + p.Length }

// Contains reports whether id lies inside p.
func (p Partition) Contains(id int64) bool { return id >= p.Start && id < p.End() }

// Nodes iterates the ids of p in ascending order.
func (p Partition) Nodes() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for id := p.Start; id < p.End(); id++ {
			if !yield(id) {
				return
			}
		}
	}
}

// String renders p as a half-open interval.
func (p Partition) String() string {
	return fmt.Sprintf("[%d, %d)", p.Start, p.End())
}

// Validate checks that parts, in order, cover [0, nodeCount) exactly once with
// no empty partition.
//
// Complexity: O(len(parts)).
func Validate(parts []Partition, nodeCount int64) error {
	var next int64
	for i, p := range parts {
		if p.Length <= 0 {
			return fmt.Errorf("%w: partition %d %v is empty", ErrCoverage, i, p)
		}
		if p.Start != next {
			return fmt.Errorf("%w: partition %d starts at %d, want %d", ErrCoverage, i, p.Start, next)
		}
		next = p.End()
	}
	if next != nodeCount {
		return fmt.Errorf("%w: covered [0, %d), want [0, %d)", ErrCoverage, next, nodeCount)
	}

	return nil
}
