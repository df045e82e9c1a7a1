package partition

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seq yields 0..n-1.
func seq(n int64) func(func(int64) bool) {
	return func(yield func(int64) bool) {
		for i := int64(0); i < n; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

func degreesOf(ds ...int) DegreeFunc {
	return func(id int64) int { return ds[id] }
}

func TestNumberAligned_Coverage(t *testing.T) {
	for _, nodeCount := range []int64{0, 1, 7, 63, 64, 65, 1000, 4097} {
		for _, concurrency := range []int{1, 2, 3, 4, 8, 16} {
			for _, alignment := range []int64{1, 3, 64} {
				name := fmt.Sprintf("n=%d/c=%d/a=%d", nodeCount, concurrency, alignment)
				t.Run(name, func(t *testing.T) {
					parts, err := NumberAligned(concurrency, nodeCount, alignment)
					require.NoError(t, err)
					require.NoError(t, Validate(parts, nodeCount))
					assert.LessOrEqual(t, len(parts), concurrency)
					for i, p := range parts {
						if i < len(parts)-1 {
							assert.Zero(t, p.Length%alignment, "partition %v not aligned", p)
						}
					}
				})
			}
		}
	}
}

func TestNumberAligned_Sizes(t *testing.T) {
	// ceil(10/4)=3 → rounded to 4: [0,4) [4,8) [8,10)
	parts, err := NumberAligned(4, 10, 2)
	require.NoError(t, err)
	require.Equal(t, []Partition{{0, 4}, {4, 4}, {8, 2}}, parts)

	// alignment larger than the whole range collapses to one partition
	parts, err = NumberAligned(8, 10, 64)
	require.NoError(t, err)
	require.Equal(t, []Partition{{0, 10}}, parts)
}

func TestNumberAligned_InvalidInput(t *testing.T) {
	_, err := NumberAligned(0, 10, 1)
	require.ErrorIs(t, err, ErrInvalidConcurrency)
	_, err = NumberAligned(1, 10, 0)
	require.ErrorIs(t, err, ErrInvalidAlignment)
	_, err = NumberAligned(1, -1, 1)
	require.ErrorIs(t, err, ErrNegativeNodeCount)
}

func TestDegree_Greedy(t *testing.T) {
	// degrees: 2 2 2 | 5 | 1 1 1 1 | 0
	d := degreesOf(2, 2, 2, 5, 1, 1, 1, 1, 0)
	parts, err := Degree(seq(9), d, 4)
	require.NoError(t, err)
	require.Equal(t, []Partition{{0, 3}, {3, 1}, {4, 5}}, parts)
	require.NoError(t, Validate(parts, 9))
}

func TestDegree_OversizedSingleVertex(t *testing.T) {
	d := degreesOf(100, 1, 100)
	parts, err := Degree(seq(3), d, 10)
	require.NoError(t, err)
	require.Equal(t, []Partition{{0, 1}, {1, 2}}, parts)
}

func TestDegree_WorkBalance(t *testing.T) {
	ds := make([]int, 500)
	for i := range ds {
		ds[i] = (i * 7) % 13
	}
	const batch = 40
	parts, err := Degree(seq(int64(len(ds))), degreesOf(ds...), batch)
	require.NoError(t, err)
	require.NoError(t, Validate(parts, int64(len(ds))))

	for i, p := range parts[:len(parts)-1] {
		var sum int64
		for id := range p.Nodes() {
			sum += int64(ds[id])
		}
		if p.Length == 1 {
			continue
		}
		assert.Greater(t, sum, int64(batch), "partition %d %v under-filled", i, p)
	}
}

func TestDegree_MaxNodeCountBound(t *testing.T) {
	zero := DegreeFunc(func(int64) int { return 0 })
	parts, err := degreePartition(seq(10), zero, 1, 4)
	require.NoError(t, err)
	require.Equal(t, []Partition{{0, 4}, {4, 4}, {8, 2}}, parts)
	for _, p := range parts {
		assert.LessOrEqual(t, p.Length, int64(4))
	}
}

func TestDegree_StartsAtFirstID(t *testing.T) {
	nodes := slices.Values([]int64{5, 6, 7})
	parts, err := Degree(nodes, DegreeFunc(func(int64) int { return 1 }), 1)
	require.NoError(t, err)
	require.Equal(t, []Partition{{5, 2}, {7, 1}}, parts)
}

func TestDegree_InvalidInput(t *testing.T) {
	_, err := Degree(seq(3), degreesOf(1, 1, 1), 0)
	require.ErrorIs(t, err, ErrInvalidBatchSize)
	_, err = Degree(seq(3), nil, 1)
	require.ErrorIs(t, err, ErrNilDegrees)
	_, err = Degree(seq(2), degreesOf(1, -1), 5)
	require.ErrorIs(t, err, ErrNegativeDegree)
	_, err = DegreeGraph(nil, 1)
	require.ErrorIs(t, err, ErrNilDegrees)
}

func TestDegree_Empty(t *testing.T) {
	parts, err := Degree(seq(0), degreesOf(), 1)
	require.NoError(t, err)
	require.Empty(t, parts)
}

func TestValidate_Violations(t *testing.T) {
	require.ErrorIs(t, Validate([]Partition{{0, 2}, {3, 1}}, 4), ErrCoverage)
	require.ErrorIs(t, Validate([]Partition{{0, 2}, {1, 3}}, 4), ErrCoverage)
	require.ErrorIs(t, Validate([]Partition{{0, 2}}, 4), ErrCoverage)
	require.ErrorIs(t, Validate([]Partition{{0, 0}, {0, 4}}, 4), ErrCoverage)
	require.NoError(t, Validate(nil, 0))
}

func TestPartitionHelpers(t *testing.T) {
	p := Partition{Start: 3, Length: 2}
	assert.Equal(t, int64(5), p.End())
	assert.True(t, p.Contains(4))
	assert.False(t, p.Contains(5))
	assert.Equal(t, []int64{3, 4}, slices.Collect(p.Nodes()))
	assert.Equal(t, "[3, 5)", p.String())
}
