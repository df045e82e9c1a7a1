// Package core provides a thread-safe in-memory Graph over a dense node-id space.
//
// Nodes are identified by int64 ids in [0, NodeCount()). The dense layout is what
// the pregel engine and the partition package expect: per-node state lives in
// plain slices indexed by id, and partitions are contiguous id ranges.
//
// The Graph G = (V,E) supports:
//
//   - Directed vs. undirected edges (WithDirected)
//   - Parallel edges / multi-graphs (WithMultiEdges)
//   - Self-loops (WithLoops)
//   - Sorted adjacency rows: adjacency[from] = ascending targets
//   - One sync.RWMutex; queries share the read lock
//
// Core Methods:
//
//	// Node lifecycle
//	AddNode() int64                        // O(1)
//	AddNodes(n int64) (first int64, err)   // O(n)
//	HasNode(id int64) bool                 // O(1)
//
//	// Edge lifecycle
//	AddEdge(from, to int64) error          // O(d), grows the id space on demand
//	HasEdge(from, to int64) bool           // O(log d)
//
//	// Query
//	Nodes() iter.Seq[int64]                // ascending ids
//	Degree(id int64) int                   // O(1)
//	Neighbors(id int64) ([]int64, error)   // sorted copy
//	ForEachNeighbor(id, visit)             // sorted, no copy
//	NodeCount() int64, EdgeCount() int64
//
//	// Misc
//	Clone() *Graph, Stats() GraphStats
//
// Errors:
//
//	ErrNegativeNodeID      – negative endpoint
//	ErrNodeNotFound        – id outside [0, NodeCount())
//	ErrNegativeCount       – AddNodes(n < 0)
//	ErrLoopNotAllowed      – self-loop when loops disabled
//	ErrMultiEdgeNotAllowed – parallel edge when multi-edges disabled
//
// A *Graph satisfies pregel.Graph and partition.Degrees directly.
package core
