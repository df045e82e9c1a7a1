// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Graph type, construction options, sentinel errors and NewGraph.
// Concurrency:
//   - A single sync.RWMutex guards adjacency and counters.
//   - Mutations take the write lock; queries take the read lock.

package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrNegativeNodeID indicates that a node identifier below zero was supplied.
	ErrNegativeNodeID = errors.New("core: node ID is negative")

	// ErrNodeNotFound indicates an operation referenced a node outside [0, NodeCount()).
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrNegativeCount indicates a negative number of nodes was requested.
	ErrNegativeCount = errors.New("core: node count is negative")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted when multi-edges are disabled.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")

	// ErrNodeIDTooLarge indicates an id at or beyond the WithMaxNodes limit.
	ErrNodeIDTooLarge = errors.New("core: node ID exceeds the node limit")
)

// DefaultMaxNodes is the node limit the loaders (edgelist, sqlgraph) apply
// unless told otherwise.
const DefaultMaxNodes int64 = 1 << 24

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithDirected sets the orientation of all edges
// (true = directed, false = undirected).
func WithDirected(directed bool) GraphOption {
	return func(g *Graph) { g.directed = directed }
}

// WithMultiEdges permits parallel edges between the same nodes.
func WithMultiEdges() GraphOption {
	return func(g *Graph) { g.allowMulti = true }
}

// WithLoops permits self-loops (edges from a node to itself).
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// WithMaxNodes bounds the id space to [0, n): AddEdge and AddNodes fail with
// ErrNodeIDTooLarge instead of growing past it. n <= 0 removes the limit.
func WithMaxNodes(n int64) GraphOption {
	return func(g *Graph) { g.maxNodes = max(n, 0) }
}

// Graph is an in-memory graph over the dense node-id space [0, NodeCount()).
//
// Node ids are assigned sequentially by AddNode/AddNodes, or implicitly when
// AddEdge references an id beyond the current range. Each adjacency row is kept
// sorted ascending, which makes neighbor iteration deterministic.
type Graph struct {
	mu sync.RWMutex // guards everything below

	// Configuration flags
	directed   bool  // edges are one-way
	allowMulti bool  // allow parallel edges
	allowLoops bool  // allow self-loops
	maxNodes   int64 // id space limit; 0 = unlimited

	// Storage
	adjacency [][]int64 // adjacency[u] = sorted targets of u
	edgeCount int64     // undirected edges are counted once
}

// GraphStats is a point-in-time summary of a Graph.
type GraphStats struct {
	NodeCount     int64
	EdgeCount     int64
	MaxDegree     int
	IsolatedNodes int64
	Directed      bool
}

// NewGraph creates an empty Graph with the given options.
// By default, Graph is undirected, with no loops and no multi-edges.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{}
	// Apply options
	for _, opt := range opts {
		opt(g)
	}

	return g
}
