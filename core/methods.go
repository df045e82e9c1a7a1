// SPDX-License-Identifier: MIT
//
// File: methods.go
// Role: Node and edge lifecycle, queries and cloning.
// Determinism:
//   - Nodes() yields ids ascending.
//   - Neighbors()/ForEachNeighbor() yield targets ascending.

package core

import (
	"fmt"
	"iter"
	"slices"
)

// AddNode appends a single isolated node and returns its id. It grows one id
// at a time and is not checked against WithMaxNodes.
//
// Complexity: O(1) amortized.
func (g *Graph) AddNode() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.adjacency = append(g.adjacency, nil)

	return int64(len(g.adjacency) - 1)
}

// AddNodes appends n isolated nodes and returns the id of the first one.
// Adding zero nodes is a no-op that returns the current NodeCount().
//
// Errors:
//   - ErrNegativeCount if n < 0.
//   - ErrNodeIDTooLarge if the new ids would pass the WithMaxNodes limit.
//
// Complexity: O(n) amortized.
func (g *Graph) AddNodes(n int64) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("AddNodes(%d): %w", n, ErrNegativeCount)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	first := int64(len(g.adjacency))
	if g.maxNodes > 0 && n > g.maxNodes-first {
		return 0, fmt.Errorf("AddNodes(%d): %d nodes exist, limit %d: %w", n, first, g.maxNodes, ErrNodeIDTooLarge)
	}
	g.grow(first + n)

	return first, nil
}

// HasNode reports whether id lies in [0, NodeCount()).
func (g *Graph) HasNode(id int64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return id >= 0 && id < int64(len(g.adjacency))
}

// AddEdge connects from→to (and to→from for undirected graphs).
// Ids beyond the current range grow the node space, mirroring how the string-keyed
// graphs auto-add missing vertices.
//
// Errors:
//   - ErrNegativeNodeID if either endpoint is negative.
//   - ErrLoopNotAllowed if from == to without WithLoops.
//   - ErrMultiEdgeNotAllowed if the edge exists without WithMultiEdges.
//   - ErrNodeIDTooLarge if an endpoint is at or beyond the WithMaxNodes limit.
//
// Complexity: O(d) for the sorted insert, d = degree of the endpoint.
func (g *Graph) AddEdge(from, to int64) error {
	if from < 0 || to < 0 {
		return fmt.Errorf("AddEdge(%d→%d): %w", from, to, ErrNegativeNodeID)
	}
	if g.maxNodes > 0 && max(from, to) >= g.maxNodes {
		return fmt.Errorf("AddEdge(%d→%d): limit %d: %w", from, to, g.maxNodes, ErrNodeIDTooLarge)
	}
	if from == to && !g.allowLoops {
		return fmt.Errorf("AddEdge(%d→%d): %w", from, to, ErrLoopNotAllowed)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.grow(max(from, to) + 1)

	// Multi-edge check happens before any mutation so a rejected edge leaves no trace.
	if !g.allowMulti {
		if _, found := slices.BinarySearch(g.adjacency[from], to); found {
			return fmt.Errorf("AddEdge(%d→%d): %w", from, to, ErrMultiEdgeNotAllowed)
		}
	}

	g.insert(from, to)
	// Mirror for undirected graphs; a loop is stored once.
	if !g.directed && from != to {
		g.insert(to, from)
	}
	g.edgeCount++

	return nil
}

// HasEdge reports whether at least one edge from→to exists.
//
// Complexity: O(log d).
func (g *Graph) HasEdge(from, to int64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if from < 0 || from >= int64(len(g.adjacency)) {
		return false
	}
	_, found := slices.BinarySearch(g.adjacency[from], to)

	return found
}

// NodeCount returns the size of the dense id space.
func (g *Graph) NodeCount() int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return int64(len(g.adjacency))
}

// EdgeCount returns the number of edges added; an undirected edge counts once.
func (g *Graph) EdgeCount() int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeCount
}

// Nodes returns an iterator over all node ids in ascending order.
// The range is captured when iteration starts.
func (g *Graph) Nodes() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		n := g.NodeCount()
		for id := int64(0); id < n; id++ {
			if !yield(id) {
				return
			}
		}
	}
}

// Degree returns the number of adjacency entries of id: out-degree for directed
// graphs, incident edges for undirected ones (a loop counts once).
// Unknown ids have degree 0.
//
// Complexity: O(1).
func (g *Graph) Degree(id int64) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if id < 0 || id >= int64(len(g.adjacency)) {
		return 0
	}

	return len(g.adjacency[id])
}

// Neighbors returns a sorted copy of the targets adjacent to id.
// Parallel edges appear once per edge.
//
// Errors:
//   - ErrNodeNotFound if id is outside [0, NodeCount()).
func (g *Graph) Neighbors(id int64) ([]int64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if id < 0 || id >= int64(len(g.adjacency)) {
		return nil, fmt.Errorf("Neighbors(%d): %w", id, ErrNodeNotFound)
	}

	return slices.Clone(g.adjacency[id]), nil
}

// ForEachNeighbor calls visit for each target adjacent to id in ascending order,
// stopping early when visit returns false. Unknown ids visit nothing.
//
// The read lock is held during the walk: visit must not mutate g.
func (g *Graph) ForEachNeighbor(id int64, visit func(target int64) bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if id < 0 || id >= int64(len(g.adjacency)) {
		return
	}
	for _, t := range g.adjacency[id] {
		if !visit(t) {
			return
		}
	}
}

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.directed
}

// Looped reports whether self-loops are permitted.
func (g *Graph) Looped() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.allowLoops
}

// Multigraph reports whether parallel edges are permitted.
func (g *Graph) Multigraph() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.allowMulti
}

// Clone returns a deep copy of g with the same flags.
//
// Complexity: O(V+E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	c := &Graph{
		directed:   g.directed,
		allowMulti: g.allowMulti,
		allowLoops: g.allowLoops,
		maxNodes:   g.maxNodes,
		adjacency:  make([][]int64, len(g.adjacency)),
		edgeCount:  g.edgeCount,
	}
	for i, row := range g.adjacency {
		c.adjacency[i] = slices.Clone(row)
	}

	return c
}

// Stats returns a snapshot summary of g.
//
// Complexity: O(V).
func (g *Graph) Stats() GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := GraphStats{
		NodeCount: int64(len(g.adjacency)),
		EdgeCount: g.edgeCount,
		Directed:  g.directed,
	}
	for _, row := range g.adjacency {
		if len(row) == 0 {
			s.IsolatedNodes++
		}
		s.MaxDegree = max(s.MaxDegree, len(row))
	}

	return s
}

// grow extends the id space to n nodes in one allocation. Caller holds the write lock.
func (g *Graph) grow(n int64) {
	cur := len(g.adjacency)
	if int64(cur) >= n {
		return
	}
	g.adjacency = slices.Grow(g.adjacency, int(n)-cur)[:n]
	clear(g.adjacency[cur:])
}

// insert places to into the sorted row of from. Caller holds the write lock.
func (g *Graph) insert(from, to int64) {
	row := g.adjacency[from]
	i, _ := slices.BinarySearch(row, to)
	g.adjacency[from] = slices.Insert(row, i, to)
}
