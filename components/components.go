// SPDX-License-Identifier: MIT
//
// File: components.go
// Role: connected-components vertex program and its runner.

package components

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/bspgraph/bfs"
	"github.com/katalvlaran/bspgraph/pregel"
)

// ErrDirectedGraph is returned by Run for graphs reporting Directed() == true,
// since labels only travel along outgoing edges.
var ErrDirectedGraph = errors.New("components: graph is directed")

// Program labels every vertex with the smallest node id of its component.
//
// Superstep 0: label = own id, broadcast it.
// Later: adopt the smallest incoming label if it is lower, and broadcast only then.
// Every vertex votes to halt after each invocation; a lower label reactivates it.
type Program struct{}

// Compute implements pregel.Computation.
func (Program) Compute(ctx *pregel.Context[int64, int64], nodeID int64, messages []int64) error {
	defer ctx.VoteToHalt()

	label := ctx.NodeValue(nodeID)
	if ctx.IsInitialSuperstep() {
		label = nodeID
	} else {
		lowest := label
		for _, m := range messages {
			lowest = min(lowest, m)
		}
		if lowest == label {
			return nil
		}
		label = lowest
	}

	if err := ctx.SetNodeValue(nodeID, label); err != nil {
		return err
	}

	return ctx.SendMessages(nodeID, label)
}

// Combine keeps the smaller label.
func (Program) Combine(existing, incoming int64) int64 {
	return min(existing, incoming)
}

// Result is the outcome of a components run. Values holds the label per node.
type Result struct {
	*pregel.Result[int64]
}

// Labels returns the component label of every node, indexed by node id.
func (r *Result) Labels() []int64 { return r.Values }

// Count returns the number of distinct labels.
func (r *Result) Count() int {
	seen := make(map[int64]struct{})
	for _, label := range r.Values {
		seen[label] = struct{}{}
	}
	return len(seen)
}

// Components groups node ids by label. Groups are ordered by label and members
// are ascending. After convergence the first member of each group is its label.
func (r *Result) Components() [][]int64 {
	index := make(map[int64]int)
	var groups [][]int64
	for id, label := range r.Values {
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], int64(id))
	}
	slices.SortFunc(groups, func(a, b []int64) int {
		return cmp.Compare(r.Values[a[0]], r.Values[b[0]])
	})

	return groups
}

// Run computes the connected components of an undirected graph. Message
// combining is enabled; opts are applied after it.
//
// Errors: ErrDirectedGraph, and anything pregel.New or Run return.
func Run(ctx context.Context, g pregel.Graph, opts ...pregel.Option) (*Result, error) {
	if d, ok := g.(interface{ Directed() bool }); ok && d.Directed() {
		return nil, ErrDirectedGraph
	}

	all := append([]pregel.Option{pregel.WithMessageCombining()}, opts...)
	p, err := pregel.New[int64, int64](g, Program{}, nil, all...)
	if err != nil {
		return nil, fmt.Errorf("components: %w", err)
	}

	res, err := p.Run(ctx)
	if res == nil {
		return nil, err
	}

	return &Result{Result: res}, err
}

// Sequential labels the components of g with one BFS per unlabeled node,
// scanning ids in ascending order so every label is its component's smallest
// id. The labels equal those of a converged Run; Sequential accepts directed
// graphs but then labels reachability from the smaller id, not components.
func Sequential(ctx context.Context, g pregel.Graph) ([]int64, error) {
	labels := make([]int64, g.NodeCount())
	for i := range labels {
		labels[i] = -1
	}
	for id := range g.Nodes() {
		if labels[id] >= 0 {
			continue
		}
		res, err := bfs.BFS(g, id,
			bfs.WithContext(ctx),
			bfs.WithFilterNeighbor(func(_, nbr int64) bool { return labels[nbr] < 0 }))
		if err != nil {
			return nil, fmt.Errorf("components: %w", err)
		}
		for _, member := range res.Order {
			labels[member] = id
		}
	}

	return labels, nil
}
