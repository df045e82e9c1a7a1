// SPDX-License-Identifier: MIT
// Package: bspgraph/builder
//
// api.go - public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: BuildGraph(gopts, bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Every constructor appends fresh node ids starting at g.NodeCount(), so composing
//     constructors yields the disjoint union of their topologies.
//   - Determinism: same inputs, options, seed and constructor order give identical graphs.
//   - Constructors never panic; they return builder sentinels wrapped with method context.

package builder

import (
	"fmt"

	"github.com/katalvlaran/bspgraph/core"
)

// Constructor applies a deterministic graph mutation using the resolved
// builderConfig. Constructors must:
//   - Validate parameters before touching g.
//   - Append their nodes after the existing ones.
//   - Respect core graph mode flags (directed, loops, multi-edges).
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a new core.Graph with graph options gopts, resolves the
// builder configuration from bopts, and applies all constructors in order.
// Any constructor error is wrapped with the context "BuildGraph: %w" and
// returned immediately.
//
// Complexity: O(len(bopts)) plus the sum of constructor costs.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	if err := Apply(g, bopts, cons...); err != nil {
		return nil, fmt.Errorf("BuildGraph: %w", err)
	}

	return g, nil
}

// Apply runs constructors against an existing graph, appending to it.
//
// Errors: ErrConstructFailed for a nil graph or nil constructor, or the first
// constructor error.
func Apply(g *core.Graph, bopts []BuilderOption, cons ...Constructor) error {
	if g == nil {
		return fmt.Errorf("Apply: nil graph: %w", ErrConstructFailed)
	}
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return err
		}
	}

	return nil
}

// Topology factories, implemented in impl_*.go. Node ids below are relative to
// the offset (g.NodeCount() when the constructor runs).
//
//	Isolated(n)        n ≥ 1, no edges.
//	Path(n)            n ≥ 2, i→i+1.
//	Cycle(n)           n ≥ 3, Path plus (n-1)→0.
//	Star(n)            n ≥ 2, hub 0 with leaves 1..n-1.
//	Wheel(n)           n ≥ 4, Cycle over 1..n-1 plus hub 0.
//	Complete(n)        n ≥ 1, every pair (both directions when directed).
//	Grid(rows, cols)   rows, cols ≥ 1, 4-neighborhood, id = r*cols + c.
//	RandomSparse(n, p) n ≥ 1, each admissible pair kept with probability p.
