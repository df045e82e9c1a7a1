// SPDX-License-Identifier: MIT
// Package: bspgraph/builder
//
// impl_star.go - Star(n) and Wheel(n).
//
// Contract:
//   - The hub is the first appended node (offset o).
//   - Star emits o→o+i for i=1..n-1.
//   - Wheel emits the ring o+1→...→o+n-1→o+1 first, then the spokes o→o+i.
//
// Complexity: O(n) nodes and edges.

package builder

import "github.com/katalvlaran/bspgraph/core"

// Star returns a Constructor that builds a star with one hub and n-1 leaves.
func Star(n int) Constructor {
	return func(g *core.Graph, _ builderConfig) error {
		if err := validateMin(MethodStar, n, MinStarNodes); err != nil {
			return err
		}
		hub, err := appendNodes(MethodStar, g, n)
		if err != nil {
			return err
		}

		return spokes(MethodStar, g, hub, n)
	}
}

// Wheel returns a Constructor that builds W_n: a cycle of n-1 nodes plus a hub.
func Wheel(n int) Constructor {
	return func(g *core.Graph, _ builderConfig) error {
		if err := validateMin(MethodWheel, n, MinWheelNodes); err != nil {
			return err
		}
		hub, err := appendNodes(MethodWheel, g, n)
		if err != nil {
			return err
		}
		if err = chain(MethodWheel, g, hub+1, n-1); err != nil {
			return err
		}
		if err = connect(MethodWheel, g, hub+int64(n)-1, hub+1); err != nil {
			return err
		}

		return spokes(MethodWheel, g, hub, n)
	}
}

// spokes connects hub to hub+1..hub+n-1.
func spokes(method string, g *core.Graph, hub int64, n int) error {
	for leaf := hub + 1; leaf < hub+int64(n); leaf++ {
		if err := connect(method, g, hub, leaf); err != nil {
			return err
		}
	}
	return nil
}
