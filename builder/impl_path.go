// SPDX-License-Identifier: MIT
// Package: bspgraph/builder
//
// impl_path.go - Isolated(n), Path(n) and Cycle(n).
//
// Contract:
//   - Nodes are appended at offset o = g.NodeCount(); ids o..o+n-1.
//   - Path emits (o+i-1)→(o+i) for i=1..n-1 in increasing order.
//   - Cycle emits the Path edges, then (o+n-1)→o.
//
// Complexity: O(n) nodes and edges, O(1) extra space.

package builder

import "github.com/katalvlaran/bspgraph/core"

// Isolated returns a Constructor that appends n nodes without edges.
func Isolated(n int) Constructor {
	return func(g *core.Graph, _ builderConfig) error {
		if err := validateMin(MethodIsolated, n, MinIsolatedNodes); err != nil {
			return err
		}
		_, err := appendNodes(MethodIsolated, g, n)
		return err
	}
}

// Path returns a Constructor that builds a simple path P_n.
func Path(n int) Constructor {
	return func(g *core.Graph, _ builderConfig) error {
		if err := validateMin(MethodPath, n, MinPathNodes); err != nil {
			return err
		}
		first, err := appendNodes(MethodPath, g, n)
		if err != nil {
			return err
		}

		return chain(MethodPath, g, first, n)
	}
}

// Cycle returns a Constructor that builds a simple cycle C_n.
func Cycle(n int) Constructor {
	return func(g *core.Graph, _ builderConfig) error {
		if err := validateMin(MethodCycle, n, MinCycleNodes); err != nil {
			return err
		}
		first, err := appendNodes(MethodCycle, g, n)
		if err != nil {
			return err
		}
		if err = chain(MethodCycle, g, first, n); err != nil {
			return err
		}

		return connect(MethodCycle, g, first+int64(n)-1, first)
	}
}

// chain connects first→first+1→...→first+n-1.
func chain(method string, g *core.Graph, first int64, n int) error {
	last := first + int64(n) - 1
	for u := first; u < last; u++ {
		if err := connect(method, g, u, u+1); err != nil {
			return err
		}
	}
	return nil
}
