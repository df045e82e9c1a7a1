// SPDX-License-Identifier: MIT
// Package: bspgraph/builder
//
// impl_complete.go - Complete(n).
//
// Contract:
//   - Undirected: one edge per unordered pair {i<j}, i asc then j asc.
//   - Directed: both i→j and j→i, emitted for i asc then j asc, skipping i==j.
//
// Complexity: O(n²) edges.

package builder

import "github.com/katalvlaran/bspgraph/core"

// Complete returns a Constructor that builds the complete simple graph K_n.
func Complete(n int) Constructor {
	return func(g *core.Graph, _ builderConfig) error {
		if err := validateMin(MethodComplete, n, MinCompleteNodes); err != nil {
			return err
		}
		first, err := appendNodes(MethodComplete, g, n)
		if err != nil {
			return err
		}

		end := first + int64(n)
		directed := g.Directed()
		for u := first; u < end; u++ {
			start := u + 1
			if directed {
				start = first
			}
			for v := start; v < end; v++ {
				if u == v {
					continue
				}
				if err = connect(MethodComplete, g, u, v); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
