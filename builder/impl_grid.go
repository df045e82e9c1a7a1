// SPDX-License-Identifier: MIT
// Package: bspgraph/builder
//
// impl_grid.go - Grid(rows, cols).
//
// Contract:
//   - Row-major ids: o + r*cols + c.
//   - For each cell in row-major order: right edge (c+1 < cols), then down edge (r+1 < rows).
//   - A 1×1 grid is a single isolated node.
//
// Complexity: O(rows*cols) nodes and edges.

package builder

import (
	"fmt"

	"github.com/katalvlaran/bspgraph/core"
)

// Grid returns a Constructor that builds a rows×cols 4-neighborhood lattice.
func Grid(rows, cols int) Constructor {
	return func(g *core.Graph, _ builderConfig) error {
		if rows < MinGridDim || cols < MinGridDim {
			return fmt.Errorf("%s: %dx%d < min=%d: %w", MethodGrid, rows, cols, MinGridDim, ErrTooFewVertices)
		}
		first, err := appendNodes(MethodGrid, g, rows*cols)
		if err != nil {
			return err
		}

		at := func(r, c int) int64 { return first + int64(r*cols+c) }
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					if err = connect(MethodGrid, g, at(r, c), at(r, c+1)); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err = connect(MethodGrid, g, at(r, c), at(r+1, c)); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
