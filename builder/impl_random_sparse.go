// SPDX-License-Identifier: MIT
// Package: bspgraph/builder
//
// impl_random_sparse.go - RandomSparse(n, p).
//
// Canonical model:
//   - Erdős–Rényi-like generator: each admissible pair is kept independently with probability p.
//   - Undirected: unordered pairs {i,j}, i<j.
//   - Directed: ordered pairs (i,j); self-loops only when g.Looped().
//
// Contract:
//   - n ≥ 1 (ErrTooFewVertices), 0 ≤ p ≤ 1 (ErrInvalidProbability).
//   - cfg.rng is required for 0 < p < 1 (ErrNeedRandSource); p ∈ {0,1} is deterministic.
//
// Complexity: O(n²) Bernoulli trials.
//
// Determinism: trial order is i asc, then j asc, so a fixed seed gives a fixed graph.

package builder

import (
	"fmt"

	"github.com/katalvlaran/bspgraph/core"
)

// RandomSparse returns a Constructor that samples G(n, p).
func RandomSparse(n int, p float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(MethodRandomSparse, n, MinRandomNodes); err != nil {
			return err
		}
		if err := validateProbability(MethodRandomSparse, p); err != nil {
			return err
		}
		if cfg.rng == nil && p > MinProbability && p < MaxProbability {
			return fmt.Errorf("%s: rng is required: %w", MethodRandomSparse, ErrNeedRandSource)
		}
		first, err := appendNodes(MethodRandomSparse, g, n)
		if err != nil {
			return err
		}

		keep := func() bool {
			switch p {
			case MinProbability:
				return false
			case MaxProbability:
				return true
			default:
				return cfg.rng.Float64() < p
			}
		}

		end := first + int64(n)
		directed, loops := g.Directed(), g.Looped()
		for u := first; u < end; u++ {
			start := u + 1
			if directed {
				start = first
			}
			for v := start; v < end; v++ {
				if u == v && !loops {
					continue
				}
				if !keep() {
					continue
				}
				if err = connect(MethodRandomSparse, g, u, v); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
