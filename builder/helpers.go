// Package builder helpers shared by the constructors.
package builder

import (
	"fmt"

	"github.com/katalvlaran/bspgraph/core"
)

// validateMin ensures got ≥ minimum.
func validateMin(method string, got, minimum int) error {
	if got < minimum {
		return fmt.Errorf("%s: n=%d < min=%d: %w", method, got, minimum, ErrTooFewVertices)
	}
	return nil
}

// validateProbability enforces p ∈ [MinProbability, MaxProbability].
func validateProbability(method string, p float64) error {
	if p < MinProbability || p > MaxProbability {
		return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
			method, p, MinProbability, MaxProbability, ErrInvalidProbability)
	}
	return nil
}

// appendNodes adds n isolated nodes and returns the id of the first one.
func appendNodes(method string, g *core.Graph, n int) (int64, error) {
	first, err := g.AddNodes(int64(n))
	if err != nil {
		return 0, fmt.Errorf("%s: AddNodes(%d): %v: %w", method, n, err, ErrConstructFailed)
	}
	return first, nil
}

// connect adds u→v, wrapping core errors with method context.
func connect(method string, g *core.Graph, u, v int64) error {
	if err := g.AddEdge(u, v); err != nil {
		return fmt.Errorf("%s: AddEdge(%d→%d): %w", method, u, v, err)
	}
	return nil
}
