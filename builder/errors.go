// SPDX-License-Identifier: MIT
// Package: bspgraph/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only package-level sentinels are exposed; callers branch with errors.Is.
//   - Implementations attach context with %w: "<Method>: <detail>: <sentinel>".
//   - Validation order: size, then probability, then RNG presence.

package builder

import "errors"

// ErrTooFewVertices indicates that a size parameter (n, rows, cols) is smaller
// than the minimum of the requested constructor.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor needs WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil graph or constructor, or a core graph
// mutation that the constructor could not perform.
var ErrConstructFailed = errors.New("builder: construction failed")
