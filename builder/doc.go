// Package builder assembles deterministic test and benchmark topologies on a
// core.Graph with functional-options style constructors.
//
// The package offers:
//
//   - BuildGraph(gopts, bopts, cons...): create a graph and run constructors in order.
//   - Apply(g, bopts, cons...): run constructors against an existing graph.
//   - Constructors: Isolated, Path, Cycle, Star, Wheel, Complete, Grid, RandomSparse.
//   - Options: WithSeed, WithRand for the stochastic constructors.
//
// Composition:
//
//	Each constructor appends its nodes after the ones already present, so
//	BuildGraph(nil, nil, Path(3), Cycle(4)) yields nodes 0..2 (path) and 3..6
//	(cycle) with no edge between the two parts: a disjoint union whose
//	connected components are known in advance.
//
// Guarantees:
//
//   - Determinism: same constructors, options and seed produce the same graph.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Constructors never panic; they return ErrTooFewVertices,
//     ErrInvalidProbability, ErrNeedRandSource or ErrConstructFailed wrapped with
//     "<Method>: ..." context.
package builder
