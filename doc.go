// Package bspgraph is a bulk-synchronous, vertex-centric graph engine in the
// style of Pregel, with the graph plumbing around it.
//
// 🚀 What is bspgraph?
//
//	A user-supplied Compute step runs over every active vertex in synchronized
//	supersteps. Vertices exchange messages along edges; a message sent in
//	superstep s is delivered in superstep s+1; a vertex that votes to halt
//	sleeps until a message wakes it. The run ends when every vertex has halted
//	and nothing is in flight, or when the superstep cap is reached.
//
// Packages:
//
//	pregel/      engine, message store, vertex Context, Result
//	partition/   number-aligned and degree-balanced node-range partitioning
//	components/  connected-components vertex program + sequential baseline
//	core/        thread-safe dense-id graph the engine runs on
//	builder/     path, cycle, star, wheel, complete, grid, random constructors
//	bfs/         breadth-first search over dense ids
//	edgelist/    text edge-list reader/writer
//	sqlgraph/    database/sql edge loader and per-node value writer
//	cmd/bspcc/   CLI: load a graph, run components, print and store labels
//
// Quick example:
//
//	    0───1───2      3
//
//	components.Run labels it [0 0 0 3]: every vertex ends with the smallest
//	id of its component.
//
//	go install github.com/katalvlaran/bspgraph/cmd/bspcc@latest
package bspgraph
