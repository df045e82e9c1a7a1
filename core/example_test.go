package core_test

import (
	"fmt"

	"github.com/katalvlaran/bspgraph/core"
)

// ExampleGraph builds a small undirected path and lists each node's neighbors.
func ExampleGraph() {
	g := core.NewGraph()
	_ = g.AddEdge(0, 1)
	_ = g.AddEdge(1, 2)
	g.AddNode() // isolated node 3

	for id := range g.Nodes() {
		nbs, _ := g.Neighbors(id)
		fmt.Printf("%d (deg %d): %v\n", id, g.Degree(id), nbs)
	}

	// Output:
	// 0 (deg 1): [1]
	// 1 (deg 2): [0 2]
	// 2 (deg 1): [1]
	// 3 (deg 0): []
}
