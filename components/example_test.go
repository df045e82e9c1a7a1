package components_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/bspgraph/components"
	"github.com/katalvlaran/bspgraph/core"
)

func ExampleRun() {
	g := core.NewGraph()
	_, _ = g.AddNodes(4)
	_ = g.AddEdge(0, 1)
	_ = g.AddEdge(1, 2)

	res, err := components.Run(context.Background(), g)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Labels())
	fmt.Println(res.Components())

	// Output:
	// [0 0 0 3]
	// [[0 1 2] [3]]
}
