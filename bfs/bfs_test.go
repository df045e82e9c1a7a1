package bfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bspgraph/bfs"
	"github.com/katalvlaran/bspgraph/builder"
	"github.com/katalvlaran/bspgraph/core"
)

func grid(t *testing.T, rows, cols int) *core.Graph {
	t.Helper()
	g, err := builder.BuildGraph(nil, nil, builder.Grid(rows, cols))
	require.NoError(t, err)
	return g
}

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, 0)
	require.ErrorIs(t, err, bfs.ErrGraphNil)

	g := core.NewGraph()
	_, err = bfs.BFS(g, 0)
	require.ErrorIs(t, err, bfs.ErrStartNodeNotFound)

	g.AddNode()
	_, err = bfs.BFS(g, -1)
	require.ErrorIs(t, err, bfs.ErrStartNodeNotFound)

	_, err = bfs.BFS(g, 0, bfs.WithMaxDepth(-1))
	require.ErrorIs(t, err, bfs.ErrOptionViolation)
}

func TestBFS_SingleNode(t *testing.T) {
	g := core.NewGraph()
	g.AddNode()

	res, err := bfs.BFS(g, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, res.Order)
	assert.Equal(t, 0, res.Depth[0])
	assert.Empty(t, res.Parent)
}

func TestBFS_GridLayers(t *testing.T) {
	res, err := bfs.BFS(grid(t, 3, 3), 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 3, 2, 4, 6, 5, 7, 8}, res.Order)
	for id, d := range res.Depth {
		r, c := int(id)/3, int(id)%3
		assert.Equal(t, r+c, d, "node %d", id)
	}

	path, err := res.PathTo(8)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2, 5, 8}, path)

	path, err = res.PathTo(0)
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, path)
}

func TestBFS_StaysInComponent(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Path(3), builder.Cycle(4))
	require.NoError(t, err)

	res, err := bfs.BFS(g, 4)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{3, 4, 5, 6}, res.Order)

	_, err = res.PathTo(0)
	require.ErrorIs(t, err, bfs.ErrNoPath)
}

func TestBFS_Directed(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true))
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(2, 1))

	res, err := bfs.BFS(g, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1}, res.Order, "edges are followed forward only")
}

func TestBFS_MaxDepthAndFilter(t *testing.T) {
	g := grid(t, 3, 3)

	res, err := bfs.BFS(g, 0, bfs.WithMaxDepth(1))
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 3}, res.Order)

	// drop every edge into column 1
	res, err = bfs.BFS(g, 0, bfs.WithFilterNeighbor(func(_, nbr int64) bool { return nbr%3 != 1 }))
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 3, 6}, res.Order)
}

func TestBFS_OnVisitAndCancel(t *testing.T) {
	g := grid(t, 3, 3)
	stop := errors.New("stop")

	var seen []int64
	_, err := bfs.BFS(g, 0, bfs.WithOnVisit(func(id int64, depth int) error {
		seen = append(seen, id)
		if depth == 2 {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)
	assert.Equal(t, []int64{0, 1, 3, 2}, seen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bfs.BFS(g, 0, bfs.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}
