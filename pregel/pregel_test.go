package pregel_test

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bspgraph/core"
	"github.com/katalvlaran/bspgraph/partition"
	"github.com/katalvlaran/bspgraph/pregel"
)

// pathGraph returns 0-1-...-(n-1), undirected.
func pathGraph(t *testing.T, n int64) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	_, err := g.AddNodes(n)
	require.NoError(t, err)
	for i := int64(0); i+1 < n; i++ {
		require.NoError(t, g.AddEdge(i, i+1))
	}
	return g
}

// isolated returns n nodes without edges.
func isolated(t *testing.T, n int64) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	_, err := g.AddNodes(n)
	require.NoError(t, err)
	return g
}

// trace records the supersteps in which each vertex was computed.
func trace(ctx *pregel.Context[[]int, int], id int64) error {
	steps := append(ctx.NodeValue(id), ctx.Superstep())
	return ctx.SetNodeValue(id, steps)
}

func run[V, M any](t *testing.T, g pregel.Graph, c pregel.Computation[V, M], init func(int64) V, opts ...pregel.Option) (*pregel.Result[V], error) {
	t.Helper()
	p, err := pregel.New(g, c, init, opts...)
	require.NoError(t, err)
	return p.Run(context.Background())
}

func TestNew_Validation(t *testing.T) {
	halt := pregel.ComputeFunc[int, int](func(ctx *pregel.Context[int, int], _ int64, _ []int) error {
		ctx.VoteToHalt()
		return nil
	})
	g := isolated(t, 1)

	_, err := pregel.New[int, int](nil, halt, nil)
	require.ErrorIs(t, err, pregel.ErrNilGraph)
	_, err = pregel.New[int, int](g, nil, nil)
	require.ErrorIs(t, err, pregel.ErrNilComputation)

	bad := map[string]pregel.Option{
		"concurrency":  pregel.WithConcurrency(0),
		"supersteps":   pregel.WithMaxSupersteps(0),
		"partitioning": pregel.WithPartitioning(pregel.Partitioning(9)),
		"alignment":    pregel.WithAlignment(0),
		"degree batch": pregel.WithDegreeBatchSize(-1),
		"no combiner":  pregel.WithMessageCombining(),
	}
	for name, opt := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := pregel.New(g, halt, nil, opt)
			require.ErrorIs(t, err, pregel.ErrOptionViolation)
		})
	}

	p, err := pregel.New(g, halt, nil, pregel.WithLogger(nil), pregel.WithConcurrency(3))
	require.NoError(t, err)
	assert.Equal(t, 3, p.Options().Concurrency)
	assert.Equal(t, pregel.DefaultMaxSupersteps, p.Options().MaxSupersteps)
	assert.NotNil(t, p.Options().Logger)
}

func TestRun_EmptyGraph(t *testing.T) {
	res, err := run(t, core.NewGraph(), pregel.ComputeFunc[int, int](func(*pregel.Context[int, int], int64, []int) error {
		t.Error("no vertex to compute")
		return nil
	}), nil)
	require.NoError(t, err)
	assert.Equal(t, pregel.Converged, res.Termination)
	assert.Zero(t, res.Supersteps)
	assert.Empty(t, res.Values)
}

// sparseIDs reports NodeCount() ids but yields only some of them from Nodes().
type sparseIDs struct {
	*core.Graph
	ids []int64
}

func (g sparseIDs) Nodes() iter.Seq[int64] { return slices.Values(g.ids) }

func TestRun_RejectsUncoveredIDSpace(t *testing.T) {
	set := pregel.ComputeFunc[int, int](func(ctx *pregel.Context[int, int], id int64, _ []int) error {
		ctx.VoteToHalt()
		return ctx.SetNodeValue(id, 1)
	})

	for name, ids := range map[string][]int64{
		"leading gap":  {1, 2, 3},
		"trailing gap": {0, 1},
	} {
		t.Run(name, func(t *testing.T) {
			g := sparseIDs{Graph: pathGraph(t, 4), ids: ids}
			p, err := pregel.New(g, set, nil, pregel.WithPartitioning(pregel.PartitionDegree))
			require.NoError(t, err)

			res, err := p.Run(context.Background())
			require.ErrorIs(t, err, partition.ErrCoverage)
			assert.Nil(t, res)
		})
	}

	// range partitioning ignores Nodes() and covers every id
	res, err := run(t, sparseIDs{Graph: pathGraph(t, 4), ids: []int64{1, 2, 3}}, set, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 1}, res.Values)
}

func TestRun_NoTrafficStopsAfterSuperstepZero(t *testing.T) {
	c := pregel.ComputeFunc[[]int, int](func(ctx *pregel.Context[[]int, int], id int64, _ []int) error {
		ctx.VoteToHalt()
		return trace(ctx, id)
	})
	res, err := run(t, pathGraph(t, 10), c, nil)
	require.NoError(t, err)
	assert.Equal(t, pregel.Converged, res.Termination)
	assert.Equal(t, 1, res.Supersteps)
	assert.Zero(t, res.MessagesSent)
	for id, steps := range res.Values {
		assert.Equal(t, []int{0}, steps, "node %d", id)
	}
}

func TestRun_InitialValues(t *testing.T) {
	c := pregel.ComputeFunc[int64, int](func(ctx *pregel.Context[int64, int], id int64, _ []int) error {
		ctx.VoteToHalt()
		return ctx.SetNodeValue(id, ctx.NodeValue(id)*10)
	})
	res, err := run(t, isolated(t, 4), c, func(id int64) int64 { return id + 1 })
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20, 30, 40}, res.Values)

	res, err = run(t, isolated(t, 2), c, pregel.Constant[int64](7))
	require.NoError(t, err)
	assert.Equal(t, []int64{70, 70}, res.Values)
}

// Messages sent in superstep s are seen exactly once, in superstep s+1.
func TestRun_DeliveryLaw(t *testing.T) {
	type inbox struct {
		step int
		msgs []int64
	}
	g := pathGraph(t, 5)
	c := pregel.ComputeFunc[[]inbox, int64](func(ctx *pregel.Context[[]inbox, int64], id int64, msgs []int64) error {
		seen := append(ctx.NodeValue(id), inbox{step: ctx.Superstep(), msgs: slices.Sorted(slices.Values(msgs))})
		if err := ctx.SetNodeValue(id, seen); err != nil {
			return err
		}
		if ctx.Superstep() < 2 {
			return ctx.SendMessages(id, id*100+int64(ctx.Superstep()))
		}
		ctx.VoteToHalt()
		return nil
	})

	res, err := run(t, g, c, nil, pregel.WithConcurrency(3), pregel.WithAlignment(1))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Supersteps)
	assert.Equal(t, pregel.Converged, res.Termination)
	assert.Equal(t, int64(2*2*4), res.MessagesSent, "8 directed edges, two sending supersteps")

	for id, seen := range res.Values {
		nbrs, err := g.Neighbors(int64(id))
		require.NoError(t, err)
		require.Len(t, seen, 3)
		assert.Empty(t, seen[0].msgs, "node %d: nothing is delivered in superstep 0", id)
		for s := 1; s <= 2; s++ {
			want := make([]int64, 0, len(nbrs))
			for _, nb := range nbrs {
				want = append(want, nb*100+int64(s-1))
			}
			assert.Equal(t, s, seen[s].step)
			assert.Equal(t, want, seen[s].msgs, "node %d superstep %d", id, s)
		}
	}
}

// A halted vertex is skipped until a message reactivates it.
func TestRun_Reactivation(t *testing.T) {
	c := pregel.ComputeFunc[[]int, int](func(ctx *pregel.Context[[]int, int], id int64, _ []int) error {
		if err := trace(ctx, id); err != nil {
			return err
		}
		if id == 0 && ctx.Superstep() < 3 {
			return nil
		}
		if id == 0 {
			if err := ctx.SendMessage(2, 1); err != nil {
				return err
			}
		}
		ctx.VoteToHalt()
		return nil
	})

	res, err := run(t, isolated(t, 3), c, nil, pregel.WithConcurrency(2), pregel.WithAlignment(1))
	require.NoError(t, err)
	assert.Equal(t, pregel.Converged, res.Termination)
	assert.Equal(t, 5, res.Supersteps)
	assert.Equal(t, [][]int{{0, 1, 2, 3}, {0}, {0, 4}}, res.Values)
	assert.Equal(t, int64(1), res.MessagesSent)
}

func TestRun_MaxSupersteps(t *testing.T) {
	c := pregel.ComputeFunc[int, int](func(ctx *pregel.Context[int, int], id int64, _ []int) error {
		return ctx.SetNodeValue(id, ctx.NodeValue(id)+1)
	})
	res, err := run(t, isolated(t, 3), c, nil, pregel.WithMaxSupersteps(5))
	require.NoError(t, err, "reaching the cap is not an error")
	assert.Equal(t, pregel.MaxSuperstepsReached, res.Termination)
	assert.Equal(t, 5, res.Supersteps)
	assert.Equal(t, []int{5, 5, 5}, res.Values)
}

func TestRun_ComputeError(t *testing.T) {
	boom := errors.New("boom")
	c := pregel.ComputeFunc[int, int](func(ctx *pregel.Context[int, int], id int64, _ []int) error {
		if err := ctx.SetNodeValue(id, ctx.Superstep()+1); err != nil {
			return err
		}
		if id == 3 && ctx.Superstep() == 1 {
			return boom
		}
		return nil
	})

	res, err := run(t, isolated(t, 6), c, nil, pregel.WithConcurrency(2), pregel.WithAlignment(2))
	require.ErrorIs(t, err, boom)

	var ce *pregel.ComputeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Superstep)
	assert.Equal(t, int64(3), ce.NodeID)
	assert.Contains(t, err.Error(), "superstep 1: node 3")

	require.NotNil(t, res)
	assert.Equal(t, pregel.Aborted, res.Termination)
	assert.Equal(t, 2, res.Supersteps)
	// the rest of superstep 1 still ran
	assert.Equal(t, []int{2, 2, 2, 2, 2, 2}, res.Values)
}

func TestRun_PanicRecovered(t *testing.T) {
	c := pregel.ComputeFunc[int, int](func(_ *pregel.Context[int, int], id int64, _ []int) error {
		if id == 1 {
			panic("bad vertex")
		}
		return nil
	})

	res, err := run(t, isolated(t, 3), c, nil)
	require.ErrorIs(t, err, pregel.ErrComputePanic)
	assert.Contains(t, err.Error(), "bad vertex")
	assert.Equal(t, pregel.Aborted, res.Termination)
	assert.Equal(t, 1, res.Supersteps)
}

func TestRun_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := pregel.ComputeFunc[int, int](func(pc *pregel.Context[int, int], id int64, _ []int) error {
		if id == 0 && pc.Superstep() == 2 {
			cancel()
		}
		return pc.SetNodeValue(id, pc.Superstep())
	})
	p, err := pregel.New(isolated(t, 4), c, nil)
	require.NoError(t, err)

	res, err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, pregel.Aborted, res.Termination)
	// cancellation is observed at the barrier, after superstep 2 completed
	assert.Equal(t, 3, res.Supersteps)
	assert.Equal(t, []int{2, 2, 2, 2}, res.Values)
}

func TestContext_Accessors(t *testing.T) {
	g := pathGraph(t, 3)
	type view struct {
		count   int64
		degree  int
		initial bool
		self    int64
	}
	c := pregel.ComputeFunc[view, int](func(ctx *pregel.Context[view, int], id int64, _ []int) error {
		ctx.VoteToHalt()
		return ctx.SetNodeValue(id, view{
			count:   ctx.NodeCount(),
			degree:  ctx.Degree(),
			initial: ctx.IsInitialSuperstep(),
			self:    ctx.NodeID(),
		})
	})
	res, err := run(t, g, c, nil)
	require.NoError(t, err)
	assert.Equal(t, []view{{3, 1, true, 0}, {3, 2, true, 1}, {3, 1, true, 2}}, res.Values)
}

func TestContext_ForeignAccess(t *testing.T) {
	c := pregel.ComputeFunc[[]error, int](func(ctx *pregel.Context[[]error, int], id int64, _ []int) error {
		other := (id + 1) % ctx.NodeCount()
		errs := []error{
			ctx.SetNodeValue(other, nil),
			ctx.SendMessages(other, 1),
			ctx.SendMessage(-1, 1),
			ctx.SendMessage(ctx.NodeCount(), 1),
		}
		if ctx.NodeValue(other) != nil {
			errs = append(errs, fmt.Errorf("foreign value visible"))
		}
		ctx.VoteToHalt()
		return ctx.SetNodeValue(id, errs)
	})

	res, err := run(t, pathGraph(t, 2), c, nil)
	require.NoError(t, err)
	for _, errs := range res.Values {
		require.Len(t, errs, 4)
		assert.ErrorIs(t, errs[0], pregel.ErrForeignNode)
		assert.ErrorIs(t, errs[1], pregel.ErrForeignNode)
		assert.ErrorIs(t, errs[2], pregel.ErrNodeOutOfRange)
		assert.ErrorIs(t, errs[3], pregel.ErrNodeOutOfRange)
	}
	assert.Zero(t, res.MessagesSent)
}

// sumInbox records the messages a star hub receives and folds them by addition.
type sumInbox struct{}

func (sumInbox) Compute(ctx *pregel.Context[[]int, int], id int64, msgs []int) error {
	if ctx.IsInitialSuperstep() && id != 0 {
		if err := ctx.SendMessage(0, int(id)); err != nil {
			return err
		}
	}
	if len(msgs) > 0 {
		if err := ctx.SetNodeValue(id, slices.Clone(msgs)); err != nil {
			return err
		}
	}
	ctx.VoteToHalt()
	return nil
}

func (sumInbox) Combine(a, b int) int { return a + b }

func TestRun_MessageCombining(t *testing.T) {
	g := core.NewGraph()
	for leaf := int64(1); leaf <= 5; leaf++ {
		require.NoError(t, g.AddEdge(0, leaf))
	}

	res, err := run(t, g, pregel.Computation[[]int, int](sumInbox{}), nil, pregel.WithMessageCombining(), pregel.WithConcurrency(4), pregel.WithAlignment(1))
	require.NoError(t, err)
	assert.Equal(t, []int{15}, res.Values[0])
	assert.Equal(t, int64(5), res.MessagesSent)

	// without the option every message is delivered
	res, err = run(t, g, pregel.Computation[[]int, int](sumInbox{}), nil)
	require.NoError(t, err)
	got := slices.Sorted(slices.Values(res.Values[0]))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

// maxLabel propagates the largest id through each connected component.
var maxLabel = pregel.ComputeFunc[int64, int64](func(ctx *pregel.Context[int64, int64], id int64, msgs []int64) error {
	cur := ctx.NodeValue(id)
	changed := ctx.IsInitialSuperstep()
	for _, m := range msgs {
		if m > cur {
			cur, changed = m, true
		}
	}
	if err := ctx.SetNodeValue(id, cur); err != nil {
		return err
	}
	ctx.VoteToHalt()
	if changed {
		return ctx.SendMessages(id, cur)
	}
	return nil
})

func TestRun_DeterministicAcrossConfigurations(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddNodes(300)
	require.NoError(t, err)
	for i := int64(0); i < 300; i++ {
		if i%10 != 9 {
			require.NoError(t, g.AddEdge(i, i+1))
		}
		if i%7 == 0 && i+50 < 300 {
			require.NoError(t, g.AddEdge(i, i+50))
		}
	}

	identity := func(id int64) int64 { return id }
	want, err := run(t, g, maxLabel, identity, pregel.WithConcurrency(1))
	require.NoError(t, err)
	require.Equal(t, pregel.Converged, want.Termination)

	configs := map[string][]pregel.Option{
		"range/4":         {pregel.WithConcurrency(4)},
		"range/8/align=1": {pregel.WithConcurrency(8), pregel.WithAlignment(1)},
		"degree/4":        {pregel.WithConcurrency(4), pregel.WithPartitioning(pregel.PartitionDegree)},
		"degree/batch=16": {pregel.WithConcurrency(3), pregel.WithPartitioning(pregel.PartitionDegree), pregel.WithDegreeBatchSize(16)},
	}
	for name, opts := range configs {
		t.Run(name, func(t *testing.T) {
			got, err := run(t, g, maxLabel, identity, opts...)
			require.NoError(t, err)
			assert.Equal(t, want.Values, got.Values)
			assert.Equal(t, want.Supersteps, got.Supersteps)
			assert.Equal(t, want.MessagesSent, got.MessagesSent)
			assert.Positive(t, got.Partitions)
		})
	}
}

func TestTerminationString(t *testing.T) {
	assert.Equal(t, "converged", pregel.Converged.String())
	assert.Equal(t, "max-supersteps", pregel.MaxSuperstepsReached.String())
	assert.Equal(t, "aborted", pregel.Aborted.String())
	assert.Equal(t, "termination(42)", pregel.Termination(42).String())
	assert.Equal(t, "degree", pregel.PartitionDegree.String())
}
