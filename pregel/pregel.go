// SPDX-License-Identifier: MIT
//
// File: pregel.go
// Role: engine construction and the superstep loop.
//
// Run
//  1. Partition [0, n) once (range or degree strategy).
//  2. Start Concurrency workers fed by a task channel.
//  3. Per superstep: dispatch every partition, wait at the barrier, swap the
//     message arenas, sum partition counters, decide termination.
//  4. Close the task channel and join the pool.

package pregel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/katalvlaran/bspgraph/partition"
	"golang.org/x/sync/errgroup"
)

// Pregel runs a vertex program over a Graph in bulk-synchronous supersteps.
// A Pregel may be Run several times; runs do not share state.
type Pregel[V, M any] struct {
	graph       Graph
	computation Computation[V, M]
	initial     func(nodeID int64) V
	combine     func(existing, incoming M) M
	opts        Options
}

// New validates its arguments and options and returns an engine.
// A nil initial leaves every value at the zero V.
//
// Errors: ErrNilGraph, ErrNilComputation, ErrOptionViolation.
func New[V, M any](g Graph, c Computation[V, M], initial func(nodeID int64) V, opts ...Option) (*Pregel[V, M], error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if c == nil {
		return nil, ErrNilComputation
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	p := &Pregel[V, M]{graph: g, computation: c, initial: initial, opts: o}
	if o.Combine {
		cb, ok := c.(Combiner[M])
		if !ok {
			return nil, fmt.Errorf("%w: message combining requires a Combiner, got %T", ErrOptionViolation, c)
		}
		p.combine = cb.Combine
	}

	return p, nil
}

// Options returns the effective engine options.
func (p *Pregel[V, M]) Options() Options { return p.opts }

// Constant returns an initial-value function yielding v for every node.
func Constant[V any](v V) func(int64) V {
	return func(int64) V { return v }
}

// execution is the state of a single run shared by its workers.
type execution[V, M any] struct {
	graph       Graph
	computation Computation[V, M]
	nodeCount   int64
	values      []V
	halted      []bool
	store       *messageStore[M]

	errMu    sync.Mutex
	firstErr error
}

// task asks a worker to compute one partition in one superstep.
type task struct {
	superstep int
	part      partition.Partition
	stats     *partStats
	done      *sync.WaitGroup
}

// partStats is written by the worker that owns the partition and read after the barrier.
type partStats struct {
	computed int64 // vertices invoked
	unhalted int64 // invoked vertices that did not vote to halt
}

// Run executes supersteps until convergence, the superstep cap, a vertex-program
// error or cancellation of ctx, which is observed at barriers only.
//
// A graph whose Nodes() does not yield every id in [0, NodeCount()) fails with
// partition.ErrCoverage before any vertex runs.
//
// The returned Result is non-nil whenever partitioning succeeded, including on
// error, and then reflects the state at the abort point.
func (p *Pregel[V, M]) Run(ctx context.Context) (*Result[V], error) {
	start := time.Now()
	log := p.opts.Logger
	n := p.graph.NodeCount()

	parts, err := p.partitions(n)
	if err != nil {
		return nil, fmt.Errorf("pregel: partition: %w", err)
	}

	ex := &execution[V, M]{
		graph:       p.graph,
		computation: p.computation,
		nodeCount:   n,
		values:      make([]V, n),
		halted:      make([]bool, n),
		store:       newMessageStore(n, p.combine),
	}
	if p.initial != nil {
		for id := range ex.values {
			ex.values[id] = p.initial(int64(id))
		}
	}

	res := &Result[V]{Values: ex.values, Partitions: len(parts)}
	finish := func(t Termination) {
		res.Termination = t
		res.MessagesSent = ex.store.totalSent()
		res.Duration = time.Since(start)
	}

	log.Debug("pregel run start",
		slog.Int64("nodes", n),
		slog.Int("partitions", len(parts)),
		slog.Int("workers", p.opts.Concurrency),
		slog.String("partitioning", p.opts.Partitioning.String()))

	if n == 0 {
		finish(Converged)
		log.Info("pregel run done", slog.String("termination", res.Termination.String()), slog.Int("supersteps", 0))
		return res, nil
	}

	// The group only joins the workers: compute errors and panics are recorded
	// through execution.fail and surfaced at the barrier, so Wait has nothing to report.
	tasks := make(chan task)
	var pool errgroup.Group
	for w := 0; w < p.opts.Concurrency; w++ {
		wctx := &Context[V, M]{run: ex}
		pool.Go(func() error {
			for t := range tasks {
				ex.runPartition(wctx, t)
				t.done.Done()
			}
			return nil
		})
	}
	defer func() {
		close(tasks)
		_ = pool.Wait()
	}()

	stats := make([]partStats, len(parts))
	var barrier sync.WaitGroup
	for s := 0; ; s++ {
		if err := ctx.Err(); err != nil {
			finish(Aborted)
			return res, fmt.Errorf("pregel: superstep %d: %w", s, err)
		}

		stepStart := time.Now()
		clear(stats)
		barrier.Add(len(parts))
		for i, part := range parts {
			tasks <- task{superstep: s, part: part, stats: &stats[i], done: &barrier}
		}
		barrier.Wait()

		res.Supersteps = s + 1
		delivered := ex.store.swap()
		var computed, unhalted int64
		for _, st := range stats {
			computed += st.computed
			unhalted += st.unhalted
		}

		log.Debug("pregel superstep",
			slog.Int("superstep", s),
			slog.Int64("active", computed),
			slog.Int64("unhalted", unhalted),
			slog.Int64("messages", delivered),
			slog.Duration("elapsed", time.Since(stepStart)))

		if err := ex.err(); err != nil {
			finish(Aborted)
			log.Info("pregel run aborted", slog.Int("supersteps", res.Supersteps), slog.Any("error", err))
			return res, err
		}

		switch {
		case unhalted == 0 && delivered == 0:
			finish(Converged)
		case res.Supersteps >= p.opts.MaxSupersteps:
			finish(MaxSuperstepsReached)
		default:
			continue
		}
		break
	}

	log.Info("pregel run done",
		slog.String("termination", res.Termination.String()),
		slog.Int("supersteps", res.Supersteps),
		slog.Int64("messages", res.MessagesSent),
		slog.Duration("duration", res.Duration))

	return res, nil
}

// partitions splits [0, n) using the configured strategy and checks that the
// result covers every id, since degree partitions follow the graph's Nodes().
func (p *Pregel[V, M]) partitions(n int64) ([]partition.Partition, error) {
	var (
		parts []partition.Partition
		err   error
	)
	if p.opts.Partitioning == PartitionRange {
		parts, err = partition.NumberAligned(p.opts.Concurrency, n, p.opts.Alignment)
	} else {
		parts, err = p.degreePartitions()
	}
	if err != nil {
		return nil, err
	}
	if err = partition.Validate(parts, n); err != nil {
		return nil, err
	}

	return parts, nil
}

func (p *Pregel[V, M]) degreePartitions() ([]partition.Partition, error) {
	batch := p.opts.DegreeBatchSize
	if batch == 0 {
		var total int64
		for id := range p.graph.Nodes() {
			total += int64(p.graph.Degree(id))
		}
		workers := int64(p.opts.Concurrency)
		batch = max((total+workers-1)/workers, 1)
	}

	return partition.DegreeGraph(p.graph, batch)
}

// runPartition computes every active vertex of t.part.
func (ex *execution[V, M]) runPartition(c *Context[V, M], t task) {
	for id := t.part.Start; id < t.part.End(); id++ {
		if t.superstep > 0 && ex.halted[id] && !ex.store.hasMessages(id) {
			continue
		}

		msgs := ex.store.drain(id)
		c.reset(t.superstep, id)
		if err := ex.compute(c, id, msgs); err != nil {
			ex.fail(&ComputeError{Superstep: t.superstep, NodeID: id, Err: err})
		}

		ex.halted[id] = c.halt
		t.stats.computed++
		if !c.halt {
			t.stats.unhalted++
		}
	}
}

// compute invokes the vertex program, converting a panic into ErrComputePanic.
func (ex *execution[V, M]) compute(c *Context[V, M], id int64, msgs []M) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrComputePanic, r)
		}
	}()

	return ex.computation.Compute(c, id, msgs)
}

// fail records err if it is the first failure of the run.
func (ex *execution[V, M]) fail(err error) {
	ex.errMu.Lock()
	if ex.firstErr == nil {
		ex.firstErr = err
	}
	ex.errMu.Unlock()
}

func (ex *execution[V, M]) err() error {
	ex.errMu.Lock()
	defer ex.errMu.Unlock()

	return ex.firstErr
}
