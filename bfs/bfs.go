package bfs

import (
	"fmt"
)

// queueItem pairs a node id with its BFS depth.
type queueItem struct {
	id    int64
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph Graph
	opts  Options
	queue []queueItem
	res   *Result
}

// BFS runs breadth-first search on g starting from start.
// Returns ErrGraphNil or ErrStartNodeNotFound for invalid input,
// ErrOptionViolation for bad options, the context error on cancellation,
// or any OnVisit error.
func BFS(g Graph, start int64, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if start < 0 || start >= g.NodeCount() {
		return nil, fmt.Errorf("%w: %d", ErrStartNodeNotFound, start)
	}

	w := &walker{
		graph: g,
		opts:  o,
		res: &Result{
			Depth:  make(map[int64]int),
			Parent: make(map[int64]int64),
		},
	}
	w.enqueue(start, 0)

	return w.res, w.loop()
}

// enqueue marks id reached at depth d.
func (w *walker) enqueue(id int64, d int) {
	w.res.Depth[id] = d
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		if err := w.opts.Ctx.Err(); err != nil {
			return err
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %d: %w", item.id, err)
		}
		w.enqueueNeighbors(item)
	}
	return nil
}

// enqueueNeighbors applies filtering and MaxDepth and enqueues each unseen neighbor.
func (w *walker) enqueueNeighbors(item queueItem) {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	w.graph.ForEachNeighbor(item.id, func(nbr int64) bool {
		if !w.opts.FilterNeighbor(item.id, nbr) {
			return true
		}
		if _, seen := w.res.Depth[nbr]; !seen {
			w.res.Parent[nbr] = item.id
			w.enqueue(nbr, next)
		}
		return true
	})
}
