// SPDX-License-Identifier: MIT
//
// File: messages.go
// Role: double-buffered per-node message arenas.

package pregel

import (
	"sync"
	"sync/atomic"
)

// shardCount is the number of outbox lock stripes.
const shardCount = 256

// messageStore holds two arenas indexed by node id. Vertex programs append to
// outbox during a superstep; swap at the barrier makes outbox the next inbox.
//
// Ownership:
//   - send may be called by any worker; slots are guarded by stripe locks.
//   - drain and hasMessages touch inbox only, which is read-only for the
//     superstep except for the owning worker clearing its own slots.
//   - swap runs single-threaded at the barrier.
type messageStore[M any] struct {
	inbox  [][]M
	outbox [][]M
	locks  [shardCount]sync.Mutex

	combine func(existing, incoming M) M

	pending atomic.Int64 // occupied outbox entries
	sent    atomic.Int64 // every send, before combining
}

func newMessageStore[M any](nodeCount int64, combine func(existing, incoming M) M) *messageStore[M] {
	return &messageStore[M]{
		inbox:   make([][]M, nodeCount),
		outbox:  make([][]M, nodeCount),
		combine: combine,
	}
}

// send queues msg for target in the next superstep.
func (s *messageStore[M]) send(target int64, msg M) {
	mu := &s.locks[target%shardCount]
	mu.Lock()
	slot := s.outbox[target]
	if s.combine != nil && len(slot) > 0 {
		slot[0] = s.combine(slot[0], msg)
	} else {
		s.outbox[target] = append(slot, msg)
		s.pending.Add(1)
	}
	mu.Unlock()
	s.sent.Add(1)
}

// hasMessages reports whether node has undelivered inbox messages.
func (s *messageStore[M]) hasMessages(node int64) bool {
	return len(s.inbox[node]) > 0
}

// drain returns the inbox of node and clears it. The backing array is kept
// for reuse, so the returned slice is valid until the next swap.
func (s *messageStore[M]) drain(node int64) []M {
	msgs := s.inbox[node]
	if len(msgs) == 0 {
		return nil
	}
	s.inbox[node] = msgs[:0]
	return msgs
}

// swap promotes outbox to inbox and returns the number of delivered messages.
func (s *messageStore[M]) swap() int64 {
	s.inbox, s.outbox = s.outbox, s.inbox
	return s.pending.Swap(0)
}

// totalSent returns the number of send calls so far.
func (s *messageStore[M]) totalSent() int64 {
	return s.sent.Load()
}
