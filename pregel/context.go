// SPDX-License-Identifier: MIT
//
// File: context.go
// Role: the per-invocation view a vertex program gets of the running engine.

package pregel

import "fmt"

// Context is handed to Compute. A worker reuses one Context for every vertex it
// computes, so a vertex program must not retain it past the call.
type Context[V, M any] struct {
	run       *execution[V, M]
	superstep int
	nodeID    int64
	halt      bool
}

// reset points c at nodeID in superstep s and clears the halt vote.
func (c *Context[V, M]) reset(s int, nodeID int64) {
	c.superstep = s
	c.nodeID = nodeID
	c.halt = false
}

// Superstep returns the current superstep index, starting at 0.
func (c *Context[V, M]) Superstep() int { return c.superstep }

// IsInitialSuperstep reports whether this is superstep 0.
func (c *Context[V, M]) IsInitialSuperstep() bool { return c.superstep == 0 }

// NodeID returns the vertex being computed.
func (c *Context[V, M]) NodeID() int64 { return c.nodeID }

// NodeCount returns the size of the id space.
func (c *Context[V, M]) NodeCount() int64 { return c.run.nodeCount }

// Degree returns the degree of the vertex being computed.
func (c *Context[V, M]) Degree() int { return c.run.graph.Degree(c.nodeID) }

// NodeValue returns the value of nodeID. Only the current vertex may be read;
// any other id yields the zero value, since its owner may be writing it.
func (c *Context[V, M]) NodeValue(nodeID int64) V {
	if nodeID != c.nodeID {
		var zero V
		return zero
	}
	return c.run.values[nodeID]
}

// SetNodeValue replaces the value of the current vertex.
func (c *Context[V, M]) SetNodeValue(nodeID int64, value V) error {
	if nodeID != c.nodeID {
		return fmt.Errorf("%w: write to %d from %d", ErrForeignNode, nodeID, c.nodeID)
	}
	c.run.values[nodeID] = value
	return nil
}

// SendMessages sends msg to every neighbor of fromNodeID, which must be the
// current vertex. Delivery happens in the next superstep.
func (c *Context[V, M]) SendMessages(fromNodeID int64, msg M) error {
	if fromNodeID != c.nodeID {
		return fmt.Errorf("%w: send from %d while computing %d", ErrForeignNode, fromNodeID, c.nodeID)
	}
	var err error
	c.run.graph.ForEachNeighbor(fromNodeID, func(target int64) bool {
		if err = c.SendMessage(target, msg); err != nil {
			return false
		}
		return true
	})
	return err
}

// SendMessage sends msg to toNodeID for delivery in the next superstep.
func (c *Context[V, M]) SendMessage(toNodeID int64, msg M) error {
	if toNodeID < 0 || toNodeID >= c.run.nodeCount {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrNodeOutOfRange, toNodeID, c.run.nodeCount)
	}
	c.run.store.send(toNodeID, msg)
	return nil
}

// VoteToHalt deactivates the current vertex after this call returns. It is
// reactivated by any incoming message.
func (c *Context[V, M]) VoteToHalt() { c.halt = true }
