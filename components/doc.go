// Package components finds connected components of an undirected graph with the
// pregel engine by label propagation: each vertex starts with its own id and
// adopts the smallest id it hears about, re-broadcasting only when its label drops.
//
// The run converges after at most diameter+2 supersteps; the result labels every
// node with the smallest node id in its component. Messages are folded with min
// while in flight (Program implements pregel.Combiner).
package components
