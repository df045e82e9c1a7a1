// Package bfs provides breadth-first search over a dense-id graph,
// returning unweighted shortest-path distances, parent links, and visit order.
//
// What
//
//   - Explore nodes in non-decreasing distance (edge count) from a start node.
//   - Result carries the visit Order, the Depth of every reached node and the
//     Parent links of the BFS tree; PathTo rebuilds a fewest-hop path.
//   - OnVisit may abort the search with an error.
//   - WithFilterNeighbor prunes edges; WithMaxDepth bounds the frontier.
//
// Why
//
//	The set of nodes reached from s is the connected component of s, which
//	makes BFS the sequential baseline for the components vertex program
//	(see components.Sequential).
//
// Determinism
//
//	core.Graph visits neighbors in ascending id order, so the visit sequence
//	is reproducible.
//
// Complexity (V = reached nodes, E = their edges)
//
//   - Time:   O(V + E)
//   - Memory: O(V) for the queue, Depth and Parent
//
// Example:
//
//	g, _ := builder.BuildGraph(nil, nil, builder.Grid(3, 3))
//	res, err := bfs.BFS(g, 0, bfs.WithMaxDepth(2))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Order) // [0 1 3 2 4 6]
package bfs
