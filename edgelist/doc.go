// Package edgelist reads and writes graphs as plain-text edge lists, the format
// used by SNAP datasets: one "from<TAB>to" pair per line with '#' comments.
//
// Read builds a core.Graph; by default edges the graph policy rejects
// (duplicates of an undirected edge listed in both directions, disallowed loops)
// are skipped and counted, WithStrict turns them into errors.
package edgelist
