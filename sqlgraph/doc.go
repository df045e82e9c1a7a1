// Package sqlgraph moves graphs and per-node results between database/sql and
// core.Graph.
//
//   - LoadEdges runs a two-column (source, target) query and builds a graph.
//   - SaveValues stores one row per node (id, value) inside a transaction,
//     with multi-row INSERT batches.
//
// The package only uses database/sql; callers register a driver. Dialect covers
// the drivers this module ships with: sqlite3 (github.com/mattn/go-sqlite3),
// mysql (github.com/go-sql-driver/mysql) and sqlserver
// (github.com/denisenkom/go-mssqldb). Table and column names are restricted to
// [A-Za-z_][A-Za-z0-9_]* because they are spliced into statements; values are
// always bound as parameters.
package sqlgraph
