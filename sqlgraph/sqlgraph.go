// SPDX-License-Identifier: MIT
//
// File: sqlgraph.go
// Role: load edges from a query into core.Graph; store per-node values.

package sqlgraph

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/bspgraph/core"
)

// Sentinel errors for SQL loading and storing.
var (
	// ErrNilDB is returned if a nil *sql.DB is passed.
	ErrNilDB = errors.New("sqlgraph: db is nil")

	// ErrUnknownDriver is returned by DialectFor for unsupported drivers.
	ErrUnknownDriver = errors.New("sqlgraph: unknown driver")

	// ErrInvalidIdentifier is returned for table or column names outside [A-Za-z0-9_].
	ErrInvalidIdentifier = errors.New("sqlgraph: invalid identifier")

	// ErrColumns is returned when the edge query does not yield exactly two columns.
	ErrColumns = errors.New("sqlgraph: edge query must return two columns")

	// ErrNegativeID is returned for a negative node id in a result row.
	ErrNegativeID = errors.New("sqlgraph: negative node id")

	// ErrOptionViolation is returned when an invalid option is supplied.
	ErrOptionViolation = errors.New("sqlgraph: invalid option supplied")
)

// LoadStats summarizes LoadEdges.
type LoadStats struct {
	Rows    int // rows scanned
	Edges   int // edges added
	Skipped int // duplicates or loops rejected by the graph policy
}

// LoadEdges runs query (two integer columns: source, target) and builds a graph
// from its rows. Edges the graph policy rejects are skipped and counted.
// The graph is limited to core.DefaultMaxNodes ids unless gopts carries its own
// core.WithMaxNodes.
//
// Errors: ErrNilDB, ErrColumns, ErrNegativeID, core.ErrNodeIDTooLarge, and
// driver errors.
func LoadEdges(ctx context.Context, db *sql.DB, query string, args []any, gopts ...core.GraphOption) (*core.Graph, LoadStats, error) {
	var stats LoadStats
	if db == nil {
		return nil, stats, ErrNilDB
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, stats, fmt.Errorf("sqlgraph: query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, stats, fmt.Errorf("sqlgraph: columns: %w", err)
	}
	if len(cols) != 2 {
		return nil, stats, fmt.Errorf("%w: got %d (%s)", ErrColumns, len(cols), strings.Join(cols, ", "))
	}

	g := core.NewGraph(append([]core.GraphOption{core.WithMaxNodes(core.DefaultMaxNodes)}, gopts...)...)
	for rows.Next() {
		stats.Rows++
		var from, to int64
		if err = rows.Scan(&from, &to); err != nil {
			return nil, stats, fmt.Errorf("sqlgraph: row %d: %w", stats.Rows, err)
		}
		if from < 0 || to < 0 {
			return nil, stats, fmt.Errorf("sqlgraph: row %d: %w: %d→%d", stats.Rows, ErrNegativeID, from, to)
		}
		if err = g.AddEdge(from, to); err != nil {
			if errors.Is(err, core.ErrMultiEdgeNotAllowed) || errors.Is(err, core.ErrLoopNotAllowed) {
				stats.Skipped++
				continue
			}
			return nil, stats, fmt.Errorf("sqlgraph: row %d: %w", stats.Rows, err)
		}
		stats.Edges++
	}
	if err = rows.Err(); err != nil {
		return nil, stats, fmt.Errorf("sqlgraph: rows: %w", err)
	}

	return g, stats, nil
}

// Value is the set of node value types SaveValues can store.
type Value interface {
	int64 | float64
}

// SaveOption configures SaveValues.
type SaveOption func(*SaveOptions)

// SaveOptions holds SaveValues parameters.
type SaveOptions struct {
	Dialect     Dialect
	Table       string
	NodeColumn  string
	ValueColumn string
	BatchSize   int
	CreateTable bool
	Replace     bool

	err error
}

// Defaults for SaveValues.
const (
	DefaultTable       = "bspgraph_values"
	DefaultNodeColumn  = "node_id"
	DefaultValueColumn = "value"
	DefaultBatchSize   = 500
)

// DefaultSaveOptions returns SQLite dialect, DefaultTable with DefaultNodeColumn
// and DefaultValueColumn, DefaultBatchSize rows per INSERT, no DDL, no DELETE.
func DefaultSaveOptions() SaveOptions {
	return SaveOptions{
		Dialect:     SQLite,
		Table:       DefaultTable,
		NodeColumn:  DefaultNodeColumn,
		ValueColumn: DefaultValueColumn,
		BatchSize:   DefaultBatchSize,
	}
}

// WithDialect selects placeholder style and DDL flavor.
func WithDialect(d Dialect) SaveOption {
	return func(o *SaveOptions) { o.Dialect = d }
}

// WithTable sets the target table and its two columns.
func WithTable(table, nodeColumn, valueColumn string) SaveOption {
	return func(o *SaveOptions) {
		o.Table, o.NodeColumn, o.ValueColumn = table, nodeColumn, valueColumn
	}
}

// WithBatchSize sets the number of rows per INSERT; n < 1 is invalid.
func WithBatchSize(n int) SaveOption {
	return func(o *SaveOptions) {
		if n < 1 {
			o.err = fmt.Errorf("%w: batch size must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.BatchSize = n
	}
}

// WithCreateTable creates the table first if it does not exist.
func WithCreateTable() SaveOption {
	return func(o *SaveOptions) { o.CreateTable = true }
}

// WithReplace deletes all existing rows of the table first.
func WithReplace() SaveOption {
	return func(o *SaveOptions) { o.Replace = true }
}

// SaveValues writes (node id, values[id]) for every node in one transaction,
// batching rows into multi-row INSERT statements. A failure rolls back all rows.
//
// Errors: ErrNilDB, ErrInvalidIdentifier, ErrOptionViolation, and driver errors.
func SaveValues[V Value](ctx context.Context, db *sql.DB, values []V, opts ...SaveOption) (err error) {
	if db == nil {
		return ErrNilDB
	}
	o := DefaultSaveOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return o.err
	}
	for _, name := range []string{o.Table, o.NodeColumn, o.ValueColumn} {
		if err = checkIdentifier(name); err != nil {
			return err
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlgraph: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if o.CreateTable {
		var zero V
		valueType := o.Dialect.bigint()
		if _, isFloat := any(zero).(float64); isFloat {
			valueType = o.Dialect.double()
		}
		ddl := o.Dialect.createTable(o.Table, o.NodeColumn, o.ValueColumn, valueType)
		if _, err = tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("sqlgraph: create table: %w", err)
		}
	}
	if o.Replace {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+o.Table); err != nil {
			return fmt.Errorf("sqlgraph: delete: %w", err)
		}
	}

	for start := 0; start < len(values); start += o.BatchSize {
		end := min(start+o.BatchSize, len(values))
		query, args := insertBatch(o, values, start, end)
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("sqlgraph: insert rows [%d, %d): %w", start, end, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlgraph: commit: %w", err)
	}
	return nil
}

// insertBatch renders INSERT ... VALUES (..),(..) for values[start:end].
func insertBatch[V Value](o SaveOptions, values []V, start, end int) (string, []any) {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s, %s) VALUES ", o.Table, o.NodeColumn, o.ValueColumn)

	args := make([]any, 0, 2*(end-start))
	for id := start; id < end; id++ {
		if id > start {
			b.WriteString(", ")
		}
		n := len(args)
		fmt.Fprintf(&b, "(%s, %s)", o.Dialect.placeholder(n+1), o.Dialect.placeholder(n+2))
		args = append(args, int64(id), values[id])
	}

	return b.String(), args
}
