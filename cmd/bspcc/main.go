// Command bspcc computes the connected components of a graph with the pregel
// engine.
//
// The graph comes from an edge-list file, a SQL query or a builder topology;
// labels are printed and optionally written to a SQL table.
//
//	bspcc -input web-Google.txt -format summary
//	bspcc -source sql -driver sqlite3 -dsn graph.db -query 'SELECT src, dst FROM edges' -output-table components
//	bspcc -source builder -topology path:3,cycle:4 -format groups
//	bspcc -config bspcc.yaml -log-level debug
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/katalvlaran/bspgraph/builder"
	"github.com/katalvlaran/bspgraph/components"
	"github.com/katalvlaran/bspgraph/core"
	"github.com/katalvlaran/bspgraph/edgelist"
	"github.com/katalvlaran/bspgraph/pregel"
	"github.com/katalvlaran/bspgraph/sqlgraph"
)

// Exit codes.
const (
	exitOK    = 0
	exitRun   = 1
	exitUsage = 2
)

// labelColumn names the value column of the output table.
const labelColumn = "component"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process globals.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var fv flagValues
	fs := newFlagSet("bspcc", &fv)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := LoadConfig(fv.configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	merge(&cfg, fs, &fv)
	if err = cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger := newLogger(cfg.Log, stderr)
	if cfg.Engine.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Engine.Timeout)
		defer cancel()
	}

	if err = execute(ctx, cfg, logger, stdout); err != nil {
		logger.Error("bspcc failed", slog.Any("error", err))
		return exitRun
	}
	return exitOK
}

// execute loads the graph, runs components, reports and stores the labels.
func execute(ctx context.Context, cfg Config, log *slog.Logger, out io.Writer) error {
	start := time.Now()
	g, err := loadGraph(ctx, cfg.Source, log)
	if err != nil {
		return err
	}
	st := g.Stats()
	log.Info("graph loaded",
		slog.String("source", cfg.Source.Kind),
		slog.Int64("nodes", st.NodeCount),
		slog.Int64("edges", st.EdgeCount),
		slog.Int("max_degree", st.MaxDegree),
		slog.Duration("elapsed", time.Since(start)))

	opts := append(cfg.engineOptions(), pregel.WithLogger(log))
	res, err := components.Run(ctx, g, opts...)
	if err != nil {
		return fmt.Errorf("components: %w", err)
	}
	if res.Termination != pregel.Converged {
		log.Warn("labels are not final", slog.String("termination", res.Termination.String()),
			slog.Int("supersteps", res.Supersteps))
	}

	if cfg.Engine.Verify && res.Termination == pregel.Converged {
		if err = verify(ctx, g, res.Labels()); err != nil {
			return err
		}
		log.Info("labels verified", slog.Int("components", res.Count()))
	}

	if err = report(out, cfg.Output.Format, res); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if cfg.Output.Table != "" {
		if err = store(ctx, cfg, res.Labels()); err != nil {
			return err
		}
		log.Info("labels stored", slog.String("table", cfg.Output.Table), slog.Int("rows", len(res.Labels())))
	}

	return nil
}

// ErrMismatch is returned by -verify when the engine and BFS labels differ.
var ErrMismatch = errors.New("bspcc: labels differ from sequential BFS")

func verify(ctx context.Context, g *core.Graph, labels []int64) error {
	want, err := components.Sequential(ctx, g)
	if err != nil {
		return err
	}
	for id, label := range labels {
		if want[id] != label {
			return fmt.Errorf("%w: node %d: got %d, want %d", ErrMismatch, id, label, want[id])
		}
	}
	return nil
}

// loadGraph builds the graph from the configured source.
func loadGraph(ctx context.Context, src SourceConfig, log *slog.Logger) (*core.Graph, error) {
	switch src.Kind {
	case SourceEdgeList:
		var opts []edgelist.Option
		if src.Strict {
			opts = append(opts, edgelist.WithStrict())
		}
		if src.MaxNodes > 0 {
			opts = append(opts, edgelist.WithMaxNodes(src.MaxNodes))
		}
		g, stats, err := edgelist.ReadFile(src.Path, opts...)
		if err != nil {
			return nil, err
		}
		log.Debug("edge list read", slog.Int("lines", stats.Lines), slog.Int("edges", stats.Edges),
			slog.Int("skipped", stats.Skipped))
		return g, nil

	case SourceSQL:
		db, err := openDB(ctx, src.Driver, src.DSN)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		var gopts []core.GraphOption
		if src.MaxNodes > 0 {
			gopts = append(gopts, core.WithMaxNodes(src.MaxNodes))
		}
		g, stats, err := sqlgraph.LoadEdges(ctx, db, src.Query, nil, gopts...)
		if err != nil {
			return nil, err
		}
		log.Debug("edge query read", slog.Int("rows", stats.Rows), slog.Int("edges", stats.Edges),
			slog.Int("skipped", stats.Skipped))
		return g, nil

	case SourceBuilder:
		cons, err := parseTopology(src.Topology)
		if err != nil {
			return nil, err
		}
		return builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(src.Seed)}, cons...)

	default:
		return nil, fmt.Errorf("%w: unknown source %q", ErrConfig, src.Kind)
	}
}

// store writes labels to the output table, creating it when missing.
func store(ctx context.Context, cfg Config, labels []int64) error {
	driver, dsn := cfg.sink()
	dialect, err := sqlgraph.DialectFor(driver)
	if err != nil {
		return err
	}
	db, err := openDB(ctx, driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []sqlgraph.SaveOption{
		sqlgraph.WithDialect(dialect),
		sqlgraph.WithTable(cfg.Output.Table, sqlgraph.DefaultNodeColumn, labelColumn),
		sqlgraph.WithCreateTable(),
	}
	if cfg.Output.Replace {
		opts = append(opts, sqlgraph.WithReplace())
	}

	return sqlgraph.SaveValues(ctx, db, labels, opts...)
}

func openDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

// summary is the JSON report.
type summary struct {
	Nodes        int     `json:"nodes"`
	Components   int     `json:"components"`
	Supersteps   int     `json:"supersteps"`
	Termination  string  `json:"termination"`
	MessagesSent int64   `json:"messages_sent"`
	Partitions   int     `json:"partitions"`
	DurationMS   int64   `json:"duration_ms"`
	Labels       []int64 `json:"labels"`
}

// report prints res in the requested format.
func report(w io.Writer, format string, res *components.Result) error {
	switch format {
	case FormatLabels:
		for id, label := range res.Labels() {
			if _, err := fmt.Fprintf(w, "%d\t%d\n", id, label); err != nil {
				return err
			}
		}
		return nil

	case FormatGroups:
		for _, group := range res.Components() {
			ids := make([]string, len(group))
			for i, id := range group {
				ids[i] = fmt.Sprint(id)
			}
			if _, err := fmt.Fprintf(w, "%d: %s\n", res.Labels()[group[0]], strings.Join(ids, " ")); err != nil {
				return err
			}
		}
		return nil

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary{
			Nodes:        len(res.Labels()),
			Components:   res.Count(),
			Supersteps:   res.Supersteps,
			Termination:  res.Termination.String(),
			MessagesSent: res.MessagesSent,
			Partitions:   res.Partitions,
			DurationMS:   res.Duration.Milliseconds(),
			Labels:       res.Labels(),
		})

	default:
		_, err := fmt.Fprintf(w, "nodes: %d\ncomponents: %d\nsupersteps: %d (%s)\nmessages: %d\n",
			len(res.Labels()), res.Count(), res.Supersteps, res.Termination, res.MessagesSent)
		return err
	}
}

// parseLevel maps a level name to slog.Level.
func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("%w: log level %q", ErrConfig, s)
	}
	return l, nil
}

// newLogger builds the text or JSON handler selected by lc.
func newLogger(lc LogConfig, w io.Writer) *slog.Logger {
	level, _ := parseLevel(lc.Level)
	hopts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}
