package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/bspgraph/pregel"
	"github.com/katalvlaran/bspgraph/sqlgraph"
)

// ErrConfig is returned for an invalid configuration.
var ErrConfig = errors.New("bspcc: invalid configuration")

// Source kinds.
const (
	SourceEdgeList = "edgelist"
	SourceSQL      = "sql"
	SourceBuilder  = "builder"
)

// Output formats.
const (
	FormatSummary = "summary"
	FormatLabels  = "labels"
	FormatGroups  = "groups"
	FormatJSON    = "json"
)

// Config is the YAML document accepted by -config.
//
//	source:
//	  kind: sql
//	  driver: sqlite3
//	  dsn: graph.db
//	  query: SELECT src, dst FROM edges
//	engine:
//	  concurrency: 8
//	  partitioning: degree
//	  timeout: 30s
//	output:
//	  format: groups
//	  table: components
//	log:
//	  level: debug
type Config struct {
	Source SourceConfig `yaml:"source"`
	Engine EngineConfig `yaml:"engine"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// SourceConfig selects where the graph comes from.
type SourceConfig struct {
	Kind string `yaml:"kind"`

	// edgelist
	Path   string `yaml:"path"`
	Strict bool   `yaml:"strict"`

	// sql
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Query  string `yaml:"query"`

	// builder, e.g. "path:3,cycle:4,random:100:0.05"
	Topology string `yaml:"topology"`
	Seed     int64  `yaml:"seed"`

	// edgelist and sql; 0 keeps core.DefaultMaxNodes
	MaxNodes int64 `yaml:"max_nodes"`
}

// EngineConfig mirrors the pregel options.
type EngineConfig struct {
	Concurrency     int           `yaml:"concurrency"`
	MaxSupersteps   int           `yaml:"max_supersteps"`
	Partitioning    string        `yaml:"partitioning"`
	Alignment       int64         `yaml:"alignment"`
	DegreeBatchSize int64         `yaml:"degree_batch_size"`
	Timeout         time.Duration `yaml:"timeout"`
	// Verify compares converged labels with a sequential BFS labeling.
	Verify          bool          `yaml:"verify"`
}

// OutputConfig controls printing and the optional SQL sink. The sink reuses
// the source driver and DSN unless its own are set.
type OutputConfig struct {
	Format  string `yaml:"format"`
	Driver  string `yaml:"driver"`
	DSN     string `yaml:"dsn"`
	Table   string `yaml:"table"`
	Replace bool   `yaml:"replace"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{Kind: SourceEdgeList},
		Engine: EngineConfig{
			MaxSupersteps: pregel.DefaultMaxSupersteps,
			Partitioning:  pregel.PartitionRange.String(),
			Alignment:     pregel.DefaultAlignment,
		},
		Output: OutputConfig{Format: FormatSummary},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig overlays the YAML file at path on DefaultConfig. Unknown keys are errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("bspcc: read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("bspcc: parse config %s: %w", path, err)
	}

	return cfg, nil
}

// flagValues holds command-line overrides before they are merged.
type flagValues struct {
	configPath string
	cfg        Config
}

// newFlagSet binds every overridable setting. Defaults are zero; only flags
// the user sets are merged into the loaded configuration.
func newFlagSet(name string, fv *flagValues) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c := &fv.cfg

	fs.StringVar(&fv.configPath, "config", "", "YAML configuration file")

	fs.StringVar(&c.Source.Kind, "source", "", "graph source: edgelist, sql or builder")
	fs.StringVar(&c.Source.Path, "input", "", "edge-list file (source=edgelist)")
	fs.BoolVar(&c.Source.Strict, "strict", false, "fail on duplicate edges and loops in the edge list")
	fs.StringVar(&c.Source.Driver, "driver", "", "database/sql driver: sqlite3, mysql, sqlserver")
	fs.StringVar(&c.Source.DSN, "dsn", "", "database DSN")
	fs.StringVar(&c.Source.Query, "query", "", "edge query returning (source, target)")
	fs.StringVar(&c.Source.Topology, "topology", "", "builder topology, e.g. path:3,grid:4x4,random:100:0.05")
	fs.Int64Var(&c.Source.Seed, "seed", 0, "seed for random topologies")
	fs.Int64Var(&c.Source.MaxNodes, "max-nodes", 0, "reject node ids at or above this limit (default 16777216)")

	fs.IntVar(&c.Engine.Concurrency, "concurrency", 0, "worker count (default GOMAXPROCS)")
	fs.IntVar(&c.Engine.MaxSupersteps, "max-supersteps", 0, "superstep cap")
	fs.StringVar(&c.Engine.Partitioning, "partitioning", "", "range or degree")
	fs.Int64Var(&c.Engine.Alignment, "alignment", 0, "range partition alignment")
	fs.Int64Var(&c.Engine.DegreeBatchSize, "degree-batch", 0, "degree partition batch size")
	fs.DurationVar(&c.Engine.Timeout, "timeout", 0, "run deadline")
	fs.BoolVar(&c.Engine.Verify, "verify", false, "check converged labels against a sequential BFS")

	fs.StringVar(&c.Output.Format, "format", "", "summary, labels, groups or json")
	fs.StringVar(&c.Output.Table, "output-table", "", "store labels in this table")
	fs.StringVar(&c.Output.Driver, "output-driver", "", "driver of the label sink (default: source driver)")
	fs.StringVar(&c.Output.DSN, "output-dsn", "", "DSN of the label sink (default: source DSN)")
	fs.BoolVar(&c.Output.Replace, "replace", false, "delete existing rows of the output table")

	fs.StringVar(&c.Log.Level, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&c.Log.Format, "log-format", "", "text or json")

	return fs
}

// merge copies the flags that were set on the command line into cfg.
func merge(cfg *Config, fs *flag.FlagSet, fv *flagValues) {
	o := &fv.cfg
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source.Kind = o.Source.Kind
		case "input":
			cfg.Source.Path = o.Source.Path
		case "strict":
			cfg.Source.Strict = o.Source.Strict
		case "driver":
			cfg.Source.Driver = o.Source.Driver
		case "dsn":
			cfg.Source.DSN = o.Source.DSN
		case "query":
			cfg.Source.Query = o.Source.Query
		case "topology":
			cfg.Source.Topology = o.Source.Topology
		case "seed":
			cfg.Source.Seed = o.Source.Seed
		case "max-nodes":
			cfg.Source.MaxNodes = o.Source.MaxNodes
		case "concurrency":
			cfg.Engine.Concurrency = o.Engine.Concurrency
		case "max-supersteps":
			cfg.Engine.MaxSupersteps = o.Engine.MaxSupersteps
		case "partitioning":
			cfg.Engine.Partitioning = o.Engine.Partitioning
		case "alignment":
			cfg.Engine.Alignment = o.Engine.Alignment
		case "degree-batch":
			cfg.Engine.DegreeBatchSize = o.Engine.DegreeBatchSize
		case "timeout":
			cfg.Engine.Timeout = o.Engine.Timeout
		case "verify":
			cfg.Engine.Verify = o.Engine.Verify
		case "format":
			cfg.Output.Format = o.Output.Format
		case "output-table":
			cfg.Output.Table = o.Output.Table
		case "output-driver":
			cfg.Output.Driver = o.Output.Driver
		case "output-dsn":
			cfg.Output.DSN = o.Output.DSN
		case "replace":
			cfg.Output.Replace = o.Output.Replace
		case "log-level":
			cfg.Log.Level = o.Log.Level
		case "log-format":
			cfg.Log.Format = o.Log.Format
		}
	})
}

// Validate checks cross-field constraints before anything is opened.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceEdgeList:
		if c.Source.Path == "" {
			return fmt.Errorf("%w: source edgelist needs a path", ErrConfig)
		}
	case SourceSQL:
		if c.Source.Driver == "" || c.Source.DSN == "" || c.Source.Query == "" {
			return fmt.Errorf("%w: source sql needs driver, dsn and query", ErrConfig)
		}
		if _, err := sqlgraph.DialectFor(c.Source.Driver); err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
	case SourceBuilder:
		if _, err := parseTopology(c.Source.Topology); err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
	default:
		return fmt.Errorf("%w: unknown source %q", ErrConfig, c.Source.Kind)
	}

	if c.Source.MaxNodes < 0 {
		return fmt.Errorf("%w: negative max_nodes %d", ErrConfig, c.Source.MaxNodes)
	}

	if _, err := c.partitioning(); err != nil {
		return err
	}
	if c.Engine.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %v", ErrConfig, c.Engine.Timeout)
	}

	switch c.Output.Format {
	case FormatSummary, FormatLabels, FormatGroups, FormatJSON:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrConfig, c.Output.Format)
	}
	if c.Output.Table != "" {
		driver, dsn := c.sink()
		if driver == "" || dsn == "" {
			return fmt.Errorf("%w: output table needs a driver and dsn", ErrConfig)
		}
		if _, err := sqlgraph.DialectFor(driver); err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("%w: unknown log format %q", ErrConfig, c.Log.Format)
	}

	return nil
}

// sink returns the driver and DSN of the label table.
func (c *Config) sink() (driver, dsn string) {
	driver, dsn = c.Output.Driver, c.Output.DSN
	if driver == "" {
		driver = c.Source.Driver
	}
	if dsn == "" {
		dsn = c.Source.DSN
	}
	return driver, dsn
}

func (c *Config) partitioning() (pregel.Partitioning, error) {
	switch c.Engine.Partitioning {
	case pregel.PartitionRange.String():
		return pregel.PartitionRange, nil
	case pregel.PartitionDegree.String():
		return pregel.PartitionDegree, nil
	default:
		return 0, fmt.Errorf("%w: unknown partitioning %q", ErrConfig, c.Engine.Partitioning)
	}
}

// engineOptions translates the engine section. Zero values keep engine defaults;
// the engine itself rejects invalid values.
func (c *Config) engineOptions() []pregel.Option {
	p, _ := c.partitioning()
	opts := []pregel.Option{pregel.WithPartitioning(p)}
	if c.Engine.Concurrency != 0 {
		opts = append(opts, pregel.WithConcurrency(c.Engine.Concurrency))
	}
	if c.Engine.MaxSupersteps != 0 {
		opts = append(opts, pregel.WithMaxSupersteps(c.Engine.MaxSupersteps))
	}
	if c.Engine.Alignment != 0 {
		opts = append(opts, pregel.WithAlignment(c.Engine.Alignment))
	}
	if c.Engine.DegreeBatchSize != 0 {
		opts = append(opts, pregel.WithDegreeBatchSize(c.Engine.DegreeBatchSize))
	}
	return opts
}
