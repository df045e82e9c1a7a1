// SPDX-License-Identifier: MIT
//
// File: edgelist.go
// Role: plain-text edge lists to and from core.Graph.
//
// Format
//
//	# comment
//	0	1
//	1 2        # inline comment, columns after the second are ignored
//
// One edge per line, two non-negative integer ids separated by tabs or spaces.
// Blank lines and everything after '#' or a leading '%' are ignored.

package edgelist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/bspgraph/core"
)

// Sentinel errors for edge-list parsing.
var (
	// ErrMalformedLine is returned for a line without two integer ids.
	ErrMalformedLine = errors.New("edgelist: malformed line")

	// ErrNilReader is returned if Read gets a nil reader.
	ErrNilReader = errors.New("edgelist: reader is nil")
)

const maxLineBytes = 1 << 20

// Options controls how lines become edges.
type Options struct {
	// GraphOptions configure the graph that Read creates.
	GraphOptions []core.GraphOption

	// Strict turns rejected edges (duplicates, loops) into errors instead of
	// counting them in Stats.Skipped.
	Strict bool

	// MaxNodes bounds the id space (see core.WithMaxNodes); ids at or past it
	// fail the read. Defaults to core.DefaultMaxNodes; 0 removes the limit.
	MaxNodes int64
}

// Option configures Read.
type Option func(*Options)

// WithGraphOptions passes options to core.NewGraph.
func WithGraphOptions(opts ...core.GraphOption) Option {
	return func(o *Options) {
		o.GraphOptions = append(o.GraphOptions, opts...)
	}
}

// WithStrict makes duplicate edges and disallowed loops fail the read.
func WithStrict() Option {
	return func(o *Options) {
		o.Strict = true
	}
}

// WithMaxNodes sets Options.MaxNodes.
func WithMaxNodes(n int64) Option {
	return func(o *Options) {
		o.MaxNodes = n
	}
}

// Stats summarizes a read.
type Stats struct {
	Lines   int // lines scanned
	Edges   int // edges added
	Skipped int // edges rejected by the graph policy in non-strict mode
}

// Read parses an edge list into a new graph. Node ids grow the dense id
// space, so unlisted ids below the maximum become isolated nodes.
//
// Errors: ErrNilReader, ErrMalformedLine (with the line number),
// core.ErrNodeIDTooLarge, core errors in strict mode, and reader errors.
//
// Complexity: O(L + E·d) for L lines, E edges and d the sorted-insert cost.
func Read(r io.Reader, opts ...Option) (*core.Graph, Stats, error) {
	var stats Stats
	if r == nil {
		return nil, stats, ErrNilReader
	}
	o := Options{MaxNodes: core.DefaultMaxNodes}
	for _, opt := range opts {
		opt(&o)
	}

	g := core.NewGraph(append(o.GraphOptions, core.WithMaxNodes(o.MaxNodes))...)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for sc.Scan() {
		stats.Lines++
		from, to, ok, err := parseLine(sc.Text())
		if err != nil {
			return nil, stats, fmt.Errorf("line %d: %w", stats.Lines, err)
		}
		if !ok {
			continue
		}

		if err = g.AddEdge(from, to); err != nil {
			if !o.Strict && (errors.Is(err, core.ErrMultiEdgeNotAllowed) || errors.Is(err, core.ErrLoopNotAllowed)) {
				stats.Skipped++
				continue
			}
			return nil, stats, fmt.Errorf("line %d: %w", stats.Lines, err)
		}
		stats.Edges++
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("edgelist: scan: %w", err)
	}

	return g, stats, nil
}

// ReadFile opens path and calls Read.
func ReadFile(path string, opts ...Option) (*core.Graph, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("edgelist: %w", err)
	}
	defer f.Close()

	return Read(f, opts...)
}

// parseLine returns ok=false for blank and comment lines.
func parseLine(line string) (from, to int64, ok bool, err error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '%' {
		return 0, 0, false, nil
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, false, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
	if from, err = strconv.ParseInt(fields[0], 10, 64); err != nil || from < 0 {
		return 0, 0, false, fmt.Errorf("%w: bad source %q", ErrMalformedLine, fields[0])
	}
	if to, err = strconv.ParseInt(fields[1], 10, 64); err != nil || to < 0 {
		return 0, 0, false, fmt.Errorf("%w: bad target %q", ErrMalformedLine, fields[1])
	}

	return from, to, true, nil
}

// Write emits every edge of g as "from\tto", sources ascending. An undirected
// edge is written once, from its smaller endpoint.
func Write(w io.Writer, g *core.Graph) error {
	bw := bufio.NewWriter(w)
	directed := g.Directed()

	for u := range g.Nodes() {
		var err error
		g.ForEachNeighbor(u, func(v int64) bool {
			if !directed && v < u {
				return true
			}
			_, err = fmt.Fprintf(bw, "%d\t%d\n", u, v)
			return err == nil
		})
		if err != nil {
			return fmt.Errorf("edgelist: write: %w", err)
		}
	}

	return bw.Flush()
}
