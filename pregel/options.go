// SPDX-License-Identifier: MIT
//
// File: options.go
// Role: functional options for the engine.

package pregel

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
)

// Partitioning selects how the id space is split across workers.
type Partitioning int

const (
	// PartitionRange splits ids into equal, alignment-sized ranges.
	PartitionRange Partitioning = iota
	// PartitionDegree splits ids into ranges of balanced summed degree.
	PartitionDegree
)

// String returns a lowercase name of p.
func (p Partitioning) String() string {
	switch p {
	case PartitionRange:
		return "range"
	case PartitionDegree:
		return "degree"
	default:
		return fmt.Sprintf("partitioning(%d)", int(p))
	}
}

// Default engine parameters.
const (
	DefaultMaxSupersteps = 30
	DefaultAlignment     = 64
)

// Option configures the engine via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds the engine parameters.
type Options struct {
	// Concurrency is the number of workers in the pool.
	Concurrency int

	// MaxSupersteps caps the number of supersteps of a run.
	MaxSupersteps int

	// Partitioning selects the partition strategy.
	Partitioning Partitioning

	// Alignment is the partition length multiple used by PartitionRange.
	Alignment int64

	// DegreeBatchSize is the summed-degree target of PartitionDegree.
	// Zero derives it as ceil(totalDegree / Concurrency).
	DegreeBatchSize int64

	// Logger receives run diagnostics.
	Logger *slog.Logger

	// Combine folds messages per target using the computation's Combiner.
	Combine bool

	// first error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - Concurrency = runtime.GOMAXPROCS(0)
//   - MaxSupersteps = 30
//   - PartitionRange with Alignment = 64
//   - derived DegreeBatchSize
//   - a Logger that discards everything
//   - combining disabled.
func DefaultOptions() Options {
	return Options{
		Concurrency:   runtime.GOMAXPROCS(0),
		MaxSupersteps: DefaultMaxSupersteps,
		Partitioning:  PartitionRange,
		Alignment:     DefaultAlignment,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (o *Options) fail(format string, args ...any) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: "+format, append([]any{ErrOptionViolation}, args...)...)
	}
}

// WithConcurrency sets the worker count; n < 1 is invalid.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.fail("concurrency must be positive (%d)", n)
			return
		}
		o.Concurrency = n
	}
}

// WithMaxSupersteps caps the run length; n < 1 is invalid.
func WithMaxSupersteps(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.fail("max supersteps must be positive (%d)", n)
			return
		}
		o.MaxSupersteps = n
	}
}

// WithPartitioning selects the partition strategy.
func WithPartitioning(p Partitioning) Option {
	return func(o *Options) {
		if p != PartitionRange && p != PartitionDegree {
			o.fail("unknown partitioning %v", p)
			return
		}
		o.Partitioning = p
	}
}

// WithAlignment sets the range-partition alignment; a < 1 is invalid.
func WithAlignment(a int64) Option {
	return func(o *Options) {
		if a < 1 {
			o.fail("alignment must be positive (%d)", a)
			return
		}
		o.Alignment = a
	}
}

// WithDegreeBatchSize sets the degree-partition batch; b < 1 is invalid.
func WithDegreeBatchSize(b int64) Option {
	return func(o *Options) {
		if b < 1 {
			o.fail("degree batch size must be positive (%d)", b)
			return
		}
		o.DegreeBatchSize = b
	}
}

// WithLogger routes run diagnostics to l. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMessageCombining enables per-target message folding. New fails with
// ErrOptionViolation if the computation does not implement Combiner.
func WithMessageCombining() Option {
	return func(o *Options) {
		o.Combine = true
	}
}
