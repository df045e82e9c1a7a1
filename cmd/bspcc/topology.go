package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/bspgraph/builder"
)

// ErrTopology is returned for an unparsable -topology value.
var ErrTopology = errors.New("bspcc: invalid topology")

// parseTopology turns "path:3,grid:2x5,random:100:0.05" into builder
// constructors, applied left to right as a disjoint union.
//
//	isolated:N  path:N  cycle:N  star:N  wheel:N  complete:N
//	grid:RxC    random:N:P
func parseTopology(spec string) ([]builder.Constructor, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("%w: empty", ErrTopology)
	}

	var cons []builder.Constructor
	for _, item := range strings.Split(spec, ",") {
		name, args, _ := strings.Cut(strings.TrimSpace(item), ":")
		c, err := parseItem(strings.ToLower(name), args)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrTopology, item, err)
		}
		cons = append(cons, c)
	}

	return cons, nil
}

func parseItem(name, args string) (builder.Constructor, error) {
	sized := map[string]func(int) builder.Constructor{
		"isolated": builder.Isolated,
		"path":     builder.Path,
		"cycle":    builder.Cycle,
		"star":     builder.Star,
		"wheel":    builder.Wheel,
		"complete": builder.Complete,
	}
	if ctor, ok := sized[name]; ok {
		n, err := strconv.Atoi(args)
		if err != nil {
			return nil, fmt.Errorf("size: %w", err)
		}
		return ctor(n), nil
	}

	switch name {
	case "grid":
		r, c, ok := strings.Cut(args, "x")
		if !ok {
			return nil, errors.New("want RxC")
		}
		rows, err := strconv.Atoi(r)
		if err != nil {
			return nil, fmt.Errorf("rows: %w", err)
		}
		cols, err := strconv.Atoi(c)
		if err != nil {
			return nil, fmt.Errorf("cols: %w", err)
		}
		return builder.Grid(rows, cols), nil
	case "random":
		ns, ps, ok := strings.Cut(args, ":")
		if !ok {
			return nil, errors.New("want N:P")
		}
		n, err := strconv.Atoi(ns)
		if err != nil {
			return nil, fmt.Errorf("size: %w", err)
		}
		p, err := strconv.ParseFloat(ps, 64)
		if err != nil {
			return nil, fmt.Errorf("probability: %w", err)
		}
		return builder.RandomSparse(n, p), nil
	default:
		return nil, fmt.Errorf("unknown constructor %q", name)
	}
}
