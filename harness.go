// Copyright ©2016 Jonathan J Lawlor. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math/rand"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/jonlawlor/shellbench/shell"
)

// config holds everything a run depends on.  The zero flags reproduce the
// original benchmark.
type config struct {
	seed      int64
	n         int
	min, max  int
	variants  []variant
	benchtime time.Duration
}

// variant is one way of choosing the gaps.  bench is the benchmark group
// name used by the sweep, matching the benchmarks in package shell.
type variant struct {
	name  string
	bench string
	sort  func([]int)
}

var variantNames = []string{"halved", "set", "hibbard", "knuth"}

func newVariants(names []string, gaps []int) ([]variant, error) {
	var vs []variant
	for _, name := range names {
		var v variant
		switch strings.TrimSpace(name) {
		case "halved":
			v = variant{bench: "BenchmarkHalved", sort: func(xs []int) { shell.Halved(xs) }}
		case "set":
			v = variant{bench: "BenchmarkGapSet", sort: func(xs []int) { shell.GapSet(xs, gaps) }}
		case "hibbard":
			v = variant{bench: "BenchmarkHibbard", sort: func(xs []int) { shell.Hibbard(xs) }}
		case "knuth":
			v = variant{bench: "BenchmarkKnuth", sort: func(xs []int) { shell.Knuth(xs) }}
		default:
			return nil, errors.Errorf("unknown variant %q, want one of %s", name, strings.Join(variantNames, ", "))
		}
		v.name = strings.TrimSpace(name)
		vs = append(vs, v)
	}
	if len(vs) == 0 {
		return nil, errors.New("no variants")
	}
	return vs, nil
}

// generate returns n values in [min, max] from a generator seeded with seed.
func generate(seed int64, n, min, max int) []int {
	r := rand.New(rand.NewSource(seed))
	data := make([]int, n)
	for i := range data {
		data[i] = min + r.Intn(max-min+1)
	}
	return data
}

// measure times a single call of f.
func measure(f func()) time.Duration {
	start := time.Now()
	f()
	return time.Since(start)
}

type result struct {
	variant string
	elapsed time.Duration
	ok      bool
}

// run sorts a copy of the data with each variant, printing the elapsed time
// of each, and then whether each agrees with sort.Ints.
func run(cfg config, w io.Writer) ([]result, error) {
	l := lg.At("generate").Start()
	data := generate(cfg.seed, cfg.n, cfg.min, cfg.max)
	l.Successf("seed=%d n=%s", cfg.seed, humanize.Comma(int64(cfg.n)))

	results := make([]result, len(cfg.variants))
	sorted := make([][]int, len(cfg.variants))
	for i, v := range cfg.variants {
		xs := slices.Clone(data)
		results[i] = result{variant: v.name, elapsed: measure(func() { v.sort(xs) })}
		sorted[i] = xs
		lg.At("sort").Logf("variant=%s elapsed=%s", v.name, results[i].elapsed)
		if _, err := fmt.Fprintf(w, "Elapsed time: %s\n", results[i].elapsed); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	want := slices.Clone(data)
	sort.Ints(want)

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	for i := range results {
		results[i].ok = slices.Equal(sorted[i], want)
		verdict := green(results[i].ok)
		if !results[i].ok {
			verdict = red(results[i].ok)
		}
		if _, err := fmt.Fprintf(w, "%d: %s\n", i+1, verdict); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return results, nil
}
