// Copyright ©2016 Jonathan J Lawlor. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// shellbench times Shell sort with different gap sequences.
//
// Usage:
//
//	shellbench [options] [bench.txt]
//
// Without arguments, shellbench fills an array of 1,000,000 integers in
// [1, 99] from a generator seeded with 42069, sorts a copy with each
// variant and prints the time each took.  It then checks every result
// against sort.Ints:
//
//	Elapsed time: 187.402301ms
//	Elapsed time: 96.713015ms
//	Elapsed time: 151.530622ms
//	1: true
//	2: true
//	3: true
//
// The variants are, in order, gaps of n/2, n/4, ... 1; the explicit gap set
// given by -gaps; and Hibbard's gaps 2^k - 1.
//
// With -fit, each variant is then also timed at sizes 10, 100, ... n, and a
// least squares fit of the time per sort against the transforms in
// -xtransform is reported for each variant:
//
//	$ shellbench -fit -xt="N * math.Log(N), 1.0"
//	group \ Y ~       N * math.Log(N)  1.0  R^2
//	BenchmarkGapSet   ...
//	BenchmarkHalved   ...
//	BenchmarkHibbard  ...
//
// The numbers after the ``±'' are the 95% confidence interval.
//
// Given a file, shellbench skips the run and fits the benchmarks in the
// file instead, which should contain the output of ``go test -bench.''  The
// benchmarks in package shell are named for this:
//
//	$ go test -run=NONE -bench=. ./shell > bench.txt
//	$ shellbench -xt="math.Pow(N, 1.5), 1.0" bench.txt
//
// Benchmarks that match the regexp in -vars are collected into one sample
// per group, the group being the benchmark name without the match.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/tools/benchmark/parse"

	"github.com/jonlawlor/shellbench/shell"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: shellbench [options] [bench.txt]\n")
	fmt.Fprintf(os.Stderr, "times Shell sort with different gap sequences, and fits how the time grows with N\n")
	fmt.Fprintf(os.Stderr, "example:\n")
	fmt.Fprintf(os.Stderr, "   shellbench -fit -n=100000 -xt=\"math.Pow(N, 1.25), 1.0\"\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	os.Exit(2)
}

var (
	flagSeed      int64
	flagN         int
	flagMin       int
	flagMax       int
	flagGaps      string
	flagVariants  string
	flagFit       bool
	flagBenchtime time.Duration
	flagOut       string
	flagVerbose   bool

	flagInputMatch string
	flagXTransform string
	flagYTransform string
	flagYVar       string
	flagHTML       bool
)

func init() {
	flag.Int64Var(&flagSeed, "seed", 42069, "seed for the random input")
	flag.IntVar(&flagN, "n", 1000000, "number of values to sort")
	flag.IntVar(&flagMin, "min", 1, "smallest random value")
	flag.IntVar(&flagMax, "max", 99, "largest random value")
	flag.StringVar(&flagGaps, "gaps", joinInts(shell.Ciura), "explicit gap set, largest to smallest, ending in 1")
	flag.StringVar(&flagVariants, "variants", "halved,set,hibbard", "variants to run {"+strings.Join(variantNames, ", ")+"}")
	flag.BoolVar(&flagFit, "fit", false, "also time each variant at sizes 10, 100, ... n and fit the results")
	flag.DurationVar(&flagBenchtime, "benchtime", 100*time.Millisecond, "minimum time spent sorting at each size with -fit")
	flag.StringVar(&flagOut, "o", "", "write the -fit timings to this file in go test -bench format")
	flag.BoolVar(&flagVerbose, "v", false, "log progress to stderr")

	flag.StringVar(&flagInputMatch, "vars", `/?(?P<N>\d+)-\d+$`, "where to find named input variables in the benchmark names")

	const (
		defaultXTransform = "N * math.Log(N), 1.0"
		XTransformUsage   = "how to construct the explanatory variables from the input variables, separated by commas"
	)
	flag.StringVar(&flagXTransform, "xtransform", defaultXTransform, XTransformUsage)
	flag.StringVar(&flagXTransform, "xt", defaultXTransform, XTransformUsage+" (shorthand)")

	flag.StringVar(&flagYVar, "response", "NsPerOp", `benchmark field to use as a response variable {"`+strings.Join(validYs, `", "`)+`"}`)

	const (
		defaultYTransform = "Y"
		YTransformUsage   = "how to transform the response variable"
	)
	flag.StringVar(&flagYTransform, "ytransform", defaultYTransform, YTransformUsage)
	flag.StringVar(&flagYTransform, "yt", defaultYTransform, YTransformUsage+" (shorthand)")

	flag.BoolVar(&flagHTML, "html", false, "print results as an HTML table")
}

func joinInts(xs []int) string {
	s := make([]string, len(xs))
	for i, x := range xs {
		s[i] = fmt.Sprint(x)
	}
	return strings.Join(s, ",")
}

// newConfig validates the run flags.
func newConfig() (config, error) {
	if flagN < 0 {
		return config{}, errors.Errorf("n must not be negative, got %d", flagN)
	}
	if flagMin > flagMax {
		return config{}, errors.Errorf("min %d is larger than max %d", flagMin, flagMax)
	}
	// max-min+1 must fit in an int
	if span := uint(flagMax) - uint(flagMin); span >= math.MaxInt {
		return config{}, errors.Errorf("range [%d, %d] is too wide", flagMin, flagMax)
	}
	if flagBenchtime <= 0 {
		return config{}, errors.Errorf("benchtime must be positive, got %s", flagBenchtime)
	}
	gaps, err := shell.ParseGaps(flagGaps)
	if err != nil {
		return config{}, errors.Wrap(err, "gaps")
	}
	if gaps[len(gaps)-1] != 1 {
		warnf("config", "gaps=%s the explicit gap set does not end in 1 and may not sort fully", flagGaps)
	}
	variants, err := newVariants(strings.Split(flagVariants, ","), gaps)
	if err != nil {
		return config{}, err
	}
	return config{
		seed:      flagSeed,
		n:         flagN,
		min:       flagMin,
		max:       flagMax,
		variants:  variants,
		benchtime: flagBenchtime,
	}, nil
}

func main() {
	flag.Usage = usage
	flag.Parse()
	setVerbose(flagVerbose)

	args := flag.Args()
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "too many input arguments\n")
		usage()
	}

	// check the transforms before spending any time sorting
	var f *fitter
	if flagFit || len(args) == 1 {
		var err error
		if f, err = newFitter(flagInputMatch, flagXTransform, flagYTransform, flagYVar); err != nil {
			fatal(err)
		}
	}

	if len(args) == 1 {
		set, err := readSet(args[0])
		if err != nil {
			fatal(err)
		}
		report(f, set)
		return
	}

	cfg, err := newConfig()
	if err != nil {
		fatal(err)
	}
	if _, err := run(cfg, os.Stdout); err != nil {
		fatal(err)
	}
	if !flagFit {
		return
	}

	set := sweep(cfg, os.Stderr)
	if flagOut != "" {
		if err := writeSetFile(flagOut, set); err != nil {
			fatal(err)
		}
	}
	fmt.Println()
	report(f, set)
}

func report(f *fitter, set parse.Set) {
	fits := f.fit(set)
	if len(fits) == 0 {
		lg.At("report").Logf("state=warning no benchmarks matched vars=%q", flagInputMatch)
	}
	if err := writeReport(os.Stdout, f.xExprs, f.yExpr, fits, flagHTML); err != nil {
		fatal(err)
	}
}
