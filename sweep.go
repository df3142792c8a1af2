// Copyright ©2016 Jonathan J Lawlor. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"golang.org/x/tools/benchmark/parse"
	"gopkg.in/cheggaaa/pb.v1"
)

// sizes returns 10, 100, ... below n, followed by n itself.
func sizes(n int) []int {
	var ns []int
	for s := 10; s < n; s *= 10 {
		ns = append(ns, s)
	}
	if n > 0 {
		ns = append(ns, n)
	}
	return ns
}

// timeSort repeatedly sorts a fresh copy of data until at least benchtime
// has been spent sorting.  The copies are not timed.
func timeSort(v variant, data []int, benchtime time.Duration) (iters int, total time.Duration) {
	buf := make([]int, len(data))
	for iters == 0 || total < benchtime {
		copy(buf, data)
		total += measure(func() { v.sort(buf) })
		iters++
	}
	return iters, total
}

// sweep benchmarks every variant at every size, in the form ``go test
// -bench'' would report them.  Progress goes to progress unless it is nil.
func sweep(cfg config, progress io.Writer) parse.Set {
	ns := sizes(cfg.n)
	procs := runtime.GOMAXPROCS(0)

	var bar *pb.ProgressBar
	if progress != nil {
		bar = pb.New(len(ns) * len(cfg.variants))
		bar.Output = progress
		bar.ShowTimeLeft = false
		bar.Prefix("Sweeping ")
		bar.Start()
		defer bar.Finish()
	}

	set := make(parse.Set)
	ord := 0
	for _, v := range cfg.variants {
		for _, n := range ns {
			data := generate(cfg.seed, n, cfg.min, cfg.max)
			iters, total := timeSort(v, data, cfg.benchtime)

			b := &parse.Benchmark{
				Name:     fmt.Sprintf("%s/%d-%d", v.bench, n, procs),
				N:        iters,
				NsPerOp:  float64(total.Nanoseconds()) / float64(iters),
				Measured: parse.NsPerOp,
				Ord:      ord,
			}
			if b.NsPerOp > 0 {
				b.MBPerS = float64(8*n) / b.NsPerOp * 1e3
				b.Measured |= parse.MBPerS
			}
			set[b.Name] = append(set[b.Name], b)
			ord++

			lg.At("sweep").Logf("variant=%s n=%s iters=%d ns/op=%.0f", v.name, humanize.Comma(int64(n)), iters, b.NsPerOp)
			if bar != nil {
				bar.Increment()
			}
		}
	}
	return set
}

// writeSet writes the benchmarks in the order they were measured, one per
// line, so the file can be read back with readSet.
func writeSet(w io.Writer, set parse.Set) error {
	var bs []*parse.Benchmark
	for _, group := range set {
		bs = append(bs, group...)
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i].Ord < bs[j].Ord })

	bw := bufio.NewWriter(w)
	for _, b := range bs {
		fmt.Fprintln(bw, b.String())
	}
	return errors.WithStack(bw.Flush())
}

func writeSetFile(path string, set parse.Set) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := writeSet(f, set); err != nil {
		f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}

// readSet reads the output of ``go test -bench'' from path.
func readSet(path string) (parse.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	set, err := parse.ParseSet(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return set, nil
}
