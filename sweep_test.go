// Copyright ©2016 Jonathan J Lawlor. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizes(t *testing.T) {
	assert.Equal(t, []int{10, 100, 1000, 10000, 100000, 1000000}, sizes(1000000))
	assert.Equal(t, []int{10, 100, 250}, sizes(250))
	assert.Equal(t, []int{10}, sizes(10))
	assert.Equal(t, []int{7}, sizes(7))
	assert.Empty(t, sizes(0))
}

func TestTimeSort(t *testing.T) {
	cfg := testConfig(t, 0, "hibbard")
	data := generate(1, 100, 1, 99)
	iters, total := timeSort(cfg.variants[0], data, 2*time.Millisecond)
	assert.True(t, iters >= 1)
	assert.True(t, total >= 2*time.Millisecond)

	// the data itself is left alone
	assert.Equal(t, generate(1, 100, 1, 99), data)
}

func TestSweep(t *testing.T) {
	cfg := testConfig(t, 1000)
	set := sweep(cfg, io.Discard)

	procs := runtime.GOMAXPROCS(0)
	require.Len(t, set, 9)
	for _, g := range []string{"BenchmarkHalved", "BenchmarkGapSet", "BenchmarkHibbard"} {
		for _, n := range []int{10, 100, 1000} {
			name := fmt.Sprintf("%s/%d-%d", g, n, procs)
			require.Len(t, set[name], 1, name)
			b := set[name][0]
			assert.True(t, b.N >= 1, name)
			assert.True(t, b.NsPerOp > 0, name)
		}
	}
}

func TestSweepRoundTrip(t *testing.T) {
	cfg := testConfig(t, 100, "halved", "knuth")
	set := sweep(cfg, nil)

	path := filepath.Join(t.TempDir(), "bench.txt")
	require.NoError(t, writeSetFile(path, set))

	read, err := readSet(path)
	require.NoError(t, err)
	require.Len(t, read, len(set))
	for name, bs := range set {
		require.Len(t, read[name], 1, name)
		assert.Equal(t, bs[0].N, read[name][0].N, name)
		assert.InEpsilon(t, bs[0].NsPerOp, read[name][0].NsPerOp, 0.01, name)
	}

	// and the sweep can be fitted
	f, err := newFitter(`/?(?P<N>\d+)-\d+$`, "N, 1.0", "Y", "NsPerOp")
	require.NoError(t, err)
	fits := f.fit(read)
	require.Len(t, fits, 2)
	assert.Equal(t, "BenchmarkHalved", fits[0].group)
	assert.Equal(t, "BenchmarkKnuth", fits[1].group)
}

func TestWriteSetOrder(t *testing.T) {
	set := sweep(testConfig(t, 100, "set", "hibbard"), nil)
	var buf bytes.Buffer
	require.NoError(t, writeSet(&buf, set))

	procs := runtime.GOMAXPROCS(0)
	var names []string
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		names = append(names, string(bytes.Fields(line)[0]))
	}
	assert.Equal(t, []string{
		fmt.Sprintf("BenchmarkGapSet/10-%d", procs),
		fmt.Sprintf("BenchmarkGapSet/100-%d", procs),
		fmt.Sprintf("BenchmarkHibbard/10-%d", procs),
		fmt.Sprintf("BenchmarkHibbard/100-%d", procs),
	}, names)
}

func TestReadSetMissing(t *testing.T) {
	_, err := readSet(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
