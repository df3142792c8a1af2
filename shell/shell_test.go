// Copyright ©2016 Jonathan J Lawlor. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randInts(r *rand.Rand, n, max int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = r.Intn(max) + 1
	}
	return xs
}

func isSorted(xs []int) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i-1] > xs[i] {
			return false
		}
	}
	return true
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

var variants = []struct {
	name string
	sort func([]int) []int
}{
	{"Halved", Halved[int]},
	{"GapSet", func(xs []int) []int { return GapSet(xs, Ciura) }},
	{"Hibbard", Hibbard[int]},
	{"Knuth", Knuth[int]},
	{"HalvedFunc", func(xs []int) []int { return HalvedFunc(xs, cmpInt) }},
	{"GapSetFunc", func(xs []int) []int { return GapSetFunc(xs, Ciura, cmpInt) }},
	{"HibbardFunc", func(xs []int) []int { return HibbardFunc(xs, cmpInt) }},
}

func TestScenario(t *testing.T) {
	want := []int{1, 2, 3, 5, 8, 9}
	for _, tt := range []struct {
		name string
		gaps []int
	}{
		{"halved", HalvedGaps(6)},
		{"explicit", []int{4, 1}},
		{"hibbard", HibbardGaps(6)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			xs := []int{5, 3, 8, 1, 9, 2}
			got := Sort(xs, tt.gaps)
			assert.Equal(t, want, got)
			assert.Equal(t, want, xs, "not sorted in place")
		})
	}
}

func TestGapLargerThanInput(t *testing.T) {
	xs := []int{5, 3, 8, 1, 9, 2}
	// without a trailing 1 nothing runs and the input is left as is
	assert.Equal(t, []int{5, 3, 8, 1, 9, 2}, GapSet(xs, []int{100}))
	assert.Equal(t, []int{1, 2, 3, 5, 8, 9}, GapSet(xs, []int{100, 1}))
}

func TestUnderSortedWithoutTrailingOne(t *testing.T) {
	// gap 2 orders each residue class but not the whole slice
	xs := GapSet([]int{4, 3, 2, 1}, []int{2})
	assert.Equal(t, []int{2, 1, 4, 3}, xs)
	assert.False(t, isSorted(xs))
}

func TestNonPositiveGapsSkipped(t *testing.T) {
	xs := []int{3, 2, 1}
	assert.Equal(t, []int{3, 2, 1}, Sort(xs, []int{0, -1}))
	assert.Equal(t, []int{1, 2, 3}, Sort(xs, []int{0, -4, 1}))
}

func TestBoundary(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			assert.Empty(t, v.sort(nil))
			assert.Empty(t, v.sort([]int{}))
			assert.Equal(t, []int{7}, v.sort([]int{7}))
		})
	}
}

func TestVariantsMatchReference(t *testing.T) {
	r := rand.New(rand.NewSource(42069))
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			for _, n := range []int{2, 3, 7, 16, 100, 1023, 5000} {
				for _, max := range []int{2, 99, 1 << 30} {
					xs := randInts(r, n, max)
					want := append([]int(nil), xs...)
					sort.Ints(want)

					got := v.sort(xs)
					require.Equal(t, want, got, "n=%d max=%d", n, max)
				}
			}
		})
	}
}

func TestIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, v := range variants {
		xs := v.sort(randInts(r, 500, 50))
		sorted := append([]int(nil), xs...)
		assert.Equal(t, sorted, v.sort(xs), v.name)
	}
}

func TestReversedInput(t *testing.T) {
	for _, v := range variants {
		xs := make([]int, 257)
		for i := range xs {
			xs[i] = len(xs) - i
		}
		assert.True(t, isSorted(v.sort(xs)), v.name)
	}
}

func TestSortFuncComparator(t *testing.T) {
	desc := func(a, b int) int { return cmpInt(b, a) }
	assert.Equal(t, []int{9, 8, 5, 3, 2, 1}, HalvedFunc([]int{5, 3, 8, 1, 9, 2}, desc))

	type halo struct {
		id   int
		mass float64
	}
	hs := []halo{{1, 3.5}, {2, 0.25}, {3, 12}, {4, 1}}
	HibbardFunc(hs, func(a, b halo) int {
		switch {
		case a.mass < b.mass:
			return -1
		case a.mass > b.mass:
			return 1
		}
		return 0
	})
	ids := make([]int, len(hs))
	for i, h := range hs {
		ids[i] = h.id
	}
	assert.Equal(t, []int{2, 4, 1, 3}, ids)
}

func TestOtherOrderedTypes(t *testing.T) {
	assert.Equal(t, []float64{-1.5, 0, 2.25, 3}, Halved([]float64{3, 2.25, -1.5, 0}))
	assert.Equal(t,
		[]string{"gap", "hibbard", "insertion", "shell"},
		Hibbard(strings.Fields("shell insertion gap hibbard")))
}
