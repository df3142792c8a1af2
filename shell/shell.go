// Copyright ©2016 Jonathan J Lawlor. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shell implements Shell's method: an in-place insertion sort run
// over a decreasing sequence of gaps.
//
// Every entry point sorts its argument in place and returns it for
// convenience. A gap sequence must end in 1 for the result to be fully
// ordered; gaps smaller than 1 or larger than the slice are skipped. The
// sort is not stable.
package shell

import "golang.org/x/exp/constraints"

// Sort sorts x in place by applying a gap-stride insertion sort for each gap
// in gaps, in the order given.
func Sort[E constraints.Ordered](x []E, gaps []int) []E {
	n := len(x)
	for _, gap := range gaps {
		if gap < 1 || gap > n {
			continue
		}
		for i := gap; i < n; i++ {
			v := x[i]
			j := i
			// shift, don't swap: v is written once the slot is found
			for ; j >= gap && x[j-gap] > v; j -= gap {
				x[j] = x[j-gap]
			}
			x[j] = v
		}
	}
	return x
}

// SortFunc is like Sort but orders elements by cmp, which returns a negative
// number when a < b, zero when a == b and a positive number when a > b.
func SortFunc[E any](x []E, gaps []int, cmp func(a, b E) int) []E {
	n := len(x)
	for _, gap := range gaps {
		if gap < 1 || gap > n {
			continue
		}
		for i := gap; i < n; i++ {
			v := x[i]
			j := i
			for ; j >= gap && cmp(x[j-gap], v) > 0; j -= gap {
				x[j] = x[j-gap]
			}
			x[j] = v
		}
	}
	return x
}

// Halved sorts x using gaps n/2, n/4, ..., 1.
func Halved[E constraints.Ordered](x []E) []E {
	return Sort(x, HalvedGaps(len(x)))
}

// GapSet sorts x using an explicit gap set, largest to smallest.
func GapSet[E constraints.Ordered](x []E, gaps []int) []E {
	return Sort(x, gaps)
}

// Hibbard sorts x using Hibbard's gaps 2^k - 1.
func Hibbard[E constraints.Ordered](x []E) []E {
	return Sort(x, HibbardGaps(len(x)))
}

// Knuth sorts x using the 3h+1 increments.
func Knuth[E constraints.Ordered](x []E) []E {
	return Sort(x, KnuthGaps(len(x)))
}

// HalvedFunc is like Halved but orders elements by cmp.
func HalvedFunc[E any](x []E, cmp func(a, b E) int) []E {
	return SortFunc(x, HalvedGaps(len(x)), cmp)
}

// GapSetFunc is like GapSet but orders elements by cmp.
func GapSetFunc[E any](x []E, gaps []int, cmp func(a, b E) int) []E {
	return SortFunc(x, gaps, cmp)
}

// HibbardFunc is like Hibbard but orders elements by cmp.
func HibbardFunc[E any](x []E, cmp func(a, b E) int) []E {
	return SortFunc(x, HibbardGaps(len(x)), cmp)
}
