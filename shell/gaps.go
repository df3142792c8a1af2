// Copyright ©2016 Jonathan J Lawlor. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Ciura is the empirically derived gap set of Marcin Ciura, extended by one
// term.  It is the default explicit gap set.
var Ciura = []int{1750, 701, 301, 132, 57, 23, 10, 4, 1}

// HalvedGaps returns n/2, n/4, ... down to the last nonzero halving.  For
// n >= 2 the final gap is 1.
func HalvedGaps(n int) []int {
	var gaps []int
	for gap := n / 2; gap > 0; gap /= 2 {
		gaps = append(gaps, gap)
	}
	return gaps
}

// HibbardGaps returns the gaps 2^k - 1 that are smaller than n, largest
// first.
func HibbardGaps(n int) []int {
	var gaps []int
	for k, gap := 1, 1; gap < n && gap > 0; {
		gaps = append(gaps, gap)
		k++
		gap = (1 << uint(k)) - 1
	}
	return reverse(gaps)
}

// KnuthGaps returns the increments 1, 4, 13, 40, ... that are smaller than n,
// largest first.
func KnuthGaps(n int) []int {
	var gaps []int
	for gap := 1; gap < n && gap > 0; gap = gap*3 + 1 {
		gaps = append(gaps, gap)
	}
	return reverse(gaps)
}

func reverse(xs []int) []int {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
	return xs
}

// ParseGaps parses a comma separated list of gaps, such as "701,301,132,1".
// It does not check that the gaps decrease or that the last one is 1.
func ParseGaps(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	gaps := make([]int, 0, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, errors.Errorf("empty gap at position %d", i)
		}
		gap, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(err, "gap at position %d", i)
		}
		if gap < 1 {
			return nil, errors.Errorf("gap at position %d must be positive, got %d", i, gap)
		}
		gaps = append(gaps, gap)
	}
	return gaps, nil
}
