// Copyright ©2016 Jonathan J Lawlor. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonlawlor/parsefloat"
	"github.com/pkg/errors"
	"golang.org/x/tools/benchmark/parse"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var validYs = []string{"NsPerOp", "AllocedBytesPerOp", "AllocsPerOp", "MBPerS"}

// fitter fits a linear model of transformed benchmark results against
// variables parsed out of the benchmark names.
type fitter struct {
	inre     *regexp.Regexp
	xExprs   []parsefloat.Expression
	yExpr    parsefloat.Expression
	response string
}

func newFitter(vars, xtransform, ytransform, response string) (*fitter, error) {
	inre, err := regexp.Compile(vars)
	if err != nil {
		return nil, errors.Wrap(err, "vars")
	}
	names := parsefloat.NamedVars(inre)
	if _, exists := names["Y"]; exists {
		return nil, errors.New("`Y` is reserved and cannot be used as a named expression in vars")
	}
	// parsed as a composite literal so that commas inside calls are left alone
	xExprs, err := parsefloat.NewSlice("float64{"+xtransform+"}", names)
	if err != nil {
		return nil, errors.Wrapf(err, "xtransform %q", xtransform)
	}
	if len(xExprs) == 0 {
		return nil, errors.Errorf("xtransform %q: no expressions", xtransform)
	}
	names["Y"] = struct{}{}
	yExpr, err := parsefloat.New(ytransform, names)
	if err != nil {
		return nil, errors.Wrapf(err, "ytransform %q", ytransform)
	}

	found := false
	for _, y := range validYs {
		if y == response {
			found = true
			break
		}
	}
	if !found {
		return nil, errors.Errorf("invalid response %q, want one of %s", response, strings.Join(validYs, ", "))
	}
	return &fitter{inre: inre, xExprs: xExprs, yExpr: yExpr, response: response}, nil
}

// fit collects the samples in set and estimates one model per group.
func (f *fitter) fit(set parse.Set) []fit {
	samps := sampleGroup(set, f.inre, f.xExprs, f.yExpr, f.response)

	fits := make([]fit, 0, len(samps))
	for g, s := range samps {
		r := fit{group: g, coef: estimate(s)}
		if r.coef != nil {
			r.r2, r.cint = stats(r.coef, s)
		}
		fits = append(fits, r)
	}
	sort.Slice(fits, func(i, j int) bool { return fits[i].group < fits[j].group })
	return fits
}

type sample struct {
	x []float64 // explanatory, row major
	y []float64 // response
}

// sampleGroup finds the samples in the benchmark set.  The resulting x and y
// will not be in a stable order.
func sampleGroup(set parse.Set, inre *regexp.Regexp, xExprs []parsefloat.Expression, yExpr parsefloat.Expression, yVar string) map[string]sample {
	samps := make(map[string]sample)
Bench:
	for name, bs := range set {
		input := inre.FindStringSubmatch(name)
		if input == nil {
			continue
		}
		// the group is whatever didn't match
		group := strings.TrimSuffix(name, input[0])

		vars := make(map[string]float64)
		for i, varname := range inre.SubexpNames() {
			if i == 0 || varname == "" {
				continue
			}
			val, err := strconv.ParseFloat(input[i], 64)
			if err != nil {
				lg.At("sample").Logf("state=warning name=%q var=%s value=%q skipping non numeric input", name, varname, input[i])
				continue Bench
			}
			vars[varname] = val
		}

		x := make([]float64, len(xExprs))
		for i, xExpr := range xExprs {
			x[i] = xExpr.Eval(vars)
		}

		s := samps[group]
		for _, b := range bs {
			vars["Y"] = response(b, yVar)
			s.x = append(s.x, x...)
			s.y = append(s.y, yExpr.Eval(vars))
		}
		samps[group] = s
	}
	return samps
}

func response(b *parse.Benchmark, yVar string) float64 {
	switch yVar {
	case "NsPerOp":
		return b.NsPerOp
	case "AllocedBytesPerOp":
		return float64(b.AllocedBytesPerOp)
	case "AllocsPerOp":
		return float64(b.AllocsPerOp)
	case "MBPerS":
		return b.MBPerS
	}
	panic("unknown response: " + yVar)
}

// model contains the model parameters
type model []float64

// fit is the estimate for one group.  coef is nil if it could not be
// estimated.
type fit struct {
	group string
	coef  model
	r2    float64
	cint  []float64
}

// estimate parameters via least squares.  Returns nil if the system is
// underdetermined or could not be solved.
func estimate(s sample) model {
	if len(s.y) == 0 {
		return nil
	}
	rows, cols := len(s.y), len(s.x)/len(s.y)
	if cols == 0 || rows < cols {
		return nil
	}

	y := blas64.General{Rows: rows, Cols: 1, Stride: 1, Data: make([]float64, rows)}
	copy(y.Data, s.y)
	x := blas64.General{Rows: rows, Cols: cols, Stride: cols, Data: make([]float64, len(s.x))}
	copy(x.Data, s.x)

	// find optimal work size
	work := make([]float64, 1)
	lapack64.Gels(blas.NoTrans, x, y, work, -1)

	work = make([]float64, int(work[0]))
	if ok := lapack64.Gels(blas.NoTrans, x, y, work, len(work)); !ok {
		return nil
	}
	m := make(model, cols)
	copy(m, y.Data[:cols])
	for _, b := range m {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return nil
		}
	}
	return m
}

// stats computes R squared and the 95% confidence half width of each
// coefficient.
func stats(m model, s sample) (r2 float64, cint []float64) {
	stride := len(m)
	mean := 0.0
	for _, y := range s.y {
		mean += y
	}
	mean /= float64(len(s.y))

	var rss, tss float64
	for i, y := range s.y {
		yHat := 0.0
		for j, x := range s.x[i*stride : (i+1)*stride] {
			yHat += m[j] * x
		}
		rss += (yHat - y) * (yHat - y)
		tss += (y - mean) * (y - mean)
	}
	r2 = 1
	if tss > 0 {
		r2 = 1 - rss/tss
	}

	cint = make([]float64, stride)
	df := len(s.y) - stride
	var xtx, inv mat.Dense
	X := mat.NewDense(len(s.y), stride, append([]float64(nil), s.x...))
	xtx.Mul(X.T(), X)
	err := inv.Inverse(&xtx)
	if _, ill := err.(mat.Condition); df <= 0 || (err != nil && !ill) {
		for i := range cint {
			cint[i] = math.Inf(1)
		}
		return r2, cint
	}
	mse := rss / float64(df)
	for i := range cint {
		cint[i] = conf95(math.Sqrt(inv.At(i, i)*mse), df)
	}
	return r2, cint
}

// conf95 is the half width of the 95% confidence interval of a coefficient
// with standard error se and df degrees of freedom.
func conf95(se float64, df int) float64 {
	if df <= 0 {
		return math.Inf(1)
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return t.Quantile(0.975) * se
}
