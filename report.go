// Copyright ©2016 Jonathan J Lawlor. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// report.go was adapted from benchstat, at https://github.com/rsc/benchstat
// Its license follows:

// Copyright (c) 2009 The Go Authors. All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are
// met:
//
//    * Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//    * Redistributions in binary form must reproduce the above
// copyright notice, this list of conditions and the following disclaimer
// in the documentation and/or other materials provided with the
// distribution.
//    * Neither the name of Google Inc. nor the names of its
// contributors may be used to endorse or promote products derived from
// this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
// "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
// LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
// A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
// LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
// DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
// THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
// (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package main

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/jonlawlor/parsefloat"
	"github.com/pkg/errors"
)

type row []string

// formatCoef prints b with only as many digits as its confidence interval
// supports.
func formatCoef(b, cint float64) string {
	format := "%.1e±%.1e" // b is not significant
	if digits := math.Log10(math.Abs(b)) - math.Log10(cint) + 1; digits > 0 {
		format = "%." + strconv.Itoa(int(math.Min(digits, 15))) + "e±%.1e"
	}
	return fmt.Sprintf(format, b, cint)
}

// writeReport writes one row per fit, in the order given.
func writeReport(w io.Writer, xExprs []parsefloat.Expression, yExpr parsefloat.Expression, fits []fit, asHTML bool) error {
	if len(fits) == 0 {
		return nil
	}
	heading := row{"group \\ " + yExpr.String() + " ~"}
	for _, x := range xExprs {
		heading = append(heading, x.String())
	}
	heading = append(heading, "R^2")

	table := []row{heading}
	for _, f := range fits {
		r := make(row, len(heading))
		r[0] = f.group
		if f.coef == nil {
			for i := 1; i < len(r); i++ {
				r[i] = "~"
			}
		} else {
			for i, b := range f.coef {
				r[i+1] = formatCoef(b, f.cint[i])
			}
			r[len(r)-1] = fmt.Sprintf("%g", f.r2)
		}
		table = append(table, r)
	}

	var buf bytes.Buffer
	if asHTML {
		writeHTML(&buf, table)
	} else {
		writeText(&buf, table)
	}
	_, err := w.Write(buf.Bytes())
	return errors.WithStack(err)
}

func writeHTML(buf *bytes.Buffer, table []row) {
	fmt.Fprintf(buf, "<style>.shellbench tbody td:nth-child(1n+2) { text-align: right; padding: 0em 1em; }</style>\n")
	fmt.Fprintf(buf, "<table class='shellbench'>\n")
	for i, r := range table {
		tag := "td"
		if i == 0 {
			tag = "th"
		}
		buf.WriteString("<tr>")
		for _, cell := range r {
			fmt.Fprintf(buf, "<%s>%s</%s>", tag, html.EscapeString(cell), tag)
		}
		buf.WriteString("\n")
	}
	fmt.Fprintf(buf, "</table>\n")
}

// writeText aligns the columns.  Headings are left justified, and data is
// right justified except for the group name.
func writeText(buf *bytes.Buffer, table []row) {
	width := make([]int, len(table[0]))
	for _, r := range table {
		for i, s := range r {
			if n := utf8.RuneCountInString(s); width[i] < n {
				width[i] = n
			}
		}
	}

	last := len(width) - 1
	for i, s := range table[0] {
		switch i {
		case 0:
			fmt.Fprintf(buf, "%-*s", width[i], s)
		case last:
			fmt.Fprintf(buf, "  %s", s)
		default:
			fmt.Fprintf(buf, "  %-*s", width[i], s)
		}
	}
	buf.WriteString("\n")

	for _, r := range table[1:] {
		for i, s := range r {
			if i == 0 {
				fmt.Fprintf(buf, "%-*s", width[i], s)
				continue
			}
			fmt.Fprintf(buf, "  %*s", width[i], s)
		}
		buf.WriteString("\n")
	}
}
