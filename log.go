// Copyright ©2016 Jonathan J Lawlor. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/convox/logger"
)

const namespace = "ns=shellbench"

// lg is silent unless -v is given.
var lg = logger.NewWriter(namespace, io.Discard)

// warnings receives warnings regardless of verbosity.
var warnings io.Writer = os.Stderr

func warnf(at, format string, args ...interface{}) {
	logger.NewWriter(namespace, warnings).At(at).Logf("state=warning "+format, args...)
}

func setVerbose(v bool) {
	if v {
		lg = logger.NewWriter(namespace, os.Stderr)
	}
}

// fatal logs err regardless of verbosity and exits.
func fatal(err error) {
	logger.NewWriter(namespace, os.Stderr).At("fatal").Error(err)
	os.Exit(1)
}
