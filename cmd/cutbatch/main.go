// Copyright 2021 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Cutbatch runs a decomposition binary over every hypergraph in a tar
// archive, smallest archive entry first.
//
// Usage:
//
//	cutbatch -config batch.yaml
//
// The YAML configuration names the archive, the binary to invoke, and
// the output directory results are written to. A failing instance is
// reported on standard error and the batch continues; a missing
// output directory stops the batch before any work is done.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hypercut/perf/cutbatch"
)

var configPath = flag.String("config", "", "batch configuration `file` (YAML)")

func main() {
	log.SetPrefix("cutbatch: ")
	log.SetFlags(0)
	flag.Parse()

	if *configPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	cfg, err := cutbatch.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	r := cutbatch.NewRunner(cfg)
	r.Warn = func(format string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, "cutbatch: "+format, args...)
	}
	if err := r.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
