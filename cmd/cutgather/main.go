// Copyright 2021 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Cutgather summarizes the partitions in a results directory.
//
// Usage:
//
//	cutgather dir
//
// For every <instance>.cut file with a matching <instance>.hgr in
// dir, it prints one CSV row of instance statistics to standard
// output: name, vertex and edge counts, cut value, skewedness, and
// the two partition sizes. Any unreadable or inconsistent pair aborts
// the whole gather.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hypercut/perf/cutfmt"
	"github.com/hypercut/perf/cutgather"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: cutgather dir\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("cutgather: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}

	summaries, err := cutgather.Gather(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	w := cutfmt.NewSummaryWriter(os.Stdout)
	for _, s := range summaries {
		if err := w.Write(s); err != nil {
			log.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}
