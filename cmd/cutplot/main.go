// Copyright 2021 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Cutplot renders discovery-time plots for the algorithms recorded in
// an experiment database.
//
// Usage:
//
//	cutplot [-driver name] [-dsn dsn] [-src dir] -dest dir
//
// It reads the run records from data.db in the source directory (or
// the explicit -dsn), writes a data.csv pivot of per-instance mean
// discovery times, and renders one PNG per algorithm family filter
// into the destination directory. The destination directory is
// created if necessary; a destination that exists but is not a
// directory is an error.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/hypercut/perf/cutfmt"
	"github.com/hypercut/perf/cutseries"
	"github.com/hypercut/perf/storage/db"
	_ "github.com/hypercut/perf/storage/db/sqlite3"
)

var (
	driver  = flag.String("driver", "sqlite3", "database/sql driver `name` (sqlite3 or mysql)")
	dsn     = flag.String("dsn", "", "data source `name`; defaults to <src>/data.db for sqlite3")
	srcDir  = flag.String("src", ".", "source `directory` holding data.db")
	destDir = flag.String("dest", "", "destination `directory` for plots and data.csv")
)

// plotFilters names each rendered figure and selects the algorithm
// families it shows. The q and kw families dominate the others by
// orders of magnitude, so the mw variants leave them out.
var plotFilters = []struct {
	name  string
	title string
	keep  func(algo string) bool
}{
	{"full", "Full results", nil},
	{"value", "Value results", func(a string) bool { return strings.HasSuffix(a, "val") }},
	{"notvalue", "Not value results", func(a string) bool { return !strings.HasSuffix(a, "val") }},
	{"mwvalue", "Value results", func(a string) bool {
		return strings.HasSuffix(a, "val") && a != "qval" && a != "kwval"
	}},
	{"mwnotvalue", "Not value results", func(a string) bool {
		return !strings.HasSuffix(a, "val") && a != "q" && a != "kw"
	}},
}

func main() {
	log.SetPrefix("cutplot: ")
	log.SetFlags(0)
	flag.Parse()

	if *destDir == "" {
		flag.Usage()
		os.Exit(2)
	}
	if fi, err := os.Stat(*destDir); err == nil && !fi.IsDir() {
		log.Fatalf("%s already exists but is not a directory", *destDir)
	}
	if err := os.MkdirAll(*destDir, 0777); err != nil {
		log.Fatalf("creating %s: %v", *destDir, err)
	}

	source := *dsn
	if source == "" {
		source = filepath.Join(*srcDir, "data.db")
	}
	d, err := db.OpenSQL(*driver, source)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer d.Close()

	ctx := context.Background()
	recs, err := d.Records(ctx)
	if err != nil {
		log.Fatalf("load records: %v", err)
	}
	metas, err := d.Instances(ctx)
	if err != nil {
		log.Fatalf("load instances: %v", err)
	}
	batch, err := cutseries.NewBatch(recs, metas)
	if err != nil {
		log.Fatal(err)
	}
	index := cutseries.NewIndex(batch)

	if err := writeCSV(filepath.Join(*destDir, "data.csv"), batch, index, metas); err != nil {
		log.Fatalf("write data.csv: %v", err)
	}

	builder := cutseries.NewBuilder(batch)
	sink := cutseries.PNGDir{Dir: *destDir}
	for _, pf := range plotFilters {
		var keep func(cutfmt.Record) bool
		if pf.keep != nil {
			f := pf.keep
			keep = func(r cutfmt.Record) bool { return f(r.Algo) }
		}
		series := builder.Build(cutseries.Elapsed, cutseries.BySize, keep)
		if len(series) == 0 {
			continue
		}
		fig := cutseries.Figure{
			Name:   pf.name,
			Title:  pf.title,
			XLabel: "Hypergraph size",
			YLabel: "Discovery time (ms)",
		}
		for _, algo := range cutseries.SortedAlgos(series) {
			fig.Series = append(fig.Series, series[algo])
		}
		if err := sink.Render(fig); err != nil {
			log.Fatalf("render %s: %v", pf.name, err)
		}
	}
}
