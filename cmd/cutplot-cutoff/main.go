// Copyright 2021 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Cutplot-cutoff renders suboptimality curves from flat cutoff sweep
// files.
//
// Usage:
//
//	cutplot-cutoff [-src dir] -dest dir
//
// The source directory holds one <instance>.data.txt file per
// hypergraph, each listing the cut factor every algorithm reached at
// each cutoff percentage. For every instance the command renders one
// PNG of suboptimality factor against cutoff percentage, with a
// dashed reference line at 1.0 where an algorithm ties the best
// result seen for that instance. Instances with no convergent result
// at all are skipped with a warning.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hypercut/perf/cutfmt"
	"github.com/hypercut/perf/cutseries"
)

var (
	srcDir  = flag.String("src", ".", "source `directory` holding *.data.txt files")
	destDir = flag.String("dest", "", "destination `directory` for plots")
)

const dataSuffix = ".data.txt"

func main() {
	log.SetPrefix("cutplot-cutoff: ")
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

	entries, err := os.ReadDir(*srcDir)
	if err != nil {
		log.Fatalf("read %s: %v", *srcDir, err)
	}

	sink := cutseries.PNGDir{Dir: *destDir}
	plotted := 0
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), dataSuffix) {
			continue
		}
		if err := plotFile(filepath.Join(*srcDir, ent.Name()), sink); err != nil {
			if errors.Is(err, cutseries.ErrNoBaseline) {
				log.Printf("skipping %s: %v", ent.Name(), err)
				continue
			}
			log.Fatal(err)
		}
		plotted++
	}
	if plotted == 0 {
		log.Fatalf("no %s files plotted from %s", dataSuffix, *srcDir)
	}
}

func plotFile(path string, sink cutseries.Sink) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := cutfmt.NewReader(f, filepath.Base(path))
	var recs []cutfmt.Record
	for r.Scan() {
		recs = append(recs, r.Record())
	}
	if err := r.Err(); err != nil {
		return err
	}

	batch, err := cutseries.NewBatch(recs, nil)
	if err != nil {
		return err
	}
	instance := r.Instance()

	fig := cutseries.Figure{
		Name:   instance,
		Title:  instance,
		XLabel: "Cutoff percentage",
		YLabel: "Suboptimality factor",
	}
	refY := 1.0
	fig.RefY = &refY
	for _, algo := range cutseries.NewIndex(batch).Algos() {
		s, err := cutseries.FactorCurve(batch, instance, algo)
		if err != nil {
			return err
		}
		if len(s.Points) == 0 {
			continue
		}
		fig.Series = append(fig.Series, s)
	}
	if len(fig.Series) == 0 {
		return fmt.Errorf("%s: no plottable series", path)
	}
	return sink.Render(fig)
}
