// Copyright 2021 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Cutmerge overlays the discovery curves of several constant-rank
// experiments on one plot.
//
// Usage:
//
//	cutmerge [-src dir] -dest dir
//
// The source directory holds one constantNN/ subdirectory per rank,
// each containing either a data.db experiment database or a data.csv
// pivot written by cutplot. Cutmerge draws one mean discovery curve
// per rank, labeled "rank=NN", clips the visible x-range to the
// domain the curves share, and writes output.png to the destination
// directory.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hypercut/perf/cutseries"
	"github.com/hypercut/perf/storage/db"
	_ "github.com/hypercut/perf/storage/db/sqlite3"
)

var (
	srcDir  = flag.String("src", ".", "source `directory` holding constantNN/ subdirectories")
	destDir = flag.String("dest", "", "destination `directory` for output.png")
)

const rankPrefix = "constant"

func main() {
	log.SetPrefix("cutmerge: ")
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

	ranks, err := rankDirs(*srcDir)
	if err != nil {
		log.Fatal(err)
	}
	if len(ranks) == 0 {
		log.Fatalf("no %sNN directories under %s", rankPrefix, *srcDir)
	}

	var series []cutseries.Series
	for _, rank := range ranks {
		s, err := rankSeries(filepath.Join(*srcDir, rankPrefix+strconv.Itoa(rank)), rank)
		if err != nil {
			log.Fatal(err)
		}
		series = append(series, s)
	}

	fig := cutseries.Figure{
		Name:   "output",
		Title:  "Discovery time by rank",
		XLabel: "Hypergraph size",
		YLabel: "Discovery time (ms)",
		Series: series,
	}
	if lo, hi, ok := cutseries.ClipDomain(series); ok {
		fig.XMin, fig.XMax = &lo, &hi
	}
	sink := cutseries.PNGDir{Dir: *destDir}
	if err := sink.Render(fig); err != nil {
		log.Fatalf("render output.png: %v", err)
	}
}

// rankDirs returns the ranks of the constantNN subdirectories of dir,
// ascending.
func rankDirs(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var ranks []int
	for _, ent := range entries {
		if !ent.IsDir() || !strings.HasPrefix(ent.Name(), rankPrefix) {
			continue
		}
		rank, err := strconv.Atoi(ent.Name()[len(rankPrefix):])
		if err != nil {
			continue
		}
		ranks = append(ranks, rank)
	}
	sort.Ints(ranks)
	return ranks, nil
}

// rankSeries loads one rank's mean discovery curve, preferring the
// experiment database and falling back to the data.csv pivot.
func rankSeries(dir string, rank int) (cutseries.Series, error) {
	label := fmt.Sprintf("rank=%d", rank)
	if _, err := os.Stat(filepath.Join(dir, "data.db")); err == nil {
		return dbSeries(filepath.Join(dir, "data.db"), label)
	}
	return csvSeries(filepath.Join(dir, "data.csv"), label)
}

// dbSeries builds the rank's curve by folding every algorithm's runs
// into a single mean-per-size series.
func dbSeries(path, label string) (cutseries.Series, error) {
	d, err := db.OpenSQL("sqlite3", path)
	if err != nil {
		return cutseries.Series{}, fmt.Errorf("open %s: %v", path, err)
	}
	defer d.Close()

	ctx := context.Background()
	recs, err := d.Records(ctx)
	if err != nil {
		return cutseries.Series{}, fmt.Errorf("%s: %v", path, err)
	}
	metas, err := d.Instances(ctx)
	if err != nil {
		return cutseries.Series{}, fmt.Errorf("%s: %v", path, err)
	}
	for i := range recs {
		recs[i].Algo = label
	}
	batch, err := cutseries.NewBatch(recs, metas)
	if err != nil {
		return cutseries.Series{}, fmt.Errorf("%s: %v", path, err)
	}
	series := cutseries.NewBuilder(batch).Build(cutseries.Elapsed, cutseries.BySize, nil)
	s, ok := series[label]
	if !ok {
		return cutseries.Series{}, fmt.Errorf("%s: no usable runs", path)
	}
	return s, nil
}

// csvSeries reads the curve from a cutplot data.csv pivot: column 1
// is the instance size and column 3 the mean discovery time.
func csvSeries(path, label string) (cutseries.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return cutseries.Series{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header := true
	var pts []cutseries.Point
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return cutseries.Series{}, fmt.Errorf("%s: %v", path, err)
		}
		if header {
			header = false
			continue
		}
		if len(row) < 4 {
			return cutseries.Series{}, fmt.Errorf("%s: row has %d fields, want at least 4", path, len(row))
		}
		size, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return cutseries.Series{}, fmt.Errorf("%s: bad size %q", path, row[1])
		}
		ms, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return cutseries.Series{}, fmt.Errorf("%s: bad time %q", path, row[3])
		}
		pts = append(pts, cutseries.Point{X: size, Y: ms})
	}
	if len(pts) == 0 {
		return cutseries.Series{}, fmt.Errorf("%s: no data rows", path)
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
	return cutseries.Series{Algo: label, Points: pts}, nil
}
