// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cutseries

import (
	"reflect"
	"strings"
	"testing"

	"github.com/hypercut/perf/cutfmt"
)

func mustBatch(t *testing.T, recs []cutfmt.Record, metas []cutfmt.Instance) *Batch {
	t.Helper()
	b, err := NewBatch(recs, metas)
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	return b
}

func run(instance, algo string, elapsed, cut float64) cutfmt.Record {
	return cutfmt.Record{Instance: instance, Algo: algo, ElapsedMs: elapsed, Cut: cutfmt.ValueOf(cut)}
}

func TestBatchDecomposesIdentifiers(t *testing.T) {
	b := mustBatch(t, []cutfmt.Record{
		run("h1", "cxyval_cutoff_30", 10, 5),
		run("h1", "cxyval_cutoff_50", 20, 2),
		run("h1", "cxyval", 30, 2),
	}, nil)

	ix := NewIndex(b)
	if want := []string{"cxyval_cutoff", "cxyval"}; !reflect.DeepEqual(ix.Algos(), want) {
		t.Errorf("Algos = %v, want %v", ix.Algos(), want)
	}
	if want := []int{30, 50}; !reflect.DeepEqual(ix.Budgets(), want) {
		t.Errorf("Budgets = %v, want %v", ix.Budgets(), want)
	}
}

func TestBatchMalformedIdentifier(t *testing.T) {
	_, err := NewBatch([]cutfmt.Record{run("h1", "cxy_oops", 1, 1)}, nil)
	if err == nil {
		t.Fatal("NewBatch accepted a malformed identifier")
	}
	if !strings.Contains(err.Error(), "cxy_oops") {
		t.Errorf("error %q does not name the offending identifier", err)
	}
}

func TestBuildBySize(t *testing.T) {
	metas := []cutfmt.Instance{
		{Name: "h1", Size: 100},
		{Name: "h2", Size: 200},
		{Name: "h3", Size: 50},
	}
	b := mustBatch(t, []cutfmt.Record{
		run("h2", "cxy", 40, 3),
		run("h1", "cxy", 10, 3),
		run("h1", "cxy", 20, 3), // second trial, averaged with the first
		run("h3", "cxy", 5, 3),
		run("h1", "fpz", 100, 3),
	}, metas)

	got := NewBuilder(b).Build(Elapsed, BySize, nil)

	want := map[string]Series{
		"cxy": {Algo: "cxy", Points: []Point{{50, 5}, {100, 15}, {200, 40}}},
		"fpz": {Algo: "fpz", Points: []Point{{100, 100}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build:\nhave %+v\nwant %+v", got, want)
	}
	if !got["fpz"].MarkerOnly() {
		t.Error("single-point series not flagged marker-only")
	}
	if got["cxy"].MarkerOnly() {
		t.Error("multi-point series flagged marker-only")
	}
}

func TestBuildDropsTimedOut(t *testing.T) {
	metas := []cutfmt.Instance{{Name: "h1", Size: 100}}
	b := mustBatch(t, []cutfmt.Record{
		run("h1", "cxy", 10, cutfmt.Sentinel), // timed out
		run("h1", "fpz", 10, 3),
	}, metas)

	got := NewBuilder(b).Build(CutValue, BySize, nil)
	if _, ok := got["cxy"]; ok {
		t.Error("algorithm with only timed-out records not omitted")
	}
	if len(got) != 1 || len(got["fpz"].Points) != 1 {
		t.Errorf("Build = %+v, want only fpz with one point", got)
	}
}

func TestBuildFilter(t *testing.T) {
	metas := []cutfmt.Instance{{Name: "h1", Size: 100}}
	b := mustBatch(t, []cutfmt.Record{
		run("h1", "q", 10, 3),
		run("h1", "cxy", 20, 3),
	}, metas)

	got := NewBuilder(b).Build(Elapsed, BySize, func(r cutfmt.Record) bool {
		return r.Algo != "q"
	})
	if _, ok := got["q"]; ok {
		t.Error("filtered algorithm present in result")
	}
	if _, ok := got["cxy"]; !ok {
		t.Error("unfiltered algorithm missing from result")
	}
}

func TestBuildOrderIndependence(t *testing.T) {
	metas := []cutfmt.Instance{
		{Name: "h1", Size: 100},
		{Name: "h2", Size: 200},
		{Name: "h3", Size: 50},
	}
	recs := []cutfmt.Record{
		run("h1", "cxy", 10, 3),
		run("h2", "cxy", 40, 3),
		run("h3", "cxy", 5, 3),
	}
	want := NewBuilder(mustBatch(t, recs, metas)).Build(Elapsed, BySize, nil)

	reversed := []cutfmt.Record{recs[2], recs[1], recs[0]}
	got := NewBuilder(mustBatch(t, reversed, metas)).Build(Elapsed, BySize, nil)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("record order changed the result:\nhave %+v\nwant %+v", got, want)
	}
}
