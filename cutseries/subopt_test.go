// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cutseries

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hypercut/perf/cutfmt"
)

func sweep(instance, algo string, budget int, cut float64) cutfmt.Record {
	return cutfmt.Record{
		Instance: instance, Algo: algo,
		Budget: budget, BudgetValid: true,
		Cut: cutfmt.ValueOf(cut),
	}
}

func TestBaseline(t *testing.T) {
	b := mustBatch(t, []cutfmt.Record{
		sweep("h", "a", 10, 5),
		sweep("h", "a", 50, 2),
		sweep("h", "b", 10, 3),
		sweep("h", "b", 50, cutfmt.Sentinel), // excluded
		sweep("other", "a", 10, 1),           // different instance
	}, nil)

	got, err := Baseline(b, "h")
	if err != nil {
		t.Fatalf("Baseline: %v", err)
	}
	if got != 2 {
		t.Errorf("Baseline = %v, want 2", got)
	}

	// The baseline is a true minimum over the instance's
	// convergent records.
	for _, r := range b.ForInstance("h") {
		if !r.Cut.TimedOut && r.Cut.Raw < got {
			t.Errorf("record %+v beats the baseline", r)
		}
	}
}

func TestBaselineMissing(t *testing.T) {
	b := mustBatch(t, []cutfmt.Record{
		sweep("h", "a", 10, cutfmt.Sentinel),
	}, nil)

	for _, instance := range []string{"h", "absent"} {
		_, err := Baseline(b, instance)
		if !errors.Is(err, ErrNoBaseline) {
			t.Errorf("Baseline(%q) = %v, want ErrNoBaseline", instance, err)
		}
	}
}

// TestFactorCurve checks the end-to-end scenario: baseline 2 across
// both algorithms, A's curve stops at the budget where it reaches the
// baseline, B's single point is the whole curve.
func TestFactorCurve(t *testing.T) {
	b := mustBatch(t, []cutfmt.Record{
		sweep("H", "A", 10, 5),
		sweep("H", "A", 50, 2),
		sweep("H", "B", 10, 2),
	}, nil)

	curveA, err := FactorCurve(b, "H", "A")
	if err != nil {
		t.Fatalf("FactorCurve(A): %v", err)
	}
	if want := []Point{{10, 2.5}, {50, 1.0}}; !reflect.DeepEqual(curveA.Points, want) {
		t.Errorf("FactorCurve(A) = %v, want %v", curveA.Points, want)
	}

	curveB, err := FactorCurve(b, "H", "B")
	if err != nil {
		t.Fatalf("FactorCurve(B): %v", err)
	}
	if want := []Point{{10, 1.0}}; !reflect.DeepEqual(curveB.Points, want) {
		t.Errorf("FactorCurve(B) = %v, want %v", curveB.Points, want)
	}
	if !curveB.MarkerOnly() {
		t.Error("one-point curve not flagged marker-only")
	}
}

func TestFactorCurveTruncation(t *testing.T) {
	// Points after the first factor <= 1.0 are discarded even if
	// they rise again.
	b := mustBatch(t, []cutfmt.Record{
		sweep("h", "a", 10, 6),
		sweep("h", "a", 25, 2),
		sweep("h", "a", 50, 4),
		sweep("h", "a", 75, 8),
		sweep("h", "b", 10, 2),
	}, nil)

	curve, err := FactorCurve(b, "h", "a")
	if err != nil {
		t.Fatalf("FactorCurve: %v", err)
	}
	if want := []Point{{10, 3}, {25, 1}}; !reflect.DeepEqual(curve.Points, want) {
		t.Errorf("FactorCurve = %v, want %v", curve.Points, want)
	}
}

func TestFactorCurveNeverReachesOptimum(t *testing.T) {
	// With no factor <= 1.0 for the algorithm, the entire
	// filtered sequence is retained.
	b := mustBatch(t, []cutfmt.Record{
		sweep("h", "a", 10, 6),
		sweep("h", "a", 50, 4),
		sweep("h", "b", 10, 2),
	}, nil)

	curve, err := FactorCurve(b, "h", "a")
	if err != nil {
		t.Fatalf("FactorCurve: %v", err)
	}
	if want := []Point{{10, 3}, {50, 2}}; !reflect.DeepEqual(curve.Points, want) {
		t.Errorf("FactorCurve = %v, want %v", curve.Points, want)
	}
}

func TestFactorCurveDropsTimedOut(t *testing.T) {
	b := mustBatch(t, []cutfmt.Record{
		sweep("h", "a", 10, cutfmt.Sentinel),
		sweep("h", "a", 25, 4),
		sweep("h", "a", 50, 2),
		sweep("h", "b", 10, 2),
	}, nil)

	curve, err := FactorCurve(b, "h", "a")
	if err != nil {
		t.Fatalf("FactorCurve: %v", err)
	}
	if want := []Point{{25, 2}, {50, 1}}; !reflect.DeepEqual(curve.Points, want) {
		t.Errorf("FactorCurve = %v, want %v", curve.Points, want)
	}
	for _, p := range curve.Points {
		if p.Y >= cutfmt.Sentinel {
			t.Errorf("sentinel point %v leaked into the curve", p)
		}
	}
}

func TestFactorCurveOrderIndependence(t *testing.T) {
	recs := []cutfmt.Record{
		sweep("h", "a", 50, 2),
		sweep("h", "a", 10, 6),
		sweep("h", "a", 25, 4),
	}
	want, err := FactorCurve(mustBatch(t, recs, nil), "h", "a")
	if err != nil {
		t.Fatalf("FactorCurve: %v", err)
	}

	perms := [][]int{{0, 1, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, p := range perms {
		shuffled := []cutfmt.Record{recs[p[0]], recs[p[1]], recs[p[2]]}
		got, err := FactorCurve(mustBatch(t, shuffled, nil), "h", "a")
		if err != nil {
			t.Fatalf("FactorCurve: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("permutation %v: FactorCurve = %v, want %v", p, got.Points, want.Points)
		}
	}

	// Budgets must come out ascending.
	for i := 1; i < len(want.Points); i++ {
		if want.Points[i].X <= want.Points[i-1].X {
			t.Errorf("budgets not strictly ascending: %v", want.Points)
		}
	}
}

func TestClipDomain(t *testing.T) {
	curves := []Series{
		{Algo: "rank=2", Points: []Point{{2, 1}, {100, 1}}},
		{Algo: "rank=4", Points: []Point{{5, 1}, {80, 1}}},
	}
	lo, hi, ok := ClipDomain(curves)
	if !ok || lo != 5 || hi != 80 {
		t.Errorf("ClipDomain = (%v, %v, %v), want (5, 80, true)", lo, hi, ok)
	}

	if _, _, ok := ClipDomain(nil); ok {
		t.Error("ClipDomain(nil) reported ok")
	}
	if _, _, ok := ClipDomain([]Series{{Algo: "empty"}}); ok {
		t.Error("ClipDomain with an empty curve reported ok")
	}
	disjoint := []Series{
		{Algo: "a", Points: []Point{{0, 1}, {10, 1}}},
		{Algo: "b", Points: []Point{{20, 1}, {30, 1}}},
	}
	if _, _, ok := ClipDomain(disjoint); ok {
		t.Error("ClipDomain with disjoint domains reported ok")
	}
}
