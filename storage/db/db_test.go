// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	. "github.com/hypercut/perf/storage/db"
	"github.com/hypercut/perf/storage/db/dbtest"
)

func seed(t *testing.T) (*DB, func()) {
	t.Helper()
	d, raw, cleanup := dbtest.NewDB(t)
	dbtest.InsertInstance(t, raw, "h1", 100, 50)
	dbtest.InsertInstance(t, raw, "h2", 200, 90)
	dbtest.InsertRun(t, raw, "h1", "cxy", 4, 10)
	dbtest.InsertRun(t, raw, "h1", "cxy", 4, 30) // second trial
	dbtest.InsertRun(t, raw, "h1", "fpzval", 2, 50)
	dbtest.InsertRun(t, raw, "h2", "cxy", 6, 100)
	return d, cleanup
}

func TestAlgos(t *testing.T) {
	d, cleanup := seed(t)
	defer cleanup()

	algos, err := d.Algos(context.Background())
	if err != nil {
		t.Fatalf("Algos: %v", err)
	}
	if want := []string{"cxy", "fpzval"}; !reflect.DeepEqual(algos, want) {
		t.Errorf("Algos = %v, want %v", algos, want)
	}
}

func TestInstances(t *testing.T) {
	d, cleanup := seed(t)
	defer cleanup()

	metas, err := d.Instances(context.Background())
	if err != nil {
		t.Fatalf("Instances: %v", err)
	}
	if len(metas) != 2 || metas[0].Name != "h1" || metas[0].Size != 100 || metas[0].NumVertices != 50 {
		t.Errorf("Instances = %+v", metas)
	}
}

func TestRecords(t *testing.T) {
	d, cleanup := seed(t)
	defer cleanup()

	recs, err := d.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("got %d records, want 4", len(recs))
	}
	// Cut values must come through the cuts join.
	for _, r := range recs {
		if r.Instance == "h1" && r.Algo == "fpzval" && r.Cut.Raw != 2 {
			t.Errorf("record %+v: cut = %v, want 2", r, r.Cut.Raw)
		}
	}
}

func TestAvgElapsed(t *testing.T) {
	d, cleanup := seed(t)
	defer cleanup()
	ctx := context.Background()

	mean, err := d.AvgElapsed(ctx, "cxy", "h1")
	if err != nil {
		t.Fatalf("AvgElapsed: %v", err)
	}
	if mean != 20 {
		t.Errorf("AvgElapsed = %v, want 20 (mean of 10 and 30)", mean)
	}

	if _, err := d.AvgElapsed(ctx, "cxy", "absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("AvgElapsed(absent) = %v, want ErrNotFound", err)
	}
}

func TestDiscoverySeries(t *testing.T) {
	d, cleanup := seed(t)
	defer cleanup()

	pts, err := d.DiscoverySeries(context.Background(), "cxy")
	if err != nil {
		t.Fatalf("DiscoverySeries: %v", err)
	}
	want := []SizedTime{{Size: 100, MeanElapsedMs: 20}, {Size: 200, MeanElapsedMs: 100}}
	if !reflect.DeepEqual(pts, want) {
		t.Errorf("DiscoverySeries = %+v, want %+v", pts, want)
	}
}

func TestMissingTable(t *testing.T) {
	d, err := OpenSQL("sqlite3", "file:missingtables?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("OpenSQL: %v", err)
	}
	defer d.Close()

	if _, err := d.Algos(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Algos on empty database = %v, want ErrNotFound", err)
	}
	if _, err := d.Instances(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Instances on empty database = %v, want ErrNotFound", err)
	}
}
