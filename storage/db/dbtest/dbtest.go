// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest provides in-memory experiment databases for tests.
// The production schema is created by the experiment runner, not the
// db package, so tests re-create it here.
package dbtest

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hypercut/perf/storage/db"
	_ "github.com/hypercut/perf/storage/db/sqlite3"
)

const schema = `
CREATE TABLE hypergraphs (
	id TEXT PRIMARY KEY,
	size INTEGER NOT NULL,
	num_vertices INTEGER NOT NULL
);
CREATE TABLE cuts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	val REAL NOT NULL
);
CREATE TABLE runs (
	hypergraph_id TEXT NOT NULL REFERENCES hypergraphs(id),
	algo TEXT NOT NULL,
	cut_id INTEGER NOT NULL REFERENCES cuts(id),
	time_elapsed_ms REAL NOT NULL
);
`

// NewDB returns a connection to an empty in-memory experiment
// database with the runs/hypergraphs/cuts schema, plus the raw
// connection for seeding rows. cleanup must be called when done.
func NewDB(t *testing.T) (d *db.DB, raw *sql.DB, cleanup func()) {
	t.Helper()

	// Share one in-memory database between the seeding connection
	// and the connection under test.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"

	raw, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open seed connection: %v", err)
	}
	raw.SetMaxOpenConns(1)
	if _, err := raw.Exec(schema); err != nil {
		raw.Close()
		t.Fatalf("create schema: %v", err)
	}

	d, err = db.OpenSQL("sqlite3", dsn)
	if err != nil {
		raw.Close()
		t.Fatalf("open database: %v", err)
	}
	return d, raw, func() {
		d.Close()
		raw.Close()
	}
}

// InsertRun seeds one run row along with its cut value.
func InsertRun(t *testing.T, raw *sql.DB, instance, algo string, cut, elapsedMs float64) {
	t.Helper()
	res, err := raw.Exec("INSERT INTO cuts (val) VALUES (?)", cut)
	if err != nil {
		t.Fatalf("insert cut: %v", err)
	}
	cutID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("cut id: %v", err)
	}
	_, err = raw.Exec("INSERT INTO runs (hypergraph_id, algo, cut_id, time_elapsed_ms) VALUES (?, ?, ?, ?)",
		instance, algo, cutID, elapsedMs)
	if err != nil {
		t.Fatalf("insert run: %v", err)
	}
}

// InsertInstance seeds one hypergraph row.
func InsertInstance(t *testing.T, raw *sql.DB, name string, size, numVertices int) {
	t.Helper()
	if _, err := raw.Exec("INSERT INTO hypergraphs (id, size, num_vertices) VALUES (?, ?, ?)",
		name, size, numVertices); err != nil {
		t.Fatalf("insert hypergraph: %v", err)
	}
}
