// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db provides a read-only view over the relational shape of
// an experiment batch: the runs, hypergraphs, and optional cuts
// tables written by the experiment runner. It never modifies the
// underlying store; schema creation belongs to the producer.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hypercut/perf/cutfmt"
)

// ErrNotFound reports that a requested table or field does not exist
// in the store.
var ErrNotFound = errors.New("db: not found")

// DB is a read-only connection to an experiment database. It's safe
// for concurrent use by multiple goroutines.
type DB struct {
	sql        *sql.DB
	driverName string
}

// OpenSQL opens a DB backed by a SQL database. The parameters are the
// same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	return &DB{sql: db, driverName: driverName}, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. This is used by the sqlite3 package to
// register a ConnectHook. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// hasTable reports whether the named table exists. The probe is
// parameterized; name never reaches query text.
func (db *DB) hasTable(ctx context.Context, name string) (bool, error) {
	q := "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?"
	if db.driverName == "sqlite3" {
		q = "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?"
	}
	var n int
	if err := db.sql.QueryRowContext(ctx, q, name).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// requireTable fails with an ErrNotFound-wrapped error when the named
// table is absent.
func (db *DB) requireTable(ctx context.Context, name string) error {
	ok, err := db.hasTable(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: table %s", ErrNotFound, name)
	}
	return nil
}

// Algos returns the distinct algorithm identifiers recorded in the
// runs table, in lexical order for reproducibility.
func (db *DB) Algos(ctx context.Context) ([]string, error) {
	if err := db.requireTable(ctx, "runs"); err != nil {
		return nil, err
	}
	rows, err := db.sql.QueryContext(ctx, "SELECT DISTINCT algo FROM runs ORDER BY algo")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var algos []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		algos = append(algos, a)
	}
	return algos, rows.Err()
}

// Instances returns the metadata of every hypergraph in the batch,
// ascending by size.
func (db *DB) Instances(ctx context.Context) ([]cutfmt.Instance, error) {
	if err := db.requireTable(ctx, "hypergraphs"); err != nil {
		return nil, err
	}
	rows, err := db.sql.QueryContext(ctx, "SELECT id, size, num_vertices FROM hypergraphs ORDER BY size")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var metas []cutfmt.Instance
	for rows.Next() {
		var m cutfmt.Instance
		if err := rows.Scan(&m.Name, &m.Size, &m.NumVertices); err != nil {
			return nil, err
		}
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

// Records returns every run record in the batch. Cut values come
// from the cuts table when it exists (joined on cut_id), and from the
// runs table's val column otherwise.
func (db *DB) Records(ctx context.Context) ([]cutfmt.Record, error) {
	if err := db.requireTable(ctx, "runs"); err != nil {
		return nil, err
	}
	hasCuts, err := db.hasTable(ctx, "cuts")
	if err != nil {
		return nil, err
	}
	q := "SELECT hypergraph_id, algo, val, time_elapsed_ms FROM runs"
	if hasCuts {
		q = "SELECT runs.hypergraph_id, runs.algo, cuts.val, runs.time_elapsed_ms FROM runs INNER JOIN cuts ON runs.cut_id = cuts.id"
	}
	rows, err := db.sql.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recs []cutfmt.Record
	for rows.Next() {
		var r cutfmt.Record
		var val float64
		if err := rows.Scan(&r.Instance, &r.Algo, &val, &r.ElapsedMs); err != nil {
			return nil, err
		}
		r.Cut = cutfmt.ValueOf(val)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// AvgElapsed returns the arithmetic mean discovery time across every
// trial of algo on the named instance. It fails with an
// ErrNotFound-wrapped error when the pair has no records.
func (db *DB) AvgElapsed(ctx context.Context, algo, instance string) (float64, error) {
	if err := db.requireTable(ctx, "runs"); err != nil {
		return 0, err
	}
	var mean sql.NullFloat64
	err := db.sql.QueryRowContext(ctx,
		"SELECT AVG(time_elapsed_ms) FROM runs WHERE algo = ? AND hypergraph_id = ?",
		algo, instance).Scan(&mean)
	if err != nil {
		return 0, err
	}
	if !mean.Valid {
		return 0, fmt.Errorf("%w: no records for algo %q on instance %q", ErrNotFound, algo, instance)
	}
	return mean.Float64, nil
}

// A SizedTime is one averaged discovery-time sample: the instance
// size and the mean elapsed milliseconds of one algorithm on it.
type SizedTime struct {
	Size          float64
	MeanElapsedMs float64
}

// DiscoverySeries returns algo's mean discovery time per instance,
// ascending by instance size. This is the per-algorithm query behind
// the discovery-time plots.
func (db *DB) DiscoverySeries(ctx context.Context, algo string) ([]SizedTime, error) {
	if err := db.requireTable(ctx, "runs"); err != nil {
		return nil, err
	}
	if err := db.requireTable(ctx, "hypergraphs"); err != nil {
		return nil, err
	}
	rows, err := db.sql.QueryContext(ctx, `
		SELECT hypergraphs.size, AVG(runs.time_elapsed_ms)
		FROM runs
		INNER JOIN hypergraphs ON runs.hypergraph_id = hypergraphs.id
		WHERE runs.algo = ?
		GROUP BY runs.hypergraph_id, hypergraphs.size
		ORDER BY hypergraphs.size`, algo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var pts []SizedTime
	for rows.Next() {
		var p SizedTime
		if err := rows.Scan(&p.Size, &p.MeanElapsedMs); err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, rows.Err()
}

// Close closes the database connection, releasing any open resources.
func (db *DB) Close() error {
	return db.sql.Close()
}
