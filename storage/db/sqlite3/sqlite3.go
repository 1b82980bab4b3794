// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for the db package.
// It must be imported (for side effects) by any binary or test that
// opens a sqlite3 database.
package sqlite3

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hypercut/perf/storage/db"
)

func init() {
	db.RegisterOpenHook("sqlite3", func(d *sql.DB) error {
		// A second connection to a ":memory:" DSN opens a
		// different empty database, and concurrent readers on a
		// file DSN can hit SQLITE_BUSY.
		d.SetMaxOpenConns(1)
		return nil
	})
}
