// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cutfmt defines the run record model for partitioning
// experiments and reads and writes the flat file formats that carry
// them: per-instance "<name>.data.txt" cutoff sweeps, ".hgr"
// hypergraph descriptions, and ".cut" partition descriptions.
package cutfmt

import "fmt"

// Sentinel is the cut value (or suboptimality factor) recorded for
// runs that did not finish within their allotted budget. It is a
// marker, not a measurement; values at or above it must never reach a
// plotted series.
const Sentinel = 1e10

// A Value is a single measured quality value: either a cut value or a
// precomputed suboptimality ratio, depending on the source.
type Value struct {
	Raw float64

	// TimedOut reports that the run did not converge within its
	// budget and Raw is the sentinel marker rather than a
	// measurement.
	TimedOut bool
}

// ValueOf classifies a raw value read from a store. This is the only
// place the sentinel threshold is compared.
func ValueOf(raw float64) Value {
	return Value{Raw: raw, TimedOut: raw >= Sentinel}
}

// A Record is one measured execution of an algorithm against an
// instance, optionally at a specific cutoff budget.
type Record struct {
	Instance string
	Algo     string

	// BudgetValid reports whether this run belongs to a cutoff
	// sweep; Budget is its percentage if so.
	Budget      int
	BudgetValid bool

	// ElapsedMs is the wall-clock discovery time in milliseconds.
	ElapsedMs float64

	// Cut is the partition quality observed by the run.
	Cut Value
}

// An Instance describes a hypergraph being partitioned. Size is an
// algorithm-agnostic scale measure used as the x-axis for
// discovery-time curves.
type Instance struct {
	Name        string
	NumVertices int
	NumEdges    int
	Size        int
}

// A SyntaxError represents a malformed row in an input file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}
