// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cutseries

import (
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/hypercut/perf/cutfmt"
)

// A Point is one (x, y) sample of a series.
type Point struct {
	X, Y float64
}

// A Series is one algorithm's ordered curve, x strictly ascending.
type Series struct {
	Algo   string
	Points []Point
}

// MarkerOnly reports whether the series degenerates to a single point
// and should be drawn as an isolated marker rather than a connected
// line.
func (s Series) MarkerOnly() bool {
	return len(s.Points) == 1
}

// A Metric selects which measured field becomes the y value of a
// series.
type Metric int

const (
	// Elapsed selects wall-clock discovery time in milliseconds.
	Elapsed Metric = iota
	// CutValue selects the quality value: a cut value or a
	// precomputed suboptimality ratio, depending on the source.
	CutValue
)

// A GroupBy selects which key becomes the x value of a series.
type GroupBy int

const (
	// BySize groups points by instance size. Records whose
	// instance has no metadata are skipped.
	BySize GroupBy = iota
	// ByBudget groups points by cutoff budget. Budget-less
	// records are skipped.
	ByBudget
)

// A Builder constructs per-algorithm series from a Batch.
type Builder struct {
	batch *Batch
}

// NewBuilder returns a Builder over b.
func NewBuilder(b *Batch) *Builder {
	return &Builder{batch: b}
}

// Build produces one series per algorithm present in the batch.
// Records are grouped by algorithm and then by the x key; multiple
// records sharing an x key reduce to their arithmetic mean. Points
// are sorted ascending by x. Timed-out records never contribute, and
// an algorithm with zero surviving points is omitted from the result
// rather than mapped to an empty series.
//
// keep, if non-nil, excludes records for which it returns false
// before any grouping happens.
func (b *Builder) Build(m Metric, g GroupBy, keep func(cutfmt.Record) bool) map[string]Series {
	groups := make(map[string]map[float64][]float64)
	for _, r := range b.batch.recs {
		if keep != nil && !keep(r) {
			continue
		}
		if r.Cut.TimedOut {
			continue
		}
		var x float64
		switch g {
		case BySize:
			meta, ok := b.batch.metas[r.Instance]
			if !ok {
				continue
			}
			x = float64(meta.Size)
		case ByBudget:
			if !r.BudgetValid {
				continue
			}
			x = float64(r.Budget)
		}
		var y float64
		switch m {
		case Elapsed:
			y = r.ElapsedMs
		case CutValue:
			y = r.Cut.Raw
		}
		xs := groups[r.Algo]
		if xs == nil {
			xs = make(map[float64][]float64)
			groups[r.Algo] = xs
		}
		xs[x] = append(xs[x], y)
	}

	out := make(map[string]Series)
	for _, algo := range b.batch.algos {
		xs := groups[algo]
		if xs == nil {
			continue
		}
		var pts []Point
		for x, ys := range xs {
			y := stats.Mean(ys)
			if y >= cutfmt.Sentinel {
				continue
			}
			pts = append(pts, Point{X: x, Y: y})
		}
		if len(pts) == 0 {
			continue
		}
		sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
		out[algo] = Series{Algo: algo, Points: pts}
	}
	return out
}

// SortedAlgos returns the keys of a series mapping in lexical order,
// for reproducible legends and output files.
func SortedAlgos(m map[string]Series) []string {
	algos := make([]string, 0, len(m))
	for a := range m {
		algos = append(algos, a)
	}
	sort.Strings(algos)
	return algos
}
