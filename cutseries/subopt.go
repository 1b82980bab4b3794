// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cutseries

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/hypercut/perf/cutfmt"
)

// ErrNoBaseline reports that an instance has no convergent records,
// so no suboptimality comparison is possible. Callers skip the
// instance rather than abort the batch.
var ErrNoBaseline = errors.New("no convergent records for instance")

// Baseline returns the best (minimum) cut value observed for the
// instance across all algorithms and budgets in the batch, excluding
// timed-out runs.
//
// The baseline is only the best value any algorithm achieved in this
// batch, not the true optimal cut. It is recomputed from the full
// batch on every call and never persisted.
func Baseline(b *Batch, instance string) (float64, error) {
	best, found := 0.0, false
	for _, r := range b.recs {
		if r.Instance != instance || r.Cut.TimedOut {
			continue
		}
		if !found || r.Cut.Raw < best {
			best, found = r.Cut.Raw, true
		}
	}
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrNoBaseline, instance)
	}
	return best, nil
}

// FactorCurve returns the suboptimality curve of algo on instance:
// for each budget the algorithm ran at, the ratio of its (mean) cut
// value to the instance baseline, ascending by budget.
//
// Timed-out runs and pairs whose factor is itself at or above the
// sentinel are discarded. The curve is then truncated after the first
// factor that reaches 1.0: once the algorithm ties the best known
// quality, later budgets add no further information. The result is
// independent of the input order of the records.
func FactorCurve(b *Batch, instance, algo string) (Series, error) {
	baseline, err := Baseline(b, instance)
	if err != nil {
		return Series{}, err
	}

	byBudget := make(map[int][]float64)
	for _, r := range b.recs {
		if r.Instance != instance || r.Algo != algo || !r.BudgetValid || r.Cut.TimedOut {
			continue
		}
		byBudget[r.Budget] = append(byBudget[r.Budget], r.Cut.Raw)
	}

	budgets := make([]int, 0, len(byBudget))
	for budget := range byBudget {
		budgets = append(budgets, budget)
	}
	sort.Ints(budgets)

	var pts []Point
	for _, budget := range budgets {
		factor := stats.Mean(byBudget[budget]) / baseline
		if factor >= cutfmt.Sentinel {
			continue
		}
		pts = append(pts, Point{X: float64(budget), Y: factor})
		if factor <= 1.0 {
			break
		}
	}
	return Series{Algo: algo, Points: pts}, nil
}

// ClipDomain computes the common visible x-range of several curves:
// the intersection [max(first x), min(last x)]. ok is false when any
// curve is empty or the intersection is empty; the caller should then
// leave the axes unclipped.
func ClipDomain(series []Series) (lo, hi float64, ok bool) {
	if len(series) == 0 {
		return 0, 0, false
	}
	for i, s := range series {
		if len(s.Points) == 0 {
			return 0, 0, false
		}
		first := s.Points[0].X
		last := s.Points[len(s.Points)-1].X
		if i == 0 || first > lo {
			lo = first
		}
		if i == 0 || last < hi {
			hi = last
		}
	}
	if lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}
