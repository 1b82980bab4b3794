// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cutseries turns batches of partitioning run records into
// aligned, plot-ready series: discovery-time curves grouped by
// instance size and suboptimality curves grouped by cutoff budget.
package cutseries

import (
	"github.com/aclements/go-moremath/stats"

	"github.com/hypercut/perf/cutfmt"
	"github.com/hypercut/perf/cutid"
)

// A Batch is a read-only, in-memory view over one complete set of run
// records and instance metadata, independent of the physical storage
// they were loaded from. Composite algorithm identifiers are
// decomposed once at construction, so records inside a Batch always
// carry an explicit base name and budget.
type Batch struct {
	recs  []cutfmt.Record
	metas map[string]cutfmt.Instance

	// algos and instances preserve first-appearance order for
	// reproducible enumeration.
	algos     []string
	instances []string
}

// NewBatch builds a Batch from a complete set of records and instance
// metadata. Records whose Algo is a composite identifier (and whose
// budget is not already set by the source format) are rewritten to
// their (base, budget) decomposition; a malformed identifier is an
// error naming the offender.
func NewBatch(recs []cutfmt.Record, metas []cutfmt.Instance) (*Batch, error) {
	b := &Batch{
		recs:  make([]cutfmt.Record, 0, len(recs)),
		metas: make(map[string]cutfmt.Instance, len(metas)),
	}
	for _, m := range metas {
		if _, ok := b.metas[m.Name]; !ok {
			b.instances = append(b.instances, m.Name)
		}
		b.metas[m.Name] = m
	}
	seenAlgo := make(map[string]bool)
	seenInst := make(map[string]bool)
	for _, m := range metas {
		seenInst[m.Name] = true
	}
	for _, r := range recs {
		if !r.BudgetValid {
			id, err := cutid.Parse(r.Algo)
			if err != nil {
				return nil, err
			}
			r.Algo = id.Base
			r.Budget, r.BudgetValid = id.Budget.Percent, id.Budget.Valid
		}
		if !seenAlgo[r.Algo] {
			seenAlgo[r.Algo] = true
			b.algos = append(b.algos, r.Algo)
		}
		if !seenInst[r.Instance] {
			seenInst[r.Instance] = true
			b.instances = append(b.instances, r.Instance)
		}
		b.recs = append(b.recs, r)
	}
	return b, nil
}

// Records returns every record in the batch. The caller must not
// modify the returned slice.
func (b *Batch) Records() []cutfmt.Record {
	return b.recs
}

// Meta returns the metadata for the named instance, if known.
func (b *Batch) Meta(instance string) (cutfmt.Instance, bool) {
	m, ok := b.metas[instance]
	return m, ok
}

// ForInstance returns the records for one instance, in batch order.
func (b *Batch) ForInstance(instance string) []cutfmt.Record {
	var out []cutfmt.Record
	for _, r := range b.recs {
		if r.Instance == instance {
			out = append(out, r)
		}
	}
	return out
}

// ForAlgo returns the records for one algorithm base name, in batch
// order.
func (b *Batch) ForAlgo(algo string) []cutfmt.Record {
	var out []cutfmt.Record
	for _, r := range b.recs {
		if r.Algo == algo {
			out = append(out, r)
		}
	}
	return out
}

// AvgElapsed returns the arithmetic mean discovery time across every
// trial of algo on instance. ok is false if the pair has no records.
func (b *Batch) AvgElapsed(algo, instance string) (mean float64, ok bool) {
	var xs []float64
	for _, r := range b.recs {
		if r.Algo == algo && r.Instance == instance {
			xs = append(xs, r.ElapsedMs)
		}
	}
	if len(xs) == 0 {
		return 0, false
	}
	return stats.Mean(xs), true
}
