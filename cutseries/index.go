// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cutseries

import "sort"

// An Index enumerates the distinct keys present in a Batch: algorithm
// base names, instance names, and cutoff budgets.
type Index struct {
	algos     []string
	instances []string
	budgets   []int
}

// NewIndex derives the key index of a Batch.
func NewIndex(b *Batch) *Index {
	ix := &Index{
		algos:     b.algos,
		instances: b.instances,
	}
	seen := make(map[int]bool)
	for _, r := range b.recs {
		if r.BudgetValid && !seen[r.Budget] {
			seen[r.Budget] = true
			ix.budgets = append(ix.budgets, r.Budget)
		}
	}
	sort.Ints(ix.budgets)
	return ix
}

// Algos returns the distinct algorithm base names in order of first
// appearance in the batch.
func (ix *Index) Algos() []string {
	return ix.algos
}

// Instances returns the distinct instance names in order of first
// appearance in the batch.
func (ix *Index) Instances() []string {
	return ix.instances
}

// Budgets returns the distinct cutoff budgets in ascending order.
// Budget-less records contribute nothing here.
func (ix *Index) Budgets() []int {
	return ix.budgets
}
