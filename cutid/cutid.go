// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cutid parses composite algorithm identifiers.
//
// Cutoff sweeps encode the allotted budget percentage in the
// algorithm identifier itself, as in "cxyval_cutoff_30". This package
// splits such identifiers into their base name and budget exactly
// once, so that no other component has to re-derive the split from
// the raw string.
package cutid

import (
	"fmt"
	"strconv"
	"strings"
)

// budgetWindow is the number of trailing characters searched for the
// underscore that starts a budget suffix. An underscore earlier in
// the identifier is part of the base name, not a budget.
const budgetWindow = 5

// A Budget is an optional cutoff percentage. The zero Budget means
// the identifier carried no budget suffix.
type Budget struct {
	Percent int
	Valid   bool // Valid is true if the identifier carried a budget
}

// An ID is an algorithm identifier decomposed into its base name and
// optional cutoff budget.
type ID struct {
	Base   string
	Budget Budget
}

// String reconstructs the composite identifier form.
func (id ID) String() string {
	if !id.Budget.Valid {
		return id.Base
	}
	return id.Base + "_" + strconv.Itoa(id.Budget.Percent)
}

// Parse decomposes the identifier s. The budget suffix, if any,
// begins at the last underscore that occurs within the final
// budgetWindow characters of s; everything after that underscore must
// parse as a non-negative integer. Identifiers with no underscore in
// that window are budget-less with Base equal to the whole
// identifier.
//
// Parse is total and deterministic: every identifier either
// decomposes the same way on every call or fails the same way on
// every call. A suffix that looks like a budget but does not parse as
// one is an error, never silently coerced.
func Parse(s string) (ID, error) {
	window := s
	base := 0
	if len(s) > budgetWindow {
		base = len(s) - budgetWindow
		window = s[base:]
	}
	i := strings.LastIndexByte(window, '_')
	if i < 0 {
		return ID{Base: s}, nil
	}
	i += base
	pct, err := strconv.ParseUint(s[i+1:], 10, 32)
	if err != nil {
		return ID{}, fmt.Errorf("malformed algorithm identifier %q: budget suffix %q is not a non-negative integer", s, s[i+1:])
	}
	return ID{Base: s[:i], Budget: Budget{Percent: int(pct), Valid: true}}, nil
}
