// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cutgather collects ".cut"/".hgr" file pairs from a
// directory into summary rows for CSV reporting.
package cutgather

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hypercut/perf/cutfmt"
)

// Gather pairs every "<name>.cut" file under dir with its
// "<name>.hgr" counterpart and summarizes the cut of each pair.
// Results are sorted by instance name.
//
// A pair whose partition sides do not add up to the hypergraph's
// vertex count is corrupt; Gather fails immediately and produces no
// partial output.
func Gather(dir string) ([]cutfmt.Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var sums []cutfmt.Summary
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".cut") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".cut")
		sum, err := gatherPair(dir, name)
		if err != nil {
			return nil, err
		}
		sums = append(sums, sum)
	}
	sort.Slice(sums, func(i, j int) bool { return sums[i].Name < sums[j].Name })
	return sums, nil
}

func gatherPair(dir, name string) (cutfmt.Summary, error) {
	hf, err := os.Open(filepath.Join(dir, name+".hgr"))
	if err != nil {
		return cutfmt.Summary{}, err
	}
	inst, err := cutfmt.ReadInstance(hf, name+".hgr")
	hf.Close()
	if err != nil {
		return cutfmt.Summary{}, err
	}

	cf, err := os.Open(filepath.Join(dir, name+".cut"))
	if err != nil {
		return cutfmt.Summary{}, err
	}
	cut, err := cutfmt.ReadCut(cf, name+".cut")
	cf.Close()
	if err != nil {
		return cutfmt.Summary{}, err
	}

	return Summarize(name, inst, cut)
}

// Summarize builds the summary row for one instance/cut pair. The
// partition sides are normalized so that the smaller side is reported
// first regardless of their order in the cut file.
func Summarize(name string, inst cutfmt.Instance, cut *cutfmt.Cut) (cutfmt.Summary, error) {
	smaller, larger := len(cut.Sides[0]), len(cut.Sides[1])
	if smaller > larger {
		smaller, larger = larger, smaller
	}
	if smaller+larger != inst.NumVertices {
		return cutfmt.Summary{}, fmt.Errorf("%s: partition sides cover %d vertices, hypergraph has %d",
			name, smaller+larger, inst.NumVertices)
	}
	return cutfmt.Summary{
		Name:        name,
		NumVertices: inst.NumVertices,
		NumEdges:    inst.NumEdges,
		CutValue:    cut.Value,
		Skewedness:  cutfmt.Round3(float64(larger) / float64(inst.NumVertices)),
		SmallerSide: smaller,
		LargerSide:  larger,
	}, nil
}
