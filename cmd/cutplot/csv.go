// Copyright 2021 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/aclements/go-gg/table"

	"github.com/hypercut/perf/cutfmt"
	"github.com/hypercut/perf/cutseries"
)

// writeCSV writes the per-instance pivot of mean discovery times:
// one row per instance with a "<algo>_time" column per algorithm,
// ascending by size. Instances that are missing records for any
// algorithm are left out, so every row is complete.
func writeCSV(path string, batch *cutseries.Batch, index *cutseries.Index, metas []cutfmt.Instance) error {
	algos := index.Algos()

	var names []string
	var sizes, vertices []int
	times := make(map[string][]float64)
	for _, m := range metas {
		means := make([]float64, 0, len(algos))
		complete := true
		for _, algo := range algos {
			mean, ok := batch.AvgElapsed(algo, m.Name)
			if !ok {
				complete = false
				break
			}
			means = append(means, mean)
		}
		if !complete {
			continue
		}
		names = append(names, m.Name)
		sizes = append(sizes, m.Size)
		vertices = append(vertices, m.NumVertices)
		for i, algo := range algos {
			times[algo] = append(times[algo], means[i])
		}
	}

	header := []string{"id", "size", "num_vertices"}
	for _, algo := range algos {
		header = append(header, algo+"_time")
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if len(names) == 0 {
		w.Flush()
		return w.Error()
	}

	tab := new(table.Builder).Add("id", names).Add("size", sizes).Add("num_vertices", vertices)
	for _, algo := range algos {
		tab.Add(algo+"_time", times[algo])
	}
	sorted := table.SortBy(tab.Done(), "size")
	t := sorted.Table(sorted.Tables()[0])

	cols := make([]table.Slice, len(header))
	for i, name := range header {
		cols[i] = t.MustColumn(name)
	}
	row := make([]string, len(header))
	for i := 0; i < t.Len(); i++ {
		for j, col := range cols {
			switch c := col.(type) {
			case []string:
				row[j] = c[i]
			case []int:
				row[j] = strconv.Itoa(c[i])
			case []float64:
				row[j] = strconv.FormatFloat(c[i], 'g', -1, 64)
			default:
				return fmt.Errorf("column %s has unsupported type %T", header[j], col)
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
