// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cutfmt

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

// A Summary is one row of the gathered cut report for an instance.
type Summary struct {
	Name        string
	NumVertices int
	NumEdges    int
	CutValue    int
	// Skewedness is larger side / vertex count, rounded to 3
	// decimals.
	Skewedness  float64
	SmallerSide int
	LargerSide  int
}

var summaryHeader = []string{
	"name", "num_vertices", "num_edges", "cut_value",
	"skewedness", "smaller_partition_size", "larger_partition_size",
}

// A SummaryWriter writes cut summaries as CSV. The header row is
// written before the first record.
type SummaryWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewSummaryWriter constructs a SummaryWriter writing to w.
func NewSummaryWriter(w io.Writer) *SummaryWriter {
	return &SummaryWriter{w: csv.NewWriter(w)}
}

// Write writes one summary row.
func (w *SummaryWriter) Write(s Summary) error {
	if !w.wroteHeader {
		if err := w.w.Write(summaryHeader); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	return w.w.Write([]string{
		s.Name,
		strconv.Itoa(s.NumVertices),
		strconv.Itoa(s.NumEdges),
		strconv.Itoa(s.CutValue),
		strconv.FormatFloat(s.Skewedness, 'g', -1, 64),
		strconv.Itoa(s.SmallerSide),
		strconv.Itoa(s.LargerSide),
	})
}

// Flush flushes buffered rows to the underlying writer and reports
// any write error.
func (w *SummaryWriter) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// Round3 rounds x to 3 decimal places, the precision the skewedness
// column is reported at.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
