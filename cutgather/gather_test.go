// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cutgather

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hypercut/perf/cutfmt"
)

func TestSummarize(t *testing.T) {
	inst := cutfmt.Instance{Name: "h", NumVertices: 10, NumEdges: 15}

	// Side order must not matter: 3/7 and 7/3 produce identical
	// rows.
	sides := [][2][]int{
		{{1, 2, 3}, {4, 5, 6, 7, 8, 9, 10}},
		{{4, 5, 6, 7, 8, 9, 10}, {1, 2, 3}},
	}
	for _, s := range sides {
		sum, err := Summarize("h", inst, &cutfmt.Cut{Value: 4, Sides: s})
		if err != nil {
			t.Fatalf("Summarize: %v", err)
		}
		if sum.Skewedness != 0.7 {
			t.Errorf("Skewedness = %v, want 0.7", sum.Skewedness)
		}
		if sum.SmallerSide != 3 || sum.LargerSide != 7 {
			t.Errorf("sides = %d/%d, want 3/7", sum.SmallerSide, sum.LargerSide)
		}
	}
}

func TestSummarizeVertexMismatch(t *testing.T) {
	inst := cutfmt.Instance{Name: "h", NumVertices: 11, NumEdges: 15}
	cut := &cutfmt.Cut{Value: 4, Sides: [2][]int{{1, 2, 3}, {4, 5, 6, 7, 8, 9, 10}}}
	if _, err := Summarize("h", inst, cut); err == nil {
		t.Fatal("Summarize accepted mismatched vertex count")
	}
}

func TestGather(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0666); err != nil {
			t.Fatal(err)
		}
	}
	write("h1.hgr", "15 10\n1 2 3\n")
	write("h1.cut", "cut value 4\np 1 1 2 3\np 2 4 5 6 7 8 9 10\n")
	write("h2.hgr", "3 4\n1 2\n")
	write("h2.cut", "cut value 1\np 1 1 2\np 2 3 4\n")
	write("ignored.txt", "not a cut file\n")

	sums, err := Gather(dir)
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(sums) != 2 || sums[0].Name != "h1" || sums[1].Name != "h2" {
		t.Fatalf("Gather = %+v", sums)
	}

	var buf bytes.Buffer
	w := cutfmt.NewSummaryWriter(&buf)
	for _, s := range sums {
		if err := w.Write(s); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := strings.Join([]string{
		"name,num_vertices,num_edges,cut_value,skewedness,smaller_partition_size,larger_partition_size",
		"h1,10,15,4,0.7,3,7",
		"h2,4,3,1,0.5,2,2",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("CSV:\nhave %q\nwant %q", buf.String(), want)
	}
}

func TestGatherAbortsOnMismatch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "h.hgr"), []byte("15 11\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "h.cut"), []byte("cut value 4\np 1 1 2 3\np 2 4 5 6 7 8 9 10\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if _, err := Gather(dir); err == nil {
		t.Fatal("Gather accepted mismatched vertex count")
	}
}
