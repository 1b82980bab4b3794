// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cutfmt

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ReadInstance reads a ".hgr" hypergraph description. Only the first
// line, "<num_edges> <num_vertices>", is consumed; the remainder of
// the file lists the edges and is not needed for reporting. Size is
// set to the vertex count.
func ReadInstance(r io.Reader, name string) (Instance, error) {
	s := bufio.NewScanner(r)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return Instance{}, err
		}
		return Instance{}, &SyntaxError{name, 1, "missing header line"}
	}
	fields := strings.Fields(s.Text())
	if len(fields) != 2 {
		return Instance{}, &SyntaxError{name, 1, "header has " + strconv.Itoa(len(fields)) + " fields, want 2"}
	}
	edges, err1 := strconv.Atoi(fields[0])
	vertices, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return Instance{}, &SyntaxError{name, 1, "header fields are not integers"}
	}
	return Instance{Name: name, NumVertices: vertices, NumEdges: edges, Size: vertices}, nil
}

// A Cut is a two-way partition of an instance's vertices together
// with the value of the cut between the sides.
type Cut struct {
	Value int
	Sides [2][]int
}

// ReadCut reads a ".cut" partition description: the first line ends
// in the integer cut value, and the second and third lines each begin
// with two ignorable tokens followed by the vertex ids of one
// partition side.
func ReadCut(r io.Reader, fileName string) (*Cut, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	line := 0
	next := func() ([]string, error) {
		if !s.Scan() {
			if err := s.Err(); err != nil {
				return nil, err
			}
			return nil, &SyntaxError{fileName, line + 1, "unexpected end of file"}
		}
		line++
		return strings.Fields(s.Text()), nil
	}

	fields, err := next()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, &SyntaxError{fileName, line, "missing cut value"}
	}
	val, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return nil, &SyntaxError{fileName, line, "cut value " + strconv.Quote(fields[len(fields)-1]) + " is not an integer"}
	}

	cut := &Cut{Value: val}
	for side := 0; side < 2; side++ {
		fields, err := next()
		if err != nil {
			return nil, err
		}
		if len(fields) < 2 {
			return nil, &SyntaxError{fileName, line, "partition line has fewer than 2 leading tokens"}
		}
		ids := make([]int, 0, len(fields)-2)
		for _, f := range fields[2:] {
			id, err := strconv.Atoi(f)
			if err != nil {
				return nil, &SyntaxError{fileName, line, "vertex id " + strconv.Quote(f) + " is not an integer"}
			}
			ids = append(ids, id)
		}
		cut.Sides[side] = ids
	}
	return cut, nil
}
