// Copyright 2020 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cutfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Reader reads the flat per-instance cutoff sweep format:
//
//	<name>,<budget_1>,<budget_2>,...
//	<algorithm>,<factor_1>,<factor_2>,...
//	...
//
// Each data row is positionally aligned with the budget header and
// yields one Record per budget column.
//
// Its API is modeled on bufio.Scanner: call Scan to advance to the
// next record, Record to retrieve it, and Err after Scan returns
// false to check for errors.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int

	instance string
	budgets  []int

	// q is the queue of records produced from the current data
	// row; qPos indexes the record most recently returned.
	q    []Record
	qPos int

	err error
}

// NewReader constructs a reader for the flat cutoff sweep format.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	return &Reader{s: bufio.NewScanner(r), fileName: fileName, qPos: -1}
}

func (r *Reader) syntaxErrorf(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, fmt.Sprintf(format, args...)}
}

// readHeader consumes the budget header line.
func (r *Reader) readHeader() error {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return err
		}
		r.line++
		return r.syntaxErrorf("missing budget header")
	}
	r.line++
	fields := strings.Split(strings.TrimSpace(r.s.Text()), ",")
	if len(fields) < 2 {
		return r.syntaxErrorf("budget header has %d fields, want at least 2", len(fields))
	}
	r.instance = fields[0]
	for _, f := range fields[1:] {
		b, err := strconv.Atoi(f)
		if err != nil || b < 0 {
			return r.syntaxErrorf("budget %q is not a non-negative integer", f)
		}
		r.budgets = append(r.budgets, b)
	}
	return nil
}

// Scan advances the reader to the next record and reports whether one
// was read. Once Scan returns false, it returns false forever; the
// caller should then check Err.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if r.budgets == nil {
		if r.err = r.readHeader(); r.err != nil {
			return false
		}
	}
	if r.qPos+1 < len(r.q) {
		r.qPos++
		return true
	}

	// Refill the queue from the next data row.
	for r.s.Scan() {
		r.line++
		text := strings.TrimSpace(r.s.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) != len(r.budgets)+1 {
			r.err = r.syntaxErrorf("row has %d fields, want %d to match the budget header", len(fields), len(r.budgets)+1)
			return false
		}
		algo := fields[0]
		r.q, r.qPos = r.q[:0], 0
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				r.err = r.syntaxErrorf("factor %q is not a number", f)
				return false
			}
			r.q = append(r.q, Record{
				Instance:    r.instance,
				Algo:        algo,
				Budget:      r.budgets[i],
				BudgetValid: true,
				Cut:         ValueOf(v),
			})
		}
		return true
	}
	r.err = r.s.Err()
	return false
}

// Record returns the record read by the last call to Scan.
func (r *Reader) Record() Record {
	return r.q[r.qPos]
}

// Instance returns the instance name from the header line. It is
// valid after the first successful call to Scan.
func (r *Reader) Instance() string {
	return r.instance
}

// Budgets returns the budget columns from the header line. It is
// valid after the first successful call to Scan. The caller must not
// modify the returned slice.
func (r *Reader) Budgets() []int {
	return r.budgets
}

// Err returns the error, if any, that stopped Scan.
func (r *Reader) Err() error {
	return r.err
}
