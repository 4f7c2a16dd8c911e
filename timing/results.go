// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package timing

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// Record is the measurement of one finished action.
type Record struct {
	Label  string
	Start  int64 // milliseconds
	Finish int64 // milliseconds
}

// Duration returns Finish minus Start in milliseconds. It is always derived
// and may be negative under wall-clock skew.
func (r Record) Duration() int64 {
	return r.Finish - r.Start
}

// String formats r as a single result line without the trailing newline.
func (r Record) String() string {
	return fmt.Sprintf("%s %d %d %d", r.Label, r.Start, r.Finish, r.Duration())
}

// ValidLabel reports whether label can be written to a result log: it must be
// non-empty valid UTF-8 containing no whitespace.
func ValidLabel(label string) bool {
	return label != "" && utf8.ValidString(label) && strings.IndexFunc(label, unicode.IsSpace) < 0
}

// ResultSet is an ordered collection of records keyed by label.
//
// Records are kept in insertion order. Putting a label that already exists
// replaces its record and moves it to the end; the relative order of other
// labels does not change.
type ResultSet struct {
	records []Record
	index   map[string]int // label -> position in records
}

// NewResultSet returns an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{index: make(map[string]int)}
}

// Put records the finished timer t under label.
//
// It fails with *NotFinishedError if t has not ended and with
// *InvalidLabelError if label is not valid; rs is unchanged in both cases.
func (rs *ResultSet) Put(label string, t *Timer) error {
	r, err := t.Record(label)
	if err != nil {
		return err
	}
	return rs.Add(r)
}

// Add inserts an already built record, following the same ordering rules as Put.
func (rs *ResultSet) Add(r Record) error {
	if !ValidLabel(r.Label) {
		return &InvalidLabelError{Label: r.Label}
	}
	if i, ok := rs.index[r.Label]; ok {
		rs.records = slices.Delete(rs.records, i, i+1)
		for _, moved := range rs.records[i:] {
			rs.index[moved.Label]--
		}
	}
	rs.index[r.Label] = len(rs.records)
	rs.records = append(rs.records, r)
	return nil
}

// Get returns the record stored under label.
func (rs *ResultSet) Get(label string) (Record, bool) {
	i, ok := rs.index[label]
	if !ok {
		return Record{}, false
	}
	return rs.records[i], true
}

// Len returns the number of distinct labels.
func (rs *ResultSet) Len() int {
	return len(rs.records)
}

// Entries returns the records in insertion order. The sequence can be ranged
// over any number of times; it must not be used while rs is being modified.
func (rs *ResultSet) Entries() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range rs.records {
			if !yield(r) {
				return
			}
		}
	}
}

// WriteTo writes one "<label> <start> <finish> <duration>\n" line per record
// to w in insertion order. It implements io.WriterTo.
func (rs *ResultSet) WriteTo(w io.Writer) (int64, error) {
	// bufio.Writer stops writing after the first error and reports it from Flush.
	bw := bufio.NewWriter(w)
	var total int64
	for r := range rs.Entries() {
		n, _ := fmt.Fprintln(bw, r.String())
		total += int64(n)
	}
	if err := bw.Flush(); err != nil {
		return total - int64(bw.Buffered()), err
	}
	return total, nil
}

var _ io.WriterTo = (*ResultSet)(nil)
