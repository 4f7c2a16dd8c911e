// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package timing

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"go.chromium.org/uxperf/errors"
)

// Parse reads records in the format written by ResultSet.WriteTo.
//
// Blank lines are skipped. Every other line must hold exactly a label and
// three base-10 integers, and the last integer must equal finish minus start.
// Labels must satisfy ValidLabel.
func Parse(r io.Reader) ([]Record, error) {
	var recs []Record
	sc := bufio.NewScanner(r)
	// Labels have no length limit.
	sc.Buffer(make([]byte, 0, 64*1024), math.MaxInt32)
	for ln := 1; sc.Scan(); ln++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 4 {
			return nil, errors.Errorf("line %d: got %d fields; want 4", ln, len(fields))
		}
		if !ValidLabel(fields[0]) {
			return nil, errors.Errorf("line %d: invalid label %q", ln, fields[0])
		}
		var nums [3]int64
		for i, f := range fields[1:] {
			n, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: bad integer %q", ln, f)
			}
			nums[i] = n
		}
		rec := Record{Label: fields[0], Start: nums[0], Finish: nums[1]}
		if d := rec.Duration(); d != nums[2] {
			return nil, errors.Errorf("line %d: duration %d does not match finish-start %d", ln, nums[2], d)
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read results")
	}
	return recs, nil
}

// ReadFile parses the result log at path. Open failures are returned as *IOError.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()
	return Parse(f)
}
