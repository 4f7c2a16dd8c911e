// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package timing

import (
	"fmt"
)

// InvalidStateError is returned when a Timer operation is called out of
// sequence, e.g. End before Start. It always indicates a programming error in
// the driver.
type InvalidStateError struct {
	// Op is the rejected operation: "start", "end" or "duration".
	Op string
	// State is the timer state at the time of the call.
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("timing: cannot %s timer in state %v", e.Op, e.State)
}

// NotFinishedError is returned when a timer that has not ended is recorded.
type NotFinishedError struct {
	Label string
	State State
}

func (e *NotFinishedError) Error() string {
	return fmt.Sprintf("timing: timer for %q is %v, not finished", e.Label, e.State)
}

// InvalidLabelError is returned for labels that would break the
// whitespace-delimited result format.
type InvalidLabelError struct {
	Label string
}

func (e *InvalidLabelError) Error() string {
	return fmt.Sprintf("timing: invalid label %q: must be non-empty without whitespace", e.Label)
}

// IOError is returned when results cannot be persisted or read back.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("timing: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}
