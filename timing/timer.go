// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package timing measures named workload actions and persists the results.
//
// A driver creates one Timer per action, calls Start and End around the
// action, and records the finished timer in a ResultSet under a label:
//
//	t := timing.NewTimer(clk)
//	t.Start()
//	swipeLeft()
//	t.End()
//	rs.Put("gesture_swipe_left", t)
//
// The ResultSet is finally written with WriteFile, one
// "<label> <start> <finish> <duration>" line per action.
//
// Timers and result sets are owned by a single goroutine and are not safe
// for concurrent use.
package timing

// State is the lifecycle state of a Timer.
type State int

const (
	// Unstarted is the state of a new Timer.
	Unstarted State = iota
	// Started is the state after Start.
	Started
	// Finished is the terminal state after End.
	Finished
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Started:
		return "started"
	case Finished:
		return "finished"
	default:
		return "invalid"
	}
}

// Timer measures a single action. A Timer cannot be restarted; create a new
// one for every action.
type Timer struct {
	clk    Clock
	state  State
	start  int64
	finish int64
}

// NewTimer returns an unstarted Timer reading timestamps from clk.
func NewTimer(clk Clock) *Timer {
	return &Timer{clk: clk}
}

// Start records the start timestamp. It fails with *InvalidStateError unless
// the timer is unstarted; an earlier start timestamp is never overwritten.
func (t *Timer) Start() error {
	if t.state != Unstarted {
		return &InvalidStateError{Op: "start", State: t.state}
	}
	t.start = t.clk.NowMillis()
	t.state = Started
	return nil
}

// End records the finish timestamp. It fails with *InvalidStateError unless
// the timer is started.
func (t *Timer) End() error {
	if t.state != Started {
		return &InvalidStateError{Op: "end", State: t.state}
	}
	t.finish = t.clk.NowMillis()
	t.state = Finished
	return nil
}

// Duration returns finish minus start in milliseconds. It fails with
// *InvalidStateError unless the timer is finished. The result is negative
// if a wall clock went backwards during the action.
func (t *Timer) Duration() (int64, error) {
	if t.state != Finished {
		return 0, &InvalidStateError{Op: "duration", State: t.state}
	}
	return t.finish - t.start, nil
}

// State returns the current state.
func (t *Timer) State() State { return t.state }

// StartTime returns the start timestamp, or 0 if unstarted.
func (t *Timer) StartTime() int64 { return t.start }

// FinishTime returns the finish timestamp, or 0 if not finished.
func (t *Timer) FinishTime() int64 { return t.finish }

// Record returns the measurement of a finished timer under label.
// It fails with *NotFinishedError if the timer has not ended.
func (t *Timer) Record(label string) (Record, error) {
	if t.state != Finished {
		return Record{}, &NotFinishedError{Label: label, State: t.state}
	}
	return Record{Label: label, Start: t.start, Finish: t.finish}, nil
}
