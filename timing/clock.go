// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package timing

import (
	"time"

	"code.cloudfoundry.org/clock"
)

// Clock provides millisecond timestamps for timers.
type Clock interface {
	// NowMillis returns the current time in milliseconds since the clock's epoch.
	NowMillis() int64
}

// monotonicClock reports wall-clock milliseconds at its anchor plus the
// monotonic time elapsed since then.
type monotonicClock struct {
	clk    clock.Clock
	anchor time.Time
}

// NewMonotonicClock returns a Clock anchored at clk.Now(). Readings never
// move backwards when the system wall clock is adjusted, because time.Since
// uses the monotonic clock reading carried by the anchor.
func NewMonotonicClock(clk clock.Clock) Clock {
	return &monotonicClock{clk: clk, anchor: clk.Now()}
}

func (c *monotonicClock) NowMillis() int64 {
	return c.anchor.UnixMilli() + c.clk.Since(c.anchor).Milliseconds()
}

type wallClock struct {
	clk clock.Clock
}

// NewWallClock returns a Clock reading plain Unix milliseconds from clk.
// A wall-clock adjustment between Start and End can produce a negative
// duration; such durations are recorded as-is.
func NewWallClock(clk clock.Clock) Clock {
	return &wallClock{clk: clk}
}

func (c *wallClock) NowMillis() int64 {
	return c.clk.Now().UnixMilli()
}

// DefaultClock returns the monotonic clock backed by the real system clock.
func DefaultClock() Clock {
	return NewMonotonicClock(clock.NewClock())
}
