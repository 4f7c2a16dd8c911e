// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package uxperf_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"github.com/google/go-cmp/cmp"

	"go.chromium.org/uxperf/errors"
	"go.chromium.org/uxperf/internal/logging"
	"go.chromium.org/uxperf/internal/logging/loggingtest"
	"go.chromium.org/uxperf/testutil"
	"go.chromium.org/uxperf/timing"
	"go.chromium.org/uxperf/uxperf"
)

// newSession returns a session whose clock starts at 1000 ms.
func newSession(t *testing.T, cfg uxperf.Config, markers uxperf.MarkerSink) (*uxperf.Session, *fakeclock.FakeClock) {
	t.Helper()
	fc := fakeclock.NewFakeClock(time.UnixMilli(1000))
	cfg.Clock = timing.NewMonotonicClock(fc)
	if cfg.OutputPath == "" {
		cfg.OutputPath = filepath.Join(testutil.TempDir(t), "results.log")
	}
	s, err := uxperf.NewSession(cfg, markers)
	if err != nil {
		t.Fatal("NewSession failed: ", err)
	}
	return s, fc
}

// sleep returns an action that advances fc by d.
func sleep(fc *fakeclock.FakeClock, d time.Duration) func(context.Context) error {
	return func(context.Context) error {
		fc.Increment(d)
		return nil
	}
}

func TestSessionRunAndFlush(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), "gmail_instrumentation.log")
	s, fc := newSession(t, uxperf.Config{LabelPrefix: "gesture", OutputPath: path}, nil)
	ctx := context.Background()

	if err := s.Run(ctx, "swipe_left", sleep(fc, 240*time.Millisecond)); err != nil {
		t.Fatal("Run failed: ", err)
	}
	fc.Increment(10 * time.Millisecond)
	if err := s.Run(ctx, "pinch_in", sleep(fc, 30*time.Millisecond)); err != nil {
		t.Fatal("Run failed: ", err)
	}
	if err := s.Flush(ctx); err != nil {
		t.Fatal("Flush failed: ", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	const want = "gesture_swipe_left 1000 1240 240\ngesture_pinch_in 1250 1280 30\n"
	if got := string(b); got != want {
		t.Errorf("Flush wrote %q; want %q", got, want)
	}
}

func TestSessionRunFailureDiscards(t *testing.T) {
	s, fc := newSession(t, uxperf.Config{}, nil)
	logger := loggingtest.NewLogger(t, logging.LevelInfo)
	ctx := logging.AttachLogger(context.Background(), logger)

	if err := s.Run(ctx, "open_document", sleep(fc, time.Second)); err != nil {
		t.Fatal("Run failed: ", err)
	}
	errNoView := errors.New("viewPager not found")
	err := s.Run(ctx, "search", func(context.Context) error { return errNoView })
	if !errors.Is(err, errNoView) {
		t.Fatalf("Run returned %v; want wrapped %v", err, errNoView)
	}

	want := []timing.Record{{Label: "open_document", Start: 1000, Finish: 2000}}
	if diff := cmp.Diff(slices.Collect(s.Results().Entries()), want); diff != "" {
		t.Errorf("Results mismatch (-got +want):\n%s", diff)
	}
	wantLogs := []string{"Discarding measurement search: viewPager not found"}
	if diff := cmp.Diff(logger.Logs(), wantLogs); diff != "" {
		t.Errorf("Logs mismatch (-got +want):\n%s", diff)
	}
}

func TestSessionDuplicateLabel(t *testing.T) {
	s, fc := newSession(t, uxperf.Config{}, nil)
	ctx := context.Background()
	for _, a := range []struct {
		name string
		d    time.Duration
	}{
		{"a", 250 * time.Millisecond},
		{"b", 20 * time.Millisecond},
		{"a", 100 * time.Millisecond},
	} {
		if err := s.Run(ctx, a.name, sleep(fc, a.d)); err != nil {
			t.Fatal("Run failed: ", err)
		}
	}

	want := []timing.Record{
		{Label: "b", Start: 1250, Finish: 1270},
		{Label: "a", Start: 1270, Finish: 1370},
	}
	if diff := cmp.Diff(slices.Collect(s.Results().Entries()), want); diff != "" {
		t.Errorf("Results mismatch (-got +want):\n%s", diff)
	}
}

func TestSessionFlushRetry(t *testing.T) {
	td := testutil.TempDir(t)
	s, fc := newSession(t, uxperf.Config{OutputPath: filepath.Join(td, "missing", "results.log")}, nil)
	ctx := context.Background()
	if err := s.Run(ctx, "a", sleep(fc, 5*time.Millisecond)); err != nil {
		t.Fatal("Run failed: ", err)
	}

	err := s.Flush(ctx)
	var ioe *timing.IOError
	if !errors.As(err, &ioe) {
		t.Fatalf("Flush returned %v; want *timing.IOError", err)
	}
	if n := s.Results().Len(); n != 1 {
		t.Errorf("Results().Len() = %d after failed flush; want 1", n)
	}

	if err := os.Mkdir(filepath.Join(td, "missing"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := s.Flush(ctx); err != nil {
		t.Fatal("Flush retry failed: ", err)
	}
	recs, err := timing.ReadFile(filepath.Join(td, "missing", "results.log"))
	if err != nil {
		t.Fatal("ReadFile failed: ", err)
	}
	if diff := cmp.Diff(recs, []timing.Record{{Label: "a", Start: 1000, Finish: 1005}}); diff != "" {
		t.Errorf("Written records mismatch (-got +want):\n%s", diff)
	}
}

func TestActionLoggerOutOfOrder(t *testing.T) {
	s, _ := newSession(t, uxperf.Config{}, nil)
	ctx := context.Background()
	l := s.NewActionLogger("applaunch")

	var ise *timing.InvalidStateError
	if err := l.Stop(ctx); !errors.As(err, &ise) {
		t.Errorf("Stop before Start returned %v; want *timing.InvalidStateError", err)
	}
	if err := l.Start(ctx); err != nil {
		t.Fatal("Start failed: ", err)
	}
	if err := l.Start(ctx); !errors.As(err, &ise) {
		t.Errorf("Second Start returned %v; want *timing.InvalidStateError", err)
	}
	if n := s.Results().Len(); n != 0 {
		t.Errorf("Results().Len() = %d for open action; want 0", n)
	}
}

func TestActionLoggerInvalidName(t *testing.T) {
	s, _ := newSession(t, uxperf.Config{}, nil)
	ctx := context.Background()
	l := s.NewActionLogger("two words")

	var ile *timing.InvalidLabelError
	if err := l.Start(ctx); !errors.As(err, &ile) {
		t.Fatalf("Start returned %v; want *timing.InvalidLabelError", err)
	}
	// The timer was never started.
	var ise *timing.InvalidStateError
	if err := l.Stop(ctx); !errors.As(err, &ise) || ise.State != timing.Unstarted {
		t.Errorf("Stop returned %v; want *timing.InvalidStateError in state unstarted", err)
	}
}

func TestSessionRunInvalidNameSkipsAction(t *testing.T) {
	s, _ := newSession(t, uxperf.Config{}, nil)
	ran := false
	err := s.Run(context.Background(), "two words", func(context.Context) error {
		ran = true
		return nil
	})
	var ile *timing.InvalidLabelError
	if !errors.As(err, &ile) {
		t.Errorf("Run returned %v; want *timing.InvalidLabelError", err)
	}
	if ran {
		t.Error("Action ran despite invalid name")
	}
	if n := s.Results().Len(); n != 0 {
		t.Errorf("Results().Len() = %d; want 0", n)
	}
}

func TestSessionLabel(t *testing.T) {
	for _, tc := range []struct {
		prefix, name, want string
	}{
		{"", "search_string0", "search_string0"},
		{"gesture", "swipe_left", "gesture_swipe_left"},
	} {
		s, _ := newSession(t, uxperf.Config{LabelPrefix: tc.prefix}, nil)
		if got := s.Label(tc.name); got != tc.want {
			t.Errorf("Label(%q) with prefix %q = %q; want %q", tc.name, tc.prefix, got, tc.want)
		}
		if got := s.NewActionLogger(tc.name).Label(); got != tc.want {
			t.Errorf("ActionLogger.Label() = %q; want %q", got, tc.want)
		}
	}
}

func TestNewSessionInvalidConfig(t *testing.T) {
	for _, cfg := range []uxperf.Config{
		{},
		{OutputPath: "/tmp/x.log", LabelPrefix: "bad prefix"},
	} {
		if _, err := uxperf.NewSession(cfg, nil); err == nil {
			t.Errorf("NewSession(%+v) succeeded; want error", cfg)
		}
	}
}
