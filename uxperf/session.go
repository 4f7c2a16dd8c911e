// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package uxperf lets workload drivers time UI actions and persist the results.
//
// A driver creates one Session per run and times each action either with
// Run or with an explicit ActionLogger:
//
//	s, err := uxperf.NewSession(cfg, nil)
//	...
//	if err := s.Run(ctx, "search", search); err != nil {
//		// The measurement was discarded; decide whether to continue.
//	}
//	l := s.NewActionLogger("open_document")
//	l.Start(ctx)
//	openDocument()
//	l.Stop(ctx)
//	...
//	err = s.Flush(ctx)
//
// A Session must only be used by one goroutine.
package uxperf

import (
	"context"
	"fmt"

	"go.chromium.org/uxperf/errors"
	"go.chromium.org/uxperf/internal/logging"
	"go.chromium.org/uxperf/timing"
)

// Session accumulates the action timings of one workload run.
type Session struct {
	cfg     Config
	markers MarkerSink // nil if markers are disabled
	results *timing.ResultSet
}

// NewSession creates a Session from cfg. If cfg.MarkersEnabled is set,
// markers are sent to markers, or to LogMarkers if markers is nil.
func NewSession(cfg Config, markers MarkerSink) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Clock == nil {
		cfg.Clock = timing.DefaultClock()
	}
	if !cfg.MarkersEnabled {
		markers = nil
	} else if markers == nil {
		markers = LogMarkers{}
	}
	return &Session{cfg: cfg, markers: markers, results: timing.NewResultSet()}, nil
}

// Label returns the result label for an action name.
func (s *Session) Label(name string) string {
	if s.cfg.LabelPrefix == "" {
		return name
	}
	return s.cfg.LabelPrefix + "_" + name
}

// Results returns the results recorded so far.
func (s *Session) Results() *timing.ResultSet {
	return s.results
}

// Run times action under name. If action fails, the measurement is
// discarded and the error is returned; recorded results are unaffected.
func (s *Session) Run(ctx context.Context, name string, action func(ctx context.Context) error) error {
	l := s.NewActionLogger(name)
	// An invalid label fails here, before action runs.
	if err := l.Start(ctx); err != nil {
		return err
	}
	if err := action(ctx); err != nil {
		logging.Infof(ctx, "Discarding measurement %s: %v", l.label, err)
		return errors.Wrapf(err, "action %s failed", l.label)
	}
	return l.Stop(ctx)
}

// Flush writes all results to the configured output path, replacing any
// existing file. On failure the results are kept so Flush can be retried.
func (s *Session) Flush(ctx context.Context) error {
	if err := timing.WriteFile(s.results, s.cfg.OutputPath); err != nil {
		logging.Infof(ctx, "Failed to write results: %v", err)
		return err
	}
	logging.Debugf(ctx, "Wrote %d results to %s", s.results.Len(), s.cfg.OutputPath)
	return nil
}

func (s *Session) mark(ctx context.Context, event string, ts int64) error {
	if s.markers == nil {
		return nil
	}
	msg := fmt.Sprintf("%s %d", event, ts)
	if err := s.markers.Mark(ctx, msg); err != nil {
		logging.Infof(ctx, "Failed to emit marker %q: %v", msg, err)
		return errors.Wrapf(err, "failed to emit marker %q", msg)
	}
	return nil
}

// ActionLogger times one action and records it in its Session on Stop.
type ActionLogger struct {
	s     *Session
	label string
	timer *timing.Timer
}

// NewActionLogger returns an ActionLogger for the action name.
func (s *Session) NewActionLogger(name string) *ActionLogger {
	return &ActionLogger{s: s, label: s.Label(name), timer: timing.NewTimer(s.cfg.Clock)}
}

// Label returns the result label of the action.
func (l *ActionLogger) Label() string {
	return l.label
}

// Start starts timing and emits "<label>_start <ms>" when markers are enabled.
// It fails with *timing.InvalidLabelError, without starting the timer, if the
// label cannot be recorded.
func (l *ActionLogger) Start(ctx context.Context) error {
	if !timing.ValidLabel(l.label) {
		return &timing.InvalidLabelError{Label: l.label}
	}
	if err := l.timer.Start(); err != nil {
		return err
	}
	return l.s.mark(ctx, l.label+"_start", l.timer.StartTime())
}

// Stop stops timing, records the result, and emits "<label>_end <ms>" when
// markers are enabled. The result is recorded even if the marker fails.
func (l *ActionLogger) Stop(ctx context.Context) error {
	if err := l.timer.End(); err != nil {
		return err
	}
	if err := l.s.results.Put(l.label, l.timer); err != nil {
		return err
	}
	return l.s.mark(ctx, l.label+"_end", l.timer.FinishTime())
}
