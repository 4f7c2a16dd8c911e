// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package uxperf

import (
	"context"

	"go.chromium.org/uxperf/errors"
	"go.chromium.org/uxperf/internal/logging"
	"go.chromium.org/uxperf/shutil"
)

// MarkerTag is the log tag carried by action markers.
const MarkerTag = "UX_PERF"

// MarkerSink receives action markers such as "open_document_start 1000".
type MarkerSink interface {
	Mark(ctx context.Context, msg string) error
}

// LogMarkers emits markers as "UX_PERF: <msg>" info logs on the context logger.
type LogMarkers struct{}

// Mark implements MarkerSink.
func (LogMarkers) Mark(ctx context.Context, msg string) error {
	logging.Info(ctx, MarkerTag+": "+msg)
	return nil
}

// ShellMarkers emits markers to the Android log by running the device's
// "log" command through Run, e.g. over adb shell.
type ShellMarkers struct {
	// Run executes a shell command line on the device. It must be set.
	Run func(ctx context.Context, cmd string) error
}

// Mark implements MarkerSink.
func (m *ShellMarkers) Mark(ctx context.Context, msg string) error {
	if m.Run == nil {
		return errors.New("ShellMarkers.Run is not set")
	}
	return m.Run(ctx, MarkerCommand(msg))
}

// MarkerCommand returns the shell command line that logs msg at debug
// priority under MarkerTag.
func MarkerCommand(msg string) string {
	return shutil.Join("log", "-p", "d", "-t", MarkerTag, msg)
}
