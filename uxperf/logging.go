// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package uxperf

import (
	"context"
	"io"

	"go.chromium.org/uxperf/internal/logging"
)

// AttachLogger returns a context whose session logs and UX_PERF log markers
// are written to w, one timestamped line each. Debug logs, such as result
// writes, are included only if verbose is true.
//
// Loggers attached to a parent context keep receiving logs.
func AttachLogger(ctx context.Context, w io.Writer, verbose bool) context.Context {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	return logging.AttachLogger(ctx, logging.NewSinkLogger(level, true, logging.NewWriterSink(w)))
}
