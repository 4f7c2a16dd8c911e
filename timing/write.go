// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package timing

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"go.chromium.org/uxperf/errors"
)

// resultFileMode is the permission of result logs written by WriteFile.
const resultFileMode = 0644

// WriteFile writes rs to path in the result log format.
//
// Data is written to a temporary file in path's directory and renamed over
// path only after it has been synced and closed, so a failed write never
// clobbers an existing log at path. Any failure is returned as *IOError and
// is not retried. rs is not modified.
func WriteFile(rs *ResultSet, path string) error {
	fail := func(err error) error {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return fail(errors.Wrapf(err, "directory %s is not writable", dir))
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".")
	if err != nil {
		return fail(errors.Wrap(err, "failed to create tmp file"))
	}
	tmp := f.Name()

	if _, err := rs.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fail(errors.Wrap(err, "failed to write results to tmp file"))
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fail(errors.Wrap(err, "failed to sync tmp file"))
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fail(errors.Wrap(err, "failed to close tmp file"))
	}
	if err := os.Chmod(tmp, resultFileMode); err != nil {
		os.Remove(tmp)
		return fail(errors.Wrap(err, "failed to change permissions of tmp file"))
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fail(errors.Wrap(err, "failed to rename tmp file to result file"))
	}
	return nil
}
