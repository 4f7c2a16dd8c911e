// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package uxperf

import (
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"go.chromium.org/uxperf/errors"
	"go.chromium.org/uxperf/timing"
)

// Config holds the per-run settings of a workload driver.
type Config struct {
	// LabelPrefix is prepended to every action name, joined with "_".
	LabelPrefix string `yaml:"label_prefix"`
	// OutputPath is where Session.Flush writes the result log.
	OutputPath string `yaml:"output_path"`
	// MarkersEnabled turns on UX_PERF start/end markers.
	MarkersEnabled bool `yaml:"markers_enabled"`
	// Clock supplies timestamps. If nil, timing.DefaultClock is used.
	Clock timing.Clock `yaml:"-"`
}

// Validate checks that c can be used to create a Session.
func (c *Config) Validate() error {
	if c.OutputPath == "" {
		return errors.New("output_path is not set")
	}
	if c.LabelPrefix != "" && !timing.ValidLabel(c.LabelPrefix) {
		return errors.Errorf("label_prefix %q must not contain whitespace", c.LabelPrefix)
	}
	return nil
}

// LoadConfig reads a YAML config from r. Unknown keys are rejected.
func LoadConfig(r io.Reader) (*Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	var cfg Config
	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

// LoadConfigFile is like LoadConfig but reads the file at path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config")
	}
	defer f.Close()
	return LoadConfig(f)
}
