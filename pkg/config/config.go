// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the run configuration: roots, scaling policy,
// selection tweaks, and encoder options. Values come from an optional
// config file merged with CLI flags; everything is validated before the
// walk starts so configuration mistakes never mutate the filesystem.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/vidmirror/pkg/encode"
	"github.com/walteh/vidmirror/pkg/scale"
	"gitlab.com/tozd/go/errors"
)

// 📚 Config represents the complete run configuration.
type Config struct {
	Source        string           `json:"source"                   yaml:"source"`
	Destination   string           `json:"destination"              yaml:"destination"`
	DefaultHeight int              `json:"default_height,omitempty" yaml:"default_height,omitempty"`
	Overrides     []scale.Override `json:"overrides,omitempty"      yaml:"overrides,omitempty"`
	Excludes      []string         `json:"excludes,omitempty"       yaml:"excludes,omitempty"`
	Extensions    []string         `json:"extensions,omitempty"     yaml:"extensions,omitempty"`
	ScratchDir    string           `json:"scratch_dir,omitempty"    yaml:"scratch_dir,omitempty"`
	Workers       int              `json:"workers,omitempty"        yaml:"workers,omitempty"`
	DryRun        bool             `json:"dry_run,omitempty"        yaml:"dry_run,omitempty"`
	Encoder       encode.Options   `json:"encoder,omitempty"        yaml:"encoder,omitempty"`
}

// 🔍 Validate checks the configuration and fills in defaults. It must
// pass before any filesystem mutation happens.
func (cfg *Config) Validate() error {
	if cfg.Source == "" {
		return errors.New("source is required")
	}
	if cfg.Destination == "" {
		return errors.New("destination is required")
	}
	if cfg.DefaultHeight < 0 {
		return errors.Errorf("default height must not be negative, got %d", cfg.DefaultHeight)
	}

	// NewTable performs the full override validation; the table built
	// here is discarded, the walk builds its own from the same values.
	if _, err := scale.NewTable(cfg.Overrides); err != nil {
		return errors.Errorf("validating overrides: %w", err)
	}

	for _, pattern := range cfg.Excludes {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	if cfg.ScratchDir == "" {
		cfg.ScratchDir = os.TempDir()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{"mp4", "mkv"}
	}
	cfg.Encoder = cfg.Encoder.WithDefaults()

	return nil
}

// 🎫 ParseOverrideToken parses one DIR:HEIGHT override token as supplied
// on the command line, e.g. "movies/action:480".
func ParseOverrideToken(token string) (scale.Override, error) {
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return scale.Override{}, errors.Errorf("override must be in format DIR:HEIGHT, got %q", token)
	}

	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return scale.Override{}, errors.Errorf("invalid height %q in override, expected number", parts[1])
	}
	if height <= 0 {
		return scale.Override{}, errors.Errorf("height in override %q must be positive", token)
	}

	return scale.Override{Dir: parts[0], Height: height}, nil
}

// ParseHeight parses a bare height value such as the --scale flag.
func ParseHeight(s string) (int, error) {
	height, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("invalid scale value %q, expected number", s)
	}
	if height <= 0 {
		return 0, errors.Errorf("scale value must be positive, got %d", height)
	}
	return height, nil
}
