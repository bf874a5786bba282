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

// Package scale resolves the effective maximum output height for a
// directory from a static table of per-subtree overrides.
package scale

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/walteh/vidmirror/pkg/pathmap"
	"gitlab.com/tozd/go/errors"
)

// 📏 Override associates a directory prefix (relative to the source root)
// with a maximum output height in pixels.
type Override struct {
	Dir    string `json:"dir"    yaml:"dir"`
	Height int    `json:"height" yaml:"height"`
}

// 🗺️ Table is the immutable set of height overrides consulted during the
// walk. Build it once with NewTable before the walk starts; Resolve is
// safe for concurrent readers.
type Table struct {
	entries []entry
}

type entry struct {
	key        string
	components []string
	height     int
}

// 🏭 NewTable validates and indexes the given overrides. Directory keys
// must be non-empty relative paths, unique after cleaning, and heights
// must be positive.
func NewTable(overrides []Override) (*Table, error) {
	t := &Table{entries: make([]entry, 0, len(overrides))}
	seen := map[string]bool{}

	for _, o := range overrides {
		if o.Height <= 0 {
			return nil, errors.Errorf("override %q: height must be positive, got %d", o.Dir, o.Height)
		}
		dir := filepath.Clean(o.Dir)
		if dir == "" || dir == "." || dir == ".." || filepath.IsAbs(dir) || strings.HasPrefix(dir, ".."+string(filepath.Separator)) {
			return nil, errors.Errorf("override directory %q must be a relative path inside the source tree", o.Dir)
		}
		if seen[dir] {
			return nil, errors.Errorf("duplicate override for directory %q", dir)
		}
		seen[dir] = true

		t.entries = append(t.entries, entry{
			key:        dir,
			components: strings.Split(dir, string(filepath.Separator)),
			height:     o.Height,
		})
	}

	// Sorted order makes equal-depth matches resolve to the
	// lexicographically smallest key.
	sort.Slice(t.entries, func(i, j int) bool {
		return t.entries[i].key < t.entries[j].key
	})

	return t, nil
}

// Len returns the number of overrides in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// 🎯 Resolve returns the effective height for files in the directory named
// by suffix. The longest matching prefix key wins; among equal-length
// matches the lexicographically smallest key wins, so resolution is
// deterministic. When no key matches, def is used (0 means no default).
// ok is false when neither an override nor a default applies, meaning
// re-encode without scaling.
func (t *Table) Resolve(suffix pathmap.Suffix, def int) (height int, ok bool) {
	bestDepth := -1
	for _, e := range t.entries {
		if !componentPrefix(suffix, e.components) {
			continue
		}
		if len(e.components) > bestDepth {
			bestDepth = len(e.components)
			height = e.height
		}
	}
	if bestDepth >= 0 {
		return height, true
	}
	if def > 0 {
		return def, true
	}
	return 0, false
}

// componentPrefix reports whether suffix begins with the full component
// sequence of prefix. This is a path-prefix test, not a string-prefix
// test: "movies" matches "movies/action" but never "movies2".
func componentPrefix(suffix pathmap.Suffix, prefix []string) bool {
	if len(prefix) > len(suffix) {
		return false
	}
	for i, p := range prefix {
		if suffix[i] != p {
			return false
		}
	}
	return true
}
