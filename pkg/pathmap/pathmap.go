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

// Package pathmap projects relative suffix paths onto the source and
// destination roots. Because both sides are derived from the same suffix,
// the two trees stay structurally isomorphic: every name under the source
// maps to the identically-named entry under the destination.
package pathmap

import "path/filepath"

// 🧭 Suffix is the position of a directory relative to both tree roots,
// as an ordered list of path components. The root itself is the empty
// suffix.
type Suffix []string

// Extend returns a new suffix with name appended. The receiver is never
// mutated; each recursion level owns its own backing array.
func (s Suffix) Extend(name string) Suffix {
	out := make(Suffix, len(s), len(s)+1)
	copy(out, s)
	return append(out, name)
}

// Join renders the suffix as a relative path, or "" for the root suffix.
func (s Suffix) Join() string {
	return filepath.Join(s...)
}

// 📌 Project joins root with each component of suffix, in order. It is
// pure and never touches the filesystem.
func Project(root string, suffix Suffix) string {
	return filepath.Join(append([]string{root}, suffix...)...)
}
