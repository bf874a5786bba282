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

package mirror

import (
	"context"
	"os"

	"gitlab.com/tozd/go/errors"
)

// 📂 EntryKind classifies a directory entry for the walk.
type EntryKind int

const (
	KindDir   EntryKind = iota // subdirectory, recursed into
	KindFile                   // regular file, candidate for transform
	KindOther                  // symlink, device, socket... always skipped
)

// Entry is one child of a directory as seen by the walker.
type Entry struct {
	Name string
	Kind EntryKind
}

// 🔌 Lister enumerates the children of a directory. The walker depends on
// this rather than the filesystem so tests can supply a fabricated tree.
// Enumeration order is implementation-defined.
type Lister interface {
	List(ctx context.Context, dir string) ([]Entry, error)
}

// 💾 OSLister is the production Lister backed by os.ReadDir.
type OSLister struct{}

// List implements Lister.
func (OSLister) List(ctx context.Context, dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		kind := KindOther
		switch {
		case de.IsDir():
			kind = KindDir
		case de.Type().IsRegular():
			kind = KindFile
		}
		entries = append(entries, Entry{Name: de.Name(), Kind: kind})
	}
	return entries, nil
}
