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
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/vidmirror/pkg/pathmap"
	"github.com/walteh/vidmirror/pkg/scale"
	"github.com/walteh/vidmirror/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔌 TransformWriter is the walker's view of the atomic transform writer.
type TransformWriter interface {
	Write(ctx context.Context, unit TransferUnit) error
}

// 🔧 Options configures a Walker.
type Options struct {
	// Source and Destination are the two tree roots. Source must exist
	// and be a directory when Walk is called.
	Source      string
	Destination string

	// Writer materializes one destination file per eligible source file.
	Writer TransformWriter

	// Table holds the per-subtree height overrides; DefaultHeight (0 =
	// none) applies when no override matches.
	Table         *scale.Table
	DefaultHeight int

	// Extensions are the recognized container extensions without the
	// leading dot, matched case-sensitively. Defaults to mp4 and mkv.
	Extensions []string

	// Excludes are doublestar patterns matched against the relative
	// path; matching entries are logged skips.
	Excludes []string

	// Lister enumerates source directories. Defaults to OSLister.
	Lister Lister

	// Reporter receives one outcome per visited file. Optional.
	Reporter *status.Reporter

	// Workers > 1 dispatches independent transforms concurrently. The
	// default of 1 keeps the walk fully sequential.
	Workers int

	// DryRun walks and reports without touching the destination tree.
	DryRun bool
}

// 🚶 Walker drives the recursive mirror: enumerate, filter, resolve the
// effective height, and hand each not-yet-materialized file to the writer.
type Walker struct {
	source        string
	destination   string
	writer        TransformWriter
	table         *scale.Table
	defaultHeight int
	exts          map[string]bool
	excludes      []string
	lister        Lister
	reporter      *status.Reporter
	workers       int
	dryRun        bool
}

// 🏭 NewWalker validates opts and creates a walker.
func NewWalker(opts Options) (*Walker, error) {
	if opts.Source == "" {
		return nil, errors.New("source root is required")
	}
	if opts.Destination == "" {
		return nil, errors.New("destination root is required")
	}
	if opts.Writer == nil && !opts.DryRun {
		return nil, errors.New("transform writer is required")
	}
	if opts.Table == nil {
		return nil, errors.New("override table is required")
	}
	if opts.Lister == nil {
		opts.Lister = OSLister{}
	}
	if opts.Reporter == nil {
		opts.Reporter = status.NewReporter(io.Discard)
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{"mp4", "mkv"}
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		exts[strings.TrimPrefix(ext, ".")] = true
	}

	return &Walker{
		source:        opts.Source,
		destination:   opts.Destination,
		writer:        opts.Writer,
		table:         opts.Table,
		defaultHeight: opts.DefaultHeight,
		exts:          exts,
		excludes:      opts.Excludes,
		lister:        opts.Lister,
		reporter:      opts.Reporter,
		workers:       opts.Workers,
		dryRun:        opts.DryRun,
	}, nil
}

// Walk mirrors the source tree into the destination tree. The first error
// from enumeration, directory creation, or the writer aborts the walk;
// files completed earlier stay in place.
func (w *Walker) Walk(ctx context.Context) error {
	info, err := os.Stat(w.source)
	if err != nil {
		return errors.Errorf("source root %s: %w", w.source, err)
	}
	if !info.IsDir() {
		return errors.Errorf("source root %s is not a directory", w.source)
	}

	if w.workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(w.workers)
		walkErr := w.walk(gctx, nil, g)
		if err := g.Wait(); err != nil {
			return err
		}
		return walkErr
	}
	return w.walk(ctx, nil, nil)
}

// walk handles one directory: recurse into subdirectories, consider each
// regular file, skip everything else.
func (w *Walker) walk(ctx context.Context, suffix pathmap.Suffix, g *errgroup.Group) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	srcDir := pathmap.Project(w.source, suffix)
	entries, err := w.lister.List(ctx, srcDir)
	if err != nil {
		return errors.Errorf("walking %s: %w", srcDir, err)
	}

	logger := zerolog.Ctx(ctx)
	for _, entry := range entries {
		switch entry.Kind {
		case KindDir:
			if err := w.walk(ctx, suffix.Extend(entry.Name), g); err != nil {
				return err
			}
		case KindFile:
			if err := w.visitFile(ctx, suffix, entry.Name, g); err != nil {
				return err
			}
		default:
			logger.Debug().Str("dir", srcDir).Str("name", entry.Name).
				Msg("ignoring entry, not a regular file or directory")
		}
	}
	return nil
}

// visitFile applies the selection rules to one regular file and, when it
// is eligible and not yet materialized, drives the writer.
func (w *Walker) visitFile(ctx context.Context, suffix pathmap.Suffix, name string, g *errgroup.Group) error {
	logger := zerolog.Ctx(ctx)
	relPath := suffix.Extend(name).Join()
	srcFile := pathmap.Project(w.source, suffix.Extend(name))

	if reason, excluded := w.excluded(relPath); excluded {
		logger.Debug().Str("file", srcFile).Str("pattern", reason).Msg("ignoring file, excluded by pattern")
		w.reporter.File(relPath, status.OutcomeSkipped, "excluded by "+reason)
		return nil
	}

	ext := extensionOf(name)
	switch {
	case ext == "":
		logger.Debug().Str("file", srcFile).Msg("ignoring file, no extension")
		w.reporter.File(relPath, status.OutcomeSkipped, "no extension")
		return nil
	case !w.exts[ext]:
		logger.Debug().Str("file", srcFile).Str("ext", ext).Msg("ignoring file, wrong extension")
		w.reporter.File(relPath, status.OutcomeSkipped, "wrong extension")
		return nil
	}

	destDir := pathmap.Project(w.destination, suffix)
	destFile := pathmap.Project(w.destination, suffix.Extend(name))

	if _, err := os.Stat(destFile); err == nil {
		logger.Debug().Str("file", destFile).Msg("not overwriting existing destination")
		w.reporter.File(relPath, status.OutcomeDone, "")
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Errorf("checking destination %s: %w", destFile, err)
	}

	// The effective height belongs to the directory, not the file.
	height, _ := w.table.Resolve(suffix, w.defaultHeight)

	if w.dryRun {
		logger.Info().Str("file", relPath).Int("max_height", height).Msg("would transcode")
		w.reporter.File(relPath, status.OutcomePending, "")
		return nil
	}

	// Destination directories are created lazily, only once a file in
	// them is actually processed.
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return errors.Errorf("creating destination directory %s: %w", destDir, err)
	}

	unit := TransferUnit{
		SourcePath: srcFile,
		DestPath:   destFile,
		RelPath:    relPath,
		MaxHeight:  height,
	}

	if g != nil {
		g.Go(func() error {
			return w.writeUnit(ctx, unit)
		})
		return nil
	}
	return w.writeUnit(ctx, unit)
}

func (w *Walker) writeUnit(ctx context.Context, unit TransferUnit) error {
	if err := w.writer.Write(ctx, unit); err != nil {
		w.reporter.File(unit.RelPath, status.OutcomeFailed, err.Error())
		return err
	}
	w.reporter.File(unit.RelPath, status.OutcomeTranscoded, "")
	return nil
}

// excluded reports whether relPath matches any exclude pattern, returning
// the matching pattern for the skip note.
func (w *Walker) excluded(relPath string) (string, bool) {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			// Malformed patterns are rejected at config load; treat a
			// stray one as a non-match here.
			continue
		}
		if matched {
			return pattern, true
		}
	}
	return "", false
}

// extensionOf returns the extension without the leading dot, or "" when
// the name has none. Matching is case-sensitive.
func extensionOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i+1:]
}
