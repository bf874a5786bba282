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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/vidmirror/pkg/encode"
	"gitlab.com/tozd/go/errors"
)

// workingSuffix marks the not-yet-final copy sitting next to the
// destination file, on the same volume, so the final rename is atomic.
const workingSuffix = ".working"

// 📦 TransferUnit is one file's worth of work: where it comes from, where
// it lands, and the effective height. MaxHeight 0 means re-encode without
// scaling.
type TransferUnit struct {
	SourcePath string
	DestPath   string
	RelPath    string // destination-relative path, used for staging names
	MaxHeight  int
}

// ✍️ Writer performs the crash-safe stage/transform/stage/rename/cleanup
// protocol for one file at a time.
type Writer struct {
	scratch   string
	transform encode.Transformer
}

// 🏭 NewWriter creates a writer staging temp files under scratch and
// delegating the actual transcode to transform.
func NewWriter(scratch string, transform encode.Transformer) *Writer {
	return &Writer{scratch: scratch, transform: transform}
}

// Write materializes unit.DestPath from unit.SourcePath. On success the
// destination holds the transformed content and no staging artifacts
// remain. On failure the destination never exists at its final name; a
// transform failure deliberately leaves the staging files in place for
// diagnosis.
func (w *Writer) Write(ctx context.Context, unit TransferUnit) error {
	logger := zerolog.Ctx(ctx)
	if unit.MaxHeight > 0 {
		logger.Info().Str("source", unit.SourcePath).Str("dest", unit.DestPath).
			Int("max_height", unit.MaxHeight).Msg("scaling")
	} else {
		logger.Info().Str("source", unit.SourcePath).Str("dest", unit.DestPath).
			Msg("re-encoding without scaling")
	}

	tempInput, tempOutput, workingOutput := w.stagingPaths(unit)

	// A previous crashed run may have left any of these behind.
	for _, stale := range []string{tempInput, tempOutput, workingOutput} {
		if err := removeIfExists(ctx, stale); err != nil {
			return err
		}
	}

	// Stage the source locally so the encoder never reads the live tree
	// (or a network/removable source volume) directly.
	logger.Debug().Str("path", tempInput).Msg("copying source to scratch")
	if err := copyFile(unit.SourcePath, tempInput); err != nil {
		os.Remove(tempInput)
		return errors.Errorf("staging source %s: %w", unit.SourcePath, err)
	}

	// Transform failures leave tempInput/tempOutput behind on purpose.
	if err := w.transform.Run(ctx, tempInput, tempOutput, unit.MaxHeight); err != nil {
		return errors.Errorf("transforming %s: %w", unit.RelPath, err)
	}

	// Stage next to the destination, then make it appear atomically.
	logger.Debug().Str("path", workingOutput).Msg("copying result to working file")
	if err := copyFile(tempOutput, workingOutput); err != nil {
		os.Remove(workingOutput)
		return errors.Errorf("staging output for %s: %w", unit.DestPath, err)
	}

	logger.Debug().Str("path", unit.DestPath).Msg("renaming to final destination")
	if err := os.Rename(workingOutput, unit.DestPath); err != nil {
		os.Remove(workingOutput)
		return errors.Errorf("renaming %s to %s: %w", workingOutput, unit.DestPath, err)
	}

	logger.Debug().Msg("cleaning up scratch files")
	if err := os.Remove(tempInput); err != nil {
		return errors.Errorf("removing temp input: %w", err)
	}
	if err := os.Remove(tempOutput); err != nil {
		return errors.Errorf("removing temp output: %w", err)
	}

	return nil
}

// stagingPaths derives the three intermediate paths for a unit. Names are
// deterministic so a re-run after a crash reuses (and cleans up) the same
// files. The short path hash keeps same-named files in different
// directories from colliding in the shared scratch directory.
func (w *Writer) stagingPaths(unit TransferUnit) (tempInput, tempOutput, workingOutput string) {
	tag := shortHash(unit.RelPath)
	tempInput = filepath.Join(w.scratch, fmt.Sprintf("vidmirror_input_%s_%s", tag, filepath.Base(unit.SourcePath)))
	tempOutput = filepath.Join(w.scratch, fmt.Sprintf("vidmirror_output_%s_%s", tag, filepath.Base(unit.DestPath)))
	workingOutput = unit.DestPath + workingSuffix
	return tempInput, tempOutput, workingOutput
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:4])
}

func removeIfExists(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Errorf("checking stale artifact %s: %w", path, err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("removing stale artifact")
	if err := os.Remove(path); err != nil {
		return errors.Errorf("removing stale artifact %s: %w", path, err)
	}
	return nil
}

// copyFile copies src to dst verbatim, creating or truncating dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing %s: %w", dst, err)
	}
	return nil
}

// TODO(dr.methodical): 🧹 Add a clean command that sweeps orphaned
// vidmirror_* files out of the scratch directory
