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

package encode

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎥 FFmpeg is the production Transformer. It shells out to ffmpeg and
// waits for it; stdout/stderr are echoed for diagnostics, never parsed.
type FFmpeg struct {
	opts Options
}

// 🏭 NewFFmpeg creates an FFmpeg transformer with defaults applied.
func NewFFmpeg(opts Options) *FFmpeg {
	return &FFmpeg{opts: opts.WithDefaults()}
}

// Run implements Transformer.
func (f *FFmpeg) Run(ctx context.Context, inputPath, outputPath string, maxHeight int) error {
	args := f.buildArgs(inputPath, outputPath, maxHeight)

	logger := zerolog.Ctx(ctx)
	logger.Info().Str("binary", f.opts.Binary).Strs("args", args).Msg("invoking encoder")

	cmd := exec.CommandContext(ctx, f.opts.Binary, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return classifyRunErr(err, f.opts.Binary)
	}

	logger.Debug().Msg("encoder succeeded")
	return nil
}

// buildArgs constructs the full argument slice for one invocation. The
// scaling filter constrains output height to at most maxHeight pixels,
// preserves aspect ratio, and keeps dimensions even (-2).
func (f *FFmpeg) buildArgs(inputPath, outputPath string, maxHeight int) []string {
	args := []string{
		"-i", inputPath,
		"-c:v", f.opts.VideoCodec,
		"-crf", strconv.Itoa(f.opts.CRF),
		"-preset", f.opts.Preset,
		"-c:a", f.opts.AudioCodec,
	}

	if maxHeight > 0 {
		args = append(args, "-vf", fmt.Sprintf("scale=-2:'min(%d,ih)'", maxHeight))
	}

	args = append(args,
		"-loglevel", "warning",
		"-nostats",
		"-hide_banner",
	)
	if f.opts.VideoCodec == "libx265" {
		args = append(args, "-x265-params", "log-level=error")
	}

	return append(args, outputPath)
}

// classifyRunErr distinguishes the three ways an invocation fails:
// numeric exit code, signal termination, or failure to start at all.
func classifyRunErr(err error, binary string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return &ExitError{Code: code}
		}
		return errors.Errorf("%w: %s", ErrTerminated, exitErr.String())
	}
	return errors.Errorf("starting %s: %w", binary, err)
}
