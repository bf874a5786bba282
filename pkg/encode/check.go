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
	"os/exec"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🩺 Check verifies the encoder binary is reachable on PATH and returns
// its version banner (first line of `<binary> -version`).
func (f *FFmpeg) Check(ctx context.Context) (string, error) {
	path, err := exec.LookPath(f.opts.Binary)
	if err != nil {
		return "", errors.Errorf("%s not found on PATH: %w", f.opts.Binary, err)
	}

	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return "", errors.Errorf("%s found but -version failed: %w", f.opts.Binary, err)
	}

	version := strings.TrimSpace(string(out))
	if i := strings.IndexByte(version, '\n'); i >= 0 {
		version = version[:i]
	}
	return version, nil
}
