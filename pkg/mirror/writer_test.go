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

package mirror_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/vidmirror/pkg/encode"
	"github.com/walteh/vidmirror/pkg/mirror"
	"gitlab.com/tozd/go/errors"
)

// 🧪 fakeTransformer stands in for the external encoder. On success it
// writes a recognizable transformation of the input; on failure it exits
// with the configured code and produces nothing, like a real encoder that
// failed before writing output.
type fakeTransformer struct {
	mu       sync.Mutex
	failCode int
	calls    int
}

func (f *fakeTransformer) Run(ctx context.Context, inputPath, outputPath string, maxHeight int) error {
	f.mu.Lock()
	f.calls++
	fail := f.failCode
	f.mu.Unlock()

	if fail != 0 {
		return &encode.ExitError{Code: fail}
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, append([]byte("transcoded:"), data...), 0o644)
}

func (f *fakeTransformer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testCtx(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWriterSuccess(t *testing.T) {
	ctx := testCtx(t)
	scratch := t.TempDir()
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	src := filepath.Join(srcDir, "fight.mkv")
	dst := filepath.Join(dstDir, "fight.mkv")
	writeSource(t, src, "raw video bytes")

	w := mirror.NewWriter(scratch, &fakeTransformer{})
	err := w.Write(ctx, mirror.TransferUnit{
		SourcePath: src,
		DestPath:   dst,
		RelPath:    "fight.mkv",
		MaxHeight:  480,
	})
	require.NoError(t, err)

	// Destination holds the transformed content.
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "transcoded:raw video bytes", string(data))

	// No staging artifacts remain anywhere.
	assertDirEmpty(t, scratch)
	assert.NoFileExists(t, dst+".working")

	// The source is untouched.
	orig, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "raw video bytes", string(orig))
}

func TestWriterTransformFailureLeavesNoDestination(t *testing.T) {
	ctx := testCtx(t)
	scratch := t.TempDir()
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	src := filepath.Join(srcDir, "fight.mkv")
	dst := filepath.Join(dstDir, "fight.mkv")
	writeSource(t, src, "raw video bytes")

	transform := &fakeTransformer{failCode: 1}
	w := mirror.NewWriter(scratch, transform)

	unit := mirror.TransferUnit{
		SourcePath: src,
		DestPath:   dst,
		RelPath:    "fight.mkv",
		MaxHeight:  480,
	}
	err := w.Write(ctx, unit)
	require.Error(t, err)

	var exitErr *encode.ExitError
	require.True(t, errors.As(err, &exitErr), "encoder exit status should be preserved")
	assert.Equal(t, 1, exitErr.Code)

	// The destination must never exist on failure.
	assert.NoFileExists(t, dst)
	assert.NoFileExists(t, dst+".working")

	// A subsequent successful run for the same input produces a
	// complete destination file (re-run is the retry mechanism).
	transform.mu.Lock()
	transform.failCode = 0
	transform.mu.Unlock()

	require.NoError(t, w.Write(ctx, unit))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "transcoded:raw video bytes", string(data))
	assertDirEmpty(t, scratch)
}

func TestWriterCleansStaleArtifacts(t *testing.T) {
	ctx := testCtx(t)
	scratch := t.TempDir()
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	src := filepath.Join(srcDir, "fight.mkv")
	dst := filepath.Join(dstDir, "fight.mkv")
	writeSource(t, src, "raw video bytes")

	// Simulate a crashed previous run: an orphaned working file next to
	// the destination.
	writeSource(t, dst+".working", "half-written junk")

	w := mirror.NewWriter(scratch, &fakeTransformer{})
	err := w.Write(ctx, mirror.TransferUnit{
		SourcePath: src,
		DestPath:   dst,
		RelPath:    "fight.mkv",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "transcoded:raw video bytes", string(data), "stale junk should be replaced")
	assert.NoFileExists(t, dst+".working")
}

func TestWriterSameNameDifferentDirsDoNotCollide(t *testing.T) {
	ctx := testCtx(t)
	scratch := t.TempDir()
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	srcA := filepath.Join(srcDir, "a", "movie.mkv")
	srcB := filepath.Join(srcDir, "b", "movie.mkv")
	writeSource(t, srcA, "contents of a")
	writeSource(t, srcB, "contents of b")

	dstA := filepath.Join(dstDir, "a", "movie.mkv")
	dstB := filepath.Join(dstDir, "b", "movie.mkv")
	require.NoError(t, os.MkdirAll(filepath.Dir(dstA), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Dir(dstB), 0o755))

	w := mirror.NewWriter(scratch, &fakeTransformer{})
	require.NoError(t, w.Write(ctx, mirror.TransferUnit{
		SourcePath: srcA, DestPath: dstA, RelPath: filepath.Join("a", "movie.mkv"),
	}))
	require.NoError(t, w.Write(ctx, mirror.TransferUnit{
		SourcePath: srcB, DestPath: dstB, RelPath: filepath.Join("b", "movie.mkv"),
	}))

	dataA, err := os.ReadFile(dstA)
	require.NoError(t, err)
	dataB, err := os.ReadFile(dstB)
	require.NoError(t, err)
	assert.Equal(t, "transcoded:contents of a", string(dataA))
	assert.Equal(t, "transcoded:contents of b", string(dataB))
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "directory %s should be empty", dir)
}
