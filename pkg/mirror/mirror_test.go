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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/vidmirror/pkg/mirror"
	"github.com/walteh/vidmirror/pkg/scale"
)

// End-to-end walk over a real filesystem tree with a fake encoder.

func buildSourceTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		writeSource(t, filepath.Join(root, rel), content)
	}
}

func TestMirrorEndToEnd(t *testing.T) {
	ctx := testCtx(t)
	srcRoot := t.TempDir()
	dstRoot := t.TempDir()
	scratch := t.TempDir()

	buildSourceTree(t, srcRoot, map[string]string{
		"movies/action/fight.mkv": "fight bytes",
		"movies/quiet.mp4":        "quiet bytes",
		"shows/pilot.mkv":         "pilot bytes",
		"notes.txt":               "not a video",
	})

	transform := &fakeTransformer{}
	newWalker := func() *mirror.Walker {
		walker, err := mirror.NewWalker(mirror.Options{
			Source:        srcRoot,
			Destination:   dstRoot,
			Writer:        mirror.NewWriter(scratch, transform),
			Table:         mustTable(t, []scale.Override{{Dir: "movies/action", Height: 480}}),
			DefaultHeight: 720,
		})
		require.NoError(t, err)
		return walker
	}

	require.NoError(t, newWalker().Walk(ctx))
	assert.Equal(t, 3, transform.callCount(), "three videos should be transcoded")

	// Destination mirrors the source structure for processed files.
	for _, rel := range []string{
		"movies/action/fight.mkv",
		"movies/quiet.mp4",
		"shows/pilot.mkv",
	} {
		data, err := os.ReadFile(filepath.Join(dstRoot, filepath.FromSlash(rel)))
		require.NoError(t, err, "destination file %s should exist", rel)
		assert.Contains(t, string(data), "transcoded:")
	}
	assert.NoFileExists(t, filepath.Join(dstRoot, "notes.txt"))

	// Scratch holds no leftovers.
	assertDirEmpty(t, scratch)

	// Second run with an unchanged source performs zero transforms.
	require.NoError(t, newWalker().Walk(ctx))
	assert.Equal(t, 3, transform.callCount(), "re-run should invoke the encoder zero times")
}

func TestMirrorRerunAfterFailure(t *testing.T) {
	ctx := testCtx(t)
	srcRoot := t.TempDir()
	dstRoot := t.TempDir()
	scratch := t.TempDir()

	buildSourceTree(t, srcRoot, map[string]string{
		"fight.mkv": "fight bytes",
	})

	transform := &fakeTransformer{failCode: 1}
	walk := func() error {
		walker, err := mirror.NewWalker(mirror.Options{
			Source:      srcRoot,
			Destination: dstRoot,
			Writer:      mirror.NewWriter(scratch, transform),
			Table:       mustTable(t, nil),
		})
		require.NoError(t, err)
		return walker.Walk(ctx)
	}

	require.Error(t, walk(), "failing encoder should abort the walk")
	assert.NoFileExists(t, filepath.Join(dstRoot, "fight.mkv"))

	// Fix the "encoder" and re-run: the idempotent skip rule lets the
	// same walk finish the remaining work.
	transform.mu.Lock()
	transform.failCode = 0
	transform.mu.Unlock()

	require.NoError(t, walk())
	data, err := os.ReadFile(filepath.Join(dstRoot, "fight.mkv"))
	require.NoError(t, err)
	assert.Equal(t, "transcoded:fight bytes", string(data))
}

func TestMirrorParallelWorkers(t *testing.T) {
	ctx := testCtx(t)
	srcRoot := t.TempDir()
	dstRoot := t.TempDir()
	scratch := t.TempDir()

	files := map[string]string{
		"a/one.mkv":   "one",
		"a/two.mkv":   "two",
		"b/three.mp4": "three",
		"b/four.mp4":  "four",
		"five.mkv":    "five",
	}
	buildSourceTree(t, srcRoot, files)

	transform := &fakeTransformer{}
	walker, err := mirror.NewWalker(mirror.Options{
		Source:      srcRoot,
		Destination: dstRoot,
		Writer:      mirror.NewWriter(scratch, transform),
		Table:       mustTable(t, nil),
		Workers:     4,
	})
	require.NoError(t, err)
	require.NoError(t, walker.Walk(ctx))

	assert.Equal(t, len(files), transform.callCount())
	for rel, content := range files {
		data, err := os.ReadFile(filepath.Join(dstRoot, filepath.FromSlash(rel)))
		require.NoError(t, err)
		assert.Equal(t, "transcoded:"+content, string(data))
	}
	assertDirEmpty(t, scratch)
}
