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

package operation_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/autodocs/gen/mockery"
	"github.com/walteh/autodocs/pkg/config"
	"github.com/walteh/autodocs/pkg/engine"
	"github.com/walteh/autodocs/pkg/operation"
	"github.com/walteh/autodocs/pkg/pipeline"
	"github.com/walteh/autodocs/pkg/workspace"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

// loadConfig writes a local provider config over src and loads it
func loadConfig(t *testing.T, src string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key.txt"), []byte("secret\n"), 0600))

	body := fmt.Sprintf(`
repository:
  url: %s
  provider: local
engine:
  name: mock
  api_key_file: key.txt
filter:
  target: "*.md"
workspace:
  dir: ws
`, src)
	path := filepath.Join(dir, "autodocs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := config.Load(testContext(t), path, []string{"mock"})
	require.NoError(t, err, "config should load")
	return cfg
}

func sourceTree(t *testing.T, files map[string]string) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "book")
	for rel, content := range files {
		p := filepath.Join(src, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return src
}

func prefixed(_ context.Context, req engine.Request) (string, error) {
	return "DE:" + req.Text, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	outDir string
	paths  []string
}

func (f *fakePublisher) Publish(ctx context.Context, outDir string, paths []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outDir = outDir
	f.paths = append(f.paths, paths...)
	return nil
}

func TestSyncStatusClean(t *testing.T) {
	ctx := testContext(t)
	src := sourceTree(t, map[string]string{"a.md": "Alpha.\n", "b.md": "Beta.\n"})
	cfg := loadConfig(t, src)

	m := mockery.NewMockEngine_engine(t)
	m.EXPECT().Translate(mock.Anything, mock.Anything).RunAndReturn(prefixed)
	pub := &fakePublisher{}

	op, err := operation.New(operation.Options{Config: cfg, Engine: m, Publisher: pub})
	require.NoError(t, err)

	items, err := op.Status(ctx)
	require.NoError(t, err, "status should succeed before the first run")
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, pipeline.ChangeNew, it.Change, "%s should be new", it.Path)
	}

	summary, err := op.Sync(ctx)
	require.NoError(t, err, "sync should succeed")
	assert.Equal(t, 2, summary.Count(pipeline.StatusSucceeded))
	assert.ElementsMatch(t, []string{"a.md", "b.md"}, pub.paths, "written files should be published")
	assert.Equal(t, cfg.OutputDir(), pub.outDir)

	out, err := os.ReadFile(filepath.Join(cfg.OutputDir(), "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "DE:Alpha.\n", string(out))
	assert.NoFileExists(t, cfg.LockPath(), "lock should be released")

	items, err = op.Status(ctx)
	require.NoError(t, err)
	for _, it := range items {
		assert.Equal(t, pipeline.ChangeUnchanged, it.Change, "%s should be unchanged", it.Path)
	}

	require.NoError(t, op.Clean(ctx), "clean should succeed")
	assert.NoDirExists(t, cfg.OutputDir(), "output tree should be removed")
	assert.DirExists(t, src, "source tree should be kept")

	items, err = op.Status(ctx)
	require.NoError(t, err)
	for _, it := range items {
		assert.Equal(t, pipeline.ChangeNew, it.Change, "%s should be new after clean", it.Path)
	}
}

func TestSyncLocked(t *testing.T) {
	ctx := testContext(t)
	src := sourceTree(t, map[string]string{"a.md": "Alpha.\n"})
	cfg := loadConfig(t, src)

	lock, err := workspace.AcquireLock(ctx, cfg.LockPath(), time.Hour)
	require.NoError(t, err)
	defer lock.Release()

	op, err := operation.New(operation.Options{Config: cfg, Engine: mockery.NewMockEngine_engine(t)})
	require.NoError(t, err)

	_, err = op.Sync(ctx)
	require.Error(t, err, "overlapping run should be refused")
	assert.ErrorIs(t, err, workspace.ErrLocked)
}

func TestSyncFatal(t *testing.T) {
	ctx := testContext(t)
	src := sourceTree(t, map[string]string{"a.md": "Alpha.\n"})
	cfg := loadConfig(t, src)

	m := mockery.NewMockEngine_engine(t)
	m.EXPECT().Translate(mock.Anything, mock.Anything).Return("", engine.NewError("mock", engine.KindAuthFailed, errors.New("bad key")))
	pub := &fakePublisher{}

	op, err := operation.New(operation.Options{Config: cfg, Engine: m, Publisher: pub})
	require.NoError(t, err)

	summary, err := op.Sync(ctx)
	require.Error(t, err)
	assert.True(t, engine.IsFatal(err), "auth failure should be fatal")
	require.NotNil(t, summary, "summary should accompany the error")
	assert.Empty(t, pub.paths, "nothing should be published")
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := operation.New(operation.Options{})
	require.Error(t, err)
}

type countingOperator struct {
	operation.Operator
	calls  int
	cancel context.CancelFunc
	stopAt int
}

func (c *countingOperator) Sync(ctx context.Context) (*pipeline.Summary, error) {
	c.calls++
	if c.calls == c.stopAt {
		c.cancel()
	}
	if c.calls == 1 {
		return nil, errors.New("first pass fails")
	}
	return &pipeline.Summary{}, nil
}

func TestRunnerInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	defer cancel()
	logger := zerolog.Ctx(ctx)

	op := &countingOperator{cancel: cancel, stopAt: 3}
	var errs []error
	r := operation.NewRunner(logger, time.Millisecond)
	err := r.Run(ctx, op, func(_ *pipeline.Summary, err error) { errs = append(errs, err) })
	require.NoError(t, err, "interval mode should stop cleanly on cancel")
	assert.Equal(t, 3, op.calls, "passes should repeat until cancelled")
	require.Len(t, errs, 3)
	assert.Error(t, errs[0], "a failed pass should not stop the loop")
}

func TestRunnerSinglePass(t *testing.T) {
	ctx := testContext(t)
	op := &countingOperator{stopAt: -1}

	err := operation.NewRunner(zerolog.Ctx(ctx), 0).Run(ctx, op, nil)
	require.Error(t, err, "single pass should return the pass error")
	assert.Equal(t, 1, op.calls)
}
