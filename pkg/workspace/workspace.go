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

package workspace

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/autodocs/pkg/selector"
	"gitlab.com/tozd/go/errors"
)

// ⚙️ Options configures a Manager
type Options struct {
	OutputDir string
	Store     Store
	Engine    string // recorded on each entry
	Model     string
	Now       func() time.Time
}

// 🗂️ Manager owns the translated output tree and the entry store. Every
// store mutation goes through it.
type Manager struct {
	outDir string
	store  Store
	engine string
	model  string
	now    func() time.Time

	mu    sync.Mutex
	paths map[string]*sync.Mutex
}

func New(opts Options) *Manager {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		outDir: filepath.Clean(opts.OutputDir),
		store:  opts.Store,
		engine: opts.Engine,
		model:  opts.Model,
		now:    now,
		paths:  map[string]*sync.Mutex{},
	}
}

// OutputDir is the root of the translated tree
func (m *Manager) OutputDir() string {
	return m.outDir
}

// Store exposes the entry store for read only callers such as status
func (m *Manager) Store() Store {
	return m.store
}

// OutputPath maps a relative source path into the output tree
func (m *Manager) OutputPath(rel string) (string, error) {
	local := filepath.FromSlash(rel)
	if !filepath.IsLocal(local) {
		return "", errors.Errorf("path %q escapes the output tree", rel)
	}
	return filepath.Join(m.outDir, local), nil
}

func (m *Manager) pathLock(rel string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.paths[rel]
	if !ok {
		l = &sync.Mutex{}
		m.paths[rel] = l
	}
	return l
}

// ⏭️ ShouldSkip reports whether c was already translated from identical content
func (m *Manager) ShouldSkip(ctx context.Context, c selector.Candidate) (bool, error) {
	e, ok, err := m.store.Get(ctx, c.Path)
	if err != nil {
		return false, errors.Errorf("looking up %s: %w", c.Path, err)
	}
	return ok && e.Hash == c.Hash, nil
}

// ✅ Commit writes output for c and then records its entry. If either step
// fails the previous output file and entry are left as they were. It reports
// whether the output file changed on disk.
func (m *Manager) Commit(ctx context.Context, c selector.Candidate, output []byte) (bool, error) {
	logger := zerolog.Ctx(ctx)

	dst, err := m.OutputPath(c.Path)
	if err != nil {
		return false, err
	}

	l := m.pathLock(c.Path)
	l.Lock()
	defer l.Unlock()

	written, backedUp, err := m.writeIfChanged(dst, output)
	if err != nil {
		return false, errors.Errorf("committing %s: %w", c.Path, err)
	}

	entry := Entry{
		Path:         c.Path,
		Hash:         c.Hash,
		OutputPath:   dst,
		TranslatedAt: m.now().UTC(),
		Engine:       m.engine,
		Model:        m.model,
	}
	if err := m.store.Put(ctx, entry); err != nil {
		if written {
			m.rollback(ctx, dst, backedUp)
		}
		return false, errors.Errorf("recording %s: %w", c.Path, err)
	}

	if backedUp {
		if err := DropBackup(dst); err != nil {
			logger.Warn().Err(err).Str("path", dst).Msg("leaving stale backup")
		}
	}

	logger.Debug().Str("path", c.Path).Bool("written", written).Msg("committed translation")
	return written, nil
}

// writeIfChanged leaves identical files alone so unchanged runs do not touch the tree
func (m *Manager) writeIfChanged(dst string, content []byte) (written, backedUp bool, err error) {
	existing, err := os.ReadFile(dst)
	if err == nil && bytes.Equal(existing, content) {
		return false, false, nil
	}

	backedUp, err = BackupFile(dst)
	if err != nil {
		return false, false, err
	}
	if err := WriteFileAtomic(dst, content); err != nil {
		if backedUp {
			_ = DropBackup(dst)
		}
		return false, false, err
	}
	return true, backedUp, nil
}

func (m *Manager) rollback(ctx context.Context, dst string, backedUp bool) {
	logger := zerolog.Ctx(ctx)

	var err error
	if backedUp {
		err = RestoreFile(dst)
	} else {
		err = os.Remove(dst)
	}
	if err != nil {
		logger.Error().Err(err).Str("path", dst).Msg("rolling back output file")
	}
}

// 🪞 Mirror copies an untranslated file from root into the output tree when its
// content differs. It reports whether anything was written.
func (m *Manager) Mirror(ctx context.Context, root, rel string) (bool, error) {
	dst, err := m.OutputPath(rel)
	if err != nil {
		return false, err
	}
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return false, errors.Errorf("reading %s: %w", rel, err)
	}

	l := m.pathLock(rel)
	l.Lock()
	defer l.Unlock()

	written, backedUp, err := m.writeIfChanged(dst, content)
	if err != nil {
		return false, errors.Errorf("mirroring %s: %w", rel, err)
	}
	if backedUp {
		_ = DropBackup(dst)
	}
	return written, nil
}

// 🗑️ Prune forgets the entry for rel and removes its translated output. With
// keepFile the output file is left for Mirror to overwrite. Empty parent
// directories inside the output tree are removed. It reports whether a file
// was deleted.
func (m *Manager) Prune(ctx context.Context, rel string, keepFile bool) (bool, error) {
	dst, err := m.OutputPath(rel)
	if err != nil {
		return false, err
	}

	l := m.pathLock(rel)
	l.Lock()
	defer l.Unlock()

	removed := false
	if !keepFile {
		if err := os.Remove(dst); err == nil {
			removed = true
			m.removeEmptyParents(dst)
		} else if !os.IsNotExist(err) {
			return false, errors.Errorf("removing output for %s: %w", rel, err)
		}
	}

	if err := m.store.Delete(ctx, rel); err != nil {
		return removed, errors.Errorf("forgetting %s: %w", rel, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", rel).Bool("removed", removed).Msg("pruned stale entry")
	return removed, nil
}

func (m *Manager) removeEmptyParents(path string) {
	for dir := filepath.Dir(path); dir != m.outDir && strings.HasPrefix(dir, m.outDir+string(filepath.Separator)); dir = filepath.Dir(dir) {
		// fails on non-empty directories, which ends the walk
		if err := os.Remove(dir); err != nil {
			return
		}
	}
}

// Revision is the source revision recorded by the last run
func (m *Manager) Revision(ctx context.Context) (string, error) {
	return m.store.Revision(ctx)
}

func (m *Manager) SetRevision(ctx context.Context, rev string) error {
	return m.store.SetRevision(ctx, rev)
}

// 🧹 Clean removes the output tree and forgets every entry
func (m *Manager) Clean(ctx context.Context) error {
	if err := os.RemoveAll(m.outDir); err != nil {
		return errors.Errorf("removing output tree: %w", err)
	}
	if err := m.store.Reset(ctx); err != nil {
		return errors.Errorf("resetting store: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("dir", m.outDir).Msg("cleaned workspace")
	return nil
}
