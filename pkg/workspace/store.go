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
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"gitlab.com/tozd/go/errors"
)

// 📒 Entry records the last successful translation of one source file
type Entry struct {
	Path         string    `json:"path"`
	Hash         string    `json:"hash"`
	OutputPath   string    `json:"output_path,omitempty"`
	TranslatedAt time.Time `json:"translation_timestamp"`
	Engine       string    `json:"engine,omitempty"`
	Model        string    `json:"model,omitempty"`
}

// 🗄️ Store persists entries across runs. Implementations are safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, path string) (Entry, bool, error)
	Put(ctx context.Context, e Entry) error
	Delete(ctx context.Context, path string) error
	List(ctx context.Context) ([]Entry, error)
	Revision(ctx context.Context) (string, error)
	SetRevision(ctx context.Context, rev string) error
	Reset(ctx context.Context) error
	Close() error
}

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// OpenStore opens the store of the given kind at path
func OpenStore(ctx context.Context, kind, path string) (Store, error) {
	switch kind {
	case "", StoreJSON:
		return OpenJSONStore(ctx, path)
	case StoreSQLite:
		return OpenSQLiteStore(ctx, path)
	default:
		return nil, errors.Errorf("unknown store kind %q", kind)
	}
}

// metaFile is the on disk layout of the json store
type metaFile struct {
	Commit string  `json:"commit"`
	Files  []Entry `json:"files"`
}

// 📄 JSONStore keeps every entry in one json file, rewritten atomically on each change
type JSONStore struct {
	path string

	mu      sync.Mutex
	commit  string
	entries map[string]Entry
}

// OpenJSONStore loads path, starting empty when it does not exist
func OpenJSONStore(ctx context.Context, path string) (*JSONStore, error) {
	s := &JSONStore{path: path, entries: map[string]Entry{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Errorf("reading store: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}

	var mf metaFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, errors.Errorf("parsing store %s: %w", path, err)
	}
	s.commit = mf.Commit
	for _, e := range mf.Files {
		s.entries[e.Path] = e
	}
	return s, nil
}

func (s *JSONStore) Get(ctx context.Context, path string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[path]
	return e, ok, nil
}

func (s *JSONStore) Put(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.entries[e.Path]
	s.entries[e.Path] = e
	if err := s.flush(); err != nil {
		if had {
			s.entries[e.Path] = prev
		} else {
			delete(s.entries, e.Path)
		}
		return err
	}
	return nil
}

func (s *JSONStore) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.entries[path]
	if !had {
		return nil
	}
	delete(s.entries, path)
	if err := s.flush(); err != nil {
		s.entries[path] = prev
		return err
	}
	return nil
}

func (s *JSONStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(), nil
}

func (s *JSONStore) Revision(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit, nil
}

func (s *JSONStore) SetRevision(ctx context.Context, rev string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.commit
	s.commit = rev
	if err := s.flush(); err != nil {
		s.commit = prev
		return err
	}
	return nil
}

func (s *JSONStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commit = ""
	s.entries = map[string]Entry{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Errorf("removing store: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) sorted() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out
}

// flush must be called with mu held
func (s *JSONStore) flush() error {
	data, err := json.MarshalIndent(metaFile{Commit: s.commit, Files: s.sorted()}, "", "  ")
	if err != nil {
		return errors.Errorf("encoding store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Errorf("creating store directory: %w", err)
	}
	if err := WriteFileAtomic(s.path, append(data, '\n')); err != nil {
		return errors.Errorf("writing store: %w", err)
	}
	return nil
}
