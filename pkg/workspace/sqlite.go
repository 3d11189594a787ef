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
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"gitlab.com/tozd/go/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	path TEXT PRIMARY KEY,
	hash TEXT NOT NULL,
	output_path TEXT NOT NULL DEFAULT '',
	translated_at TEXT NOT NULL,
	engine TEXT NOT NULL DEFAULT '',
	model TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// 🪶 SQLiteStore keeps one row per entry in a sqlite database
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Errorf("opening sqlite store: %w", err)
	}
	// sqlite serializes writers anyway
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, path string) (Entry, bool, error) {
	var e Entry
	var ts string
	err := s.db.QueryRowContext(ctx,
		`SELECT path, hash, output_path, translated_at, engine, model FROM entries WHERE path = ?`, path,
	).Scan(&e.Path, &e.Hash, &e.OutputPath, &ts, &e.Engine, &e.Model)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, errors.Errorf("querying entry %s: %w", path, err)
	}
	if e.TranslatedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
		return Entry{}, false, errors.Errorf("parsing timestamp of %s: %w", path, err)
	}
	return e, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (path, hash, output_path, translated_at, engine, model)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			hash = excluded.hash,
			output_path = excluded.output_path,
			translated_at = excluded.translated_at,
			engine = excluded.engine,
			model = excluded.model`,
		e.Path, e.Hash, e.OutputPath, e.TranslatedAt.UTC().Format(time.RFC3339Nano), e.Engine, e.Model)
	if err != nil {
		return errors.Errorf("storing entry %s: %w", e.Path, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE path = ?`, path); err != nil {
		return errors.Errorf("deleting entry %s: %w", path, err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, hash, output_path, translated_at, engine, model FROM entries ORDER BY path`)
	if err != nil {
		return nil, errors.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.Path, &e.Hash, &e.OutputPath, &ts, &e.Engine, &e.Model); err != nil {
			return nil, errors.Errorf("scanning entry: %w", err)
		}
		if e.TranslatedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, errors.Errorf("parsing timestamp of %s: %w", e.Path, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Errorf("listing entries: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Revision(ctx context.Context) (string, error) {
	var rev string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'commit'`).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", errors.Errorf("reading revision: %w", err)
	}
	return rev, nil
}

func (s *SQLiteStore) SetRevision(ctx context.Context, rev string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('commit', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, rev)
	if err != nil {
		return errors.Errorf("storing revision: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries; DELETE FROM meta;`); err != nil {
		return errors.Errorf("resetting store: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
