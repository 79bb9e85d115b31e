/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "core2d/internal/log"
	"core2d/internal/model"
	"core2d/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// StoreDirName holds derived per-project data under the project root.
	StoreDirName  = ".core2d"
	StoreFileName = "images.sqlite"

	// schemaVersion tracks the image store schema. Bump it together with a
	// step in runMigrations.
	schemaVersion = 2
)

// ImageStorePath returns the image database path of a project root.
func ImageStorePath(projectRoot string) string {
	return filepath.Join(projectRoot, StoreDirName, StoreFileName)
}

// ImageStore keeps the encoded bytes of the project image cache in SQLite,
// keyed like the cache. The JSON project only references the keys.
type ImageStore struct {
	db   *sql.DB
	path string
	log  *slog.Logger
}

// OpenImageStore creates or opens the store of projectRoot with WAL enabled
// and the schema migrated to the current version.
func OpenImageStore(projectRoot string) (*ImageStore, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "image_store").With(
		slog.String("root", projectRoot),
	)
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	if err := os.MkdirAll(filepath.Join(projectRoot, StoreDirName), 0o755); err != nil {
		l.Error("create store dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	path := ImageStorePath(projectRoot)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure meta/version failed", slog.Any("err", err))
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		l.Error("run migrations failed", slog.Any("err", err))
		return nil, err
	}
	l.Debug("image store ready", slog.String("path", path))
	return &ImageStore{db: db, path: path, log: l}, nil
}

func (s *ImageStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file.
func (s *ImageStore) Path() string { return s.path }

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var cur int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// a fresh database starts at zero and migrates forward
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, 0, ?, ?, ?)`, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

// migrations[i] brings the schema from version i to i+1.
var migrations = [][]string{
	{
		`CREATE TABLE IF NOT EXISTS images (
			key        TEXT PRIMARY KEY,
			data       BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	},
	{
		`ALTER TABLE images ADD COLUMN size INTEGER NOT NULL DEFAULT 0;`,
		`ALTER TABLE images ADD COLUMN sha256 TEXT NOT NULL DEFAULT '';`,
		`CREATE INDEX IF NOT EXISTS idx_images_sha256 ON images(sha256);`,
	},
}

// runMigrations applies each pending step in its own transaction.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var cur int
	if err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for ; cur < schemaVersion && cur < len(migrations); cur++ {
		next := cur + 1
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", next, err)
		}
		for _, q := range migrations[cur] {
			if _, err := tx.ExecContext(ctx, q); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d stmt failed: %w", next, err)
			}
		}
		if _, err := tx.ExecContext(ctx, `UPDATE version SET schema=?, updated_at=? WHERE id=1`, next, time.Now().UTC().Format(time.RFC3339)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d update version: %w", next, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d commit: %w", next, err)
		}
	}
	return nil
}

// SchemaVersion reports the migrated schema version.
func (s *ImageStore) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// SaveImages makes the store hold exactly the keys of cache. Unchanged
// images are not rewritten.
func (s *ImageStore) SaveImages(ctx context.Context, cache *model.ImageCache) error {
	if cache == nil {
		return errors.New("image cache is nil")
	}
	existing := map[string]string{}
	rows, err := s.db.QueryContext(ctx, `SELECT key, sha256 FROM images`)
	if err != nil {
		return fmt.Errorf("list images: %w", err)
	}
	for rows.Next() {
		var k, h string
		if err := rows.Scan(&k, &h); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan image: %w", err)
		}
		existing[k] = h
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list images: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save images: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	written := 0
	for _, key := range cache.Keys() {
		data, _ := cache.GetImage(key)
		sum := sha256.Sum256(data)
		h := hex.EncodeToString(sum[:])
		if old, ok := existing[key]; ok && old == h {
			delete(existing, key)
			continue
		}
		delete(existing, key)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO images(key, data, size, sha256, updated_at) VALUES(?, ?, ?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET data=excluded.data, size=excluded.size, sha256=excluded.sha256, updated_at=excluded.updated_at`,
			key, data, len(data), h, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("write image %s: %w", key, err)
		}
		written++
	}
	for key := range existing {
		if _, err := tx.ExecContext(ctx, `DELETE FROM images WHERE key=?`, key); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("delete image %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit images: %w", err)
	}
	s.log.Debug("images saved", slog.Int("written", written), slog.Int("deleted", len(existing)))
	return nil
}

// LoadImages adds every stored image to the cache of p. Keys already in the
// cache keep their bytes.
func (s *ImageStore) LoadImages(ctx context.Context, p *model.Project) error {
	if p == nil {
		return errors.New("project is nil")
	}
	if p.Images() == nil {
		p.SetImages(model.NewImageCache())
	}
	rows, err := s.db.QueryContext(ctx, `SELECT key, data FROM images ORDER BY key`)
	if err != nil {
		return fmt.Errorf("load images: %w", err)
	}
	defer rows.Close()
	n := 0
	for rows.Next() {
		var key string
		var data []byte
		if err := rows.Scan(&key, &data); err != nil {
			return fmt.Errorf("scan image: %w", err)
		}
		p.Images().AddImage(key, data)
		n++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load images: %w", err)
	}
	s.log.Debug("images loaded", slog.Int("count", n))
	return nil
}

// ListImageKeys returns the stored keys in order.
func (s *ImageStore) ListImageKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM images ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list image keys: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan image key: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// ImageInfo describes one stored image.
type ImageInfo struct {
	Key     string
	Size    int64
	SHA256  string
	Updated time.Time
}

// ListImages returns the metadata of every stored image, ordered by key.
func (s *ImageStore) ListImages(ctx context.Context) ([]ImageInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, size, sha256, updated_at FROM images ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()
	var out []ImageInfo
	for rows.Next() {
		var info ImageInfo
		var ts string
		if err := rows.Scan(&info.Key, &info.Size, &info.SHA256, &ts); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		info.Updated, _ = time.Parse(time.RFC3339, ts)
		out = append(out, info)
	}
	return out, rows.Err()
}
