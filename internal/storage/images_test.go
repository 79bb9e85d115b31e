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
	"testing"
	"time"

	"core2d/internal/model"
)

func TestImageStoreInitUsesWALAndMigrates(t *testing.T) {
	root := t.TempDir()
	s, err := OpenImageStore(root)
	if err != nil {
		t.Fatalf("OpenImageStore: %v", err)
	}
	defer s.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var mode string
	if err := s.db.QueryRowContext(ctx, "PRAGMA journal_mode;").Scan(&mode); err != nil {
		t.Fatalf("read journal_mode: %v", err)
	}
	if mode != "wal" && mode != "WAL" {
		t.Fatalf("expected WAL mode, got %s", mode)
	}
	v, err := s.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != schemaVersion {
		t.Fatalf("schema version = %d, want %d", v, schemaVersion)
	}
	s.Close()

	// reopening must not re-run migrations
	s2, err := OpenImageStore(root)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s2.Close()
}

func TestImageStoreSaveLoadList(t *testing.T) {
	root := t.TempDir()
	s, err := OpenImageStore(root)
	if err != nil {
		t.Fatalf("OpenImageStore: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	cache := model.NewImageCache()
	cache.AddImage("Images/b.png", []byte("bbbb"))
	cache.AddImage("Images/a.png", []byte("aa"))
	if err := s.SaveImages(ctx, cache); err != nil {
		t.Fatalf("SaveImages: %v", err)
	}
	keys, err := s.ListImageKeys(ctx)
	if err != nil {
		t.Fatalf("ListImageKeys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "Images/a.png" || keys[1] != "Images/b.png" {
		t.Fatalf("keys = %v", keys)
	}
	infos, err := s.ListImages(ctx)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	if infos[1].Size != 4 || len(infos[1].SHA256) != 64 {
		t.Fatalf("info = %+v", infos[1])
	}

	cache.RemoveImage("Images/b.png")
	if err := s.SaveImages(ctx, cache); err != nil {
		t.Fatalf("SaveImages: %v", err)
	}
	p := model.NewProject("load")
	if err := s.LoadImages(ctx, p); err != nil {
		t.Fatalf("LoadImages: %v", err)
	}
	if p.Images().Len() != 1 {
		t.Fatalf("loaded %d images, want 1", p.Images().Len())
	}
	if data, ok := p.Images().GetImage("Images/a.png"); !ok || string(data) != "aa" {
		t.Fatalf("image bytes = %q", data)
	}
}
