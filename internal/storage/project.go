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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	applog "core2d/internal/log"
	"core2d/internal/model"
)

const (
	ManifestFileName = "project.json"
	BackupsDirName   = "backups"
	ExportsDirName   = "exports"
)

var standardSubDirs = []string{
	ExportsDirName,
	BackupsDirName,
}

// ProjectHandle ties a loaded project to its directory on disk.
// Root contains project.json, the backups folder and the image store.
type ProjectHandle struct {
	Root         string
	ManifestPath string
	Project      *model.Project
}

func logger(op string) *slog.Logger {
	return applog.WithOperation(applog.WithComponent("storage"), op)
}

// InitProject creates root with the standard subfolders and saves proj into it.
func InitProject(root string, proj *model.Project) (*ProjectHandle, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}
	if proj == nil {
		return nil, errors.New("project is nil")
	}
	if err := scaffold(root); err != nil {
		return nil, err
	}
	ph := &ProjectHandle{
		Root:         root,
		ManifestPath: filepath.Join(root, ManifestFileName),
		Project:      proj,
	}
	if err := Save(ph); err != nil {
		return nil, err
	}
	return ph, nil
}

func scaffold(root string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create project root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return fmt.Errorf("create subdir %s: %w", d, err)
		}
	}
	return nil
}

// Open loads the project in root. When project.json is missing or does not
// decode, the newest backup is used instead. Stored images are loaded into
// the project cache.
func Open(root string) (*ProjectHandle, error) {
	return OpenContext(context.Background(), root)
}

// OpenContext is Open with a context that bounds image loading. Its log
// records carry the project root.
func OpenContext(ctx context.Context, root string) (*ProjectHandle, error) {
	ctx = applog.WithProject(ctx, root)
	l := logger("open")
	mpath := filepath.Join(root, ManifestFileName)
	p, err := readProject(mpath)
	if err != nil {
		bp, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("open manifest: %w; backup attempt: %v", err, berr)
		}
		l.WarnContext(ctx, "manifest unreadable, opened latest backup", slog.Any("err", err))
		p = bp
	}
	ph := &ProjectHandle{Root: root, ManifestPath: mpath, Project: p}
	if _, serr := os.Stat(ImageStorePath(root)); serr == nil {
		if err := loadImages(ctx, ph); err != nil {
			return nil, err
		}
	}
	l.InfoContext(ctx, "project opened", slog.String("name", p.Name), slog.Int("images", p.Images().Len()))
	return ph, nil
}

func readProject(path string) (*model.Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}

func loadImages(ctx context.Context, ph *ProjectHandle) error {
	store, err := OpenImageStore(ph.Root)
	if err != nil {
		return err
	}
	defer store.Close()
	ctx, cancel := context.WithTimeout(ctx, imageTimeout)
	defer cancel()
	return store.LoadImages(ctx, ph.Project)
}

const imageTimeout = 30 * time.Second

// Save writes the project transactionally. The previous manifest is copied
// to a timestamped backup first. When the project has images, the image
// store is synchronized with the cache.
func Save(ph *ProjectHandle) error {
	return SaveContext(context.Background(), ph)
}

// SaveContext is Save with a context that bounds the image store sync.
func SaveContext(ctx context.Context, ph *ProjectHandle) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	if ph.Root == "" || ph.ManifestPath == "" {
		return errors.New("invalid ProjectHandle: missing paths")
	}
	if ph.Project == nil {
		return errors.New("invalid ProjectHandle: no project")
	}
	ctx = applog.WithProject(ctx, ph.Root)
	data, err := Encode(ph.Project)
	if err != nil {
		return err
	}

	bdir := filepath.Join(ph.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return fmt.Errorf("ensure backups dir: %w", err)
	}
	if _, statErr := os.Stat(ph.ManifestPath); statErr == nil {
		stamp := time.Now().Format("20060102-150405.000")
		bpath := filepath.Join(bdir, fmt.Sprintf("%s.%s.bak", ManifestFileName, stamp))
		if cerr := copyFile(ph.ManifestPath, bpath); cerr != nil {
			return fmt.Errorf("backup current manifest: %w", cerr)
		}
	}

	if err := writeAtomic(ph.ManifestPath, data); err != nil {
		return err
	}

	if images := ph.Project.Images(); images != nil && (images.Len() > 0 || fileExists(ImageStorePath(ph.Root))) {
		store, err := OpenImageStore(ph.Root)
		if err != nil {
			return err
		}
		defer store.Close()
		ictx, cancel := context.WithTimeout(ctx, imageTimeout)
		defer cancel()
		if err := store.SaveImages(ictx, images); err != nil {
			return err
		}
	}
	logger("save").InfoContext(ctx, "project saved", slog.String("path", ph.ManifestPath), slog.Int("bytes", len(data)))
	return nil
}

// SaveAs moves the handle to newRoot, scaffolding it, and saves there.
func SaveAs(ph *ProjectHandle, newRoot string) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	if newRoot == "" {
		return errors.New("new root is empty")
	}
	if err := scaffold(newRoot); err != nil {
		return err
	}
	ph.Root = newRoot
	ph.ManifestPath = filepath.Join(newRoot, ManifestFileName)
	return Save(ph)
}

// AutosaveCrashSnapshot writes the project next to the backups under a name
// Open never picks up, and returns its path. It does not touch project.json.
func AutosaveCrashSnapshot(ph *ProjectHandle) (string, error) {
	if ph == nil || ph.Project == nil {
		return "", errors.New("nil ProjectHandle")
	}
	data, err := Encode(ph.Project)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(ph.Root, BackupsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure backups dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.crash-%s.json", ManifestFileName, time.Now().Format("20060102-150405.000")))
	if err := writeAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// writeAtomic writes to a temp file in the target directory and renames it
// over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	if werr := writeFileSync(temp, data); werr != nil {
		return fmt.Errorf("write temp file: %w", werr)
	}
	// Windows cannot rename over an existing file
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
	if rerr := os.Rename(temp, path); rerr != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), rerr)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sf.Close(); err == nil {
			err = cerr
		}
	}()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	return df.Sync()
}

// Backups lists the manifest backups of root, oldest first.
func Backups(root string) ([]string, error) {
	bdir := filepath.Join(root, BackupsDirName)
	ents, err := os.ReadDir(bdir)
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	var out []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, ManifestFileName+".") && strings.HasSuffix(name, ".bak") {
			out = append(out, filepath.Join(bdir, name))
		}
	}
	// the timestamp in the name sorts lexicographically
	sort.Strings(out)
	return out, nil
}

func openFromLatestBackup(root string) (*model.Project, error) {
	candidates, err := Backups(root)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, errors.New("no backups found")
	}
	latest := candidates[len(candidates)-1]
	p, err := readProject(latest)
	if err != nil {
		return nil, fmt.Errorf("read latest backup: %w", err)
	}
	return p, nil
}
