/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package stylepack moves style libraries between projects as zip archives.
// A pack holds a short text manifest and one JSON document per library under
// styles/.
package stylepack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	applog "core2d/internal/log"
	"core2d/internal/model"
	"core2d/internal/storage"
)

// ManifestName is the archive entry holding the human readable manifest.
const ManifestName = "stylepack.manifest.txt"

const stylesDir = "styles/"

// ExportProjectStyles writes every style library of p into a pack at destZipPath.
func ExportProjectStyles(p *model.Project, destZipPath string) error {
	if p == nil {
		return errors.New("project is nil")
	}
	return Export(destZipPath, p.Name, p.StyleLibraries.Items()...)
}

// Export writes libs into a pack at destZipPath, replacing any existing file.
func Export(destZipPath, source string, libs ...*model.Library[*model.ShapeStyle]) error {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "export").With(slog.String("zip", destZipPath))
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	// On Windows, remove destination if present before create
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)

	var names []string
	for _, lib := range libs {
		names = append(names, lib.Name)
	}
	manifest := fmt.Sprintf("core2d Style Pack\nCreated: %s\nSource: %s\nLibraries: %s\n",
		time.Now().Format(time.RFC3339), source, strings.Join(names, ", "))
	w, err := zw.Create(ManifestName)
	if err != nil {
		return fmt.Errorf("add manifest: %w", err)
	}
	if _, err := io.WriteString(w, manifest); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	for i, lib := range libs {
		data, err := storage.EncodeStyleLibrary(lib)
		if err != nil {
			return err
		}
		fw, err := zw.Create(fmt.Sprintf("%s%02d-%s.json", stylesDir, i+1, slug(lib.Name)))
		if err != nil {
			return fmt.Errorf("add library: %w", err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("write library: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		l.Error("zip build failed", slog.Any("err", err))
		return fmt.Errorf("build zip: %w", err)
	}
	l.Info("style pack exported", slog.Int("libraries", len(libs)))
	return nil
}

// slug keeps letters, digits, dashes and underscores of a library name.
func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "styles"
	}
	return b.String()
}

// Read returns the libraries stored in the pack, in archive order.
func Read(packZipPath string) ([]*model.Library[*model.ShapeStyle], error) {
	r, err := zip.OpenReader(packZipPath)
	if err != nil {
		return nil, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()

	var libs []*model.Library[*model.ShapeStyle]
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.HasPrefix(f.Name, stylesDir) || path.Ext(f.Name) != ".json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		lib, err := storage.DecodeStyleLibrary(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		libs = append(libs, lib)
	}
	return libs, nil
}

// InstallPack adds the libraries of the pack to p as undoable edits. A
// library whose name p already uses is skipped. It returns the number of
// libraries added.
func InstallPack(p *model.Project, packZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "install").With(slog.String("zip", packZipPath))
	if p == nil {
		return 0, errors.New("project is nil")
	}
	libs, err := Read(packZipPath)
	if err != nil {
		return 0, err
	}
	installed := 0
	for _, lib := range libs {
		if p.StyleLibraries.IndexFunc(func(x *model.Library[*model.ShapeStyle]) bool { return x.Name == lib.Name }) >= 0 {
			l.Warn("skip existing library", slog.String("name", lib.Name))
			continue
		}
		if p.AddStyleLibrary(lib) {
			installed++
		}
	}
	if p.CurrentStyleLibrary == nil && p.StyleLibraries.Len() > 0 {
		p.SetCurrentStyleLibrary(p.StyleLibraries.At(0))
	}
	l.Info("style pack installed", slog.Int("libraries", installed))
	return installed, nil
}
