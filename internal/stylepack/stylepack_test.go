/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package stylepack

import (
	"archive/zip"
	"path/filepath"
	"testing"

	"core2d/internal/model"
)

func TestExportAndInstallPack(t *testing.T) {
	src := model.NewProject("Source")
	dashed := model.NewStyle("Dashed", model.Color{A: 255, R: 200}, model.Color{}, 1)
	dashed.Dashes = "2 2"
	src.StyleLibraries = src.StyleLibraries.Append(model.NewLibrary("Lines & Fills", dashed))

	zipPath := filepath.Join(t.TempDir(), "packs", "out.zip")
	if err := ExportProjectStyles(src, zipPath); err != nil {
		t.Fatalf("export pack: %v", err)
	}
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	_ = r.Close()
	want := []string{ManifestName, "styles/01-default.json", "styles/02-lines--fills.json"}
	if len(names) != len(want) {
		t.Fatalf("entries %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("entry %d is %q, want %q", i, names[i], want[i])
		}
	}

	dst := model.NewProject("Target")
	installed, err := InstallPack(dst, zipPath)
	if err != nil {
		t.Fatalf("install pack: %v", err)
	}
	if installed != 1 {
		t.Fatalf("expected only the new library to be installed, got %d", installed)
	}
	if dst.StyleLibraries.Len() != 2 {
		t.Fatalf("expected 2 libraries, got %d", dst.StyleLibraries.Len())
	}
	lib := dst.StyleLibraries.At(1)
	if lib.Name != "Lines & Fills" || lib.Items.Len() != 1 || lib.Items.At(0).Dashes != "2 2" {
		t.Fatalf("installed library mismatch: %q", lib.Name)
	}
	if lib.Items.At(0).ID == dashed.ID {
		t.Fatalf("installed styles must get fresh ids")
	}
	if !dst.History.Undo() || dst.StyleLibraries.Len() != 1 {
		t.Fatalf("install must be undoable")
	}
}

func TestInstallPackErrors(t *testing.T) {
	if _, err := InstallPack(nil, "x.zip"); err == nil {
		t.Fatalf("expected error for nil project")
	}
	if _, err := InstallPack(model.NewProject("p"), filepath.Join(t.TempDir(), "missing.zip")); err == nil {
		t.Fatalf("expected error for missing pack")
	}
	if err := Export("", "p"); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{"Default": "default", "Lines & Fills": "lines--fills", "!!!": "styles", "a_b-C": "a_b-c"}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Fatalf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}
