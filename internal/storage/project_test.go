/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"core2d/internal/model"
)

func TestInitProjectCreatesStructureAndManifest(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, model.NewProject("Test Project"))
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	if ph.ManifestPath != filepath.Join(root, ManifestFileName) {
		t.Fatalf("ManifestPath = %q", ph.ManifestPath)
	}
	b, err := os.ReadFile(ph.ManifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	got, err := Decode(b)
	if err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if got.Name != "Test Project" {
		t.Fatalf("manifest name mismatch: got %q", got.Name)
	}
	for _, d := range []string{ExportsDirName, BackupsDirName} {
		p := filepath.Join(root, d)
		if fi, err := os.Stat(p); err != nil || !fi.IsDir() {
			t.Fatalf("expected directory %s to exist", p)
		}
	}
	if _, err := os.Stat(ImageStorePath(root)); !os.IsNotExist(err) {
		t.Fatalf("image store created for a project without images")
	}
	if _, err := InitProject("  ", model.NewProject("x")); err == nil {
		t.Fatalf("blank root accepted")
	}
}

func TestSaveCreatesTimestampedBackup(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, model.NewProject("Backup Test"))
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	ph.Project.Name = "changed"
	if err := Save(ph); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	baks, err := Backups(root)
	if err != nil {
		t.Fatalf("Backups: %v", err)
	}
	if len(baks) == 0 {
		t.Fatalf("expected at least one backup file, found 0")
	}
	old, err := readProject(baks[len(baks)-1])
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if old.Name != "Backup Test" {
		t.Fatalf("backup holds %q, want the previous manifest", old.Name)
	}
}

func TestOpenFallsBackToLatestBackupOnCorruption(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, model.NewProject("Open From Backup"))
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	if err := Save(ph); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := os.WriteFile(ph.ManifestPath, []byte("{ this is not json"), 0o644); err != nil {
		t.Fatalf("corrupt manifest: %v", err)
	}
	opened, err := Open(root)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if opened.Project.Name != "Open From Backup" {
		t.Fatalf("opened project name mismatch: got %q", opened.Project.Name)
	}
}

func TestOpenWithoutManifestOrBackupFails(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Fatalf("Open of an empty directory succeeded")
	}
}

func TestSaveAndOpenKeepsProjectAndImages(t *testing.T) {
	root := t.TempDir()
	src := richProject(t)
	ph, err := InitProject(root, src)
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	want, _ := Encode(src)

	opened, err := Open(root)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	got, _ := Encode(opened.Project)
	if !bytes.Equal(want, got) {
		t.Fatalf("reopened project differs")
	}
	data, ok := opened.Project.Images().GetImage("Images/photo.png")
	if !ok || string(data) != "png" {
		t.Fatalf("image not restored: %q %v", data, ok)
	}

	// removing the image from the cache removes it from the store on save
	ph.Project.Images().RemoveImage("Images/photo.png")
	if err := Save(ph); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	again, err := Open(root)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if again.Project.Images().Len() != 0 {
		t.Fatalf("removed image came back")
	}
}

func TestSaveAsMovesHandle(t *testing.T) {
	ph, err := InitProject(t.TempDir(), model.NewProject("Moving"))
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	dst := filepath.Join(t.TempDir(), "copy")
	if err := SaveAs(ph, dst); err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}
	if ph.Root != dst || ph.ManifestPath != filepath.Join(dst, ManifestFileName) {
		t.Fatalf("handle not moved: %+v", ph)
	}
	if _, err := Open(dst); err != nil {
		t.Fatalf("Open copy: %v", err)
	}
}

func TestAutosaveCrashSnapshotWritesFile(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, model.NewProject("Crash Snapshot"))
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	path, err := AutosaveCrashSnapshot(ph)
	if err != nil {
		t.Fatalf("AutosaveCrashSnapshot error: %v", err)
	}
	got, err := readProject(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if got.Name != "Crash Snapshot" {
		t.Fatalf("snapshot content mismatch: got %q", got.Name)
	}
	baks, _ := Backups(root)
	for _, b := range baks {
		if strings.Contains(b, "crash") {
			t.Fatalf("crash snapshot listed as backup: %s", b)
		}
	}
}
