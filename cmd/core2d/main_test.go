/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"core2d/internal/config"
	"core2d/internal/storage"
)

func exec(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, config.Defaults(), &storage.ProjectHandle{}, &out, &errOut)
	return code, out.String(), errOut.String()
}

func newProject(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "proj")
	if code, _, stderr := exec(t, "new", "-width", "400", "-height", "300", dir, "Poster"); code != 0 {
		t.Fatalf("new failed with %d: %s", code, stderr)
	}
	return dir
}

func TestVersionAndUsage(t *testing.T) {
	if code, out, _ := exec(t, "version"); code != 0 || strings.TrimSpace(out) == "" {
		t.Fatalf("version: code=%d out=%q", code, out)
	}
	if code, out, _ := exec(t); code != 0 || !strings.Contains(out, "Usage:") {
		t.Fatalf("no args must print usage, code=%d", code)
	}
	if code, _, stderr := exec(t, "frobnicate"); code != 2 || !strings.Contains(stderr, "unknown command") {
		t.Fatalf("unknown command: code=%d stderr=%q", code, stderr)
	}
	if code, _, _ := exec(t, "new", "only-dir"); code != 2 {
		t.Fatalf("missing name must be a usage error, got %d", code)
	}
}

func TestNewAndInfo(t *testing.T) {
	dir := newProject(t)
	if _, err := os.Stat(filepath.Join(dir, storage.ManifestFileName)); err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
	code, out, stderr := exec(t, "info", dir)
	if code != 0 {
		t.Fatalf("info failed: %s", stderr)
	}
	for _, want := range []string{"Project: Poster", "1 page(s)", "400x300"} {
		if !strings.Contains(out, want) {
			t.Fatalf("info output missing %q:\n%s", want, out)
		}
	}
	if code, _, _ := exec(t, "info", filepath.Join(t.TempDir(), "missing")); code != 1 {
		t.Fatalf("info of a missing project must fail with 1, got %d", code)
	}
}

func TestExports(t *testing.T) {
	dir := newProject(t)
	pdf := filepath.Join(t.TempDir(), "out.pdf")
	if code, _, stderr := exec(t, "export-pdf", "-out", pdf, dir); code != 0 {
		t.Fatalf("export-pdf: %s", stderr)
	}
	if b, err := os.ReadFile(pdf); err != nil || !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("pdf not written: %v", err)
	}
	if code, _, _ := exec(t, "export-pdf", "-pages", "0", dir); code != 2 {
		t.Fatalf("page 0 must be rejected, got %d", code)
	}
	if code, _, stderr := exec(t, "export-svg", dir); code != 0 {
		t.Fatalf("export-svg: %s", stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, storage.ExportsDirName, "svg", "page-1.svg")); err != nil {
		t.Fatalf("svg page missing: %v", err)
	}
	if code, _, stderr := exec(t, "export-png", "-scale", "0.5", dir); code != 0 {
		t.Fatalf("export-png: %s", stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, storage.ExportsDirName, "png", "page-1.png")); err != nil {
		t.Fatalf("png page missing: %v", err)
	}
	if code, _, stderr := exec(t, "export", "-preset", "print", "-formats", "pdf", dir); code != 0 {
		t.Fatalf("export preset: %s", stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, storage.ExportsDirName, "print", "pdf", "project.pdf")); err != nil {
		t.Fatalf("preset pdf missing: %v", err)
	}
	if code, _, _ := exec(t, "export", "-preset", "poster", dir); code != 2 {
		t.Fatalf("unknown preset must be a usage error, got %d", code)
	}
}

func TestImagesAddAndList(t *testing.T) {
	dir := newProject(t)
	if code, out, _ := exec(t, "images", dir); code != 0 || !strings.Contains(out, "No images") {
		t.Fatalf("fresh project must have no images: %q", out)
	}
	file := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(file, []byte("not really a png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if code, out, stderr := exec(t, "images", "add", dir, file); code != 0 || !strings.Contains(out, "logo.png") {
		t.Fatalf("images add: code=%d out=%q stderr=%q", code, out, stderr)
	}
	code, out, _ := exec(t, "images", dir)
	if code != 0 || !strings.Contains(out, "logo.png") || !strings.Contains(out, "16") {
		t.Fatalf("images list: code=%d out=%q", code, out)
	}
	if code, out, _ := exec(t, "images", "purge", dir); code != 0 || !strings.Contains(out, "Removed 1") {
		t.Fatalf("images purge: code=%d out=%q", code, out)
	}
	if code, out, _ := exec(t, "images", dir); code != 0 || !strings.Contains(out, "No images") {
		t.Fatalf("purged image still listed: %q", out)
	}
}

func TestStylesExportAndInstall(t *testing.T) {
	src := newProject(t)
	zip := filepath.Join(t.TempDir(), "styles.zip")
	if code, _, stderr := exec(t, "styles", "export", src, zip); code != 0 {
		t.Fatalf("styles export: %s", stderr)
	}
	dst := newProject(t)
	code, out, stderr := exec(t, "styles", "install", dst, zip)
	if code != 0 {
		t.Fatalf("styles install: %s", stderr)
	}
	if !strings.Contains(out, "Installed 0") {
		t.Fatalf("library with the same name must be skipped: %q", out)
	}
	if code, _, _ := exec(t, "styles", "rename", dst, zip); code != 2 {
		t.Fatalf("unknown styles command must be a usage error, got %d", code)
	}
}
