/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	applog "core2d/internal/log"
	"core2d/internal/model"
)

// logRecords sends the log to a JSON file for the rest of the test and
// returns a reader for the records written so far.
func logRecords(t *testing.T) func() []map[string]any {
	t.Helper()
	path := filepath.Join(t.TempDir(), "core2d.log")
	applog.Init(applog.Options{Level: "info", File: path})
	t.Cleanup(func() { applog.Init(applog.Options{Level: "info"}) })
	return func() []map[string]any {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read log: %v", err)
		}
		var out []map[string]any
		for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
			var rec map[string]any
			if err := json.Unmarshal([]byte(line), &rec); err != nil {
				t.Fatalf("decode %q: %v", line, err)
			}
			out = append(out, rec)
		}
		return out
	}
}

func findRecord(recs []map[string]any, msg string) map[string]any {
	for _, r := range recs {
		if r["msg"] == msg {
			return r
		}
	}
	return nil
}

func TestOpenAndSaveLogTheProjectRoot(t *testing.T) {
	records := logRecords(t)
	root := t.TempDir()
	if _, err := InitProject(root, model.NewProject("Poster")); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := Open(root); err != nil {
		t.Fatalf("open: %v", err)
	}
	recs := records()
	saved := findRecord(recs, "project saved")
	if saved == nil || saved["project"] != root || saved["component"] != "storage" || saved["op"] != "save" {
		t.Fatalf("save record: %v", saved)
	}
	opened := findRecord(recs, "project opened")
	if opened == nil || opened["project"] != root || opened["op"] != "open" || opened["name"] != "Poster" {
		t.Fatalf("open record: %v", opened)
	}
}
