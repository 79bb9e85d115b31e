/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"context"
	"sync"
	"testing"
	"time"

	"core2d/internal/history"
	"core2d/internal/model"
	"core2d/internal/storage"
)

func rename(p *model.Project, name string) {
	old := p.Name
	p.Name = name
	history.SnapshotNamed(p.History, "rename", old, name, func(v string) { p.Name = v })
}

func TestSaveIfChangedFollowsHistory(t *testing.T) {
	ph, err := storage.InitProject(t.TempDir(), model.NewProject("Test"))
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	a := NewAutosaver(ph, time.Hour, nil)

	if saved, err := a.SaveIfChanged(); err != nil || saved {
		t.Fatalf("unchanged project must not be saved: saved=%v err=%v", saved, err)
	}
	rename(ph.Project, "Renamed")
	if saved, err := a.SaveIfChanged(); err != nil || !saved {
		t.Fatalf("changed project must be saved: saved=%v err=%v", saved, err)
	}
	reopened, err := storage.Open(ph.Root)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if reopened.Project.Name != "Renamed" {
		t.Fatalf("autosave did not persist the edit, got %q", reopened.Project.Name)
	}
	if saved, _ := a.SaveIfChanged(); saved {
		t.Fatalf("second save without edits must be skipped")
	}
	ph.Project.History.Undo()
	if saved, _ := a.SaveIfChanged(); !saved {
		t.Fatalf("undo counts as a change")
	}
}

func TestSaveIfChangedNeedsProject(t *testing.T) {
	a := NewAutosaver(&storage.ProjectHandle{}, 0, nil)
	if _, err := a.SaveIfChanged(); err == nil {
		t.Fatalf("expected error without a project")
	}
	if a.interval != DefaultAutosaveInterval {
		t.Fatalf("expected default interval, got %v", a.interval)
	}
}

func TestRunSavesPendingChangesOnCancel(t *testing.T) {
	ph, err := storage.InitProject(t.TempDir(), model.NewProject("Test"))
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	var mu sync.Mutex
	a := NewAutosaver(ph, time.Hour, &mu)

	mu.Lock()
	rename(ph.Project, "Pending")
	mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
	reopened, err := storage.Open(ph.Root)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if reopened.Project.Name != "Pending" {
		t.Fatalf("pending edit not saved on shutdown, got %q", reopened.Project.Name)
	}
}
