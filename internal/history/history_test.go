/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package history

import "testing"

func TestUndoRedoBasic(t *testing.T) {
	h := New(Config{})
	v := 1
	set := func(x int) { v = x }

	v = 2
	Snapshot(h, 1, 2, set)
	v = 3
	Snapshot(h, 2, 3, set)
	if u, r := h.Stats(); u != 2 || r != 0 {
		t.Fatalf("expected 2 undo records, got undo=%d redo=%d", u, r)
	}
	if !h.Undo() || v != 2 {
		t.Fatalf("undo expected 2, got %d", v)
	}
	if !h.Undo() || v != 1 {
		t.Fatalf("undo expected 1, got %d", v)
	}
	if !h.Redo() || v != 2 {
		t.Fatalf("redo expected 2, got %d", v)
	}
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	h := New(Config{})
	if h.CanUndo() || h.CanRedo() {
		t.Fatalf("fresh history must have nothing to undo or redo")
	}
	if h.Undo() || h.Redo() {
		t.Fatalf("undo/redo on empty stacks must report false")
	}
	var nilHistory *History
	Snapshot(nilHistory, 1, 2, func(int) {})
	if nilHistory.CanUndo() || nilHistory.Undo() {
		t.Fatalf("nil history must ignore everything")
	}
}

func TestSnapshotClearsRedo(t *testing.T) {
	h := New(Config{})
	v := 0
	set := func(x int) { v = x }
	Snapshot(h, 0, 1, set)
	h.Undo()
	if v != 0 {
		t.Fatalf("undo restored %d, want 0", v)
	}
	if !h.CanRedo() {
		t.Fatalf("expected redo after undo")
	}
	h.Redo()
	if v != 1 {
		t.Fatalf("redo restored %d, want 1", v)
	}
	h.Undo()
	Snapshot(h, 0, 5, set)
	if h.CanRedo() {
		t.Fatalf("new snapshot must clear redo")
	}
	h.Undo()
	if v != 0 {
		t.Fatalf("undo after new snapshot restored %d, want 0", v)
	}
}

func TestSnapshotDuringApplyIsIgnored(t *testing.T) {
	h := New(Config{})
	var set func(int)
	set = func(x int) {
		// setters must not be able to record history
		Snapshot(h, 100, 200, set)
	}
	Snapshot(h, 0, 1, set)
	h.Undo()
	if u, r := h.Stats(); u != 0 || r != 1 {
		t.Fatalf("unexpected stacks after undo: undo=%d redo=%d", u, r)
	}
}

func TestUndoRedoIdentity(t *testing.T) {
	h := New(Config{})
	v := "a"
	set := func(x string) { v = x }
	v = "b"
	Snapshot(h, "a", "b", set)
	v = "c"
	Snapshot(h, "b", "c", set)
	for i := 0; i < 3; i++ {
		h.Undo()
	}
	for i := 0; i < 3; i++ {
		h.Redo()
	}
	if v != "c" {
		t.Fatalf("undo^k redo^k must be identity, got %q", v)
	}
}

func TestDepthCap(t *testing.T) {
	h := New(Config{MaxDepth: 2})
	v := 0
	for i := 1; i <= 5; i++ {
		SnapshotNamed(h, "set", i-1, i, func(x int) { v = x })
	}
	if u, _ := h.Stats(); u != 2 {
		t.Fatalf("expected depth cap of 2, got %d", u)
	}
	h.Undo()
	h.Undo()
	if v != 3 || h.CanUndo() {
		t.Fatalf("expected oldest records dropped, v=%d", v)
	}
	if name, ok := h.Peek(); ok || name != "" {
		t.Fatalf("expected nothing to peek")
	}
}

func TestReset(t *testing.T) {
	h := New(Config{})
	Snapshot(h, 0, 1, func(int) {})
	h.Reset()
	if h.CanUndo() || h.CanRedo() {
		t.Fatalf("reset must clear both stacks")
	}
}

func TestVersionTracksEveryChange(t *testing.T) {
	h := New(Config{})
	seen := []uint64{h.Version()}
	step := func(label string) {
		v := h.Version()
		if v == seen[len(seen)-1] {
			t.Fatalf("%s: version did not change from %d", label, v)
		}
		seen = append(seen, v)
	}
	Snapshot(h, 0, 1, func(int) {})
	step("snapshot")
	h.Undo()
	step("undo")
	h.Redo()
	step("redo")
	h.Reset()
	step("reset")
	if h.Undo() {
		t.Fatalf("undo on empty history must fail")
	}
	if h.Version() != seen[len(seen)-1] {
		t.Fatalf("failed undo must not change the version")
	}
	var nilHistory *History
	if nilHistory.Version() != 0 {
		t.Fatalf("nil history version must be 0")
	}
}

func TestBatchUndoesAsOneStep(t *testing.T) {
	h := New(Config{})
	a, b := 0, ""
	h.Batch("gesture", func() {
		a = 1
		Snapshot(h, 0, 1, func(x int) { a = x })
		b = "x"
		Snapshot(h, "", "x", func(x string) { b = x })
		h.Batch("inner", func() {
			a = 2
			Snapshot(h, 1, 2, func(x int) { a = x })
		})
	})
	if u, _ := h.Stats(); u != 1 {
		t.Fatalf("batch left %d records, want 1", u)
	}
	if name, _ := h.Peek(); name != "gesture" {
		t.Fatalf("batch record named %q", name)
	}
	h.Undo()
	if a != 0 || b != "" {
		t.Fatalf("undo restored a=%d b=%q", a, b)
	}
	h.Redo()
	if a != 2 || b != "x" {
		t.Fatalf("redo restored a=%d b=%q", a, b)
	}

	h.Batch("empty", func() {})
	h.Batch("single", func() { Snapshot(h, 2, 3, func(x int) { a = x }) })
	if name, _ := h.Peek(); name != "" {
		t.Fatalf("a batch of one keeps the inner record, got %q", name)
	}
	if u, _ := h.Stats(); u != 2 {
		t.Fatalf("empty batch must not record, have %d records", u)
	}
}
