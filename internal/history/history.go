/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package history implements snapshot based undo and redo. A record stores
// the previous and next values of one mutation together with the function
// that assigns such a value. Undo assigns previous, redo assigns next.
// Values are usually immutable sequences or plain values, so records are
// cheap to keep.
package history

import (
	"log/slog"
	"time"

	applog "core2d/internal/log"
)

// Record is one reversible mutation.
type Record struct {
	Name     string
	TS       time.Time
	previous any
	next     any
	set      func(any)
}

// Config controls the depth cap.
type Config struct {
	// MaxDepth limits the number of undo records kept (0 means unlimited).
	// The oldest records are dropped first.
	MaxDepth int
}

// History holds the undo and redo stacks of one editing session.
// It is not safe for concurrent use; all edits run on one logical thread.
type History struct {
	cfg      Config
	undo     []Record
	redo     []Record
	applying bool
	batch    *[]Record
	version  uint64
	log      *slog.Logger
}

// New creates an empty history.
func New(cfg Config) *History {
	return &History{cfg: cfg, log: applog.WithComponent("history")}
}

// Snapshot records a mutation from previous to next. The caller has already
// applied next; setter applies either value when undoing or redoing.
// Snapshot clears the redo stack. A nil history ignores the call, as does a
// snapshot issued while an undo or redo is being applied.
func Snapshot[T any](h *History, previous, next T, setter func(T)) {
	SnapshotNamed(h, "", previous, next, setter)
}

// SnapshotNamed is Snapshot with a label used in logs.
func SnapshotNamed[T any](h *History, name string, previous, next T, setter func(T)) {
	if h == nil || setter == nil {
		return
	}
	h.push(Record{
		Name:     name,
		TS:       time.Now(),
		previous: previous,
		next:     next,
		set:      func(v any) { setter(v.(T)) },
	})
}

func (h *History) push(r Record) {
	if h.applying {
		return
	}
	if h.batch != nil {
		*h.batch = append(*h.batch, r)
		return
	}
	h.undo = append(h.undo, r)
	h.redo = nil
	h.version++
	h.enforceCap()
}

// Batch runs f and folds the snapshots it records into one record named
// name, so a gesture made of several mutations undoes in one step. A Batch
// inside another joins the outer one.
func (h *History) Batch(name string, f func()) {
	if h == nil || h.batch != nil || h.applying {
		f()
		return
	}
	var recs []Record
	h.batch = &recs
	func() {
		defer func() { h.batch = nil }()
		f()
	}()
	switch len(recs) {
	case 0:
		return
	case 1:
		h.push(recs[0])
		return
	}
	h.push(Record{
		Name:     name,
		TS:       time.Now(),
		previous: false,
		next:     true,
		set: func(v any) {
			if v.(bool) {
				for _, r := range recs {
					r.set(r.next)
				}
				return
			}
			for i := len(recs) - 1; i >= 0; i-- {
				recs[i].set(recs[i].previous)
			}
		},
	})
}

// CanUndo reports whether there is something to undo.
func (h *History) CanUndo() bool { return h != nil && len(h.undo) > 0 }

// CanRedo reports whether there is something to redo.
func (h *History) CanRedo() bool { return h != nil && len(h.redo) > 0 }

// Undo restores the previous value of the latest record and moves it to the
// redo stack. It returns false and does nothing when the stack is empty.
func (h *History) Undo() bool {
	if !h.CanUndo() {
		return false
	}
	r := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.apply(r.set, r.previous)
	h.redo = append(h.redo, r)
	h.version++
	h.log.Debug("undo", slog.String("name", r.Name), slog.Int("undo", len(h.undo)), slog.Int("redo", len(h.redo)))
	return true
}

// Redo reapplies the latest undone record.
func (h *History) Redo() bool {
	if !h.CanRedo() {
		return false
	}
	r := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.apply(r.set, r.next)
	h.undo = append(h.undo, r)
	h.version++
	h.log.Debug("redo", slog.String("name", r.Name), slog.Int("undo", len(h.undo)), slog.Int("redo", len(h.redo)))
	return true
}

func (h *History) apply(set func(any), v any) {
	h.applying = true
	defer func() { h.applying = false }()
	set(v)
}

// Reset clears both stacks.
func (h *History) Reset() {
	if h == nil {
		return
	}
	h.undo = nil
	h.redo = nil
	h.version++
}

// Version increases with every recorded, undone, redone or reset edit. Two
// equal readings mean the project has not changed through this history.
func (h *History) Version() uint64 {
	if h == nil {
		return 0
	}
	return h.version
}

// Stats returns the current stack sizes for diagnostics.
func (h *History) Stats() (undo int, redo int) {
	if h == nil {
		return 0, 0
	}
	return len(h.undo), len(h.redo)
}

// Peek returns the name of the record the next Undo would revert.
func (h *History) Peek() (string, bool) {
	if !h.CanUndo() {
		return "", false
	}
	return h.undo[len(h.undo)-1].Name, true
}

func (h *History) enforceCap() {
	if h.cfg.MaxDepth <= 0 || len(h.undo) <= h.cfg.MaxDepth {
		return
	}
	toDrop := len(h.undo) - h.cfg.MaxDepth
	h.undo = append([]Record{}, h.undo[toDrop:]...)
}
