/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tools

import (
	"core2d/internal/editor"
	"core2d/internal/geom"
	"core2d/internal/model"
)

type dragMode int

const (
	dragNone dragMode = iota
	dragMove
	dragSelect
)

// Selection picks shapes by click or rubber band and drags the selection.
// A drag is recorded as one edit when the button is released.
type Selection struct {
	e       *editor.Editor
	mode    dragMode
	session *editor.MoveSession
	lastX   float64
	lastY   float64
	startX  float64
	startY  float64
	band    *model.Rectangle
}

func NewSelection(e *editor.Editor) *Selection { return &Selection{e: e} }

func (t *Selection) Title() string { return "Selection" }

// Band returns the rubber band rectangle while one is drawn.
func (t *Selection) Band() *model.Rectangle { return t.band }

func (t *Selection) BeginDown(x, y float64) {
	if t.mode != dragNone || t.e.CurrentLayer() == nil {
		return
	}
	if t.e.SelectionContains(x, y) || t.e.TryToSelectShape(x, y, true) {
		t.mode = dragMove
		t.session = t.e.BeginMove(t.e.Selected())
		t.lastX, t.lastY = t.e.TryToSnap(x, y)
		return
	}
	t.mode = dragSelect
	t.startX, t.startY = x, y
	t.band = model.NewRectangle(x, y, x, y, t.e.NewStyle(), true, false)
	show(helper(t.e), t.band)
}

func (t *Selection) BeginUp(x, y float64) {
	switch t.mode {
	case dragMove:
		t.session.Commit()
		t.session = nil
	case dragSelect:
		hide(helper(t.e), t.band)
		t.band = nil
		t.e.TryToSelectShapes(geom.FromPoints(t.startX, t.startY, x, y), true, false)
	}
	t.mode = dragNone
}

func (t *Selection) EndDown(x, y float64) { t.Reset() }

func (t *Selection) Move(x, y float64) {
	switch t.mode {
	case dragNone:
		t.e.TryToHoverShape(x, y)
	case dragMove:
		sx, sy := t.e.TryToSnap(x, y)
		dx, dy := sx-t.lastX, sy-t.lastY
		if dx != 0 || dy != 0 {
			t.session.Move(dx, dy)
			t.lastX, t.lastY = sx, sy
		}
	case dragSelect:
		t.band.BottomRight.SetXY(x, y)
		if l := helper(t.e); l != nil {
			l.Invalidate()
		}
	}
}

// Reset cancels a drag in progress, putting dragged shapes back.
func (t *Selection) Reset() {
	switch t.mode {
	case dragMove:
		t.session.Cancel()
		t.session = nil
	case dragSelect:
		hide(helper(t.e), t.band)
		t.band = nil
	}
	t.mode = dragNone
}
