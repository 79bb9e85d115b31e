/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"testing"

	"core2d/internal/geom"
	"core2d/internal/model"
)

func newEditor(t *testing.T) (*Editor, *model.Layer) {
	t.Helper()
	p := model.NewProject("test")
	e := New(p)
	layer := e.CurrentLayer()
	if layer == nil {
		t.Fatalf("default project has no current layer")
	}
	return e, layer
}

func rect(x, y, w, h float64) *model.Rectangle {
	return model.NewRectangle(x, y, x+w, y+h, model.DefaultStyle(), true, true)
}

func add(t *testing.T, e *Editor, layer *model.Layer, shapes ...model.Shape) {
	t.Helper()
	for _, s := range shapes {
		if !e.Project().AddShape(layer, s) {
			t.Fatalf("AddShape(%s) rejected", s.Kind())
		}
	}
}

func TestMoveUndoIsBitExact(t *testing.T) {
	e, layer := newEditor(t)
	r := rect(0.1, 0.2, 10, 10)
	add(t, e, layer, r)
	before := model.Positions(r.GetPoints(nil))

	for i := 0; i < 10; i++ {
		if !e.MoveBy([]model.Shape{r}, 0.1, 0.7) {
			t.Fatalf("move %d did nothing", i)
		}
	}
	for i := 0; i < 10; i++ {
		if !e.Undo() {
			t.Fatalf("undo %d failed", i)
		}
	}
	after := model.Positions(r.GetPoints(nil))
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("point %d = %v after undo, want %v", i, after[i], before[i])
		}
	}
	for i := 0; i < 10; i++ {
		e.Redo()
	}
	if got := r.TopLeft.X(); got == 0.1 {
		t.Fatalf("redo did not reapply moves")
	}
}

func TestMoveSharedPointMovesOnce(t *testing.T) {
	e, layer := newEditor(t)
	shared := model.NewPoint(10, 10)
	a := model.NewLine(model.NewPoint(0, 0), shared, model.DefaultStyle(), true)
	b := model.NewLine(shared, model.NewPoint(20, 0), model.DefaultStyle(), true)
	add(t, e, layer, a, b)

	e.MoveBy([]model.Shape{a, b}, 5, 0)
	if shared.X() != 15 {
		t.Fatalf("shared point x = %v, want 15", shared.X())
	}
	if a.Start.X() != 5 || b.End.X() != 25 {
		t.Fatalf("ends = %v, %v; want 5, 25", a.Start.X(), b.End.X())
	}
}

func TestMoveSkipsLockedShapes(t *testing.T) {
	e, layer := newEditor(t)
	r := rect(0, 0, 10, 10)
	r.SetState(r.State().With(model.StateLocked))
	add(t, e, layer, r)
	if e.MoveBy([]model.Shape{r}, 5, 5) {
		t.Fatalf("locked shape moved")
	}
	if r.TopLeft.X() != 0 {
		t.Fatalf("locked shape x = %v", r.TopLeft.X())
	}
}

func TestMoveSessionCommitAndCancel(t *testing.T) {
	e, layer := newEditor(t)
	r := rect(0, 0, 10, 10)
	add(t, e, layer, r)
	undo, _ := e.Project().History.Stats()

	m := e.BeginMove([]model.Shape{r})
	m.Move(3, 4)
	m.Move(3, 4)
	m.Cancel()
	if r.TopLeft.X() != 0 || r.TopLeft.Y() != 0 {
		t.Fatalf("cancel left point at %v", r.TopLeft.Pos())
	}
	if n, _ := e.Project().History.Stats(); n != undo {
		t.Fatalf("cancel recorded history: %d records, want %d", n, undo)
	}

	m = e.BeginMove([]model.Shape{r})
	m.Move(3, 4)
	m.Move(3, 4)
	if !m.Commit() {
		t.Fatalf("commit reported no change")
	}
	if n, _ := e.Project().History.Stats(); n != undo+1 {
		t.Fatalf("commit recorded %d records, want one", n-undo)
	}
	e.Undo()
	if r.TopLeft.X() != 0 || r.BottomRight.Y() != 10 {
		t.Fatalf("undo of drag left %v %v", r.TopLeft.Pos(), r.BottomRight.Pos())
	}
}

func TestNudgeUsesGridStep(t *testing.T) {
	e, layer := newEditor(t)
	r := rect(0, 0, 10, 10)
	add(t, e, layer, r)
	e.Select(r)
	e.MoveSelectedRight()
	if got, want := r.TopLeft.X(), e.Project().Options.SnapX; got != want {
		t.Fatalf("x after nudge = %v, want %v", got, want)
	}
}

func TestTryToSnap(t *testing.T) {
	e, _ := newEditor(t)
	if x, y := e.TryToSnap(22, 8); x != 15 || y != 15 {
		t.Fatalf("TryToSnap = %v, %v; want 15, 15", x, y)
	}
	e.Project().Options.SnapToGrid = false
	if x, y := e.TryToSnap(22, 8); x != 22 || y != 8 {
		t.Fatalf("TryToSnap without grid = %v, %v", x, y)
	}
}

func TestSelectionHitTesting(t *testing.T) {
	e, layer := newEditor(t)
	r := rect(100, 100, 50, 50)
	add(t, e, layer, r)

	if !e.TryToSelectShape(101, 101, true) {
		t.Fatalf("corner not hit")
	}
	if sel := e.Selected(); len(sel) != 1 || sel[0] != model.Shape(r.TopLeft) {
		t.Fatalf("corner selection = %v, want the top left point", sel)
	}
	if e.IsDecoratorVisible() {
		t.Fatalf("decorator shown for a single point")
	}
	if !e.TryToSelectShape(125, 125, true) || e.Selected()[0] != model.Shape(r) {
		t.Fatalf("body click did not select the rectangle")
	}
	if !e.IsDecoratorVisible() {
		t.Fatalf("decorator hidden for a rectangle")
	}
	if e.TryToSelectShape(400, 400, true) || len(e.Selected()) != 0 {
		t.Fatalf("empty click kept selection %v", e.Selected())
	}
}

func TestRubberBandToggle(t *testing.T) {
	e, layer := newEditor(t)
	a, b := rect(0, 0, 10, 10), rect(100, 0, 10, 10)
	add(t, e, layer, a, b)

	e.TryToSelectShapes(geom.R(-5, -5, 130, 30), true, false)
	if len(e.Selected()) != 2 {
		t.Fatalf("rubber band selected %d shapes", len(e.Selected()))
	}
	e.TryToSelectShapes(geom.R(-5, -5, 20, 20), true, true)
	if sel := e.Selected(); len(sel) != 1 || sel[0] != model.Shape(b) {
		t.Fatalf("toggle selection = %v, want only b", sel)
	}
}

func TestUndoDeselects(t *testing.T) {
	e, layer := newEditor(t)
	r := rect(0, 0, 10, 10)
	add(t, e, layer, r)
	e.Select(r)
	e.Undo()
	if len(e.Selected()) != 0 {
		t.Fatalf("selection survived undo")
	}
	if layer.Shapes().Len() != 0 {
		t.Fatalf("undo did not remove the shape")
	}
}

func TestGroupSelectedAndUndo(t *testing.T) {
	e, layer := newEditor(t)
	a, b, c := rect(0, 0, 10, 10), rect(20, 0, 10, 10), rect(40, 0, 10, 10)
	add(t, e, layer, a, b, c)
	e.Select(a, b)

	g := e.GroupSelected()
	if g == nil {
		t.Fatalf("GroupSelected returned nil")
	}
	if layer.Shapes().Len() != 2 || layer.Shapes().At(0) != model.Shape(g) {
		t.Fatalf("layer after group = %v", layer.Shapes().Items())
	}
	if sel := e.Selected(); len(sel) != 1 || sel[0] != model.Shape(g) {
		t.Fatalf("group not selected")
	}
	e.Undo()
	got := layer.Shapes().Items()
	if len(got) != 3 || got[0] != model.Shape(a) || got[1] != model.Shape(b) || got[2] != model.Shape(c) {
		t.Fatalf("undo of group = %v", got)
	}
	e.Redo()
	if !e.Ungroup([]model.Shape{g}) {
		t.Fatalf("ungroup failed")
	}
	if layer.Shapes().Len() != 3 {
		t.Fatalf("ungroup left %d shapes", layer.Shapes().Len())
	}
}

func TestZOrder(t *testing.T) {
	e, layer := newEditor(t)
	a, b, c := rect(0, 0, 10, 10), rect(20, 0, 10, 10), rect(40, 0, 10, 10)
	add(t, e, layer, a, b, c)

	if !e.BringToFront(a) || layer.Shapes().At(2) != model.Shape(a) {
		t.Fatalf("BringToFront: %v", layer.Shapes().Items())
	}
	if !e.SendToBack(a) || layer.Shapes().At(0) != model.Shape(a) {
		t.Fatalf("SendToBack: %v", layer.Shapes().Items())
	}
	if !e.BringForward(a) || layer.Shapes().At(1) != model.Shape(a) {
		t.Fatalf("BringForward: %v", layer.Shapes().Items())
	}
	if !e.SendBackward(a) || layer.Shapes().At(0) != model.Shape(a) {
		t.Fatalf("SendBackward: %v", layer.Shapes().Items())
	}
	if e.SendBackward(a) {
		t.Fatalf("SendBackward at the bottom reported a change")
	}
	if layer.Shapes().Len() != 3 {
		t.Fatalf("z-order changed the shape count")
	}
}

func TestAlignAndDistribute(t *testing.T) {
	e, layer := newEditor(t)
	a, b, c := rect(0, 0, 10, 10), rect(20, 30, 10, 10), rect(100, 60, 10, 10)
	add(t, e, layer, a, b, c)
	shapes := []model.Shape{a, b, c}

	if !e.Distribute(shapes, Horizontal) {
		t.Fatalf("distribute did nothing")
	}
	if got := b.TopLeft.X(); got != 50 {
		t.Fatalf("middle x = %v, want 50", got)
	}
	if !e.Align(shapes, AlignTop) {
		t.Fatalf("align did nothing")
	}
	for _, r := range []*model.Rectangle{a, b, c} {
		if r.TopLeft.Y() != 0 {
			t.Fatalf("aligned top = %v", r.TopLeft.Y())
		}
	}
	e.Undo()
	if c.TopLeft.Y() != 60 {
		t.Fatalf("undo align left y = %v", c.TopLeft.Y())
	}
	if e.Align(shapes[:1], AlignLeft) {
		t.Fatalf("align of one shape reported a change")
	}
}

func TestStackFlipRotate(t *testing.T) {
	e, layer := newEditor(t)
	a, b := rect(0, 0, 10, 10), rect(50, 0, 20, 10)
	add(t, e, layer, a, b)
	shapes := []model.Shape{a, b}

	e.Stack(shapes, Horizontal)
	if b.TopLeft.X() != 10 {
		t.Fatalf("stacked x = %v, want 10", b.TopLeft.X())
	}
	e.Flip(shapes, Horizontal)
	if a.TopLeft.X() != 30 || a.BottomRight.X() != 20 {
		t.Fatalf("flipped a = %v..%v", a.TopLeft.X(), a.BottomRight.X())
	}
	if e.Rotate(shapes, 0) {
		t.Fatalf("zero rotation reported a change")
	}
	if !e.Rotate([]model.Shape{a}, 180) {
		t.Fatalf("rotate did nothing")
	}
}
