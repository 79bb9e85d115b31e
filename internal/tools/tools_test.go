/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tools

import (
	"testing"

	"core2d/internal/editor"
	"core2d/internal/model"
)

func setup(t *testing.T) (*editor.Editor, *model.Layer, *model.Layer) {
	t.Helper()
	e := editor.New(model.NewProject("tools"))
	e.Project().Options.SnapToGrid = false
	return e, e.CurrentLayer(), e.Project().CurrentContainer.WorkingLayer
}

func undoCount(e *editor.Editor) int {
	n, _ := e.Project().History.Stats()
	return n
}

func TestLineToolPreviewThenCommit(t *testing.T) {
	e, layer, work := setup(t)
	tool := NewLine(e)

	tool.BeginDown(10, 10)
	tool.Move(50, 40)
	if work.Shapes().Len() != 1 || layer.Shapes().Len() != 0 {
		t.Fatalf("preview: working=%d layer=%d", work.Shapes().Len(), layer.Shapes().Len())
	}
	if undoCount(e) != 0 {
		t.Fatalf("preview recorded history")
	}
	l := tool.Preview().(*model.Line)
	if l.End.X() != 50 || l.End.Y() != 40 {
		t.Fatalf("preview end = %v", l.End.Pos())
	}

	tool.BeginDown(60, 70)
	if work.Shapes().Len() != 0 || layer.Shapes().Len() != 1 || tool.Active() {
		t.Fatalf("commit: working=%d layer=%d", work.Shapes().Len(), layer.Shapes().Len())
	}
	if l.Start.X() != 10 || l.End.X() != 60 || l.End.Y() != 70 {
		t.Fatalf("line = %v..%v", l.Start.Pos(), l.End.Pos())
	}
	if undoCount(e) != 1 {
		t.Fatalf("commit recorded %d edits", undoCount(e))
	}
	e.Undo()
	if layer.Shapes().Len() != 0 {
		t.Fatalf("undo kept the line")
	}
}

func TestResetLeavesModelUntouched(t *testing.T) {
	e, layer, work := setup(t)
	for _, tool := range []*ShapeTool{NewRectangle(e), NewArc(e), NewCubicBezier(e)} {
		tool.BeginDown(0, 0)
		tool.Move(10, 10)
		tool.Reset()
		if work.Shapes().Len() != 0 || layer.Shapes().Len() != 0 || undoCount(e) != 0 {
			t.Fatalf("%s reset: working=%d layer=%d undo=%d", tool.Title(), work.Shapes().Len(), layer.Shapes().Len(), undoCount(e))
		}
	}
}

func TestResetMidGesture(t *testing.T) {
	e, layer, work := setup(t)
	tool := NewArc(e)
	tool.BeginDown(0, 0)
	tool.BeginDown(10, 10)
	tool.Move(10, 5)
	tool.Reset()
	if work.Shapes().Len() != 0 || layer.Shapes().Len() != 0 || undoCount(e) != 0 {
		t.Fatalf("reset after two presses touched the model")
	}
	tool.BeginDown(0, 0)
	if !tool.Active() || tool.Preview() == nil {
		t.Fatalf("tool not reusable after reset")
	}
}

func TestSecondaryButtonCancels(t *testing.T) {
	e, _, work := setup(t)
	tool := NewEllipse(e)
	tool.BeginDown(0, 0)
	tool.EndDown(5, 5)
	if tool.Active() || work.Shapes().Len() != 0 {
		t.Fatalf("gesture survived EndDown")
	}
}

func TestArcNeedsFourPresses(t *testing.T) {
	e, layer, _ := setup(t)
	tool := NewArc(e)
	clicks := [][2]float64{{0, 0}, {100, 100}, {100, 50}, {50, 0}}
	for i, c := range clicks {
		tool.BeginDown(c[0], c[1])
		if committed := layer.Shapes().Len() == 1; committed != (i == len(clicks)-1) {
			t.Fatalf("after press %d committed=%v", i+1, committed)
		}
	}
	a := layer.Shapes().At(0).(*model.Arc)
	if a.Point2.X() != 100 || a.Point3.Y() != 50 || a.Point4.X() != 50 {
		t.Fatalf("arc points = %v %v %v", a.Point2.Pos(), a.Point3.Pos(), a.Point4.Pos())
	}
}

func TestCubicBezierPointOrder(t *testing.T) {
	e, layer, _ := setup(t)
	tool := NewCubicBezier(e)
	tool.BeginDown(0, 0)
	tool.BeginDown(90, 0)
	tool.BeginDown(30, 40)
	tool.BeginDown(60, 40)
	b := layer.Shapes().At(0).(*model.CubicBezier)
	if b.Point4.X() != 90 || b.Point2.X() != 30 || b.Point3.X() != 60 {
		t.Fatalf("cubic = %v %v %v %v", b.Point1.Pos(), b.Point2.Pos(), b.Point3.Pos(), b.Point4.Pos())
	}
}

func TestToolConnectsToExistingPoint(t *testing.T) {
	e, layer, _ := setup(t)
	e.Project().Options.TryToConnect = true
	anchor := model.NewPoint(20, 20)
	e.Project().AddShape(layer, anchor)

	tool := NewLine(e)
	tool.BeginDown(21, 19)
	tool.BeginDown(80, 80)
	l := layer.Shapes().At(1).(*model.Line)
	if l.Start != anchor {
		t.Fatalf("line start not connected to the existing point")
	}
}

func TestPointToolSplitsLine(t *testing.T) {
	e, layer, _ := setup(t)
	e.Project().Options.TryToConnect = true
	e.Project().AddShape(layer, model.NewLineXY(0, 0, 100, 0, model.DefaultStyle(), true))

	NewPoint(e).BeginDown(40, 1)
	if layer.Shapes().Len() != 2 {
		t.Fatalf("point on a line: %d shapes, want the split line", layer.Shapes().Len())
	}
	NewPoint(e).BeginDown(40, 60)
	if _, ok := layer.Shapes().At(2).(*model.Point); !ok {
		t.Fatalf("free point not added")
	}
}

func TestSelectionDragIsOneEdit(t *testing.T) {
	e, layer, _ := setup(t)
	r := model.NewRectangle(0, 0, 30, 30, model.DefaultStyle(), true, true)
	e.Project().AddShape(layer, r)
	before := undoCount(e)

	tool := NewSelection(e)
	tool.BeginDown(15, 15)
	tool.Move(20, 15)
	tool.Move(45, 25)
	tool.BeginUp(45, 25)
	if r.TopLeft.X() != 30 || r.TopLeft.Y() != 10 {
		t.Fatalf("dragged to %v", r.TopLeft.Pos())
	}
	if undoCount(e) != before+1 {
		t.Fatalf("drag recorded %d edits", undoCount(e)-before)
	}
	e.Undo()
	if r.TopLeft.X() != 0 || r.TopLeft.Y() != 0 {
		t.Fatalf("undo left %v", r.TopLeft.Pos())
	}
}

func TestSelectionResetRestoresDrag(t *testing.T) {
	e, layer, _ := setup(t)
	r := model.NewRectangle(0, 0, 30, 30, model.DefaultStyle(), true, true)
	e.Project().AddShape(layer, r)

	tool := NewSelection(e)
	tool.BeginDown(15, 15)
	tool.Move(40, 40)
	tool.Reset()
	if r.TopLeft.X() != 0 || r.BottomRight.X() != 30 {
		t.Fatalf("reset left %v", r.TopLeft.Pos())
	}
}

func TestRubberBandSelects(t *testing.T) {
	e, layer, _ := setup(t)
	a := model.NewRectangle(0, 0, 30, 30, model.DefaultStyle(), true, true)
	b := model.NewRectangle(200, 200, 230, 230, model.DefaultStyle(), true, true)
	e.Project().AddShape(layer, a)
	e.Project().AddShape(layer, b)
	help := e.Project().CurrentContainer.HelperLayer

	tool := NewSelection(e)
	tool.BeginDown(100, 100)
	tool.Move(-5, -5)
	if tool.Band() == nil || help.Shapes().Len() != 1 {
		t.Fatalf("rubber band not shown")
	}
	tool.BeginUp(-5, -5)
	if sel := e.Selected(); len(sel) != 1 || sel[0] != model.Shape(a) {
		t.Fatalf("rubber band selected %v", sel)
	}
	if help.Shapes().Len() != 0 {
		t.Fatalf("rubber band left on the helper layer")
	}
}

func TestAllToolsHaveDistinctTitles(t *testing.T) {
	e, _, _ := setup(t)
	all := All(e)
	seen := map[string]bool{}
	for _, tool := range all {
		if seen[tool.Title()] {
			t.Fatalf("duplicate title %q", tool.Title())
		}
		seen[tool.Title()] = true
	}
	if tool, ok := ByTitle(all, "Arc"); !ok || tool.Title() != "Arc" {
		t.Fatalf("ByTitle(Arc) = %v, %v", tool, ok)
	}
}
