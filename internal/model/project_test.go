/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import (
	"testing"

	"core2d/internal/seq"
)

func TestNewProjectDefaults(t *testing.T) {
	p := NewProject("p")
	if p.CurrentContainer == nil || p.CurrentDocument == nil {
		t.Fatalf("a current page and document are required")
	}
	if p.CurrentContainer.Template != p.CurrentTemplate {
		t.Fatalf("page must use the current template")
	}
	if p.CurrentTemplate.Width != 840 || p.CurrentTemplate.Height != 600 {
		t.Fatalf("template size %vx%v", p.CurrentTemplate.Width, p.CurrentTemplate.Height)
	}
	if p.CurrentLayer() == nil || p.CurrentLayer().Name != "Layer1" {
		t.Fatalf("Layer1 must be current")
	}
	if p.CurrentContainer.WorkingLayer == nil || p.CurrentContainer.HelperLayer == nil {
		t.Fatalf("transient layers missing")
	}
	if p.CurrentStyle() == nil || p.CurrentDatabase.Columns.Len() != 2 {
		t.Fatalf("default style and database expected")
	}
}

func TestUndoRedoInverseLaw(t *testing.T) {
	p := NewProject("p")
	layer := p.CurrentLayer()
	a := NewLineXY(0, 0, 1, 1, nil, true)
	b := NewRectangle(0, 0, 1, 1, nil, true, false)
	c := NewEllipse(0, 0, 1, 1, nil, true, false)

	before := layer.Shapes().Items()
	p.AddShape(layer, a)
	p.AddShape(layer, b)
	p.AddShape(layer, c)
	p.RemoveShape(b)
	p.SwapShape(layer, c, 0, 2)
	after := layer.Shapes().Items()

	for p.History.CanUndo() {
		p.History.Undo()
	}
	if !sameShapes(layer.Shapes().Items(), before) {
		t.Fatalf("undo must restore the empty layer")
	}
	for p.History.CanRedo() {
		p.History.Redo()
	}
	if !sameShapes(layer.Shapes().Items(), after) {
		t.Fatalf("redo must restore %v, got %v", after, layer.Shapes().Items())
	}
}

func TestRedoInvalidatedByNewEdit(t *testing.T) {
	p := NewProject("p")
	layer := p.CurrentLayer()
	p.AddShape(layer, NewPoint(0, 0))
	p.History.Undo()
	p.AddShape(layer, NewPoint(1, 1))
	if p.History.CanRedo() {
		t.Fatalf("a new edit must clear redo")
	}
}

func TestAddShapeRejectsDuplicatesAndNil(t *testing.T) {
	p := NewProject("p")
	layer := p.CurrentLayer()
	s := NewPoint(0, 0)
	if !p.AddShape(layer, s) || p.AddShape(layer, s) {
		t.Fatalf("a shape may appear once per layer")
	}
	if p.AddShape(nil, s) || p.AddShape(layer, nil) || p.RemoveShape(nil) {
		t.Fatalf("nil arguments must be rejected")
	}
	if u, _ := p.History.Stats(); u != 1 {
		t.Fatalf("rejected edits must not be recorded, undo=%d", u)
	}
}

func TestStructuralSharingOnAdd(t *testing.T) {
	p := NewProject("p")
	layer := p.CurrentLayer()
	for i := 0; i < 500; i++ {
		p.AddShape(layer, NewPoint(float64(i), 0))
	}
	prev := layer.Shapes()
	p.RemoveShape(prev.At(499))
	if prev.Len() != 500 || layer.Shapes().Len() != 499 {
		t.Fatalf("previous value must survive the replacement")
	}
}

func TestSetCurrentContainer(t *testing.T) {
	p := NewProject("p")
	d2 := NewDocument("d2")
	page := NewPage("p2", p.CurrentTemplate)
	p.AddDocument(d2)
	p.AddPage(d2, page)
	if !p.SetCurrentContainer(page) || p.CurrentDocument != d2 {
		t.Fatalf("current document must follow the page")
	}
	stray := NewPage("stray", nil)
	if p.SetCurrentContainer(stray) || p.CurrentContainer != page {
		t.Fatalf("pages outside the project must be rejected")
	}
	if !p.SetCurrentContainer(p.CurrentTemplate) || p.CurrentContainer != p.CurrentTemplate {
		t.Fatalf("templates may be edited")
	}
}

func TestRemovePageMovesCurrent(t *testing.T) {
	p := NewProject("p")
	d := p.CurrentDocument
	first := p.CurrentContainer
	second := NewPage("Page2", p.CurrentTemplate)
	p.AddPage(d, second)
	p.RemovePage(first)
	if p.CurrentContainer != second {
		t.Fatalf("current page must move to a remaining page")
	}
	p.History.Undo()
	if !seq.Contains(d.Pages, first) {
		t.Fatalf("undo must restore the page")
	}
}

func TestLayerMutations(t *testing.T) {
	p := NewProject("p")
	c := p.CurrentContainer
	l := NewLayer(nil, "Layer4")
	if !p.AddLayer(c, l) || l.Owner != c {
		t.Fatalf("layer must be added and owned")
	}
	c.SetCurrentLayer(l)
	p.RemoveLayer(l)
	if c.CurrentLayer == l {
		t.Fatalf("removed layer cannot stay current")
	}
	p.History.Undo()
	if c.Layers.Len() != 4 {
		t.Fatalf("undo must restore the layer")
	}
}

func TestLibraryItemMoves(t *testing.T) {
	p := NewProject("p")
	lib := p.CurrentStyleLibrary
	s2 := NewStyle("Dashed", Black, White, 1)
	s3 := NewStyle("Thick", Black, White, 4)
	p.AddStyle(lib, s2)
	p.AddStyle(lib, s3)
	first := lib.Items.At(0)

	MoveItem(p, lib, 0, 2)
	if lib.Items.At(2) != first {
		t.Fatalf("move item failed")
	}
	SwapItem(p, lib, 0, 1)
	if lib.Items.At(0) != s3 || lib.Items.At(1) != s2 {
		t.Fatalf("swap item failed: %v", lib.Items.Items())
	}
	p.History.Undo()
	p.History.Undo()
	if lib.Items.At(0) != first {
		t.Fatalf("undo must restore item order")
	}
}

func TestApplyStyleIsOneSnapshot(t *testing.T) {
	p := NewProject("p")
	old := p.CurrentStyle()
	a := NewLineXY(0, 0, 1, 1, old, true)
	b := NewLineXY(0, 0, 2, 2, old, true)
	ns := NewStyle("Red", Color{255, 255, 0, 0}, Transparent, 1)
	u0, _ := p.History.Stats()
	p.ApplyStyle([]Shape{a, b}, ns)
	u1, _ := p.History.Stats()
	if u1-u0 != 1 || a.Style() != ns || b.Style() != ns {
		t.Fatalf("apply style must set both in one snapshot")
	}
	p.History.Undo()
	if a.Style() != old || b.Style() != old {
		t.Fatalf("undo must restore styles")
	}
}

func TestSwapLineEndpoints(t *testing.T) {
	p := NewProject("p")
	l := NewLineXY(0, 0, 10, 0, nil, true)
	orig := l.End
	np := NewPoint(5, 0)
	p.SwapLineEnd(l, np)
	if l.End != np {
		t.Fatalf("end not swapped")
	}
	p.History.Undo()
	if l.End != orig {
		t.Fatalf("undo must restore the end point")
	}
}

func TestRecordsByIDFirstMatchWins(t *testing.T) {
	p := NewEmptyProject("p")
	db1 := NewDatabase("a", "Name")
	db2 := NewDatabase("b", "Name")
	r1 := db1.NewRecord("one")
	r2 := db2.NewRecord("two")
	r2.ID = r1.ID
	p.AddDatabase(db1)
	p.AddDatabase(db2)
	p.AddRecord(db1, r1)
	p.AddRecord(db2, r2)
	if got := p.RecordsByID()[r1.ID]; got != r1 {
		t.Fatalf("first database must win")
	}
}

func TestUnloadDetaches(t *testing.T) {
	p := NewProject("p")
	p.AddShape(p.CurrentLayer(), NewPoint(0, 0))
	h := p.History
	cache := p.Images()
	cache.AddImage("Images/a.png", []byte{1})
	p.Unload()
	if p.History != nil || p.Images() != nil {
		t.Fatalf("unload must detach history and images")
	}
	if cache.Len() != 0 {
		t.Fatalf("unload must purge the image cache, %d left", cache.Len())
	}
	if h.CanUndo() {
		t.Fatalf("unload must reset the history")
	}
}

func TestUsedImageKeysWalksGroups(t *testing.T) {
	p := NewProject("p")
	g := NewGroup("g")
	g.AddShape(NewImage(0, 0, 1, 1, nil, "Images/x.png"))
	p.AddShape(p.CurrentLayer(), g)
	if _, ok := p.UsedImageKeys()["Images/x.png"]; !ok {
		t.Fatalf("image in group not found")
	}
}
