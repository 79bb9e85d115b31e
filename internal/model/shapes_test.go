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

func TestSettersCompareAndSet(t *testing.T) {
	p := NewPoint(1, 2)
	p.ClearDirty()
	if p.SetX(1) {
		t.Fatalf("setting the same value must report no change")
	}
	if p.IsDirty() {
		t.Fatalf("unchanged setter must not mark dirty")
	}
	if !p.SetXY(3, 2) || !p.IsDirty() {
		t.Fatalf("changed setter must report and mark dirty")
	}
	if !p.SetState(p.State().With(StateLocked)) || !p.State().Has(StateLocked) {
		t.Fatalf("state flag not applied")
	}
}

func TestConstructorsAdoptPoints(t *testing.T) {
	r := NewRectangle(0, 0, 10, 10, nil, true, false)
	for _, pt := range r.GetPoints(nil) {
		if pt.Owner() != r.ID() {
			t.Fatalf("point owner %q, want %q", pt.Owner(), r.ID())
		}
	}
	shared := NewPoint(0, 0)
	l1 := NewLine(shared, NewPoint(1, 1), nil, true)
	l2 := NewLine(shared, NewPoint(2, 2), nil, true)
	if shared.Owner() != l1.ID() || shared.Owner() == l2.ID() {
		t.Fatalf("the first shape adopts a point, later ones only reference it")
	}
}

func TestGetPointsPerVariant(t *testing.T) {
	cases := []struct {
		s    Shape
		want int
	}{
		{NewPoint(0, 0), 1},
		{NewLineXY(0, 0, 1, 1, nil, true), 2},
		{NewRectangle(0, 0, 1, 1, nil, true, false), 2},
		{NewEllipse(0, 0, 1, 1, nil, true, false), 2},
		{NewArc(0, 0, 10, 10, 10, 5, 5, 0, nil, true, false), 4},
		{NewCubicBezier(0, 0, 1, 1, 2, 2, 3, 3, nil, true, false), 4},
		{NewQuadraticBezier(0, 0, 1, 1, 2, 2, nil, true, false), 3},
		{NewText(0, 0, 1, 1, nil, "t", true), 2},
		{NewImage(0, 0, 1, 1, nil, "Images/a.png"), 2},
	}
	for _, c := range cases {
		if got := len(c.s.GetPoints(nil)); got != c.want {
			t.Fatalf("%v: got %d points, want %d", c.s.Kind(), got, c.want)
		}
	}
}

func TestPathPointsAndMove(t *testing.T) {
	start := NewPoint(0, 0)
	g := NewGeometryBuilder(FillNonzero).
		BeginFigure(start, true, true).
		LineTo(NewPoint(10, 0)).
		CubicTo(NewPoint(10, 5), NewPoint(5, 10), NewPoint(0, 10)).
		QuadraticTo(NewPoint(-5, 5), start).
		Geometry()
	p := NewPath(g, nil, true, true)
	pts := p.GetPoints(nil)
	if len(pts) != 7 {
		t.Fatalf("expected 7 points, got %d", len(pts))
	}
	p.Move(1, 1)
	if start.X() != 1 || start.Y() != 1 {
		t.Fatalf("start point shared by the closing segment must move once, got %v,%v", start.X(), start.Y())
	}
	c := p.Copy(nil).(*Path)
	if c.Geometry.Figures.At(0).StartPoint == start {
		t.Fatalf("copy must clone points")
	}
	if c.Geometry.FillRule != FillNonzero {
		t.Fatalf("fill rule lost on copy")
	}
}

type propertyBinder struct{}

func (propertyBinder) BindText(t *Text, props seq.Seq[*Property], r *Record) {
	if v, ok := FindProperty(props, "Name"); ok {
		t.SetBound(v)
	}
}

func TestTextBindKeepsTemplate(t *testing.T) {
	txt := NewText(0, 0, 10, 10, nil, "{Name}", true)
	g := NewGroup("g")
	g.AddShape(txt)
	g.Bind(propertyBinder{}, seq.Of(&Property{Name: "Name", Value: "Ada"}), nil)
	if txt.Bound() != "Ada" || txt.Text() != "{Name}" {
		t.Fatalf("bound=%q text=%q", txt.Bound(), txt.Text())
	}
}

func TestRecordValueByColumn(t *testing.T) {
	db := NewDatabase("db", "Name", "Age")
	r := db.NewRecord("Ada", "36")
	if v, ok := r.Value("Age"); !ok || v != "36" {
		t.Fatalf("Age = %q %v", v, ok)
	}
	if _, ok := r.Value("Missing"); ok {
		t.Fatalf("unknown column must not resolve")
	}
}

func TestKindAndStateStrings(t *testing.T) {
	for _, k := range Kinds() {
		back, ok := ParseKind(k.String())
		if !ok || back != k {
			t.Fatalf("kind %v does not parse back", k)
		}
	}
	if got := (StateVisible | StateLocked).String(); got != "Visible|Locked" {
		t.Fatalf("state string %q", got)
	}
}

func TestImageCache(t *testing.T) {
	c := NewImageCache()
	changes := 0
	c.OnChange(func() { changes++ })
	key := c.AddImageFromFile("/tmp/pics/a.png", []byte{1})
	if key != "Images/a.png" {
		t.Fatalf("key %q", key)
	}
	c.AddImageFromFile(`C:\pics\a.png`, []byte{2})
	if b, _ := c.GetImage(key); b[0] != 1 {
		t.Fatalf("existing key must keep its bytes")
	}
	c.AddImage("Images/b.png", []byte{3})
	c.PurgeUnusedImages(map[string]struct{}{"Images/b.png": {}})
	if keys := c.Keys(); len(keys) != 1 || keys[0] != "Images/b.png" {
		t.Fatalf("keys after purge %v", keys)
	}
	c.RemoveImage("Images/b.png")
	if c.Len() != 0 || changes != 4 {
		t.Fatalf("len=%d changes=%d", c.Len(), changes)
	}
}

func TestTextEmptyBindingSurvivesCopy(t *testing.T) {
	txt := NewText(0, 0, 10, 10, nil, "{Name}", true)
	if !txt.SetBound("") || txt.Bound() != "" {
		t.Fatalf("binding to empty must change the text, got %q", txt.Bound())
	}
	if txt.SetBound("") {
		t.Fatalf("rebinding the same value must not report a change")
	}
	c := txt.Copy(NewShared()).(*Text)
	if !c.IsBound() || c.Bound() != "" {
		t.Fatalf("copy lost the empty binding: %q", c.Bound())
	}
	if !txt.ClearBound() || txt.Bound() != "{Name}" {
		t.Fatalf("cleared text must show its template, got %q", txt.Bound())
	}
}
