/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tools

import (
	"log/slog"

	"core2d/internal/editor"
	"core2d/internal/model"
)

// slot addresses a point field of the shape under construction, so a click
// can put an existing point in its place.
type slot = **model.Point

// draft is a shape being built click by click. The anchor is placed by the
// first click; after click k+1 the slots of follow[k] track the pointer.
// The shape is committed by the click that fixes the last follow list.
type draft struct {
	shape  model.Shape
	anchor slot
	follow [][]slot
}

type builder func(x, y float64, style *model.ShapeStyle, o *model.Options) draft

// ShapeTool draws one kind of shape click by click.
type ShapeTool struct {
	e     *editor.Editor
	title string
	build builder
	d     *draft
	step  int
}

func (t *ShapeTool) Title() string { return t.title }

// Active reports whether a gesture is in progress.
func (t *ShapeTool) Active() bool { return t.d != nil }

// Preview returns the shape under construction, if any.
func (t *ShapeTool) Preview() model.Shape {
	if t.d == nil {
		return nil
	}
	return t.d.shape
}

func (t *ShapeTool) connect(s slot, x, y float64) {
	if p := t.e.TryToGetConnectionPoint(x, y); p != nil {
		*s = p
	}
}

func (t *ShapeTool) BeginDown(x, y float64) {
	layer := working(t.e)
	if layer == nil {
		return
	}
	sx, sy := t.e.TryToSnap(x, y)
	if t.d == nil {
		d := t.build(sx, sy, t.e.NewStyle(), t.e.Project().Options)
		t.e.NameShape(d.shape)
		t.connect(d.anchor, sx, sy)
		t.d, t.step = &d, 0
		show(layer, d.shape)
		return
	}
	fs := t.d.follow[t.step]
	for _, s := range fs {
		(*s).SetXY(sx, sy)
	}
	t.connect(fs[0], sx, sy)
	t.step++
	if t.step < len(t.d.follow) {
		layer.Invalidate()
		return
	}
	s := t.d.shape
	hide(layer, s)
	t.d, t.step = nil, 0
	if t.e.Project().AddShape(t.e.CurrentLayer(), s) {
		logger().Debug("shape created", slog.String("tool", t.title), slog.String("shape", s.Name()))
	}
}

func (t *ShapeTool) BeginUp(x, y float64) {}

func (t *ShapeTool) EndDown(x, y float64) { t.Reset() }

func (t *ShapeTool) Move(x, y float64) {
	sx, sy := t.e.TryToSnap(x, y)
	if t.e.Project() != nil && t.e.Project().Options.TryToConnect {
		t.e.TryToHoverShape(sx, sy)
	}
	if t.d == nil {
		return
	}
	for _, s := range t.d.follow[t.step] {
		(*s).SetXY(sx, sy)
	}
	if l := working(t.e); l != nil {
		l.Invalidate()
	}
}

func (t *ShapeTool) Reset() {
	if t.d != nil {
		hide(working(t.e), t.d.shape)
	}
	t.d, t.step = nil, 0
}

// NewLine draws a line: press at the start, press at the end.
func NewLine(e *editor.Editor) *ShapeTool {
	return &ShapeTool{e: e, title: "Line", build: func(x, y float64, st *model.ShapeStyle, o *model.Options) draft {
		l := model.NewLineXY(x, y, x, y, st, o.DefaultIsStroked)
		return draft{shape: l, anchor: &l.Start, follow: [][]slot{{&l.End}}}
	}}
}

// NewRectangle draws a rectangle from two opposite corners.
func NewRectangle(e *editor.Editor) *ShapeTool {
	return &ShapeTool{e: e, title: "Rectangle", build: func(x, y float64, st *model.ShapeStyle, o *model.Options) draft {
		r := model.NewRectangle(x, y, x, y, st, o.DefaultIsStroked, o.DefaultIsFilled)
		return draft{shape: r, anchor: &r.TopLeft, follow: [][]slot{{&r.BottomRight}}}
	}}
}

// NewEllipse draws an ellipse inscribed in two opposite corners.
func NewEllipse(e *editor.Editor) *ShapeTool {
	return &ShapeTool{e: e, title: "Ellipse", build: func(x, y float64, st *model.ShapeStyle, o *model.Options) draft {
		el := model.NewEllipse(x, y, x, y, st, o.DefaultIsStroked, o.DefaultIsFilled)
		return draft{shape: el, anchor: &el.TopLeft, follow: [][]slot{{&el.BottomRight}}}
	}}
}

// NewText draws a text box from two opposite corners.
func NewText(e *editor.Editor) *ShapeTool {
	return &ShapeTool{e: e, title: "Text", build: func(x, y float64, st *model.ShapeStyle, o *model.Options) draft {
		t := model.NewText(x, y, x, y, st, "Text", o.DefaultIsStroked)
		return draft{shape: t, anchor: &t.TopLeft, follow: [][]slot{{&t.BottomRight}}}
	}}
}

// NewArc draws an arc in four presses: the two corners of the ellipse, then
// the start and end directions.
func NewArc(e *editor.Editor) *ShapeTool {
	return &ShapeTool{e: e, title: "Arc", build: func(x, y float64, st *model.ShapeStyle, o *model.Options) draft {
		a := model.NewArc(x, y, x, y, x, y, x, y, st, o.DefaultIsStroked, o.DefaultIsFilled)
		return draft{shape: a, anchor: &a.Point1, follow: [][]slot{{&a.Point2}, {&a.Point3}, {&a.Point4}}}
	}}
}

// NewCubicBezier draws a cubic curve: start, end, then the two controls.
func NewCubicBezier(e *editor.Editor) *ShapeTool {
	return &ShapeTool{e: e, title: "CubicBezier", build: func(x, y float64, st *model.ShapeStyle, o *model.Options) draft {
		b := model.NewCubicBezier(x, y, x, y, x, y, x, y, st, o.DefaultIsStroked, o.DefaultIsFilled)
		return draft{shape: b, anchor: &b.Point1, follow: [][]slot{{&b.Point4, &b.Point2, &b.Point3}, {&b.Point2}, {&b.Point3}}}
	}}
}

// NewQuadraticBezier draws a quadratic curve: start, end, then the control.
func NewQuadraticBezier(e *editor.Editor) *ShapeTool {
	return &ShapeTool{e: e, title: "QuadraticBezier", build: func(x, y float64, st *model.ShapeStyle, o *model.Options) draft {
		q := model.NewQuadraticBezier(x, y, x, y, x, y, st, o.DefaultIsStroked, o.DefaultIsFilled)
		return draft{shape: q, anchor: &q.Point1, follow: [][]slot{{&q.Point3, &q.Point2}, {&q.Point2}}}
	}}
}
