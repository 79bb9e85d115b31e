/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import (
	"core2d/internal/geom"
	"core2d/internal/ids"
	"core2d/internal/seq"
)

// adopt makes owner the owner of every point that has none yet.
func adopt(owner string, pts ...*Point) {
	for _, p := range pts {
		if p != nil && p.owner == "" {
			p.owner = owner
		}
	}
}

// Line is a straight segment between two points.
type Line struct {
	base
	Start, End *Point
}

// NewLine creates a line over existing points. Points without an owner are adopted.
func NewLine(start, end *Point, style *ShapeStyle, stroked bool) *Line {
	l := &Line{base: newBase(ids.PrefixLine, "", style, stroked, false), Start: start, End: end}
	adopt(l.id, start, end)
	return l
}

// NewLineXY creates a line with two private points.
func NewLineXY(x1, y1, x2, y2 float64, style *ShapeStyle, stroked bool) *Line {
	return NewLine(NewPoint(x1, y1), NewPoint(x2, y2), style, stroked)
}

func (l *Line) Kind() Kind                               { return KindLine }
func (l *Line) Move(dx, dy float64)                      { movePoints(l.id, dx, dy, l.Start, l.End) }
func (l *Line) GetPoints(out []*Point) []*Point          { return append(out, l.Start, l.End) }
func (l *Line) Bind(Binder, seq.Seq[*Property], *Record) {}

func (l *Line) Copy(shared Shared) Shape {
	if c, ok := shared.lookup(l); ok {
		return c.(*Line)
	}
	c := &Line{base: startCopy(&l.base, ids.PrefixLine, shared)}
	shared.store(l, c)
	c.Start = l.Start.CopyPoint(shared)
	c.End = l.End.CopyPoint(shared)
	return c
}

// Rectangle is an axis aligned box spanned by two corners.
type Rectangle struct {
	base
	TopLeft, BottomRight *Point
}

func NewRectangle(x1, y1, x2, y2 float64, style *ShapeStyle, stroked, filled bool) *Rectangle {
	r := &Rectangle{base: newBase(ids.PrefixRectangle, "", style, stroked, filled), TopLeft: NewPoint(x1, y1), BottomRight: NewPoint(x2, y2)}
	adopt(r.id, r.TopLeft, r.BottomRight)
	return r
}

func (r *Rectangle) Kind() Kind                               { return KindRectangle }
func (r *Rectangle) Move(dx, dy float64)                      { movePoints(r.id, dx, dy, r.TopLeft, r.BottomRight) }
func (r *Rectangle) GetPoints(out []*Point) []*Point          { return append(out, r.TopLeft, r.BottomRight) }
func (r *Rectangle) Bind(Binder, seq.Seq[*Property], *Record) {}
func (r *Rectangle) Rect() geom.Rect2                         { return spanRect(r.TopLeft, r.BottomRight) }

func (r *Rectangle) Copy(shared Shared) Shape {
	if c, ok := shared.lookup(r); ok {
		return c.(*Rectangle)
	}
	c := &Rectangle{base: startCopy(&r.base, ids.PrefixRectangle, shared)}
	shared.store(r, c)
	c.TopLeft = r.TopLeft.CopyPoint(shared)
	c.BottomRight = r.BottomRight.CopyPoint(shared)
	return c
}

// Ellipse is inscribed in the box spanned by two corners.
type Ellipse struct {
	base
	TopLeft, BottomRight *Point
}

func NewEllipse(x1, y1, x2, y2 float64, style *ShapeStyle, stroked, filled bool) *Ellipse {
	e := &Ellipse{base: newBase(ids.PrefixEllipse, "", style, stroked, filled), TopLeft: NewPoint(x1, y1), BottomRight: NewPoint(x2, y2)}
	adopt(e.id, e.TopLeft, e.BottomRight)
	return e
}

func (e *Ellipse) Kind() Kind                               { return KindEllipse }
func (e *Ellipse) Move(dx, dy float64)                      { movePoints(e.id, dx, dy, e.TopLeft, e.BottomRight) }
func (e *Ellipse) GetPoints(out []*Point) []*Point          { return append(out, e.TopLeft, e.BottomRight) }
func (e *Ellipse) Bind(Binder, seq.Seq[*Property], *Record) {}
func (e *Ellipse) Rect() geom.Rect2                         { return spanRect(e.TopLeft, e.BottomRight) }

func (e *Ellipse) Copy(shared Shared) Shape {
	if c, ok := shared.lookup(e); ok {
		return c.(*Ellipse)
	}
	c := &Ellipse{base: startCopy(&e.base, ids.PrefixEllipse, shared)}
	shared.store(e, c)
	c.TopLeft = e.TopLeft.CopyPoint(shared)
	c.BottomRight = e.BottomRight.CopyPoint(shared)
	return c
}

// Arc is an elliptical arc. Point1 and Point2 span the ellipse bounds,
// Point3 and Point4 give the start and end rays from its center.
type Arc struct {
	base
	Point1, Point2, Point3, Point4 *Point
}

func NewArc(x1, y1, x2, y2, x3, y3, x4, y4 float64, style *ShapeStyle, stroked, filled bool) *Arc {
	a := &Arc{
		base:   newBase(ids.PrefixArc, "", style, stroked, filled),
		Point1: NewPoint(x1, y1), Point2: NewPoint(x2, y2), Point3: NewPoint(x3, y3), Point4: NewPoint(x4, y4),
	}
	adopt(a.id, a.Point1, a.Point2, a.Point3, a.Point4)
	return a
}

func (a *Arc) Kind() Kind { return KindArc }
func (a *Arc) Move(dx, dy float64) {
	movePoints(a.id, dx, dy, a.Point1, a.Point2, a.Point3, a.Point4)
}
func (a *Arc) GetPoints(out []*Point) []*Point {
	return append(out, a.Point1, a.Point2, a.Point3, a.Point4)
}
func (a *Arc) Bind(Binder, seq.Seq[*Property], *Record) {}

// Geometry returns the arc in center parameterization.
func (a *Arc) Geometry() geom.Arc {
	return geom.ArcFromPoints(a.Point1.Pos(), a.Point2.Pos(), a.Point3.Pos(), a.Point4.Pos())
}

func (a *Arc) Copy(shared Shared) Shape {
	if c, ok := shared.lookup(a); ok {
		return c.(*Arc)
	}
	c := &Arc{base: startCopy(&a.base, ids.PrefixArc, shared)}
	shared.store(a, c)
	c.Point1 = a.Point1.CopyPoint(shared)
	c.Point2 = a.Point2.CopyPoint(shared)
	c.Point3 = a.Point3.CopyPoint(shared)
	c.Point4 = a.Point4.CopyPoint(shared)
	return c
}

// CubicBezier runs from Point1 to Point4 with Point2 and Point3 as controls.
type CubicBezier struct {
	base
	Point1, Point2, Point3, Point4 *Point
}

func NewCubicBezier(x1, y1, x2, y2, x3, y3, x4, y4 float64, style *ShapeStyle, stroked, filled bool) *CubicBezier {
	b := &CubicBezier{
		base:   newBase(ids.PrefixCubic, "", style, stroked, filled),
		Point1: NewPoint(x1, y1), Point2: NewPoint(x2, y2), Point3: NewPoint(x3, y3), Point4: NewPoint(x4, y4),
	}
	adopt(b.id, b.Point1, b.Point2, b.Point3, b.Point4)
	return b
}

func (b *CubicBezier) Kind() Kind { return KindCubicBezier }
func (b *CubicBezier) Move(dx, dy float64) {
	movePoints(b.id, dx, dy, b.Point1, b.Point2, b.Point3, b.Point4)
}
func (b *CubicBezier) GetPoints(out []*Point) []*Point {
	return append(out, b.Point1, b.Point2, b.Point3, b.Point4)
}
func (b *CubicBezier) Bind(Binder, seq.Seq[*Property], *Record) {}

func (b *CubicBezier) Copy(shared Shared) Shape {
	if c, ok := shared.lookup(b); ok {
		return c.(*CubicBezier)
	}
	c := &CubicBezier{base: startCopy(&b.base, ids.PrefixCubic, shared)}
	shared.store(b, c)
	c.Point1 = b.Point1.CopyPoint(shared)
	c.Point2 = b.Point2.CopyPoint(shared)
	c.Point3 = b.Point3.CopyPoint(shared)
	c.Point4 = b.Point4.CopyPoint(shared)
	return c
}

// QuadraticBezier runs from Point1 to Point3 with Point2 as control.
type QuadraticBezier struct {
	base
	Point1, Point2, Point3 *Point
}

func NewQuadraticBezier(x1, y1, x2, y2, x3, y3 float64, style *ShapeStyle, stroked, filled bool) *QuadraticBezier {
	q := &QuadraticBezier{
		base:   newBase(ids.PrefixQuadratic, "", style, stroked, filled),
		Point1: NewPoint(x1, y1), Point2: NewPoint(x2, y2), Point3: NewPoint(x3, y3),
	}
	adopt(q.id, q.Point1, q.Point2, q.Point3)
	return q
}

func (q *QuadraticBezier) Kind() Kind { return KindQuadraticBezier }
func (q *QuadraticBezier) Move(dx, dy float64) {
	movePoints(q.id, dx, dy, q.Point1, q.Point2, q.Point3)
}
func (q *QuadraticBezier) GetPoints(out []*Point) []*Point {
	return append(out, q.Point1, q.Point2, q.Point3)
}
func (q *QuadraticBezier) Bind(Binder, seq.Seq[*Property], *Record) {}

func (q *QuadraticBezier) Copy(shared Shared) Shape {
	if c, ok := shared.lookup(q); ok {
		return c.(*QuadraticBezier)
	}
	c := &QuadraticBezier{base: startCopy(&q.base, ids.PrefixQuadratic, shared)}
	shared.store(q, c)
	c.Point1 = q.Point1.CopyPoint(shared)
	c.Point2 = q.Point2.CopyPoint(shared)
	c.Point3 = q.Point3.CopyPoint(shared)
	return c
}

// Text holds a template string such as "Name: {Name}". Bind stores the
// resolved form separately so the template is never lost.
type Text struct {
	base
	TopLeft, BottomRight *Point
	text                 string
	bound                string
	isBound              bool
}

func NewText(x1, y1, x2, y2 float64, style *ShapeStyle, text string, stroked bool) *Text {
	t := &Text{base: newBase(ids.PrefixText, "", style, stroked, false), TopLeft: NewPoint(x1, y1), BottomRight: NewPoint(x2, y2), text: text}
	adopt(t.id, t.TopLeft, t.BottomRight)
	return t
}

func (t *Text) Kind() Kind                      { return KindText }
func (t *Text) Move(dx, dy float64)             { movePoints(t.id, dx, dy, t.TopLeft, t.BottomRight) }
func (t *Text) GetPoints(out []*Point) []*Point { return append(out, t.TopLeft, t.BottomRight) }
func (t *Text) Rect() geom.Rect2                { return spanRect(t.TopLeft, t.BottomRight) }
func (t *Text) Text() string                    { return t.text }
func (t *Text) SetText(v string) bool           { return set(&t.text, v, &t.dirty) }

// Bound returns the text resolved by the last Bind, or the template when
// nothing was bound. A binding that resolved to "" stays empty.
func (t *Text) Bound() string {
	if !t.isBound {
		return t.text
	}
	return t.bound
}

// IsBound reports whether a binder has resolved the template.
func (t *Text) IsBound() bool { return t.isBound }

// SetBound stores a resolved text. It is called by binders.
func (t *Text) SetBound(v string) bool {
	changed := set(&t.isBound, true, &t.dirty)
	return set(&t.bound, v, &t.dirty) || changed
}

// ClearBound drops the resolved text so Bound shows the template again.
func (t *Text) ClearBound() bool {
	set(&t.bound, "", &t.dirty)
	return set(&t.isBound, false, &t.dirty)
}

func (t *Text) Bind(b Binder, props seq.Seq[*Property], r *Record) {
	if b != nil {
		b.BindText(t, props, r)
	}
}

func (t *Text) Copy(shared Shared) Shape {
	if c, ok := shared.lookup(t); ok {
		return c.(*Text)
	}
	c := &Text{base: startCopy(&t.base, ids.PrefixText, shared), text: t.text, bound: t.bound, isBound: t.isBound}
	shared.store(t, c)
	c.TopLeft = t.TopLeft.CopyPoint(shared)
	c.BottomRight = t.BottomRight.CopyPoint(shared)
	return c
}

// Image references bytes in the project image cache by key.
type Image struct {
	base
	TopLeft, BottomRight *Point
	key                  string
}

func NewImage(x1, y1, x2, y2 float64, style *ShapeStyle, key string) *Image {
	i := &Image{base: newBase(ids.PrefixImage, "", style, false, false), TopLeft: NewPoint(x1, y1), BottomRight: NewPoint(x2, y2), key: key}
	adopt(i.id, i.TopLeft, i.BottomRight)
	return i
}

func (i *Image) Kind() Kind                               { return KindImage }
func (i *Image) Move(dx, dy float64)                      { movePoints(i.id, dx, dy, i.TopLeft, i.BottomRight) }
func (i *Image) GetPoints(out []*Point) []*Point          { return append(out, i.TopLeft, i.BottomRight) }
func (i *Image) Bind(Binder, seq.Seq[*Property], *Record) {}
func (i *Image) Rect() geom.Rect2                         { return spanRect(i.TopLeft, i.BottomRight) }
func (i *Image) Key() string                              { return i.key }
func (i *Image) SetKey(v string) bool                     { return set(&i.key, v, &i.dirty) }

func (i *Image) Copy(shared Shared) Shape {
	if c, ok := shared.lookup(i); ok {
		return c.(*Image)
	}
	c := &Image{base: startCopy(&i.base, ids.PrefixImage, shared), key: i.key}
	shared.store(i, c)
	c.TopLeft = i.TopLeft.CopyPoint(shared)
	c.BottomRight = i.BottomRight.CopyPoint(shared)
	return c
}

func spanRect(a, b *Point) geom.Rect2 {
	if a == nil || b == nil {
		return geom.Rect2{}
	}
	return geom.FromPoints(a.x, a.y, b.x, b.y)
}
