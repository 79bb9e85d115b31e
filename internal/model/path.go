/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import (
	"core2d/internal/ids"
	"core2d/internal/seq"
)

// SegmentKind tags a path segment variant.
type SegmentKind int

const (
	SegLine SegmentKind = iota
	SegArc
	SegCubicBezier
	SegQuadraticBezier
	SegPolyLine
	SegPolyCubicBezier
	SegPolyQuadraticBezier
)

var segmentNames = [...]string{"line", "arc", "cubicBezier", "quadraticBezier", "polyLine", "polyCubicBezier", "polyQuadraticBezier"}

func (k SegmentKind) String() string {
	if k >= 0 && int(k) < len(segmentNames) {
		return segmentNames[k]
	}
	return "unknown"
}

// ParseSegmentKind is the inverse of SegmentKind.String.
func ParseSegmentKind(s string) (SegmentKind, bool) {
	for i, n := range segmentNames {
		if n == s {
			return SegmentKind(i), true
		}
	}
	return 0, false
}

// PathSegment continues a figure from the end of the previous segment.
type PathSegment interface {
	SegmentKind() SegmentKind
	IsStroked() bool
	GetPoints(out []*Point) []*Point
	Copy(shared Shared) PathSegment
}

type LineSegment struct {
	Point   *Point
	Stroked bool
}

func (s *LineSegment) SegmentKind() SegmentKind        { return SegLine }
func (s *LineSegment) IsStroked() bool                 { return s.Stroked }
func (s *LineSegment) GetPoints(out []*Point) []*Point { return append(out, s.Point) }
func (s *LineSegment) Copy(shared Shared) PathSegment {
	return &LineSegment{Point: s.Point.CopyPoint(shared), Stroked: s.Stroked}
}

// ArcSegment is an SVG style endpoint arc.
type ArcSegment struct {
	Point         *Point
	Width, Height float64
	RotationAngle float64
	IsLargeArc    bool
	Clockwise     bool
	Stroked       bool
}

func (s *ArcSegment) SegmentKind() SegmentKind        { return SegArc }
func (s *ArcSegment) IsStroked() bool                 { return s.Stroked }
func (s *ArcSegment) GetPoints(out []*Point) []*Point { return append(out, s.Point) }
func (s *ArcSegment) Copy(shared Shared) PathSegment {
	c := *s
	c.Point = s.Point.CopyPoint(shared)
	return &c
}

type CubicBezierSegment struct {
	Point1, Point2, Point3 *Point
	Stroked                bool
}

func (s *CubicBezierSegment) SegmentKind() SegmentKind { return SegCubicBezier }
func (s *CubicBezierSegment) IsStroked() bool          { return s.Stroked }
func (s *CubicBezierSegment) GetPoints(out []*Point) []*Point {
	return append(out, s.Point1, s.Point2, s.Point3)
}
func (s *CubicBezierSegment) Copy(shared Shared) PathSegment {
	return &CubicBezierSegment{Point1: s.Point1.CopyPoint(shared), Point2: s.Point2.CopyPoint(shared), Point3: s.Point3.CopyPoint(shared), Stroked: s.Stroked}
}

type QuadraticBezierSegment struct {
	Point1, Point2 *Point
	Stroked        bool
}

func (s *QuadraticBezierSegment) SegmentKind() SegmentKind { return SegQuadraticBezier }
func (s *QuadraticBezierSegment) IsStroked() bool          { return s.Stroked }
func (s *QuadraticBezierSegment) GetPoints(out []*Point) []*Point {
	return append(out, s.Point1, s.Point2)
}
func (s *QuadraticBezierSegment) Copy(shared Shared) PathSegment {
	return &QuadraticBezierSegment{Point1: s.Point1.CopyPoint(shared), Point2: s.Point2.CopyPoint(shared), Stroked: s.Stroked}
}

// PolySegment covers the three poly variants; Kind says how Points are grouped.
type PolySegment struct {
	Kind    SegmentKind
	Points  seq.Seq[*Point]
	Stroked bool
}

func (s *PolySegment) SegmentKind() SegmentKind { return s.Kind }
func (s *PolySegment) IsStroked() bool          { return s.Stroked }
func (s *PolySegment) GetPoints(out []*Point) []*Point {
	for _, p := range s.Points.All() {
		out = append(out, p)
	}
	return out
}
func (s *PolySegment) Copy(shared Shared) PathSegment {
	c := &PolySegment{Kind: s.Kind, Stroked: s.Stroked}
	for _, p := range s.Points.All() {
		c.Points = c.Points.Append(p.CopyPoint(shared))
	}
	return c
}

// NewPolyLineSegment, NewPolyCubicBezierSegment and NewPolyQuadraticBezierSegment
// build the poly variants.
func NewPolyLineSegment(stroked bool, pts ...*Point) *PolySegment {
	return &PolySegment{Kind: SegPolyLine, Points: seq.Of(pts...), Stroked: stroked}
}

func NewPolyCubicBezierSegment(stroked bool, pts ...*Point) *PolySegment {
	return &PolySegment{Kind: SegPolyCubicBezier, Points: seq.Of(pts...), Stroked: stroked}
}

func NewPolyQuadraticBezierSegment(stroked bool, pts ...*Point) *PolySegment {
	return &PolySegment{Kind: SegPolyQuadraticBezier, Points: seq.Of(pts...), Stroked: stroked}
}

// PathFigure is one connected sub-path.
type PathFigure struct {
	StartPoint *Point
	Segments   seq.Seq[PathSegment]
	IsClosed   bool
	IsFilled   bool
}

// GetPoints appends the start point followed by every segment point.
func (f *PathFigure) GetPoints(out []*Point) []*Point {
	if f.StartPoint != nil {
		out = append(out, f.StartPoint)
	}
	for _, s := range f.Segments.All() {
		out = s.GetPoints(out)
	}
	return out
}

func (f *PathFigure) Copy(shared Shared) *PathFigure {
	c := &PathFigure{StartPoint: f.StartPoint.CopyPoint(shared), IsClosed: f.IsClosed, IsFilled: f.IsFilled}
	for _, s := range f.Segments.All() {
		c.Segments = c.Segments.Append(s.Copy(shared))
	}
	return c
}

// PathGeometry is a list of figures under one fill rule.
type PathGeometry struct {
	FillRule FillRule
	Figures  seq.Seq[*PathFigure]
}

func (g *PathGeometry) GetPoints(out []*Point) []*Point {
	if g == nil {
		return out
	}
	for _, f := range g.Figures.All() {
		out = f.GetPoints(out)
	}
	return out
}

func (g *PathGeometry) Copy(shared Shared) *PathGeometry {
	if g == nil {
		return nil
	}
	c := &PathGeometry{FillRule: g.FillRule}
	for _, f := range g.Figures.All() {
		c.Figures = c.Figures.Append(f.Copy(shared))
	}
	return c
}

// Path is a shape drawn from a PathGeometry.
type Path struct {
	base
	Geometry *PathGeometry
}

// NewPath wraps geometry into a shape and adopts its unowned points.
func NewPath(geometry *PathGeometry, style *ShapeStyle, stroked, filled bool) *Path {
	p := &Path{base: newBase(ids.PrefixPath, "", style, stroked, filled), Geometry: geometry}
	adopt(p.id, geometry.GetPoints(nil)...)
	return p
}

func (p *Path) Kind() Kind { return KindPath }
func (p *Path) Move(dx, dy float64) {
	movePoints(p.id, dx, dy, DistinctPoints(p.Geometry.GetPoints(nil))...)
}
func (p *Path) GetPoints(out []*Point) []*Point          { return p.Geometry.GetPoints(out) }
func (p *Path) Bind(Binder, seq.Seq[*Property], *Record) {}

func (p *Path) Copy(shared Shared) Shape {
	if c, ok := shared.lookup(p); ok {
		return c.(*Path)
	}
	c := &Path{base: startCopy(&p.base, ids.PrefixPath, shared)}
	shared.store(p, c)
	c.Geometry = p.Geometry.Copy(shared)
	return c
}

// GeometryBuilder assembles a PathGeometry figure by figure, mirroring a
// stream geometry context.
type GeometryBuilder struct {
	g   *PathGeometry
	cur *PathFigure
}

func NewGeometryBuilder(rule FillRule) *GeometryBuilder {
	return &GeometryBuilder{g: &PathGeometry{FillRule: rule}}
}

// BeginFigure starts a new figure at p.
func (b *GeometryBuilder) BeginFigure(p *Point, filled, closed bool) *GeometryBuilder {
	b.flush()
	b.cur = &PathFigure{StartPoint: p, IsFilled: filled, IsClosed: closed}
	return b
}

func (b *GeometryBuilder) add(s PathSegment) *GeometryBuilder {
	if b.cur != nil {
		b.cur.Segments = b.cur.Segments.Append(s)
	}
	return b
}

func (b *GeometryBuilder) LineTo(p *Point) *GeometryBuilder {
	return b.add(&LineSegment{Point: p, Stroked: true})
}

func (b *GeometryBuilder) ArcTo(p *Point, w, h, rotation float64, large, clockwise bool) *GeometryBuilder {
	return b.add(&ArcSegment{Point: p, Width: w, Height: h, RotationAngle: rotation, IsLargeArc: large, Clockwise: clockwise, Stroked: true})
}

func (b *GeometryBuilder) CubicTo(p1, p2, p3 *Point) *GeometryBuilder {
	return b.add(&CubicBezierSegment{Point1: p1, Point2: p2, Point3: p3, Stroked: true})
}

func (b *GeometryBuilder) QuadraticTo(p1, p2 *Point) *GeometryBuilder {
	return b.add(&QuadraticBezierSegment{Point1: p1, Point2: p2, Stroked: true})
}

func (b *GeometryBuilder) PolyLineTo(pts ...*Point) *GeometryBuilder {
	return b.add(NewPolyLineSegment(true, pts...))
}

func (b *GeometryBuilder) flush() {
	if b.cur != nil {
		b.g.Figures = b.g.Figures.Append(b.cur)
		b.cur = nil
	}
}

// Geometry finishes the current figure and returns the geometry.
func (b *GeometryBuilder) Geometry() *PathGeometry {
	b.flush()
	return b.g
}
