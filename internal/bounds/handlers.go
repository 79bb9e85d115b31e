/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package bounds

import (
	"core2d/internal/geom"
	"core2d/internal/model"
)

// nearPoint dispatches each candidate to the point handler, in order.
func nearPoint(r *Registry, target geom.Point2, radius, scale float64, pts ...*model.Point) *model.Point {
	for _, p := range pts {
		if p == nil {
			continue
		}
		if hit := r.handler(p).TryGetPoint(r, p, target, radius, scale); hit != nil {
			return hit
		}
	}
	return nil
}

func pointsBounds(pts []*model.Point) (geom.Rect2, bool) {
	if len(pts) == 0 {
		return geom.Rect2{}, false
	}
	return geom.BoundsOf(model.Positions(pts)), true
}

func degenerate(r geom.Rect2) bool {
	return r.W <= geom.Epsilon || r.H <= geom.Epsilon
}

type pointHandler struct{}

// pointTolerance is the hit radius of a point handle in document units. A
// point with StateSize keeps its handle size in the document, so zoom does
// not shrink it.
func pointTolerance(p *model.Point, radius, scale float64) float64 {
	if p.State().Has(model.StateSize) {
		return radius
	}
	return geom.Tolerance(radius, scale)
}

func (pointHandler) TryGetPoint(_ *Registry, s model.Shape, target geom.Point2, radius, scale float64) *model.Point {
	p := s.(*model.Point)
	if geom.Distance(p.Pos(), target) <= pointTolerance(p, radius, scale) {
		return p
	}
	return nil
}

func (h pointHandler) Contains(r *Registry, s model.Shape, target geom.Point2, radius, scale float64) bool {
	return h.TryGetPoint(r, s, target, radius, scale) != nil
}

func (pointHandler) Overlaps(_ *Registry, s model.Shape, rect geom.Rect2, radius, scale float64) bool {
	p := s.(*model.Point)
	tol := pointTolerance(p, radius, scale)
	return rect.Normalize().Inset(-tol, -tol).Contains(p.Pos())
}

func (pointHandler) Bounds(_ *Registry, s model.Shape) (geom.Rect2, bool) {
	p := s.(*model.Point).Pos()
	return geom.Rect2{X: p.X, Y: p.Y}, true
}

type lineHandler struct{}

func (lineHandler) TryGetPoint(r *Registry, s model.Shape, target geom.Point2, radius, scale float64) *model.Point {
	l := s.(*model.Line)
	return nearPoint(r, target, radius, scale, l.Start, l.End)
}

// zeroLength reports a line whose end points coincide. Such a line is only
// reachable through its points.
func zeroLength(l *model.Line) bool {
	return geom.Distance(l.Start.Pos(), l.End.Pos()) <= geom.Epsilon
}

func (lineHandler) Contains(_ *Registry, s model.Shape, target geom.Point2, radius, scale float64) bool {
	l := s.(*model.Line)
	if zeroLength(l) {
		return false
	}
	return geom.DistanceToSegment(target, l.Start.Pos(), l.End.Pos()) <= geom.Tolerance(radius, scale)
}

func (lineHandler) Overlaps(_ *Registry, s model.Shape, rect geom.Rect2, radius, scale float64) bool {
	l := s.(*model.Line)
	if zeroLength(l) {
		return false
	}
	tol := geom.Tolerance(radius, scale)
	return geom.SegmentIntersectsRect(l.Start.Pos(), l.End.Pos(), rect.Normalize().Inset(-tol, -tol))
}

func (lineHandler) Bounds(_ *Registry, s model.Shape) (geom.Rect2, bool) {
	return pointsBounds(s.GetPoints(nil))
}

// boxHandler serves the shapes spanned by two corner points: rectangles,
// text and images.
type boxHandler struct{}

func boxOf(s model.Shape) (tl, br *model.Point) {
	switch v := s.(type) {
	case *model.Rectangle:
		return v.TopLeft, v.BottomRight
	case *model.Text:
		return v.TopLeft, v.BottomRight
	case *model.Image:
		return v.TopLeft, v.BottomRight
	}
	panic("bounds: box handler registered for " + s.Kind().String())
}

func boxRect(s model.Shape) geom.Rect2 {
	tl, br := boxOf(s)
	return geom.FromPoints(tl.X(), tl.Y(), br.X(), br.Y())
}

func (boxHandler) TryGetPoint(r *Registry, s model.Shape, target geom.Point2, radius, scale float64) *model.Point {
	tl, br := boxOf(s)
	return nearPoint(r, target, radius, scale, tl, br)
}

func (boxHandler) Contains(_ *Registry, s model.Shape, target geom.Point2, radius, scale float64) bool {
	rect := boxRect(s)
	if degenerate(rect) {
		return false
	}
	tol := geom.Tolerance(radius, scale)
	return rect.Inset(-tol, -tol).Contains(target)
}

func (boxHandler) Overlaps(_ *Registry, s model.Shape, rect geom.Rect2, radius, scale float64) bool {
	tol := geom.Tolerance(radius, scale)
	return boxRect(s).Intersects(rect.Normalize().Inset(-tol, -tol))
}

func (boxHandler) Bounds(_ *Registry, s model.Shape) (geom.Rect2, bool) {
	return boxRect(s), true
}

type ellipseHandler struct{}

func (ellipseHandler) TryGetPoint(r *Registry, s model.Shape, target geom.Point2, radius, scale float64) *model.Point {
	e := s.(*model.Ellipse)
	return nearPoint(r, target, radius, scale, e.TopLeft, e.BottomRight)
}

func (ellipseHandler) Contains(_ *Registry, s model.Shape, target geom.Point2, radius, scale float64) bool {
	rect := s.(*model.Ellipse).Rect()
	if degenerate(rect) {
		return false
	}
	return geom.PointInPolygon(geom.FlattenEllipse(rect), target, radius, scale)
}

func (ellipseHandler) Overlaps(_ *Registry, s model.Shape, rect geom.Rect2, radius, scale float64) bool {
	return geom.RectOverlapsPolygon(geom.FlattenEllipse(s.(*model.Ellipse).Rect()), rect, radius, scale)
}

func (ellipseHandler) Bounds(_ *Registry, s model.Shape) (geom.Rect2, bool) {
	return s.(*model.Ellipse).Rect(), true
}

// hitOutline tests a flattened outline as an area when filled and as a
// stroke otherwise. An outline collapsed to one point hits nothing.
func hitOutline(pts []geom.Point2, filled bool, target geom.Point2, radius, scale float64) bool {
	if filled {
		return geom.PointInPolygon(pts, target, radius, scale)
	}
	return geom.PointNearPolyline(pts, target, radius, scale)
}

func overlapOutline(pts []geom.Point2, filled bool, rect geom.Rect2, radius, scale float64) bool {
	if filled {
		return geom.RectOverlapsPolygon(pts, rect, radius, scale)
	}
	return geom.RectOverlapsPolyline(pts, rect, radius, scale)
}

type arcHandler struct{}

func (arcHandler) TryGetPoint(r *Registry, s model.Shape, target geom.Point2, radius, scale float64) *model.Point {
	a := s.(*model.Arc)
	return nearPoint(r, target, radius, scale, a.Point1, a.Point2, a.Point3, a.Point4)
}

// flatArc reports an arc whose ellipse has no width or no height.
func flatArc(s model.Shape) bool {
	g := s.(*model.Arc).Geometry()
	return g.RX <= geom.Epsilon || g.RY <= geom.Epsilon
}

func (arcHandler) Contains(_ *Registry, s model.Shape, target geom.Point2, radius, scale float64) bool {
	if flatArc(s) {
		return false
	}
	return hitOutline(Outline(s)[0], s.IsFilled(), target, radius, scale)
}

func (arcHandler) Overlaps(_ *Registry, s model.Shape, rect geom.Rect2, radius, scale float64) bool {
	if flatArc(s) {
		return false
	}
	return overlapOutline(Outline(s)[0], s.IsFilled(), rect, radius, scale)
}

func (arcHandler) Bounds(_ *Registry, s model.Shape) (geom.Rect2, bool) {
	pts := Outline(s)[0]
	if len(pts) == 0 {
		return geom.Rect2{}, false
	}
	return geom.BoundsOf(pts), true
}

// curveHandler serves cubic and quadratic beziers.
type curveHandler struct{}

func (curveHandler) TryGetPoint(r *Registry, s model.Shape, target geom.Point2, radius, scale float64) *model.Point {
	return nearPoint(r, target, radius, scale, s.GetPoints(nil)...)
}

func (curveHandler) Contains(_ *Registry, s model.Shape, target geom.Point2, radius, scale float64) bool {
	if geom.Collapsed(model.Positions(s.GetPoints(nil))) {
		return false
	}
	return hitOutline(Outline(s)[0], s.IsFilled(), target, radius, scale)
}

func (curveHandler) Overlaps(_ *Registry, s model.Shape, rect geom.Rect2, radius, scale float64) bool {
	if geom.Collapsed(model.Positions(s.GetPoints(nil))) {
		return false
	}
	return overlapOutline(Outline(s)[0], s.IsFilled(), rect, radius, scale)
}

// Bounds uses the control points, which enclose the curve.
func (curveHandler) Bounds(_ *Registry, s model.Shape) (geom.Rect2, bool) {
	return pointsBounds(s.GetPoints(nil))
}

type pathHandler struct{}

func (pathHandler) TryGetPoint(r *Registry, s model.Shape, target geom.Point2, radius, scale float64) *model.Point {
	return nearPoint(r, target, radius, scale, s.GetPoints(nil)...)
}

// Contains tests each figure topmost first, then the path as one area when it
// is filled, so holes follow the fill rule.
func (pathHandler) Contains(_ *Registry, s model.Shape, target geom.Point2, radius, scale float64) bool {
	p := s.(*model.Path)
	if p.Geometry == nil {
		return false
	}
	outlines := Outline(s)
	for i := len(outlines) - 1; i >= 0; i-- {
		f := p.Geometry.Figures.At(i)
		if geom.PointNearPolyline(closeRing(outlines[i], f.IsClosed), target, radius, scale) {
			return true
		}
	}
	if !s.IsFilled() {
		return false
	}
	return fillContains(outlines, p.Geometry.FillRule, target)
}

func (pathHandler) Overlaps(_ *Registry, s model.Shape, rect geom.Rect2, radius, scale float64) bool {
	p := s.(*model.Path)
	if p.Geometry == nil {
		return false
	}
	for i, pts := range Outline(s) {
		f := p.Geometry.Figures.At(i)
		if overlapOutline(pts, s.IsFilled() && f.IsFilled, rect, radius, scale) {
			return true
		}
	}
	return false
}

func (pathHandler) Bounds(_ *Registry, s model.Shape) (geom.Rect2, bool) {
	var all []geom.Point2
	for _, pts := range Outline(s) {
		all = append(all, pts...)
	}
	if len(all) == 0 {
		return geom.Rect2{}, false
	}
	return geom.BoundsOf(all), true
}

func closeRing(pts []geom.Point2, closed bool) []geom.Point2 {
	if !closed || len(pts) < 3 {
		return pts
	}
	return append(append([]geom.Point2(nil), pts...), pts[0])
}

// fillContains applies the fill rule over every figure.
func fillContains(outlines [][]geom.Point2, rule model.FillRule, target geom.Point2) bool {
	if rule == model.FillEvenOdd {
		inside := false
		for _, pts := range outlines {
			if geom.PolygonContains(pts, target) {
				inside = !inside
			}
		}
		return inside
	}
	return winding(outlines, target) != 0
}

func winding(outlines [][]geom.Point2, target geom.Point2) int {
	w := 0
	for _, pts := range outlines {
		n := len(pts)
		if n < 3 {
			continue
		}
		for i := 0; i < n; i++ {
			a, b := pts[i], pts[(i+1)%n]
			side := b.Sub(a).Cross(target.Sub(a))
			if a.Y <= target.Y {
				if b.Y > target.Y && side > 0 {
					w++
				}
			} else if b.Y <= target.Y && side < 0 {
				w--
			}
		}
	}
	return w
}

type groupHandler struct{}

// TryGetPoint tests the connectors first, then the children topmost first.
func (groupHandler) TryGetPoint(r *Registry, s model.Shape, target geom.Point2, radius, scale float64) *model.Point {
	g := s.(*model.Group)
	if p := nearPoint(r, target, radius, scale, g.Connectors.Items()...); p != nil {
		return p
	}
	return r.TryGetPoint(g.Shapes, target, radius, scale)
}

func (groupHandler) Contains(r *Registry, s model.Shape, target geom.Point2, radius, scale float64) bool {
	return r.TryGetShape(s.(*model.Group).Shapes, target, radius, scale) != nil
}

func (groupHandler) Overlaps(r *Registry, s model.Shape, rect geom.Rect2, radius, scale float64) bool {
	for _, c := range s.(*model.Group).Shapes.All() {
		if visible(c) && r.Overlaps(c, rect, radius, scale) {
			return true
		}
	}
	return false
}

func (groupHandler) Bounds(r *Registry, s model.Shape) (geom.Rect2, bool) {
	g := s.(*model.Group)
	shapes := g.Shapes.Items()
	for _, p := range g.Connectors.All() {
		shapes = append(shapes, p)
	}
	return r.GetBounds(shapes)
}
