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

// Outline flattens s into polylines in document space. Closed shapes yield
// rings without a repeated first point. Groups yield the outlines of their
// children in paint order; a path yields one polyline per figure.
func Outline(s model.Shape) [][]geom.Point2 {
	switch v := s.(type) {
	case *model.Point:
		return [][]geom.Point2{{v.Pos()}}
	case *model.Line:
		return [][]geom.Point2{{v.Start.Pos(), v.End.Pos()}}
	case *model.Rectangle:
		return [][]geom.Point2{v.Rect().Corners()}
	case *model.Text:
		return [][]geom.Point2{v.Rect().Corners()}
	case *model.Image:
		return [][]geom.Point2{v.Rect().Corners()}
	case *model.Ellipse:
		return [][]geom.Point2{geom.FlattenEllipse(v.Rect())}
	case *model.Arc:
		return [][]geom.Point2{v.Geometry().Flatten()}
	case *model.CubicBezier:
		return [][]geom.Point2{geom.Flatten(geom.CurveCubic, model.Positions(v.GetPoints(nil)))}
	case *model.QuadraticBezier:
		return [][]geom.Point2{geom.Flatten(geom.CurveQuadratic, model.Positions(v.GetPoints(nil)))}
	case *model.Path:
		if v.Geometry == nil {
			return nil
		}
		out := make([][]geom.Point2, 0, v.Geometry.Figures.Len())
		for _, f := range v.Geometry.Figures.All() {
			out = append(out, FlattenFigure(f))
		}
		return out
	case *model.Group:
		var out [][]geom.Point2
		for _, c := range v.Shapes.All() {
			out = append(out, Outline(c)...)
		}
		return out
	}
	return nil
}

// FlattenFigure returns the polyline of one path figure, starting at its
// start point.
func FlattenFigure(f *model.PathFigure) []geom.Point2 {
	if f == nil || f.StartPoint == nil {
		return nil
	}
	cur := f.StartPoint.Pos()
	out := []geom.Point2{cur}
	for _, s := range f.Segments.All() {
		switch seg := s.(type) {
		case *model.LineSegment:
			out = append(out, seg.Point.Pos())
		case *model.ArcSegment:
			geom.FlattenEndpointArc(cur, seg.Point.Pos(), seg.Width, seg.Height, seg.RotationAngle, seg.IsLargeArc, seg.Clockwise, &out)
		case *model.CubicBezierSegment:
			geom.FlattenCubic(cur, seg.Point1.Pos(), seg.Point2.Pos(), seg.Point3.Pos(), &out)
		case *model.QuadraticBezierSegment:
			geom.FlattenQuadratic(cur, seg.Point1.Pos(), seg.Point2.Pos(), &out)
		case *model.PolySegment:
			pts := append([]geom.Point2{cur}, model.Positions(seg.Points.Items())...)
			switch seg.Kind {
			case model.SegPolyCubicBezier:
				out = append(out, geom.Flatten(geom.CurvePolyCubic, pts)[1:]...)
			case model.SegPolyQuadraticBezier:
				out = append(out, geom.Flatten(geom.CurvePolyQuadratic, pts)[1:]...)
			default:
				out = append(out, pts[1:]...)
			}
		}
		cur = out[len(out)-1]
	}
	return out
}
