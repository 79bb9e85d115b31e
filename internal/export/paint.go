/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"image/color"
	"strconv"
	"strings"

	"core2d/internal/bounds"
	"core2d/internal/geom"
	"core2d/internal/model"
)

// figure is one flattened polyline of a shape.
type figure struct {
	pts    []geom.Point2
	closed bool
	filled bool
}

// figuresOf flattens s into polylines. Points and groups yield none.
func figuresOf(s model.Shape) []figure {
	filled := s.IsFilled()
	switch v := s.(type) {
	case *model.Line:
		return []figure{{pts: []geom.Point2{v.Start.Pos(), v.End.Pos()}}}
	case *model.Rectangle, *model.Text, *model.Image:
		out := bounds.Outline(s)
		return []figure{{pts: out[0], closed: true, filled: filled}}
	case *model.Ellipse:
		return []figure{{pts: geom.FlattenEllipse(v.Rect()), closed: true, filled: filled}}
	case *model.Arc, *model.CubicBezier, *model.QuadraticBezier:
		out := bounds.Outline(s)
		return []figure{{pts: out[0], closed: filled, filled: filled}}
	case *model.Path:
		var out []figure
		for _, f := range v.Geometry.Figures.All() {
			out = append(out, figure{pts: bounds.FlattenFigure(f), closed: f.IsClosed, filled: filled && f.IsFilled})
		}
		return out
	}
	return nil
}

func nrgba(c model.Color) color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

func styleOf(s model.Shape) *model.ShapeStyle {
	if st := s.Style(); st != nil {
		return st
	}
	return model.DefaultStyle()
}

func stroked(s model.Shape) bool {
	st := styleOf(s)
	return s.IsStroked() && st.Stroke.A > 0 && st.Thickness > 0
}

// fixedStroke reports a stroke whose width stays in output units at any
// export scale.
func fixedStroke(s model.Shape) bool { return s.State().Has(model.StateThickness) }

func filled(s model.Shape) bool {
	return s.IsFilled() && styleOf(s).Fill.A > 0
}

// dashes parses a space or comma separated dash list. Invalid entries are dropped.
func dashes(st *model.ShapeStyle) []float64 {
	var out []float64
	for _, f := range strings.FieldsFunc(st.Dashes, func(r rune) bool { return r == ' ' || r == ',' }) {
		if v, err := strconv.ParseFloat(f, 64); err == nil && v >= 0 {
			out = append(out, v*st.Thickness)
		}
	}
	return out
}

func fontSize(st *model.ShapeStyle) float64 {
	if st.Text.FontSize > 0 {
		return st.Text.FontSize
	}
	return 12
}

// textOrigin places a single line of width tw and font size inside r by the
// style alignment and returns the baseline start.
func textOrigin(r geom.Rect2, tw, size float64, st *model.ShapeStyle) geom.Point2 {
	x := r.Left()
	switch st.Text.HAlign {
	case model.TextCenter:
		x = r.Left() + (r.W-tw)/2
	case model.TextRight:
		x = r.Right() - tw
	}
	y := r.Top() + size
	switch st.Text.VAlign {
	case model.TextMiddle:
		y = r.Top() + r.H/2 + size*0.35
	case model.TextBottom:
		y = r.Bottom() - size*0.25
	}
	return geom.Pt(x, y)
}
