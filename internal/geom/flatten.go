/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "math"

// Flattening parameters. Both are fixed so that identical inputs always
// produce identical polylines.
const (
	Flatness      = 0.25
	maxDepth      = 16
	arcStepsPerPi = 32
)

// CurveKind selects how control points passed to Flatten are interpreted.
type CurveKind int

const (
	// CurveLine: p0, p1.
	CurveLine CurveKind = iota
	// CurveQuadratic: p0, p1 (control), p2.
	CurveQuadratic
	// CurveCubic: p0, p1, p2 (controls), p3.
	CurveCubic
	// CurveArc: p1, p2 span the ellipse bounds, p3 and p4 are the start and end rays.
	CurveArc
	// CurvePolyLine: p0, p1, ..., pn.
	CurvePolyLine
	// CurvePolyQuadratic: p0 followed by (control, end) pairs.
	CurvePolyQuadratic
	// CurvePolyCubic: p0 followed by (c1, c2, end) triples.
	CurvePolyCubic
)

// Flatten turns curve control points into a polyline that starts at the first
// curve point. Incomplete control point lists flatten the complete prefix only.
func Flatten(kind CurveKind, pts []Point2) []Point2 {
	if len(pts) == 0 {
		return nil
	}
	switch kind {
	case CurveLine, CurvePolyLine:
		return append([]Point2(nil), pts...)
	case CurveQuadratic, CurvePolyQuadratic:
		out := []Point2{pts[0]}
		for i := 1; i+1 < len(pts); i += 2 {
			FlattenQuadratic(pts[i-1], pts[i], pts[i+1], &out)
		}
		return out
	case CurveCubic, CurvePolyCubic:
		out := []Point2{pts[0]}
		for i := 1; i+2 < len(pts); i += 3 {
			FlattenCubic(pts[i-1], pts[i], pts[i+1], pts[i+2], &out)
		}
		return out
	case CurveArc:
		if len(pts) < 4 {
			return nil
		}
		return ArcFromPoints(pts[0], pts[1], pts[2], pts[3]).Flatten()
	}
	return nil
}

// FlattenCubic appends the points approximating the cubic p0..p3 to out,
// excluding p0. It subdivides with De Casteljau until control points are
// within Flatness of the chord.
func FlattenCubic(p0, p1, p2, p3 Point2, out *[]Point2) {
	flattenCubic(p0, p1, p2, p3, 0, out)
}

func flattenCubic(p0, p1, p2, p3 Point2, depth int, out *[]Point2) {
	d1 := DistanceToSegment(p1, p0, p3)
	d2 := DistanceToSegment(p2, p0, p3)
	if depth >= maxDepth || (d1 <= Flatness && d2 <= Flatness) {
		*out = append(*out, p3)
		return
	}
	m01 := Lerp(p0, p1, 0.5)
	m12 := Lerp(p1, p2, 0.5)
	m23 := Lerp(p2, p3, 0.5)
	m012 := Lerp(m01, m12, 0.5)
	m123 := Lerp(m12, m23, 0.5)
	m0123 := Lerp(m012, m123, 0.5)
	flattenCubic(p0, m01, m012, m0123, depth+1, out)
	flattenCubic(m0123, m123, m23, p3, depth+1, out)
}

// FlattenQuadratic appends the points approximating the quadratic p0,p1,p2 to
// out, excluding p0. The quadratic is degree-elevated to a cubic.
func FlattenQuadratic(p0, p1, p2 Point2, out *[]Point2) {
	c1 := p0.Add(p1.Sub(p0).Mul(2.0 / 3.0))
	c2 := p2.Add(p1.Sub(p2).Mul(2.0 / 3.0))
	flattenCubic(p0, c1, c2, p2, 0, out)
}

// Arc is an elliptical arc in center parameterization.
type Arc struct {
	Center   Point2
	RX, RY   float64
	Rotation float64 // x-axis rotation in radians
	Start    float64 // start angle in radians
	Sweep    float64 // signed sweep in radians
}

// ArcFromPoints derives an arc from the four defining points of an arc shape.
// p1 and p2 span the ellipse bounds; the start and end angles are the
// directions from the center towards p3 and p4. The sweep runs from start to
// end in positive angle direction.
func ArcFromPoints(p1, p2, p3, p4 Point2) Arc {
	r := FromPoints(p1.X, p1.Y, p2.X, p2.Y)
	c := r.Center()
	start := math.Atan2(p3.Y-c.Y, p3.X-c.X)
	end := math.Atan2(p4.Y-c.Y, p4.X-c.X)
	sweep := end - start
	if sweep <= 0 {
		sweep += 2 * math.Pi
	}
	return Arc{Center: c, RX: r.W / 2, RY: r.H / 2, Start: start, Sweep: sweep}
}

// At returns the arc point at angle a.
func (a Arc) At(angle float64) Point2 {
	x := a.RX * math.Cos(angle)
	y := a.RY * math.Sin(angle)
	if a.Rotation != 0 {
		c, s := math.Cos(a.Rotation), math.Sin(a.Rotation)
		x, y = x*c-y*s, x*s+y*c
	}
	return Point2{X: a.Center.X + x, Y: a.Center.Y + y}
}

// StartPoint and EndPoint are the arc end points.
func (a Arc) StartPoint() Point2 { return a.At(a.Start) }
func (a Arc) EndPoint() Point2   { return a.At(a.Start + a.Sweep) }

// Flatten returns a polyline through the arc, start and end included.
func (a Arc) Flatten() []Point2 {
	n := int(math.Ceil(math.Abs(a.Sweep) / math.Pi * arcStepsPerPi))
	if n < 2 {
		n = 2
	}
	out := make([]Point2, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, a.At(a.Start+a.Sweep*float64(i)/float64(n)))
	}
	return out
}

// FlattenEllipse returns a closed polygon approximating the ellipse inscribed in r.
// The first point is not repeated at the end.
func FlattenEllipse(r Rect2) []Point2 {
	a := Arc{Center: r.Center(), RX: r.W / 2, RY: r.H / 2, Sweep: 2 * math.Pi}
	pts := a.Flatten()
	return pts[:len(pts)-1]
}

// EndpointArc converts an SVG style endpoint arc from p0 to p1 into center
// parameterization. Radii that are zero degrade the arc to a straight line,
// reported by ok=false. Radii too small to reach p1 are scaled up.
func EndpointArc(p0, p1 Point2, rx, ry, rotationDeg float64, largeArc, clockwise bool) (arc Arc, ok bool) {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx < Epsilon || ry < Epsilon || p0.Equals(p1) {
		return Arc{}, false
	}
	phi := rotationDeg * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
	dx2 := (p0.X - p1.X) / 2
	dy2 := (p0.Y - p1.Y) / 2
	x1 := cosPhi*dx2 + sinPhi*dy2
	y1 := -sinPhi*dx2 + cosPhi*dy2

	lambda := (x1*x1)/(rx*rx) + (y1*y1)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}
	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if den > 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == clockwise {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx
	cx := cosPhi*cx1 - sinPhi*cy1 + (p0.X+p1.X)/2
	cy := sinPhi*cx1 + cosPhi*cy1 + (p0.Y+p1.Y)/2

	start := vectorAngle(1, 0, (x1-cx1)/rx, (y1-cy1)/ry)
	sweep := vectorAngle((x1-cx1)/rx, (y1-cy1)/ry, (-x1-cx1)/rx, (-y1-cy1)/ry)
	if !clockwise && sweep > 0 {
		sweep -= 2 * math.Pi
	} else if clockwise && sweep < 0 {
		sweep += 2 * math.Pi
	}
	return Arc{Center: Point2{cx, cy}, RX: rx, RY: ry, Rotation: phi, Start: start, Sweep: sweep}, true
}

func vectorAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}

// FlattenEndpointArc appends the flattened endpoint arc from p0 to p1 to out,
// excluding p0. Degenerate arcs append p1.
func FlattenEndpointArc(p0, p1 Point2, rx, ry, rotationDeg float64, largeArc, clockwise bool, out *[]Point2) {
	arc, ok := EndpointArc(p0, p1, rx, ry, rotationDeg, largeArc, clockwise)
	if !ok {
		*out = append(*out, p1)
		return
	}
	pts := arc.Flatten()
	*out = append(*out, pts[1:len(pts)-1]...)
	*out = append(*out, p1)
}
