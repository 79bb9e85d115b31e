/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package geom is the pure geometry kernel of the editor: points, rectangles,
// affine transforms, curve flattening, polygon tests and polygon boolean ops.
// Everything here is deterministic and free of model types.
package geom

import "math"

// Epsilon is the tolerance used for degenerate segment and polygon checks.
const Epsilon = 1e-9

// Point2 is a 2D point in document units.
type Point2 struct{ X, Y float64 }

// Pt is shorthand for Point2{X: x, Y: y}.
func Pt(x, y float64) Point2 { return Point2{X: x, Y: y} }

func (p Point2) Add(q Point2) Point2    { return Point2{p.X + q.X, p.Y + q.Y} }
func (p Point2) Sub(q Point2) Point2    { return Point2{p.X - q.X, p.Y - q.Y} }
func (p Point2) Mul(s float64) Point2   { return Point2{p.X * s, p.Y * s} }
func (p Point2) Dot(q Point2) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point2) Cross(q Point2) float64 { return p.X*q.Y - p.Y*q.X }
func (p Point2) Equals(q Point2) bool   { return p.X == q.X && p.Y == q.Y }

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point2) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }

// Lerp interpolates between a and b at t.
func Lerp(a, b Point2, t float64) Point2 {
	return Point2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Rect2 is an axis-aligned rectangle defined by min corner and size.
type Rect2 struct {
	X, Y float64
	W, H float64
}

// R builds a Rect2 from origin and size.
func R(x, y, w, h float64) Rect2 { return Rect2{X: x, Y: y, W: w, H: h} }

// FromPoints builds a normalized rectangle spanning two corners given in any order.
func FromPoints(x1, y1, x2, y2 float64) Rect2 {
	return Rect2{
		X: math.Min(x1, x2),
		Y: math.Min(y1, y2),
		W: math.Abs(x2 - x1),
		H: math.Abs(y2 - y1),
	}
}

// BoundsOf returns the bounding rectangle of pts. Empty input yields a zero rect.
func BoundsOf(pts []Point2) Rect2 {
	if len(pts) == 0 {
		return Rect2{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect2{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func (r Rect2) Min() Point2     { return Point2{r.X, r.Y} }
func (r Rect2) Max() Point2     { return Point2{r.X + r.W, r.Y + r.H} }
func (r Rect2) Center() Point2  { return Point2{r.X + r.W/2, r.Y + r.H/2} }
func (r Rect2) Left() float64   { return r.X }
func (r Rect2) Top() float64    { return r.Y }
func (r Rect2) Right() float64  { return r.X + r.W }
func (r Rect2) Bottom() float64 { return r.Y + r.H }

// Normalize flips negative sizes so that W and H are non-negative.
func (r Rect2) Normalize() Rect2 {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Contains reports whether p lies inside r, edges included.
func (r Rect2) Contains(p Point2) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// ContainsRect reports whether o lies fully inside r.
func (r Rect2) ContainsRect(o Rect2) bool {
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Intersects reports whether r and o share any point, edges included.
func (r Rect2) Intersects(o Rect2) bool {
	return r.X <= o.X+o.W && o.X <= r.X+r.W && r.Y <= o.Y+o.H && o.Y <= r.Y+r.H
}

// Inset returns a rectangle inset by dx,dy on all sides (negative grows).
func (r Rect2) Inset(dx, dy float64) Rect2 {
	return Rect2{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Union returns the minimal rect containing both.
func (r Rect2) Union(o Rect2) Rect2 {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.X+r.W, o.X+o.W)
	maxY := math.Max(r.Y+r.H, o.Y+o.H)
	return Rect2{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Corners returns the four corners clockwise from the min corner.
func (r Rect2) Corners() []Point2 {
	return []Point2{{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X + r.W, r.Y + r.H}, {r.X, r.Y + r.H}}
}

// Affine2D represents a 2D affine transform as matrix:
// | a c e |
// | b d f |
// | 0 0 1 |
// stored as [a b c d e f].
type Affine2D struct{ A, B, C, D, E, F float64 }

var Identity = Affine2D{A: 1, D: 1}

func (m Affine2D) Mul(n Affine2D) Affine2D {
	return Affine2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Affine2D) Apply(p Point2) Point2 {
	return Point2{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

func Translate(tx, ty float64) Affine2D { return Affine2D{A: 1, D: 1, E: tx, F: ty} }
func Scale(sx, sy float64) Affine2D     { return Affine2D{A: sx, D: sy} }
func Rotate(rad float64) Affine2D {
	c := math.Cos(rad)
	s := math.Sin(rad)
	return Affine2D{A: c, B: s, C: -s, D: c}
}

// RotateAt rotates by rad around center c.
func RotateAt(rad float64, c Point2) Affine2D {
	return Translate(c.X, c.Y).Mul(Rotate(rad)).Mul(Translate(-c.X, -c.Y))
}

// ScaleAt scales by sx,sy around center c. ScaleAt(-1, 1, c) mirrors horizontally.
func ScaleAt(sx, sy float64, c Point2) Affine2D {
	return Translate(c.X, c.Y).Mul(Scale(sx, sy)).Mul(Translate(-c.X, -c.Y))
}

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// Snap rounds v to the nearest multiple of step. A non-positive step returns v.
func Snap(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// Tolerance converts a hit radius into a document-space tolerance for the given scale.
// Non-positive scales are treated as 1.
func Tolerance(radius, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	return radius / scale
}
