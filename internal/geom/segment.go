/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "math"

// NearestPointOnSegment returns the point on segment a-b closest to target.
// A zero-length segment yields a.
func NearestPointOnSegment(target, a, b Point2) Point2 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < Epsilon {
		return a
	}
	t := target.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return Point2{X: a.X + ab.X*t, Y: a.Y + ab.Y*t}
}

// DistanceToSegment returns the distance from target to segment a-b.
func DistanceToSegment(target, a, b Point2) float64 {
	return Distance(target, NearestPointOnSegment(target, a, b))
}

// SegmentIntersection returns the intersection point of segments p1-p2 and p3-p4
// together with the parameters along each. ok is false for parallel or disjoint segments.
func SegmentIntersection(p1, p2, p3, p4 Point2) (pt Point2, t, u float64, ok bool) {
	r := p2.Sub(p1)
	s := p4.Sub(p3)
	den := r.Cross(s)
	if math.Abs(den) < Epsilon {
		return Point2{}, 0, 0, false
	}
	qp := p3.Sub(p1)
	t = qp.Cross(s) / den
	u = qp.Cross(r) / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point2{}, t, u, false
	}
	return p1.Add(r.Mul(t)), t, u, true
}

// SegmentsIntersect reports whether segments p1-p2 and p3-p4 touch, collinear overlaps included.
func SegmentsIntersect(p1, p2, p3, p4 Point2) bool {
	d1 := orient(p3, p4, p1)
	d2 := orient(p3, p4, p2)
	d3 := orient(p1, p2, p3)
	d4 := orient(p1, p2, p4)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(p3, p4, p1)) ||
		(d2 == 0 && onSegment(p3, p4, p2)) ||
		(d3 == 0 && onSegment(p1, p2, p3)) ||
		(d4 == 0 && onSegment(p1, p2, p4))
}

func orient(a, b, c Point2) float64 { return b.Sub(a).Cross(c.Sub(a)) }

func onSegment(a, b, p Point2) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// SegmentIntersectsRect reports whether segment a-b touches rectangle r.
func SegmentIntersectsRect(a, b Point2, r Rect2) bool {
	if r.Contains(a) || r.Contains(b) {
		return true
	}
	c := r.Corners()
	for i := range c {
		if SegmentsIntersect(a, b, c[i], c[(i+1)%len(c)]) {
			return true
		}
	}
	return false
}
