/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "math"

// PolygonContains reports whether target lies inside the closed polygon using
// the even-odd rule. Polygons with fewer than three points contain nothing.
func PolygonContains(points []Point2, target Point2) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := points[i], points[j]
		if (a.Y > target.Y) != (b.Y > target.Y) {
			x := (b.X-a.X)*(target.Y-a.Y)/(b.Y-a.Y) + a.X
			if target.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Collapsed reports whether the polyline has zero total length, that is when
// it is empty or every point coincides with the first.
func Collapsed(points []Point2) bool {
	for _, p := range points {
		if Distance(p, points[0]) > Epsilon {
			return false
		}
	}
	return true
}

// PointNearPolyline reports whether target is within threshold/scale of the
// open polyline. A polyline of zero length is never hit.
func PointNearPolyline(points []Point2, target Point2, threshold, scale float64) bool {
	if Collapsed(points) {
		return false
	}
	tol := Tolerance(threshold, scale)
	for i := 1; i < len(points); i++ {
		if DistanceToSegment(target, points[i-1], points[i]) <= tol {
			return true
		}
	}
	return false
}

// PointInPolygon reports whether target is inside the closed polygon or within
// threshold/scale of its boundary. A polygon of zero area contains nothing.
func PointInPolygon(points []Point2, target Point2, threshold, scale float64) bool {
	if ZeroArea(points) {
		return false
	}
	if PolygonContains(points, target) {
		return true
	}
	closed := append(append([]Point2(nil), points...), points[0])
	return PointNearPolyline(closed, target, threshold, scale)
}

// ZeroArea reports whether the closed polygon encloses no area.
func ZeroArea(points []Point2) bool {
	return len(points) < 3 || math.Abs(SignedArea(points)) <= Epsilon
}

// RectOverlapsPolyline reports whether the open polyline touches rect grown by threshold/scale.
// A polyline of zero length overlaps nothing.
func RectOverlapsPolyline(points []Point2, rect Rect2, threshold, scale float64) bool {
	if Collapsed(points) {
		return false
	}
	tol := Tolerance(threshold, scale)
	r := rect.Normalize().Inset(-tol, -tol)
	for i := 1; i < len(points); i++ {
		if SegmentIntersectsRect(points[i-1], points[i], r) {
			return true
		}
	}
	return false
}

// RectOverlapsPolygon reports whether the closed polygon and rect grown by
// threshold/scale share any point. A polygon of zero area overlaps nothing.
func RectOverlapsPolygon(points []Point2, rect Rect2, threshold, scale float64) bool {
	if ZeroArea(points) {
		return false
	}
	closed := append(append([]Point2(nil), points...), points[0])
	if RectOverlapsPolyline(closed, rect, threshold, scale) {
		return true
	}
	// rect fully inside the polygon
	return PolygonContains(points, rect.Normalize().Center())
}

// SignedArea returns the shoelace area. It is positive for counter clockwise
// polygons in a y-up frame.
func SignedArea(points []Point2) float64 {
	var a float64
	n := len(points)
	for i := 0; i < n; i++ {
		p, q := points[i], points[(i+1)%n]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}
