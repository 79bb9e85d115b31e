/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "testing"

var square = []Point2{Pt(0, 0), Pt(100, 0), Pt(100, 100), Pt(0, 100)}

func TestPolygonContainsEvenOdd(t *testing.T) {
	if !PolygonContains(square, Pt(50, 50)) {
		t.Fatalf("center must be inside")
	}
	if PolygonContains(square, Pt(150, 50)) {
		t.Fatalf("outside point reported inside")
	}
	if PolygonContains(square[:2], Pt(50, 0)) {
		t.Fatalf("degenerate polygon contains nothing")
	}
}

func TestPointInPolygonBoundaryTolerance(t *testing.T) {
	if !PointInPolygon(square, Pt(104, 50), 5, 1) {
		t.Fatalf("expected hit within 5 of the right edge")
	}
	if PointInPolygon(square, Pt(110, 50), 5, 1) {
		t.Fatalf("expected miss beyond tolerance")
	}
	// same document-space tolerance at half zoom with half radius
	if PointInPolygon(square, Pt(108, 50), 10, 1) != PointInPolygon(square, Pt(108, 50), 5, 0.5) {
		t.Fatalf("hit test must be zoom invariant")
	}
}

func TestPointNearPolylineDegenerate(t *testing.T) {
	line := []Point2{Pt(10, 10), Pt(10, 10)}
	if PointNearPolyline(line, Pt(10, 10), 3, 1) {
		t.Fatalf("zero length polyline must not hit")
	}
	if PointNearPolyline([]Point2{Pt(10, 10)}, Pt(10, 10), 3, 1) {
		t.Fatalf("single point polyline must not hit")
	}
	if PointNearPolyline(nil, Pt(0, 0), 3, 1) {
		t.Fatalf("empty polyline must not hit")
	}
	if RectOverlapsPolyline(line, R(0, 0, 20, 20), 3, 1) {
		t.Fatalf("zero length polyline must not overlap")
	}
}

func TestCollapsedPolygonHitsNothing(t *testing.T) {
	point := []Point2{Pt(5, 5), Pt(5, 5), Pt(5, 5)}
	if PointInPolygon(point, Pt(5, 5), 5, 1) {
		t.Fatalf("polygon collapsed to a point must not contain it")
	}
	if RectOverlapsPolygon(point, R(0, 0, 10, 10), 5, 1) {
		t.Fatalf("polygon collapsed to a point must not overlap")
	}
	flat := []Point2{Pt(0, 0), Pt(50, 0), Pt(100, 0)}
	if PointInPolygon(flat, Pt(50, 0), 5, 1) {
		t.Fatalf("polygon without area must not contain its edge")
	}
	if !ZeroArea(flat) || ZeroArea(square) {
		t.Fatalf("zero area misreported")
	}
	if !Collapsed(point) || Collapsed(flat) || !Collapsed(nil) {
		t.Fatalf("collapsed misreported")
	}
}

func TestRectOverlapsPolygon(t *testing.T) {
	if !RectOverlapsPolygon(square, R(90, 90, 20, 20), 0, 1) {
		t.Fatalf("expected overlap at the corner")
	}
	if !RectOverlapsPolygon(square, R(40, 40, 5, 5), 0, 1) {
		t.Fatalf("rect inside polygon must overlap")
	}
	if RectOverlapsPolygon(square, R(200, 200, 5, 5), 0, 1) {
		t.Fatalf("unexpected overlap")
	}
	if !RectOverlapsPolyline([]Point2{Pt(0, 50), Pt(100, 50)}, R(40, 52, 5, 5), 3, 1) {
		t.Fatalf("expected tolerance to grow the rect")
	}
}

func TestSignedArea(t *testing.T) {
	if a := SignedArea(square); a != 10000 {
		t.Fatalf("expected area 10000, got %v", a)
	}
}
