/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"
	"reflect"
	"testing"
)

func TestFlattenCubicEndpointsAndStability(t *testing.T) {
	ctrl := []Point2{Pt(0, 0), Pt(0, 100), Pt(100, 100), Pt(100, 0)}
	a := Flatten(CurveCubic, ctrl)
	b := Flatten(CurveCubic, ctrl)
	if len(a) < 4 {
		t.Fatalf("expected subdivided polyline, got %d points", len(a))
	}
	if a[0] != ctrl[0] || a[len(a)-1] != ctrl[3] {
		t.Fatalf("polyline must start and end at curve endpoints: %+v .. %+v", a[0], a[len(a)-1])
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("flattening must be deterministic")
	}
	// the curve peak sits at y=75 for this symmetric cubic
	var maxY float64
	for _, p := range a {
		maxY = math.Max(maxY, p.Y)
	}
	if math.Abs(maxY-75) > 1 {
		t.Fatalf("expected peak near 75, got %v", maxY)
	}
}

func TestFlattenQuadraticStraight(t *testing.T) {
	pts := Flatten(CurveQuadratic, []Point2{Pt(0, 0), Pt(5, 0), Pt(10, 0)})
	if len(pts) != 2 || pts[1] != Pt(10, 0) {
		t.Fatalf("collinear quadratic should flatten to a single segment, got %+v", pts)
	}
}

func TestFlattenPolyCubicIgnoresIncompleteTail(t *testing.T) {
	pts := Flatten(CurvePolyCubic, []Point2{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0), Pt(4, 0)})
	if pts[len(pts)-1] != Pt(3, 0) {
		t.Fatalf("expected last complete cubic end, got %+v", pts[len(pts)-1])
	}
}

func TestArcFromPointsQuarter(t *testing.T) {
	// bounds 0..100, start ray to the right, end ray downwards (positive y)
	arc := ArcFromPoints(Pt(0, 0), Pt(100, 100), Pt(100, 50), Pt(50, 100))
	if math.Abs(arc.Sweep-math.Pi/2) > 1e-9 {
		t.Fatalf("expected quarter sweep, got %v", arc.Sweep)
	}
	s, e := arc.StartPoint(), arc.EndPoint()
	if math.Abs(s.X-100) > 1e-9 || math.Abs(s.Y-50) > 1e-9 {
		t.Fatalf("unexpected start %+v", s)
	}
	if math.Abs(e.X-50) > 1e-9 || math.Abs(e.Y-100) > 1e-9 {
		t.Fatalf("unexpected end %+v", e)
	}
	pts := Flatten(CurveArc, []Point2{Pt(0, 0), Pt(100, 100), Pt(100, 50), Pt(50, 100)})
	for _, p := range pts {
		if d := Distance(p, Pt(50, 50)); math.Abs(d-50) > 1e-6 {
			t.Fatalf("flattened arc point off the circle: %+v (%v)", p, d)
		}
	}
}

func TestFlattenEllipseClosed(t *testing.T) {
	pts := FlattenEllipse(R(0, 0, 100, 50))
	if len(pts) < 16 {
		t.Fatalf("expected a fine polygon, got %d points", len(pts))
	}
	if pts[0] == pts[len(pts)-1] {
		t.Fatalf("first point must not repeat at the end")
	}
	if !PolygonContains(pts, Pt(50, 25)) {
		t.Fatalf("center must be inside the ellipse polygon")
	}
}

func TestEndpointArcSemicircle(t *testing.T) {
	var out []Point2
	FlattenEndpointArc(Pt(0, 0), Pt(100, 0), 50, 50, 0, false, true, &out)
	if out[len(out)-1] != Pt(100, 0) {
		t.Fatalf("arc must end at its endpoint, got %+v", out[len(out)-1])
	}
	for _, p := range out {
		if d := Distance(p, Pt(50, 0)); math.Abs(d-50) > 1e-6 {
			t.Fatalf("arc point off the circle: %+v", p)
		}
	}
	// zero radius degrades to a line
	out = out[:0]
	FlattenEndpointArc(Pt(0, 0), Pt(10, 0), 0, 5, 0, false, true, &out)
	if len(out) != 1 || out[0] != Pt(10, 0) {
		t.Fatalf("expected straight line fallback, got %+v", out)
	}
}
