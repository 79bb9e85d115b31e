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
	"testing"
)

func totalArea(polys [][]Point2) float64 {
	var a float64
	for _, p := range polys {
		a += math.Abs(SignedArea(p))
	}
	return a
}

func sq(x, y, s float64) []Point2 {
	return []Point2{Pt(x, y), Pt(x+s, y), Pt(x+s, y+s), Pt(x, y+s)}
}

func rings(polys ...[]Point2) [][]Point2 { return polys }

func TestClipOverlappingSquares(t *testing.T) {
	a, b := rings(sq(0, 0, 10)), rings(sq(5, 5, 10))
	cases := []struct {
		op   ClipOp
		area float64
	}{
		{ClipIntersect, 25},
		{ClipUnion, 175},
		{ClipDifference, 75},
		{ClipXor, 150},
	}
	for _, c := range cases {
		got := totalArea(Clip(a, b, c.op))
		if math.Abs(got-c.area) > 1e-3 {
			t.Fatalf("%s: expected area %v, got %v", c.op, c.area, got)
		}
	}
}

func TestClipDisjointAndNested(t *testing.T) {
	a, b := rings(sq(0, 0, 10)), rings(sq(20, 20, 5))
	if out := Clip(a, b, ClipIntersect); len(out) != 0 {
		t.Fatalf("disjoint intersection must be empty, got %d polygons", len(out))
	}
	if out := Clip(a, b, ClipUnion); len(out) != 2 {
		t.Fatalf("disjoint union keeps both, got %d", len(out))
	}
	inner := rings(sq(2, 2, 2))
	if out := Clip(a, inner, ClipUnion); len(out) != 1 || math.Abs(totalArea(out)-100) > 1e-3 {
		t.Fatalf("nested union must return the outer polygon")
	}
	out := Clip(a, inner, ClipDifference)
	if len(out) != 2 {
		t.Fatalf("nested difference must return outer plus hole, got %d", len(out))
	}
	// the hole winds against the outline
	if SignedArea(out[0])*SignedArea(out[1]) >= 0 {
		t.Fatalf("hole must be oriented opposite to its outline")
	}
}

func TestClipSharedEdge(t *testing.T) {
	a, b := rings(sq(0, 0, 10)), rings(sq(10, 0, 10))
	out := Clip(a, b, ClipUnion)
	if len(out) != 1 {
		t.Fatalf("squares sharing an edge must merge, got %d rings", len(out))
	}
	if got := totalArea(out); math.Abs(got-200) > 1e-3 {
		t.Fatalf("expected union area 200, got %v", got)
	}
}

func TestClipSeveralRings(t *testing.T) {
	// subject with two separate parts, both cut by one clip
	subject := rings(sq(0, 0, 10), sq(20, 0, 10))
	clip := rings([]Point2{Pt(5, -5), Pt(25, -5), Pt(25, 15), Pt(5, 15)})
	if got := totalArea(Clip(subject, clip, ClipIntersect)); math.Abs(got-100) > 1e-3 {
		t.Fatalf("expected intersection area 100, got %v", got)
	}
}

func TestClipEmptyInputs(t *testing.T) {
	if out := Clip(nil, rings(sq(0, 0, 1)), ClipUnion); len(out) != 1 {
		t.Fatalf("union with empty subject returns clip")
	}
	if out := Clip(rings(sq(0, 0, 1)), nil, ClipIntersect); len(out) != 0 {
		t.Fatalf("intersection with empty clip is empty")
	}
	flat := rings([]Point2{Pt(0, 0), Pt(1, 0), Pt(1, 0)})
	if out := Clip(flat, nil, ClipUnion); len(out) != 0 {
		t.Fatalf("rings without three points are ignored")
	}
}
