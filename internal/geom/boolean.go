/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	"cogentcore.org/core/paint/ppath"
	"cogentcore.org/core/paint/ppath/intersect"
)

// ClipOp is an area boolean operation.
type ClipOp int

const (
	ClipUnion ClipOp = iota
	ClipIntersect
	ClipDifference
	ClipXor
)

func (op ClipOp) String() string {
	switch op {
	case ClipUnion:
		return "union"
	case ClipIntersect:
		return "intersect"
	case ClipDifference:
		return "difference"
	case ClipXor:
		return "xor"
	}
	return "unknown"
}

// Clip combines the closed rings of subject and clip with op. Rings are read
// under the nonzero rule and may overlap or self intersect. The result holds
// one ring per contour: fills wind counter clockwise and holes clockwise in a
// y-up frame, so it fills correctly with the nonzero rule. Rings with fewer
// than three distinct points are ignored.
func Clip(subject, clip [][]Point2, op ClipOp) [][]Point2 {
	p, q := toPath(subject), toPath(clip)
	var r ppath.Path
	switch op {
	case ClipUnion:
		r = intersect.Or(p, q)
	case ClipIntersect:
		r = intersect.And(p, q)
	case ClipDifference:
		r = intersect.Not(p, q)
	case ClipXor:
		r = intersect.Xor(p, q)
	default:
		return nil
	}
	return fromPath(r)
}

func toPath(rings [][]Point2) ppath.Path {
	var p ppath.Path
	for _, ring := range rings {
		ring = cleanRing(ring)
		if len(ring) < 3 {
			continue
		}
		p.MoveTo(float32(ring[0].X), float32(ring[0].Y))
		for _, pt := range ring[1:] {
			p.LineTo(float32(pt.X), float32(pt.Y))
		}
		p.Close()
	}
	return p
}

// fromPath reads back every subpath as a ring. The operations flatten their
// input, so only the end point of each segment is kept.
func fromPath(p ppath.Path) [][]Point2 {
	var out [][]Point2
	for _, sub := range p.Split() {
		var ring []Point2
		s := sub.Scanner()
		for s.Scan() {
			if s.Cmd() == ppath.Close {
				continue
			}
			end := s.End()
			ring = append(ring, Pt(float64(end.X), float64(end.Y)))
		}
		if ring = cleanRing(ring); len(ring) >= 3 {
			out = append(out, ring)
		}
	}
	return out
}

// cleanRing drops repeated points and a closing point equal to the first.
func cleanRing(pts []Point2) []Point2 {
	out := make([]Point2, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && Distance(out[len(out)-1], p) < Epsilon {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && Distance(out[0], out[len(out)-1]) < Epsilon {
		out = out[:len(out)-1]
	}
	return out
}
