/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"math"

	"core2d/internal/geom"
	"core2d/internal/model"
)

// TryToSplitLine splits the topmost line under (x, y) at point. Unless grid
// snapping is on, point is first projected onto the line. The half nearer
// to the line start becomes a new line; the original keeps the other half.
func (e *Editor) TryToSplitLine(x, y float64, point *model.Point, sel bool) bool {
	layer := e.CurrentLayer()
	if layer == nil || point == nil {
		return false
	}
	line, ok := e.registry.TryGetShape(layer.Shapes(), geom.Pt(x, y), e.radius(), e.scale()).(*model.Line)
	if !ok {
		return false
	}
	at := point.Pos()
	if !e.options().SnapToGrid {
		at = geom.NearestPointOnSegment(geom.Pt(x, y), line.Start.Pos(), line.End.Pos())
	}
	style := line.Style().Copy(nil)
	atStart := geom.Distance(at, line.Start.Pos()) < geom.Distance(at, line.End.Pos())
	var split *model.Line
	if atStart {
		split = model.NewLine(line.Start, point, style, line.IsStroked())
	} else {
		split = model.NewLine(point, line.End, style, line.IsStroked())
	}
	if !e.project.SplitLine(layer, line, split, point, atStart, at) {
		return false
	}
	if sel {
		e.Select(point)
	}
	return true
}

// splitLineAt cuts an axis aligned line between two connectors p0 and p1,
// ordered along the line, leaving a gap where a dropped shape sits.
func (e *Editor) splitLineAt(line *model.Line, p0, p1 *model.Point) bool {
	layer := e.CurrentLayer()
	if layer == nil {
		return false
	}
	if p0.X() != p1.X() && p0.Y() != p1.Y() {
		return false
	}
	s, t := line.Start, line.End
	if s.X() != t.X() && s.Y() != t.Y() {
		return false
	}
	style := line.Style().Copy(nil)
	split, cut := model.NewLine(p1, t, style, line.IsStroked()), p0
	if s.X() > t.X() || s.Y() > t.Y() {
		split, cut = model.NewLine(p0, t, style, line.IsStroked()), p1
	}
	return e.project.SplitLine(layer, line, split, cut, false, cut.Pos())
}

// TryToConnectLines splits every line that exactly two connectors lie on,
// aligned horizontally or vertically, so the connectors join its halves.
func (e *Editor) TryToConnectLines(lines []*model.Line, connectors []*model.Point) bool {
	if !e.loaded() || len(connectors) == 0 {
		return false
	}
	tol := geom.Tolerance(e.radius(), e.scale())
	hits := map[*model.Line][]*model.Point{}
	var order []*model.Line
	for _, c := range connectors {
		for _, l := range lines {
			if !e.registry.Contains(l, c.Pos(), e.radius(), e.scale()) {
				continue
			}
			if _, ok := hits[l]; !ok {
				order = append(order, l)
			}
			hits[l] = append(hits[l], c)
			break
		}
	}
	success := false
	for _, l := range order {
		pts := hits[l]
		if len(pts) != 2 {
			continue
		}
		p0, p1 := pts[0], pts[1]
		horizontal := math.Abs(p0.Y()-p1.Y()) < tol
		vertical := math.Abs(p0.X()-p1.X()) < tol
		switch {
		case horizontal && !vertical:
			if p0.X() > p1.X() {
				p0, p1 = p1, p0
			}
		case vertical && !horizontal:
			if p0.Y() > p1.Y() {
				p0, p1 = p1, p0
			}
		default:
			continue
		}
		if e.splitLineAt(l, p0, p1) {
			success = true
		}
	}
	return success
}

// linesOf returns the lines of the current layer, groups included.
func (e *Editor) linesOf() []*model.Line {
	layer := e.CurrentLayer()
	if layer == nil {
		return nil
	}
	var out []*model.Line
	for s := range model.Walk(layer.Shapes()) {
		if l, ok := s.(*model.Line); ok {
			out = append(out, l)
		}
	}
	return out
}
