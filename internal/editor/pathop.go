/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"log/slog"

	"core2d/internal/bounds"
	"core2d/internal/geom"
	"core2d/internal/model"
	"core2d/internal/seq"
)

// areaOf returns the outlines of s that enclose an area.
func areaOf(s model.Shape) [][]geom.Point2 {
	var out [][]geom.Point2
	for _, ring := range bounds.Outline(s) {
		if !geom.ZeroArea(ring) {
			out = append(out, ring)
		}
	}
	return out
}

// PathOp combines exactly two selected shapes with op into a new path. The
// sources are replaced by the result at the position of the upper one, as
// one edit. The first shape in paint order is the subject.
func (e *Editor) PathOp(op geom.ClipOp) bool {
	layer := e.CurrentLayer()
	sel := unlocked(e.selectionInLayer())
	if layer == nil || len(sel) != 2 {
		return false
	}
	subject, clip := areaOf(sel[0]), areaOf(sel[1])
	if subject == nil || clip == nil {
		return false
	}
	rings := geom.Clip(subject, clip, op)
	if len(rings) == 0 {
		e.log.Debug("path op produced nothing", slog.String("op", op.String()))
		return false
	}
	b := model.NewGeometryBuilder(model.FillNonzero)
	for _, ring := range rings {
		pts := make([]*model.Point, len(ring))
		for i, p := range ring {
			pts[i] = model.NewPoint(p.X, p.Y)
		}
		b.BeginFigure(pts[0], true, true).PolyLineTo(pts[1:]...)
	}
	src := sel[0]
	path := model.NewPath(b.Geometry(), src.Style().Copy(nil), src.IsStroked(), true)

	shapes := layer.Shapes()
	at := max(seq.Index(shapes, sel[0]), seq.Index(shapes, sel[1]))
	next := shapes.Set(at, model.Shape(path))
	next = seq.Remove(next, sel[0])
	next = seq.Remove(next, sel[1])
	e.Deselect()
	if !e.project.ReplaceShapes(layer, "path "+op.String(), next) {
		return false
	}
	e.Select(path)
	return true
}
