/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"core2d/internal/geom"
	"core2d/internal/model"
)

// Selected returns the selected shapes.
func (e *Editor) Selected() []model.Shape {
	if !e.loaded() {
		return nil
	}
	return e.project.Selected()
}

// Select replaces the selection with shapes. A single point or line selection
// hides the decorator; any other selection shows it.
func (e *Editor) Select(shapes ...model.Shape) {
	if !e.loaded() {
		return
	}
	e.project.SetSelected(shapes)
	sel := e.project.Selected()
	e.decorator = len(sel) > 1
	if len(sel) == 1 {
		switch sel[0].(type) {
		case *model.Point, *model.Line:
		default:
			e.decorator = true
		}
	}
	if c := e.project.CurrentContainer; c != nil {
		c.CurrentShape = nil
		if len(sel) == 1 {
			c.CurrentShape = sel[0]
		}
	}
	e.invalidate()
}

// SelectAll selects every shape of the current layer.
func (e *Editor) SelectAll() {
	if l := e.CurrentLayer(); l != nil {
		e.Select(l.Shapes().Items()...)
	}
}

// Deselect clears the selection.
func (e *Editor) Deselect() {
	if !e.loaded() {
		return
	}
	e.project.SetSelected(nil)
	e.decorator = false
	if c := e.project.CurrentContainer; c != nil {
		c.CurrentShape = nil
	}
	e.invalidate()
}

// TryToSelectShape selects the point or shape under (x, y). Points win over
// shape bodies. When nothing is hit and deselect is set the selection is
// cleared.
func (e *Editor) TryToSelectShape(x, y float64, deselect bool) bool {
	layer := e.CurrentLayer()
	if layer == nil {
		return false
	}
	target := geom.Pt(x, y)
	if p := e.registry.TryGetPoint(layer.Shapes(), target, e.radius(), e.scale()); p != nil {
		e.Select(p)
		return true
	}
	if s := e.registry.TryGetShape(layer.Shapes(), target, e.radius(), e.scale()); s != nil {
		e.Select(s)
		return true
	}
	if deselect {
		e.Deselect()
	}
	return false
}

// TryToSelectShapes selects the shapes overlapping rect. With includeSelected
// the current selection is toggled against the result.
func (e *Editor) TryToSelectShapes(rect geom.Rect2, deselect, includeSelected bool) bool {
	layer := e.CurrentLayer()
	if layer == nil {
		return false
	}
	result := e.registry.TryGetShapes(layer.Shapes(), rect.Normalize(), e.radius(), e.scale())
	if includeSelected && len(result) > 0 {
		result = toggle(result, e.project.Selected())
	}
	if len(result) > 0 {
		e.Select(result...)
		return true
	}
	if deselect {
		e.Deselect()
	}
	return false
}

// toggle returns hits minus the shapes in selected, plus the selected shapes
// that were not hit.
func toggle(hits, selected []model.Shape) []model.Shape {
	hit := make(map[model.Shape]bool, len(hits))
	for _, s := range hits {
		hit[s] = true
	}
	sel := make(map[model.Shape]bool, len(selected))
	for _, s := range selected {
		sel[s] = true
	}
	var out []model.Shape
	for _, s := range hits {
		if !sel[s] {
			out = append(out, s)
		}
	}
	for _, s := range selected {
		if !hit[s] {
			out = append(out, s)
		}
	}
	return out
}

// TryToHoverShape selects the point or shape under (x, y) as hovered. It does
// nothing while more than one shape is selected or a non hovered shape is
// selected.
func (e *Editor) TryToHoverShape(x, y float64) bool {
	layer := e.CurrentLayer()
	if layer == nil {
		return false
	}
	sel := e.project.Selected()
	if len(sel) > 1 || (len(sel) == 1 && sel[0] != e.hovered) {
		return false
	}
	target := geom.Pt(x, y)
	var hit model.Shape
	if p := e.registry.TryGetPoint(layer.Shapes(), target, e.radius(), e.scale()); p != nil {
		hit = p
	} else if s := e.registry.TryGetShape(layer.Shapes(), target, e.radius(), e.scale()); s != nil {
		hit = s
	}
	if hit != nil {
		e.Select(hit)
		e.hovered = hit
		return true
	}
	if e.hovered != nil {
		e.hovered = nil
		e.Deselect()
	}
	return false
}

// TryToGetConnectionPoint returns the existing point under (x, y) when
// connecting is enabled.
func (e *Editor) TryToGetConnectionPoint(x, y float64) *model.Point {
	layer := e.CurrentLayer()
	if layer == nil || !e.options().TryToConnect {
		return nil
	}
	return e.registry.TryGetPoint(layer.Shapes(), geom.Pt(x, y), e.radius(), e.scale())
}

// selectionInLayer returns the selected shapes that belong to the current
// layer, in paint order.
func (e *Editor) selectionInLayer() []model.Shape {
	layer := e.CurrentLayer()
	if layer == nil {
		return nil
	}
	var out []model.Shape
	for _, s := range layer.Shapes().All() {
		if e.project.IsSelected(s) {
			out = append(out, s)
		}
	}
	return out
}

// SelectionContains reports whether (x, y) hits one of the selected shapes.
func (e *Editor) SelectionContains(x, y float64) bool {
	sel := e.Selected()
	if len(sel) == 0 {
		return false
	}
	target := geom.Pt(x, y)
	for _, s := range sel {
		if e.registry.Contains(s, target, e.radius(), e.scale()) {
			return true
		}
	}
	return false
}
