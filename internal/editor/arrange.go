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

	"core2d/internal/model"
	"core2d/internal/seq"
)

// DefaultGroupName names groups created from a selection.
const DefaultGroupName = "g"

// Group wraps the selected shapes of the current layer into a new group
// placed at the topmost selected index, and selects it.
func (e *Editor) Group(shapes []model.Shape, name string) *model.Group {
	layer := e.CurrentLayer()
	if layer == nil || len(shapes) == 0 {
		return nil
	}
	g := model.NewGroup(name)
	next := g.Group(shapes, layer.Shapes())
	if !e.project.ReplaceShapes(layer, "group", next) {
		return nil
	}
	e.log.Debug("grouped", slog.Int("shapes", g.Shapes.Len()))
	return g
}

// GroupSelected groups the selection and selects the new group.
func (e *Editor) GroupSelected() *model.Group {
	g := e.Group(e.Selected(), DefaultGroupName)
	if g != nil {
		e.Select(g)
	}
	return g
}

// Ungroup splices every group among shapes back into the current layer as
// one edit.
func (e *Editor) Ungroup(shapes []model.Shape) bool {
	layer := e.CurrentLayer()
	if layer == nil {
		return false
	}
	next := layer.Shapes()
	for _, s := range shapes {
		if g, ok := s.(*model.Group); ok {
			next = g.Ungroup(next)
		}
	}
	return e.project.ReplaceShapes(layer, "ungroup", next)
}

// UngroupSelected ungroups the selection and clears it.
func (e *Editor) UngroupSelected() bool {
	ok := e.Ungroup(e.Selected())
	if ok {
		e.Deselect()
	}
	return ok
}

// swap moves source from sourceIndex to targetIndex in the current layer.
func (e *Editor) swap(layer *model.Layer, source model.Shape, sourceIndex, targetIndex int) bool {
	if sourceIndex < targetIndex {
		return e.project.SwapShape(layer, source, targetIndex+1, sourceIndex)
	}
	return e.project.SwapShape(layer, source, targetIndex, sourceIndex+1)
}

func (e *Editor) zorder(source model.Shape, target func(index, n int) int) bool {
	layer := e.CurrentLayer()
	if layer == nil || source == nil {
		return false
	}
	items := layer.Shapes()
	i := seq.Index(items, source)
	if i < 0 {
		return false
	}
	j := target(i, items.Len())
	if j < 0 || j >= items.Len() || j == i {
		return false
	}
	return e.swap(layer, source, i, j)
}

// BringToFront, BringForward, SendBackward and SendToBack change the paint
// order of source within the current layer.
func (e *Editor) BringToFront(source model.Shape) bool {
	return e.zorder(source, func(_, n int) int { return n - 1 })
}

func (e *Editor) BringForward(source model.Shape) bool {
	return e.zorder(source, func(i, _ int) int { return i + 1 })
}

func (e *Editor) SendBackward(source model.Shape) bool {
	return e.zorder(source, func(i, _ int) int { return i - 1 })
}

func (e *Editor) SendToBack(source model.Shape) bool {
	return e.zorder(source, func(int, int) int { return 0 })
}

// BringSelectedToFront and the other *Selected variants apply to each
// selected shape in turn.
func (e *Editor) BringSelectedToFront() { e.eachSelected(e.BringToFront) }
func (e *Editor) BringSelectedForward() { e.eachSelected(e.BringForward) }
func (e *Editor) SendSelectedBackward() { e.eachSelected(e.SendBackward) }
func (e *Editor) SendSelectedToBack()   { e.eachSelected(e.SendToBack) }

func (e *Editor) eachSelected(f func(model.Shape) bool) {
	for _, s := range e.Selected() {
		f(s)
	}
}
