/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tools

import (
	"core2d/internal/editor"
	"core2d/internal/model"
)

// Point places standalone points. With connecting on, a point dropped on a
// line splits it instead.
type Point struct {
	e *editor.Editor
}

func NewPoint(e *editor.Editor) *Point { return &Point{e: e} }

func (t *Point) Title() string { return "Point" }

func (t *Point) BeginDown(x, y float64) {
	layer := t.e.CurrentLayer()
	if layer == nil {
		return
	}
	sx, sy := t.e.TryToSnap(x, y)
	p := model.NewPoint(sx, sy)
	p.SetState(p.State().With(model.StateStandalone))
	t.e.NameShape(p)
	if t.e.Project().Options.TryToConnect && t.e.TryToSplitLine(x, y, p, true) {
		return
	}
	t.e.Project().AddShape(layer, p)
}

func (t *Point) BeginUp(x, y float64) {}
func (t *Point) EndDown(x, y float64) {}

func (t *Point) Move(x, y float64) {
	if t.e.Project() == nil || !t.e.Project().Options.TryToConnect {
		return
	}
	sx, sy := t.e.TryToSnap(x, y)
	t.e.TryToHoverShape(sx, sy)
}

func (t *Point) Reset() {}
