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
	"sort"

	"core2d/internal/geom"
	"core2d/internal/model"
)

// AlignMode selects the edge or center Align lines shapes up on.
type AlignMode int

const (
	AlignLeft AlignMode = iota
	AlignCentered
	AlignRight
	AlignTop
	AlignCenter
	AlignBottom
)

// Orientation selects the axis of Distribute, Stack and Flip.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

type boxed struct {
	shape model.Shape
	box   geom.Rect2
}

// boxes returns the unlocked shapes with bounds, in the given order.
func (e *Editor) boxes(shapes []model.Shape) []boxed {
	var out []boxed
	for _, s := range unlocked(shapes) {
		if b, ok := e.registry.Bounds(s); ok {
			out = append(out, boxed{shape: s, box: b})
		}
	}
	return out
}

func union(items []boxed) geom.Rect2 {
	r := items[0].box
	for _, it := range items[1:] {
		r = r.Union(it.box)
	}
	return r
}

// translateEach moves every shape by its own delta as one edit. A point shared
// by several shapes moves with the first shape holding it.
func (e *Editor) translateEach(name string, items []boxed, delta func(boxed) geom.Point2) bool {
	shapes := make([]model.Shape, len(items))
	for i, it := range items {
		shapes[i] = it.shape
	}
	return e.recordPoints(name, pointsOf(shapes), func() {
		seen := map[*model.Point]bool{}
		for _, it := range items {
			d := delta(it)
			for _, p := range it.shape.GetPoints(nil) {
				if seen[p] {
					continue
				}
				seen[p] = true
				p.Move(d.X, d.Y)
			}
		}
	})
}

// transform maps every distinct point of the unlocked shapes through m.
func (e *Editor) transform(name string, shapes []model.Shape, m geom.Affine2D) bool {
	pts := pointsOf(unlocked(shapes))
	return e.recordPoints(name, pts, func() {
		for _, p := range pts {
			q := m.Apply(p.Pos())
			p.SetXY(q.X, q.Y)
		}
	})
}

// Align lines the unlocked shapes up on an edge or center of their common
// bounds. At least two shapes are needed.
func (e *Editor) Align(shapes []model.Shape, mode AlignMode) bool {
	if !e.loaded() {
		return false
	}
	items := e.boxes(shapes)
	if len(items) < 2 {
		return false
	}
	all := union(items)
	return e.translateEach("align", items, func(it boxed) geom.Point2 {
		b := it.box
		switch mode {
		case AlignLeft:
			return geom.Pt(all.Left()-b.Left(), 0)
		case AlignCentered:
			return geom.Pt(all.Center().X-b.Center().X, 0)
		case AlignRight:
			return geom.Pt(all.Right()-b.Right(), 0)
		case AlignTop:
			return geom.Pt(0, all.Top()-b.Top())
		case AlignCenter:
			return geom.Pt(0, all.Center().Y-b.Center().Y)
		case AlignBottom:
			return geom.Pt(0, all.Bottom()-b.Bottom())
		}
		return geom.Point2{}
	})
}

func sortAlong(items []boxed, o Orientation) {
	sort.SliceStable(items, func(i, j int) bool {
		if o == Horizontal {
			return items[i].box.X < items[j].box.X
		}
		return items[i].box.Y < items[j].box.Y
	})
}

// Distribute spaces the unlocked shapes so the gaps between neighbours are
// equal, keeping the outermost shapes in place. At least three shapes are
// needed.
func (e *Editor) Distribute(shapes []model.Shape, o Orientation) bool {
	if !e.loaded() {
		return false
	}
	items := e.boxes(shapes)
	if len(items) < 3 {
		return false
	}
	sortAlong(items, o)
	all := union(items)
	var sum float64
	for _, it := range items {
		if o == Horizontal {
			sum += it.box.W
		} else {
			sum += it.box.H
		}
	}
	pos := map[model.Shape]float64{}
	if o == Horizontal {
		gap := (all.W - sum) / float64(len(items)-1)
		x := all.X
		for _, it := range items {
			pos[it.shape] = x
			x += it.box.W + gap
		}
	} else {
		gap := (all.H - sum) / float64(len(items)-1)
		y := all.Y
		for _, it := range items {
			pos[it.shape] = y
			y += it.box.H + gap
		}
	}
	return e.translateEach("distribute", items, func(it boxed) geom.Point2 {
		if o == Horizontal {
			return geom.Pt(pos[it.shape]-it.box.X, 0)
		}
		return geom.Pt(0, pos[it.shape]-it.box.Y)
	})
}

// Stack places the unlocked shapes edge to edge starting at the first one
// along the axis.
func (e *Editor) Stack(shapes []model.Shape, o Orientation) bool {
	if !e.loaded() {
		return false
	}
	items := e.boxes(shapes)
	if len(items) < 2 {
		return false
	}
	sortAlong(items, o)
	pos := map[model.Shape]float64{}
	if o == Horizontal {
		x := items[0].box.X
		for _, it := range items {
			pos[it.shape] = x
			x += it.box.W
		}
	} else {
		y := items[0].box.Y
		for _, it := range items {
			pos[it.shape] = y
			y += it.box.H
		}
	}
	return e.translateEach("stack", items, func(it boxed) geom.Point2 {
		if o == Horizontal {
			return geom.Pt(pos[it.shape]-it.box.X, 0)
		}
		return geom.Pt(0, pos[it.shape]-it.box.Y)
	})
}

// Flip mirrors the unlocked shapes about the center of their bounds.
func (e *Editor) Flip(shapes []model.Shape, o Orientation) bool {
	if !e.loaded() {
		return false
	}
	items := e.boxes(shapes)
	if len(items) == 0 {
		return false
	}
	c := union(items).Center()
	m := geom.ScaleAt(-1, 1, c)
	if o == Vertical {
		m = geom.ScaleAt(1, -1, c)
	}
	return e.transform("flip", shapes, m)
}

// Rotate turns the unlocked shapes by degrees around the center of their bounds.
func (e *Editor) Rotate(shapes []model.Shape, degrees float64) bool {
	if !e.loaded() || degrees == 0 || math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return false
	}
	items := e.boxes(shapes)
	if len(items) == 0 {
		return false
	}
	c := union(items).Center()
	return e.transform("rotate", shapes, geom.RotateAt(degrees*math.Pi/180, c))
}
