/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package bounds answers geometric queries against shapes: which point or
// shape lies under a cursor and which shapes a rubber band touches.
//
// Each shape kind has a Handler in a Registry. Queries walk shape sequences
// topmost first and dispatch per kind; a shape whose kind has no handler is a
// wiring error and panics.
package bounds

import (
	"fmt"

	"core2d/internal/geom"
	"core2d/internal/model"
	"core2d/internal/seq"
)

// Handler implements the hit tests for one shape kind. The registry is passed
// so composite shapes can dispatch to their children.
type Handler interface {
	TryGetPoint(r *Registry, s model.Shape, target geom.Point2, radius, scale float64) *model.Point
	Contains(r *Registry, s model.Shape, target geom.Point2, radius, scale float64) bool
	Overlaps(r *Registry, s model.Shape, rect geom.Rect2, radius, scale float64) bool
	Bounds(r *Registry, s model.Shape) (geom.Rect2, bool)
}

// Registry maps shape kinds to handlers. It is not safe for concurrent
// registration.
type Registry struct {
	handlers map[model.Kind]Handler
}

// NewRegistry returns a registry with handlers for every built in kind.
func NewRegistry() *Registry {
	r := &Registry{handlers: map[model.Kind]Handler{}}
	r.Register(model.KindPoint, pointHandler{})
	r.Register(model.KindLine, lineHandler{})
	r.Register(model.KindRectangle, boxHandler{})
	r.Register(model.KindEllipse, ellipseHandler{})
	r.Register(model.KindArc, arcHandler{})
	r.Register(model.KindCubicBezier, curveHandler{})
	r.Register(model.KindQuadraticBezier, curveHandler{})
	r.Register(model.KindText, boxHandler{})
	r.Register(model.KindImage, boxHandler{})
	r.Register(model.KindPath, pathHandler{})
	r.Register(model.KindGroup, groupHandler{})
	return r
}

// Register installs h for kind, replacing any previous handler.
func (r *Registry) Register(kind model.Kind, h Handler) {
	r.handlers[kind] = h
}

func (r *Registry) handler(s model.Shape) Handler {
	h, ok := r.handlers[s.Kind()]
	if !ok {
		panic(fmt.Sprintf("bounds: no handler registered for %v", s.Kind()))
	}
	return h
}

func visible(s model.Shape) bool {
	return s != nil && s.State().Has(model.StateVisible)
}

// TryGetPoint returns the first point within radius/scale of target, walking
// shapes topmost first.
func (r *Registry) TryGetPoint(shapes seq.Seq[model.Shape], target geom.Point2, radius, scale float64) *model.Point {
	for _, s := range shapes.Backward() {
		if !visible(s) {
			continue
		}
		if p := r.handler(s).TryGetPoint(r, s, target, radius, scale); p != nil {
			return p
		}
	}
	return nil
}

// TryGetShape returns the topmost shape containing target.
func (r *Registry) TryGetShape(shapes seq.Seq[model.Shape], target geom.Point2, radius, scale float64) model.Shape {
	for _, s := range shapes.Backward() {
		if !visible(s) {
			continue
		}
		if r.handler(s).Contains(r, s, target, radius, scale) {
			return s
		}
	}
	return nil
}

// TryGetShapes returns every shape overlapping rect, in paint order.
func (r *Registry) TryGetShapes(shapes seq.Seq[model.Shape], rect geom.Rect2, radius, scale float64) []model.Shape {
	var out []model.Shape
	for _, s := range shapes.All() {
		if !visible(s) {
			continue
		}
		if r.handler(s).Overlaps(r, s, rect, radius, scale) {
			out = append(out, s)
		}
	}
	return out
}

// TryGetPointOf tests the points of a single shape.
func (r *Registry) TryGetPointOf(s model.Shape, target geom.Point2, radius, scale float64) *model.Point {
	return r.handler(s).TryGetPoint(r, s, target, radius, scale)
}

// Contains reports whether s is hit at target.
func (r *Registry) Contains(s model.Shape, target geom.Point2, radius, scale float64) bool {
	return r.handler(s).Contains(r, s, target, radius, scale)
}

// Overlaps reports whether s touches rect.
func (r *Registry) Overlaps(s model.Shape, rect geom.Rect2, radius, scale float64) bool {
	return r.handler(s).Overlaps(r, s, rect, radius, scale)
}

// Bounds returns the axis aligned bounds of s. Shapes without points report false.
func (r *Registry) Bounds(s model.Shape) (geom.Rect2, bool) {
	return r.handler(s).Bounds(r, s)
}

// GetBounds returns the union of the bounds of shapes.
func (r *Registry) GetBounds(shapes []model.Shape) (geom.Rect2, bool) {
	var out geom.Rect2
	found := false
	for _, s := range shapes {
		b, ok := r.Bounds(s)
		if !ok {
			continue
		}
		if !found {
			out, found = b, true
			continue
		}
		out = out.Union(b)
	}
	return out, found
}
