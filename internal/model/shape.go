/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package model is the scene graph of the editor: shapes, layers,
// containers, documents and the project that owns them. Every ordered
// collection is a seq.Seq, so replacing one is cheap and the previous value
// stays valid for the history. Scalar fields change in place through
// compare-and-set setters that mark the owner dirty.
package model

import (
	"core2d/internal/geom"
	"core2d/internal/seq"
)

// Binder resolves templated text against a property set and a record.
// The default implementation lives in package data.
type Binder interface {
	BindText(t *Text, props seq.Seq[*Property], r *Record)
}

// Shape is a drawable scene-graph node.
type Shape interface {
	ID() string
	Kind() Kind
	Name() string
	SetName(name string) bool
	State() StateFlags
	SetState(s StateFlags) bool
	Style() *ShapeStyle
	SetStyle(s *ShapeStyle) bool
	Data() *Data
	IsStroked() bool
	SetStroked(v bool) bool
	IsFilled() bool
	SetFilled(v bool) bool

	// Move translates the owned points that are not connectors of another shape.
	Move(dx, dy float64)
	// GetPoints appends every directly held point to out.
	GetPoints(out []*Point) []*Point
	// Bind resolves templated text. Shapes without text ignore it.
	Bind(b Binder, props seq.Seq[*Property], r *Record)
	// Copy deep-clones the shape, resolving aliased points through shared.
	Copy(shared Shared) Shape

	IsDirty() bool
	Invalidate()
}

// base carries the attributes common to all shapes.
type base struct {
	id      string
	name    string
	state   StateFlags
	style   *ShapeStyle
	data    *Data
	stroked bool
	filled  bool
	dirty   bool
}

func newBase(prefix, name string, style *ShapeStyle, stroked, filled bool) base {
	return base{
		id:      newID(prefix),
		name:    name,
		state:   StateDefault,
		style:   style,
		data:    &Data{},
		stroked: stroked,
		filled:  filled,
	}
}

func (b *base) ID() string            { return b.id }
func (b *base) Name() string          { return b.name }
func (b *base) State() StateFlags     { return b.state }
func (b *base) Style() *ShapeStyle    { return b.style }
func (b *base) Data() *Data           { return b.data }
func (b *base) IsStroked() bool       { return b.stroked }
func (b *base) IsFilled() bool        { return b.filled }
func (b *base) IsDirty() bool         { return b.dirty }
func (b *base) Invalidate()           { b.dirty = true }
func (b *base) SetName(v string) bool { return set(&b.name, v, &b.dirty) }
func (b *base) SetState(v StateFlags) bool {
	return set(&b.state, v, &b.dirty)
}
func (b *base) SetStyle(v *ShapeStyle) bool { return set(&b.style, v, &b.dirty) }
func (b *base) SetStroked(v bool) bool      { return set(&b.stroked, v, &b.dirty) }
func (b *base) SetFilled(v bool) bool       { return set(&b.filled, v, &b.dirty) }

// ClearDirty resets the dirty mark after a renderer pass.
func (b *base) ClearDirty() { b.dirty = false }

// copyBase clones the common attributes under a new identity. The record is
// kept by reference.
func (b *base) copyBase(prefix string, shared Shared) base {
	c := *b
	c.id = newID(prefix)
	c.style = b.style.Copy(shared)
	c.data = b.data.Copy()
	c.dirty = true
	return c
}

// set is the compare-and-set used by all scalar setters.
func set[T comparable](field *T, v T, dirty *bool) bool {
	if *field == v {
		return false
	}
	*field = v
	*dirty = true
	return true
}

// movePoints translates pts on behalf of the shape owner. Connector points
// owned by a different shape are left to that shape.
func movePoints(owner string, dx, dy float64, pts ...*Point) {
	for _, p := range pts {
		if p == nil {
			continue
		}
		if p.state.Has(StateConnector) && p.owner != owner {
			continue
		}
		p.Move(dx, dy)
	}
}

// Positions returns the coordinates of pts in order.
func Positions(pts []*Point) []geom.Point2 {
	out := make([]geom.Point2, len(pts))
	for i, p := range pts {
		out[i] = p.Pos()
	}
	return out
}

// DistinctPoints removes repeated point identities, keeping first occurrence order.
func DistinctPoints(pts []*Point) []*Point {
	seen := make(map[*Point]struct{}, len(pts))
	out := pts[:0:0]
	for _, p := range pts {
		if p == nil {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
