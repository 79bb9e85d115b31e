/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import (
	"core2d/internal/ids"
	"core2d/internal/seq"
)

// Group owns an ordered list of child shapes and a list of connector points
// that external shapes may attach to.
type Group struct {
	base
	Shapes     seq.Seq[Shape]
	Connectors seq.Seq[*Point]
}

func NewGroup(name string) *Group {
	return &Group{base: newBase(ids.PrefixGroup, name, nil, false, false)}
}

func (g *Group) Kind() Kind { return KindGroup }

// AddShape appends s as the topmost child.
func (g *Group) AddShape(s Shape) {
	if s == nil || seq.Contains(g.Shapes, s) {
		return
	}
	g.Shapes = g.Shapes.Append(s)
	g.Invalidate()
}

func (g *Group) addConnector(p *Point, extra StateFlags) {
	if p == nil || seq.Contains(g.Connectors, p) {
		return
	}
	p.SetOwner(g.id)
	p.SetState(p.State().With(StateConnector | extra))
	g.Connectors = g.Connectors.Append(p)
	g.Invalidate()
}

// AddConnectorAsNone, AddConnectorAsInput and AddConnectorAsOutput take
// ownership of p and flag it as a connector.
func (g *Group) AddConnectorAsNone(p *Point)   { g.addConnector(p, StateNone) }
func (g *Group) AddConnectorAsInput(p *Point)  { g.addConnector(p, StateInput) }
func (g *Group) AddConnectorAsOutput(p *Point) { g.addConnector(p, StateOutput) }

// Move translates each distinct point of the group once. Connector points
// are moved only when they belong to the group or one of its descendants.
func (g *Group) Move(dx, dy float64) {
	owners := map[string]struct{}{}
	collectIDs(g, owners)
	for _, p := range DistinctPoints(g.GetPoints(nil)) {
		if p.state.Has(StateConnector) {
			if _, ok := owners[p.owner]; !ok {
				continue
			}
		}
		p.Move(dx, dy)
	}
}

func collectIDs(s Shape, out map[string]struct{}) {
	out[s.ID()] = struct{}{}
	if g, ok := s.(*Group); ok {
		for _, c := range g.Shapes.All() {
			collectIDs(c, out)
		}
	}
}

// GetPoints appends the points of every child followed by the connectors.
func (g *Group) GetPoints(out []*Point) []*Point {
	for _, s := range g.Shapes.All() {
		out = s.GetPoints(out)
	}
	for _, p := range g.Connectors.All() {
		out = append(out, p)
	}
	return out
}

func (g *Group) Bind(b Binder, props seq.Seq[*Property], r *Record) {
	for _, s := range g.Shapes.All() {
		s.Bind(b, props, r)
	}
}

func (g *Group) Copy(shared Shared) Shape {
	if c, ok := shared.lookup(g); ok {
		return c.(*Group)
	}
	c := &Group{base: startCopy(&g.base, ids.PrefixGroup, shared)}
	shared.store(g, c)
	if shared == nil {
		// children of one group must keep their aliasing even when the caller
		// did not ask for it
		shared = NewShared()
		shared.mapOwner(g.id, c.id)
	}
	for _, s := range g.Shapes.All() {
		c.Shapes = c.Shapes.Append(s.Copy(shared))
	}
	for _, p := range g.Connectors.All() {
		c.Connectors = c.Connectors.Append(p.CopyPoint(shared))
	}
	return c
}

// Group removes the selected shapes from layerShapes, adds them as children
// in paint order and inserts g where the topmost selected shape was. The new
// layer sequence is returned; layerShapes is left untouched.
func (g *Group) Group(selection []Shape, layerShapes seq.Seq[Shape]) seq.Seq[Shape] {
	selected := make(map[Shape]struct{}, len(selection))
	for _, s := range selection {
		if s != nil {
			selected[s] = struct{}{}
		}
	}
	top, n := -1, 0
	for i, s := range layerShapes.All() {
		if _, ok := selected[s]; ok {
			g.AddShape(s)
			top = i
			n++
		}
	}
	if n == 0 {
		return layerShapes
	}
	rest := layerShapes.RemoveFunc(func(s Shape) bool {
		_, ok := selected[s]
		return ok
	})
	return rest.Insert(top-(n-1), g)
}

// Ungroup replaces g in layerShapes with its children, in order, at g's
// former index. Connectors stay referenced by the shapes attached to them.
func (g *Group) Ungroup(layerShapes seq.Seq[Shape]) seq.Seq[Shape] {
	i := seq.Index(layerShapes, Shape(g))
	if i < 0 {
		return layerShapes
	}
	out := layerShapes.RemoveAt(i)
	for j, s := range g.Shapes.All() {
		out = out.Insert(i+j, s)
	}
	return out
}
