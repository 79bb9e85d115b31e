/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import (
	"core2d/internal/geom"
	"core2d/internal/ids"
	"core2d/internal/seq"
)

// Point is both a standalone shape and the building block of every other
// shape. Owner is a weak reference (the id of the shape that created it);
// other shapes may hold the same *Point as a shared connector.
type Point struct {
	base
	x, y      float64
	alignment Alignment
	owner     string
}

// NewPoint creates a point owned by nobody.
func NewPoint(x, y float64) *Point {
	return &Point{base: newBase(ids.PrefixPoint, "", nil, false, false), x: x, y: y}
}

func (p *Point) Kind() Kind { return KindPoint }

func (p *Point) X() float64           { return p.x }
func (p *Point) Y() float64           { return p.y }
func (p *Point) Pos() geom.Point2     { return geom.Point2{X: p.x, Y: p.y} }
func (p *Point) Alignment() Alignment { return p.alignment }
func (p *Point) Owner() string        { return p.owner }

func (p *Point) SetX(v float64) bool { return set(&p.x, v, &p.dirty) }
func (p *Point) SetY(v float64) bool { return set(&p.y, v, &p.dirty) }

// SetXY assigns both coordinates and reports whether either changed.
func (p *Point) SetXY(x, y float64) bool {
	a := p.SetX(x)
	b := p.SetY(y)
	return a || b
}

func (p *Point) SetAlignment(a Alignment) bool { return set(&p.alignment, a, &p.dirty) }
func (p *Point) SetOwner(id string) bool       { return set(&p.owner, id, &p.dirty) }

func (p *Point) Move(dx, dy float64) { p.SetXY(p.x+dx, p.y+dy) }

func (p *Point) GetPoints(out []*Point) []*Point { return append(out, p) }

func (p *Point) Bind(Binder, seq.Seq[*Property], *Record) {}

func (p *Point) Copy(shared Shared) Shape { return p.CopyPoint(shared) }

// CopyPoint clones p once per shared map, so two shapes holding the same
// point get the same clone.
func (p *Point) CopyPoint(shared Shared) *Point {
	if p == nil {
		return nil
	}
	if c, ok := shared.lookup(p); ok {
		return c.(*Point)
	}
	c := &Point{base: p.copyBase(ids.PrefixPoint, shared), x: p.x, y: p.y, alignment: p.alignment, owner: p.owner}
	if owner, ok := shared.owner(p.owner); ok {
		c.owner = owner
	}
	shared.store(p, c)
	return c
}

// DistanceTo returns the euclidean distance between two points.
func (p *Point) DistanceTo(o *Point) float64 { return geom.Distance(p.Pos(), o.Pos()) }
