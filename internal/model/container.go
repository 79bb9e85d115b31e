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

// Layer is an ordered list of shapes inside a container.
type Layer struct {
	ID        string
	Name      string
	Owner     *Container
	shapes    seq.Seq[Shape]
	visible   bool
	dirty     bool
	listeners []func(*Layer)
}

// NewLayer creates a visible empty layer.
func NewLayer(owner *Container, name string) *Layer {
	return &Layer{ID: ids.New(ids.PrefixLayer), Name: name, Owner: owner, visible: true}
}

func (l *Layer) Shapes() seq.Seq[Shape] { return l.shapes }

// SetShapes replaces the whole shape sequence and raises invalidation.
func (l *Layer) SetShapes(s seq.Seq[Shape]) {
	if seq.Same(l.shapes, s) {
		return
	}
	l.shapes = s
	l.Invalidate()
}

func (l *Layer) IsVisible() bool { return l.visible }

func (l *Layer) SetVisible(v bool) bool {
	if !set(&l.visible, v, &l.dirty) {
		return false
	}
	l.Invalidate()
	return true
}

// OnInvalidate registers f to run whenever the layer is invalidated.
func (l *Layer) OnInvalidate(f func(*Layer)) {
	if f != nil {
		l.listeners = append(l.listeners, f)
	}
}

// Invalidate marks the layer dirty and notifies listeners.
func (l *Layer) Invalidate() {
	l.dirty = true
	for _, f := range l.listeners {
		f(l)
	}
}

func (l *Layer) IsDirty() bool { return l.dirty }
func (l *Layer) ClearDirty()   { l.dirty = false }

// ContainerKind distinguishes pages from templates.
type ContainerKind int

const (
	PageContainer ContainerKind = iota
	TemplateContainer
)

// Container is a page or a template. Working and Helper are transient layers
// for tool previews and selection decorations; they are never persisted and
// never recorded in history.
type Container struct {
	ID             string
	Name           string
	Kind           ContainerKind
	Width          float64
	Height         float64
	Background     Color
	Layers         seq.Seq[*Layer]
	Template       *Container
	CurrentLayer   *Layer
	WorkingLayer   *Layer
	HelperLayer    *Layer
	CurrentShape   Shape
	Properties     seq.Seq[*Property]
	Record         *Record
	IsGridEnabled  bool
	GridCellWidth  float64
	GridCellHeight float64
}

func newContainer(kind ContainerKind, name string) *Container {
	c := &Container{ID: ids.New(ids.PrefixContainer), Name: name, Kind: kind}
	c.WorkingLayer = NewLayer(c, "Working")
	c.HelperLayer = NewLayer(c, "Helper")
	return c
}

// Invalidate marks every layer, the transient ones included, as dirty.
func (c *Container) Invalidate() {
	if c == nil {
		return
	}
	for _, l := range c.Layers.All() {
		l.Invalidate()
	}
	for _, l := range []*Layer{c.WorkingLayer, c.HelperLayer} {
		if l != nil {
			l.Invalidate()
		}
	}
}

// SetCurrentLayer selects a layer of c. Foreign layers are rejected.
func (c *Container) SetCurrentLayer(l *Layer) bool {
	if l == nil || !seq.Contains(c.Layers, l) {
		return false
	}
	c.CurrentLayer = l
	return true
}

// EffectiveWidth and EffectiveHeight fall back to the template size.
func (c *Container) EffectiveWidth() float64 {
	if c.Width == 0 && c.Template != nil {
		return c.Template.Width
	}
	return c.Width
}

func (c *Container) EffectiveHeight() float64 {
	if c.Height == 0 && c.Template != nil {
		return c.Template.Height
	}
	return c.Height
}

// Document is an ordered list of pages.
type Document struct {
	ID    string
	Name  string
	Pages seq.Seq[*Container]
}

func NewDocument(name string) *Document {
	return &Document{ID: ids.New(ids.PrefixDocument), Name: name}
}

// Library is a named, ordered collection with one selected item.
type Library[T comparable] struct {
	ID       string
	Name     string
	Items    seq.Seq[T]
	Selected T
}

func NewLibrary[T comparable](name string, items ...T) *Library[T] {
	l := &Library[T]{ID: ids.New(ids.PrefixLibrary), Name: name, Items: seq.Of(items...)}
	if len(items) > 0 {
		l.Selected = items[0]
	}
	return l
}

// SetSelected selects an item of the library.
func (l *Library[T]) SetSelected(v T) bool {
	if !seq.Contains(l.Items, v) {
		return false
	}
	l.Selected = v
	return true
}
