/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render walks a container in paint order and hands each visible
// shape to a Renderer. Renderers own their drawing context.
package render

import (
	"core2d/internal/model"
)

// Renderer draws shapes onto its own target.
type Renderer interface {
	// Background fills the page area before any shape is drawn.
	Background(c model.Color, width, height float64)
	// Draw paints one leaf shape. Groups are never passed; their children are.
	Draw(s model.Shape)
}

type options struct {
	printable bool
	helpers   bool
}

// Option adjusts Present.
type Option func(*options)

// PrintableOnly skips shapes without the Printable state, as for export.
func PrintableOnly() Option { return func(o *options) { o.printable = true } }

// WithTransientLayers also draws the Working and Helper layers, as an
// interactive view does.
func WithTransientLayers() Option { return func(o *options) { o.helpers = true } }

// Present draws c: the background, the template layers, then the layers of
// c. Hidden layers and shapes are skipped and groups are descended.
func Present(r Renderer, c *model.Container, opts ...Option) {
	if r == nil || c == nil {
		return
	}
	var o options
	for _, f := range opts {
		f(&o)
	}
	bg := c.Background
	if t := c.Template; t != nil && bg == (model.Color{}) {
		bg = t.Background
	}
	r.Background(bg, c.EffectiveWidth(), c.EffectiveHeight())
	if t := c.Template; t != nil && t != c {
		drawLayers(r, t, o)
	}
	drawLayers(r, c, o)
	if o.helpers {
		drawLayer(r, c.WorkingLayer, o)
		drawLayer(r, c.HelperLayer, o)
	}
}

func drawLayers(r Renderer, c *model.Container, o options) {
	for _, l := range c.Layers.All() {
		if l.IsVisible() {
			drawLayer(r, l, o)
		}
	}
}

func drawLayer(r Renderer, l *model.Layer, o options) {
	if l == nil {
		return
	}
	for _, s := range l.Shapes().All() {
		drawShape(r, s, o)
	}
}

func drawShape(r Renderer, s model.Shape, o options) {
	st := s.State()
	if !st.Has(model.StateVisible) || (o.printable && !st.Has(model.StatePrintable)) {
		return
	}
	if g, ok := s.(*model.Group); ok {
		for _, child := range g.Shapes.All() {
			drawShape(r, child, o)
		}
		return
	}
	r.Draw(s)
}
