/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import (
	"iter"

	"core2d/internal/seq"
)

// Walk yields every shape of shapes in paint order, descending into groups
// after yielding the group itself.
func Walk(shapes seq.Seq[Shape]) iter.Seq[Shape] {
	return func(yield func(Shape) bool) {
		walk(shapes, yield)
	}
}

func walk(shapes seq.Seq[Shape], yield func(Shape) bool) bool {
	for _, s := range shapes.All() {
		if !yield(s) {
			return false
		}
		if g, ok := s.(*Group); ok {
			if !walk(g.Shapes, yield) {
				return false
			}
		}
	}
	return true
}

// Containers yields every page of every document followed by the templates.
func (p *Project) Containers() iter.Seq[*Container] {
	return func(yield func(*Container) bool) {
		for _, d := range p.Documents.All() {
			for _, c := range d.Pages.All() {
				if !yield(c) {
					return
				}
			}
		}
		for _, t := range p.Templates.All() {
			if !yield(t) {
				return
			}
		}
	}
}

// AllShapes yields every persisted shape of the project, groups descended.
func (p *Project) AllShapes() iter.Seq[Shape] {
	return func(yield func(Shape) bool) {
		for c := range p.Containers() {
			for _, l := range c.Layers.All() {
				if !walk(l.Shapes(), yield) {
					return
				}
			}
		}
		for _, lib := range p.GroupLibraries.All() {
			for _, g := range lib.Items.All() {
				if !yield(g) || !walk(g.Shapes, yield) {
					return
				}
			}
		}
	}
}

// UsedImageKeys returns the keys referenced by Image shapes.
func (p *Project) UsedImageKeys() map[string]struct{} {
	used := map[string]struct{}{}
	for s := range p.AllShapes() {
		if img, ok := s.(*Image); ok && img.Key() != "" {
			used[img.Key()] = struct{}{}
		}
	}
	return used
}

// LayerOf returns the layer of the current container holding s at top level.
func (c *Container) LayerOf(s Shape) *Layer {
	for _, l := range c.Layers.All() {
		if seq.Contains(l.Shapes(), s) {
			return l
		}
	}
	return nil
}

// DocumentOf returns the document holding page.
func (p *Project) DocumentOf(page *Container) *Document {
	for _, d := range p.Documents.All() {
		if seq.Contains(d.Pages, page) {
			return d
		}
	}
	return nil
}
