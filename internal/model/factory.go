/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

// Factory defaults for new containers.
const (
	DefaultTemplateWidth  = 840
	DefaultTemplateHeight = 600
)

// NewTemplate creates a template with one layer named Layer1.
func NewTemplate(name string, width, height float64) *Container {
	t := newContainer(TemplateContainer, name)
	t.Width, t.Height = width, height
	t.Background = White
	t.GridCellWidth, t.GridCellHeight = 30, 30
	l := NewLayer(t, "TemplateLayer1")
	t.Layers = t.Layers.Append(l)
	t.CurrentLayer = l
	return t
}

// NewPage creates a page with three layers, Layer1 current, using template.
func NewPage(name string, template *Container) *Container {
	c := newContainer(PageContainer, name)
	c.Template = template
	for _, n := range []string{"Layer1", "Layer2", "Layer3"} {
		c.Layers = c.Layers.Append(NewLayer(c, n))
	}
	c.CurrentLayer = c.Layers.At(0)
	return c
}

// DefaultStyle is the single style of the default style library.
func DefaultStyle() *ShapeStyle {
	return NewStyle("Solid", Color{A: 255, R: 0, G: 0, B: 0}, Color{A: 255, R: 0, G: 0, B: 0}, 2)
}

// NewProject builds the default project: one style library with a solid
// style, an empty group library, one 840x600 template, one document with one
// page and a database with two columns. The first page is current.
func NewProject(name string) *Project {
	p := NewEmptyProject(name)

	gl := NewLibrary[*Group]("Default")
	p.GroupLibraries = p.GroupLibraries.Append(gl)
	p.CurrentGroupLibrary = gl

	sl := NewLibrary("Default", DefaultStyle())
	p.StyleLibraries = p.StyleLibraries.Append(sl)
	p.CurrentStyleLibrary = sl

	t := NewTemplate("Default", DefaultTemplateWidth, DefaultTemplateHeight)
	p.Templates = p.Templates.Append(t)
	p.CurrentTemplate = t

	d := NewDocument("Document1")
	page := NewPage("Page1", t)
	d.Pages = d.Pages.Append(page)
	p.Documents = p.Documents.Append(d)
	p.CurrentDocument = d
	p.CurrentContainer = page

	db := NewDatabase("Default", "Column0", "Column1")
	p.Databases = p.Databases.Append(db)
	p.CurrentDatabase = db
	return p
}
