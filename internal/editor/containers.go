/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"fmt"

	"core2d/internal/model"
	"core2d/internal/seq"
)

// AddLayer appends a new layer to the current container and makes it current.
func (e *Editor) AddLayer(name string) *model.Layer {
	if !e.loaded() || e.project.CurrentContainer == nil {
		return nil
	}
	c := e.project.CurrentContainer
	if name == "" {
		name = fmt.Sprintf("Layer%d", c.Layers.Len()+1)
	}
	l := model.NewLayer(c, name)
	if !e.project.AddLayer(c, l) {
		return nil
	}
	c.SetCurrentLayer(l)
	return l
}

// RemoveLayer removes the current layer of the current container.
func (e *Editor) RemoveLayer() bool {
	layer := e.CurrentLayer()
	if layer == nil {
		return false
	}
	e.Deselect()
	return e.project.RemoveLayer(layer)
}

// AddPage inserts a page using the current template after the current page
// of the current document and makes it current.
func (e *Editor) AddPage(name string) *model.Container {
	if !e.loaded() || e.project.CurrentDocument == nil {
		return nil
	}
	d := e.project.CurrentDocument
	if name == "" {
		name = fmt.Sprintf("Page%d", d.Pages.Len()+1)
	}
	page := model.NewPage(name, e.project.CurrentTemplate)
	at := d.Pages.Len()
	if i := seq.Index(d.Pages, e.project.CurrentContainer); i >= 0 {
		at = i + 1
	}
	if !e.project.AddPageAt(d, page, at) {
		return nil
	}
	e.project.SetCurrentContainer(page)
	e.bindPage(page)
	return page
}

// AddDocument appends a document with one page and makes it current.
func (e *Editor) AddDocument(name string) *model.Document {
	if !e.loaded() {
		return nil
	}
	if name == "" {
		name = fmt.Sprintf("Document%d", e.project.Documents.Len()+1)
	}
	d := model.NewDocument(name)
	d.Pages = d.Pages.Append(model.NewPage("Page1", e.project.CurrentTemplate))
	if !e.project.AddDocument(d) {
		return nil
	}
	e.project.SetCurrentDocument(d)
	return d
}

// ApplyTemplate sets the template of the current page.
func (e *Editor) ApplyTemplate(t *model.Container) bool {
	if !e.loaded() || e.project.CurrentContainer == nil || e.project.CurrentContainer.Kind != model.PageContainer {
		return false
	}
	return e.project.ApplyTemplate(e.project.CurrentContainer, t)
}

// ApplyStyle gives the selected shapes a copy of style as one edit.
func (e *Editor) ApplyStyle(style *model.ShapeStyle) bool {
	sel := e.Selected()
	if style == nil || len(sel) == 0 {
		return false
	}
	return e.project.ApplyStyle(sel, style)
}

// ApplyRecord binds r to the selected shapes, or to the current page when
// nothing is selected, and rebinds their text.
func (e *Editor) ApplyRecord(r *model.Record) bool {
	if !e.loaded() || r == nil {
		return false
	}
	sel := e.Selected()
	if len(sel) == 0 {
		c := e.project.CurrentContainer
		if !e.project.ApplyContainerRecord(c, r) {
			return false
		}
		e.bindPage(c)
		return true
	}
	ok := false
	for _, s := range sel {
		if e.project.ApplyRecord(s.Data(), r) {
			ok = true
		}
	}
	if ok {
		e.bindPage(e.project.CurrentContainer)
	}
	return ok
}

// bindPage resolves the text of page and its template against the page data.
func (e *Editor) bindPage(page *model.Container) {
	if page == nil {
		return
	}
	if page.Template != nil {
		e.flow.BindContainer(page.Template, page.Properties, page.Record)
	}
	e.flow.BindContainer(page, page.Properties, page.Record)
}
