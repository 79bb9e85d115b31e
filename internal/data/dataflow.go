/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package data resolves text bindings against properties and database
// records. Text shapes keep their template; the resolved string is stored
// separately for renderers.
package data

import (
	"log/slog"
	"strings"

	applog "core2d/internal/log"
	"core2d/internal/model"
	"core2d/internal/seq"
)

// DataFlow walks a project and binds every text shape.
type DataFlow struct {
	log *slog.Logger
	n   int
}

func New() *DataFlow {
	return &DataFlow{log: applog.WithComponent("data")}
}

// Bind resolves the texts of every page of every document.
func (f *DataFlow) Bind(p *model.Project) {
	if p == nil {
		return
	}
	f.n = 0
	for _, d := range p.Documents.All() {
		f.BindDocument(d)
	}
	f.log.Debug("bound project", slog.String("project", p.Name), slog.Int("texts", f.n))
}

// BindDocument binds each page together with its template, using the
// page's properties and record.
func (f *DataFlow) BindDocument(d *model.Document) {
	if d == nil {
		return
	}
	for _, page := range d.Pages.All() {
		if page.Template != nil {
			f.BindContainer(page.Template, page.Properties, page.Record)
		}
		f.BindContainer(page, page.Properties, page.Record)
	}
}

func (f *DataFlow) BindContainer(c *model.Container, props seq.Seq[*model.Property], r *model.Record) {
	if c == nil {
		return
	}
	for _, l := range c.Layers.All() {
		f.BindLayer(l, props, r)
	}
}

func (f *DataFlow) BindLayer(l *model.Layer, props seq.Seq[*model.Property], r *model.Record) {
	if l == nil {
		return
	}
	for _, s := range l.Shapes().All() {
		s.Bind(f, props, r)
	}
}

// BindText stores the resolved text of t. The shape's own properties shadow
// props and its own record replaces r.
func (f *DataFlow) BindText(t *model.Text, props seq.Seq[*model.Property], r *model.Record) {
	if d := t.Data(); d != nil {
		if d.Properties.Len() > 0 {
			props = seq.Concat(d.Properties, props)
		}
		if d.Record != nil {
			r = d.Record
		}
	}
	t.SetBound(Resolve(t.Text(), props, r))
	f.n++
}

// Resolve replaces every {Name} in template with the first property of that
// name, or else the record value of the column with that name. Unknown names
// and unterminated braces are left as written.
func Resolve(template string, props seq.Seq[*model.Property], r *model.Record) string {
	if !strings.Contains(template, "{") {
		return template
	}
	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += open
		b.WriteString(rest[:open])
		name := rest[open+1 : end]
		if v, ok := lookup(name, props, r); ok {
			b.WriteString(v)
		} else {
			b.WriteString(rest[open : end+1])
		}
		rest = rest[end+1:]
	}
	return b.String()
}

func lookup(name string, props seq.Seq[*model.Property], r *model.Record) (string, bool) {
	if v, ok := model.FindProperty(props, name); ok {
		return v, true
	}
	return r.Value(name)
}
