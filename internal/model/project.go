/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import (
	"log/slog"

	"core2d/internal/geom"
	"core2d/internal/history"
	"core2d/internal/ids"
	applog "core2d/internal/log"
	"core2d/internal/seq"
)

// Project is the root of the scene graph. The current pointers are changed
// only through the SetCurrent* methods. Structural mutations go through the
// methods below, which record one history snapshot each.
type Project struct {
	ID      string
	Name    string
	Options *Options

	StyleLibraries seq.Seq[*Library[*ShapeStyle]]
	GroupLibraries seq.Seq[*Library[*Group]]
	Databases      seq.Seq[*Database]
	Templates      seq.Seq[*Container]
	Documents      seq.Seq[*Document]

	CurrentDocument     *Document
	CurrentContainer    *Container
	CurrentTemplate     *Container
	CurrentStyleLibrary *Library[*ShapeStyle]
	CurrentGroupLibrary *Library[*Group]
	CurrentDatabase     *Database

	History *history.History

	images    *ImageCache
	selected  []Shape
	listeners []func()
	log       *slog.Logger
}

// NewEmptyProject creates a project without documents or libraries.
func NewEmptyProject(name string) *Project {
	return &Project{
		ID:      ids.New(ids.PrefixProject),
		Name:    name,
		Options: DefaultOptions(),
		History: history.New(history.Config{}),
		images:  NewImageCache(),
	}
}

// Images returns the project image cache. It is nil after Unload.
func (p *Project) Images() *ImageCache { return p.images }

// SetImages attaches an image cache, for example one restored from storage.
func (p *Project) SetImages(c *ImageCache) { p.images = c }

// OnInvalidate registers f to run after the current pointers or the
// selection changed.
func (p *Project) OnInvalidate(f func()) {
	if f != nil {
		p.listeners = append(p.listeners, f)
	}
}

func (p *Project) invalidate() {
	p.CurrentContainer.Invalidate()
	for _, f := range p.listeners {
		f()
	}
}

// Unload detaches history and image cache and drops the selection.
func (p *Project) Unload() {
	if p.History != nil {
		p.History.Reset()
	}
	p.History = nil
	if p.images != nil {
		p.images.PurgeUnusedImages(nil)
	}
	p.images = nil
	p.selected = nil
	p.listeners = nil
}

// record snapshots previous/next and applies next.
func record[T any](p *Project, name string, previous, next T, apply func(T)) {
	history.SnapshotNamed(p.History, name, previous, next, apply)
	apply(next)
	p.logger().Debug("mutation", slog.String("op", name))
}

func (p *Project) logger() *slog.Logger {
	if p.log == nil {
		p.log = applog.WithComponent("model")
	}
	return p.log
}

// Selection

func (p *Project) Selected() []Shape { return append([]Shape(nil), p.selected...) }

func (p *Project) IsSelected(s Shape) bool {
	for _, x := range p.selected {
		if x == s {
			return true
		}
	}
	return false
}

// SetSelected replaces the selection. Duplicates and nils are dropped.
func (p *Project) SetSelected(shapes []Shape) {
	seen := map[Shape]struct{}{}
	var out []Shape
	for _, s := range shapes {
		if s == nil {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	p.selected = out
	p.invalidate()
}

// Current pointers

// SetCurrentDocument selects d and, when the current container is not one of
// its pages, its first page.
func (p *Project) SetCurrentDocument(d *Document) bool {
	if d == nil || !seq.Contains(p.Documents, d) {
		return false
	}
	p.CurrentDocument = d
	if !seq.Contains(d.Pages, p.CurrentContainer) && d.Pages.Len() > 0 {
		p.CurrentContainer = d.Pages.At(0)
	}
	p.invalidate()
	return true
}

// SetCurrentContainer selects a page (and its document) or a template.
func (p *Project) SetCurrentContainer(c *Container) bool {
	if c == nil {
		return false
	}
	switch c.Kind {
	case PageContainer:
		d := p.DocumentOf(c)
		if d == nil {
			return false
		}
		p.CurrentDocument = d
	case TemplateContainer:
		if !seq.Contains(p.Templates, c) {
			return false
		}
	}
	p.CurrentContainer = c
	p.invalidate()
	return true
}

func (p *Project) SetCurrentTemplate(t *Container) bool {
	if t == nil || !seq.Contains(p.Templates, t) {
		return false
	}
	p.CurrentTemplate = t
	return true
}

func (p *Project) SetCurrentStyleLibrary(l *Library[*ShapeStyle]) bool {
	if l == nil || !seq.Contains(p.StyleLibraries, l) {
		return false
	}
	p.CurrentStyleLibrary = l
	return true
}

func (p *Project) SetCurrentGroupLibrary(l *Library[*Group]) bool {
	if l == nil || !seq.Contains(p.GroupLibraries, l) {
		return false
	}
	p.CurrentGroupLibrary = l
	return true
}

func (p *Project) SetCurrentDatabase(db *Database) bool {
	if db == nil || !seq.Contains(p.Databases, db) {
		return false
	}
	p.CurrentDatabase = db
	return true
}

// CurrentLayer returns the current layer of the current container.
func (p *Project) CurrentLayer() *Layer {
	if p.CurrentContainer == nil {
		return nil
	}
	return p.CurrentContainer.CurrentLayer
}

// CurrentStyle returns the selected style of the current style library.
func (p *Project) CurrentStyle() *ShapeStyle {
	if p.CurrentStyleLibrary == nil {
		return nil
	}
	return p.CurrentStyleLibrary.Selected
}

// Shapes

// AddShape appends s to layer. A shape already present is rejected.
func (p *Project) AddShape(layer *Layer, s Shape) bool {
	if layer == nil || s == nil || seq.Contains(layer.Shapes(), s) {
		return false
	}
	record(p, "add shape", layer.Shapes(), layer.Shapes().Append(s), layer.SetShapes)
	return true
}

// AddShapes appends shapes in one snapshot, skipping those already present.
func (p *Project) AddShapes(layer *Layer, shapes []Shape) bool {
	if layer == nil {
		return false
	}
	next := appendNew(layer.Shapes(), shapes)
	if seq.Same(next, layer.Shapes()) {
		return false
	}
	record(p, "add shapes", layer.Shapes(), next, layer.SetShapes)
	return true
}

func appendNew(cur seq.Seq[Shape], shapes []Shape) seq.Seq[Shape] {
	for _, s := range shapes {
		if s != nil && !seq.Contains(cur, s) {
			cur = cur.Append(s)
		}
	}
	return cur
}

// pasteState is everything a paste touches.
type pasteState struct {
	shapes    seq.Seq[Shape]
	databases seq.Seq[*Database]
	current   *Database
	records   seq.Seq[*Record]
}

// PasteShapes appends shapes to layer and records to db in one snapshot. A
// db that is not part of the project yet is added and made current. db may
// be nil when records is empty.
func (p *Project) PasteShapes(layer *Layer, shapes []Shape, db *Database, records []*Record) bool {
	if layer == nil || (db == nil && len(records) > 0) {
		return false
	}
	prev := pasteState{shapes: layer.Shapes(), databases: p.Databases, current: p.CurrentDatabase}
	if db != nil {
		prev.records = db.Records
	}
	next := prev
	next.shapes = appendNew(prev.shapes, shapes)
	if len(records) > 0 {
		if !seq.Contains(p.Databases, db) {
			next.databases = p.Databases.Append(db)
			next.current = db
		}
		for _, r := range records {
			if r != nil && !seq.Contains(next.records, r) {
				r.Owner = db
				next.records = next.records.Append(r)
			}
		}
	}
	if seq.Same(next.shapes, prev.shapes) && seq.Same(next.records, prev.records) {
		return false
	}
	record(p, "paste", prev, next, func(v pasteState) {
		layer.SetShapes(v.shapes)
		p.Databases, p.CurrentDatabase = v.databases, v.current
		if db != nil {
			db.Records = v.records
		}
	})
	return true
}

// RemoveShape removes s from the layer of the current container holding it.
func (p *Project) RemoveShape(s Shape) bool {
	if s == nil || p.CurrentContainer == nil {
		return false
	}
	layer := p.CurrentContainer.LayerOf(s)
	if layer == nil {
		return false
	}
	return p.RemoveShapeFrom(layer, s)
}

// RemoveShapeFrom removes s from layer.
func (p *Project) RemoveShapeFrom(layer *Layer, s Shape) bool {
	if layer == nil || s == nil || !seq.Contains(layer.Shapes(), s) {
		return false
	}
	record(p, "remove shape", layer.Shapes(), seq.Remove(layer.Shapes(), s), layer.SetShapes)
	return true
}

// RemoveShapes removes every shape of shapes from layer in one snapshot.
func (p *Project) RemoveShapes(layer *Layer, shapes []Shape) bool {
	if layer == nil || len(shapes) == 0 {
		return false
	}
	drop := make(map[Shape]struct{}, len(shapes))
	for _, s := range shapes {
		drop[s] = struct{}{}
	}
	next := layer.Shapes().RemoveFunc(func(s Shape) bool {
		_, ok := drop[s]
		return ok
	})
	if seq.Same(next, layer.Shapes()) {
		return false
	}
	record(p, "remove shapes", layer.Shapes(), next, layer.SetShapes)
	return true
}

// ReplaceShapes records an arbitrary replacement of layer's shape sequence.
func (p *Project) ReplaceShapes(layer *Layer, name string, next seq.Seq[Shape]) bool {
	if layer == nil || seq.Same(next, layer.Shapes()) {
		return false
	}
	record(p, name, layer.Shapes(), next, layer.SetShapes)
	return true
}

// SwapShape inserts s at insertIndex and removes the element at removeIndex,
// which is how z-order changes are expressed.
func (p *Project) SwapShape(layer *Layer, s Shape, insertIndex, removeIndex int) bool {
	if layer == nil || s == nil {
		return false
	}
	n := layer.Shapes().Len()
	if insertIndex < 0 || insertIndex > n || removeIndex < 0 || removeIndex > n {
		return false
	}
	next := layer.Shapes().Insert(insertIndex, s).RemoveAt(removeIndex)
	record(p, "swap shape", layer.Shapes(), next, layer.SetShapes)
	return true
}

// SwapLineStart makes pt the start point of line.
func (p *Project) SwapLineStart(line *Line, pt *Point) bool {
	if line == nil || line.Start == nil || pt == nil {
		return false
	}
	record(p, "swap line start", line.Start, pt, func(v *Point) { line.Start = v; line.Invalidate() })
	return true
}

// SwapLineEnd makes pt the end point of line.
func (p *Project) SwapLineEnd(line *Line, pt *Point) bool {
	if line == nil || line.End == nil || pt == nil {
		return false
	}
	record(p, "swap line end", line.End, pt, func(v *Point) { line.End = v; line.Invalidate() })
	return true
}

// lineSplit is the state of a line split: the layer shapes, the end
// points of the cut line and the position of the cut point.
type lineSplit struct {
	shapes     seq.Seq[Shape]
	start, end *Point
	at         geom.Point2
}

// SplitLine cuts line at cut in one snapshot. cut moves to at and replaces
// the start of line when atStart is set, its end otherwise. part, the other
// half, is appended to layer.
func (p *Project) SplitLine(layer *Layer, line, part *Line, cut *Point, atStart bool, at geom.Point2) bool {
	if layer == nil || line == nil || part == nil || cut == nil || seq.Contains[Shape](layer.Shapes(), part) {
		return false
	}
	prev := lineSplit{shapes: layer.Shapes(), start: line.Start, end: line.End, at: cut.Pos()}
	next := prev
	next.shapes = prev.shapes.Append(part)
	next.at = at
	if atStart {
		next.start = cut
	} else {
		next.end = cut
	}
	record(p, "split line", prev, next, func(v lineSplit) {
		layer.SetShapes(v.shapes)
		line.Start, line.End = v.start, v.end
		cut.SetXY(v.at.X, v.at.Y)
		line.Invalidate()
	})
	return true
}

// Layers

func (p *Project) AddLayer(c *Container, l *Layer) bool {
	if c == nil || l == nil || seq.Contains(c.Layers, l) {
		return false
	}
	l.Owner = c
	record(p, "add layer", c.Layers, c.Layers.Append(l), setLayers(c))
	if c.CurrentLayer == nil {
		c.CurrentLayer = l
	}
	return true
}

func (p *Project) RemoveLayer(l *Layer) bool {
	if l == nil || l.Owner == nil || !seq.Contains(l.Owner.Layers, l) {
		return false
	}
	c := l.Owner
	record(p, "remove layer", c.Layers, seq.Remove(c.Layers, l), setLayers(c))
	return true
}

func setLayers(c *Container) func(seq.Seq[*Layer]) {
	return func(v seq.Seq[*Layer]) {
		c.Layers = v
		if !seq.Contains(v, c.CurrentLayer) {
			c.CurrentLayer = nil
			if v.Len() > 0 {
				c.CurrentLayer = v.At(0)
			}
		}
		c.Invalidate()
	}
}

// Pages and documents

func (p *Project) AddPage(d *Document, page *Container) bool {
	if d == nil {
		return false
	}
	return p.AddPageAt(d, page, d.Pages.Len())
}

func (p *Project) AddPageAt(d *Document, page *Container, index int) bool {
	if d == nil || page == nil || seq.Contains(d.Pages, page) {
		return false
	}
	record(p, "add page", d.Pages, d.Pages.Insert(index, page), func(v seq.Seq[*Container]) { d.Pages = v })
	return true
}

func (p *Project) RemovePage(page *Container) bool {
	d := p.DocumentOf(page)
	if d == nil {
		return false
	}
	record(p, "remove page", d.Pages, seq.Remove(d.Pages, page), func(v seq.Seq[*Container]) { d.Pages = v })
	if p.CurrentContainer == page {
		p.CurrentContainer = nil
		if d.Pages.Len() > 0 {
			p.CurrentContainer = d.Pages.At(0)
		}
		p.invalidate()
	}
	return true
}

func (p *Project) AddDocument(d *Document) bool {
	return p.AddDocumentAt(d, p.Documents.Len())
}

func (p *Project) AddDocumentAt(d *Document, index int) bool {
	if d == nil || seq.Contains(p.Documents, d) {
		return false
	}
	record(p, "add document", p.Documents, p.Documents.Insert(index, d), func(v seq.Seq[*Document]) { p.Documents = v })
	return true
}

func (p *Project) RemoveDocument(d *Document) bool {
	if d == nil || !seq.Contains(p.Documents, d) {
		return false
	}
	record(p, "remove document", p.Documents, seq.Remove(p.Documents, d), func(v seq.Seq[*Document]) { p.Documents = v })
	if p.CurrentDocument == d {
		p.CurrentDocument, p.CurrentContainer = nil, nil
		if first, ok := firstOf(p.Documents); ok {
			p.SetCurrentDocument(first)
		}
	}
	return true
}

func firstOf[T any](s seq.Seq[T]) (T, bool) {
	if s.Len() == 0 {
		var zero T
		return zero, false
	}
	return s.At(0), true
}

// Templates

func (p *Project) AddTemplate(t *Container) bool {
	if t == nil || seq.Contains(p.Templates, t) {
		return false
	}
	t.Kind = TemplateContainer
	record(p, "add template", p.Templates, p.Templates.Append(t), func(v seq.Seq[*Container]) { p.Templates = v })
	return true
}

func (p *Project) RemoveTemplate(t *Container) bool {
	if t == nil || !seq.Contains(p.Templates, t) {
		return false
	}
	record(p, "remove template", p.Templates, seq.Remove(p.Templates, t), func(v seq.Seq[*Container]) { p.Templates = v })
	if p.CurrentTemplate == t {
		p.CurrentTemplate, _ = firstOf(p.Templates)
	}
	return true
}

// ApplyTemplate sets the template of page.
func (p *Project) ApplyTemplate(page *Container, t *Container) bool {
	if page == nil || t == nil || page.Template == t {
		return false
	}
	record(p, "apply template", page.Template, t, func(v *Container) { page.Template = v; page.Invalidate() })
	return true
}

// Styles and groups

func (p *Project) AddStyleLibrary(l *Library[*ShapeStyle]) bool {
	if l == nil || seq.Contains(p.StyleLibraries, l) {
		return false
	}
	record(p, "add style library", p.StyleLibraries, p.StyleLibraries.Append(l), func(v seq.Seq[*Library[*ShapeStyle]]) { p.StyleLibraries = v })
	return true
}

func (p *Project) AddStyle(l *Library[*ShapeStyle], s *ShapeStyle) bool {
	if l == nil || s == nil {
		return false
	}
	return InsertItem(p, l, s, l.Items.Len())
}

func (p *Project) RemoveStyle(l *Library[*ShapeStyle], s *ShapeStyle) bool {
	return removeItem(p, l, s)
}

func (p *Project) AddGroupLibrary(l *Library[*Group]) bool {
	if l == nil || seq.Contains(p.GroupLibraries, l) {
		return false
	}
	record(p, "add group library", p.GroupLibraries, p.GroupLibraries.Append(l), func(v seq.Seq[*Library[*Group]]) { p.GroupLibraries = v })
	return true
}

func (p *Project) AddGroup(l *Library[*Group], g *Group) bool {
	if l == nil || g == nil {
		return false
	}
	return InsertItem(p, l, g, l.Items.Len())
}

func (p *Project) RemoveGroup(l *Library[*Group], g *Group) bool {
	return removeItem(p, l, g)
}

// ApplyStyle sets the style of every shape in one snapshot.
func (p *Project) ApplyStyle(shapes []Shape, style *ShapeStyle) bool {
	if style == nil || len(shapes) == 0 {
		return false
	}
	type assignment struct {
		shapes []Shape
		styles []*ShapeStyle
	}
	prev := assignment{shapes: shapes}
	next := assignment{shapes: shapes}
	for _, s := range shapes {
		prev.styles = append(prev.styles, s.Style())
		next.styles = append(next.styles, style)
	}
	record(p, "apply style", prev, next, func(a assignment) {
		for i, s := range a.shapes {
			s.SetStyle(a.styles[i])
		}
	})
	return true
}

// Library item moves

// MoveItem relocates the item at from to index to.
func MoveItem[T comparable](p *Project, l *Library[T], from, to int) bool {
	n := l.Items.Len()
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	record(p, "move item", l.Items, seq.Move(l.Items, from, to), func(v seq.Seq[T]) { l.Items = v })
	return true
}

// SwapItem exchanges the items at i and j.
func SwapItem[T comparable](p *Project, l *Library[T], i, j int) bool {
	n := l.Items.Len()
	if i < 0 || i >= n || j < 0 || j >= n || i == j {
		return false
	}
	record(p, "swap item", l.Items, seq.Swap(l.Items, i, j), func(v seq.Seq[T]) { l.Items = v })
	return true
}

// InsertItem inserts v at index.
func InsertItem[T comparable](p *Project, l *Library[T], v T, index int) bool {
	if seq.Contains(l.Items, v) {
		return false
	}
	record(p, "insert item", l.Items, l.Items.Insert(index, v), func(s seq.Seq[T]) { l.Items = s })
	return true
}

func removeItem[T comparable](p *Project, l *Library[T], v T) bool {
	if l == nil || !seq.Contains(l.Items, v) {
		return false
	}
	record(p, "remove item", l.Items, seq.Remove(l.Items, v), func(s seq.Seq[T]) { l.Items = s })
	if l.Selected == v {
		l.Selected, _ = firstOf(l.Items)
	}
	return true
}

// Data

func (p *Project) AddDatabase(db *Database) bool {
	if db == nil || seq.Contains(p.Databases, db) {
		return false
	}
	record(p, "add database", p.Databases, p.Databases.Append(db), func(v seq.Seq[*Database]) { p.Databases = v })
	return true
}

func (p *Project) RemoveDatabase(db *Database) bool {
	if db == nil || !seq.Contains(p.Databases, db) {
		return false
	}
	record(p, "remove database", p.Databases, seq.Remove(p.Databases, db), func(v seq.Seq[*Database]) { p.Databases = v })
	if p.CurrentDatabase == db {
		p.CurrentDatabase, _ = firstOf(p.Databases)
	}
	return true
}

func (p *Project) AddRecord(db *Database, r *Record) bool {
	if db == nil || r == nil || seq.Contains(db.Records, r) {
		return false
	}
	r.Owner = db
	record(p, "add record", db.Records, db.Records.Append(r), func(v seq.Seq[*Record]) { db.Records = v })
	return true
}

func (p *Project) RemoveRecord(r *Record) bool {
	if r == nil || r.Owner == nil || !seq.Contains(r.Owner.Records, r) {
		return false
	}
	db := r.Owner
	record(p, "remove record", db.Records, seq.Remove(db.Records, r), func(v seq.Seq[*Record]) { db.Records = v })
	return true
}

// ApplyRecord binds r to a shape's data.
func (p *Project) ApplyRecord(d *Data, r *Record) bool {
	if d == nil || r == nil || d.Record == r {
		return false
	}
	record(p, "apply record", d.Record, r, func(v *Record) { d.Record = v })
	return true
}

// ApplyContainerRecord binds r to a page or template.
func (p *Project) ApplyContainerRecord(c *Container, r *Record) bool {
	if c == nil || r == nil || c.Record == r {
		return false
	}
	record(p, "apply record", c.Record, r, func(v *Record) { c.Record = v; c.Invalidate() })
	return true
}

// RecordsByID indexes the records of every database. Where two databases
// hold the same id the first database in project order wins.
func (p *Project) RecordsByID() map[string]*Record {
	out := map[string]*Record{}
	for _, db := range p.Databases.All() {
		for _, r := range db.Records.All() {
			if _, ok := out[r.ID]; !ok {
				out[r.ID] = r
			}
		}
	}
	return out
}
