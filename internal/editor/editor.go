/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor implements the editing operations of a project: selection,
// moves, grouping, layout, clipboard and path operations. Every structural
// change goes through the project so it lands in the project history; input
// that cannot be acted on is ignored and reported as false.
//
// An Editor is driven from a single goroutine.
package editor

import (
	"log/slog"

	"core2d/internal/bounds"
	"core2d/internal/data"
	applog "core2d/internal/log"
	"core2d/internal/model"
)

// Editor edits one loaded project.
type Editor struct {
	project  *model.Project
	registry *bounds.Registry
	flow     *data.DataFlow
	page     *PageState
	log      *slog.Logger

	hovered   model.Shape
	clipboard []model.Shape
	decorator bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithRegistry replaces the default hit-test registry.
func WithRegistry(r *bounds.Registry) Option {
	return func(e *Editor) { e.registry = r }
}

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// New creates an editor and loads project, which may be nil.
func New(project *model.Project, opts ...Option) *Editor {
	e := &Editor{
		registry: bounds.NewRegistry(),
		flow:     data.New(),
		page:     NewPageState(),
		log:      applog.WithComponent("editor"),
	}
	for _, o := range opts {
		o(e)
	}
	if project != nil {
		e.Load(project)
	}
	return e
}

func (e *Editor) Project() *model.Project    { return e.project }
func (e *Editor) Registry() *bounds.Registry { return e.registry }
func (e *Editor) PageState() *PageState      { return e.page }
func (e *Editor) DataFlow() *data.DataFlow   { return e.flow }
func (e *Editor) Hovered() model.Shape       { return e.hovered }
func (e *Editor) IsDecoratorVisible() bool   { return e.decorator }
func (e *Editor) Clipboard() []model.Shape   { return append([]model.Shape(nil), e.clipboard...) }
func (e *Editor) options() *model.Options    { return e.project.Options }
func (e *Editor) loaded() bool               { return e.project != nil }
func (e *Editor) scale() float64             { return e.page.ZoomX }
func (e *Editor) radius() float64            { return e.project.Options.HitThreshold }

// Load makes p the edited project. A project without history gets none;
// edits are then not undoable.
func (e *Editor) Load(p *model.Project) {
	if e.project != nil {
		e.Unload()
	}
	e.project = p
	if p.Options == nil {
		p.Options = model.DefaultOptions()
	}
	e.flow.Bind(p)
	e.log.Info("project loaded", slog.String("project", p.Name))
}

// Unload releases the project, its history and image cache.
func (e *Editor) Unload() {
	if e.project == nil {
		return
	}
	name := e.project.Name
	e.project.Unload()
	e.project = nil
	e.hovered = nil
	e.clipboard = nil
	e.decorator = false
	e.log.Info("project unloaded", slog.String("project", name))
}

// CurrentLayer is the layer edits apply to.
func (e *Editor) CurrentLayer() *model.Layer {
	if e.project == nil {
		return nil
	}
	return e.project.CurrentLayer()
}

func (e *Editor) invalidate() {
	if e.project != nil && e.project.CurrentContainer != nil {
		e.project.CurrentContainer.Invalidate()
	}
}

// CanUndo and CanRedo report whether the history has records to apply.
func (e *Editor) CanUndo() bool { return e.loaded() && e.project.History.CanUndo() }
func (e *Editor) CanRedo() bool { return e.loaded() && e.project.History.CanRedo() }

// Undo deselects and reverts the last recorded edit.
func (e *Editor) Undo() bool {
	if !e.CanUndo() {
		return false
	}
	e.Deselect()
	ok := e.project.History.Undo()
	e.invalidate()
	return ok
}

// Redo deselects and reapplies the last undone edit.
func (e *Editor) Redo() bool {
	if !e.CanRedo() {
		return false
	}
	e.Deselect()
	ok := e.project.History.Redo()
	e.invalidate()
	return ok
}

// unlocked filters out locked and nil shapes.
func unlocked(shapes []model.Shape) []model.Shape {
	out := make([]model.Shape, 0, len(shapes))
	for _, s := range shapes {
		if s != nil && !s.State().Has(model.StateLocked) {
			out = append(out, s)
		}
	}
	return out
}
