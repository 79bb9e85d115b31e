/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"log/slog"
	"strconv"

	"core2d/internal/model"
	"core2d/internal/seq"
)

// ImportedDatabaseName names the database created for pasted records when
// the project has no current database.
const ImportedDatabaseName = "Imported"

// Delete removes s from its layer in the current container.
func (e *Editor) Delete(s model.Shape) bool {
	if !e.loaded() || !e.project.RemoveShape(s) {
		return false
	}
	e.Deselect()
	return true
}

// DeleteSelected removes the selected shapes of the current layer as one edit.
func (e *Editor) DeleteSelected() bool {
	layer := e.CurrentLayer()
	if layer == nil {
		return false
	}
	ok := e.project.RemoveShapes(layer, e.Selected())
	e.Deselect()
	return ok
}

// Copy puts deep clones of shapes on the editor clipboard.
func (e *Editor) Copy(shapes []model.Shape) bool {
	if len(shapes) == 0 {
		return false
	}
	e.clipboard = model.CopyShapes(shapes)
	return true
}

// CopySelected copies the selection.
func (e *Editor) CopySelected() bool { return e.Copy(e.Selected()) }

// CutSelected copies the selection and deletes it.
func (e *Editor) CutSelected() bool {
	if !e.CopySelected() {
		return false
	}
	return e.DeleteSelected()
}

// CanPaste reports whether the clipboard holds shapes.
func (e *Editor) CanPaste() bool { return len(e.clipboard) > 0 }

// Paste adds fresh clones of the clipboard to the current layer and selects them.
func (e *Editor) Paste() bool {
	if !e.CanPaste() {
		return false
	}
	return e.PasteShapes(model.CopyShapes(e.clipboard))
}

// Duplicate pastes clones of the selection.
func (e *Editor) Duplicate() bool {
	sel := e.Selected()
	if len(sel) == 0 {
		return false
	}
	return e.PasteShapes(model.CopyShapes(sel))
}

// PasteShapes adds shapes to the current layer as one edit. Records carried
// by the shapes are linked to project records of the same id; unknown
// records are added to the current database.
func (e *Editor) PasteShapes(shapes []model.Shape) bool {
	layer := e.CurrentLayer()
	if layer == nil || len(shapes) == 0 {
		return false
	}
	e.Deselect()
	db, added := e.restoreRecords(shapes)
	e.updateNames(shapes)
	if !e.project.PasteShapes(layer, shapes, db, added) {
		return false
	}
	e.Select(shapes...)
	e.log.Debug("pasted", slog.Int("shapes", len(shapes)), slog.Int("records", len(added)))
	return true
}

// restoreRecords relinks the records of shapes to project records with the
// same id. It returns the records the project does not know yet and the
// database they go to: the current one, or a new "Imported" database using
// the columns of the first unknown record. When several databases hold the
// same id the first one wins.
func (e *Editor) restoreRecords(shapes []model.Shape) (*model.Database, []*model.Record) {
	p := e.project
	records := p.RecordsByID()
	db := p.CurrentDatabase
	var added []*model.Record
	for s := range model.Walk(seq.Of(shapes...)) {
		d := s.Data()
		if d == nil || d.Record == nil {
			continue
		}
		if r, ok := records[d.Record.ID]; ok {
			d.Record = r
			continue
		}
		if db == nil {
			var columns []string
			if owner := d.Record.Owner; owner != nil {
				for _, c := range owner.Columns.All() {
					columns = append(columns, c.Name)
				}
			}
			db = model.NewDatabase(ImportedDatabaseName, columns...)
		}
		records[d.Record.ID] = d.Record
		added = append(added, d.Record)
	}
	return db, added
}

// updateNames gives each shape a name unique among the project shapes of
// the same kind, when it has none or its name is taken.
func (e *Editor) updateNames(shapes []model.Shape) {
	var all []model.Shape
	for s := range e.project.AllShapes() {
		all = append(all, s)
	}
	for _, s := range shapes {
		setShapeName(s, all)
		all = append(all, s)
	}
}

func setShapeName(s model.Shape, source []model.Shape) {
	count, taken := 1, s.Name() == ""
	for _, o := range source {
		if o == s {
			continue
		}
		if o.Kind() == s.Kind() {
			count++
		}
		if o.Name() == s.Name() {
			taken = true
		}
	}
	if taken {
		s.SetName(s.Kind().String() + strconv.Itoa(count))
	}
}

// NameShape gives s a name unique among the project shapes of its kind when
// it has none or its name is taken.
func (e *Editor) NameShape(s model.Shape) {
	if e.loaded() && s != nil {
		e.updateNames([]model.Shape{s})
	}
}
