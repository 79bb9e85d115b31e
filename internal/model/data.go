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

// Value is one cell of a record.
type Value struct {
	Content string
}

// Column describes one field of a database.
type Column struct {
	ID        string
	Name      string
	IsVisible bool
	Owner     *Database
}

// Record is one row. Values are positional and match the owner's columns.
type Record struct {
	ID     string
	Values seq.Seq[*Value]
	Owner  *Database
}

// Value returns the content of column name, or false when the owner has no such column.
func (r *Record) Value(name string) (string, bool) {
	if r == nil || r.Owner == nil {
		return "", false
	}
	i := r.Owner.Columns.IndexFunc(func(c *Column) bool { return c.Name == name })
	if i < 0 || i >= r.Values.Len() {
		return "", false
	}
	return r.Values.At(i).Content, true
}

// Database is an external record source bound to shapes and containers.
type Database struct {
	ID           string
	Name         string
	IdColumnName string
	Columns      seq.Seq[*Column]
	Records      seq.Seq[*Record]
}

// NewDatabase creates a database with the given column names.
func NewDatabase(name string, columns ...string) *Database {
	db := &Database{ID: ids.NewUUID(), Name: name, IdColumnName: "Id"}
	for _, c := range columns {
		db.Columns = db.Columns.Append(&Column{ID: ids.NewUUID(), Name: c, IsVisible: true, Owner: db})
	}
	return db
}

// NewRecord creates a record owned by db holding values in column order.
func (db *Database) NewRecord(values ...string) *Record {
	r := &Record{ID: ids.NewUUID(), Owner: db}
	for _, v := range values {
		r.Values = r.Values.Append(&Value{Content: v})
	}
	return r
}

// Property is a named value attached to a shape or container.
type Property struct {
	Name  string
	Value string
}

// Data is the binding payload of a shape: its properties and an optional record.
type Data struct {
	Properties seq.Seq[*Property]
	Record     *Record
}

// Copy clones the property list and keeps the record by reference.
func (d *Data) Copy() *Data {
	if d == nil {
		return &Data{}
	}
	c := &Data{Record: d.Record}
	for _, p := range d.Properties.All() {
		pc := *p
		c.Properties = c.Properties.Append(&pc)
	}
	return c
}

// Property returns the value of the named property.
func (d *Data) Property(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	return FindProperty(d.Properties, name)
}

// FindProperty looks up name in props.
func FindProperty(props seq.Seq[*Property], name string) (string, bool) {
	for _, p := range props.All() {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}
