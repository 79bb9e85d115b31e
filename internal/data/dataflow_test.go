/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package data

import (
	"testing"

	"core2d/internal/model"
	"core2d/internal/seq"
)

func TestResolve(t *testing.T) {
	db := model.NewDatabase("people", "Name", "City")
	r := db.NewRecord("Ada", "London")
	props := seq.Of(&model.Property{Name: "Name", Value: "Grace"})

	cases := map[string]string{
		"plain":            "plain",
		"{Name}":           "Grace",
		"{City}, {Name}!":  "London, Grace!",
		"{Unknown} {City}": "{Unknown} London",
		"open {City":       "open {City",
		"{}":               "{}",
		"{City}{City}":     "LondonLondon",
	}
	for in, want := range cases {
		if got := Resolve(in, props, r); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", in, got, want)
		}
	}
	if got := Resolve("{Name}", seq.Seq[*model.Property]{}, nil); got != "{Name}" {
		t.Fatalf("no sources must leave the template, got %q", got)
	}
}

func TestBindProjectUsesPageRecordAndShapeOverrides(t *testing.T) {
	p := model.NewProject("p")
	db := p.CurrentDatabase
	pageRec := db.NewRecord("page0", "page1")
	ownRec := db.NewRecord("own0", "own1")
	page := p.CurrentContainer
	page.Record = pageRec
	page.Properties = seq.Of(&model.Property{Name: "Title", Value: "Cover"})

	a := model.NewText(0, 0, 10, 10, nil, "{Title}: {Column0}", true)
	b := model.NewText(0, 0, 10, 10, nil, "{Title}: {Column1}", true)
	b.Data().Record = ownRec
	b.Data().Properties = seq.Of(&model.Property{Name: "Title", Value: "Own"})
	g := model.NewGroup("g")
	g.AddShape(b)
	p.AddShape(p.CurrentLayer(), a)
	p.AddShape(p.CurrentLayer(), g)

	tpl := model.NewText(0, 0, 10, 10, nil, "{Title}", true)
	p.AddShape(p.CurrentTemplate.CurrentLayer, tpl)

	New().Bind(p)
	if got := a.Bound(); got != "Cover: page0" {
		t.Fatalf("a bound to %q", got)
	}
	if got := b.Bound(); got != "Own: own1" {
		t.Fatalf("b bound to %q", got)
	}
	if got := tpl.Bound(); got != "Cover" {
		t.Fatalf("template text bound to %q", got)
	}
	if a.Text() != "{Title}: {Column0}" {
		t.Fatalf("template string must be kept")
	}
}

func TestBindToEmptyValueHidesTemplate(t *testing.T) {
	p := model.NewProject("p")
	txt := model.NewText(0, 0, 10, 10, nil, "{Name}", true)
	txt.Data().Properties = seq.Of(&model.Property{Name: "Name", Value: ""})
	p.AddShape(p.CurrentLayer(), txt)

	if txt.IsBound() || txt.Bound() != "{Name}" {
		t.Fatalf("unbound text must show its template, got %q", txt.Bound())
	}
	New().Bind(p)
	if !txt.IsBound() || txt.Bound() != "" {
		t.Fatalf("empty value must resolve to empty text, got %q", txt.Bound())
	}
}
