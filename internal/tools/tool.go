/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package tools implements the drawing tools driven by pointer input.
// Shapes under construction live on the Working layer of the current
// container and reach the document, and its history, only on commit.
package tools

import (
	"log/slog"

	"core2d/internal/editor"
	applog "core2d/internal/log"
	"core2d/internal/model"
)

// Tool reacts to pointer input in document coordinates.
type Tool interface {
	Title() string
	// BeginDown is the primary button press.
	BeginDown(x, y float64)
	// BeginUp is the primary button release.
	BeginUp(x, y float64)
	// EndDown is the secondary button press; it cancels a gesture in progress.
	EndDown(x, y float64)
	Move(x, y float64)
	// Reset abandons the gesture and leaves the document untouched.
	Reset()
}

// All returns one instance of every tool, selection first.
func All(e *editor.Editor) []Tool {
	return []Tool{
		NewSelection(e),
		NewPoint(e),
		NewLine(e),
		NewRectangle(e),
		NewEllipse(e),
		NewArc(e),
		NewCubicBezier(e),
		NewQuadraticBezier(e),
		NewText(e),
	}
}

// ByTitle finds a tool of tools by its title.
func ByTitle(tools []Tool, title string) (Tool, bool) {
	for _, t := range tools {
		if t.Title() == title {
			return t, true
		}
	}
	return nil, false
}

func logger() *slog.Logger { return applog.WithComponent("tools") }

// working is the preview layer of the current container.
func working(e *editor.Editor) *model.Layer {
	p := e.Project()
	if p == nil || p.CurrentContainer == nil {
		return nil
	}
	return p.CurrentContainer.WorkingLayer
}

func helper(e *editor.Editor) *model.Layer {
	p := e.Project()
	if p == nil || p.CurrentContainer == nil {
		return nil
	}
	return p.CurrentContainer.HelperLayer
}

// show and hide put s on or take it off a transient layer without history.
func show(l *model.Layer, s model.Shape) {
	if l != nil {
		l.SetShapes(l.Shapes().Append(s))
	}
}

func hide(l *model.Layer, s model.Shape) {
	if l == nil {
		return
	}
	next := l.Shapes().RemoveFunc(func(v model.Shape) bool { return v == s })
	l.SetShapes(next)
}
