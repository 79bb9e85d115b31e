/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import "core2d/internal/geom"

const (
	MinZoom = 0.1
	MaxZoom = 4.0
)

// PageState is the view transform of the page being edited: a uniform zoom
// and a pan offset in screen units.
type PageState struct {
	ZoomX, ZoomY     float64
	OffsetX, OffsetY float64
}

func NewPageState() *PageState { return &PageState{ZoomX: 1, ZoomY: 1} }

// ToPage maps a screen position to document space.
func (s *PageState) ToPage(x, y float64) geom.Point2 {
	return geom.Point2{X: (x - s.OffsetX) / s.ZoomX, Y: (y - s.OffsetY) / s.ZoomY}
}

// ToScreen maps a document position to screen space.
func (s *PageState) ToScreen(p geom.Point2) (x, y float64) {
	return p.X*s.ZoomX + s.OffsetX, p.Y*s.ZoomY + s.OffsetY
}

// ZoomTo sets the zoom keeping the screen point (x, y) fixed. The zoom is
// clamped to [MinZoom, MaxZoom].
func (s *PageState) ZoomTo(zoom, x, y float64) {
	if zoom < MinZoom {
		zoom = MinZoom
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	anchor := s.ToPage(x, y)
	s.ZoomX, s.ZoomY = zoom, zoom
	s.OffsetX = x - anchor.X*zoom
	s.OffsetY = y - anchor.Y*zoom
}

// ZoomBy adds step to the zoom around (x, y).
func (s *PageState) ZoomBy(step, x, y float64) { s.ZoomTo(s.ZoomX+step, x, y) }

// Pan moves the view by dx, dy screen units.
func (s *PageState) Pan(dx, dy float64) {
	s.OffsetX += dx
	s.OffsetY += dy
}

// Reset restores zoom 1 without offset.
func (s *PageState) Reset() { *s = PageState{ZoomX: 1, ZoomY: 1} }
