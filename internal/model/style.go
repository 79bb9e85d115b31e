/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import (
	"fmt"

	"core2d/internal/ids"
)

// Styles and paint definitions.

type Color struct{ A, R, G, B uint8 }

var (
	Black       = Color{255, 0, 0, 0}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// Hex renders the color as #AARRGGBB.
func (c Color) Hex() string { return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B) }

// ParseColor reads #AARRGGBB or #RRGGBB.
func ParseColor(s string) (Color, error) {
	var c Color
	switch len(s) {
	case 9:
		_, err := fmt.Sscanf(s, "#%02X%02X%02X%02X", &c.A, &c.R, &c.G, &c.B)
		return c, err
	case 7:
		c.A = 255
		_, err := fmt.Sscanf(s, "#%02X%02X%02X", &c.R, &c.G, &c.B)
		return c, err
	}
	return c, fmt.Errorf("invalid color %q", s)
}

type LineCap uint8

const (
	CapFlat LineCap = iota
	CapSquare
	CapRound
)

type TextHAlignment uint8

const (
	TextLeft TextHAlignment = iota
	TextCenter
	TextRight
)

type TextVAlignment uint8

const (
	TextTop TextVAlignment = iota
	TextMiddle
	TextBottom
)

// TextStyle controls how Text shapes are laid out by renderers.
type TextStyle struct {
	FontName string
	FontFile string
	FontSize float64
	HAlign   TextHAlignment
	VAlign   TextVAlignment
}

// ShapeStyle is the stroke and fill description referenced by shapes.
// Styles live in style libraries and are shared by reference; Copy detaches.
type ShapeStyle struct {
	ID        string
	Name      string
	Stroke    Color
	Fill      Color
	Thickness float64
	LineCap   LineCap
	Dashes    string
	DashOff   float64
	Text      TextStyle
}

// NewStyle creates a style with the factory defaults for the given colors.
func NewStyle(name string, stroke, fill Color, thickness float64) *ShapeStyle {
	return &ShapeStyle{
		ID:        ids.New(ids.PrefixStyle),
		Name:      name,
		Stroke:    stroke,
		Fill:      fill,
		Thickness: thickness,
		LineCap:   CapRound,
		Text:      TextStyle{FontName: "Calibri", FontSize: 12, HAlign: TextCenter, VAlign: TextMiddle},
	}
}

// Copy returns a detached copy with a new identity. Styles already copied in
// shared are reused.
func (s *ShapeStyle) Copy(shared Shared) *ShapeStyle {
	if s == nil {
		return nil
	}
	if c, ok := shared.lookup(s); ok {
		return c.(*ShapeStyle)
	}
	c := *s
	c.ID = ids.New(ids.PrefixStyle)
	shared.store(s, &c)
	return &c
}
