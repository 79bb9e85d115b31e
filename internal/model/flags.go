/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import "strings"

// StateFlags is the per-shape state bitset.
type StateFlags uint32

const (
	StateNone       StateFlags = 0
	StateVisible    StateFlags = 1 << 0
	StatePrintable  StateFlags = 1 << 1
	StateLocked     StateFlags = 1 << 2
	StateSize       StateFlags = 1 << 3
	StateThickness  StateFlags = 1 << 4
	StateConnector  StateFlags = 1 << 5
	StateStandalone StateFlags = 1 << 6
	StateInput      StateFlags = 1 << 7
	StateOutput     StateFlags = 1 << 8

	StateDefault = StateVisible | StatePrintable
)

// Has reports whether all bits of f are set.
func (s StateFlags) Has(f StateFlags) bool { return s&f == f && f != 0 }

// With returns s with f set.
func (s StateFlags) With(f StateFlags) StateFlags { return s | f }

// Without returns s with f cleared.
func (s StateFlags) Without(f StateFlags) StateFlags { return s &^ f }

func (s StateFlags) String() string {
	if s == StateNone {
		return "None"
	}
	names := []struct {
		f StateFlags
		n string
	}{
		{StateVisible, "Visible"}, {StatePrintable, "Printable"}, {StateLocked, "Locked"},
		{StateSize, "Size"}, {StateThickness, "Thickness"}, {StateConnector, "Connector"},
		{StateStandalone, "Standalone"}, {StateInput, "Input"}, {StateOutput, "Output"},
	}
	var parts []string
	for _, e := range names {
		if s.Has(e.f) {
			parts = append(parts, e.n)
		}
	}
	return strings.Join(parts, "|")
}

// Alignment is a point's snapping hint.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignHorizontal
	AlignVertical
	AlignBoth
)

// Kind tags a shape variant.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindRectangle
	KindEllipse
	KindArc
	KindCubicBezier
	KindQuadraticBezier
	KindText
	KindImage
	KindPath
	KindGroup
)

var kindNames = [...]string{
	KindPoint:           "point",
	KindLine:            "line",
	KindRectangle:       "rectangle",
	KindEllipse:         "ellipse",
	KindArc:             "arc",
	KindCubicBezier:     "cubicBezier",
	KindQuadraticBezier: "quadraticBezier",
	KindText:            "text",
	KindImage:           "image",
	KindPath:            "path",
	KindGroup:           "group",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Kinds lists every built-in shape variant.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// MoveMode selects what MoveBy translates.
type MoveMode int

const (
	// MovePoint moves the distinct union of the selection's points.
	MovePoint MoveMode = iota
	// MoveShape calls Move on every selected shape.
	MoveShape
)

func (m MoveMode) String() string {
	if m == MoveShape {
		return "shape"
	}
	return "point"
}

// ParseMoveMode accepts "point" or "shape".
func ParseMoveMode(s string) (MoveMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "point":
		return MovePoint, true
	case "shape":
		return MoveShape, true
	}
	return MovePoint, false
}

// FillRule of a path geometry.
type FillRule int

const (
	FillEvenOdd FillRule = iota
	FillNonzero
)

func (f FillRule) String() string {
	if f == FillNonzero {
		return "nonzero"
	}
	return "evenodd"
}

// ParseFillRule accepts "evenodd" or "nonzero".
func ParseFillRule(s string) (FillRule, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "evenodd":
		return FillEvenOdd, true
	case "nonzero":
		return FillNonzero, true
	}
	return FillEvenOdd, false
}
