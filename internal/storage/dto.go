/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

// FormatVersion is written into every encoded project.
const FormatVersion = 1

// The DTOs below are the persisted form of a project. Objects referenced from
// more than one place (points, styles, records, containers, layers) are
// written once and referenced by ID.

type projectDTO struct {
	Format    int               `json:"format"`
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Options   optionsDTO        `json:"options"`
	Styles    []styleDTO        `json:"styles"`
	Points    []pointDTO        `json:"points"`
	StyleLibs []styleLibraryDTO `json:"styleLibraries"`
	GroupLibs []groupLibraryDTO `json:"groupLibraries"`
	Databases []databaseDTO     `json:"databases"`
	Templates []containerDTO    `json:"templates"`
	Documents []documentDTO     `json:"documents"`
	Current   currentDTO        `json:"current"`
}

type optionsDTO struct {
	SnapToGrid       bool    `json:"snapToGrid"`
	SnapX            float64 `json:"snapX"`
	SnapY            float64 `json:"snapY"`
	HitThreshold     float64 `json:"hitThreshold"`
	MoveMode         string  `json:"moveMode"`
	DefaultIsStroked bool    `json:"defaultIsStroked"`
	DefaultIsFilled  bool    `json:"defaultIsFilled"`
	DefaultIsClosed  bool    `json:"defaultIsClosed"`
	DefaultFillRule  string  `json:"defaultFillRule"`
	TryToConnect     bool    `json:"tryToConnect"`
}

type currentDTO struct {
	Document     string `json:"document,omitempty"`
	Container    string `json:"container,omitempty"`
	Template     string `json:"template,omitempty"`
	StyleLibrary string `json:"styleLibrary,omitempty"`
	GroupLibrary string `json:"groupLibrary,omitempty"`
	Database     string `json:"database,omitempty"`
}

type textStyleDTO struct {
	FontName string  `json:"fontName,omitempty"`
	FontFile string  `json:"fontFile,omitempty"`
	FontSize float64 `json:"fontSize"`
	HAlign   uint8   `json:"hAlign"`
	VAlign   uint8   `json:"vAlign"`
}

type styleDTO struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Stroke    string       `json:"stroke"`
	Fill      string       `json:"fill"`
	Thickness float64      `json:"thickness"`
	LineCap   uint8        `json:"lineCap"`
	Dashes    string       `json:"dashes,omitempty"`
	DashOff   float64      `json:"dashOffset,omitempty"`
	Text      textStyleDTO `json:"text"`
}

type propertyDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type pointDTO struct {
	ID         string        `json:"id"`
	X          float64       `json:"x"`
	Y          float64       `json:"y"`
	Name       string        `json:"name,omitempty"`
	State      uint32        `json:"state"`
	Style      string        `json:"style,omitempty"`
	Alignment  int           `json:"alignment,omitempty"`
	Owner      string        `json:"owner,omitempty"`
	Properties []propertyDTO `json:"properties,omitempty"`
	Record     string        `json:"record,omitempty"`
}

type segmentDTO struct {
	Kind          string   `json:"kind"`
	Points        []string `json:"points"`
	Stroked       bool     `json:"stroked"`
	Width         float64  `json:"width,omitempty"`
	Height        float64  `json:"height,omitempty"`
	RotationAngle float64  `json:"rotationAngle,omitempty"`
	IsLargeArc    bool     `json:"isLargeArc,omitempty"`
	Clockwise     bool     `json:"clockwise,omitempty"`
}

type figureDTO struct {
	Start    string       `json:"start"`
	Segments []segmentDTO `json:"segments"`
	IsClosed bool         `json:"isClosed"`
	IsFilled bool         `json:"isFilled"`
}

type geometryDTO struct {
	FillRule string      `json:"fillRule"`
	Figures  []figureDTO `json:"figures"`
}

// shapeDTO covers every shape kind. A point shape carries only its ID; its
// attributes live in the point table.
type shapeDTO struct {
	Kind       string        `json:"kind"`
	ID         string        `json:"id"`
	Name       string        `json:"name,omitempty"`
	State      uint32        `json:"state,omitempty"`
	Style      string        `json:"style,omitempty"`
	Stroked    bool          `json:"stroked,omitempty"`
	Filled     bool          `json:"filled,omitempty"`
	Properties []propertyDTO `json:"properties,omitempty"`
	Record     string        `json:"record,omitempty"`
	Points     []string      `json:"points,omitempty"`
	Text       string        `json:"text,omitempty"`
	Key        string        `json:"key,omitempty"`
	Geometry   *geometryDTO  `json:"geometry,omitempty"`
	Shapes     []shapeDTO    `json:"shapes,omitempty"`
	Connectors []string      `json:"connectors,omitempty"`
}

type layerDTO struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Visible bool       `json:"visible"`
	Shapes  []shapeDTO `json:"shapes"`
}

type containerDTO struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Width          float64       `json:"width"`
	Height         float64       `json:"height"`
	Background     string        `json:"background"`
	Template       string        `json:"template,omitempty"`
	Layers         []layerDTO    `json:"layers"`
	CurrentLayer   string        `json:"currentLayer,omitempty"`
	Properties     []propertyDTO `json:"properties,omitempty"`
	Record         string        `json:"record,omitempty"`
	IsGridEnabled  bool          `json:"isGridEnabled,omitempty"`
	GridCellWidth  float64       `json:"gridCellWidth,omitempty"`
	GridCellHeight float64       `json:"gridCellHeight,omitempty"`
}

type documentDTO struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Pages []containerDTO `json:"pages"`
}

type styleLibraryDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Styles   []string `json:"styles"`
	Selected string   `json:"selected,omitempty"`
}

type groupLibraryDTO struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Groups   []shapeDTO `json:"groups"`
	Selected string     `json:"selected,omitempty"`
}

type columnDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsVisible bool   `json:"isVisible"`
}

type recordDTO struct {
	ID     string   `json:"id"`
	Values []string `json:"values"`
}

type databaseDTO struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	IdColumnName string      `json:"idColumnName"`
	Columns      []columnDTO `json:"columns"`
	Records      []recordDTO `json:"records"`
}
