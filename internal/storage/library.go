/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"core2d/internal/ids"
	"core2d/internal/model"
)

type styleLibraryFileDTO struct {
	Format   int        `json:"format"`
	Name     string     `json:"name"`
	Styles   []styleDTO `json:"styles"`
	Selected string     `json:"selected,omitempty"`
}

// EncodeStyleLibrary writes one style library as a standalone JSON document
// with the styles inlined.
func EncodeStyleLibrary(l *model.Library[*model.ShapeStyle]) ([]byte, error) {
	if l == nil {
		return nil, errors.New("style library is nil")
	}
	e := &encoder{styles: []styleDTO{}, styleIDs: map[*model.ShapeStyle]string{}}
	for _, s := range l.Items.All() {
		e.style(s)
	}
	dto := styleLibraryFileDTO{Format: FormatVersion, Name: l.Name, Styles: e.styles, Selected: e.style(l.Selected)}
	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal style library: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeStyleLibrary reads a document written by EncodeStyleLibrary. The
// library and its styles get fresh ids so they can join any project.
func DecodeStyleLibrary(data []byte) (*model.Library[*model.ShapeStyle], error) {
	var dto styleLibraryFileDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("parse style library: %w", err)
	}
	if dto.Format > FormatVersion {
		return nil, fmt.Errorf("style library format %d is newer than supported %d", dto.Format, FormatVersion)
	}
	if dto.Name == "" {
		return nil, errors.New("style library has no name")
	}
	var items []*model.ShapeStyle
	var selected *model.ShapeStyle
	for _, sd := range dto.Styles {
		s, err := decodeStyle(sd)
		if err != nil {
			return nil, err
		}
		if sd.ID == dto.Selected {
			selected = s
		}
		s.ID = ids.New(ids.PrefixStyle)
		items = append(items, s)
	}
	l := model.NewLibrary(dto.Name, items...)
	if selected != nil {
		l.Selected = selected
	}
	return l, nil
}
