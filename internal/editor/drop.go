/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"core2d/internal/model"
)

// Size given to dropped images whose format cannot be decoded.
const (
	DefaultImageWidth  = 320
	DefaultImageHeight = 180
)

// NewStyle returns a copy of the selected library style, or the default style.
func (e *Editor) NewStyle() *model.ShapeStyle {
	if s := e.project.CurrentStyle(); s != nil {
		return s.Copy(nil)
	}
	return model.DefaultStyle()
}

// ImageSize decodes the header of data and returns its pixel size, or the
// default size when the format is unknown.
func ImageSize(data []byte) (w, h float64, ok bool) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return DefaultImageWidth, DefaultImageHeight, false
	}
	return float64(cfg.Width), float64(cfg.Height), true
}

// DropImage stores data in the project image cache under a key derived from
// path and adds an image shape at the snapped position (x, y).
func (e *Editor) DropImage(path string, data []byte, x, y float64) *model.Image {
	layer := e.CurrentLayer()
	if layer == nil || len(data) == 0 || e.project.Images() == nil {
		return nil
	}
	key := e.project.Images().AddImageFromFile(path, data)
	w, h, ok := ImageSize(data)
	if !ok {
		e.log.Warn("image size unknown", slog.String("key", key))
	}
	sx, sy := e.TryToSnap(x, y)
	img := model.NewImage(sx, sy, sx+w, sy+h, e.NewStyle(), key)
	if !e.project.AddShape(layer, img) {
		return nil
	}
	e.log.Debug("image dropped", slog.String("key", key), slog.Float64("w", w), slog.Float64("h", h))
	return img
}

// DropShapeAsClone adds a clone of s moved by the snapped (x, y). A dropped
// group is connected into the lines it lands on when connecting is enabled.
func (e *Editor) DropShapeAsClone(s model.Shape, x, y float64) model.Shape {
	layer := e.CurrentLayer()
	if layer == nil || s == nil {
		return nil
	}
	sx, sy := e.TryToSnap(x, y)
	clone := s.Copy(model.NewShared())
	e.Deselect()
	clone.Move(sx, sy)
	added := false
	e.project.History.Batch("drop", func() {
		if added = e.project.AddShape(layer, clone); !added {
			return
		}
		if g, ok := clone.(*model.Group); ok && e.options().TryToConnect {
			e.TryToConnectLines(e.linesOf(), g.Connectors.Items())
		}
	})
	if !added {
		return nil
	}
	return clone
}
