/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"core2d/internal/model"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// BatchOptions controls batch export across formats.
//
// Outputs land in <OutDir>/<format>/: one project.pdf, or page-<n>.png and
// page-<n>.svg per page. An empty OutDir becomes the preset name.
type BatchOptions struct {
	Preset  PresetName
	Formats []string // pdf, png, svg; empty means preset defaults
	DPI     int      // when > 0 overrides the preset resolution
	OutDir  string
}

// BatchExport runs the exports of the preset for p.
func BatchExport(p *model.Project, opt BatchOptions) error {
	if p == nil {
		return fmt.Errorf("project is nil")
	}
	if len(pages(p)) == 0 {
		return fmt.Errorf("project has no pages")
	}
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	base := opt.OutDir
	if base == "" {
		base = string(opt.Preset)
	}
	dpi := presetDPI(opt.Preset)
	if opt.DPI > 0 {
		dpi = opt.DPI
	}
	for _, f := range formats {
		switch f = strings.ToLower(strings.TrimSpace(f)); f {
		case "pdf":
			if err := ExportPDF(p, filepath.Join(base, "pdf", "project.pdf"), PDFOptions{}); err != nil {
				return fmt.Errorf("pdf: %w", err)
			}
		case "png":
			if err := ExportPNGPages(p, filepath.Join(base, "png"), PNGOptions{Scale: float64(dpi) / 72}); err != nil {
				return fmt.Errorf("png: %w", err)
			}
		case "svg":
			if err := ExportSVGPages(p, filepath.Join(base, "svg"), SVGOptions{DPI: dpi}); err != nil {
				return fmt.Errorf("svg: %w", err)
			}
		default:
			return fmt.Errorf("unknown format: %s", f)
		}
	}
	return nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{"png", "svg"}
	case PresetPrint:
		return []string{"pdf", "png"}
	default:
		return []string{"pdf"}
	}
}

func presetDPI(p PresetName) int {
	if p == PresetPrint {
		return 300
	}
	return 72
}
