/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"core2d/internal/model"
)

func red() *model.ShapeStyle {
	return model.NewStyle("red", model.Color{A: 255, R: 255}, model.Color{A: 255, R: 255}, 2)
}

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

// sampleProject holds one shape of each kind on the first page.
func sampleProject(t *testing.T) *model.Project {
	t.Helper()
	p := model.NewProject("sample")
	layer := p.CurrentLayer()
	key := p.Images().AddImageFromFile("/assets/dot.png", samplePNG(t))

	path := model.NewPath(model.NewGeometryBuilder(model.FillEvenOdd).
		BeginFigure(model.NewPoint(100, 100), true, true).
		LineTo(model.NewPoint(200, 100)).
		ArcTo(model.NewPoint(200, 200), 50, 50, 0, false, true).
		CubicTo(model.NewPoint(180, 220), model.NewPoint(120, 220), model.NewPoint(100, 200)).
		Geometry(), model.DefaultStyle(), true, true)
	hidden := model.NewEllipse(300, 300, 310, 310, model.DefaultStyle(), true, true)
	hidden.SetState(hidden.State().Without(model.StateVisible))

	shapes := []model.Shape{
		model.NewRectangle(10, 10, 20, 20, red(), false, true),
		model.NewLineXY(0, 50, 100, 50, model.DefaultStyle(), true),
		model.NewEllipse(30, 30, 60, 50, model.DefaultStyle(), true, false),
		model.NewArc(300, 10, 400, 110, 400, 60, 350, 10, model.DefaultStyle(), true, false),
		model.NewCubicBezier(0, 100, 30, 60, 60, 140, 90, 100, model.DefaultStyle(), true, false),
		model.NewQuadraticBezier(0, 150, 45, 110, 90, 150, model.DefaultStyle(), true, false),
		model.NewText(0, 250, 200, 280, model.DefaultStyle(), "a & b", true),
		model.NewImage(250, 250, 290, 290, model.DefaultStyle(), key),
		path,
		hidden,
	}
	for _, s := range shapes {
		layer.SetShapes(layer.Shapes().Append(s))
	}
	return p
}

func TestWritePDF(t *testing.T) {
	p := sampleProject(t)
	var buf bytes.Buffer
	if err := WritePDF(&buf, p, PDFOptions{Created: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
	if err := WritePDF(&bytes.Buffer{}, p, PDFOptions{Pages: []int{5}}); err == nil {
		t.Fatalf("out of range page selection did not fail")
	}
	if err := WritePDF(&bytes.Buffer{}, model.NewEmptyProject("empty"), PDFOptions{}); err == nil {
		t.Fatalf("project without pages did not fail")
	}
}

func TestExportPDFCreatesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out.pdf")
	if err := ExportPDF(sampleProject(t), out, PDFOptions{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	st, err := os.Stat(out)
	if err != nil || st.Size() == 0 {
		t.Fatalf("pdf missing or empty: %v", err)
	}
}

func TestWriteSVG(t *testing.T) {
	p := sampleProject(t)
	var buf bytes.Buffer
	if err := WriteSVG(&buf, p.CurrentContainer, p.Images(), SVGOptions{DPI: 144}); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`width="1680px" height="1200px" viewBox="0 0 840 600"`,
		`<rect x="10" y="10" width="10" height="10" fill="#ff0000" stroke="none"/>`,
		`<line x1="0" y1="50" x2="100" y2="50"`,
		`<ellipse cx="45" cy="40" rx="15" ry="10"`,
		`fill-rule="evenodd"`,
		` A50 50 0 0 1 200 200`,
		`>a &amp; b</text>`,
		`href="data:image/png;base64,`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, `cx="305"`) {
		t.Fatalf("hidden ellipse exported")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Fatalf("svg not closed")
	}
}

func TestRenderPNG(t *testing.T) {
	p := sampleProject(t)
	img, err := RenderPNG(p.CurrentContainer, p.Images(), PNGOptions{Scale: 2})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1680 || b.Dy() != 1200 {
		t.Fatalf("image size = %v", b)
	}
	if c := img.RGBAAt(30, 30); c.R != 255 || c.G != 0 || c.B != 0 {
		t.Fatalf("rectangle pixel = %v, want red", c)
	}
	if c := img.RGBAAt(1000, 1000); c != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("background pixel = %v, want white", c)
	}
	if c := img.RGBAAt(20, 100); c.R > 128 {
		t.Fatalf("line pixel = %v, want dark", c)
	}
}

func TestBatchExportWebPreset(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "web")
	if err := BatchExport(sampleProject(t), BatchOptions{Preset: PresetWeb, OutDir: dir}); err != nil {
		t.Fatalf("batch export: %v", err)
	}
	for _, p := range []string{
		filepath.Join(dir, "png", "page-1.png"),
		filepath.Join(dir, "svg", "page-1.svg"),
	} {
		st, err := os.Stat(p)
		if err != nil || st.Size() == 0 {
			t.Fatalf("missing %s: %v", p, err)
		}
	}
	if err := BatchExport(sampleProject(t), BatchOptions{Formats: []string{"cbz"}, OutDir: dir}); err == nil {
		t.Fatalf("unknown format accepted")
	}
}

func TestFixedThicknessIgnoresPNGScale(t *testing.T) {
	coverage := func(fixed bool) uint8 {
		line := model.NewLineXY(0, 5, 10, 5, model.DefaultStyle(), true)
		if fixed {
			line.SetState(model.StateDefault.With(model.StateThickness))
		}
		r := NewPNGRenderer(image.NewRGBA(image.Rect(0, 0, 40, 40)), 4, nil)
		r.Draw(line)
		return r.Image().RGBAAt(20, 17).A
	}
	if a := coverage(false); a == 0 {
		t.Fatalf("a 2 unit stroke at scale 4 must cover 4 pixels either side")
	}
	if a := coverage(true); a != 0 {
		t.Fatalf("a fixed stroke must stay 2 pixels wide, alpha %d", a)
	}
}

func TestFixedThicknessSVGStroke(t *testing.T) {
	p := model.NewProject("p")
	line := model.NewLineXY(0, 5, 10, 5, model.DefaultStyle(), true)
	line.SetState(model.StateDefault.With(model.StateThickness))
	p.AddShape(p.CurrentLayer(), line)
	var buf bytes.Buffer
	if err := WriteSVG(&buf, p.CurrentContainer, p.Images(), SVGOptions{}); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	if n := strings.Count(buf.String(), `vector-effect="non-scaling-stroke"`); n != 1 {
		t.Fatalf("expected one non-scaling stroke, got %d:\n%s", n, buf.String())
	}
}
