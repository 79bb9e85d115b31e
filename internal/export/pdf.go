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
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	applog "core2d/internal/log"
	"core2d/internal/model"
	"core2d/internal/render"
)

// PDFOptions controls PDF export. Units are points; the page origin is top left.
type PDFOptions struct {
	Title   string
	Author  string
	Created time.Time // zero means now
	// Pages limits export to these zero based page indexes across all documents.
	Pages []int
}

// PDFRenderer draws shapes onto the current page of a gofpdf document.
type PDFRenderer struct {
	pdf    *gofpdf.Fpdf
	images *model.ImageCache
	loaded map[string]bool
	log    *slog.Logger
}

// NewPDFRenderer draws onto pdf, resolving image keys through images.
func NewPDFRenderer(pdf *gofpdf.Fpdf, images *model.ImageCache) *PDFRenderer {
	return &PDFRenderer{pdf: pdf, images: images, loaded: map[string]bool{}, log: applog.WithComponent("export")}
}

func (r *PDFRenderer) Background(c model.Color, w, h float64) {
	if c.A == 0 {
		return
	}
	r.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	r.pdf.Rect(0, 0, w, h, "F")
}

// paint sets the pdf state for s and returns the gofpdf style string.
func (r *PDFRenderer) paint(s model.Shape) string {
	st := styleOf(s)
	r.pdf.SetDrawColor(int(st.Stroke.R), int(st.Stroke.G), int(st.Stroke.B))
	r.pdf.SetFillColor(int(st.Fill.R), int(st.Fill.G), int(st.Fill.B))
	r.pdf.SetLineWidth(st.Thickness)
	switch st.LineCap {
	case model.CapRound:
		r.pdf.SetLineCapStyle("round")
	case model.CapSquare:
		r.pdf.SetLineCapStyle("square")
	default:
		r.pdf.SetLineCapStyle("butt")
	}
	r.pdf.SetDashPattern(dashes(st), st.DashOff)
	switch f, d := filled(s), stroked(s); {
	case f && d:
		return "FD"
	case f:
		return "F"
	case d:
		return "D"
	}
	return ""
}

func (r *PDFRenderer) Draw(s model.Shape) {
	switch v := s.(type) {
	case *model.Point:
		return
	case *model.Text:
		r.text(v)
		return
	case *model.Image:
		r.image(v)
		if style := r.paint(v); style == "D" || style == "FD" {
			b := v.Rect()
			r.pdf.Rect(b.X, b.Y, b.W, b.H, "D")
		}
		return
	}
	style := r.paint(s)
	if style == "" {
		return
	}
	switch v := s.(type) {
	case *model.Line:
		r.pdf.Line(v.Start.X(), v.Start.Y(), v.End.X(), v.End.Y())
	case *model.Rectangle:
		b := v.Rect()
		r.pdf.Rect(b.X, b.Y, b.W, b.H, style)
	case *model.Ellipse:
		b := v.Rect()
		r.pdf.Ellipse(b.Center().X, b.Center().Y, b.W/2, b.H/2, 0, style)
	case *model.CubicBezier:
		r.pdf.MoveTo(v.Point1.X(), v.Point1.Y())
		r.pdf.CurveBezierCubicTo(v.Point2.X(), v.Point2.Y(), v.Point3.X(), v.Point3.Y(), v.Point4.X(), v.Point4.Y())
		if v.IsFilled() {
			r.pdf.ClosePath()
		}
		r.pdf.DrawPath(style)
	case *model.QuadraticBezier:
		r.pdf.MoveTo(v.Point1.X(), v.Point1.Y())
		r.pdf.CurveTo(v.Point2.X(), v.Point2.Y(), v.Point3.X(), v.Point3.Y())
		if v.IsFilled() {
			r.pdf.ClosePath()
		}
		r.pdf.DrawPath(style)
	default:
		if p, ok := s.(*model.Path); ok && p.Geometry.FillRule == model.FillEvenOdd && style != "D" {
			style += "*"
		}
		r.figures(figuresOf(s), style)
	}
}

func (r *PDFRenderer) figures(figs []figure, style string) {
	drawn := false
	for _, f := range figs {
		if len(f.pts) < 2 {
			continue
		}
		r.pdf.MoveTo(f.pts[0].X, f.pts[0].Y)
		for _, p := range f.pts[1:] {
			r.pdf.LineTo(p.X, p.Y)
		}
		if f.closed {
			r.pdf.ClosePath()
		}
		drawn = true
	}
	if drawn {
		r.pdf.DrawPath(style)
	}
}

func (r *PDFRenderer) text(t *model.Text) {
	s := t.Bound()
	if s == "" {
		return
	}
	st := styleOf(t)
	size := fontSize(st)
	r.pdf.SetFont("Helvetica", "", size)
	r.pdf.SetTextColor(int(st.Stroke.R), int(st.Stroke.G), int(st.Stroke.B))
	o := textOrigin(t.Rect(), r.pdf.GetStringWidth(s), size, st)
	r.pdf.Text(o.X, o.Y, s)
}

// image places the cached bytes of img. PNG, JPEG and GIF are embedded;
// other formats are skipped.
func (r *PDFRenderer) image(img *model.Image) {
	if r.images == nil {
		return
	}
	data, ok := r.images.GetImage(img.Key())
	if !ok {
		r.log.Warn("image missing from cache", slog.String("key", img.Key()))
		return
	}
	if !r.loaded[img.Key()] {
		_, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil || (format != "png" && format != "jpeg" && format != "gif") {
			r.log.Warn("image format not embeddable", slog.String("key", img.Key()), slog.String("format", format))
			return
		}
		r.pdf.RegisterImageOptionsReader(img.Key(), gofpdf.ImageOptions{ImageType: format}, bytes.NewReader(data))
		r.loaded[img.Key()] = true
	}
	b := img.Rect()
	r.pdf.ImageOptions(img.Key(), b.X, b.Y, b.W, b.H, false, gofpdf.ImageOptions{}, 0, "")
}

// pages lists every page of every document in order.
func pages(p *model.Project) []*model.Container {
	var out []*model.Container
	for _, d := range p.Documents.All() {
		for _, pg := range d.Pages.All() {
			out = append(out, pg)
		}
	}
	return out
}

func pageIndexes(total int, specific []int) []int {
	if len(specific) == 0 {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	return specific
}

// WritePDF renders the pages of p into one multi page PDF written to w.
func WritePDF(w io.Writer, p *model.Project, opt PDFOptions) error {
	if p == nil {
		return fmt.Errorf("project is nil")
	}
	all := pages(p)
	if len(all) == 0 {
		return fmt.Errorf("project %q has no pages", p.Name)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: all[0].EffectiveWidth(), Ht: all[0].EffectiveHeight()}})
	title := opt.Title
	if title == "" {
		title = p.Name
	}
	pdf.SetTitle(title, true)
	pdf.SetAuthor(opt.Author, true)
	pdf.SetCreator("core2d", false)
	created := opt.Created
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetCreationDate(created)

	r := NewPDFRenderer(pdf, p.Images())
	n := 0
	for _, i := range pageIndexes(len(all), opt.Pages) {
		if i < 0 || i >= len(all) {
			continue
		}
		pg := all[i]
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: pg.EffectiveWidth(), Ht: pg.EffectiveHeight()})
		render.Present(r, pg, render.PrintableOnly())
		n++
	}
	if n == 0 {
		return fmt.Errorf("no pages selected")
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	r.log.Info("pdf exported", slog.String("project", p.Name), slog.Int("pages", n))
	return nil
}

// ExportPDF writes the project to path, creating its directory.
func ExportPDF(p *model.Project, path string, opt PDFOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, p, opt); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

var _ render.Renderer = (*PDFRenderer)(nil)
