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
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"core2d/internal/model"
	"core2d/internal/render"
)

// SVGOptions controls SVG export. DPI sets the pixel size of the width and
// height attributes; the viewBox keeps document units.
type SVGOptions struct {
	DPI int
}

// SVGRenderer appends SVG elements for each drawn shape.
type SVGRenderer struct {
	buf    *bytes.Buffer
	images *model.ImageCache
	err    error
}

func NewSVGRenderer(buf *bytes.Buffer, images *model.ImageCache) *SVGRenderer {
	return &SVGRenderer{buf: buf, images: images}
}

func (r *SVGRenderer) wf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.buf, format, args...)
}

func (r *SVGRenderer) Background(c model.Color, w, h float64) {
	if c.A == 0 {
		return
	}
	r.wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", w, h, svgColor(c))
}

// paint renders the presentation attributes of s.
func paint(s model.Shape) string {
	st := styleOf(s)
	var b strings.Builder
	if filled(s) {
		fmt.Fprintf(&b, " fill=\"%s\"", svgColor(st.Fill))
		if st.Fill.A < 255 {
			fmt.Fprintf(&b, " fill-opacity=\"%g\"", float64(st.Fill.A)/255)
		}
	} else {
		b.WriteString(" fill=\"none\"")
	}
	if !stroked(s) {
		b.WriteString(" stroke=\"none\"")
		return b.String()
	}
	fmt.Fprintf(&b, " stroke=\"%s\" stroke-width=\"%g\"", svgColor(st.Stroke), st.Thickness)
	if fixedStroke(s) {
		b.WriteString(" vector-effect=\"non-scaling-stroke\"")
	}
	if st.Stroke.A < 255 {
		fmt.Fprintf(&b, " stroke-opacity=\"%g\"", float64(st.Stroke.A)/255)
	}
	switch st.LineCap {
	case model.CapRound:
		b.WriteString(" stroke-linecap=\"round\"")
	case model.CapSquare:
		b.WriteString(" stroke-linecap=\"square\"")
	}
	if d := dashes(st); len(d) > 0 {
		parts := make([]string, len(d))
		for i, v := range d {
			parts[i] = fmt.Sprintf("%g", v)
		}
		fmt.Fprintf(&b, " stroke-dasharray=\"%s\"", strings.Join(parts, " "))
	}
	return b.String()
}

func (r *SVGRenderer) Draw(s model.Shape) {
	switch v := s.(type) {
	case *model.Point:
	case *model.Line:
		r.wf("  <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\"%s/>\n", v.Start.X(), v.Start.Y(), v.End.X(), v.End.Y(), paint(v))
	case *model.Rectangle:
		b := v.Rect()
		r.wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\"%s/>\n", b.X, b.Y, b.W, b.H, paint(v))
	case *model.Ellipse:
		b := v.Rect()
		r.wf("  <ellipse cx=\"%g\" cy=\"%g\" rx=\"%g\" ry=\"%g\"%s/>\n", b.Center().X, b.Center().Y, b.W/2, b.H/2, paint(v))
	case *model.CubicBezier:
		r.wf("  <path d=\"M%g %g C%g %g %g %g %g %g%s\"%s/>\n", v.Point1.X(), v.Point1.Y(),
			v.Point2.X(), v.Point2.Y(), v.Point3.X(), v.Point3.Y(), v.Point4.X(), v.Point4.Y(), closeIf(v.IsFilled()), paint(v))
	case *model.QuadraticBezier:
		r.wf("  <path d=\"M%g %g Q%g %g %g %g%s\"%s/>\n", v.Point1.X(), v.Point1.Y(),
			v.Point2.X(), v.Point2.Y(), v.Point3.X(), v.Point3.Y(), closeIf(v.IsFilled()), paint(v))
	case *model.Path:
		rule := "nonzero"
		if v.Geometry.FillRule == model.FillEvenOdd {
			rule = "evenodd"
		}
		r.wf("  <path d=\"%s\" fill-rule=\"%s\"%s/>\n", pathData(v.Geometry), rule, paint(v))
	case *model.Text:
		r.text(v)
	case *model.Image:
		r.image(v)
	default:
		r.polylines(s)
	}
}

func closeIf(c bool) string {
	if c {
		return " Z"
	}
	return ""
}

func (r *SVGRenderer) polylines(s model.Shape) {
	var d strings.Builder
	for _, f := range figuresOf(s) {
		if len(f.pts) < 2 {
			continue
		}
		fmt.Fprintf(&d, "M%g %g", f.pts[0].X, f.pts[0].Y)
		for _, p := range f.pts[1:] {
			fmt.Fprintf(&d, " L%g %g", p.X, p.Y)
		}
		d.WriteString(closeIf(f.closed))
	}
	if d.Len() > 0 {
		r.wf("  <path d=\"%s\"%s/>\n", d.String(), paint(s))
	}
}

// pathData writes the geometry with native SVG segments.
func pathData(g *model.PathGeometry) string {
	var d strings.Builder
	for _, f := range g.Figures.All() {
		fmt.Fprintf(&d, "M%g %g", f.StartPoint.X(), f.StartPoint.Y())
		for _, seg := range f.Segments.All() {
			switch v := seg.(type) {
			case *model.LineSegment:
				fmt.Fprintf(&d, " L%g %g", v.Point.X(), v.Point.Y())
			case *model.ArcSegment:
				fmt.Fprintf(&d, " A%g %g %g %d %d %g %g", v.Width, v.Height, v.RotationAngle,
					flag(v.IsLargeArc), flag(v.Clockwise), v.Point.X(), v.Point.Y())
			case *model.CubicBezierSegment:
				fmt.Fprintf(&d, " C%g %g %g %g %g %g", v.Point1.X(), v.Point1.Y(), v.Point2.X(), v.Point2.Y(), v.Point3.X(), v.Point3.Y())
			case *model.QuadraticBezierSegment:
				fmt.Fprintf(&d, " Q%g %g %g %g", v.Point1.X(), v.Point1.Y(), v.Point2.X(), v.Point2.Y())
			case *model.PolySegment:
				cmd := map[model.SegmentKind]string{model.SegPolyLine: "L", model.SegPolyCubicBezier: "C", model.SegPolyQuadraticBezier: "Q"}[v.Kind]
				for i, p := range v.Points.All() {
					if i == 0 {
						fmt.Fprintf(&d, " %s", cmd)
					}
					fmt.Fprintf(&d, " %g %g", p.X(), p.Y())
				}
			}
		}
		d.WriteString(closeIf(f.IsClosed))
		d.WriteString(" ")
	}
	return strings.TrimSpace(d.String())
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *SVGRenderer) text(t *model.Text) {
	s := t.Bound()
	if s == "" {
		return
	}
	st := styleOf(t)
	size := fontSize(st)
	b := t.Rect()
	o := textOrigin(b, 0, size, st)
	anchor, x := "start", b.Left()
	switch st.Text.HAlign {
	case model.TextCenter:
		anchor, x = "middle", b.Center().X
	case model.TextRight:
		anchor, x = "end", b.Right()
	}
	font := st.Text.FontName
	if font == "" {
		font = "Helvetica, Arial, sans-serif"
	}
	r.wf("  <text x=\"%g\" y=\"%g\" text-anchor=\"%s\" font-family=\"%s\" font-size=\"%g\" fill=\"%s\">%s</text>\n",
		x, o.Y, anchor, escAttr(font), size, svgColor(st.Stroke), escText(s))
}

func (r *SVGRenderer) image(img *model.Image) {
	if r.images == nil {
		return
	}
	data, ok := r.images.GetImage(img.Key())
	if !ok {
		return
	}
	b := img.Rect()
	r.wf("  <image x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" preserveAspectRatio=\"none\" href=\"data:%s;base64,%s\"/>\n",
		b.X, b.Y, b.W, b.H, http.DetectContentType(data), base64.StdEncoding.EncodeToString(data))
}

// WriteSVG renders c as one SVG document.
func WriteSVG(w io.Writer, c *model.Container, images *model.ImageCache, opt SVGOptions) error {
	if c == nil {
		return fmt.Errorf("container is nil")
	}
	dpi := opt.DPI
	if dpi <= 0 {
		dpi = 96
	}
	width, height := c.EffectiveWidth(), c.EffectiveHeight()
	scale := float64(dpi) / 72.0
	pxW := int(math.Round(width * scale))
	pxH := int(math.Round(height * scale))

	var buf bytes.Buffer
	r := NewSVGRenderer(&buf, images)
	r.wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	r.wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %g %g\">\n", pxW, pxH, width, height)
	render.Present(r, c, render.PrintableOnly())
	r.wf("</svg>\n")
	if r.err != nil {
		return fmt.Errorf("build svg: %w", r.err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// ExportSVGPages writes every page of p as page-<n>.svg under outDir.
func ExportSVGPages(p *model.Project, outDir string, opt SVGOptions) error {
	if p == nil {
		return fmt.Errorf("project is nil")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	for i, pg := range pages(p) {
		var buf bytes.Buffer
		if err := WriteSVG(&buf, pg, p.Images(), opt); err != nil {
			return err
		}
		name := filepath.Join(outDir, fmt.Sprintf("page-%d.svg", i+1))
		if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}
	return nil
}

func svgColor(c model.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escAttr(s string) string {
	return strings.NewReplacer("&", "&amp;", "\"", "&quot;", "<", "&lt;", "\n", " ", "\r", "").Replace(s)
}

func escText(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

var _ render.Renderer = (*SVGRenderer)(nil)
