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
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"core2d/internal/geom"
	"core2d/internal/model"
	"core2d/internal/render"
)

// PNGOptions controls raster export. Scale maps document units to pixels.
type PNGOptions struct {
	Scale float64
}

// PNGRenderer rasterizes shapes into an RGBA image. Fills use the nonzero
// rule; strokes are drawn as one quad per segment.
type PNGRenderer struct {
	img    *image.RGBA
	ras    *vector.Rasterizer
	scale  float64
	images *model.ImageCache
}

func NewPNGRenderer(img *image.RGBA, scale float64, images *model.ImageCache) *PNGRenderer {
	b := img.Bounds()
	if scale <= 0 {
		scale = 1
	}
	return &PNGRenderer{img: img, ras: vector.NewRasterizer(b.Dx(), b.Dy()), scale: scale, images: images}
}

// Image returns the target.
func (r *PNGRenderer) Image() *image.RGBA { return r.img }

func (r *PNGRenderer) Background(c model.Color, w, h float64) {
	if c.A == 0 {
		return
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(nrgba(c)), image.Point{}, draw.Over)
}

func (r *PNGRenderer) pt(p geom.Point2) (float32, float32) {
	return float32(p.X * r.scale), float32(p.Y * r.scale)
}

func (r *PNGRenderer) begin() {
	b := r.img.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
	r.ras.DrawOp = draw.Over
}

func (r *PNGRenderer) flush(c model.Color) {
	r.ras.Draw(r.img, r.img.Bounds(), image.NewUniform(nrgba(c)), image.Point{})
}

func (r *PNGRenderer) Draw(s model.Shape) {
	switch v := s.(type) {
	case *model.Point:
		return
	case *model.Text:
		r.text(v)
		return
	case *model.Image:
		r.image(v)
	}
	st := styleOf(s)
	figs := figuresOf(s)
	if _, isImage := s.(*model.Image); filled(s) && !isImage {
		r.begin()
		n := 0
		for _, f := range figs {
			if !f.filled || len(f.pts) < 3 {
				continue
			}
			r.ras.MoveTo(r.pt(f.pts[0]))
			for _, p := range f.pts[1:] {
				r.ras.LineTo(r.pt(p))
			}
			r.ras.ClosePath()
			n++
		}
		if n > 0 {
			r.flush(st.Fill)
		}
	}
	if stroked(s) {
		r.begin()
		half := st.Thickness / 2
		if fixedStroke(s) {
			half /= r.scale
		}
		n := 0
		for _, f := range figs {
			pts := f.pts
			if f.closed && len(pts) > 2 {
				pts = append(pts[:len(pts):len(pts)], pts[0])
			}
			for i := 1; i < len(pts); i++ {
				if r.quad(pts[i-1], pts[i], half) {
					n++
				}
			}
		}
		if n > 0 {
			r.flush(st.Stroke)
		}
	}
}

// quad adds the rectangle of width 2*half around segment ab.
func (r *PNGRenderer) quad(a, b geom.Point2, half float64) bool {
	d := b.Sub(a)
	l := math.Hypot(d.X, d.Y)
	if l == 0 {
		return false
	}
	n := geom.Pt(-d.Y/l*half, d.X/l*half)
	r.ras.MoveTo(r.pt(a.Add(n)))
	r.ras.LineTo(r.pt(b.Add(n)))
	r.ras.LineTo(r.pt(b.Sub(n)))
	r.ras.LineTo(r.pt(a.Sub(n)))
	r.ras.ClosePath()
	return true
}

func (r *PNGRenderer) text(t *model.Text) {
	s := t.Bound()
	if s == "" {
		return
	}
	st := styleOf(t)
	d := font.Drawer{Dst: r.img, Src: image.NewUniform(nrgba(st.Stroke)), Face: basicfont.Face7x13}
	tw := float64(d.MeasureString(s)) / 64 / r.scale
	o := textOrigin(t.Rect(), tw, 13/r.scale, st)
	x, y := r.pt(o)
	d.Dot = fixed.P(int(x), int(y))
	d.DrawString(s)
}

func (r *PNGRenderer) image(img *model.Image) {
	if r.images == nil {
		return
	}
	data, ok := r.images.GetImage(img.Key())
	if !ok {
		return
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return
	}
	b := img.Rect()
	x0, y0 := r.pt(b.Min())
	x1, y1 := r.pt(b.Max())
	dr := image.Rect(int(x0), int(y0), int(math.Ceil(float64(x1))), int(math.Ceil(float64(y1))))
	xdraw.BiLinear.Scale(r.img, dr, src, src.Bounds(), draw.Over, nil)
}

// RenderPNG rasterizes c at opt.Scale.
func RenderPNG(c *model.Container, images *model.ImageCache, opt PNGOptions) (*image.RGBA, error) {
	if c == nil {
		return nil, fmt.Errorf("container is nil")
	}
	scale := opt.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round(c.EffectiveWidth() * scale))
	h := int(math.Round(c.EffectiveHeight() * scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("container %q has no size", c.Name)
	}
	r := NewPNGRenderer(image.NewRGBA(image.Rect(0, 0, w, h)), scale, images)
	render.Present(r, c, render.PrintableOnly())
	return r.Image(), nil
}

// WritePNG rasterizes c and encodes it as PNG.
func WritePNG(w io.Writer, c *model.Container, images *model.ImageCache, opt PNGOptions) error {
	img, err := RenderPNG(c, images, opt)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

var _ render.Renderer = (*PNGRenderer)(nil)

// ExportPNGPages writes every page of p as page-<n>.png under outDir.
func ExportPNGPages(p *model.Project, outDir string, opt PNGOptions) error {
	if p == nil {
		return fmt.Errorf("project is nil")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	for i, pg := range pages(p) {
		var buf bytes.Buffer
		if err := WritePNG(&buf, pg, p.Images(), opt); err != nil {
			return err
		}
		name := filepath.Join(outDir, fmt.Sprintf("page-%d.png", i+1))
		if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
	}
	return nil
}
