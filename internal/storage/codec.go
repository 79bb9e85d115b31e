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

	"core2d/internal/model"
	"core2d/internal/seq"
)

// Encode writes p as indented JSON. Points and styles are emitted once in
// tables and referenced by ID, so shared connectors survive a round trip.
// Encoding the result of Decode yields the same bytes.
func Encode(p *model.Project) ([]byte, error) {
	if p == nil {
		return nil, errors.New("project is nil")
	}
	e := newEncoder(p)
	dto := e.project(p)
	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal project: %w", err)
	}
	return append(data, '\n'), nil
}

type encoder struct {
	styles     []styleDTO
	styleIDs   map[*model.ShapeStyle]string
	points     []pointDTO
	pointIDs   map[*model.Point]string
	records    map[*model.Record]string
	containers map[*model.Container]string
	databases  map[*model.Database]string
}

func newEncoder(p *model.Project) *encoder {
	e := &encoder{
		styles:     []styleDTO{},
		styleIDs:   map[*model.ShapeStyle]string{},
		points:     []pointDTO{},
		pointIDs:   map[*model.Point]string{},
		records:    map[*model.Record]string{},
		containers: map[*model.Container]string{},
		databases:  map[*model.Database]string{},
	}
	// only records, templates and pages reachable from the project can be
	// referenced; anything else would not decode
	for _, db := range p.Databases.All() {
		e.databases[db] = db.ID
		for _, r := range db.Records.All() {
			e.records[r] = r.ID
		}
	}
	for _, t := range p.Templates.All() {
		e.containers[t] = t.ID
	}
	for _, d := range p.Documents.All() {
		for _, pg := range d.Pages.All() {
			e.containers[pg] = pg.ID
		}
	}
	return e
}

func (e *encoder) project(p *model.Project) projectDTO {
	dto := projectDTO{
		Format:    FormatVersion,
		ID:        p.ID,
		Name:      p.Name,
		Options:   encodeOptions(p.Options),
		StyleLibs: []styleLibraryDTO{},
		GroupLibs: []groupLibraryDTO{},
		Databases: []databaseDTO{},
		Templates: []containerDTO{},
		Documents: []documentDTO{},
	}
	for _, l := range p.StyleLibraries.All() {
		ld := styleLibraryDTO{ID: l.ID, Name: l.Name, Styles: []string{}}
		for _, s := range l.Items.All() {
			ld.Styles = append(ld.Styles, e.style(s))
		}
		if l.Selected != nil && seq.Contains(l.Items, l.Selected) {
			ld.Selected = e.style(l.Selected)
		}
		dto.StyleLibs = append(dto.StyleLibs, ld)
	}
	for _, l := range p.GroupLibraries.All() {
		ld := groupLibraryDTO{ID: l.ID, Name: l.Name, Groups: []shapeDTO{}}
		for _, g := range l.Items.All() {
			ld.Groups = append(ld.Groups, e.shape(g))
		}
		if l.Selected != nil && seq.Contains(l.Items, l.Selected) {
			ld.Selected = l.Selected.ID()
		}
		dto.GroupLibs = append(dto.GroupLibs, ld)
	}
	for _, db := range p.Databases.All() {
		dto.Databases = append(dto.Databases, encodeDatabase(db))
	}
	for _, t := range p.Templates.All() {
		dto.Templates = append(dto.Templates, e.container(t))
	}
	for _, d := range p.Documents.All() {
		dd := documentDTO{ID: d.ID, Name: d.Name, Pages: []containerDTO{}}
		for _, pg := range d.Pages.All() {
			dd.Pages = append(dd.Pages, e.container(pg))
		}
		dto.Documents = append(dto.Documents, dd)
	}
	if p.CurrentDocument != nil && seq.Contains(p.Documents, p.CurrentDocument) {
		dto.Current.Document = p.CurrentDocument.ID
	}
	dto.Current.Container = e.containers[p.CurrentContainer]
	if p.CurrentTemplate != nil && seq.Contains(p.Templates, p.CurrentTemplate) {
		dto.Current.Template = p.CurrentTemplate.ID
	}
	if p.CurrentStyleLibrary != nil && seq.Contains(p.StyleLibraries, p.CurrentStyleLibrary) {
		dto.Current.StyleLibrary = p.CurrentStyleLibrary.ID
	}
	if p.CurrentGroupLibrary != nil && seq.Contains(p.GroupLibraries, p.CurrentGroupLibrary) {
		dto.Current.GroupLibrary = p.CurrentGroupLibrary.ID
	}
	dto.Current.Database = e.databases[p.CurrentDatabase]
	dto.Styles = e.styles
	dto.Points = e.points
	return dto
}

func encodeOptions(o *model.Options) optionsDTO {
	if o == nil {
		o = model.DefaultOptions()
	}
	return optionsDTO{
		SnapToGrid:       o.SnapToGrid,
		SnapX:            o.SnapX,
		SnapY:            o.SnapY,
		HitThreshold:     o.HitThreshold,
		MoveMode:         o.MoveMode.String(),
		DefaultIsStroked: o.DefaultIsStroked,
		DefaultIsFilled:  o.DefaultIsFilled,
		DefaultIsClosed:  o.DefaultIsClosed,
		DefaultFillRule:  o.DefaultFillRule.String(),
		TryToConnect:     o.TryToConnect,
	}
}

func encodeDatabase(db *model.Database) databaseDTO {
	dd := databaseDTO{ID: db.ID, Name: db.Name, IdColumnName: db.IdColumnName, Columns: []columnDTO{}, Records: []recordDTO{}}
	for _, c := range db.Columns.All() {
		dd.Columns = append(dd.Columns, columnDTO{ID: c.ID, Name: c.Name, IsVisible: c.IsVisible})
	}
	for _, r := range db.Records.All() {
		rd := recordDTO{ID: r.ID, Values: []string{}}
		for _, v := range r.Values.All() {
			rd.Values = append(rd.Values, v.Content)
		}
		dd.Records = append(dd.Records, rd)
	}
	return dd
}

func (e *encoder) style(s *model.ShapeStyle) string {
	if s == nil {
		return ""
	}
	if id, ok := e.styleIDs[s]; ok {
		return id
	}
	e.styleIDs[s] = s.ID
	e.styles = append(e.styles, styleDTO{
		ID:        s.ID,
		Name:      s.Name,
		Stroke:    s.Stroke.Hex(),
		Fill:      s.Fill.Hex(),
		Thickness: s.Thickness,
		LineCap:   uint8(s.LineCap),
		Dashes:    s.Dashes,
		DashOff:   s.DashOff,
		Text: textStyleDTO{
			FontName: s.Text.FontName,
			FontFile: s.Text.FontFile,
			FontSize: s.Text.FontSize,
			HAlign:   uint8(s.Text.HAlign),
			VAlign:   uint8(s.Text.VAlign),
		},
	})
	return s.ID
}

func (e *encoder) point(p *model.Point) string {
	if p == nil {
		return ""
	}
	if id, ok := e.pointIDs[p]; ok {
		return id
	}
	e.pointIDs[p] = p.ID()
	e.points = append(e.points, pointDTO{
		ID:         p.ID(),
		X:          p.X(),
		Y:          p.Y(),
		Name:       p.Name(),
		State:      uint32(p.State()),
		Style:      e.style(p.Style()),
		Alignment:  int(p.Alignment()),
		Owner:      p.Owner(),
		Properties: encodeProperties(p.Data().Properties),
		Record:     e.records[p.Data().Record],
	})
	return p.ID()
}

func (e *encoder) pointRefs(pts ...*model.Point) []string {
	out := make([]string, 0, len(pts))
	for _, p := range pts {
		out = append(out, e.point(p))
	}
	return out
}

func encodeProperties(props seq.Seq[*model.Property]) []propertyDTO {
	if props.Len() == 0 {
		return nil
	}
	out := make([]propertyDTO, 0, props.Len())
	for _, p := range props.All() {
		out = append(out, propertyDTO{Name: p.Name, Value: p.Value})
	}
	return out
}

func (e *encoder) shape(s model.Shape) shapeDTO {
	if p, ok := s.(*model.Point); ok {
		return shapeDTO{Kind: model.KindPoint.String(), ID: e.point(p)}
	}
	dto := shapeDTO{
		Kind:       s.Kind().String(),
		ID:         s.ID(),
		Name:       s.Name(),
		State:      uint32(s.State()),
		Style:      e.style(s.Style()),
		Stroked:    s.IsStroked(),
		Filled:     s.IsFilled(),
		Properties: encodeProperties(s.Data().Properties),
		Record:     e.records[s.Data().Record],
	}
	switch v := s.(type) {
	case *model.Line:
		dto.Points = e.pointRefs(v.Start, v.End)
	case *model.Rectangle:
		dto.Points = e.pointRefs(v.TopLeft, v.BottomRight)
	case *model.Ellipse:
		dto.Points = e.pointRefs(v.TopLeft, v.BottomRight)
	case *model.Arc:
		dto.Points = e.pointRefs(v.Point1, v.Point2, v.Point3, v.Point4)
	case *model.CubicBezier:
		dto.Points = e.pointRefs(v.Point1, v.Point2, v.Point3, v.Point4)
	case *model.QuadraticBezier:
		dto.Points = e.pointRefs(v.Point1, v.Point2, v.Point3)
	case *model.Text:
		dto.Points = e.pointRefs(v.TopLeft, v.BottomRight)
		dto.Text = v.Text()
	case *model.Image:
		dto.Points = e.pointRefs(v.TopLeft, v.BottomRight)
		dto.Key = v.Key()
	case *model.Path:
		dto.Geometry = e.geometry(v.Geometry)
	case *model.Group:
		dto.Shapes = []shapeDTO{}
		for _, c := range v.Shapes.All() {
			dto.Shapes = append(dto.Shapes, e.shape(c))
		}
		if v.Connectors.Len() > 0 {
			dto.Connectors = e.pointRefs(v.Connectors.Items()...)
		}
	}
	return dto
}

func (e *encoder) geometry(g *model.PathGeometry) *geometryDTO {
	if g == nil {
		return nil
	}
	dto := &geometryDTO{FillRule: g.FillRule.String(), Figures: []figureDTO{}}
	for _, f := range g.Figures.All() {
		fd := figureDTO{Start: e.point(f.StartPoint), IsClosed: f.IsClosed, IsFilled: f.IsFilled, Segments: []segmentDTO{}}
		for _, s := range f.Segments.All() {
			sd := segmentDTO{Kind: s.SegmentKind().String(), Stroked: s.IsStroked(), Points: e.pointRefs(s.GetPoints(nil)...)}
			if a, ok := s.(*model.ArcSegment); ok {
				sd.Width, sd.Height, sd.RotationAngle = a.Width, a.Height, a.RotationAngle
				sd.IsLargeArc, sd.Clockwise = a.IsLargeArc, a.Clockwise
			}
			fd.Segments = append(fd.Segments, sd)
		}
		dto.Figures = append(dto.Figures, fd)
	}
	return dto
}

func (e *encoder) container(c *model.Container) containerDTO {
	dto := containerDTO{
		ID:             c.ID,
		Name:           c.Name,
		Width:          c.Width,
		Height:         c.Height,
		Background:     c.Background.Hex(),
		Template:       e.containers[c.Template],
		Layers:         []layerDTO{},
		Properties:     encodeProperties(c.Properties),
		Record:         e.records[c.Record],
		IsGridEnabled:  c.IsGridEnabled,
		GridCellWidth:  c.GridCellWidth,
		GridCellHeight: c.GridCellHeight,
	}
	for _, l := range c.Layers.All() {
		ld := layerDTO{ID: l.ID, Name: l.Name, Visible: l.IsVisible(), Shapes: []shapeDTO{}}
		for _, s := range l.Shapes().All() {
			ld.Shapes = append(ld.Shapes, e.shape(s))
		}
		dto.Layers = append(dto.Layers, ld)
	}
	if c.CurrentLayer != nil && seq.Contains(c.Layers, c.CurrentLayer) {
		dto.CurrentLayer = c.CurrentLayer.ID
	}
	return dto
}

// Decode rebuilds a project from Encode output. The result has a fresh
// history and an empty image cache.
func Decode(data []byte) (*model.Project, error) {
	var dto projectDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if dto.Format > FormatVersion {
		return nil, fmt.Errorf("unsupported project format %d", dto.Format)
	}
	d := &decoder{
		styles:     map[string]*model.ShapeStyle{},
		points:     map[string]*model.Point{},
		records:    map[string]*model.Record{},
		containers: map[string]*model.Container{},
	}
	return d.project(dto)
}

type decoder struct {
	styles     map[string]*model.ShapeStyle
	points     map[string]*model.Point
	owners     []func()
	records    map[string]*model.Record
	containers map[string]*model.Container
}

func (d *decoder) project(dto projectDTO) (*model.Project, error) {
	p := model.NewEmptyProject(dto.Name)
	p.ID = dto.ID
	opts, err := decodeOptions(dto.Options)
	if err != nil {
		return nil, err
	}
	p.Options = opts

	for _, sd := range dto.Styles {
		s, err := decodeStyle(sd)
		if err != nil {
			return nil, err
		}
		d.styles[sd.ID] = s
	}
	dbs := map[string]*model.Database{}
	for _, dd := range dto.Databases {
		db := d.database(dd)
		dbs[db.ID] = db
		p.Databases = p.Databases.Append(db)
	}
	for _, pd := range dto.Points {
		if err := d.point(pd); err != nil {
			return nil, err
		}
	}

	for _, ld := range dto.StyleLibs {
		var items []*model.ShapeStyle
		for _, id := range ld.Styles {
			s, err := d.style(id)
			if err != nil {
				return nil, err
			}
			items = append(items, s)
		}
		l := model.NewLibrary(ld.Name, items...)
		l.ID = ld.ID
		l.Selected = d.styles[ld.Selected]
		p.StyleLibraries = p.StyleLibraries.Append(l)
	}
	for _, ld := range dto.GroupLibs {
		var items []*model.Group
		var selected *model.Group
		for _, gd := range ld.Groups {
			s, err := d.shape(gd)
			if err != nil {
				return nil, err
			}
			g, ok := s.(*model.Group)
			if !ok {
				return nil, fmt.Errorf("group library %s holds a %s", ld.Name, gd.Kind)
			}
			items = append(items, g)
			if g.ID() == ld.Selected {
				selected = g
			}
		}
		l := model.NewLibrary(ld.Name, items...)
		l.ID = ld.ID
		l.Selected = selected
		p.GroupLibraries = p.GroupLibraries.Append(l)
	}

	// templates first so pages can resolve them
	for _, cd := range dto.Templates {
		t := model.NewTemplate(cd.Name, cd.Width, cd.Height)
		d.containers[cd.ID] = t
		p.Templates = p.Templates.Append(t)
	}
	for i, cd := range dto.Templates {
		if err := d.fill(p.Templates.At(i), cd); err != nil {
			return nil, err
		}
	}
	for _, dd := range dto.Documents {
		doc := model.NewDocument(dd.Name)
		doc.ID = dd.ID
		for _, cd := range dd.Pages {
			page := model.NewPage(cd.Name, nil)
			d.containers[cd.ID] = page
			if err := d.fill(page, cd); err != nil {
				return nil, err
			}
			doc.Pages = doc.Pages.Append(page)
		}
		p.Documents = p.Documents.Append(doc)
		if dd.ID == dto.Current.Document {
			p.CurrentDocument = doc
		}
	}

	p.CurrentContainer = d.containers[dto.Current.Container]
	if t := d.containers[dto.Current.Template]; t != nil && t.Kind == model.TemplateContainer {
		p.CurrentTemplate = t
	}
	for _, l := range p.StyleLibraries.All() {
		if l.ID == dto.Current.StyleLibrary {
			p.CurrentStyleLibrary = l
		}
	}
	for _, l := range p.GroupLibraries.All() {
		if l.ID == dto.Current.GroupLibrary {
			p.CurrentGroupLibrary = l
		}
	}
	p.CurrentDatabase = dbs[dto.Current.Database]

	// constructors adopt unowned points; the persisted owners win
	for _, f := range d.owners {
		f()
	}
	return p, nil
}

func decodeOptions(dto optionsDTO) (*model.Options, error) {
	mode, ok := model.ParseMoveMode(dto.MoveMode)
	if !ok {
		return nil, fmt.Errorf("invalid move mode %q", dto.MoveMode)
	}
	rule, ok := model.ParseFillRule(dto.DefaultFillRule)
	if !ok {
		return nil, fmt.Errorf("invalid fill rule %q", dto.DefaultFillRule)
	}
	return &model.Options{
		SnapToGrid:       dto.SnapToGrid,
		SnapX:            dto.SnapX,
		SnapY:            dto.SnapY,
		HitThreshold:     dto.HitThreshold,
		MoveMode:         mode,
		DefaultIsStroked: dto.DefaultIsStroked,
		DefaultIsFilled:  dto.DefaultIsFilled,
		DefaultIsClosed:  dto.DefaultIsClosed,
		DefaultFillRule:  rule,
		TryToConnect:     dto.TryToConnect,
	}, nil
}

func decodeStyle(dto styleDTO) (*model.ShapeStyle, error) {
	stroke, err := model.ParseColor(dto.Stroke)
	if err != nil {
		return nil, fmt.Errorf("style %s stroke: %w", dto.ID, err)
	}
	fill, err := model.ParseColor(dto.Fill)
	if err != nil {
		return nil, fmt.Errorf("style %s fill: %w", dto.ID, err)
	}
	return &model.ShapeStyle{
		ID:        dto.ID,
		Name:      dto.Name,
		Stroke:    stroke,
		Fill:      fill,
		Thickness: dto.Thickness,
		LineCap:   model.LineCap(dto.LineCap),
		Dashes:    dto.Dashes,
		DashOff:   dto.DashOff,
		Text: model.TextStyle{
			FontName: dto.Text.FontName,
			FontFile: dto.Text.FontFile,
			FontSize: dto.Text.FontSize,
			HAlign:   model.TextHAlignment(dto.Text.HAlign),
			VAlign:   model.TextVAlignment(dto.Text.VAlign),
		},
	}, nil
}

func (d *decoder) database(dto databaseDTO) *model.Database {
	db := model.NewDatabase(dto.Name)
	db.ID = dto.ID
	db.IdColumnName = dto.IdColumnName
	for _, cd := range dto.Columns {
		db.Columns = db.Columns.Append(&model.Column{ID: cd.ID, Name: cd.Name, IsVisible: cd.IsVisible, Owner: db})
	}
	for _, rd := range dto.Records {
		r := db.NewRecord(rd.Values...)
		r.ID = rd.ID
		db.Records = db.Records.Append(r)
		d.records[r.ID] = r
	}
	return db
}

func (d *decoder) style(id string) (*model.ShapeStyle, error) {
	if id == "" {
		return nil, nil
	}
	s, ok := d.styles[id]
	if !ok {
		return nil, fmt.Errorf("unknown style %s", id)
	}
	return s, nil
}

func (d *decoder) ref(id string) (*model.Point, error) {
	p, ok := d.points[id]
	if !ok {
		return nil, fmt.Errorf("unknown point %s", id)
	}
	return p, nil
}

func (d *decoder) refs(ids []string, want int) ([]*model.Point, error) {
	if want >= 0 && len(ids) != want {
		return nil, fmt.Errorf("expected %d points, got %d", want, len(ids))
	}
	out := make([]*model.Point, len(ids))
	for i, id := range ids {
		p, err := d.ref(id)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func decodeProperties(dto []propertyDTO) seq.Seq[*model.Property] {
	var out seq.Seq[*model.Property]
	for _, p := range dto {
		out = out.Append(&model.Property{Name: p.Name, Value: p.Value})
	}
	return out
}

func (d *decoder) point(dto pointDTO) error {
	if _, ok := d.points[dto.ID]; ok {
		return fmt.Errorf("duplicate point %s", dto.ID)
	}
	style, err := d.style(dto.Style)
	if err != nil {
		return err
	}
	p := model.NewPoint(dto.X, dto.Y)
	model.RestoreID(p, dto.ID)
	p.SetName(dto.Name)
	p.SetState(model.StateFlags(dto.State))
	p.SetStyle(style)
	p.SetAlignment(model.Alignment(dto.Alignment))
	p.Data().Properties = decodeProperties(dto.Properties)
	p.Data().Record = d.records[dto.Record]
	owner := dto.Owner
	d.owners = append(d.owners, func() { p.SetOwner(owner) })
	d.points[dto.ID] = p
	return nil
}

var pointCounts = map[model.Kind]int{
	model.KindLine:            2,
	model.KindRectangle:       2,
	model.KindEllipse:         2,
	model.KindArc:             4,
	model.KindCubicBezier:     4,
	model.KindQuadraticBezier: 3,
	model.KindText:            2,
	model.KindImage:           2,
}

func (d *decoder) shape(dto shapeDTO) (model.Shape, error) {
	kind, ok := model.ParseKind(dto.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown shape kind %q", dto.Kind)
	}
	if kind == model.KindPoint {
		p, err := d.ref(dto.ID)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	style, err := d.style(dto.Style)
	if err != nil {
		return nil, err
	}
	var pts []*model.Point
	if n, ok := pointCounts[kind]; ok {
		if pts, err = d.refs(dto.Points, n); err != nil {
			return nil, fmt.Errorf("%s %s: %w", dto.Kind, dto.ID, err)
		}
	}

	var s model.Shape
	switch kind {
	case model.KindLine:
		s = model.NewLine(pts[0], pts[1], style, dto.Stroked)
	case model.KindRectangle:
		r := model.NewRectangle(0, 0, 0, 0, style, dto.Stroked, dto.Filled)
		r.TopLeft, r.BottomRight = pts[0], pts[1]
		s = r
	case model.KindEllipse:
		e := model.NewEllipse(0, 0, 0, 0, style, dto.Stroked, dto.Filled)
		e.TopLeft, e.BottomRight = pts[0], pts[1]
		s = e
	case model.KindArc:
		a := model.NewArc(0, 0, 0, 0, 0, 0, 0, 0, style, dto.Stroked, dto.Filled)
		a.Point1, a.Point2, a.Point3, a.Point4 = pts[0], pts[1], pts[2], pts[3]
		s = a
	case model.KindCubicBezier:
		b := model.NewCubicBezier(0, 0, 0, 0, 0, 0, 0, 0, style, dto.Stroked, dto.Filled)
		b.Point1, b.Point2, b.Point3, b.Point4 = pts[0], pts[1], pts[2], pts[3]
		s = b
	case model.KindQuadraticBezier:
		q := model.NewQuadraticBezier(0, 0, 0, 0, 0, 0, style, dto.Stroked, dto.Filled)
		q.Point1, q.Point2, q.Point3 = pts[0], pts[1], pts[2]
		s = q
	case model.KindText:
		t := model.NewText(0, 0, 0, 0, style, dto.Text, dto.Stroked)
		t.TopLeft, t.BottomRight = pts[0], pts[1]
		s = t
	case model.KindImage:
		i := model.NewImage(0, 0, 0, 0, style, dto.Key)
		i.TopLeft, i.BottomRight = pts[0], pts[1]
		s = i
	case model.KindPath:
		g, err := d.geometry(dto.Geometry)
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", dto.ID, err)
		}
		s = model.NewPath(g, style, dto.Stroked, dto.Filled)
	case model.KindGroup:
		g := model.NewGroup(dto.Name)
		for _, cd := range dto.Shapes {
			c, err := d.shape(cd)
			if err != nil {
				return nil, err
			}
			g.Shapes = g.Shapes.Append(c)
		}
		conns, err := d.refs(dto.Connectors, -1)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", dto.ID, err)
		}
		g.Connectors = seq.Of(conns...)
		s = g
	default:
		return nil, fmt.Errorf("unsupported shape kind %q", dto.Kind)
	}

	model.RestoreID(s, dto.ID)
	s.SetName(dto.Name)
	s.SetState(model.StateFlags(dto.State))
	s.SetStyle(style)
	s.SetStroked(dto.Stroked)
	s.SetFilled(dto.Filled)
	s.Data().Properties = decodeProperties(dto.Properties)
	s.Data().Record = d.records[dto.Record]
	return s, nil
}

func (d *decoder) geometry(dto *geometryDTO) (*model.PathGeometry, error) {
	if dto == nil {
		return nil, errors.New("missing geometry")
	}
	rule, ok := model.ParseFillRule(dto.FillRule)
	if !ok {
		return nil, fmt.Errorf("invalid fill rule %q", dto.FillRule)
	}
	g := &model.PathGeometry{FillRule: rule}
	for _, fd := range dto.Figures {
		start, err := d.ref(fd.Start)
		if err != nil {
			return nil, err
		}
		f := &model.PathFigure{StartPoint: start, IsClosed: fd.IsClosed, IsFilled: fd.IsFilled}
		for _, sd := range fd.Segments {
			seg, err := d.segment(sd)
			if err != nil {
				return nil, err
			}
			f.Segments = f.Segments.Append(seg)
		}
		g.Figures = g.Figures.Append(f)
	}
	return g, nil
}

func (d *decoder) segment(dto segmentDTO) (model.PathSegment, error) {
	kind, ok := model.ParseSegmentKind(dto.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown segment kind %q", dto.Kind)
	}
	want := map[model.SegmentKind]int{
		model.SegLine:            1,
		model.SegArc:             1,
		model.SegCubicBezier:     3,
		model.SegQuadraticBezier: 2,
	}
	n, fixed := want[kind]
	if !fixed {
		n = -1
	}
	pts, err := d.refs(dto.Points, n)
	if err != nil {
		return nil, fmt.Errorf("%s segment: %w", dto.Kind, err)
	}
	switch kind {
	case model.SegLine:
		return &model.LineSegment{Point: pts[0], Stroked: dto.Stroked}, nil
	case model.SegArc:
		return &model.ArcSegment{
			Point: pts[0], Width: dto.Width, Height: dto.Height, RotationAngle: dto.RotationAngle,
			IsLargeArc: dto.IsLargeArc, Clockwise: dto.Clockwise, Stroked: dto.Stroked,
		}, nil
	case model.SegCubicBezier:
		return &model.CubicBezierSegment{Point1: pts[0], Point2: pts[1], Point3: pts[2], Stroked: dto.Stroked}, nil
	case model.SegQuadraticBezier:
		return &model.QuadraticBezierSegment{Point1: pts[0], Point2: pts[1], Stroked: dto.Stroked}, nil
	}
	return &model.PolySegment{Kind: kind, Points: seq.Of(pts...), Stroked: dto.Stroked}, nil
}

// fill copies the persisted attributes and layers into c.
func (d *decoder) fill(c *model.Container, dto containerDTO) error {
	bg, err := model.ParseColor(dto.Background)
	if err != nil {
		return fmt.Errorf("container %s background: %w", dto.ID, err)
	}
	c.ID = dto.ID
	c.Width, c.Height = dto.Width, dto.Height
	c.Background = bg
	c.Template = d.containers[dto.Template]
	c.Properties = decodeProperties(dto.Properties)
	c.Record = d.records[dto.Record]
	c.IsGridEnabled = dto.IsGridEnabled
	c.GridCellWidth, c.GridCellHeight = dto.GridCellWidth, dto.GridCellHeight
	c.Layers = seq.Seq[*model.Layer]{}
	c.CurrentLayer = nil
	for _, ld := range dto.Layers {
		l := model.NewLayer(c, ld.Name)
		l.ID = ld.ID
		var shapes []model.Shape
		for _, sd := range ld.Shapes {
			s, err := d.shape(sd)
			if err != nil {
				return fmt.Errorf("layer %s: %w", ld.Name, err)
			}
			shapes = append(shapes, s)
		}
		l.SetShapes(seq.Of(shapes...))
		l.SetVisible(ld.Visible)
		c.Layers = c.Layers.Append(l)
		if ld.ID == dto.CurrentLayer {
			c.CurrentLayer = l
		}
	}
	return nil
}
