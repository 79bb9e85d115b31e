/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"log/slog"

	"core2d/internal/geom"
	"core2d/internal/history"
	"core2d/internal/model"
)

// positions holds exact coordinates for a set of points. Undo of a move
// restores these values instead of applying an inverse delta, so repeated
// undo and redo never drift.
type positions struct {
	points []*model.Point
	xy     []geom.Point2
}

func capture(pts []*model.Point) positions {
	return positions{points: pts, xy: model.Positions(pts)}
}

func (p positions) apply() {
	for i, pt := range p.points {
		pt.SetXY(p.xy[i].X, p.xy[i].Y)
	}
}

func (p positions) equal(o positions) bool {
	if len(p.xy) != len(o.xy) {
		return false
	}
	for i := range p.xy {
		if p.xy[i] != o.xy[i] {
			return false
		}
	}
	return true
}

// recordPoints runs mutate and records the change of pts as one history
// record. It reports whether anything moved.
func (e *Editor) recordPoints(name string, pts []*model.Point, mutate func()) bool {
	if len(pts) == 0 {
		return false
	}
	prev := capture(pts)
	mutate()
	next := capture(pts)
	if prev.equal(next) {
		return false
	}
	history.SnapshotNamed(e.project.History, name, prev, next, positions.apply)
	e.invalidate()
	e.log.Debug(name, slog.Int("points", len(pts)))
	return true
}

// pointsOf returns the distinct points of shapes.
func pointsOf(shapes []model.Shape) []*model.Point {
	var pts []*model.Point
	for _, s := range shapes {
		pts = s.GetPoints(pts)
	}
	return model.DistinctPoints(pts)
}

// moveWithoutHistory translates the unlocked shapes according to the move
// mode and returns the affected points.
func (e *Editor) moveWithoutHistory(shapes []model.Shape, dx, dy float64) {
	shapes = unlocked(shapes)
	switch e.options().MoveMode {
	case model.MoveShape:
		for _, s := range shapes {
			s.Move(dx, dy)
		}
	default:
		for _, p := range pointsOf(shapes) {
			p.Move(dx, dy)
		}
	}
}

// MoveBy translates the unlocked shapes by dx, dy as one undoable edit.
// In point mode every distinct point moves once; in shape mode each shape
// moves itself, leaving foreign connectors alone.
func (e *Editor) MoveBy(shapes []model.Shape, dx, dy float64) bool {
	if !e.loaded() || (dx == 0 && dy == 0) {
		return false
	}
	free := unlocked(shapes)
	return e.recordPoints("move", pointsOf(free), func() { e.moveWithoutHistory(free, dx, dy) })
}

// MoveSelectedBy moves the selection.
func (e *Editor) MoveSelectedBy(dx, dy float64) bool {
	return e.MoveBy(e.Selected(), dx, dy)
}

func (e *Editor) nudge() (float64, float64) {
	o := e.options()
	if o.SnapToGrid {
		return o.SnapX, o.SnapY
	}
	return 1, 1
}

// MoveSelectedUp, MoveSelectedDown, MoveSelectedLeft and MoveSelectedRight
// nudge the selection by one grid step, or one unit without snapping.
func (e *Editor) MoveSelectedUp() bool {
	if !e.loaded() {
		return false
	}
	_, sy := e.nudge()
	return e.MoveSelectedBy(0, -sy)
}

func (e *Editor) MoveSelectedDown() bool {
	if !e.loaded() {
		return false
	}
	_, sy := e.nudge()
	return e.MoveSelectedBy(0, sy)
}

func (e *Editor) MoveSelectedLeft() bool {
	if !e.loaded() {
		return false
	}
	sx, _ := e.nudge()
	return e.MoveSelectedBy(-sx, 0)
}

func (e *Editor) MoveSelectedRight() bool {
	if !e.loaded() {
		return false
	}
	sx, _ := e.nudge()
	return e.MoveSelectedBy(sx, 0)
}

// MoveSession is an interactive drag. Moves during the drag are not recorded;
// Commit records the whole drag as one edit and Cancel restores the start.
type MoveSession struct {
	e      *Editor
	shapes []model.Shape
	start  positions
	done   bool
}

// BeginMove starts a drag of the unlocked shapes.
func (e *Editor) BeginMove(shapes []model.Shape) *MoveSession {
	if !e.loaded() {
		return nil
	}
	free := unlocked(shapes)
	return &MoveSession{e: e, shapes: free, start: capture(pointsOf(free))}
}

// Move translates the dragged shapes by dx, dy relative to their current position.
func (m *MoveSession) Move(dx, dy float64) {
	if m == nil || m.done {
		return
	}
	m.e.moveWithoutHistory(m.shapes, dx, dy)
	m.e.invalidate()
}

// Commit records the drag. It reports whether anything moved.
func (m *MoveSession) Commit() bool {
	if m == nil || m.done {
		return false
	}
	m.done = true
	next := capture(m.start.points)
	if next.equal(m.start) {
		return false
	}
	history.SnapshotNamed(m.e.project.History, "move", m.start, next, positions.apply)
	m.e.invalidate()
	return true
}

// Cancel puts every point back where the drag started.
func (m *MoveSession) Cancel() {
	if m == nil || m.done {
		return
	}
	m.done = true
	m.start.apply()
	m.e.invalidate()
}

// TryToSnap rounds x, y to the grid when grid snapping is on.
func (e *Editor) TryToSnap(x, y float64) (float64, float64) {
	if !e.loaded() || !e.options().SnapToGrid {
		return x, y
	}
	o := e.options()
	return geom.Snap(x, o.SnapX), geom.Snap(y, o.SnapY)
}

// SnapToGuides adjusts a proposed move of shapes by dx, dy so their bounds
// line up with the edges and centers of the other shapes of the layer and of
// the page. It returns the adjusted delta and the guides to draw.
func (e *Editor) SnapToGuides(shapes []model.Shape, dx, dy float64) (float64, float64, []geom.GuideLine) {
	layer := e.CurrentLayer()
	if layer == nil {
		return dx, dy, nil
	}
	b, ok := e.registry.GetBounds(shapes)
	if !ok {
		return dx, dy, nil
	}
	moving := make(map[model.Shape]bool, len(shapes))
	for _, s := range shapes {
		moving[s] = true
	}
	var anchors []geom.Anchor
	if c := e.project.CurrentContainer; c != nil {
		anchors = append(anchors, geom.Anchor{Rect: geom.R(0, 0, c.EffectiveWidth(), c.EffectiveHeight()), Weight: 2})
	}
	for _, s := range layer.Shapes().All() {
		if moving[s] {
			continue
		}
		if r, ok := e.registry.Bounds(s); ok {
			anchors = append(anchors, geom.Anchor{Rect: r, Weight: 1})
		}
	}
	target := geom.R(b.X+dx, b.Y+dy, b.W, b.H)
	snapped, guides := geom.ComputeSmartGuides(target, anchors, geom.SnapOptions{
		Threshold:     geom.Tolerance(e.radius(), e.scale()),
		SnapToEdges:   true,
		SnapToCenters: true,
	})
	return snapped.X - b.X, snapped.Y - b.Y, guides
}
