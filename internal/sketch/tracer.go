// Package sketch implements the draw/pan/view interaction state machine
// for tracing lot boundaries over the site plan.
package sketch

import "terranova/pkg/geometry"

// Mode is the current interaction tool. Transitions are operator
// triggered via the toolbar, never automatic.
type Mode int

const (
	ModeView Mode = iota
	ModePan
	ModeDraw
)

// CloseThreshold is the close-the-loop hit radius around the first
// vertex, in plan units at zoom 1. Callers divide by the current zoom so
// the target keeps a constant screen size.
const CloseThreshold = 2.5

// DragEpsilon is the pointer travel, in pixels, past which a gesture is
// a pan and no longer a click. Keeps a drag in view mode from also
// selecting a lot.
const DragEpsilon = 4.0

// Tracer tracks the interaction mode, the in-progress vertex list, and
// the live cursor position in plan space.
type Tracer struct {
	mode   Mode
	points []geometry.Point2D
	cursor geometry.Point2D
}

// New returns a tracer in view mode.
func New() *Tracer {
	return &Tracer{}
}

// Mode returns the current interaction mode.
func (t *Tracer) Mode() Mode {
	return t.mode
}

// SetMode switches tools. Entering draw discards any in-progress stroke.
func (t *Tracer) SetMode(m Mode) {
	if m == ModeDraw {
		t.points = nil
	}
	t.mode = m
}

// Points returns the in-progress vertex list.
func (t *Tracer) Points() []geometry.Point2D {
	return t.points
}

// Cursor returns the last reported cursor position in plan space.
func (t *Tracer) Cursor() geometry.Point2D {
	return t.cursor
}

// MoveCursor records the pointer position, already transformed into plan
// space by the caller.
func (t *Tracer) MoveCursor(p geometry.Point2D) {
	t.cursor = p
}

// NearFirstPoint reports whether the cursor is within the
// zoom-compensated close threshold of the first vertex. Always false
// with fewer than 3 points: a short stroke can never close.
func (t *Tracer) NearFirstPoint(zoom float64) bool {
	if t.mode != ModeDraw || len(t.points) <= 2 {
		return false
	}
	return t.cursor.Distance(t.points[0]) < CloseThreshold/zoom
}

// Click handles a pointer click at a plan-space position while drawing.
// A click near the first vertex (with at least 3 points down) finishes
// the stroke: the completed vertex list is returned with closed=true,
// the tracer returns to view mode, and the stroke is cleared. Any other
// click appends a vertex.
func (t *Tracer) Click(p geometry.Point2D, zoom float64) (boundary []geometry.Point2D, closed bool) {
	if t.mode != ModeDraw {
		return nil, false
	}

	t.cursor = p
	if t.NearFirstPoint(zoom) {
		boundary = t.points
		t.points = nil
		t.mode = ModeView
		return boundary, true
	}

	t.points = append(t.points, p)
	return nil, false
}

// UndoVertex removes the most recently appended vertex without changing
// mode. No-op on an empty stroke.
func (t *Tracer) UndoVertex() {
	if len(t.points) == 0 {
		return
	}
	t.points = t.points[:len(t.points)-1]
}

// Cancel discards the in-progress stroke and returns to view mode.
func (t *Tracer) Cancel() {
	t.points = nil
	t.mode = ModeView
}
