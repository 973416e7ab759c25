// Package viewport tracks the zoom and pan state used to render plan
// space onto screen pixels, and the transforms between the two spaces.
package viewport

import (
	"math"

	"terranova/pkg/geometry"
)

const (
	// MinZoom and MaxZoom bound the zoom level.
	MinZoom = 0.5
	MaxZoom = 10.0
	// ZoomStep is the multiplicative wheel/button increment.
	ZoomStep = 1.1
	// planSpan is the extent of normalized plan space along each axis.
	planSpan = 100.0
)

// Viewport holds a zoom level and a pixel offset. The offset is the
// screen position of the plan origin and is unbounded.
type Viewport struct {
	Zoom   float64
	Offset geometry.Point2D
}

// New returns a viewport at zoom 1 with no offset.
func New() *Viewport {
	return &Viewport{Zoom: 1}
}

// Reset restores zoom 1 and zero offset.
func (v *Viewport) Reset() {
	v.Zoom = 1
	v.Offset = geometry.Point2D{}
}

// PlanToScreen maps a plan-space point to widget-local pixels for the
// given viewport size. ScreenToPlan is its exact inverse; lot markers
// and drawn vertices drift from the cursor if the two disagree.
func (v *Viewport) PlanToScreen(p geometry.Point2D, view geometry.Size) geometry.Point2D {
	return geometry.Point2D{
		X: v.Offset.X + p.X/planSpan*view.Width*v.Zoom,
		Y: v.Offset.Y + p.Y/planSpan*view.Height*v.Zoom,
	}
}

// ScreenToPlan maps widget-local pixels back into plan space.
func (v *Viewport) ScreenToPlan(s geometry.Point2D, view geometry.Size) geometry.Point2D {
	return geometry.Point2D{
		X: (s.X - v.Offset.X) / v.Zoom / view.Width * planSpan,
		Y: (s.Y - v.Offset.Y) / v.Zoom / view.Height * planSpan,
	}
}

// ZoomAt applies one zoom step anchored at the given cursor position:
// the plan-space point under the cursor stays under the cursor after
// the zoom changes. in selects the direction.
func (v *Viewport) ZoomAt(cursor geometry.Point2D, view geometry.Size, in bool) {
	factor := ZoomStep
	if !in {
		factor = 1 / ZoomStep
	}
	next := clampZoom(v.Zoom * factor)
	if next == v.Zoom {
		return
	}

	anchor := v.ScreenToPlan(cursor, view)
	v.Zoom = next
	v.Offset.X = cursor.X - anchor.X/planSpan*view.Width*v.Zoom
	v.Offset.Y = cursor.Y - anchor.Y/planSpan*view.Height*v.Zoom
}

// ZoomIn applies one zoom step anchored at the viewport center, for
// button-driven zoom where no cursor position exists.
func (v *Viewport) ZoomIn(view geometry.Size) {
	v.ZoomAt(center(view), view, true)
}

// ZoomOut is the center-anchored inverse of ZoomIn.
func (v *Viewport) ZoomOut(view geometry.Size) {
	v.ZoomAt(center(view), view, false)
}

// Pan translates the offset by a pointer delta in pixels.
func (v *Viewport) Pan(dx, dy float64) {
	v.Offset.X += dx
	v.Offset.Y += dy
}

// MarkerScale returns the factor applied to marker and vertex sizes so
// they do not grow unboundedly at high zoom. 1/sqrt(zoom) is a partial
// compensation: markers still give some size feedback across zooms.
func (v *Viewport) MarkerScale() float64 {
	return 1 / math.Sqrt(v.Zoom)
}

func center(view geometry.Size) geometry.Point2D {
	return geometry.Point2D{X: view.Width / 2, Y: view.Height / 2}
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
