// Package canvas provides the interactive site-plan canvas with pan,
// zoom, and boundary tracing.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"terranova/internal/lot"
	"terranova/internal/sketch"
	"terranova/internal/viewport"
	"terranova/pkg/geometry"
)

// PlanCanvas renders a division's site plan with its lots and handles
// all pointer interaction for the boundary tracer.
type PlanCanvas struct {
	widget.BaseWidget

	view   *viewport.Viewport
	tracer *sketch.Tracer

	plan image.Image
	lots []*lot.Lot

	selectedID string

	raster *fynecanvas.Raster

	// Interaction state
	dragging  bool
	dragDist  float64
	viewSize  geometry.Size
	hoverPlan geometry.Point2D

	// Callbacks
	onLotTapped      func(l *lot.Lot)
	onEmptyTapped    func(p geometry.Point2D)
	onBoundaryClosed func(boundary []geometry.Point2D)
	onViewChanged    func(zoom float64)
}

// NewPlanCanvas creates an empty plan canvas.
func NewPlanCanvas() *PlanCanvas {
	pc := &PlanCanvas{
		view:   viewport.New(),
		tracer: sketch.New(),
	}
	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.ScaleMode = fynecanvas.ImageScalePixels
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetPlan sets the background site-plan image, or nil for the blank grid.
func (pc *PlanCanvas) SetPlan(img image.Image) {
	pc.plan = img
	pc.Refresh()
}

// SetLots replaces the rendered lot set.
func (pc *PlanCanvas) SetLots(lots []*lot.Lot) {
	pc.lots = lots
	pc.Refresh()
}

// Select highlights one lot by id, or clears the highlight with "".
func (pc *PlanCanvas) Select(id string) {
	pc.selectedID = id
	pc.Refresh()
}

// Tracer exposes the boundary tracer for mode switching.
func (pc *PlanCanvas) Tracer() *sketch.Tracer {
	return pc.tracer
}

// Viewport exposes the pan/zoom state.
func (pc *PlanCanvas) Viewport() *viewport.Viewport {
	return pc.view
}

// ResetView restores the default pan and zoom.
func (pc *PlanCanvas) ResetView() {
	pc.view.Reset()
	pc.notifyView()
	pc.Refresh()
}

// OnLotTapped sets the callback for a click landing on a lot.
func (pc *PlanCanvas) OnLotTapped(cb func(l *lot.Lot)) {
	pc.onLotTapped = cb
}

// OnEmptyTapped sets the callback for a click on empty plan space while
// not tracing. The position is in plan coordinates.
func (pc *PlanCanvas) OnEmptyTapped(cb func(p geometry.Point2D)) {
	pc.onEmptyTapped = cb
}

// OnBoundaryClosed sets the callback for a completed trace.
func (pc *PlanCanvas) OnBoundaryClosed(cb func(boundary []geometry.Point2D)) {
	pc.onBoundaryClosed = cb
}

// OnViewChanged sets the callback for zoom changes, for the status bar.
func (pc *PlanCanvas) OnViewChanged(cb func(zoom float64)) {
	pc.onViewChanged = cb
}

func (pc *PlanCanvas) notifyView() {
	if pc.onViewChanged != nil {
		pc.onViewChanged(pc.view.Zoom)
	}
}

// hitRadius is the marker hit-test radius in plan units. It follows
// the marker's counter-scale so markers stay clickable when zoomed out.
func (pc *PlanCanvas) hitRadius() float64 {
	return 2.0 * pc.view.MarkerScale()
}

func (pc *PlanCanvas) toPlan(pos fyne.Position) geometry.Point2D {
	return pc.view.ScreenToPlan(
		geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)}, pc.viewSize)
}

// Tapped handles a left click: a tracer vertex in draw mode, otherwise
// a lot selection or an empty-space click.
func (pc *PlanCanvas) Tapped(ev *fyne.PointEvent) {
	// A drag that moved past the epsilon is a pan, not a click.
	if pc.dragDist > sketch.DragEpsilon {
		pc.dragDist = 0
		return
	}

	p := pc.toPlan(ev.Position)

	if pc.tracer.Mode() == sketch.ModeDraw {
		boundary, closed := pc.tracer.Click(p, pc.view.Zoom)
		if closed && pc.onBoundaryClosed != nil {
			pc.onBoundaryClosed(boundary)
		}
		pc.Refresh()
		return
	}

	hit := findLot(pc.lots, p, pc.hitRadius())
	if hit != nil {
		if pc.onLotTapped != nil {
			pc.onLotTapped(hit)
		}
	} else if pc.onEmptyTapped != nil {
		pc.onEmptyTapped(p)
	}
	pc.Refresh()
}

// TappedSecondary removes the last traced vertex.
func (pc *PlanCanvas) TappedSecondary(_ *fyne.PointEvent) {
	if pc.tracer.Mode() == sketch.ModeDraw {
		pc.tracer.UndoVertex()
		pc.Refresh()
	}
}

// Dragged pans the viewport. While tracing, dragging is ignored so a
// sloppy click does not shift the plan under the cursor.
func (pc *PlanCanvas) Dragged(ev *fyne.DragEvent) {
	if pc.tracer.Mode() == sketch.ModeDraw {
		return
	}

	if !pc.dragging {
		pc.dragging = true
		pc.dragDist = 0
	}
	dx := float64(ev.Dragged.DX)
	dy := float64(ev.Dragged.DY)
	pc.dragDist += abs(dx) + abs(dy)

	pc.view.Pan(dx, dy)
	pc.Refresh()
}

// DragEnd finishes a pan gesture.
func (pc *PlanCanvas) DragEnd() {
	pc.dragging = false
	pc.dragDist = 0
}

// Scrolled zooms toward the cursor.
func (pc *PlanCanvas) Scrolled(ev *fyne.ScrollEvent) {
	cursor := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	pc.view.ZoomAt(cursor, pc.viewSize, ev.Scrolled.DY > 0)
	pc.notifyView()
	pc.Refresh()
}

// MouseMoved tracks the cursor for the tracer's rubber-band segment
// and close hint.
func (pc *PlanCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if pc.tracer.Mode() != sketch.ModeDraw {
		return
	}
	pc.hoverPlan = pc.toPlan(ev.Position)
	pc.tracer.MoveCursor(pc.hoverPlan)
	pc.Refresh()
}

// MouseIn implements desktop.Hoverable.
func (pc *PlanCanvas) MouseIn(_ *desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable.
func (pc *PlanCanvas) MouseOut() {}

// CreateRenderer implements fyne.Widget.
func (pc *PlanCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &planCanvasRenderer{canvas: pc}
}

type planCanvasRenderer struct {
	canvas *PlanCanvas
}

func (r *planCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.viewSize = geometry.Size{
		Width:  float64(size.Width),
		Height: float64(size.Height),
	}
	r.canvas.raster.Resize(size)
}

func (r *planCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *planCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *planCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *planCanvasRenderer) Destroy() {}

// findLot mirrors the registry hit test over the rendered slice so the
// canvas does not need a registry handle.
func findLot(lots []*lot.Lot, p geometry.Point2D, radius float64) *lot.Lot {
	var hit *lot.Lot
	for _, l := range lots {
		if l.HasBoundary() {
			if geometry.PointInPolygon(p, l.Boundary) {
				hit = l
			}
			continue
		}
		if p.Distance(geometry.Point2D{X: l.X, Y: l.Y}) <= radius {
			hit = l
		}
	}
	return hit
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
