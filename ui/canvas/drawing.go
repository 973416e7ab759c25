// Drawing primitives for the plan canvas raster.
package canvas

import (
	"image"
	"image/color"
	"sort"

	xdraw "golang.org/x/image/draw"

	"terranova/internal/lot"
	"terranova/pkg/geometry"
)

// Status fill colors, matching the brand palette.
var (
	colAvailable = color.RGBA{R: 16, G: 185, B: 129, A: 255}  // emerald
	colSold      = color.RGBA{R: 244, G: 63, B: 94, A: 255}   // rose
	colReserved  = color.RGBA{R: 245, G: 158, B: 11, A: 255}  // amber
	colSelected  = color.RGBA{R: 79, G: 70, B: 229, A: 255}   // indigo
	colTrace     = color.RGBA{R: 79, G: 70, B: 229, A: 255}   // indigo
	colCloseHint = color.RGBA{R: 255, G: 255, B: 255, A: 255} // white ring
	colBackdrop  = color.RGBA{R: 24, G: 26, B: 32, A: 255}
	colGridLine  = color.RGBA{R: 44, G: 48, B: 58, A: 255}
	colLabel     = color.RGBA{R: 240, G: 240, B: 245, A: 255}
)

func statusColor(s lot.Status) color.RGBA {
	switch s {
	case lot.StatusSold:
		return colSold
	case lot.StatusReserved:
		return colReserved
	default:
		return colAvailable
	}
}

// draw is the raster drawing function.
func (pc *PlanCanvas) draw(w, h int) image.Image {
	pc.viewSize = geometry.Size{Width: float64(w), Height: float64(h)}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fillBackground(output, colBackdrop)

	pc.drawPlanImage(output, w, h)
	if pc.plan == nil {
		pc.drawGrid(output)
	}

	for _, l := range pc.lots {
		pc.drawLot(output, l)
	}

	pc.drawTrace(output)
	return output
}

func fillBackground(output *image.RGBA, col color.RGBA) {
	for i := 0; i < len(output.Pix); i += 4 {
		output.Pix[i] = col.R
		output.Pix[i+1] = col.G
		output.Pix[i+2] = col.B
		output.Pix[i+3] = 255
	}
}

// drawPlanImage scales the site plan into the current view rectangle.
func (pc *PlanCanvas) drawPlanImage(output *image.RGBA, w, h int) {
	if pc.plan == nil {
		return
	}

	topLeft := pc.view.PlanToScreen(geometry.Point2D{X: 0, Y: 0}, pc.viewSize)
	bottomRight := pc.view.PlanToScreen(geometry.Point2D{X: 100, Y: 100}, pc.viewSize)

	dst := image.Rect(
		int(topLeft.X), int(topLeft.Y),
		int(bottomRight.X), int(bottomRight.Y),
	)
	if dst.Empty() {
		return
	}

	xdraw.ApproxBiLinear.Scale(output, dst, pc.plan, pc.plan.Bounds(), xdraw.Over, nil)
}

// drawGrid renders the placeholder grid shown before a plan is uploaded.
func (pc *PlanCanvas) drawGrid(output *image.RGBA) {
	const step = 10.0
	for v := 0.0; v <= 100.0; v += step {
		a := pc.view.PlanToScreen(geometry.Point2D{X: v, Y: 0}, pc.viewSize)
		b := pc.view.PlanToScreen(geometry.Point2D{X: v, Y: 100}, pc.viewSize)
		drawLine(output, int(a.X), int(a.Y), int(b.X), int(b.Y), colGridLine, 1)

		a = pc.view.PlanToScreen(geometry.Point2D{X: 0, Y: v}, pc.viewSize)
		b = pc.view.PlanToScreen(geometry.Point2D{X: 100, Y: v}, pc.viewSize)
		drawLine(output, int(a.X), int(a.Y), int(b.X), int(b.Y), colGridLine, 1)
	}
}

// drawLot renders one lot: a translucent filled polygon for traced
// lots, a counter-scaled marker dot otherwise, both labeled.
func (pc *PlanCanvas) drawLot(output *image.RGBA, l *lot.Lot) {
	col := statusColor(l.Status)
	selected := l.ID == pc.selectedID

	if l.HasBoundary() {
		pts := make([]geometry.Point2D, len(l.Boundary))
		for i, p := range l.Boundary {
			pts[i] = pc.view.PlanToScreen(p, pc.viewSize)
		}

		fillPolygon(output, pts, color.RGBA{R: col.R, G: col.G, B: col.B, A: 110})

		outline := col
		thickness := 2
		if selected {
			outline = colSelected
			thickness = 3
		}
		n := len(pts)
		for i := 0; i < n; i++ {
			p1 := pts[i]
			p2 := pts[(i+1)%n]
			drawLine(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), outline, thickness)
		}

		center := pc.view.PlanToScreen(geometry.Point2D{X: l.X, Y: l.Y}, pc.viewSize)
		drawLabel(output, l.Number, int(center.X), int(center.Y), colLabel, 2)
		return
	}

	center := pc.view.PlanToScreen(geometry.Point2D{X: l.X, Y: l.Y}, pc.viewSize)
	// Screen radius grows with zoom but is damped by the counter-scale
	// so markers do not swallow the plan at high magnification.
	radius := 8.0 * pc.view.Zoom * pc.view.MarkerScale()
	if radius < 4 {
		radius = 4
	}

	fillCircle(output, int(center.X), int(center.Y), int(radius), col)
	if selected {
		strokeCircle(output, int(center.X), int(center.Y), int(radius)+2, colSelected)
	}
	drawLabel(output, l.Number, int(center.X), int(center.Y)-int(radius)-8, colLabel, 2)
}

// drawTrace renders the in-progress boundary: committed vertices, the
// rubber-band segment to the cursor, and the close hint on the first
// vertex.
func (pc *PlanCanvas) drawTrace(output *image.RGBA) {
	pts := pc.tracer.Points()
	if len(pts) == 0 {
		return
	}

	screen := make([]geometry.Point2D, len(pts))
	for i, p := range pts {
		screen[i] = pc.view.PlanToScreen(p, pc.viewSize)
	}

	for i := 0; i+1 < len(screen); i++ {
		drawLine(output, int(screen[i].X), int(screen[i].Y),
			int(screen[i+1].X), int(screen[i+1].Y), colTrace, 2)
	}

	cursor := pc.view.PlanToScreen(pc.tracer.Cursor(), pc.viewSize)
	last := screen[len(screen)-1]
	drawLine(output, int(last.X), int(last.Y), int(cursor.X), int(cursor.Y), colTrace, 1)

	for _, p := range screen {
		fillCircle(output, int(p.X), int(p.Y), 3, colTrace)
	}

	if pc.tracer.NearFirstPoint(pc.view.Zoom) {
		strokeCircle(output, int(screen[0].X), int(screen[0].Y), 6, colCloseHint)
	}
}

// fillPolygon fills a polygon with the scanline algorithm, blending the
// fill color over the existing pixels.
func fillPolygon(output *image.RGBA, pts []geometry.Point2D, col color.RGBA) {
	if len(pts) < 3 {
		return
	}

	bounds := output.Bounds()
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	alpha := float64(col.A) / 255.0
	inv := 1 - alpha

	n := len(pts)
	for y := int(minY); y <= int(maxY); y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}

		var xs []float64
		for i := 0; i < n; i++ {
			p1 := pts[i]
			p2 := pts[(i+1)%n]
			if (p1.Y <= float64(y) && p2.Y > float64(y)) ||
				(p2.Y <= float64(y) && p1.Y > float64(y)) {
				t := (float64(y) - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			x1, x2 := int(xs[i]), int(xs[i+1])
			for x := x1; x <= x2; x++ {
				if x < bounds.Min.X || x >= bounds.Max.X {
					continue
				}
				idx := output.PixOffset(x, y)
				output.Pix[idx] = uint8(float64(col.R)*alpha + float64(output.Pix[idx])*inv)
				output.Pix[idx+1] = uint8(float64(col.G)*alpha + float64(output.Pix[idx+1])*inv)
				output.Pix[idx+2] = uint8(float64(col.B)*alpha + float64(output.Pix[idx+2])*inv)
				output.Pix[idx+3] = 255
			}
		}
	}
}

// drawLine draws a thick line using Bresenham's algorithm.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	bounds := output.Bounds()

	dx := x2 - x1
	if dx < 0 {
		dx = -dx
	}
	dy := y2 - y1
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				px, py := x1+s, y1+t
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					output.SetRGBA(px, py, col)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func fillCircle(output *image.RGBA, cx, cy, r int, col color.RGBA) {
	bounds := output.Bounds()
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y > r*r {
				continue
			}
			px, py := cx+x, cy+y
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				output.SetRGBA(px, py, col)
			}
		}
	}
}

func strokeCircle(output *image.RGBA, cx, cy, r int, col color.RGBA) {
	bounds := output.Bounds()
	inner := (r - 1) * (r - 1)
	outer := (r + 1) * (r + 1)
	for y := -r - 1; y <= r+1; y++ {
		for x := -r - 1; x <= r+1; x++ {
			d := x*x + y*y
			if d < inner || d > outer {
				continue
			}
			px, py := cx+x, cy+y
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				output.SetRGBA(px, py, col)
			}
		}
	}
}
