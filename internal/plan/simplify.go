package plan

import (
	"math"

	"terranova/pkg/geometry"
)

// Simplify cleans a detected boundary for use as a lot outline: clamps
// vertices into plan space, merges near-duplicate vertices, and drops
// collinear ones. Returns nil when fewer than three vertices survive.
func Simplify(boundary []geometry.Point2D, mergeDist float64) []geometry.Point2D {
	if len(boundary) < 3 {
		return nil
	}

	clamped := make([]geometry.Point2D, len(boundary))
	for i, p := range boundary {
		clamped[i] = geometry.Point2D{X: clamp(p.X, 0, 100), Y: clamp(p.Y, 0, 100)}
	}

	merged := mergeClose(clamped, mergeDist)
	out := dropCollinear(merged)
	if len(out) < 3 {
		return nil
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// mergeClose removes vertices closer than dist to their predecessor,
// treating the boundary as closed.
func mergeClose(points []geometry.Point2D, dist float64) []geometry.Point2D {
	out := points[:0:0]
	for _, p := range points {
		if len(out) > 0 && out[len(out)-1].Distance(p) < dist {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && out[0].Distance(out[len(out)-1]) < dist {
		out = out[:len(out)-1]
	}
	return out
}

// dropCollinear removes vertices that sit on the segment between their
// neighbors.
func dropCollinear(points []geometry.Point2D) []geometry.Point2D {
	if len(points) < 4 {
		return points
	}

	const eps = 1e-6
	out := make([]geometry.Point2D, 0, len(points))
	n := len(points)
	for i := 0; i < n; i++ {
		prev := points[(i+n-1)%n]
		cur := points[i]
		next := points[(i+1)%n]

		cross := (cur.X-prev.X)*(next.Y-prev.Y) - (cur.Y-prev.Y)*(next.X-prev.X)
		if math.Abs(cross) > eps {
			out = append(out, cur)
		}
	}
	return out
}
