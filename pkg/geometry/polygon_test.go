package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func square() []Point2D {
	return []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
}

func TestPolygonAreaSquare(t *testing.T) {
	assert.InDelta(t, 100.0, PolygonArea(square()), 1e-9)
}

func TestPolygonAreaCyclicRotationInvariant(t *testing.T) {
	pts := []Point2D{{1, 1}, {8, 2}, {9, 7}, {4, 9}, {0, 5}}
	want := PolygonArea(pts)

	for shift := 1; shift < len(pts); shift++ {
		rotated := append(append([]Point2D{}, pts[shift:]...), pts[:shift]...)
		assert.InDelta(t, want, PolygonArea(rotated), 1e-9, "rotation by %d", shift)
	}
}

func TestPolygonAreaReversalInvariant(t *testing.T) {
	pts := []Point2D{{1, 1}, {8, 2}, {9, 7}, {4, 9}, {0, 5}}
	reversed := make([]Point2D, len(pts))
	for i, p := range pts {
		reversed[len(pts)-1-i] = p
	}
	assert.InDelta(t, PolygonArea(pts), PolygonArea(reversed), 1e-9)
}

func TestPolygonAreaDegenerate(t *testing.T) {
	assert.Zero(t, PolygonArea(nil))
	assert.Zero(t, PolygonArea([]Point2D{{0, 0}, {5, 5}}))
	// Collinear points enclose nothing.
	assert.InDelta(t, 0.0, PolygonArea([]Point2D{{0, 0}, {5, 5}, {10, 10}}), 1e-9)
}

func TestCentroid(t *testing.T) {
	c := Centroid(square())
	assert.InDelta(t, 5.0, c.X, 1e-9)
	assert.InDelta(t, 5.0, c.Y, 1e-9)

	assert.Equal(t, Point2D{}, Centroid(nil))
}

func TestPointInPolygon(t *testing.T) {
	poly := square()

	assert.True(t, PointInPolygon(Point2D{5, 5}, poly))
	assert.False(t, PointInPolygon(Point2D{15, 5}, poly))
	assert.False(t, PointInPolygon(Point2D{5, -1}, poly))
	assert.False(t, PointInPolygon(Point2D{1, 1}, poly[:2]))
}

func TestBoundingBox(t *testing.T) {
	box := BoundingBox([]Point2D{{2, 3}, {8, 1}, {5, 9}})
	assert.Equal(t, Rect{X: 2, Y: 1, Width: 6, Height: 8}, box)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Point2D{0, 0}.Distance(Point2D{3, 4}), 1e-9)
}
