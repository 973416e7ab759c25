package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"terranova/pkg/geometry"
)

var testView = geometry.Size{Width: 800, Height: 600}

func TestRoundTrip(t *testing.T) {
	v := New()
	v.Zoom = 2.5
	v.Offset = geometry.Point2D{X: -120, Y: 45}

	for _, p := range []geometry.Point2D{{X: 0, Y: 0}, {X: 50, Y: 50}, {X: 100, Y: 100}, {X: 12.34, Y: 87.65}} {
		got := v.ScreenToPlan(v.PlanToScreen(p, testView), testView)
		assert.InDelta(t, p.X, got.X, 1e-9)
		assert.InDelta(t, p.Y, got.Y, 1e-9)
	}
}

func TestZoomAtKeepsCursorPointFixed(t *testing.T) {
	v := New()
	cursor := geometry.Point2D{X: 300, Y: 200}

	for i := 0; i < 10; i++ {
		before := v.ScreenToPlan(cursor, testView)
		v.ZoomAt(cursor, testView, true)
		after := v.ScreenToPlan(cursor, testView)

		assert.InDelta(t, before.X, after.X, 1e-9)
		assert.InDelta(t, before.Y, after.Y, 1e-9)
	}
}

func TestZoomUpAndBackRestoresOffset(t *testing.T) {
	v := New()
	v.Offset = geometry.Point2D{X: 40, Y: -25}
	cursor := geometry.Point2D{X: 123, Y: 456}

	const steps = 17 // 1.1^17 stays under MaxZoom
	for i := 0; i < steps; i++ {
		v.ZoomAt(cursor, testView, true)
	}
	for i := 0; i < steps; i++ {
		v.ZoomAt(cursor, testView, false)
	}

	assert.InDelta(t, 1.0, v.Zoom, 1e-9)
	assert.InDelta(t, 40.0, v.Offset.X, 1e-6)
	assert.InDelta(t, -25.0, v.Offset.Y, 1e-6)
}

func TestZoomClamped(t *testing.T) {
	v := New()
	for i := 0; i < 100; i++ {
		v.ZoomIn(testView)
	}
	assert.InDelta(t, MaxZoom, v.Zoom, 1e-9)

	for i := 0; i < 200; i++ {
		v.ZoomOut(testView)
	}
	assert.InDelta(t, MinZoom, v.Zoom, 1e-9)
}

func TestPanAccumulates(t *testing.T) {
	v := New()
	v.Pan(10, -5)
	v.Pan(2, 3)
	assert.Equal(t, geometry.Point2D{X: 12, Y: -2}, v.Offset)
}

func TestReset(t *testing.T) {
	v := New()
	v.Zoom = 4
	v.Offset = geometry.Point2D{X: 99, Y: 11}
	v.Reset()
	assert.Equal(t, 1.0, v.Zoom)
	assert.Equal(t, geometry.Point2D{}, v.Offset)
}

func TestMarkerScalePartialCompensation(t *testing.T) {
	v := New()
	assert.InDelta(t, 1.0, v.MarkerScale(), 1e-9)
	v.Zoom = 4
	assert.InDelta(t, 0.5, v.MarkerScale(), 1e-9)
	v.Zoom = 9
	assert.InDelta(t, 1.0/3.0, v.MarkerScale(), 1e-9)
}
