package sketch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terranova/pkg/geometry"
)

func TestClickAppendsWhileDrawing(t *testing.T) {
	tr := New()
	tr.SetMode(ModeDraw)

	_, closed := tr.Click(geometry.Point2D{X: 10, Y: 10}, 1)
	assert.False(t, closed)
	_, closed = tr.Click(geometry.Point2D{X: 20, Y: 10}, 1)
	assert.False(t, closed)
	assert.Len(t, tr.Points(), 2)
}

func TestClickIgnoredOutsideDrawMode(t *testing.T) {
	tr := New()
	_, closed := tr.Click(geometry.Point2D{X: 10, Y: 10}, 1)
	assert.False(t, closed)
	assert.Empty(t, tr.Points())
}

func TestCloseRequiresThreePoints(t *testing.T) {
	tr := New()
	tr.SetMode(ModeDraw)
	tr.Click(geometry.Point2D{X: 10, Y: 10}, 1)

	// A click back on the first point with only 2 points down must
	// append, never close.
	_, closed := tr.Click(geometry.Point2D{X: 10.1, Y: 10}, 1)
	assert.False(t, closed)
	assert.Len(t, tr.Points(), 2)
}

func TestCloseWithThreePoints(t *testing.T) {
	tr := New()
	tr.SetMode(ModeDraw)
	tr.Click(geometry.Point2D{X: 10, Y: 10}, 1)
	tr.Click(geometry.Point2D{X: 30, Y: 10}, 1)
	tr.Click(geometry.Point2D{X: 20, Y: 30}, 1)

	boundary, closed := tr.Click(geometry.Point2D{X: 10.5, Y: 10.2}, 1)
	require.True(t, closed)
	assert.Len(t, boundary, 3)
	assert.Equal(t, ModeView, tr.Mode())
	assert.Empty(t, tr.Points())
}

func TestNearFirstPointZoomCompensated(t *testing.T) {
	tr := New()
	tr.SetMode(ModeDraw)
	tr.Click(geometry.Point2D{X: 10, Y: 10}, 1)
	tr.Click(geometry.Point2D{X: 30, Y: 10}, 1)
	tr.Click(geometry.Point2D{X: 20, Y: 30}, 1)

	// 2 plan units from the first vertex: inside the threshold at zoom
	// 1, outside once zoom shrinks the plan-space radius.
	tr.MoveCursor(geometry.Point2D{X: 12, Y: 10})
	assert.True(t, tr.NearFirstPoint(1))
	assert.False(t, tr.NearFirstPoint(5))
}

func TestEnteringDrawClearsStroke(t *testing.T) {
	tr := New()
	tr.SetMode(ModeDraw)
	tr.Click(geometry.Point2D{X: 10, Y: 10}, 1)
	tr.SetMode(ModePan)
	tr.SetMode(ModeDraw)
	assert.Empty(t, tr.Points())
}

func TestUndoVertex(t *testing.T) {
	tr := New()
	tr.SetMode(ModeDraw)
	tr.Click(geometry.Point2D{X: 10, Y: 10}, 1)
	tr.Click(geometry.Point2D{X: 20, Y: 10}, 1)

	tr.UndoVertex()
	assert.Len(t, tr.Points(), 1)
	assert.Equal(t, ModeDraw, tr.Mode())

	tr.UndoVertex()
	tr.UndoVertex() // empty stroke: no-op
	assert.Empty(t, tr.Points())
}

func TestCancelDiscardsAndReturnsToView(t *testing.T) {
	tr := New()
	tr.SetMode(ModeDraw)
	tr.Click(geometry.Point2D{X: 10, Y: 10}, 1)
	tr.Click(geometry.Point2D{X: 20, Y: 10}, 1)

	tr.Cancel()
	assert.Equal(t, ModeView, tr.Mode())
	assert.Empty(t, tr.Points())
}
