package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terranova/pkg/geometry"
)

func TestSimplifyClampsToPlanSpace(t *testing.T) {
	got := Simplify([]geometry.Point2D{
		{X: -5, Y: 10},
		{X: 110, Y: 10},
		{X: 50, Y: 120},
	}, 0.5)

	require.Len(t, got, 3)
	assert.Equal(t, geometry.Point2D{X: 0, Y: 10}, got[0])
	assert.Equal(t, geometry.Point2D{X: 100, Y: 10}, got[1])
	assert.Equal(t, geometry.Point2D{X: 50, Y: 100}, got[2])
}

func TestSimplifyMergesNearDuplicates(t *testing.T) {
	got := Simplify([]geometry.Point2D{
		{X: 10, Y: 10},
		{X: 10.1, Y: 10.05},
		{X: 40, Y: 10},
		{X: 40, Y: 40},
		{X: 10.05, Y: 10.02}, // wraps around onto the first vertex
	}, 0.5)

	require.Len(t, got, 3)
	assert.Equal(t, geometry.Point2D{X: 10, Y: 10}, got[0])
}

func TestSimplifyDropsCollinearVertices(t *testing.T) {
	got := Simplify([]geometry.Point2D{
		{X: 0, Y: 0},
		{X: 20, Y: 0}, // on the segment from (0,0) to (40,0)
		{X: 40, Y: 0},
		{X: 40, Y: 40},
		{X: 0, Y: 40},
	}, 0.1)

	require.Len(t, got, 4)
	assert.NotContains(t, got, geometry.Point2D{X: 20, Y: 0})
}

func TestSimplifyRejectsDegenerate(t *testing.T) {
	assert.Nil(t, Simplify(nil, 0.5))
	assert.Nil(t, Simplify([]geometry.Point2D{{X: 1, Y: 1}, {X: 2, Y: 2}}, 0.5))

	// All three vertices collapse into one.
	assert.Nil(t, Simplify([]geometry.Point2D{
		{X: 10, Y: 10}, {X: 10.01, Y: 10}, {X: 10, Y: 10.01},
	}, 0.5))
}

func TestCleanLabel(t *testing.T) {
	assert.Equal(t, "L-104", CleanLabel(" l-104 \n"))
	assert.Equal(t, "L-104", CleanLabel("L - 1 0 4"))
	assert.Equal(t, "P-202", CleanLabel("p-202*"))
	assert.Empty(t, CleanLabel("--"))
	assert.Empty(t, CleanLabel("x"))
}
