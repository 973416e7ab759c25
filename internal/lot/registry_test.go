package lot

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terranova/pkg/geometry"
)

func TestNewRequiresThreePoints(t *testing.T) {
	_, err := New("L-101", []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}})
	assert.ErrorIs(t, err, ErrShortBoundary)

	l, err := New("L-101", []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}})
	require.NoError(t, err)
	assert.True(t, l.HasBoundary())
}

func TestNewCentroidMatchesBoundary(t *testing.T) {
	boundary := []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	l, err := New("L-101", boundary)
	require.NoError(t, err)

	want := geometry.Centroid(boundary)
	assert.InDelta(t, want.X, l.X, 1e-9)
	assert.InDelta(t, want.Y, l.Y, 1e-9)
	assert.InDelta(t, 100.0, l.Area(), 1e-9)
	assert.Equal(t, StatusAvailable, l.Status)
	assert.True(t, l.Price.Equal(DefaultPrice))
}

func TestRegistryNumberSequence(t *testing.T) {
	r := NewRegistry(nil)
	assert.Equal(t, "L-101", r.NextNumber())

	l, err := New(r.NextNumber(), []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}})
	require.NoError(t, err)
	r.Add(l)

	assert.Equal(t, "L-102", r.NextNumber())
}

func TestRegistryAddStampsCreation(t *testing.T) {
	r := NewRegistry(nil)
	l, err := New("L-101", []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}})
	require.NoError(t, err)
	r.Add(l)

	require.Len(t, l.History, 1)
	assert.Equal(t, ActionCreation, l.History[0].Action)
}

func TestRegistryUpdateAppendsMatchingEvents(t *testing.T) {
	r := NewRegistry(nil)
	l, err := New("L-101", []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}})
	require.NoError(t, err)
	r.Add(l)

	// Status change: one event, newest first.
	upd := l.Clone()
	upd.Status = StatusReserved
	require.NoError(t, r.Update(upd))
	require.Len(t, upd.History, 2)
	assert.Equal(t, ActionStatusChange, upd.History[0].Action)

	// Position-only change: no new event.
	moved := upd.Clone()
	moved.X += 1
	require.NoError(t, r.Update(moved))
	assert.Len(t, moved.History, 2)

	// Price change on the committed entry.
	repriced := moved.Clone()
	repriced.Price = decimal.NewFromInt(175000)
	require.NoError(t, r.Update(repriced))
	require.Len(t, repriced.History, 3)
	assert.Equal(t, ActionPriceChange, repriced.History[0].Action)
	assert.Equal(t, ActionCreation, repriced.History[2].Action)
}

func TestRegistryUpdateUnknownID(t *testing.T) {
	r := NewRegistry(nil)
	ghost := NewMarker("L-999", 50, 50)

	assert.ErrorIs(t, r.Update(ghost), ErrNotFound)
	assert.Zero(t, r.Len())
}

func TestRegistryCountByStatus(t *testing.T) {
	r := NewRegistry(nil)
	for i := 0; i < 3; i++ {
		l, err := New(r.NextNumber(), []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}})
		require.NoError(t, err)
		r.Add(l)
	}
	sold := r.All()[0].Clone()
	sold.Status = StatusSold
	require.NoError(t, r.Update(sold))

	assert.Equal(t, 2, r.CountByStatus(StatusAvailable))
	assert.Equal(t, 1, r.CountByStatus(StatusSold))
	assert.Equal(t, 0, r.CountByStatus(StatusReserved))
}

func TestRegistryFindAt(t *testing.T) {
	r := NewRegistry(nil)
	traced, err := New("L-101", []geometry.Point2D{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}, {X: 0, Y: 20}})
	require.NoError(t, err)
	r.Add(traced)
	marker := NewMarker("L-102", 80, 80)
	r.Add(marker)

	assert.Equal(t, traced, r.FindAt(geometry.Point2D{X: 10, Y: 10}, 2))
	assert.Equal(t, marker, r.FindAt(geometry.Point2D{X: 81, Y: 80}, 2))
	assert.Nil(t, r.FindAt(geometry.Point2D{X: 50, Y: 50}, 2))
}
