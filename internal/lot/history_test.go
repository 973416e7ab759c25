package lot

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terranova/pkg/geometry"
)

func tracedLot(t *testing.T) *Lot {
	t.Helper()
	l, err := New("L-101", []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
	require.NoError(t, err)
	return l
}

func TestDiffStatusWinsOverPrice(t *testing.T) {
	old := tracedLot(t)
	updated := old.Clone()
	updated.Status = StatusReserved
	updated.Price = decimal.NewFromInt(200000)

	ev := Diff(old, updated)
	require.NotNil(t, ev)
	assert.Equal(t, ActionStatusChange, ev.Action)
	assert.Contains(t, ev.Description, "disponible")
	assert.Contains(t, ev.Description, "reservado")
}

func TestDiffPriceChange(t *testing.T) {
	old := tracedLot(t)
	updated := old.Clone()
	updated.Price = decimal.NewFromInt(1250000)

	ev := Diff(old, updated)
	require.NotNil(t, ev)
	assert.Equal(t, ActionPriceChange, ev.Action)
	assert.Contains(t, ev.Description, "$150,000")
	assert.Contains(t, ev.Description, "$1,250,000")
}

func TestDiffBoundaryRemoved(t *testing.T) {
	old := tracedLot(t)
	updated := old.Clone()
	updated.Boundary = nil

	ev := Diff(old, updated)
	require.NotNil(t, ev)
	assert.Equal(t, ActionBoundaryRemoved, ev.Action)
}

func TestDiffPositionOnlyChangeIsSilent(t *testing.T) {
	old := tracedLot(t)
	updated := old.Clone()
	updated.X += 3
	updated.Y -= 1

	assert.Nil(t, Diff(old, updated))
	assert.Nil(t, Diff(old, old.Clone()))
}

func TestAssignmentEventsDoubleStamp(t *testing.T) {
	l := tracedLot(t)
	events := AssignmentEvents(l, StatusAvailable)

	require.Len(t, events, 2)
	assert.Equal(t, ActionClientAssigned, events[0].Action)
	assert.Equal(t, ActionStatusChange, events[1].Action)
	assert.Contains(t, events[1].Description, "vendido")
}

func TestPrependNewestFirst(t *testing.T) {
	l := tracedLot(t)
	first := newEvent(ActionCreation, "a")
	second := newEvent(ActionStatusChange, "b")

	l.Prepend(first, second)

	require.Len(t, l.History, 2)
	assert.Equal(t, "b", l.History[0].Description)
	assert.Equal(t, "a", l.History[1].Description)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$150,000", FormatMoney(decimal.NewFromInt(150000)))
	assert.Equal(t, "$999", FormatMoney(decimal.NewFromInt(999)))
	assert.Equal(t, "$1,000", FormatMoney(decimal.NewFromInt(1000)))
	assert.Equal(t, "$12,345,678", FormatMoney(decimal.NewFromInt(12345678)))
	assert.Equal(t, "-$5,000", FormatMoney(decimal.NewFromInt(-5000)))
	assert.Equal(t, "$0", FormatMoney(decimal.Zero))
}
