package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terranova/internal/client"
	"terranova/internal/lot"
	"terranova/internal/store"
	"terranova/pkg/geometry"
)

// memStore keeps the snapshot in memory and counts saves.
type memStore struct {
	snap  *store.Snapshot
	saves int
}

func (m *memStore) Load() (*store.Snapshot, error) {
	if m.snap == nil {
		return store.Defaults(), nil
	}
	return m.snap, nil
}

func (m *memStore) Save(snap *store.Snapshot) error {
	m.snap = snap
	m.saves++
	return nil
}

func newTestState(t *testing.T) (*State, *memStore) {
	t.Helper()
	ms := &memStore{}
	s := NewState(ms)
	require.NoError(t, s.Load())
	return s, ms
}

func TestAddTracedLotStampsCreation(t *testing.T) {
	s, ms := newTestState(t)
	div := s.Divisions()[0]

	boundary := []geometry.Point2D{{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 30}}
	l, err := s.AddTracedLot(div, boundary)
	require.NoError(t, err)

	assert.Equal(t, "L-101", l.Number)
	require.Len(t, l.History, 1)
	assert.Equal(t, lot.ActionCreation, l.History[0].Action)
	assert.Positive(t, ms.saves)
}

func TestAddTracedLotRejectsShortBoundary(t *testing.T) {
	s, _ := newTestState(t)
	div := s.Divisions()[0]

	_, err := s.AddTracedLot(div, []geometry.Point2D{{X: 1, Y: 1}, {X: 2, Y: 2}})
	assert.ErrorIs(t, err, lot.ErrShortBoundary)
}

func TestAddTracedLotUnknownDivision(t *testing.T) {
	s, _ := newTestState(t)

	_, err := s.AddTracedLot("Atlantis", []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}})
	assert.ErrorIs(t, err, ErrUnknownDivision)
}

func TestUpdateLotRecordsHistory(t *testing.T) {
	s, _ := newTestState(t)
	div := s.Divisions()[0]

	l, err := s.AddMarkerLot(div, 50, 50)
	require.NoError(t, err)

	upd := l.Clone()
	upd.Status = lot.StatusReserved
	require.NoError(t, s.UpdateLot(div, upd))

	got := s.LotAt(div, geometry.Point2D{X: 50, Y: 50}, 3)
	require.NotNil(t, got)
	assert.Equal(t, lot.StatusReserved, got.Status)
	require.Len(t, got.History, 2)
	assert.Equal(t, lot.ActionStatusChange, got.History[0].Action)
}

func TestUpdateLotUnknownIDDropped(t *testing.T) {
	s, _ := newTestState(t)
	div := s.Divisions()[0]

	ghost, err := lot.New("L-999", []geometry.Point2D{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}})
	require.NoError(t, err)
	assert.ErrorIs(t, s.UpdateLot(div, ghost), lot.ErrNotFound)
	assert.Empty(t, s.DivisionLots(div))
}

func TestFormalizeSaleDoubleStamp(t *testing.T) {
	s, _ := newTestState(t)
	div := s.Divisions()[0]

	l, err := s.AddMarkerLot(div, 20, 20)
	require.NoError(t, err)

	c := client.New("Laura Ortiz", "laura@example.com", "555-0100", div, l.Number)
	s.AddClient(c)
	require.NoError(t, s.FormalizeSale(div, l.ID, c.ID))

	got := s.LotAt(div, geometry.Point2D{X: 20, Y: 20}, 3)
	require.NotNil(t, got)
	assert.Equal(t, lot.StatusSold, got.Status)
	assert.Equal(t, c.ID, got.ClientID)

	// Newest first: status change, then assignment, then creation.
	require.Len(t, got.History, 3)
	assert.Equal(t, lot.ActionStatusChange, got.History[0].Action)
	assert.Equal(t, lot.ActionClientAssigned, got.History[1].Action)
	assert.Equal(t, lot.ActionCreation, got.History[2].Action)
}

func TestEventsFire(t *testing.T) {
	s, _ := newTestState(t)
	div := s.Divisions()[0]

	var lotEvents []string
	s.On(EventLotsChanged, func(data interface{}) {
		lotEvents = append(lotEvents, data.(string))
	})
	planFired := false
	s.On(EventPlanChanged, func(data interface{}) { planFired = true })

	_, err := s.AddMarkerLot(div, 5, 5)
	require.NoError(t, err)
	s.SetDivisionPlan(div, "data:image/png;base64,AAAA")

	assert.Equal(t, []string{div}, lotEvents)
	assert.True(t, planFired)
	assert.Equal(t, "data:image/png;base64,AAAA", s.PlanFor(div))
}

func TestStatsCountsSoldAndAvailable(t *testing.T) {
	s, _ := newTestState(t)
	div := s.Divisions()[0]

	a, err := s.AddMarkerLot(div, 10, 10)
	require.NoError(t, err)
	_, err = s.AddMarkerLot(div, 40, 40)
	require.NoError(t, err)

	c := client.New("Marcos Peña", "marcos@example.com", "555-0101", div, a.Number)
	s.AddClient(c)
	require.NoError(t, s.FormalizeSale(div, a.ID, c.ID))

	stats := s.Stats()
	assert.Equal(t, 1, stats.AvailableLots)
	assert.True(t, stats.ProjectedSales.Equal(lot.DefaultPrice))
}

func TestScheduleStatusUpdate(t *testing.T) {
	s, _ := newTestState(t)

	clients := s.Clients()
	require.NotEmpty(t, clients)
	c := clients[0]
	require.NotEmpty(t, c.Payments)

	s.SetScheduleStatus(c.ID, c.Payments[0].ID, client.SchedulePaid)
	assert.Equal(t, client.SchedulePaid, s.Clients()[0].Payments[0].Status)
}
