package store

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terranova/internal/lot"
	"terranova/pkg/geometry"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := NewFileStore(t.TempDir())

	snap, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, snap.Divisions, 6)
	assert.Contains(t, snap.LotsByDivision, "San Rafael")
	assert.Len(t, snap.Clients, 2)
	assert.Equal(t, "Roberto Gómez", snap.Clients[0].Name)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewFileStore(t.TempDir())

	snap := Defaults()
	l, err := lot.New("L-101", []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
	require.NoError(t, err)
	l.Price = decimal.NewFromInt(275000)
	l.Prepend(lot.CreationEvent(l))
	snap.LotsByDivision["San Rafael"] = []*lot.Lot{l}
	snap.DivisionMaps["San Rafael"] = "data:image/png;base64,AAAA"

	require.NoError(t, s.Save(snap))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded.LotsByDivision["San Rafael"], 1)

	got := loaded.LotsByDivision["San Rafael"][0]
	assert.Equal(t, l.ID, got.ID)
	assert.Equal(t, "L-101", got.Number)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(275000)))
	assert.Len(t, got.Boundary, 4)
	require.Len(t, got.History, 1)
	assert.Equal(t, lot.ActionCreation, got.History[0].Action)
	assert.Equal(t, "data:image/png;base64,AAAA", loaded.DivisionMaps["San Rafael"])
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{broken"), 0o644))

	_, err := s.Load()
	assert.Error(t, err)
}
