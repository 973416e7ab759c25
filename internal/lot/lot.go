// Package lot models sellable parcels, their traced boundaries, and the
// append-only history attached to each one.
package lot

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"terranova/pkg/geometry"
)

// Status is the sale state of a lot. Values are the operator-facing
// Spanish labels and are stored as-is.
type Status string

const (
	StatusAvailable Status = "disponible"
	StatusSold      Status = "vendido"
	StatusReserved  Status = "reservado"
)

// Valid reports whether s is one of the known sale states.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusReserved:
		return true
	}
	return false
}

// DefaultPrice is the baseline list price assigned to newly traced lots.
var DefaultPrice = decimal.NewFromInt(150000)

// ErrShortBoundary is returned when a boundary has fewer than 3 vertices.
var ErrShortBoundary = errors.New("lot: boundary needs at least 3 points")

// Lot represents one sellable parcel within a division.
//
// X and Y are the marker position in plan space. When a boundary exists
// they are its vertex centroid; legacy lots carry only the marker.
type Lot struct {
	ID       string             `json:"id"`
	Number   string             `json:"number"`
	Price    decimal.Decimal    `json:"price"`
	Status   Status             `json:"status"`
	X        float64            `json:"x"`
	Y        float64            `json:"y"`
	Boundary []geometry.Point2D `json:"boundary,omitempty"`
	ClientID string             `json:"clientId,omitempty"`
	History  []HistoryEvent     `json:"history"`
}

// New creates a lot from a traced boundary. The marker position is the
// vertex centroid; price and status take their defaults. The creation
// history event is stamped by the registry, not here.
func New(number string, boundary []geometry.Point2D) (*Lot, error) {
	if len(boundary) < 3 {
		return nil, ErrShortBoundary
	}

	pts := make([]geometry.Point2D, len(boundary))
	copy(pts, boundary)
	center := geometry.Centroid(pts)

	return &Lot{
		ID:       uuid.NewString(),
		Number:   number,
		Price:    DefaultPrice,
		Status:   StatusAvailable,
		X:        center.X,
		Y:        center.Y,
		Boundary: pts,
	}, nil
}

// NewMarker creates a boundary-less lot pinned at a single plan position.
func NewMarker(number string, x, y float64) *Lot {
	return &Lot{
		ID:     uuid.NewString(),
		Number: number,
		Price:  DefaultPrice,
		Status: StatusAvailable,
		X:      x,
		Y:      y,
	}
}

// Area returns the boundary area in plan-space units squared, or 0 for a
// marker-only lot. Callers apply a display scale factor; the value is
// illustrative, not geodetic.
func (l *Lot) Area() float64 {
	return geometry.PolygonArea(l.Boundary)
}

// HasBoundary reports whether the lot carries a traced polygon.
func (l *Lot) HasBoundary() bool {
	return len(l.Boundary) >= 3
}

// Clone returns a deep copy of the lot. Used to take the "before"
// snapshot that the history diff compares against.
func (l *Lot) Clone() *Lot {
	c := *l
	if l.Boundary != nil {
		c.Boundary = make([]geometry.Point2D, len(l.Boundary))
		copy(c.Boundary, l.Boundary)
	}
	if l.History != nil {
		c.History = make([]HistoryEvent, len(l.History))
		copy(c.History, l.History)
	}
	return &c
}
