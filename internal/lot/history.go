package lot

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Action classifies a history event. Values are stored as-is in the
// persisted snapshot.
type Action string

const (
	ActionCreation        Action = "CREACION"
	ActionStatusChange    Action = "CAMBIO_ESTADO"
	ActionPriceChange     Action = "CAMBIO_PRECIO"
	ActionClientAssigned  Action = "ASIGNACION_CLIENTE"
	ActionBoundaryRemoved Action = "ELIMINACION_AREA"
)

// HistoryEvent is an immutable audit record of a lot-level change.
// Events are created exactly once when the triggering mutation commits
// and are never edited or deleted.
type HistoryEvent struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Action      Action    `json:"action"`
	Description string    `json:"description"`
}

func newEvent(action Action, description string) HistoryEvent {
	return HistoryEvent{
		ID:          uuid.NewString(),
		Timestamp:   time.Now(),
		Action:      action,
		Description: description,
	}
}

// Diff compares an old and new snapshot of the same lot and returns the
// single history event the update produces, or nil when nothing
// noteworthy changed. Checks run in strict priority order and the first
// match wins: status, then price, then boundary removal. Marker-only
// position changes never produce an event.
func Diff(old, updated *Lot) *HistoryEvent {
	if old == nil || updated == nil {
		return nil
	}

	if old.Status != updated.Status {
		ev := newEvent(ActionStatusChange,
			fmt.Sprintf("Estado cambiado de %s a %s", old.Status, updated.Status))
		return &ev
	}

	if !old.Price.Equal(updated.Price) {
		ev := newEvent(ActionPriceChange,
			fmt.Sprintf("Precio actualizado de %s a %s",
				FormatMoney(old.Price), FormatMoney(updated.Price)))
		return &ev
	}

	if old.HasBoundary() && !updated.HasBoundary() {
		ev := newEvent(ActionBoundaryRemoved,
			fmt.Sprintf("Área delimitada del lote %s eliminada", updated.Number))
		return &ev
	}

	return nil
}

// CreationEvent builds the event stamped unconditionally when a lot is
// added to a division, independent of Diff.
func CreationEvent(l *Lot) HistoryEvent {
	if l.HasBoundary() {
		return newEvent(ActionCreation,
			fmt.Sprintf("Lote %s creado con área delimitada de %d vértices", l.Number, len(l.Boundary)))
	}
	return newEvent(ActionCreation, fmt.Sprintf("Lote %s creado", l.Number))
}

// AssignmentEvents builds the pair of events stamped when a sale is
// formalized: the client assignment plus the status change to "vendido".
// The double stamp mirrors the reference behavior and is intentional.
func AssignmentEvents(l *Lot, previous Status) []HistoryEvent {
	return []HistoryEvent{
		newEvent(ActionClientAssigned,
			fmt.Sprintf("Cliente asignado al lote %s", l.Number)),
		newEvent(ActionStatusChange,
			fmt.Sprintf("Estado cambiado de %s a %s", previous, StatusSold)),
	}
}

// Prepend inserts events at the head of the lot's history, newest first.
// Given events are applied in chronological order, so the last one ends
// up at index 0.
func (l *Lot) Prepend(events ...HistoryEvent) {
	for _, ev := range events {
		l.History = append([]HistoryEvent{ev}, l.History...)
	}
}

// FormatMoney renders an amount as "$1,234,567" with thousands
// separators, matching the operator-facing ledger descriptions.
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(0)

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')

	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
