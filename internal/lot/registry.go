package lot

import (
	"errors"
	"fmt"

	"terranova/pkg/geometry"
)

// ErrNotFound is returned when an update names a lot id the registry
// does not hold. The reference behavior silently dropped these updates;
// surfacing the error lets callers decide to log and continue instead.
var ErrNotFound = errors.New("lot: not found")

// numberBase is the starting point of the human-readable lot counter:
// the first lot in a division is L-101.
const numberBase = 101

// Registry is the lot collection of a single division. Insertion order
// is preserved but not semantically significant. There is no delete
// operation; removing a boundary is a lot update, not a removal.
type Registry struct {
	lots []*Lot
}

// NewRegistry creates a registry seeded with existing lots, e.g. from a
// loaded snapshot.
func NewRegistry(existing []*Lot) *Registry {
	r := &Registry{}
	r.lots = append(r.lots, existing...)
	return r
}

// Add stamps the unconditional creation event and appends the lot.
func (r *Registry) Add(l *Lot) {
	l.Prepend(CreationEvent(l))
	r.lots = append(r.lots, l)
}

// Update looks up the prior snapshot by id, runs the history diff,
// prepends any resulting event to the updated lot, and replaces the old
// entry. Returns ErrNotFound if no lot with that id exists; the update
// is not applied in that case.
func (r *Registry) Update(updated *Lot) error {
	for i, old := range r.lots {
		if old.ID != updated.ID {
			continue
		}
		if ev := Diff(old, updated); ev != nil {
			updated.Prepend(*ev)
		}
		r.lots[i] = updated
		return nil
	}
	return ErrNotFound
}

// Replace swaps in an updated lot without running the history diff.
// Callers that stamp their own events, such as sale formalization, use
// this instead of Update.
func (r *Registry) Replace(updated *Lot) error {
	for i, old := range r.lots {
		if old.ID == updated.ID {
			r.lots[i] = updated
			return nil
		}
	}
	return ErrNotFound
}

// Get returns the lot with the given id, or nil.
func (r *Registry) Get(id string) *Lot {
	for _, l := range r.lots {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// GetByNumber returns the lot with the given human-readable number, or
// nil. Client records reference lots by number, not id.
func (r *Registry) GetByNumber(number string) *Lot {
	for _, l := range r.lots {
		if l.Number == number {
			return l
		}
	}
	return nil
}

// All returns the lots in insertion order. The slice is shared; callers
// must not mutate it.
func (r *Registry) All() []*Lot {
	return r.lots
}

// Len returns the number of lots.
func (r *Registry) Len() int {
	return len(r.lots)
}

// NextNumber returns the label for the next lot, from the running
// counter "count + 101".
func (r *Registry) NextNumber() string {
	return fmt.Sprintf("L-%d", len(r.lots)+numberBase)
}

// CountByStatus returns how many lots are in the given sale state.
func (r *Registry) CountByStatus(s Status) int {
	n := 0
	for _, l := range r.lots {
		if l.Status == s {
			n++
		}
	}
	return n
}

// FindAt hit-tests a plan-space point against the lots: boundary
// containment first, then marker proximity within radius (plan units).
// Returns the last match so lots drawn on top win.
func (r *Registry) FindAt(p geometry.Point2D, radius float64) *Lot {
	var hit *Lot
	for _, l := range r.lots {
		if l.HasBoundary() {
			if geometry.PointInPolygon(p, l.Boundary) {
				hit = l
			}
			continue
		}
		if p.Distance(geometry.Point2D{X: l.X, Y: l.Y}) <= radius {
			hit = l
		}
	}
	return hit
}
