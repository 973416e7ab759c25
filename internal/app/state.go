// Package app owns the live application state: the loaded snapshot, the
// per-division lot registries, and the event bus the UI listens on. All
// mutations run synchronously on the UI event loop; the mutex only
// guards against background saves.
package app

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"terranova/internal/client"
	"terranova/internal/lot"
	"terranova/internal/payment"
	"terranova/internal/store"
	"terranova/internal/user"
	"terranova/pkg/geometry"
)

// EventType identifies application events.
type EventType int

const (
	EventSnapshotLoaded EventType = iota
	EventLotsChanged
	EventPlanChanged
	EventClientsChanged
	EventPaymentsChanged
	EventProfileChanged
)

// EventListener is called when an event fires. For lot and plan events
// the payload is the division name.
type EventListener func(data interface{})

// ErrUnknownDivision is returned for operations naming a division the
// snapshot does not hold.
var ErrUnknownDivision = errors.New("app: unknown division")

// State holds the snapshot and the derived lot registries.
type State struct {
	mu sync.RWMutex

	store      store.Store
	snap       *store.Snapshot
	registries map[string]*lot.Registry
	listeners  map[EventType][]EventListener
}

// NewState creates a state bound to a persistence store.
func NewState(st store.Store) *State {
	return &State{
		store:      st,
		snap:       store.Defaults(),
		registries: make(map[string]*lot.Registry),
		listeners:  make(map[EventType][]EventListener),
	}
}

// On registers an event listener.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

func (s *State) emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, l := range listeners {
		l(data)
	}
}

// Load reads the snapshot through the store and rebuilds the
// registries. A load failure falls back to defaults so the session can
// still start.
func (s *State) Load() error {
	snap, err := s.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("snapshot load failed, starting from defaults")
		snap = store.Defaults()
	}

	s.mu.Lock()
	s.snap = snap
	s.registries = make(map[string]*lot.Registry, len(snap.Divisions))
	for _, name := range snap.Divisions {
		s.registries[name] = lot.NewRegistry(snap.LotsByDivision[name])
	}
	s.mu.Unlock()

	s.emit(EventSnapshotLoaded, nil)
	return err
}

// persist syncs the registries back into the snapshot and saves. A
// write failure (e.g. disk full) is logged and never interrupts the
// in-memory session.
func (s *State) persist() {
	s.mu.Lock()
	for name, reg := range s.registries {
		s.snap.LotsByDivision[name] = reg.All()
	}
	snap := s.snap
	s.mu.Unlock()

	if err := s.store.Save(snap); err != nil {
		log.Warn().Err(err).Msg("snapshot save failed, keeping in-memory state")
	}
}

// Save forces a snapshot write, e.g. on shutdown.
func (s *State) Save() {
	s.persist()
}

// Divisions returns the zone names in display order.
func (s *State) Divisions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Divisions
}

func (s *State) registry(division string) (*lot.Registry, error) {
	reg, ok := s.registries[division]
	if !ok {
		return nil, ErrUnknownDivision
	}
	return reg, nil
}

// DivisionLots returns the lots of a division in insertion order.
func (s *State) DivisionLots(division string) []*lot.Lot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, err := s.registry(division)
	if err != nil {
		return nil
	}
	return reg.All()
}

// LotAt hit-tests a plan-space point against a division's lots.
func (s *State) LotAt(division string, p geometry.Point2D, radius float64) *lot.Lot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, err := s.registry(division)
	if err != nil {
		return nil
	}
	return reg.FindAt(p, radius)
}

// AddTracedLot builds a lot from a closed boundary, stamps its creation
// event, and commits it to the division.
func (s *State) AddTracedLot(division string, boundary []geometry.Point2D) (*lot.Lot, error) {
	s.mu.Lock()
	reg, err := s.registry(division)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	l, err := lot.New(reg.NextNumber(), boundary)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	reg.Add(l)
	s.mu.Unlock()

	s.persist()
	s.emit(EventLotsChanged, division)
	return l, nil
}

// AddMarkerLot drops a boundary-less lot at a plan position.
func (s *State) AddMarkerLot(division string, x, y float64) (*lot.Lot, error) {
	s.mu.Lock()
	reg, err := s.registry(division)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	l := lot.NewMarker(reg.NextNumber(), x, y)
	reg.Add(l)
	s.mu.Unlock()

	s.persist()
	s.emit(EventLotsChanged, division)
	return l, nil
}

// UpdateLot runs the history diff and replaces the stored lot. An
// unknown id is logged and reported but otherwise dropped, matching the
// reference behavior of ignoring stale updates.
func (s *State) UpdateLot(division string, updated *lot.Lot) error {
	s.mu.Lock()
	reg, err := s.registry(division)
	if err == nil {
		err = reg.Update(updated)
	}
	s.mu.Unlock()

	if err != nil {
		log.Debug().Err(err).Str("division", division).Str("lot", updated.ID).
			Msg("lot update dropped")
		return err
	}

	s.persist()
	s.emit(EventLotsChanged, division)
	return nil
}

// FormalizeSale links a client to a lot and marks it sold, stamping the
// assignment event plus the status-change event. The double stamp
// mirrors the reference behavior.
func (s *State) FormalizeSale(division, lotID, clientID string) error {
	s.mu.Lock()
	reg, err := s.registry(division)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	old := reg.Get(lotID)
	if old == nil {
		s.mu.Unlock()
		return lot.ErrNotFound
	}

	updated := old.Clone()
	updated.ClientID = clientID
	updated.Status = lot.StatusSold
	updated.Prepend(lot.AssignmentEvents(updated, old.Status)...)
	err = reg.Replace(updated)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.persist()
	s.emit(EventLotsChanged, division)
	return nil
}

// PlanFor returns the division's site-plan data URL, or "".
func (s *State) PlanFor(division string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.DivisionMaps[division]
}

// SetDivisionPlan stores an uploaded site-plan image for a division.
func (s *State) SetDivisionPlan(division, dataURL string) {
	s.mu.Lock()
	s.snap.DivisionMaps[division] = dataURL
	s.mu.Unlock()

	s.persist()
	s.emit(EventPlanChanged, division)
}

// Clients returns the full client portfolio.
func (s *State) Clients() []*client.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clients
}

// AddClient registers a purchaser.
func (s *State) AddClient(c *client.Client) {
	s.mu.Lock()
	s.snap.Clients = append(s.snap.Clients, c)
	s.mu.Unlock()

	s.persist()
	s.emit(EventClientsChanged, nil)
}

// AddClientFile attaches a document to a client, newest first.
func (s *State) AddClientFile(clientID string, f client.File) {
	s.mu.Lock()
	c := client.FindByID(s.snap.Clients, clientID)
	if c != nil {
		c.AddFile(f)
	}
	s.mu.Unlock()

	if c == nil {
		return
	}
	s.persist()
	s.emit(EventClientsChanged, nil)
}

// SetScheduleStatus updates one installment of a client's plan.
func (s *State) SetScheduleStatus(clientID, scheduleID string, status client.ScheduleStatus) {
	s.mu.Lock()
	changed := false
	if c := client.FindByID(s.snap.Clients, clientID); c != nil {
		for i := range c.Payments {
			if c.Payments[i].ID == scheduleID {
				c.Payments[i].Status = status
				changed = true
			}
		}
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	s.persist()
	s.emit(EventClientsChanged, nil)
}

// PersonalPayments returns the operator's payment ledger.
func (s *State) PersonalPayments() []payment.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.PersonalPayments
}

// AddPayment appends a personal payment record.
func (s *State) AddPayment(p payment.Payment) {
	s.mu.Lock()
	s.snap.PersonalPayments = append(s.snap.PersonalPayments, p)
	s.mu.Unlock()

	s.persist()
	s.emit(EventPaymentsChanged, nil)
}

// DeletePayment removes a personal payment record by id.
func (s *State) DeletePayment(id string) {
	s.mu.Lock()
	pp := s.snap.PersonalPayments
	for i := range pp {
		if pp[i].ID == id {
			s.snap.PersonalPayments = append(pp[:i], pp[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.persist()
	s.emit(EventPaymentsChanged, nil)
}

// SetPaymentStatus updates one personal payment record.
func (s *State) SetPaymentStatus(id string, status payment.Status) {
	s.mu.Lock()
	for i := range s.snap.PersonalPayments {
		if s.snap.PersonalPayments[i].ID == id {
			s.snap.PersonalPayments[i].Status = status
		}
	}
	s.mu.Unlock()

	s.persist()
	s.emit(EventPaymentsChanged, nil)
}

// Profile returns the operator profile.
func (s *State) Profile() user.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.UserProfile
}

// SetProfile replaces the operator profile.
func (s *State) SetProfile(p user.Profile) {
	s.mu.Lock()
	s.snap.UserProfile = p
	s.mu.Unlock()

	s.persist()
	s.emit(EventProfileChanged, nil)
}

// DashboardStats are the headline numbers of the dashboard cards.
type DashboardStats struct {
	ProjectedSales decimal.Decimal
	ActiveClients  int
	OverduePayment int
	AvailableLots  int
}

// Stats computes the dashboard aggregates across all divisions.
func (s *State) Stats() DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	available := 0
	projected := decimal.Zero
	for _, reg := range s.registries {
		available += reg.CountByStatus(lot.StatusAvailable)
		for _, l := range reg.All() {
			if l.Status == lot.StatusSold {
				projected = projected.Add(l.Price)
			}
		}
	}

	return DashboardStats{
		ProjectedSales: projected,
		ActiveClients:  len(s.snap.Clients),
		OverduePayment: client.CountOverdue(s.snap.Clients, time.Now()),
		AvailableLots:  available,
	}
}
