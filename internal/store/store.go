// Package store is the persistence port for the application snapshot.
// The core never touches storage; only the application shell loads and
// saves through the Store interface.
package store

import (
	"time"

	"terranova/internal/client"
	"terranova/internal/division"
	"terranova/internal/lot"
	"terranova/internal/payment"
	"terranova/internal/user"
)

// Snapshot is the single persisted state blob. Field names match the
// stored JSON keys of the reference blob.
type Snapshot struct {
	UserProfile      user.Profile          `json:"userProfile"`
	PersonalPayments []payment.Payment     `json:"personalPayments"`
	LotsByDivision   map[string][]*lot.Lot `json:"lotsByDivision"`
	DivisionMaps     map[string]string     `json:"divisionMaps"`
	Clients          []*client.Client      `json:"clients"`
	Divisions        []string              `json:"divisions"`
}

// Store loads and saves the snapshot. Load on a fresh install returns
// the built-in defaults, not an error.
type Store interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
}

// Defaults returns the first-run snapshot: seed divisions with empty
// lot collections, the illustrative client portfolio, and a blank
// profile.
func Defaults() *Snapshot {
	lots := make(map[string][]*lot.Lot, len(division.Seed))
	for _, name := range division.Seed {
		lots[name] = nil
	}

	return &Snapshot{
		UserProfile:    user.Default(),
		LotsByDivision: lots,
		DivisionMaps:   make(map[string]string),
		Clients:        client.Seed(time.Now()),
		Divisions:      append([]string(nil), division.Seed...),
	}
}
