// Package client holds purchaser records and their payment schedules.
// The lot registry only reads these to answer "is this lot linked to a
// client"; it neither owns nor validates them.
package client

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScheduleStatus is the state of one scheduled installment.
type ScheduleStatus string

const (
	SchedulePaid    ScheduleStatus = "pagado"
	SchedulePending ScheduleStatus = "pendiente"
	ScheduleOverdue ScheduleStatus = "atrasado"
)

// dateLayout is the due-date format stored in the snapshot.
const dateLayout = "2006-01-02"

// PaymentSchedule is one scheduled installment of a purchase contract.
type PaymentSchedule struct {
	ID      string          `json:"id"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"dueDate"`
	Status  ScheduleStatus  `json:"status"`
}

// Due reports whether the installment's due date has passed. An
// unparseable date is never due.
func (p PaymentSchedule) Due(now time.Time) bool {
	d, err := time.Parse(dateLayout, p.DueDate)
	if err != nil {
		return false
	}
	return d.Before(now)
}

// File is a document attached to a client: images as data URLs, anything
// else as plain text.
type File struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

// Client is a purchaser. The lot link is a weak reference: LotID matches
// a Lot's human-readable number within Division, with no referential
// integrity enforced.
type Client struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone"`
	Division string            `json:"division"`
	LotID    string            `json:"lotId"`
	Payments []PaymentSchedule `json:"payments"`
	Files    []File            `json:"files"`
}

// New creates a client with a fresh id and empty schedules.
func New(name, email, phone, division, lotID string) *Client {
	return &Client{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Phone:    phone,
		Division: division,
		LotID:    lotID,
	}
}

// OutstandingBalance sums the unpaid installments.
func (c *Client) OutstandingBalance() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.Payments {
		if p.Status != SchedulePaid {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// AddFile prepends a document, newest first.
func (c *Client) AddFile(f File) {
	c.Files = append([]File{f}, c.Files...)
}

// UpcomingPayment is an unpaid installment joined with its client, for
// the dashboard list.
type UpcomingPayment struct {
	PaymentSchedule
	ClientID   string
	ClientName string
}

// Upcoming collects every unpaid installment across clients, ordered by
// due date ascending (overdue first).
func Upcoming(clients []*Client) []UpcomingPayment {
	var out []UpcomingPayment
	for _, c := range clients {
		for _, p := range c.Payments {
			if p.Status == SchedulePaid {
				continue
			}
			out = append(out, UpcomingPayment{PaymentSchedule: p, ClientID: c.ID, ClientName: c.Name})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate < out[j].DueDate
	})
	return out
}

// CountOverdue returns how many unpaid installments are past due.
func CountOverdue(clients []*Client, now time.Time) int {
	n := 0
	for _, up := range Upcoming(clients) {
		if up.Due(now) {
			n++
		}
	}
	return n
}

// ByDivision filters clients belonging to a division.
func ByDivision(clients []*Client, division string) []*Client {
	var out []*Client
	for _, c := range clients {
		if c.Division == division {
			out = append(out, c)
		}
	}
	return out
}

// ByLot returns the client linked to a lot number within a division, or
// nil. The weak reference can dangle; callers treat nil as "unlinked".
func ByLot(clients []*Client, division, lotNumber string) *Client {
	for _, c := range clients {
		if c.Division == division && c.LotID == lotNumber {
			return c
		}
	}
	return nil
}

// FindByID returns the client with the given id, or nil.
func FindByID(clients []*Client, id string) *Client {
	for _, c := range clients {
		if c.ID == id {
			return c
		}
	}
	return nil
}
