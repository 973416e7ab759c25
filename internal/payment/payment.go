// Package payment holds the operator's personal payment ledger and the
// portfolio statistics derived from it.
package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the state of a personal payment record.
type Status string

const (
	StatusPending   Status = "pendiente"
	StatusCompleted Status = "completado"
	StatusOverdue   Status = "atrasado"
)

// Categories are the fixed expense categories offered by the capture
// form.
var Categories = []string{
	"Vivienda", "Servicios", "Transporte", "Alimentación",
	"Entretenimiento", "Salud", "Otros",
}

// Payment is one personal payment record.
type Payment struct {
	ID       string          `json:"id"`
	Concept  string          `json:"concept"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
	Status   Status          `json:"status"`
	Category string          `json:"category"`
}

// New creates a pending payment dated today.
func New(concept string, amount decimal.Decimal, category string) Payment {
	return Payment{
		ID:       uuid.NewString(),
		Concept:  concept,
		Amount:   amount,
		Date:     time.Now().Format("2006-01-02"),
		Status:   StatusPending,
		Category: category,
	}
}
