package payment

import (
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a payment ledger for the dashboard cards and the AI
// consultant context.
type Stats struct {
	Count     int
	Total     decimal.Decimal
	Mean      float64
	StdDev    float64
	Pending   int
	Completed int
	Overdue   int
}

// Summarize computes ledger statistics. An empty ledger yields zeroes.
func Summarize(payments []Payment) Stats {
	s := Stats{Count: len(payments), Total: decimal.Zero}
	if len(payments) == 0 {
		return s
	}

	amounts := make([]float64, 0, len(payments))
	for _, p := range payments {
		s.Total = s.Total.Add(p.Amount)
		amounts = append(amounts, p.Amount.InexactFloat64())

		switch p.Status {
		case StatusPending:
			s.Pending++
		case StatusCompleted:
			s.Completed++
		case StatusOverdue:
			s.Overdue++
		}
	}

	s.Mean = stat.Mean(amounts, nil)
	if len(amounts) > 1 {
		s.StdDev = stat.StdDev(amounts, nil)
	}
	return s
}

// ByCategory totals the ledger per category, preserving the fixed
// category order for display.
func ByCategory(payments []Payment) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, p := range payments {
		totals[p.Category] = totals[p.Category].Add(p.Amount)
	}
	return totals
}
