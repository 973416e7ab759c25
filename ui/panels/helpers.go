package panels

import (
	"strings"

	"github.com/shopspring/decimal"

	"terranova/internal/lot"
)

// parseMoney parses an operator-typed amount, tolerating the grouping
// format the UI itself prints ($1,250,000).
func parseMoney(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// statusLabel maps a lot status to its display word.
func statusLabel(s lot.Status) string {
	switch s {
	case lot.StatusAvailable:
		return "Disponible"
	case lot.StatusSold:
		return "Vendido"
	case lot.StatusReserved:
		return "Reservado"
	}
	return string(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
