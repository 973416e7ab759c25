package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	payments := []Payment{
		{Amount: decimal.NewFromInt(1000), Status: StatusCompleted, Category: "Vivienda"},
		{Amount: decimal.NewFromInt(3000), Status: StatusPending, Category: "Servicios"},
		{Amount: decimal.NewFromInt(2000), Status: StatusOverdue, Category: "Vivienda"},
	}

	s := Summarize(payments)
	assert.Equal(t, 3, s.Count)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(6000)))
	assert.InDelta(t, 2000.0, s.Mean, 1e-9)
	assert.InDelta(t, 1000.0, s.StdDev, 1e-9)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.Overdue)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Count)
	assert.True(t, s.Total.IsZero())
	assert.Zero(t, s.Mean)
}

func TestByCategory(t *testing.T) {
	payments := []Payment{
		{Amount: decimal.NewFromInt(1000), Category: "Vivienda"},
		{Amount: decimal.NewFromInt(500), Category: "Vivienda"},
		{Amount: decimal.NewFromInt(200), Category: "Salud"},
	}

	totals := ByCategory(payments)
	assert.True(t, totals["Vivienda"].Equal(decimal.NewFromInt(1500)))
	assert.True(t, totals["Salud"].Equal(decimal.NewFromInt(200)))
}

func TestNewDefaults(t *testing.T) {
	p := New("Renta casa", decimal.NewFromInt(8000), "Vivienda")
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, StatusPending, p.Status)
	assert.Equal(t, "Vivienda", p.Category)
}
