package client

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClients(now time.Time) []*Client {
	return []*Client{
		{
			ID: "c1", Name: "Ana", Division: "San Rafael", LotID: "L-101",
			Payments: []PaymentSchedule{
				{ID: "p1", Amount: decimal.NewFromInt(5000), DueDate: now.AddDate(0, 0, 5).Format(dateLayout), Status: SchedulePending},
				{ID: "p2", Amount: decimal.NewFromInt(5000), DueDate: "2023-08-01", Status: SchedulePaid},
			},
		},
		{
			ID: "c2", Name: "Luis", Division: "Colonia Pedregal", LotID: "P-202",
			Payments: []PaymentSchedule{
				{ID: "p3", Amount: decimal.NewFromInt(3500), DueDate: now.AddDate(0, 0, -2).Format(dateLayout), Status: ScheduleOverdue},
			},
		},
	}
}

func TestOutstandingBalance(t *testing.T) {
	now := time.Now()
	cs := testClients(now)
	assert.True(t, cs[0].OutstandingBalance().Equal(decimal.NewFromInt(5000)))
	assert.True(t, cs[1].OutstandingBalance().Equal(decimal.NewFromInt(3500)))
}

func TestUpcomingSortedAndUnpaidOnly(t *testing.T) {
	now := time.Now()
	ups := Upcoming(testClients(now))

	require.Len(t, ups, 2)
	// Overdue installment sorts first.
	assert.Equal(t, "p3", ups[0].ID)
	assert.Equal(t, "Luis", ups[0].ClientName)
	assert.Equal(t, "p1", ups[1].ID)
}

func TestCountOverdue(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 1, CountOverdue(testClients(now), now))
}

func TestDueUnparseableDate(t *testing.T) {
	p := PaymentSchedule{DueDate: "mañana"}
	assert.False(t, p.Due(time.Now()))
}

func TestLookups(t *testing.T) {
	now := time.Now()
	cs := testClients(now)

	assert.Len(t, ByDivision(cs, "San Rafael"), 1)
	assert.Empty(t, ByDivision(cs, "Unidad Lomas"))

	assert.Equal(t, "c1", ByLot(cs, "San Rafael", "L-101").ID)
	assert.Nil(t, ByLot(cs, "San Rafael", "L-999"))

	assert.Equal(t, "c2", FindByID(cs, "c2").ID)
	assert.Nil(t, FindByID(cs, "nope"))
}

func TestAddFilePrepends(t *testing.T) {
	c := New("Ana", "a@b.c", "555", "San Rafael", "L-101")
	c.AddFile(File{ID: "f1", Name: "contrato.pdf"})
	c.AddFile(File{ID: "f2", Name: "ine.png"})

	require.Len(t, c.Files, 2)
	assert.Equal(t, "f2", c.Files[0].ID)
}
