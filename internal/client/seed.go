package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seed returns the illustrative client portfolio used on first run,
// before any real data has been captured.
func Seed(now time.Time) []*Client {
	return []*Client{
		{
			ID:       "c1",
			Name:     "Roberto Gómez",
			Email:    "roberto@email.com",
			Phone:    "555-0102",
			Division: "San Rafael",
			LotID:    "L-101",
			Payments: []PaymentSchedule{
				{
					ID:      "p1",
					Amount:  decimal.NewFromInt(5000),
					DueDate: now.AddDate(0, 0, 2).Format(dateLayout),
					Status:  SchedulePending,
				},
				{
					ID:      "p2",
					Amount:  decimal.NewFromInt(5000),
					DueDate: "2023-08-01",
					Status:  SchedulePaid,
				},
			},
		},
		{
			ID:       "c2",
			Name:     "Elena Martínez",
			Email:    "elena.m@email.com",
			Phone:    "555-0199",
			Division: "Colonia Pedregal",
			LotID:    "P-202",
			Payments: []PaymentSchedule{
				{
					ID:      "p3",
					Amount:  decimal.NewFromInt(3500),
					DueDate: now.AddDate(0, 0, -1).Format(dateLayout),
					Status:  ScheduleOverdue,
				},
			},
		},
	}
}
