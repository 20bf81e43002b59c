package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultDocument returns the document a brand-new user starts with:
// a two-day trip beginning on now's calendar date, one pre-filled
// activity on day 1, and starter budget estimates in USD.
//
// The factory has no side effects; callers pass time.Now() in production
// and a fixed time in tests.
func DefaultDocument(now time.Time) TripDocument {
	start := DateOf(now)
	return TripDocument{
		Title:       "My Trip",
		Destination: "",
		Notes:       "",
		StartDate:   start,
		EndDate:     start.AddDays(1),
		Itinerary: []DayPlan{
			{
				ID:   uuid.New(),
				Day:  1,
				Date: start,
				Activities: []Activity{
					{ID: uuid.New(), Time: "09:00", Description: "Arrival and check-in"},
				},
			},
			{
				ID:         uuid.New(),
				Day:        2,
				Date:       start.AddDays(1),
				Activities: []Activity{},
			},
		},
		Budget: BudgetSheet{
			Currency:      "USD",
			Flights:       BudgetCategory{Estimated: 600},
			Accommodation: BudgetCategory{Estimated: 500},
			Activities:    BudgetCategory{Estimated: 400},
			Miscellaneous: BudgetCategory{Estimated: 100},
		},
	}
}
