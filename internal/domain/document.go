// Package domain contains the core data types for the Tripfolio backend.
// This package has zero dependencies on other internal packages and is
// imported by every other one (mutate, store, gateway, service, handler).
package domain

import (
	"github.com/google/uuid"
)

// TripDocument is the whole trip for one user: header fields, the ordered
// itinerary, and the budget sheet. It is the unit of persistence; the
// document is saved and loaded as a single JSON snapshot, never in parts.
type TripDocument struct {
	Title       string      `json:"title"`
	Destination string      `json:"destination"`
	Notes       string      `json:"notes"`
	StartDate   Date        `json:"startDate"`
	EndDate     Date        `json:"endDate"`
	Itinerary   []DayPlan   `json:"itinerary"`
	Budget      BudgetSheet `json:"budget"`
}

// DayPlan is one day of the trip with its ordered activities.
//
// Day numbers are dense and 1-based: after any insertion or removal the
// remaining days are renumbered 1..N in their existing order. Date is
// always derived as StartDate + (Day-1) days and is recomputed whenever
// StartDate or Day changes; it is never edited independently.
type DayPlan struct {
	ID         uuid.UUID  `json:"id"`
	Day        int        `json:"day"`
	Date       Date       `json:"date"`
	Activities []Activity `json:"activities"`
}

// Activity is a single itinerary entry. Time is a clock time like "09:00"
// and may be blank; Description is free text and may be blank. IDs are
// assigned at creation and never reused.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	Time        string    `json:"time"`
	Description string    `json:"description"`
}

// Clone returns a deep copy of the document. Mutations always operate on
// a clone so the caller's snapshot is never modified in place.
func (d TripDocument) Clone() TripDocument {
	out := d
	if d.Itinerary != nil {
		out.Itinerary = make([]DayPlan, len(d.Itinerary))
		for i, day := range d.Itinerary {
			out.Itinerary[i] = day.clone()
		}
	}
	return out
}

func (p DayPlan) clone() DayPlan {
	out := p
	if p.Activities != nil {
		out.Activities = make([]Activity, len(p.Activities))
		copy(out.Activities, p.Activities)
	}
	return out
}

// FindDay returns the index of the day with the given ID, or -1.
func (d TripDocument) FindDay(dayID uuid.UUID) int {
	for i, day := range d.Itinerary {
		if day.ID == dayID {
			return i
		}
	}
	return -1
}

// FindActivity returns the index of the activity with the given ID
// within the day, or -1.
func (p DayPlan) FindActivity(activityID uuid.UUID) int {
	for i, a := range p.Activities {
		if a.ID == activityID {
			return i
		}
	}
	return -1
}
