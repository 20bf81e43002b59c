// Package mutate implements the mutation engine: one pure function per
// user-initiated edit. Every operation is total: it takes a document and
// parameters and returns a new document, never an error. Unknown IDs,
// unknown keys, and unparsable values all yield the input document
// unchanged. Persistence is the caller's job; nothing here has side effects.
//
// Operations always return a deep copy (or the untouched input for a
// no-op), so a caller holding a stale snapshot can never corrupt the
// current one. Local conflict policy is last-write-wins: the caller takes
// the freshest known document as the basis for each edit.
package mutate

import (
	"math"
	"strconv"

	"github.com/google/uuid"

	"github.com/dmarques/tripfolio/backend/internal/domain"
)

// Scalar field names accepted by SetField. They match the document's
// JSON keys so the HTTP layer can pass field names through untouched.
const (
	FieldTitle       = "title"
	FieldDestination = "destination"
	FieldNotes       = "notes"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
)

// Activity field names accepted by SetActivityField.
const (
	ActivityFieldTime        = "time"
	ActivityFieldDescription = "description"
)

// Budget field names accepted by SetBudgetAmount.
const (
	BudgetFieldEstimated = "estimated"
	BudgetFieldActual    = "actual"
)

// seededActivityTime and seededActivityDescription pre-fill the single
// activity that every freshly added day starts with.
const (
	seededActivityTime        = "09:00"
	seededActivityDescription = "New Day Activity"
)

// SetField replaces one scalar field of the document.
//
// Changing startDate recomputes every day's date from the new start and
// the day's existing number; day numbers and activities are untouched.
// An unknown field name or an unparsable date is a no-op.
func SetField(doc domain.TripDocument, field, value string) domain.TripDocument {
	out := doc.Clone()
	switch field {
	case FieldTitle:
		out.Title = value
	case FieldDestination:
		out.Destination = value
	case FieldNotes:
		out.Notes = value
	case FieldStartDate:
		d, err := domain.ParseDate(value)
		if err != nil {
			return doc
		}
		out.StartDate = d
		rederiveDates(&out)
	case FieldEndDate:
		d, err := domain.ParseDate(value)
		if err != nil {
			return doc
		}
		out.EndDate = d
	default:
		return doc
	}
	return out
}

// SetActivityField replaces the time or description of one activity.
// Unknown day ID, activity ID, or field name is a no-op.
func SetActivityField(doc domain.TripDocument, dayID, activityID uuid.UUID, field, value string) domain.TripDocument {
	if field != ActivityFieldTime && field != ActivityFieldDescription {
		return doc
	}
	di := doc.FindDay(dayID)
	if di < 0 {
		return doc
	}
	ai := doc.Itinerary[di].FindActivity(activityID)
	if ai < 0 {
		return doc
	}

	out := doc.Clone()
	if field == ActivityFieldTime {
		out.Itinerary[di].Activities[ai].Time = value
	} else {
		out.Itinerary[di].Activities[ai].Description = value
	}
	return out
}

// AddActivity appends a blank activity with a fresh ID to the named day.
// Unknown day ID is a no-op.
func AddActivity(doc domain.TripDocument, dayID uuid.UUID) domain.TripDocument {
	di := doc.FindDay(dayID)
	if di < 0 {
		return doc
	}

	out := doc.Clone()
	out.Itinerary[di].Activities = append(out.Itinerary[di].Activities, domain.Activity{
		ID: uuid.New(),
	})
	return out
}

// RemoveActivity removes one activity from a day. A day left with zero
// activities is valid. Unknown IDs are a no-op.
func RemoveActivity(doc domain.TripDocument, dayID, activityID uuid.UUID) domain.TripDocument {
	di := doc.FindDay(dayID)
	if di < 0 {
		return doc
	}
	ai := doc.Itinerary[di].FindActivity(activityID)
	if ai < 0 {
		return doc
	}

	out := doc.Clone()
	acts := out.Itinerary[di].Activities
	out.Itinerary[di].Activities = append(acts[:ai], acts[ai+1:]...)
	return out
}

// AddDay appends a new day numbered count+1, dated from the start date,
// seeded with one placeholder activity. Days are only ever appended at
// the end, never inserted mid-sequence.
func AddDay(doc domain.TripDocument) domain.TripDocument {
	out := doc.Clone()
	day := len(out.Itinerary) + 1
	out.Itinerary = append(out.Itinerary, domain.DayPlan{
		ID:   uuid.New(),
		Day:  day,
		Date: out.StartDate.AddDays(day - 1),
		Activities: []domain.Activity{
			{ID: uuid.New(), Time: seededActivityTime, Description: seededActivityDescription},
		},
	})
	return out
}

// RemoveDay removes the named day, renumbers the remaining days 1..N in
// their existing order, and recomputes each date from the start date.
// Renumbering runs even when the ID is unknown; it is idempotent, so the
// unknown-ID case is simply a renumber of an already-dense sequence.
func RemoveDay(doc domain.TripDocument, dayID uuid.UUID) domain.TripDocument {
	out := doc.Clone()
	if di := out.FindDay(dayID); di >= 0 {
		out.Itinerary = append(out.Itinerary[:di], out.Itinerary[di+1:]...)
	}
	for i := range out.Itinerary {
		out.Itinerary[i].Day = i + 1
		out.Itinerary[i].Date = out.StartDate.AddDays(i)
	}
	return out
}

// SetBudgetCurrency replaces the budget currency. Codes outside the
// supported set leave the document unchanged; the HTTP layer reports the
// rejection, the engine itself stays total.
func SetBudgetCurrency(doc domain.TripDocument, currency string) domain.TripDocument {
	if !domain.ValidCurrency(currency) {
		return doc
	}
	out := doc.Clone()
	out.Budget.Currency = currency
	return out
}

// SetBudgetAmount parses raw as a number and writes it into the named
// category's estimated or actual amount. An unparsable or negative value
// becomes 0 (never NaN, never an error). Unknown category key or field
// name is a no-op.
func SetBudgetAmount(doc domain.TripDocument, key domain.CategoryKey, field, raw string) domain.TripDocument {
	if field != BudgetFieldEstimated && field != BudgetFieldActual {
		return doc
	}
	cat, ok := doc.Budget.Category(key)
	if !ok {
		return doc
	}

	// ParseFloat accepts "NaN" and "Inf" without error; those are as
	// unusable as a parse failure, so they collapse to 0 too.
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		amount = 0
	}

	if field == BudgetFieldEstimated {
		cat.Estimated = amount
	} else {
		cat.Actual = amount
	}

	out := doc.Clone()
	out.Budget.SetCategory(key, cat)
	return out
}

// rederiveDates recomputes every day's date from the document's start
// date and the day's own number.
func rederiveDates(doc *domain.TripDocument) {
	for i := range doc.Itinerary {
		doc.Itinerary[i].Date = doc.StartDate.AddDays(doc.Itinerary[i].Day - 1)
	}
}
