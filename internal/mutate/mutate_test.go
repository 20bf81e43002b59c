package mutate_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarques/tripfolio/backend/internal/domain"
	"github.com/dmarques/tripfolio/backend/internal/mutate"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func defaultDoc() domain.TripDocument {
	return domain.DefaultDocument(fixedNow())
}

// assertDenseDays checks the core itinerary invariant: day numbers are
// exactly 1..N with dates derived from the start date.
func assertDenseDays(t *testing.T, doc domain.TripDocument) {
	t.Helper()
	for i, day := range doc.Itinerary {
		assert.Equal(t, i+1, day.Day, "day number at index %d", i)
		assert.Equal(t, doc.StartDate.AddDays(i), day.Date, "date of day %d", i+1)
	}
}

// ---- SetField --------------------------------------------------------------

func TestSetField_Scalars(t *testing.T) {
	doc := defaultDoc()

	doc = mutate.SetField(doc, mutate.FieldTitle, "Kyoto in Autumn")
	doc = mutate.SetField(doc, mutate.FieldDestination, "Kyoto, Japan")
	doc = mutate.SetField(doc, mutate.FieldNotes, "bring walking shoes")

	assert.Equal(t, "Kyoto in Autumn", doc.Title)
	assert.Equal(t, "Kyoto, Japan", doc.Destination)
	assert.Equal(t, "bring walking shoes", doc.Notes)
}

func TestSetField_StartDateRederivesAllDates(t *testing.T) {
	doc := mutate.AddDay(defaultDoc()) // 3 days

	got := mutate.SetField(doc, mutate.FieldStartDate, "2025-11-10")

	require.Len(t, got.Itinerary, 3)
	assert.Equal(t, "2025-11-10", got.StartDate.String())
	assertDenseDays(t, got)
	// Day numbers and activities are untouched.
	for i := range doc.Itinerary {
		assert.Equal(t, doc.Itinerary[i].Day, got.Itinerary[i].Day)
		assert.Equal(t, doc.Itinerary[i].Activities, got.Itinerary[i].Activities)
	}
}

func TestSetField_EndDateDoesNotTouchItinerary(t *testing.T) {
	doc := defaultDoc()

	got := mutate.SetField(doc, mutate.FieldEndDate, "2025-06-20")

	assert.Equal(t, "2025-06-20", got.EndDate.String())
	assert.Equal(t, doc.Itinerary, got.Itinerary)
}

func TestSetField_UnknownFieldIsNoop(t *testing.T) {
	doc := defaultDoc()
	assert.Equal(t, doc, mutate.SetField(doc, "currency", "EUR"))
}

func TestSetField_BadDateIsNoop(t *testing.T) {
	doc := defaultDoc()
	assert.Equal(t, doc, mutate.SetField(doc, mutate.FieldStartDate, "not-a-date"))
}

func TestSetField_DoesNotMutateInput(t *testing.T) {
	doc := defaultDoc()
	before := doc.Clone()

	_ = mutate.SetField(doc, mutate.FieldTitle, "changed")

	assert.Equal(t, before, doc)
}

// ---- Activities ------------------------------------------------------------

func TestAddActivity(t *testing.T) {
	doc := defaultDoc()
	day := doc.Itinerary[1]
	require.Empty(t, day.Activities)

	got := mutate.AddActivity(doc, day.ID)

	acts := got.Itinerary[1].Activities
	require.Len(t, acts, 1)
	assert.NotEqual(t, uuid.Nil, acts[0].ID)
	assert.Empty(t, acts[0].Time)
	assert.Empty(t, acts[0].Description)
}

func TestAddActivity_UnknownDayIsNoop(t *testing.T) {
	doc := defaultDoc()
	assert.Equal(t, doc, mutate.AddActivity(doc, uuid.New()))
}

func TestSetActivityField(t *testing.T) {
	doc := defaultDoc()
	day := doc.Itinerary[0]
	act := day.Activities[0]

	got := mutate.SetActivityField(doc, day.ID, act.ID, mutate.ActivityFieldTime, "14:15")
	got = mutate.SetActivityField(got, day.ID, act.ID, mutate.ActivityFieldDescription, "Temple visit")

	updated := got.Itinerary[0].Activities[0]
	assert.Equal(t, "14:15", updated.Time)
	assert.Equal(t, "Temple visit", updated.Description)
	assert.Equal(t, act.ID, updated.ID)
}

func TestSetActivityField_UnknownIDsAreNoop(t *testing.T) {
	doc := defaultDoc()
	day := doc.Itinerary[0]

	assert.Equal(t, doc, mutate.SetActivityField(doc, uuid.New(), day.Activities[0].ID, mutate.ActivityFieldTime, "10:00"))
	assert.Equal(t, doc, mutate.SetActivityField(doc, day.ID, uuid.New(), mutate.ActivityFieldTime, "10:00"))
	assert.Equal(t, doc, mutate.SetActivityField(doc, day.ID, day.Activities[0].ID, "location", "here"))
}

func TestRemoveActivity_LeavesEmptyDayIntact(t *testing.T) {
	doc := defaultDoc()
	day := doc.Itinerary[0]

	got := mutate.RemoveActivity(doc, day.ID, day.Activities[0].ID)

	require.Len(t, got.Itinerary, 2)
	assert.Empty(t, got.Itinerary[0].Activities)
}

func TestRemoveThenAddActivity_NeverReusesID(t *testing.T) {
	doc := defaultDoc()
	day := doc.Itinerary[0]
	removedID := day.Activities[0].ID

	got := mutate.RemoveActivity(doc, day.ID, removedID)
	got = mutate.AddActivity(got, day.ID)

	require.Len(t, got.Itinerary[0].Activities, 1)
	assert.NotEqual(t, removedID, got.Itinerary[0].Activities[0].ID)
}

// ---- Days ------------------------------------------------------------------

func TestAddDay_AppendsSeededDay(t *testing.T) {
	got := mutate.AddDay(defaultDoc())

	require.Len(t, got.Itinerary, 3)
	added := got.Itinerary[2]
	assert.Equal(t, 3, added.Day)
	assert.Equal(t, got.StartDate.AddDays(2), added.Date)
	require.Len(t, added.Activities, 1)
	assert.Equal(t, "09:00", added.Activities[0].Time)
	assert.Equal(t, "New Day Activity", added.Activities[0].Description)
}

func TestRemoveDay_FirstOfThree_RenumbersAndRedates(t *testing.T) {
	doc := mutate.AddDay(defaultDoc()) // 3 days
	first := doc.Itinerary[0]
	second := doc.Itinerary[1]
	third := doc.Itinerary[2]

	got := mutate.RemoveDay(doc, first.ID)

	require.Len(t, got.Itinerary, 2)
	// Surviving days keep their identity and order but are renumbered.
	assert.Equal(t, second.ID, got.Itinerary[0].ID)
	assert.Equal(t, third.ID, got.Itinerary[1].ID)
	assertDenseDays(t, got)
}

func TestRemoveDay_UnknownIDStillRenumbers(t *testing.T) {
	doc := defaultDoc()

	got := mutate.RemoveDay(doc, uuid.New())

	assert.Equal(t, doc, got)
	assertDenseDays(t, got)
}

func TestDayNumbers_DenseAfterAnySequence(t *testing.T) {
	doc := defaultDoc()

	// Grow to five days, then carve holes from the middle, front, and back.
	for i := 0; i < 3; i++ {
		doc = mutate.AddDay(doc)
	}
	doc = mutate.RemoveDay(doc, doc.Itinerary[2].ID)
	doc = mutate.RemoveDay(doc, doc.Itinerary[0].ID)
	doc = mutate.AddDay(doc)
	doc = mutate.RemoveDay(doc, doc.Itinerary[len(doc.Itinerary)-1].ID)

	require.Len(t, doc.Itinerary, 3)
	assertDenseDays(t, doc)

	seen := map[uuid.UUID]bool{}
	for _, day := range doc.Itinerary {
		assert.False(t, seen[day.ID], "duplicate day id")
		seen[day.ID] = true
	}
}

// ---- Budget ----------------------------------------------------------------

func TestSetBudgetCurrency(t *testing.T) {
	got := mutate.SetBudgetCurrency(defaultDoc(), "EUR")
	assert.Equal(t, "EUR", got.Budget.Currency)
}

func TestSetBudgetCurrency_InvalidCodeIsNoop(t *testing.T) {
	doc := defaultDoc()
	assert.Equal(t, doc, mutate.SetBudgetCurrency(doc, "BTC"))
	assert.Equal(t, doc, mutate.SetBudgetCurrency(doc, ""))
}

func TestSetBudgetAmount(t *testing.T) {
	got := mutate.SetBudgetAmount(defaultDoc(), domain.CategoryFlights, mutate.BudgetFieldActual, "642.50")
	assert.Equal(t, 642.50, got.Budget.Flights.Actual)
	// Estimated untouched.
	assert.Equal(t, 600.0, got.Budget.Flights.Estimated)
}

func TestSetBudgetAmount_NonNumericBecomesZero(t *testing.T) {
	got := mutate.SetBudgetAmount(defaultDoc(), domain.CategoryFlights, mutate.BudgetFieldEstimated, "abc")
	assert.Equal(t, 0.0, got.Budget.Flights.Estimated)
}

func TestSetBudgetAmount_NaNAndNegativeBecomeZero(t *testing.T) {
	got := mutate.SetBudgetAmount(defaultDoc(), domain.CategoryActivities, mutate.BudgetFieldActual, "NaN")
	assert.Equal(t, 0.0, got.Budget.Activities.Actual)

	got = mutate.SetBudgetAmount(defaultDoc(), domain.CategoryActivities, mutate.BudgetFieldActual, "-10")
	assert.Equal(t, 0.0, got.Budget.Activities.Actual)
}

func TestSetBudgetAmount_UnknownKeyOrFieldIsNoop(t *testing.T) {
	doc := defaultDoc()
	assert.Equal(t, doc, mutate.SetBudgetAmount(doc, domain.CategoryKey("groceries"), mutate.BudgetFieldActual, "10"))
	assert.Equal(t, doc, mutate.SetBudgetAmount(doc, domain.CategoryFlights, "spent", "10"))
}
