package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarques/tripfolio/backend/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
}

// ---- Date ------------------------------------------------------------------

func TestDate_AddDays(t *testing.T) {
	d := domain.Date{Year: 2025, Month: time.June, Day: 30}

	assert.Equal(t, "2025-07-01", d.AddDays(1).String())
	assert.Equal(t, "2025-06-28", d.AddDays(-2).String())
	assert.Equal(t, d, d.AddDays(0))
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := domain.Date{Year: 2025, Month: time.June, Day: 1}

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-01"`, string(b))

	var back domain.Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)
}

func TestDate_ZeroMarshalsAsNull(t *testing.T) {
	b, err := json.Marshal(domain.Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var back domain.Date
	require.NoError(t, json.Unmarshal([]byte("null"), &back))
	assert.True(t, back.IsZero())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := domain.ParseDate("June 1st")
	assert.Error(t, err)
}

// ---- DefaultDocument -------------------------------------------------------

func TestDefaultDocument_Shape(t *testing.T) {
	doc := domain.DefaultDocument(fixedNow())

	require.Len(t, doc.Itinerary, 2)
	assert.Equal(t, 1, doc.Itinerary[0].Day)
	assert.Equal(t, 2, doc.Itinerary[1].Day)
	assert.Equal(t, "2025-06-01", doc.StartDate.String())
	assert.Equal(t, "2025-06-02", doc.EndDate.String())
	assert.Equal(t, doc.StartDate, doc.Itinerary[0].Date)
	assert.Equal(t, doc.StartDate.AddDays(1), doc.Itinerary[1].Date)

	// Day 1 is pre-filled, day 2 starts empty.
	require.Len(t, doc.Itinerary[0].Activities, 1)
	assert.Equal(t, "09:00", doc.Itinerary[0].Activities[0].Time)
	assert.Empty(t, doc.Itinerary[1].Activities)

	assert.Equal(t, "USD", doc.Budget.Currency)
	assert.Equal(t, 600.0, doc.Budget.Flights.Estimated)
	assert.Equal(t, 500.0, doc.Budget.Accommodation.Estimated)
	assert.Equal(t, 400.0, doc.Budget.Activities.Estimated)
	assert.Equal(t, 100.0, doc.Budget.Miscellaneous.Estimated)
	assert.Zero(t, doc.Budget.TotalActual())
}

func TestDefaultDocument_FreshIDs(t *testing.T) {
	a := domain.DefaultDocument(fixedNow())
	b := domain.DefaultDocument(fixedNow())

	assert.NotEqual(t, a.Itinerary[0].ID, b.Itinerary[0].ID)
}

// ---- BudgetSheet -----------------------------------------------------------

func TestBudgetSheet_Totals(t *testing.T) {
	b := domain.BudgetSheet{
		Flights:       domain.BudgetCategory{Estimated: 600, Actual: 650},
		Accommodation: domain.BudgetCategory{Estimated: 500, Actual: 480},
		Activities:    domain.BudgetCategory{Estimated: 400, Actual: 100},
		Miscellaneous: domain.BudgetCategory{Estimated: 100, Actual: 25},
	}

	assert.Equal(t, 1600.0, b.TotalEstimated())
	assert.Equal(t, 1255.0, b.TotalActual())
	assert.False(t, b.OverBudget())

	b.Miscellaneous.Actual = 400
	assert.True(t, b.OverBudget())
}

func TestBudgetSheet_OverBudget_EqualIsNotOver(t *testing.T) {
	b := domain.BudgetSheet{Flights: domain.BudgetCategory{Estimated: 100, Actual: 100}}
	assert.False(t, b.OverBudget())
}

func TestBudgetSheet_CategoryAccess(t *testing.T) {
	var b domain.BudgetSheet

	ok := b.SetCategory(domain.CategoryFlights, domain.BudgetCategory{Estimated: 42})
	require.True(t, ok)

	cat, ok := b.Category(domain.CategoryFlights)
	require.True(t, ok)
	assert.Equal(t, 42.0, cat.Estimated)

	_, ok = b.Category(domain.CategoryKey("groceries"))
	assert.False(t, ok)
	assert.False(t, b.SetCategory(domain.CategoryKey("groceries"), domain.BudgetCategory{}))
}

func TestValidCategory(t *testing.T) {
	for _, key := range domain.CategoryKeys {
		assert.True(t, domain.ValidCategory(key), string(key))
	}
	assert.False(t, domain.ValidCategory(domain.CategoryKey("groceries")))
	assert.False(t, domain.ValidCategory(domain.CategoryKey("")))
}

func TestValidCurrency(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "GBP", "CAD", "AUD", "JPY"} {
		assert.True(t, domain.ValidCurrency(code), code)
	}
	assert.False(t, domain.ValidCurrency("BTC"))
	assert.False(t, domain.ValidCurrency("usd")) // codes are case-sensitive
	assert.False(t, domain.ValidCurrency(""))
}

// ---- Clone -----------------------------------------------------------------

func TestTripDocument_Clone_IsDeep(t *testing.T) {
	doc := domain.DefaultDocument(fixedNow())

	clone := doc.Clone()
	clone.Itinerary[0].Activities[0].Description = "changed"
	clone.Itinerary[1].Day = 99

	assert.Equal(t, "Arrival and check-in", doc.Itinerary[0].Activities[0].Description)
	assert.Equal(t, 2, doc.Itinerary[1].Day)
}

// ---- Record ----------------------------------------------------------------

func TestRecord_RoundTrip(t *testing.T) {
	doc := domain.DefaultDocument(fixedNow())
	doc.Title = "Kyoto in Autumn"
	doc.Budget.Currency = "JPY"

	rec, err := domain.EncodeRecord(doc, fixedNow())
	require.NoError(t, err)
	assert.Equal(t, fixedNow(), rec.LastUpdated)

	back, err := rec.Document()
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestRecord_CorruptPayload(t *testing.T) {
	_, err := domain.Record{ItineraryData: "{not json"}.Document()
	assert.ErrorIs(t, err, domain.ErrCorruptRecord)

	_, err = domain.Record{}.Document()
	assert.ErrorIs(t, err, domain.ErrCorruptRecord)
}
