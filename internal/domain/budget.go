package domain

// CategoryKey names one of the four fixed budget categories.
type CategoryKey string

// The category set is fixed. Users edit amounts within these four buckets
// but can never add or remove a bucket.
const (
	CategoryFlights       CategoryKey = "flights"
	CategoryAccommodation CategoryKey = "accommodation"
	CategoryActivities    CategoryKey = "activities"
	CategoryMiscellaneous CategoryKey = "miscellaneous"
)

// CategoryKeys lists the fixed categories in display order.
var CategoryKeys = []CategoryKey{
	CategoryFlights,
	CategoryAccommodation,
	CategoryActivities,
	CategoryMiscellaneous,
}

// ValidCategory reports whether key names one of the four fixed categories.
func ValidCategory(key CategoryKey) bool {
	for _, k := range CategoryKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Currencies is the fixed set of supported currency codes.
var Currencies = []string{"USD", "EUR", "GBP", "CAD", "AUD", "JPY"}

// ValidCurrency reports whether code is one of the supported currencies.
func ValidCurrency(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}

// BudgetCategory tracks estimated vs actual spend for one bucket.
// Both amounts are non-negative.
type BudgetCategory struct {
	Estimated float64 `json:"estimated"`
	Actual    float64 `json:"actual"`
}

// BudgetSheet is the budget for the whole trip: a currency code and the
// four fixed categories. The categories are struct fields rather than a
// map so the fixed-set invariant holds by construction.
type BudgetSheet struct {
	Currency      string         `json:"currency"`
	Flights       BudgetCategory `json:"flights"`
	Accommodation BudgetCategory `json:"accommodation"`
	Activities    BudgetCategory `json:"activities"`
	Miscellaneous BudgetCategory `json:"miscellaneous"`
}

// Category returns the named category. ok is false for an unknown key.
func (b BudgetSheet) Category(key CategoryKey) (cat BudgetCategory, ok bool) {
	switch key {
	case CategoryFlights:
		return b.Flights, true
	case CategoryAccommodation:
		return b.Accommodation, true
	case CategoryActivities:
		return b.Activities, true
	case CategoryMiscellaneous:
		return b.Miscellaneous, true
	}
	return BudgetCategory{}, false
}

// SetCategory replaces the named category. Returns false (sheet
// unchanged) for an unknown key.
func (b *BudgetSheet) SetCategory(key CategoryKey, cat BudgetCategory) bool {
	switch key {
	case CategoryFlights:
		b.Flights = cat
	case CategoryAccommodation:
		b.Accommodation = cat
	case CategoryActivities:
		b.Activities = cat
	case CategoryMiscellaneous:
		b.Miscellaneous = cat
	default:
		return false
	}
	return true
}

// TotalEstimated sums the estimated amounts of all four categories.
func (b BudgetSheet) TotalEstimated() float64 {
	return b.Flights.Estimated + b.Accommodation.Estimated +
		b.Activities.Estimated + b.Miscellaneous.Estimated
}

// TotalActual sums the actual amounts of all four categories.
func (b BudgetSheet) TotalActual() float64 {
	return b.Flights.Actual + b.Accommodation.Actual +
		b.Activities.Actual + b.Miscellaneous.Actual
}

// OverBudget reports whether total actual spend exceeds the total estimate.
func (b BudgetSheet) OverBudget() bool {
	return b.TotalActual() > b.TotalEstimated()
}
