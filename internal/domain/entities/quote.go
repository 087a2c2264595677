package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ServiceCategory identifies a cleaning service line
type ServiceCategory string

const (
	CategoryResidential      ServiceCategory = "residential"
	CategoryCommercial       ServiceCategory = "commercial"
	CategoryDeepCleaning     ServiceCategory = "deep-cleaning"
	CategoryMoveInOut        ServiceCategory = "move-in-out"
	CategoryPostConstruction ServiceCategory = "post-construction"
	CategoryAirbnb           ServiceCategory = "airbnb"
	CategoryRestaurantCafe   ServiceCategory = "restaurant-cafe"
	CategoryClinicMedical    ServiceCategory = "clinic-medical"
)

// TableShape says which kind of size bracket prices a category
type TableShape int

const (
	ShapeUnknown TableShape = iota
	ShapeBedroomKeyed
	ShapeSqftKeyed
)

func (s TableShape) String() string {
	switch s {
	case ShapeBedroomKeyed:
		return "bedrooms"
	case ShapeSqftKeyed:
		return "square_feet"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the shape by name
func (s TableShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Shape returns the price table shape for the category.
// Categories outside the fixed set report ShapeUnknown.
func (c ServiceCategory) Shape() TableShape {
	switch c {
	case CategoryResidential, CategoryDeepCleaning, CategoryMoveInOut, CategoryAirbnb:
		return ShapeBedroomKeyed
	case CategoryPostConstruction, CategoryCommercial, CategoryRestaurantCafe, CategoryClinicMedical:
		return ShapeSqftKeyed
	default:
		return ShapeUnknown
	}
}

// AcceptsAddOns reports whether add-on extras can be priced for the category
func (c ServiceCategory) AcceptsAddOns() bool {
	switch c {
	case CategoryResidential, CategoryDeepCleaning, CategoryMoveInOut:
		return true
	}
	return false
}

// AcceptsFrequency reports whether recurring-service discounts apply
func (c ServiceCategory) AcceptsFrequency() bool {
	return c == CategoryResidential
}

// Price is a table entry: either a fixed amount in whole currency units
// or a marker that the job must be quoted by hand.
type Price struct {
	amount int
	custom bool
}

// FixedPrice returns a table entry with a known amount
func FixedPrice(amount int) Price {
	return Price{amount: amount}
}

// CustomPrice returns a table entry that requires a manual quote
func CustomPrice() Price {
	return Price{custom: true}
}

// IsCustom reports whether the entry requires a manual quote
func (p Price) IsCustom() bool { return p.custom }

// Amount returns the fixed amount; zero for custom entries
func (p Price) Amount() int { return p.amount }

// MarshalJSON encodes the entry as a number or "custom"
func (p Price) MarshalJSON() ([]byte, error) {
	if p.custom {
		return json.Marshal(CustomQuoteValue)
	}
	return json.Marshal(p.amount)
}

// AddOn is an optional flat-fee extra task
type AddOn struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Price int    `json:"price"`
}

// QuoteSelection is the wizard state the calculator prices.
// An empty Category means nothing has been chosen yet.
type QuoteSelection struct {
	Category      ServiceCategory `json:"category"`
	SizeBracket   string          `json:"size_bracket"`
	BathroomCount string          `json:"bathroom_count,omitempty"`
	Frequency     string          `json:"frequency,omitempty"`
	AddOns        []string        `json:"add_ons,omitempty"`
}

// IsEmpty reports whether no category has been picked
func (s QuoteSelection) IsEmpty() bool {
	return s.Category == ""
}

// Summary renders the raw selection as a single human readable line
func (s QuoteSelection) Summary() string {
	parts := []string{
		fmt.Sprintf("Service: %s", s.Category),
		fmt.Sprintf("Size: %s", s.SizeBracket),
	}
	if s.BathroomCount != "" {
		parts = append(parts, fmt.Sprintf("Bathrooms: %s", s.BathroomCount))
	}
	if s.Frequency != "" {
		parts = append(parts, fmt.Sprintf("Frequency: %s", s.Frequency))
	}
	if len(s.AddOns) > 0 {
		parts = append(parts, fmt.Sprintf("Add-ons: %s", strings.Join(s.AddOns, ", ")))
	}
	return strings.Join(parts, " | ")
}

// QuoteStatus classifies a quote result
type QuoteStatus string

const (
	QuoteIndeterminate QuoteStatus = "indeterminate"
	QuoteFixed         QuoteStatus = "fixed"
	QuoteCustom        QuoteStatus = "custom"
)

// CustomQuoteValue is the wire value for a manual-quote result
const CustomQuoteValue = "custom"

// QuoteResult is the outcome of pricing a selection.
// The zero value is indeterminate.
type QuoteResult struct {
	status QuoteStatus
	amount int
}

// IndeterminateQuote means required inputs are missing or unknown
func IndeterminateQuote() QuoteResult {
	return QuoteResult{status: QuoteIndeterminate}
}

// FixedQuote is a computed price in whole currency units
func FixedQuote(amount int) QuoteResult {
	return QuoteResult{status: QuoteFixed, amount: amount}
}

// CustomQuote means the business must quote the job manually
func CustomQuote() QuoteResult {
	return QuoteResult{status: QuoteCustom}
}

// Status returns the result classification
func (r QuoteResult) Status() QuoteStatus {
	if r.status == "" {
		return QuoteIndeterminate
	}
	return r.status
}

// Amount returns the price and whether one exists
func (r QuoteResult) Amount() (int, bool) {
	if r.Status() != QuoteFixed {
		return 0, false
	}
	return r.amount, true
}

// IsCustom reports a manual-quote result
func (r QuoteResult) IsCustom() bool { return r.Status() == QuoteCustom }

// IsIndeterminate reports a result with no derivable price
func (r QuoteResult) IsIndeterminate() bool { return r.Status() == QuoteIndeterminate }

// Display renders the result for people: "$251", "Custom quote", or "".
func (r QuoteResult) Display() string {
	switch r.Status() {
	case QuoteFixed:
		return fmt.Sprintf("$%d", r.amount)
	case QuoteCustom:
		return "Custom quote"
	default:
		return ""
	}
}

// MarshalJSON encodes the result as number | "custom" | null
func (r QuoteResult) MarshalJSON() ([]byte, error) {
	switch r.Status() {
	case QuoteFixed:
		return json.Marshal(r.amount)
	case QuoteCustom:
		return json.Marshal(CustomQuoteValue)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes number | "custom" | null
func (r *QuoteResult) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*r = IndeterminateQuote()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != CustomQuoteValue {
			return fmt.Errorf("unknown quote value %q", s)
		}
		*r = CustomQuote()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("quote must be a number, %q or null: %w", CustomQuoteValue, err)
	}
	if n < 0 {
		return fmt.Errorf("quote amount must not be negative: %d", n)
	}
	*r = FixedQuote(n)
	return nil
}
