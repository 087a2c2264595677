package services

import (
	"context"
	"math"

	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/observability"
)

// unknownCategoryLabel stands in for any category outside the catalog on metrics
const unknownCategoryLabel = "unknown"

// CalculateQuote prices a selection against the static tables.
//
// It never fails: a selection that cannot be priced yet (no category,
// unknown category or bracket) yields an indeterminate result, and a
// bracket marked custom short-circuits before any surcharge, discount
// or add-on is considered. Rounding is half away from zero, applied
// after the surcharge and again after the discount.
func CalculateQuote(sel entities.QuoteSelection) entities.QuoteResult {
	if sel.IsEmpty() {
		return entities.IndeterminateQuote()
	}

	switch sel.Category.Shape() {
	case entities.ShapeBedroomKeyed:
		return priceBedroomKeyed(sel)
	case entities.ShapeSqftKeyed:
		return priceSqftKeyed(sel)
	default:
		return entities.IndeterminateQuote()
	}
}

func priceBedroomKeyed(sel entities.QuoteSelection) entities.QuoteResult {
	base, ok := bedroomPrices[sel.Category][sel.SizeBracket]
	if !ok {
		return entities.IndeterminateQuote()
	}
	if base.IsCustom() {
		return entities.CustomQuote()
	}

	total := base.Amount()

	if rate, ok := bathroomSurcharges[sel.Category]; ok && sel.BathroomCount != "" && sel.BathroomCount != BaselineBathroomCount {
		units := extraHalfBathUnits[sel.BathroomCount]
		total += int(math.Round(units * float64(rate)))
	}

	if sel.Category.AcceptsFrequency() && sel.Frequency != "" {
		discount := frequencyDiscounts[sel.Frequency]
		total = int(math.Round(float64(total) * (1 - discount)))
	}

	if sel.Category.AcceptsAddOns() {
		counted := make(map[string]bool, len(sel.AddOns))
		for _, id := range sel.AddOns {
			if counted[id] {
				continue
			}
			counted[id] = true
			total += addOnPrices[id]
		}
	}

	return entities.FixedQuote(total)
}

// MetricCategory returns the category label used on quote metrics.
// Categories outside the catalog collapse to a single label.
func MetricCategory(c entities.ServiceCategory) string {
	if c.Shape() == entities.ShapeUnknown {
		return unknownCategoryLabel
	}
	return string(c)
}

// RecordQuoteOutcome counts one calculator result
func RecordQuoteOutcome(ctx context.Context, metrics *observability.Metrics, sel entities.QuoteSelection, result entities.QuoteResult) {
	observability.RecordQuoteOutcome(ctx, metrics, MetricCategory(sel.Category), string(result.Status()))
}

func priceSqftKeyed(sel entities.QuoteSelection) entities.QuoteResult {
	base, ok := sqftPrices[sel.Category][sel.SizeBracket]
	if !ok {
		return entities.IndeterminateQuote()
	}
	if base.IsCustom() {
		return entities.CustomQuote()
	}
	return entities.FixedQuote(base.Amount())
}

// FormatQuoteNote renders a selection and its result as the free-text
// line stored with a lead.
func FormatQuoteNote(sel entities.QuoteSelection, result entities.QuoteResult) string {
	summary := sel.Summary()
	switch result.Status() {
	case entities.QuoteFixed:
		return summary + " | Estimated price: " + result.Display()
	case entities.QuoteCustom:
		return summary + " | Estimated price: custom quote required"
	default:
		return summary + " | Estimated price: not available"
	}
}
