package services

import (
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
)

// Size bracket labels. Bedroom brackets first, then square-footage brackets.
const (
	BracketStudio   = "Studio"
	Bracket1BR      = "1 BR"
	Bracket2BR      = "2 BR"
	Bracket3BR      = "3 BR"
	Bracket4BR      = "4 BR"
	Bracket5PlusBR  = "5+ BR"
	BracketUnder1k  = "Under 1,000 sq ft"
	Bracket1kTo2k   = "1,000–2,000 sq ft"
	Bracket2kTo3500 = "2,000–3,500 sq ft"
	Bracket3500To5k = "3,500–5,000 sq ft"
	Bracket5kPlus   = "5,000+ sq ft"
)

// BaselineBathroomCount carries no surcharge
const BaselineBathroomCount = "1"

var (
	bedroomBrackets = []string{BracketStudio, Bracket1BR, Bracket2BR, Bracket3BR, Bracket4BR, Bracket5PlusBR}
	sqftBrackets    = []string{BracketUnder1k, Bracket1kTo2k, Bracket2kTo3500, Bracket3500To5k, Bracket5kPlus}

	categoryOrder = []entities.ServiceCategory{
		entities.CategoryResidential,
		entities.CategoryDeepCleaning,
		entities.CategoryMoveInOut,
		entities.CategoryAirbnb,
		entities.CategoryCommercial,
		entities.CategoryPostConstruction,
		entities.CategoryRestaurantCafe,
		entities.CategoryClinicMedical,
	}

	categoryLabels = map[entities.ServiceCategory]string{
		entities.CategoryResidential:      "Residential Cleaning",
		entities.CategoryDeepCleaning:     "Deep Cleaning",
		entities.CategoryMoveInOut:        "Move-In / Move-Out",
		entities.CategoryAirbnb:           "Airbnb Turnover",
		entities.CategoryCommercial:       "Commercial & Office",
		entities.CategoryPostConstruction: "Post-Construction",
		entities.CategoryRestaurantCafe:   "Restaurant & Café",
		entities.CategoryClinicMedical:    "Clinic & Medical",
	}

	bedroomPrices = map[entities.ServiceCategory]map[string]entities.Price{
		entities.CategoryResidential: {
			BracketStudio:  entities.FixedPrice(130),
			Bracket1BR:     entities.FixedPrice(160),
			Bracket2BR:     entities.FixedPrice(210),
			Bracket3BR:     entities.FixedPrice(265),
			Bracket4BR:     entities.FixedPrice(320),
			Bracket5PlusBR: entities.CustomPrice(),
		},
		entities.CategoryDeepCleaning: {
			BracketStudio:  entities.FixedPrice(200),
			Bracket1BR:     entities.FixedPrice(260),
			Bracket2BR:     entities.FixedPrice(325),
			Bracket3BR:     entities.FixedPrice(395),
			Bracket4BR:     entities.FixedPrice(470),
			Bracket5PlusBR: entities.CustomPrice(),
		},
		entities.CategoryMoveInOut: {
			BracketStudio:  entities.FixedPrice(220),
			Bracket1BR:     entities.FixedPrice(280),
			Bracket2BR:     entities.FixedPrice(350),
			Bracket3BR:     entities.FixedPrice(425),
			Bracket4BR:     entities.FixedPrice(510),
			Bracket5PlusBR: entities.CustomPrice(),
		},
		entities.CategoryAirbnb: {
			BracketStudio:  entities.FixedPrice(110),
			Bracket1BR:     entities.FixedPrice(150),
			Bracket2BR:     entities.FixedPrice(200),
			Bracket3BR:     entities.FixedPrice(250),
			Bracket4BR:     entities.FixedPrice(310),
			Bracket5PlusBR: entities.CustomPrice(),
		},
	}

	sqftPrices = map[entities.ServiceCategory]map[string]entities.Price{
		entities.CategoryCommercial: {
			BracketUnder1k:  entities.FixedPrice(180),
			Bracket1kTo2k:   entities.FixedPrice(320),
			Bracket2kTo3500: entities.FixedPrice(480),
			Bracket3500To5k: entities.FixedPrice(650),
			Bracket5kPlus:   entities.CustomPrice(),
		},
		entities.CategoryPostConstruction: {
			BracketUnder1k:  entities.FixedPrice(350),
			Bracket1kTo2k:   entities.FixedPrice(600),
			Bracket2kTo3500: entities.FixedPrice(900),
			Bracket3500To5k: entities.FixedPrice(1250),
			Bracket5kPlus:   entities.CustomPrice(),
		},
		entities.CategoryRestaurantCafe: {
			BracketUnder1k:  entities.FixedPrice(250),
			Bracket1kTo2k:   entities.FixedPrice(420),
			Bracket2kTo3500: entities.FixedPrice(600),
			Bracket3500To5k: entities.FixedPrice(850),
			Bracket5kPlus:   entities.CustomPrice(),
		},
		entities.CategoryClinicMedical: {
			BracketUnder1k:  entities.FixedPrice(280),
			Bracket1kTo2k:   entities.FixedPrice(450),
			Bracket2kTo3500: entities.FixedPrice(680),
			Bracket3500To5k: entities.FixedPrice(950),
			Bracket5kPlus:   entities.CustomPrice(),
		},
	}

	addOns = []entities.AddOn{
		{ID: "oven", Label: "Inside oven", Price: 30},
		{ID: "fridge", Label: "Inside fridge", Price: 25},
		{ID: "cabinets", Label: "Inside cabinets", Price: 35},
		{ID: "windows", Label: "Interior windows", Price: 40},
		{ID: "laundry", Label: "Laundry & folding", Price: 20},
	}
	addOnPrices = indexAddOns(addOns)

	frequencies        = []string{"One-time", "Monthly", "Bi-weekly", "Weekly"}
	frequencyDiscounts = map[string]float64{
		"One-time":  0,
		"Monthly":   0.05,
		"Bi-weekly": 0.10,
		"Weekly":    0.15,
	}

	bathroomSurcharges = map[entities.ServiceCategory]int{
		entities.CategoryResidential:  30,
		entities.CategoryDeepCleaning: 40,
		entities.CategoryMoveInOut:    40,
	}

	bathroomCounts     = []string{"1", "1.5", "2", "2.5", "3", "3+"}
	extraHalfBathUnits = map[string]float64{
		"1":   0,
		"1.5": 0.5,
		"2":   1,
		"2.5": 1.5,
		"3":   2,
		"3+":  2.5,
	}
)

func indexAddOns(list []entities.AddOn) map[string]int {
	out := make(map[string]int, len(list))
	for _, a := range list {
		out[a.ID] = a.Price
	}
	return out
}

// CategoryOption describes one service line for the selection wizard
type CategoryOption struct {
	ID                entities.ServiceCategory `json:"id"`
	Label             string                   `json:"label"`
	Shape             entities.TableShape      `json:"shape"`
	Brackets          []BracketOption          `json:"brackets"`
	HasBathrooms      bool                     `json:"has_bathrooms"`
	HasFrequency      bool                     `json:"has_frequency"`
	HasAddOns         bool                     `json:"has_add_ons"`
	BathroomSurcharge int                      `json:"bathroom_surcharge,omitempty"`
}

// BracketOption is one priced size bracket
type BracketOption struct {
	Label string         `json:"label"`
	Price entities.Price `json:"price"`
}

// FrequencyOption is a recurring-service choice and its discount
type FrequencyOption struct {
	Label        string  `json:"label"`
	DiscountRate float64 `json:"discount_rate"`
}

// QuoteCatalog is a read-only view of the pricing tables
type QuoteCatalog struct {
	Categories     []CategoryOption  `json:"categories"`
	AddOns         []entities.AddOn  `json:"add_ons"`
	Frequencies    []FrequencyOption `json:"frequencies"`
	BathroomCounts []string          `json:"bathroom_counts"`
}

// QuoteOptions builds the catalog in display order. Every call returns
// fresh slices so callers cannot mutate the shared tables.
func QuoteOptions() QuoteCatalog {
	catalog := QuoteCatalog{
		AddOns:         append([]entities.AddOn(nil), addOns...),
		BathroomCounts: append([]string(nil), bathroomCounts...),
	}

	for _, f := range frequencies {
		catalog.Frequencies = append(catalog.Frequencies, FrequencyOption{Label: f, DiscountRate: frequencyDiscounts[f]})
	}

	for _, c := range categoryOrder {
		shape := c.Shape()
		table, brackets := bedroomPrices[c], bedroomBrackets
		if shape == entities.ShapeSqftKeyed {
			table, brackets = sqftPrices[c], sqftBrackets
		}

		opt := CategoryOption{
			ID:                c,
			Label:             categoryLabels[c],
			Shape:             shape,
			HasFrequency:      c.AcceptsFrequency(),
			HasAddOns:         c.AcceptsAddOns(),
			BathroomSurcharge: bathroomSurcharges[c],
		}
		opt.HasBathrooms = opt.BathroomSurcharge > 0
		for _, b := range brackets {
			opt.Brackets = append(opt.Brackets, BracketOption{Label: b, Price: table[b]})
		}
		catalog.Categories = append(catalog.Categories, opt)
	}

	return catalog
}
