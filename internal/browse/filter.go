// Package browse holds the listing filter and sort engines, map clustering,
// and the browse session that keeps a derived view in sync with its inputs.
package browse

import (
	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
)

// Filter defaults used when a caller leaves a constraint unspecified.
const (
	DefaultPriceMin = 0
	DefaultPriceMax = 2000000
)

// DefaultFilterSpec returns the spec that places no effective constraint on
// typical listings.
func DefaultFilterSpec() models.FilterSpec {
	return models.FilterSpec{
		PriceMin:      DefaultPriceMin,
		PriceMax:      DefaultPriceMax,
		PropertyTypes: []models.PropertyType{},
	}
}

// ApplyFilters returns the listings that satisfy every constraint in spec,
// preserving input order. The input slice is not modified.
// An inverted price range is valid and yields an empty result.
func ApplyFilters(listings []models.Listing, spec models.FilterSpec) []models.Listing {
	types := make(map[models.PropertyType]struct{}, len(spec.PropertyTypes))
	for _, t := range spec.PropertyTypes {
		types[t] = struct{}{}
	}

	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if matches(l, spec, types) {
			out = append(out, l)
		}
	}
	return out
}

func matches(l models.Listing, spec models.FilterSpec, types map[models.PropertyType]struct{}) bool {
	if l.Price < spec.PriceMin || l.Price > spec.PriceMax {
		return false
	}
	if len(types) > 0 {
		if _, ok := types[l.PropertyType]; !ok {
			return false
		}
	}
	if l.Bedrooms < spec.BedroomsMin {
		return false
	}
	if l.Bathrooms < spec.BathroomsMin {
		return false
	}
	if l.SquareFeet < spec.SquareFeetMin {
		return false
	}
	if spec.YearBuiltMin > 0 && l.YearBuilt < spec.YearBuiltMin {
		return false
	}
	return true
}
