package browse

import (
	"sort"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
)

// DefaultSortKey is the ordering used when none is requested.
const DefaultSortKey = models.SortNewest

// SortListings returns a new slice ordered by key. Equal elements keep their
// input order. An unknown key returns the listings in input order.
func SortListings(listings []models.Listing, key models.SortKey) []models.Listing {
	out := make([]models.Listing, len(listings))
	copy(out, listings)

	var less func(a, b models.Listing) bool
	switch key {
	case models.SortNewest:
		less = func(a, b models.Listing) bool { return a.ListingDate.After(b.ListingDate) }
	case models.SortOldest:
		less = func(a, b models.Listing) bool { return a.ListingDate.Before(b.ListingDate) }
	case models.SortPriceLow:
		less = func(a, b models.Listing) bool { return a.Price < b.Price }
	case models.SortPriceHigh:
		less = func(a, b models.Listing) bool { return a.Price > b.Price }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// IsKnownSortKey reports whether key selects one of the defined orderings.
func IsKnownSortKey(key models.SortKey) bool {
	switch key {
	case models.SortNewest, models.SortOldest, models.SortPriceLow, models.SortPriceHigh:
		return true
	}
	return false
}
