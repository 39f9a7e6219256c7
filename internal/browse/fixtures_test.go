package browse

import (
	"math/rand"
	"time"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
)

var baseDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleListings() []models.Listing {
	return []models.Listing{
		{ID: 1, Price: 450000, PropertyType: models.PropertyTypeHouse, Bedrooms: 3, Bathrooms: 2, SquareFeet: 1800, YearBuilt: 1995, ListingDate: baseDate.AddDate(0, 0, 3)},
		{ID: 2, Price: 275000, PropertyType: models.PropertyTypeCondo, Bedrooms: 2, Bathrooms: 1.5, SquareFeet: 1100, YearBuilt: 2010, ListingDate: baseDate.AddDate(0, 0, 10)},
		{ID: 3, Price: 1200000, PropertyType: models.PropertyTypeHouse, Bedrooms: 5, Bathrooms: 4.5, SquareFeet: 4200, YearBuilt: 2018, ListingDate: baseDate.AddDate(0, 0, 1)},
		{ID: 4, Price: 189000, PropertyType: models.PropertyTypeApartment, Bedrooms: 1, Bathrooms: 1, SquareFeet: 650, YearBuilt: 1978, ListingDate: baseDate.AddDate(0, 0, 7)},
		{ID: 5, Price: 275000, PropertyType: models.PropertyTypeTownhouse, Bedrooms: 3, Bathrooms: 2.5, SquareFeet: 1600, YearBuilt: 2005, ListingDate: baseDate.AddDate(0, 0, 7)},
	}
}

func randomListings(r *rand.Rand, n int) []models.Listing {
	out := make([]models.Listing, n)
	for i := range out {
		out[i] = models.Listing{
			ID:           i + 1,
			Price:        float64(r.Intn(40)) * 25000,
			PropertyType: models.PropertyTypes[r.Intn(len(models.PropertyTypes))],
			Bedrooms:     r.Intn(6),
			Bathrooms:    float64(r.Intn(9)) / 2,
			SquareFeet:   400 + r.Intn(4000),
			YearBuilt:    1950 + r.Intn(75),
			ListingDate:  baseDate.AddDate(0, 0, r.Intn(30)),
		}
	}
	return out
}

func ids(listings []models.Listing) []int {
	out := make([]int, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}
