package models

// FilterSpec is the set of inclusion constraints applied to listings.
// An empty PropertyTypes slice and a zero YearBuiltMin mean "no constraint".
// PriceMin > PriceMax is a valid state that matches nothing.
type FilterSpec struct {
	PropertyTypes []PropertyType `json:"propertyTypes"`
	PriceMin      float64        `json:"priceMin"`
	PriceMax      float64        `json:"priceMax"`
	BathroomsMin  float64        `json:"bathroomsMin"`
	BedroomsMin   int            `json:"bedroomsMin"`
	SquareFeetMin int            `json:"squareFeetMin"`
	YearBuiltMin  int            `json:"yearBuiltMin"`
}

// SortKey selects one of the fixed listing orderings.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
)
