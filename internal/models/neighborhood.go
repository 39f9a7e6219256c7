package models

// School is a nearby school with a 0-5 rating and distance in miles.
type School struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Rating   float64 `json:"rating"`
	Distance float64 `json:"distance"`
}

// TransitOption is a nearby public transit route.
type TransitOption struct {
	Type      string `json:"type"`
	Route     string `json:"route"`
	Frequency string `json:"frequency"`
	WalkTime  int    `json:"walkTime"`
}

// Amenity is a nearby point of interest.
type Amenity struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Icon     string  `json:"icon"`
	Rating   float64 `json:"rating"`
	Distance float64 `json:"distance"`
}

// NeighborhoodStats groups the neighborhood data shown for a listing.
type NeighborhoodStats struct {
	Schools   []School        `json:"schools"`
	Transit   []TransitOption `json:"transit"`
	Amenities []Amenity       `json:"amenities"`
}
