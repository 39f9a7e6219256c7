package models

import (
	"time"
)

// ListingRecord is the shape the hosted record API uses for listings.
// Field names differ from the public Listing schema and are mapped explicitly.
type ListingRecord struct {
	ListingDate  string       `json:"listing_date"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	Title        string       `json:"title"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	ZipCode      string       `json:"zip_code"`
	PropertyType string       `json:"property_type"`
	Description  string       `json:"description"`
	Images       []string     `json:"images"`
	Amenities    []string     `json:"amenities"`
	Price        float64      `json:"price"`
	Bathrooms    float64      `json:"bathrooms"`
	ID           int          `json:"Id"`
	Bedrooms     int          `json:"bedrooms"`
	SquareFeet   int          `json:"square_feet"`
	YearBuilt    int          `json:"year_built"`
}

// ToListing maps a remote record into a Listing. An unparseable listing
// date becomes the zero time rather than failing the whole record.
func (r ListingRecord) ToListing() Listing {
	listed, err := time.Parse(time.RFC3339, r.ListingDate)
	if err != nil {
		listed = time.Time{}
	}

	l := Listing{
		ID:           r.ID,
		Title:        r.Title,
		Price:        r.Price,
		Address:      r.Address,
		City:         r.City,
		State:        r.State,
		ZipCode:      r.ZipCode,
		PropertyType: PropertyType(r.PropertyType),
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		SquareFeet:   r.SquareFeet,
		YearBuilt:    r.YearBuilt,
		Description:  r.Description,
		Images:       r.Images,
		Amenities:    r.Amenities,
		ListingDate:  listed,
	}
	if r.Coordinates != nil {
		c := *r.Coordinates
		l.Coordinates = &c
	}
	return l
}

// ListingToRecord maps a Listing into the remote record shape.
func ListingToRecord(l Listing) ListingRecord {
	r := ListingRecord{
		ID:           l.ID,
		Title:        l.Title,
		Price:        l.Price,
		Address:      l.Address,
		City:         l.City,
		State:        l.State,
		ZipCode:      l.ZipCode,
		PropertyType: string(l.PropertyType),
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		SquareFeet:   l.SquareFeet,
		YearBuilt:    l.YearBuilt,
		Description:  l.Description,
		Images:       l.Images,
		Amenities:    l.Amenities,
	}
	if !l.ListingDate.IsZero() {
		r.ListingDate = l.ListingDate.UTC().Format(time.RFC3339)
	}
	if l.Coordinates != nil {
		c := *l.Coordinates
		r.Coordinates = &c
	}
	return r
}
