package models

import (
	"time"
)

// PropertyType enumerates the kinds of property a listing can describe.
type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "House"
	PropertyTypeApartment PropertyType = "Apartment"
	PropertyTypeCondo     PropertyType = "Condo"
	PropertyTypeTownhouse PropertyType = "Townhouse"
)

// PropertyTypes lists every supported property type in display order.
var PropertyTypes = []PropertyType{
	PropertyTypeHouse,
	PropertyTypeApartment,
	PropertyTypeCondo,
	PropertyTypeTownhouse,
}

// Valid reports whether t is one of the supported property types.
func (t PropertyType) Valid() bool {
	for _, known := range PropertyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Listing represents one property record available for browsing.
// Coordinates is nil when the record carries no location.
type Listing struct {
	ListingDate  time.Time    `json:"listingDate"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	Title        string       `json:"title"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	ZipCode      string       `json:"zipCode"`
	PropertyType PropertyType `json:"propertyType"`
	Description  string       `json:"description"`
	Images       []string     `json:"images"`
	Amenities    []string     `json:"amenities"`
	Price        float64      `json:"price"`
	Bathrooms    float64      `json:"bathrooms"`
	ID           int          `json:"Id"`
	Bedrooms     int          `json:"bedrooms"`
	SquareFeet   int          `json:"squareFeet"`
	YearBuilt    int          `json:"yearBuilt"`
}

// Clone returns a deep copy so callers can hand listings out without sharing slices.
func (l Listing) Clone() Listing {
	out := l
	if l.Coordinates != nil {
		c := *l.Coordinates
		out.Coordinates = &c
	}
	if l.Images != nil {
		out.Images = append([]string(nil), l.Images...)
	}
	if l.Amenities != nil {
		out.Amenities = append([]string(nil), l.Amenities...)
	}
	return out
}

// ListingPatch carries the fields of a partial listing update.
// Nil fields are left untouched.
type ListingPatch struct {
	Coordinates  *Coordinates  `json:"coordinates,omitempty"`
	Title        *string       `json:"title,omitempty"`
	Address      *string       `json:"address,omitempty"`
	City         *string       `json:"city,omitempty"`
	State        *string       `json:"state,omitempty"`
	ZipCode      *string       `json:"zipCode,omitempty"`
	PropertyType *PropertyType `json:"propertyType,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Images       []string      `json:"images,omitempty"`
	Amenities    []string      `json:"amenities,omitempty"`
	Price        *float64      `json:"price,omitempty"`
	Bathrooms    *float64      `json:"bathrooms,omitempty"`
	Bedrooms     *int          `json:"bedrooms,omitempty"`
	SquareFeet   *int          `json:"squareFeet,omitempty"`
	YearBuilt    *int          `json:"yearBuilt,omitempty"`
}

// Apply merges the patch into l and returns the result.
func (p ListingPatch) Apply(l Listing) Listing {
	out := l.Clone()
	if p.Coordinates != nil {
		c := *p.Coordinates
		out.Coordinates = &c
	}
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Address != nil {
		out.Address = *p.Address
	}
	if p.City != nil {
		out.City = *p.City
	}
	if p.State != nil {
		out.State = *p.State
	}
	if p.ZipCode != nil {
		out.ZipCode = *p.ZipCode
	}
	if p.PropertyType != nil {
		out.PropertyType = *p.PropertyType
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	if p.Amenities != nil {
		out.Amenities = append([]string(nil), p.Amenities...)
	}
	if p.Price != nil {
		out.Price = *p.Price
	}
	if p.Bathrooms != nil {
		out.Bathrooms = *p.Bathrooms
	}
	if p.Bedrooms != nil {
		out.Bedrooms = *p.Bedrooms
	}
	if p.SquareFeet != nil {
		out.SquareFeet = *p.SquareFeet
	}
	if p.YearBuilt != nil {
		out.YearBuilt = *p.YearBuilt
	}
	return out
}
