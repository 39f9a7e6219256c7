package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingRecord_FieldMapping(t *testing.T) {
	payload := []byte(`{
		"Id": 7,
		"title": "Lakeside Bungalow",
		"price": 525000,
		"address": "12 Shore Rd",
		"city": "Austin",
		"state": "TX",
		"zip_code": "78701",
		"property_type": "House",
		"bedrooms": 3,
		"bathrooms": 2.5,
		"square_feet": 1850,
		"year_built": 1998,
		"images": ["a.jpg", "b.jpg"],
		"amenities": ["Pool"],
		"coordinates": {"lat": 30.26, "lng": -97.74},
		"listing_date": "2024-03-15T10:00:00Z"
	}`)

	var rec ListingRecord
	require.NoError(t, json.Unmarshal(payload, &rec))

	l := rec.ToListing()
	assert.Equal(t, 7, l.ID)
	assert.Equal(t, "78701", l.ZipCode)
	assert.Equal(t, PropertyTypeHouse, l.PropertyType)
	assert.Equal(t, 1850, l.SquareFeet)
	assert.Equal(t, 1998, l.YearBuilt)
	assert.Equal(t, 2.5, l.Bathrooms)
	require.NotNil(t, l.Coordinates)
	assert.Equal(t, -97.74, l.Coordinates.Lng)
	assert.True(t, l.ListingDate.Equal(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)))

	back := ListingToRecord(l)
	assert.Equal(t, rec.ZipCode, back.ZipCode)
	assert.Equal(t, rec.ListingDate, back.ListingDate)
	assert.Equal(t, rec.PropertyType, back.PropertyType)
}

func TestListingRecord_BadDate(t *testing.T) {
	rec := ListingRecord{ID: 1, ListingDate: "yesterday"}
	assert.True(t, rec.ToListing().ListingDate.IsZero())
}

func TestListingPatch_Apply(t *testing.T) {
	original := Listing{
		ID:          3,
		Title:       "Old title",
		Price:       300000,
		Bedrooms:    2,
		Images:      []string{"one.jpg"},
		Coordinates: &Coordinates{Lat: 1, Lng: 2},
	}

	price := 310000.0
	title := "New title"
	updated := ListingPatch{Price: &price, Title: &title}.Apply(original)

	assert.Equal(t, 310000.0, updated.Price)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, 2, updated.Bedrooms)
	assert.Equal(t, 3, updated.ID)

	// The original must not share mutable state with the result
	updated.Images[0] = "changed.jpg"
	updated.Coordinates.Lat = 99
	assert.Equal(t, "one.jpg", original.Images[0])
	assert.Equal(t, 1.0, original.Coordinates.Lat)
}

func TestPropertyType_Valid(t *testing.T) {
	for _, pt := range PropertyTypes {
		assert.True(t, pt.Valid(), string(pt))
	}
	assert.False(t, PropertyType("Castle").Valid())
	assert.False(t, PropertyType("").Valid())
}
