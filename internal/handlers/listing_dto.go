package handlers

import (
	"strings"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/formatters"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
)

// FavoriteChecker reports whether a listing is saved.
type FavoriteChecker interface {
	IsFavorite(listingID int) bool
}

// ListingDisplay carries preformatted strings for the listing card and detail views.
type ListingDisplay struct {
	Price        string `json:"price"`
	PricePerSqFt string `json:"pricePerSqFt,omitempty"`
	SquareFeet   string `json:"squareFeet"`
	ListingDate  string `json:"listingDate"`
	Location     string `json:"location"`
	FullAddress  string `json:"fullAddress"`
}

// ListingResponse is a listing as served by the API.
type ListingResponse struct {
	models.Listing
	Display    ListingDisplay `json:"display"`
	IsFavorite bool           `json:"isFavorite"`
}

func newListingResponse(l models.Listing, favorites FavoriteChecker) ListingResponse {
	display := ListingDisplay{
		Price:       formatters.Price(l.Price),
		SquareFeet:  formatters.SquareFeet(l.SquareFeet),
		ListingDate: formatters.Date(l.ListingDate),
		Location:    formatters.Location(l.City, l.State),
		FullAddress: formatters.Address(l.Address, l.City, strings.TrimSpace(l.State+" "+l.ZipCode)),
	}
	if l.SquareFeet > 0 {
		display.PricePerSqFt = formatters.Price(l.Price / float64(l.SquareFeet))
	}

	resp := ListingResponse{Listing: l, Display: display}
	if favorites != nil {
		resp.IsFavorite = favorites.IsFavorite(l.ID)
	}
	return resp
}

func newListingResponses(listings []models.Listing, favorites FavoriteChecker) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, newListingResponse(l, favorites))
	}
	return out
}
