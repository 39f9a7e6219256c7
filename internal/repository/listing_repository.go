package repository

import (
	"context"
	"fmt"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
)

// ListingRepository defines the data access operations for listings.
type ListingRepository interface {
	// GetAll returns every listing in storage order.
	GetAll(ctx context.Context) ([]models.Listing, error)

	// GetByID returns the listing with the given id.
	// Returns nil, nil if no listing is found (not an error).
	GetByID(ctx context.Context, id int) (*models.Listing, error)

	// Create stores a new listing, assigning its id and listing date.
	Create(ctx context.Context, listing models.Listing) (*models.Listing, error)

	// Update merges patch into the stored listing.
	// Returns nil, nil if no listing is found.
	Update(ctx context.Context, id int, patch models.ListingPatch) (*models.Listing, error)

	// Delete removes the listing and returns it.
	// Returns nil, nil if no listing is found.
	Delete(ctx context.Context, id int) (*models.Listing, error)

	// GetNeighborhoodStats returns schools, transit and amenities near a listing.
	// Returns nil, nil if no listing is found.
	GetNeighborhoodStats(ctx context.Context, id int) (*models.NeighborhoodStats, error)
}

// SeedIfEmpty inserts listings when the table has no rows.
func SeedIfEmpty(ctx context.Context, repo ListingRepository, listings []models.Listing) (int, error) {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, l := range listings {
		if _, err := repo.Create(ctx, l); err != nil {
			return i, fmt.Errorf("failed to seed listing %q: %w", l.Title, err)
		}
	}
	return len(listings), nil
}
