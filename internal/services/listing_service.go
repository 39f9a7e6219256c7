package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/browse"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/logger"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/repository"
)

// Comparison selection bounds.
const (
	MinCompareListings = 2
	MaxCompareListings = 3
)

// Service-level errors
var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrInvalidListing   = errors.New("invalid listing")
	ErrCompareSelection = errors.New("select between 2 and 3 listings to compare")
)

// BrowseResult is one page of the filtered and sorted catalog.
type BrowseResult struct {
	Listings []models.Listing
	// Total is the size of the unfiltered catalog.
	Total int
}

// ListingService defines the business operations on listings.
type ListingService interface {
	// Browse filters and sorts the full catalog.
	Browse(ctx context.Context, spec models.FilterSpec, key models.SortKey) (*BrowseResult, error)

	// MapClusters groups the filtered listings by geohash cell.
	MapClusters(ctx context.Context, spec models.FilterSpec, precision uint) ([]browse.Cluster, error)

	// Get returns ErrListingNotFound if no listing has the id.
	Get(ctx context.Context, id int) (*models.Listing, error)

	Create(ctx context.Context, listing models.Listing) (*models.Listing, error)
	Update(ctx context.Context, id int, patch models.ListingPatch) (*models.Listing, error)
	Delete(ctx context.Context, id int) (*models.Listing, error)

	Neighborhood(ctx context.Context, id int) (*models.NeighborhoodStats, error)

	// Compare resolves 2 to 3 distinct listings in the order given.
	Compare(ctx context.Context, ids []int) ([]models.Listing, error)
}

type listingService struct {
	repo repository.ListingRepository
	log  *logger.Logger
}

// NewListingService creates a new instance of ListingService.
func NewListingService(repo repository.ListingRepository, log *logger.Logger) ListingService {
	return &listingService{
		repo: repo,
		log:  log.WithComponent("listing_service"),
	}
}

func (s *listingService) Browse(ctx context.Context, spec models.FilterSpec, key models.SortKey) (*BrowseResult, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Error("Failed to load listings", err, nil)
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}

	view := browse.SortListings(browse.ApplyFilters(all, spec), key)

	s.log.Debug("Browsed listings", map[string]interface{}{
		"total":   len(all),
		"matched": len(view),
		"sort":    string(key),
	})

	return &BrowseResult{Listings: view, Total: len(all)}, nil
}

func (s *listingService) MapClusters(ctx context.Context, spec models.FilterSpec, precision uint) ([]browse.Cluster, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Error("Failed to load listings for map", err, nil)
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	return browse.ClusterByGeohash(browse.ApplyFilters(all, spec), precision), nil
}

func (s *listingService) Get(ctx context.Context, id int) (*models.Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to query listing", err, map[string]interface{}{"listing_id": id})
		return nil, fmt.Errorf("failed to query listing: %w", err)
	}
	if l == nil {
		return nil, fmt.Errorf("%w: id %d", ErrListingNotFound, id)
	}
	return l, nil
}

// validateListing checks the fields every stored listing must carry.
func validateListing(l models.Listing) error {
	var problems []string
	if strings.TrimSpace(l.Title) == "" {
		problems = append(problems, "title is required")
	}
	if !l.PropertyType.Valid() {
		problems = append(problems, fmt.Sprintf("propertyType %q is not supported", l.PropertyType))
	}
	if l.Price < 0 {
		problems = append(problems, "price must not be negative")
	}
	if l.Bedrooms < 0 || l.Bathrooms < 0 || l.SquareFeet < 0 {
		problems = append(problems, "bedrooms, bathrooms and squareFeet must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidListing, strings.Join(problems, "; "))
	}
	return nil
}

func (s *listingService) Create(ctx context.Context, listing models.Listing) (*models.Listing, error) {
	if err := validateListing(listing); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, listing)
	if err != nil {
		s.log.Error("Failed to create listing", err, map[string]interface{}{"title": listing.Title})
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	s.log.Info("Listing created", map[string]interface{}{
		"listing_id": created.ID,
		"title":      created.Title,
	})
	return created, nil
}

func (s *listingService) Update(ctx context.Context, id int, patch models.ListingPatch) (*models.Listing, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateListing(patch.Apply(*current)); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.log.Error("Failed to update listing", err, map[string]interface{}{"listing_id": id})
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: id %d", ErrListingNotFound, id)
	}

	s.log.Info("Listing updated", map[string]interface{}{"listing_id": id})
	return updated, nil
}

func (s *listingService) Delete(ctx context.Context, id int) (*models.Listing, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete listing", err, map[string]interface{}{"listing_id": id})
		return nil, fmt.Errorf("failed to delete listing: %w", err)
	}
	if deleted == nil {
		return nil, fmt.Errorf("%w: id %d", ErrListingNotFound, id)
	}

	s.log.Info("Listing deleted", map[string]interface{}{"listing_id": id})
	return deleted, nil
}

func (s *listingService) Neighborhood(ctx context.Context, id int) (*models.NeighborhoodStats, error) {
	stats, err := s.repo.GetNeighborhoodStats(ctx, id)
	if err != nil {
		s.log.Error("Failed to load neighborhood stats", err, map[string]interface{}{"listing_id": id})
		return nil, fmt.Errorf("failed to load neighborhood stats: %w", err)
	}
	if stats == nil {
		return nil, fmt.Errorf("%w: id %d", ErrListingNotFound, id)
	}
	return stats, nil
}

func (s *listingService) Compare(ctx context.Context, ids []int) ([]models.Listing, error) {
	seen := make(map[int]struct{}, len(ids))
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	if len(unique) < MinCompareListings || len(unique) > MaxCompareListings {
		return nil, fmt.Errorf("%w: got %d", ErrCompareSelection, len(unique))
	}

	out := make([]models.Listing, 0, len(unique))
	for _, id := range unique {
		l, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, nil
}
