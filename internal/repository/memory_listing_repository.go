package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
)

//go:embed seed/listings.json
var seedListings []byte

// SeedListings decodes the bundled sample listings.
func SeedListings() ([]models.Listing, error) {
	var records []models.ListingRecord
	if err := json.Unmarshal(seedListings, &records); err != nil {
		return nil, fmt.Errorf("failed to decode seed listings: %w", err)
	}

	listings := make([]models.Listing, 0, len(records))
	for _, r := range records {
		listings = append(listings, r.ToListing())
	}
	return listings, nil
}

// MemoryListingRepository keeps listings in process memory. It backs the
// service when no database is configured and is used throughout the tests.
type MemoryListingRepository struct {
	now      func() time.Time
	listings []models.Listing
	mu       sync.RWMutex
}

// NewMemoryListingRepository creates a repository holding copies of listings.
func NewMemoryListingRepository(listings []models.Listing) *MemoryListingRepository {
	stored := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		stored = append(stored, l.Clone())
	}
	return &MemoryListingRepository{
		now:      time.Now,
		listings: stored,
	}
}

// NewSeededListingRepository creates a memory repository holding the bundled sample listings.
func NewSeededListingRepository() (*MemoryListingRepository, error) {
	listings, err := SeedListings()
	if err != nil {
		return nil, err
	}
	return NewMemoryListingRepository(listings), nil
}

func (r *MemoryListingRepository) GetAll(ctx context.Context) ([]models.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		out = append(out, l.Clone())
	}
	return out, nil
}

func (r *MemoryListingRepository) GetByID(ctx context.Context, id int) (*models.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	l := r.listings[i].Clone()
	return &l, nil
}

// Create assigns max(id)+1 and stamps the listing date with the current time.
func (r *MemoryListingRepository) Create(ctx context.Context, listing models.Listing) (*models.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	maxID := 0
	for _, l := range r.listings {
		if l.ID > maxID {
			maxID = l.ID
		}
	}

	created := listing.Clone()
	created.ID = maxID + 1
	created.ListingDate = r.now().UTC()
	r.listings = append(r.listings, created)

	out := created.Clone()
	return &out, nil
}

func (r *MemoryListingRepository) Update(ctx context.Context, id int, patch models.ListingPatch) (*models.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	r.listings[i] = patch.Apply(r.listings[i])

	out := r.listings[i].Clone()
	return &out, nil
}

func (r *MemoryListingRepository) Delete(ctx context.Context, id int) (*models.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	deleted := r.listings[i]
	r.listings = append(r.listings[:i], r.listings[i+1:]...)
	return &deleted, nil
}

func (r *MemoryListingRepository) GetNeighborhoodStats(ctx context.Context, id int) (*models.NeighborhoodStats, error) {
	l, err := r.GetByID(ctx, id)
	if err != nil || l == nil {
		return nil, err
	}
	stats := NeighborhoodFor(*l)
	return &stats, nil
}

// Ping reports whether the repository can serve requests.
func (r *MemoryListingRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryListingRepository) indexOf(id int) int {
	for i, l := range r.listings {
		if l.ID == id {
			return i
		}
	}
	return -1
}
