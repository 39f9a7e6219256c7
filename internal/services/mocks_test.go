package services

import (
	"context"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockListingRepository is a mock implementation of ListingRepository for testing
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) GetAll(ctx context.Context) ([]models.Listing, error) {
	args := m.Called(ctx)
	listings, _ := args.Get(0).([]models.Listing)
	return listings, args.Error(1)
}

func (m *MockListingRepository) GetByID(ctx context.Context, id int) (*models.Listing, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*models.Listing)
	return l, args.Error(1)
}

func (m *MockListingRepository) Create(ctx context.Context, listing models.Listing) (*models.Listing, error) {
	args := m.Called(ctx, listing)
	l, _ := args.Get(0).(*models.Listing)
	return l, args.Error(1)
}

func (m *MockListingRepository) Update(ctx context.Context, id int, patch models.ListingPatch) (*models.Listing, error) {
	args := m.Called(ctx, id, patch)
	l, _ := args.Get(0).(*models.Listing)
	return l, args.Error(1)
}

func (m *MockListingRepository) Delete(ctx context.Context, id int) (*models.Listing, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*models.Listing)
	return l, args.Error(1)
}

func (m *MockListingRepository) GetNeighborhoodStats(ctx context.Context, id int) (*models.NeighborhoodStats, error) {
	args := m.Called(ctx, id)
	stats, _ := args.Get(0).(*models.NeighborhoodStats)
	return stats, args.Error(1)
}

// MockInquiryRepository is a mock implementation of InquiryRepository for testing
type MockInquiryRepository struct {
	mock.Mock
}

func (m *MockInquiryRepository) SaveInquiry(ctx context.Context, inquiry *models.Inquiry) error {
	args := m.Called(ctx, inquiry)
	return args.Error(0)
}

func (m *MockInquiryRepository) SaveContact(ctx context.Context, msg *models.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
