package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/database"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
)

// ErrDeliveryFailed is returned by the in-memory inquiry repository when it is
// configured to reject submissions.
var ErrDeliveryFailed = errors.New("inquiry delivery failed")

// InquiryRepository persists inquiries and contact messages.
// Implementations assign ID and CreatedAt on success.
type InquiryRepository interface {
	SaveInquiry(ctx context.Context, inquiry *models.Inquiry) error
	SaveContact(ctx context.Context, msg *models.ContactMessage) error
}

type postgresInquiryRepository struct {
	db *database.Database
}

// NewPostgresInquiryRepository creates an InquiryRepository backed by PostgreSQL.
func NewPostgresInquiryRepository(db *database.Database) InquiryRepository {
	return &postgresInquiryRepository{db: db}
}

func (r *postgresInquiryRepository) SaveInquiry(ctx context.Context, inquiry *models.Inquiry) error {
	query := `
		INSERT INTO inquiries (
			reference, listing_id, property_title, property_price,
			name, email, phone, message
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.Pool.QueryRow(ctx, query,
		inquiry.Reference,
		inquiry.PropertyID,
		inquiry.PropertyTitle,
		inquiry.PropertyPrice,
		inquiry.Name,
		inquiry.Email,
		inquiry.Phone,
		inquiry.Message,
	).Scan(&inquiry.ID, &inquiry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert inquiry for listing %d: %w", inquiry.PropertyID, err)
	}
	return nil
}

func (r *postgresInquiryRepository) SaveContact(ctx context.Context, msg *models.ContactMessage) error {
	query := `
		INSERT INTO inquiries (reference, name, email, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.Pool.QueryRow(ctx, query,
		msg.Reference,
		msg.Name,
		msg.Email,
		msg.Subject,
		msg.Message,
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	return nil
}

// MemoryInquiryRepository keeps submissions in memory. Setting Fail makes
// every save return ErrDeliveryFailed.
type MemoryInquiryRepository struct {
	now       func() time.Time
	inquiries []models.Inquiry
	contacts  []models.ContactMessage
	nextID    int64
	mu        sync.Mutex
	fail      bool
}

// NewMemoryInquiryRepository creates an empty in-memory inquiry repository.
func NewMemoryInquiryRepository() *MemoryInquiryRepository {
	return &MemoryInquiryRepository{now: time.Now}
}

// SetFail toggles simulated delivery failure.
func (r *MemoryInquiryRepository) SetFail(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = fail
}

func (r *MemoryInquiryRepository) SaveInquiry(ctx context.Context, inquiry *models.Inquiry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail {
		return ErrDeliveryFailed
	}
	r.nextID++
	inquiry.ID = r.nextID
	inquiry.CreatedAt = r.now().UTC()
	r.inquiries = append(r.inquiries, *inquiry)
	return nil
}

func (r *MemoryInquiryRepository) SaveContact(ctx context.Context, msg *models.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail {
		return ErrDeliveryFailed
	}
	r.nextID++
	msg.ID = r.nextID
	msg.CreatedAt = r.now().UTC()
	r.contacts = append(r.contacts, *msg)
	return nil
}

// Inquiries returns a copy of the stored inquiries.
func (r *MemoryInquiryRepository) Inquiries() []models.Inquiry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Inquiry(nil), r.inquiries...)
}

// Contacts returns a copy of the stored contact messages.
func (r *MemoryInquiryRepository) Contacts() []models.ContactMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ContactMessage(nil), r.contacts...)
}
