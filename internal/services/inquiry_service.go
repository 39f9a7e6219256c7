package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/logger"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// User-facing submission messages.
const (
	InquirySuccessMessage = "Your inquiry has been sent successfully. The agent will contact you within 24 hours."
	InquiryFailureMessage = "Failed to send inquiry. Please try again."
	ContactSuccessMessage = "Thank you for contacting us. We will get back to you soon."
	ContactFailureMessage = "Failed to send message. Please try again."
)

var (
	ErrInvalidInquiry   = errors.New("invalid inquiry")
	ErrSubmissionFailed = errors.New("submission failed")
)

// SubmissionError reports a gateway failure with a message safe to show the user.
type SubmissionError struct {
	Err         error
	UserMessage string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s: %v", ErrSubmissionFailed, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrSubmissionFailed.
func (e *SubmissionError) Is(target error) bool {
	return target == ErrSubmissionFailed
}

// InquiryRequest is the user-supplied part of a listing inquiry.
type InquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// InquiryService validates and delivers inquiries and contact messages.
type InquiryService interface {
	// SubmitInquiry sends an inquiry about a listing. Invalid input returns an
	// error matching ErrInvalidInquiry and never reaches the repository.
	SubmitInquiry(ctx context.Context, listingID int, req InquiryRequest) (*models.SubmissionResult, error)

	// SubmitContact sends a general contact message.
	SubmitContact(ctx context.Context, msg models.ContactMessage) (*models.SubmissionResult, error)
}

type inquiryService struct {
	listings  ListingService
	repo      repository.InquiryRepository
	validate  *validator.Validate
	log       *logger.Logger
	reference func() string
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewInquiryService creates a new instance of InquiryService.
func NewInquiryService(listings ListingService, repo repository.InquiryRepository, log *logger.Logger) InquiryService {
	return &inquiryService{
		listings:  listings,
		repo:      repo,
		validate:  NewValidator(),
		log:       log.WithComponent("inquiry_service"),
		reference: func() string { return uuid.New().String() },
	}
}

// requestLog prefers the request-scoped logger so entries carry the request ID.
func (s *inquiryService) requestLog(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx, nil); l != nil {
		return l.WithComponent("inquiry_service")
	}
	return s.log
}

func (s *inquiryService) SubmitInquiry(ctx context.Context, listingID int, req InquiryRequest) (*models.SubmissionResult, error) {
	log := s.requestLog(ctx)

	listing, err := s.listings.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}

	inquiry := models.Inquiry{
		Reference:     s.reference(),
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		Message:       strings.TrimSpace(req.Message),
		PropertyID:    listing.ID,
		PropertyTitle: listing.Title,
		PropertyPrice: listing.Price,
	}

	if err := s.validate.Struct(inquiry); err != nil {
		log.Warn("Rejected invalid inquiry", map[string]interface{}{
			"listing_id": listingID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%w: %w", ErrInvalidInquiry, err)
	}

	if err := s.repo.SaveInquiry(ctx, &inquiry); err != nil {
		log.Error("Failed to deliver inquiry", err, map[string]interface{}{
			"listing_id": listingID,
			"reference":  inquiry.Reference,
		})
		return nil, &SubmissionError{Err: err, UserMessage: InquiryFailureMessage}
	}

	log.Info("Inquiry delivered", map[string]interface{}{
		"listing_id": listingID,
		"inquiry_id": inquiry.ID,
		"reference":  inquiry.Reference,
	})

	return &models.SubmissionResult{
		Success: true,
		Message: InquirySuccessMessage,
		ID:      inquiry.ID,
	}, nil
}

func (s *inquiryService) SubmitContact(ctx context.Context, msg models.ContactMessage) (*models.SubmissionResult, error) {
	log := s.requestLog(ctx)

	msg.Reference = s.reference()
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)

	if err := s.validate.Struct(msg); err != nil {
		log.Warn("Rejected invalid contact message", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("%w: %w", ErrInvalidInquiry, err)
	}

	if err := s.repo.SaveContact(ctx, &msg); err != nil {
		log.Error("Failed to deliver contact message", err, map[string]interface{}{
			"reference": msg.Reference,
		})
		return nil, &SubmissionError{Err: err, UserMessage: ContactFailureMessage}
	}

	log.Info("Contact message delivered", map[string]interface{}{
		"contact_id": msg.ID,
		"reference":  msg.Reference,
	})

	return &models.SubmissionResult{
		Success: true,
		Message: ContactSuccessMessage,
		ID:      msg.ID,
	}, nil
}
