package models

import (
	"time"
)

// Inquiry is a contact request about a specific listing.
type Inquiry struct {
	CreatedAt     time.Time `json:"createdAt"`
	Reference     string    `json:"reference"`
	Name          string    `json:"name" validate:"required,max=200"`
	Email         string    `json:"email" validate:"required,email"`
	Phone         string    `json:"phone,omitempty" validate:"omitempty,max=40"`
	Message       string    `json:"message" validate:"required,max=5000"`
	PropertyTitle string    `json:"propertyTitle"`
	PropertyPrice float64   `json:"propertyPrice"`
	ID            int64     `json:"id"`
	PropertyID    int       `json:"propertyId" validate:"required,gt=0"`
}

// ContactMessage is a general contact request not tied to a listing.
type ContactMessage struct {
	CreatedAt time.Time `json:"createdAt"`
	Reference string    `json:"reference"`
	Name      string    `json:"name" validate:"required,max=200"`
	Email     string    `json:"email" validate:"required,email"`
	Subject   string    `json:"subject,omitempty" validate:"omitempty,max=200"`
	Message   string    `json:"message" validate:"required,max=5000"`
	ID        int64     `json:"id"`
}

// SubmissionResult is returned to the user after a successful submission.
type SubmissionResult struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
	Success bool   `json:"success"`
}
