package models

import (
	"time"
)

// Favorite records that a listing was saved by the user and when.
// The JSON layout matches the persisted favorites list.
type Favorite struct {
	SavedAt   time.Time `json:"savedAt"`
	ListingID int       `json:"Id"`
}
