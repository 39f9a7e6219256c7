package handlers

import (
	"net/http"
	"strconv"
	"strings"

	apierrors "github.com/apper-canvas/homescout-pixel-alarm/internal/errors"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/services"
	"github.com/gin-gonic/gin"
)

// SavedIDs lists saved listing ids in the order they were saved.
type SavedIDs interface {
	IDs() []int
}

// CompareHandler serves side-by-side listing comparison.
type CompareHandler struct {
	service services.ListingService
	saved   SavedIDs
}

// NewCompareHandler creates a new CompareHandler.
func NewCompareHandler(service services.ListingService, saved SavedIDs) *CompareHandler {
	return &CompareHandler{service: service, saved: saved}
}

// CompareResponse is the response for the compare endpoint.
type CompareResponse struct {
	Listings []ListingResponse `json:"listings"`
	Count    int               `json:"count"`
}

// defaultSelection is the first two saved listings.
func (h *CompareHandler) defaultSelection() []int {
	ids := h.saved.IDs()
	if len(ids) > services.MinCompareListings {
		ids = ids[:services.MinCompareListings]
	}
	return ids
}

// Compare handles GET /api/v1/compare?ids=1,2,3. Without ids it compares the
// first two saved listings.
func (h *CompareHandler) Compare(c *gin.Context) {
	var ids []int
	raw := strings.TrimSpace(c.Query("ids"))

	if raw == "" {
		ids = h.defaultSelection()
	} else {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || id <= 0 {
				apierrors.InvalidParameter(c, "ids", "Must be a comma-separated list of listing ids")
				return
			}
			ids = append(ids, id)
		}
	}

	listings, err := h.service.Compare(c.Request.Context(), ids)
	if err != nil {
		writeServiceError(c, err, "compare listings")
		return
	}

	c.JSON(http.StatusOK, CompareResponse{
		Listings: newListingResponses(listings, nil),
		Count:    len(listings),
	})
}
