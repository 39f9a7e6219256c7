package handlers

import (
	"errors"
	"net/http"
	"time"

	apierrors "github.com/apper-canvas/homescout-pixel-alarm/internal/errors"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/favorites"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/metrics"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/services"
	"github.com/gin-gonic/gin"
)

// FavoritesHandler serves the saved-listings endpoints.
type FavoritesHandler struct {
	store    *favorites.Store
	listings services.ListingService
	metrics  *metrics.Metrics
}

// NewFavoritesHandler creates a new FavoritesHandler. m may be nil.
func NewFavoritesHandler(store *favorites.Store, listings services.ListingService, m *metrics.Metrics) *FavoritesHandler {
	return &FavoritesHandler{
		store:    store,
		listings: listings,
		metrics:  m,
	}
}

// SavedListing is a favorite record with its listing resolved. Listing is
// nil when the listing has since been removed.
type SavedListing struct {
	SavedAt time.Time        `json:"savedAt"`
	Listing *ListingResponse `json:"listing"`
	ID      int              `json:"Id"`
}

// FavoritesResponse is the response for the saved-listings endpoint.
type FavoritesResponse struct {
	Favorites []SavedListing `json:"favorites"`
	Count     int            `json:"count"`
}

// ToggleResponse reports the state after a toggle.
type ToggleResponse struct {
	Favorite  models.Favorite `json:"favorite"`
	Favorited bool            `json:"favorited"`
}

// StatusResponse reports whether one listing is saved.
type StatusResponse struct {
	Favorite  *models.Favorite `json:"favorite,omitempty"`
	Favorited bool             `json:"favorited"`
}

// List handles GET /api/v1/favorites, in the order listings were saved.
func (h *FavoritesHandler) List(c *gin.Context) {
	saved := h.store.List()
	out := make([]SavedListing, 0, len(saved))

	for _, f := range saved {
		entry := SavedListing{ID: f.ListingID, SavedAt: f.SavedAt}

		listing, err := h.listings.Get(c.Request.Context(), f.ListingID)
		switch {
		case err == nil:
			resp := newListingResponse(*listing, h.store)
			entry.Listing = &resp
		case errors.Is(err, services.ErrListingNotFound):
		default:
			writeServiceError(c, err, "load saved listings")
			return
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, FavoritesResponse{Favorites: out, Count: len(out)})
}

// Toggle handles POST /api/v1/favorites/:id/toggle. Saving requires the
// listing to exist; removing does not, so stale favorites can be cleared.
func (h *FavoritesHandler) Toggle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if !h.store.IsFavorite(id) {
		if _, err := h.listings.Get(c.Request.Context(), id); err != nil {
			writeServiceError(c, err, "load listing")
			return
		}
	}

	fav, added, err := h.store.Toggle(c.Request.Context(), id)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to save favorites", err)
		return
	}
	h.metrics.FavoriteToggled(added)

	c.JSON(http.StatusOK, ToggleResponse{Favorite: fav, Favorited: added})
}

// Status handles GET /api/v1/favorites/:id.
func (h *FavoritesHandler) Status(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	resp := StatusResponse{}
	if fav, ok := h.store.Get(id); ok {
		resp.Favorite = &fav
		resp.Favorited = true
	}
	c.JSON(http.StatusOK, resp)
}

// Clear handles DELETE /api/v1/favorites.
func (h *FavoritesHandler) Clear(c *gin.Context) {
	if err := h.store.ClearAll(c.Request.Context()); err != nil {
		apierrors.InternalServerError(c, "Failed to clear favorites", err)
		return
	}
	c.Status(http.StatusNoContent)
}
