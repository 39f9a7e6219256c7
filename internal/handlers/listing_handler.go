package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/browse"
	apierrors "github.com/apper-canvas/homescout-pixel-alarm/internal/errors"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/middleware"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/services"
	"github.com/gin-gonic/gin"
)

// ListingHandler handles listing browse, detail and CRUD requests.
type ListingHandler struct {
	service   services.ListingService
	favorites FavoriteChecker
}

// NewListingHandler creates a new ListingHandler instance. favorites may be nil.
func NewListingHandler(service services.ListingService, favorites FavoriteChecker) *ListingHandler {
	return &ListingHandler{
		service:   service,
		favorites: favorites,
	}
}

// ListResponse is the response for the browse endpoint.
type ListResponse struct {
	Listings []ListingResponse `json:"listings"`
	Filters  models.FilterSpec `json:"filters"`
	Sort     models.SortKey    `json:"sort"`
	Count    int               `json:"count"`
	Total    int               `json:"total"`
}

// MapResponse is the response for the map endpoint.
type MapResponse struct {
	Clusters  []browse.Cluster `json:"clusters"`
	Count     int              `json:"count"`
	Precision uint             `json:"precision"`
}

// paramError names the query parameter that failed to parse.
type paramError struct {
	name    string
	message string
}

func (e *paramError) Error() string { return e.name + ": " + e.message }

func queryFloat(c *gin.Context, name string, def float64) (float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &paramError{name: name, message: "Must be a number"}
	}
	return v, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &paramError{name: name, message: "Must be an integer"}
	}
	return v, nil
}

// parseFilterSpec reads the filter query parameters, filling in defaults for
// anything absent. Property types may be repeated (type=House&type=Condo)
// or comma separated.
func parseFilterSpec(c *gin.Context) (models.FilterSpec, error) {
	spec := browse.DefaultFilterSpec()
	var err error

	if spec.PriceMin, err = queryFloat(c, "priceMin", spec.PriceMin); err != nil {
		return spec, err
	}
	if spec.PriceMax, err = queryFloat(c, "priceMax", spec.PriceMax); err != nil {
		return spec, err
	}
	if spec.BathroomsMin, err = queryFloat(c, "bathroomsMin", spec.BathroomsMin); err != nil {
		return spec, err
	}
	if spec.BedroomsMin, err = queryInt(c, "bedroomsMin", spec.BedroomsMin); err != nil {
		return spec, err
	}
	if spec.SquareFeetMin, err = queryInt(c, "squareFeetMin", spec.SquareFeetMin); err != nil {
		return spec, err
	}
	if spec.YearBuiltMin, err = queryInt(c, "yearBuiltMin", spec.YearBuiltMin); err != nil {
		return spec, err
	}

	for _, raw := range c.QueryArray("type") {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			t := models.PropertyType(name)
			if !t.Valid() {
				return spec, &paramError{name: "type", message: "Unknown property type " + strconv.Quote(name)}
			}
			spec.PropertyTypes = append(spec.PropertyTypes, t)
		}
	}

	return spec, nil
}

// writeParamError writes the INVALID_PARAMETER response for a parse failure.
func writeParamError(c *gin.Context, err error) {
	var pe *paramError
	if errors.As(err, &pe) {
		apierrors.InvalidParameter(c, pe.name, pe.message)
		return
	}
	apierrors.BadRequest(c, "Invalid query parameters", nil)
}

// List handles GET /api/v1/listings.
// An unrecognised sort key leaves the filtered order unchanged.
func (h *ListingHandler) List(c *gin.Context) {
	spec, err := parseFilterSpec(c)
	if err != nil {
		writeParamError(c, err)
		return
	}
	key := models.SortKey(c.DefaultQuery("sort", string(browse.DefaultSortKey)))

	if log := middleware.GetLogger(c); log != nil && !browse.IsKnownSortKey(key) {
		log.Debug("Unknown sort key, keeping filtered order", map[string]interface{}{"sort": string(key)})
	}

	result, err := h.service.Browse(c.Request.Context(), spec, key)
	if err != nil {
		writeServiceError(c, err, "load listings")
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Listings: newListingResponses(result.Listings, h.favorites),
		Filters:  spec,
		Sort:     key,
		Count:    len(result.Listings),
		Total:    result.Total,
	})
}

// Map handles GET /api/v1/listings/map.
func (h *ListingHandler) Map(c *gin.Context) {
	spec, err := parseFilterSpec(c)
	if err != nil {
		writeParamError(c, err)
		return
	}

	precision, err := queryInt(c, "precision", browse.DefaultClusterPrecision)
	if err != nil {
		writeParamError(c, err)
		return
	}
	if precision < browse.MinClusterPrecision || precision > browse.MaxClusterPrecision {
		apierrors.InvalidParameter(c, "precision", "Must be between 1 and 12")
		return
	}

	clusters, err := h.service.MapClusters(c.Request.Context(), spec, uint(precision))
	if err != nil {
		writeServiceError(c, err, "load map clusters")
		return
	}

	c.JSON(http.StatusOK, MapResponse{
		Clusters:  clusters,
		Count:     len(clusters),
		Precision: uint(precision),
	})
}

// Get handles GET /api/v1/listings/:id.
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	listing, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "load listing")
		return
	}

	c.JSON(http.StatusOK, newListingResponse(*listing, h.favorites))
}

// Create handles POST /api/v1/listings.
func (h *ListingHandler) Create(c *gin.Context) {
	var listing models.Listing
	if err := c.ShouldBindJSON(&listing); err != nil {
		apierrors.BadRequest(c, "Invalid listing body", map[string]interface{}{"reason": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), listing)
	if err != nil {
		writeServiceError(c, err, "create listing")
		return
	}

	c.Header("Location", "/api/v1/listings/"+strconv.Itoa(created.ID))
	c.JSON(http.StatusCreated, newListingResponse(*created, h.favorites))
}

// Update handles PUT /api/v1/listings/:id. Only the supplied fields change.
func (h *ListingHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var patch models.ListingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		apierrors.BadRequest(c, "Invalid listing body", map[string]interface{}{"reason": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeServiceError(c, err, "update listing")
		return
	}

	c.JSON(http.StatusOK, newListingResponse(*updated, h.favorites))
}

// Delete handles DELETE /api/v1/listings/:id and returns the removed listing.
func (h *ListingHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "delete listing")
		return
	}

	c.JSON(http.StatusOK, newListingResponse(*deleted, nil))
}

// Neighborhood handles GET /api/v1/listings/:id/neighborhood.
func (h *ListingHandler) Neighborhood(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	stats, err := h.service.Neighborhood(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "load neighborhood statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}
