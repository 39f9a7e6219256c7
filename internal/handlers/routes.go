package handlers

import (
	"github.com/apper-canvas/homescout-pixel-alarm/internal/favorites"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/logger"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/metrics"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/middleware"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/services"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries everything the HTTP layer needs.
// Metrics and InquiryLimiter are optional.
type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *metrics.Metrics
	InquiryLimiter *middleware.RateLimiter
	Listings       services.ListingService
	Inquiries      services.InquiryService
	Favorites      *favorites.Store
	Health         *HealthHandler
	CORSOrigins    []string
}

// NewRouter builds the gin engine with middleware and all API routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// Middleware order: RequestID -> Logger -> Recovery -> Metrics -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Log, "/health", "/health/ready", "/metrics"))
	router.Use(middleware.Recovery(cfg.Log))
	if cfg.Metrics != nil {
		router.Use(middleware.Metrics(cfg.Metrics))
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.GET("/health", cfg.Health.Health)
	router.GET("/health/ready", cfg.Health.Ready)

	listingHandler := NewListingHandler(cfg.Listings, cfg.Favorites)
	favoritesHandler := NewFavoritesHandler(cfg.Favorites, cfg.Listings, cfg.Metrics)
	compareHandler := NewCompareHandler(cfg.Listings, cfg.Favorites)
	mortgageHandler := NewMortgageHandler()
	inquiryHandler := NewInquiryHandler(cfg.Inquiries, cfg.Metrics)

	// Inquiry and contact submissions share one per-client budget.
	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if cfg.InquiryLimiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{middleware.RateLimit(cfg.InquiryLimiter, cfg.Metrics), h}
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/info", cfg.Health.Info)

		listings := v1.Group("/listings")
		{
			listings.GET("", listingHandler.List)
			listings.POST("", listingHandler.Create)
			listings.GET("/map", listingHandler.Map)
			listings.GET("/:id", listingHandler.Get)
			listings.PUT("/:id", listingHandler.Update)
			listings.DELETE("/:id", listingHandler.Delete)
			listings.GET("/:id/neighborhood", listingHandler.Neighborhood)
			listings.POST("/:id/inquiries", limited(inquiryHandler.Submit)...)
		}

		favs := v1.Group("/favorites")
		{
			favs.GET("", favoritesHandler.List)
			favs.DELETE("", favoritesHandler.Clear)
			favs.GET("/:id", favoritesHandler.Status)
			favs.POST("/:id/toggle", favoritesHandler.Toggle)
		}

		v1.GET("/compare", compareHandler.Compare)
		v1.GET("/mortgage", mortgageHandler.Calculate)
		v1.POST("/mortgage", mortgageHandler.Calculate)
		v1.POST("/contact", limited(inquiryHandler.Contact)...)
	}

	return router
}
