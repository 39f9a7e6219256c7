package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/browse"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/config"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/database"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/favorites"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/handlers"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/logger"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/metrics"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/middleware"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/repository"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const (
	shutdownTimeout   = 30 * time.Second
	startupTimeout    = 15 * time.Second
	limiterPruneEvery = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Server.Env)
	if cfg.Server.LogLevel != "" {
		log = log.SetLevel(logger.ParseLevel(cfg.Server.LogLevel))
	}
	log.Info("Starting HomeScout API", map[string]interface{}{
		"version":        handlers.APIVersion,
		"environment":    cfg.Server.Env,
		"port":           cfg.Server.Port,
		"listing_source": cfg.Listings.Source,
		"favorites":      cfg.Favorites.Backend,
	})

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	checks := map[string]handlers.Pinger{}
	components := map[string]string{
		"listings":  cfg.Listings.Source,
		"favorites": cfg.Favorites.Backend,
	}

	// Listing and inquiry storage
	var (
		listingRepo repository.ListingRepository
		inquiryRepo repository.InquiryRepository
	)
	switch cfg.Listings.Source {
	case config.ListingSourcePostgres:
		db := connectDatabase(ctx, cfg, log)
		defer db.Close()
		listingRepo = repository.NewPostgresListingRepository(db)
		inquiryRepo = repository.NewPostgresInquiryRepository(db)
		seedDatabase(ctx, listingRepo, log)
		checks["database"] = db
	default:
		memRepo, err := repository.NewSeededListingRepository()
		if err != nil {
			log.Fatal("Failed to load seed listings", err, nil)
		}
		listingRepo = memRepo
		inquiryRepo = repository.NewMemoryInquiryRepository()
		checks["listings"] = memRepo
	}

	// Favorites persistence
	var storage favorites.Storage
	switch cfg.Favorites.Backend {
	case config.FavoritesBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(ctx, startupTimeout)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to connect to redis", err, map[string]interface{}{"addr": cfg.Redis.Addr})
		}
		redisStorage := favorites.NewRedisStorage(client, cfg.Favorites.Key)
		storage = redisStorage
		checks["redis"] = redisStorage
	default:
		fileStorage := favorites.NewFileStorage(cfg.Favorites.Path, cfg.Favorites.Key)
		storage = fileStorage
		checks["favorites"] = fileStorage
		components["favorites_path"] = fileStorage.Path()
	}

	store, err := favorites.NewStore(ctx, storage, log)
	if err != nil {
		log.Fatal("Failed to load favorites", err, nil)
	}
	favLog := log.WithComponent("favorites")
	store.Subscribe(func(saved []models.Favorite) {
		favLog.Debug("Favorites changed", map[string]interface{}{"count": len(saved)})
	})

	// Services
	listingService := services.NewListingService(listingRepo, log)
	inquiryService := services.NewInquiryService(listingService, inquiryRepo, log)

	warmCatalog(ctx, listingRepo, log)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	limiter := middleware.NewRateLimiter(cfg.Inquiry.RatePerMinute, cfg.Inquiry.Burst)
	go limiter.Run(ctx, limiterPruneEvery)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.RouterConfig{
		Log:            log,
		Metrics:        m,
		InquiryLimiter: limiter,
		Listings:       listingService,
		Inquiries:      inquiryService,
		Favorites:      store,
		Health:         handlers.NewHealthHandler(cfg.Server.Env, checks, components),
		CORSOrigins:    cfg.CORS.Origins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...", nil)
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}

func connectDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) *database.Database {
	connectCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	db, err := database.NewPostgresPool(connectCtx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}

	if err := db.EnsureSchema(connectCtx); err != nil {
		db.Close()
		log.Fatal("Failed to prepare database schema", err, nil)
	}

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool":     db.Stats(),
	})
	return db
}

// seedDatabase loads the bundled listings into an empty listings table.
func seedDatabase(ctx context.Context, repo repository.ListingRepository, log *logger.Logger) {
	seed, err := repository.SeedListings()
	if err != nil {
		log.Fatal("Failed to load seed listings", err, nil)
	}

	seedCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	n, err := repository.SeedIfEmpty(seedCtx, repo, seed)
	if err != nil {
		log.Fatal("Failed to seed listings", err, nil)
	}
	if n > 0 {
		log.Info("Seeded listings table", map[string]interface{}{"count": n})
	}
}

// warmCatalog runs one browse refresh with default filters so a broken
// listing source is reported at startup rather than on the first request.
func warmCatalog(ctx context.Context, source browse.ListingSource, log *logger.Logger) {
	warmCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	session := browse.NewSession(source)
	if err := session.Refresh(warmCtx); err != nil {
		log.Warn("Listing catalog warm-up failed", map[string]interface{}{"error": err.Error()})
		return
	}

	view := session.View()
	fields := map[string]interface{}{"visible": len(view), "sort": string(session.SortKey())}
	if len(view) > 0 {
		fields["newest"] = view[0].Title
	}
	log.Info("Listing catalog ready", fields)
}
