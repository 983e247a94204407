// api/routes/router.go
package routes

import (
	"flyviet/internal/auth"
	"flyviet/internal/bookings"
	"flyviet/internal/drafts"
	"flyviet/internal/flights"
	"flyviet/internal/payments"
	"flyviet/internal/pricing"
	"flyviet/internal/promotions"
	"flyviet/internal/shared/config"
	"flyviet/internal/shared/database"
	"flyviet/internal/statistics"
	"flyviet/pkg/cache"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher bookings.EventPublisher

	// Shared services wired across route groups
	cacheService cache.Service
	flightSvc    flights.Service
	promoSvc     promotions.Service
	draftSvc     drafts.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher bookings.EventPublisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Redis-backed response cache shared by all services
	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedisClient())
	}

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Flight search and admin flight management (must come first:
		// drafts and bookings depend on the flight service)
		r.setupFlightRoutes(api)

		// Promotion validation and admin promotion management
		r.setupPromotionRoutes(api)

		// Booking draft session flow
		r.setupDraftRoutes(api)

		// Booking creation, lookup, payment settlement and cancellation
		r.setupBookingRoutes(api)

		// Admin statistics dashboard
		r.setupStatisticsRoutes(api)

		// Admin authentication
		r.setupAuthRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "flyviet-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "flyviet-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupFlightRoutes configures flight search and management routes
func (r *Router) setupFlightRoutes(rg *gin.RouterGroup) {
	flightRepo := flights.NewRepository(r.db.GetPostgreSQL())
	flightService := flights.NewService(flightRepo)
	if r.cacheService != nil {
		flightService.SetCacheService(r.cacheService)
	}
	flightController := flights.NewController(flightService)

	// Keep the service for draft and booking wiring
	r.flightSvc = flightService

	flights.SetupFlightRoutes(rg, flightController)
}

// setupPromotionRoutes configures promotion routes
func (r *Router) setupPromotionRoutes(rg *gin.RouterGroup) {
	promoStore, err := promotions.NewStore(r.config.Promotions.Store, r.db.GetPostgreSQL())
	if err != nil {
		// Unknown store names are a deployment mistake, not a runtime state
		panic(err)
	}
	promoService := promotions.NewService(promoStore)
	if r.cacheService != nil {
		promoService.SetCacheService(r.cacheService)
	}
	promoController := promotions.NewController(promoService)

	r.promoSvc = promoService

	promotions.SetupPromotionRoutes(rg, promoController)
}

// setupDraftRoutes configures the booking draft session routes
func (r *Router) setupDraftRoutes(rg *gin.RouterGroup) {
	policy := pricing.MissingPriceError
	if r.config.Pricing.AllowZeroFallback {
		policy = pricing.MissingPriceZero
	}
	calculator := pricing.NewCalculator(policy)

	draftStore := drafts.NewRedisStore(r.db.GetRedisClient(), r.config.Redis.DraftTTL)
	draftService := drafts.NewService(draftStore, r.flightSvc, r.promoSvc, calculator)
	draftController := drafts.NewController(draftService)

	r.draftSvc = draftService

	drafts.SetupDraftRoutes(rg, draftController)
}

// setupBookingRoutes configures booking routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(
		bookingRepo,
		r.draftSvc,
		r.flightSvc,
		r.promoSvc,
		payments.NewDispatcher(),
		r.publisher,
	)
	if r.cacheService != nil {
		bookingService.SetCacheService(r.cacheService)
	}
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupStatisticsRoutes configures admin statistics routes
func (r *Router) setupStatisticsRoutes(rg *gin.RouterGroup) {
	statsRepo := statistics.NewRepository(r.db.GetPostgreSQL())
	statsService := statistics.NewService(statsRepo)
	if r.cacheService != nil {
		statsService.SetCacheService(r.cacheService)
	}
	statsController := statistics.NewController(statsService)

	statistics.SetupStatisticsRoutes(rg, statsController)
}

// setupAuthRoutes configures admin authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}
