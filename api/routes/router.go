package routes

import (
	"net/http"
	"time"

	"stagepass/internal/bookings"
	"stagepass/internal/categories"
	"stagepass/internal/events"
	"stagepass/internal/layouts"
	"stagepass/internal/notifications"
	"stagepass/internal/payments"
	"stagepass/internal/shared/config"
	"stagepass/internal/shared/database"
	"stagepass/internal/shared/middleware"
	"stagepass/internal/shared/utils/response"
	"stagepass/pkg/cache"
	"stagepass/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter wires every domain together and returns the HTTP engine.
// Cross-domain calls go through small interfaces so the packages stay
// one-directional: bookings consumes layouts and categories, payments
// consumes bookings.
func SetupRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger())
	engine.Use(corsMiddleware(cfg))

	if cfg.RateLimit.Enabled {
		limiter := ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:         true,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			PublicRequests:  cfg.RateLimit.PublicRequests,
			BookingRequests: cfg.RateLimit.BookingRequests,
			PaymentRequests: cfg.RateLimit.PaymentRequests,
			AdminRequests:   cfg.RateLimit.AdminRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		})
		engine.Use(ratelimit.Middleware(limiter))
	}

	setupSystemRoutes(engine, db)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	cacheService := cache.NewService(db.GetRedisClient())

	// Domain services
	eventService := events.NewService(events.NewRepository(db.GetPostgreSQL()))

	categoryService := categories.NewService(categories.NewRepository(db.GetPostgreSQL()))
	categoryService.SetCacheService(cacheService)

	layoutService := layouts.NewService(layouts.NewRepository(db.GetPostgreSQL()), categoryService, eventService, cfg.Layout)
	layoutService.SetCacheService(cacheService)

	windows := payments.NewWindows(db.GetRedisClient(), cfg.Booking)
	sessionStore := bookings.NewSessionStore(db.GetRedisClient(), cfg.Booking.SessionTTL)
	bookingRepo := bookings.NewRepository(db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, sessionStore, layoutService, categoryService, windows, cfg.Booking)

	paymentService := payments.NewService(bookingRepo, windows, producer, cfg.Payment)

	// Controllers
	eventController := events.NewController(eventService)
	categoryController := categories.NewController(categoryService)
	layoutController := layouts.NewController(layoutService)
	bookingController := bookings.NewController(bookingService)
	paymentController := payments.NewController(paymentService)

	v1 := engine.Group(cfg.GetAPIBasePath())

	// Public catalog routes
	events.SetupEventRoutes(v1, eventController)
	categories.SetupCategoryRoutes(v1, categoryController)
	layouts.SetupLayoutRoutes(v1, layoutController)

	// Booking flow: starts anonymous, auth enforced from payment onwards
	flow := v1.Group("", middleware.OptionalAuth(cfg))
	bookings.SetupSessionRoutes(flow, bookingController)

	// Authenticated routes
	authed := v1.Group("", middleware.JWTAuth(cfg))
	bookings.SetupBookingRoutes(authed, bookingController)
	payments.SetupPaymentRoutes(authed, paymentController)

	// Admin routes
	admin := v1.Group("/admin", middleware.JWTAuth(cfg), middleware.RequireAdmin())
	categories.SetupAdminCategoryRoutes(admin, categoryController)
	layouts.SetupAdminLayoutRoutes(admin, layoutController)
	bookings.SetupAdminBookingRoutes(admin, bookingController)
	payments.SetupAdminPaymentRoutes(admin, paymentController)

	return engine
}

func setupSystemRoutes(engine *gin.Engine, db *database.DB) {
	engine.GET("/ping", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "pong", nil)
	})

	engine.GET("/health", func(c *gin.Context) {
		if err := db.HealthCheck(c.Request.Context()); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "Service unhealthy", err.Error())
			return
		}
		response.Success(c, http.StatusOK, "Service healthy", gin.H{
			"time": time.Now().UTC(),
		})
	})
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if cfg.IsProduction() {
		corsConfig.AllowOriginFunc = func(origin string) bool {
			return origin == "https://stagepass.app" || origin == "https://admin.stagepass.app"
		}
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}

	return cors.New(corsConfig)
}
