package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/casazul/real-estate-api/internal/api/handler"
	"github.com/casazul/real-estate-api/internal/api/middleware"
	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
	"github.com/casazul/real-estate-api/internal/core/service"
	"github.com/casazul/real-estate-api/internal/infrastructure/config"
	mongodb "github.com/casazul/real-estate-api/internal/infrastructure/db/mongo"
	redisdb "github.com/casazul/real-estate-api/internal/infrastructure/db/redis"
	"github.com/casazul/real-estate-api/internal/pkg/token"
	"github.com/casazul/real-estate-api/pkg/logger"
)

// Response cache lifetimes, matching how volatile each resource is.
const (
	locationsCacheTTL = 24 * time.Hour
	usersCacheTTL     = 2 * time.Minute
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, uploader ports.ImageUploader) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("realestate"))

	// --- Dependencies ---
	tokens := token.NewService(cfg.JWTSecret, cfg.JWTLifetime, cfg.IsProduction())

	userRepo := mongodb.NewUserRepository(db)
	locationRepo := mongodb.NewLocationRepository(db)
	propertyRepo := mongodb.NewPropertyRepository(db)

	authService := service.NewAuthService(userRepo, log)
	userService := service.NewUserService(userRepo, propertyRepo, log)
	locationService := service.NewLocationService(locationRepo, log)
	propertyService := service.NewPropertyService(propertyRepo, log)

	authHandler := handler.NewAuthHandler(authService, tokens)
	userHandler := handler.NewUserHandler(userService, tokens)
	locationHandler := handler.NewLocationHandler(locationService)
	propertyHandler := handler.NewPropertyHandler(propertyService, uploader)

	cache := redisdb.NewResponseCache(rdb)
	cacheLocations := middleware.CacheResponse(cache, locationsCacheTTL)
	cacheUsers := middleware.CacheResponse(cache, usersCacheTTL)

	loginRequired := middleware.LoginRequired()
	announcersOnly := middleware.RestrictTo(domain.RoleAnnouncer, domain.RoleAdmin)
	adminsOnly := middleware.RestrictTo(domain.RoleAdmin)

	// Listing creation carries image uploads, so it gets its own throttle.
	createThrottle := echomiddleware.RateLimiter(
		echomiddleware.NewRateLimiterMemoryStore(rate.Limit(cfg.UploadRateLimit)),
	)

	// Identity resolution is global and best-effort; route gates decide
	// whether anonymous callers get through.
	e.Use(middleware.Identify(tokens))

	v1 := e.Group("/api/v1")

	// --- Auth ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/logout", authHandler.Logout)

	// --- Users ---
	// currentUser routes mutate the caller resolved from the cookie, so the
	// static segments must register before the :propertyId toggle.
	users := v1.Group("/users")
	users.GET("", userHandler.List, loginRequired, adminsOnly, cacheUsers)
	users.POST("", userHandler.Create, loginRequired, adminsOnly)
	users.GET("/currentUser", userHandler.CurrentUser, loginRequired)
	users.GET("/currentUser/propertiesFavorited", userHandler.Favorites, loginRequired)
	users.PATCH("/currentUser/username", userHandler.UpdateName, loginRequired)
	users.PATCH("/currentUser/email", userHandler.UpdateEmail, loginRequired)
	users.PATCH("/currentUser/password", userHandler.UpdatePassword, loginRequired)
	users.PATCH("/currentUser/:propertyId", userHandler.AddFavorite, loginRequired)
	users.DELETE("/currentUser/:propertyId", userHandler.RemoveFavorite, loginRequired)
	users.GET("/:userId", userHandler.Get, cacheUsers)

	// --- Locations ---
	locations := v1.Group("/locations")
	locations.GET("", locationHandler.List, cacheLocations)
	locations.POST("", locationHandler.Create, loginRequired, adminsOnly)
	locations.GET("/states", locationHandler.States, cacheLocations)
	locations.GET("/cities", locationHandler.Cities)
	locations.GET("/cities/:state", locationHandler.Cities, cacheLocations)
	locations.GET("/:locationId", locationHandler.Get, cacheLocations)
	locations.PATCH("/:locationId", locationHandler.Update, loginRequired, adminsOnly)
	locations.DELETE("/:locationId", locationHandler.Delete, loginRequired, adminsOnly)

	// --- Properties ---
	properties := v1.Group("/properties")
	properties.GET("", propertyHandler.List)
	properties.POST("", propertyHandler.Create, loginRequired, announcersOnly, createThrottle)
	properties.GET("/user/:userId", propertyHandler.ListByUser)
	properties.GET("/:propertyId", propertyHandler.Get)
	properties.PATCH("/:propertyId", propertyHandler.Update, loginRequired, announcersOnly)
	properties.DELETE("/:propertyId", propertyHandler.Delete, loginRequired, announcersOnly)

	// --- Health probes and operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
