package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/nexaa/auth-service/docs"
	"github.com/nexaa/auth-service/internal/api/handler"
	"github.com/nexaa/auth-service/internal/api/middleware"
	"github.com/nexaa/auth-service/internal/core/domain"
	"github.com/nexaa/auth-service/internal/core/service"
	"github.com/nexaa/auth-service/internal/core/token"
	"github.com/nexaa/auth-service/internal/infrastructure/config"
	mongodb "github.com/nexaa/auth-service/internal/infrastructure/db/mongo"
)

// corsMiddleware allows the browser frontend to call the API cross-origin.
// Any origin is accepted; preflight results may be cached for an hour.
func corsMiddleware() echo.MiddlewareFunc {
	return echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		MaxAge:       3600,
	})
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The throttle and audit sink are constructed by the caller because they are
// tied to the store connections and the process lifecycle.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, throttle service.SignInThrottle, audit service.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(corsMiddleware())
	e.Use(echoprometheus.NewMiddleware("nexaa"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	issuer := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authService := service.NewAuthService(userRepo, issuer, cfg.Auth.MinPasswordLen, log,
		service.WithThrottle(throttle),
		service.WithAuditSink(audit),
	)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	adminHandler := handler.NewAdminHandler(auditRepo)
	authMiddleware := middleware.Auth(issuer)

	// --- Root ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to the Nexaa backend API! Server is running."})
	})

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.SignUp)
	e.POST("/auth/signin", authHandler.SignIn)
	e.POST("/auth/validate", authHandler.Validate)
	e.GET("/auth/health", authHandler.Health)

	// --- Protected routes ---
	e.GET("/auth/me", userHandler.Me, authMiddleware)
	e.GET("/auth/admin/events", adminHandler.ListEvents, authMiddleware, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
