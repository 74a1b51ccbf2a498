package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/orderdispatcher/auth-service/internal/api/handler"
	"github.com/orderdispatcher/auth-service/internal/api/middleware"
	"github.com/orderdispatcher/auth-service/internal/core/ports"
)

// Deps carries the wired services and connections the router exposes.
type Deps struct {
	AuthService    ports.AuthService
	ProfileService ports.ProfileService
	AuthOptions    middleware.Options

	Mongo *mongo.Database
	Redis *redis.Client
	AMQP  *amqp.Connection

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	profileHandler := handler.NewProfileHandler(deps.ProfileService)
	authRequired := middleware.Auth(deps.AuthOptions)

	// --- Auth routes (anonymous) ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Profile routes (bearer token required) ---
	profile := auth.Group("/profile", authRequired)
	profile.POST("/save", profileHandler.Save)
	profile.GET("/getOne/:userId", profileHandler.GetOne)
	profile.POST("/saveAddress", profileHandler.SaveAddress)
	profile.GET("/getAddress/:id", profileHandler.GetAddress)
	profile.GET("/getAllAddresses", profileHandler.GetAllAddresses)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis, deps.AMQP)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
