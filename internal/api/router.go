package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pathagar/bookshop-api/internal/api/handler"
	"github.com/pathagar/bookshop-api/internal/api/middleware"
	"github.com/pathagar/bookshop-api/internal/core/ports"
	"github.com/pathagar/bookshop-api/internal/core/service"
	mongoinfra "github.com/pathagar/bookshop-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/pathagar/bookshop-api/internal/infrastructure/db/redis"
	"github.com/pathagar/bookshop-api/internal/realtime"
)

// Deps carries the process-wide handles the router wires into handlers.
// They are constructed once in main and owned there for the process
// lifetime; nothing here is reinitialised.
type Deps struct {
	DB       *mongo.Database
	Redis    *redis.Client
	Tokens   ports.TokenCodec
	Provider ports.PaymentProvider
	Activity service.ActivityRecorder
	Hub      *realtime.Hub
	TokenTTL time.Duration
	RoleTTL  time.Duration
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("pathagar"))

	// --- Repositories ---
	userRepo := mongoinfra.NewUserRepository(d.DB)
	cartRepo := mongoinfra.NewCartRepository(d.DB)
	paymentRepo := mongoinfra.NewPaymentRepository(d.DB)
	catalogRepo := mongoinfra.NewCatalogRepository(d.DB)
	reviewRepo := mongoinfra.NewReviewRepository(d.DB)

	// The guard reads roles through the cache; writes invalidate it.
	roles := redisinfra.NewRoleCache(userRepo, d.Redis, d.RoleTTL, d.Logger)

	// --- Services ---
	userService := service.NewUserService(userRepo, roles, d.Tokens, d.TokenTTL, d.Activity, d.Logger)
	cartService := service.NewCartService(cartRepo, paymentRepo, d.Activity, d.Logger)
	catalogService := service.NewCatalogService(catalogRepo, d.Logger)
	reviewService := service.NewReviewService(reviewRepo, d.Logger)
	paymentService := service.NewPaymentService(d.Provider, d.Logger)

	// --- Handlers ---
	userHandler := handler.NewUserHandler(userService)
	cartHandler := handler.NewCartHandler(cartService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// --- Guards ---
	authn := middleware.Auth(d.Tokens)
	owner := middleware.Owner("email")
	admin := middleware.Admin(roles)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello from pathagar server")
	})

	// --- Catalog (public) ---
	e.GET("/course", catalogHandler.Courses)
	e.GET("/books", catalogHandler.Books)

	// --- Reviews ---
	e.GET("/review", reviewHandler.List)
	e.POST("/review", reviewHandler.Add, authn)

	// --- Cart / orders ---
	e.POST("/cart", cartHandler.Add, authn)
	e.GET("/carts", cartHandler.List, authn)
	e.GET("/carts/:id", cartHandler.Get, authn)
	e.PUT("/carts/quantity/:id", cartHandler.SetQuantity, authn)
	e.DELETE("/carts/delete/:id", cartHandler.Delete, authn)
	e.GET("/booking/email/:email", cartHandler.ListByOwner, authn, owner)
	e.DELETE("/booking/dlt/:id", cartHandler.Delete, authn)
	e.PATCH("/cart/:id", cartHandler.Capture, authn)

	// --- Payments ---
	e.POST("/create-payment-intent", paymentHandler.CreateIntent, authn)

	// --- Users ---
	e.PUT("/user/:email", userHandler.Upsert)
	e.GET("/admin/:email", userHandler.AdminCheck)
	e.PUT("/userupdate/:email", userHandler.Update, authn, owner)
	e.GET("/userprofile/:email", userHandler.Profile, authn, owner)
	e.GET("/allusers", userHandler.List, authn, admin)
	e.DELETE("/allusers/dlt/:email", userHandler.Delete, authn, admin)
	e.PUT("/allusers/makeadmin/:email", userHandler.MakeAdmin, authn, admin)
	e.GET("/payments/:transactionId", cartHandler.GetPayment, authn, admin)

	// --- Realtime chat ---
	e.GET("/chat/ws", d.Hub.ServeWS)

	// --- Probes and tooling ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
