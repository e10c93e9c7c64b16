package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tailormate/tailormate-api/internal/api/handler"
	"github.com/tailormate/tailormate-api/internal/api/middleware"
	"github.com/tailormate/tailormate-api/internal/core/domain"
	"github.com/tailormate/tailormate-api/internal/core/ports"
	"github.com/tailormate/tailormate-api/pkg/token"
)

// Deps carries everything the router needs to register routes.
type Deps struct {
	Log    zerolog.Logger
	Tokens *token.Manager

	DB  *mongo.Database
	RDB *redis.Client

	Auth          ports.AuthService
	Users         ports.UserService
	Tailors       ports.TailorService
	Clients       ports.ClientService
	Orders        ports.OrderService
	Appointments  ports.AppointmentService
	Measurements  ports.MeasurementService
	Notifications ports.NotificationService
	Bus           ports.EventBus
	Uploads       handler.FileStore
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tailormate"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	tailorHandler := handler.NewTailorHandler(d.Tailors)
	clientHandler := handler.NewClientHandler(d.Clients)
	orderHandler := handler.NewOrderHandler(d.Orders)
	appointmentHandler := handler.NewAppointmentHandler(d.Appointments, d.Uploads)
	measurementHandler := handler.NewMeasurementHandler(d.Measurements)
	notificationHandler := handler.NewNotificationHandler(d.Notifications, d.Bus)

	// --- Open routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.POST("/reset-password", authHandler.ForgotPassword)
	e.POST("/reset-password/:token", authHandler.ResetPassword)

	// --- Health probes and operational surfaces (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.RDB)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Protected routes ---
	auth := e.Group("", middleware.Auth(d.Tokens))

	auth.POST("/clients", clientHandler.Create)
	auth.GET("/clients", clientHandler.List)
	auth.GET("/clients/:id", clientHandler.Get)
	auth.DELETE("/clients/:id", clientHandler.Delete)

	auth.GET("/tailors", tailorHandler.List)
	auth.GET("/tailors/:id", tailorHandler.Get)
	auth.DELETE("/tailors/:id", tailorHandler.Delete)

	auth.POST("/orders", orderHandler.Create)
	auth.GET("/orders", orderHandler.List)
	auth.GET("/orders/:orderId", orderHandler.Get)
	auth.PUT("/orders/:orderId", orderHandler.Update)
	auth.PATCH("/orders/:orderId/status", orderHandler.ToggleStatus)
	auth.DELETE("/orders/:orderId", orderHandler.Delete)

	auth.POST("/appointments", appointmentHandler.Create)
	auth.GET("/appointments", appointmentHandler.List)
	auth.GET("/appointments/:id", appointmentHandler.Get)
	auth.PUT("/appointments/:id", appointmentHandler.Update)
	auth.PATCH("/appointments/:id/validate", appointmentHandler.Validate)
	auth.POST("/appointments/:id/image", appointmentHandler.UploadImage)
	auth.DELETE("/appointments/:id", appointmentHandler.Delete)

	auth.POST("/measurements", measurementHandler.Create)
	auth.GET("/measurements", measurementHandler.List)
	auth.GET("/measurements/:id", measurementHandler.Get)
	auth.PUT("/measurements/:id", measurementHandler.Update)
	auth.DELETE("/measurements/:id", measurementHandler.Delete)

	auth.POST("/notifications", notificationHandler.Create)
	auth.GET("/notifications", notificationHandler.List)
	auth.GET("/notifications/stream", notificationHandler.Stream)
	auth.GET("/notifications/:id", notificationHandler.Get)
	auth.PUT("/notifications/:id", notificationHandler.Update)
	auth.DELETE("/notifications/:id", notificationHandler.Delete)

	auth.GET("/users/:id", userHandler.Get)
	auth.PUT("/users/:id", userHandler.Update)

	// --- Admin-only routes ---
	admin := auth.Group("", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/users", userHandler.List)
	admin.DELETE("/users/:id", userHandler.Delete)

	return e
}
