package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/movemate/logistics-api/docs"
	"github.com/movemate/logistics-api/internal/api/handler"
	"github.com/movemate/logistics-api/internal/api/middleware"
	"github.com/movemate/logistics-api/internal/core/domain"
	"github.com/movemate/logistics-api/internal/core/ports"
)

// Services bundles the wired use-case implementations the router exposes.
// Construction happens in main because the chat service, reminder scheduler
// and dispatcher reference each other.
type Services struct {
	Shipments ports.ShipmentService
	Tickets   ports.TicketService
	Chats     ports.ChatService
	Analytics ports.AnalyticsService
	Auth      ports.AuthService
}

// RouterConfig carries the router's own settings.
type RouterConfig struct {
	JWTSecret     string
	PublicBaseURL string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, svcs Services, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("movemate"))

	// --- Handlers ---
	shipmentHandler := handler.NewShipmentHandler(svcs.Shipments, cfg.PublicBaseURL)
	ticketHandler := handler.NewTicketHandler(svcs.Tickets)
	chatHandler := handler.NewChatHandler(svcs.Chats)
	analyticsHandler := handler.NewAnalyticsHandler(svcs.Analytics)
	authHandler := handler.NewAuthHandler(svcs.Auth)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Public site routes ---
	v1 := e.Group("/v1")
	v1.POST("/shipments", shipmentHandler.Create)
	v1.GET("/shipments/:tracking_id", shipmentHandler.Track)
	v1.GET("/shipments/:tracking_id/receipt", shipmentHandler.Receipt)
	v1.GET("/shipments/:tracking_id/qrcode", shipmentHandler.QRCode)
	v1.POST("/tickets", ticketHandler.Create)
	v1.POST("/chat/sessions", chatHandler.StartSession)
	v1.GET("/chat/sessions/:session_id", chatHandler.GetSession)
	v1.POST("/chat/sessions/:session_id/messages", chatHandler.VisitorMessage)

	// --- Admin console routes ---
	admin := v1.Group("/admin",
		middleware.Auth(cfg.JWTSecret),
		middleware.RBAC(domain.RoleAdmin, domain.RoleAgent),
	)
	admin.GET("/shipments", shipmentHandler.List)
	admin.GET("/shipments/export", shipmentHandler.ExportCSV)
	admin.PUT("/shipments/:tracking_id", shipmentHandler.Update)
	admin.POST("/shipments/:tracking_id/deliver", shipmentHandler.MarkDelivered)
	admin.POST("/shipments/:tracking_id/events", shipmentHandler.AddTimelineEvent)
	admin.DELETE("/shipments/:tracking_id", shipmentHandler.Delete)

	admin.GET("/analytics", analyticsHandler.Report)

	admin.GET("/tickets", ticketHandler.List)
	admin.GET("/tickets/export", ticketHandler.ExportCSV)
	admin.POST("/tickets", ticketHandler.Create)
	admin.GET("/tickets/:ticket_id", ticketHandler.Get)
	admin.PUT("/tickets/:ticket_id/status", ticketHandler.UpdateStatus)
	admin.POST("/tickets/:ticket_id/responses", ticketHandler.AddResponse)

	admin.GET("/chat/sessions", chatHandler.List)
	admin.GET("/chat/sessions/:session_id", chatHandler.OpenSession)
	admin.POST("/chat/sessions/:session_id/messages", chatHandler.AgentMessage)
	admin.PUT("/chat/sessions/:session_id/status", chatHandler.UpdateStatus)
	admin.POST("/chat/sessions/:session_id/bot", chatHandler.SetBotMode)
	admin.DELETE("/chat/sessions/:session_id", chatHandler.Delete)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
