package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/kinshiplabs/tracker/docs"
	"github.com/kinshiplabs/tracker/internal/api/handler"
	"github.com/kinshiplabs/tracker/internal/api/middleware"
	"github.com/kinshiplabs/tracker/internal/core/domain"
	"github.com/kinshiplabs/tracker/internal/core/ports"
	"github.com/kinshiplabs/tracker/internal/infrastructure/http/handlers"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Tracker   ports.TrackerService
	Auth      ports.AuthService
	Insights  ports.InsightService
	JWTSecret string
	TokenTTL  time.Duration
	// Ready lists the dependencies checked by /health/ready.
	Ready map[string]handlers.Pinger
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddleware("tracker"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.TokenTTL)
	sessionHandler := handler.NewSessionHandler(deps.Tracker)
	recordHandler := handler.NewRecordHandler(deps.Tracker)
	messageHandler := handler.NewMessageHandler(deps.Tracker)
	groupHandler := handler.NewGroupHandler(deps.Tracker)
	statusHandler := handler.NewStatusHandler(deps.Tracker)
	dashboardHandler := handler.NewDashboardHandler(deps.Tracker)
	insightHandler := handler.NewInsightHandler(deps.Tracker, deps.Insights)

	auth := middleware.Auth(deps.JWTSecret, deps.Tracker)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	friendOnly := middleware.RBAC(domain.RoleFriend)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/logout", authHandler.Logout, auth)

	// --- API v1 ---
	v1 := e.Group("/v1")
	v1.GET("/session", sessionHandler.Current)

	secured := v1.Group("", auth)
	secured.GET("/tasks", dashboardHandler.Tasks)
	secured.GET("/users", dashboardHandler.Users, adminOnly)
	secured.GET("/overview", dashboardHandler.Overview, adminOnly)

	secured.PUT("/records", recordHandler.Upsert)
	secured.GET("/records", recordHandler.List)

	secured.POST("/messages", messageHandler.Send)
	secured.GET("/messages", messageHandler.Conversation)

	secured.POST("/groups", groupHandler.Create, adminOnly)
	secured.GET("/groups", groupHandler.List)
	secured.PUT("/groups/:id/members", groupHandler.UpdateMembers, adminOnly)
	secured.POST("/groups/:id/posts", groupHandler.Post)

	secured.POST("/statuses", statusHandler.Upload)
	secured.GET("/statuses", statusHandler.List)

	secured.GET("/insights/journal-summary/:user_id", insightHandler.JournalSummary, adminOnly)
	secured.GET("/insights/inspiration", insightHandler.Inspiration, friendOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Ready)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
