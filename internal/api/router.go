package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/ewbmobile/hybrid-shell/internal/api/handler"
	"github.com/ewbmobile/hybrid-shell/internal/core/ports"
)

// Deps are the services the local shell API is built on.
type Deps struct {
	Sessions     ports.SessionService
	Shell        ports.ShellService
	Store        ports.CredentialStore
	StoreBackend string
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.RequestLoggerWithConfig(requestLogger(deps.Log)))
	e.Use(echoprometheus.NewMiddleware("hybrid_shell"))

	// --- Dependencies ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions)
	moduleHandler := handler.NewModuleHandler(deps.Shell)
	viewHandler := handler.NewViewHandler(deps.Shell, deps.Log)
	healthHandler := handler.NewHealthHandler(deps.Store, deps.StoreBackend)

	v1 := e.Group("/v1")

	// --- Session routes ---
	v1.GET("/session", sessionHandler.Get)
	v1.POST("/session/login", sessionHandler.Login)
	v1.POST("/session/logout", sessionHandler.Logout)

	// --- Catalog routes ---
	v1.GET("/modules", moduleHandler.List)
	v1.GET("/quick-actions", moduleHandler.QuickActions)

	// --- Content view routes ---
	v1.POST("/views", viewHandler.Open)
	v1.GET("/views/:id", viewHandler.Get)
	v1.DELETE("/views/:id", viewHandler.Close)
	v1.POST("/views/:id/injected", viewHandler.Injected)
	v1.POST("/views/:id/lifecycle", viewHandler.Lifecycle)
	v1.POST("/views/:id/navigate", viewHandler.Navigate)
	v1.POST("/views/:id/reload", viewHandler.Reload)
	v1.GET("/views/:id/watch", viewHandler.Watch)

	// --- Health probes ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – does the credential store answer?
	e.GET("/metrics", echoprometheus.NewHandler())  // Prometheus scrape endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)    // API docs

	return e
}

// requestLogger writes one zerolog line per request. Request bodies are never
// logged since login carries a password.
func requestLogger(log zerolog.Logger) echomiddleware.RequestLoggerConfig {
	return echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
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
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}
}
