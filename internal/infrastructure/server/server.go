package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/reactiverse/core/docs"
	httpHandlers "github.com/reactiverse/core/internal/adapters/http"
	"github.com/reactiverse/core/internal/adapters/repository"
	"github.com/reactiverse/core/internal/application/services"
	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/infrastructure/config"
	"github.com/reactiverse/core/internal/infrastructure/database"
	"github.com/reactiverse/core/internal/infrastructure/logger"
	"github.com/reactiverse/core/internal/infrastructure/metrics"
	"github.com/reactiverse/core/internal/infrastructure/validation"
	"github.com/reactiverse/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	db      *database.DB
	cache   ports.ViewCache
	metrics *metrics.Metrics
	tokens  *services.TokenService
}

type handlers struct {
	auth    *httpHandlers.AuthHandler
	users   *httpHandlers.UserHandler
	designs *httpHandlers.DesignHandler
	pages   *httpHandlers.PageHandler
}

// New creates a new server instance. cache and m may be nil.
func New(cfg *config.Config, db *database.DB, cache ports.ViewCache, m *metrics.Metrics, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	hasher, err := services.NewPasswordHasher(cfg.Security.PasswordScheme)
	if err != nil {
		return nil, err
	}
	validator := validation.New()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.Users)
	adminRepo := repository.NewAdminRepository(db.Admins)
	designRepo := repository.NewDesignRepository(db.Designs)
	pageRepo := repository.NewPageRepository(db.Pages)

	// Initialize services
	tokenService := services.NewTokenService(cfg.JWT)
	authService := services.NewAuthService(userRepo, adminRepo, hasher, validator, appLogger)
	userService := services.NewUserService(userRepo, hasher, validator, cache, cfg.Cache.TTL, appLogger)
	designService := services.NewDesignService(designRepo, userRepo, validator, cache, cfg.Cache.TTL, appLogger)
	pageService := services.NewPageService(pageRepo, validator, cache, cfg.Cache.TTL, appLogger)

	// Initialize handlers
	h := handlers{
		auth:    httpHandlers.NewAuthHandler(authService, tokenService, appLogger),
		users:   httpHandlers.NewUserHandler(userService, appLogger),
		designs: httpHandlers.NewDesignHandler(designService, appLogger),
		pages:   httpHandlers.NewPageHandler(pageService, appLogger),
	}

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger,
		db:      db,
		cache:   cache,
		metrics: m,
		tokens:  tokenService,
	}

	server.setupMiddleware()
	if cfg.Metrics.Enabled && m != nil {
		server.setupMetrics()
	}
	server.setupRoutes(h)

	return server, nil
}

// Echo exposes the router, mainly for tests
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			s.logger.
				WithRequestID(values.RequestID).
				WithError(values.Error).
				LogHTTPRequest(values.Method, values.URI, values.UserAgent, values.RemoteIP, values.Status, values.Latency)
			return nil
		},
	}))

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	if s.config.Security.RateLimitRequests > 0 {
		window := s.config.Security.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		limit := rate.Limit(float64(s.config.Security.RateLimitRequests) / window.Seconds())

		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{Rate: limit, Burst: s.config.Security.RateLimitRequests, ExpiresIn: window},
			),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			ErrorHandler: func(context echo.Context, err error) error {
				return context.JSON(http.StatusForbidden, ports.Failed(ports.OutcomeForbidden, "rate limit exceeded"))
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				return context.JSON(http.StatusTooManyRequests, ports.Failed(ports.OutcomeForbidden, "rate limit exceeded"))
			},
		}))
	}

	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	s.echo.Use(middleware.RequestID())

	if s.config.Server.RequestTimeout > 0 {
		s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
			Timeout: s.config.Server.RequestTimeout,
		}))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(h handlers) {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := s.echo.Group("/api/v1")
	requireAuth := s.authMiddleware(s.tokens)

	authGroup := v1.Group("/auth")
	authGroup.POST("/signup", h.auth.Signup)
	authGroup.POST("/login", h.auth.Login)
	authGroup.POST("/admin/login", h.auth.AdminLogin)

	designGroup := v1.Group("/designs")
	designGroup.GET("", h.designs.ListDesigns)
	designGroup.GET("/:id", h.designs.GetDesign)
	designGroup.POST("", h.designs.SubmitDesign, requireAuth, s.requireRole(entities.RoleUser))
	designGroup.DELETE("/:id", h.designs.DeleteDesign, requireAuth, s.requireRole(entities.RoleUser, entities.RoleAdmin))

	userGroup := v1.Group("/users")
	userGroup.GET("/:id/designs", h.designs.ListUserDesigns)
	userGroup.GET("/me", h.users.GetCurrentUser, requireAuth, s.requireRole(entities.RoleUser))
	userGroup.PUT("/me/profile", h.users.UpdateProfile, requireAuth, s.requireRole(entities.RoleUser))
	userGroup.PUT("/me/password", h.users.ChangePassword, requireAuth, s.requireRole(entities.RoleUser))

	v1.GET("/pages/:slug", h.pages.GetPage)

	adminGroup := v1.Group("/admin", requireAuth, s.requireRole(entities.RoleAdmin))
	adminGroup.GET("/users", h.users.ListUsers)
	adminGroup.DELETE("/users/:id", h.users.DeleteUser)
	adminGroup.GET("/pages", h.pages.ListPages)
	adminGroup.PUT("/pages/:slug", h.pages.UpdatePage)
}

// setupMetrics installs the Prometheus middleware and endpoint
func (s *Server) setupMetrics() {
	s.echo.Use(s.metrics.Middleware())
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	status := "ok"
	checks := make(map[string]interface{})

	if err := s.db.HealthCheck(ctx); err != nil {
		status = "error"
		checks["store"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["store"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.GetConnectionInfo(ctx),
		}
	}

	if pinger, ok := s.cache.(interface{ Ping(context.Context) error }); ok {
		if err := pinger.Ping(ctx); err != nil {
			status = "error"
			checks["cache"] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			checks["cache"] = map[string]interface{}{"status": "ok", "driver": s.config.Cache.Driver}
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  runtime.Version(),
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.Ping(); err != nil {
		s.logger.Warnw("Readiness check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "store_not_writable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)

	srv := &http.Server{
		Addr:         address,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}
	if err := s.echo.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders router and middleware errors as action envelopes
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := ports.MsgGenericFailure

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = fmt.Sprint(he.Message)
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
			msg = ports.MsgGenericFailure
		}

		if c.Response().Committed {
			return
		}

		if c.Request().Method == echo.HEAD {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, ports.Failed(outcomeForStatus(code), msg))
		}
		if err != nil {
			logger.Errorw("Error sending response", "error", err)
		}
	}
}

func outcomeForStatus(code int) ports.Outcome {
	switch code {
	case http.StatusBadRequest:
		return ports.OutcomeValidation
	case http.StatusUnauthorized:
		return ports.OutcomeRejected
	case http.StatusForbidden:
		return ports.OutcomeForbidden
	case http.StatusNotFound:
		return ports.OutcomeNotFound
	case http.StatusConflict:
		return ports.OutcomeConflict
	default:
		return ports.OutcomeStorage
	}
}
