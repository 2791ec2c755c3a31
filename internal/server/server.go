// Package server exposes the HTTP surface of the service: the generative
// analysis endpoints, the deterministic goal planner, profile statistics,
// and report rendering. Handlers stay thin; all orchestration semantics
// live behind the typed clients they call.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/astroforge/astroforge/internal/config"
	"github.com/astroforge/astroforge/internal/llm"
	"github.com/astroforge/astroforge/internal/profile"
)

const (
	shutdownGracePeriod = 10 * time.Second
	readTimeout         = 30 * time.Second
	// Write timeout must cover the vision budget plus rendering headroom.
	writeTimeout = 180 * time.Second
	idleTimeout  = 120 * time.Second
)

// Server is the HTTP front for the analysis platform.
type Server struct {
	cfg      config.Config
	analyzer *llm.Client
	profiles *profile.Provider
	app      *echo.Echo
	address  string
}

// New constructs a server wired with routing and middleware.
func New(cfg config.Config, analyzer *llm.Client, profiles *profile.Provider) (*Server, error) {
	if analyzer == nil {
		return nil, errors.New("analyzer must not be nil")
	}
	if profiles == nil {
		return nil, errors.New("profile provider must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		ExposeHeaders: []string{"X-Process-Time"},
	}))
	e.Use(processTimeMiddleware)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogLatency: true,
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"error", v.Error,
			)
			return nil
		},
	}))

	srv := &Server{
		cfg:      cfg,
		analyzer: analyzer,
		profiles: profiles,
		app:      e,
		address:  fmt.Sprintf(":%d", cfg.Server.Port),
	}
	srv.registerRoutes()
	return srv, nil
}

func (s *Server) registerRoutes() {
	s.app.GET("/", s.handleRoot)
	s.app.GET("/health", s.handleHealth)

	s.app.POST("/analyze-profile", s.handleAnalyzeProfile)
	s.app.POST("/generate-ai-insights", s.handleInsights)
	s.app.POST("/astrology-analysis", s.handleAstrology)
	s.app.POST("/palm-analysis", s.handlePalmAnalysis)
	s.app.POST("/creator-analysis", s.handleCreatorAnalysis)
	s.app.POST("/calculate-goals", s.handleGoals)
	s.app.POST("/generate-report", s.handleReport)
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("starting server", "addr", s.address)

	httpServer := &http.Server{
		Addr:         s.address,
		Handler:      s.app,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.app.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := s.app.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		slog.Info("server shutdown complete")
		return nil
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}
}

// Handler exposes the echo engine for tests.
func (s *Server) Handler() http.Handler { return s.app }

// processTimeMiddleware reports handler latency to clients, matching the
// dashboard's expectations.
func processTimeMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		c.Response().Before(func() {
			elapsed := time.Since(start).Seconds()
			c.Response().Header().Set("X-Process-Time", strconv.FormatFloat(elapsed, 'f', 4, 64))
		})
		return next(c)
	}
}
