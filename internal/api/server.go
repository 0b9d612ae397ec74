package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/jask/floorplan/internal/service"
)

// DefaultMaxImageBytes caps uploaded floor-plan images.
const DefaultMaxImageBytes = 10 << 20

// Generator drafts layouts, falling back to a stand-in on failure.
type Generator interface {
	Generate(ctx context.Context, req service.GenerateRequest) service.GenerateResult
}

// Options configures the HTTP service.
type Options struct {
	CORSOrigin    string
	MaxImageBytes int64
	Logger        *zap.Logger
}

// Server exposes layout generation over HTTP.
type Server struct {
	echo          *echo.Echo
	gen           Generator
	logger        *zap.Logger
	maxImageBytes int64
}

// New builds the server and registers its routes.
func New(gen Generator, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxImage := opts.MaxImageBytes
	if maxImage <= 0 {
		maxImage = DefaultMaxImageBytes
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newValidator()

	s := &Server{echo: e, gen: gen, logger: logger, maxImageBytes: maxImage}
	e.HTTPErrorHandler = s.handleError

	origins := []string{"http://localhost:4200", "http://localhost:3000"}
	if opts.CORSOrigin != "" {
		origins = append(origins, opts.CORSOrigin)
	}
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderAccept},
		AllowCredentials: true,
	}))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/healthz", s.health)
	g := s.echo.Group("/api/retail-layout")
	g.POST("/generate-from-text", s.generateFromText)
	g.POST("/generate-from-image", s.generateFromImage)
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler { return s.echo }

// Start serves on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting http server", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := fmt.Sprint(httpErr.Message)
		_ = Error(c, httpErr.Code, "HTTP_ERROR", msg, msg)
		return
	}
	s.logger.Error("unhandled error",
		zap.Error(err),
		zap.String("path", c.Request().URL.Path),
		zap.String("method", c.Request().Method),
	)
	_ = Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err.Error())
}
