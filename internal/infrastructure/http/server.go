package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	handlers "github.com/wekeepgrowing/semo-paybot/internal/adapter/handler/http"
	"github.com/wekeepgrowing/semo-paybot/internal/config"
	"github.com/wekeepgrowing/semo-paybot/pkg/logger"
	"go.uber.org/zap"
)

// Stripe event payloads stay well below this
const maxBodySize = "1M"

type Server struct {
	config  *config.Config
	logger  *zap.Logger
	echo    *echo.Echo
	webhook *handlers.WebhookHandler
	pages   *handlers.PagesHandler
}

func NewServer(
	cfg *config.Config,
	zapLogger *zap.Logger,
	webhookHandler *handlers.WebhookHandler,
	pagesHandler *handlers.PagesHandler,
) (*Server, error) {
	renderer, err := handlers.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	// Middleware
	logger.WithEchoLogger(e, zapLogger)
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(logger.NewEchoRequestLogger(zapLogger))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(maxBodySize))

	s := &Server{
		config:  cfg,
		logger:  zapLogger,
		echo:    e,
		webhook: webhookHandler,
		pages:   pagesHandler,
	}
	s.setupRoutes()

	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks until the server stops. A shutdown is not reported as an error.
func (s *Server) Start() error {
	addr := s.config.Server.HTTP.Addr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Checkout redirect targets
	s.echo.GET("/success", s.pages.Success)
	s.echo.GET("/cancel", s.pages.Cancel)

	s.echo.POST("/webhook", s.webhook.HandleWebhook)
}
