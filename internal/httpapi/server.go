// Package httpapi exposes the matching engine over HTTP. Identity arrives as
// an X-User-ID header set by the fronting application; this service performs
// no authentication of its own.
package httpapi

import (
	"context"
	stderrors "errors"

	"matchengine/internal/common/config"
	"matchengine/internal/common/errors"
	"matchengine/internal/common/logger"
	"matchengine/internal/geo"
	"matchengine/internal/models"
	"matchengine/internal/savedsearch"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProfileSource supplies candidate profiles to the API handlers.
type ProfileSource interface {
	PublicCandidates(ctx context.Context) ([]models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

// JobSource supplies the active job pool.
type JobSource interface {
	ActiveJobs(ctx context.Context) ([]models.Job, error)
}

type Server struct {
	app      *fiber.App
	cfg      *config.Config
	logger   logger.Logger
	profiles ProfileSource
	jobs     JobSource
	resolver geo.Resolver
	searches *savedsearch.Service
}

func NewServer(cfg *config.Config, log logger.Logger, profiles ProfileSource, jobs JobSource, resolver geo.Resolver, searches *savedsearch.Service) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   log.WithFields(map[string]interface{}{"component": "httpapi"}),
		profiles: profiles,
		jobs:     jobs,
		resolver: resolver,
		searches: searches,
	}

	s.app = fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: s.handleError,
	})
	s.app.Use(recover.New())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.health)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api")
	api.Post("/recommendations", s.recommendations)
	api.Get("/candidates", s.searchCandidates)
	api.Get("/jobs/nearby", s.nearbyJobs)
	api.Post("/saved-searches", s.createSearch)
	api.Get("/saved-searches", s.listSearches)
	api.Delete("/saved-searches/:id", s.deleteSearch)
	api.Post("/saved-searches/:id/run", s.runSearch)
}

// App exposes the underlying fiber app. Used by tests and by Listen.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		return c.Status(fe.Code).JSON(errors.ErrorResponse{
			Error: fe.Message,
			Code:  string(errors.ErrCodeInternal),
		})
	}

	status, body := errors.ToResponse(err)
	if status >= 500 {
		s.logger.Error("request failed", map[string]interface{}{
			"error":  err,
			"path":   c.Path(),
			"method": c.Method(),
		})
	}
	return c.Status(status).JSON(body)
}

// actingUser extracts the caller identity header.
func actingUser(c *fiber.Ctx) (string, error) {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return "", errors.NewValidationFailedError("X-User-ID header is required")
	}
	return userID, nil
}
