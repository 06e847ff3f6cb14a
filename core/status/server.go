package status

import (
	"context"

	"pihole-manager/core/logger"
	"pihole-manager/core/middleware/requestid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Server exposes the daemon's health and last pass report over HTTP.
type Server struct {
	addr    string
	app     *fiber.App
	tracker *Tracker
	log     *zap.Logger
}

// NewServer wires the routes and middleware for the status endpoint.
func NewServer(addr string, tracker *Tracker, log *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We log our own startup message
	})
	s := &Server{addr: addr, app: app, tracker: tracker, log: log}

	// RequestID must be first to trace everything.
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRequestID(log, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/healthz", s.handleHealth)
	app.Get("/status", s.handleStatus)
	return s
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("Status server listening", zap.String("addr", s.addr))
	return s.app.Listen(s.addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// handleHealth reports liveness; it says nothing about pass outcomes.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleStatus returns the report of the most recent reconciliation pass.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	report, ok := s.tracker.Last()
	if !ok {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "no reconciliation pass completed yet",
		})
	}
	return c.JSON(report)
}
