// Package api exposes the review analyzer over HTTP.
package api

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spacesedan/reviewlens/internal/models"
	"golang.org/x/time/rate"
)

// Service is the analyzer surface the handlers need.
type Service interface {
	AnalyzeReview(ctx context.Context, text string) (models.ReviewAnalysis, error)
	ListIssues(ctx context.Context) ([]models.IssueLogEntry, error)
}

type Options struct {
	AllowedOrigins []string
	RateLimitRPS   float64 // 0 disables limiting

	ModelVersion    int
	VocabularySize  int
	IssueLogBackend string
	IssueLogHealthy *atomic.Bool
	// IssueLogBreaker reports the breaker state of a remote log backend.
	IssueLogBreaker func() string
}

type Server struct {
	app     *fiber.App
	service Service
	opts    Options
}

func NewServer(service Service, opts Options) *Server {
	if opts.IssueLogHealthy == nil {
		opts.IssueLogHealthy = &atomic.Bool{}
		opts.IssueLogHealthy.Store(true)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             1 * 1024 * 1024,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: originList(opts.AllowedOrigins),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	if opts.RateLimitRPS > 0 {
		app.Use(rateLimiter(opts.RateLimitRPS))
	}

	s := &Server{app: app, service: service, opts: opts}
	app.Post("/review", s.handleReview)
	app.Get("/issues", s.handleIssues)
	app.Get("/health", s.handleHealth)
	return s
}

// App exposes the fiber app for tests and embedding.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("[API] Listening", slog.String("addr", addr))
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("[API] Shutting down...")
		return s.app.ShutdownWithTimeout(5 * time.Second)
	}
}

func originList(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}

func rateLimiter(rps float64) fiber.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), int(math.Max(1, math.Ceil(rps))))
	return func(c *fiber.Ctx) error {
		if !limiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Rate limit exceeded"})
		}
		return c.Next()
	}
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		slog.Debug("[API] Request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().StatusCode()),
			slog.Duration("latency", time.Since(start)))
		return err
	}
}
