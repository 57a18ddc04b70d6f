package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/spacesedan/reviewlens/internal/models"
)

func (s *Server) handleReview(c *fiber.Ctx) error {
	var req models.ReviewAnalysisRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
	}

	result, err := s.service.AnalyzeReview(c.UserContext(), req.Review)
	if errors.Is(err, models.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No review text provided"})
	}
	if err != nil {
		slog.Error("[API] Review analysis failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.JSON(result)
}

func (s *Server) handleIssues(c *fiber.Ctx) error {
	entries, err := s.service.ListIssues(c.UserContext())
	if err != nil {
		slog.Error("[API] Failed to list issues", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read issue log"})
	}
	return c.JSON(entries)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	healthy := s.opts.IssueLogHealthy.Load()
	body := fiber.Map{
		"model_version":     s.opts.ModelVersion,
		"vocabulary_size":   s.opts.VocabularySize,
		"issue_log_backend": s.opts.IssueLogBackend,
	}
	if s.opts.IssueLogBreaker != nil {
		if state := s.opts.IssueLogBreaker(); state != "" {
			body["issue_log_breaker"] = state
			if state == "open" {
				healthy = false
			}
		}
	}

	body["issue_log_healthy"] = healthy
	body["status"] = "ok"
	if !healthy {
		body["status"] = "degraded"
	}
	return c.JSON(body)
}
