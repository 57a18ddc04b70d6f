// Package analyzer runs a review through prediction, classification, issue
// extraction and reply generation, and records flagged reviews.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spacesedan/reviewlens/internal/issuelog"
	"github.com/spacesedan/reviewlens/internal/issues"
	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/response"
	"github.com/spacesedan/reviewlens/internal/sentiment"
)

// Predictor maps raw review text to a positive-class probability.
// *inference.Engine and sentiment.VaderPredictor both satisfy it.
type Predictor interface {
	Predict(text string) float64
}

// Notifier receives entries after they are persisted.
type Notifier interface {
	Notify(entry models.IssueLogEntry)
}

type Analyzer struct {
	predictor Predictor
	log       *issuelog.Log
	notifier  Notifier
}

func New(predictor Predictor, log *issuelog.Log) *Analyzer {
	return &Analyzer{predictor: predictor, log: log}
}

// WithNotifier enables downstream notification of persisted entries.
func (a *Analyzer) WithNotifier(n Notifier) *Analyzer {
	a.notifier = n
	return a
}

// AnalyzeReview returns models.ErrInvalidInput for blank text. A failed
// log append is logged and does not fail the analysis.
func (a *Analyzer) AnalyzeReview(ctx context.Context, text string) (models.ReviewAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return models.ReviewAnalysis{}, fmt.Errorf("[Analyzer] empty review: %w", models.ErrInvalidInput)
	}

	prediction := sentiment.Classify(a.predictor.Predict(text))
	tags := issues.Extract(text)
	if tags == nil {
		tags = []models.IssueTag{}
	}

	result := models.ReviewAnalysis{
		Score:     prediction.Score,
		Sentiment: prediction.Sentiment,
		Issues:    tags,
		Response:  response.Generate(prediction.Sentiment, tags),
	}

	entry, err := a.log.Append(ctx, text, tags)
	if err != nil {
		slog.Error("[Analyzer] Failed to record issues",
			slog.String("backend", a.log.Backend()),
			slog.String("error", err.Error()))
	} else if entry != nil && a.notifier != nil {
		a.notifier.Notify(*entry)
	}

	slog.Debug("[Analyzer] Review analyzed",
		slog.String("sentiment", string(result.Sentiment)),
		slog.Float64("score", result.Score),
		slog.Int("issues", len(tags)))
	return result, nil
}

func (a *Analyzer) ListIssues(ctx context.Context) ([]models.IssueLogEntry, error) {
	return a.log.ReadAll(ctx)
}
