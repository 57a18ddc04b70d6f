package analyzer

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spacesedan/reviewlens/internal/issuelog"
	"github.com/spacesedan/reviewlens/internal/models"
)

type stubPredictor float64

func (s stubPredictor) Predict(string) float64 { return float64(s) }

type recordingNotifier struct {
	entries []models.IssueLogEntry
}

func (r *recordingNotifier) Notify(e models.IssueLogEntry) {
	r.entries = append(r.entries, e)
}

type failingBackend struct{}

func (failingBackend) Name() string { return "failing" }
func (failingBackend) Put(context.Context, models.IssueLogEntry) (models.IssueLogEntry, error) {
	return models.IssueLogEntry{}, errors.New("disk full")
}
func (failingBackend) List(context.Context) ([]models.IssueLogEntry, error) {
	return nil, errors.New("disk full")
}
func (failingBackend) Ping(context.Context) error { return nil }
func (failingBackend) Close() error               { return nil }

func newAnalyzer(t *testing.T, p float64) (*Analyzer, *issuelog.Log) {
	t.Helper()
	fb, err := issuelog.NewFileBackend(filepath.Join(t.TempDir(), "issues.json"))
	if err != nil {
		t.Fatal(err)
	}
	log := issuelog.New(fb)
	return New(stubPredictor(p), log), log
}

func TestAnalyzeReviewEndToEnd(t *testing.T) {
	a, _ := newAnalyzer(t, 0.1)
	notifier := &recordingNotifier{}
	a.WithNotifier(notifier)
	ctx := context.Background()

	got, err := a.AnalyzeReview(ctx, "The room was dirty and the staff were rude")
	if err != nil {
		t.Fatalf("AnalyzeReview: %v", err)
	}
	want := models.ReviewAnalysis{
		Score:     0.5,
		Sentiment: models.SentimentNegative,
		Issues:    []models.IssueTag{models.IssueCleanliness, models.IssueStaff},
		Response:  "We're sorry to hear about the cleanliness, staff. Your feedback helps us improve.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}

	entries, err := a.ListIssues(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Review != "The room was dirty and the staff were rude" {
		t.Fatalf("unexpected log %+v", entries)
	}
	if len(notifier.entries) != 1 || notifier.entries[0].ID != entries[0].ID {
		t.Fatalf("notifier saw %+v", notifier.entries)
	}
}

func TestAnalyzeReviewRejectsBlank(t *testing.T) {
	a, _ := newAnalyzer(t, 0.1)
	ctx := context.Background()

	for _, text := range []string{"", "   \n\t"} {
		if _, err := a.AnalyzeReview(ctx, text); !errors.Is(err, models.ErrInvalidInput) {
			t.Fatalf("AnalyzeReview(%q) err = %v", text, err)
		}
	}
	entries, _ := a.ListIssues(ctx)
	if len(entries) != 0 {
		t.Fatalf("blank reviews must not be logged, got %d", len(entries))
	}
}

func TestAnalyzeReviewWithoutIssues(t *testing.T) {
	a, _ := newAnalyzer(t, 0.95)
	ctx := context.Background()

	got, err := a.AnalyzeReview(ctx, "Wonderful stay, lovely view")
	if err != nil {
		t.Fatal(err)
	}
	if got.Sentiment != models.SentimentPositive || got.Issues == nil || len(got.Issues) != 0 {
		t.Fatalf("unexpected result %+v", got)
	}
	entries, _ := a.ListIssues(ctx)
	if len(entries) != 0 {
		t.Fatalf("issue-free reviews must not be logged, got %d", len(entries))
	}
}

func TestAnalyzeReviewSurvivesPersistenceFailure(t *testing.T) {
	a := New(stubPredictor(0.5), issuelog.New(failingBackend{}))
	got, err := a.AnalyzeReview(context.Background(), "breakfast was cold")
	if err != nil {
		t.Fatalf("expected analysis despite log failure, got %v", err)
	}
	if got.Sentiment != models.SentimentNeutral || len(got.Issues) != 1 {
		t.Fatalf("unexpected result %+v", got)
	}

	if _, err := a.ListIssues(context.Background()); !errors.Is(err, models.ErrPersistence) {
		t.Fatalf("expected ErrPersistence from ListIssues, got %v", err)
	}
}
