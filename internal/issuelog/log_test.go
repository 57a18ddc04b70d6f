package issuelog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spacesedan/reviewlens/internal/models"
)

func newFileLog(t *testing.T) (*Log, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "issues.json")
	fb, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}
	return New(fb), path
}

func TestFileBackendInitializesEmptyLog(t *testing.T) {
	log, path := newFileLog(t)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected empty array on first run, got %q", data)
	}

	entries, err := log.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", entries)
	}
}

func TestAppendSkipsEmptyIssues(t *testing.T) {
	log, _ := newFileLog(t)
	ctx := context.Background()

	entry, err := log.Append(ctx, "Lovely stay", nil)
	if err != nil || entry != nil {
		t.Fatalf("expected no-op, got %v %v", entry, err)
	}
	entries, _ := log.ReadAll(ctx)
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestAppendPreservesInsertionOrder(t *testing.T) {
	log, path := newFileLog(t)
	ctx := context.Background()

	reviews := []string{"dirty room", "rude staff", "too expensive"}
	tags := [][]models.IssueTag{
		{models.IssueCleanliness},
		{models.IssueStaff},
		{models.IssuePrice},
	}
	for i := range reviews {
		if _, err := log.Append(ctx, reviews[i], tags[i]); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	// A fresh backend over the same file sees the same history.
	fb, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	entries, err := New(fb).ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Review != reviews[i] || e.Issues[0] != tags[i][0] {
			t.Errorf("entry %d = %+v", i, e)
		}
		if e.Seq != int64(i+1) {
			t.Errorf("entry %d seq = %d", i, e.Seq)
		}
		if e.ID == "" || e.CreatedAt.IsZero() {
			t.Errorf("entry %d missing id or timestamp", i)
		}
	}
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	log, _ := newFileLog(t)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := log.Append(ctx, fmt.Sprintf("review %d", i), []models.IssueTag{models.IssueFood}); err != nil {
				t.Errorf("Append: %v", err)
			}
		}(i)
	}
	wg.Wait()

	entries, err := log.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != n {
		t.Fatalf("expected %d entries, got %d", n, len(entries))
	}
	seen := make(map[string]bool, n)
	for _, e := range entries {
		seen[e.Review] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct reviews, got %d", n, len(seen))
	}
}

func TestCorruptFileSurfacesPersistenceError(t *testing.T) {
	log, path := newFileLog(t)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := log.Append(context.Background(), "dirty", []models.IssueTag{models.IssueCleanliness})
	if !errors.Is(err, models.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if _, err := log.ReadAll(context.Background()); !errors.Is(err, models.ErrPersistence) {
		t.Fatalf("expected ErrPersistence on read, got %v", err)
	}
}

func TestSQLiteBackendRoundTrip(t *testing.T) {
	sb, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "issues.db"))
	if err != nil {
		t.Fatalf("NewSQLiteBackend: %v", err)
	}
	log := New(sb)
	defer log.Close()
	ctx := context.Background()

	if _, err := log.Append(ctx, "dirty and rude", []models.IssueTag{models.IssueCleanliness, models.IssueStaff}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := log.Append(ctx, "far away", []models.IssueTag{models.IssueLocation}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := log.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Seq >= entries[1].Seq {
		t.Fatalf("seq not increasing: %d, %d", entries[0].Seq, entries[1].Seq)
	}
	if len(entries[0].Issues) != 2 || entries[0].Issues[1] != models.IssueStaff {
		t.Fatalf("unexpected issues %v", entries[0].Issues)
	}
	if err := log.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if log.BreakerState() != "" {
		t.Fatalf("local backend should report no breaker, got %q", log.BreakerState())
	}
}
