package issuelog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spacesedan/reviewlens/internal/models"
)

// FileBackend keeps the whole log as one JSON array and rewrites it on
// every append. Writes go to a temp file that is renamed over the log, so
// a crash mid-write leaves the previous version in place.
type FileBackend struct {
	path string
	mu   sync.Mutex
}

func NewFileBackend(path string) (*FileBackend, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("[FileBackend] failed to create %s: %w", dir, err)
		}
	}

	fb := &FileBackend{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := fb.write(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("[FileBackend] failed to stat %s: %w", path, err)
	}
	return fb, nil
}

func (fb *FileBackend) Name() string { return "file" }

func (fb *FileBackend) Put(_ context.Context, entry models.IssueLogEntry) (models.IssueLogEntry, error) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	entries, err := fb.read()
	if err != nil {
		return entry, err
	}
	entry.Seq = int64(len(entries) + 1)
	entries = append(entries, entry)
	if err := fb.write(entries); err != nil {
		return entry, err
	}
	return entry, nil
}

func (fb *FileBackend) List(_ context.Context) ([]models.IssueLogEntry, error) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.read()
}

func (fb *FileBackend) Ping(_ context.Context) error {
	_, err := os.Stat(fb.path)
	return err
}

func (fb *FileBackend) Close() error { return nil }

func (fb *FileBackend) read() ([]models.IssueLogEntry, error) {
	data, err := os.ReadFile(fb.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[FileBackend] failed to read %s: %w", fb.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var entries []models.IssueLogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("[FileBackend] failed to parse %s: %w", fb.path, err)
	}
	return entries, nil
}

func (fb *FileBackend) write(entries []models.IssueLogEntry) error {
	if entries == nil {
		entries = []models.IssueLogEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("[FileBackend] failed to marshal log: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fb.path), filepath.Base(fb.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("[FileBackend] failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("[FileBackend] failed to chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("[FileBackend] failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("[FileBackend] failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("[FileBackend] failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fb.path); err != nil {
		return fmt.Errorf("[FileBackend] failed to replace %s: %w", fb.path, err)
	}
	return nil
}
