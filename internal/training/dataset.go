package training

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spacesedan/reviewlens/internal/models"
)

// LoadDataset reads a headered CSV of reviews. Rows with empty text or an
// unparsable label are skipped with a warning.
func LoadDataset(path string, cfg Config) ([]models.LabeledReview, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("[Dataset] failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDataset(f, cfg)
}

func ReadDataset(r io.Reader, cfg Config) ([]models.LabeledReview, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[Dataset] failed to read header: %w", err)
	}

	textIdx, labelIdx := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch {
		case strings.EqualFold(name, cfg.TextColumn):
			textIdx = i
		case strings.EqualFold(name, cfg.LabelColumn):
			labelIdx = i
		}
	}
	if textIdx < 0 || labelIdx < 0 {
		return nil, fmt.Errorf("[Dataset] header must contain %q and %q columns", cfg.TextColumn, cfg.LabelColumn)
	}

	var rows []models.LabeledReview
	skipped := 0
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("[Dataset] failed to read line %d: %w", line, err)
		}
		if textIdx >= len(record) || labelIdx >= len(record) {
			skipped++
			continue
		}

		text := strings.TrimSpace(record[textIdx])
		label, ok := parseLabel(record[labelIdx], cfg)
		if text == "" || !ok {
			skipped++
			continue
		}
		rows = append(rows, models.LabeledReview{Text: text, Label: label})
	}

	if skipped > 0 {
		slog.Warn("[Dataset] Skipped unusable rows",
			slog.Int("skipped", skipped),
			slog.Int("kept", len(rows)))
	}
	return rows, nil
}

func parseLabel(raw string, cfg Config) (int, bool) {
	raw = strings.TrimSpace(raw)
	switch cfg.LabelMode {
	case LabelModeRating:
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false
		}
		if rating >= float64(cfg.PositiveMinRating) {
			return 1, true
		}
		return 0, true
	default:
		switch raw {
		case "0":
			return 0, true
		case "1":
			return 1, true
		}
		return 0, false
	}
}

// Split keeps order: the first int(n*fraction) rows train, the rest test.
func Split(rows []models.LabeledReview, fraction float64) (train, test []models.LabeledReview) {
	cut := int(float64(len(rows)) * fraction)
	if cut > len(rows) {
		cut = len(rows)
	}
	return rows[:cut], rows[cut:]
}
