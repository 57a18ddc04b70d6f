// Package inference serves predictions from trained artifacts.
package inference

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spacesedan/reviewlens/internal/artifacts"
	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/nn"
	"github.com/spacesedan/reviewlens/internal/vocab"
)

// Engine is immutable after Load and safe for concurrent Predict calls.
type Engine struct {
	encoder *vocab.Encoder
	model   *nn.Model
}

// Load reads tokenizer.json and review_model.gob from dir. Any failure is
// wrapped in models.ErrArtifactLoad.
func Load(dir string) (*Engine, error) {
	v, maxLength, err := vocab.Load(filepath.Join(dir, artifacts.TokenizerFile))
	if err != nil {
		return nil, fmt.Errorf("[Inference] %w: %w", models.ErrArtifactLoad, err)
	}
	m, err := nn.Load(filepath.Join(dir, artifacts.ModelFile))
	if err != nil {
		return nil, fmt.Errorf("[Inference] %w: %w", models.ErrArtifactLoad, err)
	}
	e, err := New(v, maxLength, m)
	if err != nil {
		return nil, err
	}

	slog.Info("[Inference] Artifacts loaded",
		slog.String("dir", dir),
		slog.Int("vocabulary_size", v.Size()),
		slog.Int("max_length", maxLength))
	return e, nil
}

// New pairs an in-memory vocabulary and model, checking that their shapes
// agree.
func New(v *vocab.Vocabulary, maxLength int, m *nn.Model) (*Engine, error) {
	if m.MaxLength != maxLength {
		return nil, fmt.Errorf("[Inference] %w: model max_length %d, tokenizer %d",
			models.ErrArtifactLoad, m.MaxLength, maxLength)
	}
	if m.VocabRows != v.IDSpace() {
		return nil, fmt.Errorf("[Inference] %w: model has %d embedding rows, tokenizer needs %d",
			models.ErrArtifactLoad, m.VocabRows, v.IDSpace())
	}
	return &Engine{encoder: vocab.NewEncoder(v, maxLength), model: m}, nil
}

// Predict returns the positive-class probability for raw review text.
func (e *Engine) Predict(text string) float64 {
	return e.model.Predict(e.encoder.Encode(text))
}

func (e *Engine) ModelVersion() int {
	return e.model.Version
}

func (e *Engine) VocabularySize() int {
	return e.encoder.Vocabulary().Size()
}
