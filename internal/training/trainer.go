// Package training builds the vocabulary and fits the review classifier
// from a labeled corpus.
package training

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spacesedan/reviewlens/internal/artifacts"
	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/nn"
	"github.com/spacesedan/reviewlens/internal/sentiment"
	"github.com/spacesedan/reviewlens/internal/vocab"
)

type Result struct {
	Vocabulary *vocab.Vocabulary
	Model      *nn.Model
	MaxLength  int
	Report     models.TrainingReport
}

type split struct {
	seqs   [][]int
	labels []int
	texts  []string
}

func encodeSplit(enc *vocab.Encoder, rows []models.LabeledReview) split {
	s := split{
		seqs:   make([][]int, len(rows)),
		labels: make([]int, len(rows)),
		texts:  make([]string, len(rows)),
	}
	for i, r := range rows {
		s.texts[i] = r.Text
		s.labels[i] = r.Label
		s.seqs[i] = enc.Encode(r.Text)
	}
	return s
}

// Train fits a model on rows. Degenerate corpora still produce a result
// and are recorded in the report. ctx is checked between epochs.
func Train(ctx context.Context, cfg Config, rows []models.LabeledReview) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	trainRows, testRows := Split(rows, cfg.TrainingSplit)
	report := models.TrainingReport{
		TrainSize: len(trainRows),
		TestSize:  len(testRows),
		Epochs:    []models.EpochMetrics{},
	}
	report.Degenerate = degenerateReason(trainRows)
	if report.Degenerate != "" {
		slog.Warn("[Trainer] Degenerate training corpus",
			slog.String("reason", report.Degenerate),
			slog.Int("train_size", len(trainRows)))
	}
	if len(testRows) == 0 {
		slog.Warn("[Trainer] Empty test split, validation skipped")
	}

	sentences := make([]string, len(trainRows))
	for i, r := range trainRows {
		sentences[i] = r.Text
	}
	v := vocab.Build(sentences, cfg.VocabSize, cfg.OOVToken)
	enc := vocab.NewEncoder(v, cfg.MaxLength)
	report.VocabularySize = v.Size()

	train := encodeSplit(enc, trainRows)
	test := encodeSplit(enc, testRows)

	rng := rand.New(rand.NewSource(cfg.Seed))
	model, err := nn.New(nn.Config{
		VocabRows:    v.IDSpace(),
		MaxLength:    enc.MaxLength(),
		EmbeddingDim: cfg.EmbeddingDim,
		HiddenUnits:  cfg.HiddenUnits,
	}, rng)
	if err != nil {
		return nil, err
	}

	slog.Info("[Trainer] Starting training",
		slog.Int("train_size", len(trainRows)),
		slog.Int("test_size", len(testRows)),
		slog.Int("vocabulary_size", v.Size()),
		slog.Int("params", model.ParamCount()),
		slog.Int("epochs", cfg.Epochs))

	opt := nn.NewAdam(cfg.LearningRate)
	batch := model.NewBatch()

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("[Trainer] aborted before epoch %d: %w", epoch, err)
		}
		if len(train.seqs) == 0 {
			break
		}

		var lossSum float64
		var hits int
		for i, idx := range rng.Perm(len(train.seqs)) {
			batch.Add(train.seqs[idx], train.labels[idx])
			if (i+1)%cfg.BatchSize == 0 {
				l, h := batch.Apply(opt)
				lossSum += l
				hits += h
			}
		}
		l, h := batch.Apply(opt)
		lossSum += l
		hits += h

		n := float64(len(train.seqs))
		m := models.EpochMetrics{
			Epoch:         epoch,
			TrainLoss:     lossSum / n,
			TrainAccuracy: float64(hits) / n,
		}
		if len(test.seqs) > 0 {
			m.ValidationLoss, m.ValidationAccuracy = Evaluate(model, test.seqs, test.labels)
		}
		report.Epochs = append(report.Epochs, m)

		slog.Info("[Trainer] Epoch complete",
			slog.Int("epoch", epoch),
			slog.Float64("loss", m.TrainLoss),
			slog.Float64("accuracy", m.TrainAccuracy),
			slog.Float64("val_loss", m.ValidationLoss),
			slog.Float64("val_accuracy", m.ValidationAccuracy))
	}

	if len(test.texts) > 0 {
		report.BaselineAccuracy = BaselineAccuracy(sentiment.VaderPredictor{}, test.texts, test.labels)
		slog.Info("[Trainer] VADER baseline",
			slog.Float64("accuracy", report.BaselineAccuracy))
	}

	return &Result{
		Vocabulary: v,
		Model:      model,
		MaxLength:  enc.MaxLength(),
		Report:     report,
	}, nil
}

func degenerateReason(rows []models.LabeledReview) string {
	if len(rows) == 0 {
		return "empty corpus, model was never updated"
	}
	first := rows[0].Label
	for _, r := range rows[1:] {
		if r.Label != first {
			return ""
		}
	}
	return fmt.Sprintf("single-class corpus, every label is %d", first)
}

// Evaluate returns mean loss and accuracy without touching the model.
func Evaluate(model *nn.Model, seqs [][]int, labels []int) (float64, float64) {
	if len(seqs) == 0 {
		return 0, 0
	}
	var loss float64
	var hits int
	for i, seq := range seqs {
		p := model.Predict(seq)
		loss += nn.BinaryCrossEntropy(p, float64(labels[i]))
		if (p >= 0.5) == (labels[i] == 1) {
			hits++
		}
	}
	n := float64(len(seqs))
	return loss / n, float64(hits) / n
}

// Predictor maps raw review text to a positive-class probability.
type Predictor interface {
	Predict(text string) float64
}

// BaselineAccuracy scores a text predictor at the 0.5 cut.
func BaselineAccuracy(p Predictor, texts []string, labels []int) float64 {
	if len(texts) == 0 {
		return 0
	}
	hits := 0
	for i, text := range texts {
		if (p.Predict(text) >= 0.5) == (labels[i] == 1) {
			hits++
		}
	}
	return float64(hits) / float64(len(texts))
}

// SaveArtifacts writes the tokenizer, model and report into dir.
func SaveArtifacts(dir string, res *Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("[Trainer] failed to create %s: %w", dir, err)
	}
	if err := vocab.Save(filepath.Join(dir, artifacts.TokenizerFile), res.Vocabulary, res.MaxLength); err != nil {
		return err
	}
	if err := nn.Save(filepath.Join(dir, artifacts.ModelFile), res.Model); err != nil {
		return err
	}

	data, err := json.MarshalIndent(res.Report, "", "  ")
	if err != nil {
		return fmt.Errorf("[Trainer] failed to marshal report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, artifacts.ReportFile), data, 0644); err != nil {
		return fmt.Errorf("[Trainer] failed to write report: %w", err)
	}

	slog.Info("[Trainer] Saved artifacts", slog.String("dir", dir))
	return nil
}

// Run loads the dataset named in cfg, trains and saves the artifacts.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	rows, err := LoadDataset(cfg.DatasetPath, cfg)
	if err != nil {
		return nil, err
	}
	res, err := Train(ctx, cfg, rows)
	if err != nil {
		return nil, err
	}
	if err := SaveArtifacts(cfg.OutputDir, res); err != nil {
		return nil, err
	}
	return res, nil
}
