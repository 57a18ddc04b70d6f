package training

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spacesedan/reviewlens/internal/artifacts"
	"github.com/spacesedan/reviewlens/internal/inference"
	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/vocab"
)

func newEncoder(res *Result) *vocab.Encoder {
	return vocab.NewEncoder(res.Vocabulary, res.MaxLength)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.VocabSize = 50
	cfg.MaxLength = 8
	cfg.EmbeddingDim = 4
	cfg.HiddenUnits = 4
	cfg.Epochs = 60
	cfg.BatchSize = 4
	cfg.LearningRate = 0.05
	cfg.TrainingSplit = 1
	return cfg
}

func toyCorpus() []models.LabeledReview {
	positive := []string{
		"wonderful stay lovely room",
		"lovely staff wonderful view",
		"great breakfast lovely pool",
		"wonderful great comfortable",
		"great lovely clean",
		"comfortable wonderful bed",
	}
	negative := []string{
		"awful stay terrible room",
		"terrible noise awful view",
		"horrible breakfast awful pool",
		"awful horrible uncomfortable",
		"terrible horrible filthy",
		"uncomfortable awful bed",
	}
	var rows []models.LabeledReview
	for i := range positive {
		rows = append(rows,
			models.LabeledReview{Text: positive[i], Label: 1},
			models.LabeledReview{Text: negative[i], Label: 0})
	}
	return rows
}

func TestTrainSeparableCorpus(t *testing.T) {
	cfg := testConfig()
	res, err := Train(context.Background(), cfg, toyCorpus())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if len(res.Report.Epochs) != cfg.Epochs {
		t.Fatalf("expected %d epoch metrics, got %d", cfg.Epochs, len(res.Report.Epochs))
	}
	last := res.Report.Epochs[len(res.Report.Epochs)-1]
	if last.TrainAccuracy < 0.9 {
		t.Fatalf("expected high training accuracy, got %.2f", last.TrainAccuracy)
	}
	if first := res.Report.Epochs[0]; last.TrainLoss >= first.TrainLoss {
		t.Fatalf("loss did not decrease: %.4f -> %.4f", first.TrainLoss, last.TrainLoss)
	}
	if res.Report.Degenerate != "" {
		t.Fatalf("unexpected degenerate flag %q", res.Report.Degenerate)
	}
}

func TestTrainIsDeterministic(t *testing.T) {
	cfg := testConfig()
	cfg.Epochs = 3
	a, err := Train(context.Background(), cfg, toyCorpus())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Train(context.Background(), cfg, toyCorpus())
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Report.Epochs {
		if a.Report.Epochs[i] != b.Report.Epochs[i] {
			t.Fatalf("epoch %d differs: %+v vs %+v", i, a.Report.Epochs[i], b.Report.Epochs[i])
		}
	}
}

func TestTrainDegenerateCorpora(t *testing.T) {
	tests := []struct {
		name string
		rows []models.LabeledReview
		want string
	}{
		{"empty", nil, "empty corpus"},
		{"single class", []models.LabeledReview{
			{Text: "lovely", Label: 1},
			{Text: "great", Label: 1},
		}, "single-class"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Epochs = 2
			res, err := Train(context.Background(), cfg, tt.rows)
			if err != nil {
				t.Fatalf("Train: %v", err)
			}
			if !strings.Contains(res.Report.Degenerate, tt.want) {
				t.Fatalf("degenerate = %q, want %q", res.Report.Degenerate, tt.want)
			}
			if res.Model == nil || res.Vocabulary == nil {
				t.Fatal("expected a model and vocabulary")
			}
		})
	}
}

func TestTrainValidationUsesTestSplit(t *testing.T) {
	cfg := testConfig()
	cfg.Epochs = 2
	cfg.TrainingSplit = 0.75
	res, err := Train(context.Background(), cfg, toyCorpus())
	if err != nil {
		t.Fatal(err)
	}
	if res.Report.TrainSize != 9 || res.Report.TestSize != 3 {
		t.Fatalf("unexpected split %d/%d", res.Report.TrainSize, res.Report.TestSize)
	}
	if res.Report.Epochs[0].ValidationLoss == 0 {
		t.Fatal("expected validation loss to be recorded")
	}
	if res.Report.BaselineAccuracy < 0 || res.Report.BaselineAccuracy > 1 {
		t.Fatalf("baseline accuracy out of range: %v", res.Report.BaselineAccuracy)
	}
}

func TestTrainHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Train(ctx, testConfig(), toyCorpus()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSaveArtifactsRoundTrip(t *testing.T) {
	cfg := testConfig()
	cfg.Epochs = 5
	res, err := Train(context.Background(), cfg, toyCorpus())
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), "out")
	if err := SaveArtifacts(dir, res); err != nil {
		t.Fatalf("SaveArtifacts: %v", err)
	}

	engine, err := inference.Load(dir)
	if err != nil {
		t.Fatalf("inference.Load: %v", err)
	}
	for _, row := range toyCorpus() {
		want := res.Model.Predict(encodeSplit(newEncoder(res), []models.LabeledReview{row}).seqs[0])
		if got := engine.Predict(row.Text); got != want {
			t.Fatalf("prediction drift for %q: %v vs %v", row.Text, got, want)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, artifacts.ReportFile))
	if err != nil {
		t.Fatal(err)
	}
	var report models.TrainingReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(report.Epochs) != 5 {
		t.Fatalf("expected 5 epochs in report, got %d", len(report.Epochs))
	}
}

func TestReadDataset(t *testing.T) {
	csvData := "Review,Rating\n" +
		"\"Lovely stay, great staff\",5\n" +
		"Dirty room,1\n" +
		",4\n" +
		"Okay,not-a-number\n" +
		"Fine,3\n"

	cfg := DefaultConfig()
	cfg.TextColumn = "review"
	cfg.LabelColumn = "rating"
	cfg.LabelMode = LabelModeRating

	rows, err := ReadDataset(strings.NewReader(csvData), cfg)
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	want := []models.LabeledReview{
		{Text: "Lovely stay, great staff", Label: 1},
		{Text: "Dirty room", Label: 0},
		{Text: "Fine", Label: 0},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(rows), len(want), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestReadDatasetBinaryLabels(t *testing.T) {
	rows, err := ReadDataset(strings.NewReader("review,label\ngood,1\nbad,0\nmeh,2\n"), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].Label != 1 || rows[1].Label != 0 {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestReadDatasetMissingColumn(t *testing.T) {
	if _, err := ReadDataset(strings.NewReader("text,stars\nx,1\n"), DefaultConfig()); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestSplitKeepsOrder(t *testing.T) {
	rows := toyCorpus()[:10]
	train, test := Split(rows, 0.8)
	if len(train) != 8 || len(test) != 2 {
		t.Fatalf("unexpected split %d/%d", len(train), len(test))
	}
	if train[0] != rows[0] || test[0] != rows[8] {
		t.Fatal("split reordered rows")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	yaml := "dataset_path: ./reviews.csv\nepochs: 3\nlabel_mode: rating\nbatch_size: 16\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRAIN_EPOCHS", "7")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Epochs != 7 {
		t.Errorf("env override ignored, epochs = %d", cfg.Epochs)
	}
	if cfg.BatchSize != 16 || cfg.LabelMode != LabelModeRating {
		t.Errorf("yaml values ignored: %+v", cfg)
	}
	if cfg.MaxLength != 300 || cfg.VocabSize != 10000 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	if err := os.WriteFile(path, []byte("label_mode: stars\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error")
	}
}
