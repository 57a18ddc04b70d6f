package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spacesedan/reviewlens/internal/inference"
	"github.com/spacesedan/reviewlens/internal/models"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("reviewlens %v: %v", args, err)
	}
	return out.String()
}

func TestTrainAnalyzeAndListIssues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ISSUE_LOG_BACKEND", "file")
	t.Setenv("ISSUE_LOG_PATH", filepath.Join(dir, "issues.json"))
	t.Setenv("ARTIFACT_DIR", filepath.Join(dir, "artifacts"))
	t.Setenv("ARTIFACT_S3_URI", "")

	dataset := "review,label\n" +
		"lovely clean room,1\n" +
		"wonderful friendly staff,1\n" +
		"dirty room rude staff,0\n" +
		"awful smelly bathroom,0\n"
	datasetPath := filepath.Join(dir, "reviews.csv")
	if err := os.WriteFile(datasetPath, []byte(dataset), 0644); err != nil {
		t.Fatal(err)
	}
	trainYAML := "dataset_path: " + datasetPath + "\n" +
		"output_dir: " + filepath.Join(dir, "artifacts") + "\n" +
		"max_length: 10\nembedding_dim: 4\nhidden_units: 3\nepochs: 2\nbatch_size: 2\n"
	configPath := filepath.Join(dir, "train.yaml")
	if err := os.WriteFile(configPath, []byte(trainYAML), 0644); err != nil {
		t.Fatal(err)
	}

	var report models.TrainingReport
	if err := json.Unmarshal([]byte(runCLI(t, "train", "--config", configPath)), &report); err != nil {
		t.Fatalf("train output: %v", err)
	}
	if len(report.Epochs) != 2 {
		t.Fatalf("expected 2 epochs, got %d", len(report.Epochs))
	}

	// ARTIFACT_DIR equals output_dir here, so deploy must leave the files intact.
	runCLI(t, "deploy", "--skip-train", "--config", configPath)
	if _, err := inference.Load(filepath.Join(dir, "artifacts")); err != nil {
		t.Fatalf("artifacts unusable after in-place deploy: %v", err)
	}

	serving := filepath.Join(dir, "serving")
	runCLI(t, "deploy", "--skip-train", "--config", configPath, "--target", serving)
	if _, err := inference.Load(serving); err != nil {
		t.Fatalf("artifacts unusable after deploy to %s: %v", serving, err)
	}

	var result models.ReviewAnalysis
	if err := json.Unmarshal([]byte(runCLI(t, "analyze", "The room was dirty")), &result); err != nil {
		t.Fatalf("analyze output: %v", err)
	}
	if len(result.Issues) != 1 || result.Issues[0] != models.IssueCleanliness {
		t.Fatalf("unexpected issues %v", result.Issues)
	}

	var entries []models.IssueLogEntry
	if err := json.Unmarshal([]byte(runCLI(t, "issues")), &entries); err != nil {
		t.Fatalf("issues output: %v", err)
	}
	if len(entries) != 1 || entries[0].Review != "The room was dirty" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}
