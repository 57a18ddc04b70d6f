package training

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	LabelModeBinary = "binary"
	LabelModeRating = "rating"
)

// Config holds the training hyperparameters and dataset layout.
type Config struct {
	DatasetPath       string `yaml:"dataset_path"`
	TextColumn        string `yaml:"text_column"`
	LabelColumn       string `yaml:"label_column"`
	LabelMode         string `yaml:"label_mode"`
	PositiveMinRating int    `yaml:"positive_min_rating"`

	OutputDir string `yaml:"output_dir"`

	VocabSize int    `yaml:"vocab_size"`
	OOVToken  string `yaml:"oov_token"`
	MaxLength int    `yaml:"max_length"`

	EmbeddingDim  int     `yaml:"embedding_dim"`
	HiddenUnits   int     `yaml:"hidden_units"`
	Epochs        int     `yaml:"epochs"`
	BatchSize     int     `yaml:"batch_size"`
	LearningRate  float64 `yaml:"learning_rate"`
	TrainingSplit float64 `yaml:"training_split"`
	Seed          int64   `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		DatasetPath:       "./data/reviews.csv",
		TextColumn:        "review",
		LabelColumn:       "label",
		LabelMode:         LabelModeBinary,
		PositiveMinRating: 4,
		OutputDir:         "./artifacts",
		VocabSize:         10000,
		OOVToken:          "<OOV>",
		MaxLength:         300,
		EmbeddingDim:      16,
		HiddenUnits:       6,
		Epochs:            10,
		BatchSize:         32,
		LearningRate:      0.001,
		TrainingSplit:     0.8,
		Seed:              42,
	}
}

// LoadConfig reads path over the defaults, applies environment overrides
// and validates the result. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("[TrainingConfig] failed to parse %s: %w", path, err)
			}
			slog.Info("[TrainingConfig] Loaded config", slog.String("path", path))
		case os.IsNotExist(err):
			slog.Warn("[TrainingConfig] Config file not found, using defaults", slog.String("path", path))
		default:
			return cfg, fmt.Errorf("[TrainingConfig] failed to read %s: %w", path, err)
		}
	}

	envOverride(&cfg.DatasetPath, "TRAIN_DATASET_PATH")
	envOverride(&cfg.OutputDir, "TRAIN_OUTPUT_DIR")
	envOverride(&cfg.LabelMode, "TRAIN_LABEL_MODE")
	envOverrideInt(&cfg.Epochs, "TRAIN_EPOCHS")
	envOverrideInt(&cfg.BatchSize, "TRAIN_BATCH_SIZE")
	envOverrideInt(&cfg.VocabSize, "TRAIN_VOCAB_SIZE")
	envOverrideFloat(&cfg.LearningRate, "TRAIN_LEARNING_RATE")

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.DatasetPath == "" {
		return fmt.Errorf("[TrainingConfig] dataset_path is required")
	}
	if c.TextColumn == "" || c.LabelColumn == "" {
		return fmt.Errorf("[TrainingConfig] text_column and label_column are required")
	}
	switch c.LabelMode {
	case LabelModeBinary, LabelModeRating:
	default:
		return fmt.Errorf("[TrainingConfig] label_mode must be 'binary' or 'rating', got '%s'", c.LabelMode)
	}
	if c.MaxLength < 1 {
		return fmt.Errorf("[TrainingConfig] invalid max_length '%d': must be >= 1", c.MaxLength)
	}
	if c.EmbeddingDim < 1 || c.HiddenUnits < 1 {
		return fmt.Errorf("[TrainingConfig] embedding_dim and hidden_units must be >= 1")
	}
	if c.Epochs < 0 {
		return fmt.Errorf("[TrainingConfig] invalid epochs '%d': must be >= 0", c.Epochs)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("[TrainingConfig] invalid batch_size '%d': must be >= 1", c.BatchSize)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("[TrainingConfig] invalid learning_rate '%f': must be > 0", c.LearningRate)
	}
	if c.TrainingSplit <= 0 || c.TrainingSplit > 1 {
		return fmt.Errorf("[TrainingConfig] invalid training_split '%f': must be in (0, 1]", c.TrainingSplit)
	}
	return nil
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			slog.Warn("[TrainingConfig] Ignoring invalid integer override",
				slog.String("key", envKey), slog.String("value", val))
			return
		}
		*field = n
	}
}

func envOverrideFloat(field *float64, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			slog.Warn("[TrainingConfig] Ignoring invalid float override",
				slog.String("key", envKey), slog.String("value", val))
			return
		}
		*field = f
	}
}
