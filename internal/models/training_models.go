package models

// LabeledReview is one row of the training corpus. Label is 1 for positive.
type LabeledReview struct {
	Text  string `json:"text"`
	Label int    `json:"label"`
}

type EpochMetrics struct {
	Epoch              int     `json:"epoch"`
	TrainLoss          float64 `json:"train_loss"`
	TrainAccuracy      float64 `json:"train_accuracy"`
	ValidationLoss     float64 `json:"validation_loss"`
	ValidationAccuracy float64 `json:"validation_accuracy"`
}

type TrainingReport struct {
	TrainSize        int            `json:"train_size"`
	TestSize         int            `json:"test_size"`
	VocabularySize   int            `json:"vocabulary_size"`
	Epochs           []EpochMetrics `json:"epochs"`
	BaselineAccuracy float64        `json:"vader_baseline_accuracy"`
	Degenerate       string         `json:"degenerate,omitempty"`
}
