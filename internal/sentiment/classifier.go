package sentiment

import "github.com/spacesedan/reviewlens/internal/models"

const (
	PositiveThreshold = 0.8
	NegativeThreshold = 0.35
	MaxScore          = 5.0
)

// Classify maps a model probability to a label and a 0-5 score. The upper
// bound is strict: exactly 0.8 is neutral, exactly 0.35 is negative.
func Classify(probability float64) models.PredictionResult {
	var label models.Sentiment
	switch {
	case probability > PositiveThreshold:
		label = models.SentimentPositive
	case probability > NegativeThreshold:
		label = models.SentimentNeutral
	default:
		label = models.SentimentNegative
	}

	return models.PredictionResult{
		Probability: probability,
		Sentiment:   label,
		Score:       probability * MaxScore,
	}
}
