package models

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// PredictionResult is derived from a model probability and never stored on its own.
type PredictionResult struct {
	Probability float64   `json:"probability"`
	Sentiment   Sentiment `json:"sentiment"`
	Score       float64   `json:"score"`
}

type ReviewAnalysisRequest struct {
	Review string `json:"review"`
}

type ReviewAnalysis struct {
	Score     float64    `json:"score"`
	Sentiment Sentiment  `json:"sentiment"`
	Issues    []IssueTag `json:"issues"`
	Response  string     `json:"response"`
}
