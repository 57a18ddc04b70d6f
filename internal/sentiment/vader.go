package sentiment

import (
	"github.com/jonreiter/govader"
	"github.com/spacesedan/reviewlens/internal/textproc"
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

// VaderProbability rescales the VADER compound score from [-1, 1] to
// [0, 1] so the lexicon baseline can be compared with the trained model.
func VaderProbability(text string) float64 {
	plainText := textproc.ConvertMarkdownToText(text)
	compound := analyzer.PolarityScores(plainText).Compound
	return (compound + 1) / 2
}

// VaderPredictor satisfies the same Predict contract as the inference engine.
type VaderPredictor struct{}

func (VaderPredictor) Predict(text string) float64 {
	return VaderProbability(text)
}
