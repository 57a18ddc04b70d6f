package response

import (
	"fmt"
	"strings"

	"github.com/spacesedan/reviewlens/internal/models"
)

type templateKey struct {
	sentiment models.Sentiment
	hasIssues bool
}

// Templates holds the four reply branches. Positive and neutral replies do
// not depend on issues, so both keys point at the same text.
var Templates = map[templateKey]string{
	{models.SentimentNegative, true}:  "We're sorry to hear about the %s. Your feedback helps us improve.",
	{models.SentimentNegative, false}: "We're sorry your experience wasn't great. Your feedback helps us improve.",
	{models.SentimentPositive, true}:  "We're so glad you enjoyed your stay! Thank you for your kind words.",
	{models.SentimentPositive, false}: "We're so glad you enjoyed your stay! Thank you for your kind words.",
	{models.SentimentNeutral, true}:   "Thanks for your feedback. We'll keep working to improve.",
	{models.SentimentNeutral, false}:  "Thanks for your feedback. We'll keep working to improve.",
}

func Generate(sentiment models.Sentiment, issues []models.IssueTag) string {
	key := templateKey{sentiment: sentiment, hasIssues: len(issues) > 0}
	tmpl, ok := Templates[key]
	if !ok {
		tmpl = Templates[templateKey{models.SentimentNeutral, false}]
	}

	if key.sentiment == models.SentimentNegative && key.hasIssues {
		return fmt.Sprintf(tmpl, strings.Join(models.IssueTagStrings(issues), ", "))
	}
	return tmpl
}
