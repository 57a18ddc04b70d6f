package issues

import (
	"strings"

	"github.com/spacesedan/reviewlens/internal/models"
)

// Lexicons maps each issue category to lowercase keywords. Matching is raw
// substring containment, so "cost" also fires inside "costume".
var Lexicons = map[models.IssueTag][]string{
	models.IssueCleanliness: {"dirty", "smelly", "gross", "unclean", "messy", "shabby"},
	models.IssueStaff:       {"rude", "unhelpful", "staff"},
	models.IssuePrice:       {"expensive", "overpriced", "cost"},
	models.IssueFood:        {"food", "breakfast", "dinner", "restaurant"},
	models.IssueLocation:    {"location", "distance", "far", "close"},
}

// Extract returns the set of issue tags whose lexicon matches text, in
// canonical tag order. It returns nil when nothing matches.
func Extract(text string) []models.IssueTag {
	lower := strings.ToLower(text)

	var found []models.IssueTag
	for _, tag := range models.AllIssueTags {
		if containsAny(lower, Lexicons[tag]) {
			found = append(found, tag)
		}
	}
	return found
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
