package models

import "time"

type IssueTag string

const (
	IssueCleanliness IssueTag = "cleanliness"
	IssueStaff       IssueTag = "staff"
	IssuePrice       IssueTag = "price"
	IssueFood        IssueTag = "food"
	IssueLocation    IssueTag = "location"
)

// AllIssueTags is the closed tag set in canonical output order.
var AllIssueTags = []IssueTag{
	IssueCleanliness,
	IssueStaff,
	IssuePrice,
	IssueFood,
	IssueLocation,
}

type IssueLogEntry struct {
	ID        string     `json:"id,omitempty" db:"id" dynamodbav:"id"`
	Seq       int64      `json:"seq,omitempty" db:"seq" dynamodbav:"seq"`
	Review    string     `json:"review" db:"review" dynamodbav:"review"`
	Issues    []IssueTag `json:"issues" db:"-" dynamodbav:"issues"`
	CreatedAt time.Time  `json:"created_at" db:"created_at" dynamodbav:"created_at"`
}

// IssueTagStrings converts tags for wire formats that want plain strings.
func IssueTagStrings(tags []IssueTag) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = string(tag)
	}
	return out
}

// ParseIssueTags keeps only members of the closed tag set, in canonical order.
func ParseIssueTags(raw []string) []IssueTag {
	seen := make(map[IssueTag]bool, len(raw))
	for _, r := range raw {
		seen[IssueTag(r)] = true
	}
	var out []IssueTag
	for _, tag := range AllIssueTags {
		if seen[tag] {
			out = append(out, tag)
		}
	}
	return out
}
