package models

import (
	"reflect"
	"testing"
)

func TestParseIssueTagsCanonicalOrder(t *testing.T) {
	got := ParseIssueTags([]string{"location", "staff", "bogus", "staff", "cleanliness"})
	want := []IssueTag{IssueCleanliness, IssueStaff, IssueLocation}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseIssueTags = %v, want %v", got, want)
	}
	if got := ParseIssueTags(nil); got != nil {
		t.Fatalf("expected nil for no tags, got %v", got)
	}
}

func TestIssueTagStrings(t *testing.T) {
	got := IssueTagStrings([]IssueTag{IssuePrice, IssueFood})
	if !reflect.DeepEqual(got, []string{"price", "food"}) {
		t.Fatalf("unexpected strings: %v", got)
	}
}
