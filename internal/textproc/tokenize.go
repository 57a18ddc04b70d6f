package textproc

import (
	"strings"
	"unicode"
)

// Filters is the punctuation set treated as a token separator. Apostrophes
// are not in it, so "wasn't" stays one token.
const Filters = "!\"#$%&()*+,-./:;<=>?@[\\]^_`{|}~"

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(Filters, r)
}

// Tokenize cleans markup, lowercases, and splits on whitespace and Filters.
func Tokenize(text string) []string {
	return SplitWords(ConvertMarkdownToText(text))
}

// SplitWords is Tokenize without the markup pass.
func SplitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), isSeparator)
}
