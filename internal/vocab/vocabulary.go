// Package vocab builds the token to id mapping learned from a training corpus
// and encodes text into the fixed-length id sequences the model consumes.
package vocab

import (
	"sort"

	"github.com/spacesedan/reviewlens/internal/textproc"
)

const (
	// PadID fills encoded sequences past the end of the text. It is never a token.
	PadID = 0
	// OOVID stands in for every token outside the vocabulary.
	OOVID = 1

	DefaultOOVToken = "<OOV>"
	firstWordID     = 2
)

// Vocabulary is immutable once built. Tokens[i] has id i+2.
type Vocabulary struct {
	OOVToken   string
	Tokens     []string
	tokenToIdx map[string]int
}

func newVocabulary(oovToken string, tokens []string) *Vocabulary {
	if oovToken == "" {
		oovToken = DefaultOOVToken
	}
	index := make(map[string]int, len(tokens))
	for i, token := range tokens {
		index[token] = i + firstWordID
	}
	return &Vocabulary{
		OOVToken:   oovToken,
		Tokens:     tokens,
		tokenToIdx: index,
	}
}

// Build counts token frequency across sentences and keeps the vocabSize-1
// most frequent tokens, leaving one slot for the OOV token. Ties keep the
// order in which tokens were first seen.
func Build(sentences []string, vocabSize int, oovToken string) *Vocabulary {
	counts := make(map[string]int)
	var firstSeen []string

	for _, sentence := range sentences {
		for _, token := range textproc.Tokenize(sentence) {
			if _, ok := counts[token]; !ok {
				firstSeen = append(firstSeen, token)
			}
			counts[token]++
		}
	}

	sort.SliceStable(firstSeen, func(i, j int) bool {
		return counts[firstSeen[i]] > counts[firstSeen[j]]
	})

	keep := vocabSize - 1
	if keep < 0 {
		keep = 0
	}
	if keep > len(firstSeen) {
		keep = len(firstSeen)
	}

	tokens := make([]string, keep)
	copy(tokens, firstSeen[:keep])
	return newVocabulary(oovToken, tokens)
}

// Size counts entries including the OOV slot.
func (v *Vocabulary) Size() int {
	return len(v.Tokens) + 1
}

// IDSpace is the number of distinct ids an encoded sequence can contain,
// including PadID. The embedding table needs this many rows.
func (v *Vocabulary) IDSpace() int {
	return len(v.Tokens) + firstWordID
}

// ID returns the id for token, or OOVID.
func (v *Vocabulary) ID(token string) int {
	if id, ok := v.tokenToIdx[token]; ok {
		return id
	}
	return OOVID
}

// WordIndex returns a copy of the mapping, OOV entry included.
func (v *Vocabulary) WordIndex() map[string]int {
	out := make(map[string]int, v.Size())
	out[v.OOVToken] = OOVID
	for token, id := range v.tokenToIdx {
		out[token] = id
	}
	return out
}
