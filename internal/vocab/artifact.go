package vocab

import (
	"encoding/json"
	"fmt"
	"os"
)

const ArtifactVersion = 1

type vocabularyArtifact struct {
	Version   int            `json:"version"`
	OOVToken  string         `json:"oov_token"`
	MaxLength int            `json:"max_length"`
	Tokens    []string       `json:"tokens"`
	WordIndex map[string]int `json:"word_index"`
}

// Save writes the vocabulary as JSON. word_index is informational. Tokens
// order is what Load trusts.
func Save(path string, v *Vocabulary, maxLength int) error {
	data, err := json.MarshalIndent(vocabularyArtifact{
		Version:   ArtifactVersion,
		OOVToken:  v.OOVToken,
		MaxLength: maxLength,
		Tokens:    v.Tokens,
		WordIndex: v.WordIndex(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("[Vocabulary] failed to marshal vocabulary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("[Vocabulary] failed to write %s: %w", path, err)
	}
	return nil
}

// Load reads a vocabulary artifact and the max length it was trained with.
func Load(path string) (*Vocabulary, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("[Vocabulary] failed to read %s: %w", path, err)
	}

	var raw vocabularyArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("[Vocabulary] failed to parse %s: %w", path, err)
	}
	if raw.Version != ArtifactVersion {
		return nil, 0, fmt.Errorf("[Vocabulary] unsupported artifact version %d", raw.Version)
	}

	seen := make(map[string]bool, len(raw.Tokens))
	for _, token := range raw.Tokens {
		if token == "" || seen[token] {
			return nil, 0, fmt.Errorf("[Vocabulary] corrupt token list in %s", path)
		}
		seen[token] = true
	}

	return newVocabulary(raw.OOVToken, raw.Tokens), raw.MaxLength, nil
}
