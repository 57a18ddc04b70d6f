package vocab

import "github.com/spacesedan/reviewlens/internal/textproc"

const DefaultMaxLength = 300

// Encoder is the one place text becomes model input. Training and serving
// both go through it so padding and truncation cannot drift apart.
type Encoder struct {
	vocab     *Vocabulary
	maxLength int
}

func NewEncoder(v *Vocabulary, maxLength int) *Encoder {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Encoder{vocab: v, maxLength: maxLength}
}

func (e *Encoder) MaxLength() int {
	return e.maxLength
}

func (e *Encoder) Vocabulary() *Vocabulary {
	return e.vocab
}

// Encode maps tokens to ids, truncates from the end and pads at the end.
// The result always has exactly MaxLength elements.
func (e *Encoder) Encode(text string) []int {
	seq := make([]int, e.maxLength) // zero value is PadID
	for i, token := range textproc.Tokenize(text) {
		if i >= e.maxLength {
			break
		}
		seq[i] = e.vocab.ID(token)
	}
	return seq
}
