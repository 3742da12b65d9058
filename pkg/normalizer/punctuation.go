package normalizer

import (
	"github.com/mnohosten/searchidx/pkg/token"
)

func isASCIIPunctuation(r rune) bool {
	switch {
	case r >= '!' && r <= '/':
		return true
	case r >= ':' && r <= '@':
		return true
	case r >= '[' && r <= '`':
		return true
	case r >= '{' && r <= '~':
		return true
	default:
		return false
	}
}

// Punctuation removes ASCII-punctuation characters from each token in
// place. Tokens may become empty as a result (e.g. a token consisting only
// of punctuation); the pipeline drops these after every step, so Punctuation
// itself does not need to filter.
type Punctuation struct{}

// NewPunctuation returns a Punctuation normalizer.
func NewPunctuation() Punctuation { return Punctuation{} }

// Normalize implements Normalizer.
func (Punctuation) Normalize(seq *token.Sequence) {
	seq.ForEach(func(t *token.Token) {
		t.Retain(func(r rune) bool { return !isASCIIPunctuation(r) })
	})
}

// Clone implements Normalizer.
func (p Punctuation) Clone() Normalizer { return p }
