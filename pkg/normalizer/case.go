package normalizer

import (
	"github.com/mnohosten/searchidx/pkg/token"
)

// asciiLower mirrors Rust's str::make_ascii_lowercase: only bytes in 'A'-'Z'
// are folded, every other byte (including non-ASCII UTF-8 continuation
// bytes) is left untouched.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// Lowercase ASCII-lowercases every token in place.
type Lowercase struct{}

// NewLowercase returns a Lowercase normalizer.
func NewLowercase() Lowercase { return Lowercase{} }

// Normalize implements Normalizer.
func (Lowercase) Normalize(seq *token.Sequence) {
	seq.ForEach(func(t *token.Token) {
		t.SetString(asciiLower(t.String()))
	})
}

// Clone implements Normalizer.
func (l Lowercase) Clone() Normalizer { return l }

// Uppercase ASCII-uppercases every token in place.
type Uppercase struct{}

// NewUppercase returns an Uppercase normalizer.
func NewUppercase() Uppercase { return Uppercase{} }

// Normalize implements Normalizer.
func (Uppercase) Normalize(seq *token.Sequence) {
	seq.ForEach(func(t *token.Token) {
		t.SetString(asciiUpper(t.String()))
	})
}

// Clone implements Normalizer.
func (u Uppercase) Clone() Normalizer { return u }
