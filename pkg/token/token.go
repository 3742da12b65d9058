// Package token implements the owned, mutable string tokens that flow
// through the tokenizer and normalizer pipeline before being moved into the
// inverted index as term keys.
package token

// Token is an owned, mutable piece of text. Tokenizers create tokens,
// normalizers rewrite them in place, and the index consumes their final
// text as a term key.
type Token struct {
	text []byte
}

// New creates a Token that owns a copy of s.
func New(s string) *Token {
	return &Token{text: []byte(s)}
}

// String returns the token's current text.
func (t *Token) String() string {
	return string(t.text)
}

// SetString overwrites the token's text.
func (t *Token) SetString(s string) {
	t.text = []byte(s)
}

// Len reports the number of bytes in the token's current text.
func (t *Token) Len() int {
	return len(t.text)
}

// Empty reports whether the token has no text left.
func (t *Token) Empty() bool {
	return len(t.text) == 0
}

// Retain keeps only the runes for which keep returns true, in place.
func (t *Token) Retain(keep func(r rune) bool) {
	s := string(t.text)
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if keep(r) {
			out = append(out, string(r)...)
		}
	}
	t.text = out
}

// Sequence is an ordered, mutable sequence of Tokens produced by a
// tokenizer and rewritten in place by a normalizer pipeline.
type Sequence struct {
	tokens []*Token
}

// NewSequence builds a Sequence from already-tokenized text.
func NewSequence(texts ...string) *Sequence {
	seq := &Sequence{tokens: make([]*Token, 0, len(texts))}
	for _, s := range texts {
		seq.tokens = append(seq.tokens, New(s))
	}
	return seq
}

// Len returns the number of tokens currently in the sequence.
func (s *Sequence) Len() int {
	return len(s.tokens)
}

// At returns the token at position i.
func (s *Sequence) At(i int) *Token {
	return s.tokens[i]
}

// Append adds a token to the end of the sequence.
func (s *Sequence) Append(t *Token) {
	s.tokens = append(s.tokens, t)
}

// ForEach calls fn for every token, in order, without allowing mutation of
// the sequence's membership (only of each token's text, via fn).
func (s *Sequence) ForEach(fn func(t *Token)) {
	for _, t := range s.tokens {
		fn(t)
	}
}

// RetainFunc keeps only the tokens for which keep returns true, preserving
// order. Used by normalizers (Stopwords) and by the pipeline runner to drop
// tokens that became empty after a rewrite (e.g. Punctuation).
func (s *Sequence) RetainFunc(keep func(t *Token) bool) {
	out := s.tokens[:0]
	for _, t := range s.tokens {
		if keep(t) {
			out = append(out, t)
		}
	}
	s.tokens = out
}

// DropEmpty removes every token whose text is now empty. The normalizer
// pipeline calls this after every step so no empty token can ever reach the
// inverted index, regardless of which normalizer produced it.
func (s *Sequence) DropEmpty() {
	s.RetainFunc(func(t *Token) bool { return !t.Empty() })
}

// Strings returns the sequence's current text, one entry per token. Used by
// the writer when moving tokens into the inverted index as term keys.
func (s *Sequence) Strings() []string {
	out := make([]string, len(s.tokens))
	for i, t := range s.tokens {
		out[i] = t.String()
	}
	return out
}
