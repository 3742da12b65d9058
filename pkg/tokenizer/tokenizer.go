// Package tokenizer splits free-form text into a token.Sequence, before any
// normalization runs. Adapted from the teacher's pkg/text.Analyzer.tokenize,
// generalized into two selectable variants per spec.md §4.1.
package tokenizer

import (
	"strings"
	"unicode"

	"github.com/mnohosten/searchidx/pkg/token"
)

// Tokenizer turns raw text into a token.Sequence. Implementations are
// stateless and therefore cheap to copy by value.
type Tokenizer interface {
	Tokenize(text string) *token.Sequence
}

// Whitespace splits on any run of Unicode whitespace, dropping empty pieces.
type Whitespace struct{}

// NewWhitespace returns a Whitespace tokenizer.
func NewWhitespace() Whitespace { return Whitespace{} }

// Tokenize implements Tokenizer.
func (Whitespace) Tokenize(text string) *token.Sequence {
	fields := strings.FieldsFunc(text, unicode.IsSpace)
	return token.NewSequence(fields...)
}

// standardDelimiters is the fixed delimiter set from spec.md §4.1.
const standardDelimiters = " \t\r\n,;!@#$%^.-(){}[]'\"<>"

func isStandardDelimiter(r rune) bool {
	return strings.ContainsRune(standardDelimiters, r)
}

// Standard splits on any character in the fixed delimiter set
// { space, tab, CR, LF, ',', ';', '!', '@', '#', '$', '%', '^', '.', '-',
// '(', ')', '{', '}', '[', ']', ''', '"', '<', '>' }, dropping empty pieces.
// Tokens preserve original case and interior characters.
type Standard struct{}

// NewStandard returns a Standard tokenizer.
func NewStandard() Standard { return Standard{} }

// Tokenize implements Tokenizer.
func (Standard) Tokenize(text string) *token.Sequence {
	fields := strings.FieldsFunc(text, isStandardDelimiter)
	return token.NewSequence(fields...)
}
