package normalizer

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/mnohosten/searchidx/pkg/token"
)

// Stopwords removes tokens whose ASCII-lowercased form is in the configured
// word set. The set is shared (not deep-copied) across Clone() calls, since
// it is never mutated after construction.
type Stopwords struct {
	words map[string]struct{}
}

// NewStopwords builds a Stopwords normalizer from an in-memory word list.
func NewStopwords(words []string) *Stopwords {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[asciiLower(w)] = struct{}{}
	}
	return &Stopwords{words: set}
}

// LoadStopwords reads a newline-delimited UTF-8 stop-word file, one word per
// line, blank lines skipped, per spec.md §6.
func LoadStopwords(path string) (*Stopwords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadStopwordsReader(f)
}

// LoadStopwordsReader is the io.Reader-based counterpart of LoadStopwords,
// used by pkg/config to load from a decompressed gzip stream as well as a
// plain file.
func LoadStopwordsReader(r io.Reader) (*Stopwords, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewStopwords(words), nil
}

// Normalize implements Normalizer.
func (s *Stopwords) Normalize(seq *token.Sequence) {
	seq.RetainFunc(func(t *token.Token) bool {
		_, stop := s.words[asciiLower(t.String())]
		return !stop
	})
}

// Clone implements Normalizer.
func (s *Stopwords) Clone() Normalizer {
	return s
}

// DefaultEnglishStopwords returns the small built-in English stop-word list
// used when no external stopwords file is configured, grounded on the
// teacher's pkg/text.defaultStopWords.
func DefaultEnglishStopwords() *Stopwords {
	return NewStopwords([]string{
		"a", "an", "and", "are", "as", "at", "be", "but", "by",
		"for", "if", "in", "into", "is", "it", "no", "not", "of",
		"on", "or", "such", "that", "the", "their", "then", "there",
		"these", "they", "this", "to", "was", "will", "with",
		"i", "you", "he", "she", "we", "me", "him", "her",
		"us", "them", "what", "which", "who", "when", "where", "why",
		"how", "all", "each", "every", "both", "few", "more", "most",
		"other", "some", "can", "could", "may", "might", "must",
		"shall", "should", "would", "am", "been", "being", "have",
		"has", "had", "do", "does", "did", "doing",
	})
}
