// Package score implements spec.md §4.8: the Scorer capability over an
// index reader, the provided TF-IDF scorer, and the BM25 extension
// promoted to a full implementation per SPEC_FULL.md (the original
// lib/src/rank.rs left BM25 as a commented-out sketch).
package score

import (
	"math"

	"github.com/mnohosten/searchidx/pkg/index"
	"github.com/mnohosten/searchidx/pkg/invindex"
	"github.com/mnohosten/searchidx/pkg/store"
)

// ScoredDoc is one (document, score) pair produced by a Scorer.
type ScoredDoc struct {
	DocID store.DocID
	Score float64
}

// Scorer scores a single term against the documents that contain it.
// Score returns (nil, false) when the term has never been indexed.
type Scorer interface {
	Score(term string) ([]ScoredDoc, bool)
}

// TfIdfScorer is the provided scoring strategy: tf(freq, count) = freq /
// count; idf(N, df) = log10(N / df).
type TfIdfScorer[R any] struct {
	reader *index.IndexReader[R]
}

// NewTfIdfScorer wraps reader in a TF-IDF Scorer.
func NewTfIdfScorer[R any](reader *index.IndexReader[R]) *TfIdfScorer[R] {
	return &TfIdfScorer[R]{reader: reader}
}

// Score implements Scorer.
func (s *TfIdfScorer[R]) Score(term string) ([]ScoredDoc, bool) {
	return index.WithEntry(s.reader, term, func(entry invindex.IdfEntry) []ScoredDoc {
		n := s.reader.TotalDocuments()
		df := entry.Count()
		if df <= 0 {
			panic("score: TfIdfScorer encountered a posting list with document frequency 0")
		}
		idf := math.Log10(float64(n) / float64(df))

		out := make([]ScoredDoc, 0, len(entry))
		for docID, freq := range entry {
			count := s.reader.Count(docID)
			if count <= 0 {
				panic("score: TfIdfScorer encountered a document with token count 0")
			}
			tf := float64(freq) / float64(count)
			out = append(out, ScoredDoc{DocID: docID, Score: tf * idf})
		}
		return out
	})
}

// BM25 tuning constants, per spec.md §4.8.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// BM25Scorer is the extension scoring strategy described in spec.md
// §4.8. Unlike TfIdfScorer it needs the running mean document length,
// which the core store does not track; AvgDocLength must be supplied
// by the caller (pkg/engine keeps a running mean updated on every
// insert, per SPEC_FULL.md's "Supplemented features").
type BM25Scorer[R any] struct {
	reader       *index.IndexReader[R]
	avgDocLength func() float64
}

// NewBM25Scorer wraps reader in a BM25 Scorer. avgDocLength is called
// once per Score invocation to read the engine's current running mean
// document length.
func NewBM25Scorer[R any](reader *index.IndexReader[R], avgDocLength func() float64) *BM25Scorer[R] {
	return &BM25Scorer[R]{reader: reader, avgDocLength: avgDocLength}
}

// Score implements Scorer.
func (s *BM25Scorer[R]) Score(term string) ([]ScoredDoc, bool) {
	return index.WithEntry(s.reader, term, func(entry invindex.IdfEntry) []ScoredDoc {
		n := s.reader.TotalDocuments()
		df := entry.Count()
		if df <= 0 {
			panic("score: BM25Scorer encountered a posting list with document frequency 0")
		}
		idf := math.Log10((float64(n)-float64(df)+0.5)/(float64(df)+0.5) + 1)
		avgLen := s.avgDocLength()

		out := make([]ScoredDoc, 0, len(entry))
		for docID, freq := range entry {
			docLen := s.reader.Count(docID)
			tf := float64(freq)
			denom := tf + bm25K1*(1-bm25B+bm25B*float64(docLen)/avgLen)
			sc := idf * tf * (bm25K1 + 1) / denom
			out = append(out, ScoredDoc{DocID: docID, Score: sc})
		}
		return out
	})
}

// ScoreBatch scores every term in terms, returning one []ScoredDoc (or
// nil) per term in order — spec.md §4.8's "mapping a token stream to
// Vec<Option<ScoreVec>>".
func ScoreBatch(scorer Scorer, terms []string) [][]ScoredDoc {
	out := make([][]ScoredDoc, len(terms))
	for i, term := range terms {
		if scores, ok := scorer.Score(term); ok {
			out[i] = scores
		}
	}
	return out
}

// ScoreReduce scores every term in terms and folds each present score
// vector into acc via reduce, in term order. This is the "batch scoring
// with a caller-supplied reducer" façade spec.md §4.8 describes.
func ScoreReduce[A any](scorer Scorer, terms []string, acc A, reduce func(acc A, term string, scores []ScoredDoc) A) A {
	for _, term := range terms {
		if scores, ok := scorer.Score(term); ok {
			acc = reduce(acc, term, scores)
		}
	}
	return acc
}
