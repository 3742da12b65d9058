// Package engine implements the Engine façade — spec.md §4.10 — the
// single entry point a host embeds: tokenize, normalize, feed the
// core index on insert; tokenize, normalize, score, aggregate, rank on
// search. It also carries the running avgDocLength mean BM25Scorer
// needs (supplementing the Rust original's "FIXME: hard-coded" average)
// and the opt-in content-hash dedup diagnostic from the original's
// FileIndex TODO ("same files should not be added more than once").
package engine

import (
	"golang.org/x/crypto/blake2b"

	"github.com/mnohosten/searchidx/pkg/aggregate"
	"github.com/mnohosten/searchidx/pkg/index"
	"github.com/mnohosten/searchidx/pkg/metrics"
	"github.com/mnohosten/searchidx/pkg/normalizer"
	"github.com/mnohosten/searchidx/pkg/score"
	"github.com/mnohosten/searchidx/pkg/store"
	"github.com/mnohosten/searchidx/pkg/tokenizer"
)

// Config bundles the tunables an Engine needs at construction time.
// Capacity is stored but not read: the backing store and index maps
// start empty and grow on demand. Threshold is carried for host-side use (e.g. a minimum-score cutoff applied by
// a caller over Engine.Search's results) and is not consulted by the
// core itself, per spec.md §9's resolution that the threshold is
// advisory only.
type Config struct {
	Capacity  int
	Threshold float64
}

// Engine is the generic façade over one resource type R.
type Engine[R any] struct {
	core      *index.CoreIndex[R]
	tokenizer tokenizer.Tokenizer
	pipeline  *normalizer.Pipeline
	cfg       Config

	totalTokens int
	totalDocs   int

	hashes map[[blake2b.Size256]byte]store.DocID

	profiler    *metrics.QueryProfiler
	profileHelp *metrics.ProfilerHelper
	lastProfile *metrics.ProfileResult
}

// New constructs an Engine. tokenizer and pipeline are shared, not
// copied, across every insert and search — callers wanting isolated
// pipeline state should pass pipeline.Clone().
func New[R any](cfg Config, tok tokenizer.Tokenizer, pipeline *normalizer.Pipeline) *Engine[R] {
	return &Engine[R]{
		core:      index.NewCoreIndex[R](),
		tokenizer: tok,
		pipeline:  pipeline,
		cfg:       cfg,
		hashes:    make(map[[blake2b.Size256]byte]store.DocID),
	}
}

// Insert tokenizes and normalizes text, then indexes resource against
// the surviving tokens. Documents that normalize to zero tokens are
// silently skipped — spec.md §4.10/§4.11 treat this as "do not index
// empty documents", not an error. Callers that want to distinguish a
// skip from a real insert should use InsertChecked.
func (e *Engine[R]) Insert(resource R, text string) {
	_ = e.InsertChecked(resource, text)
}

// InsertChecked behaves like Insert but returns ErrEmptyDocument instead
// of silently skipping when text normalizes to zero surviving tokens —
// useful for a host layer (pkg/httpapi) that wants to report a 4xx
// instead of silently accepting the request.
func (e *Engine[R]) InsertChecked(resource R, text string) error {
	if e.profileHelp == nil {
		return e.insert(resource, text, nil)
	}

	result, err := e.profileHelp.ProfileOperation("insert", func(session *metrics.ProfileSession) error {
		return e.insert(resource, text, session)
	})
	e.lastProfile = result
	return err
}

func (e *Engine[R]) insert(resource R, text string, session *metrics.ProfileSession) error {
	stop := metrics.TimeStage(session, "tokenize")
	tokens := e.tokenizer.Tokenize(text)
	stop()

	if !e.pipeline.IsEmpty() {
		stop = metrics.TimeStage(session, "normalize")
		e.pipeline.Run(tokens)
		stop()
	}
	if tokens.Len() == 0 {
		return ErrEmptyDocument
	}

	stop = metrics.TimeStage(session, "index")
	writer := e.core.Writer()
	perResource := writer.Entry(resource, tokens.Len())
	for i := 0; i < tokens.Len(); i++ {
		perResource.InsertTerm(tokens.At(i).String())
	}
	perResource.ResetCounter()
	stop()

	e.totalDocs++
	e.totalTokens += tokens.Len()
	e.recordHash(text)
	return nil
}

// EnableProfiling turns on per-call stage timing for Insert/InsertChecked
// and Search/SearchBM25. The most recent call's breakdown is available
// from LastProfile.
func (e *Engine[R]) EnableProfiling() {
	if e.profiler == nil {
		e.profiler = metrics.NewQueryProfiler(true)
		e.profileHelp = metrics.NewProfilerHelper(e.profiler)
		return
	}
	e.profiler.Enable()
}

// DisableProfiling turns off per-call stage timing. LastProfile continues
// to return the last recorded result until the next Insert/Search call,
// which resets it to nil.
func (e *Engine[R]) DisableProfiling() {
	if e.profiler != nil {
		e.profiler.Disable()
	}
}

// LastProfile returns the stage breakdown of the most recent profiled
// Insert/Search call, or nil if no profiled call has run or the most
// recent call ran with profiling disabled.
func (e *Engine[R]) LastProfile() *metrics.ProfileResult {
	return e.lastProfile
}

// Search tokenizes and normalizes query, scores every surviving query
// token with TF-IDF, aggregates per-document scores, and returns the
// matching resources ranked by descending accumulated score.
func (e *Engine[R]) Search(query string) []R {
	return e.search(query, "tfidf", func(reader *index.IndexReader[R]) score.Scorer {
		return score.NewTfIdfScorer(reader)
	})
}

// SearchBM25 is identical to Search but scores with the BM25 extension
// rather than TF-IDF.
func (e *Engine[R]) SearchBM25(query string) []R {
	return e.search(query, "bm25", func(reader *index.IndexReader[R]) score.Scorer {
		return score.NewBM25Scorer(reader, e.AvgDocLength)
	})
}

func (e *Engine[R]) search(query, mode string, newScorer func(*index.IndexReader[R]) score.Scorer) []R {
	if e.profileHelp == nil {
		return e.runSearch(query, mode, newScorer, nil)
	}

	var out []R
	result, _ := e.profileHelp.ProfileOperation("search", func(session *metrics.ProfileSession) error {
		out = e.runSearch(query, mode, newScorer, session)
		return nil
	})
	e.lastProfile = result
	return out
}

func (e *Engine[R]) runSearch(query, mode string, newScorer func(*index.IndexReader[R]) score.Scorer, session *metrics.ProfileSession) []R {
	stop := metrics.TimeStage(session, "tokenize")
	tokens := e.tokenizer.Tokenize(query)
	stop()

	if !e.pipeline.IsEmpty() {
		stop = metrics.TimeStage(session, "normalize")
		e.pipeline.Run(tokens)
		stop()
	}

	reader := e.core.Reader()
	s := newScorer(reader)
	agg := aggregate.NewHashAggregator()

	for i := 0; i < tokens.Len(); i++ {
		stop = metrics.TimeStage(session, "score")
		matches, ok := s.Score(tokens.At(i).String())
		stop()
		if !ok {
			continue
		}
		stop = metrics.TimeStage(session, "aggregate")
		for _, m := range matches {
			agg.Insert(m.DocID, m.Score)
		}
		stop()
	}

	ranked := agg.SortBy(aggregate.Descending)
	out := make([]R, 0, len(ranked))
	for _, pair := range ranked {
		if res, ok := reader.GetResource(pair.DocID); ok {
			out = append(out, res)
		}
	}
	if session != nil {
		session.AddMetadata("scorer", mode)
	}
	return out
}

// AvgDocLength returns the running mean token count across every
// resource ever inserted. Zero if no resource has been inserted yet —
// callers scoring against an empty engine never reach this because
// there would be no postings to score.
func (e *Engine[R]) AvgDocLength() float64 {
	if e.totalDocs == 0 {
		return 0
	}
	return float64(e.totalTokens) / float64(e.totalDocs)
}

// TotalDocuments returns the number of resources indexed so far.
func (e *Engine[R]) TotalDocuments() int {
	return e.totalDocs
}

// GetResource returns the resource stored at id, or ErrUnknownDocID if id
// was never assigned by a prior Insert/InsertChecked call.
func (e *Engine[R]) GetResource(id store.DocID) (R, error) {
	res, ok := e.core.Reader().GetResource(id)
	if !ok {
		var zero R
		return zero, ErrUnknownDocID
	}
	return res, nil
}

// WouldDuplicate reports whether text's content hash matches a
// previously inserted resource's, and if so, which DocID it matches.
// This is a diagnostic only: spec.md §8 explicitly permits duplicate
// inserts, so Insert never consults this itself.
func (e *Engine[R]) WouldDuplicate(text string) (store.DocID, bool) {
	h := blake2b.Sum256([]byte(text))
	id, ok := e.hashes[h]
	return id, ok
}

func (e *Engine[R]) recordHash(text string) {
	h := blake2b.Sum256([]byte(text))
	if _, ok := e.hashes[h]; !ok {
		e.hashes[h] = store.DocID(e.totalDocs - 1)
	}
}
