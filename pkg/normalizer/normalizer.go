// Package normalizer implements the ordered, clonable chain of in-place
// token rewrites applied after tokenization: case-folding, punctuation
// stripping, stop-word filtering, and literal replacement. Adapted from the
// teacher's pkg/text.Analyzer (which bakes lowercasing, a length filter, a
// fixed stop-word set, and stemming into one pass) by pulling each rewrite
// out into its own Normalizer so the pipeline order is caller-supplied, per
// spec.md §4.2.
package normalizer

import "github.com/mnohosten/searchidx/pkg/token"

// Normalizer rewrites a token.Sequence in place. Implementations must be
// safe to run repeatedly (the pipeline only guarantees idempotence for
// Lowercase, Uppercase, Punctuation, and Stopwords — Replacer may not be,
// per spec.md §8).
type Normalizer interface {
	Normalize(seq *token.Sequence)
	// Clone returns an independent copy suitable for use by a concurrent
	// reader or writer. Normalizers built from immutable configuration
	// (word sets, replacement maps) may return themselves.
	Clone() Normalizer
}

// Pipeline is an ordered, clonable list of Normalizers applied in insertion
// order. After every step the pipeline drops any token the step emptied, so
// no empty token can reach the inverted index regardless of which
// normalizer produced it (spec.md §4.2, §9.4).
type Pipeline struct {
	steps []Normalizer
}

// New returns an empty Pipeline.
func New() *Pipeline {
	return &Pipeline{}
}

// Insert appends a normalizer to the end of the pipeline and returns the
// pipeline for chaining.
func (p *Pipeline) Insert(n Normalizer) *Pipeline {
	p.steps = append(p.steps, n)
	return p
}

// Len reports the number of normalizers in the pipeline.
func (p *Pipeline) Len() int { return len(p.steps) }

// IsEmpty reports whether the pipeline has no normalizers.
func (p *Pipeline) IsEmpty() bool { return len(p.steps) == 0 }

// Run applies every normalizer in order, dropping emptied tokens after each
// step.
func (p *Pipeline) Run(seq *token.Sequence) {
	for _, step := range p.steps {
		step.Normalize(seq)
		seq.DropEmpty()
	}
}

// Clone returns an independent pipeline with the same steps, each cloned.
// The engine clones its pipeline per insert/search so pipeline state never
// leaks between calls (mirroring the original `pipeline.clone()` in the
// Rust engine's insert/get paths).
func (p *Pipeline) Clone() *Pipeline {
	out := &Pipeline{steps: make([]Normalizer, len(p.steps))}
	for i, step := range p.steps {
		out.steps[i] = step.Clone()
	}
	return out
}
