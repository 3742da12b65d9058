// Package invindex implements the inverted index — spec.md §4.5. A term
// maps to an IdfEntry, a set of per-document postings keyed by DocID.
//
// Grounded on original_source/lib/src/core.rs's HashSet<RefCell<TfEntry>>
// design, generalized per spec.md §9's Strategy (a): a Rust RefCell cell
// inside a HashSet exists only to get interior mutability for one field of
// a set member, which Go has no need to emulate. Keying IdfEntry by DocID
// directly (map[store.DocID]int) gives the same semantics with none of the
// ceremony, and mnohosten-laura-db/pkg/text/inverted_index.go does exactly
// this (a postings map keyed by document id).
package invindex

import "github.com/mnohosten/searchidx/pkg/store"

// TfEntry is one posting: a document and the term frequency recorded for
// it within that document.
type TfEntry struct {
	DocID     store.DocID
	Frequency int
}

// IdfEntry is the posting list for one term: document frequency is
// len(entry), i.e. the number of distinct documents this term appears in.
type IdfEntry map[store.DocID]int

// Count returns the document frequency for this entry.
func (e IdfEntry) Count() int {
	return len(e)
}

// Index maps term -> IdfEntry.
type Index struct {
	terms map[string]IdfEntry
}

// New returns an empty Index.
func New() *Index {
	return &Index{terms: make(map[string]IdfEntry)}
}

// AddTerm records one posting. If term is unseen, a new IdfEntry is
// created holding only seed. If term is known and seed.DocID already has
// a posting, that posting's frequency is overwritten with seed.Frequency
// (the writer always supplies the running counter value, so the last
// write for a given (term, docId) pair wins — see pkg/index's writer).
func (idx *Index) AddTerm(term string, seed TfEntry) {
	entry, ok := idx.terms[term]
	if !ok {
		entry = IdfEntry{seed.DocID: seed.Frequency}
		idx.terms[term] = entry
		return
	}
	entry[seed.DocID] = seed.Frequency
}

// GetEntry returns the posting list for term, and whether term is known.
func (idx *Index) GetEntry(term string) (IdfEntry, bool) {
	entry, ok := idx.terms[term]
	return entry, ok
}

// WithEntry applies fn to term's posting list if present, returning
// fn's result and true; returns the zero value and false otherwise.
func WithEntry[T any](idx *Index, term string, fn func(IdfEntry) T) (T, bool) {
	entry, ok := idx.terms[term]
	if !ok {
		var zero T
		return zero, false
	}
	return fn(entry), true
}
