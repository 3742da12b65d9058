// CoreIndex wires together the resource store, the inverted index, and
// the per-resource term counter behind a typestate writer/reader
// protocol — spec.md §4.6/§4.7. Go has no language-level typestate, so
// the two states are modelled as two distinct exported types (CoreIndex
// itself is never mutated or read directly); this is the approach
// spec.md §9 recommends for non-Rust ports.
package index

import (
	"github.com/mnohosten/searchidx/pkg/invindex"
	"github.com/mnohosten/searchidx/pkg/store"
	"github.com/mnohosten/searchidx/pkg/termcount"
)

// CoreIndex owns the three structures a writer or reader borrows: the
// resource store, the inverted index, and the transient term counter
// reused across inserts. It exposes no operations of its own; all
// access goes through an IndexWriter or an IndexReader.
type CoreIndex[R any] struct {
	store   *store.Store[R]
	inv     *invindex.Index
	counter *termcount.Counter
}

// NewCoreIndex returns an empty CoreIndex.
func NewCoreIndex[R any]() *CoreIndex[R] {
	return &CoreIndex[R]{
		store:   store.New[R](),
		inv:     invindex.New(),
		counter: termcount.New(),
	}
}

// IndexWriter borrows CoreIndex mutably for the duration of one
// resource insertion. Per spec.md §5, no reader may observe the index
// while a writer is live; this module relies on its caller (pkg/engine)
// to serialize writer acquisition against readers, mirroring the
// mnohosten-laura-db TextIndex's sync.RWMutex-guarded access pattern.
type IndexWriter[R any] struct {
	core *CoreIndex[R]
}

// Writer begins the Begin state of the typestate diagram in spec.md
// §4.6.
func (c *CoreIndex[R]) Writer() *IndexWriter[R] {
	return &IndexWriter[R]{core: c}
}

// ResourceWriter is the PerResource state: a writer scoped to one
// freshly assigned DocID.
type ResourceWriter[R any] struct {
	core *CoreIndex[R]
	id   store.DocID
}

// Entry transitions Begin -> PerResource. tokenCount must be >= 1;
// violating that precondition is a programming error (spec.md §4.11).
func (w *IndexWriter[R]) Entry(resource R, tokenCount int) *ResourceWriter[R] {
	if tokenCount < 1 {
		panic("index: Entry called with tokenCount < 1")
	}
	if !w.core.counter.Empty() {
		panic("index: Entry called with a non-empty term counter from a prior resource")
	}
	id := w.core.store.Insert(store.Entry[R]{Resource: resource, TokenCount: tokenCount})
	return &ResourceWriter[R]{core: w.core, id: id}
}

// InsertTerm increments the term counter, reads back the running count,
// and records that running count as the term's frequency for this
// document. Calling AddTerm with the running counter value (rather than
// a +1 delta) means repeated calls for the same term collapse to one
// posting whose frequency is the latest count — see pkg/invindex.
func (rw *ResourceWriter[R]) InsertTerm(term string) {
	rw.core.counter.Insert(term)
	freq := rw.core.counter.GetUnchecked(term)
	rw.core.inv.AddTerm(term, invindex.TfEntry{DocID: rw.id, Frequency: freq})
}

// ResetCounter clears the term counter. Must be called exactly once,
// after every term of the current resource has been inserted, before
// the writer is released.
func (rw *ResourceWriter[R]) ResetCounter() {
	rw.core.counter.Clear()
}

// IndexReader borrows CoreIndex immutably. Any number of readers may
// coexist while no writer is live.
type IndexReader[R any] struct {
	core *CoreIndex[R]
}

// Reader acquires a read-only view of CoreIndex.
func (c *CoreIndex[R]) Reader() *IndexReader[R] {
	return &IndexReader[R]{core: c}
}

// TotalDocuments returns the total number of resources ever inserted.
func (r *IndexReader[R]) TotalDocuments() int {
	return r.core.store.Len()
}

// DocumentFrequency returns the number of documents term appears in, or
// false if term has never been indexed.
func (r *IndexReader[R]) DocumentFrequency(term string) (int, bool) {
	entry, ok := r.core.inv.GetEntry(term)
	if !ok {
		return 0, false
	}
	return entry.Count(), true
}

// Count returns the token count recorded for id. Precondition: id is a
// valid DocID (spec.md §4.7); violating it is a programming error.
func (r *IndexReader[R]) Count(id store.DocID) int {
	entry, ok := r.core.store.Get(id)
	if !ok {
		panic("index: Count called with an out-of-range DocID")
	}
	return entry.TokenCount
}

// GetResource returns the resource stored at id, or false if id is out
// of range.
func (r *IndexReader[R]) GetResource(id store.DocID) (R, bool) {
	entry, ok := r.core.store.Get(id)
	if !ok {
		var zero R
		return zero, false
	}
	return entry.Resource, true
}

// WithEntry applies fn to term's posting list, if present.
func WithEntry[R any, T any](r *IndexReader[R], term string, fn func(invindex.IdfEntry) T) (T, bool) {
	return invindex.WithEntry(r.core.inv, term, fn)
}
