// Package termcount implements the transient term->occurrence-count
// accumulator used while indexing a single resource, per spec.md §4.3.
// Grounded on the original Rust `TermCounter`/`core.rs` (insert/get/reset)
// and generalized into Go's usual "comma-ok" map idiom for Get.
package termcount

// Counter accumulates per-document token frequency. It must be cleared
// before control returns to the caller and must be empty at the start of
// every insert — the writer in pkg/index enforces this invariant.
type Counter struct {
	counts map[string]int
}

// New returns an empty Counter.
func New() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Insert increments the count for term, initializing it to 1 if absent.
func (c *Counter) Insert(term string) {
	c.counts[term]++
}

// Get returns the current count for term and whether it has been inserted
// at least once.
func (c *Counter) Get(term string) (int, bool) {
	n, ok := c.counts[term]
	return n, ok
}

// GetUnchecked returns the current count for term. Precondition: term has
// been inserted at least once. Violating this is a programming error, not a
// recoverable condition (spec.md §4.11), so it panics.
func (c *Counter) GetUnchecked(term string) int {
	n, ok := c.counts[term]
	if !ok {
		panic("termcount: GetUnchecked called for a term that was never inserted: " + term)
	}
	return n
}

// Clear empties the counter. Called exactly once per resource, after all of
// its terms have been fed in.
func (c *Counter) Clear() {
	clear(c.counts)
}

// Empty reports whether the counter currently holds no terms. Used by
// debug assertions at the start of an insert.
func (c *Counter) Empty() bool {
	return len(c.counts) == 0
}
