// Package aggregate implements spec.md §4.9: accumulating per-term
// scores into a per-document total and producing a ranked result list.
package aggregate

import (
	"sort"

	"github.com/mnohosten/searchidx/pkg/store"
)

// Order controls the direction SortBy ranks pairs in.
type Order int

const (
	// Descending ranks the highest score first.
	Descending Order = iota
	// Ascending ranks the lowest score first.
	Ascending
)

// Pair is one ranked (document, accumulated score) result.
type Pair struct {
	DocID store.DocID
	Score float64
}

// Aggregator accumulates scores keyed by document and produces a
// ranked view over them.
type Aggregator interface {
	Insert(key store.DocID, value float64)
	Iterate(fn func(key store.DocID, value float64))
	SortBy(order Order) []Pair
}

// HashAggregator is the provided Aggregator: a plain map from DocID to
// accumulated score.
type HashAggregator struct {
	acc map[store.DocID]float64
}

// NewHashAggregator returns an empty HashAggregator.
func NewHashAggregator() *HashAggregator {
	return &HashAggregator{acc: make(map[store.DocID]float64)}
}

// Insert adds value to key's running total, initializing it to value
// if key has not been seen before.
func (a *HashAggregator) Insert(key store.DocID, value float64) {
	a.acc[key] += value
}

// Iterate calls fn once per (key, value) pair in unspecified order.
func (a *HashAggregator) Iterate(fn func(key store.DocID, value float64)) {
	for k, v := range a.acc {
		fn(k, v)
	}
}

// SortBy returns every accumulated pair ordered by score. Ties are
// broken deterministically by ascending DocID, per spec.md §4.9.
func (a *HashAggregator) SortBy(order Order) []Pair {
	pairs := make([]Pair, 0, len(a.acc))
	for k, v := range a.acc {
		pairs = append(pairs, Pair{DocID: k, Score: v})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			if order == Descending {
				return pairs[i].Score > pairs[j].Score
			}
			return pairs[i].Score < pairs[j].Score
		}
		return pairs[i].DocID < pairs[j].DocID
	})
	return pairs
}
