package normalizer

import "github.com/mnohosten/searchidx/pkg/token"

// Replacer replaces any token whose text equals a configured key with the
// associated value. Unlike the other provided normalizers, Replacer is not
// guaranteed idempotent: running it twice can produce a different result if
// a replacement value is itself a key (spec.md §8).
type Replacer struct {
	pairs map[string]string
}

// NewReplacer builds a Replacer from a literal -> replacement mapping.
func NewReplacer(pairs map[string]string) *Replacer {
	cp := make(map[string]string, len(pairs))
	for k, v := range pairs {
		cp[k] = v
	}
	return &Replacer{pairs: cp}
}

// Insert adds or overwrites a single replacement pair.
func (r *Replacer) Insert(key, value string) {
	r.pairs[key] = value
}

// Remove deletes a replacement pair, if present.
func (r *Replacer) Remove(key string) {
	delete(r.pairs, key)
}

// Normalize implements Normalizer.
func (r *Replacer) Normalize(seq *token.Sequence) {
	seq.ForEach(func(t *token.Token) {
		if replacement, ok := r.pairs[t.String()]; ok {
			t.SetString(replacement)
		}
	})
}

// Clone implements Normalizer. Replacer's map is copied so Insert/Remove on
// a clone cannot race with or retroactively affect the original.
func (r *Replacer) Clone() Normalizer {
	return NewReplacer(r.pairs)
}
