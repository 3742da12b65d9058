package normalizer

import (
	"reflect"
	"testing"

	"github.com/mnohosten/searchidx/pkg/token"
)

func TestPipelineTinyCorpusScenario(t *testing.T) {
	// Scenario A from spec.md §8.
	pipeline := New().
		Insert(NewLowercase()).
		Insert(NewPunctuation()).
		Insert(NewStopwords([]string{"the", "on"}))

	cases := []struct {
		text     string
		expected []string
	}{
		{"the cat sat on the mat", []string{"cat", "sat", "mat"}},
		{"the cat sat", []string{"cat", "sat"}},
		{"the dog barked", []string{"dog", "barked"}},
	}

	for _, c := range cases {
		seq := token.NewSequence()
		for _, w := range splitOnSpace(c.text) {
			seq.Append(token.New(w))
		}
		pipeline.Run(seq)
		if got := seq.Strings(); !reflect.DeepEqual(got, c.expected) {
			t.Fatalf("text %q: got %v, want %v", c.text, got, c.expected)
		}
	}
}

func TestPunctuationCanEmptyToken(t *testing.T) {
	pipeline := New().Insert(NewPunctuation())
	seq := token.NewSequence("...", "cat!", "---")
	pipeline.Run(seq)

	if got := seq.Strings(); !reflect.DeepEqual(got, []string{"cat"}) {
		t.Fatalf("expected only %q to survive, got %v", "cat", got)
	}
}

func TestStopwordsOnlyQueryEmptiesSequence(t *testing.T) {
	pipeline := New().Insert(NewLowercase()).Insert(NewStopwords([]string{"the", "a", "an"}))
	seq := token.NewSequence("The", "a", "An")
	pipeline.Run(seq)

	if seq.Len() != 0 {
		t.Fatalf("expected empty sequence, got %v", seq.Strings())
	}
}

func TestReplacerSubstitutes(t *testing.T) {
	r := NewReplacer(map[string]string{"usa": "united states"})
	seq := token.NewSequence("i", "live", "in", "usa")
	r.Normalize(seq)

	if got := seq.Strings(); got[3] != "united states" {
		t.Fatalf("expected replacement, got %v", got)
	}
}

func TestReplacerCloneIsIndependent(t *testing.T) {
	r := NewReplacer(map[string]string{"a": "b"})
	clone := r.Clone().(*Replacer)
	clone.Insert("c", "d")

	if _, ok := r.pairs["c"]; ok {
		t.Fatal("mutating the clone must not affect the original")
	}
}

func TestPipelineCloneIsIndependent(t *testing.T) {
	p := New().Insert(NewReplacer(map[string]string{"a": "b"}))
	clone := p.Clone()

	replacer := clone.steps[0].(*Replacer)
	replacer.Insert("x", "y")

	original := p.steps[0].(*Replacer)
	if _, ok := original.pairs["x"]; ok {
		t.Fatal("cloned pipeline must not share mutable normalizer state")
	}
}

func splitOnSpace(s string) []string {
	var out []string
	word := ""
	for _, r := range s {
		if r == ' ' {
			if word != "" {
				out = append(out, word)
				word = ""
			}
			continue
		}
		word += string(r)
	}
	if word != "" {
		out = append(out, word)
	}
	return out
}
